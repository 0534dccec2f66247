package theme

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/BurntSushi/toml"
)

// thTOMLTheme is the TOML-serializable representation of a Theme.
type thTOMLTheme struct {
	Name   string       `toml:"name"`
	Face   thTOMLFace   `toml:"face"`
	Text   thTOMLText   `toml:"text"`
	Status thTOMLStatus `toml:"status"`
	VC     thTOMLVC     `toml:"vc"`
	Bar    thTOMLBar    `toml:"bar"`
}

type thTOMLFace struct {
	ActiveBG   string `toml:"active_bg"`
	ActiveFG   string `toml:"active_fg"`
	InactiveBG string `toml:"inactive_bg"`
	InactiveFG string `toml:"inactive_fg"`
}

type thTOMLText struct {
	Accent    string `toml:"accent"`
	Highlight string `toml:"highlight"`
	Dim       string `toml:"dim"`
}

type thTOMLStatus struct {
	OK    string `toml:"ok"`
	Warn  string `toml:"warn"`
	Error string `toml:"error"`
}

type thTOMLVC struct {
	Clean    string `toml:"clean"`
	Edited   string `toml:"edited"`
	Conflict string `toml:"conflict"`
}

type thTOMLBar struct {
	Active   string `toml:"active"`
	Inactive string `toml:"inactive"`
}

var thHexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// LoadFromTOML parses a TOML theme definition from raw bytes.
func LoadFromTOML(data []byte) (Theme, error) {
	var tt thTOMLTheme
	if err := toml.Unmarshal(data, &tt); err != nil {
		return Theme{}, fmt.Errorf("theme: parse TOML: %w", err)
	}

	t := Theme{
		Name:       tt.Name,
		ActiveBG:   tt.Face.ActiveBG,
		ActiveFG:   tt.Face.ActiveFG,
		InactiveBG: tt.Face.InactiveBG,
		InactiveFG: tt.Face.InactiveFG,

		Accent:    tt.Text.Accent,
		Highlight: tt.Text.Highlight,
		Dim:       tt.Text.Dim,

		StatusOK:    tt.Status.OK,
		StatusWarn:  tt.Status.Warn,
		StatusError: tt.Status.Error,

		VCClean:    tt.VC.Clean,
		VCEdited:   tt.VC.Edited,
		VCConflict: tt.VC.Conflict,

		BarActive:   tt.Bar.Active,
		BarInactive: tt.Bar.Inactive,
	}

	if err := thValidateTheme(t); err != nil {
		return Theme{}, err
	}

	return t, nil
}

// Register parses a TOML theme definition and adds it to the registry.
// An existing theme with the same name is overwritten.
func Register(data []byte) (Theme, error) {
	t, err := LoadFromTOML(data)
	if err != nil {
		return Theme{}, err
	}
	thRegister(t)
	return t, nil
}

// SaveToTOML serializes a theme to TOML bytes.
func SaveToTOML(t Theme) ([]byte, error) {
	tt := thTOMLTheme{
		Name: t.Name,
		Face: thTOMLFace{
			ActiveBG:   t.ActiveBG,
			ActiveFG:   t.ActiveFG,
			InactiveBG: t.InactiveBG,
			InactiveFG: t.InactiveFG,
		},
		Text: thTOMLText{
			Accent:    t.Accent,
			Highlight: t.Highlight,
			Dim:       t.Dim,
		},
		Status: thTOMLStatus{
			OK:    t.StatusOK,
			Warn:  t.StatusWarn,
			Error: t.StatusError,
		},
		VC: thTOMLVC{
			Clean:    t.VCClean,
			Edited:   t.VCEdited,
			Conflict: t.VCConflict,
		},
		Bar: thTOMLBar{
			Active:   t.BarActive,
			Inactive: t.BarInactive,
		},
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(tt); err != nil {
		return nil, fmt.Errorf("theme: encode TOML: %w", err)
	}
	return buf.Bytes(), nil
}

// thColorFields maps field names to their values for validation.
func thColorFields(t Theme) map[string]string {
	return map[string]string{
		"active_bg":   t.ActiveBG,
		"active_fg":   t.ActiveFG,
		"inactive_bg": t.InactiveBG,
		"inactive_fg": t.InactiveFG,
		"accent":      t.Accent,
		"highlight":   t.Highlight,
		"dim":         t.Dim,
		"ok":          t.StatusOK,
		"warn":        t.StatusWarn,
		"error":       t.StatusError,
		"vc_clean":    t.VCClean,
		"vc_edited":   t.VCEdited,
		"vc_conflict": t.VCConflict,
		"bar_active":  t.BarActive,
		"bar_inactive": t.BarInactive,
	}
}

// thValidateTheme checks that all color fields are present and valid hex.
func thValidateTheme(t Theme) error {
	if t.Name == "" {
		return fmt.Errorf("theme: missing required field %q", "name")
	}
	for field, value := range thColorFields(t) {
		if value == "" {
			return fmt.Errorf("theme: missing required field %q", field)
		}
		if !thHexColorRegex.MatchString(value) {
			return fmt.Errorf("theme: invalid hex color %q for field %q (expected #RRGGBB)", value, field)
		}
	}
	return nil
}
