package emacs

import (
	"fmt"
	"strings"
)

// RenderPropertized produces a one-line modeline string with Emacs text
// property annotations, one #("text" start end (face face-name)) form per
// segment, readable with `read`. Meant for direct splicing into
// mode-line-format via :eval.
func RenderPropertized(cacheDir string) (string, error) {
	store, err := emOpenStore(cacheDir)
	if err != nil {
		return "", fmt.Errorf("emacs propertized: open cache: %w", err)
	}

	segs := emExtractAll(store)
	if len(segs) == 0 {
		return emPropertize("no data", "font-lock-comment-face"), nil
	}

	parts := make([]string, 0, len(segs))
	for _, s := range segs {
		parts = append(parts, emPropertize(s.Text, emStatusFace(s.Status)))
	}
	return strings.Join(parts, " "), nil
}

// emPropertize wraps text in Emacs propertized string format.
// Format: #("text" 0 len (face face-name))
func emPropertize(text, face string) string {
	if text == "" {
		return "#(\"\" 0 0 (face " + face + "))"
	}
	return fmt.Sprintf("#(%q 0 %d (face %s))", text, len(text), face)
}

// emStatusFace returns the Emacs face name for a segment status.
func emStatusFace(status string) string {
	switch status {
	case "ok":
		return "success"
	case "warning":
		return "font-lock-warning-face"
	case "error":
		return "error"
	default:
		return "font-lock-keyword-face"
	}
}
