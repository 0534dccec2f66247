// Package theme defines the color palettes used to style the modeline.
// Themes are registered by name; lookups fall back to the default theme so
// a misspelled name in config degrades to sane colors instead of failing.
package theme

import (
	"sort"
	"strings"
	"sync"
)

// Theme defines the complete modeline color palette.
type Theme struct {
	Name string

	// Base faces applied to the whole line.
	ActiveBG   string // hex color e.g. "#1a1b26"
	ActiveFG   string
	InactiveBG string
	InactiveFG string

	// Emphasis
	Accent    string // buffer name, current match count
	Highlight string // selection info, prompts
	Dim       string // secondary text (position percent, encoding)

	// Status colors
	StatusOK    string // green - checker clean, peers up
	StatusWarn  string // yellow - warnings present
	StatusError string // red - errors present

	// Version-control states
	VCClean    string
	VCEdited   string
	VCConflict string

	// Bar decoration block
	BarActive   string
	BarInactive string
}

var (
	mu       sync.RWMutex
	registry = map[string]Theme{}
)

func init() {
	thRegisterBuiltins()
}

// Get returns a named theme, falling back to Default if not found.
func Get(name string) Theme {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := registry[strings.ToLower(name)]; ok {
		return t
	}
	return registry["default"]
}

// Names returns all available theme names sorted alphabetically.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Install adds a theme to the registry under its lowercase name,
// overwriting any existing entry. Hosts use it to register adapted or
// programmatically built palettes.
func Install(t Theme) {
	thRegister(t)
}

// thRegister adds a theme to the registry under its lowercase name.
// Registering an existing name overwrites it.
func thRegister(t Theme) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(t.Name)] = t
}
