package preset

// Surface width thresholds for auto-selection.
const (
	prNarrowMaxCols = 50
	prWideMinCols   = 140
)

// SelectForWidth auto-selects a preset name based on surface width:
//   - Narrow (<50 cols): "minimal"
//   - Medium: "main"
//   - Wide (>=140 cols): "infra"
//
// Hosts that assign presets per surface kind should bypass this and call
// Registry.Get directly; this is the fallback for "auto" in config.
func SelectForWidth(width int) string {
	switch {
	case width < prNarrowMaxCols:
		return "minimal"
	case width >= prWideMinCols:
		return "infra"
	default:
		return "main"
	}
}

// Select resolves a configured preset name, expanding "auto" (or empty) via
// SelectForWidth.
func Select(configured string, width int) string {
	if configured == "" || configured == "auto" {
		return SelectForWidth(width)
	}
	return configured
}
