package theme

// thRegisterBuiltins registers all built-in themes in the registry.
func thRegisterBuiltins() {
	for _, t := range []Theme{
		thDefaultTheme(),
		thGruvboxTheme(),
		thNordTheme(),
		thDraculaTheme(),
		thTokyoNightTheme(),
	} {
		thRegister(t)
	}
}

// thDefaultTheme returns the dark neutral theme with purple accent.
func thDefaultTheme() Theme {
	return Theme{
		Name:       "default",
		ActiveBG:   "#2d2d3a",
		ActiveFG:   "#d4d4d4",
		InactiveBG: "#1e1e1e",
		InactiveFG: "#6b6b6b",

		Accent:    "#7C3AED",
		Highlight: "#f9e2af",
		Dim:       "#6b6b6b",

		StatusOK:    "#4ec970",
		StatusWarn:  "#e5c07b",
		StatusError: "#e06c75",

		VCClean:    "#4ec970",
		VCEdited:   "#e5c07b",
		VCConflict: "#e06c75",

		BarActive:   "#7C3AED",
		BarInactive: "#3e3e3e",
	}
}

// thGruvboxTheme returns the warm retro Gruvbox theme.
func thGruvboxTheme() Theme {
	return Theme{
		Name:       "gruvbox",
		ActiveBG:   "#3c3836",
		ActiveFG:   "#ebdbb2",
		InactiveBG: "#282828",
		InactiveFG: "#928374",

		Accent:    "#fe8019",
		Highlight: "#fabd2f",
		Dim:       "#928374",

		StatusOK:    "#b8bb26",
		StatusWarn:  "#fabd2f",
		StatusError: "#fb4934",

		VCClean:    "#b8bb26",
		VCEdited:   "#fabd2f",
		VCConflict: "#fb4934",

		BarActive:   "#fe8019",
		BarInactive: "#504945",
	}
}

// thNordTheme returns the cool arctic Nord theme.
func thNordTheme() Theme {
	return Theme{
		Name:       "nord",
		ActiveBG:   "#3b4252",
		ActiveFG:   "#eceff4",
		InactiveBG: "#2e3440",
		InactiveFG: "#616e88",

		Accent:    "#88c0d0",
		Highlight: "#ebcb8b",
		Dim:       "#616e88",

		StatusOK:    "#a3be8c",
		StatusWarn:  "#ebcb8b",
		StatusError: "#bf616a",

		VCClean:    "#a3be8c",
		VCEdited:   "#ebcb8b",
		VCConflict: "#bf616a",

		BarActive:   "#88c0d0",
		BarInactive: "#434c5e",
	}
}

// thDraculaTheme returns the high-contrast Dracula theme.
func thDraculaTheme() Theme {
	return Theme{
		Name:       "dracula",
		ActiveBG:   "#44475a",
		ActiveFG:   "#f8f8f2",
		InactiveBG: "#282a36",
		InactiveFG: "#6272a4",

		Accent:    "#bd93f9",
		Highlight: "#f1fa8c",
		Dim:       "#6272a4",

		StatusOK:    "#50fa7b",
		StatusWarn:  "#f1fa8c",
		StatusError: "#ff5555",

		VCClean:    "#50fa7b",
		VCEdited:   "#f1fa8c",
		VCConflict: "#ff5555",

		BarActive:   "#bd93f9",
		BarInactive: "#44475a",
	}
}

// thTokyoNightTheme returns the deep blue Tokyo Night theme.
func thTokyoNightTheme() Theme {
	return Theme{
		Name:       "tokyo-night",
		ActiveBG:   "#292e42",
		ActiveFG:   "#c0caf5",
		InactiveBG: "#1a1b26",
		InactiveFG: "#565f89",

		Accent:    "#7aa2f7",
		Highlight: "#e0af68",
		Dim:       "#565f89",

		StatusOK:    "#9ece6a",
		StatusWarn:  "#e0af68",
		StatusError: "#f7768e",

		VCClean:    "#9ece6a",
		VCEdited:   "#e0af68",
		VCConflict: "#f7768e",

		BarActive:   "#7aa2f7",
		BarInactive: "#3b4261",
	}
}
