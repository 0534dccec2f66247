package preset

// prBuiltins returns the built-in preset definitions.
func prBuiltins() []Preset {
	return []Preset{
		prMainPreset(),
		prMinimalPreset(),
		prProjectPreset(),
		prVCPreset(),
		prInfraPreset(),
	}
}

// prMainPreset is the full default layout.
func prMainPreset() Preset {
	return Preset{
		Name:        "main",
		Description: "Full layout with buffer, position, VCS, checker and infra segments",
		Left:        []string{"buffer-state", "buffer-id", "selection", "search", "position"},
		Right:       []string{"vc", "checker", "encoding", "mode", "clock"},
	}
}

// prMinimalPreset shows just the buffer identity and mode.
func prMinimalPreset() Preset {
	return Preset{
		Name:        "minimal",
		Description: "Buffer name on the left, major mode on the right",
		Left:        []string{"buffer-id"},
		Right:       []string{"mode"},
	}
}

// prProjectPreset is for project/overview surfaces that have no file.
func prProjectPreset() Preset {
	return Preset{
		Name:        "project",
		Description: "Project overview surfaces: name and clock only",
		Left:        []string{"buffer-id"},
		Right:       []string{"clock"},
	}
}

// prVCPreset emphasizes version-control state.
func prVCPreset() Preset {
	return Preset{
		Name:        "vc",
		Description: "Version-control centric layout",
		Left:        []string{"buffer-state", "buffer-id", "vc"},
		Right:       []string{"checker", "position", "mode"},
	}
}

// prInfraPreset adds the poller-fed infrastructure segments.
func prInfraPreset() Preset {
	return Preset{
		Name:        "infra",
		Description: "Buffer identity plus system, Kubernetes and tailnet status",
		Left:        []string{"buffer-id", "position"},
		Right:       []string{"system", "kube", "tailnet", "clock"},
	}
}
