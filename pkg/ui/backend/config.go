package backend

// TermConfig controls how a backend sets up the terminal.
type TermConfig struct {
	HideCursor    bool `yaml:"hide_cursor"`
	MouseCapture  bool `yaml:"mouse_capture"`
	CtrlCQuits    bool `yaml:"ctrl_c_quits"`
	CtrlZSwitches bool `yaml:"ctrl_z_switches"`
	UseAltScreen  bool `yaml:"use_alt_screen"`
}

// DefaultTermConfig returns the standard terminal setup.
func DefaultTermConfig() TermConfig {
	return TermConfig{
		HideCursor:    true,
		MouseCapture:  true,
		CtrlCQuits:    true,
		CtrlZSwitches: false,
		UseAltScreen:  true,
	}
}
