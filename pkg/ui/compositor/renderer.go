package compositor

// Renderer receives the command stream produced by a surface diff.
// Implementations may buffer; every method can report a writer failure.
type Renderer interface {
	Begin() error
	End() error

	MoveTo(pos Pos2) error
	WriteString(s string) error

	SetFG(c Rgba) error
	SetBG(c Rgba) error
	SetAttr(a Attribute) error
	ResetFG() error
	ResetBG() error
	ResetAttr() error

	ClearScreen() error
	SetTitle(title string) error
	SwitchToAltScreen() error
	SwitchToMainScreen() error
}
