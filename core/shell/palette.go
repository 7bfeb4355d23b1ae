package shell

import "github.com/fatih/color"

// Colors are forced on, the terminal on the other end decides what to do with
// them.
var (
	colorProgram    = newColor(color.FgGreen)
	colorUnknown    = newColor(color.FgRed)
	colorString     = newColor(color.FgYellow)
	colorVariable   = color256(93)
	colorSwitch     = color256(39)
	colorComment    = color256(244)
	colorSuggestion = color256(8)
	colorPrompt     = newColor(color.FgMagenta)
	colorGreeting   = color256(127)
	colorWarning    = newColor(color.FgYellow)

	colorSuccess = newColor(color.FgGreen)
	colorInfo    = newColor(color.FgBlue)
	colorError   = newColor(color.FgRed)
)

func newColor(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

// color256 selects from the 256 color palette with ESC[38;5;Nm.
func color256(n int) *color.Color {
	return newColor(38, 5, color.Attribute(n))
}

// Symbols are the colored status glyphs programs prefix messages with.
var Symbols = struct {
	Success string
	Info    string
	Warning string
	Error   string
}{
	Success: colorSuccess.Sprint("✔"),
	Info:    colorInfo.Sprint("ℹ"),
	Warning: colorWarning.Sprint("⚠"),
	Error:   colorError.Sprint("✖"),
}
