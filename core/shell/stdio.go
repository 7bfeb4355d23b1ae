package shell

import (
	"fmt"
	"io"

	"github.com/bs-community/blessing-skin-shell/core/vos"
	"github.com/mattn/go-runewidth"
)

const (
	// resetLine moves to the first column and erases the line.
	resetLine = "\x1b[1000D\x1b[0K"
	// newline is written raw, terminals in raw mode don't translate "\n".
	newline = "\r\n"
)

// DefaultPrompt is drawn before the line being edited.
const DefaultPrompt = "❯ "

// Stdio is the output side of the shell that programs write to.
type Stdio struct {
	term   vos.Terminal
	prompt string
}

var _ io.Writer = (*Stdio)(nil)

// NewStdio wraps term, drawing prompt before each line.
func NewStdio(term vos.Terminal, prompt string) *Stdio {
	return &Stdio{term: term, prompt: prompt}
}

// Write implements io.Writer.
func (s *Stdio) Write(b []byte) (int, error) {
	return s.term.Write(b)
}

// Print writes text as is.
func (s *Stdio) Print(text string) {
	// Write errors come from a hung up client and there's nobody left to
	// tell.
	_, _ = io.WriteString(s.term, text)
}

// Println writes text followed by CRLF.
func (s *Stdio) Println(text string) {
	s.Print(text + newline)
}

// Printf formats according to a format specifier and writes the result.
func (s *Stdio) Printf(format string, a ...interface{}) {
	s.Print(fmt.Sprintf(format, a...))
}

// Warn writes a yellow warning line.
func (s *Stdio) Warn(text string) {
	s.Println(colorWarning.Sprint(text))
}

// Reset moves to the start of the line and erases it.
func (s *Stdio) Reset() {
	s.Print(resetLine)
}

// Prompt draws the colored prompt.
func (s *Stdio) Prompt() {
	s.Print(colorPrompt.Sprint(s.prompt))
}

// PromptWidth is the number of columns the prompt takes up.
func (s *Stdio) PromptWidth() int {
	return runewidth.StringWidth(s.prompt)
}

// Clear wipes the terminal.
func (s *Stdio) Clear() {
	s.term.Clear()
}
