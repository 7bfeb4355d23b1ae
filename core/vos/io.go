package vos

import (
	"io"
	"sync"
)

// ClearSequence homes the cursor and erases the display.
const ClearSequence = "\x1b[H\x1b[2J"

// Terminal is the display a shell draws on. Writes carry raw terminal bytes
// including escape sequences.
type Terminal interface {
	io.Writer

	// Clear erases the whole display.
	Clear()
}

// NewWriterTerminal adapts w to a Terminal. Clearing writes ClearSequence.
// If w is nil output is discarded.
func NewWriterTerminal(w io.Writer) *WriterTerminal {
	if w == nil {
		w = &devNull{}
	}
	return &WriterTerminal{w: w}
}

// NewNullTerminal creates a /dev/null style terminal, writes are discarded.
func NewNullTerminal() Terminal {
	return NewWriterTerminal(nil)
}

// WriterTerminal is a Terminal backed by an io.Writer.
//
// Writes are serialized so a background program and the prompt never
// interleave within a single escape sequence.
type WriterTerminal struct {
	mu sync.Mutex
	w  io.Writer
}

var _ Terminal = (*WriterTerminal)(nil)

// Write implements io.Writer.
func (t *WriterTerminal) Write(b []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.w.Write(b)
}

// Clear implements Terminal.Clear.
func (t *WriterTerminal) Clear() {
	// Write errors surface on the next regular write.
	_, _ = io.WriteString(t, ClearSequence)
}

// devNull discards writes.
type devNull struct{}

var _ io.Writer = (*devNull)(nil)

func (*devNull) Write(b []byte) (int, error) {
	return len(b), nil
}
