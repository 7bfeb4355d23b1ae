// Package vostest holds fakes for testing code that draws on a vos.Terminal.
package vostest

import (
	"bytes"
	"sync"

	"github.com/bs-community/blessing-skin-shell/core/vos"
)

// Terminal is an in-memory vos.Terminal. Clear wipes everything written so
// far so String shows what a user would still see on screen.
type Terminal struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	all    bytes.Buffer
	clears int
}

var _ vos.Terminal = (*Terminal)(nil)

// NewTerminal creates an empty recording terminal.
func NewTerminal() *Terminal {
	return &Terminal{}
}

// Write implements io.Writer.
func (t *Terminal) Write(b []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.all.Write(b)
	return t.buf.Write(b)
}

// Clear implements vos.Terminal.Clear.
func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clears++
	t.buf.Reset()
}

// String returns the output written since the last Clear.
func (t *Terminal) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf.String()
}

// History returns every byte ever written, ignoring clears.
func (t *Terminal) History() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.all.String()
}

// Clears returns how many times Clear was called.
func (t *Terminal) Clears() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.clears
}

// Reset forgets all output and clears.
func (t *Terminal) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf.Reset()
	t.all.Reset()
	t.clears = 0
}
