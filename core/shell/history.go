package shell

import "strings"

// History is an append-only log of committed lines with a browsing cursor.
//
// The cursor sits in [0, Len()]; Len() means "not browsing".
type History struct {
	entries []string
	cursor  int
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{}
}

// Commit appends line and stops browsing.
func (h *History) Commit(line string) {
	h.entries = append(h.entries, line)
	h.cursor = len(h.entries)
}

// Up moves to the previous entry, staying on the oldest one, and returns
// it. It returns false if the history is empty.
func (h *History) Up() (string, bool) {
	if h.cursor > 0 {
		h.cursor--
	}
	return h.current()
}

// Down moves to the next entry and returns it. It returns false once the
// cursor moves past the newest entry, meaning the line should be blank.
func (h *History) Down() (string, bool) {
	if h.cursor < len(h.entries) {
		h.cursor++
	}
	return h.current()
}

func (h *History) current() (string, bool) {
	if h.cursor >= len(h.entries) {
		return "", false
	}
	return h.entries[h.cursor], true
}

// Find returns the newest entry starting with prefix.
func (h *History) Find(prefix string) (string, bool) {
	for i := len(h.entries) - 1; i >= 0; i-- {
		if strings.HasPrefix(h.entries[i], prefix) {
			return h.entries[i], true
		}
	}
	return "", false
}

// Len returns the number of committed entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Cursor returns the browsing cursor.
func (h *History) Cursor() int {
	return h.cursor
}

// Entries returns a copy of the committed entries, oldest first.
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}
