package shell

import "strings"

// SplitKeys breaks a chunk read from a terminal into input events: escape
// sequences and control characters stand alone, printable runs stay
// together.
func SplitKeys(data string) []string {
	var events []string
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			events = append(events, text.String())
			text.Reset()
		}
	}

	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case c == keyEscape[0]:
			flush()
			n := escapeLen(data[i:])
			events = append(events, data[i:i+n])
			i += n
		case c < ' ' || c == keyBackspace[0]:
			flush()
			events = append(events, data[i:i+1])
			i++
		default:
			text.WriteByte(c)
			i++
		}
	}
	flush()
	return events
}

// escapeLen returns the length of the escape sequence at the start of s.
func escapeLen(s string) int {
	if len(s) < 2 {
		return len(s)
	}
	switch s[1] {
	case '[':
		// CSI: parameters then a final byte in 0x40-0x7e.
		for i := 2; i < len(s); i++ {
			if s[i] >= 0x40 && s[i] <= 0x7e {
				return i + 1
			}
		}
		return len(s)
	case 'O':
		if len(s) < 3 {
			return len(s)
		}
		return 3
	default:
		return 1
	}
}
