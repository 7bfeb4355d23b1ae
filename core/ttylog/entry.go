package ttylog

// FD identifies the stream an event was recorded on.
type FD int

const (
	FDStdin FD = iota
	FDStdout
	FDStderr
)

func (fd FD) String() string {
	switch fd {
	case FDStdin:
		return "stdin"
	case FDStdout:
		return "stdout"
	case FDStderr:
		return "stderr"
	default:
		return "unknown"
	}
}

// Entry is a single recorded event.
type Entry struct {
	TimestampMicros int64
	FD              FD
	Data            []byte

	// Close marks the end of the session; Data is empty.
	Close bool
}
