package commands

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/bs-community/blessing-skin-shell/core/shell"
	getopt "github.com/pborman/getopt/v2"
)

// AllPrograms holds every program that doesn't depend on the host.
var AllPrograms = make(shell.Programs)

func addBuiltin(name, short string, fn shell.BuiltinFunc) {
	mustAdd(name, shell.NewBuiltin(short, fn))
}

func addInternal(name, short string, fn shell.InternalFunc) {
	mustAdd(name, shell.NewInternal(short, fn))
}

func mustAdd(name string, prog shell.Program) {
	if AllPrograms.Has(name) {
		panic(fmt.Sprintf("program %q registered twice", name))
	}
	AllPrograms.Register(name, prog)
}

// Options holds the host specific settings of the default programs.
type Options struct {
	// Hostname is reported by hostname and uname -n.
	Hostname string

	// ExternalCommands maps program names to host command lines.
	ExternalCommands map[string]string
}

// NewRegistry returns a fresh registry with all programs, including the
// host dependent ones.
func NewRegistry(opts Options) (shell.Programs, error) {
	programs := AllPrograms.Clone()

	utsname := HostUtsname(opts.Hostname)
	programs.Register("hostname", shell.NewExternal("Show the system's host name.", Hostname(utsname.Nodename)))
	programs.Register("uname", shell.NewExternal("Print system information.", Uname(utsname)))

	for name, commandLine := range opts.ExternalCommands {
		fn, err := HostCommand(commandLine)
		if err != nil {
			return nil, fmt.Errorf("external command %q: %w", name, err)
		}
		programs.Register(name, shell.NewExternal(fmt.Sprintf("Run %q on the host.", commandLine), fn))
	}

	return programs, nil
}

// BytesToHuman formats a byte count with an SI suffix. curl uses it to
// report how much of a body arrived before a transfer failed.
func BytesToHuman(bytes int64) string {
	for _, e := range []struct {
		unit  string
		power int64
	}{
		{"P", 1e15},
		{"T", 1e12},
		{"G", 1e9},
		{"M", 1e6},
		{"K", 1e3},
	} {
		quotient := bytes / e.power
		switch {
		case quotient == 0:
			continue
		case quotient > 10:
			return fmt.Sprintf("%d%s", quotient, e.unit)
		default:
			return fmt.Sprintf("%0.1f%s", float64(bytes)/float64(e.power), e.unit)
		}
	}

	return fmt.Sprintf("%d", bytes)
}

// SimpleCommand parses getopt style flags for programs that receive flat
// string arguments.
type SimpleCommand struct {
	// Use holds a one line usage string
	Use string
	// Short holds a one line description of the command.
	Short string
	// ShowHelp sets whether help is displayed or not.
	// If this is non-nil when Run() is called, then the default help flag isn't
	// added.
	ShowHelp *bool
	// NeverBail ignores flag errors and always runs the callback.
	NeverBail bool

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}

	return s.flags
}

// PrintHelp writes help for the command to the given writer.
func (s *SimpleCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	s.Flags().PrintOptions(w)
}

// Run parses args, which don't include the program name, and calls the
// callback if parsing was successful. Output written to w has its line
// endings fixed up for a raw terminal.
func (s *SimpleCommand) Run(w io.Writer, name string, args []string, callback func(w io.Writer) error) error {
	w = newCRLFWriter(w)
	opts := s.Flags()

	// Add help flag if not overridden.
	if s.ShowHelp == nil {
		s.ShowHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	err := opts.Getopt(append([]string{name}, args...), nil)
	if err != nil && !s.NeverBail {
		fmt.Fprintf(w, "error: %s\n\n", err)
		s.PrintHelp(w)
		return ExitStatus(1)
	}

	if *s.ShowHelp {
		s.PrintHelp(w)
		return nil
	}

	return callback(w)
}

// ExitStatus is an error that only sets a program's exit status.
type ExitStatus int

func (e ExitStatus) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

// ExitCode returns the status.
func (e ExitStatus) ExitCode() int {
	return int(e)
}

// crlfWriter turns bare "\n" into "\r\n"; terminals in raw mode don't.
type crlfWriter struct {
	w      io.Writer
	lastCR bool
}

func newCRLFWriter(w io.Writer) io.Writer {
	if cw, ok := w.(*crlfWriter); ok {
		return cw
	}
	return &crlfWriter{w: w}
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	var buf bytes.Buffer
	buf.Grow(len(p))
	for _, b := range p {
		if b == '\n' && !c.lastCR {
			buf.WriteByte('\r')
		}
		buf.WriteByte(b)
		c.lastCR = b == '\r'
	}
	if _, err := c.w.Write(buf.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}

// toCRLF converts the line endings of s for a raw terminal.
func toCRLF(s string) string {
	var sb strings.Builder
	// strings.Builder never fails.
	_, _ = newCRLFWriter(&sb).Write([]byte(s))
	return sb.String()
}
