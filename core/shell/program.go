package shell

import (
	"context"
	"sort"
	"sync"

	"github.com/bs-community/blessing-skin-shell/core/vos"
)

// Kind is how a program is run.
type Kind int

const (
	// KindBuiltin programs run synchronously with access to the shell's
	// state.
	KindBuiltin Kind = iota
	// KindInternal programs run in the background and report through a
	// Completion.
	KindInternal
	// KindExternal programs receive flat string arguments and finish when
	// their function returns.
	KindExternal
)

func (k Kind) String() string {
	switch k {
	case KindBuiltin:
		return "builtin"
	case KindInternal:
		return "internal"
	case KindExternal:
		return "external"
	}
	return "unknown"
}

// BuiltinEnv is the shell state handed to a builtin for the duration of
// one call.
type BuiltinEnv struct {
	Stdio    *Stdio
	Programs Programs
	Vars     vos.VEnv
	History  *History

	// Exit asks the shell to stop reading input once the builtin returns.
	Exit func()
}

// BuiltinFunc runs a builtin and returns its exit status.
type BuiltinFunc func(env *BuiltinEnv, args []Argument) int

// InternalFunc runs an internal program. It must call done.Done before
// returning; returning without doing so is reported as ErrHungUp.
type InternalFunc func(ctx context.Context, stdio *Stdio, args []Argument, done *Completion)

// ExternalFunc runs a host supplied program. A nil error is status 0. An
// error with an ExitCode() int method supplies its own status silently, any
// other error is printed and is status 1.
type ExternalFunc func(ctx context.Context, stdio *Stdio, args []string) error

// Program describes a runnable command. Exactly one of the functions is set,
// matching Kind.
type Program struct {
	Kind     Kind
	Builtin  BuiltinFunc
	Internal InternalFunc
	External ExternalFunc

	// Short is a one line description shown by help.
	Short string
}

// NewBuiltin creates a builtin program.
func NewBuiltin(short string, fn BuiltinFunc) Program {
	return Program{Kind: KindBuiltin, Builtin: fn, Short: short}
}

// NewInternal creates an internal program.
func NewInternal(short string, fn InternalFunc) Program {
	return Program{Kind: KindInternal, Internal: fn, Short: short}
}

// NewExternal creates an external program.
func NewExternal(short string, fn ExternalFunc) Program {
	return Program{Kind: KindExternal, External: fn, Short: short}
}

// Programs is the registry of commands by name.
type Programs map[string]Program

// Has reports whether name is registered.
func (p Programs) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// Lookup returns the program registered as name.
func (p Programs) Lookup(name string) (Program, bool) {
	prog, ok := p[name]
	return prog, ok
}

// Register adds or replaces a program.
func (p Programs) Register(name string, prog Program) {
	p[name] = prog
}

// Names returns the sorted names of all programs.
func (p Programs) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a shallow copy of the registry.
func (p Programs) Clone() Programs {
	out := make(Programs, len(p))
	for name, prog := range p {
		out[name] = prog
	}
	return out
}

// Completion is the one-shot signal an internal program finishes with. Only
// the first call to Done has any effect.
type Completion struct {
	once sync.Once
	ch   chan Result
}

func newCompletion() *Completion {
	return &Completion{ch: make(chan Result, 1)}
}

// Done reports the program's exit status.
func (c *Completion) Done(status int) {
	c.send(Result{Status: status})
}

// Fail reports the program failed with err and status.
func (c *Completion) Fail(status int, err error) {
	c.send(Result{Status: status, Err: err})
}

func (c *Completion) send(res Result) {
	c.once.Do(func() {
		c.ch <- res
	})
}
