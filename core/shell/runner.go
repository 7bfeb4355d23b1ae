package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/bs-community/blessing-skin-shell/core/parser"
)

var (
	// ErrCommandNotFound is reported when no program has the command's name.
	ErrCommandNotFound = errors.New("command not found")
	// ErrBusy is returned when dispatching while another command runs.
	ErrBusy = errors.New("a command is already running")
	// ErrHungUp is reported when a program finished without signalling
	// completion.
	ErrHungUp = errors.New("program exited without signalling completion")
	// ErrTimeout is reported when a program exceeded its time limit.
	ErrTimeout = errors.New("program timed out")
	// ErrPanic is reported when a program panicked.
	ErrPanic = errors.New("program panicked")
	// ErrInterrupted is reported when a program was cancelled by the user or
	// because the shell is shutting down.
	ErrInterrupted = errors.New("interrupted")
)

// Conventional exit statuses.
const (
	StatusOK          = 0
	StatusFailure     = 1
	StatusUsage       = 2
	StatusTimeout     = 124
	StatusNotFound    = 127
	StatusInterrupted = 130
)

// showCursor is written after an external program finishes in case it hid
// the cursor.
const showCursor = "\x1b[?25h"

// State is the dispatcher's state.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Result is the outcome of a dispatched command.
type Result struct {
	Name   string
	Status int
	// Err is set when the program couldn't finish normally, e.g. ErrHungUp,
	// ErrTimeout or ErrPanic.
	Err error
}

// Runner dispatches commands, allowing at most one in flight.
//
// Runner isn't safe for concurrent use; it belongs to the goroutine driving
// the shell. Background programs only ever touch their own Completion.
type Runner struct {
	timeout time.Duration
	logger  *log.Logger

	state   State
	current string
	done    chan Result
	cancel  context.CancelFunc
}

// NewRunner creates an idle runner. A positive timeout limits how long
// internal and external programs may run.
func NewRunner(timeout time.Duration, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Runner{timeout: timeout, logger: logger}
}

// State returns whether a command is in flight.
func (r *Runner) State() State {
	return r.state
}

// Current returns the name of the command in flight, if any.
func (r *Runner) Current() string {
	return r.current
}

// Done delivers the result of the background command in flight. It returns
// nil while idle so selecting on it blocks.
func (r *Runner) Done() <-chan Result {
	return r.done
}

// Dispatch runs prog with params expanded against env.Vars. Builtins run to
// completion and their result is returned with async false. Internal and
// external programs are started in the background and their result arrives
// on Done; the runner stays Running until it is passed to finish.
func (r *Runner) Dispatch(ctx context.Context, name string, prog Program, params *parser.Parameters, env *BuiltinEnv) (res Result, async bool, err error) {
	if r.state == Running {
		return Result{}, false, ErrBusy
	}

	r.logger.Printf("running %s (%s)", name, prog.Kind)
	transformer := NewTransformer(env.Vars.Getenv)

	switch prog.Kind {
	case KindBuiltin:
		return r.builtin(name, prog.Builtin, env, transformer.Transform(params)), false, nil

	case KindInternal:
		args := transformer.Transform(params)
		r.start(ctx, name, func(ctx context.Context, done *Completion) {
			prog.Internal(ctx, env.Stdio, args, done)
		})
		return Result{}, true, nil

	case KindExternal:
		args := transformer.Flatten(params)
		r.start(ctx, name, func(ctx context.Context, done *Completion) {
			err := prog.External(ctx, env.Stdio, args)
			env.Stdio.Print(showCursor)
			status, coded := exitStatus(err)
			if err != nil && !coded {
				env.Stdio.Println(err.Error())
			}
			done.Done(status)
		})
		return Result{}, true, nil
	}

	return Result{}, false, fmt.Errorf("%s: unknown program kind %d", name, prog.Kind)
}

func (r *Runner) builtin(name string, fn BuiltinFunc, env *BuiltinEnv, args []Argument) (res Result) {
	r.state, r.current = Running, name
	defer func() {
		r.state, r.current = Idle, ""
		if p := recover(); p != nil {
			res = Result{Name: name, Status: StatusFailure, Err: fmt.Errorf("%w: %v", ErrPanic, p)}
		}
	}()

	return Result{Name: name, Status: fn(env, args)}
}

func (r *Runner) start(ctx context.Context, name string, run func(context.Context, *Completion)) {
	var cancel context.CancelFunc
	if r.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	completion := newCompletion()
	done := make(chan Result, 1)
	r.state, r.current, r.done, r.cancel = Running, name, done, cancel

	go func() {
		defer func() {
			if p := recover(); p != nil {
				completion.Fail(StatusFailure, fmt.Errorf("%w: %v", ErrPanic, p))
			}
			// No-op if the program already signalled.
			completion.Fail(StatusFailure, ErrHungUp)
		}()
		run(ctx, completion)
	}()

	go func() {
		defer cancel()

		var res Result
		select {
		case res = <-completion.ch:
		case <-ctx.Done():
			res = Result{Status: StatusInterrupted, Err: ErrInterrupted}
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				res = Result{Status: StatusTimeout, Err: ErrTimeout}
			}
		}
		res.Name = name
		done <- res
	}()
}

// Interrupt cancels the background command in flight, if any. Its result
// still arrives on Done.
func (r *Runner) Interrupt() {
	if r.cancel != nil {
		r.cancel()
	}
}

// finish returns the runner to Idle after a background result was received.
func (r *Runner) finish() {
	r.state, r.current, r.done, r.cancel = Idle, "", nil, nil
}

// exitStatus maps an external program's error to a status. Errors that carry
// their own exit code have already told the user what went wrong.
func exitStatus(err error) (status int, coded bool) {
	if err == nil {
		return StatusOK, false
	}
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode(), true
	}
	return StatusFailure, false
}
