package shell

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bs-community/blessing-skin-shell/core/parser"
	"github.com/bs-community/blessing-skin-shell/core/vos"
	"github.com/bs-community/blessing-skin-shell/core/vos/vostest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv(term *vostest.Terminal) *BuiltinEnv {
	return &BuiltinEnv{
		Stdio:    NewStdio(term, DefaultPrompt),
		Programs: Programs{},
		Vars:     vos.NewMapEnv(),
		History:  NewHistory(),
		Exit:     func() {},
	}
}

func params(t *testing.T, line string) *parser.Parameters {
	t.Helper()
	return mustParams(t, line)
}

func awaitResult(t *testing.T, r *Runner) Result {
	t.Helper()
	select {
	case res := <-r.Done():
		r.finish()
		return res
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for result")
	}
	return Result{}
}

func TestRunner_builtin(t *testing.T) {
	r := NewRunner(0, nil)
	env := testEnv(vostest.NewTerminal())
	env.Vars.Setenv("v", "x")

	var got []Argument
	var stateDuring State
	prog := NewBuiltin("", func(env *BuiltinEnv, args []Argument) int {
		got = args
		stateDuring = r.State()
		return 3
	})

	res, async, err := r.Dispatch(context.Background(), "b", prog, params(t, "b $v -s"), env)

	require.NoError(t, err)
	assert.False(t, async)
	assert.Equal(t, Result{Name: "b", Status: 3}, res)
	assert.Equal(t, []Argument{Text("x"), Switch{Name: "s"}}, got)
	assert.Equal(t, Running, stateDuring)
	assert.Equal(t, Idle, r.State())
	assert.Nil(t, r.Done())
}

func TestRunner_builtinPanic(t *testing.T) {
	r := NewRunner(0, nil)
	prog := NewBuiltin("", func(env *BuiltinEnv, args []Argument) int {
		panic("boom")
	})

	res, _, err := r.Dispatch(context.Background(), "b", prog, nil, testEnv(vostest.NewTerminal()))

	require.NoError(t, err)
	assert.ErrorIs(t, res.Err, ErrPanic)
	assert.Equal(t, StatusFailure, res.Status)
	assert.Equal(t, Idle, r.State())
}

func TestRunner_internal(t *testing.T) {
	r := NewRunner(0, nil)
	term := vostest.NewTerminal()
	prog := NewInternal("", func(ctx context.Context, stdio *Stdio, args []Argument, done *Completion) {
		stdio.Print(string(args[0].(Text)))
		done.Done(4)
		done.Done(5)
	})

	_, async, err := r.Dispatch(context.Background(), "i", prog, params(t, "i hello"), testEnv(term))
	require.NoError(t, err)
	assert.True(t, async)

	res := awaitResult(t, r)
	assert.Equal(t, Result{Name: "i", Status: 4}, res)
	assert.Equal(t, "hello", term.String())
	assert.Equal(t, Idle, r.State())
}

func TestRunner_exclusive(t *testing.T) {
	r := NewRunner(0, nil)
	release := make(chan struct{})
	started := 0
	prog := NewInternal("", func(ctx context.Context, stdio *Stdio, args []Argument, done *Completion) {
		<-release
		done.Done(0)
	})
	env := testEnv(vostest.NewTerminal())

	_, _, err := r.Dispatch(context.Background(), "first", prog, nil, env)
	require.NoError(t, err)
	started++

	for _, kind := range []Program{prog, NewBuiltin("", func(*BuiltinEnv, []Argument) int { return 0 })} {
		_, _, err = r.Dispatch(context.Background(), "second", kind, nil, env)
		if err == nil {
			started++
		}
		assert.ErrorIs(t, err, ErrBusy)
	}
	assert.Equal(t, 1, started)
	assert.Equal(t, "first", r.Current())

	close(release)
	assert.Equal(t, "first", awaitResult(t, r).Name)

	_, _, err = r.Dispatch(context.Background(), "third", prog, nil, env)
	assert.NoError(t, err)
	awaitResult(t, r)
}

func TestRunner_hungUp(t *testing.T) {
	r := NewRunner(0, nil)
	prog := NewInternal("", func(ctx context.Context, stdio *Stdio, args []Argument, done *Completion) {})

	_, _, err := r.Dispatch(context.Background(), "i", prog, nil, testEnv(vostest.NewTerminal()))
	require.NoError(t, err)

	res := awaitResult(t, r)
	assert.ErrorIs(t, res.Err, ErrHungUp)
	assert.Equal(t, StatusFailure, res.Status)
}

func TestRunner_internalPanic(t *testing.T) {
	r := NewRunner(0, nil)
	prog := NewInternal("", func(ctx context.Context, stdio *Stdio, args []Argument, done *Completion) {
		panic("boom")
	})

	_, _, err := r.Dispatch(context.Background(), "i", prog, nil, testEnv(vostest.NewTerminal()))
	require.NoError(t, err)

	assert.ErrorIs(t, awaitResult(t, r).Err, ErrPanic)
}

func TestRunner_timeout(t *testing.T) {
	r := NewRunner(10*time.Millisecond, nil)
	prog := NewInternal("", func(ctx context.Context, stdio *Stdio, args []Argument, done *Completion) {
		time.Sleep(time.Second)
		done.Done(0)
	})

	_, _, err := r.Dispatch(context.Background(), "slow", prog, nil, testEnv(vostest.NewTerminal()))
	require.NoError(t, err)

	res := awaitResult(t, r)
	assert.ErrorIs(t, res.Err, ErrTimeout)
	assert.Equal(t, StatusTimeout, res.Status)
}

func TestRunner_Interrupt(t *testing.T) {
	r := NewRunner(0, nil)
	prog := NewInternal("", func(ctx context.Context, stdio *Stdio, args []Argument, done *Completion) {
		<-ctx.Done()
		done.Done(0)
	})

	_, _, err := r.Dispatch(context.Background(), "wait", prog, nil, testEnv(vostest.NewTerminal()))
	require.NoError(t, err)
	r.Interrupt()

	res := awaitResult(t, r)
	assert.Equal(t, "wait", res.Name)
	if res.Err != nil {
		assert.ErrorIs(t, res.Err, ErrInterrupted)
		assert.Equal(t, StatusInterrupted, res.Status)
	}
}

type exitError int

func (e exitError) Error() string { return "exit" }
func (e exitError) ExitCode() int { return int(e) }

func TestRunner_external(t *testing.T) {
	cases := map[string]struct {
		err        error
		wantStatus int
		wantOutput string
	}{
		"success": {
			wantStatus: 0,
			wantOutput: "-a --b=c d" + showCursor,
		},
		"plain-error": {
			err:        errors.New("went wrong"),
			wantStatus: 1,
			wantOutput: "-a --b=c d" + showCursor + "went wrong\r\n",
		},
		"exit-code": {
			err:        exitError(42),
			wantStatus: 42,
			wantOutput: "-a --b=c d" + showCursor,
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			r := NewRunner(0, nil)
			term := vostest.NewTerminal()
			prog := NewExternal("", func(ctx context.Context, stdio *Stdio, args []string) error {
				stdio.Printf("%s %s %s", args[0], args[1], args[2])
				return tc.err
			})

			_, async, err := r.Dispatch(context.Background(), "x", prog, params(t, "x -a --b=c d"), testEnv(term))
			require.NoError(t, err)
			assert.True(t, async)

			res := awaitResult(t, r)
			assert.Equal(t, tc.wantStatus, res.Status)
			assert.NoError(t, res.Err)
			assert.Equal(t, tc.wantOutput, term.String())
		})
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "internal", KindInternal.String())
}
