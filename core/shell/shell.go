package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bs-community/blessing-skin-shell/core/parser"
	"github.com/bs-community/blessing-skin-shell/core/vos"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mattn/go-runewidth"
)

// DefaultGreeting is shown once when the shell starts.
const DefaultGreeting = "Welcome to Blessing Skin Shell!"

// StatusVar holds the exit status of the last command.
const StatusVar = "?"

// Input events.
const (
	keyEnter     = "\r"
	keyNewline   = "\n"
	keyEscape    = "\x1b"
	keyBackspace = "\x7f"
	keyLeft      = "\x1b[D"
	keyRight     = "\x1b[C"
	keyUp        = "\x1b[A"
	keyDown      = "\x1b[B"
	keyDelete    = "\x1b[3~"
	keyHome      = "\x1b[H"
	keyEnd       = "\x1b[F"
	keyInterrupt = "\x03"
	keyEOF       = "\x04"
)

// Option configures a Shell.
type Option func(*Shell)

// WithPrompt sets the prompt drawn before the line.
func WithPrompt(prompt string) Option {
	return func(s *Shell) {
		s.prompt = prompt
	}
}

// WithGreeting sets the line shown on start, empty disables it.
func WithGreeting(greeting string) Option {
	return func(s *Shell) {
		s.greeting = greeting
	}
}

// WithTimeout limits how long background programs may run.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Shell) {
		s.timeout = timeout
	}
}

// WithLogger sets where the shell logs dispatches and failures.
func WithLogger(logger *log.Logger) Option {
	return func(s *Shell) {
		s.logger = logger
	}
}

// WithVariables sets the initial variable store.
func WithVariables(vars vos.VEnv) Option {
	return func(s *Shell) {
		s.vars = vars
	}
}

// Shell ties the line editor, history, renderer and runner to a terminal.
//
// A Shell is driven from a single goroutine: either call Input directly and
// Wait for background commands, or hand input events to Run.
type Shell struct {
	prompt   string
	greeting string
	timeout  time.Duration
	logger   *log.Logger

	stdio    *Stdio
	buffer   *Buffer
	history  *History
	programs Programs
	vars     vos.VEnv
	runner   *Runner

	ctx        context.Context
	suggestion string
	exited     bool
}

// New creates a shell drawing on term, greets the user and shows the prompt.
func New(term vos.Terminal, programs Programs, opts ...Option) *Shell {
	s := &Shell{
		prompt:   DefaultPrompt,
		greeting: DefaultGreeting,
		buffer:   NewBuffer(),
		history:  NewHistory(),
		programs: programs,
		ctx:      context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = log.New(io.Discard, "", 0)
	}
	if s.programs == nil {
		s.programs = make(Programs)
	}
	if s.vars == nil {
		s.vars = vos.NewMapEnv()
	}
	s.stdio = NewStdio(term, s.prompt)
	s.runner = NewRunner(s.timeout, s.logger)

	if s.greeting != "" {
		s.stdio.Println(colorGreeting.Sprint(s.greeting))
	}
	s.stdio.Prompt()
	return s
}

// Input handles one input event: a key, an escape sequence or pasted text.
//
// While a command runs, edits still apply to the line but nothing is drawn
// and submissions are discarded.
func (s *Shell) Input(data string) {
	if s.exited {
		return
	}
	running := s.runner.State() == Running

	switch data {
	case keyEnter, keyNewline:
		if running {
			s.logger.Printf("discarding submission while %s runs", s.runner.Current())
			return
		}
		s.submit()
	case keyEscape:
	case keyBackspace:
		s.buffer.DeleteLeft()
	case keyLeft:
		s.buffer.MoveLeft()
	case keyRight:
		if s.buffer.Cursor() < s.buffer.Len() {
			s.buffer.MoveRight()
		} else if s.suggestion != "" {
			s.buffer.Insert(s.suggestion)
			s.suggestion = ""
		}
	case keyUp:
		if entry, ok := s.history.Up(); ok {
			s.buffer.Set(entry)
		}
	case keyDown:
		if entry, ok := s.history.Down(); ok {
			s.buffer.Set(entry)
		} else {
			s.buffer.Clear()
		}
	case keyDelete:
		s.buffer.DeleteRight()
	case keyHome:
		s.buffer.MoveToStart()
	case keyEnd:
		s.buffer.MoveToEnd()
	case keyInterrupt:
		if running {
			s.runner.Interrupt()
			return
		}
		s.stdio.Print("^C" + newline)
		s.buffer.Clear()
	case keyEOF:
		if running || !s.buffer.IsEmpty() {
			return
		}
		s.stdio.Print(newline)
		s.exited = true
		return
	case `"`, "'":
		s.buffer.InsertWithoutMoving(data + data)
		s.buffer.MoveRight()
	default:
		// Unknown escape sequences would corrupt the line.
		if strings.HasPrefix(data, keyEscape) {
			return
		}
		s.buffer.Insert(data)
	}

	if s.runner.State() == Idle && !s.exited {
		s.render()
	}
}

// render redraws the whole line in place.
func (s *Shell) render() {
	s.stdio.Reset()
	s.draw()
}

// draw writes the prompt, the highlighted line and any history suggestion,
// then puts the cursor back where it belongs.
func (s *Shell) draw() {
	line := s.buffer.String()
	s.stdio.Prompt()
	s.stdio.Print(RenderLine(line, s.programs))

	s.suggestion = ""
	if line != "" {
		if entry, ok := s.history.Find(line); ok {
			s.suggestion = strings.TrimPrefix(entry, line)
		}
	}
	if s.suggestion != "" {
		s.stdio.Print(colorSuggestion.Sprint(s.suggestion))
	}

	column := s.stdio.PromptWidth() + runewidth.StringWidth(s.buffer.BeforeCursor())
	s.stdio.Printf("\x1b[1000D\x1b[%dC", column)
}

func (s *Shell) submit() {
	line := s.buffer.String()

	// Redraw without the suggestion.
	s.stdio.Reset()
	s.stdio.Prompt()
	s.stdio.Print(RenderLine(line, s.programs))
	if !strings.HasPrefix(line, "clear") {
		s.stdio.Print(newline)
	}

	s.buffer.Clear()
	s.suggestion = ""
	if strings.TrimSpace(line) == "" {
		return
	}
	s.history.Commit(line)
	s.Execute(line)
}

// Execute parses line and dispatches it without touching the edit buffer or
// history. Background programs are still running when it returns, see Wait.
func (s *Shell) Execute(line string) {
	cmd, err := parser.ParseStrict(line)
	if err != nil {
		s.logger.Printf("%q: %v", line, err)
		s.stdio.Println("bsh: " + err.Error())
		s.setStatus(StatusUsage)
		return
	}

	name := cmd.Program.ID.Name
	prog, ok := s.programs.Lookup(name)
	if !ok {
		s.notFound(name)
		return
	}

	res, async, err := s.runner.Dispatch(s.ctx, name, prog, cmd.Parameters, s.builtinEnv())
	switch {
	case err != nil:
		s.logger.Printf("%s: %v", name, err)
		s.stdio.Println(fmt.Sprintf("bsh: %s: %v", name, err))
	case !async:
		s.report(res)
	}
}

func (s *Shell) builtinEnv() *BuiltinEnv {
	return &BuiltinEnv{
		Stdio:    s.stdio,
		Programs: s.programs,
		Vars:     s.vars,
		History:  s.history,
		Exit: func() {
			s.exited = true
		},
	}
}

func (s *Shell) notFound(name string) {
	s.logger.Printf("%s: %v", name, ErrCommandNotFound)
	s.stdio.Println(fmt.Sprintf("bsh: %v: %s", ErrCommandNotFound, name))

	if matches := fuzzy.RankFindFold(name, s.programs.Names()); len(matches) > 0 {
		sort.Sort(matches)
		s.stdio.Println(fmt.Sprintf("bsh: did you mean %s?", colorProgram.Sprint(matches[0].Target)))
	}
	s.setStatus(StatusNotFound)
}

// report surfaces a finished command's failure and records its status.
func (s *Shell) report(res Result) {
	if res.Err != nil {
		s.logger.Printf("%s: %v", res.Name, res.Err)
		if errors.Is(res.Err, ErrInterrupted) {
			s.stdio.Print("^C" + newline)
		} else {
			s.stdio.Println(fmt.Sprintf("bsh: %s: %v", res.Name, res.Err))
		}
	}
	s.setStatus(res.Status)
}

// finish handles a background command's result and brings the prompt back.
func (s *Shell) finish(res Result) {
	s.runner.finish()
	s.report(res)
	if !s.exited {
		s.draw()
	}
}

func (s *Shell) setStatus(status int) {
	// MapEnv never fails.
	_ = s.vars.Setenv(StatusVar, strconv.Itoa(status))
}

// Run feeds events to Input and finishes background commands until events
// is closed, the user exits or ctx is done. Background programs inherit ctx.
func (s *Shell) Run(ctx context.Context, events <-chan string) error {
	s.ctx = ctx
	for !s.exited {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case data, ok := <-events:
			if !ok {
				return nil
			}
			s.Input(data)
		case res := <-s.runner.Done():
			s.finish(res)
		}
	}
	return nil
}

// Wait blocks until the background command in flight, if any, finishes and
// the prompt is back.
func (s *Shell) Wait(ctx context.Context) error {
	done := s.runner.Done()
	if done == nil {
		return nil
	}
	select {
	case res := <-done:
		s.finish(res)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State reports whether a command is in flight.
func (s *Shell) State() State {
	return s.runner.State()
}

// Line returns the text being edited.
func (s *Shell) Line() string {
	return s.buffer.String()
}

// Suggestion returns the history suggestion currently shown after the line.
func (s *Shell) Suggestion() string {
	return s.suggestion
}

// Status returns the exit status of the last command.
func (s *Shell) Status() int {
	status, _ := strconv.Atoi(s.vars.Getenv(StatusVar))
	return status
}

// Exited reports whether the user asked to leave.
func (s *Shell) Exited() bool {
	return s.exited
}

// Vars returns the variable store.
func (s *Shell) Vars() vos.VEnv {
	return s.vars
}

// History returns the committed lines.
func (s *Shell) History() *History {
	return s.history
}

// Programs returns the program registry.
func (s *Shell) Programs() Programs {
	return s.programs
}

// Stdio returns the shell's output.
func (s *Shell) Stdio() *Stdio {
	return s.stdio
}
