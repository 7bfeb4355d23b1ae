package ttylog

import (
	"io"
	"log"
	"regexp"
	"sync"
	"time"

	"github.com/bs-community/blessing-skin-shell/core/vos"
)

var (
	crlf = regexp.MustCompile(`\r?\n`)
)

// LogSink receives log events.
type LogSink func(e *Entry) error

// LogSource adapts log readers.
type LogSource interface {
	// Next fetches the next available log entry. It returns io.EOF if the source
	// has no more log entries.
	Next() (*Entry, error)
}

// NewRealTimePlayback plays back the results in real-time.
// If maxSleep > 0, it's used as the maximum duration to pause.
func NewRealTimePlayback(maxSleep time.Duration, next LogSink) LogSink {
	var once sync.Once
	var prevTimeMicros int64

	return func(entry *Entry) error {
		once.Do(func() {
			prevTimeMicros = entry.TimestampMicros
		})

		delta := entry.TimestampMicros - prevTimeMicros
		prevTimeMicros = entry.TimestampMicros

		if maxSleep > 0 {
			sleepDuration := time.Duration(delta) * time.Microsecond
			if sleepDuration > maxSleep {
				sleepDuration = maxSleep
			}
			time.Sleep(sleepDuration)
		}

		return next(entry)
	}
}

// NewCRLFAdapter rewrites bare "\n" as "\r\n" so output recorded from a
// cooked terminal doesn't creep across the screen on playback.
func NewCRLFAdapter(next LogSink) LogSink {
	return func(entry *Entry) error {
		if len(entry.Data) > 0 {
			entry.Data = crlf.ReplaceAll(entry.Data, []byte("\r\n"))
		}

		return next(entry)
	}
}

// NewClientOutput writes stdout and stderr to the given writer.
func NewClientOutput(w io.Writer) LogSink {
	return func(entry *Entry) error {
		if entry.Close || entry.FD == FDStdin {
			return nil
		}
		_, err := w.Write(entry.Data)
		return err
	}
}

// Replay reads a stream of events to a callback.
func Replay(recording LogSource, callback LogSink) error {
	for {
		entry, err := recording.Next()
		switch {
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}

		if err := callback(entry); err != nil {
			return err
		}
	}
}

// Recorder is a terminal that forwards everything drawn on it, along with
// the input fed to the shell, to a LogSink.
type Recorder struct {
	term   vos.Terminal
	output LogSink
	logger *log.Logger
	now    func() time.Time

	mutex  sync.Mutex
	closed bool
}

var _ vos.Terminal = (*Recorder)(nil)

// NewRecorder wraps term. Sink errors are logged, they never fail a write.
func NewRecorder(term vos.Terminal, output LogSink, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Recorder{
		term:   term,
		output: output,
		logger: logger,
		now:    time.Now,
	}
}

// Write implements io.Writer.
func (r *Recorder) Write(p []byte) (int, error) {
	eventTime := r.now()
	amount, err := r.term.Write(p)
	if amount > 0 {
		r.record(eventTime, &Entry{FD: FDStdout, Data: p[:amount]})
	}
	return amount, err
}

// Clear implements vos.Terminal.
func (r *Recorder) Clear() {
	eventTime := r.now()
	r.term.Clear()
	r.record(eventTime, &Entry{FD: FDStdout, Data: []byte(vos.ClearSequence)})
}

// RecordInput logs data received from the user.
func (r *Recorder) RecordInput(data string) {
	r.record(r.now(), &Entry{FD: FDStdin, Data: []byte(data)})
}

// Close records the end of the session. Later writes still reach the wrapped
// terminal but are no longer recorded.
func (r *Recorder) Close() error {
	r.record(r.now(), &Entry{FD: FDStdout, Close: true})

	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.closed = true
	return nil
}

func (r *Recorder) record(eventTime time.Time, entry *Entry) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.closed {
		return
	}

	// The caller may reuse its buffer.
	entry.Data = append([]byte(nil), entry.Data...)
	entry.TimestampMicros = eventTime.UnixMicro()
	if err := r.output(entry); err != nil {
		r.logger.Print(err)
	}
}
