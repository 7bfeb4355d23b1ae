package ttylog

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

// AsciicastFileExt holds the suggested file extension for asciicast files.
const AsciicastFileExt = "cast"

func writeJSONLine(w io.Writer, structure interface{}) error {
	line, err := json.Marshal(structure)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%s\n", string(line))
	return err
}

// AsciicastHeader is the first line of an asciicast v2 file.
type AsciicastHeader struct {
	Version   int               `json:"version"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Timestamp int64             `json:"timestamp"`
	Title     string            `json:"title,omitempty"`
	Env       map[string]string `json:"env,omitempty"`
}

// NewAsciicastLogSink creates a LogSink compatible with the asciicast v2
// format. The header is written with the first entry.
//
// See: https://github.com/asciinema/asciinema/blob/develop/doc/asciicast-v2.md
func NewAsciicastLogSink(w io.Writer, title string) LogSink {
	var (
		firstLogTimeMicros int64
		once               sync.Once
	)

	return func(entry *Entry) error {
		var headerErr error
		once.Do(func() {
			firstLogTimeMicros = entry.TimestampMicros
			// Give generic settings that should work to display most outputs.
			headerErr = writeJSONLine(w, &AsciicastHeader{
				Version:   2,
				Width:     80,
				Height:    24,
				Timestamp: time.UnixMicro(firstLogTimeMicros).Unix(),
				Title:     title,
				Env: map[string]string{
					"TERM":  "xterm-256color",
					"SHELL": "bsh",
				},
			})
		})
		if headerErr != nil {
			return headerErr
		}

		if entry.Close {
			return nil
		}

		direction := "o"
		if entry.FD == FDStdin {
			direction = "i"
		}
		deltaSecond := microsecondsToSeconds(entry.TimestampMicros - firstLogTimeMicros)

		return writeJSONLine(w, &asciicastLogLine{deltaSecond, direction, string(entry.Data)})
	}
}

// AsciicastLogSource reads log events from an asciicast v2 file.
type AsciicastLogSource struct {
	r             *bufio.Reader
	consumeHeader sync.Once
	header        AsciicastHeader
	headerErr     error
}

var _ LogSource = (*AsciicastLogSource)(nil)

// NewAsciicastLogSource reads log events from an Asciicast formatted file.
func NewAsciicastLogSource(r io.Reader) *AsciicastLogSource {
	return &AsciicastLogSource{r: bufio.NewReader(r)}
}

func (log *AsciicastLogSource) readHeader() {
	line, err := log.r.ReadBytes('\n')
	switch {
	case len(line) == 0 && err == io.EOF:
		log.headerErr = errors.New("missing asciicast header")
		return
	case err != nil && err != io.EOF:
		log.headerErr = err
		return
	}
	if err := json.Unmarshal(line, &log.header); err != nil {
		log.headerErr = fmt.Errorf("malformed header: %w", err)
		return
	}
	if log.header.Version != 2 {
		log.headerErr = fmt.Errorf("unsupported asciicast version %d", log.header.Version)
	}
}

// Header returns the file's header, reading it if needed.
func (log *AsciicastLogSource) Header() (AsciicastHeader, error) {
	log.consumeHeader.Do(log.readHeader)
	return log.header, log.headerErr
}

// Next gets the next log entry, it returns io.EOF if there are no more.
func (log *AsciicastLogSource) Next() (*Entry, error) {
	header, err := log.Header()
	if err != nil {
		return nil, err
	}
	startMicros := header.Timestamp * int64(time.Second/time.Microsecond)

	for {
		line, err := log.r.ReadBytes('\n')
		if err != nil && (err != io.EOF || len(line) == 0) {
			return nil, err
		}

		if len(line) <= 1 {
			// Skip blank lines
			continue
		}

		var asciicastLine asciicastLogLine
		if err := json.Unmarshal(line, &asciicastLine); err != nil {
			return nil, err
		}

		// Asciicast doesn't support stderr so it's collapsed into stdout.
		var fd FD
		switch asciicastLine.EventType {
		case "o":
			fd = FDStdout
		case "i":
			fd = FDStdin
		default:
			// skip unknown events
			continue
		}

		return &Entry{
			TimestampMicros: startMicros + secondsToMicroseconds(asciicastLine.TimeSeconds),
			FD:              fd,
			Data:            []byte(asciicastLine.EventData),
		}, nil
	}
}

type asciicastLogLine struct {
	TimeSeconds float64
	EventType   string
	EventData   string
}

func (log *asciicastLogLine) UnmarshalJSON(data []byte) error {
	var v []interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if count := len(v); count != 3 {
		return fmt.Errorf("malformed line, expected 3 entries got %d", count)
	}

	var timeOk, typeOk, dataOk bool
	log.TimeSeconds, timeOk = v[0].(float64)
	log.EventType, typeOk = v[1].(string)
	log.EventData, dataOk = v[2].(string)

	if !timeOk || !typeOk || !dataOk {
		return fmt.Errorf("malformed data in line: %q", v)
	}

	return nil
}

func (log *asciicastLogLine) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{log.TimeSeconds, log.EventType, log.EventData})
}

func microsecondsToSeconds(microseconds int64) (seconds float64) {
	return (float64(microseconds) * float64(time.Microsecond)) / float64(time.Second)
}

func secondsToMicroseconds(seconds float64) (microseconds int64) {
	return int64(float64(seconds)*float64(time.Second)) / int64(time.Microsecond)
}
