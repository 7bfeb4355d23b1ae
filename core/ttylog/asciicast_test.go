package ttylog

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/bs-community/blessing-skin-shell/core/vos"
	"github.com/bs-community/blessing-skin-shell/core/vos/vostest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeConversions(t *testing.T) {
	cases := map[string]struct {
		microseconds int64
		seconds      float64
	}{
		"precision": {
			microseconds: 1,
			seconds:      1e-6,
		},
		"negative": {
			microseconds: -631119539e6,
			seconds:      -631119539,
		},
		"positive": {
			microseconds: 631119539e6,
			seconds:      631119539,
		},
		"bigprecise": {
			microseconds: 123456789987654,
			seconds:      123456789.987654,
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			s2m := secondsToMicroseconds(tc.seconds)
			m2s := microsecondsToSeconds(tc.microseconds)

			// Only allow delta to be to the NS
			assert.InDelta(t, m2s, tc.seconds, float64(time.Nanosecond)/float64(time.Second))
			assert.Equal(t, s2m, tc.microseconds)
		})
	}
}

func fakeClock(start time.Time, step time.Duration) func() time.Time {
	now := start
	return func() time.Time {
		t := now
		now = now.Add(step)
		return t
	}
}

func TestAsciicast_roundTrip(t *testing.T) {
	var cast bytes.Buffer
	term := vostest.NewTerminal()
	recorder := NewRecorder(term, NewAsciicastLogSink(&cast, "test session"), nil)
	recorder.now = fakeClock(time.Unix(1600000000, 0), 500*time.Millisecond)

	io.WriteString(recorder, "❯ ")
	recorder.RecordInput("l")
	io.WriteString(recorder, "ls\r\n")
	recorder.Clear()
	require.NoError(t, recorder.Close())
	io.WriteString(recorder, "dropped")

	lines := strings.Split(strings.TrimSpace(cast.String()), "\n")
	require.Len(t, lines, 5)
	assert.JSONEq(t, `{"version":2,"width":80,"height":24,"timestamp":1600000000,"title":"test session","env":{"SHELL":"bsh","TERM":"xterm-256color"}}`, lines[0])
	assert.Equal(t, `[0,"o","❯ "]`, lines[1])
	assert.Equal(t, `[0.5,"i","l"]`, lines[2])
	assert.Equal(t, `[1,"o","ls\r\n"]`, lines[3])

	source := NewAsciicastLogSource(&cast)
	header, err := source.Header()
	require.NoError(t, err)
	assert.Equal(t, "test session", header.Title)

	var replayed bytes.Buffer
	require.NoError(t, Replay(source, NewClientOutput(&replayed)))
	assert.Equal(t, "❯ ls\r\n"+vos.ClearSequence, replayed.String())

	// Closing only stops the recording, the terminal still gets the output.
	assert.Equal(t, "❯ ls\r\ndropped", term.History())
}

func TestAsciicastLogSource_errors(t *testing.T) {
	cases := map[string]string{
		"empty":       "",
		"bad-header":  "not json\n",
		"old-version": `{"version":1}` + "\n",
		"bad-line":    `{"version":2}` + "\n" + `[1,"o"]` + "\n",
	}

	for tn, input := range cases {
		t.Run(tn, func(t *testing.T) {
			err := Replay(NewAsciicastLogSource(strings.NewReader(input)), NewClientOutput(io.Discard))
			assert.Error(t, err)
		})
	}
}

func TestAsciicastLogSource_skipsUnknownEvents(t *testing.T) {
	input := `{"version":2,"width":80,"height":24,"timestamp":10}` + "\n" +
		"\n" +
		`[0.25,"m","marker"]` + "\n" +
		`[0.5,"o","hi"]`

	source := NewAsciicastLogSource(strings.NewReader(input))
	entry, err := source.Next()
	require.NoError(t, err)
	assert.Equal(t, &Entry{TimestampMicros: 10500000, FD: FDStdout, Data: []byte("hi")}, entry)

	_, err = source.Next()
	assert.Equal(t, io.EOF, err)
}

func TestNewCRLFAdapter(t *testing.T) {
	var out bytes.Buffer
	sink := NewCRLFAdapter(NewClientOutput(&out))

	require.NoError(t, sink(&Entry{FD: FDStdout, Data: []byte("a\nb\r\n")}))
	require.NoError(t, sink(&Entry{FD: FDStdin, Data: []byte("ignored\n")}))
	require.NoError(t, sink(&Entry{Close: true}))

	assert.Equal(t, "a\r\nb\r\n", out.String())
}

func TestNewRealTimePlayback(t *testing.T) {
	var seen []int64
	sink := NewRealTimePlayback(time.Millisecond, func(e *Entry) error {
		seen = append(seen, e.TimestampMicros)
		return nil
	})

	start := time.Now()
	for _, ts := range []int64{0, 1e6, 2e6} {
		require.NoError(t, sink(&Entry{TimestampMicros: ts}))
	}

	assert.Equal(t, []int64{0, 1e6, 2e6}, seen)
	assert.Less(t, int64(time.Since(start)), int64(time.Second), "pauses are capped")
}
