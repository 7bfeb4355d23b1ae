package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseSleep(t *testing.T) {
	cases := map[string]struct {
		arg     string
		want    time.Duration
		wantErr bool
	}{
		"seconds":    {arg: "2", want: 2 * time.Second},
		"fractional": {arg: "0.5", want: 500 * time.Millisecond},
		"duration":   {arg: "250ms", want: 250 * time.Millisecond},
		"negative":   {arg: "-1", wantErr: true},
		"garbage":    {arg: "soon", wantErr: true},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			got, err := parseSleep(tc.arg)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSleep(t *testing.T) {
	sh, term := newTestShell(t)

	start := time.Now()
	assert.Equal(t, 0, execute(t, sh, "sleep 10ms 0.01"))
	assert.GreaterOrEqual(t, int64(time.Since(start)), int64(20*time.Millisecond))

	assert.Equal(t, 1, execute(t, sh, "sleep"))
	assert.Contains(t, term.String(), "sleep: missing operand")

	assert.Equal(t, 1, execute(t, sh, "sleep soon"))
	assert.Contains(t, term.String(), `sleep: invalid time interval "soon"`)
}
