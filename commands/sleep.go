package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bs-community/blessing-skin-shell/core/shell"
)

// parseSleep accepts seconds ("1.5") or a Go duration ("250ms").
func parseSleep(arg string) (time.Duration, error) {
	if seconds, err := strconv.ParseFloat(arg, 64); err == nil {
		if seconds < 0 {
			return 0, fmt.Errorf("invalid time interval %q", arg)
		}
		return time.Duration(seconds * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(arg)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid time interval %q", arg)
	}
	return d, nil
}

// Sleep waits for the sum of its arguments.
func Sleep(ctx context.Context, stdio *shell.Stdio, args []shell.Argument, done *shell.Completion) {
	texts := shell.Texts(args)
	if len(texts) == 0 {
		stdio.Println("sleep: missing operand")
		done.Done(1)
		return
	}

	var total time.Duration
	for _, arg := range texts {
		d, err := parseSleep(arg)
		if err != nil {
			stdio.Println("sleep: " + err.Error())
			done.Done(1)
			return
		}
		total += d
	}

	timer := time.NewTimer(total)
	defer timer.Stop()
	select {
	case <-timer.C:
		done.Done(0)
	case <-ctx.Done():
		done.Done(shell.StatusInterrupted)
	}
}

func init() {
	addInternal("sleep", "Delay for a specified amount of time.", Sleep)
}
