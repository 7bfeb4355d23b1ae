package cmd

import (
	"os"
	"time"

	"github.com/bs-community/blessing-skin-shell/core/ttylog"
	"github.com/spf13/cobra"
)

var (
	fixNewlines   bool
	idleTimeLimit time.Duration
)

var logsCmd = &cobra.Command{
	Use:     "logs",
	Aliases: []string{"log"},
	Short:   "Explore recorded sessions.",
}

// playCommand replays a session in real time
var playCommand = &cobra.Command{
	Use:   "play SESSION.cast",
	Short: "Replay a recorded session in the terminal.",
	Long:  `Plays a recorded session back to the current terminal.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		fd, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()

		sink := ttylog.NewClientOutput(cmd.OutOrStdout())
		sink = ttylog.NewRealTimePlayback(idleTimeLimit, sink)
		return ttylog.Replay(ttylog.NewAsciicastLogSource(fd), applyMiddleware(sink))
	},
}

// catCommand prints a session without pauses
var catCommand = &cobra.Command{
	Use:   "cat SESSION.cast",
	Short: "Print full output of a recorded session to the terminal.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		fd, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()

		sink := ttylog.NewClientOutput(cmd.OutOrStdout())
		return ttylog.Replay(ttylog.NewAsciicastLogSource(fd), applyMiddleware(sink))
	},
}

func applyMiddleware(sink ttylog.LogSink) ttylog.LogSink {
	if fixNewlines {
		sink = ttylog.NewCRLFAdapter(sink)
	}

	return sink
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(playCommand)
	logsCmd.AddCommand(catCommand)

	for _, cmd := range []*cobra.Command{playCommand, catCommand} {
		cmd.Flags().BoolVar(&fixNewlines, "fix-newlines", false, "Convert bare newlines to CRLF.")
	}

	// cat doesn't allow idle time
	playCommand.Flags().DurationVarP(&idleTimeLimit, "idle-time-limit", "i", 3*time.Second, "Maximum time output can be idle. (e.g. 3s, 2m, 100ms)")
}
