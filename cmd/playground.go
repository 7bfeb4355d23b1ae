package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/bs-community/blessing-skin-shell/commands"
	"github.com/bs-community/blessing-skin-shell/core"
	"github.com/bs-community/blessing-skin-shell/core/shell"
	"github.com/bs-community/blessing-skin-shell/core/vos"
	"github.com/spf13/cobra"
)

// playgroundCmd runs the shell in the local terminal
var playgroundCmd = &cobra.Command{
	Use:   "playground",
	Short: "Run the shell in the current terminal without starting a server.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		playgroundLogger := log.New(cmd.ErrOrStderr(), "[playground] ", 0)
		cfg, cleanup, err := loadConfigOrDefault(playgroundLogger)
		if err != nil {
			return err
		}
		defer cleanup()

		logFd, err := cfg.OpenAppLog()
		if err != nil {
			return err
		}
		defer logFd.Close()

		playgroundLogger.Printf("Logging to %s in the config directory\n", logFd.Name())
		playgroundLogger.Println(strings.Repeat("=", 80))

		programs, err := commands.NewRegistry(commands.Options{
			Hostname:         cfg.Hostname,
			ExternalCommands: cfg.ExternalCommands,
		})
		if err != nil {
			return err
		}

		fd := int(os.Stdin.Fd())
		if readline.IsTerminal(fd) {
			state, err := readline.MakeRaw(fd)
			if err != nil {
				return err
			}
			defer readline.Restore(fd, state)
		}

		stdin := readline.NewCancelableStdin(cmd.InOrStdin())
		defer stdin.Close()

		sh := shell.New(vos.NewWriterTerminal(cmd.OutOrStdout()), programs,
			shell.WithPrompt(cfg.Prompt),
			shell.WithGreeting(cfg.Greeting),
			shell.WithTimeout(cfg.ProgramTimeout()),
			shell.WithLogger(log.New(logFd, "[playground] ", log.LstdFlags)),
		)

		ctx := cmd.Context()
		err = sh.Run(ctx, core.ReadEvents(ctx, stdin, nil))
		if err != nil && ctx.Err() == nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exit status: %d\r\n", sh.Status())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(playgroundCmd)
}
