package cmd

import (
	"fmt"
	"log"
	"text/tabwriter"

	"github.com/bs-community/blessing-skin-shell/commands"
	"github.com/spf13/cobra"
)

var programsCmd = &cobra.Command{
	Use:   "programs",
	Short: "List the programs available in the shell.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, cleanup, err := loadConfigOrDefault(log.New(cmd.ErrOrStderr(), "", 0))
		if err != nil {
			return err
		}
		defer cleanup()

		programs, err := commands.NewRegistry(commands.Options{
			Hostname:         cfg.Hostname,
			ExternalCommands: cfg.ExternalCommands,
		})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		for _, name := range programs.Names() {
			prog := programs[name]
			fmt.Fprintf(w, "%s\t%s\t%s\n", name, prog.Kind, prog.Short)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(programsCmd)
}
