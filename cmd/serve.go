package cmd

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bs-community/blessing-skin-shell/core"
	"github.com/gliderlabs/ssh"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the shell over SSH on the configured port.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		logger := log.New(cmd.ErrOrStderr(), "[serve] ", log.LstdFlags)
		logger.Println("Initializing server...")

		configuration, err := loadConfig()
		if err != nil {
			return err
		}

		appLog, err := configuration.OpenAppLog()
		if err != nil {
			return err
		}
		defer appLog.Close()
		sessionLogger := log.New(appLog, "", log.LstdFlags)

		server, err := core.NewServer(configuration, sessionLogger)
		if err != nil {
			return err
		}

		errs := make(chan error, 1)
		go func() {
			logger.Printf("- Listening on :%d\n", configuration.SSHPort)
			errs <- server.ListenAndServe()
		}()

		select {
		case err := <-errs:
			return err
		case <-cmd.Context().Done():
		}
		logger.Println("Got interrupt, terminating...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return err
		}
		logger.Print("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
