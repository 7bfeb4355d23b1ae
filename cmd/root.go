package cmd

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bs-community/blessing-skin-shell/core/config"
	"github.com/spf13/cobra"
)

var cfgPath string

func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// loadConfigOrDefault falls back to the default configuration in a temporary
// directory if none was initialized. The returned cleanup removes it.
func loadConfigOrDefault(logger *log.Logger) (*config.Configuration, func(), error) {
	configuration, err := config.Load(cfgPath)
	switch {
	case err == nil:
		return configuration, func() {}, nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, nil, err
	}

	dir, err := os.MkdirTemp("", "bsh")
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { os.RemoveAll(dir) }

	logger.Printf("No configuration in %q, using defaults\n", cfgPath)
	configuration, err = config.Initialize(dir, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return configuration, cleanup, nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bsh",
	Short: "Blessing Skin Shell",
	Long:  `An embeddable interactive shell with live highlighting, history and pluggable programs.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cobra.CheckErr(rootCmd.ExecuteContext(ctx))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
}
