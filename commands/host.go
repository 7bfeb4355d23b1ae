package commands

import (
	"context"
	"errors"
	"os/exec"

	"github.com/anmitsu/go-shlex"
	"github.com/bs-community/blessing-skin-shell/core/shell"
)

// HostCommand runs a real program on the host. commandLine is split like a
// POSIX shell would and the arguments given at the prompt are appended.
func HostCommand(commandLine string) (shell.ExternalFunc, error) {
	argv, err := shlex.Split(commandLine, true)
	if err != nil {
		return nil, err
	}
	if len(argv) == 0 {
		return nil, errors.New("empty command line")
	}

	return func(ctx context.Context, stdio *shell.Stdio, args []string) error {
		cmdArgs := append(append([]string(nil), argv[1:]...), args...)
		cmd := exec.CommandContext(ctx, argv[0], cmdArgs...)
		out := newCRLFWriter(stdio)
		cmd.Stdout = out
		cmd.Stderr = out
		return cmd.Run()
	}, nil
}
