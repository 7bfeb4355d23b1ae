package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/bs-community/blessing-skin-shell/core/shell"
)

// Version is reported as the kernel release by uname.
const Version = "0.1.0"

// Utsname holds the system information uname prints.
type Utsname struct {
	Sysname  string
	Nodename string
	Release  string
	Version  string
	Machine  string
}

// HostUtsname describes the machine the shell runs on. An empty hostname
// falls back to the host's own.
func HostUtsname(hostname string) Utsname {
	if hostname == "" {
		hostname, _ = os.Hostname()
	}
	return Utsname{
		Sysname:  sysname(runtime.GOOS),
		Nodename: hostname,
		Release:  Version,
		Version:  "bsh " + runtime.Version(),
		Machine:  machine(runtime.GOARCH),
	}
}

func sysname(goos string) string {
	if goos == "" {
		return ""
	}
	return strings.ToUpper(goos[:1]) + goos[1:]
}

func machine(goarch string) string {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "386":
		return "i686"
	case "arm64":
		return "aarch64"
	}
	return goarch
}

// Uname implements the POSIX command by the same name.
func Uname(uname Utsname) shell.ExternalFunc {
	return func(ctx context.Context, stdio *shell.Stdio, args []string) error {
		cmd := &SimpleCommand{
			Use:   "uname [OPTIONS...]",
			Short: "Print system information.",
		}

		opts := cmd.Flags()
		showAll := opts.BoolLong("all", 'a', "print all information")
		showKernelName := opts.BoolLong("kernel-name", 's', "print the kernel name")
		showNodename := opts.BoolLong("nodename", 'n', "print the network node name")
		showRelease := opts.BoolLong("kernel-release", 'r', "print the kernel release")
		showVersion := opts.BoolLong("kernel-version", 'v', "print the kernel version")
		showMachine := opts.BoolLong("machine", 'm', "print the machine name")

		return cmd.Run(stdio, "uname", args, func(w io.Writer) error {
			var out []string
			for _, entry := range []struct {
				flag     *bool
				property string
			}{
				{showKernelName, uname.Sysname},
				{showNodename, uname.Nodename},
				{showRelease, uname.Release},
				{showVersion, uname.Version},
				{showMachine, uname.Machine},
			} {
				if *entry.flag || *showAll {
					out = append(out, entry.property)
				}
			}

			if len(out) == 0 {
				out = append(out, uname.Sysname)
			}

			fmt.Fprintln(w, strings.Join(out, " "))
			return nil
		})
	}
}

// Hostname prints the configured host name.
func Hostname(hostname string) shell.ExternalFunc {
	return func(ctx context.Context, stdio *shell.Stdio, args []string) error {
		cmd := &SimpleCommand{
			Use:   "hostname",
			Short: "Show the system's host name.",
			// Never bail, even if flags are bad.
			NeverBail: true,
		}

		return cmd.Run(stdio, "hostname", args, func(w io.Writer) error {
			fmt.Fprintln(w, hostname)
			return nil
		})
	}
}
