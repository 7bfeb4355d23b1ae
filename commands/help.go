package commands

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/bs-community/blessing-skin-shell/core/shell"
)

// Help lists the registered programs, or describes the named ones.
func Help(env *shell.BuiltinEnv, args []shell.Argument) int {
	names := shell.Texts(args)
	if len(names) == 0 {
		names = env.Programs.Names()
		env.Stdio.Println("These programs are available. Type `help name' to find out more about `name'.")
		env.Stdio.Println("")
	}

	status := 0
	w := tabwriter.NewWriter(newCRLFWriter(env.Stdio), 0, 8, 2, ' ', 0)
	for _, name := range names {
		prog, ok := env.Programs.Lookup(name)
		if !ok {
			fmt.Fprintf(w, "%s\tno such program\n", name)
			status = 1
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, prog.Kind, prog.Short)
	}
	w.Flush()

	return status
}

// History lists the committed lines, optionally only the last N.
func History(env *shell.BuiltinEnv, args []shell.Argument) int {
	entries := env.History.Entries()
	start := 0

	if texts := shell.Texts(args); len(texts) > 0 {
		n, err := strconv.Atoi(texts[0])
		if err != nil || n < 0 {
			env.Stdio.Warn(fmt.Sprintf("history: %s: numeric argument required", texts[0]))
			return 1
		}
		if n < len(entries) {
			start = len(entries) - n
		}
	}

	for i := start; i < len(entries); i++ {
		env.Stdio.Println(fmt.Sprintf("% 5d  %s", i+1, entries[i]))
	}
	return 0
}

// Exit leaves the shell with an optional status.
func Exit(env *shell.BuiltinEnv, args []shell.Argument) int {
	status := 0
	if texts := shell.Texts(args); len(texts) > 0 {
		n, err := strconv.Atoi(texts[0])
		if err != nil {
			env.Stdio.Warn(fmt.Sprintf("exit: %s: numeric argument required", texts[0]))
			n = 2
		}
		status = n
	}
	env.Exit()
	return status
}

func init() {
	addBuiltin("help", "List available programs.", Help)
	addBuiltin("history", "Display the command history.", History)
	addBuiltin("exit", "Exit the shell.", Exit)
}
