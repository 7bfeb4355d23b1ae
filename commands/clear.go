package commands

import "github.com/bs-community/blessing-skin-shell/core/shell"

// Clear wipes the terminal.
func Clear(env *shell.BuiltinEnv, args []shell.Argument) int {
	env.Stdio.Clear()
	return 0
}

func init() {
	addBuiltin("clear", "Clear the terminal screen.", Clear)
}
