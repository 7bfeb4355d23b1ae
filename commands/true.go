package commands

import "github.com/bs-community/blessing-skin-shell/core/shell"

// True does nothing, successfully.
func True(*shell.BuiltinEnv, []shell.Argument) int {
	return 0
}

// False does nothing, unsuccessfully.
func False(*shell.BuiltinEnv, []shell.Argument) int {
	return 1
}

func init() {
	addBuiltin("true", "Do nothing, successfully.", True)
	addBuiltin("false", "Do nothing, unsuccessfully.", False)
}
