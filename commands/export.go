package commands

import (
	"fmt"
	"strings"

	"github.com/bs-community/blessing-skin-shell/core/shell"
)

// Export sets variables from name=value arguments. Without arguments it
// lists every variable.
func Export(env *shell.BuiltinEnv, args []shell.Argument) int {
	if len(args) == 0 {
		for _, kv := range env.Vars.Environ() {
			env.Stdio.Println(kv)
		}
		return 0
	}

	for _, arg := range args {
		switch arg := arg.(type) {
		case shell.Text:
			name, value, _ := strings.Cut(string(arg), "=")
			switch {
			case name == "":
				env.Stdio.Warn("Variable name isn't provided.")
				return 1
			case !isVariableName(name):
				env.Stdio.Warn(fmt.Sprintf("Invalid variable name: %s", name))
				return 1
			case value == "":
				env.Stdio.Warn("Missing variable value.")
				return 1
			}
			// MapEnv never fails.
			_ = env.Vars.Setenv(name, value)

		case shell.Switch:
			env.Stdio.Warn(fmt.Sprintf("Invalid argument: %s", arg.Name))
		}
	}
	return 0
}

// Unset removes the named variables.
func Unset(env *shell.BuiltinEnv, args []shell.Argument) int {
	status := 0
	for _, arg := range args {
		switch arg := arg.(type) {
		case shell.Text:
			_ = env.Vars.Unsetenv(string(arg))
		case shell.Switch:
			env.Stdio.Warn(fmt.Sprintf("Invalid argument: %s", arg.Name))
			status = 1
		}
	}
	return status
}

// isVariableName reports whether name can be referenced as $name.
func isVariableName(name string) bool {
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '?', r == '!':
		default:
			return false
		}
	}
	return name != ""
}

func init() {
	addBuiltin("export", "Set shell variables.", Export)
	addBuiltin("unset", "Remove shell variables.", Unset)
}
