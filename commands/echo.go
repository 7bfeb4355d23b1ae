package commands

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bs-community/blessing-skin-shell/core/shell"
)

var (
	unescapeOctal   = regexp.MustCompile(`\\0[0-8][0-8]?[0-8]?`)
	unescapeHex     = regexp.MustCompile(`\\x[0-9a-fA-F][0-9a-fA-F]?`)
	unescapeReplace = strings.NewReplacer(
		`\n`, "\n", // newline
		`\r`, "\r", // carriage return
		`\t`, "\t", // horizontal tab
		`\\`, `\`, // backslash literal
		`\b`, "\b", // backspace
		`\a`, "\a", // alert
		`\f`, "\f", // form feed
		`\v`, "\v", // vertical tab
	)
)

func unescape(s string) string {
	s = unescapeReplace.Replace(s)
	s = unescapeOctal.ReplaceAllStringFunc(s, func(arg string) string {
		out, err := strconv.ParseInt(arg[2:], 8, 8)
		if err != nil {
			return arg
		}
		return string(rune(out))
	})
	s = unescapeHex.ReplaceAllStringFunc(s, func(arg string) string {
		out, err := strconv.ParseInt(arg[2:], 16, 8)
		if err != nil {
			return arg
		}
		return string(rune(out))
	})
	return s
}

// Echo writes its arguments separated by spaces. Switches are written as
// name=value, with an empty value when none was given, except a bare -e which
// turns on backslash escapes. With no arguments nothing is written.
func Echo(env *shell.BuiltinEnv, args []shell.Argument) int {
	if len(args) == 0 {
		return 0
	}

	escaped := false
	words := make([]string, 0, len(args))
	for _, arg := range args {
		switch arg := arg.(type) {
		case shell.Text:
			words = append(words, string(arg))
		case shell.Switch:
			if arg.Name == "e" && !arg.HasValue {
				escaped = true
				continue
			}
			words = append(words, arg.Name+"="+arg.Value)
		}
	}

	line := strings.Join(words, " ")
	if escaped {
		line = toCRLF(unescape(line))
	}
	env.Stdio.Println(line)
	return 0
}

func init() {
	addBuiltin("echo", "Display a line of text.", Echo)
}
