package commands

import (
	"testing"

	"github.com/bs-community/blessing-skin-shell/core/shell"
	"github.com/stretchr/testify/assert"
)

func TestExport_overwrites(t *testing.T) {
	sh, _ := newTestShell(t)

	assert.Equal(t, 0, execute(t, sh, "export k=v1"))
	assert.Equal(t, 0, execute(t, sh, "export k=v2"))

	assert.Equal(t, "v2", sh.Vars().Getenv("k"))
}

func TestExport_expandsValues(t *testing.T) {
	sh, term := newTestShell(t)

	// A quote can't start in the middle of an unquoted word.
	assert.Equal(t, 2, execute(t, sh, `export greeting="hello world"`))
	assert.Equal(t, "", sh.Vars().Getenv("greeting"))

	assert.Equal(t, 0, execute(t, sh, `export "greeting=hello world"`))
	term.Reset()
	assert.Equal(t, 0, execute(t, sh, `export who=$greeting`))
	assert.Equal(t, 0, execute(t, sh, `echo $who`))

	assert.Equal(t, "hello world", sh.Vars().Getenv("greeting"))
	assert.Equal(t, "hello world", sh.Vars().Getenv("who"))
	assert.Equal(t, "hello world\r\n", term.String())
}

func TestExport_warnings(t *testing.T) {
	cases := map[string]struct {
		args       []shell.Argument
		wantStatus int
		wantOutput string
	}{
		"missing-value": {
			args:       []shell.Argument{shell.Text("k")},
			wantStatus: 1,
			wantOutput: "Missing variable value.",
		},
		"empty-value": {
			args:       []shell.Argument{shell.Text("k=")},
			wantStatus: 1,
			wantOutput: "Missing variable value.",
		},
		"missing-name": {
			args:       []shell.Argument{shell.Text("=v")},
			wantStatus: 1,
			wantOutput: "Variable name isn't provided.",
		},
		"invalid-name": {
			args:       []shell.Argument{shell.Text("a-b=v")},
			wantStatus: 1,
			wantOutput: "Invalid variable name: a-b",
		},
		"switch": {
			args:       []shell.Argument{shell.Switch{Name: "x"}, shell.Text("k=v")},
			wantStatus: 0,
			wantOutput: "Invalid argument: x",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			env, term, _ := builtinEnv(nil)

			assert.Equal(t, tc.wantStatus, Export(env, tc.args))
			assert.Contains(t, term.String(), tc.wantOutput)
		})
	}
}

func TestExport_list(t *testing.T) {
	env, term, _ := builtinEnv(nil)
	env.Vars.Setenv("b", "2")
	env.Vars.Setenv("a", "1")

	assert.Equal(t, 0, Export(env, nil))
	assert.Equal(t, "a=1\r\nb=2\r\n", term.String())
}

func TestUnset(t *testing.T) {
	sh, term := newTestShell(t)

	execute(t, sh, "export a=1 b=2")
	assert.Equal(t, 0, execute(t, sh, "unset a missing"))
	assert.Equal(t, 1, execute(t, sh, "unset -f"))

	_, ok := sh.Vars().LookupEnv("a")
	assert.False(t, ok)
	assert.Equal(t, "2", sh.Vars().Getenv("b"))
	assert.Contains(t, term.String(), "Invalid argument: f")
}

func TestIsVariableName(t *testing.T) {
	for name, want := range map[string]bool{
		"a":      true,
		"A_1?":   true,
		"":       false,
		"a-b":    false,
		"a.b":    false,
		"héllo":  false,
		"_under": true,
	} {
		assert.Equal(t, want, isVariableName(name), name)
	}
}
