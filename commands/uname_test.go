package commands

import (
	"context"
	"testing"

	"github.com/bs-community/blessing-skin-shell/core/shell"
	"github.com/bs-community/blessing-skin-shell/core/vos/vostest"
	"github.com/stretchr/testify/assert"
)

var testUtsname = Utsname{
	Sysname:  "Linux",
	Nodename: "bsh",
	Release:  "0.1.0",
	Version:  "bsh go1.18",
	Machine:  "x86_64",
}

func TestUname(t *testing.T) {
	cases := goldenTestSuite{
		"no-arg":  {[]string{}},
		"all":     {[]string{"-a"}},
		"kernel":  {[]string{"-srv"}},
		"node":    {[]string{"--nodename"}},
		"machine": {[]string{"-m"}},
	}

	cases.Run(t, Uname(testUtsname))
}

func TestUname_usage(t *testing.T) {
	cases := map[string]struct {
		args    []string
		wantErr error
	}{
		"help":    {args: []string{"--help"}},
		"invalid": {args: []string{"-z"}, wantErr: ExitStatus(1)},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			term := vostest.NewTerminal()

			err := Uname(testUtsname)(context.Background(), shell.NewStdio(term, ""), tc.args)

			assert.Equal(t, tc.wantErr, err)
			assert.Contains(t, term.String(), "usage: uname [OPTIONS...]\r\n")
			assert.Contains(t, term.String(), "--kernel-name")
			assert.NotContains(t, term.String(), "\r\r")
		})
	}
}

func TestHostname(t *testing.T) {
	cases := goldenTestSuite{
		"no-arg":   {[]string{}},
		"bad-flag": {[]string{"-z"}},
	}

	cases.Run(t, Hostname("bsh.example"))
}

func TestHostUtsname(t *testing.T) {
	uname := HostUtsname("configured")

	assert.Equal(t, "configured", uname.Nodename)
	assert.Equal(t, Version, uname.Release)
	assert.NotEmpty(t, uname.Sysname)
	assert.NotEmpty(t, uname.Machine)

	assert.Equal(t, "Linux", sysname("linux"))
	assert.Equal(t, "x86_64", machine("amd64"))
	assert.Equal(t, "riscv64", machine("riscv64"))
}

func TestUname_throughShell(t *testing.T) {
	sh, term := newTestShell(t)

	assert.Equal(t, 0, execute(t, sh, "uname -n"))
	assert.Contains(t, term.String(), "bsh\r\n\x1b[?25h")

	assert.Equal(t, 1, execute(t, sh, "uname --bogus"))
	assert.NotContains(t, term.String(), "exit status")
}
