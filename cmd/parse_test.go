package cmd

import (
	"testing"

	"github.com/bs-community/blessing-skin-shell/core/parser"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"
)

func TestDescribeCommand(t *testing.T) {
	command, err := parser.ParseStrict(`curl -s --out='a b' "x$y" # fetch`)
	require.NoError(t, err)

	data, err := yaml.Marshal(describeCommand(command))
	require.NoError(t, err)

	want := `comment: ' fetch'
parameters:
- short_switch:
    name: s
    span: 1:7-1:8
- long_switch:
    name: out
    span: 1:11-1:20
    value:
      single: a b
- literal:
    double:
    - text: x
    - variable: "y"
  span: 1:21-1:26
program: curl
span: 1:1-1:27
`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("describeCommand() mismatch (-want +got):\n%s", diff)
	}
}
