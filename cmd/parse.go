package cmd

import (
	"fmt"
	"strings"

	"github.com/bs-community/blessing-skin-shell/core/parser"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

var parsePartial bool

var parseCmd = &cobra.Command{
	Use:   "parse LINE...",
	Short: "Print the syntax tree of a command line as YAML.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		line := strings.Join(args, " ")

		out := make(map[string]interface{})
		if parsePartial {
			command, rest, err := parser.Parse(line)
			if err != nil {
				return err
			}
			out["command"] = describeCommand(command)
			out["rest"] = rest
		} else {
			command, err := parser.ParseStrict(line)
			if err != nil {
				return err
			}
			out["command"] = describeCommand(command)
		}

		data, err := yaml.Marshal(out)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

type tree map[string]interface{}

func span(s parser.Span) string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

func describeCommand(c *parser.Command) tree {
	out := tree{
		"span":    span(c.Span),
		"program": c.Program.ID.Name,
	}
	if c.Parameters != nil {
		var params []tree
		for _, p := range c.Parameters.Params {
			params = append(params, describeParam(p.Param))
		}
		out["parameters"] = params
	}
	if c.Comment != nil {
		out["comment"] = c.Comment.Content
	}
	return out
}

func describeParam(p parser.Param) tree {
	switch p := p.(type) {
	case *parser.ParamLiteral:
		return tree{"literal": describeTemplate(p.Literal), "span": span(p.Span)}
	case *parser.ShortSwitch:
		return describeSwitch("short_switch", &p.Switch)
	case *parser.LongSwitch:
		return describeSwitch("long_switch", &p.Switch)
	default:
		return tree{"unknown": fmt.Sprintf("%T", p)}
	}
}

func describeSwitch(kind string, s *parser.Switch) tree {
	out := tree{"name": s.Name.Name, "span": span(s.Span)}
	if s.Value != nil {
		out["value"] = describeTemplate(s.Value)
	}
	return tree{kind: out}
}

func describeTemplate(t parser.Template) tree {
	switch t := t.(type) {
	case *parser.Unquoted:
		return tree{"unquoted": describeBody(t.Body)}
	case *parser.Double:
		return tree{"double": describeBody(t.Body)}
	case *parser.Single:
		return tree{"single": t.Raw.Text}
	default:
		return tree{"unknown": fmt.Sprintf("%T", t)}
	}
}

func describeBody(b parser.TemplateBody) []tree {
	var parts []tree
	for _, part := range b.Parts {
		switch part := part.(type) {
		case *parser.TemplateLiteral:
			parts = append(parts, tree{"text": part.Value})
		case *parser.Variable:
			parts = append(parts, tree{"variable": part.ID.Name})
		}
	}
	return parts
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parsePartial, "partial", false, "Parse as much as possible and print the unparsed rest.")
}
