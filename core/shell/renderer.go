package shell

import (
	"strings"

	"github.com/bs-community/blessing-skin-shell/core/parser"
)

// Render highlights cmd for display. Gaps between nodes are written back as
// spaces so the output lines up with the text that was parsed.
func Render(cmd *parser.Command, programs Programs) string {
	r := renderer{programs: programs}
	r.command(cmd)
	return r.sb.String()
}

// RenderLine parses text leniently and renders it; the unparsed remainder
// and text that doesn't parse at all are kept verbatim.
func RenderLine(text string, programs Programs) string {
	cmd, rest, err := parser.Parse(text)
	if err != nil {
		return text
	}
	r := renderer{programs: programs}
	r.command(cmd)
	r.gap(len(text) - len(rest))
	r.sb.WriteString(rest)
	return r.sb.String()
}

type renderer struct {
	programs Programs
	sb       strings.Builder
	// pos is the byte offset in the parsed text the output has caught up to.
	pos int
}

// gap pads the output with spaces up to offset.
func (r *renderer) gap(offset int) {
	if offset > r.pos {
		r.sb.WriteString(strings.Repeat(" ", offset-r.pos))
		r.pos = offset
	}
}

func (r *renderer) command(cmd *parser.Command) {
	r.gap(cmd.Program.Span.Start.Index)
	name := cmd.Program.ID.Name
	if r.programs.Has(name) {
		r.sb.WriteString(colorProgram.Sprint(name))
	} else {
		r.sb.WriteString(colorUnknown.Sprint(name))
	}
	r.pos = cmd.Program.Span.End.Index

	if cmd.Parameters != nil {
		for _, p := range cmd.Parameters.Params {
			r.gap(p.Span.Start.Index)
			r.param(p.Param)
			r.pos = p.Span.End.Index
		}
	}

	if c := cmd.Comment; c != nil {
		// The comment span starts after the '#'.
		r.gap(c.Span.Start.Index - 1)
		r.sb.WriteString(colorComment.Sprint("#" + c.Content))
		r.pos = c.Span.End.Index
	}
}

func (r *renderer) param(p parser.Param) {
	switch p := p.(type) {
	case *parser.ParamLiteral:
		r.template(p.Literal)
	case *parser.ShortSwitch:
		r.sb.WriteString(colorSwitch.Sprint("-"))
		r.switchBody(p.Switch)
	case *parser.LongSwitch:
		r.sb.WriteString(colorSwitch.Sprint("--"))
		r.switchBody(p.Switch)
	}
}

func (r *renderer) switchBody(sw parser.Switch) {
	r.sb.WriteString(colorSwitch.Sprint(sw.Name.Name))
	if sw.Value != nil {
		r.sb.WriteString(colorSwitch.Sprint("="))
		r.template(sw.Value)
	}
}

func (r *renderer) template(t parser.Template) {
	switch t := t.(type) {
	case *parser.Single:
		r.sb.WriteString(colorString.Sprint("'" + t.Raw.Text + "'"))
	case *parser.Double:
		r.sb.WriteString(colorString.Sprint(`"`))
		for _, part := range t.Body.Parts {
			switch part := part.(type) {
			case *parser.TemplateLiteral:
				r.sb.WriteString(colorString.Sprint(part.Value))
			case *parser.Variable:
				r.sb.WriteString(colorVariable.Sprint("$" + part.ID.Name))
			}
		}
		r.sb.WriteString(colorString.Sprint(`"`))
	case *parser.Unquoted:
		for i, part := range t.Body.Parts {
			switch part := part.(type) {
			case *parser.TemplateLiteral:
				// A lone dash is most likely the start of a switch.
				if i == 0 && part.Value == "-" {
					r.sb.WriteString(colorSwitch.Sprint(part.Value))
				} else {
					r.sb.WriteString(part.Value)
				}
			case *parser.Variable:
				r.sb.WriteString(colorVariable.Sprint("$" + part.ID.Name))
			}
		}
	}
}
