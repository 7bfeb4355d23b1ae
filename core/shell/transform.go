package shell

import (
	"strings"

	"github.com/bs-community/blessing-skin-shell/core/parser"
)

// Argument is a materialized parameter: either Text or a Switch.
type Argument interface {
	argument()
}

// Text is a plain argument with all variables substituted.
type Text string

// Switch is a -name or --name argument with an optional value.
type Switch struct {
	Name     string
	Value    string
	HasValue bool
}

func (Text) argument()   {}
func (Switch) argument() {}

// String renders the switch as name or name=value.
func (s Switch) String() string {
	if !s.HasValue {
		return s.Name
	}
	return s.Name + "=" + s.Value
}

// Transformer expands parameters against a read-only variable lookup.
// Unknown variables expand to the empty string.
type Transformer struct {
	mapping func(string) string
}

// NewTransformer creates a transformer resolving variables with mapping,
// usually a VEnv's Getenv.
func NewTransformer(mapping func(string) string) *Transformer {
	if mapping == nil {
		mapping = func(string) string { return "" }
	}
	return &Transformer{mapping: mapping}
}

// Transform returns structured arguments, switches stay switches.
func (t *Transformer) Transform(params *parser.Parameters) []Argument {
	if params == nil {
		return nil
	}
	out := make([]Argument, 0, len(params.Params))
	for _, p := range params.Params {
		switch param := p.Param.(type) {
		case *parser.ParamLiteral:
			out = append(out, Text(t.Template(param.Literal)))
		case *parser.ShortSwitch:
			out = append(out, t.switchArg(param.Switch))
		case *parser.LongSwitch:
			out = append(out, t.switchArg(param.Switch))
		}
	}
	return out
}

// Flatten returns one string per parameter, switches keep their dashes:
// -name, -name=value, --name, --name=value.
func (t *Transformer) Flatten(params *parser.Parameters) []string {
	if params == nil {
		return nil
	}
	out := make([]string, 0, len(params.Params))
	for _, p := range params.Params {
		switch param := p.Param.(type) {
		case *parser.ParamLiteral:
			out = append(out, t.Template(param.Literal))
		case *parser.ShortSwitch:
			out = append(out, "-"+t.switchArg(param.Switch).String())
		case *parser.LongSwitch:
			out = append(out, "--"+t.switchArg(param.Switch).String())
		}
	}
	return out
}

func (t *Transformer) switchArg(sw parser.Switch) Switch {
	arg := Switch{Name: sw.Name.Name}
	if sw.Value != nil {
		arg.Value = t.Template(sw.Value)
		arg.HasValue = true
	}
	return arg
}

// Template expands a single template. Single quoted text is returned as is.
func (t *Transformer) Template(tpl parser.Template) string {
	switch tpl := tpl.(type) {
	case *parser.Single:
		return tpl.Raw.Text
	case *parser.Double:
		return t.body(tpl.Body)
	case *parser.Unquoted:
		return t.body(tpl.Body)
	}
	return ""
}

func (t *Transformer) body(body parser.TemplateBody) string {
	var sb strings.Builder
	for _, part := range body.Parts {
		switch part := part.(type) {
		case *parser.TemplateLiteral:
			sb.WriteString(part.Value)
		case *parser.Variable:
			sb.WriteString(t.mapping(part.ID.Name))
		}
	}
	return sb.String()
}

// Texts returns only the Text arguments as strings.
func Texts(args []Argument) []string {
	var out []string
	for _, arg := range args {
		if text, ok := arg.(Text); ok {
			out = append(out, string(text))
		}
	}
	return out
}
