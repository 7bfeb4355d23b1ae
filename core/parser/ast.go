package parser

// Node is implemented by every AST node.
type Node interface {
	Range() Span
}

// Command is the root of a parsed line.
type Command struct {
	Program Program
	// Parameters is nil when the command has none; it is never empty.
	Parameters *Parameters
	// Comment is the trailing comment, if any. It is not part of Span.
	Comment *Comment
	Span    Span
}

// Program is the command name token.
type Program struct {
	ID   Identifier
	Span Span
}

// Identifier is a name; strict identifiers name variables, loose ones name
// programs and switches.
type Identifier struct {
	Name string
	Span Span
}

// Parameters is a non-empty list of parameters.
type Parameters struct {
	Params []Parameter
	Span   Span
}

// Parameter wraps a single parameter.
type Parameter struct {
	Param Param
	Span  Span
}

// Param is one of *ParamLiteral, *ShortSwitch or *LongSwitch.
type Param interface {
	Node
	param()
}

// ParamLiteral is a bare template parameter.
type ParamLiteral struct {
	Literal Template
	Span    Span
}

// ShortSwitch is a -name[=value] parameter.
type ShortSwitch struct {
	Switch
}

// LongSwitch is a --name[=value] parameter.
type LongSwitch struct {
	Switch
}

// Switch is the name and optional value of a switch. The span excludes the
// leading dashes.
type Switch struct {
	Name Identifier
	// Value is nil when no "=value" was given.
	Value Template
	Span  Span
}

// Template is one of *Unquoted, *Single or *Double.
type Template interface {
	Node
	template()
}

// Unquoted is a bare, interpolated template.
type Unquoted struct {
	Body TemplateBody
	Span Span
}

// Single is a single-quoted template; it is never interpolated.
type Single struct {
	Raw  RawText
	Span Span
}

// Double is a double-quoted, interpolated template.
type Double struct {
	Body TemplateBody
	Span Span
}

// RawText is the verbatim content of a single-quoted template.
type RawText struct {
	Text string
	Span Span
}

// TemplateBody is a sequence of raw fragments and variable references.
type TemplateBody struct {
	Parts []TemplatePart
	Span  Span
}

// TemplatePart is one of *TemplateLiteral or *Variable.
type TemplatePart interface {
	Node
	templatePart()
}

// TemplateLiteral is a run of raw text inside a template.
type TemplateLiteral struct {
	Value string
	Span  Span
}

// Variable is a $name reference.
type Variable struct {
	ID   Identifier
	Span Span
}

// Comment is a trailing "#..." comment. Its span starts after the '#'.
type Comment struct {
	Content string
	Span    Span
}

func (n *Command) Range() Span         { return n.Span }
func (n *Program) Range() Span         { return n.Span }
func (n *Identifier) Range() Span      { return n.Span }
func (n *Parameters) Range() Span      { return n.Span }
func (n *Parameter) Range() Span       { return n.Span }
func (n *ParamLiteral) Range() Span    { return n.Span }
func (n *Switch) Range() Span          { return n.Span }
func (n *Unquoted) Range() Span        { return n.Span }
func (n *Single) Range() Span          { return n.Span }
func (n *Double) Range() Span          { return n.Span }
func (n *RawText) Range() Span         { return n.Span }
func (n *TemplateBody) Range() Span    { return n.Span }
func (n *TemplateLiteral) Range() Span { return n.Span }
func (n *Variable) Range() Span        { return n.Span }
func (n *Comment) Range() Span         { return n.Span }

func (*ParamLiteral) param() {}
func (*ShortSwitch) param()  {}
func (*LongSwitch) param()   {}

func (*Unquoted) template() {}
func (*Single) template()   {}
func (*Double) template()   {}

func (*TemplateLiteral) templatePart() {}
func (*Variable) templatePart()        {}

var (
	_ Param        = (*ParamLiteral)(nil)
	_ Param        = (*ShortSwitch)(nil)
	_ Param        = (*LongSwitch)(nil)
	_ Template     = (*Unquoted)(nil)
	_ Template     = (*Single)(nil)
	_ Template     = (*Double)(nil)
	_ TemplatePart = (*TemplateLiteral)(nil)
	_ TemplatePart = (*Variable)(nil)
)
