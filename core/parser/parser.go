// Package parser turns a command line into a span-annotated AST.
//
// The grammar is a small DSL: one command, optional whitespace separated
// parameters and an optional trailing comment.
//
//	command    := loose_ident (ws+ parameters)?
//	parameters := parameter (ws+ parameter)*
//	parameter  := switch | literal
//	switch     := ("--" | "-") loose_ident ("=" template)?
//	literal    := template
//	template   := "'" raw_text "'" | '"' body '"' | body
//	body       := (literal_run | "$" strict_ident | "$")*
//	comment    := "#" any_char*
//
// Every rule either succeeds and consumes input, or fails and leaves the
// position untouched so the caller can try the next alternative.
package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SyntaxError is returned when input can't be parsed into a command.
type SyntaxError struct {
	Pos     Position
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s, %s", e.Pos, e.Message)
}

// Parse skips leading whitespace, parses one command and an optional trailing
// comment. Text that doesn't form part of the command is returned as the
// remainder rather than causing an error, which allows rendering a line that
// is still being typed.
func Parse(text string) (*Command, string, error) {
	p := newParser(text)
	cmd, err := p.parse()
	if err != nil {
		return nil, text, err
	}
	return cmd, text[p.pos.Index:], nil
}

// ParseStrict is like Parse but fails unless the whole input is consumed.
func ParseStrict(text string) (*Command, error) {
	p := newParser(text)
	cmd, err := p.parse()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		p.fail("end of input")
		return nil, p.err()
	}
	return cmd, nil
}

type parser struct {
	text string
	pos  Position

	// The furthest position any rule failed at and what it wanted there.
	failPos  Position
	expected []string
}

func newParser(text string) *parser {
	return &parser{
		text:    text,
		pos:     Start(),
		failPos: Start(),
	}
}

func (p *parser) parse() (*Command, error) {
	p.skipSpaces()
	cmd, ok := p.command()
	if !ok {
		return nil, p.err()
	}
	if comment, ok := p.comment(); ok {
		cmd.Comment = comment
	}
	return cmd, nil
}

func (p *parser) eof() bool {
	return p.pos.Index >= len(p.text)
}

func (p *parser) peek() rune {
	if p.eof() {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(p.text[p.pos.Index:])
	return r
}

func (p *parser) next() rune {
	if p.eof() {
		return utf8.RuneError
	}
	r, size := utf8.DecodeRuneInString(p.text[p.pos.Index:])
	p.pos = p.pos.advance(r, size)
	return r
}

// token consumes r if it is next.
func (p *parser) token(r rune) bool {
	if p.eof() || p.peek() != r {
		p.fail(fmt.Sprintf("%q", r))
		return false
	}
	p.next()
	return true
}

// fail records that the rule expecting what failed at the current position.
func (p *parser) fail(what string) {
	switch {
	case p.pos.Index > p.failPos.Index:
		p.failPos = p.pos
		p.expected = []string{what}
	case p.pos.Index == p.failPos.Index:
		for _, e := range p.expected {
			if e == what {
				return
			}
		}
		p.expected = append(p.expected, what)
	}
}

func (p *parser) err() *SyntaxError {
	var msg string
	if p.failPos.Index >= len(p.text) {
		msg = "unexpected end of input"
	} else {
		r, _ := utf8.DecodeRuneInString(p.text[p.failPos.Index:])
		msg = fmt.Sprintf("unexpected character %q", r)
	}
	if len(p.expected) > 0 {
		msg += ", expected " + strings.Join(p.expected, " or ")
	}
	return &SyntaxError{Pos: p.failPos, Message: msg}
}

// many1 consumes one or more runes matching pred.
func (p *parser) many1(what string, pred func(rune) bool) (string, Span, bool) {
	start := p.pos
	for !p.eof() && pred(p.peek()) {
		p.next()
	}
	if p.pos.Index == start.Index {
		p.fail(what)
		return "", Span{}, false
	}
	return p.text[start.Index:p.pos.Index], Span{start, p.pos}, true
}

func (p *parser) skipSpaces() int {
	start := p.pos.Index
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.next()
	}
	if p.pos.Index == start {
		p.fail("whitespace")
	}
	return p.pos.Index - start
}

func isStrictIdentChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_', r == '?', r == '!':
		return true
	}
	return false
}

func isLooseIdentChar(r rune) bool {
	return isStrictIdentChar(r) || r == '-' || r == '.'
}

func (p *parser) identifier() (Identifier, bool) {
	name, span, ok := p.many1("identifier", isStrictIdentChar)
	return Identifier{Name: name, Span: span}, ok
}

func (p *parser) looseIdentifier(what string) (Identifier, bool) {
	name, span, ok := p.many1(what, isLooseIdentChar)
	return Identifier{Name: name, Span: span}, ok
}

func (p *parser) variable() (*Variable, bool) {
	start := p.pos
	if !p.token('$') {
		return nil, false
	}
	id, ok := p.identifier()
	if !ok {
		p.pos = start
		return nil, false
	}
	return &Variable{ID: id, Span: Span{start, p.pos}}, true
}

func templateLiteralChar(quoted bool) func(rune) bool {
	return func(r rune) bool {
		switch r {
		case '$', '\n', '"':
			return false
		case '\'', '#':
			return quoted
		}
		return quoted || !unicode.IsSpace(r)
	}
}

func (p *parser) templateLiteral(quoted bool) (*TemplateLiteral, bool) {
	value, span, ok := p.many1("text", templateLiteralChar(quoted))
	if !ok {
		return nil, false
	}
	return &TemplateLiteral{Value: value, Span: span}, true
}

// singleDollar reads a '$' that doesn't start a variable as literal text.
func (p *parser) singleDollar() (*TemplateLiteral, bool) {
	start := p.pos
	if !p.token('$') {
		return nil, false
	}
	return &TemplateLiteral{Value: "$", Span: Span{start, p.pos}}, true
}

func (p *parser) templatePart(quoted bool) (TemplatePart, bool) {
	if lit, ok := p.templateLiteral(quoted); ok {
		return lit, true
	}
	if v, ok := p.variable(); ok {
		return v, true
	}
	if lit, ok := p.singleDollar(); ok {
		return lit, true
	}
	return nil, false
}

// templateBody reads template parts. Quoted bodies may be empty.
func (p *parser) templateBody(quoted bool) (TemplateBody, bool) {
	start := p.pos
	var parts []TemplatePart
	for {
		part, ok := p.templatePart(quoted)
		if !ok {
			break
		}
		parts = append(parts, part)
	}
	if !quoted && len(parts) == 0 {
		return TemplateBody{}, false
	}
	return TemplateBody{Parts: parts, Span: Span{start, p.pos}}, true
}

func (p *parser) unquoted() (Template, bool) {
	body, ok := p.templateBody(false)
	if !ok {
		return nil, false
	}
	return &Unquoted{Body: body, Span: body.Span}, true
}

func (p *parser) doubleQuoted() (Template, bool) {
	start := p.pos
	if !p.token('"') {
		return nil, false
	}
	body, _ := p.templateBody(true)
	if !p.token('"') {
		p.pos = start
		return nil, false
	}
	return &Double{Body: body, Span: Span{start, p.pos}}, true
}

func (p *parser) singleQuoted() (Template, bool) {
	start := p.pos
	if !p.token('\'') {
		return nil, false
	}
	textStart := p.pos
	for !p.eof() && p.peek() != '\'' {
		p.next()
	}
	raw := RawText{
		Text: p.text[textStart.Index:p.pos.Index],
		Span: Span{textStart, p.pos},
	}
	if !p.token('\'') {
		p.pos = start
		return nil, false
	}
	return &Single{Raw: raw, Span: Span{start, p.pos}}, true
}

func (p *parser) template() (Template, bool) {
	if t, ok := p.singleQuoted(); ok {
		return t, true
	}
	if t, ok := p.doubleQuoted(); ok {
		return t, true
	}
	return p.unquoted()
}

func (p *parser) switchBody() (Switch, bool) {
	start := p.pos
	name, ok := p.looseIdentifier("switch name")
	if !ok {
		return Switch{}, false
	}
	sw := Switch{Name: name}
	if !p.eof() && p.peek() == '=' {
		p.next()
		value, ok := p.template()
		if !ok {
			p.pos = start
			return Switch{}, false
		}
		sw.Value = value
	} else {
		p.fail(`"="`)
	}
	sw.Span = Span{start, p.pos}
	return sw, true
}

func (p *parser) shortSwitch() (Param, bool) {
	start := p.pos
	if !p.token('-') {
		return nil, false
	}
	// A second dash belongs to a long switch.
	if p.peek() == '-' {
		p.pos = start
		return nil, false
	}
	sw, ok := p.switchBody()
	if !ok {
		p.pos = start
		return nil, false
	}
	return &ShortSwitch{Switch: sw}, true
}

func (p *parser) longSwitch() (Param, bool) {
	start := p.pos
	if !p.token('-') || !p.token('-') {
		p.pos = start
		return nil, false
	}
	sw, ok := p.switchBody()
	if !ok {
		p.pos = start
		return nil, false
	}
	return &LongSwitch{Switch: sw}, true
}

func (p *parser) literal() (Param, bool) {
	start := p.pos
	t, ok := p.template()
	if !ok {
		return nil, false
	}
	return &ParamLiteral{Literal: t, Span: Span{start, p.pos}}, true
}

func (p *parser) parameter() (Parameter, bool) {
	start := p.pos
	for _, alt := range []func() (Param, bool){p.shortSwitch, p.longSwitch, p.literal} {
		if param, ok := alt(); ok {
			return Parameter{Param: param, Span: Span{start, p.pos}}, true
		}
	}
	return Parameter{}, false
}

// parameters reads one or more parameters separated by whitespace; trailing
// whitespace is consumed.
func (p *parser) parameters() (*Parameters, bool) {
	start := p.pos
	var params []Parameter
	for {
		param, ok := p.parameter()
		if !ok {
			break
		}
		params = append(params, param)
		if p.skipSpaces() == 0 {
			break
		}
	}
	if len(params) == 0 {
		return nil, false
	}
	return &Parameters{Params: params, Span: Span{start, p.pos}}, true
}

func (p *parser) program() (Program, bool) {
	id, ok := p.looseIdentifier("program name")
	if !ok {
		return Program{}, false
	}
	return Program{ID: id, Span: id.Span}, true
}

func (p *parser) command() (*Command, bool) {
	start := p.pos
	prog, ok := p.program()
	if !ok {
		return nil, false
	}
	cmd := &Command{Program: prog}
	if p.skipSpaces() > 0 {
		if params, ok := p.parameters(); ok {
			cmd.Parameters = params
		}
	}
	cmd.Span = Span{start, p.pos}
	return cmd, true
}

func (p *parser) comment() (*Comment, bool) {
	if !p.token('#') {
		return nil, false
	}
	start := p.pos
	for !p.eof() && p.peek() != '\n' {
		p.next()
	}
	return &Comment{Content: p.text[start.Index:p.pos.Index], Span: Span{start, p.pos}}, true
}
