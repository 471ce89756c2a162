package crossfig

import (
	"fmt"
	"strings"
	"unicode"
)

// ParseCond parses the textual condition form into a Cond tree.
//
// Grammar:
//
//	expr  := ident | "cfg" "(" term ")" | "not" "(" expr ")"
//	       | "any" "(" exprs ")" | "all" "(" exprs ")"
//	exprs := expr { "," expr } [ "," ]
//
// An ident is a reference to a declared identity ("enabled" and
// "disabled" are always declared). The term inside cfg(...) is opaque:
// everything up to the closing parenthesis is handed to the build
// environment untouched.
//
// ParseCond only builds the tree; resolution errors (undeclared
// identifiers, unknown terms) surface when the tree is evaluated.
// Structural errors such as any()/all() with zero operands are caught
// here, matching CheckCond.
func ParseCond(input string) (Cond, error) {
	p := &condParser{input: input}
	c, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return nil, p.errorf("unexpected trailing input %q", p.input[p.pos:])
	}
	return c, nil
}

type condParser struct {
	input string
	pos   int
}

func (p *condParser) errorf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("parse condition %q: %s at offset %d", p.input, msg, p.pos)
}

func (p *condParser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

// ident consumes [A-Za-z_][A-Za-z0-9_]* and returns it, or "".
func (p *condParser) ident() string {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		isHead := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		isTail := isHead || (c >= '0' && c <= '9')
		if p.pos == start && !isHead {
			break
		}
		if p.pos > start && !isTail {
			break
		}
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *condParser) expect(c byte) error {
	if p.pos >= len(p.input) || p.input[p.pos] != c {
		return p.errorf("expected %q", string(c))
	}
	p.pos++
	return nil
}

func (p *condParser) parseExpr() (Cond, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return nil, p.errorf("empty condition")
	}

	name := p.ident()
	if name == "" {
		return nil, p.errorf("expected identifier or combinator")
	}

	p.skipSpace()
	hasArgs := p.pos < len(p.input) && p.input[p.pos] == '('

	switch name {
	case "cfg":
		if !hasArgs {
			return nil, p.errorf("cfg requires a term")
		}
		p.pos++ // consume '('
		end := strings.IndexByte(p.input[p.pos:], ')')
		if end < 0 {
			return nil, p.errorf("unclosed cfg term")
		}
		term := strings.TrimSpace(p.input[p.pos : p.pos+end])
		p.pos += end + 1
		if term == "" {
			return nil, p.errorf("empty cfg term")
		}
		return Cfg(term), nil

	case "not":
		if !hasArgs {
			return nil, p.errorf("not requires one operand")
		}
		p.pos++
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return Not(inner), nil

	case "any", "all":
		if !hasArgs {
			return nil, p.errorf("%s requires operands", name)
		}
		p.pos++
		kids, err := p.parseList()
		if err != nil {
			return nil, err
		}
		if len(kids) == 0 {
			return nil, p.errorf("%s: %v", name, ErrEmptyCombinator)
		}
		if name == "any" {
			return Any(kids...), nil
		}
		return All(kids...), nil

	default:
		if hasArgs {
			return nil, p.errorf("unknown combinator %q", name)
		}
		return Ref(name), nil
	}
}

// parseList parses comma-separated expressions up to and including the
// closing parenthesis. A trailing comma is permitted.
func (p *condParser) parseList() ([]Cond, error) {
	var kids []Cond
	for {
		p.skipSpace()
		if p.pos < len(p.input) && p.input[p.pos] == ')' {
			p.pos++
			return kids, nil
		}
		kid, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		kids = append(kids, kid)
		p.skipSpace()
		if p.pos < len(p.input) && p.input[p.pos] == ',' {
			p.pos++
			continue
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return kids, nil
	}
}
