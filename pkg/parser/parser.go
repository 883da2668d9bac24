// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

// Package parser turns a token stream from pkg/lexer into a pkg/ast tree,
// implementing the precedence-climbing grammar of the Yamlet expression
// language (lambda, conditional, or/and/not, comparisons, additive,
// multiplicative/unary, juxtaposition composition, postfix, primary).
package parser

import (
	"fmt"
	"strconv"

	"github.com/JoshDreamland/Yamlet/pkg/ast"
	"github.com/JoshDreamland/Yamlet/pkg/filepos"
	"github.com/JoshDreamland/Yamlet/pkg/lexer"
)

// Error is a ParseError: a syntactically invalid expression.
type Error struct {
	Span filepos.Span
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: ParseError: %s", e.Span, e.Msg) }

// ParseExpr lexes and parses src (read from logical location file) as a
// single expression, and requires the entire input to be consumed.
func ParseExpr(src, file string) (ast.Node, error) {
	toks, err := lexer.Lex(src, file)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind != lexer.EOF {
		return nil, p.errf(p.cur().Span, "unexpected trailing input %q", p.cur().Text)
	}
	return n, nil
}

type parser struct {
	toks []lexer.Token
	pos  int
}

func (p *parser) cur() lexer.Token  { return p.toks[p.pos] }
func (p *parser) save() int         { return p.pos }
func (p *parser) restore(mark int)  { p.pos = mark }
func (p *parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if t.Kind != lexer.EOF {
		p.pos++
	}
	return t
}

func (p *parser) errf(span filepos.Span, format string, args ...interface{}) error {
	return &Error{Span: span, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) isPunct(text string) bool {
	t := p.cur()
	return t.Kind == lexer.Punct && t.Text == text
}

func (p *parser) isOp(text string) bool {
	t := p.cur()
	return t.Kind == lexer.Operator && t.Text == text
}

func (p *parser) isKeyword(text string) bool {
	t := p.cur()
	return t.Kind == lexer.Keyword && t.Text == text
}

func (p *parser) expect(kind lexer.Kind, text string) (lexer.Token, error) {
	t := p.cur()
	if t.Kind != kind || (text != "" && t.Text != text) {
		return t, p.errf(t.Span, "expected %q, got %q", text, t.Text)
	}
	return p.advance(), nil
}

// expr is the grammar's entry point: rule 1 (lambda) falling through to
// rule 2 (conditional) and below.
func (p *parser) expr() (ast.Node, error) {
	if n, ok, err := p.tryLambda(); err != nil {
		return nil, err
	} else if ok {
		return n, nil
	}
	return p.conditional()
}

func (p *parser) tryLambda() (ast.Node, bool, error) {
	start := p.save()
	span := p.cur().Span
	hadKeyword := false
	if p.isKeyword("lambda") {
		p.advance()
		hadKeyword = true
	}
	var params []string
	ok := p.isPunct(":") // zero-parameter lambda: `: body`
	for !ok && p.cur().Kind == lexer.Ident {
		params = append(params, p.advance().Text)
		if p.isPunct(",") {
			p.advance()
			continue
		}
		ok = p.isPunct(":")
		break
	}
	if !hadKeyword && len(params) == 0 {
		ok = false // a bare `: body` with no keyword is not a lambda
	}
	if !ok {
		if hadKeyword {
			return nil, false, p.errf(p.cur().Span, "expected parameter list and ':' after 'lambda'")
		}
		p.restore(start)
		return nil, false, nil
	}
	if _, err := p.expect(lexer.Punct, ":"); err != nil {
		return nil, false, err
	}
	body, err := p.expr()
	if err != nil {
		return nil, false, err
	}
	return ast.NewLambda(span, params, body), true, nil
}

// conditional: a if cond else b
func (p *parser) conditional() (ast.Node, error) {
	span := p.cur().Span
	then, err := p.or()
	if err != nil {
		return nil, err
	}
	if p.isKeyword("if") {
		p.advance()
		cond, err := p.or()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Keyword, "else"); err != nil {
			return nil, err
		}
		els, err := p.expr()
		if err != nil {
			return nil, err
		}
		return ast.NewConditional(span, cond, then, els), nil
	}
	return then, nil
}

func (p *parser) or() (ast.Node, error) {
	left, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.isOp("or") {
		span := p.advance().Span
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinOp(span, "or", left, right)
	}
	return left, nil
}

func (p *parser) and() (ast.Node, error) {
	left, err := p.not()
	if err != nil {
		return nil, err
	}
	for p.isOp("and") {
		span := p.advance().Span
		right, err := p.not()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinOp(span, "and", left, right)
	}
	return left, nil
}

func (p *parser) not() (ast.Node, error) {
	if p.isOp("not") {
		span := p.advance().Span
		operand, err := p.not()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryOp(span, "not", operand), nil
	}
	return p.comparison()
}

var compareOps = map[string]bool{
	"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
	"in": true, "is": true,
}

func (p *parser) comparison() (ast.Node, error) {
	left, err := p.additive()
	if err != nil {
		return nil, err
	}
	t := p.cur()
	if t.Kind == lexer.Operator && compareOps[t.Text] {
		span := p.advance().Span
		right, err := p.additive()
		if err != nil {
			return nil, err
		}
		return ast.NewBinOp(span, t.Text, left, right), nil
	}
	return left, nil
}

func (p *parser) additive() (ast.Node, error) {
	left, err := p.multiplicative()
	if err != nil {
		return nil, err
	}
	for p.isOp("+") || p.isOp("-") {
		t := p.advance()
		right, err := p.multiplicative()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinOp(t.Span, t.Text, left, right)
	}
	return left, nil
}

func (p *parser) multiplicative() (ast.Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.isOp("*") || p.isOp("/") || p.isOp("%") {
		t := p.advance()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinOp(t.Span, t.Text, left, right)
	}
	return left, nil
}

func (p *parser) unary() (ast.Node, error) {
	if p.isOp("-") {
		span := p.advance().Span
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryOp(span, "-", operand), nil
	}
	return p.composition()
}

// composition handles juxtaposition: two postfix expressions separated only
// by whitespace compose as tuples. It binds tighter than arithmetic but
// looser than postfix (call/index/attribute/extension).
func (p *parser) composition() (ast.Node, error) {
	left, err := p.postfix()
	if err != nil {
		return nil, err
	}
	for p.startsPrimary() {
		right, err := p.postfix()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinOp(right.Span(), "∘", left, right)
	}
	return left, nil
}

// startsPrimary reports whether the current token could begin another
// primary expression, used to detect juxtaposition without consuming.
func (p *parser) startsPrimary() bool {
	t := p.cur()
	switch t.Kind {
	case lexer.Ident, lexer.Int, lexer.Float, lexer.String:
		return true
	case lexer.Keyword:
		return t.Text == "true" || t.Text == "false" || t.Text == "null"
	case lexer.Punct:
		return t.Text == "(" || t.Text == "[" || t.Text == "{"
	default:
		return false
	}
}

func (p *parser) postfix() (ast.Node, error) {
	n, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.isPunct("("):
			span := p.advance().Span
			var args []ast.Node
			for !p.isPunct(")") {
				a, err := p.expr()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
				if p.isPunct(",") {
					p.advance()
					continue
				}
				break
			}
			if _, err := p.expect(lexer.Punct, ")"); err != nil {
				return nil, err
			}
			n = ast.NewCall(span, n, args)
		case p.isPunct("["):
			span := p.advance().Span
			idx, err := p.expr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.Punct, "]"); err != nil {
				return nil, err
			}
			n = ast.NewIndex(span, n, idx)
		case p.isPunct("."):
			span := p.advance().Span
			name, err := p.expect(lexer.Ident, "")
			if err != nil {
				return nil, err
			}
			n = ast.NewAttr(span, n, name.Text)
		case p.isPunct("{"):
			m, err := p.mapLit()
			if err != nil {
				return nil, err
			}
			n = ast.NewExtension(m.Span(), n, m)
		default:
			return n, nil
		}
	}
}

func (p *parser) primary() (ast.Node, error) {
	t := p.cur()
	switch {
	case t.Kind == lexer.Ident:
		p.advance()
		return ast.NewIdent(t.Span, t.Text), nil
	case t.Kind == lexer.Int:
		p.advance()
		v, err := strconv.ParseInt(t.Text, 10, 64)
		if err != nil {
			return nil, p.errf(t.Span, "invalid integer literal %q", t.Text)
		}
		return ast.NewIntLiteral(t.Span, v), nil
	case t.Kind == lexer.Float:
		p.advance()
		v, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return nil, p.errf(t.Span, "invalid float literal %q", t.Text)
		}
		return ast.NewFloatLiteral(t.Span, v), nil
	case t.Kind == lexer.String:
		p.advance()
		parts, err := SplitInterpolation(t.Text, t.Span)
		if err != nil {
			return nil, err
		}
		return ast.NewStringLit(t.Span, t.Text, parts), nil
	case t.Kind == lexer.Keyword && t.Text == "true":
		p.advance()
		return ast.NewBoolLiteral(t.Span, true), nil
	case t.Kind == lexer.Keyword && t.Text == "false":
		p.advance()
		return ast.NewBoolLiteral(t.Span, false), nil
	case t.Kind == lexer.Keyword && t.Text == "null":
		p.advance()
		return ast.NewNullLiteral(t.Span), nil
	case t.Kind == lexer.Keyword && t.Text == "cond":
		p.advance()
		return ast.NewIdent(t.Span, "cond"), nil
	case p.isPunct("("):
		p.advance()
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Punct, ")"); err != nil {
			return nil, err
		}
		return n, nil
	case p.isPunct("["):
		span := p.advance().Span
		var elems []ast.Node
		for !p.isPunct("]") {
			e, err := p.expr()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
			if p.isPunct(",") {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(lexer.Punct, "]"); err != nil {
			return nil, err
		}
		return ast.NewListLit(span, elems), nil
	case p.isPunct("{"):
		return p.mapLit()
	default:
		return nil, p.errf(t.Span, "unexpected token %q", t.Text)
	}
}

func (p *parser) mapLit() (*ast.MapLit, error) {
	span := p.cur().Span
	if _, err := p.expect(lexer.Punct, "{"); err != nil {
		return nil, err
	}
	var entries []ast.MapEntry
	for !p.isPunct("}") {
		keyTok := p.cur()
		var entry ast.MapEntry
		switch {
		case keyTok.Kind == lexer.Ident || keyTok.Kind == lexer.Keyword:
			p.advance()
			entry = ast.MapEntry{Key: keyTok.Text, KeySpan: keyTok.Span}
		case keyTok.Kind == lexer.String:
			p.advance()
			entry = ast.MapEntry{Key: keyTok.Text, KeyIsQuoted: true, KeySpan: keyTok.Span}
		default:
			return nil, p.errf(keyTok.Span, "expected mapping-literal key, got %q", keyTok.Text)
		}
		if _, err := p.expect(lexer.Punct, ":"); err != nil {
			return nil, err
		}
		val, err := p.expr()
		if err != nil {
			return nil, err
		}
		entry.Value = val
		entries = append(entries, entry)
		if p.isPunct(",") {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.Punct, "}"); err != nil {
		return nil, err
	}
	return ast.NewMapLit(span, entries), nil
}
