// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

// Package ast defines the expression-language syntax tree shared by `!expr`,
// `!fmt` slots, `!lambda` bodies, and `!composite` parts.
package ast

import "github.com/JoshDreamland/Yamlet/pkg/filepos"

// Node is implemented by every expression AST node. Every node carries the
// Span of the source text it was parsed from, so evaluation errors and
// explain_value traces can point back at it.
type Node interface {
	Span() filepos.Span
	node()
}

type base struct{ span filepos.Span }

func (b base) Span() filepos.Span { return b.span }
func (base) node()                {}

// Ident is a bare identifier reference, including the reserved names `up`,
// `super`, `true`, `false`, and `null`.
type Ident struct {
	base
	Name string
}

func NewIdent(span filepos.Span, name string) *Ident { return &Ident{base{span}, name} }

// Literal kinds.
type LitKind int

const (
	LitInt LitKind = iota
	LitFloat
	LitBool
	LitNull
)

// Literal is a single scalar constant: an integer, float, boolean, or null.
type Literal struct {
	base
	Kind  LitKind
	Int   int64
	Float float64
	Bool  bool
}

func NewIntLiteral(span filepos.Span, v int64) *Literal {
	return &Literal{base: base{span}, Kind: LitInt, Int: v}
}
func NewFloatLiteral(span filepos.Span, v float64) *Literal {
	return &Literal{base: base{span}, Kind: LitFloat, Float: v}
}
func NewBoolLiteral(span filepos.Span, v bool) *Literal {
	return &Literal{base: base{span}, Kind: LitBool, Bool: v}
}
func NewNullLiteral(span filepos.Span) *Literal { return &Literal{base: base{span}, Kind: LitNull} }

// StringLit is a quoted string literal. Its Parts, if non-nil, record a
// format-string decomposition (the same interpolation machinery used by
// `!fmt`) because quoted string literals inside `!expr` also undergo
// `{...}` interpolation per spec.
type StringLit struct {
	base
	Raw   string
	Parts []FormatPart
}

func NewStringLit(span filepos.Span, raw string, parts []FormatPart) *StringLit {
	return &StringLit{base{span}, raw, parts}
}

// FormatPart is either a literal run of text or an embedded expression slot,
// as produced by parsing a `!fmt` string or an interpolated string literal.
type FormatPart struct {
	Literal string // valid when Expr == nil
	Expr    Node   // valid when non-nil
}

// FormatString is the AST for an entire `!fmt` scalar: a sequence of parts.
type FormatString struct {
	base
	Parts []FormatPart
}

func NewFormatString(span filepos.Span, parts []FormatPart) *FormatString {
	return &FormatString{base{span}, parts}
}

// ListLit is `[a, b, ...]`.
type ListLit struct {
	base
	Elems []Node
}

func NewListLit(span filepos.Span, elems []Node) *ListLit { return &ListLit{base{span}, elems} }

// MapEntry is one `key: value` pair of a `{...}` mapping literal. If
// KeyIsQuoted, Key is format-interpolated in the enclosing scope at
// construction time instead of being taken literally.
type MapEntry struct {
	Key         string
	KeyIsQuoted bool
	KeySpan     filepos.Span
	Value       Node
}

// MapLit is `{ key: expr, ... }`.
type MapLit struct {
	base
	Entries []MapEntry
}

func NewMapLit(span filepos.Span, entries []MapEntry) *MapLit { return &MapLit{base{span}, entries} }

// BinOp is a binary operator application: arithmetic, comparison,
// logical and/or, membership (`in`), identity (`is`), or composition
// juxtaposition (`Op == "∘"`).
type BinOp struct {
	base
	Op          string
	Left, Right Node
}

func NewBinOp(span filepos.Span, op string, l, r Node) *BinOp {
	return &BinOp{base{span}, op, l, r}
}

// UnaryOp is `-x` or `not x`.
type UnaryOp struct {
	base
	Op      string
	Operand Node
}

func NewUnaryOp(span filepos.Span, op string, operand Node) *UnaryOp {
	return &UnaryOp{base{span}, op, operand}
}

// Conditional is `a if cond else b`.
type Conditional struct {
	base
	Cond, Then, Else Node
}

func NewConditional(span filepos.Span, cond, then, els Node) *Conditional {
	return &Conditional{base{span}, cond, then, els}
}

// Call is `f(args...)`.
type Call struct {
	base
	Fn   Node
	Args []Node
}

func NewCall(span filepos.Span, fn Node, args []Node) *Call { return &Call{base{span}, fn, args} }

// Index is `x[i]`.
type Index struct {
	base
	Target, Key Node
}

func NewIndex(span filepos.Span, target, key Node) *Index { return &Index{base{span}, target, key} }

// Attr is `x.name`.
type Attr struct {
	base
	Target Node
	Name   string
}

func NewAttr(span filepos.Span, target Node, name string) *Attr { return &Attr{base{span}, target, name} }

// Extension is `x { mapping-literal }`: sugar for composing x with an
// anonymous tuple built from the mapping literal.
type Extension struct {
	base
	Target Node
	With   *MapLit
}

func NewExtension(span filepos.Span, target Node, with *MapLit) *Extension {
	return &Extension{base{span}, target, with}
}

// Composite is the AST form of a `!composite` YAML sequence: a flat list
// of terms to fold together by composition, skipping null (absent) ones,
// with `!if`/`!elif`/`!else` runs already collapsed into a single
// Conditional term by the YAML front end.
type Composite struct {
	base
	Terms []Node
}

func NewComposite(span filepos.Span, terms []Node) *Composite { return &Composite{base{span}, terms} }

// Lambda is `params: body`, optionally preceded by the `lambda` keyword.
type Lambda struct {
	base
	Params []string
	Body   Node
}

func NewLambda(span filepos.Span, params []string, body Node) *Lambda {
	return &Lambda{base{span}, params, body}
}
