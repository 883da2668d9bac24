// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

// Package values implements the Yamlet value model: the tagged variant of
// concrete values, the lazy Deferred form, the Tuple
// composite type, and the Scope chain used for dynamic name resolution.
package values

import "github.com/JoshDreamland/Yamlet/pkg/ast"

// Value is the closed sum of concrete Yamlet values. It is implemented only
// by the types in this package: Str, Int, Float, Bool, Null,
// ExternalSentinel, List, *Tuple, *Lambda, and *Deferred (which Tuple.Get
// and Tuple.Items force before returning).
type Value interface {
	isValue()
}

type Str string
type Int int64
type Float float64
type Bool bool

// Null is the reserved erasure sentinel: assigning it to a key during
// composition removes that key from the composite.
type Null struct{}

// ExternalSentinel marks a value supplied from outside the document; name
// lookup and `!composite` reject it with a type-mismatch error.
type ExternalSentinel struct{}

type List []Value

func (Str) isValue()              {}
func (Int) isValue()               {}
func (Float) isValue()             {}
func (Bool) isValue()              {}
func (Null) isValue()              {}
func (ExternalSentinel) isValue()  {}
func (List) isValue()              {}

// Lambda is a callable value: a parameter list, a body AST, and the scope
// captured at the point the `!lambda` (or expression-level lambda) was
// constructed.
type Lambda struct {
	Params   []string
	Body     ast.Node
	Captured *Scope
}

func (*Lambda) isValue() {}
