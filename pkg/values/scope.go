// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

package values

import "github.com/JoshDreamland/Yamlet/pkg/filepos"

// Scope is the name-resolution context for an expression: a tuple of
// locally-bound names, a lexical parent (Up), and a composition
// predecessor (Super). Scopes are immutable after construction; composing
// tuples always builds a fresh Scope rather than mutating an existing one.
type Scope struct {
	Locals *Tuple
	Up     *Scope
	Super  *Scope
	Span   filepos.Span
}

// NewScope constructs a Scope whose Locals tuple is set later by the
// caller (tuple construction is mutually recursive with scope
// construction: a Tuple's OwnScope points back at the Tuple itself).
func NewScope(up, super *Scope, span filepos.Span) *Scope {
	return &Scope{Up: up, Super: super, Span: span}
}
