// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

package values

import (
	"github.com/JoshDreamland/Yamlet/pkg/ast"
	"github.com/JoshDreamland/Yamlet/pkg/provenance"
)

// Evaluator is implemented by pkg/eval.Evaluator. It is the seam that lets
// the value model force a Deferred without importing the evaluator package
// (which itself needs to import values for Value/Scope/Tuple).
type Evaluator interface {
	// Eval evaluates an expression AST against a scope, without touching
	// any memo cell.
	Eval(node ast.Node, scope *Scope) (Value, error)

	// Force resolves a Deferred, applying memoization and cycle detection
	// to detect self-referential cycles.
	Force(d *Deferred) (Value, error)
}

type cellState int

const (
	cellUnforced cellState = iota
	cellInProgress
	cellForced
)

// Deferred is `(ast, scope)` awaiting evaluation. Tuple.Get and
// Tuple.Items force it first; Tuple.RawGet and Tuple.RawItems return it
// unforced (pkg/compose relies on that). The memoization state machine itself
// is driven by pkg/eval.Evaluator.Force via the exported
// Begin/Finish/Abort methods below, so that the chain reported by a
// CycleDetected error can be built from the evaluator's own recursion
// rather than duplicated here.
type Deferred struct {
	AST   ast.Node
	Scope *Scope
	Eval  Evaluator

	// Label names this cell for CycleDetected chains and explain_value,
	// e.g. "key `coolbeans`".
	Label string

	state  cellState
	cached Value

	// trace records how the last successful Force computed this cell's
	// value, for ExplainValue. Nil until the cell has been forced at
	// least once.
	trace *provenance.Trace
}

func NewDeferred(node ast.Node, scope *Scope, ev Evaluator, label string) *Deferred {
	return &Deferred{AST: node, Scope: scope, Eval: ev, Label: label}
}

func (*Deferred) isValue() {}

func (d *Deferred) IsForced() bool      { return d.state == cellForced }
func (d *Deferred) IsInProgress() bool  { return d.state == cellInProgress }
func (d *Deferred) CachedValue() Value  { return d.cached }
func (d *Deferred) BeginForcing()       { d.state = cellInProgress }
func (d *Deferred) FinishForcing(v Value) { d.state = cellForced; d.cached = v }
func (d *Deferred) AbortForcing()       { d.state = cellUnforced }

// Trace returns the dependency trace recorded by the most recent
// successful Force, or nil if the cell has never been forced.
func (d *Deferred) Trace() *provenance.Trace { return d.trace }

// SetTrace is called by pkg/eval.Evaluator.Force once a cell's value has
// been computed.
func (d *Deferred) SetTrace(t *provenance.Trace) { d.trace = t }

// Force delegates to the Deferred's own Evaluator; it is the path most
// external callers (Tuple.Get, format slots) use to read a cell's value.
func (d *Deferred) Force() (Value, error) { return d.Eval.Force(d) }
