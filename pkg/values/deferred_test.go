// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

package values_test

import (
	"errors"
	"testing"

	"github.com/JoshDreamland/Yamlet/pkg/ast"
	"github.com/JoshDreamland/Yamlet/pkg/provenance"
	"github.com/JoshDreamland/Yamlet/pkg/values"
)

// failingEvaluator forces a Deferred exactly once, always returning an
// error and leaving the cell unforced, so AbortForcing's reset can be
// exercised.
type failingEvaluator struct{ calls int }

func (e *failingEvaluator) Eval(_ ast.Node, _ *values.Scope) (values.Value, error) {
	e.calls++
	return nil, errors.New("boom")
}

func (e *failingEvaluator) Force(d *values.Deferred) (values.Value, error) {
	d.BeginForcing()
	v, err := e.Eval(d.AST, d.Scope)
	if err != nil {
		d.AbortForcing()
		return nil, err
	}
	d.FinishForcing(v)
	return v, nil
}

func TestDeferredStartsUnforced(t *testing.T) {
	scope := values.NewScope(nil, nil, span())
	d := values.NewDeferred(ast.NewIntLiteral(span(), 1), scope, &failingEvaluator{}, "key `x`")
	if d.IsForced() || d.IsInProgress() {
		t.Fatalf("a fresh Deferred should be neither forced nor in progress")
	}
}

func TestDeferredAbortForcingAllowsRetry(t *testing.T) {
	scope := values.NewScope(nil, nil, span())
	ev := &failingEvaluator{}
	d := values.NewDeferred(ast.NewIntLiteral(span(), 1), scope, ev, "key `x`")

	if _, err := d.Force(); err == nil {
		t.Fatalf("expected the first Force to fail")
	}
	if d.IsForced() || d.IsInProgress() {
		t.Fatalf("a failed Force must leave the cell unforced, not stuck in-progress")
	}
	if _, err := d.Force(); err == nil {
		t.Fatalf("expected the retried Force to fail again")
	}
	if ev.calls != 2 {
		t.Fatalf("evaluator called %d times, want 2 (no memoization of a failed force)", ev.calls)
	}
}

func TestDeferredTraceDefaultsToNil(t *testing.T) {
	scope := values.NewScope(nil, nil, span())
	d := values.NewDeferred(ast.NewIntLiteral(span(), 1), scope, &failingEvaluator{}, "key `x`")
	if d.Trace() != nil {
		t.Fatalf("a never-forced Deferred should report a nil trace")
	}
}

func TestDeferredSetTraceIsObservable(t *testing.T) {
	scope := values.NewScope(nil, nil, span())
	d := values.NewDeferred(ast.NewIntLiteral(span(), 1), scope, &failingEvaluator{}, "key `x`")
	tr := &provenance.Trace{}
	d.SetTrace(tr)
	if d.Trace() != tr {
		t.Fatalf("Trace() = %v, want %v", d.Trace(), tr)
	}
}
