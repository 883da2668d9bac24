// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

package format_test

import (
	"testing"

	"github.com/JoshDreamland/Yamlet/pkg/ast"
	"github.com/JoshDreamland/Yamlet/pkg/filepos"
	"github.com/JoshDreamland/Yamlet/pkg/format"
	"github.com/JoshDreamland/Yamlet/pkg/values"
)

func span() filepos.Span { return filepos.NewUnknownInFile("<test>") }

func mustStringify(t *testing.T, v values.Value, style format.Style) string {
	t.Helper()
	s, err := format.Stringify(v, style)
	if err != nil {
		t.Fatalf("Stringify: %s", err)
	}
	return s
}

func TestStringifyScalars(t *testing.T) {
	cases := []struct {
		v    values.Value
		want string
	}{
		{values.Null{}, "null"},
		{values.Bool(true), "true"},
		{values.Bool(false), "false"},
		{values.Int(42), "42"},
		{values.Float(3.5), "3.5"},
		{values.Str("hi"), "hi"},
	}
	for _, c := range cases {
		if got := mustStringify(t, c.v, format.Terse); got != c.want {
			t.Errorf("Stringify(%#v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestStringifyFloatKeepsFractionalPart(t *testing.T) {
	if got := mustStringify(t, values.Float(2), format.Terse); got != "2.0" {
		t.Fatalf("Stringify(2.0) = %q, want %q (must not read as an int)", got, "2.0")
	}
}

func TestStringifyListQuotesStringElements(t *testing.T) {
	// Strings nested inside a container are quoted so the container's own
	// syntax round-trips; a bare top-level string is not (see
	// TestStringifyScalars).
	list := values.List{values.Str("a"), values.Int(1)}
	got := mustStringify(t, list, format.Terse)
	if got != `["a", 1]` {
		t.Fatalf("got %q, want %q", got, `["a", 1]`)
	}
}

func TestStringifyTupleRendersKeyValuePairs(t *testing.T) {
	scope := values.NewScope(nil, nil, span())
	tup := values.NewTuple(scope, span())
	tup.Set("x", values.Int(1))
	tup.Set("y", values.Str("hi"))

	got := mustStringify(t, tup, format.Terse)
	if got != `{x: 1, y: "hi"}` {
		t.Fatalf("got %q", got)
	}
}

func TestStringifyDiagnosticAnnotatesComposites(t *testing.T) {
	list := values.List{values.Int(1)}
	if got := mustStringify(t, list, format.Diagnostic); got != "list[1]" {
		t.Fatalf("got %q, want %q", got, "list[1]")
	}

	scope := values.NewScope(nil, nil, span())
	tup := values.NewTuple(scope, span())
	tup.Set("x", values.Int(1))
	if got := mustStringify(t, tup, format.Diagnostic); got != "tuple{x: 1}" {
		t.Fatalf("got %q, want %q", got, "tuple{x: 1}")
	}
}

func TestStringifyLambdaRendersParams(t *testing.T) {
	l := &values.Lambda{Params: []string{"a", "b"}}
	if got := mustStringify(t, l, format.Terse); got != "<lambda(a, b)>" {
		t.Fatalf("got %q", got)
	}
}

func TestStringifyForcesDeferred(t *testing.T) {
	ev := &stubEvaluator{result: values.Int(7)}
	scope := values.NewScope(nil, nil, span())
	d := values.NewDeferred(nil, scope, ev, "key `x`")
	if got := mustStringify(t, d, format.Terse); got != "7" {
		t.Fatalf("got %q, want %q", got, "7")
	}
}

type stubEvaluator struct{ result values.Value }

func (e *stubEvaluator) Eval(_ ast.Node, _ *values.Scope) (values.Value, error) {
	return e.result, nil
}
func (e *stubEvaluator) Force(d *values.Deferred) (values.Value, error) {
	return e.result, nil
}
