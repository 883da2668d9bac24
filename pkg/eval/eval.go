// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

// Package eval implements values.Evaluator: AST evaluation against a Scope,
// Deferred forcing with memoization and cycle detection, operator
// semantics, lambda application, and the expression-language built-in
// functions.
package eval

import (
	"fmt"
	"math"
	"strings"

	"github.com/JoshDreamland/Yamlet/pkg/ast"
	"github.com/JoshDreamland/Yamlet/pkg/compose"
	"github.com/JoshDreamland/Yamlet/pkg/filepos"
	"github.com/JoshDreamland/Yamlet/pkg/format"
	"github.com/JoshDreamland/Yamlet/pkg/parser"
	"github.com/JoshDreamland/Yamlet/pkg/provenance"
	"github.com/JoshDreamland/Yamlet/pkg/values"
	"github.com/JoshDreamland/Yamlet/pkg/yerr"
)

// CachingMode selects how aggressively Deferred cells memoize their
// result.
type CachingMode int

const (
	// CacheValues memoizes each cell's first successful result (the
	// default).
	CacheValues CachingMode = iota
	// CacheNothing re-evaluates every access; useful for host functions
	// with external side effects or nondeterminism.
	CacheNothing
	// CacheDebug memoizes but re-evaluates on every access to assert the
	// cached and freshly computed values agree, catching impurity bugs.
	CacheDebug
)

// HostFunc is a function supplied by the embedding application (registered
// via loader.Options.Functions), invoked with already-evaluated arguments.
type HostFunc func(ev *Evaluator, args []values.Value, span filepos.Span) (values.Value, error)

// DefaultMaxDepth bounds recursive Force/Eval nesting absent an explicit
// Options.MaxDepth.
const DefaultMaxDepth = 512

// Evaluator drives expression evaluation and Deferred forcing. It
// satisfies values.Evaluator, and is shared by every Deferred and Tuple
// produced while loading one document tree.
type Evaluator struct {
	Functions map[string]HostFunc
	Globals   map[string]values.Value
	Caching   CachingMode
	MaxDepth  int

	// StringifyStyle controls how format.Stringify renders a value forced
	// into a `!fmt`/string-interpolation slot (format.Terse by default).
	StringifyStyle format.Style

	depth int
	stack []string

	// traceStack is the chain of in-progress Traces, used to attribute a
	// nested Force call as a dependency of whichever cell is currently
	// being forced (for ExplainValue).
	traceStack []*provenance.Trace
}

// New constructs an Evaluator. maxDepth <= 0 selects DefaultMaxDepth.
func New(functions map[string]HostFunc, globals map[string]values.Value, caching CachingMode, maxDepth int) *Evaluator {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Evaluator{Functions: functions, Globals: globals, Caching: caching, MaxDepth: maxDepth, StringifyStyle: format.Terse}
}

var _ values.Evaluator = (*Evaluator)(nil)

// Force resolves d's cached value, applying the memoization state machine
// unforced cells are evaluated and (depending on
// Caching) cached; cells already in progress signal CycleDetected.
func (ev *Evaluator) Force(d *values.Deferred) (values.Value, error) {
	if ev.Caching == CacheValues && d.IsForced() {
		return d.CachedValue(), nil
	}
	if d.IsInProgress() {
		chain := append(append([]string{}, ev.stack...), d.Label)
		return nil, yerr.NewCycleDetectedError(d.AST.Span(), chain)
	}

	wasForced, prior := d.IsForced(), d.CachedValue()
	d.BeginForcing()
	ev.stack = append(ev.stack, d.Label)
	ev.depth++
	if ev.depth > ev.MaxDepth {
		ev.depth--
		ev.stack = ev.stack[:len(ev.stack)-1]
		d.AbortForcing()
		return nil, yerr.NewMaxDepthError(d.AST.Span(), ev.MaxDepth)
	}

	tr := provenance.New(d.Label, d.AST.Span())
	if len(ev.traceStack) > 0 {
		ev.traceStack[len(ev.traceStack)-1].AddDependency(tr)
	}
	ev.traceStack = append(ev.traceStack, tr)

	v, err := ev.Eval(d.AST, d.Scope)

	ev.traceStack = ev.traceStack[:len(ev.traceStack)-1]
	ev.depth--
	ev.stack = ev.stack[:len(ev.stack)-1]

	if err != nil {
		d.AbortForcing()
		return nil, err
	}

	switch ev.Caching {
	case CacheNothing:
		d.AbortForcing()
	case CacheDebug:
		if wasForced && !valuesEqual(prior, v) {
			d.FinishForcing(prior)
			return nil, fmt.Errorf("cache debug: %s produced %v then %v", d.Label, prior, v)
		}
		d.FinishForcing(v)
		d.SetTrace(tr)
	default:
		d.FinishForcing(v)
		d.SetTrace(tr)
	}
	return v, nil
}

// Eval evaluates node against scope without consulting any memo cell; it
// is what Force calls once per cell, and what callers use for AST forms
// that are never memoized on their own (list/tuple literal bodies, call
// arguments, operands of operators).
func (ev *Evaluator) Eval(node ast.Node, scope *values.Scope) (values.Value, error) {
	switch n := node.(type) {
	case *ast.Ident:
		return ev.evalIdent(n, scope)
	case *ast.Literal:
		return evalLiteral(n), nil
	case *ast.StringLit:
		if n.Parts == nil {
			return values.Str(n.Raw), nil
		}
		return ev.evalFormatParts(n.Parts, scope)
	case *ast.FormatString:
		return ev.evalFormatParts(n.Parts, scope)
	case *ast.ListLit:
		return ev.evalListLit(n, scope)
	case *ast.MapLit:
		return ev.buildMapLit(n, scope)
	case *ast.Composite:
		return ev.evalComposite(n, scope)
	case *ast.BinOp:
		return ev.evalBinOp(n, scope)
	case *ast.UnaryOp:
		return ev.evalUnaryOp(n, scope)
	case *ast.Conditional:
		return ev.evalConditional(n, scope)
	case *ast.Call:
		return ev.evalCall(n, scope)
	case *ast.Index:
		return ev.evalIndex(n, scope)
	case *ast.Attr:
		return ev.evalAttr(n, scope)
	case *ast.Extension:
		return ev.evalExtension(n, scope)
	case *ast.Lambda:
		return &values.Lambda{Params: n.Params, Body: n.Body, Captured: scope}, nil
	}
	return nil, yerr.NewTypeMismatchError(node.Span(), "evaluation", fmt.Sprintf("%T", node), "a recognized expression form")
}

func evalLiteral(n *ast.Literal) values.Value {
	switch n.Kind {
	case ast.LitInt:
		return values.Int(n.Int)
	case ast.LitFloat:
		return values.Float(n.Float)
	case ast.LitBool:
		return values.Bool(n.Bool)
	default:
		return values.Null{}
	}
}

// evalIdent resolves a bare name: `up`/`super` access the
// Scope chain directly; everything else walks scope.Locals then scope.Up
// repeatedly (composition already folds every ancestor's keys into
// Locals, so Super is never walked implicitly), then falls back to
// Globals. A key whose forced value is literally `null` is treated as
// absent at that level and lookup continues outward -- this lets an
// inner tuple "unset" an inherited name back to its enclosing scope's
// binding rather than shadowing it with null.
func (ev *Evaluator) evalIdent(n *ast.Ident, scope *values.Scope) (values.Value, error) {
	switch n.Name {
	case "up":
		if scope.Up == nil {
			return nil, yerr.NewUndefinedNameError(n.Span(), "up")
		}
		return scope.Up.Locals, nil
	case "super":
		if scope.Super == nil {
			return nil, yerr.NewUndefinedNameError(n.Span(), "super")
		}
		return scope.Super.Locals, nil
	}

	for s := scope; s != nil; s = s.Up {
		if s.Locals == nil || !s.Locals.Has(n.Name) {
			continue
		}
		v, err := s.Locals.Get(n.Name)
		if err != nil {
			return nil, err
		}
		if _, isNull := v.(values.Null); isNull {
			continue
		}
		if _, isExternal := v.(values.ExternalSentinel); isExternal {
			return nil, yerr.NewTypeMismatchError(n.Span(), "name lookup", "external", "a resolved value")
		}
		return v, nil
	}
	if g, ok := ev.Globals[n.Name]; ok {
		return g, nil
	}
	return nil, yerr.NewUndefinedNameError(n.Span(), n.Name)
}

func (ev *Evaluator) evalFormatParts(parts []ast.FormatPart, scope *values.Scope) (values.Value, error) {
	if len(parts) == 1 && parts[0].Expr == nil {
		return values.Str(parts[0].Literal), nil
	}
	result := ""
	for _, p := range parts {
		if p.Expr == nil {
			result += p.Literal
			continue
		}
		v, err := ev.Eval(p.Expr, scope)
		if err != nil {
			return nil, err
		}
		s, err := format.Stringify(v, ev.StringifyStyle)
		if err != nil {
			return nil, err
		}
		result += s
	}
	return values.Str(result), nil
}

func (ev *Evaluator) evalListLit(n *ast.ListLit, scope *values.Scope) (values.Value, error) {
	out := make(values.List, len(n.Elems))
	for i, e := range n.Elems {
		v, err := ev.Eval(e, scope)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// buildMapLit evaluates a `{...}` mapping literal into a fresh Tuple.
// Nested mapping literals are recursed into eagerly (they are
// Tuple-valued, not deferred); every other entry is wrapped as a Deferred
// cell over the composite's own scope, so each access re-evaluates from
// (and memoizes against) that scope rather than the literal's lexical
// position.
func (ev *Evaluator) buildMapLit(n *ast.MapLit, scope *values.Scope) (*values.Tuple, error) {
	newScope := values.NewScope(scope, nil, n.Span())
	t := values.NewTuple(newScope, n.Span())
	for _, entry := range n.Entries {
		key := entry.Key
		if entry.KeyIsQuoted {
			parts, err := parser.SplitInterpolation(entry.Key, entry.KeySpan)
			if err != nil {
				return nil, err
			}
			kv, err := ev.evalFormatParts(parts, scope)
			if err != nil {
				return nil, err
			}
			key = string(kv.(values.Str))
		}
		if nested, ok := entry.Value.(*ast.MapLit); ok {
			nt, err := ev.buildMapLit(nested, newScope)
			if err != nil {
				return nil, err
			}
			t.Set(key, nt)
			continue
		}
		t.Set(key, values.NewDeferred(entry.Value, newScope, ev, "key `"+key+"`"))
	}
	return t, nil
}

// evalComposite implements `!composite`'s term fold (grounded on
// original_source/yamlet.py's FlatCompositor): every term is evaluated,
// `external` is rejected, null terms (such as a conditional ladder with no
// taken branch) are dropped, and if more than one term survives, all must be
// tuples to be composed together -- unless none are, in which case the
// last term wins (this is how `!composite`
// double as a conditional ladder whose final branch is a plain scalar).
func (ev *Evaluator) evalComposite(n *ast.Composite, scope *values.Scope) (values.Value, error) {
	active := make([]values.Value, 0, len(n.Terms))
	for _, term := range n.Terms {
		v, err := ev.Eval(term, scope)
		if err != nil {
			return nil, err
		}
		if _, isExternal := v.(values.ExternalSentinel); isExternal {
			return nil, yerr.NewTypeMismatchError(term.Span(), "!composite", "external", "a resolved value")
		}
		if _, isNull := v.(values.Null); isNull {
			continue
		}
		active = append(active, v)
	}
	if len(active) == 0 {
		return nil, yerr.NewTypeMismatchError(n.Span(), "!composite", "no terms", "at least one term")
	}
	if len(active) == 1 {
		return active[0], nil
	}

	tuples := make([]*values.Tuple, 0, len(active))
	for _, v := range active {
		if t, ok := v.(*values.Tuple); ok {
			tuples = append(tuples, t)
		}
	}
	if len(tuples) == 0 {
		return active[len(active)-1], nil
	}
	if len(tuples) != len(active) {
		return nil, yerr.NewTypeMismatchError(n.Span(), "!composite", "a mix of tuple and non-tuple terms", "all terms to be tuples")
	}
	return compose.ComposeAll(tuples, scope, n.Span(), ev)
}

func (ev *Evaluator) evalConditional(n *ast.Conditional, scope *values.Scope) (values.Value, error) {
	cond, err := ev.Eval(n.Cond, scope)
	if err != nil {
		return nil, err
	}
	if Truthy(cond) {
		return ev.Eval(n.Then, scope)
	}
	return ev.Eval(n.Else, scope)
}

func (ev *Evaluator) evalUnaryOp(n *ast.UnaryOp, scope *values.Scope) (values.Value, error) {
	v, err := ev.Eval(n.Operand, scope)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "not":
		return values.Bool(!Truthy(v)), nil
	case "-":
		switch x := v.(type) {
		case values.Int:
			return -x, nil
		case values.Float:
			return -x, nil
		}
		return nil, yerr.NewTypeMismatchError(n.Span(), "unary -", typeName(v), "int or float")
	}
	return nil, yerr.NewTypeMismatchError(n.Span(), "unary operator "+n.Op, typeName(v), "")
}

func (ev *Evaluator) evalBinOp(n *ast.BinOp, scope *values.Scope) (values.Value, error) {
	switch n.Op {
	case "and":
		l, err := ev.Eval(n.Left, scope)
		if err != nil {
			return nil, err
		}
		if !Truthy(l) {
			return l, nil
		}
		return ev.Eval(n.Right, scope)
	case "or":
		l, err := ev.Eval(n.Left, scope)
		if err != nil {
			return nil, err
		}
		if Truthy(l) {
			return l, nil
		}
		return ev.Eval(n.Right, scope)
	}

	l, err := ev.Eval(n.Left, scope)
	if err != nil {
		return nil, err
	}
	r, err := ev.Eval(n.Right, scope)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case "∘":
		return ev.composeValues(l, r, scope, n.Span())
	case "+":
		return addValues(l, r, n.Span())
	case "-", "*", "/", "%":
		return arithValues(n.Op, l, r, n.Span())
	case "==":
		return values.Bool(valuesEqual(l, r)), nil
	case "!=":
		return values.Bool(!valuesEqual(l, r)), nil
	case "<", "<=", ">", ">=":
		return compareOrdered(n.Op, l, r, n.Span())
	case "in":
		return containsValue(l, r, n.Span())
	case "is":
		return values.Bool(isIdentical(l, r)), nil
	}
	return nil, yerr.NewTypeMismatchError(n.Span(), "binary operator "+n.Op, typeName(l), "")
}

func (ev *Evaluator) composeValues(l, r values.Value, scope *values.Scope, span filepos.Span) (values.Value, error) {
	lt, lok := l.(*values.Tuple)
	rt, rok := r.(*values.Tuple)
	if !lok || !rok {
		return nil, yerr.NewTypeMismatchError(span, "composition `a b`", typeName(l)+" and "+typeName(r), "two tuples")
	}
	return compose.Compose(lt, rt, scope, span, ev)
}

func (ev *Evaluator) evalCall(n *ast.Call, scope *values.Scope) (values.Value, error) {
	if id, ok := n.Fn.(*ast.Ident); ok {
		if id.Name == "cond" {
			return ev.evalCondBuiltin(n, scope)
		}
		if hf, ok := ev.Functions[id.Name]; ok {
			args, err := ev.evalArgs(n.Args, scope)
			if err != nil {
				return nil, err
			}
			return hf(ev, args, n.Span())
		}
		if bf, ok := stdlibFuncs[id.Name]; ok {
			args, err := ev.evalArgs(n.Args, scope)
			if err != nil {
				return nil, err
			}
			return bf(ev, args, n.Span())
		}
	}

	fn, err := ev.Eval(n.Fn, scope)
	if err != nil {
		return nil, err
	}
	lambda, ok := fn.(*values.Lambda)
	if !ok {
		return nil, yerr.NewTypeMismatchError(n.Span(), "call", typeName(fn), "a function or lambda")
	}
	args, err := ev.evalArgs(n.Args, scope)
	if err != nil {
		return nil, err
	}
	return ev.ApplyLambda(lambda, args, n.Span())
}

func (ev *Evaluator) evalCondBuiltin(n *ast.Call, scope *values.Scope) (values.Value, error) {
	if len(n.Args) != 3 {
		return nil, yerr.NewArityError(n.Span(), "cond", len(n.Args), 3)
	}
	c, err := ev.Eval(n.Args[0], scope)
	if err != nil {
		return nil, err
	}
	if Truthy(c) {
		return ev.Eval(n.Args[1], scope)
	}
	return ev.Eval(n.Args[2], scope)
}

func (ev *Evaluator) evalArgs(nodes []ast.Node, scope *values.Scope) ([]values.Value, error) {
	out := make([]values.Value, len(nodes))
	for i, a := range nodes {
		v, err := ev.Eval(a, scope)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ApplyLambda invokes l with already-evaluated args: a fresh, uncomposed
// Tuple binds the parameter names over l's captured scope, and the body
// is evaluated against that Tuple's scope.
func (ev *Evaluator) ApplyLambda(l *values.Lambda, args []values.Value, span filepos.Span) (values.Value, error) {
	if len(args) != len(l.Params) {
		return nil, yerr.NewArityError(span, "lambda", len(args), len(l.Params))
	}
	bodyScope := values.NewScope(l.Captured, nil, span)
	frame := values.NewTuple(bodyScope, span)
	for i, p := range l.Params {
		frame.Set(p, args[i])
	}
	return ev.Eval(l.Body, bodyScope)
}

func (ev *Evaluator) evalIndex(n *ast.Index, scope *values.Scope) (values.Value, error) {
	target, err := ev.Eval(n.Target, scope)
	if err != nil {
		return nil, err
	}
	key, err := ev.Eval(n.Key, scope)
	if err != nil {
		return nil, err
	}
	switch t := target.(type) {
	case values.List:
		idx, ok := key.(values.Int)
		if !ok {
			return nil, yerr.NewTypeMismatchError(n.Span(), "list index", typeName(key), "int")
		}
		i := int(idx)
		if i < 0 {
			i += len(t)
		}
		if i < 0 || i >= len(t) {
			return nil, yerr.NewIndexOutOfRangeError(n.Span(), int(idx), len(t))
		}
		return values.Force(t[i])
	case *values.Tuple:
		k, ok := key.(values.Str)
		if !ok {
			return nil, yerr.NewTypeMismatchError(n.Span(), "tuple index", typeName(key), "string")
		}
		return t.Get(string(k))
	case values.Str:
		idx, ok := key.(values.Int)
		if !ok {
			return nil, yerr.NewTypeMismatchError(n.Span(), "string index", typeName(key), "int")
		}
		runes := []rune(string(t))
		i := int(idx)
		if i < 0 {
			i += len(runes)
		}
		if i < 0 || i >= len(runes) {
			return nil, yerr.NewIndexOutOfRangeError(n.Span(), int(idx), len(runes))
		}
		return values.Str(string(runes[i])), nil
	}
	return nil, yerr.NewTypeMismatchError(n.Span(), "index", typeName(target), "list, tuple, or string")
}

func (ev *Evaluator) evalAttr(n *ast.Attr, scope *values.Scope) (values.Value, error) {
	target, err := ev.Eval(n.Target, scope)
	if err != nil {
		return nil, err
	}
	t, ok := target.(*values.Tuple)
	if !ok {
		return nil, yerr.NewTypeMismatchError(n.Span(), "attribute `."+n.Name+"`", typeName(target), "a tuple")
	}
	switch n.Name {
	case "up":
		if t.OwnScope.Up == nil {
			return nil, yerr.NewUndefinedNameError(n.Span(), "up")
		}
		return t.OwnScope.Up.Locals, nil
	case "super":
		if t.OwnScope.Super == nil {
			return nil, yerr.NewUndefinedNameError(n.Span(), "super")
		}
		return t.OwnScope.Super.Locals, nil
	}
	return t.Get(n.Name)
}

func (ev *Evaluator) evalExtension(n *ast.Extension, scope *values.Scope) (values.Value, error) {
	targetVal, err := ev.Eval(n.Target, scope)
	if err != nil {
		return nil, err
	}
	target, ok := targetVal.(*values.Tuple)
	if !ok {
		return nil, yerr.NewTypeMismatchError(n.Span(), "extension `{...}`", typeName(targetVal), "a tuple")
	}
	anon, err := ev.buildMapLit(n.With, scope)
	if err != nil {
		return nil, err
	}
	return compose.Extend(target, anon, scope, n.Span(), ev)
}

// Truthy implements Yamlet's boolean-context conversion:
// null, zero, empty string/list, and empty tuple are false.
func Truthy(v values.Value) bool {
	switch x := v.(type) {
	case values.Null:
		return false
	case values.Bool:
		return bool(x)
	case values.Int:
		return x != 0
	case values.Float:
		return x != 0
	case values.Str:
		return len(x) > 0
	case values.List:
		return len(x) > 0
	case *values.Tuple:
		return x.Len() > 0
	default:
		return true
	}
}

func typeName(v values.Value) string {
	switch v.(type) {
	case values.Null:
		return "null"
	case values.ExternalSentinel:
		return "external"
	case values.Bool:
		return "bool"
	case values.Int:
		return "int"
	case values.Float:
		return "float"
	case values.Str:
		return "string"
	case values.List:
		return "list"
	case *values.Tuple:
		return "tuple"
	case *values.Lambda:
		return "lambda"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func addValues(l, r values.Value, span filepos.Span) (values.Value, error) {
	switch lv := l.(type) {
	case values.Str:
		if rv, ok := r.(values.Str); ok {
			return lv + rv, nil
		}
	case values.List:
		if rv, ok := r.(values.List); ok {
			out := make(values.List, 0, len(lv)+len(rv))
			out = append(out, lv...)
			out = append(out, rv...)
			return out, nil
		}
	case values.Int, values.Float:
		if isNumeric(r) {
			return numericOp("+", l, r, span)
		}
	}
	return nil, yerr.NewTypeMismatchError(span, "+", typeName(l)+" + "+typeName(r), "matching string, list, or numeric operands")
}

func arithValues(op string, l, r values.Value, span filepos.Span) (values.Value, error) {
	if !isNumeric(l) || !isNumeric(r) {
		return nil, yerr.NewTypeMismatchError(span, op, typeName(l)+" "+op+" "+typeName(r), "numeric operands")
	}
	return numericOp(op, l, r, span)
}

func isNumeric(v values.Value) bool {
	switch v.(type) {
	case values.Int, values.Float:
		return true
	}
	return false
}

func asFloat(v values.Value) float64 {
	switch x := v.(type) {
	case values.Int:
		return float64(x)
	case values.Float:
		return float64(x)
	}
	return 0
}

// numericOp implements arithmetic on Int/Float operands. Division always
// produces a Float (true-division `/`,
// carried forward from original_source/yamlet.py); `+`, `-`, and `*` stay
// Int when both operands are Int, and promote to Float otherwise; `%`
// mirrors its operand types the same way, using math.Mod for floats.
func numericOp(op string, l, r values.Value, span filepos.Span) (values.Value, error) {
	li, lIsInt := l.(values.Int)
	ri, rIsInt := r.(values.Int)
	bothInt := lIsInt && rIsInt

	switch op {
	case "/":
		rf := asFloat(r)
		if rf == 0 {
			return nil, yerr.NewArithmeticError(span, "division by zero")
		}
		return values.Float(asFloat(l) / rf), nil
	case "%":
		if bothInt {
			if ri == 0 {
				return nil, yerr.NewArithmeticError(span, "modulo by zero")
			}
			return li % ri, nil
		}
		rf := asFloat(r)
		if rf == 0 {
			return nil, yerr.NewArithmeticError(span, "modulo by zero")
		}
		return values.Float(math.Mod(asFloat(l), rf)), nil
	case "+":
		if bothInt {
			return li + ri, nil
		}
		return values.Float(asFloat(l) + asFloat(r)), nil
	case "-":
		if bothInt {
			return li - ri, nil
		}
		return values.Float(asFloat(l) - asFloat(r)), nil
	case "*":
		if bothInt {
			return li * ri, nil
		}
		return values.Float(asFloat(l) * asFloat(r)), nil
	}
	return nil, yerr.NewTypeMismatchError(span, op, "", "")
}

func compareOrdered(op string, l, r values.Value, span filepos.Span) (values.Value, error) {
	cmp := 0
	switch {
	case isNumeric(l) && isNumeric(r):
		lf, rf := asFloat(l), asFloat(r)
		switch {
		case lf < rf:
			cmp = -1
		case lf > rf:
			cmp = 1
		}
	default:
		ls, lok := l.(values.Str)
		rs, rok := r.(values.Str)
		if !lok || !rok {
			return nil, yerr.NewTypeMismatchError(span, op, typeName(l)+" "+op+" "+typeName(r), "two numbers or two strings")
		}
		switch {
		case ls < rs:
			cmp = -1
		case ls > rs:
			cmp = 1
		}
	}
	switch op {
	case "<":
		return values.Bool(cmp < 0), nil
	case "<=":
		return values.Bool(cmp <= 0), nil
	case ">":
		return values.Bool(cmp > 0), nil
	case ">=":
		return values.Bool(cmp >= 0), nil
	}
	return nil, yerr.NewTypeMismatchError(span, op, "", "")
}

func containsValue(needle, haystack values.Value, span filepos.Span) (values.Value, error) {
	switch h := haystack.(type) {
	case values.List:
		for _, e := range h {
			fe, err := values.Force(e)
			if err != nil {
				return nil, err
			}
			if valuesEqual(needle, fe) {
				return values.Bool(true), nil
			}
		}
		return values.Bool(false), nil
	case *values.Tuple:
		key, ok := needle.(values.Str)
		if !ok {
			return nil, yerr.NewTypeMismatchError(span, "in", typeName(needle), "string (tuple keys are strings)")
		}
		return values.Bool(h.Has(string(key))), nil
	case values.Str:
		key, ok := needle.(values.Str)
		if !ok {
			return nil, yerr.NewTypeMismatchError(span, "in", typeName(needle), "string")
		}
		return values.Bool(strings.Contains(string(h), string(key))), nil
	}
	return nil, yerr.NewTypeMismatchError(span, "in", typeName(haystack), "list, tuple, or string")
}

// isIdentical implements the `is` operator's pragmatics (an Open Question
// resolved in DESIGN.md): scalars compare by value, since Yamlet scalars
// have no distinct identity from their value; tuples and lambdas compare
// by reference, since composition genuinely produces distinct objects.
func isIdentical(l, r values.Value) bool {
	switch lv := l.(type) {
	case *values.Tuple:
		rv, ok := r.(*values.Tuple)
		return ok && lv == rv
	case *values.Lambda:
		rv, ok := r.(*values.Lambda)
		return ok && lv == rv
	default:
		return valuesEqual(l, r)
	}
}

func valuesEqual(l, r values.Value) bool {
	lf, lErr := values.Force(l)
	rf, rErr := values.Force(r)
	if lErr != nil || rErr != nil {
		return false
	}
	switch lv := lf.(type) {
	case values.Null:
		_, ok := rf.(values.Null)
		return ok
	case values.ExternalSentinel:
		_, ok := rf.(values.ExternalSentinel)
		return ok
	case values.Bool:
		rv, ok := rf.(values.Bool)
		return ok && lv == rv
	case values.Str:
		rv, ok := rf.(values.Str)
		return ok && lv == rv
	case values.Int, values.Float:
		if !isNumeric(rf) {
			return false
		}
		return asFloat(lv) == asFloat(rf)
	case values.List:
		rv, ok := rf.(values.List)
		if !ok || len(lv) != len(rv) {
			return false
		}
		for i := range lv {
			if !valuesEqual(lv[i], rv[i]) {
				return false
			}
		}
		return true
	case *values.Tuple:
		rv, ok := rf.(*values.Tuple)
		return ok && lv == rv
	case *values.Lambda:
		rv, ok := rf.(*values.Lambda)
		return ok && lv == rv
	}
	return false
}
