// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

package eval

import (
	"strconv"

	"github.com/JoshDreamland/Yamlet/pkg/filepos"
	"github.com/JoshDreamland/Yamlet/pkg/format"
	"github.com/JoshDreamland/Yamlet/pkg/values"
	"github.com/JoshDreamland/Yamlet/pkg/yerr"
)

// stdlibBuiltin is a built-in callable with eagerly-evaluated arguments,
// supplementing the host Functions table (`len, str, int, float, bool, map,
// filter, range`). `cond` is handled
// separately in evalCondBuiltin because its arguments must be evaluated
// lazily.
type stdlibBuiltin func(ev *Evaluator, args []values.Value, span filepos.Span) (values.Value, error)

var stdlibFuncs map[string]stdlibBuiltin

func init() {
	stdlibFuncs = map[string]stdlibBuiltin{
		"len":    builtinLen,
		"str":    builtinStr,
		"int":    builtinInt,
		"float":  builtinFloat,
		"bool":   builtinBool,
		"map":    builtinMap,
		"filter": builtinFilter,
		"range":  builtinRange,
	}
}

func requireArity(name string, args []values.Value, n int, span filepos.Span) error {
	if len(args) != n {
		return yerr.NewArityError(span, name, len(args), n)
	}
	return nil
}

func builtinLen(_ *Evaluator, args []values.Value, span filepos.Span) (values.Value, error) {
	if err := requireArity("len", args, 1, span); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case values.Str:
		return values.Int(len([]rune(string(v)))), nil
	case values.List:
		return values.Int(len(v)), nil
	case *values.Tuple:
		return values.Int(v.Len()), nil
	}
	return nil, yerr.NewTypeMismatchError(span, "len", typeName(args[0]), "string, list, or tuple")
}

func builtinStr(_ *Evaluator, args []values.Value, span filepos.Span) (values.Value, error) {
	if err := requireArity("str", args, 1, span); err != nil {
		return nil, err
	}
	s, err := format.Stringify(args[0], format.Terse)
	if err != nil {
		return nil, err
	}
	return values.Str(s), nil
}

func builtinInt(_ *Evaluator, args []values.Value, span filepos.Span) (values.Value, error) {
	if err := requireArity("int", args, 1, span); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case values.Int:
		return v, nil
	case values.Float:
		return values.Int(v), nil
	case values.Bool:
		if v {
			return values.Int(1), nil
		}
		return values.Int(0), nil
	case values.Str:
		n, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return nil, yerr.NewTypeMismatchError(span, "int", "string "+strconv.Quote(string(v)), "a string parseable as an integer")
		}
		return values.Int(n), nil
	}
	return nil, yerr.NewTypeMismatchError(span, "int", typeName(args[0]), "int, float, bool, or string")
}

func builtinFloat(_ *Evaluator, args []values.Value, span filepos.Span) (values.Value, error) {
	if err := requireArity("float", args, 1, span); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case values.Float:
		return v, nil
	case values.Int:
		return values.Float(v), nil
	case values.Str:
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return nil, yerr.NewTypeMismatchError(span, "float", "string "+strconv.Quote(string(v)), "a string parseable as a float")
		}
		return values.Float(f), nil
	}
	return nil, yerr.NewTypeMismatchError(span, "float", typeName(args[0]), "int, float, or string")
}

func builtinBool(_ *Evaluator, args []values.Value, span filepos.Span) (values.Value, error) {
	if err := requireArity("bool", args, 1, span); err != nil {
		return nil, err
	}
	return values.Bool(Truthy(args[0])), nil
}

func builtinMap(ev *Evaluator, args []values.Value, span filepos.Span) (values.Value, error) {
	if err := requireArity("map", args, 2, span); err != nil {
		return nil, err
	}
	fn, list, err := lambdaAndList("map", args, span)
	if err != nil {
		return nil, err
	}
	out := make(values.List, len(list))
	for i, e := range list {
		fe, err := values.Force(e)
		if err != nil {
			return nil, err
		}
		v, err := ev.ApplyLambda(fn, []values.Value{fe}, span)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func builtinFilter(ev *Evaluator, args []values.Value, span filepos.Span) (values.Value, error) {
	if err := requireArity("filter", args, 2, span); err != nil {
		return nil, err
	}
	fn, list, err := lambdaAndList("filter", args, span)
	if err != nil {
		return nil, err
	}
	var out values.List
	for _, e := range list {
		fe, err := values.Force(e)
		if err != nil {
			return nil, err
		}
		keep, err := ev.ApplyLambda(fn, []values.Value{fe}, span)
		if err != nil {
			return nil, err
		}
		if Truthy(keep) {
			out = append(out, fe)
		}
	}
	return out, nil
}

func lambdaAndList(name string, args []values.Value, span filepos.Span) (*values.Lambda, values.List, error) {
	fn, ok := args[0].(*values.Lambda)
	if !ok {
		return nil, nil, yerr.NewTypeMismatchError(span, name, typeName(args[0]), "a lambda as the first argument")
	}
	list, ok := args[1].(values.List)
	if !ok {
		return nil, nil, yerr.NewTypeMismatchError(span, name, typeName(args[1]), "a list as the second argument")
	}
	return fn, list, nil
}

func builtinRange(_ *Evaluator, args []values.Value, span filepos.Span) (values.Value, error) {
	var start, stop, step int64 = 0, 0, 1
	switch len(args) {
	case 1:
		n, ok := args[0].(values.Int)
		if !ok {
			return nil, yerr.NewTypeMismatchError(span, "range", typeName(args[0]), "int")
		}
		stop = int64(n)
	case 2, 3:
		a, aok := args[0].(values.Int)
		b, bok := args[1].(values.Int)
		if !aok || !bok {
			return nil, yerr.NewTypeMismatchError(span, "range", "non-int argument", "int")
		}
		start, stop = int64(a), int64(b)
		if len(args) == 3 {
			s, ok := args[2].(values.Int)
			if !ok {
				return nil, yerr.NewTypeMismatchError(span, "range", typeName(args[2]), "int")
			}
			step = int64(s)
		}
	default:
		return nil, yerr.NewArityError(span, "range", len(args), 1)
	}
	if step == 0 {
		return nil, yerr.NewArithmeticError(span, "range() step must not be zero")
	}
	var out values.List
	if step > 0 {
		for i := start; i < stop; i += step {
			out = append(out, values.Int(i))
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, values.Int(i))
		}
	}
	return out, nil
}
