// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

// Package format renders Yamlet values as text, both for `!fmt`
// interpolation slots and for the loader's top-level stringification of a
// result. Two styles are supported: Terse, for embedding a
// value inside another string, and Diagnostic, for explain_value and CLI
// output, which annotates tuples and lists instead of eliding them.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JoshDreamland/Yamlet/pkg/filepos"
	"github.com/JoshDreamland/Yamlet/pkg/values"
	"github.com/JoshDreamland/Yamlet/pkg/yerr"
)

// Style selects how composite values are rendered.
type Style int

const (
	// Terse renders scalars plainly and composites as their literal
	// syntax, suitable for `!fmt` interpolation.
	Terse Style = iota
	// Diagnostic additionally types-annotates otherwise-ambiguous
	// composite values, for CLI and explain_value output.
	Diagnostic
)

// Stringify renders v per style. Tuples and Lists are forced recursively,
// and a Deferred (v itself or any element) is forced before rendering.
func Stringify(v values.Value, style Style) (string, error) {
	var sb strings.Builder
	if err := write(&sb, v, style); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func write(sb *strings.Builder, v values.Value, style Style) error {
	switch val := v.(type) {
	case values.Null:
		sb.WriteString("null")
	case values.ExternalSentinel:
		sb.WriteString("external")
	case values.Bool:
		if val {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case values.Int:
		sb.WriteString(strconv.FormatInt(int64(val), 10))
	case values.Float:
		sb.WriteString(formatFloat(float64(val)))
	case values.Str:
		sb.WriteString(string(val))
	case values.List:
		return writeList(sb, val, style)
	case *values.Tuple:
		return writeTuple(sb, val, style)
	case *values.Lambda:
		sb.WriteString(fmt.Sprintf("<lambda(%s)>", strings.Join(val.Params, ", ")))
	case *values.Deferred:
		forced, err := val.Force()
		if err != nil {
			return err
		}
		return write(sb, forced, style)
	default:
		return yerr.NewTypeMismatchError(
			filepos.NewSynthetic("string interpolation"), "string interpolation",
			fmt.Sprintf("%T", v), "a Yamlet value")
	}
	return nil
}

func writeList(sb *strings.Builder, l values.List, style Style) error {
	if style == Diagnostic {
		sb.WriteString("list")
	}
	sb.WriteByte('[')
	for i, e := range l {
		if i > 0 {
			sb.WriteString(", ")
		}
		if err := writeNested(sb, e, style); err != nil {
			return err
		}
	}
	sb.WriteByte(']')
	return nil
}

func writeTuple(sb *strings.Builder, t *values.Tuple, style Style) error {
	if style == Diagnostic {
		sb.WriteString("tuple")
	}
	sb.WriteByte('{')
	items, err := t.Items()
	if err != nil {
		return err
	}
	for i, kv := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(kv.Key)
		sb.WriteString(": ")
		if err := writeNested(sb, kv.Value, style); err != nil {
			return err
		}
	}
	sb.WriteByte('}')
	return nil
}

// writeNested quotes string elements inside a list/tuple rendering so the
// container's own syntax round-trips, matching how a Go fmt
// package treats container elements distinctly from the top-level value.
func writeNested(sb *strings.Builder, v values.Value, style Style) error {
	if d, ok := v.(*values.Deferred); ok {
		forced, err := d.Force()
		if err != nil {
			return err
		}
		v = forced
	}
	if s, ok := v.(values.Str); ok {
		sb.WriteString(strconv.Quote(string(s)))
		return nil
	}
	return write(sb, v, style)
}

// formatFloat renders the shortest decimal string that round-trips to f,
// always keeping a fractional part so floats are never confused with ints.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
