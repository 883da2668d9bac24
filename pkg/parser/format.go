// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

package parser

import (
	"strings"

	"github.com/JoshDreamland/Yamlet/pkg/ast"
	"github.com/JoshDreamland/Yamlet/pkg/filepos"
)

// ParseFormatString splits src (the scalar payload of a `!fmt` tag) into
// literal runs and `{expression}` slots, parsing each slot with the full
// expression grammar. `{{` and `}}` are literal braces.
func ParseFormatString(src, file string, base filepos.Span) (*ast.FormatString, error) {
	parts, err := SplitInterpolation(src, base)
	if err != nil {
		return nil, err
	}
	return ast.NewFormatString(base, parts), nil
}

// SplitInterpolation is the shared decomposition used both by `!fmt`
// scalars and by quoted string literals inside `!expr`, which also undergo
// `{...}` interpolation on their contents per spec.
func SplitInterpolation(src string, base filepos.Span) ([]ast.FormatPart, error) {
	var parts []ast.FormatPart
	var lit strings.Builder
	col := 0 // column offset from base, in runes consumed so far
	i := 0
	runes := []rune(src)
	flushLit := func() {
		if lit.Len() > 0 {
			parts = append(parts, ast.FormatPart{Literal: lit.String()})
			lit.Reset()
		}
	}
	for i < len(runes) {
		r := runes[i]
		switch r {
		case '{':
			if i+1 < len(runes) && runes[i+1] == '{' {
				lit.WriteByte('{')
				i += 2
				col += 2
				continue
			}
			flushLit()
			start := i + 1
			depth := 1
			j := start
			for j < len(runes) && depth > 0 {
				switch runes[j] {
				case '{':
					depth++
				case '}':
					depth--
					if depth == 0 {
						goto found
					}
				}
				j++
			}
		found:
			if depth != 0 {
				return nil, &Error{Span: base.WithOffset(col), Msg: "unterminated '{' in interpolated string"}
			}
			slot := string(runes[start:j])
			slotSpan := base.WithOffset(col)
			expr, err := ParseExpr(slot, slotSpanFile(base))
			if err != nil {
				if pe, ok := err.(*Error); ok {
					pe.Span = slotSpan
				}
				return nil, err
			}
			parts = append(parts, ast.FormatPart{Expr: expr})
			col += (j - i) + 1
			i = j + 1
		case '}':
			if i+1 < len(runes) && runes[i+1] == '}' {
				lit.WriteByte('}')
				i += 2
				col += 2
				continue
			}
			return nil, &Error{Span: base.WithOffset(col), Msg: "unmatched '}' in interpolated string"}
		default:
			lit.WriteRune(r)
			i++
			col++
		}
	}
	flushLit()
	return parts, nil
}

func slotSpanFile(base filepos.Span) string { return base.File() }
