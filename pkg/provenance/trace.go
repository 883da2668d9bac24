// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

// Package provenance implements the explain_value trace tree, grounded on
// original_source/yamlet.py's `_EvalContext.ExplainUp`: a record of which
// other cells a Deferred's evaluation depended on, rendered as an indented
// "From .../- From ..." tree.
package provenance

import (
	"fmt"
	"strings"

	"github.com/JoshDreamland/Yamlet/pkg/filepos"
)

// Trace is one node of an evaluation's dependency tree: the cell that was
// forced, where, and which other cells that forcing in turn depended on.
type Trace struct {
	Label string
	Span  filepos.Span
	From  []*Trace
}

// New starts a Trace for a cell about to be forced.
func New(label string, span filepos.Span) *Trace {
	return &Trace{Label: label, Span: span}
}

// AddDependency records that t's evaluation forced child along the way.
func (t *Trace) AddDependency(child *Trace) {
	if child == nil {
		return
	}
	t.From = append(t.From, child)
}

// Render renders the trace as the indented "From .../- From ..." tree
// used by explain_value, with prefix naming the root relationship (by
// convention "From" for a computed value, "With" for an inherited one).
func (t *Trace) Render(prefix string) string {
	return t.render(4, prefix)
}

func (t *Trace) render(indent int, prep string) string {
	label := t.Label
	if label != "" {
		label = strings.ToLower(label[:1]) + label[1:]
	}
	me := strings.TrimSpace(fmt.Sprintf("%s %s %s", prep, label, t.Span.String()))
	if len(t.From) == 0 {
		return me
	}
	pad := strings.Repeat(" ", indent)
	lines := make([]string, 0, len(t.From))
	for _, child := range t.From {
		lines = append(lines, " - "+strings.TrimSpace(child.render(indent, "From")))
	}
	return me + "\n" + pad + strings.Join(lines, "\n"+pad)
}
