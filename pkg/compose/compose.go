// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

// Package compose implements tuple composition: the `a b`
// juxtaposition operator and the `x{...}` extension sugar. Composing A with
// B clones A into a fresh tuple parented at the composition's call site,
// re-scopes every cell of B onto that clone so `super`/`up` chains extend
// correctly, and recursively composes any nested tuple that collides
// between the two sides.
package compose

import (
	"github.com/JoshDreamland/Yamlet/pkg/filepos"
	"github.com/JoshDreamland/Yamlet/pkg/values"
	"github.com/JoshDreamland/Yamlet/pkg/yerr"
)

// Compose composites b onto a: the result's keys are the union of a's and
// b's, with b's expressions re-scoped so that `super` refers to a and
// `up` refers to callSiteScope, the scope in which the composition
// expression itself appears.
func Compose(a, b *values.Tuple, callSiteScope *values.Scope, origin filepos.Span, ev values.Evaluator) (*values.Tuple, error) {
	c := cloneTuple(a, callSiteScope, ev)
	if err := mergeInto(c, b, ev); err != nil {
		return nil, err
	}
	return c, nil
}

// ComposeAll left-folds Compose over a non-empty sequence of tuples,
// producing the N-ary composite left to right.
func ComposeAll(tuples []*values.Tuple, callSiteScope *values.Scope, origin filepos.Span, ev values.Evaluator) (*values.Tuple, error) {
	if len(tuples) == 0 {
		return nil, yerr.NewTypeMismatchError(origin, "composition", "empty tuple list", "at least one tuple")
	}
	res := tuples[0]
	for _, t := range tuples[1:] {
		var err error
		res, err = Compose(res, t, callSiteScope, origin, ev)
		if err != nil {
			return nil, err
		}
	}
	if len(tuples) == 1 {
		res = cloneTuple(res, callSiteScope, ev)
	}
	return res, nil
}

// Extend desugars `target { mapping }`: target composited with an
// anonymous tuple built from the extension's mapping literal, which the
// caller (pkg/eval) has already evaluated into anon.
func Extend(target, anon *values.Tuple, callSiteScope *values.Scope, origin filepos.Span, ev values.Evaluator) (*values.Tuple, error) {
	return Compose(target, anon, callSiteScope, origin, ev)
}

// cloneTuple reparents every entry of t under a fresh tuple whose Up scope
// is up and whose Super scope is t's own -- the first half of composition,
// and also how plain tuple-literal evaluation produces an independent
// instance at each use site.
func cloneTuple(t *values.Tuple, up *values.Scope, ev values.Evaluator) *values.Tuple {
	newScope := values.NewScope(up, t.OwnScope, t.Origin)
	c := values.NewTuple(newScope, t.Origin)
	c.Supers = []*values.Tuple{t}

	for _, kv := range t.RawItems() {
		c.Set(kv.Key, cloneEntry(kv.Value, newScope, ev))
		if prov := t.Provenance(kv.Key); prov != nil {
			c.SetProvenance(kv.Key, prov)
		} else {
			c.SetProvenance(kv.Key, t)
		}
	}
	return c
}

// cloneEntry reparents a single raw entry onto scope. Nested tuples are
// cloned recursively (their Up becomes scope); deferred scalars get a
// fresh, unforced cell over the same AST; every other value (literals,
// Lambda closures) is copied as-is, since only deferred evaluation and
// nested composition are scope-sensitive.
func cloneEntry(v values.Value, scope *values.Scope, ev values.Evaluator) values.Value {
	switch val := v.(type) {
	case *values.Tuple:
		return cloneTuple(val, scope, ev)
	case *values.Deferred:
		return values.NewDeferred(val.AST, scope, ev, val.Label)
	default:
		return v
	}
}

// mergeInto overlays b's entries onto the already-cloned composite c,
// nested tuples recursively composite, `null`
// erases an inherited key, and anything else simply overrides with a
// fresh, re-scoped cell.
func mergeInto(c, b *values.Tuple, ev values.Evaluator) error {
	for _, kv := range b.RawItems() {
		existing, hasExisting := c.RawGet(kv.Key)

		if incoming, isTuple := kv.Value.(*values.Tuple); isTuple {
			if hasExisting {
				existingTuple, ok := existing.(*values.Tuple)
				if !ok {
					return yerr.NewTypeMismatchError(incoming.Origin, "composition",
						"tuple value for key `"+kv.Key+"`", "a tuple to composite with (found a non-tuple)")
				}
				if err := mergeInto(existingTuple, incoming, ev); err != nil {
					return err
				}
				existingTuple.Supers = append(existingTuple.Supers, incoming)
				c.SetProvenance(kv.Key, b)
				continue
			}
			c.Set(kv.Key, cloneTuple(incoming, c.OwnScope, ev))
			c.SetProvenance(kv.Key, b)
			continue
		}

		if _, isNull := kv.Value.(values.Null); isNull {
			c.Delete(kv.Key)
			c.SetProvenance(kv.Key, b)
			continue
		}

		c.Set(kv.Key, cloneEntry(kv.Value, c.OwnScope, ev))
		c.SetProvenance(kv.Key, b)
	}
	return nil
}
