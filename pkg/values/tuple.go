// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

package values

import (
	"github.com/JoshDreamland/Yamlet/pkg/filepos"
	"github.com/JoshDreamland/Yamlet/pkg/orderedmap"
	"github.com/JoshDreamland/Yamlet/pkg/yerr"
)

// Tuple is Yamlet's central composite type: an ordered mapping of
// key to Value (or Deferred), its own scope, and metadata about its
// composition history. Identity is by pointer; multiple Scopes may share
// one Tuple.
type Tuple struct {
	entries *orderedmap.Map // string -> Value

	// OwnScope is the Scope whose Locals is this Tuple. Tuple construction
	// and Scope construction are mutually recursive: build the Scope first
	// (with Locals nil), then the Tuple, then back-patch Scope.Locals.
	OwnScope *Scope

	// Supers is the ordered sequence of predecessor tuples this tuple
	// composites, possibly empty. Immutable after construction.
	Supers []*Tuple

	Origin filepos.Span

	// provenances records, for inherited/overridden keys, which tuple in
	// the composition chain actually supplied the value -- used by
	// ExplainValue when a key wasn't declared directly in this tuple.
	provenances map[string]*Tuple
}

func (*Tuple) isValue() {}

// NewTuple constructs an empty Tuple rooted at scope (which must have
// Locals == nil; NewTuple back-patches it).
func NewTuple(scope *Scope, origin filepos.Span) *Tuple {
	t := &Tuple{entries: orderedmap.NewMap(), OwnScope: scope, Origin: origin}
	scope.Locals = t
	return t
}

// Set stores a literal or Deferred value under key, preserving
// first-insertion order.
func (t *Tuple) Set(key string, v Value) { t.entries.Set(key, v) }

// SetProvenance records that key's value actually originated from src, for
// ExplainValue's benefit.
func (t *Tuple) SetProvenance(key string, src *Tuple) {
	if t.provenances == nil {
		t.provenances = map[string]*Tuple{}
	}
	t.provenances[key] = src
}

// RawGet returns the entry stored under key without forcing it: a literal
// Value or a *Deferred. ok is false if key is absent.
func (t *Tuple) RawGet(key string) (Value, bool) {
	v, ok := t.entries.Get(key)
	if !ok {
		return nil, false
	}
	return v.(Value), true
}

// Has reports whether key is a member of this tuple (used by the `in`
// operator over tuple keys).
func (t *Tuple) Has(key string) bool {
	_, ok := t.entries.Get(key)
	return ok
}

// Delete removes key, e.g. for the `null`-override erasure rule of
// compose.
func (t *Tuple) Delete(key string) { t.entries.Delete(key) }

// RawItems returns every entry in first-appearance order without forcing
// any of them: an entry's Value may be a literal, a *Deferred, or a nested
// *Tuple. Used by pkg/compose to build a re-scoped composite.
func (t *Tuple) RawItems() []KV {
	keys := t.Keys()
	out := make([]KV, 0, len(keys))
	for _, k := range keys {
		raw, _ := t.RawGet(k)
		out = append(out, KV{Key: k, Value: raw})
	}
	return out
}

// Provenance reports which tuple a key was last assigned from during
// composition, or nil if it was declared directly in this tuple.
func (t *Tuple) Provenance(key string) *Tuple {
	if t.provenances == nil {
		return nil
	}
	return t.provenances[key]
}

// Keys returns this tuple's keys in first-appearance order.
func (t *Tuple) Keys() []string { return t.entries.Keys() }

// Get forces and returns the value stored under key.
func (t *Tuple) Get(key string) (Value, error) {
	raw, ok := t.RawGet(key)
	if !ok {
		return nil, yerr.NewKeyNotFoundError(t.Origin, key)
	}
	return Force(raw)
}

// Force resolves v to a concrete Value, forcing it if it is a *Deferred.
func Force(v Value) (Value, error) {
	if d, ok := v.(*Deferred); ok {
		return d.Force()
	}
	return v, nil
}

// Items forces every entry and returns them as an ordered slice of
// key/value pairs, matching the insertion order of Keys().
func (t *Tuple) Items() ([]KV, error) {
	keys := t.Keys()
	out := make([]KV, 0, len(keys))
	for _, k := range keys {
		v, err := t.Get(k)
		if err != nil {
			return nil, err
		}
		out = append(out, KV{Key: k, Value: v})
	}
	return out, nil
}

// KV is one forced key/value pair, as returned by Tuple.Items.
type KV struct {
	Key   string
	Value Value
}

// Len reports the number of entries, forced or not.
func (t *Tuple) Len() int { return t.entries.Len() }

// ExplainValue renders a human-readable account of where key's value came
// from, grounded on original_source/yamlet.py's `explain_value`: whether
// it was declared directly here, inherited from composition, or computed
// from an expression (in which case the expression's own dependency
// trace, built while it was last forced, is rendered too).
func (t *Tuple) ExplainValue(key string) (string, error) {
	raw, ok := t.RawGet(key)
	if !ok {
		return "", yerr.NewKeyNotFoundError(t.Origin, key)
	}
	if d, ok := raw.(*Deferred); ok {
		if tr := d.Trace(); tr != nil {
			return "`" + key + "` was computed from " + tr.Render("From"), nil
		}
		return "`" + key + "` has not been evaluated; defined at " + d.AST.Span().String(), nil
	}
	if prov := t.Provenance(key); prov != nil {
		return "`" + key + "` was inherited from another tuple at " + prov.Origin.String(), nil
	}
	return "`" + key + "` was declared directly in this tuple at " + t.Origin.String(), nil
}
