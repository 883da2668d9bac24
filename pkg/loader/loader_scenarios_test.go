// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

package loader_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/JoshDreamland/Yamlet/pkg/loader"
	"github.com/JoshDreamland/Yamlet/pkg/values"
	"github.com/JoshDreamland/Yamlet/pkg/yerr"
)

// These fixtures exercise the six end-to-end scenarios distilled from the
// README: string concatenation with inheritance across an import, order
// sensitivity of juxtaposition, a multi-branch conditional composite,
// super/up nesting across a three-level scope chain, lambda application,
// and mutual-cycle detection that leaves unrelated keys readable.

const wordsLib = `
base:
  adjective: cooool
  noun: beans
  coolbeans: !fmt 'Hello, world! I say {adjective} {noun}!'
`

const wordsMain = `
words: !import "./words.yamlet"
sauce:
  noun: sauce
awesome:
  adjective: awesome

childtuple: !expr words.base
childtuple2: !expr words.base awesome sauce
horribletuple: !expr words.base sauce
horribletuple2: !expr words.base awesome
`

func TestScenarioStringConcatWithInheritanceAcrossImport(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "words.yamlet", wordsLib)
	mainPath := writeFile(t, dir, "main.yamlet", wordsMain)

	l := loader.New(loader.Options{})
	root, err := l.LoadFile(mainPath)
	if err != nil {
		t.Fatalf("LoadFile: %s", err)
	}

	cases := []struct {
		key  string
		want values.Value
	}{
		{"childtuple", values.Str("Hello, world! I say cooool beans!")},
		{"childtuple2", values.Str("Hello, world! I say awesome sauce!")},
		{"horribletuple", values.Str("Hello, world! I say cooool sauce!")},
		{"horribletuple2", values.Str("Hello, world! I say awesome beans!")},
	}
	for _, c := range cases {
		tup, err := root.Get(c.key)
		if err != nil {
			t.Fatalf("Get(%s): %s", c.key, err)
		}
		got, err := tup.(*values.Tuple).Get("coolbeans")
		if err != nil {
			t.Fatalf("Get(%s.coolbeans): %s", c.key, err)
		}
		if got != c.want {
			t.Fatalf("%s.coolbeans = %v, want %v", c.key, got, c.want)
		}
	}
}

const orderSensitivitySrc = `
p:
  adjective: cooool
  noun: beans
q:
  adjective: awesome
  noun: sauce

pThenQ: !expr p q
qThenP: !expr q p
`

func TestScenarioOrderSensitivityOfJuxtaposition(t *testing.T) {
	l := loader.New(loader.Options{})
	root, err := l.LoadString(orderSensitivitySrc, "<test>")
	if err != nil {
		t.Fatalf("LoadString: %s", err)
	}

	pq, err := root.Get("pThenQ")
	if err != nil {
		t.Fatalf("Get(pThenQ): %s", err)
	}
	if got := mustGetString(t, pq.(*values.Tuple), "adjective"); got != "awesome" {
		t.Fatalf("pThenQ.adjective = %s, want awesome (q composed last wins)", got)
	}
	if got := mustGetString(t, pq.(*values.Tuple), "noun"); got != "sauce" {
		t.Fatalf("pThenQ.noun = %s, want sauce", got)
	}

	qp, err := root.Get("qThenP")
	if err != nil {
		t.Fatalf("Get(qThenP): %s", err)
	}
	if got := mustGetString(t, qp.(*values.Tuple), "adjective"); got != "cooool" {
		t.Fatalf("qThenP.adjective = %s, want cooool (p composed last wins)", got)
	}
	if got := mustGetString(t, qp.(*values.Tuple), "noun"); got != "beans" {
		t.Fatalf("qThenP.noun = %s, want beans", got)
	}
}

func mustGetString(t *testing.T, tup *values.Tuple, key string) string {
	t.Helper()
	v, err := tup.Get(key)
	if err != nil {
		t.Fatalf("Get(%s): %s", key, err)
	}
	s, ok := v.(values.Str)
	if !ok {
		t.Fatalf("%s = %T, want values.Str", key, v)
	}
	return string(s)
}

const conditionalCompositeSrc = `
result: !composite
  - !if 1 + 1 == 2:
      a: 10
      b:
        ba: 11
        bb: 12
  - !if 'shark' == 'fish':
      c: 999
    !else:
      c: 13
  - !if 'crab' == 'crab':
      d: 14
`

func TestScenarioConditionalComposite(t *testing.T) {
	l := loader.New(loader.Options{})
	root, err := l.LoadString(conditionalCompositeSrc, "<test>")
	if err != nil {
		t.Fatalf("LoadString: %s", err)
	}
	result, err := root.Get("result")
	if err != nil {
		t.Fatalf("Get(result): %s", err)
	}
	rt := result.(*values.Tuple)

	if v, err := rt.Get("a"); err != nil || v != values.Int(10) {
		t.Fatalf("result.a = %v, %v, want 10", v, err)
	}
	if v, err := rt.Get("c"); err != nil || v != values.Int(13) {
		t.Fatalf("result.c = %v, %v, want 13", v, err)
	}
	if v, err := rt.Get("d"); err != nil || v != values.Int(14) {
		t.Fatalf("result.d = %v, %v, want 14", v, err)
	}
	b, err := rt.Get("b")
	if err != nil {
		t.Fatalf("Get(result.b): %s", err)
	}
	bt := b.(*values.Tuple)
	if v, err := bt.Get("ba"); err != nil || v != values.Int(11) {
		t.Fatalf("result.b.ba = %v, %v, want 11", v, err)
	}
	if v, err := bt.Get("bb"); err != nil || v != values.Int(12) {
		t.Fatalf("result.b.bb = %v, %v, want 12", v, err)
	}
}

// tuple_A/tuple_B/tuple_C mirror the README's scoping example: tuple_C
// extends tuple_A, overriding its nested tuple_B's fruit and exercising
// both `super`/`up` from inside the doubly-nested scope.
const superUpNestingSrc = `
tuple_A:
  fruit: Apple
  tuple_B:
    fruit: Banana
    value: !fmt '{up.fruit} {fruit}'
tuple_C: !expr |
  tuple_A {
    tuple_B: {
      fruit: 'Blueberry',
      value2: '{super.up.fruit} {super.fruit} {fruit} {up.fruit}',
      value3: '{super.value}  -vs-  {value}',
    },
    fruit: 'Cherry'
  }
`

func TestScenarioSuperUpNesting(t *testing.T) {
	l := loader.New(loader.Options{})
	root, err := l.LoadString(superUpNestingSrc, "<test>")
	if err != nil {
		t.Fatalf("LoadString: %s", err)
	}

	tupleA, err := root.Get("tuple_A")
	if err != nil {
		t.Fatalf("Get(tuple_A): %s", err)
	}
	aBv, err := tupleA.(*values.Tuple).Get("tuple_B")
	if err != nil {
		t.Fatalf("Get(tuple_A.tuple_B): %s", err)
	}
	if got := mustGetString(t, aBv.(*values.Tuple), "value"); got != "Apple Banana" {
		t.Fatalf("tuple_A.tuple_B.value = %s, want \"Apple Banana\"", got)
	}

	tupleC, err := root.Get("tuple_C")
	if err != nil {
		t.Fatalf("Get(tuple_C): %s", err)
	}
	cBv, err := tupleC.(*values.Tuple).Get("tuple_B")
	if err != nil {
		t.Fatalf("Get(tuple_C.tuple_B): %s", err)
	}
	cB := cBv.(*values.Tuple)

	if got := mustGetString(t, cB, "value"); got != "Cherry Blueberry" {
		t.Fatalf("tuple_C.tuple_B.value = %s, want \"Cherry Blueberry\"", got)
	}
	if got := mustGetString(t, cB, "value2"); got != "Apple Banana Blueberry Cherry" {
		t.Fatalf("tuple_C.tuple_B.value2 = %s, want \"Apple Banana Blueberry Cherry\"", got)
	}
	if got := mustGetString(t, cB, "value3"); got != "Apple Banana  -vs-  Cherry Blueberry" {
		t.Fatalf("tuple_C.tuple_B.value3 = %s, want \"Apple Banana  -vs-  Cherry Blueberry\"", got)
	}
}

const lambdaSrc = `
add_two_numbers: !lambda |
  x, y: x + y
name_that_shape: !lambda |
  x: cond(x < 13, ['point', 'line', 'plane', 'triangle', 'quadrilateral', 'pentagon', 'hexagon', 'heptagon', 'octagon', 'nonagon', 'decagon', 'undecagon', 'dodecagon'][x - 1], '{x}-gon')

five_plus_seven: !expr add_two_numbers(5, 7)
shape_with_4_sides: !expr name_that_shape(4)
shape_with_14_sides: !expr name_that_shape(14)
`

func TestScenarioLambda(t *testing.T) {
	l := loader.New(loader.Options{})
	root, err := l.LoadString(lambdaSrc, "<test>")
	if err != nil {
		t.Fatalf("LoadString: %s", err)
	}
	if v, err := root.Get("five_plus_seven"); err != nil || v != values.Int(12) {
		t.Fatalf("five_plus_seven = %v, %v, want 12", v, err)
	}
	if got := mustGetString(t, root, "shape_with_4_sides"); got != "triangle" {
		t.Fatalf("shape_with_4_sides = %s, want triangle", got)
	}
	if got := mustGetString(t, root, "shape_with_14_sides"); got != "14-gon" {
		t.Fatalf("shape_with_14_sides = %s, want 14-gon", got)
	}
}

const mutualCycleSrc = `
a: !expr b
b: !expr a
c: 3
`

func TestScenarioMutualCycleLeavesUnrelatedKeyReadable(t *testing.T) {
	l := loader.New(loader.Options{})
	root, err := l.LoadString(mutualCycleSrc, "<test>")
	if err != nil {
		t.Fatalf("LoadString: %s", err)
	}

	_, err = root.Get("a")
	if err == nil {
		t.Fatalf("expected a cycle error forcing `a`")
	}
	var cycleErr *yerr.CycleDetectedError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("Get(a) error = %T (%s), want *yerr.CycleDetectedError", err, err)
	}
	chain := strings.Join(cycleErr.Chain, " ")
	if !strings.Contains(chain, "a") || !strings.Contains(chain, "b") {
		t.Fatalf("cycle chain %v does not name both `a` and `b`", cycleErr.Chain)
	}

	if v, err := root.Get("c"); err != nil || v != values.Int(3) {
		t.Fatalf("c = %v, %v, want 3 (unrelated key must still resolve)", v, err)
	}
}
