// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

// Package yerr defines one error type per entry in the evaluation-error
// taxonomy: undefined names, type mismatches, arity mismatches,
// arithmetic faults, out-of-range indexing, missing keys, evaluation cycles,
// and import failures. Every error carries the filepos.Span of the
// expression that raised it, and renders in the "pos | message" shape the
// rest of this codebase's diagnostics use.
package yerr

import (
	"fmt"
	"strings"

	"github.com/JoshDreamland/Yamlet/pkg/filepos"
)

// located is embedded by every error in this package so all of them share
// the same "where did this happen" formatting.
type located struct {
	Span filepos.Span
}

func (l located) header() string {
	return fmt.Sprintf("%s |", l.Span.String())
}

// UndefinedNameError reports a name that resolved to nothing along the
// reserved-names -> locals -> up-chain -> globals order (keys inherited
// through composition are already copied into the composite's locals).
type UndefinedNameError struct {
	located
	Name string
}

func NewUndefinedNameError(span filepos.Span, name string) error {
	return &UndefinedNameError{located{span}, name}
}

func (e *UndefinedNameError) Error() string {
	return fmt.Sprintf("%s UNDEFINED NAME - %q is not defined in this scope, any enclosing scope, or any super tuple", e.header(), e.Name)
}

// TypeMismatchError reports an operator or built-in applied to a value of
// an unsupported type.
type TypeMismatchError struct {
	located
	Op       string
	Found    string
	Expected string
}

func NewTypeMismatchError(span filepos.Span, op, found, expected string) error {
	return &TypeMismatchError{located{span}, op, found, expected}
}

func (e *TypeMismatchError) Error() string {
	msg := fmt.Sprintf("%s TYPE MISMATCH - %s does not support %s", e.header(), e.Op, e.Found)
	if e.Expected != "" {
		msg += fmt.Sprintf(" (expected %s)", e.Expected)
	}
	return msg
}

// ArityError reports a lambda or built-in invoked with the wrong number of
// arguments.
type ArityError struct {
	located
	Name     string
	Got      int
	Expected int
}

func NewArityError(span filepos.Span, name string, got, expected int) error {
	return &ArityError{located{span}, name, got, expected}
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s ARITY MISMATCH - %s expects %d argument(s), got %d", e.header(), e.Name, e.Expected, e.Got)
}

// ArithmeticError reports a numeric fault: division by zero or modulo by
// zero. Integer overflow is not detected.
type ArithmeticError struct {
	located
	Reason string
}

func NewArithmeticError(span filepos.Span, reason string) error {
	return &ArithmeticError{located{span}, reason}
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("%s ARITHMETIC ERROR - %s", e.header(), e.Reason)
}

// IndexOutOfRangeError reports a list index outside [0, len).
type IndexOutOfRangeError struct {
	located
	Index, Length int
}

func NewIndexOutOfRangeError(span filepos.Span, index, length int) error {
	return &IndexOutOfRangeError{located{span}, index, length}
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("%s INDEX OUT OF RANGE - index %d, length %d", e.header(), e.Index, e.Length)
}

// KeyNotFoundError reports a tuple attribute/index/dotted lookup that found
// no matching entry anywhere in the super chain.
type KeyNotFoundError struct {
	located
	Key string
}

func NewKeyNotFoundError(span filepos.Span, key string) error {
	return &KeyNotFoundError{located{span}, key}
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("%s KEY NOT FOUND - no entry named %q in this tuple", e.header(), e.Key)
}

// CycleDetectedError reports a Deferred cell re-entered while already being
// forced. Chain lists the cell labels visited, innermost
// last, ending with the label that closed the loop.
type CycleDetectedError struct {
	located
	Chain []string
}

func NewCycleDetectedError(span filepos.Span, chain []string) error {
	return &CycleDetectedError{located{span}, chain}
}

func (e *CycleDetectedError) Error() string {
	return fmt.Sprintf("%s CYCLE DETECTED - evaluation depends on itself: %s", e.header(), strings.Join(e.Chain, " -> "))
}

// ImportError reports a failed `!import` resolution or load.
type ImportError struct {
	located
	Path   string
	Reason string
}

func NewImportError(span filepos.Span, path, reason string) error {
	return &ImportError{located{span}, path, reason}
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("%s IMPORT ERROR - could not load %q: %s", e.header(), e.Path, e.Reason)
}

// MaxDepthError reports the stack-depth guard
// tripping during recursive evaluation.
type MaxDepthError struct {
	located
	MaxDepth int
}

func NewMaxDepthError(span filepos.Span, maxDepth int) error {
	return &MaxDepthError{located{span}, maxDepth}
}

func (e *MaxDepthError) Error() string {
	return fmt.Sprintf("%s STACK DEPTH EXCEEDED - evaluation nested past %d levels", e.header(), e.MaxDepth)
}
