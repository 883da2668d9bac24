// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

package yerr_test

import (
	"strings"
	"testing"

	"github.com/JoshDreamland/Yamlet/pkg/filepos"
	"github.com/JoshDreamland/Yamlet/pkg/yerr"
)

func span() filepos.Span { return filepos.NewUnknownInFile("<test>") }

func TestErrorMessagesNameTheirCategoryAndContext(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want []string
	}{
		{"undefined name", yerr.NewUndefinedNameError(span(), "foo"), []string{"UNDEFINED NAME", "foo"}},
		{"type mismatch", yerr.NewTypeMismatchError(span(), "+", "string and int", "numeric operands"), []string{"TYPE MISMATCH", "+", "numeric operands"}},
		{"arity", yerr.NewArityError(span(), "lambda", 1, 2), []string{"ARITY MISMATCH", "lambda", "1", "2"}},
		{"arithmetic", yerr.NewArithmeticError(span(), "division by zero"), []string{"ARITHMETIC ERROR", "division by zero"}},
		{"index out of range", yerr.NewIndexOutOfRangeError(span(), 5, 3), []string{"INDEX OUT OF RANGE", "5", "3"}},
		{"key not found", yerr.NewKeyNotFoundError(span(), "missing"), []string{"KEY NOT FOUND", "missing"}},
		{"cycle detected", yerr.NewCycleDetectedError(span(), []string{"a", "b", "a"}), []string{"CYCLE DETECTED", "a -> b -> a"}},
		{"import error", yerr.NewImportError(span(), "lib.yamlet", "not found"), []string{"IMPORT ERROR", "lib.yamlet", "not found"}},
		{"max depth", yerr.NewMaxDepthError(span(), 512), []string{"STACK DEPTH EXCEEDED", "512"}},
	}
	for _, c := range cases {
		msg := c.err.Error()
		for _, substr := range c.want {
			if !strings.Contains(msg, substr) {
				t.Errorf("%s: message %q missing %q", c.name, msg, substr)
			}
		}
	}
}

func TestTypeMismatchOmitsExpectedWhenBlank(t *testing.T) {
	err := yerr.NewTypeMismatchError(span(), "op", "found", "")
	if strings.Contains(err.Error(), "(expected") {
		t.Fatalf("message should not mention an expectation clause when Expected is blank: %q", err.Error())
	}
}
