// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

package provenance_test

import (
	"strings"
	"testing"

	"github.com/JoshDreamland/Yamlet/pkg/filepos"
	"github.com/JoshDreamland/Yamlet/pkg/provenance"
)

func span() filepos.Span { return filepos.NewUnknownInFile("<test>") }

func TestRenderLeafHasNoDependencyLines(t *testing.T) {
	tr := provenance.New("key `x`", span())
	rendered := tr.Render("From")
	if strings.Contains(rendered, "\n") {
		t.Fatalf("a leaf trace should render on a single line, got %q", rendered)
	}
	if !strings.Contains(rendered, "From") || !strings.Contains(rendered, "key `x`") {
		t.Fatalf("rendered trace missing prefix/label: %q", rendered)
	}
}

func TestRenderIncludesDependencies(t *testing.T) {
	root := provenance.New("key `total`", span())
	child1 := provenance.New("key `a`", span())
	child2 := provenance.New("key `b`", span())
	root.AddDependency(child1)
	root.AddDependency(child2)

	rendered := root.Render("From")
	if !strings.Contains(rendered, "key `a`") || !strings.Contains(rendered, "key `b`") {
		t.Fatalf("rendered trace missing dependencies: %q", rendered)
	}
	if strings.Count(rendered, "\n") != 2 {
		t.Fatalf("expected one line per dependency, got:\n%s", rendered)
	}
}

func TestAddDependencyIgnoresNil(t *testing.T) {
	root := provenance.New("key `x`", span())
	root.AddDependency(nil)
	if len(root.From) != 0 {
		t.Fatalf("expected AddDependency(nil) to be a no-op, got %d dependencies", len(root.From))
	}
}

func TestRenderLowercasesFirstLetterOfLabel(t *testing.T) {
	tr := provenance.New("Key `X`", span())
	rendered := tr.Render("From")
	if !strings.Contains(rendered, "key `X`") {
		t.Fatalf("expected label's first letter lowercased, got %q", rendered)
	}
}
