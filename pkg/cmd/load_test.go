// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOptionsRunRequiresFileFlag(t *testing.T) {
	o := NewLoadOptions()
	if err := o.Run(); err == nil {
		t.Fatalf("expected Run to fail without --file")
	}
}

func TestLoadOptionsRunEvaluatesEveryTopLevelKey(t *testing.T) {
	p := filepath.Join(t.TempDir(), "doc.yamlet")
	if err := os.WriteFile(p, []byte("x: 1\ny: x + 1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %s", err)
	}
	o := NewLoadOptions()
	o.File = p
	if err := o.Run(); err != nil {
		t.Fatalf("Run: %s", err)
	}
}

func TestLoadOptionsRunMissingFileErrors(t *testing.T) {
	o := NewLoadOptions()
	o.File = filepath.Join(t.TempDir(), "missing.yamlet")
	if err := o.Run(); err == nil {
		t.Fatalf("expected Run to fail loading a nonexistent file")
	}
}
