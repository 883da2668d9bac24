// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/JoshDreamland/Yamlet/pkg/loader"
	"github.com/JoshDreamland/Yamlet/pkg/values"
)

func writeOptionsFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "options.toml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %s", err)
	}
	return p
}

func TestLoadOptionsFileEmptyPathReturnsBaseUnchanged(t *testing.T) {
	base := loader.Options{MaxDepth: 7}
	got, err := loadOptionsFile("", base)
	if err != nil {
		t.Fatalf("loadOptionsFile: %s", err)
	}
	if got.MaxDepth != 7 {
		t.Fatalf("MaxDepth = %d, want unchanged 7", got.MaxDepth)
	}
}

func TestLoadOptionsFileAppliesMaxDepthCachingAndGlobals(t *testing.T) {
	p := writeOptionsFile(t, `
max_depth = 64
caching = "debug"

[globals]
name = "yamlet"
`)
	got, err := loadOptionsFile(p, loader.Options{})
	if err != nil {
		t.Fatalf("loadOptionsFile: %s", err)
	}
	if got.MaxDepth != 64 {
		t.Fatalf("MaxDepth = %d, want 64", got.MaxDepth)
	}
	if got.Caching != loader.CacheDebug {
		t.Fatalf("Caching = %v, want CacheDebug", got.Caching)
	}
	if v, ok := got.Globals["name"]; !ok || v != values.Str("yamlet") {
		t.Fatalf("Globals[name] = %v, %v, want \"yamlet\"", v, ok)
	}
}

func TestLoadOptionsFileUnknownCachingModeErrors(t *testing.T) {
	p := writeOptionsFile(t, `caching = "bogus"`)
	if _, err := loadOptionsFile(p, loader.Options{}); err == nil {
		t.Fatalf("expected an error for an unknown caching mode")
	}
}

func TestLoadOptionsFileMissingFileErrors(t *testing.T) {
	if _, err := loadOptionsFile(filepath.Join(t.TempDir(), "missing.toml"), loader.Options{}); err == nil {
		t.Fatalf("expected an error reading a nonexistent options file")
	}
}

func TestLoadOptionsFileLeavesZeroMaxDepthAlone(t *testing.T) {
	base := loader.Options{MaxDepth: 99}
	p := writeOptionsFile(t, `caching = "values"`)
	got, err := loadOptionsFile(p, base)
	if err != nil {
		t.Fatalf("loadOptionsFile: %s", err)
	}
	if got.MaxDepth != 99 {
		t.Fatalf("MaxDepth = %d, want base's 99 preserved since the file didn't set one", got.MaxDepth)
	}
}
