// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

// Package files resolves and reads the YAML sources a Loader works over:
// the entry document plus every file or URL reached through `!import`.
package files

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Source is anything bytes can be read from and that can describe itself
// in an error message: a local file, an HTTP URL, or an in-memory buffer
// (for LoadString's logical document).
type Source interface {
	Description() string
	RelativePath() (string, error)
	Bytes() ([]byte, error)
}

var _ []Source = []Source{BytesSource{}, LocalSource{}, HTTPSource{}, &CachedSource{}}

// BytesSource wraps an already-in-memory document, used for the loader's
// LoadString entry point.
type BytesSource struct {
	path string
	data []byte
}

func NewBytesSource(path string, data []byte) BytesSource { return BytesSource{path, data} }

func (s BytesSource) Description() string           { return s.path }
func (s BytesSource) RelativePath() (string, error) { return s.path, nil }
func (s BytesSource) Bytes() ([]byte, error)        { return s.data, nil }

// LocalSource reads a file from the local filesystem.
type LocalSource struct {
	path string
}

func NewLocalSource(path string) LocalSource { return LocalSource{path} }

func (s LocalSource) Description() string           { return fmt.Sprintf("file '%s'", s.path) }
func (s LocalSource) RelativePath() (string, error) { return s.path, nil }
func (s LocalSource) Bytes() ([]byte, error)        { return os.ReadFile(s.path) }

// HTTPSource reads an imported document from an HTTP(S) URL, for
// Loader.Options.ImportResolver implementations that allow remote imports.
type HTTPSource struct {
	url string
}

func NewHTTPSource(url string) HTTPSource { return HTTPSource{url} }

func (s HTTPSource) Description() string           { return fmt.Sprintf("HTTP URL '%s'", s.url) }
func (s HTTPSource) RelativePath() (string, error) { return path.Base(s.url), nil }

func (s HTTPSource) Bytes() ([]byte, error) {
	resp, err := http.Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("requesting URL '%s': %w", s.url, err)
	}
	defer resp.Body.Close()

	result, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading URL '%s': %w", s.url, err)
	}
	return result, nil
}

// CachedSource memoizes a wrapped Source's bytes, so re-importing the same
// path within one load doesn't re-read the file or re-fetch the URL; the
// Loader's import cache wraps every resolved Source in one of these.
type CachedSource struct {
	src Source

	bytesFetched bool
	bytes        []byte
	bytesErr     error
}

func NewCachedSource(src Source) *CachedSource { return &CachedSource{src: src} }

func (s *CachedSource) Description() string           { return s.src.Description() }
func (s *CachedSource) RelativePath() (string, error) { return s.src.RelativePath() }

func (s *CachedSource) Bytes() ([]byte, error) {
	if s.bytesFetched {
		return s.bytes, s.bytesErr
	}
	s.bytesFetched = true
	s.bytes, s.bytesErr = s.src.Bytes()
	return s.bytes, s.bytesErr
}

// IsURL reports whether path names an HTTP(S) URL rather than a local
// filesystem path, the same sniff the loader uses to decide which Source
// to build for a resolved import path.
func IsURL(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}

// ResolveImport computes the path an `!import` naming importPath should
// resolve to, relative to the file that contains it (fromPath). An
// absolute importPath (or a URL) is returned unchanged; anything else
// resolves relative to fromPath's own directory.
func ResolveImport(fromPath, importPath string) string {
	if IsURL(importPath) {
		return importPath
	}
	if filepath.IsAbs(importPath) {
		return importPath
	}
	return filepath.Join(filepath.Dir(fromPath), importPath)
}
