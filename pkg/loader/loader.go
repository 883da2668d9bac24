// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

// Package loader is Yamlet's top-level entry point: it
// turns YAML source -- from a file path or an in-memory string -- into a
// root values.Tuple, wiring up the evaluator, the host function table
// (including the reserved `!import` host function), and an import cache
// keyed by resolved absolute path so a library imported from two places
// is only parsed and composed once.
package loader

import (
	"path/filepath"

	"github.com/JoshDreamland/Yamlet/pkg/eval"
	"github.com/JoshDreamland/Yamlet/pkg/files"
	"github.com/JoshDreamland/Yamlet/pkg/filepos"
	"github.com/JoshDreamland/Yamlet/pkg/format"
	"github.com/JoshDreamland/Yamlet/pkg/values"
	"github.com/JoshDreamland/Yamlet/pkg/yamlsrc"
	"github.com/JoshDreamland/Yamlet/pkg/yerr"
)

// CachingMode re-exports pkg/eval's memoization mode, so callers need not
// import pkg/eval just to set Options.Caching.
type CachingMode = eval.CachingMode

const (
	CacheValues  = eval.CacheValues
	CacheNothing = eval.CacheNothing
	CacheDebug   = eval.CacheDebug
)

// HostFunc re-exports pkg/eval's host function signature.
type HostFunc = eval.HostFunc

// Options configures a Loader (constructor-time options,
// matching the original Python YamletOptions).
type Options struct {
	// Functions supplies additional callables reachable from `!expr`/
	// `!fmt` expressions by name, alongside the built-in standard
	// library (len, str, int, float, bool, map, filter, range).
	Functions map[string]HostFunc

	// Globals supplies additional names resolvable when an identifier
	// lookup walks all the way out past every enclosing tuple scope.
	Globals map[string]values.Value

	// ImportResolver overrides how an `!import` path string resolves to
	// a loadable location, given the importing file's own resolved path
	// and the import's literal path text. The default resolves relative
	// to the importing file's directory.
	ImportResolver func(from, path string) (string, error)

	// MaxDepth bounds recursive Force/Eval nesting; <= 0 selects
	// eval.DefaultMaxDepth.
	MaxDepth int

	// StringifyStyle controls how values.Tuple/List/scalar render inside
	// `!fmt` interpolation slots and string literal `{...}` slots.
	StringifyStyle format.Style

	// Caching selects the memoization mode used for forced Deferred
	// values. The import cache keeps every loaded file regardless.
	Caching CachingMode
}

// Loader owns the import cache, host function/global tables, and the one
// Evaluator shared by everything it loads -- so a value force-evaluated
// while resolving one import can't desync from the cycle/depth tracking
// of the load that triggered it.
type Loader struct {
	opts Options
	ev   *eval.Evaluator

	// cache maps a resolved absolute import path to its already-built
	// root Tuple, so repeated `!import "../common.yaml"` references
	// share one composed result instead of re-parsing and re-evaluating.
	cache map[string]*values.Tuple

	// rootDir is the directory that relative logical paths are joined
	// onto to form import-cache keys (absolute paths and URLs are kept
	// as they are): the directory of the file last passed to LoadFile,
	// or "." before any.
	rootDir string
}

// New constructs a Loader. The returned Loader is not safe for concurrent
// use by multiple goroutines: it mutates its own import
// cache and the shared Evaluator's recursion-tracking state in place.
func New(opts Options) *Loader {
	l := &Loader{opts: opts, cache: map[string]*values.Tuple{}, rootDir: "."}

	functions := map[string]HostFunc{}
	for name, fn := range opts.Functions {
		functions[name] = fn
	}
	functions[yamlsrc.ImportFuncName] = l.importHostFunc

	globals := map[string]values.Value{}
	for name, v := range opts.Globals {
		globals[name] = v
	}

	l.ev = eval.New(functions, globals, opts.Caching, opts.MaxDepth)
	l.ev.StringifyStyle = opts.StringifyStyle
	return l
}

// LoadFile reads and evaluates the YAML document at path, resolving any
// `!import` it contains relative to path's own directory.
func (l *Loader) LoadFile(path string) (*values.Tuple, error) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	l.rootDir = filepath.Dir(path)
	return l.load(files.NewLocalSource(path), path)
}

// LoadString evaluates text as a YAML document whose `!import`s resolve
// relative to the current working directory, identified as logicalPath in
// error messages and import resolution.
func (l *Loader) LoadString(text, logicalPath string) (*values.Tuple, error) {
	return l.load(files.NewBytesSource(logicalPath, []byte(text)), logicalPath)
}

func (l *Loader) load(src files.Source, logicalPath string) (*values.Tuple, error) {
	abs := l.absPath(logicalPath)
	if cached, ok := l.cache[abs]; ok {
		return cached, nil
	}

	bs, err := src.Bytes()
	if err != nil {
		return nil, yerr.NewImportError(filepos.NewUnknownInFile(logicalPath), logicalPath, err.Error())
	}

	// yamlsrc.Build never forces a cell -- every !import stays a Deferred
	// call until something actually reads the key that names it -- so the
	// cache entry below is always in place before any lazy import can
	// possibly re-enter this same path, which is what lets an import
	// cycle (A imports B imports A) resolve to the same cached Tuple
	// instead of looping.
	root, err := yamlsrc.Build(bs, abs, nil, l.ev)
	if err != nil {
		return nil, err
	}
	l.cache[abs] = root
	return root, nil
}

func (l *Loader) absPath(p string) string {
	if files.IsURL(p) || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(l.rootDir, p)
}

// importHostFunc backs the `!import` tag (see pkg/yamlsrc.ImportFuncName):
// it resolves the import path relative to the importing document and
// loads it, returning the imported document's root Tuple as the `!import`
// expression's value so it can participate in composition like any other
// tuple-valued expression.
func (l *Loader) importHostFunc(ev *eval.Evaluator, args []values.Value, span filepos.Span) (values.Value, error) {
	if len(args) != 1 {
		return nil, yerr.NewArityError(span, "!import", len(args), 1)
	}
	str, ok := args[0].(values.Str)
	if !ok {
		return nil, yerr.NewTypeMismatchError(span, "!import", typeNameOf(args[0]), "a string path")
	}
	importPath := string(str)

	from := span.File()
	resolved := importPath
	var err error
	if l.opts.ImportResolver != nil {
		resolved, err = l.opts.ImportResolver(from, importPath)
		if err != nil {
			return nil, yerr.NewImportError(span, importPath, err.Error())
		}
	} else if !files.IsURL(importPath) {
		resolved = files.ResolveImport(from, importPath)
	}

	var src files.Source
	if files.IsURL(resolved) {
		src = files.NewHTTPSource(resolved)
	} else {
		src = files.NewLocalSource(resolved)
	}
	return l.load(src, resolved)
}

func typeNameOf(v values.Value) string {
	switch v.(type) {
	case values.Str:
		return "string"
	case values.Int:
		return "int"
	case values.Float:
		return "float"
	case values.Bool:
		return "bool"
	case values.Null:
		return "null"
	case values.List:
		return "list"
	case *values.Tuple:
		return "tuple"
	case *values.Lambda:
		return "lambda"
	default:
		return "value"
	}
}
