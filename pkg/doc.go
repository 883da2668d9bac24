// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

/*
Package pkg is the collection of packages that make up Yamlet: a
GCL-style lazy tuple composition engine for YAML.

Layering, lowest to highest:

	pkg/filepos      // source position/span, no dependencies
	pkg/orderedmap    // insertion-ordered string-keyed map
	pkg/lexer         // expression-language tokenizer
	pkg/ast           // expression syntax tree
	pkg/parser        // tokens -> ast, plus !fmt interpolation splitting
	pkg/provenance    // dependency trace tree for explain_value
	pkg/yerr          // the evaluation error taxonomy
	pkg/values        // Value, Tuple, Scope, Deferred; depends on ast,
	                   // orderedmap, filepos, provenance, yerr
	pkg/compose       // the composition algebra over values.Tuple
	pkg/format        // value -> string rendering for !fmt slots
	pkg/eval          // the Evaluator: ast -> values.Value, Deferred
	                   // forcing, operators, the standard function library
	pkg/files         // Source resolution (local/HTTP) for !import
	pkg/yamlsrc        // goccy/go-yaml -> values.Tuple/ast front end
	pkg/loader         // the public entry point: Options, Loader

cmd/yamlet is the CLI built on pkg/loader; pkg/cmd holds its
cobra.Command tree.
*/
package pkg
