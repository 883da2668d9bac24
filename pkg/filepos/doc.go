// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

/*
Package filepos provides Span: a source name (usually a file), plus a line
and column within that source.

Spans are attached to every expression AST node and every Scope at
construction time so that errors, and explain_value traces, can always point
back at the Yamlet source that produced them. A zero-value Span (constructed
with NewUnknown) represents positions that aren't backed by real source,
such as host-injected globals.
*/
package filepos
