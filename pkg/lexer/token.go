// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

// Package lexer tokenizes Yamlet's small expression language: the grammar
// shared by `!expr`, the slots inside `!fmt` strings, `!lambda` bodies, and
// `!composite` parts.
package lexer

import "github.com/JoshDreamland/Yamlet/pkg/filepos"

// Kind classifies a Token.
type Kind int

const (
	EOF Kind = iota
	Ident
	Int
	Float
	String
	Punct    // ( ) [ ] { } , . : ;
	Operator // + - * / % == != < <= > >= and or not in is
	Keyword  // if else for lambda cond true false null
)

// Token is one lexical unit of an expression, tagged with its source Span.
type Token struct {
	Kind Kind
	Text string // original source text; for String, the decoded value
	Span filepos.Span
}

func (t Token) String() string { return t.Text }
