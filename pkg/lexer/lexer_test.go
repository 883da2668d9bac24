// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

package lexer_test

import (
	"testing"

	"github.com/JoshDreamland/Yamlet/pkg/lexer"
)

func assertKinds(t *testing.T, src string, want ...lexer.Kind) {
	t.Helper()
	toks, err := lexer.Lex(src, "<test>")
	if err != nil {
		t.Fatalf("Lex(%q): %s", src, err)
	}
	if len(toks) != len(want) {
		t.Fatalf("Lex(%q): got %d tokens, want %d: %v", src, len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("Lex(%q): token %d kind = %v, want %v (text %q)", src, i, toks[i].Kind, k, toks[i].Text)
		}
	}
}

func TestLexEmpty(t *testing.T) {
	assertKinds(t, "", lexer.EOF)
}

func TestLexIdentAndKeywords(t *testing.T) {
	assertKinds(t, "foo and bar is null",
		lexer.Ident, lexer.Operator, lexer.Ident, lexer.Operator, lexer.Keyword, lexer.EOF)
}

func TestLexNumbers(t *testing.T) {
	toks, err := lexer.Lex("1 2.5 3e2 4.5e-1", "<test>")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	wantKinds := []lexer.Kind{lexer.Int, lexer.Float, lexer.Float, lexer.Float, lexer.EOF}
	wantText := []string{"1", "2.5", "3e2", "4.5e-1"}
	for i, k := range wantKinds[:len(wantKinds)-1] {
		if toks[i].Kind != k {
			t.Errorf("token %d: kind = %v, want %v", i, toks[i].Kind, k)
		}
		if toks[i].Text != wantText[i] {
			t.Errorf("token %d: text = %q, want %q", i, toks[i].Text, wantText[i])
		}
	}
}

func TestLexMultiCharOperators(t *testing.T) {
	assertKinds(t, "a == b != c <= d >= e",
		lexer.Ident, lexer.Operator, lexer.Ident, lexer.Operator, lexer.Ident,
		lexer.Operator, lexer.Ident, lexer.Operator, lexer.Ident, lexer.EOF)
}

func TestLexStringEscapes(t *testing.T) {
	toks, err := lexer.Lex(`"a\nb\tc\\d\"e\{f\}"`, "<test>")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := "a\nb\tc\\d\"e{f}"
	if toks[0].Text != want {
		t.Fatalf("decoded string = %q, want %q", toks[0].Text, want)
	}
}

func TestLexUnterminatedString(t *testing.T) {
	if _, err := lexer.Lex(`"abc`, "<test>"); err == nil {
		t.Fatalf("expected an error for an unterminated string literal")
	}
}

func TestLexUnknownEscape(t *testing.T) {
	if _, err := lexer.Lex(`"\q"`, "<test>"); err == nil {
		t.Fatalf("expected an error for an unknown escape sequence")
	}
}

func TestLexCommentsAreSkipped(t *testing.T) {
	assertKinds(t, "a # trailing comment\n+ b", lexer.Ident, lexer.Operator, lexer.Ident, lexer.EOF)
}

func TestLexPunctuation(t *testing.T) {
	assertKinds(t, "(a, b.c)[0]{x: 1}",
		lexer.Punct, lexer.Ident, lexer.Punct, lexer.Ident, lexer.Punct, lexer.Ident, lexer.Punct,
		lexer.Punct, lexer.Int, lexer.Punct, lexer.Punct, lexer.Ident, lexer.Punct, lexer.Int, lexer.Punct,
		lexer.EOF)
}

func TestLexUnexpectedCharacter(t *testing.T) {
	if _, err := lexer.Lex("a $ b", "<test>"); err == nil {
		t.Fatalf("expected an error for an unexpected character")
	}
}
