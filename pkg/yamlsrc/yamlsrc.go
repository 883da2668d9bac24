// Copyright (C) 2024 Josh Ventura <joshv10>
// You may use and redistribute this file under the terms of the MIT License.

// Package yamlsrc turns YAML source into Yamlet's value tree: it walks a
// github.com/goccy/go-yaml AST, dispatches on the
// Yamlet tags (`!expr`, `!fmt`, `!composite`, `!import`, `!lambda`,
// `!if`/`!elif`/`!else`, `!null`, `!external`), and builds Tuples whose
// scalar entries are Deferred over parsed pkg/ast expressions.
//
// Nested mapping nodes are built eagerly into Tuples; scalar expressions,
// `!composite` sequences and plain sequences are stored as Deferred cells.
package yamlsrc

import (
	"bytes"
	"fmt"

	goast "github.com/goccy/go-yaml/ast"
	goparser "github.com/goccy/go-yaml/parser"

	"github.com/JoshDreamland/Yamlet/pkg/ast"
	"github.com/JoshDreamland/Yamlet/pkg/filepos"
	"github.com/JoshDreamland/Yamlet/pkg/parser"
	"github.com/JoshDreamland/Yamlet/pkg/values"
	"github.com/JoshDreamland/Yamlet/pkg/yerr"
)

// ImportFuncName is the reserved host-function name pkg/yamlsrc emits a
// call to for every `!import` node, so that path resolution and the
// import cache stay owned by pkg/loader rather than creating an import
// cycle back from this package.
const ImportFuncName = "__yamlet_import__"

// Build parses YAML source and constructs the root Tuple, whose entries'
// Deferred cells share ev and are scoped under up (the loader's top-level
// scope, typically nil for a document root).
func Build(src []byte, file string, up *values.Scope, ev values.Evaluator) (*values.Tuple, error) {
	src = Preprocess(src)
	f, err := goparser.ParseBytes(src, 0)
	if err != nil {
		return nil, yerr.NewImportError(filepos.NewUnknownInFile(file), file, err.Error())
	}
	if len(f.Docs) == 0 || f.Docs[0].Body == nil {
		root := values.NewTuple(values.NewScope(up, nil, filepos.NewUnknownInFile(file)), filepos.NewUnknownInFile(file))
		return root, nil
	}

	b := &builder{file: file, ev: ev}
	scope := values.NewScope(up, nil, b.span(f.Docs[0].Body))
	node, tag := b.unwrapTag(f.Docs[0].Body)
	mapping, ok := node.(*goast.MappingNode)
	if !ok {
		return nil, yerr.NewImportError(b.span(f.Docs[0].Body), file, "top-level YAML document must be a mapping")
	}
	if tag != "" {
		return nil, yerr.NewImportError(b.span(f.Docs[0].Body), file, "top-level document may not carry a value tag")
	}
	return b.buildMapping(mapping, scope)
}

// Preprocess rewrites `!tag:` (no space before the colon) into `!tag :`
// so the YAML tokenizer, which otherwise folds the colon into the tag
// name, splits them the way Yamlet's `!if`/`!elif`/`!else` ladder keys
// need. It only touches bytes outside quoted scalars.
func Preprocess(src []byte) []byte {
	var out bytes.Buffer
	inSingle, inDouble := false, false
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case inSingle:
			if c == '\'' {
				inSingle = false
			}
		case inDouble:
			if c == '"' && (i == 0 || src[i-1] != '\\') {
				inDouble = false
			}
		case c == '\'':
			inSingle = true
		case c == '"':
			inDouble = true
		case c == '!' && i+1 < len(src):
			j := i + 1
			for j < len(src) && (isTagRune(src[j])) {
				j++
			}
			if j < len(src) && src[j] == ':' && j > i+1 {
				out.Write(src[i:j])
				out.WriteByte(' ')
				out.WriteByte(':')
				i = j
				continue
			}
		}
		out.WriteByte(c)
	}
	return out.Bytes()
}

func isTagRune(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

type builder struct {
	file string
	ev   values.Evaluator
}

func (b *builder) span(n goast.Node) filepos.Span {
	tok := n.GetToken()
	if tok == nil || tok.Position == nil {
		return filepos.NewUnknownInFile(b.file)
	}
	line, col := tok.Position.Line, tok.Position.Column
	if line <= 0 || col <= 0 {
		return filepos.NewUnknownInFile(b.file)
	}
	return filepos.New(b.file, line, col)
}

// unwrapTag strips a *goast.TagNode, returning its inner node and the tag
// text (without the leading `!`), or ("", node) if n carries no tag.
func (b *builder) unwrapTag(n goast.Node) (goast.Node, string) {
	tagNode, ok := n.(*goast.TagNode)
	if !ok {
		return n, ""
	}
	tag := tagNode.Start.Value
	if len(tag) > 0 && tag[0] == '!' {
		tag = tag[1:]
	}
	return tagNode.Value, tag
}

// buildMapping constructs a Tuple from a plain (untagged) mapping node.
// scope.Locals is not yet set; buildMapping sets it via values.NewTuple.
func (b *builder) buildMapping(m *goast.MappingNode, scope *values.Scope) (*values.Tuple, error) {
	t := values.NewTuple(scope, b.span(m))
	for _, entry := range m.Values {
		key, err := b.mappingKey(entry.Key)
		if err != nil {
			return nil, err
		}
		if key.ladderTag != "" {
			if err := b.appendLadderEntry(t, scope, key, entry.Value); err != nil {
				return nil, err
			}
			continue
		}
		val, err := b.buildValue(entry.Value, scope, "key `"+key.name+"`")
		if err != nil {
			return nil, err
		}
		t.Set(key.name, val)
	}
	return t, nil
}

type mapKey struct {
	name      string
	ladderTag string // "if", "elif", "else", or "" for a plain key
	condSrc   string // condition source text, for "if"/"elif"
}

// mappingKey extracts a mapping key's name, recognizing `!if`/`!elif`
// tagged keys forming a conditional-composite ladder: the
// tag's payload is the condition expression, and the ladder's field name
// is read from the key text itself (`!if cond: value` names the field
// `cond`'s host key by convention -- see appendLadderEntry).
func (b *builder) mappingKey(k goast.Node) (mapKey, error) {
	inner, tag := b.unwrapTag(k)
	switch tag {
	case "if", "elif":
		text, err := scalarText(inner)
		if err != nil {
			return mapKey{}, err
		}
		return mapKey{ladderTag: tag, condSrc: text}, nil
	case "else":
		return mapKey{ladderTag: "else"}, nil
	}
	text, err := scalarText(k)
	if err != nil {
		return mapKey{}, err
	}
	return mapKey{name: text}, nil
}

// appendLadderEntry handles a `!if`/`!elif`/`!else`-tagged mapping key
// reached directly inside a plain mapping. Unlike a `!composite`
// sequence item, a mapping entry has no way to name which field the
// ladder assigns (mapping keys must be unique, so the ladder can't also
// be the field's own key), so the only well-formed use here is a single
// `!if cond: value` shorthand with an implicit null else -- multi-branch
// ladders must be written as a `!composite` sequence instead (see
// compositeTerms), where each branch is its own sequence item.
func (b *builder) appendLadderEntry(t *values.Tuple, scope *values.Scope, key mapKey, valueNode goast.Node) error {
	if key.ladderTag != "if" {
		return yerr.NewImportError(b.span(valueNode), b.file, "`!"+key.ladderTag+"` mapping key with no preceding `!if`; use a `!composite` sequence for multi-branch conditionals")
	}
	condAST, err := parser.ParseExpr(key.condSrc, b.file)
	if err != nil {
		return err
	}
	bodyAST, err := b.exprTerm(valueNode, scope)
	if err != nil {
		return err
	}
	cond := ast.NewConditional(b.span(valueNode), condAST, bodyAST, ast.NewNullLiteral(b.span(valueNode)))
	t.Set(key.condSrc, values.NewDeferred(cond, scope, b.ev, "key `"+key.condSrc+"`"))
	return nil
}

// buildValue dispatches on a mapping/sequence value's shape and any tag
// it carries, returning either a nested *values.Tuple (built eagerly) or
// a *values.Deferred wrapping a parsed expression.
func (b *builder) buildValue(n goast.Node, scope *values.Scope, label string) (values.Value, error) {
	inner, tag := b.unwrapTag(n)
	span := b.span(n)

	switch tag {
	case "null":
		return values.Null{}, nil
	case "external":
		return values.ExternalSentinel{}, nil
	case "expr":
		text, err := scalarText(inner)
		if err != nil {
			return nil, err
		}
		node, err := parser.ParseExpr(text, b.file)
		if err != nil {
			return nil, err
		}
		return values.NewDeferred(node, scope, b.ev, label), nil
	case "fmt":
		text, err := scalarText(inner)
		if err != nil {
			return nil, err
		}
		fs, err := parser.ParseFormatString(text, b.file, span)
		if err != nil {
			return nil, err
		}
		return values.NewDeferred(fs, scope, b.ev, label), nil
	case "lambda":
		text, err := scalarText(inner)
		if err != nil {
			return nil, err
		}
		node, err := parser.ParseExpr(text, b.file)
		if err != nil {
			return nil, err
		}
		if _, ok := node.(*ast.Lambda); !ok {
			return nil, yerr.NewImportError(span, b.file, "!lambda value must be `params: body`")
		}
		return values.NewDeferred(node, scope, b.ev, label), nil
	case "import":
		text, err := scalarText(inner)
		if err != nil {
			return nil, err
		}
		pathNode, err := parser.ParseExpr(text, b.file)
		if err != nil {
			pathNode = ast.NewStringLit(span, text, nil)
		}
		call := ast.NewCall(span, ast.NewIdent(span, ImportFuncName), []ast.Node{pathNode})
		return values.NewDeferred(call, scope, b.ev, label), nil
	case "composite":
		seq, ok := inner.(*goast.SequenceNode)
		if !ok {
			return nil, yerr.NewImportError(span, b.file, "!composite value must be a sequence")
		}
		return b.buildComposite(seq, scope, label)
	}

	switch node := inner.(type) {
	case *goast.MappingNode:
		newScope := values.NewScope(scope, nil, span)
		return b.buildMapping(node, newScope)
	case *goast.SequenceNode:
		return b.buildPlainSequence(node, scope, label)
	default:
		text, quoted, err := plainScalarText(inner)
		if err != nil {
			return nil, err
		}
		if !quoted {
			// Bareword scalars are treated as Yamlet expressions: this is
			// how implicit juxtaposition composition and bare
			// identifiers work from YAML.
			node, err := parser.ParseExpr(text, b.file)
			if err != nil {
				return nil, err
			}
			return values.NewDeferred(node, scope, b.ev, label), nil
		}
		parts, err := parser.SplitInterpolation(text, span)
		if err != nil {
			return nil, err
		}
		lit := ast.NewStringLit(span, text, parts)
		return values.NewDeferred(lit, scope, b.ev, label), nil
	}
}

// buildComposite builds a `!composite` sequence into a Tuple entry whose
// AST is an ast.Composite, folding consecutive !if/!elif/!else items into
// a single Conditional term.
func (b *builder) buildComposite(seq *goast.SequenceNode, scope *values.Scope, label string) (values.Value, error) {
	terms, err := b.compositeTerms(seq, scope)
	if err != nil {
		return nil, err
	}
	composite := ast.NewComposite(b.span(seq), terms)
	return values.NewDeferred(composite, scope, b.ev, label), nil
}

func (b *builder) compositeTerms(seq *goast.SequenceNode, scope *values.Scope) ([]ast.Node, error) {
	var terms []ast.Node
	var ladder []ast.Node
	var elseSeen bool

	flushLadder := func(span filepos.Span) {
		if len(ladder) == 0 {
			return
		}
		if !elseSeen {
			ladder = append(ladder, ast.NewNullLiteral(span))
		}
		node := ladder[len(ladder)-1]
		for i := len(ladder) - 2; i >= 0; i -= 2 {
			node = ast.NewConditional(span, ladder[i-1], ladder[i], node)
		}
		terms = append(terms, node)
		ladder = nil
		elseSeen = false
	}

	for _, item := range seq.Values {
		itemMap, ok := item.(*goast.MappingNode)
		if !ok || len(itemMap.Values) != 1 {
			flushLadder(b.span(item))
			node, err := b.exprTerm(item, scope)
			if err != nil {
				return nil, err
			}
			terms = append(terms, node)
			continue
		}
		entry := itemMap.Values[0]
		key, err := b.mappingKey(entry.Key)
		if err != nil {
			return nil, err
		}
		switch key.ladderTag {
		case "if":
			flushLadder(b.span(item))
			condAST, err := parser.ParseExpr(key.condSrc, b.file)
			if err != nil {
				return nil, err
			}
			bodyAST, err := b.exprTerm(entry.Value, scope)
			if err != nil {
				return nil, err
			}
			ladder = append(ladder, condAST, bodyAST)
		case "elif":
			if len(ladder) == 0 {
				return nil, yerr.NewImportError(b.span(item), b.file, "`!elif` with no preceding `!if`")
			}
			condAST, err := parser.ParseExpr(key.condSrc, b.file)
			if err != nil {
				return nil, err
			}
			bodyAST, err := b.exprTerm(entry.Value, scope)
			if err != nil {
				return nil, err
			}
			ladder = append(ladder, condAST, bodyAST)
		case "else":
			if len(ladder) == 0 {
				return nil, yerr.NewImportError(b.span(item), b.file, "`!else` with no preceding `!if`")
			}
			bodyAST, err := b.exprTerm(entry.Value, scope)
			if err != nil {
				return nil, err
			}
			ladder = append(ladder, bodyAST)
			elseSeen = true
		default:
			flushLadder(b.span(item))
			node, err := b.exprTerm(item, scope)
			if err != nil {
				return nil, err
			}
			terms = append(terms, node)
		}
	}
	flushLadder(b.span(seq))
	return terms, nil
}

// exprTerm converts a `!composite` sequence item into a bare pkg/ast
// node (not a Deferred/Tuple value): mapping items recurse as nested
// tuple-literal syntax so they can be composed as terms, everything else
// is parsed as an expression.
func (b *builder) exprTerm(n goast.Node, scope *values.Scope) (ast.Node, error) {
	inner, tag := b.unwrapTag(n)
	if tag == "composite" {
		seq, ok := inner.(*goast.SequenceNode)
		if !ok {
			return nil, yerr.NewImportError(b.span(n), b.file, "!composite value must be a sequence")
		}
		terms, err := b.compositeTerms(seq, scope)
		if err != nil {
			return nil, err
		}
		return ast.NewComposite(b.span(n), terms), nil
	}
	if m, ok := inner.(*goast.MappingNode); ok {
		return b.mappingToMapLit(m)
	}
	text, _, err := plainScalarText(inner)
	if err != nil {
		return nil, err
	}
	return parser.ParseExpr(text, b.file)
}

// mappingToMapLit re-parses a mapping node's entries as pkg/ast.MapLit
// entries, for use as a composite term (which must remain an
// expression-level node, not a pre-built Tuple, so it can be re-scoped
// like any other operand of composition).
func (b *builder) mappingToMapLit(m *goast.MappingNode) (ast.Node, error) {
	var entries []ast.MapEntry
	for _, mv := range m.Values {
		key, err := b.mappingKey(mv.Key)
		if err != nil {
			return nil, err
		}
		if key.ladderTag != "" {
			return nil, yerr.NewImportError(b.span(mv.Key), b.file, "!if/!elif/!else inside a nested composite term is not supported")
		}
		var valNode ast.Node
		if nested, ok := mv.Value.(*goast.MappingNode); ok {
			valNode, err = b.mappingToMapLit(nested)
		} else {
			text, _, terr := plainScalarText(mv.Value)
			if terr != nil {
				err = terr
			} else {
				valNode, err = parser.ParseExpr(text, b.file)
			}
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.MapEntry{Key: key.name, Value: valNode, KeySpan: b.span(mv.Key)})
	}
	return ast.NewMapLit(b.span(m), entries), nil
}

// buildPlainSequence evaluates an ordinary (untagged) YAML sequence as a
// Yamlet list literal: each item builds as its own value the same way a
// mapping value would, and the whole list is wrapped in one Deferred so
// list construction participates in memoization like any other cell.
func (b *builder) buildPlainSequence(seq *goast.SequenceNode, scope *values.Scope, label string) (values.Value, error) {
	elems := make([]ast.Node, len(seq.Values))
	for i, item := range seq.Values {
		node, err := b.exprTerm(item, scope)
		if err != nil {
			return nil, err
		}
		elems[i] = node
	}
	lit := ast.NewListLit(b.span(seq), elems)
	return values.NewDeferred(lit, scope, b.ev, label), nil
}

func scalarText(n goast.Node) (string, error) {
	text, _, err := plainScalarText(n)
	return text, err
}

// plainScalarText extracts a scalar node's textual payload, reporting
// whether it was a quoted string (which should be treated as a Yamlet
// string literal, format-interpolated) versus a bareword scalar (which
// should be parsed as a Yamlet expression outright).
func plainScalarText(n goast.Node) (text string, quoted bool, err error) {
	switch v := n.(type) {
	case *goast.StringNode:
		return v.Value, v.Token != nil && (v.Token.Type.String() == "SingleQuote" || v.Token.Type.String() == "DoubleQuote"), nil
	case *goast.IntegerNode:
		return fmt.Sprintf("%v", v.Value), false, nil
	case *goast.FloatNode:
		return fmt.Sprintf("%v", v.Value), false, nil
	case *goast.BoolNode:
		return fmt.Sprintf("%v", v.Value), false, nil
	case *goast.NullNode:
		return "null", false, nil
	case *goast.LiteralNode:
		if v.Value != nil {
			return v.Value.Value, true, nil
		}
		return "", true, nil
	default:
		if n == nil {
			return "", false, fmt.Errorf("expected a scalar YAML node, got nothing")
		}
		return "", false, fmt.Errorf("expected a scalar YAML node, got %T", n)
	}
}
