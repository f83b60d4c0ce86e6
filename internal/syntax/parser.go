package syntax

import (
	"errors"
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ParseError reports source text that is not valid for its grammar.
type ParseError struct {
	Path     string
	Language string
	Line     int
	Column   int
	Reason   string
}

func (e *ParseError) Error() string {
	where := e.Path
	if where == "" {
		where = "<input>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s parse error at %d:%d: %s", where, e.Language, e.Line, e.Column, e.Reason)
	}
	return fmt.Sprintf("%s: %s parse error: %s", where, e.Language, e.Reason)
}

// IsParseError reports whether err wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// Tree is a parsed source file. Nodes obtained from it are valid until Close.
type Tree struct {
	lang *Language
	path string
	src  []byte
	tree *sitter.Tree
}

// Parse parses src with the given grammar. Input the grammar rejects yields a
// *ParseError; no recovery is attempted.
func Parse(lang *Language, src []byte) (*Tree, error) {
	return parse(lang, "", src)
}

// ParseFile parses src with the grammar registered for path's extension.
func ParseFile(path string, src []byte) (*Tree, error) {
	lang, err := ForPath(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return parse(lang, path, src)
}

func parse(lang *Language, path string, src []byte) (*Tree, error) {
	if lang == nil {
		return nil, ErrUnsupportedLanguage
	}

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(lang.language); err != nil {
		return nil, fmt.Errorf("failed to set language for parser: %w", err)
	}

	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil, &ParseError{Path: path, Language: lang.name, Reason: "parser returned no tree"}
	}

	root := tree.RootNode()
	if root.HasError() {
		perr := &ParseError{Path: path, Language: lang.name, Reason: "syntax error"}
		if bad := firstError(root); bad != nil {
			pos := bad.StartPosition()
			perr.Line = int(pos.Row) + 1
			perr.Column = int(pos.Column) + 1
			if bad.IsMissing() {
				perr.Reason = fmt.Sprintf("missing %q", bad.Kind())
			} else {
				perr.Reason = fmt.Sprintf("unexpected %q", excerpt(bad.Utf8Text(src)))
			}
		}
		tree.Close()
		return nil, perr
	}

	return &Tree{lang: lang, path: path, src: src, tree: tree}, nil
}

// firstError returns the first ERROR or MISSING node in source order.
func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil || !(child.HasError() || child.IsMissing()) {
			continue
		}
		if bad := firstError(child); bad != nil {
			return bad
		}
	}
	return nil
}

func excerpt(text string) string {
	const limit = 20
	runes := []rune(text)
	if len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return text
}

// Root returns the compilation unit. Its members are the outermost declarations.
func (t *Tree) Root() Node {
	return &node{kind: KindUnit, ts: t.tree.RootNode(), tree: t}
}

func (t *Tree) Language() *Language {
	return t.lang
}

// Path is the file the tree was parsed from, or "" for in-memory input.
func (t *Tree) Path() string {
	return t.path
}

// Source returns the parsed text. Callers must not modify it.
func (t *Tree) Source() []byte {
	return t.src
}

// Close releases the native tree.
func (t *Tree) Close() {
	if t.tree != nil {
		t.tree.Close()
		t.tree = nil
	}
}

// Closed reports whether Close has been called.
func (t *Tree) Closed() bool {
	return t.tree == nil
}
