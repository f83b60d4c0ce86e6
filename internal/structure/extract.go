// Package structure turns syntax trees into language-agnostic class summaries.
package structure

import (
	"errors"

	"github.com/agusespa/classweave/internal/syntax"
	"github.com/agusespa/classweave/internal/types"
)

// ErrParseIncomplete is returned for a tree that cannot be traversed.
var ErrParseIncomplete = errors.New("syntax tree is incomplete")

// Extract summarizes the classes, methods and fields of a parsed file.
// A file without classes yields an empty structure.
func Extract(tree *syntax.Tree) (*types.FileStructure, error) {
	if tree == nil || tree.Closed() {
		return nil, ErrParseIncomplete
	}

	l := &listener{}
	syntax.Walk(tree.Root(), l)
	return l.structure(), nil
}

// ExtractSource parses src and summarizes it. The tree does not outlive the call.
func ExtractSource(lang *syntax.Language, src []byte) (*types.FileStructure, error) {
	tree, err := syntax.Parse(lang, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	return Extract(tree)
}

// ExtractFile is ExtractSource with the grammar chosen from path.
func ExtractFile(path string, src []byte) (*types.FileStructure, error) {
	tree, err := syntax.ParseFile(path, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	return Extract(tree)
}

// listener assigns members to the innermost enclosing class. Anonymous
// classes take a stack slot so their members stay out of the enclosing
// class, but they are not registered.
type listener struct {
	classes []*types.ClassInfo
	stack   []*types.ClassInfo
}

func (l *listener) Enter(n syntax.Node) bool {
	switch kind := n.Kind(); {
	case kind.IsClassLike():
		class := &types.ClassInfo{Name: n.Identifier(), Methods: []string{}, Fields: []string{}}
		if class.Name != "" {
			l.classes = append(l.classes, class)
		}
		l.stack = append(l.stack, class)
	case kind == syntax.KindMethod:
		if top := l.top(); top != nil {
			top.Methods = append(top.Methods, n.Identifier())
		}
	case kind == syntax.KindVariable:
		if top := l.top(); top != nil {
			top.Fields = append(top.Fields, n.Identifier())
		}
	}
	return true
}

func (l *listener) Exit(n syntax.Node) {
	if n.Kind().IsClassLike() && len(l.stack) > 0 {
		l.stack = l.stack[:len(l.stack)-1]
	}
}

func (l *listener) top() *types.ClassInfo {
	if len(l.stack) == 0 {
		return nil
	}
	return l.stack[len(l.stack)-1]
}

func (l *listener) structure() *types.FileStructure {
	fs := &types.FileStructure{Classes: make([]types.ClassInfo, 0, len(l.classes))}
	for _, c := range l.classes {
		fs.Classes = append(fs.Classes, *c)
	}
	return fs
}
