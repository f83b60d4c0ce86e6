// Package inject inserts method source into a class body using parser offsets.
package inject

import (
	"fmt"

	"github.com/agusespa/classweave/internal/syntax"
)

// ClassNotFoundError reports a class name with no matching declaration.
type ClassNotFoundError struct {
	Class string
	Path  string
}

func (e *ClassNotFoundError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("class %q not found", e.Class)
	}
	return fmt.Sprintf("class %q not found in %s", e.Class, e.Path)
}

// NoMemberSectionError reports a class whose body cannot take a method before
// its closing delimiter without further edits, such as a Java enum whose
// constant list is not terminated with ';'.
type NoMemberSectionError struct {
	Class string
	Path  string
}

func (e *NoMemberSectionError) Error() string {
	where := ""
	if e.Path != "" {
		where = " in " + e.Path
	}
	return fmt.Sprintf("class %q%s cannot take members before its closing brace; end the enum constants with ';' first", e.Class, where)
}

// LocateClassBody returns the span from the opening to the closing delimiter of
// the first class-like declaration named className, searching outer
// declarations before nested ones. Names are compared exactly.
// Anonymous classes have no name and never match.
func LocateClassBody(tree *syntax.Tree, className string) (syntax.Span, error) {
	if className == "" {
		return syntax.Span{}, &ClassNotFoundError{Class: className, Path: tree.Path()}
	}

	for _, decl := range syntax.Declarations(tree.Root()) {
		if decl.Identifier() != className {
			continue
		}
		if !syntax.AcceptsMembers(decl) {
			return syntax.Span{}, &NoMemberSectionError{Class: className, Path: tree.Path()}
		}

		body, ok := decl.Body()
		src := tree.Source()
		if !ok || body.Len() < 2 || body.End > len(src) || src[body.Start] != '{' || src[body.End-1] != '}' {
			return syntax.Span{}, &syntax.ParseError{
				Path:     tree.Path(),
				Language: tree.Language().Name(),
				Reason:   fmt.Sprintf("class %q has no delimited body", className),
			}
		}
		return body, nil
	}

	return syntax.Span{}, &ClassNotFoundError{Class: className, Path: tree.Path()}
}
