package syntax

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Kind is the language-agnostic kind of a syntax node.
type Kind string

const (
	KindUnit           Kind = "unit"
	KindClass          Kind = "class"
	KindInterface      Kind = "interface"
	KindEnum           Kind = "enum"
	KindRecord         Kind = "record"
	KindAnnotation     Kind = "annotation"
	KindAnonymousClass Kind = "anonymous_class"
	KindMethod         Kind = "method"
	KindConstructor    Kind = "constructor"
	KindField          Kind = "field"
	KindVariable       Kind = "variable"
)

// IsClassLike reports whether nodes of this kind declare a body of members.
func (k Kind) IsClassLike() bool {
	switch k {
	case KindClass, KindInterface, KindEnum, KindRecord, KindAnnotation, KindAnonymousClass:
		return true
	}
	return false
}

// Span is a byte range into the parsed source. End is exclusive, so for a
// body span Start is the offset of '{' and End-1 the offset of the matching '}'.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int {
	return s.End - s.Start
}

// Node is the capability interface the extractor and locator work against.
//
// Class-like nodes expose their body and member declarations. Methods and
// constructors expose the class-like declarations nested in their bodies.
// Fields expose one KindVariable node per declared variable, left to right.
type Node interface {
	Kind() Kind
	// Identifier returns the declared name, or "" for anonymous declarations.
	Identifier() string
	// Span covers the whole declaration.
	Span() Span
	// Body returns the span of the member block or code block, if any.
	Body() (Span, bool)
	Members() []Node
}

type node struct {
	kind Kind
	ts   *sitter.Node
	tree *Tree
}

func (n *node) Kind() Kind {
	return n.kind
}

func (n *node) Identifier() string {
	switch n.kind {
	case KindUnit, KindField, KindAnonymousClass:
		return ""
	}
	return identifierOf(n.ts, n.tree.src)
}

func (n *node) Span() Span {
	return spanOf(n.ts)
}

func (n *node) Body() (Span, bool) {
	body := n.bodyNode()
	if body == nil {
		return Span{}, false
	}
	return spanOf(body), true
}

func (n *node) bodyNode() *sitter.Node {
	switch {
	case n.kind.IsClassLike():
		return n.tree.lang.bodyOf(n.ts)
	case n.kind == KindMethod || n.kind == KindConstructor:
		return n.ts.ChildByFieldName("body")
	}
	return nil
}

func (n *node) Members() []Node {
	switch {
	case n.kind == KindUnit:
		return n.tree.collect(n.ts, nil)
	case n.kind == KindField:
		return n.tree.declarators(n.ts)
	case n.kind == KindVariable:
		if value := n.ts.ChildByFieldName("value"); value != nil {
			return n.tree.within(value)
		}
		return nil
	}
	body := n.bodyNode()
	if body == nil {
		return nil
	}
	return n.tree.collect(body, nil)
}

// AcceptsMembers reports whether a member declaration can be placed right
// before the closing delimiter of n's body. A Java enum body only accepts
// members once its constants are terminated with ';'.
func AcceptsMembers(n Node) bool {
	nn, ok := n.(*node)
	if !ok {
		_, hasBody := n.Body()
		return hasBody
	}
	body := nn.bodyNode()
	if body == nil {
		return false
	}
	required, ok := nn.tree.lang.memberSections[body.Kind()]
	if !ok {
		return true
	}
	for i := uint(0); i < body.ChildCount(); i++ {
		if child := body.Child(i); child != nil && child.Kind() == required {
			return true
		}
	}
	return false
}

// within returns n itself when it is a recognized declaration, such as an
// anonymous class used as an initializer, and otherwise the declarations below it.
func (t *Tree) within(n *sitter.Node) []Node {
	if kind, ok := t.lang.classify(n, t.src); ok {
		return []Node{&node{kind: kind, ts: n, tree: t}}
	}
	return t.collect(n, nil)
}

// collect gathers the outermost recognized declarations below parent, in
// source order. Unrecognized nodes are transparent.
func (t *Tree) collect(parent *sitter.Node, out []Node) []Node {
	for i := uint(0); i < parent.ChildCount(); i++ {
		child := parent.Child(i)
		if child == nil || !child.IsNamed() {
			continue
		}
		if kind, ok := t.lang.classify(child, t.src); ok {
			out = append(out, &node{kind: kind, ts: child, tree: t})
			continue
		}
		out = t.collect(child, out)
	}
	return out
}

func (t *Tree) declarators(field *sitter.Node) []Node {
	if t.lang.declaratorKind == "" {
		return []Node{&node{kind: KindVariable, ts: field, tree: t}}
	}

	var vars []Node
	for i := uint(0); i < field.ChildCount(); i++ {
		child := field.Child(i)
		if child != nil && child.Kind() == t.lang.declaratorKind {
			vars = append(vars, &node{kind: KindVariable, ts: child, tree: t})
		}
	}
	return vars
}

func (l *Language) classify(n *sitter.Node, src []byte) (Kind, bool) {
	kind, ok := l.kinds[n.Kind()]
	if !ok {
		return "", false
	}

	switch {
	case kind.IsClassLike():
		if l.bodyOf(n) == nil {
			// object creation or enum constant without a class body
			return "", false
		}
		if kind != KindAnonymousClass && identifierOf(n, src) == "" {
			return KindAnonymousClass, true
		}
	case kind == KindMethod:
		if l.constructorName != "" && identifierOf(n, src) == l.constructorName {
			return KindConstructor, true
		}
	}
	return kind, true
}

func (l *Language) bodyOf(n *sitter.Node) *sitter.Node {
	if body := n.ChildByFieldName("body"); body != nil {
		return body
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child != nil && l.bodyKinds[child.Kind()] {
			return child
		}
	}
	return nil
}

func identifierOf(n *sitter.Node, src []byte) string {
	name := n.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	return name.Utf8Text(src)
}

func spanOf(n *sitter.Node) Span {
	return Span{Start: int(n.StartByte()), End: int(n.EndByte())}
}
