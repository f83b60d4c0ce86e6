package syntax

// Visitor receives the nodes of a depth-first traversal.
type Visitor interface {
	// Enter is called before a node's members. Returning false skips them.
	Enter(n Node) bool
	// Exit is called after a node's members, for every entered node.
	Exit(n Node)
}

// Walk traverses root and its members depth-first, in source order.
func Walk(root Node, v Visitor) {
	if root == nil {
		return
	}
	if v.Enter(root) {
		for _, member := range root.Members() {
			Walk(member, v)
		}
	}
	v.Exit(root)
}

// VisitorFuncs adapts plain functions to a Visitor. Nil functions are no-ops.
type VisitorFuncs struct {
	OnEnter func(Node) bool
	OnExit  func(Node)
}

func (f VisitorFuncs) Enter(n Node) bool {
	if f.OnEnter == nil {
		return true
	}
	return f.OnEnter(n)
}

func (f VisitorFuncs) Exit(n Node) {
	if f.OnExit != nil {
		f.OnExit(n)
	}
}

// Declarations returns every class-like declaration reachable from root in
// pre-order, outer declarations before the ones nested in them.
func Declarations(root Node) []Node {
	var decls []Node
	Walk(root, VisitorFuncs{
		OnEnter: func(n Node) bool {
			if n.Kind().IsClassLike() {
				decls = append(decls, n)
			}
			return true
		},
	})
	return decls
}
