// Package depgraph defines the AND/OR dependency graph model: construction
// Nodes, the Dependencies that can satisfy them, and the Plan a solver
// produces. All three are pure, immutable value data — a closed tagged
// variant per type, switched on exhaustively rather than through open
// interface polymorphism, so every new variant only needs its tag added and
// every switch site updated.
package depgraph

import (
	"fmt"

	"github.com/jcraft-dev/jcraft/internal/bcview"
)

// NodeKind tags which variant of Node is populated.
type NodeKind int

const (
	NodeClass NodeKind = iota
	NodePrimitive
	NodeArray
	NodeConstructorCall
	NodeStaticMethodCall
	NodeMethodCall
)

// Node is a unit of construction in a plan. Identity is structural
// equality on contents; Key returns a string suitable for map lookups
// (memoization, creationOrder dedup) with that same equality.
type Node struct {
	Kind NodeKind

	Class     bcview.ClassType // NodeClass
	Primitive bcview.PrimitiveKind // NodePrimitive
	Array     ArraySpec             // NodeArray
	Method    bcview.Method         // NodeConstructorCall / NodeStaticMethodCall / NodeMethodCall
}

// ArraySpec names an array node's element type and dimension.
type ArraySpec struct {
	Elem bcview.Type
	Dim  int
}

func ClassNode(t bcview.ClassType) Node          { return Node{Kind: NodeClass, Class: t} }
func PrimitiveNode(p bcview.PrimitiveKind) Node   { return Node{Kind: NodePrimitive, Primitive: p} }
func ArrayNode(elem bcview.Type, dim int) Node    { return Node{Kind: NodeArray, Array: ArraySpec{Elem: elem, Dim: dim}} }
func ConstructorCallNode(m bcview.Method) Node    { return Node{Kind: NodeConstructorCall, Method: m} }
func StaticMethodCallNode(m bcview.Method) Node   { return Node{Kind: NodeStaticMethodCall, Method: m} }
func MethodCallNode(m bcview.Method) Node         { return Node{Kind: NodeMethodCall, Method: m} }

// NodeFromType converts a resolved bcview.Type into the Node it denotes.
// Class types are returned as-is (the caller is responsible for resolving
// them against a View to confirm they are loaded); this function never
// fails because Type is already a closed variant over exactly the kinds
// Node supports.
func NodeFromType(t bcview.Type) Node {
	switch t.Kind {
	case bcview.TypeKindPrimitive:
		return PrimitiveNode(t.Primitive)
	case bcview.TypeKindArray:
		return ArrayNode(t.Array.ElementType, t.Array.Dimension)
	default:
		return ClassNode(t.Class)
	}
}

// Key returns a string uniquely identifying this Node under structural
// equality, for use as a map key in memoization tables and dedup sets.
func (n Node) Key() string {
	switch n.Kind {
	case NodeClass:
		return "C:" + n.Class.FullyQualifiedName
	case NodePrimitive:
		return "P:" + string(n.Primitive)
	case NodeArray:
		return fmt.Sprintf("A:%s:%d", typeKey(n.Array.Elem), n.Array.Dim)
	case NodeConstructorCall:
		return "K:" + methodKey(n.Method)
	case NodeStaticMethodCall:
		return "S:" + methodKey(n.Method)
	case NodeMethodCall:
		return "M:" + methodKey(n.Method)
	default:
		return "?"
	}
}

func typeKey(t bcview.Type) string {
	switch t.Kind {
	case bcview.TypeKindPrimitive:
		return "p:" + string(t.Primitive)
	case bcview.TypeKindArray:
		return fmt.Sprintf("a:%s:%d", typeKey(t.Array.ElementType), t.Array.Dimension)
	default:
		return "c:" + t.Class.FullyQualifiedName
	}
}

func methodKey(m bcview.Method) string {
	s := m.DeclClassType.FullyQualifiedName + "#" + m.Name + "("
	for i, p := range m.ParameterTypes {
		if i > 0 {
			s += ","
		}
		s += typeKey(p)
	}
	return s + ")"
}

// String renders a Node the way it should appear in a repr comment — "$" is
// not used here (that substitution is emitter-side, on Dependency.Repr).
func (n Node) String() string {
	switch n.Kind {
	case NodeClass:
		return n.Class.FullyQualifiedName
	case NodePrimitive:
		return string(n.Primitive)
	case NodeArray:
		dims := ""
		for i := 0; i < n.Array.Dim; i++ {
			dims += "[]"
		}
		return fmt.Sprintf("%s%s", typeName(n.Array.Elem), dims)
	case NodeConstructorCall:
		return n.Method.DeclClassType.FullyQualifiedName + ".<init>"
	case NodeStaticMethodCall:
		return n.Method.DeclClassType.FullyQualifiedName + "." + n.Method.Name
	case NodeMethodCall:
		return n.Method.DeclClassType.FullyQualifiedName + "#" + n.Method.Name
	default:
		return "?"
	}
}

func typeName(t bcview.Type) string {
	switch t.Kind {
	case bcview.TypeKindPrimitive:
		return string(t.Primitive)
	case bcview.TypeKindArray:
		dims := ""
		for i := 0; i < t.Array.Dimension; i++ {
			dims += "[]"
		}
		return typeName(t.Array.ElementType) + dims
	default:
		return t.Class.FullyQualifiedName
	}
}
