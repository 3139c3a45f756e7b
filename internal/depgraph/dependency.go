package depgraph

// DependencyKind tags which variant of Dependency is populated.
type DependencyKind int

const (
	DepCallMethod DependencyKind = iota
	DepUseMethod
	DepJdkInitialization
	DepUpcast
	DepPrimitive
	DepEmptyArray
)

// Dependency is one OR-alternative by which its Of node can be satisfied;
// satisfying it requires that every node in Requirements be satisfied
// first. Cost is a fixed non-negative integer per spec.md's cost table.
type Dependency struct {
	Kind DependencyKind
	Of   Node

	// DepCallMethod only: the node (if any) providing the receiver
	// instance. Absent (HasReceiver=false) for constructors and static
	// methods.
	HasReceiver bool
	Receiver    Node
	Params      []Node

	// DepUseMethod / DepUpcast only: the single requirement node,
	// duplicated into Requirements() for uniformity.
	single Node
}

// CallMethod builds a CallMethod dependency. receiver may be the zero Node
// with hasReceiver=false for constructors and static methods.
func CallMethod(of Node, hasReceiver bool, receiver Node, params []Node) Dependency {
	return Dependency{Kind: DepCallMethod, Of: of, HasReceiver: hasReceiver, Receiver: receiver, Params: params}
}

// UseMethod builds a dependency satisfying a Class node via a method node
// (constructor or factory) whose result realizes it.
func UseMethod(of Node, method Node) Dependency {
	return Dependency{Kind: DepUseMethod, Of: of, single: method}
}

// JdkInitialization builds a dependency treating a java.* class as
// constructible via its default constructor at fixed cost.
func JdkInitialization(of Node) Dependency {
	return Dependency{Kind: DepJdkInitialization, Of: of}
}

// Upcast builds a dependency satisfying a superclass Node by constructing
// one of its subclasses.
func Upcast(of Node, subclass Node) Dependency {
	return Dependency{Kind: DepUpcast, Of: of, single: subclass}
}

// PrimitiveDependency builds a dependency satisfying a Primitive node with
// a literal.
func PrimitiveDependency(of Node) Dependency {
	return Dependency{Kind: DepPrimitive, Of: of}
}

// EmptyArray builds a dependency satisfying an Array node by allocating a
// zero-length array.
func EmptyArray(of Node) Dependency {
	return Dependency{Kind: DepEmptyArray, Of: of}
}

// Cost returns the fixed cost of this dependency kind, per spec.md's table.
func (d Dependency) Cost() int {
	switch d.Kind {
	case DepCallMethod:
		return 1
	case DepUseMethod:
		return 0
	case DepJdkInitialization:
		return 2
	case DepUpcast:
		return 0
	case DepPrimitive:
		return 0
	case DepEmptyArray:
		return 3
	default:
		return 0
	}
}

// Requirements returns, in order, the nodes that must all be satisfied
// before this dependency can be considered to satisfy Of.
func (d Dependency) Requirements() []Node {
	switch d.Kind {
	case DepCallMethod:
		if d.HasReceiver {
			reqs := make([]Node, 0, 1+len(d.Params))
			reqs = append(reqs, d.Receiver)
			reqs = append(reqs, d.Params...)
			return reqs
		}
		reqs := make([]Node, len(d.Params))
		copy(reqs, d.Params)
		return reqs
	case DepUseMethod, DepUpcast:
		return []Node{d.single}
	default:
		return nil
	}
}

// Repr renders this dependency the way the emitter places it in a preceding
// comment, with "$" replaced by "." for readability per spec.md §4.3.
func (d Dependency) Repr() string {
	raw := d.reprRaw()
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '$' {
			out = append(out, '.')
		} else {
			out = append(out, raw[i])
		}
	}
	return string(out)
}

func (d Dependency) reprRaw() string {
	switch d.Kind {
	case DepCallMethod:
		return "CallMethod(" + d.Of.String() + ")"
	case DepUseMethod:
		return "UseMethod(" + d.Of.String() + " <- " + d.single.String() + ")"
	case DepJdkInitialization:
		return "JdkInitialization(" + d.Of.String() + ")"
	case DepUpcast:
		return "Upcast(" + d.Of.String() + " <- " + d.single.String() + ")"
	case DepPrimitive:
		return "Primitive(" + d.Of.String() + ")"
	case DepEmptyArray:
		return "EmptyArray(" + d.Of.String() + ")"
	default:
		return "?"
	}
}
