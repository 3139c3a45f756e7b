// Package miner implements the dependency miner of spec.md §4.1: a
// deterministic mapping from a depgraph.Node to the list of
// depgraph.Dependency candidates ("OR-choices") that could satisfy it,
// computed lazily against a fixed bcview.View.
package miner

import (
	"strings"

	"github.com/jcraft-dev/jcraft/internal/bcview"
	"github.com/jcraft-dev/jcraft/internal/depgraph"
)

// Miner precomputes the subclass index and the methods-by-return-type
// index over a View in a single pass, then answers DependenciesOf queries
// against them. Both indices and the Miner itself are immutable after
// construction and safe to share for reads across goroutines (the View
// they're built from must itself be read-only, per spec.md §5).
type Miner struct {
	view bcview.View

	// subclassIndex maps a superclass/interface fully qualified name to
	// the public loaded classes that directly name it as superclass or
	// implemented interface. Transitivity is not computed.
	subclassIndex map[string][]bcview.Class

	// methodByReturnTypeIndex maps a class's fully qualified name to the
	// public, non-constructor, non-<clinit> methods whose declared
	// return type resolves exactly to that class.
	methodByReturnTypeIndex map[string][]bcview.Method
}

// New builds a Miner over view, indexing every public class in one pass.
// Non-public classes and unresolvable type references are skipped
// silently, per spec.md's ViewLookupMissing policy.
func New(view bcview.View) *Miner {
	m := &Miner{
		view:                     view,
		subclassIndex:            make(map[string][]bcview.Class),
		methodByReturnTypeIndex:  make(map[string][]bcview.Method),
	}
	for _, c := range view.Classes() {
		if !c.IsPublic {
			continue
		}
		if c.Superclass != nil {
			m.subclassIndex[c.Superclass.FullyQualifiedName] = append(m.subclassIndex[c.Superclass.FullyQualifiedName], c)
		}
		for _, iface := range c.Interfaces {
			m.subclassIndex[iface.FullyQualifiedName] = append(m.subclassIndex[iface.FullyQualifiedName], c)
		}
		for _, method := range c.Methods {
			if !method.IsPublic || method.Name == "<init>" || method.Name == "<clinit>" {
				continue
			}
			if !method.HasReturnType || method.ReturnType.Kind != bcview.TypeKindClass {
				continue
			}
			m.methodByReturnTypeIndex[method.ReturnType.Class.FullyQualifiedName] = append(
				m.methodByReturnTypeIndex[method.ReturnType.Class.FullyQualifiedName], method)
		}
	}
	return m
}

// DependenciesOf returns the candidate dependencies for node, in the fixed
// order spec.md §4.1 prescribes. An empty result means node cannot be
// satisfied at all (the solver's trial fails immediately for it).
func (m *Miner) DependenciesOf(node depgraph.Node) []depgraph.Dependency {
	switch node.Kind {
	case depgraph.NodeClass:
		return m.dependenciesOfClass(node)
	case depgraph.NodeConstructorCall, depgraph.NodeStaticMethodCall:
		return m.dependenciesOfFreeMethod(node)
	case depgraph.NodeMethodCall:
		return m.dependenciesOfInstanceMethod(node)
	case depgraph.NodePrimitive:
		return []depgraph.Dependency{depgraph.PrimitiveDependency(node)}
	case depgraph.NodeArray:
		return []depgraph.Dependency{depgraph.EmptyArray(node)}
	default:
		return nil
	}
}

func (m *Miner) dependenciesOfClass(node depgraph.Node) []depgraph.Dependency {
	ct := node.Class
	if strings.HasPrefix(ct.PackageName, "java.") {
		return []depgraph.Dependency{depgraph.JdkInitialization(node)}
	}

	c, ok := m.view.GetClass(ct)
	if !ok {
		return nil
	}

	var deps []depgraph.Dependency

	for _, method := range c.Methods {
		if method.IsPublic && method.Name == "<init>" {
			ctorNode := depgraph.ConstructorCallNode(method)
			deps = append(deps, depgraph.UseMethod(node, ctorNode))
		}
	}

	for _, sub := range m.subclassIndex[ct.FullyQualifiedName] {
		deps = append(deps, depgraph.Upcast(node, depgraph.ClassNode(sub.Type)))
	}

	for _, method := range m.methodByReturnTypeIndex[ct.FullyQualifiedName] {
		methodNode := depgraph.MethodCallNode(method)
		deps = append(deps, depgraph.UseMethod(node, methodNode))
	}

	return deps
}

// dependenciesOfFreeMethod handles ConstructorCall and StaticMethodCall
// nodes, both of which take no receiver.
func (m *Miner) dependenciesOfFreeMethod(node depgraph.Node) []depgraph.Dependency {
	params, ok := m.paramsOf(node.Method)
	if !ok {
		return nil
	}
	return []depgraph.Dependency{depgraph.CallMethod(node, false, depgraph.Node{}, params)}
}

// dependenciesOfInstanceMethod handles MethodCall nodes, which require a
// receiver of the declaring class.
func (m *Miner) dependenciesOfInstanceMethod(node depgraph.Node) []depgraph.Dependency {
	declClass, ok := m.view.GetClass(node.Method.DeclClassType)
	if !ok {
		return nil
	}
	params, ok := m.paramsOf(node.Method)
	if !ok {
		return nil
	}
	receiver := depgraph.ClassNode(declClass.Type)
	return []depgraph.Dependency{depgraph.CallMethod(node, true, receiver, params)}
}

// paramsOf maps a method's declared parameter types to requirement Nodes.
// Any parameter kind the Node model cannot represent causes the whole call
// to be dropped (ok=false), per spec.md's UnresolvableType policy: the
// caller silently omits the candidate instead of propagating an error.
func (m *Miner) paramsOf(method bcview.Method) ([]depgraph.Node, bool) {
	params := make([]depgraph.Node, 0, len(method.ParameterTypes))
	for _, t := range method.ParameterTypes {
		switch t.Kind {
		case bcview.TypeKindPrimitive:
			params = append(params, depgraph.PrimitiveNode(t.Primitive))
		case bcview.TypeKindArray:
			params = append(params, depgraph.ArrayNode(t.Array.ElementType, t.Array.Dimension))
		case bcview.TypeKindClass:
			if _, ok := m.view.GetClass(t.Class); !ok {
				return nil, false
			}
			params = append(params, depgraph.ClassNode(t.Class))
		default:
			return nil, false
		}
	}
	return params, true
}
