// Package emitter translates a solved depgraph.Plan into the body of a
// generated Java main method, per spec.md §4.3: one statement per
// dependency, a preceding repr comment, and a name table binding each plan
// node to the Java variable that realizes it.
package emitter

import (
	"fmt"
	"strings"

	"github.com/jcraft-dev/jcraft/internal/bcview"
	"github.com/jcraft-dev/jcraft/internal/depgraph"
)

// Options configures the emitted compilation unit's package and class
// names. The zero value yields spec.md's defaults: package org.example,
// class Main.
type Options struct {
	Package   string
	ClassName string
}

func (o Options) withDefaults() Options {
	if o.Package == "" {
		o.Package = "org.example"
	}
	if o.ClassName == "" {
		o.ClassName = "Main"
	}
	return o
}

// Emit walks plan in topological (creation) order and produces a complete
// Java compilation unit whose main body realizes it. Returns an
// EmissionIncomplete error (spec.md §7) if a required parameter slot has
// neither a bound value nor a representable anyValue literal.
func Emit(plan *depgraph.Plan, opts Options) (string, error) {
	opts = opts.withDefaults()

	names := newNameTable()
	var body strings.Builder

	for i, node := range plan.CreationOrder {
		dep := plan.DependencyOrder[i]
		if err := emitOne(&body, names, node, dep); err != nil {
			return "", err
		}
	}

	var out strings.Builder
	fmt.Fprintf(&out, "package %s;\n\n", opts.Package)
	fmt.Fprintf(&out, "public final class %s {\n", opts.ClassName)
	out.WriteString("    public static void main(String[] args) {\n")
	for _, line := range strings.Split(strings.TrimRight(body.String(), "\n"), "\n") {
		if line == "" {
			out.WriteString("\n")
			continue
		}
		out.WriteString("        ")
		out.WriteString(line)
		out.WriteString("\n")
	}
	out.WriteString("    }\n")
	out.WriteString("}\n")

	return out.String(), nil
}

func emitOne(body *strings.Builder, names *nameTable, node depgraph.Node, dep depgraph.Dependency) error {
	fmt.Fprintf(body, "// %s\n", dep.Repr())

	switch dep.Kind {
	case depgraph.DepCallMethod:
		return emitCallMethod(body, names, node, dep)
	case depgraph.DepUseMethod:
		return emitUseMethod(body, names, node, dep)
	case depgraph.DepJdkInitialization:
		return emitJdkInitialization(body, names, node)
	case depgraph.DepUpcast:
		return emitUpcast(body, names, node, dep)
	case depgraph.DepPrimitive:
		return emitPrimitive(body, names, node)
	case depgraph.DepEmptyArray:
		return emitEmptyArray(body, names, node)
	default:
		return fmt.Errorf("emit: unknown dependency kind %v", dep.Kind)
	}
}

// argFor resolves the Java expression to pass for a required parameter
// node: the already-bound variable if one exists, else an anyValue
// literal. Fails with EmissionIncomplete if neither is available.
func argFor(names *nameTable, param depgraph.Node) (string, error) {
	if v, ok := names.lookup(param.Key()); ok {
		return v, nil
	}
	t := nodeType(param)
	if v, ok := anyValue(t); ok {
		return v, nil
	}
	return "", fmt.Errorf("emission incomplete: no value available for parameter of type %s", param.String())
}

// nodeType recovers the bcview.Type a requirement Node denotes, for
// anyValue lookups on primitive/array/class parameter nodes.
func nodeType(n depgraph.Node) bcview.Type {
	switch n.Kind {
	case depgraph.NodePrimitive:
		return bcview.PrimitiveT(n.Primitive)
	case depgraph.NodeArray:
		return bcview.ArrayT(n.Array.Elem, n.Array.Dim)
	default:
		return bcview.ClassT(n.Class)
	}
}

func joinArgs(args []string) string {
	return strings.Join(args, ", ")
}

func emitCallMethod(body *strings.Builder, names *nameTable, node depgraph.Node, dep depgraph.Dependency) error {
	args := make([]string, 0, len(dep.Params))
	for _, p := range dep.Params {
		a, err := argFor(names, p)
		if err != nil {
			return err
		}
		args = append(args, a)
	}

	switch node.Kind {
	case depgraph.NodeConstructorCall:
		declared := node.Method.DeclClassType
		typeName := javaClassTypeName(declared)
		v := names.fresh(simpleName(typeName))
		fmt.Fprintf(body, "%s %s = new %s(%s);\n", typeName, v, typeName, joinArgs(args))
		names.bind(node.Key(), v)
		return nil
	case depgraph.NodeStaticMethodCall:
		returnType := javaTypeName(node.Method.ReturnType)
		declared := javaClassTypeName(node.Method.DeclClassType)
		v := names.fresh(simpleName(returnType))
		fmt.Fprintf(body, "%s %s = %s.%s(%s);\n", returnType, v, declared, node.Method.Name, joinArgs(args))
		names.bind(node.Key(), v)
		return nil
	case depgraph.NodeMethodCall:
		recv, err := argFor(names, dep.Receiver)
		if err != nil {
			return err
		}
		returnType := javaTypeName(node.Method.ReturnType)
		v := names.fresh(simpleName(returnType))
		fmt.Fprintf(body, "%s %s = %s.%s(%s);\n", returnType, v, recv, node.Method.Name, joinArgs(args))
		names.bind(node.Key(), v)
		return nil
	default:
		return fmt.Errorf("emit: CallMethod.Of has unexpected kind %v", node.Kind)
	}
}

// emitUseMethod binds the Class node to the variable already bound for the
// method node that realizes it. No statement is emitted: the class is
// realized *by* the constructor's or method's result.
func emitUseMethod(body *strings.Builder, names *nameTable, node depgraph.Node, dep depgraph.Dependency) error {
	methodNode := dep.Requirements()[0]
	v, ok := names.lookup(methodNode.Key())
	if !ok {
		return fmt.Errorf("emission incomplete: UseMethod target %s was never bound", methodNode.String())
	}
	names.bind(node.Key(), v)
	return nil
}

func emitJdkInitialization(body *strings.Builder, names *nameTable, node depgraph.Node) error {
	typeName := javaClassTypeName(node.Class)
	v := names.fresh(simpleName(typeName))
	fmt.Fprintf(body, "%s %s = new %s();\n", typeName, v, typeName)
	names.bind(node.Key(), v)
	return nil
}

func emitUpcast(body *strings.Builder, names *nameTable, node depgraph.Node, dep depgraph.Dependency) error {
	subNode := dep.Requirements()[0]
	x, ok := names.lookup(subNode.Key())
	if !ok {
		return fmt.Errorf("emission incomplete: Upcast source %s was never bound", subNode.String())
	}
	superName := javaClassTypeName(node.Class)
	v := names.fresh(simpleName(superName))
	fmt.Fprintf(body, "%s %s = (%s) %s;\n", superName, v, superName, x)
	names.bind(node.Key(), v)
	return nil
}

func emitPrimitive(body *strings.Builder, names *nameTable, node depgraph.Node) error {
	p := string(node.Primitive)
	v := names.fresh(p)
	lit, ok := anyValue(bcview.PrimitiveT(node.Primitive))
	if !ok {
		return fmt.Errorf("emission incomplete: no literal for primitive %s", p)
	}
	fmt.Fprintf(body, "%s %s = %s;\n", p, v, lit)
	names.bind(node.Key(), v)
	return nil
}

func emitEmptyArray(body *strings.Builder, names *nameTable, node depgraph.Node) error {
	elemName := javaTypeName(node.Array.Elem)
	suffix := strings.Repeat("[]", node.Array.Dim)
	v := names.fresh(simpleName(elemName))
	fmt.Fprintf(body, "%s%s %s = new %s[0];\n", elemName, suffix, v, elemName)
	names.bind(node.Key(), v)
	return nil
}
