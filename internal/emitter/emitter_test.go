package emitter

import (
	"strings"
	"testing"

	"github.com/jcraft-dev/jcraft/internal/bcview"
	"github.com/jcraft-dev/jcraft/internal/depgraph"
)

var widgetType = bcview.ClassType{FullyQualifiedName: "com.example.Widget", PackageName: "com.example"}

func TestEmitDefaultPackageAndClass(t *testing.T) {
	widget := depgraph.ClassNode(widgetType)
	plan := &depgraph.Plan{
		Result:          widget,
		CreationOrder:   []depgraph.Node{widget},
		DependencyOrder: []depgraph.Dependency{depgraph.JdkInitialization(widget)},
		Cost:            2,
	}
	source, err := Emit(plan, Options{})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(source, "package org.example;") {
		t.Error("expected default package org.example")
	}
	if !strings.Contains(source, "public final class Main {") {
		t.Error("expected default class name Main")
	}
}

func TestEmitCustomPackageAndClass(t *testing.T) {
	widget := depgraph.ClassNode(widgetType)
	plan := &depgraph.Plan{
		Result:          widget,
		CreationOrder:   []depgraph.Node{widget},
		DependencyOrder: []depgraph.Dependency{depgraph.JdkInitialization(widget)},
		Cost:            2,
	}
	source, err := Emit(plan, Options{Package: "com.acme", ClassName: "Builder"})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(source, "package com.acme;") {
		t.Error("expected configured package com.acme")
	}
	if !strings.Contains(source, "public final class Builder {") {
		t.Error("expected configured class name Builder")
	}
}

func TestEmitConstructorCallChain(t *testing.T) {
	ctor := bcview.Method{Name: "<init>", DeclClassType: widgetType}
	ctorNode := depgraph.ConstructorCallNode(ctor)
	classNode := depgraph.ClassNode(widgetType)

	plan := &depgraph.Plan{
		Result:        classNode,
		CreationOrder: []depgraph.Node{ctorNode, classNode},
		DependencyOrder: []depgraph.Dependency{
			depgraph.CallMethod(ctorNode, false, depgraph.Node{}, nil),
			depgraph.UseMethod(classNode, ctorNode),
		},
		Cost: 1,
	}
	source, err := Emit(plan, Options{})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(source, "new com.example.Widget()") {
		t.Errorf("expected a constructor call, got:\n%s", source)
	}
}

func TestEmitPrimitiveParameterUsesAnyValue(t *testing.T) {
	intParam := depgraph.PrimitiveNode(bcview.Int)
	ctor := bcview.Method{Name: "<init>", DeclClassType: widgetType, ParameterTypes: []bcview.Type{bcview.PrimitiveT(bcview.Int)}}
	ctorNode := depgraph.ConstructorCallNode(ctor)
	classNode := depgraph.ClassNode(widgetType)

	plan := &depgraph.Plan{
		Result:        classNode,
		CreationOrder: []depgraph.Node{ctorNode, classNode},
		DependencyOrder: []depgraph.Dependency{
			depgraph.CallMethod(ctorNode, false, depgraph.Node{}, []depgraph.Node{intParam}),
			depgraph.UseMethod(classNode, ctorNode),
		},
		Cost: 1,
	}
	source, err := Emit(plan, Options{})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(source, "new com.example.Widget(0)") {
		t.Errorf("expected anyValue literal 0 for the unbound int param, got:\n%s", source)
	}
}

func TestEmitUpcast(t *testing.T) {
	subType := bcview.ClassType{FullyQualifiedName: "com.example.Gizmo"}
	subCtor := bcview.Method{Name: "<init>", DeclClassType: subType}
	subCtorNode := depgraph.ConstructorCallNode(subCtor)
	subClassNode := depgraph.ClassNode(subType)
	superNode := depgraph.ClassNode(widgetType)

	plan := &depgraph.Plan{
		Result:        superNode,
		CreationOrder: []depgraph.Node{subCtorNode, subClassNode, superNode},
		DependencyOrder: []depgraph.Dependency{
			depgraph.CallMethod(subCtorNode, false, depgraph.Node{}, nil),
			depgraph.UseMethod(subClassNode, subCtorNode),
			depgraph.Upcast(superNode, subClassNode),
		},
		Cost: 1,
	}
	source, err := Emit(plan, Options{})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(source, "(com.example.Widget)") {
		t.Errorf("expected a cast to the superclass type, got:\n%s", source)
	}
}

func TestEmitEmptyArray(t *testing.T) {
	arrNode := depgraph.ArrayNode(bcview.PrimitiveT(bcview.Byte), 1)
	plan := &depgraph.Plan{
		Result:          arrNode,
		CreationOrder:   []depgraph.Node{arrNode},
		DependencyOrder: []depgraph.Dependency{depgraph.EmptyArray(arrNode)},
		Cost:            3,
	}
	source, err := Emit(plan, Options{})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(source, "new byte[0]") {
		t.Errorf("expected a zero-length byte array allocation, got:\n%s", source)
	}
}

func TestEmitFreshNameDisambiguation(t *testing.T) {
	// Two distinct java.lang.Object-shaped JDK nodes would collide on the
	// "Object_var" hint if dedup didn't monotonically disambiguate; build
	// two distinct classes whose simple name coincides instead, since two
	// structurally-identical nodes collapse into the same Key() and never
	// reach emission twice.
	typeA := bcview.ClassType{FullyQualifiedName: "com.example.a.Widget"}
	typeB := bcview.ClassType{FullyQualifiedName: "com.example.b.Widget"}
	nodeA := depgraph.ClassNode(typeA)
	nodeB := depgraph.ClassNode(typeB)

	plan := &depgraph.Plan{
		Result:        nodeB,
		CreationOrder: []depgraph.Node{nodeA, nodeB},
		DependencyOrder: []depgraph.Dependency{
			depgraph.JdkInitialization(nodeA),
			depgraph.JdkInitialization(nodeB),
		},
		Cost: 4,
	}
	source, err := Emit(plan, Options{})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(source, "Widget_var") || !strings.Contains(source, "Widget_var1") {
		t.Errorf("expected disambiguated variable names Widget_var and Widget_var1, got:\n%s", source)
	}
}

func TestEmitIncompleteWhenParamTypeNotRepresentable(t *testing.T) {
	classParam := depgraph.ClassNode(bcview.ClassType{FullyQualifiedName: "com.example.Unbound"})
	ctor := bcview.Method{Name: "<init>", DeclClassType: widgetType, ParameterTypes: []bcview.Type{bcview.ClassT(classParam.Class)}}
	ctorNode := depgraph.ConstructorCallNode(ctor)

	plan := &depgraph.Plan{
		Result:        ctorNode,
		CreationOrder: []depgraph.Node{ctorNode},
		DependencyOrder: []depgraph.Dependency{
			depgraph.CallMethod(ctorNode, false, depgraph.Node{}, []depgraph.Node{classParam}),
		},
		Cost: 1,
	}
	if _, err := Emit(plan, Options{}); err == nil {
		t.Fatal("expected an EmissionIncomplete-style error for an unrepresentable class param")
	}
}
