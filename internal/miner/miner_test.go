package miner

import (
	"testing"

	"github.com/jcraft-dev/jcraft/internal/bcview"
	"github.com/jcraft-dev/jcraft/internal/bcview/memview"
	"github.com/jcraft-dev/jcraft/internal/depgraph"
)

var (
	widgetType = bcview.ClassType{FullyQualifiedName: "com.example.Widget", PackageName: "com.example"}
	gizmoType  = bcview.ClassType{FullyQualifiedName: "com.example.Gizmo", PackageName: "com.example"}
	factoryType = bcview.ClassType{FullyQualifiedName: "com.example.WidgetFactory", PackageName: "com.example"}
)

func TestDependenciesOfJDKClassIsShortCircuited(t *testing.T) {
	m := New(memview.New())
	node := depgraph.ClassNode(bcview.ClassType{FullyQualifiedName: "java.lang.String", PackageName: "java.lang"})

	deps := m.DependenciesOf(node)
	if len(deps) != 1 {
		t.Fatalf("expected exactly one dependency for a java.* class, got %d", len(deps))
	}
	if deps[0].Kind != depgraph.DepJdkInitialization {
		t.Errorf("expected DepJdkInitialization, got %v", deps[0].Kind)
	}
}

func TestDependenciesOfClassFindsPublicConstructor(t *testing.T) {
	widget := bcview.Class{
		Name: widgetType.FullyQualifiedName, Type: widgetType, IsPublic: true,
		Methods: []bcview.Method{
			{Name: "<init>", IsPublic: true, DeclClassType: widgetType, ParameterTypes: []bcview.Type{bcview.PrimitiveT(bcview.Int)}},
		},
	}
	m := New(memview.New(widget))
	deps := m.DependenciesOf(depgraph.ClassNode(widgetType))
	if len(deps) != 1 || deps[0].Kind != depgraph.DepUseMethod {
		t.Fatalf("expected one UseMethod dependency for the constructor, got %v", deps)
	}
}

func TestDependenciesOfClassSkipsPrivateConstructor(t *testing.T) {
	widget := bcview.Class{
		Name: widgetType.FullyQualifiedName, Type: widgetType, IsPublic: true,
		Methods: []bcview.Method{
			{Name: "<init>", IsPublic: false, DeclClassType: widgetType},
		},
	}
	m := New(memview.New(widget))
	deps := m.DependenciesOf(depgraph.ClassNode(widgetType))
	if len(deps) != 0 {
		t.Fatalf("expected no dependencies from a private constructor, got %v", deps)
	}
}

func TestDependenciesOfClassFindsSubclassUpcast(t *testing.T) {
	super := bcview.Class{Name: widgetType.FullyQualifiedName, Type: widgetType, IsPublic: true}
	sub := bcview.Class{
		Name: gizmoType.FullyQualifiedName, Type: gizmoType, IsPublic: true,
		Superclass: &widgetType,
		Methods:    []bcview.Method{{Name: "<init>", IsPublic: true, DeclClassType: gizmoType}},
	}
	m := New(memview.New(super, sub))
	deps := m.DependenciesOf(depgraph.ClassNode(widgetType))

	var sawUpcast bool
	for _, d := range deps {
		if d.Kind == depgraph.DepUpcast {
			sawUpcast = true
		}
	}
	if !sawUpcast {
		t.Fatalf("expected an Upcast dependency via the subclass index, got %v", deps)
	}
}

func TestDependenciesOfClassFindsFactoryMethod(t *testing.T) {
	widget := bcview.Class{Name: widgetType.FullyQualifiedName, Type: widgetType, IsPublic: true}
	factory := bcview.Class{
		Name: factoryType.FullyQualifiedName, Type: factoryType, IsPublic: true,
		Methods: []bcview.Method{
			{Name: "<init>", IsPublic: true, DeclClassType: factoryType},
			{Name: "create", IsPublic: true, DeclClassType: factoryType, ReturnType: bcview.ClassT(widgetType), HasReturnType: true},
		},
	}
	m := New(memview.New(widget, factory))
	deps := m.DependenciesOf(depgraph.ClassNode(widgetType))

	var sawFactory bool
	for _, d := range deps {
		if d.Kind == depgraph.DepUseMethod {
			sawFactory = true
		}
	}
	if !sawFactory {
		t.Fatalf("expected a UseMethod dependency via the factory method index, got %v", deps)
	}
}

func TestDependenciesOfClassUnloadedReturnsNil(t *testing.T) {
	m := New(memview.New())
	deps := m.DependenciesOf(depgraph.ClassNode(widgetType))
	if deps != nil {
		t.Fatalf("expected nil dependencies for an unloaded class, got %v", deps)
	}
}

func TestDependenciesOfConstructorCallDropsUnresolvableParam(t *testing.T) {
	ctor := bcview.Method{
		Name: "<init>", IsPublic: true, DeclClassType: widgetType,
		ParameterTypes: []bcview.Type{bcview.ClassT(bcview.ClassType{FullyQualifiedName: "com.example.Unloaded"})},
	}
	m := New(memview.New())
	deps := m.DependenciesOf(depgraph.ConstructorCallNode(ctor))
	if deps != nil {
		t.Fatalf("expected nil dependencies when a param class isn't loaded, got %v", deps)
	}
}

func TestDependenciesOfConstructorCallWithResolvableParams(t *testing.T) {
	ctor := bcview.Method{
		Name: "<init>", IsPublic: true, DeclClassType: widgetType,
		ParameterTypes: []bcview.Type{bcview.PrimitiveT(bcview.Int), bcview.ArrayT(bcview.PrimitiveT(bcview.Byte), 1)},
	}
	m := New(memview.New())
	deps := m.DependenciesOf(depgraph.ConstructorCallNode(ctor))
	if len(deps) != 1 {
		t.Fatalf("expected exactly one CallMethod dependency, got %v", deps)
	}
	if deps[0].HasReceiver {
		t.Errorf("constructor call dependency must not have a receiver")
	}
	if len(deps[0].Params) != 2 {
		t.Errorf("expected 2 params, got %d", len(deps[0].Params))
	}
}

func TestDependenciesOfMethodCallRequiresReceiver(t *testing.T) {
	widget := bcview.Class{Name: widgetType.FullyQualifiedName, Type: widgetType, IsPublic: true}
	method := bcview.Method{Name: "getValue", IsPublic: true, DeclClassType: widgetType, ReturnType: bcview.PrimitiveT(bcview.Int), HasReturnType: true}

	m := New(memview.New(widget))
	deps := m.DependenciesOf(depgraph.MethodCallNode(method))
	if len(deps) != 1 || !deps[0].HasReceiver {
		t.Fatalf("expected one CallMethod dependency with a receiver, got %v", deps)
	}
	if deps[0].Receiver.Key() != depgraph.ClassNode(widgetType).Key() {
		t.Errorf("receiver = %v, want %v", deps[0].Receiver, widgetType)
	}
}

func TestDependenciesOfPrimitiveAndArray(t *testing.T) {
	m := New(memview.New())

	primDeps := m.DependenciesOf(depgraph.PrimitiveNode(bcview.Int))
	if len(primDeps) != 1 || primDeps[0].Kind != depgraph.DepPrimitive {
		t.Fatalf("expected one Primitive dependency, got %v", primDeps)
	}

	arrDeps := m.DependenciesOf(depgraph.ArrayNode(bcview.PrimitiveT(bcview.Int), 1))
	if len(arrDeps) != 1 || arrDeps[0].Kind != depgraph.DepEmptyArray {
		t.Fatalf("expected one EmptyArray dependency, got %v", arrDeps)
	}
}
