package memview

import (
	"testing"

	"github.com/jcraft-dev/jcraft/internal/bcview"
)

func TestNewPreservesOrder(t *testing.T) {
	a := bcview.Class{Name: "a.A", Type: bcview.ClassType{FullyQualifiedName: "a.A"}}
	b := bcview.Class{Name: "b.B", Type: bcview.ClassType{FullyQualifiedName: "b.B"}}

	v := New(a, b)
	classes := v.Classes()
	if len(classes) != 2 || classes[0].Name != "a.A" || classes[1].Name != "b.B" {
		t.Fatalf("expected order to be preserved, got %v", classes)
	}
}

func TestGetClassFound(t *testing.T) {
	a := bcview.Class{Name: "a.A", Type: bcview.ClassType{FullyQualifiedName: "a.A"}}
	v := New(a)

	got, ok := v.GetClass(bcview.ClassType{FullyQualifiedName: "a.A"})
	if !ok {
		t.Fatal("expected a.A to be found")
	}
	if got.Name != "a.A" {
		t.Errorf("GetClass returned %v", got)
	}
}

func TestGetClassNotFound(t *testing.T) {
	v := New()
	if _, ok := v.GetClass(bcview.ClassType{FullyQualifiedName: "missing.Class"}); ok {
		t.Fatal("expected missing class to be absent")
	}
}

func TestClassesReturnsCopyNotAlias(t *testing.T) {
	a := bcview.Class{Name: "a.A", Type: bcview.ClassType{FullyQualifiedName: "a.A"}}
	v := New(a)

	classes := v.Classes()
	classes[0].Name = "mutated"

	again := v.Classes()
	if again[0].Name != "a.A" {
		t.Fatal("Classes() must return a defensive copy, internal state was mutated")
	}
}
