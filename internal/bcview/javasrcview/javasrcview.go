// Package javasrcview is a best-effort bcview.View adapter built by parsing
// a directory of .java sources with tree-sitter instead of reading real
// classfiles. Bytecode loading is an external collaborator per spec.md §1;
// this gives the miner something concrete to run against for targets that
// only exist as source, at the cost of classfile fidelity (no constant-pool
// resolution, no compiled default-constructor synthesis beyond what's
// textually visible).
package javasrcview

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/jcraft-dev/jcraft/internal/bcview"
)

// Load walks dir for *.java files and builds a View from the classes it
// can parse, public or not (Class.IsPublic records which). Parse errors on individual files are skipped
// silently (ViewLookupMissing-style policy: absence, not failure).
func Load(dir string) (bcview.View, error) {
	var classes []bcview.Class

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".java") {
			return nil
		}
		src, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}
		fileClasses, parseErr := parseFile(src)
		if parseErr != nil {
			return nil
		}
		classes = append(classes, fileClasses...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &View{classes: classes, byName: indexByName(classes)}, nil
}

// View is the javasrcview-backed bcview.View.
type View struct {
	classes []bcview.Class
	byName  map[string]bcview.Class
}

func (v *View) Classes() []bcview.Class { return append([]bcview.Class(nil), v.classes...) }

func (v *View) GetClass(t bcview.ClassType) (bcview.Class, bool) {
	c, ok := v.byName[t.FullyQualifiedName]
	return c, ok
}

func indexByName(classes []bcview.Class) map[string]bcview.Class {
	m := make(map[string]bcview.Class, len(classes))
	for _, c := range classes {
		m[c.Name] = c
	}
	return m
}

func newJavaParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(java.GetLanguage())
	return p
}

func parseFile(src []byte) ([]bcview.Class, error) {
	p := newJavaParser()
	tree, err := p.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, err
	}
	root := tree.RootNode()

	pkg := findPackage(root, src)

	var classes []bcview.Class
	walkClassDecls(root, func(node *sitter.Node) {
		if c, ok := extractClass(node, src, pkg); ok {
			classes = append(classes, c)
		}
	})
	return classes, nil
}

func findPackage(root *sitter.Node, src []byte) string {
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		if child.Type() == "package_declaration" {
			for j := 0; j < int(child.ChildCount()); j++ {
				grandchild := child.Child(j)
				if grandchild.Type() == "scoped_identifier" || grandchild.Type() == "identifier" {
					return nodeText(grandchild, src)
				}
			}
		}
	}
	return ""
}

// walkClassDecls visits every class_declaration node in the tree.
func walkClassDecls(node *sitter.Node, visit func(*sitter.Node)) {
	if node.Type() == "class_declaration" {
		visit(node)
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		walkClassDecls(node.Child(i), visit)
	}
}

func extractClass(node *sitter.Node, src []byte, pkg string) (bcview.Class, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return bcview.Class{}, false
	}
	simpleName := nodeText(nameNode, src)
	fqn := simpleName
	if pkg != "" {
		fqn = pkg + "." + simpleName
	}

	modifiers := extractModifiers(node, src)
	isPublic := contains(modifiers, "public")

	ct := bcview.ClassType{FullyQualifiedName: fqn, PackageName: pkg}

	var superclass *bcview.ClassType
	if sc := node.ChildByFieldName("superclass"); sc != nil {
		if t := findChildByType(sc, "type_identifier"); t != nil {
			name := resolveSimpleName(nodeText(t, src), pkg)
			superclass = &name
		}
	}

	var interfaces []bcview.ClassType
	if ifaces := node.ChildByFieldName("interfaces"); ifaces != nil {
		for _, t := range findTypeIdentifiers(ifaces) {
			interfaces = append(interfaces, resolveSimpleName(nodeText(t, src), pkg))
		}
	}

	var methods []bcview.Method
	if body := node.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.ChildCount()); i++ {
			member := body.Child(i)
			switch member.Type() {
			case "constructor_declaration":
				if m, ok := extractMethod(member, src, ct, "<init>", pkg); ok {
					methods = append(methods, m)
				}
			case "method_declaration":
				if m, ok := extractMethod(member, src, ct, "", pkg); ok {
					methods = append(methods, m)
				}
			}
		}
	}

	return bcview.Class{
		Name:       fqn,
		Type:       ct,
		IsPublic:   isPublic,
		Superclass: superclass,
		Interfaces: interfaces,
		Methods:    methods,
	}, true
}

// extractMethod extracts a method_declaration or constructor_declaration.
// nameOverride forces the resulting Method.Name (used for "<init>"); pass
// "" to read the method's own name field.
func extractMethod(node *sitter.Node, src []byte, declType bcview.ClassType, nameOverride string, pkg string) (bcview.Method, bool) {
	name := nameOverride
	if name == "" {
		nameNode := node.ChildByFieldName("name")
		if nameNode == nil {
			return bcview.Method{}, false
		}
		name = nodeText(nameNode, src)
	}

	modifiers := extractModifiers(node, src)
	isPublic := contains(modifiers, "public")

	m := bcview.Method{Name: name, IsPublic: isPublic, DeclClassType: declType}

	if params := node.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.ChildCount()); i++ {
			p := params.Child(i)
			if p.Type() != "formal_parameter" && p.Type() != "spread_parameter" {
				continue
			}
			typeNode := p.ChildByFieldName("type")
			if typeNode == nil {
				continue
			}
			spelling := nodeText(typeNode, src)
			if p.Type() == "spread_parameter" {
				spelling += "[]"
			}
			m.ParameterTypes = append(m.ParameterTypes, resolveTypeName(spelling, pkg))
		}
	}

	if nameOverride != "<init>" {
		if rt := node.ChildByFieldName("type"); rt != nil {
			spelling := nodeText(rt, src)
			if spelling != "void" {
				m.ReturnType = resolveTypeName(spelling, pkg)
				m.HasReturnType = true
			}
		}
	}

	return m, true
}

func extractModifiers(node *sitter.Node, src []byte) []string {
	var mods []string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "modifiers" {
			for j := 0; j < int(child.ChildCount()); j++ {
				m := child.Child(j)
				switch m.Type() {
				case "public", "private", "protected", "static", "final", "abstract":
					mods = append(mods, m.Type())
				}
			}
		}
	}
	return mods
}

func findChildByType(node *sitter.Node, t string) *sitter.Node {
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child.Type() == t {
			return child
		}
	}
	return nil
}

func findTypeIdentifiers(node *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "type_identifier" || n.Type() == "scoped_type_identifier" {
			out = append(out, n)
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(node)
	return out
}

func nodeText(node *sitter.Node, src []byte) string {
	return string(src[node.StartByte():node.EndByte()])
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// resolveSimpleName assumes an unqualified type name in the parsed
// source's own package, since javasrcview doesn't resolve imports.
func resolveSimpleName(name string, pkg string) bcview.ClassType {
	if strings.Contains(name, ".") {
		return bcview.ClassType{FullyQualifiedName: name, PackageName: pkg}
	}
	if knownJavaLang[name] {
		fqn := "java.lang." + name
		return bcview.ClassType{FullyQualifiedName: fqn, PackageName: "java.lang"}
	}
	fqn := name
	if pkg != "" {
		fqn = pkg + "." + name
	}
	return bcview.ClassType{FullyQualifiedName: fqn, PackageName: pkg}
}

// resolveTypeName is resolveSimpleName extended to primitives and arrays.
func resolveTypeName(spelling string, pkg string) bcview.Type {
	dim := 0
	base := spelling
	for strings.HasSuffix(base, "[]") {
		base = strings.TrimSuffix(base, "[]")
		dim++
	}
	t := bcview.ParseTypeName(base)
	if t.Kind == bcview.TypeKindClass && !strings.Contains(base, ".") {
		t = bcview.ClassT(resolveSimpleName(base, pkg))
	}
	if dim == 0 {
		return t
	}
	return bcview.ArrayT(t, dim)
}

var knownJavaLang = map[string]bool{
	"String": true, "Object": true, "Integer": true, "Long": true, "Double": true,
	"Float": true, "Boolean": true, "Character": true, "Byte": true, "Short": true,
	"Number": true, "Runnable": true, "Thread": true, "Exception": true, "RuntimeException": true,
	"StringBuilder": true, "Comparable": true, "Iterable": true, "CharSequence": true,
}
