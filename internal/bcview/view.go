// Package bcview defines the read-only facade the dependency miner consumes
// over a loaded Java bytecode image: classes, their methods, and the types
// those methods mention. Loading real bytecode (reading jars, resolving a
// classpath, parsing classfiles) is treated as an external collaborator —
// this package only specifies the interface and ships three small, fully
// in-repo adapters (memview, javasrcview, manifest) good enough to exercise
// the miner/solver/emitter without a real classfile reader.
package bcview

// PrimitiveKind enumerates the eight Java primitive types.
type PrimitiveKind string

const (
	Boolean PrimitiveKind = "boolean"
	Byte    PrimitiveKind = "byte"
	Short   PrimitiveKind = "short"
	Char    PrimitiveKind = "char"
	Int     PrimitiveKind = "int"
	Long    PrimitiveKind = "long"
	Float   PrimitiveKind = "float"
	Double  PrimitiveKind = "double"
)

// AllPrimitiveKinds lists the eight supported primitive kinds in a fixed,
// deterministic order.
var AllPrimitiveKinds = []PrimitiveKind{Boolean, Byte, Short, Char, Int, Long, Float, Double}

// ClassType identifies a class or interface by its fully qualified name.
type ClassType struct {
	FullyQualifiedName string
	PackageName        string
}

// ArrayType describes an array of some element type with a dimension.
type ArrayType struct {
	ElementType Type
	Dimension   int
}

// TypeKind tags which variant a Type holds.
type TypeKind int

const (
	TypeKindPrimitive TypeKind = iota
	TypeKindClass
	TypeKindArray
)

// Type is a closed tagged variant: exactly one of Primitive, Class, Array is
// meaningful, selected by Kind.
type Type struct {
	Kind      TypeKind
	Primitive PrimitiveKind
	Class     ClassType
	Array     *ArrayType // nil unless Kind is TypeKindArray
}

func PrimitiveT(p PrimitiveKind) Type { return Type{Kind: TypeKindPrimitive, Primitive: p} }
func ClassT(c ClassType) Type         { return Type{Kind: TypeKindClass, Class: c} }
func ArrayT(elem Type, dim int) Type  { return Type{Kind: TypeKindArray, Array: &ArrayType{ElementType: elem, Dimension: dim}} }

// Method describes a single method or constructor as seen by the view.
type Method struct {
	Name            string
	IsPublic        bool
	DeclClassType   ClassType
	ParameterTypes  []Type
	ReturnType      Type
	HasReturnType   bool // false for void (e.g. constructors)
}

// IsConstructor reports whether this method is a constructor (name "<init>").
func (m Method) IsConstructor() bool { return m.Name == "<init>" }

// Class describes a single loaded class or interface as seen by the view.
type Class struct {
	Name       string // fully qualified name, matches Type.FullyQualifiedName
	Type       ClassType
	IsPublic   bool
	Superclass *ClassType // nil if none (e.g. java.lang.Object or an interface)
	Interfaces []ClassType
	Methods    []Method
}

// View is the read-only facade the miner consumes. All lookups may return
// "absent" (ok=false) rather than erroring; absence is routine, not
// exceptional, per the ViewLookupMissing error policy.
type View interface {
	// Classes enumerates all loaded classes in a stable, deterministic
	// order. Determinism of this order is what makes miner output and
	// solver runs (under a fixed seed) reproducible.
	Classes() []Class
	// GetClass resolves a ClassType to its Class entity, if loaded.
	GetClass(t ClassType) (Class, bool)
}
