package bcview

import "strings"

var primitiveByName = map[string]PrimitiveKind{
	"boolean": Boolean,
	"byte":    Byte,
	"short":   Short,
	"char":    Char,
	"int":     Int,
	"long":    Long,
	"float":   Float,
	"double":  Double,
}

// ParseTypeName parses a Java type spelling ("int", "int[]", "int[][]",
// "java.lang.String", "java.lang.String[]") into a Type. It never resolves
// class names against a View — callers that need a Class node must look the
// ClassType up themselves; this only distinguishes primitive vs class vs
// array and computes array dimension.
func ParseTypeName(spelling string) Type {
	dim := 0
	base := spelling
	for strings.HasSuffix(base, "[]") {
		base = strings.TrimSuffix(base, "[]")
		dim++
	}
	var elem Type
	if p, ok := primitiveByName[base]; ok {
		elem = PrimitiveT(p)
	} else {
		elem = ClassT(ClassType{FullyQualifiedName: base, PackageName: packageOf(base)})
	}
	if dim == 0 {
		return elem
	}
	return ArrayT(elem, dim)
}

func packageOf(fqn string) string {
	last := strings.LastIndex(fqn, ".")
	if last < 0 {
		return ""
	}
	return fqn[:last]
}
