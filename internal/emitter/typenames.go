package emitter

import (
	"strconv"
	"strings"

	"github.com/jcraft-dev/jcraft/internal/bcview"
)

// javaTypeName renders a Type as Java source would spell it: fully
// qualified class names with inner-class "$" replaced by ".", lower-case
// primitive spellings, and one "[]" suffix per array dimension — per
// spec.md §4.3's type name conventions.
func javaTypeName(t bcview.Type) string {
	switch t.Kind {
	case bcview.TypeKindPrimitive:
		return string(t.Primitive)
	case bcview.TypeKindArray:
		return javaTypeName(t.Array.ElementType) + strings.Repeat("[]", t.Array.Dimension)
	default:
		return strings.ReplaceAll(t.Class.FullyQualifiedName, "$", ".")
	}
}

// javaClassTypeName is javaTypeName for a bare ClassType.
func javaClassTypeName(ct bcview.ClassType) string {
	return strings.ReplaceAll(ct.FullyQualifiedName, "$", ".")
}

// simpleName extracts the last "."-separated segment of a qualified name,
// the hint fresh variable names are derived from.
func simpleName(qualified string) string {
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

// anyValue returns the literal stand-in for a parameter slot with no
// registered value, per spec.md §4.3. ok=false means the type is not
// representable and the caller must fall back to an already-bound value.
func anyValue(t bcview.Type) (string, bool) {
	switch t.Kind {
	case bcview.TypeKindPrimitive:
		switch t.Primitive {
		case bcview.Char:
			return "'?'", true
		case bcview.Boolean:
			return "true", true
		case bcview.Byte, bcview.Short, bcview.Int:
			return "0", true
		case bcview.Long:
			return "0", true
		case bcview.Float:
			return "0f", true
		case bcview.Double:
			return "0.0", true
		default:
			return "", false
		}
	case bcview.TypeKindClass:
		if t.Class.FullyQualifiedName == "java.lang.String" {
			return strconv.Quote("string"), true
		}
		return "", false
	default:
		return "", false
	}
}
