// Package memview provides an in-memory bcview.View built from Go struct
// literals, used as the test double for the miner, solver, and emitter —
// the same role the teacher's own tests play by constructing a *graph.Graph
// directly rather than going through a real store.
package memview

import "github.com/jcraft-dev/jcraft/internal/bcview"

// View is a bcview.View backed by a plain slice of classes, indexed by
// fully qualified name on construction.
type View struct {
	classes []bcview.Class
	byName  map[string]bcview.Class
}

// New builds a View from a fixed list of classes, in the order given. The
// order is preserved by Classes() so tests can assert on deterministic
// mining order.
func New(classes ...bcview.Class) *View {
	v := &View{
		classes: classes,
		byName:  make(map[string]bcview.Class, len(classes)),
	}
	for _, c := range classes {
		v.byName[c.Name] = c
	}
	return v
}

func (v *View) Classes() []bcview.Class {
	out := make([]bcview.Class, len(v.classes))
	copy(out, v.classes)
	return out
}

func (v *View) GetClass(t bcview.ClassType) (bcview.Class, bool) {
	c, ok := v.byName[t.FullyQualifiedName]
	return c, ok
}
