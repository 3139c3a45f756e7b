// Package manifest loads a bcview.View from a JSON manifest describing a
// fixed set of classes — a cheap stand-in for a real classfile reader, used
// by integration tests and by `jcraft construct --manifest <file>` when no
// jars or Java sources are on hand.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jcraft-dev/jcraft/internal/bcview"
	"github.com/jcraft-dev/jcraft/internal/bcview/memview"
)

// classJSON mirrors bcview.Class in a JSON-friendly shape.
type classJSON struct {
	Name       string      `json:"name"`
	IsPublic   bool        `json:"is_public"`
	Superclass string      `json:"superclass,omitempty"`
	Interfaces []string    `json:"interfaces,omitempty"`
	Methods    []methodJSON `json:"methods"`
}

type methodJSON struct {
	Name       string   `json:"name"`
	IsPublic   bool     `json:"is_public"`
	Params     []string `json:"params"`     // type names; "int", "java.lang.String", "int[]"
	ReturnType string   `json:"return_type,omitempty"` // empty means void
}

// Load reads a JSON manifest file and builds a bcview.View from it.
func Load(path string) (bcview.View, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a bcview.View from raw JSON manifest bytes.
func Parse(data []byte) (bcview.View, error) {
	var raw []classJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	classes := make([]bcview.Class, 0, len(raw))
	for _, rc := range raw {
		c := bcview.Class{
			Name:     rc.Name,
			Type:     classType(rc.Name),
			IsPublic: rc.IsPublic,
		}
		if rc.Superclass != "" {
			ct := classType(rc.Superclass)
			c.Superclass = &ct
		}
		for _, iface := range rc.Interfaces {
			c.Interfaces = append(c.Interfaces, classType(iface))
		}
		for _, rm := range rc.Methods {
			m := bcview.Method{
				Name:          rm.Name,
				IsPublic:      rm.IsPublic,
				DeclClassType: classType(rc.Name),
			}
			for _, p := range rm.Params {
				m.ParameterTypes = append(m.ParameterTypes, bcview.ParseTypeName(p))
			}
			if rm.ReturnType != "" {
				m.ReturnType = bcview.ParseTypeName(rm.ReturnType)
				m.HasReturnType = true
			}
			c.Methods = append(c.Methods, m)
		}
		classes = append(classes, c)
	}

	return memview.New(classes...), nil
}

func classType(name string) bcview.ClassType {
	t := bcview.ParseTypeName(name)
	return t.Class
}
