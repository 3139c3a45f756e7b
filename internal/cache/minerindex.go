package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/jcraft-dev/jcraft/internal/bcview"
	"github.com/jcraft-dev/jcraft/internal/bcview/memview"
)

// JarsetHash computes a stable cache key for a set of jar paths, order
// independent so flag reordering doesn't force a reindex.
func JarsetHash(jars []string) string {
	sorted := append([]string(nil), jars...)
	sort.Strings(sorted)

	h := sha256.New()
	for _, j := range sorted {
		h.Write([]byte(j))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// classSnapshot is the JSON-serializable mirror of bcview.Class used for
// the cache blob, independent of bcview's own in-memory shape.
type classSnapshot struct {
	Name       string           `json:"name"`
	IsPublic   bool             `json:"is_public"`
	Superclass string           `json:"superclass,omitempty"`
	Interfaces []string         `json:"interfaces,omitempty"`
	Methods    []methodSnapshot `json:"methods"`
}

type methodSnapshot struct {
	Name       string   `json:"name"`
	IsPublic   bool     `json:"is_public"`
	Params     []string `json:"params,omitempty"`
	ReturnType string   `json:"return_type,omitempty"`
}

// SaveView serializes view's classes under jarsetHash, replacing any
// existing entry.
func (c *Cache) SaveView(jarsetHash string, view bcview.View) error {
	snapshots := make([]classSnapshot, 0, len(view.Classes()))
	for _, cl := range view.Classes() {
		snapshots = append(snapshots, toSnapshot(cl))
	}

	data, err := json.Marshal(snapshots)
	if err != nil {
		return fmt.Errorf("marshal view snapshot: %w", err)
	}

	_, err = c.db.Exec(`
		INSERT OR REPLACE INTO miner_index (jarset_hash, classes_json, indexed_at)
		VALUES (?, ?, ?)`,
		jarsetHash, data, time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save view snapshot %s: %w", jarsetHash, err)
	}
	return nil
}

// LoadView retrieves a previously cached view for jarsetHash. found is
// false if nothing was cached yet for this hash.
func (c *Cache) LoadView(jarsetHash string) (view bcview.View, found bool, err error) {
	var data []byte
	err = c.db.QueryRow("SELECT classes_json FROM miner_index WHERE jarset_hash = ?", jarsetHash).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load view snapshot %s: %w", jarsetHash, err)
	}

	var snapshots []classSnapshot
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return nil, false, fmt.Errorf("unmarshal view snapshot %s: %w", jarsetHash, err)
	}

	classes := make([]bcview.Class, 0, len(snapshots))
	for _, s := range snapshots {
		classes = append(classes, fromSnapshot(s))
	}
	return memview.New(classes...), true, nil
}

func toSnapshot(cl bcview.Class) classSnapshot {
	s := classSnapshot{
		Name:     cl.Name,
		IsPublic: cl.IsPublic,
	}
	if cl.Superclass != nil {
		s.Superclass = cl.Superclass.FullyQualifiedName
	}
	for _, i := range cl.Interfaces {
		s.Interfaces = append(s.Interfaces, i.FullyQualifiedName)
	}
	for _, m := range cl.Methods {
		ms := methodSnapshot{Name: m.Name, IsPublic: m.IsPublic}
		for _, p := range m.ParameterTypes {
			ms.Params = append(ms.Params, typeSpelling(p))
		}
		if m.HasReturnType {
			ms.ReturnType = typeSpelling(m.ReturnType)
		}
		s.Methods = append(s.Methods, ms)
	}
	return s
}

func fromSnapshot(s classSnapshot) bcview.Class {
	ct := bcview.ParseTypeName(s.Name).Class
	cl := bcview.Class{
		Name:     s.Name,
		Type:     ct,
		IsPublic: s.IsPublic,
	}
	if s.Superclass != "" {
		sup := bcview.ParseTypeName(s.Superclass).Class
		cl.Superclass = &sup
	}
	for _, i := range s.Interfaces {
		cl.Interfaces = append(cl.Interfaces, bcview.ParseTypeName(i).Class)
	}
	for _, ms := range s.Methods {
		m := bcview.Method{Name: ms.Name, IsPublic: ms.IsPublic, DeclClassType: ct}
		for _, p := range ms.Params {
			m.ParameterTypes = append(m.ParameterTypes, bcview.ParseTypeName(p))
		}
		if ms.ReturnType != "" {
			m.ReturnType = bcview.ParseTypeName(ms.ReturnType)
			m.HasReturnType = true
		}
		cl.Methods = append(cl.Methods, m)
	}
	return cl
}

// typeSpelling renders a Type the way ParseTypeName expects to read it
// back: lower-case primitives, "[]" suffixes per array dimension, and
// fully qualified class names.
func typeSpelling(t bcview.Type) string {
	switch t.Kind {
	case bcview.TypeKindPrimitive:
		return string(t.Primitive)
	case bcview.TypeKindArray:
		suffix := ""
		for i := 0; i < t.Array.Dimension; i++ {
			suffix += "[]"
		}
		return typeSpelling(t.Array.ElementType) + suffix
	default:
		return t.Class.FullyQualifiedName
	}
}
