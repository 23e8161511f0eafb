// Package sketch holds named brep shapes produced by script evaluation
// and provides tiered geometric validation over them.
package sketch

import (
	"fmt"

	"github.com/chazu/contour/pkg/brep"
)

// Entry is a named shape in a sketch. Entries keep insertion order so
// downstream output (validation reports, discretization) is
// deterministic.
type Entry struct {
	Name  string
	Shape brep.Shape
}

// Sketch is the document produced by evaluating a sketch script. It is
// never mutated after evaluation; each evaluation produces a new one.
type Sketch struct {
	entries []Entry
	index   map[string]int
}

// New creates an empty sketch.
func New() *Sketch {
	return &Sketch{index: make(map[string]int)}
}

// Add registers a shape under a unique name.
func (s *Sketch) Add(name string, sh brep.Shape) error {
	if name == "" {
		return fmt.Errorf("sketch: empty shape name")
	}
	if _, exists := s.index[name]; exists {
		return fmt.Errorf("sketch: shape name %q already defined", name)
	}
	s.index[name] = len(s.entries)
	s.entries = append(s.entries, Entry{Name: name, Shape: sh})
	return nil
}

// Lookup returns the shape with the given name, or nil.
func (s *Sketch) Lookup(name string) brep.Shape {
	i, ok := s.index[name]
	if !ok {
		return nil
	}
	return s.entries[i].Shape
}

// MustLookup returns the shape with the given name, or panics.
func (s *Sketch) MustLookup(name string) brep.Shape {
	sh := s.Lookup(name)
	if sh == nil {
		panic(fmt.Sprintf("sketch: no shape named %q", name))
	}
	return sh
}

// Entries returns the named shapes in insertion order.
func (s *Sketch) Entries() []Entry {
	return s.entries
}

// Len returns the number of named shapes.
func (s *Sketch) Len() int {
	return len(s.entries)
}

// Edges returns every edge in the sketch in insertion order, with wire
// edges flattened in wire order. The accompanying names slice is
// parallel to the result; wire edges repeat the wire's name.
func (s *Sketch) Edges() ([]*brep.Edge, []string) {
	var out []*brep.Edge
	var names []string
	for _, ent := range s.entries {
		switch sh := ent.Shape.(type) {
		case *brep.Edge:
			out = append(out, sh)
			names = append(names, ent.Name)
		case *brep.Wire:
			for _, e := range sh.Edges {
				out = append(out, e)
				names = append(names, ent.Name)
			}
		}
	}
	return out, names
}
