package sketch

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/contour/pkg/brep"
)

func lineEdge(t *testing.T, p1, p2 v3.Vec) *brep.Edge {
	t.Helper()
	e, err := brep.NewLineEdge(p1, p2)
	if err != nil {
		t.Fatalf("NewLineEdge: %v", err)
	}
	return e
}

func TestNewSketch(t *testing.T) {
	s := New()
	if s.Len() != 0 {
		t.Errorf("empty sketch should have 0 shapes, got %d", s.Len())
	}
	if got := s.Lookup("missing"); got != nil {
		t.Errorf("Lookup on empty sketch = %v, want nil", got)
	}
}

func TestAddAndLookup(t *testing.T) {
	s := New()
	e := lineEdge(t, v3.Vec{}, v3.Vec{X: 1})

	if err := s.Add("base", e); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("shape count = %d, want 1", s.Len())
	}

	found := s.Lookup("base")
	if found == nil {
		t.Fatal("Lookup('base') returned nil")
	}
	if found != brep.Shape(e) {
		t.Error("lookup returned wrong shape")
	}

	must := s.MustLookup("base")
	if must != brep.Shape(e) {
		t.Error("MustLookup returned wrong shape")
	}
}

func TestAddRejectsDuplicateName(t *testing.T) {
	s := New()
	e := lineEdge(t, v3.Vec{}, v3.Vec{X: 1})

	if err := s.Add("base", e); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := s.Add("base", e); err == nil {
		t.Error("expected error for duplicate name")
	}
	if err := s.Add("", e); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestMustLookupPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustLookup should panic for missing name")
		}
	}()
	New().MustLookup("missing")
}

func TestEntriesKeepInsertionOrder(t *testing.T) {
	s := New()
	names := []string{"c", "a", "b"}
	for i, n := range names {
		e := lineEdge(t, v3.Vec{Y: float64(i)}, v3.Vec{X: 1, Y: float64(i)})
		if err := s.Add(n, e); err != nil {
			t.Fatalf("Add(%q): %v", n, err)
		}
	}

	got := s.Entries()
	if len(got) != 3 {
		t.Fatalf("entries = %d, want 3", len(got))
	}
	for i, n := range names {
		if got[i].Name != n {
			t.Errorf("entry %d = %q, want %q", i, got[i].Name, n)
		}
	}
}

func TestEdgesFlattensWires(t *testing.T) {
	s := New()
	a := v3.Vec{}
	b := v3.Vec{X: 1}
	c := v3.Vec{X: 1, Y: 1}

	if err := s.Add("solo", lineEdge(t, a, b)); err != nil {
		t.Fatal(err)
	}
	w := brep.NewWire(lineEdge(t, a, b), lineEdge(t, b, c))
	if err := s.Add("path", w); err != nil {
		t.Fatal(err)
	}

	all, names := s.Edges()
	if len(all) != 3 {
		t.Fatalf("edge count = %d, want 3", len(all))
	}
	wantNames := []string{"solo", "path", "path"}
	for i, n := range wantNames {
		if names[i] != n {
			t.Errorf("name %d = %q, want %q", i, names[i], n)
		}
	}
}
