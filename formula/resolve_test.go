package formula

import (
	"errors"
	"testing"
)

// bindBatch parses and binds a set of named expressions against one scope,
// returning the Dependents in definition order.
func bindBatch(
	t *testing.T, defs [][2]string,
) (map[string]*Dependent, []*Dependent) {
	t.Helper()

	scope := NewScope(nil)
	byName := make(map[string]*Dependent, len(defs))
	unbound := make(map[string]*Unbound, len(defs))

	for _, def := range defs {
		name := def[0]

		u, err := Parse(def[1])
		if err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}

		unbound[name] = u

		if err := scope.Define(name, SymbolValue,
			func() *Dependent { return byName[name] },
		); err != nil {
			t.Fatalf("define %s: %v", name, err)
		}
	}

	batch := make([]*Dependent, 0, len(defs))

	for _, def := range defs {
		name := def[0]

		d, err := unbound[name].Bind(scope)
		if err != nil {
			t.Fatalf("bind %s: %v", name, err)
		}

		byName[name] = d
		batch = append(batch, d)
	}

	return byName, batch
}

func TestResolveAll_OrderIndependence(t *testing.T) {
	// b registered before a; resolution order must not care.
	byName, batch := bindBatch(t, [][2]string{
		{"b", "a + 1"},
		{"a", "1"},
	})

	out, err := ResolveAll(batch)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if len(out) != 2 {
		t.Fatalf("expected 2 resolved, got %d", len(out))
	}

	if _, err := byName["b"].Resolve(); !errors.Is(err, ErrAlreadyResolved) {
		t.Errorf("expected batch to have resolved b, got %v", err)
	}

	if got := byName["b"].resolved.Evaluate(); got != 2 {
		t.Errorf("expected b = 2, got %v", got)
	}
}

func TestResolveAll_Chain(t *testing.T) {
	byName, batch := bindBatch(t, [][2]string{
		{"total", "header + body + footer"},
		{"footer", "header / 2"},
		{"body", "header * 10"},
		{"header", "40"},
	})

	if _, err := ResolveAll(batch); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if got := byName["total"].resolved.Evaluate(); got != 460 {
		t.Errorf("expected total = 460, got %v", got)
	}
}

func TestResolveAll_CompletionOrder(t *testing.T) {
	// Ties among simultaneously eligible expressions break by input
	// position, so independent expressions come out in scan order.
	_, batch := bindBatch(t, [][2]string{
		{"x", "1"},
		{"y", "2"},
		{"z", "x + y"},
	})

	out, err := ResolveAll(batch)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	want := []float64{1, 2, 3}
	for i, r := range out {
		if got := r.Evaluate(); got != want[i] {
			t.Errorf("position %d: expected %v, got %v", i, want[i], got)
		}
	}
}

func TestResolveAll_Cycle(t *testing.T) {
	_, batch := bindBatch(t, [][2]string{
		{"x", "2 * y"},
		{"y", "x / 2"},
	})

	_, err := ResolveAll(batch)
	if !errors.Is(err, ErrCircularDependency) {
		t.Errorf("expected ErrCircularDependency, got %v", err)
	}
}

func TestResolveAll_SelfCycle(t *testing.T) {
	_, batch := bindBatch(t, [][2]string{
		{"x", "x + 1"},
	})

	_, err := ResolveAll(batch)
	if !errors.Is(err, ErrCircularDependency) {
		t.Errorf("expected ErrCircularDependency, got %v", err)
	}
}

func TestResolveAll_PartialCycle(t *testing.T) {
	// A cycle anywhere in the batch fails the whole batch, even though
	// "free" has no dependencies.
	_, batch := bindBatch(t, [][2]string{
		{"free", "7"},
		{"x", "y"},
		{"y", "x"},
	})

	_, err := ResolveAll(batch)
	if !errors.Is(err, ErrCircularDependency) {
		t.Errorf("expected ErrCircularDependency, got %v", err)
	}
}

func TestResolveAll_Empty(t *testing.T) {
	out, err := ResolveAll(nil)
	if err != nil {
		t.Fatalf("expected no error on empty batch, got %v", err)
	}

	if len(out) != 0 {
		t.Errorf("expected empty output, got %d", len(out))
	}

	out, err = ResolveAll([]*Dependent{})
	if err != nil || len(out) != 0 {
		t.Errorf("expected empty output, got %d (%v)", len(out), err)
	}
}
