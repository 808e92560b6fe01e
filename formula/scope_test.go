package formula

import (
	"errors"
	"testing"
)

// accessorFor returns an Accessor over a fixed Dependent.
func accessorFor(d *Dependent) Accessor {
	return func() *Dependent { return d }
}

// resolvedDep makes a standalone resolved Dependent with a fixed value.
func resolvedDep(t *testing.T, value string) *Dependent {
	t.Helper()

	u, err := Parse(value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}

	d, err := u.Bind(NewScope(nil))
	if err != nil {
		t.Fatalf("bind %q: %v", value, err)
	}

	if _, err := d.Resolve(); err != nil {
		t.Fatalf("resolve %q: %v", value, err)
	}

	return d
}

func TestScope_DuplicateDefine(t *testing.T) {
	s := NewScope(nil)
	d := resolvedDep(t, "1")

	if err := s.Define("width", SymbolValue, accessorFor(d)); err != nil {
		t.Fatalf("define: %v", err)
	}

	err := s.Define("width", SymbolValue, accessorFor(d))
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}

	// The same name under a different symbol type is a distinct entry.
	if err := s.Define("width", SymbolFunction, accessorFor(d)); err != nil {
		t.Errorf("expected distinct type to register, got %v", err)
	}
}

func TestScope_DuplicateSubscope(t *testing.T) {
	s := NewScope(nil)

	if err := s.DefineScope("header", NewScope(nil)); err != nil {
		t.Fatalf("define scope: %v", err)
	}

	err := s.DefineScope("header", NewScope(nil))
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
}

func TestScope_ParentDelegation(t *testing.T) {
	parent := NewScope(nil)
	child := NewScope(parent)

	d := resolvedDep(t, "42")
	if err := parent.Define("gap", SymbolValue, accessorFor(d)); err != nil {
		t.Fatalf("define: %v", err)
	}

	access, err := child.Lookup([]string{"gap"}, SymbolValue)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	if got := access().resolved.Evaluate(); got != 42 {
		t.Errorf("expected 42, got %v", got)
	}
}

func TestScope_Shadowing(t *testing.T) {
	parent := NewScope(nil)
	child := NewScope(parent)

	if err := parent.Define("size", SymbolValue,
		accessorFor(resolvedDep(t, "10")),
	); err != nil {
		t.Fatalf("define parent: %v", err)
	}

	if err := child.Define("size", SymbolValue,
		accessorFor(resolvedDep(t, "20")),
	); err != nil {
		t.Fatalf("define child: %v", err)
	}

	access, err := child.Lookup([]string{"size"}, SymbolValue)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	if got := access().resolved.Evaluate(); got != 20 {
		t.Errorf("child lookup should shadow parent: expected 20, got %v", got)
	}

	access, err = parent.Lookup([]string{"size"}, SymbolValue)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	if got := access().resolved.Evaluate(); got != 10 {
		t.Errorf("parent lookup unaffected: expected 10, got %v", got)
	}
}

func TestScope_MemberAccess(t *testing.T) {
	root := NewScope(nil)
	header := NewScope(root)

	if err := header.Define("bottom", SymbolValue,
		accessorFor(resolvedDep(t, "40")),
	); err != nil {
		t.Fatalf("define: %v", err)
	}

	if err := root.DefineScope("header", header); err != nil {
		t.Fatalf("define scope: %v", err)
	}

	access, err := root.Lookup([]string{"header", "bottom"}, SymbolValue)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	if got := access().resolved.Evaluate(); got != 40 {
		t.Errorf("expected 40, got %v", got)
	}
}

func TestScope_MemberAccessViaParent(t *testing.T) {
	// A dotted chain unresolvable locally retries whole at the parent.
	root := NewScope(nil)
	header := NewScope(root)
	body := NewScope(root)

	if err := header.Define("bottom", SymbolValue,
		accessorFor(resolvedDep(t, "40")),
	); err != nil {
		t.Fatalf("define: %v", err)
	}

	if err := root.DefineScope("header", header); err != nil {
		t.Fatalf("define scope: %v", err)
	}

	access, err := body.Lookup([]string{"header", "bottom"}, SymbolValue)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	if got := access().resolved.Evaluate(); got != 40 {
		t.Errorf("expected 40, got %v", got)
	}
}

func TestScope_LookupErrors(t *testing.T) {
	s := NewScope(nil)

	_, err := s.Lookup([]string{"missing"}, SymbolValue)
	if !errors.Is(err, ErrUnresolvedName) {
		t.Errorf("expected ErrUnresolvedName, got %v", err)
	}

	_, err = s.Lookup([]string{"missing", "member"}, SymbolValue)
	if !errors.Is(err, ErrNotAnObject) {
		t.Errorf("expected ErrNotAnObject, got %v", err)
	}

	// A value symbol does not satisfy a member-access head.
	if err := s.Define("leaf", SymbolValue,
		accessorFor(resolvedDep(t, "1")),
	); err != nil {
		t.Fatalf("define: %v", err)
	}

	_, err = s.Lookup([]string{"leaf", "member"}, SymbolValue)
	if !errors.Is(err, ErrNotAnObject) {
		t.Errorf("expected ErrNotAnObject, got %v", err)
	}
}
