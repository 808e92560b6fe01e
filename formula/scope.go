package formula

// SymbolType classifies what a name denotes within a scope. A name may be
// defined once per type. Only SymbolValue is exercised by the expression
// grammar today; the remaining categories are reserved for extension.
type SymbolType int

const (
	SymbolValue SymbolType = iota
	SymbolArray
	SymbolFunction
	SymbolObject
)

// String returns a string representation of the symbol type.
func (t SymbolType) String() string {
	switch t {
	case SymbolValue:
		return "value"
	case SymbolArray:
		return "array"
	case SymbolFunction:
		return "function"
	case SymbolObject:
		return "object"
	default:
		return "invalid"
	}
}

// Accessor defers access to a bound expression. Binding hands out accessors
// instead of direct references because the referenced expression may not
// exist yet; an accessor is safe to invoke only once every expression in
// the batch has been registered.
type Accessor func() *Dependent

// Scope is a name-resolution node. Lookup consults the local tables first,
// then delegates to the parent; dotted chains descend through named
// subscopes. Scopes are never mutated after the owning module compiles.
type Scope struct {
	parent  *Scope
	symbols map[string]map[SymbolType]Accessor
	subs    map[string]*Scope
}

// NewScope creates a scope delegating to parent, which may be nil.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		parent:  parent,
		symbols: map[string]map[SymbolType]Accessor{},
		subs:    map[string]*Scope{},
	}
}

// Define registers an accessor for name under typ. Defining the same
// (name, type) pair twice fails with ErrDuplicateName.
func (s *Scope) Define(name string, typ SymbolType, access Accessor) error {
	byType, ok := s.symbols[name]
	if !ok {
		byType = map[SymbolType]Accessor{}
		s.symbols[name] = byType
	}

	if _, ok := byType[typ]; ok {
		return ErrDuplicateName.Name(name)
	}

	byType[typ] = access

	return nil
}

// DefineScope registers sub as a named subscope for dotted member access.
// Duplicate names fail with ErrDuplicateName.
func (s *Scope) DefineScope(name string, sub *Scope) error {
	if _, ok := s.subs[name]; ok {
		return ErrDuplicateName.Name(name)
	}

	s.subs[name] = sub

	return nil
}

// Lookup resolves a non-empty dotted name to an accessor.
//
// For a single segment the local symbol table is consulted first, then the
// parent. For a longer chain the head must name a local subscope, which
// resolves the remainder; on a local miss the parent retries the full,
// unshortened chain. Failures are ErrUnresolvedName for a missing final
// segment and ErrNotAnObject for a head that names no subscope anywhere up
// the parent chain.
func (s *Scope) Lookup(parts []string, typ SymbolType) (Accessor, error) {
	head := parts[0]

	if len(parts) == 1 {
		if access, ok := s.symbols[head][typ]; ok {
			return access, nil
		}

		if s.parent != nil {
			return s.parent.Lookup(parts, typ)
		}

		return nil, ErrUnresolvedName.Name(head)
	}

	if sub, ok := s.subs[head]; ok {
		return sub.Lookup(parts[1:], typ)
	}

	if s.parent != nil {
		return s.parent.Lookup(parts, typ)
	}

	return nil, ErrNotAnObject.Name(head)
}
