package formula

// Unbound is a parsed expression whose names are still symbolic. It owns
// its AST exclusively until Bind is called, exactly once; afterward the
// wrapper is inert and keeps only a pointer to the Dependent it produced.
type Unbound struct {
	root  node
	bound *Dependent
}

// NewNative wraps a host-provided zero-argument numeric callback as an
// expression. It has no dependencies and passes through bind and resolve
// unchanged; every Evaluate re-invokes the callback.
func NewNative(fn func() float64) *Unbound {
	return &Unbound{root: &nativeNode{fn: fn}}
}

// Bind links every symbolic name in the expression against scope and
// transfers AST ownership to the returned Dependent. Calling Bind a second
// time fails with ErrAlreadyBound.
func (u *Unbound) Bind(scope *Scope) (*Dependent, error) {
	if u.root == nil {
		return nil, ErrAlreadyBound
	}

	root, err := u.root.bind(scope)
	if err != nil {
		return nil, err
	}

	u.bound = &Dependent{root: root}
	u.root = nil

	return u.bound, nil
}

// Dependent is a bound expression that knows its dependencies but cannot
// yet evaluate. It owns its AST until Resolve succeeds.
type Dependent struct {
	root     node
	resolved *Resolved

	depList []*Dependent
	depOK   bool
}

// IsResolved reports whether Resolve has already completed.
func (d *Dependent) IsResolved() bool { return d.resolved != nil }

// dependencies discovers and caches the direct dependency list. Discovery
// invokes the deferred accessors from binding, so it must not run before
// every expression in the batch has been registered.
func (d *Dependent) dependencies() ([]*Dependent, error) {
	if d.depOK {
		return d.depList, nil
	}

	if d.root == nil {
		return nil, ErrAlreadyResolved
	}

	var list []*Dependent
	if err := d.root.deps(&list); err != nil {
		return nil, err
	}

	d.depList, d.depOK = list, true

	return list, nil
}

// HasUnresolvedDependencies reports whether any direct dependency has not
// yet resolved. The dependency list is discovered lazily on first call and
// cached.
func (d *Dependent) HasUnresolvedDependencies() (bool, error) {
	deps, err := d.dependencies()
	if err != nil {
		return false, err
	}

	for _, dep := range deps {
		if !dep.IsResolved() {
			return true, nil
		}
	}

	return false, nil
}

// Resolve finalizes every reference in the expression and transfers AST
// ownership to the returned Resolved. It fails with ErrAlreadyResolved on
// a second call and with ErrUnresolvedDeps while any dependency is still
// pending.
func (d *Dependent) Resolve() (*Resolved, error) {
	if d.root == nil {
		return nil, ErrAlreadyResolved
	}

	pending, err := d.HasUnresolvedDependencies()
	if err != nil {
		return nil, err
	}

	if pending {
		return nil, ErrUnresolvedDeps
	}

	root, err := d.root.resolve()
	if err != nil {
		return nil, err
	}

	d.resolved = &Resolved{root: root}
	d.root = nil

	return d.resolved, nil
}

// Resolved is a fully resolved expression. Evaluate is the only operation
// left; it is pure and repeatable.
type Resolved struct {
	root node
}

// Evaluate computes the expression value. Structural binding is permanent,
// but the numeric result is never memoized: native callbacks run again on
// every call.
func (r *Resolved) Evaluate() float64 { return r.root.eval() }
