package formula

import (
	"log/slog"

	"github.com/strut-lang/strut/log"
)

// Module is the facade most callers use: a tree of named expression scopes
// built incrementally while open, then compiled from the root in a single
// irreversible step. Compilation binds every expression in the tree and
// resolves the complete batch; a module whose compile fails stays compiled
// and broken, with no rollback.
type Module struct {
	parent   *Module
	children []*Module

	entries []*entry
	names   map[string]struct{}
	maps    []mapping

	scope  *Scope
	logger log.Logger

	compiled bool
	ok       bool
}

// entry is one registered expression and its wrappers across phases.
type entry struct {
	name    string
	unbound *Unbound
	dep     *Dependent
}

// mapping aliases another module's scope under a local name.
type mapping struct {
	name   string
	target *Module
}

// Option configures a Module at creation.
type Option func(*Module)

// WithLogger sets the logger used to trace compilation.
func WithLogger(logger log.Logger) Option {
	return func(m *Module) { m.logger = logger }
}

// NewRootModule creates an empty root module.
func NewRootModule(opts ...Option) *Module {
	m := &Module{names: map[string]struct{}{}}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// root walks the parent chain to the tree's root module.
func (m *Module) root() *Module {
	r := m
	for r.parent != nil {
		r = r.parent
	}

	return r
}

// open fails once the tree has been compiled; every structural mutation
// checks it first.
func (m *Module) open() error {
	if m.root().compiled {
		return ErrModuleCompiled
	}

	return nil
}

// AddSubModule creates a child module sharing this module's logger. The
// child's names delegate to this module on lookup miss. Fails once the
// tree is compiled.
func (m *Module) AddSubModule() (*Module, error) {
	if err := m.open(); err != nil {
		return nil, err
	}

	child := &Module{
		parent: m,
		names:  map[string]struct{}{},
		logger: m.logger,
	}
	m.children = append(m.children, child)

	return child, nil
}

// AddExpression parses text immediately and registers it under name. The
// returned accessor yields the final resolved expression once the root has
// compiled successfully; calling it earlier fails with ErrNotCompiled, and
// after a failed compile with ErrCompileFailed.
func (m *Module) AddExpression(
	name, text string,
) (func() (*Resolved, error), error) {
	u, err := Parse(text)
	if err != nil {
		return nil, err
	}

	return m.add(name, u)
}

// AddNativeExpression registers a host-provided numeric callback under
// name, with the same accessor contract as AddExpression. Native
// expressions have no dependencies and re-invoke fn on every evaluation.
func (m *Module) AddNativeExpression(
	name string, fn func() float64,
) (func() (*Resolved, error), error) {
	return m.add(name, NewNative(fn))
}

func (m *Module) add(
	name string, u *Unbound,
) (func() (*Resolved, error), error) {
	if err := m.open(); err != nil {
		return nil, err
	}

	if _, ok := m.names[name]; ok {
		return nil, ErrDuplicateName.Name(name)
	}

	e := &entry{name: name, unbound: u}
	m.names[name] = struct{}{}
	m.entries = append(m.entries, e)

	root := m.root()

	return func() (*Resolved, error) {
		switch {
		case !root.compiled:
			return nil, ErrNotCompiled.Name(name)
		case !root.ok:
			return nil, ErrCompileFailed.Name(name)
		}

		return e.dep.resolved, nil
	}, nil
}

// MapModule aliases other under name for member-style access, so
// expressions in this module may write "name.symbol". The two modules must
// share a common ancestor; mapping across unrelated trees fails with
// ErrNoCommonAncestor.
func (m *Module) MapModule(name string, other *Module) error {
	if err := m.open(); err != nil {
		return err
	}

	if _, ok := m.names[name]; ok {
		return ErrDuplicateName.Name(name)
	}

	if !related(m, other) {
		return ErrNoCommonAncestor.With(slog.String("name", name))
	}

	m.names[name] = struct{}{}
	m.maps = append(m.maps, mapping{name: name, target: other})

	return nil
}

// related reports whether a and b share a module on their parent chains.
func related(a, b *Module) bool {
	seen := map[*Module]struct{}{}
	for p := a; p != nil; p = p.parent {
		seen[p] = struct{}{}
	}

	for p := b; p != nil; p = p.parent {
		if _, ok := seen[p]; ok {
			return true
		}
	}

	return false
}

// Compile binds and resolves every expression in the tree. Only the root
// compiles, exactly once. The tree is frozen against further mutation as
// soon as compilation starts; if any phase fails the module remains
// compiled but broken and must be discarded.
func (m *Module) Compile() error {
	if m.parent != nil {
		return ErrNotRoot
	}

	if m.compiled {
		return ErrModuleCompiled
	}

	m.compiled = true

	m.buildScopes(nil)

	if err := m.register(); err != nil {
		return err
	}

	var batch []*Dependent
	if err := m.bind(&batch); err != nil {
		return err
	}

	m.logger.Trace("module bound",
		slog.Int("expressions", len(batch)))

	if _, err := ResolveAll(batch); err != nil {
		return err
	}

	m.ok = true

	m.logger.Trace("module compiled",
		slog.Int("expressions", len(batch)))

	return nil
}

// buildScopes creates the scope tree mirroring the module tree. Scopes
// must all exist before mappings register, since a mapping may alias a
// module anywhere in the tree.
func (m *Module) buildScopes(parent *Scope) {
	m.scope = NewScope(parent)

	for _, child := range m.children {
		child.buildScopes(m.scope)
	}
}

// register defines every expression symbol and mapped subscope. Symbol
// accessors close over entries whose Dependent does not exist yet; they
// are not invoked until resolution, after every expression has bound.
func (m *Module) register() error {
	for _, e := range m.entries {
		access := func() *Dependent { return e.dep }

		if err := m.scope.Define(e.name, SymbolValue, access); err != nil {
			return err
		}
	}

	for _, mp := range m.maps {
		if err := m.scope.DefineScope(mp.name, mp.target.scope); err != nil {
			return err
		}
	}

	for _, child := range m.children {
		if err := child.register(); err != nil {
			return err
		}
	}

	return nil
}

// bind binds every expression in the subtree against its module's scope
// and collects the resulting batch.
func (m *Module) bind(batch *[]*Dependent) error {
	for _, e := range m.entries {
		dep, err := e.unbound.Bind(m.scope)
		if err != nil {
			return WrapError(err).With(slog.String("name", e.name))
		}

		e.dep = dep
		*batch = append(*batch, dep)
	}

	for _, child := range m.children {
		if err := child.bind(batch); err != nil {
			return err
		}
	}

	return nil
}
