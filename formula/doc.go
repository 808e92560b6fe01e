// Package formula evaluates networks of named arithmetic expressions that
// may reference one another by name, including through nested module scopes.
// It is the computational core of a declarative layout system in which
// geometric properties ("left", "width", "sectionBottom") are defined as
// formulas over sibling, parent, and cross-referenced quantities.
//
// # Lifecycle
//
// Every expression moves through three phases, each owned by a distinct
// wrapper type, and each transition is one-way and single-use:
//
//	Parse(text)          → *Unbound     names are symbolic
//	Unbound.Bind(scope)  → *Dependent   names are linked to deferred accessors
//	Dependent.Resolve()  → *Resolved    references point at final targets
//	Resolved.Evaluate()  → float64      pure, repeatable
//
// Binding returns deferred accessors rather than direct references because
// a referenced expression may not exist yet when its reference is bound.
// The accessors must not be invoked until every expression in the batch has
// been registered; ResolveAll and Module.Compile guarantee this ordering.
//
// # Grammar
//
// Informal EBNF of the accepted expression language:
//
//	additive       → multiplicative (("+" | "-") multiplicative)*
//	multiplicative → unary (("*" | "/" | "%") unary)*
//	unary          → "-" unary | primary
//	primary        → NUMBER | IDENT ("." IDENT)* | "(" additive ")"
//
// Binary operators are left-associative. Numbers are decimal literals with
// digits required on both sides of an optional dot (".5" and "5." are not
// numbers). Dotted identifier chains denote member access into mapped
// modules. Arithmetic uses float64 semantics throughout; division and
// modulo by zero propagate Inf and NaN rather than failing.
//
// # Batch resolution
//
// ResolveAll orders a batch of bound expressions by dependency using
// iterative fixed-point passes. A pass that makes no progress while
// unresolved expressions remain proves a circular reference and fails with
// ErrCircularDependency; there is no separate graph algorithm.
//
// # Modules
//
// Module is the facade most callers use: a tree of named scopes built
// incrementally and compiled in one irreversible step that parses nothing
// (expressions parse on registration), binds everything, and resolves the
// whole tree. A module may additionally map a sibling module for
// member-style access ("prev.bottom"), provided both share a common
// ancestor. A module whose Compile fails is permanently broken and must be
// discarded; there is no rollback.
package formula
