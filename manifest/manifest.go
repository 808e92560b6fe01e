// Package manifest loads a YAML description of an expression module tree
// and builds it into a compilable formula.Module.
//
// A manifest nests modules to arbitrary depth and may alias any module
// reachable from the root for member access:
//
//	expressions:
//	  gap: "8"
//	modules:
//	  header:
//	    expressions:
//	      top: "0"
//	      height: "40"
//	      bottom: "top + height"
//	  body:
//	    maps:
//	      header: header
//	    expressions:
//	      top: "header.bottom + gap"
package manifest

import (
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/strut-lang/strut/formula"
)

// Predefined errors (sentinel values).
var (
	ErrDecode        = formula.NewError("manifest decode failed")
	ErrExpression    = formula.NewError("invalid expression")
	ErrUnknownModule = formula.NewError("unknown module path")
)

// Accessor yields a compiled expression, failing before the owning module
// has compiled successfully.
type Accessor = func() (*formula.Resolved, error)

// Document is one module of a manifest: its expressions, aliases of other
// modules for member access, and nested child modules.
type Document struct {
	Expressions map[string]string    `yaml:"expressions"`
	Maps        map[string]string    `yaml:"maps"`
	Modules     map[string]*Document `yaml:"modules"`
}

// Load decodes a manifest document from r.
func Load(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	return &doc, nil
}

// LoadFile decodes a manifest document from a file, or from stdin when
// path is "-".
func LoadFile(path string) (*Document, error) {
	if path == "-" {
		return Load(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, ErrDecode.Wrap(err)
	}
	defer f.Close()

	return Load(f)
}

// Build constructs the module tree described by the document. The returned
// module is open: the caller compiles it. Accessors are keyed by dotted
// path from the root ("body.top"). Modules and maps wire in two passes so
// an alias may name a module declared later in the document; all iteration
// is over sorted keys, keeping behavior deterministic.
func (d *Document) Build(
	opts ...formula.Option,
) (*formula.Module, map[string]Accessor, error) {
	root := formula.NewRootModule(opts...)
	byPath := map[string]*formula.Module{"": root}
	access := map[string]Accessor{}

	if err := d.create(root, "", byPath); err != nil {
		return nil, nil, err
	}

	if err := d.wire("", byPath, access); err != nil {
		return nil, nil, err
	}

	return root, access, nil
}

// create instantiates every module in the subtree, recording each under
// its dotted path.
func (d *Document) create(
	m *formula.Module, path string, byPath map[string]*formula.Module,
) error {
	for _, name := range slices.Sorted(maps.Keys(d.Modules)) {
		child, err := m.AddSubModule()
		if err != nil {
			return err
		}

		childPath := join(path, name)
		byPath[childPath] = child

		if err := d.Modules[name].create(child, childPath, byPath); err != nil {
			return err
		}
	}

	return nil
}

// wire registers maps and expressions for the subtree. Runs only after
// create, so forward references between sibling modules resolve.
func (d *Document) wire(
	path string,
	byPath map[string]*formula.Module,
	access map[string]Accessor,
) error {
	m := byPath[path]

	for _, name := range slices.Sorted(maps.Keys(d.Maps)) {
		target, ok := byPath[d.Maps[name]]
		if !ok {
			return ErrUnknownModule.With(
				slog.String("alias", name),
				slog.String("path", d.Maps[name]),
			)
		}

		if err := m.MapModule(name, target); err != nil {
			return err
		}
	}

	for _, name := range slices.Sorted(maps.Keys(d.Expressions)) {
		a, err := m.AddExpression(name, d.Expressions[name])
		if err != nil {
			return ErrExpression.Wrap(err).With(
				slog.String("name", join(path, name)))
		}

		access[join(path, name)] = a
	}

	for _, name := range slices.Sorted(maps.Keys(d.Modules)) {
		if err := d.Modules[name].wire(join(path, name), byPath, access); err != nil {
			return err
		}
	}

	return nil
}

func join(path, name string) string {
	if path == "" {
		return name
	}

	return path + "." + name
}

// Values compiles the document and evaluates every expression, keyed by
// dotted path.
func (d *Document) Values(
	opts ...formula.Option,
) (map[string]float64, error) {
	root, access, err := d.Build(opts...)
	if err != nil {
		return nil, err
	}

	if err := root.Compile(); err != nil {
		return nil, err
	}

	values := make(map[string]float64, len(access))

	for path, a := range access {
		r, err := a()
		if err != nil {
			return nil, err
		}

		values[path] = r.Evaluate()
	}

	return values, nil
}

// Normalize re-marshals the document as canonical YAML with sorted keys.
// Comments from the original input are not preserved.
func (d *Document) Normalize() ([]byte, error) {
	return yaml.Marshal(d)
}
