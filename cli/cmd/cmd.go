package cmd

import (
	"log/slog"

	"github.com/strut-lang/strut/formula"
	"github.com/strut-lang/strut/log"
	"github.com/strut-lang/strut/manifest"
)

// manifestFlag is the input manifest shared by the file-driven commands.
// "-" reads from stdin.
type manifestFlag struct {
	Manifest string `default:"-" help:"Manifest file or '-' for stdin" short:"f"`
}

// load reads and decodes the manifest.
func (m manifestFlag) load() (*manifest.Document, error) {
	doc, err := manifest.LoadFile(m.Manifest)
	if err != nil {
		return nil, err
	}

	log.Trace("manifest loaded",
		slog.String("source", m.Manifest),
		slog.Int("expressions", len(doc.Expressions)),
		slog.Int("modules", len(doc.Modules)),
	)

	return doc, nil
}

// compile builds and compiles the manifest's module tree, returning the
// expression accessors keyed by dotted path.
func (m manifestFlag) compile() (map[string]manifest.Accessor, error) {
	doc, err := m.load()
	if err != nil {
		return nil, err
	}

	root, access, err := doc.Build(formula.WithLogger(log.Default()))
	if err != nil {
		return nil, err
	}

	if err := root.Compile(); err != nil {
		return nil, err
	}

	return access, nil
}
