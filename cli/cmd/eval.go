package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"

	"github.com/strut-lang/strut/formula"
)

// Eval compiles a manifest and prints expression values.
type Eval struct {
	manifestFlag

	Paths []string `arg:"" help:"Expression paths to print (default: all)" name:"path" optional:""`
}

// Run executes the eval command.
func (e *Eval) Run(_ context.Context) error {
	access, err := e.compile()
	if err != nil {
		return err
	}

	paths := e.Paths
	if len(paths) == 0 {
		paths = slices.Sorted(maps.Keys(access))
	}

	for _, path := range paths {
		a, ok := access[path]
		if !ok {
			return formula.ErrUnresolvedName.Name(path)
		}

		r, err := a()
		if err != nil {
			return formula.WrapError(err).
				With(slog.String("path", path))
		}

		fmt.Printf("%s = %s\n",
			path, strconv.FormatFloat(r.Evaluate(), 'g', -1, 64))
	}

	return nil
}
