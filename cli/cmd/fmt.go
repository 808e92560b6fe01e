package cmd

import (
	"context"
	"os"
)

// Fmt rewrites a manifest as normalized YAML on stdout. The manifest must
// decode, but it is not compiled: formatting a broken layout is allowed.
type Fmt struct {
	manifestFlag
}

// Run executes the fmt command.
func (f *Fmt) Run(_ context.Context) error {
	doc, err := f.load()
	if err != nil {
		return err
	}

	out, err := doc.Normalize()
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(out)

	return err
}
