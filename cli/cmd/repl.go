package cmd

import (
	"context"

	"github.com/strut-lang/strut/cli/cmd/repl"
)

// Repl starts an interactive expression session. A manifest may preload
// definitions.
type Repl struct {
	Manifest string `default:"" help:"Manifest file to preload" short:"f"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	return repl.Run(ctx, r.Manifest)
}
