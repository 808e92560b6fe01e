package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/strut-lang/strut/log"
)

// Check compiles a manifest without printing values, reporting syntax,
// binding, and cycle errors. The process exits nonzero on failure.
type Check struct {
	manifestFlag
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) error {
	access, err := c.compile()
	if err != nil {
		return err
	}

	log.Default().InfoContext(ctx, "manifest ok",
		slog.Int("expressions", len(access)))

	fmt.Printf("ok: %d expressions\n", len(access))

	return nil
}
