package formula

import "log/slog"

// ResolveAll resolves a batch of bound expressions in dependency order
// using iterative fixed-point passes, at most one per input expression.
// Each pass resolves every expression whose dependencies are all resolved,
// appending results in scan order; a pass that makes no progress while
// unresolved expressions remain proves a circular reference and fails with
// ErrCircularDependency. A nil or empty batch resolves to an empty list.
//
// The output is in completion order: topological, with ties among
// simultaneously eligible expressions broken by input position.
func ResolveAll(batch []*Dependent) ([]*Resolved, error) {
	out := make([]*Resolved, 0, len(batch))
	remaining := len(batch)
	done := make([]bool, len(batch))

	for range batch {
		if remaining == 0 {
			break
		}

		progress := false

		for i, d := range batch {
			if done[i] {
				continue
			}

			pending, err := d.HasUnresolvedDependencies()
			if err != nil {
				return nil, err
			}

			if pending {
				continue
			}

			r, err := d.Resolve()
			if err != nil {
				return nil, err
			}

			out = append(out, r)
			done[i] = true
			remaining--
			progress = true
		}

		if !progress {
			break
		}
	}

	if remaining > 0 {
		return nil, ErrCircularDependency.With(
			slog.Int("unresolved", remaining),
			slog.Int("total", len(batch)),
		)
	}

	return out, nil
}
