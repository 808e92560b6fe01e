package formula

import (
	"math"
	"testing"

	"github.com/expr-lang/expr"
)

// TestConformance_Arithmetic cross-checks pure arithmetic evaluation
// against an independent expression engine. Literals are written with
// decimal points so both engines compute in floating point, and modulo is
// excluded since its integer semantics differ.
func TestConformance_Arithmetic(t *testing.T) {
	exprs := []string{
		"1.0 + 2.0 * 3.0",
		"(1.0 + 2.0) * 3.0",
		"10.0 - 4.0 / 2.0",
		"-5.0",
		"-(-5.0)",
		"2.5 * 4.0 - 1.5",
		"(8.0 - 3.0) * (2.0 + 1.0)",
		"1.0 / 3.0",
		"100.0 / 7.0 + 0.5",
		"-(2.0 + 3.0) * -(4.0 - 1.0)",
		"0.1 + 0.2",
	}

	for _, src := range exprs {
		t.Run(src, func(t *testing.T) {
			got := evalLiteral(t, src)

			out, err := expr.Eval(src, nil)
			if err != nil {
				t.Fatalf("reference eval: %v", err)
			}

			want, ok := out.(float64)
			if !ok {
				t.Fatalf("reference returned %T, want float64", out)
			}

			if math.Abs(got-want) > 1e-12 {
				t.Errorf("expected %v, got %v", want, got)
			}
		})
	}
}
