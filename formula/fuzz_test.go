package formula

import (
	"errors"
	"testing"
)

// FuzzParse checks that the parser never panics and that every failure is
// a positioned syntax error within the input bounds.
func FuzzParse(f *testing.F) {
	f.Add("1 + 2 * 3")
	f.Add("(1 + 2) * 3")
	f.Add("--5")
	f.Add("a.b.c + 1")
	f.Add("7 % 4 + 1")
	f.Add("width / 2 - margin")
	f.Add(".5")
	f.Add("5.")
	f.Add("1 @ 2")
	f.Add("((((")
	f.Add("")

	f.Fuzz(func(t *testing.T, input string) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("parser panicked on %q: %v", input, r)
			}
		}()

		u, err := Parse(input)
		if err == nil {
			if u == nil {
				t.Errorf("nil expression without error for %q", input)
			}

			return
		}

		if u != nil {
			t.Errorf("partial result alongside error for %q", input)
		}

		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("non-syntax error for %q: %v", input, err)

			return
		}

		if !errors.Is(err, ErrSyntax) {
			t.Errorf("syntax error not matching ErrSyntax for %q", input)
		}

		if se.Offset < 0 || se.Offset > len(input) {
			t.Errorf("offset %d out of bounds for %q", se.Offset, input)
		}
	})
}

// FuzzScanner checks that the token stream always terminates and covers
// the input without gaps going backward.
func FuzzScanner(f *testing.F) {
	f.Add("1 + 2")
	f.Add("a.b_c99")
	f.Add("\x00\xff")
	f.Add("   ")

	f.Fuzz(func(t *testing.T, input string) {
		s := NewScanner(input)

		prev := -1

		for range len(input) + 1 {
			tok := s.Next()
			if tok.Kind == KindEOF {
				if tok.Offset != len(input) {
					t.Errorf("EOF offset %d, want %d", tok.Offset, len(input))
				}

				return
			}

			if tok.Offset <= prev {
				t.Fatalf("offset went backward: %d after %d", tok.Offset, prev)
			}

			prev = tok.Offset
		}

		if tok := s.Next(); tok.Kind != KindEOF {
			t.Errorf("scanner produced more tokens than input bytes")
		}
	})
}
