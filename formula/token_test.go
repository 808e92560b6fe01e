package formula

import "testing"

func TestScanner_Kinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Kind
	}{
		{
			name:  "empty input",
			input: "",
			want:  []Kind{KindEOF},
		},
		{
			name:  "whitespace only",
			input: " \t\r\n",
			want:  []Kind{KindEOF},
		},
		{
			name:  "integer",
			input: "42",
			want:  []Kind{KindNumber, KindEOF},
		},
		{
			name:  "decimal",
			input: "3.14",
			want:  []Kind{KindNumber, KindEOF},
		},
		{
			name:  "leading dot is not a number",
			input: ".5",
			want:  []Kind{KindDot, KindNumber, KindEOF},
		},
		{
			name:  "trailing dot is not part of the number",
			input: "5.",
			want:  []Kind{KindNumber, KindDot, KindEOF},
		},
		{
			name:  "identifier with digits and underscore",
			input: "row_2",
			want:  []Kind{KindIdent, KindEOF},
		},
		{
			name:  "all operators",
			input: "+ - * / % . ( )",
			want: []Kind{
				KindPlus, KindMinus, KindStar, KindSlash,
				KindPercent, KindDot, KindLParen, KindRParen, KindEOF,
			},
		},
		{
			name:  "dotted chain",
			input: "a.b.c",
			want: []Kind{
				KindIdent, KindDot, KindIdent, KindDot, KindIdent, KindEOF,
			},
		},
		{
			name:  "unrecognized character",
			input: "1 $ 2",
			want:  []Kind{KindNumber, KindUnknown, KindNumber, KindEOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScanner(tt.input)
			for i, want := range tt.want {
				tok := s.Next()
				if tok.Kind != want {
					t.Fatalf("token %d: expected %v, got %v (%q)",
						i, want, tok.Kind, tok.Text)
				}
			}
		})
	}
}

func TestScanner_NumberValues(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"0", 0},
		{"7", 7},
		{"007", 7},
		{"3.5", 3.5},
		{"120.25", 120.25},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := NewScanner(tt.input).Next()
			if tok.Kind != KindNumber {
				t.Fatalf("expected number, got %v", tok.Kind)
			}

			if tok.Value != tt.want {
				t.Errorf("expected value %v, got %v", tt.want, tok.Value)
			}
		})
	}
}

func TestScanner_Offsets(t *testing.T) {
	s := NewScanner("  ab + 12")

	tok := s.Next()
	if tok.Offset != 2 || tok.Text != "ab" {
		t.Errorf("expected ident %q at 2, got %q at %d",
			"ab", tok.Text, tok.Offset)
	}

	tok = s.Next()
	if tok.Offset != 5 {
		t.Errorf("expected operator at 5, got %d", tok.Offset)
	}

	tok = s.Next()
	if tok.Offset != 7 || tok.Value != 12 {
		t.Errorf("expected 12 at 7, got %v at %d", tok.Value, tok.Offset)
	}
}

func TestScanner_EOFRepeats(t *testing.T) {
	s := NewScanner("x")
	s.Next()

	for range 3 {
		tok := s.Next()
		if tok.Kind != KindEOF {
			t.Fatalf("expected EOF to repeat, got %v", tok.Kind)
		}

		if tok.Offset != 1 {
			t.Errorf("expected EOF offset 1, got %d", tok.Offset)
		}
	}
}
