package formula

import "strconv"

// Kind identifies the lexical class of a token.
type Kind int

const (
	// KindUnknown marks a character the tokenizer does not recognize.
	// The parser turns it into a positioned syntax error.
	KindUnknown Kind = iota

	// KindNumber is a decimal literal with digits required on both sides
	// of an optional dot.
	KindNumber

	// KindIdent is an identifier: a letter followed by letters, digits,
	// or underscores.
	KindIdent

	KindPlus
	KindMinus
	KindStar
	KindSlash
	KindPercent
	KindDot
	KindLParen
	KindRParen

	// KindEOF marks the end of input. Once emitted it repeats forever.
	KindEOF
)

// String returns a string representation of the token kind.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindIdent:
		return "identifier"
	case KindPlus:
		return "+"
	case KindMinus:
		return "-"
	case KindStar:
		return "*"
	case KindSlash:
		return "/"
	case KindPercent:
		return "%"
	case KindDot:
		return "."
	case KindLParen:
		return "("
	case KindRParen:
		return ")"
	case KindEOF:
		return "end of input"
	default:
		return "unknown"
	}
}

// Token is one lexical unit of an expression source string.
// Value is meaningful only for KindNumber tokens.
type Token struct {
	Kind   Kind
	Text   string
	Offset int // 0-based byte offset of the first character
	Value  float64
}

// Scanner produces tokens from an expression source string, one at a time.
// The sequence is lazy, finite, and not restartable.
type Scanner struct {
	src string
	pos int
}

// NewScanner creates a Scanner over src.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src}
}

// Next returns the next token. It never fails: unrecognized characters
// produce a KindUnknown token so the parser can raise a contextual error at
// the right position. Whitespace (space, tab, CR, LF) between tokens is
// skipped.
func (s *Scanner) Next() Token {
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		s.pos++
	}

	if s.pos >= len(s.src) {
		return Token{Kind: KindEOF, Offset: len(s.src)}
	}

	start := s.pos
	c := s.src[s.pos]

	switch {
	case isDigit(c):
		return s.number(start)

	case isAlpha(c):
		s.pos++
		for s.pos < len(s.src) && isIdentChar(s.src[s.pos]) {
			s.pos++
		}

		return Token{Kind: KindIdent, Text: s.src[start:s.pos], Offset: start}
	}

	s.pos++

	var kind Kind

	switch c {
	case '+':
		kind = KindPlus
	case '-':
		kind = KindMinus
	case '*':
		kind = KindStar
	case '/':
		kind = KindSlash
	case '%':
		kind = KindPercent
	case '.':
		kind = KindDot
	case '(':
		kind = KindLParen
	case ')':
		kind = KindRParen
	default:
		kind = KindUnknown
	}

	return Token{Kind: kind, Text: s.src[start:s.pos], Offset: start}
}

// number scans an integer or decimal literal. A trailing dot without a
// following digit is not consumed, so "5." lexes as the number 5 and a dot.
func (s *Scanner) number(start int) Token {
	for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
		s.pos++
	}

	if s.pos+1 < len(s.src) && s.src[s.pos] == '.' && isDigit(s.src[s.pos+1]) {
		s.pos++
		for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
			s.pos++
		}
	}

	text := s.src[start:s.pos]
	value, _ := strconv.ParseFloat(text, 64)

	return Token{Kind: KindNumber, Text: text, Offset: start, Value: value}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '_'
}
