package repl

import (
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
)

// isWordBoundary reports whether r delimits a completion word. The dot is
// intentionally not a boundary: completion candidates include dotted
// member paths like "header.bottom".
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '(', ')', '+', '-', '*', '/', '%':
		return true
	}

	return false
}

// wordBounds returns the word surrounding the cursor and its byte
// boundaries within input. An empty word means the cursor sits on a
// boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// complete ranks candidates against the word at the cursor.
func complete(input string, cursor int, candidates []string) fuzzy.Matches {
	word, _, _ := wordBounds(input, cursor)
	if word == "" {
		return nil
	}

	return fuzzy.Find(word, candidates)
}
