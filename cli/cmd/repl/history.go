package repl

// history is an in-memory input history with cursor-style navigation.
type history struct {
	entries []string
	idx     int // entries index during navigation; len(entries) when live
}

func newHistory() *history {
	return &history{}
}

// add appends an entry, skipping blanks and consecutive duplicates, and
// resets navigation to the live line.
func (h *history) add(line string) {
	if line == "" {
		h.idx = len(h.entries)

		return
	}

	if n := len(h.entries); n == 0 || h.entries[n-1] != line {
		h.entries = append(h.entries, line)
	}

	h.idx = len(h.entries)
}

// prev steps backward, returning the entry and true while one exists.
func (h *history) prev() (string, bool) {
	if h.idx == 0 {
		return "", false
	}

	h.idx--

	return h.entries[h.idx], true
}

// next steps forward. Stepping past the most recent entry returns an
// empty line, restoring the live prompt.
func (h *history) next() (string, bool) {
	if h.idx >= len(h.entries) {
		return "", false
	}

	h.idx++

	if h.idx == len(h.entries) {
		return "", true
	}

	return h.entries[h.idx], true
}
