package repl

import (
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/strut-lang/strut/formula"
	"github.com/strut-lang/strut/log"
	"github.com/strut-lang/strut/manifest"
)

// resultName is the reserved name under which an ad-hoc input expression
// registers for evaluation. It contains characters no identifier can, so
// it never collides with user definitions.
const resultName = "(result)"

// session accumulates expression definitions and evaluates inputs against
// them. Compiled modules are single-use, so every evaluation builds and
// compiles a fresh module tree from the accumulated document.
type session struct {
	doc    *manifest.Document
	logger log.Logger
}

func newSession(doc *manifest.Document, logger log.Logger) *session {
	if doc == nil {
		doc = &manifest.Document{}
	}

	if doc.Expressions == nil {
		doc.Expressions = map[string]string{}
	}

	return &session{doc: doc, logger: logger}
}

// define records name as expr after checking that expr parses. Redefining
// a name replaces it; semantic errors (unresolved references, cycles)
// surface on the next evaluation.
func (s *session) define(name, expr string) error {
	if _, err := formula.Parse(expr); err != nil {
		return err
	}

	s.doc.Expressions[name] = expr
	s.logger.Trace("definition added",
		slog.String("name", name),
		slog.String("expr", expr),
	)

	return nil
}

// evaluate compiles the session document with expr registered under the
// reserved result name and returns its value.
func (s *session) evaluate(expr string) (float64, error) {
	s.doc.Expressions[resultName] = expr
	defer delete(s.doc.Expressions, resultName)

	values, err := s.doc.Values(formula.WithLogger(s.logger))
	if err != nil {
		return 0, err
	}

	return values[resultName], nil
}

// names returns every definable path in the document, sorted, for
// completion candidates.
func (s *session) names() []string {
	var out []string

	collect(s.doc, "", &out)
	slices.Sort(out)

	return out
}

func collect(doc *manifest.Document, path string, out *[]string) {
	for name := range doc.Expressions {
		if name == resultName {
			continue
		}

		*out = append(*out, join(path, name))
	}

	for name := range maps.Keys(doc.Modules) {
		collect(doc.Modules[name], join(path, name), out)
	}
}

func join(path, name string) string {
	if path == "" {
		return name
	}

	return path + "." + name
}

// parseDefinition splits "name : expr" input into its parts. The name
// must be a plain identifier; anything else is treated as an expression
// to evaluate.
func parseDefinition(input string) (name, expr string, ok bool) {
	i := strings.IndexByte(input, ':')
	if i < 0 {
		return "", "", false
	}

	name = strings.TrimSpace(input[:i])
	expr = strings.TrimSpace(input[i+1:])

	if name == "" || expr == "" || !isIdentifier(name) {
		return "", "", false
	}

	return name, expr, true
}

func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '_'):
		default:
			return false
		}
	}

	return len(s) > 0
}
