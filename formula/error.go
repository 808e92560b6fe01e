package formula

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrSyntax             = NewError("syntax error")
	ErrUnresolvedName     = NewError("unresolved name")
	ErrNotAnObject        = NewError("not an object")
	ErrDuplicateName      = NewError("duplicate name")
	ErrAlreadyBound       = NewError("expression already bound")
	ErrAlreadyResolved    = NewError("expression already resolved")
	ErrUnresolvedDeps     = NewError("expression has unresolved dependencies")
	ErrNotBound           = NewError("expression not bound")
	ErrCircularDependency = NewError("circular dependency detected")
	ErrModuleCompiled     = NewError("module already compiled")
	ErrNotCompiled        = NewError("module not compiled")
	ErrNotRoot            = NewError("not a root module")
	ErrNoCommonAncestor   = NewError("modules share no common ancestor")
	ErrCompileFailed      = NewError("module compilation failed")
)

// Error is an error with optional structured logging attributes.
// It implements both error and slog.LogValuer.
type Error struct {
	msg   string
	err   error       // wrapped cause, for errors.Unwrap
	attrs []slog.Attr // attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is matches errors derived from the same sentinel: Wrap and With return
// copies, so identity alone cannot relate them back to the original.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg == e.msg
}

// LogValue implements slog.LogValuer for structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// With adds attributes to the error for structured logging.
// A new Error instance is returned to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	merged := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(merged, e.attrs)
	copy(merged[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: merged,
	}
}

// Name creates a new Error that names the offending symbol in both the
// message and the structured attributes.
func (e *Error) Name(name string) *Error {
	return e.Wrap(errors.New(name)).With(slog.String("name", name))
}

// SyntaxError is a positioned parse failure. It unwraps to ErrSyntax so
// callers can match the whole class with errors.Is.
type SyntaxError struct {
	Source string // complete expression source, for the caret snippet
	Offset int    // 0-based byte offset of the offending token
	Msg    string // what went wrong, e.g. `unexpected token ")"`
}

// Error implements the error interface. When the source is available the
// message includes a single-line snippet with a caret under the offset.
func (e *SyntaxError) Error() string {
	var b strings.Builder

	b.WriteString(e.Msg)
	b.WriteString(" at offset ")
	b.WriteString(strconv.Itoa(e.Offset))

	if e.Source != "" {
		col := min(e.Offset, len(e.Source))

		b.WriteString("\n  ")
		b.WriteString(flatten(e.Source))
		b.WriteString("\n  ")
		b.WriteString(strings.Repeat(" ", col))
		b.WriteByte('^')
	}

	return b.String()
}

// Unwrap makes errors.Is(err, ErrSyntax) hold for every SyntaxError.
func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// LogValue implements slog.LogValuer.
func (e *SyntaxError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", e.Msg),
		slog.Int("offset", e.Offset),
		slog.String("source", e.Source),
	)
}

// flatten replaces whitespace runs in source text so the caret snippet
// stays on one line with offsets intact.
func flatten(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return ' '
		}

		return r
	}, s)
}
