// Package kerr implements the single, kind-tagged error type shared by
// every package in this module. Every fallible operation in dictionary,
// dictionary/builder, lattice, viterbi and tokenizer returns this type (or
// wraps one), never a bare error string, so callers can branch on Kind
// without parsing messages.
package kerr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies the failure. The set is fixed by the core's error
// handling design: callers match on Kind, not on message text.
type Kind int

const (
	IO Kind = iota
	Parse
	Decode
	Deserialize
	Serialize
	Content
	Compression
	DictionaryNotFound
	DictionaryBuildError
	ModeError
	Args
)

func (k Kind) String() string {
	switch k {
	case IO:
		return "io"
	case Parse:
		return "parse"
	case Decode:
		return "decode"
	case Deserialize:
		return "deserialize"
	case Serialize:
		return "serialize"
	case Content:
		return "content"
	case Compression:
		return "compression"
	case DictionaryNotFound:
		return "dictionary_not_found"
	case DictionaryBuildError:
		return "dictionary_build_error"
	case ModeError:
		return "mode_error"
	case Args:
		return "args"
	default:
		return "unknown"
	}
}

// Error carries a Kind, an accumulated chain of human-readable context
// strings (outermost operation last), and the underlying cause.
type Error struct {
	Kind    Kind
	Context []string
	Cause   error
}

// New wraps cause under Kind with no context yet attached.
func New(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Cause: cause}
}

// Newf is a convenience constructor for a formatted cause.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Cause: fmt.Errorf(format, args...)}
}

// WithContext appends a description of the operation that was being
// attempted when the error propagated through this layer. Returns a new
// *Error so the original is never mutated out from under a caller that
// kept a reference to it.
func (e *Error) WithContext(ctx string) *Error {
	next := &Error{Kind: e.Kind, Cause: e.Cause}
	next.Context = append(next.Context, e.Context...)
	next.Context = append(next.Context, ctx)
	return next
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	for i := len(e.Context) - 1; i >= 0; i-- {
		b.WriteString(" (while ")
		b.WriteString(e.Context[i])
		b.WriteString(")")
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether err is a *kerr.Error of the given Kind, so callers can
// write `if kerr.Is(err, kerr.Content) { ... }`.
func Is(err error, kind Kind) bool {
	var kerrErr *Error
	if errors.As(err, &kerrErr) {
		return kerrErr.Kind == kind
	}
	return false
}
