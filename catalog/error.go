package catalog

import (
	"errors"
	"log/slog"
	"strings"
)

// Predefined errors (sentinel values). Errors returned by this package are
// derived from these with [Error.Wrap] and [Error.With] and match them with
// [errors.Is].
var (
	ErrReservedName             = NewError("reserved field name")
	ErrMalformedReference       = NewError("malformed reference")
	ErrUnknownReference         = NewError("unknown reference")
	ErrUnsupportedReferenceType = NewError("unsupported reference type")
	ErrCyclicReference          = NewError("cyclic reference")
	ErrReadInput                = NewError("failed to read input")
	ErrDecode                   = NewError("failed to decode document")
	ErrEncode                   = NewError("failed to encode document")
	ErrInvalidSection           = NewError("invalid section")
	ErrSectionNotFound          = NewError("section not found")
	ErrFieldNotFound            = NewError("field not found")
	ErrInvalidPredicate         = NewError("invalid predicate")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	base  *Error      // sentinel this error was derived from
	msg   string
	err   error       // wrapped error (for errors.Unwrap)
	attrs []slog.Attr // attributes for structured logging
}

// NewError creates a new sentinel Error with a message.
func NewError(msg string) *Error {
	e := &Error{msg: msg}
	e.base = e

	return e
}

// WrapError converts err into an *Error, returning it unchanged if it
// already is one.
func WrapError(err error) *Error {
	var ee *Error
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
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

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.base == nil {
		return false
	}

	return e.base == t.base
}

// Attrs returns the structured attributes attached to e.
func (e *Error) Attrs() []slog.Attr { return e.attrs }

// LogValue implements slog.LogValuer for rich structured logging.
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
		base:  e.base,
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // shared; With copies before appending
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		base:  e.base,
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}
