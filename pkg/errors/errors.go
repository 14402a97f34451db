package palaver_errors

import "fmt"

// Kind classifies a failure for transport mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindInvalidArgument
	KindNotFound
	KindForbidden
)

// Error is the failure type every service returns. Fields carries
// per-field violations for multi-field validation (register/login),
// keyed by the offending field name.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func InvalidArgument(message string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func Internal(message string) *Error {
	return &Error{Kind: KindInternal, Message: message}
}

func Internalf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...)}
}

// WithFields attaches a field-keyed violation map.
func (e *Error) WithFields(fields map[string]string) *Error {
	e.Fields = fields
	return e
}

// KindOf reports the kind of err, or KindInternal for anything
// that is not an *Error.
func KindOf(err error) Kind {
	if typed, ok := err.(*Error); ok {
		return typed.Kind
	}
	return KindInternal
}

// FieldsOf returns the violation map of err, if any.
func FieldsOf(err error) map[string]string {
	if typed, ok := err.(*Error); ok {
		return typed.Fields
	}
	return nil
}

// Violations accumulates field-keyed validation failures before they
// are returned as one aggregate InvalidArgument.
type Violations map[string]string

func (v Violations) Add(field, message string) {
	v[field] = message
}

func (v Violations) Empty() bool {
	return len(v) == 0
}

// AsError folds the accumulated violations into a single aggregate
// failure, or returns nil when nothing was violated.
func (v Violations) AsError(message string) error {
	if v.Empty() {
		return nil
	}
	return InvalidArgument(message).WithFields(v)
}
