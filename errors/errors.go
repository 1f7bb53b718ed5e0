package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates which operation was running when the error occurred
type Phase string

const (
	PhaseAccess   Phase = "access"   // dereference of an owner
	PhaseRelease  Phase = "release"  // destruction or refcount decrement
	PhaseTransfer Phase = "transfer" // ownership moves between owners
	PhaseScope    Phase = "scope"    // scope unwind and recovered failures
	PhaseConfig   Phase = "config"   // configuration loading
)

// Kind categorizes the error
type Kind string

const (
	KindNullAccess    Kind = "null_access"
	KindDoubleRelease Kind = "double_release"
	KindRefUnderflow  Kind = "ref_underflow"
	KindOutOfBounds   Kind = "out_of_bounds"
	KindPanic         Kind = "panic"
	KindInvalidInput  Kind = "invalid_input"
	KindNotFound      Kind = "not_found"
)

// NoID marks an error that is not tied to a particular resource.
const NoID = -1

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Owner  string
	Detail string
	ID     int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Owner != "" {
		b.WriteString(" on ")
		b.WriteString(e.Owner)
	}

	if e.ID != NoID {
		b.WriteString(" (id ")
		b.WriteString(strconv.Itoa(e.ID))
		b.WriteByte(')')
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
			ID:    NoID,
		},
	}
}

// Owner sets the owner type name
func (b *Builder) Owner(name string) *Builder {
	b.err.Owner = name
	return b
}

// ID sets the resource identity
func (b *Builder) ID(id int) *Builder {
	b.err.ID = id
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NullAccess creates an error for dereferencing an empty owner
func NullAccess(owner string) *Error {
	return New(PhaseAccess, KindNullAccess).
		Owner(owner).
		Detail("dereference of empty owner").
		Build()
}

// NullTransfer creates an error for transferring out of an empty owner
func NullTransfer(owner string) *Error {
	return New(PhaseTransfer, KindNullAccess).
		Owner(owner).
		Detail("transfer from empty owner").
		Build()
}

// DoubleRelease creates an error for destroying an already destroyed resource
func DoubleRelease(id int) *Error {
	return &Error{
		Phase:  PhaseRelease,
		Kind:   KindDoubleRelease,
		ID:     id,
		Detail: "resource destroyed twice",
	}
}

// RefUnderflow creates an error for a reference count decremented below zero
func RefUnderflow(owner string, count int32) *Error {
	return &Error{
		Phase:  PhaseRelease,
		Kind:   KindRefUnderflow,
		Owner:  owner,
		ID:     NoID,
		Detail: fmt.Sprintf("reference count dropped to %d", count),
		Value:  count,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, owner string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Owner:  owner,
		ID:     NoID,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// Recovered wraps a recovered panic value. If the value is itself an error
// it becomes the cause so errors.Is/As can see through the recovery.
func Recovered(v any) *Error {
	e := &Error{
		Phase: PhaseScope,
		Kind:  KindPanic,
		ID:    NoID,
		Value: v,
	}
	if err, ok := v.(error); ok {
		e.Cause = err
		e.Detail = "recovered panic"
	} else {
		e.Detail = fmt.Sprintf("recovered panic: %v", v)
	}
	return e
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		ID:     NoID,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		ID:     NoID,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return New(phase, kind).Cause(cause).Detail(detail).Build()
}
