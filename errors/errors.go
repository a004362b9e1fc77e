package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLayout Phase = "layout" // descriptor construction
	PhaseView   Phase = "view"   // buffer/view navigation
	PhaseRead   Phase = "read"   // bytes to Go values
	PhaseWrite  Phase = "write"  // Go values to bytes
	PhaseSchema Phase = "schema" // schema and WIT mapping
	PhaseVerify Phase = "verify" // shader layout verification
	PhaseStage  Phase = "stage"  // copying ranges into staging memory
)

// Kind categorizes the error
type Kind string

const (
	KindTypeMismatch     Kind = "type_mismatch"
	KindOutOfBounds      Kind = "out_of_bounds"
	KindFieldUnknown     Kind = "no_such_member"
	KindInvalidAlignment Kind = "invalid_alignment"
	KindOverrun          Kind = "buffer_overrun"
	KindLengthMismatch   Kind = "length_mismatch"
	KindOverflow         Kind = "overflow"
	KindUnsupported      Kind = "unsupported"
	KindInvalidInput     Kind = "invalid_input"
	KindInvalidData      Kind = "invalid_data"
	KindLayoutMismatch   Kind = "layout_mismatch"
	KindNotFound         Kind = "not_found"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	GoType  string
	GPUType string
	Detail  string
	Path    []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(JoinPath(e.Path))
	}

	if e.GoType != "" || e.GPUType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.GPUType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", GPU type ")
			b.WriteString(e.GPUType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("GPU type ")
			b.WriteString(e.GPUType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.GPUType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
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

// Is reports whether target matches this error.
// A target with an empty Phase matches any phase.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return (t.Phase == "" || e.Phase == t.Phase) && e.Kind == t.Kind
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
		},
	}
}

// Path sets the member path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// GPUType sets the shader-side type name
func (b *Builder) GPUType(t string) *Builder {
	b.err.GPUType = t
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

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, gpuType string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindTypeMismatch,
		Path:    path,
		GoType:  goType,
		GPUType: gpuType,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of range [0, %d)", index, length),
		Value:  index,
	}
}

// FieldUnknown creates an unknown member error
func FieldUnknown(phase Phase, path []string, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldUnknown,
		Path:   path,
		Detail: fmt.Sprintf("no such member %q", name),
		Value:  name,
	}
}

// InvalidAlignment creates an invalid alignment error
func InvalidAlignment(phase Phase, align uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidAlignment,
		Detail: fmt.Sprintf("alignment must be positive, got %d", align),
		Value:  align,
	}
}

// Overrun creates a backing buffer overrun error
func Overrun(phase Phase, path []string, offset, size uint32, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverrun,
		Path:   path,
		Detail: fmt.Sprintf("range [%d, %d) exceeds backing length %d", offset, uint64(offset)+uint64(size), length),
	}
}

// LengthMismatch creates a length mismatch error
func LengthMismatch(phase Phase, path []string, got, want int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindLengthMismatch,
		Path:   path,
		Detail: fmt.Sprintf("got %d elements, want %d", got, want),
		Value:  got,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Detail: fmt.Sprintf("%s overflows uint32", what),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// LayoutMismatch creates a layout mismatch error
func LayoutMismatch(path []string, detail string) *Error {
	return &Error{
		Phase:  PhaseVerify,
		Kind:   KindLayoutMismatch,
		Path:   path,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(phase Phase, what string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// JoinPath joins member path segments with dots. Index segments such as
// "[2]" attach to the previous segment without a separator.
func JoinPath(path []string) string {
	var b strings.Builder
	for i, seg := range path {
		if i > 0 && !strings.HasPrefix(seg, "[") {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

// WithPath returns a copy of err with prefix prepended to its path.
// Errors that are not *Error are returned unchanged.
func WithPath(err error, prefix ...string) error {
	e, ok := err.(*Error)
	if !ok || len(prefix) == 0 {
		return err
	}
	c := *e
	c.Path = append(append(make([]string, 0, len(prefix)+len(e.Path)), prefix...), e.Path...)
	return &c
}
