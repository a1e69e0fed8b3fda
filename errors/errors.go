package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEnumerate Phase = "enumerate" // directory walk
	PhaseFind      Phase = "find"      // coordinate resolution
	PhaseLoad      Phase = "load"      // size and data access
	PhaseLanguage  Phase = "language"  // UI language preferences
	PhaseHost      Phase = "host"      // platform binding
	PhaseConfig    Phase = "config"    // configuration loading
	PhaseParse     Phase = "parse"     // fixture and string table decoding
)

// Kind categorizes the error
type Kind string

const (
	KindDirectoryUnavailable Kind = "directory_unavailable"
	KindNotFound             Kind = "not_found"
	KindInvalidHandle        Kind = "invalid_handle"
	KindLoadFailed           Kind = "load_failed"
	KindInvalidLanguageTag   Kind = "invalid_language_tag"
	KindInvalidInput         Kind = "invalid_input"
	KindInvalidData          Kind = "invalid_data"
	KindUnsupported          Kind = "unsupported"
)

// Sentinels match an error of the same Kind raised in any phase.
var (
	ErrDirectoryUnavailable = &Error{Kind: KindDirectoryUnavailable}
	ErrNotFound             = &Error{Kind: KindNotFound}
	ErrInvalidHandle        = &Error{Kind: KindInvalidHandle}
	ErrLoadFailed           = &Error{Kind: KindLoadFailed}
	ErrInvalidLanguageTag   = &Error{Kind: KindInvalidLanguageTag}
	ErrInvalidInput         = &Error{Kind: KindInvalidInput}
	ErrInvalidData          = &Error{Kind: KindInvalidData}
	ErrUnsupported          = &Error{Kind: KindUnsupported}
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Type   string
	Name   string
	Lang   string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if coord := e.Coordinate(); coord != "" {
		b.WriteString(" at ")
		b.WriteString(coord)
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

// Coordinate renders the type/name/lang triple, omitting trailing empty parts.
func (e *Error) Coordinate() string {
	parts := []string{e.Type, e.Name, e.Lang}
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, "/")
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target without a phase matches on Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
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

// Resource sets the resource coordinate
func (b *Builder) Resource(typ, name, lang string) *Builder {
	b.err.Type = typ
	b.err.Name = name
	b.err.Lang = lang
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

// DirectoryUnavailable creates an error for a module whose directory cannot be read
func DirectoryUnavailable(phase Phase, detail string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDirectoryUnavailable,
		Detail: detail,
		Cause:  cause,
	}
}

// NotFound creates a not-found error for a resource coordinate
func NotFound(phase Phase, typ, name, lang string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Type:   typ,
		Name:   name,
		Lang:   lang,
		Detail: "no matching resource",
	}
}

// InvalidHandle creates an error for a handle outside its module's validity window
func InvalidHandle(phase Phase, handle any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidHandle,
		Detail: fmt.Sprintf("handle %v is not valid for this module", handle),
		Value:  handle,
	}
}

// ForeignHandle creates an error for a handle issued by a different module
func ForeignHandle(phase Phase, handle any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidHandle,
		Detail: fmt.Sprintf("handle %v was issued by another module", handle),
		Value:  handle,
	}
}

// LoadFailed creates an error for a failure while materializing resource bytes
func LoadFailed(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindLoadFailed,
		Detail: detail,
		Cause:  cause,
	}
}

// InvalidLanguageTag creates an error for a malformed language name
func InvalidLanguageTag(name string, cause error) *Error {
	return &Error{
		Phase:  PhaseLanguage,
		Kind:   KindInvalidLanguageTag,
		Detail: fmt.Sprintf("invalid language name %q", name),
		Value:  name,
		Cause:  cause,
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

// InvalidData creates an invalid data error
func InvalidData(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Detail: detail,
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

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}
