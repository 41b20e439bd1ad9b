package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies failures surfaced by the CRUD engine. The set is
// closed: every error leaving the engine maps to exactly one kind.
type ErrorKind int

const (
	// KindUnknown is reported by KindOf for errors outside the taxonomy.
	KindUnknown ErrorKind = iota
	// KindNotFound means the requested primary key has no row.
	KindNotFound
	// KindValidation means the payload failed schema validation; nothing was written.
	KindValidation
	// KindConstraint means the store rejected a write on integrity grounds; the
	// transaction was rolled back.
	KindConstraint
	// KindPersistence is any other store failure; the transaction was rolled back.
	KindPersistence
)

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation error")
	ErrConstraint  = errors.New("constraint violation")
	ErrPersistence = errors.New("persistence failure")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindValidation:
		return ErrValidation
	case KindConstraint:
		return ErrConstraint
	case KindPersistence:
		return ErrPersistence
	default:
		return nil
	}
}

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation_error"
	case KindConstraint:
		return "constraint_violation"
	case KindPersistence:
		return "persistence_error"
	default:
		return "unknown"
	}
}

// Error is the uniform failure value of the engine. It never wraps driver
// errors; Detail holds the human-readable message extracted from them.
type Error struct {
	Kind   ErrorKind
	Table  string
	ID     string
	Detail string
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Table != "" {
		b.WriteString(e.Table)
		if e.ID != "" {
			b.WriteString(" ")
			b.WriteString(e.ID)
		}
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.sentinel().Error())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// Unwrap exposes the kind sentinel so errors.Is(err, ErrNotFound) works.
func (e *Error) Unwrap() error { return e.Kind.sentinel() }

// KindOf reports the taxonomy kind of err, or KindUnknown.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrConstraint):
		return KindConstraint
	case errors.Is(err, ErrPersistence):
		return KindPersistence
	}
	return KindUnknown
}

// NotFound reports a missing row.
func NotFound(table, id string) *Error {
	return &Error{Kind: KindNotFound, Table: table, ID: id}
}

// UnknownTable reports an entity-type token with no registered table.
func UnknownTable(table string) *Error {
	return &Error{Kind: KindNotFound, Table: table, Detail: "unknown table"}
}

// Validationf reports a payload that does not satisfy the schema.
func Validationf(table, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Table: table, Detail: fmt.Sprintf(format, args...)}
}

// Constraint reports an integrity rule rejected by the store or the engine.
func Constraint(table, detail string) *Error {
	return &Error{Kind: KindConstraint, Table: table, Detail: detail}
}

// Persistence reports an unexpected store failure.
func Persistence(table, detail string) *Error {
	return &Error{Kind: KindPersistence, Table: table, Detail: detail}
}

// FieldError is one failed per-field check.
type FieldError struct {
	Field   string
	Message string
}

func (f FieldError) Error() string { return f.Field + ": " + f.Message }

// FieldErrors collects per-field failures so a payload reports all of them at once.
type FieldErrors []FieldError

// Add appends a failure for field.
func (fe *FieldErrors) Add(field, format string, args ...any) {
	*fe = append(*fe, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (fe FieldErrors) Error() string {
	parts := make([]string, len(fe))
	for i, f := range fe {
		parts[i] = f.Error()
	}
	return strings.Join(parts, "; ")
}

// Err returns nil when no failures were collected.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}
