// Package dberr collects the error taxonomy shared across PaulDB's core:
// every error carries a human-readable message and, where it wraps another
// error, supports errors.Is/errors.As instead of a numeric code.
package dberr

import "fmt"

// NotImplementedError is raised for SQL the front-end recognizes but does
// not support.
type NotImplementedError struct {
	Feature string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("not implemented: %s", e.Feature)
}

// SQLParseError wraps a failure from the underlying tokenizer/parser.
type SQLParseError struct {
	Err error
}

func (e *SQLParseError) Error() string { return fmt.Sprintf("sql parse error: %s", e.Err) }
func (e *SQLParseError) Unwrap() error { return e.Err }

// TableNotFoundError is raised when a statement or migration step refers to
// a table absent from storage.
type TableNotFoundError struct {
	TableName string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table not found: %s", e.TableName)
}

// ColumnNotFoundError is raised when an identifier fails to resolve against
// any table in scope.
type ColumnNotFoundError struct {
	ColumnName string
	TableName  string // empty when the reference was unqualified
}

func (e *ColumnNotFoundError) Error() string {
	if e.TableName != "" {
		return fmt.Sprintf("column not found: %s.%s", e.TableName, e.ColumnName)
	}
	return fmt.Sprintf("column not found: %s", e.ColumnName)
}

// AmbiguousError is raised when an unqualified identifier resolves against
// more than one table in scope.
type AmbiguousError struct {
	ColumnName string
	TableNames []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous column reference %q: present in %v", e.ColumnName, e.TableNames)
}

// SchemaError is the general-purpose schema/migration failure for
// precondition violations that don't fit a more specific type (duplicate
// column, missing default factory, reserved name, ...).
type SchemaError struct {
	Message string
	Err     error
}

func (e *SchemaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err)
	}
	return e.Message
}

func (e *SchemaError) Unwrap() error { return e.Err }

// NewSchemaError builds a SchemaError from a format string, giving callers a
// typed error to match on while keeping call sites terse.
func NewSchemaError(format string, args ...any) *SchemaError {
	return &SchemaError{Message: fmt.Sprintf(format, args...)}
}
