// Package errors provides custom error types for the nsmerge pipeline.
// These errors enable programmatic error checking, a stable failure
// taxonomy for the CLI report, and self-contained diagnostic context.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is, As and Join are re-exported so callers only need one errors import.
var (
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// Common sentinel errors for the nsmerge pipeline
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInputNotFound indicates the input root directory does not exist.
	// It is the only non-fatal condition of a run.
	ErrInputNotFound = errors.New("input directory not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidSchema indicates the schema document itself is not a valid schema
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml", etc.
	File    string
	Line    int
	Column  int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d:%d: %s", e.Format, e.File, e.Line, e.Column, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// ConfigError reports an unusable setting, such as a malformed exclude pattern.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// EncodingError reports a file whose bytes are not valid text in the
// expected encoding.
type EncodingError struct {
	File     string
	Encoding string
	Offset   int
}

// Error implements the error interface
func (e *EncodingError) Error() string {
	return fmt.Sprintf("file %s is not valid %s: invalid byte at offset %d", e.File, e.Encoding, e.Offset)
}

// Is implements errors.Is support
func (e *EncodingError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewEncodingError creates a new EncodingError
func NewEncodingError(file, encoding string, offset int) *EncodingError {
	return &EncodingError{File: file, Encoding: encoding, Offset: offset}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "move", "list"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// SchemaError reports a schema document that is itself invalid, as
// opposed to data that fails the schema.
type SchemaError struct {
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("invalid schema %s: %s", e.File, e.Message)
	}
	return fmt.Sprintf("invalid schema: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// NewSchemaError creates a new SchemaError
func NewSchemaError(file, message string, err error) *SchemaError {
	return &SchemaError{File: file, Message: message, Err: err}
}

// ValidationError represents a schema validation failure of the merged document.
type ValidationError struct {
	// Path is the instance location: object keys and array indices.
	Path []string
	// Keyword is the schema keyword location that failed, e.g. "/properties/core/required".
	Keyword string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed at %s: %s", e.PathString(), e.Message)
}

// PathString renders the instance path as "a -> b -> 0", or "root" when empty.
func (e *ValidationError) PathString() string {
	if len(e.Path) == 0 {
		return "root"
	}
	return strings.Join(e.Path, " -> ")
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(path []string, value any, message string) *ValidationError {
	return &ValidationError{Path: path, Value: value, Message: message}
}

// Stage names a step of the merge pipeline.
type Stage string

// Pipeline stages in execution order.
const (
	StageCollect    Stage = "collect"
	StageLoadSchema Stage = "load-schema"
	StageValidate   Stage = "validate"
	StageWrite      Stage = "write"
)

// PipelineError records where in the pipeline a failure happened.
type PipelineError struct {
	Stage     Stage
	Namespace string
	File      string
	Err       error
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s failed", e.Stage)
	if e.Namespace != "" {
		fmt.Fprintf(&b, " (namespace %s)", e.Namespace)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

// Unwrap implements errors.Unwrap
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// NewPipelineError creates a new PipelineError
func NewPipelineError(stage Stage, namespace, file string, err error) *PipelineError {
	return &PipelineError{
		Stage:     stage,
		Namespace: namespace,
		File:      file,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInputNotFound checks if an error reports a missing input directory
func IsInputNotFound(err error) bool {
	return errors.Is(err, ErrInputNotFound)
}

// IsValidationError checks if an error is a schema validation failure
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapCanceled wraps a context error so it matches ErrCanceled.
func WrapCanceled(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrCanceled, err)
}
