// Package report turns pipeline results and failures into alerts for the
// terminal.
package report

import (
	"fmt"
	"unicode/utf8"

	"github.com/agentstation/nsmerge/internal/cmd/alerts"
	"github.com/agentstation/nsmerge/pkg/document"
	"github.com/agentstation/nsmerge/pkg/errors"
	"github.com/agentstation/nsmerge/pkg/pipeline"
)

// maxValueLen caps the rendered failing value.
const maxValueLen = 200

// Failure builds the alert for a failed run. It returns nil for nil err.
func Failure(err error) *alerts.Alert {
	if err == nil {
		return nil
	}

	kind := errors.KindOf(err)
	var pe *errors.PipelineError
	errors.As(err, &pe)

	var a *alerts.Alert
	switch kind {
	case errors.KindInterrupted:
		a = alerts.NewError("Process interrupted by user")
		if f := lastFile(pe); f != "" {
			a.WithDetailf("Last file being processed: %s", f)
		}
		return a
	case errors.KindMalformedInput:
		a = alerts.NewError(fmt.Sprintf("JSON decode error in file %s", lastFile(pe)))
		addParseDetail(a, err)
	case errors.KindEncoding:
		a = alerts.NewError(fmt.Sprintf("Unicode decode error in file %s", lastFile(pe)))
		var ee *errors.EncodingError
		if errors.As(err, &ee) {
			a.WithDetailf("invalid %s byte at offset %d", ee.Encoding, ee.Offset)
		}
	case errors.KindRead:
		a = alerts.NewError(fmt.Sprintf("Unexpected error while reading %s", lastFile(pe)))
	case errors.KindSchemaNotFound:
		a = alerts.NewError(fmt.Sprintf("Schema file %s not found", lastFile(pe)))
	case errors.KindMalformedSchema:
		var se *errors.SchemaError
		if errors.As(err, &se) {
			a = alerts.NewError("Invalid schema")
			a.WithDetailf("Message: %s", se.Message)
		} else {
			a = alerts.NewError(fmt.Sprintf("JSON decode error in schema file %s", lastFile(pe)))
			addParseDetail(a, err)
		}
	case errors.KindValidation:
		a = alerts.NewError("Schema validation failed")
		var ve *errors.ValidationError
		if errors.As(err, &ve) {
			a.WithDetailf("Path: %s", ve.PathString())
			a.WithDetailf("Message: %s", ve.Message)
			a.WithDetailf("Failed value: %s", renderValue(ve.Value))
			if ve.Keyword != "" {
				a.WithDetailf("Schema keyword: %s", ve.Keyword)
			}
		}
	case errors.KindWrite:
		a = alerts.NewError(fmt.Sprintf("Failed to write output file %s", lastFile(pe)))
	case errors.KindConfig:
		a = alerts.NewError("Invalid configuration")
		var ce *errors.ConfigError
		if errors.As(err, &ce) {
			a.WithDetailf("%s: %s", ce.Component, ce.Message)
		}
	default:
		a = alerts.NewError("Process failed")
	}

	if pe != nil {
		a.WithDetailf("Stage: %s", pe.Stage)
		if pe.File != "" {
			a.WithDetailf("Last file being processed: %s", pe.File)
		}
		if pe.Namespace != "" {
			a.WithDetailf("Current namespace: %s", pe.Namespace)
		}
	}
	a.WithDetailf("Error kind: %s", kind)
	a.WithDetailf("Error message: %v", err)
	if h := hint(kind); h != "" {
		a.WithDetailf("Hint: %s", h)
	}
	return a
}

// hint returns actionable guidance for a failure kind.
func hint(kind errors.Kind) string {
	switch kind {
	case errors.KindSchemaNotFound:
		return "pass --schema or set NSMERGE_SCHEMA_FILE"
	case errors.KindMalformedInput:
		return "fix the file or skip it with --exclude"
	case errors.KindEncoding:
		return "namespace files must be saved as UTF-8"
	case errors.KindWrite:
		return "check that the output directory exists and is writable"
	case errors.KindValidation:
		return "run 'nsmerge show' to inspect the merged document"
	case errors.KindConfig:
		return "exclude patterns use doublestar syntax, e.g. '**/*.bak'"
	}
	return ""
}

// Success builds the alert for a run that did not fail.
func Success(result *pipeline.Result, input string) *alerts.Alert {
	switch result.Status {
	case pipeline.StatusSkipped:
		return alerts.NewWarning(fmt.Sprintf("Input directory %s does not exist", input))
	case pipeline.StatusValidated:
		return alerts.NewSuccess("Merged JSON is valid according to the schema").
			WithDetailf("%d namespaces, %d files", len(result.Namespaces), result.Files)
	case pipeline.StatusWritten:
		return alerts.NewSuccess(fmt.Sprintf("Merged JSON successfully written to %s", result.Output)).
			WithDetailf("%d namespaces, %d files", len(result.Namespaces), result.Files)
	default:
		return alerts.NewInfo(fmt.Sprintf("Collected %d namespaces", len(result.Namespaces)))
	}
}

func lastFile(pe *errors.PipelineError) string {
	if pe == nil {
		return ""
	}
	return pe.File
}

func addParseDetail(a *alerts.Alert, err error) {
	var pse *errors.ParseError
	if !errors.As(err, &pse) {
		return
	}
	if pse.Line > 0 {
		a.WithDetailf("Line %d, Column %d: %s", pse.Line, pse.Column, pse.Message)
		return
	}
	a.WithDetails(pse.Message)
}

func renderValue(v any) string {
	data, err := document.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	s := string(data)
	if len(s) <= maxValueLen {
		return s
	}
	cut := maxValueLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// Emit writes the report for a finished run and returns err, marked as
// reported, so callers can propagate it without printing it twice.
func Emit(w alerts.Writer, input string, result *pipeline.Result, err error) error {
	if err != nil {
		if werr := w.WriteAlert(Failure(err)); werr != nil {
			return err
		}
		return &reportedError{err: err}
	}
	if result == nil {
		return nil
	}
	_ = w.WriteAlert(Success(result, input))
	return nil
}

type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// IsReported reports whether err has already been written by Emit.
func IsReported(err error) bool {
	var re *reportedError
	return errors.As(err, &re)
}
