package errors

import (
	"errors"
	"fmt"
)

// Resource names used in NotFoundError.
const (
	ResourceInputDir   = "input directory"
	ResourceSchemaFile = "schema file"
)

// Kind classifies a pipeline failure for reporting and exit status.
type Kind int

// Failure kinds. KindNone means no error.
const (
	KindNone Kind = iota
	KindInputNotFound
	KindMalformedInput
	KindEncoding
	KindRead
	KindSchemaNotFound
	KindMalformedSchema
	KindValidation
	KindWrite
	KindInterrupted
	KindConfig
	KindUnknown
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInputNotFound:
		return "MissingInputDirectory"
	case KindMalformedInput:
		return "MalformedJSONInput"
	case KindEncoding:
		return "EncodingError"
	case KindRead:
		return "ReadFailure"
	case KindSchemaNotFound:
		return "MissingSchemaFile"
	case KindMalformedSchema:
		return "MalformedSchemaDocument"
	case KindValidation:
		return "SchemaValidationFailure"
	case KindWrite:
		return "OutputWriteFailure"
	case KindInterrupted:
		return "Interrupted"
	case KindConfig:
		return "InvalidConfiguration"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Fatal reports whether a failure of this kind aborts the run.
func (k Kind) Fatal() bool {
	return k != KindNone && k != KindInputNotFound
}

// KindOf classifies err, looking through any wrapping.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}

	var stage Stage
	var pe *PipelineError
	if errors.As(err, &pe) {
		stage = pe.Stage
	}

	var (
		nf  *NotFoundError
		ve  *ValidationError
		se  *SchemaError
		ee  *EncodingError
		pse *ParseError
		ioe *IOError
		ce  *ConfigError
	)

	switch {
	case errors.Is(err, ErrCanceled):
		return KindInterrupted
	case errors.Is(err, ErrInputNotFound):
		return KindInputNotFound
	case errors.As(err, &ce):
		return KindConfig
	case errors.As(err, &ve):
		return KindValidation
	case errors.As(err, &se):
		return KindMalformedSchema
	case errors.As(err, &ee):
		return KindEncoding
	case errors.As(err, &pse):
		if stage == StageLoadSchema {
			return KindMalformedSchema
		}
		return KindMalformedInput
	case errors.As(err, &nf):
		if nf.Resource == ResourceSchemaFile {
			return KindSchemaNotFound
		}
		if nf.Resource == ResourceInputDir {
			return KindInputNotFound
		}
		return KindRead
	case errors.As(err, &ioe):
		switch ioe.Operation {
		case "write", "create", "move", "sync":
			return KindWrite
		}
		return KindRead
	}
	return KindUnknown
}

// Exit codes returned by the CLI.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInterrupted = 130
)

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch KindOf(err) {
	case KindNone, KindInputNotFound:
		return ExitOK
	case KindInterrupted:
		return ExitInterrupted
	default:
		return ExitFailure
	}
}
