package schema

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/agentstation/nsmerge/pkg/document"
	"github.com/agentstation/nsmerge/pkg/errors"
)

// Validator checks documents against a compiled schema.
type Validator struct {
	schema   *Schema
	compiled *jsonschema.Schema
	printer  *message.Printer
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*validatorOptions)

type validatorOptions struct {
	lang         language.Tag
	assertFormat bool
}

// WithLanguage sets the language validation messages are rendered in.
func WithLanguage(tag language.Tag) ValidatorOption {
	return func(o *validatorOptions) {
		o.lang = tag
	}
}

// WithFormatAssertions makes "format" a validating keyword instead of an annotation.
func WithFormatAssertions() ValidatorOption {
	return func(o *validatorOptions) {
		o.assertFormat = true
	}
}

// NewValidator compiles s. A document that is not a valid schema yields
// *errors.SchemaError.
func NewValidator(s *Schema, opts ...ValidatorOption) (*Validator, error) {
	o := validatorOptions{lang: language.English}
	for _, opt := range opts {
		opt(&o)
	}

	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft2020)
	if o.assertFormat {
		c.AssertFormat()
	}

	printer := message.NewPrinter(o.lang)
	loc := s.location()

	if err := c.AddResource(loc, s.doc); err != nil {
		return nil, errors.NewSchemaError(s.path, err.Error(), err)
	}

	compiled, err := c.Compile(loc)
	if err != nil {
		return nil, errors.NewSchemaError(s.path, schemaErrorMessage(err, printer, s.doc), err)
	}

	return &Validator{schema: s, compiled: compiled, printer: printer}, nil
}

// Validate checks doc, which may be an ordered *document.Object or plain
// decoded JSON. The first failure is returned as *errors.ValidationError.
func (v *Validator) Validate(doc any) error {
	instance := document.Plain(doc)

	err := v.compiled.Validate(instance)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return errors.NewSchemaError(v.schema.path, err.Error(), err)
	}

	leaf := firstLeaf(ve, doc)
	value, _ := document.Lookup(instance, leaf.InstanceLocation)

	path := make([]string, len(leaf.InstanceLocation))
	copy(path, leaf.InstanceLocation)

	return &errors.ValidationError{
		Path:    path,
		Keyword: keywordLocation(leaf),
		Value:   value,
		Message: leaf.ErrorKind.LocalizedString(v.printer),
	}
}

// firstLeaf returns the most specific failure that appears earliest in doc.
// The library collects causes in map order, so leaves are ranked by
// instance location in document order, then by keyword location.
func firstLeaf(ve *jsonschema.ValidationError, doc any) *jsonschema.ValidationError {
	var best *jsonschema.ValidationError
	var bestKeyword string
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) > 0 {
			for _, c := range e.Causes {
				walk(c)
			}
			return
		}
		kw := keywordLocation(e)
		if best == nil {
			best, bestKeyword = e, kw
			return
		}
		c := document.ComparePaths(doc, e.InstanceLocation, best.InstanceLocation)
		if c < 0 || (c == 0 && kw < bestKeyword) {
			best, bestKeyword = e, kw
		}
	}
	walk(ve)
	return best
}

// keywordLocation renders the failing keyword as a JSON pointer into the schema.
func keywordLocation(ve *jsonschema.ValidationError) string {
	base := ""
	if i := strings.IndexByte(ve.SchemaURL, '#'); i >= 0 {
		base = ve.SchemaURL[i+1:]
	}
	kw := ve.ErrorKind.KeywordPath()
	if len(kw) == 0 {
		if base == "" {
			return "/"
		}
		return base
	}
	return base + "/" + strings.Join(kw, "/")
}

// schemaErrorMessage extracts the most useful text from a compile error.
func schemaErrorMessage(err error, printer *message.Printer, doc any) string {
	var sve *jsonschema.SchemaValidationError
	if errors.As(err, &sve) {
		var ve *jsonschema.ValidationError
		if errors.As(sve.Err, &ve) {
			leaf := firstLeaf(ve, doc)
			where := "/" + strings.Join(leaf.InstanceLocation, "/")
			return where + ": " + leaf.ErrorKind.LocalizedString(printer)
		}
	}
	return err.Error()
}
