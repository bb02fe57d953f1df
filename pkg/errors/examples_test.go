package errors_test

import (
	"fmt"

	"github.com/agentstation/nsmerge/pkg/errors"
)

// Example demonstrates basic error creation and checking.
func Example() {
	err := &errors.NotFoundError{
		Resource: errors.ResourceSchemaFile,
		ID:       "schema.json",
	}

	if errors.IsNotFound(err) {
		fmt.Println("Resource not found")
	}

	// Output: Resource not found
}

// Example_kindOf demonstrates classifying a wrapped pipeline failure.
func Example_kindOf() {
	err := errors.NewPipelineError(errors.StageValidate, "", "",
		errors.NewValidationError([]string{"core"}, map[string]any{}, "missing property 'version'"))

	fmt.Println(errors.KindOf(err))
	fmt.Println(errors.ExitCode(err))

	// Output:
	// SchemaValidationFailure
	// 1
}
