package gen

import (
	"fmt"

	"github.com/fourchimps/crudgen/internal/types"
)

// Step names reported in StepError.
const (
	StepController = "controller"
	StepForm       = "form"
)

// StepError is a recoverable failure of one generation step. The files of
// that step were left untouched, other steps still ran.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s generation skipped: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Result summarizes one generation.
type Result struct {
	Files     []types.GeneratedFile
	Errors    []error
	NextSteps []string
}

// Failed reports whether at least one step was skipped.
func (r *Result) Failed() bool {
	return len(r.Errors) > 0
}
