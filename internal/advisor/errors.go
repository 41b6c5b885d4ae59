package advisor

import (
	"errors"
	"fmt"
)

var (
	// ErrSummaryUnavailable blocks keyword extraction when the summary failed or is empty.
	ErrSummaryUnavailable = errors.New("resume summary is unavailable")
	// ErrNotAttempted marks steps skipped after a configuration failure.
	ErrNotAttempted = errors.New("step not attempted")
)

// StepError tags a failure with the pipeline step it came from.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// FailedStep returns the step recorded in err, if any.
func FailedStep(err error) (Step, bool) {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Step, true
	}
	return "", false
}
