package jobsearch

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingDataset is returned when a finished run carries no dataset id.
	ErrMissingDataset = errors.New("apify run did not return a dataset id")
	// ErrMalformedRun is returned when run metadata cannot be read.
	ErrMalformedRun = errors.New("apify run response is malformed")
)

// JobSearchError reports a failure talking to the job-listing service.
// Op names the call that failed; StatusCode is set for non-2xx responses.
type JobSearchError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *JobSearchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("job search %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("job search %s: %v", e.Op, e.Err)
}

func (e *JobSearchError) Unwrap() error { return e.Err }
