package analyses

import (
	"errors"
	"net/http"

	"job-recommender/internal/advisor"
	"job-recommender/internal/extract"
	"job-recommender/internal/jobsearch"
	"job-recommender/internal/llm"
	"job-recommender/internal/shared/config"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrEmptyUpload   = errors.New("uploaded file is empty")
	ErrUploadTooBig  = errors.New("uploaded file is too large")
	ErrMissingResume = errors.New("resume file is required")
)

const (
	ErrorCodeValidation     = "validation_error"
	ErrorCodeNotFound       = "not_found"
	ErrorCodeConfiguration  = "configuration_error"
	ErrorCodeDocumentParse  = "document_parse_error"
	ErrorCodeInference      = "inference_error"
	ErrorCodeJobSearch      = "job_search_error"
	ErrorCodeSummaryMissing = "summary_unavailable"
	ErrorCodeInternal       = "internal_error"
)

// Problem is an error translated for an HTTP client.
type Problem struct {
	Status  int
	Code    string
	Message string
	Details map[string]any
}

// Classify maps pipeline errors onto HTTP problems. The failing step, when
// known, is reported in Details["step"].
func Classify(err error) Problem {
	p := classify(err)
	if step, ok := advisor.FailedStep(err); ok {
		if p.Details == nil {
			p.Details = map[string]any{}
		}
		p.Details["step"] = string(step)
	}
	return p
}

func classify(err error) Problem {
	var (
		cfgErr   *config.ConfigurationError
		parseErr *extract.DocumentParseError
		infErr   *llm.InferenceError
		jsErr    *jobsearch.JobSearchError
	)
	switch {
	case errors.Is(err, ErrNotFound):
		return Problem{Status: http.StatusNotFound, Code: ErrorCodeNotFound, Message: "analysis session not found or expired"}
	case errors.Is(err, ErrMissingResume), errors.Is(err, ErrEmptyUpload):
		return Problem{Status: http.StatusBadRequest, Code: ErrorCodeValidation, Message: err.Error()}
	case errors.Is(err, ErrUploadTooBig):
		return Problem{Status: http.StatusRequestEntityTooLarge, Code: ErrorCodeValidation, Message: err.Error()}
	case errors.As(err, &cfgErr):
		return Problem{
			Status:  http.StatusServiceUnavailable,
			Code:    ErrorCodeConfiguration,
			Message: cfgErr.Error(),
			Details: map[string]any{"settings": cfgErr.Settings},
		}
	case errors.As(err, &parseErr):
		return Problem{Status: http.StatusUnprocessableEntity, Code: ErrorCodeDocumentParse, Message: "could not read the uploaded PDF: " + parseErr.Error()}
	case errors.Is(err, advisor.ErrSummaryUnavailable):
		return Problem{Status: http.StatusConflict, Code: ErrorCodeSummaryMissing, Message: "a resume summary is required before recommending jobs"}
	case errors.As(err, &infErr):
		return Problem{Status: http.StatusBadGateway, Code: ErrorCodeInference, Message: infErr.Error()}
	case errors.As(err, &jsErr):
		return Problem{Status: http.StatusBadGateway, Code: ErrorCodeJobSearch, Message: jsErr.Error()}
	default:
		return Problem{Status: http.StatusInternalServerError, Code: ErrorCodeInternal, Message: "unexpected error"}
	}
}
