package advisor

import (
	"context"
	"errors"
	"strings"
	"time"

	"job-recommender/internal/jobsearch"
	"job-recommender/internal/llm"
	"job-recommender/internal/shared/config"
	"job-recommender/internal/shared/metrics"
	"job-recommender/internal/shared/telemetry"
)

// JobSearcher finds listings for a query.
type JobSearcher interface {
	Search(ctx context.Context, q jobsearch.Query) ([]jobsearch.JobRecord, error)
}

// Service sequences the prompts and the job search. Steps run one at a time,
// without retries or caching.
type Service struct {
	LLM  llm.Generator
	Jobs JobSearcher
}

// Analyze runs summary, skill gaps and roadmap in order. The steps are
// independent: a failed step is recorded in its Section and the next one still
// runs. The returned error joins every step failure. A missing credential stops
// the run at once and the remaining sections are marked ErrNotAttempted.
func (s *Service) Analyze(ctx context.Context, resumeText string) (Analysis, error) {
	start := time.Now()
	metrics.IncAnalysisStarted()
	defer metrics.ObserveSince(start)

	steps := []Step{StepSummary, StepSkillGaps, StepRoadmap}
	sections := make([]Section, len(steps))
	var errs []error
	halted := false

	for i, step := range steps {
		sections[i] = Section{Step: step}
		if halted {
			sections[i].Err = &StepError{Step: step, Err: ErrNotAttempted}
			continue
		}
		text, err := s.generate(ctx, step, BuildResumePrompt(step, resumeText))
		if err != nil {
			stepErr := &StepError{Step: step, Err: err}
			sections[i].Err = stepErr
			errs = append(errs, stepErr)
			var cfgErr *config.ConfigurationError
			if errors.As(err, &cfgErr) {
				halted = true
			}
			continue
		}
		sections[i].Text = text
	}

	analysis := Analysis{Summary: sections[0], SkillGaps: sections[1], Roadmap: sections[2]}
	if len(errs) > 0 {
		metrics.IncAnalysisFailed()
		return analysis, errors.Join(errs...)
	}
	metrics.IncAnalysisCompleted()
	return analysis, nil
}

// JobKeyword asks the model for job titles matching the summary and keeps the first.
func (s *Service) JobKeyword(ctx context.Context, summary string) (string, error) {
	if strings.TrimSpace(summary) == "" {
		return "", &StepError{Step: StepJobKeyword, Err: ErrSummaryUnavailable}
	}
	raw, err := s.generate(ctx, StepJobKeyword, BuildJobTitlesPrompt(summary))
	if err != nil {
		return "", &StepError{Step: StepJobKeyword, Err: err}
	}
	return FirstKeyword(raw), nil
}

// Recommend derives a keyword from the summary and searches for matching jobs.
// A job search failure is reported through Recommendation.Warning with no jobs;
// a missing credential or a failed keyword step is returned as an error.
func (s *Service) Recommend(ctx context.Context, summary string, q jobsearch.Query) (Recommendation, error) {
	keyword, err := s.JobKeyword(ctx, summary)
	if err != nil {
		return Recommendation{}, err
	}
	q.Title = keyword
	rec := Recommendation{Keyword: keyword, Query: q, Jobs: []jobsearch.JobRecord{}}

	if s.Jobs == nil {
		rec.Warning = "Job search is not configured."
		return rec, nil
	}
	jobs, err := s.Jobs.Search(ctx, q)
	if err != nil {
		var cfgErr *config.ConfigurationError
		if errors.As(err, &cfgErr) {
			return rec, &StepError{Step: StepJobSearch, Err: err}
		}
		var jsErr *jobsearch.JobSearchError
		if errors.As(err, &jsErr) {
			telemetry.Warn("advisor.job_search_failed", map[string]any{
				"keyword": keyword,
				"error":   err,
			})
			rec.Warning = "Job search failed: " + err.Error()
			return rec, nil
		}
		return rec, &StepError{Step: StepJobSearch, Err: err}
	}
	if jobs != nil {
		rec.Jobs = jobs
	}
	metrics.IncRecommendations()
	return rec, nil
}

// FirstKeyword keeps the first comma-delimited token of a model answer, trimmed.
// An answer without commas is returned whole, trimmed.
func FirstKeyword(response string) string {
	first, _, _ := strings.Cut(response, ",")
	return strings.TrimSpace(first)
}

func (s *Service) generate(ctx context.Context, step Step, prompt string) (string, error) {
	if s.LLM == nil {
		return "", errors.New("language model is not configured")
	}
	started := time.Now()
	text, err := s.LLM.Generate(ctx, llm.Request{Prompt: prompt, MaxTokens: maxTokensFor(step)})
	fields := map[string]any{
		"step":        string(step),
		"duration_ms": time.Since(started).Milliseconds(),
	}
	if err != nil {
		fields["error"] = err
		telemetry.Error("advisor.step_failed", fields)
		return "", err
	}
	fields["chars"] = len(text)
	telemetry.Info("advisor.step_complete", fields)
	return text, nil
}
