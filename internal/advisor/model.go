package advisor

import (
	"strings"

	"job-recommender/internal/jobsearch"
)

// Step names one unit of work in the pipeline.
type Step string

const (
	StepSummary    Step = "summary"
	StepSkillGaps  Step = "skill_gaps"
	StepRoadmap    Step = "roadmap"
	StepJobKeyword Step = "job_keyword"
	StepJobSearch  Step = "job_search"
)

// Title is the heading shown for a step.
func (s Step) Title() string {
	switch s {
	case StepSummary:
		return "Resume Summary"
	case StepSkillGaps:
		return "Skill Gaps & Missing Areas"
	case StepRoadmap:
		return "Future Roadmap & Preparation Strategy"
	case StepJobKeyword:
		return "Job Keyword"
	case StepJobSearch:
		return "Job Recommendations"
	default:
		return string(s)
	}
}

// Section is the outcome of one analysis step: text on success, Err otherwise.
type Section struct {
	Step Step
	Text string
	Err  error
}

// OK reports whether the step produced output (possibly empty).
func (s Section) OK() bool { return s.Err == nil }

// Analysis holds the three independent resume analyses.
type Analysis struct {
	Summary   Section
	SkillGaps Section
	Roadmap   Section
}

// Sections returns the analyses in display order.
func (a Analysis) Sections() []Section {
	return []Section{a.Summary, a.SkillGaps, a.Roadmap}
}

// SummaryText returns the summary when it is usable as keyword input:
// the step succeeded and produced non-blank text.
func (a Analysis) SummaryText() (string, bool) {
	if !a.Summary.OK() || strings.TrimSpace(a.Summary.Text) == "" {
		return "", false
	}
	return a.Summary.Text, true
}

// Recommendation is the result of the explicit "get recommendations" action.
// Warning is set when the job search failed and Jobs is therefore empty.
type Recommendation struct {
	Keyword string
	Query   jobsearch.Query
	Jobs    []jobsearch.JobRecord
	Warning string
}
