package advisor

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/summary.txt
	promptSummary string
	//go:embed prompts/skill_gaps.txt
	promptSkillGaps string
	//go:embed prompts/roadmap.txt
	promptRoadmap string
	//go:embed prompts/job_titles.txt
	promptJobTitles string
)

// Token budgets per step.
const (
	SummaryMaxTokens    = 500
	SkillGapsMaxTokens  = 400
	RoadmapMaxTokens    = 400
	JobKeywordMaxTokens = 100
)

// PromptTemplate returns the raw template for a step and whether the step has one.
func PromptTemplate(step Step) (string, bool) {
	switch step {
	case StepSummary:
		return promptSummary, true
	case StepSkillGaps:
		return promptSkillGaps, true
	case StepRoadmap:
		return promptRoadmap, true
	case StepJobKeyword:
		return promptJobTitles, true
	default:
		return "", false
	}
}

// BuildResumePrompt fills a resume-based template. Substitution is single pass,
// so placeholders appearing inside the resume are left alone.
func BuildResumePrompt(step Step, resumeText string) string {
	tmpl, _ := PromptTemplate(step)
	return strings.NewReplacer("{{resume}}", resumeText).Replace(tmpl)
}

// BuildJobTitlesPrompt fills the keyword template with a summary.
func BuildJobTitlesPrompt(summary string) string {
	return strings.NewReplacer("{{summary}}", summary).Replace(promptJobTitles)
}

func maxTokensFor(step Step) int {
	switch step {
	case StepSummary:
		return SummaryMaxTokens
	case StepSkillGaps:
		return SkillGapsMaxTokens
	case StepRoadmap:
		return RoadmapMaxTokens
	case StepJobKeyword:
		return JobKeywordMaxTokens
	default:
		return 0
	}
}
