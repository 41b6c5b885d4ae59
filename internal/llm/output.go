package llm

import "strings"

// Output is the text-bearing part of a model response. It is either PrimaryText,
// when the response exposes a direct text accessor value, or CandidateParts,
// the fragments found across all candidates and parts in response order.
type Output interface {
	Text() string
	isOutput()
}

// PrimaryText is the response's own text value.
type PrimaryText string

// Text returns the trimmed primary text.
func (p PrimaryText) Text() string {
	return strings.TrimSpace(string(p))
}

func (PrimaryText) isOutput() {}

// CandidateParts holds text fragments gathered from every candidate part.
type CandidateParts []string

// Text joins the fragments with newlines and trims the result.
func (c CandidateParts) Text() string {
	return strings.TrimSpace(strings.Join(c, "\n"))
}

func (CandidateParts) isOutput() {}
