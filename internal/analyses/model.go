package analyses

import (
	"time"

	"job-recommender/internal/advisor"
)

const (
	StatusCompleted = "completed"
	StatusPartial   = "partial"
	StatusFailed    = "failed"
)

// Session is one uploaded resume and everything derived from it. It lives only
// in process memory and expires after the configured TTL.
type Session struct {
	ID             string
	FileName       string
	ResumeText     string
	Status         string
	Analysis       advisor.Analysis
	Recommendation *advisor.Recommendation
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ExpiresAt      time.Time
}

// Upload is a resume received from a client.
type Upload struct {
	FileName string
	MimeType string
	Data     []byte
}

func statusFor(a advisor.Analysis) string {
	failed := 0
	for _, sec := range a.Sections() {
		if !sec.OK() {
			failed++
		}
	}
	switch failed {
	case 0:
		return StatusCompleted
	case len(a.Sections()):
		return StatusFailed
	default:
		return StatusPartial
	}
}
