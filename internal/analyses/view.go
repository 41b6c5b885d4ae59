package analyses

import (
	"time"

	"job-recommender/internal/advisor"
)

// SectionView is the client representation of one analysis step.
type SectionView struct {
	Step  string `json:"step"`
	Title string `json:"title"`
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// JobView is one listing with optional fields flattened to strings.
type JobView struct {
	Title       string `json:"title"`
	CompanyName string `json:"companyName"`
	Location    string `json:"location"`
	Link        string `json:"link"`
}

// RecommendationView is the client representation of a recommendation run.
type RecommendationView struct {
	Keyword  string    `json:"keyword"`
	Location string    `json:"location"`
	Jobs     []JobView `json:"jobs"`
	Empty    bool      `json:"empty"`
	Warning  string    `json:"warning,omitempty"`
}

// SessionView is the client representation of a session.
type SessionView struct {
	ID             string              `json:"id"`
	FileName       string              `json:"fileName"`
	Status         string              `json:"status"`
	Sections       []SectionView       `json:"sections"`
	Recommendation *RecommendationView `json:"recommendation,omitempty"`
	CanRecommend   bool                `json:"canRecommend"`
	CreatedAt      time.Time           `json:"createdAt"`
	ExpiresAt      *time.Time          `json:"expiresAt,omitempty"`
}

// NewSessionView renders a session for clients.
func NewSessionView(s Session) SessionView {
	view := SessionView{
		ID:        s.ID,
		FileName:  s.FileName,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
	}
	if !s.ExpiresAt.IsZero() {
		expires := s.ExpiresAt
		view.ExpiresAt = &expires
	}
	for _, sec := range s.Analysis.Sections() {
		sv := SectionView{Step: string(sec.Step), Title: sec.Step.Title(), Text: sec.Text}
		if sec.Err != nil {
			sv.Error = sec.Err.Error()
		}
		view.Sections = append(view.Sections, sv)
	}
	_, view.CanRecommend = s.Analysis.SummaryText()
	if s.Recommendation != nil {
		rv := NewRecommendationView(*s.Recommendation)
		view.Recommendation = &rv
	}
	return view
}

// NewRecommendationView renders a recommendation for clients.
func NewRecommendationView(rec advisor.Recommendation) RecommendationView {
	view := RecommendationView{
		Keyword:  rec.Keyword,
		Location: rec.Query.Location,
		Jobs:     make([]JobView, 0, len(rec.Jobs)),
		Warning:  rec.Warning,
	}
	for _, job := range rec.Jobs {
		view.Jobs = append(view.Jobs, JobView{
			Title:       job.Title(),
			CompanyName: job.CompanyName(),
			Location:    job.Location(),
			Link:        job.Link(),
		})
	}
	view.Empty = len(view.Jobs) == 0
	return view
}
