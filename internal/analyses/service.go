package analyses

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"job-recommender/internal/advisor"
	"job-recommender/internal/extract"
	"job-recommender/internal/jobsearch"
	"job-recommender/internal/shared/config"
	"job-recommender/internal/shared/telemetry"
	"job-recommender/internal/shared/util"
)

// ExtractFunc turns an uploaded document into plain text.
type ExtractFunc func(ctx context.Context, data []byte, mimeType, fileName string) (string, error)

// Service ties extraction, the advisor and session storage together.
type Service struct {
	Repo           Repo
	Advisor        *advisor.Service
	Extract        ExtractFunc
	TTL            time.Duration
	MaxUploadBytes int64
	SearchDefaults jobsearch.Query
}

// Analyze extracts the resume text, runs the three analyses and stores the
// session. Individual step failures are kept on the session; only a missing
// credential or an unreadable document fails the call.
func (s *Service) Analyze(ctx context.Context, upload Upload) (Session, error) {
	if len(upload.Data) == 0 {
		return Session{}, ErrEmptyUpload
	}
	if s.MaxUploadBytes > 0 && int64(len(upload.Data)) > s.MaxUploadBytes {
		return Session{}, ErrUploadTooBig
	}

	extractFn := s.Extract
	if extractFn == nil {
		extractFn = extract.ExtractTextFromBytes
	}
	resumeText, err := extractFn(ctx, upload.Data, upload.MimeType, upload.FileName)
	if err != nil {
		return Session{}, err
	}

	analysis, err := s.Advisor.Analyze(ctx, resumeText)
	if err != nil {
		var cfgErr *config.ConfigurationError
		if errors.As(err, &cfgErr) {
			return Session{}, err
		}
		telemetry.Warn("analysis.partial", map[string]any{
			"request_id": requestIDFromContext(ctx),
			"file_name":  upload.FileName,
			"error":      err,
		})
	}

	now := time.Now().UTC()
	session := Session{
		ID:         uuid.NewString(),
		FileName:   upload.FileName,
		ResumeText: resumeText,
		Status:     statusFor(analysis),
		Analysis:   analysis,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if s.TTL > 0 {
		session.ExpiresAt = now.Add(s.TTL)
	}
	if err := s.Repo.Create(ctx, session); err != nil {
		return Session{}, err
	}

	telemetry.Info("analysis.complete", map[string]any{
		"request_id":  requestIDFromContext(ctx),
		"session_id":  session.ID,
		"status":      session.Status,
		"resume_size": len(resumeText),
		"resume_sha":  util.Fingerprint(upload.Data),
	})
	return session, nil
}

// Get returns a live session.
func (s *Service) Get(ctx context.Context, sessionID string) (Session, error) {
	return s.Repo.GetByID(ctx, sessionID)
}

// Recommend runs the keyword and job search steps for a stored session.
// Zero fields in q take SearchDefaults.
func (s *Service) Recommend(ctx context.Context, sessionID string, q jobsearch.Query) (Session, error) {
	session, err := s.Repo.GetByID(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}
	summary, ok := session.Analysis.SummaryText()
	if !ok {
		return Session{}, &advisor.StepError{Step: advisor.StepJobKeyword, Err: advisor.ErrSummaryUnavailable}
	}
	if q.Location == "" {
		q.Location = s.SearchDefaults.Location
	}
	if q.Rows <= 0 {
		q.Rows = s.SearchDefaults.Rows
	}

	rec, err := s.Advisor.Recommend(ctx, summary, q)
	if err != nil {
		return Session{}, err
	}
	telemetry.Info("recommendation.complete", map[string]any{
		"request_id": requestIDFromContext(ctx),
		"session_id": sessionID,
		"keyword":    rec.Keyword,
		"jobs":       len(rec.Jobs),
		"warning":    rec.Warning,
	})
	return s.Repo.SaveRecommendation(ctx, sessionID, rec)
}
