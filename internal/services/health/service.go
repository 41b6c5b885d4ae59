package health

import "job-recommender/internal/shared/config"

// Status is the health payload. Credential flags report presence only.
type Status struct {
	OK                  bool `json:"ok"`
	GeminiConfigured    bool `json:"geminiConfigured"`
	JobSearchConfigured bool `json:"jobSearchConfigured"`
}

// Service reports process health and which external services can be reached.
type Service struct {
	geminiKey  func() (string, error)
	apifyToken func() (string, error)
}

// NewService constructs a health service reading credentials from the environment.
func NewService() *Service {
	return &Service{geminiKey: config.GeminiAPIKey, apifyToken: config.ApifyToken}
}

// Status returns the current health payload.
func (s *Service) Status() Status {
	_, geminiErr := s.geminiKey()
	_, apifyErr := s.apifyToken()
	return Status{
		OK:                  true,
		GeminiConfigured:    geminiErr == nil,
		JobSearchConfigured: apifyErr == nil,
	}
}
