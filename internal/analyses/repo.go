package analyses

import (
	"context"
	"time"

	"job-recommender/internal/advisor"
)

// Repo stores sessions for the lifetime of the process.
type Repo interface {
	Create(ctx context.Context, session Session) error
	GetByID(ctx context.Context, sessionID string) (Session, error)
	SaveRecommendation(ctx context.Context, sessionID string, rec advisor.Recommendation) (Session, error)
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
