package analyses

import (
	"context"
	"sync"
	"time"

	"job-recommender/internal/advisor"
	"job-recommender/internal/shared/telemetry"
)

// MemoryRepo stores sessions in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Session
	now  func() time.Time
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID: make(map[string]Session),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Create stores the session.
func (r *MemoryRepo) Create(ctx context.Context, session Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[session.ID] = session
	return nil
}

// GetByID returns a live session. Expired sessions read as ErrNotFound.
func (r *MemoryRepo) GetByID(ctx context.Context, sessionID string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.byID[sessionID]
	if !ok || r.expired(session) {
		return Session{}, ErrNotFound
	}
	return session, nil
}

// SaveRecommendation attaches the latest recommendation to a live session.
func (r *MemoryRepo) SaveRecommendation(ctx context.Context, sessionID string, rec advisor.Recommendation) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.byID[sessionID]
	if !ok || r.expired(session) {
		return Session{}, ErrNotFound
	}
	session.Recommendation = &rec
	session.UpdatedAt = r.now()
	r.byID[sessionID] = session
	return session, nil
}

// DeleteExpired drops sessions whose ExpiresAt is not after now.
func (r *MemoryRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, session := range r.byID {
		if !session.ExpiresAt.IsZero() && !session.ExpiresAt.After(now) {
			delete(r.byID, id)
			removed++
		}
	}
	return removed, nil
}

// Len reports the number of stored sessions, expired or not.
func (r *MemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

func (r *MemoryRepo) expired(session Session) bool {
	return !session.ExpiresAt.IsZero() && !session.ExpiresAt.After(r.now())
}

// RunJanitor deletes expired sessions every interval until ctx is done.
func RunJanitor(ctx context.Context, repo Repo, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed, err := repo.DeleteExpired(ctx, now.UTC())
			if err != nil {
				return
			}
			if removed > 0 {
				telemetry.Info("sessions.expired", map[string]any{"removed": removed})
			}
		}
	}
}
