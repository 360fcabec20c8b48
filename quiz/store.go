package quiz

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"

	apperrors "math-buddy/errors"
)

// Store keeps active quiz sessions in a bounded LRU so an unattended server
// cannot accumulate sessions without limit. Old sessions are additionally
// swept by the janitor once they pass the retention age.
type Store struct {
	cache  *lru.Cache
	logger *zap.Logger
}

func NewStore(capacity int, logger *zap.Logger) (*Store, error) {
	if capacity <= 0 {
		capacity = 256
	}
	cache, err := lru.New(capacity)
	if err != nil {
		return nil, err
	}
	return &Store{cache: cache, logger: logger}, nil
}

func (st *Store) Put(s *Session) {
	st.cache.Add(s.QuizID, s)
}

func (st *Store) Get(quizID string) (*Session, error) {
	v, ok := st.cache.Get(quizID)
	if !ok {
		return nil, apperrors.WrapError(apperrors.ErrNotFound, "quiz not found: "+quizID)
	}
	return v.(*Session), nil
}

func (st *Store) Delete(quizID string) {
	st.cache.Remove(quizID)
}

func (st *Store) Len() int {
	return st.cache.Len()
}

// StartJanitor evicts sessions older than maxAge every interval until the
// context is canceled.
func (st *Store) StartJanitor(ctx context.Context, interval, maxAge time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		st.logger.Info("Session janitor started",
			zap.Duration("interval", interval),
			zap.Duration("retention", maxAge))
		for {
			select {
			case <-ctx.Done():
				st.logger.Info("Session janitor stopped")
				return
			case <-ticker.C:
				st.sweep(maxAge)
			}
		}
	}()
}

func (st *Store) sweep(maxAge time.Duration) {
	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, key := range st.cache.Keys() {
		v, ok := st.cache.Peek(key)
		if !ok {
			continue
		}
		if v.(*Session).CreatedAt.Before(cutoff) {
			st.cache.Remove(key)
			removed++
		}
	}
	if removed > 0 {
		st.logger.Info("Swept expired quiz sessions", zap.Int("removed", removed))
	}
}
