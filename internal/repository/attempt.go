package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"study-game/internal/cache"
	"study-game/internal/domain"
	"study-game/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// AttemptRepository persists graded attempts so a report can reference
// them after the quiz page is gone.
type AttemptRepository interface {
	Save(ctx context.Context, attempt *domain.Attempt) error
	Get(ctx context.Context, attemptID string) (*domain.Attempt, error)
}

type attemptRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAttemptRepository(client *redis.Client, ttl time.Duration) AttemptRepository {
	return &attemptRepository{client: client, ttl: ttl}
}

func attemptKey(attemptID string) string {
	return cache.GenerateCacheKey("quiz", "attempt", attemptID)
}

func (r *attemptRepository) Save(ctx context.Context, attempt *domain.Attempt) error {
	if err := attempt.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(attempt)
	if err != nil {
		return domain.NewInternalError("failed to marshal attempt", err)
	}

	key := attemptKey(attempt.ID)
	if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
		logger.Get().Error("failed to save attempt", zap.String("key", key), zap.Error(err))
		return domain.NewInternalError("failed to save attempt", err)
	}
	return nil
}

func (r *attemptRepository) Get(ctx context.Context, attemptID string) (*domain.Attempt, error) {
	if attemptID == "" {
		return nil, domain.NewInvalidInputError("attempt id is required")
	}

	data, err := r.client.Get(ctx, attemptKey(attemptID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.NewAttemptNotFoundError(attemptID)
	}
	if err != nil {
		return nil, domain.NewInternalError("failed to load attempt", err)
	}

	var attempt domain.Attempt
	if err := json.Unmarshal(data, &attempt); err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("corrupt attempt record %s", attemptID), err)
	}
	return &attempt, nil
}
