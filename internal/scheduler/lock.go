package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/ff-auction-engine/internal/adapter"
	"github.com/feral-file/ff-auction-engine/internal/logger"
)

// Locker hands out named locks shared by every engine replica
//
//go:generate mockgen -source=lock.go -destination=../mocks/locker.go -package=mocks -mock_names=Locker=MockLocker
type Locker interface {
	// Acquire takes the lock for ttl. ok is false when another holder owns it.
	Acquire(ctx context.Context, name string, ttl time.Duration) (release func(), ok bool, err error)
}

type redisLocker struct {
	client adapter.RedisClient
	prefix string
}

// NewRedisLocker creates a locker storing locks as Redis keys under prefix
func NewRedisLocker(client adapter.RedisClient, prefix string) Locker {
	return &redisLocker{client: client, prefix: prefix}
}

// Acquire takes the lock for ttl. ok is false when another holder owns it.
func (l *redisLocker) Acquire(ctx context.Context, name string, ttl time.Duration) (func(), bool, error) {
	key := fmt.Sprintf("%s:%s", l.prefix, name)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, ttl)
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}

	release := func() {
		// the pass may end because ctx was cancelled, the lock must still be released
		released, err := l.client.CompareAndDelete(context.WithoutCancel(ctx), key, token)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to release lock", zap.String("key", key), zap.Error(err))
			return
		}
		if !released {
			logger.WarnCtx(ctx, "Lock expired before release", zap.String("key", key))
		}
	}
	return release, true, nil
}
