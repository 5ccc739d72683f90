package cache

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/lavandel/flower_storefront/pkg/logger"
)

// invalidationChannel carries glob patterns of keys that an admin write
// made stale. Every storefront instance drops the matching entries from
// its own store, so peers converge without waiting for TTLs.
const invalidationChannel = "storefront:cache:invalidate"

type Invalidator struct {
	local  Store
	client *redis.Client
	log    logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	closed bool
}

func NewInvalidator(local Store, client *redis.Client, log logger.Logger) *Invalidator {
	return &Invalidator{
		local:  local,
		client: client,
		log:    log,
	}
}

// Start blocks, listening for invalidation patterns, until the context
// is cancelled or Close is called.
func (i *Invalidator) Start(ctx context.Context) {
	subCtx, cancel := context.WithCancel(ctx)
	i.mu.Lock()
	i.cancel = cancel
	i.mu.Unlock()

	pubsub := i.client.Subscribe(subCtx, invalidationChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-subCtx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			if err := i.local.DeleteByPattern(subCtx, msg.Payload); err != nil {
				i.log.Warn("fan-out invalidation failed",
					logger.String("pattern", msg.Payload), logger.Err(err))
			}
		}
	}
}

func (i *Invalidator) Publish(ctx context.Context, pattern string) error {
	return i.client.Publish(ctx, invalidationChannel, pattern).Err()
}

func (i *Invalidator) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return nil
	}
	i.closed = true

	if i.cancel != nil {
		i.cancel()
	}

	return nil
}
