package graph

import (
	"context"

	"chatbot-flow-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// InvalidationChannel is the redis pub/sub channel authoring publishes
// workflow ids on after a publish/update. Every engine instance subscribes
// so multi-instance deployments evict consistently.
const InvalidationChannel = "workflow.graph.invalidate"

// PublishInvalidation notifies all engine instances that a workflow graph
// changed. A redis outage only delays eviction until the cache TTL fires,
// so failures are logged and swallowed.
func PublishInvalidation(ctx context.Context, rdb *redis.Client, workflowID uuid.UUID, log logger.ILogger) {
	if rdb == nil {
		return
	}
	if err := rdb.Publish(ctx, InvalidationChannel, workflowID.String()).Err(); err != nil {
		log.Warn("graph", "Failed to publish graph invalidation", map[string]interface{}{
			"workflow_id": workflowID.String(),
			"error":       err.Error(),
		})
	}
}

// Subscriber listens on the invalidation channel and evicts local graph
// snapshots as authoring events arrive.
type Subscriber struct {
	rdb    *redis.Client
	loader *Loader
	logger logger.ILogger
}

func NewSubscriber(rdb *redis.Client, loader *Loader, log logger.ILogger) *Subscriber {
	return &Subscriber{rdb: rdb, loader: loader, logger: log}
}

// Run blocks consuming invalidation messages until ctx is cancelled.
// Intended to be started as a goroutine at boot.
func (s *Subscriber) Run(ctx context.Context) {
	sub := s.rdb.Subscribe(ctx, InvalidationChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			workflowID, err := uuid.Parse(msg.Payload)
			if err != nil {
				s.logger.Warn("graph", "Ignoring malformed invalidation payload", map[string]interface{}{
					"payload": msg.Payload,
				})
				continue
			}
			s.loader.Invalidate(workflowID)
			s.logger.Info("graph", "Invalidated workflow graph snapshot", map[string]interface{}{
				"workflow_id": workflowID.String(),
			})
		}
	}
}
