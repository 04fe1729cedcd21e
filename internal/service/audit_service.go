package service

import (
	"context"
	"encoding/json"
	"sync"

	"ai-luthier-be/internal/dto"
	"ai-luthier-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IAuditService interface {
	Consume(ctx context.Context) error
	Snapshot() map[string]int64
}

// auditService tails the internal event bus and keeps a running tally of
// workshop activity. The tally backs the usage endpoint; the structured log
// line per event is the audit trail itself.
type auditService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger

	mu     sync.Mutex
	counts map[string]int64
}

func NewAuditService(
	pubSub *gochannel.GoChannel,
	topicName string,
	logger logger.ILogger,
) IAuditService {
	return &auditService{
		pubSub:    pubSub,
		topicName: topicName,
		logger:    logger,
		counts:    make(map[string]int64),
	}
}

func (as *auditService) Consume(ctx context.Context) error {
	messages, err := as.pubSub.Subscribe(ctx, as.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			as.processMessage(msg)
		}
	}()

	return nil
}

func (as *auditService) Snapshot() map[string]int64 {
	as.mu.Lock()
	defer as.mu.Unlock()

	out := make(map[string]int64, len(as.counts))
	for k, v := range as.counts {
		out[k] = v
	}
	return out
}

func (as *auditService) processMessage(msg *message.Message) {
	var payload dto.WorkshopEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		as.logger.Error("audit_service", "Failed to unmarshal event message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	as.mu.Lock()
	as.counts[payload.EventType]++
	as.mu.Unlock()

	as.logger.Info("audit_service", "Workshop event recorded", map[string]interface{}{
		"event_type": payload.EventType,
		"session_id": payload.SessionId,
		"details":    payload.Details,
	})

	msg.Ack()
}
