package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-luthier-be/internal/dto"
	"ai-luthier-be/internal/pkg/logger"
	"ai-luthier-be/pkg/events"
	pktNats "ai-luthier-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	PublishAnalysisCompleted(ctx context.Context, sessionId, philosophy string)
	PublishRenderCompleted(ctx context.Context, sessionId, mimeType string, imageBytes int)
	PublishAdvisorReplyCompleted(ctx context.Context, sessionId string, replyChars int)
}

type publisherService struct {
	topicName     string
	pubSub        *gochannel.GoChannel
	natsPublisher *pktNats.Publisher
	logger        logger.ILogger
}

func NewPublisherService(
	topicName string,
	pubSub *gochannel.GoChannel,
	natsPublisher *pktNats.Publisher,
	logger logger.ILogger,
) IPublisherService {
	return &publisherService{
		topicName:     topicName,
		pubSub:        pubSub,
		natsPublisher: natsPublisher,
		logger:        logger,
	}
}

func (ps *publisherService) PublishAnalysisCompleted(ctx context.Context, sessionId, philosophy string) {
	ps.publish(ctx, events.NewAnalysisCompleted(sessionId, philosophy), sessionId)
}

func (ps *publisherService) PublishRenderCompleted(ctx context.Context, sessionId, mimeType string, imageBytes int) {
	ps.publish(ctx, events.NewRenderCompleted(sessionId, mimeType, imageBytes), sessionId)
}

func (ps *publisherService) PublishAdvisorReplyCompleted(ctx context.Context, sessionId string, replyChars int) {
	ps.publish(ctx, events.NewAdvisorReplyCompleted(sessionId, replyChars), sessionId)
}

// publish fans the event out to the in-process bus and, when configured, to
// NATS. Event delivery is best effort: a bus failure never fails the request
// that produced the event.
func (ps *publisherService) publish(ctx context.Context, evt events.Event, sessionId string) {
	payload := dto.WorkshopEventMessage{
		EventType: evt.EventType(),
		SessionId: sessionId,
		Details:   evt.Payload(),
		EmittedAt: time.Now(),
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		ps.logger.Error("publisher_service", "Failed to marshal event payload", map[string]interface{}{
			"event_type": evt.EventType(),
			"error":      err.Error(),
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payloadJson)
	if err := ps.pubSub.Publish(ps.topicName, msg); err != nil {
		ps.logger.Error("publisher_service", "Failed to publish event to internal bus", map[string]interface{}{
			"event_type": evt.EventType(),
			"error":      err.Error(),
		})
	}

	if ps.natsPublisher != nil {
		if err := ps.natsPublisher.Publish(ctx, evt); err != nil {
			ps.logger.Warn("publisher_service", "Failed to mirror event to NATS", map[string]interface{}{
				"event_type": evt.EventType(),
				"error":      err.Error(),
			})
		}
	}
}
