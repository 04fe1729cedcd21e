package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "WORKSHOP_RENDER_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

const (
	TypeAnalysisCompleted     = "WORKSHOP_ANALYSIS_COMPLETED"
	TypeRenderCompleted       = "WORKSHOP_RENDER_COMPLETED"
	TypeAdvisorReplyCompleted = "ADVISOR_REPLY_COMPLETED"
)

// BaseEvent is the concrete event carried on the bus.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewAnalysisCompleted records a finished photo analysis.
func NewAnalysisCompleted(sessionID, philosophy string) Event {
	return BaseEvent{
		Type: TypeAnalysisCompleted,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"philosophy": philosophy,
		},
		OccurredAt: time.Now(),
	}
}

// NewRenderCompleted records a finished prompt-then-render pipeline.
func NewRenderCompleted(sessionID, mimeType string, imageBytes int) Event {
	return BaseEvent{
		Type: TypeRenderCompleted,
		Data: map[string]interface{}{
			"session_id":  sessionID,
			"mime_type":   mimeType,
			"image_bytes": imageBytes,
		},
		OccurredAt: time.Now(),
	}
}

// NewAdvisorReplyCompleted records a fully streamed advisor reply.
func NewAdvisorReplyCompleted(sessionID string, replyChars int) Event {
	return BaseEvent{
		Type: TypeAdvisorReplyCompleted,
		Data: map[string]interface{}{
			"session_id":  sessionID,
			"reply_chars": replyChars,
		},
		OccurredAt: time.Now(),
	}
}
