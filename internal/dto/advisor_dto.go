package dto

import "github.com/google/uuid"

type TranscriptEntryDTO struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type SendAdvisorChatRequest struct {
	Chat string `json:"chat" validate:"required"`
}

// SendAdvisorChatResponse carries the completed reply. Fragments stream to
// the session's websocket while the request is in flight; this arrives once
// the stream finishes.
type SendAdvisorChatResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Reply     string    `json:"reply"`
}

type GetTranscriptResponse struct {
	SessionId uuid.UUID            `json:"session_id"`
	Entries   []TranscriptEntryDTO `json:"entries"`
}
