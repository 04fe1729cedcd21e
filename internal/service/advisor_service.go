package service

import (
	"context"

	"ai-luthier-be/internal/constant"
	"ai-luthier-be/internal/dto"
	"ai-luthier-be/internal/pkg/logger"
	"ai-luthier-be/internal/repository/memory"
	"ai-luthier-be/internal/websocket"
	"ai-luthier-be/pkg/gemini"
	"ai-luthier-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdvisorCollaborator is the slice of the Gemini client the advisor needs.
type AdvisorCollaborator interface {
	StreamChat(ctx context.Context, systemInstruction string, history []*gemini.ChatMessage, onDelta func(delta string)) (string, error)
}

type IAdvisorService interface {
	SendChat(ctx context.Context, sessionId uuid.UUID, request *dto.SendAdvisorChatRequest) (*dto.SendAdvisorChatResponse, error)
	GetTranscript(ctx context.Context, sessionId uuid.UUID) (*dto.GetTranscriptResponse, error)
}

type advisorService struct {
	sessionRepo  *memory.SessionRepository
	collaborator AdvisorCollaborator
	hub          *websocket.Hub
	publisher    IPublisherService
	logger       logger.ILogger
}

func NewAdvisorService(
	sessionRepo *memory.SessionRepository,
	collaborator AdvisorCollaborator,
	hub *websocket.Hub,
	publisher IPublisherService,
	sysLogger logger.ILogger,
) IAdvisorService {
	return &advisorService{
		sessionRepo:  sessionRepo,
		collaborator: collaborator,
		hub:          hub,
		publisher:    publisher,
		logger:       sysLogger,
	}
}

func (as *advisorService) getSession(sessionId uuid.UUID) (*store.Session, error) {
	session, found := as.sessionRepo.Get(sessionId.String())
	if !found {
		return nil, fiber.NewError(fiber.StatusNotFound, "session not found or expired")
	}
	as.sessionRepo.Touch(sessionId.String())
	return session, nil
}

// SendChat runs one advisory turn. The user message and an empty assistant
// entry are committed to the transcript before the model is called; the
// assistant entry grows as fragments arrive and each fragment is pushed to
// the session's websocket clients. If the stream dies partway, the partial
// entry is replaced with a fixed interruption notice so the transcript never
// keeps a half sentence.
func (as *advisorService) SendChat(ctx context.Context, sessionId uuid.UUID, request *dto.SendAdvisorChatRequest) (*dto.SendAdvisorChatResponse, error) {
	session, err := as.getSession(sessionId)
	if err != nil {
		return nil, err
	}

	if !session.TryBeginAdvisorSend() {
		return nil, fiber.NewError(fiber.StatusConflict, "the advisor is still replying, wait for the current answer")
	}
	defer session.EndAdvisorSend()

	session.AppendTranscript(store.TranscriptRoleUser, request.Chat)
	session.AppendTranscript(store.TranscriptRoleAssistant, "")

	history := as.buildHistory(session)

	reply, err := as.collaborator.StreamChat(ctx, constant.AdvisorSystemPromptV1, history, func(delta string) {
		session.GrowLastEntry(delta)
		as.hub.Send(sessionId, websocket.Frame{Type: "advisor_delta", Text: delta})
	})
	if err != nil {
		session.ReplaceLastEntry(constant.AdvisorInterruptionNoticeV1)
		as.hub.Send(sessionId, websocket.Frame{Type: "advisor_error", Text: constant.AdvisorInterruptionNoticeV1})
		as.logger.Error("AdvisorService", "Advisor stream failed", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return nil, fiber.NewError(fiber.StatusBadGateway, "the advisor could not finish the reply")
	}

	as.hub.Send(sessionId, websocket.Frame{Type: "advisor_done"})
	as.publisher.PublishAdvisorReplyCompleted(ctx, sessionId.String(), len(reply))

	as.logger.Info("AdvisorService", "Advisor reply completed", map[string]interface{}{
		"session_id":  sessionId,
		"reply_chars": len(reply),
	})

	return &dto.SendAdvisorChatResponse{SessionId: sessionId, Reply: reply}, nil
}

// buildHistory converts the transcript into model turns. The trailing empty
// assistant entry is the one currently streaming and is not sent; the opening
// greeting is kept so the model sees the tone it set.
func (as *advisorService) buildHistory(session *store.Session) []*gemini.ChatMessage {
	entries := session.TranscriptCopy()
	history := make([]*gemini.ChatMessage, 0, len(entries))
	for _, entry := range entries {
		if entry.Text == "" {
			continue
		}
		role := gemini.ChatMessageRoleModel
		if entry.Role == store.TranscriptRoleUser {
			role = gemini.ChatMessageRoleUser
		}
		history = append(history, &gemini.ChatMessage{Chat: entry.Text, Role: role})
	}
	return history
}

func (as *advisorService) GetTranscript(ctx context.Context, sessionId uuid.UUID) (*dto.GetTranscriptResponse, error) {
	session, err := as.getSession(sessionId)
	if err != nil {
		return nil, err
	}

	res := &dto.GetTranscriptResponse{
		SessionId: sessionId,
		Entries:   make([]dto.TranscriptEntryDTO, 0),
	}
	for _, entry := range session.TranscriptCopy() {
		res.Entries = append(res.Entries, dto.TranscriptEntryDTO{Role: entry.Role, Text: entry.Text})
	}
	return res, nil
}
