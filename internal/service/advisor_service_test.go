package service

import (
	"context"
	"errors"
	"testing"

	"ai-luthier-be/internal/constant"
	"ai-luthier-be/internal/dto"
	"ai-luthier-be/internal/repository/memory"
	"ai-luthier-be/internal/websocket"
	"ai-luthier-be/pkg/gemini"
	"ai-luthier-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStreamer emits its fragments through onDelta, then either completes or
// dies partway.
type fakeStreamer struct {
	fragments []string
	failAfter int // -1 means never fail
	history   []*gemini.ChatMessage
	system    string
}

func (f *fakeStreamer) StreamChat(ctx context.Context, systemInstruction string, history []*gemini.ChatMessage, onDelta func(delta string)) (string, error) {
	f.system = systemInstruction
	f.history = history

	var full string
	for i, frag := range f.fragments {
		if f.failAfter >= 0 && i == f.failAfter {
			return "", errors.New("stream cut")
		}
		onDelta(frag)
		full += frag
	}
	return full, nil
}

func newAdvisorFixture(t *testing.T, streamer *fakeStreamer) (IAdvisorService, *memory.SessionRepository, uuid.UUID) {
	t.Helper()
	repo := memory.NewSessionRepository()
	hub := websocket.NewHub(nil, nopLogger{})

	id := uuid.New()
	session := store.NewSession(id.String())
	session.AppendTranscript(store.TranscriptRoleAssistant, constant.AdvisorGreetingV1)
	repo.Save(session)

	svc := NewAdvisorService(repo, streamer, hub, nopPublisher{}, nopLogger{})
	return svc, repo, id
}

func TestSendChatAccumulatesFragments(t *testing.T) {
	streamer := &fakeStreamer{fragments: []string{"Maple ", "bites ", "harder."}, failAfter: -1}
	svc, repo, id := newAdvisorFixture(t, streamer)

	res, err := svc.SendChat(context.Background(), id, &dto.SendAdvisorChatRequest{Chat: "Which wood attacks?"})
	require.NoError(t, err)
	assert.Equal(t, "Maple bites harder.", res.Reply)

	session, _ := repo.Get(id.String())
	entries := session.TranscriptCopy()
	require.Len(t, entries, 3) // greeting, user, assistant
	assert.Equal(t, store.TranscriptRoleUser, entries[1].Role)
	assert.Equal(t, "Which wood attacks?", entries[1].Text)
	assert.Equal(t, store.TranscriptRoleAssistant, entries[2].Role)
	assert.Equal(t, "Maple bites harder.", entries[2].Text)
}

func TestSendChatCarriesSystemPromptAndHistory(t *testing.T) {
	streamer := &fakeStreamer{fragments: []string{"ok"}, failAfter: -1}
	svc, _, id := newAdvisorFixture(t, streamer)

	_, err := svc.SendChat(context.Background(), id, &dto.SendAdvisorChatRequest{Chat: "hello"})
	require.NoError(t, err)

	assert.Equal(t, constant.AdvisorSystemPromptV1, streamer.system)
	assert.Contains(t, streamer.system, "Maple")
	assert.Contains(t, streamer.system, "50s-era deep C")

	// Greeting plus the new user turn; the empty assistant entry that is
	// being streamed is never sent to the model.
	require.Len(t, streamer.history, 2)
	assert.Equal(t, gemini.ChatMessageRoleModel, streamer.history[0].Role)
	assert.Equal(t, constant.AdvisorGreetingV1, streamer.history[0].Chat)
	assert.Equal(t, gemini.ChatMessageRoleUser, streamer.history[1].Role)
	assert.Equal(t, "hello", streamer.history[1].Chat)
}

func TestSendChatInterruptionReplacesPartialEntry(t *testing.T) {
	streamer := &fakeStreamer{fragments: []string{"Maple ", "bites "}, failAfter: 1}
	svc, repo, id := newAdvisorFixture(t, streamer)

	_, err := svc.SendChat(context.Background(), id, &dto.SendAdvisorChatRequest{Chat: "Which wood?"})
	assert.Equal(t, fiber.StatusBadGateway, fiberCode(t, err))

	session, _ := repo.Get(id.String())
	entries := session.TranscriptCopy()
	require.Len(t, entries, 3)
	assert.Equal(t, constant.AdvisorInterruptionNoticeV1, entries[2].Text)
}

func TestSendChatBusyGuard(t *testing.T) {
	streamer := &fakeStreamer{fragments: []string{"ok"}, failAfter: -1}
	svc, repo, id := newAdvisorFixture(t, streamer)

	session, _ := repo.Get(id.String())
	require.True(t, session.TryBeginAdvisorSend())
	defer session.EndAdvisorSend()

	_, err := svc.SendChat(context.Background(), id, &dto.SendAdvisorChatRequest{Chat: "hello"})
	assert.Equal(t, fiber.StatusConflict, fiberCode(t, err))
}

func TestSendChatUnknownSession(t *testing.T) {
	streamer := &fakeStreamer{fragments: []string{"ok"}, failAfter: -1}
	svc, _, _ := newAdvisorFixture(t, streamer)

	_, err := svc.SendChat(context.Background(), uuid.New(), &dto.SendAdvisorChatRequest{Chat: "hello"})
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
}

func TestGetTranscriptOrder(t *testing.T) {
	streamer := &fakeStreamer{fragments: []string{"first reply"}, failAfter: -1}
	svc, _, id := newAdvisorFixture(t, streamer)

	_, err := svc.SendChat(context.Background(), id, &dto.SendAdvisorChatRequest{Chat: "first question"})
	require.NoError(t, err)

	res, err := svc.GetTranscript(context.Background(), id)
	require.NoError(t, err)

	require.Len(t, res.Entries, 3)
	assert.Equal(t, constant.AdvisorGreetingV1, res.Entries[0].Text)
	assert.Equal(t, "first question", res.Entries[1].Text)
	assert.Equal(t, "first reply", res.Entries[2].Text)
}
