package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-luthier-be/internal/dto"
	"ai-luthier-be/internal/repository/memory"
	"ai-luthier-be/pkg/gemini"
	"ai-luthier-be/pkg/guitar"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type nopPublisher struct{}

func (nopPublisher) PublishAnalysisCompleted(ctx context.Context, sessionId, philosophy string) {}
func (nopPublisher) PublishRenderCompleted(ctx context.Context, sessionId, mimeType string, imageBytes int) {
}
func (nopPublisher) PublishAdvisorReplyCompleted(ctx context.Context, sessionId string, replyChars int) {
}

// fakeCollaborator records what the service asked for and replays canned
// answers.
type fakeCollaborator struct {
	analysis    *gemini.Analysis
	analysisErr error

	synthesized  string
	synthesisErr error
	instructions []string

	rendered    *gemini.RenderedImage
	renderErr   error
	renderCalls int
}

func (f *fakeCollaborator) AnalyzeGuitar(ctx context.Context, instruction string, image []byte, mimeType string) (*gemini.Analysis, error) {
	if f.analysisErr != nil {
		return nil, f.analysisErr
	}
	return f.analysis, nil
}

func (f *fakeCollaborator) GenerateText(ctx context.Context, instruction string, image []byte, mimeType string) (string, error) {
	f.instructions = append(f.instructions, instruction)
	if f.synthesisErr != nil {
		return "", f.synthesisErr
	}
	return f.synthesized, nil
}

func (f *fakeCollaborator) RenderImage(ctx context.Context, promptText string) (*gemini.RenderedImage, error) {
	f.renderCalls++
	if f.renderErr != nil {
		return nil, f.renderErr
	}
	return f.rendered, nil
}

func newWorkshopFixture(t *testing.T, collab *fakeCollaborator) (IWorkshopService, *memory.SessionRepository, uuid.UUID) {
	t.Helper()
	repo := memory.NewSessionRepository()
	svc := NewWorkshopService(repo, collab, nopPublisher{}, nopLogger{})

	res, err := svc.CreateSession(context.Background())
	require.NoError(t, err)
	return svc, repo, res.Id
}

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	return fe.Code
}

func TestCreateSessionSeedsGreeting(t *testing.T) {
	_, repo, id := newWorkshopFixture(t, &fakeCollaborator{})

	session, found := repo.Get(id.String())
	require.True(t, found)

	entries := session.TranscriptCopy()
	require.Len(t, entries, 1)
	assert.Equal(t, "assistant", entries[0].Role)
	assert.NotEmpty(t, entries[0].Text)
}

func TestUpdateSpecRejectsUnknownValue(t *testing.T) {
	svc, repo, id := newWorkshopFixture(t, &fakeCollaborator{})

	_, err := svc.UpdateSpec(context.Background(), id, &dto.UpdateSpecRequest{
		Field: guitar.FieldBodyWood,
		Value: "plywood",
	})
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))

	session, _ := repo.Get(id.String())
	assert.Equal(t, guitar.BodyWoodAlder, session.Specs.BodyWood)
}

func TestApplyPresetUnknownLeavesSpecsUntouched(t *testing.T) {
	svc, repo, id := newWorkshopFixture(t, &fakeCollaborator{})

	_, err := svc.UpdateSpec(context.Background(), id, &dto.UpdateSpecRequest{
		Field: guitar.FieldBodyWood,
		Value: string(guitar.BodyWoodMahogany),
	})
	require.NoError(t, err)

	_, err = svc.ApplyPreset(context.Background(), id, &dto.ApplyPresetRequest{Preset: "does-not-exist"})
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))

	session, _ := repo.Get(id.String())
	assert.Equal(t, guitar.BodyWoodMahogany, session.Specs.BodyWood)
}

func TestAnalyzeFailureKeepsPriorAnalysis(t *testing.T) {
	collab := &fakeCollaborator{
		analysis: &gemini.Analysis{
			DetectedSpecs: gemini.DetectedSpecs{Philosophy: "Modular (Fender)"},
			LuthierNotes:  "A well-kept bolt-on.",
		},
	}
	svc, repo, id := newWorkshopFixture(t, collab)

	_, err := svc.Analyze(context.Background(), id, []byte("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)

	collab.analysisErr = errors.New("model unavailable")
	_, err = svc.Analyze(context.Background(), id, []byte("other-bytes"), "image/jpeg")
	assert.Equal(t, fiber.StatusBadGateway, fiberCode(t, err))

	session, _ := repo.Get(id.String())
	require.NotNil(t, session.Analysis)
	assert.Equal(t, "A well-kept bolt-on.", session.Analysis.LuthierNotes)
}

func TestAnalyzeConflictWhileRunning(t *testing.T) {
	svc, repo, id := newWorkshopFixture(t, &fakeCollaborator{analysis: &gemini.Analysis{}})

	session, _ := repo.Get(id.String())
	require.True(t, session.TryBeginAnalysis())
	defer session.EndAnalysis()

	_, err := svc.Analyze(context.Background(), id, []byte("jpeg-bytes"), "image/jpeg")
	assert.Equal(t, fiber.StatusConflict, fiberCode(t, err))
}

func TestGenerateRequiresAnalyzedUpload(t *testing.T) {
	svc, _, id := newWorkshopFixture(t, &fakeCollaborator{})

	_, err := svc.Generate(context.Background(), id)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
}

func TestGeneratePreservesPhilosophyByDefault(t *testing.T) {
	collab := &fakeCollaborator{
		analysis: &gemini.Analysis{
			DetectedSpecs: gemini.DetectedSpecs{Philosophy: "Artesanal (Gibson)"},
		},
		synthesized: "a detailed build prompt",
		rendered:    &gemini.RenderedImage{Bytes: []byte{0x89}, MimeType: "image/png"},
	}
	svc, _, id := newWorkshopFixture(t, collab)

	_, err := svc.Analyze(context.Background(), id, []byte("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)

	res, err := svc.Generate(context.Background(), id)
	require.NoError(t, err)

	require.Len(t, collab.instructions, 1)
	assert.Contains(t, collab.instructions[0], "Preserve the original design philosophy")
	assert.Contains(t, collab.instructions[0], "Artesanal (Gibson)")
	assert.Equal(t, "a detailed build prompt", res.Prompt)
	assert.Equal(t, "image/png", res.MimeType)
	assert.True(t, strings.HasPrefix(res.DataURI, "data:image/png;base64,"))
}

func TestGenerateDeviatesAfterHybridPreset(t *testing.T) {
	collab := &fakeCollaborator{
		analysis:    &gemini.Analysis{},
		synthesized: "a deviating build prompt",
		rendered:    &gemini.RenderedImage{Bytes: []byte{0x89}, MimeType: "image/png"},
	}
	svc, _, id := newWorkshopFixture(t, collab)

	_, err := svc.Analyze(context.Background(), id, []byte("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)

	_, err = svc.ApplyPreset(context.Background(), id, &dto.ApplyPresetRequest{Preset: "hybrid-mod"})
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), id)
	require.NoError(t, err)

	require.Len(t, collab.instructions, 1)
	assert.Contains(t, collab.instructions[0], "Deliberately break")
}

func TestGenerateSynthesisFailureSkipsRender(t *testing.T) {
	collab := &fakeCollaborator{
		analysis:     &gemini.Analysis{},
		synthesisErr: errors.New("model unavailable"),
	}
	svc, _, id := newWorkshopFixture(t, collab)

	_, err := svc.Analyze(context.Background(), id, []byte("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), id)
	assert.Equal(t, fiber.StatusBadGateway, fiberCode(t, err))
	assert.Equal(t, 0, collab.renderCalls)
}

func TestGenerateStoresLastRender(t *testing.T) {
	collab := &fakeCollaborator{
		analysis:    &gemini.Analysis{},
		synthesized: "a detailed build prompt",
		rendered:    &gemini.RenderedImage{Bytes: []byte{1, 2, 3}, MimeType: "image/png"},
	}
	svc, repo, id := newWorkshopFixture(t, collab)

	_, err := svc.Analyze(context.Background(), id, []byte("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), id)
	require.NoError(t, err)

	session, _ := repo.Get(id.String())
	require.NotNil(t, session.LastRender)
	assert.Equal(t, "a detailed build prompt", session.LastRender.Prompt)
	assert.Equal(t, []byte{1, 2, 3}, session.LastRender.Image)
}

func TestGetSessionUnknownId(t *testing.T) {
	svc, _, _ := newWorkshopFixture(t, &fakeCollaborator{})

	_, err := svc.GetSession(context.Background(), uuid.New())
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
}

func TestVocabularyCoversEveryOption(t *testing.T) {
	svc, _, _ := newWorkshopFixture(t, &fakeCollaborator{})

	res, err := svc.GetVocabulary(context.Background())
	require.NoError(t, err)

	assert.Len(t, res.BodyWoods, len(guitar.BodyWoods()))
	assert.Len(t, res.NeckProfiles, len(guitar.NeckProfiles()))
	assert.Len(t, res.Fretboards, len(guitar.FretboardMaterials()))
	assert.Len(t, res.Bridges, len(guitar.BridgeSystems()))
	assert.Len(t, res.Pickups, len(guitar.PickupConfigs()))
	assert.NotEmpty(t, res.Presets)
	for _, entry := range res.BodyWoods {
		assert.NotEmpty(t, entry.Description)
	}
}
