package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	"ai-luthier-be/internal/constant"
	"ai-luthier-be/internal/dto"
	"ai-luthier-be/internal/pkg/logger"
	"ai-luthier-be/internal/repository/memory"
	"ai-luthier-be/pkg/gemini"
	"ai-luthier-be/pkg/guitar"
	"ai-luthier-be/pkg/prompt"
	"ai-luthier-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// WorkshopCollaborator is the slice of the Gemini client the workshop needs.
type WorkshopCollaborator interface {
	AnalyzeGuitar(ctx context.Context, instruction string, image []byte, mimeType string) (*gemini.Analysis, error)
	GenerateText(ctx context.Context, instruction string, image []byte, mimeType string) (string, error)
	RenderImage(ctx context.Context, promptText string) (*gemini.RenderedImage, error)
}

type IWorkshopService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	GetSession(ctx context.Context, sessionId uuid.UUID) (*dto.GetSessionResponse, error)
	DeleteSession(ctx context.Context, sessionId uuid.UUID) error
	GetVocabulary(ctx context.Context) (*dto.GetVocabularyResponse, error)
	UpdateSpec(ctx context.Context, sessionId uuid.UUID, request *dto.UpdateSpecRequest) (*guitar.Specification, error)
	ApplyPreset(ctx context.Context, sessionId uuid.UUID, request *dto.ApplyPresetRequest) (*guitar.Specification, error)
	Analyze(ctx context.Context, sessionId uuid.UUID, image []byte, mimeType string) (*dto.AnalysisResultDTO, error)
	Generate(ctx context.Context, sessionId uuid.UUID) (*dto.GenerateResponse, error)
}

type workshopService struct {
	sessionRepo  *memory.SessionRepository
	collaborator WorkshopCollaborator
	publisher    IPublisherService
	logger       logger.ILogger

	// Kept last uploaded image per session for the synthesis call.
	uploadsMu sync.RWMutex
	uploads   map[uuid.UUID]*upload
}

type upload struct {
	bytes    []byte
	mimeType string
}

func NewWorkshopService(
	sessionRepo *memory.SessionRepository,
	collaborator WorkshopCollaborator,
	publisher IPublisherService,
	sysLogger logger.ILogger,
) IWorkshopService {
	return &workshopService{
		sessionRepo:  sessionRepo,
		collaborator: collaborator,
		publisher:    publisher,
		logger:       sysLogger,
		uploads:      make(map[uuid.UUID]*upload),
	}
}

func (ws *workshopService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	id := uuid.New()
	session := store.NewSession(id.String())
	session.AppendTranscript(store.TranscriptRoleAssistant, constant.AdvisorGreetingV1)
	ws.sessionRepo.Save(session)

	ws.logger.Info("WorkshopService", "Session created", map[string]interface{}{"session_id": id})
	return &dto.CreateSessionResponse{Id: id}, nil
}

func (ws *workshopService) getSession(sessionId uuid.UUID) (*store.Session, error) {
	session, found := ws.sessionRepo.Get(sessionId.String())
	if !found {
		return nil, fiber.NewError(fiber.StatusNotFound, "session not found or expired")
	}
	ws.sessionRepo.Touch(sessionId.String())
	return session, nil
}

func (ws *workshopService) GetSession(ctx context.Context, sessionId uuid.UUID) (*dto.GetSessionResponse, error) {
	session, err := ws.getSession(sessionId)
	if err != nil {
		return nil, err
	}

	res := &dto.GetSessionResponse{
		Id:         sessionId,
		Transcript: make([]dto.TranscriptEntryDTO, 0),
	}
	session.WithLock(func() {
		res.Specs = session.Specs.Clone()
		res.Analysis = toAnalysisDTO(session.Analysis)
	})
	for _, entry := range session.TranscriptCopy() {
		res.Transcript = append(res.Transcript, dto.TranscriptEntryDTO{Role: entry.Role, Text: entry.Text})
	}
	return res, nil
}

func (ws *workshopService) DeleteSession(ctx context.Context, sessionId uuid.UUID) error {
	ws.sessionRepo.Delete(sessionId.String())
	ws.uploadsMu.Lock()
	delete(ws.uploads, sessionId)
	ws.uploadsMu.Unlock()
	return nil
}

func (ws *workshopService) GetVocabulary(ctx context.Context) (*dto.GetVocabularyResponse, error) {
	res := &dto.GetVocabularyResponse{}
	for _, v := range guitar.BodyWoods() {
		desc, _ := v.Describe()
		res.BodyWoods = append(res.BodyWoods, dto.VocabularyEntry{Value: string(v), Description: desc})
	}
	for _, v := range guitar.NeckProfiles() {
		desc, _ := v.Describe()
		res.NeckProfiles = append(res.NeckProfiles, dto.VocabularyEntry{Value: string(v), Description: desc})
	}
	for _, v := range guitar.FretboardMaterials() {
		desc, _ := v.Describe()
		res.Fretboards = append(res.Fretboards, dto.VocabularyEntry{Value: string(v), Description: desc})
	}
	for _, v := range guitar.BridgeSystems() {
		desc, _ := v.Describe()
		res.Bridges = append(res.Bridges, dto.VocabularyEntry{Value: string(v), Description: desc})
	}
	for _, v := range guitar.PickupConfigs() {
		desc, _ := v.Describe()
		res.Pickups = append(res.Pickups, dto.VocabularyEntry{Value: string(v), Description: desc})
	}
	for _, p := range guitar.Presets() {
		res.Presets = append(res.Presets, dto.PresetDTO{Name: p.Name, Description: p.Description})
	}
	return res, nil
}

func (ws *workshopService) UpdateSpec(ctx context.Context, sessionId uuid.UUID, request *dto.UpdateSpecRequest) (*guitar.Specification, error) {
	session, err := ws.getSession(sessionId)
	if err != nil {
		return nil, err
	}

	var setErr error
	var snapshot *guitar.Specification
	session.WithLock(func() {
		setErr = session.Specs.Set(request.Field, request.Value)
		snapshot = session.Specs.Clone()
	})
	if setErr != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, setErr.Error())
	}
	return snapshot, nil
}

func (ws *workshopService) ApplyPreset(ctx context.Context, sessionId uuid.UUID, request *dto.ApplyPresetRequest) (*guitar.Specification, error) {
	session, err := ws.getSession(sessionId)
	if err != nil {
		return nil, err
	}

	var presetErr error
	var snapshot *guitar.Specification
	session.WithLock(func() {
		// Applied under the session lock: readers never observe a
		// half-applied preset.
		presetErr = session.Specs.ApplyPreset(request.Preset)
		snapshot = session.Specs.Clone()
	})
	if presetErr != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, presetErr.Error())
	}
	return snapshot, nil
}

func (ws *workshopService) Analyze(ctx context.Context, sessionId uuid.UUID, image []byte, mimeType string) (*dto.AnalysisResultDTO, error) {
	session, err := ws.getSession(sessionId)
	if err != nil {
		return nil, err
	}
	if len(image) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "an image file is required")
	}

	if !session.TryBeginAnalysis() {
		return nil, fiber.NewError(fiber.StatusConflict, "an analysis is already running for this session")
	}
	defer session.EndAnalysis()

	analysis, err := ws.collaborator.AnalyzeGuitar(ctx, constant.AnalyzeGuitarPromptV1, image, mimeType)
	if err != nil {
		// Prior analysis stays untouched; only this operation fails.
		ws.logger.Error("WorkshopService", "Analysis failed", map[string]interface{}{
			"session_id": sessionId, "error": err.Error(),
		})
		return nil, fiber.NewError(fiber.StatusBadGateway, "could not analyze the photo, please try again")
	}

	session.WithLock(func() {
		session.Analysis = analysis
	})
	// The upload only replaces the previous one after a successful analysis.
	ws.uploadsMu.Lock()
	ws.uploads[sessionId] = &upload{bytes: image, mimeType: mimeType}
	ws.uploadsMu.Unlock()

	if ws.publisher != nil {
		ws.publisher.PublishAnalysisCompleted(ctx, sessionId.String(), analysis.DetectedSpecs.Philosophy)
	}

	return toAnalysisDTO(analysis), nil
}

func (ws *workshopService) Generate(ctx context.Context, sessionId uuid.UUID) (*dto.GenerateResponse, error) {
	session, err := ws.getSession(sessionId)
	if err != nil {
		return nil, err
	}

	if !session.TryBeginGeneration() {
		return nil, fiber.NewError(fiber.StatusConflict, "a generation is already running for this session")
	}
	defer session.EndGeneration()

	var specs *guitar.Specification
	var philosophy string
	session.WithLock(func() {
		specs = session.Specs.Clone()
		if session.Analysis != nil {
			philosophy = session.Analysis.DetectedSpecs.Philosophy
		}
	})
	if philosophy == "" {
		philosophy = specs.Philosophy
	}

	ws.uploadsMu.RLock()
	up, hasUpload := ws.uploads[sessionId]
	ws.uploadsMu.RUnlock()
	if !hasUpload {
		return nil, fiber.NewError(fiber.StatusBadRequest, "upload and analyze a photo before generating")
	}

	instruction := prompt.NewSynthesisBuilder(specs, philosophy).Build()

	technicalPrompt, err := ws.collaborator.GenerateText(ctx, instruction, up.bytes, up.mimeType)
	if err != nil {
		ws.logger.Error("WorkshopService", "Prompt synthesis failed", map[string]interface{}{
			"session_id": sessionId, "error": err.Error(),
		})
		// No prompt, no render: the pipeline aborts here.
		return nil, fiber.NewError(fiber.StatusBadGateway, "could not compose the build description, please try again")
	}

	rendered, err := ws.collaborator.RenderImage(ctx, technicalPrompt)
	if err != nil {
		ws.logger.Error("WorkshopService", "Render failed", map[string]interface{}{
			"session_id": sessionId, "error": err.Error(),
		})
		return nil, fiber.NewError(fiber.StatusBadGateway, "could not render the modified guitar, please try again")
	}

	session.WithLock(func() {
		session.LastRender = &store.RenderResult{
			Prompt:   technicalPrompt,
			Image:    rendered.Bytes,
			MimeType: rendered.MimeType,
		}
	})

	if ws.publisher != nil {
		ws.publisher.PublishRenderCompleted(ctx, sessionId.String(), rendered.MimeType, len(rendered.Bytes))
	}

	encoded := base64.StdEncoding.EncodeToString(rendered.Bytes)
	return &dto.GenerateResponse{
		Prompt:      technicalPrompt,
		MimeType:    rendered.MimeType,
		ImageBase64: encoded,
		DataURI:     fmt.Sprintf("data:%s;base64,%s", rendered.MimeType, encoded),
	}, nil
}

func toAnalysisDTO(analysis *gemini.Analysis) *dto.AnalysisResultDTO {
	if analysis == nil {
		return nil
	}
	return &dto.AnalysisResultDTO{
		DetectedSpecs: &dto.DetectedSpecsDTO{
			BodyWood:     analysis.DetectedSpecs.BodyWood,
			NeckProfile:  analysis.DetectedSpecs.NeckProfile,
			Fretboard:    analysis.DetectedSpecs.Fretboard,
			Bridge:       analysis.DetectedSpecs.Bridge,
			Pickups:      analysis.DetectedSpecs.Pickups,
			ScaleLength:  analysis.DetectedSpecs.ScaleLength,
			Construction: analysis.DetectedSpecs.Construction,
			Philosophy:   analysis.DetectedSpecs.Philosophy,
		},
		LuthierNotes: analysis.LuthierNotes,
	}
}
