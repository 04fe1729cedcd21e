package dto

import (
	"time"

	"github.com/google/uuid"

	"ai-luthier-be/pkg/guitar"
)

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type VocabularyEntry struct {
	Value       string `json:"value"`
	Description string `json:"description"`
}

type PresetDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type GetVocabularyResponse struct {
	BodyWoods    []VocabularyEntry `json:"body_woods"`
	NeckProfiles []VocabularyEntry `json:"neck_profiles"`
	Fretboards   []VocabularyEntry `json:"fretboards"`
	Bridges      []VocabularyEntry `json:"bridges"`
	Pickups      []VocabularyEntry `json:"pickups"`
	Presets      []PresetDTO       `json:"presets"`
}

type UpdateSpecRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

type ApplyPresetRequest struct {
	Preset string `json:"preset" validate:"required"`
}

// DetectedSpecsDTO mirrors the best-effort partial specification coming back
// from photo analysis. Every field is optional.
type DetectedSpecsDTO struct {
	BodyWood     string `json:"body_wood,omitempty"`
	NeckProfile  string `json:"neck_profile,omitempty"`
	Fretboard    string `json:"fretboard,omitempty"`
	Bridge       string `json:"bridge,omitempty"`
	Pickups      string `json:"pickups,omitempty"`
	ScaleLength  string `json:"scale_length,omitempty"`
	Construction string `json:"construction,omitempty"`
	Philosophy   string `json:"philosophy,omitempty"`
}

type AnalysisResultDTO struct {
	DetectedSpecs *DetectedSpecsDTO `json:"detected_specs,omitempty"`
	LuthierNotes  string            `json:"luthier_notes"`
}

type GetSessionResponse struct {
	Id         uuid.UUID             `json:"id"`
	Specs      *guitar.Specification `json:"specs"`
	Analysis   *AnalysisResultDTO    `json:"analysis,omitempty"`
	Transcript []TranscriptEntryDTO  `json:"transcript"`
}

type GenerateResponse struct {
	Prompt   string `json:"prompt"`
	MimeType string `json:"mime_type"`
	// Base64 payload plus its MIME type; DataURI combines the two for
	// direct display.
	ImageBase64 string `json:"image_base64"`
	DataURI     string `json:"data_uri"`
}

// WorkshopEventMessage is the payload carried on the internal event bus.
type WorkshopEventMessage struct {
	EventType string                 `json:"event_type"`
	SessionId string                 `json:"session_id"`
	Details   map[string]interface{} `json:"details,omitempty"`
	EmittedAt time.Time              `json:"emitted_at"`
}
