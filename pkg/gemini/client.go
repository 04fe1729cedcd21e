package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type GeminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type GeminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *GeminiInlineData `json:"inlineData,omitempty"`
}

type GeminiContent struct {
	Parts []*GeminiPart `json:"parts"`
	Role  string        `json:"role,omitempty"`
}

type GeminiGenerationConfig struct {
	ResponseModalities []string           `json:"responseModalities,omitempty"`
	ImageConfig        *GeminiImageConfig `json:"imageConfig,omitempty"`
}

type GeminiImageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
}

type GeminiRequest struct {
	Contents          []*GeminiContent        `json:"contents"`
	SystemInstruction *GeminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *GeminiGenerationConfig `json:"generationConfig,omitempty"`
}

type GeminiCandidate struct {
	Content *GeminiContent `json:"content"`
}

type GeminiResponse struct {
	Candidates []*GeminiCandidate `json:"candidates"`
}

// ChatMessage is one turn of an advisory conversation.
type ChatMessage struct {
	Chat string
	Role string
}

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"
)

// DetectedSpecs is the best-effort partial specification extracted from a
// photograph. Every field is optional; empty means the model could not judge.
type DetectedSpecs struct {
	BodyWood     string `json:"body_wood,omitempty"`
	NeckProfile  string `json:"neck_profile,omitempty"`
	Fretboard    string `json:"fretboard,omitempty"`
	Bridge       string `json:"bridge,omitempty"`
	Pickups      string `json:"pickups,omitempty"`
	ScaleLength  string `json:"scale_length,omitempty"`
	Construction string `json:"construction,omitempty"`
	Philosophy   string `json:"philosophy,omitempty"`
}

// Analysis is the structured result of one photo analysis call.
type Analysis struct {
	DetectedSpecs DetectedSpecs `json:"detected_specs"`
	LuthierNotes  string        `json:"luthier_notes"`
}

// RenderedImage is the output of one image synthesis call.
type RenderedImage struct {
	Bytes    []byte
	MimeType string
}

// Client talks to the Gemini API over plain HTTP. It performs no retries:
// every failure is terminal for that one call and surfaced to the caller.
type Client struct {
	apiKey     string
	baseURL    string
	textModel  string
	imageModel string
	// Output geometry is fixed and not user-exposed.
	aspectRatio string
	httpClient  *http.Client
}

// NewClient builds a Gemini client. A missing API key is a hard construction
// failure; no network call is ever attempted without one.
func NewClient(apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("missing GOOGLE_GEMINI_API_KEY")
	}
	return &Client{
		apiKey:      apiKey,
		baseURL:     defaultBaseURL,
		textModel:   "gemini-2.5-flash",
		imageModel:  "gemini-2.5-flash-image",
		aspectRatio: "1:1",
		httpClient:  &http.Client{Timeout: 120 * time.Second},
	}, nil
}

func (c *Client) generate(ctx context.Context, model string, payload *GeminiRequest) (*GeminiResponse, error) {
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var geminiRes GeminiResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return nil, err
	}
	return &geminiRes, nil
}

func firstText(res *GeminiResponse) (string, error) {
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "", errors.New("empty response, no candidates returned")
	}
	for _, part := range res.Candidates[0].Content.Parts {
		if part.Text != "" {
			return part.Text, nil
		}
	}
	return "", errors.New("empty response, no text part returned")
}

// trimMarkdownFence strips the ```json wrapper some responses arrive in.
func trimMarkdownFence(text string) []byte {
	b := bytes.TrimSpace([]byte(text))
	b = bytes.TrimPrefix(b, []byte("```json"))
	b = bytes.TrimPrefix(b, []byte("```"))
	b = bytes.TrimSuffix(b, []byte("```"))
	return bytes.TrimSpace(b)
}

// AnalyzeGuitar sends one photograph with the fixed appraisal instruction and
// decodes the structured result. Unparseable JSON is a hard failure.
func (c *Client) AnalyzeGuitar(ctx context.Context, instruction string, image []byte, mimeType string) (*Analysis, error) {
	if len(image) == 0 {
		return nil, errors.New("image bytes required")
	}

	payload := &GeminiRequest{
		Contents: []*GeminiContent{
			{
				Role: ChatMessageRoleUser,
				Parts: []*GeminiPart{
					{Text: instruction},
					{InlineData: &GeminiInlineData{
						MimeType: mimeType,
						Data:     base64.StdEncoding.EncodeToString(image),
					}},
				},
			},
		},
	}

	res, err := c.generate(ctx, c.textModel, payload)
	if err != nil {
		return nil, err
	}

	text, err := firstText(res)
	if err != nil {
		return nil, err
	}

	var analysis Analysis
	if err := json.Unmarshal(trimMarkdownFence(text), &analysis); err != nil {
		return nil, fmt.Errorf("malformed analysis response: %w", err)
	}
	return &analysis, nil
}

// GenerateText runs one plain-text generation, optionally grounded on an
// image. Used for technical prompt synthesis.
func (c *Client) GenerateText(ctx context.Context, instruction string, image []byte, mimeType string) (string, error) {
	parts := []*GeminiPart{{Text: instruction}}
	if len(image) > 0 {
		parts = append(parts, &GeminiPart{InlineData: &GeminiInlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(image),
		}})
	}

	payload := &GeminiRequest{
		Contents: []*GeminiContent{{Role: ChatMessageRoleUser, Parts: parts}},
	}

	res, err := c.generate(ctx, c.textModel, payload)
	if err != nil {
		return "", err
	}
	return firstText(res)
}

// RenderImage asks the image model for one render of the prompt. A nominally
// successful response with no inline image data is itself a failure; the
// caller must never treat it as success.
func (c *Client) RenderImage(ctx context.Context, promptText string) (*RenderedImage, error) {
	if strings.TrimSpace(promptText) == "" {
		return nil, errors.New("render prompt required")
	}

	payload := &GeminiRequest{
		Contents: []*GeminiContent{
			{Role: ChatMessageRoleUser, Parts: []*GeminiPart{{Text: promptText}}},
		},
		GenerationConfig: &GeminiGenerationConfig{
			ResponseModalities: []string{"IMAGE"},
			ImageConfig:        &GeminiImageConfig{AspectRatio: c.aspectRatio},
		},
	}

	res, err := c.generate(ctx, c.imageModel, payload)
	if err != nil {
		return nil, err
	}

	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return nil, errors.New("no image returned")
	}
	for _, part := range res.Candidates[0].Content.Parts {
		if part.InlineData == nil || part.InlineData.Data == "" {
			continue
		}
		raw, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
		if err != nil || len(raw) == 0 {
			return nil, fmt.Errorf("decode image base64: %w", err)
		}
		mime := part.InlineData.MimeType
		if mime == "" {
			mime = "image/png"
		}
		return &RenderedImage{Bytes: raw, MimeType: mime}, nil
	}
	return nil, errors.New("response contained no inline image data")
}
