package gemini

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// StreamChat sends one conversation turn and streams the reply. Fragments are
// forwarded to onDelta strictly in arrival order; the accumulated full text
// is returned on clean completion. A mid-stream failure returns an error and
// whatever was forwarded so far must be discarded by the caller.
func (c *Client) StreamChat(ctx context.Context, systemInstruction string, history []*ChatMessage, onDelta func(delta string)) (string, error) {
	chatContents := make([]*GeminiContent, 0, len(history))
	for _, msg := range history {
		chatContents = append(chatContents, &GeminiContent{
			Parts: []*GeminiPart{{Text: msg.Chat}},
			Role:  msg.Role,
		})
	}
	if len(chatContents) == 0 {
		return "", errors.New("chat history required")
	}

	payload := &GeminiRequest{
		Contents: chatContents,
	}
	if strings.TrimSpace(systemInstruction) != "" {
		payload.SystemInstruction = &GeminiContent{
			Parts: []*GeminiPart{{Text: systemInstruction}},
		}
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse", c.baseURL, c.textModel)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(res.Body)
		return "", fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(raw),
		)
	}

	var full strings.Builder
	err = streamSSE(res.Body, func(data string) error {
		if strings.TrimSpace(data) == "" {
			return nil
		}

		var chunk GeminiResponse
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return fmt.Errorf("malformed stream chunk: %w", err)
		}
		if len(chunk.Candidates) == 0 || chunk.Candidates[0].Content == nil {
			return nil
		}
		for _, part := range chunk.Candidates[0].Content.Parts {
			if part.Text == "" {
				continue
			}
			full.WriteString(part.Text)
			if onDelta != nil {
				onDelta(part.Text)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return full.String(), nil
}

// streamSSE reads server-sent events and invokes onData once per event with
// the joined data payload.
func streamSSE(r io.Reader, onData func(data string) error) error {
	br := bufio.NewReader(r)
	var dataLines []string

	flush := func() error {
		if len(dataLines) == 0 {
			return nil
		}
		data := strings.Join(dataLines, "\n")
		dataLines = nil
		if onData == nil {
			return nil
		}
		return onData(data)
	}

	for {
		line, err := br.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return flush()
			}
			return err
		}
		line = strings.TrimRight(line, "\r\n")

		// Blank line ends the event.
		if line == "" {
			if err := flush(); err != nil {
				return err
			}
			continue
		}

		// Comment.
		if strings.HasPrefix(line, ":") {
			continue
		}

		if strings.HasPrefix(line, "data:") {
			dataLines = append(dataLines, strings.TrimSpace(strings.TrimPrefix(line, "data:")))
			continue
		}
	}
}
