package store

import (
	"sync"

	"ai-luthier-be/pkg/gemini"
	"ai-luthier-be/pkg/guitar"
)

const (
	TranscriptRoleUser      = "user"
	TranscriptRoleAssistant = "assistant"
)

// TranscriptEntry is one message of the advisory conversation. The last
// entry's text grows while a reply is streaming; entries are never reordered
// or deleted.
type TranscriptEntry struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// RenderResult is the outcome of the most recent generation pipeline.
type RenderResult struct {
	Prompt   string `json:"prompt"`
	Image    []byte `json:"-"`
	MimeType string `json:"mime_type"`
}

// Session is the active workshop state in memory. It owns the specification
// record, the latest analysis and the advisory transcript; everything dies
// with the session. The mutex also backs the per-operation guard flags that
// keep one analysis, one generation pipeline and one advisor send in flight
// at a time.
type Session struct {
	ID string `json:"id"`

	Specs      *guitar.Specification `json:"specs"`
	Analysis   *gemini.Analysis      `json:"analysis,omitempty"`
	Transcript []*TranscriptEntry    `json:"transcript"`
	LastRender *RenderResult         `json:"last_render,omitempty"`

	mu          sync.Mutex
	analyzing   bool
	generating  bool
	advisorBusy bool
}

// NewSession builds a session starting from the default specification.
func NewSession(id string) *Session {
	return &Session{
		ID:    id,
		Specs: guitar.DefaultSpecification(),
	}
}

// WithLock runs fn while holding the session mutex.
func (s *Session) WithLock(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// TryBeginAnalysis claims the single analysis slot. Returns false while a
// previous analysis is still running.
func (s *Session) TryBeginAnalysis() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.analyzing {
		return false
	}
	s.analyzing = true
	return true
}

func (s *Session) EndAnalysis() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyzing = false
}

// TryBeginGeneration claims the single prompt-then-render pipeline slot.
func (s *Session) TryBeginGeneration() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generating {
		return false
	}
	s.generating = true
	return true
}

func (s *Session) EndGeneration() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generating = false
}

// TryBeginAdvisorSend claims the single in-flight advisor send.
func (s *Session) TryBeginAdvisorSend() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.advisorBusy {
		return false
	}
	s.advisorBusy = true
	return true
}

func (s *Session) EndAdvisorSend() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advisorBusy = false
}

// AppendTranscript appends one finished entry.
func (s *Session) AppendTranscript(role, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Transcript = append(s.Transcript, &TranscriptEntry{Role: role, Text: text})
}

// GrowLastEntry extends the in-flight last entry with one streamed fragment.
func (s *Session) GrowLastEntry(delta string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Transcript) == 0 {
		return
	}
	s.Transcript[len(s.Transcript)-1].Text += delta
}

// ReplaceLastEntry overwrites the last entry's text wholesale. Used to swap a
// half-accumulated reply for the fixed interruption notice.
func (s *Session) ReplaceLastEntry(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Transcript) == 0 {
		return
	}
	s.Transcript[len(s.Transcript)-1].Text = text
}

// TranscriptCopy returns a snapshot safe to hand to encoders.
func (s *Session) TranscriptCopy() []*TranscriptEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*TranscriptEntry, len(s.Transcript))
	for i, e := range s.Transcript {
		cp := *e
		out[i] = &cp
	}
	return out
}
