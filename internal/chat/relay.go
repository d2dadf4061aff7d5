package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"homeloans_backend/platform/ai/openai"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

const (
	historyWindow    = 6
	relayMaxTokens   = 300
	relayTemperature = 0.7
)

// ErrEmptyReply is returned when the model answers with no text.
var ErrEmptyReply = errors.New("chat relay: empty reply")

// HistoryEntry is one prior turn supplied by the client.
type HistoryEntry struct {
	Role    string `json:"role" validate:"omitempty,oneof=user assistant"`
	Content string `json:"content"`
}

// Relay forwards free-form questions to the language model.
type Relay struct {
	llm          model.LLM
	systemPrompt string
	timeout      time.Duration
}

// NewRelay creates a relay. A zero timeout disables the per-call deadline.
func NewRelay(llm model.LLM, systemPrompt string, timeout time.Duration) *Relay {
	return &Relay{llm: llm, systemPrompt: systemPrompt, timeout: timeout}
}

// Send asks the model for a reply to message given the recent history.
func (r *Relay) Send(ctx context.Context, history []HistoryEntry, message string) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	temperature := float32(relayTemperature)
	req := &model.LLMRequest{
		Contents: buildContents(history, message),
		Config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{genai.NewPartFromText(r.systemPrompt)}},
			MaxOutputTokens:   relayMaxTokens,
			Temperature:       &temperature,
		},
	}

	var reply string
	for resp, err := range r.llm.GenerateContent(ctx, req, false) {
		if err != nil {
			return "", fmt.Errorf("chat relay: %w", err)
		}
		reply += openai.ResponseText(resp)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}

// boundedHistory keeps the last historyWindow entries, then drops entries
// missing a role or content.
func boundedHistory(history []HistoryEntry) []HistoryEntry {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	kept := make([]HistoryEntry, 0, len(history))
	for _, h := range history {
		if h.Role == "" || strings.TrimSpace(h.Content) == "" {
			continue
		}
		kept = append(kept, h)
	}
	return kept
}

func buildContents(history []HistoryEntry, message string) []*genai.Content {
	bounded := boundedHistory(history)
	contents := make([]*genai.Content, 0, len(bounded)+1)
	for _, h := range bounded {
		c := &genai.Content{Role: "user", Parts: []*genai.Part{genai.NewPartFromText(h.Content)}}
		if h.Role == "assistant" {
			c.Role = "model"
		}
		contents = append(contents, c)
	}
	return append(contents, &genai.Content{Role: "user", Parts: []*genai.Part{genai.NewPartFromText(message)}})
}
