package openai

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

func TestGenerateContentEncodesRequest(t *testing.T) {
	var got chatRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Hello there  "}}]}`))
	}))
	defer srv.Close()

	m := NewModel(Config{APIKey: "sk-test", BaseURL: srv.URL + "/"})
	temp := float32(0.7)
	req := &model.LLMRequest{
		Contents: []*genai.Content{
			{Role: "user", Parts: []*genai.Part{genai.NewPartFromText("hi")}},
			{Role: "model", Parts: []*genai.Part{genai.NewPartFromText("hello")}},
			{Role: "user", Parts: []*genai.Part{{Text: "   "}}},
			{Role: "user", Parts: []*genai.Part{genai.NewPartFromText("rates?")}},
		},
		Config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{genai.NewPartFromText("be brief")}},
			MaxOutputTokens:   300,
			Temperature:       &temp,
		},
	}

	var text string
	for resp, err := range m.GenerateContent(context.Background(), req, false) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text = ResponseText(resp)
	}

	if text != "Hello there" {
		t.Fatalf("expected trimmed reply, got %q", text)
	}
	if auth != "Bearer sk-test" {
		t.Fatalf("expected bearer auth, got %q", auth)
	}
	if got.Model != defaultModel {
		t.Fatalf("expected default model, got %q", got.Model)
	}
	if got.MaxTokens != 300 {
		t.Fatalf("expected max_tokens 300, got %d", got.MaxTokens)
	}
	if got.Temperature == nil || math.Abs(*got.Temperature-0.7) > 1e-6 {
		t.Fatalf("expected temperature 0.7, got %v", got.Temperature)
	}

	wantRoles := []string{"system", "user", "assistant", "user"}
	if len(got.Messages) != len(wantRoles) {
		t.Fatalf("expected %d messages, got %d: %+v", len(wantRoles), len(got.Messages), got.Messages)
	}
	for i, role := range wantRoles {
		if got.Messages[i].Role != role {
			t.Fatalf("message %d: expected role %s, got %s", i, role, got.Messages[i].Role)
		}
	}
	if got.Messages[3].Content != "rates?" {
		t.Fatalf("expected last message to be the user turn, got %q", got.Messages[3].Content)
	}
}

func TestGenerateContentSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	m := NewModel(Config{APIKey: "nope", BaseURL: srv.URL})
	for _, err := range m.GenerateContent(context.Background(), &model.LLMRequest{}, false) {
		if err == nil {
			t.Fatal("expected error")
		}
	}
}

func TestGenerateContentEmptyCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"   "}}]}`))
	}))
	defer srv.Close()

	m := NewModel(Config{APIKey: "sk-test", BaseURL: srv.URL})
	req := &model.LLMRequest{Contents: []*genai.Content{{Role: "user", Parts: []*genai.Part{genai.NewPartFromText("hi")}}}}
	for resp, err := range m.GenerateContent(context.Background(), req, false) {
		if err != nil {
			t.Fatalf("expected empty completion without error, got %v", err)
		}
		if text := ResponseText(resp); text != "" {
			t.Fatalf("expected empty text, got %q", text)
		}
	}
}
