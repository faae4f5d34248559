package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/medspace/internal/domain"
	"github.com/kailas-cloud/medspace/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterDomainMetrics()
	os.Exit(m.Run())
}

func newTestClient(url string) *Client {
	return New(&Config{
		APIKey:   "test-key",
		BaseURL:  url,
		Model:    "gpt-4o-mini",
		TTSModel: "tts-1",
		Logger:   zap.NewNop(),
	})
}

func TestClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "gpt-4o-mini" {
			t.Errorf("model = %q", req.Model)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Content != "ecmo" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "See item 1."}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 80, "completion_tokens": 12, "total_tokens": 92}
		}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	got, err := c.Complete(context.Background(), []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: "persona"},
		{Role: domain.RoleUser, Content: "ecmo"},
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got.Text != "See item 1." {
		t.Errorf("Text = %q", got.Text)
	}
	if got.PromptTokens != 80 || got.CompletionTokens != 12 || got.TotalTokens != 92 {
		t.Errorf("unexpected usage: %+v", got)
	}
}

func TestClient_Complete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "x", "choices": [], "usage": {}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Complete(context.Background(), []domain.ChatMessage{{Role: "user", Content: "hi"}})
	if !errors.Is(err, domain.ErrAssistantProviderError) {
		t.Fatalf("expected ErrAssistantProviderError, got %v", err)
	}
}

func TestClient_Complete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "Rate limit reached", "type": "requests"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Complete(context.Background(), []domain.ChatMessage{{Role: "user", Content: "hi"}})
	if !errors.Is(err, domain.ErrAssistantProviderError) {
		t.Fatalf("expected ErrAssistantProviderError, got %v", err)
	}
	if !strings.Contains(err.Error(), "Rate limit reached") {
		t.Errorf("error should carry provider message: %v", err)
	}
}

func TestClient_Speak(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/speech" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req struct {
			Model          string `json:"model"`
			Input          string `json:"input"`
			Voice          string `json:"voice"`
			ResponseFormat string `json:"response_format"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "tts-1" || req.Voice != "nova" || req.Input != "Hello" || req.ResponseFormat != "mp3" {
			t.Errorf("unexpected request: %+v", req)
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3fake-mp3"))
	}))
	defer server.Close()

	audio, err := newTestClient(server.URL).Speak(context.Background(), "Hello", "nova")
	if err != nil {
		t.Fatalf("Speak failed: %v", err)
	}
	if string(audio) != "ID3fake-mp3" {
		t.Errorf("audio = %q", audio)
	}
}

func TestClient_Speak_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"message": "invalid voice"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Speak(context.Background(), "Hello", "robot")
	if !errors.Is(err, domain.ErrAssistantProviderError) {
		t.Fatalf("expected ErrAssistantProviderError, got %v", err)
	}
}

func TestClient_HealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object": "list", "data": []}`))
	}))
	defer server.Close()

	if err := newTestClient(server.URL).HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck failed: %v", err)
	}
}

func TestParseAPIError_Detail(t *testing.T) {
	if got := extractDetail([]byte(`{"detail": "model not found"}`)); got != "model not found" {
		t.Errorf("extractDetail = %q", got)
	}
	if got := extractDetail([]byte(`not json`)); got != "" {
		t.Errorf("extractDetail = %q, want empty", got)
	}

	err := parseAPIError("chat", errors.New("dial tcp: refused"))
	if !errors.Is(err, domain.ErrAssistantProviderError) {
		t.Fatalf("expected ErrAssistantProviderError, got %v", err)
	}
}
