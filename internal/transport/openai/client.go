// Package openai adapts the OpenAI-compatible API to the assistant's chat and speech contracts.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/medspace/internal/domain"
	"github.com/kailas-cloud/medspace/internal/metrics"
)

const maxAudioBytes = 32 << 20

// Client implements domain.ChatCompleter and domain.Speaker.
type Client struct {
	client      *openai.Client
	model       string
	ttsModel    openai.SpeechModel
	temperature float32
	maxTokens   int
	user        string
	logger      *zap.Logger
}

// Config holds the provider settings.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	TTSModel    string
	Temperature float32
	MaxTokens   int
	User        string
	Logger      *zap.Logger
}

// New creates an OpenAI-compatible client.
func New(cfg *Config) *Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Client{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		ttsModel:    openai.SpeechModel(cfg.TTSModel),
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		user:        cfg.User,
		logger:      cfg.Logger,
	}
}

// Complete implements domain.ChatCompleter.
func (c *Client) Complete(ctx context.Context, messages []domain.ChatMessage) (domain.Completion, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		User:        c.user,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues("chat", c.model, "error").Inc()
		return domain.Completion{}, parseAPIError("chat", err)
	}
	if len(resp.Choices) == 0 {
		metrics.AssistantRequestsTotal.WithLabelValues("chat", c.model, "error").Inc()
		return domain.Completion{}, fmt.Errorf("empty chat response: %w", domain.ErrAssistantProviderError)
	}

	metrics.AssistantRequestsTotal.WithLabelValues("chat", c.model, "success").Inc()
	metrics.AssistantRequestDuration.WithLabelValues("chat", c.model).Observe(duration.Seconds())
	if resp.Usage.TotalTokens > 0 {
		metrics.AssistantTokensTotal.WithLabelValues(c.model, "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.AssistantTokensTotal.WithLabelValues(c.model, "completion").Add(float64(resp.Usage.CompletionTokens))
	}

	return domain.Completion{
		Text:             resp.Choices[0].Message.Content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}, nil
}

// Speak implements domain.Speaker. Returns mp3 bytes.
func (c *Client) Speak(ctx context.Context, text, voice string) ([]byte, error) {
	model := string(c.ttsModel)

	start := time.Now()
	resp, err := c.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          c.ttsModel,
		Input:          text,
		Voice:          openai.SpeechVoice(voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues("speech", model, "error").Inc()
		return nil, parseAPIError("speech", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(io.LimitReader(resp, maxAudioBytes))
	if err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues("speech", model, "error").Inc()
		return nil, fmt.Errorf("read speech body: %w: %w", domain.ErrAssistantProviderError, err)
	}

	metrics.AssistantRequestsTotal.WithLabelValues("speech", model, "success").Inc()
	metrics.AssistantRequestDuration.WithLabelValues("speech", model).Observe(time.Since(start).Seconds())

	c.logger.Debug("Speech synthesized",
		zap.String("model", model),
		zap.String("voice", voice),
		zap.Int("chars", len(text)),
		zap.Int("bytes", len(audio)),
	)
	return audio, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (c *Client) HealthCheck(ctx context.Context) error {
	if _, err := c.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrAssistantProviderError for 502 mapping.
func parseAPIError(op string, err error) error {
	wrap := domain.ErrAssistantProviderError

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if detail := extractDetail(reqErr.Body); detail != "" {
			return fmt.Errorf("%s API error %d: %s: %w", op, reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("%s API error %d: %s: %w", op, reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s API error %d: %s: %w", op, apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s request: %w: %w", op, wrap, err)
	}
	return fmt.Errorf("%s request failed: %w", op, wrap)
}

// extractDetail reads the "detail" field some compatible providers use for errors.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
