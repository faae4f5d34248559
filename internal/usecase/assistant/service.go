package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/kailas-cloud/medspace/internal/domain"
	"github.com/kailas-cloud/medspace/internal/domain/search/request"
	"github.com/kailas-cloud/medspace/internal/domain/search/result"
	"github.com/kailas-cloud/medspace/internal/metrics"
)

// MaxSpeechChars caps the text sent to the speech provider.
const MaxSpeechChars = 4096

// DefaultSystemPrompt is used when no persona is configured.
const DefaultSystemPrompt = "You are a clinical content assistant for a medical education library. " +
	"Answer concisely and point the user to the most relevant items from the library. " +
	"Do not invent items that are not listed."

// Answer is the assistant's reply together with the items it was grounded on.
type Answer struct {
	Query      string
	Text       string
	Results    []result.Scored
	TotalFound int
	TotalItems int
	Tokens     int
}

// Config holds assistant settings.
type Config struct {
	Model        string
	SystemPrompt string
	Voice        string
	Limit        int
}

// Service answers questions over the ranked catalog.
type Service struct {
	search  Searcher
	chat    domain.ChatCompleter
	speaker domain.Speaker
	budget  BudgetChecker
	cfg     Config
	logger  *zap.Logger
}

// New creates an assistant service. budget can be nil (unlimited).
func New(
	search Searcher, chat domain.ChatCompleter, speaker domain.Speaker,
	budget BudgetChecker, cfg Config, logger *zap.Logger,
) *Service {
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = DefaultSystemPrompt
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 5
	}
	return &Service{search: search, chat: chat, speaker: speaker, budget: budget, cfg: cfg, logger: logger}
}

// Ask ranks the catalog for query and asks the chat provider to answer using the top items.
func (s *Service) Ask(ctx context.Context, query string) (Answer, error) {
	req, err := request.New(query, s.cfg.Limit)
	if err != nil {
		return Answer{}, fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
	}

	found, err := s.search.Search(ctx, req)
	if err != nil {
		return Answer{}, fmt.Errorf("search: %w", err)
	}

	if s.budget != nil {
		if err := s.budget.Check(ctx); err != nil {
			s.logger.Error("Assistant budget exceeded", zap.String("model", s.cfg.Model), zap.Error(err))
			return Answer{}, fmt.Errorf("budget check: %w", err)
		}
	}

	messages := []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: BuildSystemPrompt(s.cfg.SystemPrompt, found.Results)},
		{Role: domain.RoleUser, Content: req.Query()},
	}

	start := time.Now()
	completion, err := s.chat.Complete(ctx, messages)
	duration := time.Since(start)
	if err != nil {
		s.logger.Error("Chat completion failed",
			zap.String("model", s.cfg.Model),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return Answer{}, fmt.Errorf("complete: %w", err)
	}

	s.recordUsage(ctx, completion.TotalTokens)

	s.logger.Debug("Chat completion done",
		zap.String("model", s.cfg.Model),
		zap.Duration("duration", duration),
		zap.Int("context_items", len(found.Results)),
		zap.Int("prompt_tokens", completion.PromptTokens),
		zap.Int("completion_tokens", completion.CompletionTokens),
	)

	return Answer{
		Query:      found.Query,
		Text:       completion.Text,
		Results:    found.Results,
		TotalFound: found.TotalFound,
		TotalItems: found.TotalItems,
		Tokens:     completion.TotalTokens,
	}, nil
}

func (s *Service) recordUsage(ctx context.Context, tokens int) {
	domain.UsageFromContext(ctx).AddTokens(tokens)
	if s.budget == nil || tokens <= 0 {
		return
	}
	s.budget.Record(int64(tokens))
	remaining := metrics.AssistantBudgetTokensRemaining
	remaining.WithLabelValues("daily").Set(float64(s.budget.RemainingDaily()))
	remaining.WithLabelValues("monthly").Set(float64(s.budget.RemainingMonthly()))
}

// Speak synthesizes text into mp3 audio. An empty voice means the configured default.
func (s *Service) Speak(ctx context.Context, text, voice string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", domain.ErrInvalidQuery)
	}
	if s.speaker == nil {
		return nil, errors.New("speech is not configured")
	}
	if voice == "" {
		voice = s.cfg.Voice
	}

	audio, err := s.speaker.Speak(ctx, truncateRunes(text, MaxSpeechChars), voice)
	if err != nil {
		return nil, fmt.Errorf("speak: %w", err)
	}
	return audio, nil
}

// BuildSystemPrompt appends a numbered list of the relevant items to the persona.
func BuildSystemPrompt(persona string, items []result.Scored) string {
	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n\n")

	if len(items) == 0 {
		b.WriteString("No items in the library matched this question. Say so and answer from general knowledge, briefly.")
		return b.String()
	}

	b.WriteString("Relevant items from the library:\n")
	for i, r := range items {
		it := r.Item()
		fmt.Fprintf(&b, "%d. %s [%s]", i+1, it.Title(), it.Kind())
		if it.HasSpecialty() {
			fmt.Fprintf(&b, " (%s)", it.Specialty())
		}
		if d := it.Description(); d != "" {
			fmt.Fprintf(&b, ": %s", d)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
