package domain

import "context"

type chatUsageKey struct{}

// ChatUsage collects assistant token usage for a single HTTP request.
// The handler puts a mutable pointer into the context before calling the service;
// the service writes after the completion; the handler reads it for response headers.
type ChatUsage struct {
	TotalTokens int
	Used        bool
}

// NewContextWithUsage returns a context with a usage collector.
func NewContextWithUsage(ctx context.Context) (context.Context, *ChatUsage) {
	u := &ChatUsage{}
	return context.WithValue(ctx, chatUsageKey{}, u), u
}

// UsageFromContext extracts the usage collector from context. Returns nil if not set.
func UsageFromContext(ctx context.Context) *ChatUsage {
	u, _ := ctx.Value(chatUsageKey{}).(*ChatUsage)
	return u
}

// AddTokens records consumed tokens.
func (u *ChatUsage) AddTokens(n int) {
	if u != nil {
		u.TotalTokens += n
		u.Used = true
	}
}
