package ai

import (
	"context"

	"telegram-course-bot/internal/domain"
	"telegram-course-bot/internal/domain/ports/adapter"
)

var _ adapter.AIAdapter = (*NoopAIAdapter)(nil)

// NoopAIAdapter is used in dev runs without an API key. Every question falls
// through to the localized fallback string.
type NoopAIAdapter struct{}

func NewNoopAIAdapter() *NoopAIAdapter { return &NoopAIAdapter{} }

func (n *NoopAIAdapter) CountTokens(_ context.Context, _ []adapter.Message) (int, error) {
	return 0, nil
}

func (n *NoopAIAdapter) Chat(_ context.Context, _ []adapter.Message) (string, error) {
	return "", domain.ErrNoAnswer
}
