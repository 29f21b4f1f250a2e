package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"telegram-course-bot/internal/domain"
	"telegram-course-bot/internal/domain/ports/adapter"
)

var _ adapter.AIAdapter = (*GeminiAdapter)(nil)

// GeminiAdapter implements adapter.AIAdapter using the official SDK. System
// messages go through the generation config's system instruction since Gemini
// has no system role in history.
type GeminiAdapter struct {
	client      *genai.Client
	model       string
	temperature float64
}

func NewGeminiAdapter(ctx context.Context, apiKey, model string, temperature float64) (*GeminiAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: empty api key")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiAdapter{client: c, model: model, temperature: temperature}, nil
}

func (g *GeminiAdapter) CountTokens(ctx context.Context, messages []adapter.Message) (int, error) {
	contents := toContents(messages)
	resp, err := g.client.Models.CountTokens(ctx, g.model, contents, nil)
	if err != nil {
		return 0, err
	}
	return int(resp.TotalTokens), nil
}

func (g *GeminiAdapter) Chat(ctx context.Context, messages []adapter.Message) (string, error) {
	var system string
	rest := make([]adapter.Message, 0, len(messages))
	for _, m := range messages {
		if strings.EqualFold(m.Role, "system") {
			system = m.Content
			continue
		}
		rest = append(rest, m)
	}
	if len(rest) == 0 {
		return "", domain.ErrNoAnswer
	}

	temp := float32(g.temperature)
	cfg := &genai.GenerateContentConfig{Temperature: &temp}
	if system != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, toContents(rest), cfg)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrNoAnswer, err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return "", domain.ErrNoAnswer
	}
	text := resp.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", domain.ErrNoAnswer
	}
	return text, nil
}

func toContents(msgs []adapter.Message) []*genai.Content {
	out := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		role := genai.RoleUser
		if strings.EqualFold(m.Role, "assistant") || strings.EqualFold(m.Role, "model") {
			role = genai.RoleModel
		}
		out = append(out, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}
	return out
}
