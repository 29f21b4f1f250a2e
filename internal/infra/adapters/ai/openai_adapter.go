package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pkoukk/tiktoken-go"

	"telegram-course-bot/internal/domain"
	"telegram-course-bot/internal/domain/ports/adapter"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.AIAdapter = (*OpenAIAdapter)(nil)

// OpenAIAdapter implements adapter.AIAdapter using the Chat Completions API.
// The base URL is configurable so OpenAI-compatible gateways work unchanged.
type OpenAIAdapter struct {
	apiKey      string
	base        string // e.g., https://api.openai.com/v1
	model       string
	temperature float64
	client      *http.Client

	encOnce sync.Once
	enc     *tiktoken.Tiktoken
}

func NewOpenAIAdapter(apiKey, base, model string, temperature float64) (*OpenAIAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key empty")
	}
	if base == "" {
		base = "https://api.openai.com/v1"
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIAdapter{
		apiKey:      apiKey,
		base:        strings.TrimRight(base, "/"),
		model:       model,
		temperature: temperature,
		client:      &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// CountTokens counts prompt tokens with tiktoken; the encoding is resolved
// once, falling back to cl100k_base for models tiktoken doesn't know.
func (o *OpenAIAdapter) CountTokens(_ context.Context, messages []adapter.Message) (int, error) {
	var initErr error
	o.encOnce.Do(func() {
		enc, err := tiktoken.EncodingForModel(o.model)
		if err != nil {
			enc, err = tiktoken.GetEncoding("cl100k_base")
		}
		o.enc, initErr = enc, err
	})
	if o.enc == nil {
		return 0, initErr
	}
	total := 0
	for _, m := range messages {
		total += len(o.enc.Encode(m.Content, nil, nil))
	}
	return total, nil
}

func (o *OpenAIAdapter) Chat(ctx context.Context, messages []adapter.Message) (string, error) {
	reqBody := struct {
		Model       string            `json:"model"`
		Temperature float64           `json:"temperature"`
		Messages    []adapter.Message `json:"messages"`
	}{Model: o.model, Temperature: o.temperature, Messages: messages}

	b, _ := json.Marshal(reqBody)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.base+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrNoAnswer, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: openai http %d", domain.ErrNoAnswer, resp.StatusCode)
	}

	var payload struct {
		Choices []struct {
			Message adapter.Message `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrNoAnswer, err)
	}
	for _, c := range payload.Choices {
		if c.Message.Content != "" {
			return c.Message.Content, nil
		}
	}
	return "", domain.ErrNoAnswer
}
