// Redis-backed state is an opt-in extension (state.backend: redis). The
// baseline contract is ephemeral in-memory state; this backend trades that
// for survival across restarts when running more than one replica.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"telegram-course-bot/internal/domain/model"
	"telegram-course-bot/internal/domain/ports/repository"
)

var (
	_ repository.LanguageRepository = (*LanguageRepo)(nil)
	_ repository.LeadRepository     = (*LeadRepo)(nil)
	_ repository.DedupRepository    = (*DedupRepo)(nil)
)

// LanguageRepo stores each chat's language under lang:<chat>.
type LanguageRepo struct {
	client RedisClient
}

func NewLanguageRepo(client RedisClient) *LanguageRepo {
	return &LanguageRepo{client: client}
}

func (r *LanguageRepo) key(chatID int64) string {
	return fmt.Sprintf("lang:%d", chatID)
}

func (r *LanguageRepo) SetLanguage(ctx context.Context, chatID int64, lang model.Language) error {
	return r.client.Set(ctx, r.key(chatID), string(lang), 0)
}

func (r *LanguageRepo) Language(ctx context.Context, chatID int64) (model.Language, error) {
	raw, err := r.client.Get(ctx, r.key(chatID))
	if errors.Is(err, Nil) {
		return model.DefaultLanguage, nil
	}
	if err != nil {
		return model.DefaultLanguage, err
	}
	if lang, ok := model.ParseLanguage(raw); ok {
		return lang, nil
	}
	return model.DefaultLanguage, nil
}

// LeadRepo stores in-progress forms as JSON under lead:<chat>. No TTL: a
// stalled form stays open indefinitely, same as the in-memory backend.
type LeadRepo struct {
	client RedisClient
}

func NewLeadRepo(client RedisClient) *LeadRepo {
	return &LeadRepo{client: client}
}

func (r *LeadRepo) key(chatID int64) string {
	return fmt.Sprintf("lead:%d", chatID)
}

func (r *LeadRepo) StartLead(ctx context.Context, chatID int64) error {
	return r.UpdateLead(ctx, chatID, model.NewLeadState())
}

func (r *LeadRepo) Lead(ctx context.Context, chatID int64) (*model.LeadState, error) {
	raw, err := r.client.Get(ctx, r.key(chatID))
	if errors.Is(err, Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var state model.LeadState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("decode lead state: %w", err)
	}
	return &state, nil
}

func (r *LeadRepo) UpdateLead(ctx context.Context, chatID int64, state *model.LeadState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(chatID), data, 0)
}

func (r *LeadRepo) ClearLead(ctx context.Context, chatID int64) error {
	return r.client.Del(ctx, r.key(chatID))
}

// DedupRepo keeps processed update ids in one set, wiped wholesale once it
// grows past repository.DedupBound.
type DedupRepo struct {
	client RedisClient
	setKey string
}

func NewDedupRepo(client RedisClient) *DedupRepo {
	return &DedupRepo{client: client, setKey: "updates:seen"}
}

func (r *DedupRepo) Seen(ctx context.Context, updateID int) (bool, error) {
	return r.client.SIsMember(ctx, r.setKey, updateID)
}

func (r *DedupRepo) MarkProcessed(ctx context.Context, updateID int) error {
	if err := r.client.SAdd(ctx, r.setKey, updateID); err != nil {
		return err
	}
	size, err := r.client.SCard(ctx, r.setKey)
	if err != nil {
		return err
	}
	if size > repository.DedupBound {
		return r.client.Del(ctx, r.setKey)
	}
	return nil
}
