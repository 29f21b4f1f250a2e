package repository

import (
	"context"

	"telegram-course-bot/internal/domain/model"
)

// LanguageRepository stores each chat's selected language. A language is
// never explicitly destroyed; chats without a selection read as the default.
type LanguageRepository interface {
	SetLanguage(ctx context.Context, chatID int64, lang model.Language) error
	// Language returns the stored language or model.DefaultLanguage when the
	// chat was never seen.
	Language(ctx context.Context, chatID int64) (model.Language, error)
}

// LeadRepository stores in-progress enrollment forms. Presence of a state
// means the chat is mid-form; absence means free navigation.
type LeadRepository interface {
	// StartLead resets the chat to step one with empty data, silently
	// discarding any prior in-progress form.
	StartLead(ctx context.Context, chatID int64) error
	// Lead returns the in-progress form, or (nil, nil) when absent.
	Lead(ctx context.Context, chatID int64) (*model.LeadState, error)
	// UpdateLead replaces the stored state wholesale.
	UpdateLead(ctx context.Context, chatID int64, state *model.LeadState) error
	ClearLead(ctx context.Context, chatID int64) error
}

// DedupRepository tracks recently processed update ids so redeliveries are
// dropped. The set is bounded crudely: once it exceeds DedupBound entries it
// is cleared entirely, not trimmed.
type DedupRepository interface {
	Seen(ctx context.Context, updateID int) (bool, error)
	MarkProcessed(ctx context.Context, updateID int) error
}

// DedupBound is the size after which the processed-update set is wiped.
const DedupBound = 5000
