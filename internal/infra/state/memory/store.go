// Package memory is the baseline state backend: three independent
// process-lifetime maps keyed by chat id. Everything here is ephemeral on
// purpose; a restart loses all of it.
package memory

import (
	"context"
	"sync"

	"telegram-course-bot/internal/domain/model"
	"telegram-course-bot/internal/domain/ports/repository"
)

var (
	_ repository.LanguageRepository = (*LanguageStore)(nil)
	_ repository.LeadRepository     = (*LeadStore)(nil)
	_ repository.DedupRepository    = (*DedupStore)(nil)
)

// LanguageStore maps chat id to selected language.
type LanguageStore struct {
	mu    sync.Mutex
	langs map[int64]model.Language
}

func NewLanguageStore() *LanguageStore {
	return &LanguageStore{langs: make(map[int64]model.Language)}
}

func (s *LanguageStore) SetLanguage(_ context.Context, chatID int64, lang model.Language) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.langs[chatID] = lang
	return nil
}

func (s *LanguageStore) Language(_ context.Context, chatID int64) (model.Language, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lang, ok := s.langs[chatID]; ok {
		return lang, nil
	}
	return model.DefaultLanguage, nil
}

// LeadStore maps chat id to an in-progress enrollment form.
type LeadStore struct {
	mu    sync.Mutex
	leads map[int64]model.LeadState
}

func NewLeadStore() *LeadStore {
	return &LeadStore{leads: make(map[int64]model.LeadState)}
}

func (s *LeadStore) StartLead(_ context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads[chatID] = *model.NewLeadState()
	return nil
}

func (s *LeadStore) Lead(_ context.Context, chatID int64) (*model.LeadState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.leads[chatID]
	if !ok {
		return nil, nil
	}
	copied := st
	return &copied, nil
}

func (s *LeadStore) UpdateLead(_ context.Context, chatID int64, state *model.LeadState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads[chatID] = *state
	return nil
}

func (s *LeadStore) ClearLead(_ context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.leads, chatID)
	return nil
}

// DedupStore remembers recently processed update ids. Once the set exceeds
// repository.DedupBound it is wiped entirely; a clear-all is crude but keeps
// memory flat without an eviction policy.
type DedupStore struct {
	mu   sync.Mutex
	seen map[int]struct{}
}

func NewDedupStore() *DedupStore {
	return &DedupStore{seen: make(map[int]struct{})}
}

func (s *DedupStore) Seen(_ context.Context, updateID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[updateID]
	return ok, nil
}

func (s *DedupStore) MarkProcessed(_ context.Context, updateID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[updateID] = struct{}{}
	if len(s.seen) > repository.DedupBound {
		s.seen = make(map[int]struct{})
	}
	return nil
}
