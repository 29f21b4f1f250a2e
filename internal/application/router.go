// Package application holds the update router: the single dispatch point from
// an inbound update to outbound effects.
package application

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"telegram-course-bot/internal/domain/model"
	"telegram-course-bot/internal/domain/ports/adapter"
	"telegram-course-bot/internal/domain/ports/repository"
	"telegram-course-bot/internal/infra/i18n"
	"telegram-course-bot/internal/infra/logging"
	"telegram-course-bot/internal/infra/metrics"
)

// Router classifies updates and delegates to handlers. All send/AI errors end
// here: logged, counted, never propagated.
type Router struct {
	bot   adapter.TelegramBotAdapter
	ai    adapter.AIAdapter
	langs repository.LanguageRepository
	leads repository.LeadRepository
	dedup repository.DedupRepository
	texts *i18n.Bundle

	leadsChannelID int64
	aiProvider     string
	log            *zerolog.Logger
}

func NewRouter(
	bot adapter.TelegramBotAdapter,
	ai adapter.AIAdapter,
	langs repository.LanguageRepository,
	leads repository.LeadRepository,
	dedup repository.DedupRepository,
	texts *i18n.Bundle,
	leadsChannelID int64,
	aiProvider string,
	logger *zerolog.Logger,
) *Router {
	return &Router{
		bot:            bot,
		ai:             ai,
		langs:          langs,
		leads:          leads,
		dedup:          dedup,
		texts:          texts,
		leadsChannelID: leadsChannelID,
		aiProvider:     aiProvider,
		log:            logger,
	}
}

// HandleUpdate runs the dispatch algorithm. First match wins:
// duplicate → drop; edited → drop; callback → language select or menu action;
// text → /start, lead step, or AI fallback.
func (r *Router) HandleUpdate(ctx context.Context, up model.Update) {
	ctx = logging.WithUpdateID(ctx, up.ID)
	log := logging.With(ctx, r.log)

	seen, err := r.dedup.Seen(ctx, up.ID)
	if err != nil {
		log.Error().Err(err).Msg("dedup lookup failed")
	}
	if seen {
		metrics.IncUpdate("duplicate")
		return
	}
	if err := r.dedup.MarkProcessed(ctx, up.ID); err != nil {
		log.Error().Err(err).Msg("dedup mark failed")
	}

	if up.Edited {
		metrics.IncUpdate("edited")
		return
	}

	if cb := up.Callback; cb != nil {
		metrics.IncUpdate("callback")
		r.handleCallback(ctx, cb)
		return
	}

	if msg := up.Message; msg != nil && msg.Text != "" {
		metrics.IncUpdate("message")
		r.handleText(ctx, msg.ChatID, msg.Text)
		return
	}

	metrics.IncUpdate("other")
}

func (r *Router) handleCallback(ctx context.Context, cb *model.CallbackQuery) {
	// Stop the client's loading spinner. Fire-and-forget: a failed ack never
	// gates routing.
	if cb.ID != "" {
		_ = r.bot.AnswerCallback(ctx, cb.ID)
	}

	if cb.ChatID == 0 || cb.Data == "" {
		return
	}
	ctx = logging.WithChatID(ctx, cb.ChatID)

	if lang, ok := model.LanguageFromCallback(cb.Data); ok {
		r.handleLanguageSelect(ctx, cb.ChatID, lang)
		return
	}

	if action, ok := model.ParseAction(cb.Data); ok {
		r.handleMenuAction(ctx, cb.ChatID, action)
		return
	}

	// Payload outside the closed action set: localized fallback, never a crash.
	lang := r.language(ctx, cb.ChatID)
	_ = r.bot.SendMessage(ctx, cb.ChatID, r.texts.T(lang, "fallback"))
}

func (r *Router) handleText(ctx context.Context, chatID int64, text string) {
	ctx = logging.WithChatID(ctx, chatID)
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	// /start always resets to language choice, whatever came before.
	if text == "/start" {
		r.handleStart(ctx, chatID)
		return
	}

	if consumed := r.handleLeadInput(ctx, chatID, text); consumed {
		return
	}

	r.answerFreeText(ctx, chatID, text)
}

// answerFreeText forwards the question to the model and sends either its
// answer or the localized fallback string.
func (r *Router) answerFreeText(ctx context.Context, chatID int64, text string) {
	lang := r.language(ctx, chatID)
	messages := []adapter.Message{
		{Role: "system", Content: r.texts.T(lang, "system_prompt")},
		{Role: "user", Content: text},
	}

	if n, err := r.ai.CountTokens(ctx, messages); err == nil {
		metrics.ObservePromptTokens(n)
	}

	start := time.Now()
	answer, err := r.ai.Chat(ctx, messages)
	metrics.ObserveAICall(r.aiProvider, int(time.Since(start).Milliseconds()), err == nil)
	if err != nil || answer == "" {
		if err != nil {
			logging.With(ctx, r.log).Warn().Err(err).Msg("ai call failed, using fallback")
		}
		answer = r.texts.T(lang, "fallback")
	}
	_ = r.bot.SendMessage(ctx, chatID, answer)
}

func (r *Router) language(ctx context.Context, chatID int64) model.Language {
	lang, err := r.langs.Language(ctx, chatID)
	if err != nil {
		logging.With(ctx, r.log).Error().Err(err).Msg("language lookup failed")
		return model.DefaultLanguage
	}
	return lang
}
