package application

import (
	"context"

	"github.com/oklog/ulid/v2"

	"telegram-course-bot/internal/domain/model"
	"telegram-course-bot/internal/infra/logging"
	"telegram-course-bot/internal/infra/metrics"
)

// handleLeadInput feeds text into the enrollment form when one is in
// progress. Returns false when no form exists so the router can fall through
// to the AI answer.
func (r *Router) handleLeadInput(ctx context.Context, chatID int64, text string) bool {
	log := logging.With(ctx, r.log)

	state, err := r.leads.Lead(ctx, chatID)
	if err != nil {
		log.Error().Err(err).Msg("lead lookup failed")
		return false
	}
	if state == nil {
		return false
	}

	lang := r.language(ctx, chatID)

	if done := state.Capture(text); !done {
		if err := r.leads.UpdateLead(ctx, chatID, state); err != nil {
			log.Error().Err(err).Msg("update lead failed")
		}
		_ = r.bot.SendMessage(ctx, chatID, r.texts.T(lang, promptForStep(state.Step)))
		return true
	}

	// Terminal transition: forward, clear, thank.
	leadID := ulid.Make().String()
	_ = r.bot.SendMessage(ctx, r.leadsChannelID, state.Summary())
	if err := r.leads.ClearLead(ctx, chatID); err != nil {
		log.Error().Err(err).Msg("clear lead failed")
	}
	_ = r.bot.SendButtons(ctx, chatID, r.texts.T(lang, "thanks"), r.mainMenu(lang))

	metrics.IncLead()
	log.Info().Str("lead_id", leadID).Str("course", state.Data.Course).Msg("lead captured")
	return true
}

func promptForStep(step model.LeadStep) string {
	switch step {
	case model.StepPhone:
		return "ask_phone"
	case model.StepCourse:
		return "ask_course"
	case model.StepAge:
		return "ask_age"
	default:
		return "ask_name"
	}
}
