package application

import (
	"context"

	"telegram-course-bot/internal/domain/model"
	"telegram-course-bot/internal/infra/logging"
)

// Shown before any language is stored, so it stays in English on purpose.
const chooseLanguagePrompt = "🌍 Please choose a language:"

func (r *Router) handleStart(ctx context.Context, chatID int64) {
	_ = r.bot.SendButtons(ctx, chatID, chooseLanguagePrompt, languageMenu())
}

// handleLanguageSelect persists the picked language and completes the
// round-trip with the main menu in that language.
func (r *Router) handleLanguageSelect(ctx context.Context, chatID int64, lang model.Language) {
	if err := r.langs.SetLanguage(ctx, chatID, lang); err != nil {
		logging.With(ctx, r.log).Error().Err(err).Msg("persist language failed")
	}
	_ = r.bot.SendButtons(ctx, chatID, r.texts.T(lang, "welcome"), r.mainMenu(lang))
}

// handleMenuAction maps an action to its outbound message. ENROLL and
// CHANGE_LANG are the only ones with side effects: ENROLL resets the lead
// form, CHANGE_LANG re-sends the language keyboard (the stored language only
// changes when a LANG_ callback comes back).
func (r *Router) handleMenuAction(ctx context.Context, chatID int64, action model.Action) {
	lang := r.language(ctx, chatID)

	switch action {
	case model.ActionMain:
		_ = r.bot.SendButtons(ctx, chatID, r.texts.T(lang, "welcome"), r.mainMenu(lang))

	case model.ActionKids:
		_ = r.bot.SendButtons(ctx, chatID, r.texts.T(lang, "kids_intro"), r.kidsMenu(lang))

	case model.ActionStudents:
		_ = r.bot.SendButtons(ctx, chatID, r.texts.T(lang, "students_intro"), r.studentsMenu(lang))

	case model.ActionTeachers:
		_ = r.bot.SendButtons(ctx, chatID, r.texts.T(lang, "teachers"), r.mainMenu(lang))

	case model.ActionKidsInfo:
		_ = r.bot.SendMessage(ctx, chatID, r.texts.T(lang, "kids_info"))

	case model.ActionA1B2:
		_ = r.bot.SendMessage(ctx, chatID, r.texts.T(lang, "general_english"))

	case model.ActionExams:
		_ = r.bot.SendMessage(ctx, chatID, r.texts.T(lang, "exam_prep"))

	case model.ActionPrices:
		_ = r.bot.SendMessage(ctx, chatID, r.texts.T(lang, "prices"))

	case model.ActionSchedule:
		_ = r.bot.SendMessage(ctx, chatID, r.texts.T(lang, "schedule"))

	case model.ActionEnroll:
		if err := r.leads.StartLead(ctx, chatID); err != nil {
			logging.With(ctx, r.log).Error().Err(err).Msg("start lead failed")
		}
		_ = r.bot.SendMessage(ctx, chatID, r.texts.T(lang, "ask_name"))

	case model.ActionChangeLang:
		_ = r.bot.SendButtons(ctx, chatID, chooseLanguagePrompt, languageMenu())

	default:
		_ = r.bot.SendMessage(ctx, chatID, r.texts.T(lang, "fallback"))
	}
}
