package application

import (
	"telegram-course-bot/internal/domain/model"
	"telegram-course-bot/internal/domain/ports/adapter"
)

// The language menu is shown before a language exists, so its labels are
// fixed rather than localized.
func languageMenu() [][]adapter.InlineButton {
	return [][]adapter.InlineButton{
		{{Text: "🇬🇧 English", Data: model.LanguageCallback(model.LangEnglish)}},
		{{Text: "🇷🇺 Русский", Data: model.LanguageCallback(model.LangRussian)}},
		{{Text: "🇺🇿 O‘zbek", Data: model.LanguageCallback(model.LangUzbek)}},
	}
}

func (r *Router) mainMenu(lang model.Language) [][]adapter.InlineButton {
	return [][]adapter.InlineButton{
		{{Text: r.texts.T(lang, "btn_kids"), Data: string(model.ActionKids)}},
		{{Text: r.texts.T(lang, "btn_students"), Data: string(model.ActionStudents)}},
		{{Text: r.texts.T(lang, "btn_teachers"), Data: string(model.ActionTeachers)}},
		{{Text: r.texts.T(lang, "btn_enroll"), Data: string(model.ActionEnroll)}},
		{{Text: r.texts.T(lang, "btn_change_lang"), Data: string(model.ActionChangeLang)}},
	}
}

func (r *Router) kidsMenu(lang model.Language) [][]adapter.InlineButton {
	return [][]adapter.InlineButton{
		{{Text: r.texts.T(lang, "btn_kids_english"), Data: string(model.ActionKidsInfo)}},
		{{Text: r.texts.T(lang, "btn_prices"), Data: string(model.ActionPrices)}},
		{{Text: r.texts.T(lang, "btn_schedule"), Data: string(model.ActionSchedule)}},
		{{Text: r.texts.T(lang, "btn_enroll"), Data: string(model.ActionEnroll)}},
		{{Text: r.texts.T(lang, "btn_back"), Data: string(model.ActionMain)}},
	}
}

func (r *Router) studentsMenu(lang model.Language) [][]adapter.InlineButton {
	return [][]adapter.InlineButton{
		{{Text: r.texts.T(lang, "btn_general_english"), Data: string(model.ActionA1B2)}},
		{{Text: r.texts.T(lang, "btn_exam_prep"), Data: string(model.ActionExams)}},
		{{Text: r.texts.T(lang, "btn_prices"), Data: string(model.ActionPrices)}},
		{{Text: r.texts.T(lang, "btn_schedule"), Data: string(model.ActionSchedule)}},
		{{Text: r.texts.T(lang, "btn_enroll"), Data: string(model.ActionEnroll)}},
		{{Text: r.texts.T(lang, "btn_back"), Data: string(model.ActionMain)}},
	}
}
