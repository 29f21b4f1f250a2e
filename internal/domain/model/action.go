package model

// Action is one of the closed set of callback payloads the bot recognizes.
// The raw strings are a wire contract between the keyboard builders and the
// router and must round-trip exactly.
type Action string

const (
	ActionMain       Action = "MAIN"
	ActionKids       Action = "KIDS"
	ActionStudents   Action = "STUDENTS"
	ActionTeachers   Action = "TEACHERS"
	ActionEnroll     Action = "ENROLL"
	ActionKidsInfo   Action = "KIDS_INFO"
	ActionA1B2       Action = "A1_B2"
	ActionExams      Action = "EXAMS"
	ActionPrices     Action = "PRICES"
	ActionSchedule   Action = "SCHEDULE"
	ActionChangeLang Action = "CHANGE_LANG"
)

// ParseAction converts a raw callback payload into an Action.
// LANG_* payloads are not actions; they are handled by LanguageFromCallback
// before action parsing ever happens.
func ParseAction(s string) (Action, bool) {
	switch Action(s) {
	case ActionMain, ActionKids, ActionStudents, ActionTeachers, ActionEnroll,
		ActionKidsInfo, ActionA1B2, ActionExams, ActionPrices, ActionSchedule,
		ActionChangeLang:
		return Action(s), true
	}
	return "", false
}
