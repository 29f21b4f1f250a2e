package model

import "fmt"

// LeadStep is the position in the four-step enrollment form.
type LeadStep int

const (
	StepName LeadStep = iota + 1
	StepPhone
	StepCourse
	StepAge
)

// LeadData holds the fields collected so far. A field is set exactly when its
// step has been answered; nothing is ever re-asked or skipped.
type LeadData struct {
	Name   string `json:"name,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Course string `json:"course,omitempty"`
	Age    string `json:"age,omitempty"`
}

// LeadState is an in-progress enrollment form for one chat.
type LeadState struct {
	Step LeadStep `json:"step"`
	Data LeadData `json:"data"`
}

// NewLeadState starts a fresh form at the name step.
func NewLeadState() *LeadState {
	return &LeadState{Step: StepName}
}

// Capture stores text into the field for the current step and advances.
// Any non-empty text is accepted; there is no format validation by design.
// Returns true when the form is complete (age captured).
func (s *LeadState) Capture(text string) bool {
	switch s.Step {
	case StepName:
		s.Data.Name = text
	case StepPhone:
		s.Data.Phone = text
	case StepCourse:
		s.Data.Course = text
	case StepAge:
		s.Data.Age = text
		return true
	}
	s.Step++
	return false
}

// Summary renders the completed lead in the fixed format forwarded to the
// leads channel.
func (s *LeadState) Summary() string {
	return fmt.Sprintf("🆕 NEW LEAD\n👤 %s\n📞 %s\n🎓 %s\n🎂 %s",
		s.Data.Name, s.Data.Phone, s.Data.Course, s.Data.Age)
}
