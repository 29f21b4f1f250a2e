//go:build !integration

package model

import (
	"strings"
	"testing"
)

func TestParseAction(t *testing.T) {
	t.Run("accepts every wire value", func(t *testing.T) {
		wire := []string{
			"MAIN", "KIDS", "STUDENTS", "TEACHERS", "ENROLL", "KIDS_INFO",
			"A1_B2", "EXAMS", "PRICES", "SCHEDULE", "CHANGE_LANG",
		}
		for _, raw := range wire {
			action, ok := ParseAction(raw)
			if !ok {
				t.Errorf("expected %q to parse, but it did not", raw)
			}
			if string(action) != raw {
				t.Errorf("expected action to round-trip %q, got %q", raw, action)
			}
		}
	})

	t.Run("rejects unknown payloads", func(t *testing.T) {
		for _, raw := range []string{"", "main", "LANG_en", "DELETE_EVERYTHING"} {
			if _, ok := ParseAction(raw); ok {
				t.Errorf("expected %q not to parse", raw)
			}
		}
	})
}

func TestLanguageFromCallback(t *testing.T) {
	t.Run("extracts all three languages", func(t *testing.T) {
		for _, lang := range Languages() {
			got, ok := LanguageFromCallback(LanguageCallback(lang))
			if !ok {
				t.Fatalf("expected callback for %q to parse", lang)
			}
			if got != lang {
				t.Errorf("expected %q, got %q", lang, got)
			}
		}
	})

	t.Run("rejects non-language payloads", func(t *testing.T) {
		for _, raw := range []string{"MAIN", "LANG_", "LANG_de", "lang_en", ""} {
			if _, ok := LanguageFromCallback(raw); ok {
				t.Errorf("expected %q not to parse as a language callback", raw)
			}
		}
	})
}

func TestLeadState(t *testing.T) {
	t.Run("captures four fields in order", func(t *testing.T) {
		state := NewLeadState()
		inputs := []string{"Alice", "+998901234567", "IELTS", "21"}

		for i, input := range inputs {
			done := state.Capture(input)
			wantDone := i == len(inputs)-1
			if done != wantDone {
				t.Fatalf("after input %d: done=%v, want %v", i+1, done, wantDone)
			}
		}

		if state.Data.Name != "Alice" || state.Data.Phone != "+998901234567" ||
			state.Data.Course != "IELTS" || state.Data.Age != "21" {
			t.Errorf("unexpected captured data: %+v", state.Data)
		}
	})

	t.Run("summary uses the fixed leads-channel format", func(t *testing.T) {
		state := NewLeadState()
		for _, input := range []string{"Alice", "+998901234567", "IELTS", "21"} {
			state.Capture(input)
		}

		got := state.Summary()
		want := "🆕 NEW LEAD\n👤 Alice\n📞 +998901234567\n🎓 IELTS\n🎂 21"
		if got != want {
			t.Errorf("summary mismatch:\ngot:  %q\nwant: %q", got, want)
		}
		if len(strings.Split(got, "\n")) != 5 {
			t.Errorf("expected header plus four lines, got %q", got)
		}
	})
}
