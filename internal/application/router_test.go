//go:build !integration

package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"telegram-course-bot/internal/domain"
	"telegram-course-bot/internal/domain/model"
	"telegram-course-bot/internal/domain/ports/adapter"
	"telegram-course-bot/internal/infra/i18n"
	"telegram-course-bot/internal/infra/state/memory"
)

const leadsChannelID int64 = -100500

// ---- Fakes ----

type sentMessage struct {
	chatID int64
	text   string
	rows   [][]adapter.InlineButton
}

type fakeBot struct {
	mu       sync.Mutex
	messages []sentMessage
	acks     []string
}

func (f *fakeBot) SendMessage(_ context.Context, chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, sentMessage{chatID: chatID, text: text})
	return nil
}

func (f *fakeBot) SendButtons(_ context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, sentMessage{chatID: chatID, text: text, rows: rows})
	return nil
}

func (f *fakeBot) AnswerCallback(_ context.Context, callbackID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acks = append(f.acks, callbackID)
	return nil
}

func (f *fakeBot) sent() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentMessage, len(f.messages))
	copy(out, f.messages)
	return out
}

func (f *fakeBot) toChat(chatID int64) []sentMessage {
	var out []sentMessage
	for _, m := range f.sent() {
		if m.chatID == chatID {
			out = append(out, m)
		}
	}
	return out
}

type fakeAI struct {
	answer string
	err    error
	asked  []adapter.Message
}

func (f *fakeAI) CountTokens(_ context.Context, _ []adapter.Message) (int, error) {
	return 7, nil
}

func (f *fakeAI) Chat(_ context.Context, messages []adapter.Message) (string, error) {
	f.asked = messages
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

// ---- Harness ----

type harness struct {
	router *Router
	bot    *fakeBot
	ai     *fakeAI
	leads  *memory.LeadStore
	texts  *i18n.Bundle

	nextUpdateID int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	texts, err := i18n.NewBundle(i18n.LocalesFS)
	if err != nil {
		t.Fatalf("load locales: %v", err)
	}
	bot := &fakeBot{}
	ai := &fakeAI{answer: "here is my advice"}
	leads := memory.NewLeadStore()
	logger := zerolog.Nop()
	router := NewRouter(bot, ai, memory.NewLanguageStore(), leads, memory.NewDedupStore(), texts, leadsChannelID, "test", &logger)
	return &harness{router: router, bot: bot, ai: ai, leads: leads, texts: texts}
}

func (h *harness) textUpdate(chatID int64, text string) model.Update {
	h.nextUpdateID++
	return model.Update{
		ID:      h.nextUpdateID,
		Message: &model.IncomingMessage{ChatID: chatID, Text: text},
	}
}

func (h *harness) callbackUpdate(chatID int64, data string) model.Update {
	h.nextUpdateID++
	return model.Update{
		ID: h.nextUpdateID,
		Callback: &model.CallbackQuery{
			ID:     fmt.Sprintf("cb-%d", h.nextUpdateID),
			ChatID: chatID,
			Data:   data,
		},
	}
}

func (h *harness) handle(up model.Update) {
	h.router.HandleUpdate(context.Background(), up)
}

// ---- Tests ----

func TestDuplicateUpdateIsDropped(t *testing.T) {
	h := newHarness(t)
	up := h.callbackUpdate(1, string(model.ActionPrices))

	h.handle(up)
	h.handle(up)

	if got := len(h.bot.sent()); got != 1 {
		t.Errorf("expected exactly one outbound message, got %d", got)
	}
	if got := len(h.bot.acks); got != 1 {
		t.Errorf("expected exactly one callback ack, got %d", got)
	}
}

func TestEditedMessageProducesNothing(t *testing.T) {
	h := newHarness(t)
	h.handle(model.Update{ID: 99, Edited: true})

	if got := len(h.bot.sent()); got != 0 {
		t.Errorf("expected zero outbound calls for edited message, got %d", got)
	}
}

func TestEmptyUpdateShapeIsNoop(t *testing.T) {
	h := newHarness(t)
	h.handle(model.Update{ID: 100})

	if got := len(h.bot.sent()); got != 0 {
		t.Errorf("expected zero outbound calls for empty update, got %d", got)
	}
}

func TestStartAlwaysSendsLanguageKeyboard(t *testing.T) {
	h := newHarness(t)

	h.handle(h.callbackUpdate(1, string(model.ActionEnroll))) // mid-form
	h.handle(h.textUpdate(1, "  /start  "))

	msgs := h.bot.toChat(1)
	last := msgs[len(msgs)-1]
	if last.text != chooseLanguagePrompt {
		t.Errorf("expected language prompt, got %q", last.text)
	}
	if len(last.rows) != 3 {
		t.Fatalf("expected three language rows, got %d", len(last.rows))
	}
	if last.rows[1][0].Data != "LANG_ru" {
		t.Errorf("expected LANG_ru payload on second row, got %q", last.rows[1][0].Data)
	}
}

func TestLanguageSelectPersistsAcrossActions(t *testing.T) {
	h := newHarness(t)

	h.handle(h.callbackUpdate(2, "LANG_ru"))

	msgs := h.bot.toChat(2)
	if len(msgs) != 1 {
		t.Fatalf("expected one outbound message, got %d", len(msgs))
	}
	if msgs[0].text != h.texts.T(model.LangRussian, "welcome") {
		t.Errorf("expected russian welcome, got %q", msgs[0].text)
	}
	if len(msgs[0].rows) != 5 {
		t.Errorf("expected five main-menu rows, got %d", len(msgs[0].rows))
	}

	h.handle(h.callbackUpdate(2, string(model.ActionPrices)))
	msgs = h.bot.toChat(2)
	if msgs[1].text != h.texts.T(model.LangRussian, "prices") {
		t.Errorf("expected russian prices after unrelated action, got %q", msgs[1].text)
	}
}

func TestLanguageDefaultsToEnglish(t *testing.T) {
	h := newHarness(t)

	h.handle(h.callbackUpdate(3, string(model.ActionSchedule)))

	msgs := h.bot.toChat(3)
	if msgs[0].text != h.texts.T(model.LangEnglish, "schedule") {
		t.Errorf("expected english schedule for unseen chat, got %q", msgs[0].text)
	}
}

func TestLeadFlowEndToEnd(t *testing.T) {
	h := newHarness(t)
	h.handle(h.callbackUpdate(4, "LANG_en"))

	h.handle(h.callbackUpdate(4, string(model.ActionEnroll)))
	for _, input := range []string{"Alice", "+998901234567", "IELTS", "21"} {
		h.handle(h.textUpdate(4, input))
	}

	forwarded := h.bot.toChat(leadsChannelID)
	if len(forwarded) != 1 {
		t.Fatalf("expected exactly one message to the leads channel, got %d", len(forwarded))
	}
	want := "🆕 NEW LEAD\n👤 Alice\n📞 +998901234567\n🎓 IELTS\n🎂 21"
	if forwarded[0].text != want {
		t.Errorf("lead summary mismatch:\ngot:  %q\nwant: %q", forwarded[0].text, want)
	}

	chat := h.bot.toChat(4)
	last := chat[len(chat)-1]
	if last.text != h.texts.T(model.LangEnglish, "thanks") {
		t.Errorf("expected thank-you message last, got %q", last.text)
	}
	if len(last.rows) != 5 {
		t.Errorf("expected main menu attached to thank-you, got %d rows", len(last.rows))
	}

	if state, _ := h.leads.Lead(context.Background(), 4); state != nil {
		t.Errorf("expected lead state cleared after completion, got %+v", state)
	}
}

func TestLeadPromptsFollowSteps(t *testing.T) {
	h := newHarness(t)

	h.handle(h.callbackUpdate(5, string(model.ActionEnroll)))
	h.handle(h.textUpdate(5, "Alice"))
	h.handle(h.textUpdate(5, "+998901234567"))

	msgs := h.bot.toChat(5)
	wantOrder := []string{
		h.texts.T(model.LangEnglish, "ask_name"),
		h.texts.T(model.LangEnglish, "ask_phone"),
		h.texts.T(model.LangEnglish, "ask_course"),
	}
	if len(msgs) != len(wantOrder) {
		t.Fatalf("expected %d prompts, got %d", len(wantOrder), len(msgs))
	}
	for i, want := range wantOrder {
		if msgs[i].text != want {
			t.Errorf("prompt %d: got %q, want %q", i+1, msgs[i].text, want)
		}
	}
}

func TestEnrollRestartsAnInProgressLead(t *testing.T) {
	h := newHarness(t)

	h.handle(h.callbackUpdate(6, string(model.ActionEnroll)))
	h.handle(h.textUpdate(6, "Alice"))
	h.handle(h.textUpdate(6, "+998901234567"))

	// Restart mid-form: step three progress is discarded without notice.
	h.handle(h.callbackUpdate(6, string(model.ActionEnroll)))

	state, _ := h.leads.Lead(context.Background(), 6)
	if state == nil || state.Step != model.StepName {
		t.Fatalf("expected lead reset to step one, got %+v", state)
	}
	if state.Data.Name != "" || state.Data.Phone != "" {
		t.Errorf("expected previously entered fields discarded, got %+v", state.Data)
	}
}

func TestUnknownActionFallsBack(t *testing.T) {
	h := newHarness(t)

	h.handle(h.callbackUpdate(7, "NOT_AN_ACTION"))

	msgs := h.bot.toChat(7)
	if len(msgs) != 1 {
		t.Fatalf("expected one outbound message, got %d", len(msgs))
	}
	if msgs[0].text != h.texts.T(model.LangEnglish, "fallback") {
		t.Errorf("expected fallback string, got %q", msgs[0].text)
	}
}

func TestFreeTextGoesToModel(t *testing.T) {
	h := newHarness(t)
	h.handle(h.callbackUpdate(8, "LANG_uz"))
	h.bot.messages = nil

	h.handle(h.textUpdate(8, "how long is the IELTS course?"))

	if len(h.ai.asked) != 2 {
		t.Fatalf("expected system+user messages, got %d", len(h.ai.asked))
	}
	if h.ai.asked[0].Role != "system" || h.ai.asked[0].Content != h.texts.T(model.LangUzbek, "system_prompt") {
		t.Errorf("expected uzbek system prompt, got %+v", h.ai.asked[0])
	}
	if h.ai.asked[1].Role != "user" || h.ai.asked[1].Content != "how long is the IELTS course?" {
		t.Errorf("unexpected user message: %+v", h.ai.asked[1])
	}

	msgs := h.bot.toChat(8)
	if len(msgs) != 1 || msgs[0].text != "here is my advice" {
		t.Errorf("expected model answer sent back, got %+v", msgs)
	}
}

func TestModelFailureSubstitutesFallback(t *testing.T) {
	h := newHarness(t)
	h.ai.err = domain.ErrNoAnswer

	h.handle(h.textUpdate(9, "anyone there?"))

	msgs := h.bot.toChat(9)
	if len(msgs) != 1 {
		t.Fatalf("expected one outbound message, got %d", len(msgs))
	}
	if msgs[0].text != h.texts.T(model.LangEnglish, "fallback") {
		t.Errorf("expected fallback string, got %q", msgs[0].text)
	}
}

func TestModelEmptyAnswerSubstitutesFallback(t *testing.T) {
	h := newHarness(t)
	h.ai.answer = ""

	h.handle(h.textUpdate(10, "hello"))

	msgs := h.bot.toChat(10)
	if len(msgs) != 1 || msgs[0].text != h.texts.T(model.LangEnglish, "fallback") {
		t.Errorf("expected fallback for empty answer, got %+v", msgs)
	}
}

func TestLeadInputBypassesModel(t *testing.T) {
	h := newHarness(t)
	h.ai.err = errors.New("must not be called")

	h.handle(h.callbackUpdate(11, string(model.ActionEnroll)))
	h.handle(h.textUpdate(11, "/weird looking text 123"))

	if h.ai.asked != nil {
		t.Error("expected no AI call while a lead is in progress")
	}
	msgs := h.bot.toChat(11)
	last := msgs[len(msgs)-1]
	if last.text != h.texts.T(model.LangEnglish, "ask_phone") {
		t.Errorf("expected phone prompt, got %q", last.text)
	}
}

func TestCallbackWithoutChatOnlyAcks(t *testing.T) {
	h := newHarness(t)

	up := model.Update{ID: 500, Callback: &model.CallbackQuery{ID: "cb-500", Data: string(model.ActionMain)}}
	h.router.HandleUpdate(context.Background(), up)

	if len(h.bot.acks) != 1 {
		t.Errorf("expected spinner ack even without chat id, got %d", len(h.bot.acks))
	}
	if len(h.bot.sent()) != 0 {
		t.Errorf("expected no messages for chat-less callback, got %d", len(h.bot.sent()))
	}
}

func TestChangeLangDoesNotSwitchStoredLanguage(t *testing.T) {
	h := newHarness(t)
	h.handle(h.callbackUpdate(12, "LANG_ru"))
	h.bot.messages = nil

	h.handle(h.callbackUpdate(12, string(model.ActionChangeLang)))

	msgs := h.bot.toChat(12)
	if msgs[0].text != chooseLanguagePrompt {
		t.Errorf("expected language keyboard, got %q", msgs[0].text)
	}

	// Stored language is untouched until a LANG_ callback completes.
	h.handle(h.callbackUpdate(12, string(model.ActionPrices)))
	msgs = h.bot.toChat(12)
	if msgs[1].text != h.texts.T(model.LangRussian, "prices") {
		t.Errorf("expected russian prices, got %q", msgs[1].text)
	}
}

func TestMenuKeyboardsCarryWirePayloads(t *testing.T) {
	h := newHarness(t)

	h.handle(h.callbackUpdate(13, string(model.ActionKids)))
	h.handle(h.callbackUpdate(13, string(model.ActionStudents)))

	msgs := h.bot.toChat(13)
	kids, students := msgs[0], msgs[1]

	if len(kids.rows) != 5 {
		t.Errorf("expected five kids-menu rows, got %d", len(kids.rows))
	}
	if kids.rows[0][0].Data != "KIDS_INFO" || kids.rows[4][0].Data != "MAIN" {
		t.Errorf("kids menu payloads broken: %+v", kids.rows)
	}
	if len(students.rows) != 6 {
		t.Errorf("expected six students-menu rows, got %d", len(students.rows))
	}
	if students.rows[0][0].Data != "A1_B2" || students.rows[1][0].Data != "EXAMS" {
		t.Errorf("students menu payloads broken: %+v", students.rows)
	}
}
