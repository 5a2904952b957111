package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/focusflow/internal/cloudsync"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/reminder"
	"github.com/julianstephens/focusflow/internal/remote"
	"github.com/julianstephens/focusflow/internal/state"
	"github.com/julianstephens/focusflow/internal/tui/components/habits"
	"github.com/julianstephens/focusflow/internal/tui/components/inbox"
	"github.com/julianstephens/focusflow/internal/tui/components/prompts"
)

var testNow = time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC) // Wednesday

func newTestModel(t *testing.T) (Model, *state.Store) {
	t.Helper()
	store := state.New(state.Options{Clock: func() time.Time { return testNow }})
	m := NewModel(store, store.Now)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model), store
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestPromptActionRunsAndDismisses(t *testing.T) {
	m, _ := newTestModel(t)

	ran := 0
	m, _ = update(t, m, PromptMsg{Prompt: reminder.Prompt{
		Key:    "task-due-1",
		Title:  "🚀 Task Time: Algebra",
		Action: &reminder.Action{Label: "✓ Complete", Run: func() { ran++ }},
	}})
	m, _ = update(t, m, PromptMsg{Prompt: reminder.Prompt{Key: "habit-pre-2", Title: "🔔 Habit reminder in 5 min"}})
	if m.promptsModel.Len() != 2 {
		t.Fatalf("expected 2 prompts, got %d", m.promptsModel.Len())
	}

	m, _ = update(t, m, prompts.ActMsg{Key: "task-due-1"})
	if ran != 1 {
		t.Errorf("action ran %d times, want 1", ran)
	}
	m, _ = update(t, m, prompts.ActMsg{Key: "task-due-1"})
	if ran != 1 {
		t.Errorf("action ran again after dismissal")
	}

	m, _ = update(t, m, prompts.DismissMsg{Key: "habit-pre-2"})
	if m.promptsModel.Len() != 0 {
		t.Errorf("expected empty prompt list, got %d", m.promptsModel.Len())
	}
}

func TestPromptSameKeyReplaces(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, PromptMsg{Prompt: reminder.Prompt{Key: "revision-1", Title: "first"}})
	m, _ = update(t, m, PromptMsg{Prompt: reminder.Prompt{Key: "revision-1", Title: "second"}})
	if m.promptsModel.Len() != 1 {
		t.Fatalf("expected 1 prompt, got %d", m.promptsModel.Len())
	}
	p, ok := m.promptsModel.Remove("revision-1")
	if !ok || p.Title != "second" {
		t.Errorf("expected latest prompt, got %+v", p)
	}
}

func TestHabitToggleUpdatesStore(t *testing.T) {
	m, store := newTestModel(t)
	h := store.AddHabit(models.Habit{Title: "Read"})

	m, _ = update(t, m, habits.ToggleHabitMsg{ID: h.ID})
	got, _ := store.Habit(h.ID)
	if !got.DoneOn(3) {
		t.Errorf("expected habit done on Wednesday, history %v", got.WeeklyHistory)
	}
	if got.LastCompleted == nil || !got.LastCompleted.Equal(testNow) {
		t.Errorf("LastCompleted = %v, want %v", got.LastCompleted, testNow)
	}
	if !strings.Contains(m.habitsModel.View(), "✓ Read") {
		t.Errorf("habit list not refreshed:\n%s", m.habitsModel.View())
	}
}

func TestInboxMessages(t *testing.T) {
	m, store := newTestModel(t)
	n := store.AddNotification(models.Notification{Type: models.NotifyDailySummary, Title: "Hello", Priority: models.PriorityLow})
	store.AddNotification(models.Notification{Type: models.NotifyDailySummary, Title: "World", Priority: models.PriorityLow})

	m, _ = update(t, m, inbox.MarkReadMsg{ID: n.ID})
	if store.UnreadCount() != 1 {
		t.Errorf("unread = %d, want 1", store.UnreadCount())
	}
	m, _ = update(t, m, inbox.MarkAllReadMsg{})
	if store.UnreadCount() != 0 {
		t.Errorf("unread = %d, want 0", store.UnreadCount())
	}
	_, _ = update(t, m, inbox.ClearMsg{})
	if len(store.Notifications()) != 0 {
		t.Errorf("expected notifications cleared")
	}
}

func TestOfferConfirmation(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want bool
	}{
		{"enter loads", tea.KeyMsg{Type: tea.KeyEnter}, true},
		{"y loads", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}, true},
		{"esc dismisses", tea.KeyMsg{Type: tea.KeyEsc}, false},
		{"quit dismisses", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t)
			m.state = StateInbox
			reply := make(chan bool, 1)

			m, _ = update(t, m, OfferMsg{Offer: cloudsync.Offer{Device: "laptop", LastUpdated: "2025-03-12T08:00:00Z"}, Reply: reply})
			if m.state != StateConfirmSync {
				t.Fatalf("state = %v, want confirm", m.state)
			}
			if !strings.Contains(m.View(), "Load Update") {
				t.Errorf("confirm view missing action:\n%s", m.View())
			}

			m, _ = update(t, m, tt.key)
			select {
			case got := <-reply:
				if got != tt.want {
					t.Errorf("reply = %v, want %v", got, tt.want)
				}
			default:
				t.Fatal("no reply sent")
			}
			if !m.quitting && m.state != StateInbox {
				t.Errorf("state = %v, want previous view restored", m.state)
			}
		})
	}
}

func TestNewerOfferDeclinesPending(t *testing.T) {
	m, _ := newTestModel(t)
	first := make(chan bool, 1)
	second := make(chan bool, 1)

	m, _ = update(t, m, OfferMsg{Reply: first})
	m, _ = update(t, m, OfferMsg{Reply: second})

	if got := <-first; got {
		t.Error("superseded offer should be declined")
	}
	if m.offer == nil || m.state != StateConfirmSync {
		t.Error("expected second offer pending")
	}
}

func TestTabCycles(t *testing.T) {
	m, _ := newTestModel(t)
	want := []SessionState{StateHabits, StateInbox, StatePrompts}
	for _, w := range want {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if m.state != w {
			t.Fatalf("state = %v, want %v", m.state, w)
		}
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != StateInbox {
		t.Errorf("shift+tab: state = %v, want inbox", m.state)
	}
}

func TestWarnShowsBanner(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, WarnMsg{Err: errors.New("sync failed: connection refused")})
	if !strings.Contains(m.View(), "connection refused") {
		t.Error("expected warning banner in view")
	}
}

type capture struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (c *capture) send(msg tea.Msg) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, msg)
}

func (c *capture) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.msgs)
}

func TestBridgeWithoutProgram(t *testing.T) {
	b := NewBridge(nil)

	b.Deliver(reminder.Prompt{Key: "k", Title: "logged"})
	if b.Confirm(context.Background(), cloudsync.Offer{}) {
		t.Error("Confirm without a program should decline")
	}
}

func TestBridgeDeliversToProgram(t *testing.T) {
	out := &lockedBuffer{}
	b := NewBridge(out)
	c := &capture{}
	b.send = c.send

	b.Deliver(reminder.Prompt{Key: "k"})
	b.Warn(errors.New("boom"))

	deadline := time.Now().Add(2 * time.Second)
	for c.len() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("expected 2 messages, got %d", c.len())
		}
		time.Sleep(5 * time.Millisecond)
	}
	if out.String() != "" {
		t.Errorf("expected warnings to go to the program only, printed %q", out.String())
	}
}

func TestBridgeConfirmHonoursContext(t *testing.T) {
	b := NewBridge(nil)
	b.send = func(tea.Msg) {}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if b.Confirm(ctx, cloudsync.Offer{}) {
		t.Error("Confirm should decline when ctx ends first")
	}
}

func TestBridgeConfirmReply(t *testing.T) {
	b := NewBridge(nil)
	b.send = func(msg tea.Msg) {
		if offer, ok := msg.(OfferMsg); ok {
			offer.Reply <- true
		}
	}
	if !b.Confirm(context.Background(), cloudsync.Offer{Device: "phone"}) {
		t.Error("expected accepted offer")
	}
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestBridgeWarnPrintsWithoutProgram(t *testing.T) {
	out := &lockedBuffer{}
	b := NewBridge(out)

	store := state.New(state.Options{})
	store.SetAutoSyncEnabled(true)
	rs := remote.NewMemoryStore()
	rs.FailSave = errors.New("connection refused")
	coord := cloudsync.New(store, rs, cloudsync.Options{
		Debounce:     10 * time.Millisecond,
		StartupDelay: -1,
		Confirm:      b.Confirm,
		Warn:         b.Warn,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- coord.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	// keep changing the store until the coordinator has subscribed and a push failed
	deadline := time.Now().Add(2 * time.Second)
	for i := 0; !strings.Contains(out.String(), "Warning:"); i++ {
		if time.Now().After(deadline) {
			t.Fatalf("expected a printed warning, got %q", out.String())
		}
		store.SetUserName(fmt.Sprintf("user-%d", i))
		time.Sleep(20 * time.Millisecond)
	}

	if !strings.Contains(out.String(), "sync failed") || !strings.Contains(out.String(), "connection refused") {
		t.Errorf("unexpected warning %q", out.String())
	}
	if store.Settings().LastSyncTimestamp != 0 {
		t.Error("failed push must not advance the last sync time")
	}
}
