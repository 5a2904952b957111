package reminder

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/state"
)

type fakePlatform struct {
	mu      sync.Mutex
	allowed bool
	fail    bool
	shown   []string
}

func (p *fakePlatform) RequestPermission() bool { return p.allowed }

func (p *fakePlatform) Show(title, body, tag string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shown = append(p.shown, tag)
	if p.fail {
		return errors.New("no display")
	}
	return nil
}

func (p *fakePlatform) tags() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.shown...)
}

type recordingSink struct {
	mu      sync.Mutex
	prompts []Prompt
}

func (s *recordingSink) Deliver(p Prompt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, p)
}

func (s *recordingSink) count(prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, p := range s.prompts {
		if strings.HasPrefix(p.Key, prefix) {
			n++
		}
	}
	return n
}

func (s *recordingSink) find(prefix string) (Prompt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.prompts {
		if strings.HasPrefix(p.Key, prefix) {
			return p, true
		}
	}
	return Prompt{}, false
}

var base = time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC) // Wednesday

func newEngine(t *testing.T) (*Engine, *state.Store, *recordingSink, *fakePlatform) {
	t.Helper()
	now := base
	store := state.New(state.Options{Clock: func() time.Time { return now }})
	sink := &recordingSink{}
	platform := &fakePlatform{allowed: true}
	e := New(store, Options{
		Sink:     sink,
		Platform: platform,
		Clock:    func() time.Time { return now },
		Pick:     func(int) int { return 0 },
	})
	return e, store, sink, platform
}

func TestCheckTasks_FiresEachAlertOnce(t *testing.T) {
	e, store, sink, platform := newEngine(t)

	due := base.Add(15 * time.Minute)
	task := store.AddTask(models.Task{Title: "Mock test 7", Priority: models.PriorityHigh, DueDate: &due})

	for now := base; now.Before(due.Add(3 * time.Minute)); now = now.Add(10 * time.Second) {
		e.Tick(now)
	}

	if got := sink.count("task-pre-"); got != 1 {
		t.Errorf("expected 1 starting soon alert, got %d", got)
	}
	if got := sink.count("task-due-"); got != 1 {
		t.Errorf("expected 1 due alert, got %d", got)
	}
	if !e.Fired("task-pre-"+task.ID) || !e.Fired("task-due-"+task.ID) {
		t.Error("expected both dedupe keys recorded")
	}

	notes := store.Notifications()
	if len(notes) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notes))
	}
	if notes[0].Title != "⏰ Task Starting Soon" || notes[0].Priority != models.PriorityMedium {
		t.Errorf("unexpected pre notification: %+v", notes[0])
	}
	if notes[1].Title != "🚀 Task Due Now" || notes[1].Priority != models.PriorityHigh {
		t.Errorf("unexpected due notification: %+v", notes[1])
	}
	if got := len(platform.tags()); got != 2 {
		t.Errorf("expected 2 platform alerts, got %d: %v", got, platform.tags())
	}
}

func TestCheckTasks_SkipsCompletedAndUndated(t *testing.T) {
	e, store, sink, _ := newEngine(t)

	due := base.Add(14 * time.Minute)
	store.AddTask(models.Task{Title: "done", DueDate: &due, Completed: true})
	store.AddTask(models.Task{Title: "no date"})

	e.Tick(base)
	if got := sink.count("task-"); got != 0 {
		t.Errorf("expected no task alerts, got %d", got)
	}
}

func TestCheckTasks_WindowEdges(t *testing.T) {
	tests := []struct {
		name    string
		until   time.Duration
		wantPre bool
		wantDue bool
	}{
		{"exactly 15 minutes", 15 * time.Minute, true, false},
		{"just over 15 minutes", 15*time.Minute + time.Second, false, false},
		{"exactly 12 minutes", 12 * time.Minute, false, false},
		{"13 minutes", 13 * time.Minute, true, false},
		{"one minute ahead", time.Minute, false, true},
		{"one minute late", -time.Minute, false, true},
		{"two minutes late", -2 * time.Minute, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, store, sink, _ := newEngine(t)
			due := base.Add(tt.until)
			store.AddTask(models.Task{Title: "edge", DueDate: &due})

			e.CheckTasks(base)

			if got := sink.count("task-pre-") == 1; got != tt.wantPre {
				t.Errorf("pre fired = %v, want %v", got, tt.wantPre)
			}
			if got := sink.count("task-due-") == 1; got != tt.wantDue {
				t.Errorf("due fired = %v, want %v", got, tt.wantDue)
			}
		})
	}
}

func TestTaskPromptActionCompletesTask(t *testing.T) {
	e, store, sink, _ := newEngine(t)
	due := base.Add(30 * time.Second)
	task := store.AddTask(models.Task{Title: "Submit form", DueDate: &due})

	e.CheckTasks(base)
	p, ok := sink.find("task-due-")
	if !ok || p.Action == nil {
		t.Fatal("expected due prompt with an action")
	}
	p.Action.Run()

	got, _ := store.Task(task.ID)
	if !got.Completed || got.CompletedAt == nil {
		t.Errorf("expected task completed by action, got %+v", got)
	}
}

func TestCheckHabits_ReminderScenario(t *testing.T) {
	e, store, sink, _ := newEngine(t)
	habit := store.AddHabit(models.Habit{Title: "Morning revision", ReminderTime: "09:00", Streak: 4})

	at := func(hhmm string) time.Time {
		ts, err := time.Parse("15:04", hhmm)
		if err != nil {
			t.Fatal(err)
		}
		return time.Date(base.Year(), base.Month(), base.Day(), ts.Hour(), ts.Minute(), 0, 0, time.UTC)
	}

	e.CheckHabits(at("08:56"))
	e.CheckHabits(at("08:56").Add(10 * time.Second))
	if got := sink.count("habit-pre-"); got != 1 {
		t.Fatalf("expected exactly one pre-alert at 08:56, got %d", got)
	}
	if got := sink.count("habit-" + habit.ID); got != 0 {
		t.Fatalf("expected no due alert yet, got %d", got)
	}

	e.CheckHabits(at("09:01"))
	e.CheckHabits(at("09:01").Add(20 * time.Second))
	if got := sink.count("habit-" + habit.ID); got != 1 {
		t.Fatalf("expected exactly one due alert at 09:01, got %d", got)
	}

	p, _ := sink.find("habit-" + habit.ID)
	if !strings.Contains(p.Body, "🔥 4 day streak!") {
		t.Errorf("expected streak text in prompt, got %q", p.Body)
	}
	p.Action.Run()
	if h, _ := store.Habit(habit.ID); !h.DoneOn(3) {
		t.Error("expected habit marked done for today by action")
	}
}

func TestCheckHabits_DoneTodaySuppressesNewAlerts(t *testing.T) {
	e, store, sink, _ := newEngine(t)
	habit := store.AddHabit(models.Habit{Title: "Read", ReminderTime: "09:00"})

	e.CheckHabits(time.Date(2025, 3, 12, 8, 56, 0, 0, time.UTC))
	store.ToggleHabitDay(habit.ID, 3)
	e.CheckHabits(time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC))

	if got := sink.count("habit-pre-"); got != 1 {
		t.Errorf("already fired pre-alert should remain, got %d", got)
	}
	if got := sink.count("habit-" + habit.ID); got != 0 {
		t.Errorf("expected no due alert once done, got %d", got)
	}
}

func TestCheckHabits_KeysResetAcrossDays(t *testing.T) {
	e, store, sink, _ := newEngine(t)
	store.AddHabit(models.Habit{Title: "Walk", ReminderTime: "09:00"})

	e.CheckHabits(time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC))
	e.CheckHabits(time.Date(2025, 3, 13, 9, 0, 0, 0, time.UTC))

	if got := sink.count("habit-"); got != 2 {
		t.Errorf("expected one due alert per day, got %d", got)
	}
}

func TestCheckRevisions(t *testing.T) {
	e, store, sink, platform := newEngine(t)
	now := base

	store.SetRevisionTasks([]models.RevisionTask{
		{ID: "fresh", TopicName: "Limits", SubjectName: "Mathematics", ChapterName: "Calculus", ScheduledFor: now.Add(-time.Hour), Status: models.RevisionPending, RevisionNumber: 2},
		{ID: "stale", TopicName: "Series", SubjectName: "Mathematics", ChapterName: "Sequences", ScheduledFor: now.Add(-48 * time.Hour), Status: models.RevisionPending, RevisionNumber: 9},
		{ID: "future", TopicName: "Vectors", ScheduledFor: now.Add(time.Hour), Status: models.RevisionPending, RevisionNumber: 1},
		{ID: "done", TopicName: "Sets", ScheduledFor: now.Add(-time.Hour), Status: models.RevisionDone, RevisionNumber: 1},
	})

	e.CheckRevisions(now)
	e.CheckRevisions(now.Add(10 * time.Second))

	if got := sink.count("revision-"); got != 2 {
		t.Fatalf("expected 2 revision alerts, got %d", got)
	}
	fresh, _ := sink.find("revision-fresh")
	if fresh.Severity != models.PriorityHigh {
		t.Errorf("expected urgent severity for fresh revision, got %s", fresh.Severity)
	}
	if !strings.Contains(fresh.Body, RevisionMethod(2)) {
		t.Errorf("expected active recall method, got %q", fresh.Body)
	}
	stale, _ := sink.find("revision-stale")
	if stale.Severity != models.PriorityMedium {
		t.Errorf("expected default severity for stale revision, got %s", stale.Severity)
	}
	if !strings.Contains(stale.Body, "Review the topic thoroughly") {
		t.Errorf("expected generic method, got %q", stale.Body)
	}

	var titles []string
	for _, n := range store.Notifications() {
		titles = append(titles, n.Title)
	}
	if len(titles) != 2 || titles[0] != "📝 Revision #2 Due: Limits" {
		t.Errorf("unexpected notification titles: %v", titles)
	}
	if got := len(platform.tags()); got != 2 {
		t.Errorf("expected 2 platform alerts, got %d", got)
	}
}

func TestCheckNotifications_AdHocDelivery(t *testing.T) {
	e, store, _, platform := newEngine(t)

	soon := store.AddNotification(models.Notification{Title: "Call mentor", Time: base.Add(30 * time.Second)})
	store.AddNotification(models.Notification{Title: "Later", Time: base.Add(5 * time.Minute)})
	read := store.AddNotification(models.Notification{Title: "Seen", Time: base})
	store.MarkNotificationRead(read.ID)

	e.CheckNotifications(base)
	e.CheckNotifications(base.Add(10 * time.Second))

	tags := platform.tags()
	if len(tags) != 1 || tags[0] != soon.ID {
		t.Errorf("expected only %s delivered once, got %v", soon.ID, tags)
	}
}

func TestEngineNotificationsAreNotRedelivered(t *testing.T) {
	e, store, _, platform := newEngine(t)
	due := base.Add(30 * time.Second)
	store.AddTask(models.Task{Title: "Quiz", DueDate: &due})

	e.Tick(base)
	e.Tick(base.Add(10 * time.Second))

	if got := len(platform.tags()); got != 1 {
		t.Errorf("expected the due alert only, got %v", platform.tags())
	}
}

func TestPlatformFailureIsNotFatal(t *testing.T) {
	e, store, sink, platform := newEngine(t)
	platform.fail = true
	due := base.Add(time.Minute)
	store.AddTask(models.Task{Title: "Quiz", DueDate: &due})

	e.Tick(base)

	if sink.count("task-due-") != 1 || len(store.Notifications()) != 1 {
		t.Error("expected alert recorded despite platform failure")
	}
}

func TestRun_ChecksImmediatelyAndStops(t *testing.T) {
	e, store, sink, platform := newEngine(t)
	platform.allowed = false
	store.SetRevisionTasks([]models.RevisionTask{
		{ID: "r1", TopicName: "Graphs", ScheduledFor: base.Add(-time.Minute), Status: models.RevisionPending, RevisionNumber: 1},
	})
	e.interval = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for sink.count("revision-") == 0 {
		select {
		case <-deadline:
			t.Fatal("expected immediate revision check")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
	if len(platform.tags()) != 0 {
		t.Error("expected no platform alerts without permission")
	}
}

func TestRevisionMethod(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "Quick skim through key concepts"},
		{4, "Teach the concept to someone (or rubber duck)"},
		{5, "Speed review - you should know this well now!"},
		{0, "Review the topic thoroughly"},
		{6, "Review the topic thoroughly"},
	}
	for _, tt := range tests {
		if got := RevisionMethod(tt.n); got != tt.want {
			t.Errorf("RevisionMethod(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
