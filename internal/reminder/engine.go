// Package reminder polls the state store for time-based conditions and
// fires each task, habit, revision and scheduled notification alert at most
// once per process.
package reminder

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/logger"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/state"
	"github.com/julianstephens/focusflow/internal/utils"
)

const (
	adHocWindow    = 60 * time.Second
	urgentRevision = 24 * time.Hour
)

// Options configures an Engine. Zero values fall back to defaults.
type Options struct {
	Interval time.Duration
	Platform Platform
	Sink     PromptSink
	Clock    func() time.Time
	// Pick returns an index in [0, n) used to choose motivational text
	Pick func(n int) int
	// Refresh runs before every scan so the engine sees state other
	// processes wrote. Errors are logged and the scan goes ahead.
	Refresh func() error
}

type Engine struct {
	store    *state.Store
	platform Platform
	sink     PromptSink
	interval time.Duration
	clock    func() time.Time
	pick     func(n int) int
	refresh  func() error

	mu    sync.Mutex
	fired map[string]bool
}

func New(store *state.Store, opts Options) *Engine {
	e := &Engine{
		store:    store,
		platform: opts.Platform,
		sink:     opts.Sink,
		interval: opts.Interval,
		clock:    opts.Clock,
		pick:     opts.Pick,
		refresh:  opts.Refresh,
		fired:    make(map[string]bool),
	}
	if e.interval <= 0 {
		e.interval = constants.DefaultPollInterval
	}
	if e.sink == nil {
		e.sink = LogSink{}
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	if e.pick == nil {
		e.pick = rand.IntN
	}
	return e
}

// Run requests platform permission, checks habits and revisions at once and
// then polls every interval until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	if e.platform != nil && !e.platform.RequestPermission() {
		logger.Info("Platform alerts not permitted, using in-app alerts only")
		e.platform = nil
	}

	e.reload()
	now := e.clock()
	e.CheckHabits(now)
	e.CheckRevisions(now)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			e.reload()
			e.Tick(e.clock())
		}
	}
}

// Tick runs every check once at now
func (e *Engine) Tick(now time.Time) {
	e.CheckTasks(now)
	e.CheckHabits(now)
	e.CheckRevisions(now)
	e.CheckNotifications(now)
}

func (e *Engine) reload() {
	if e.refresh == nil {
		return
	}
	if err := e.refresh(); err != nil {
		logger.Warn("Failed to reload state", "error", err)
	}
}

// Fired reports whether the alert with the given dedupe key has fired
func (e *Engine) Fired(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fired[key]
}

// claim marks key fired and reports whether it was new
func (e *Engine) claim(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fired[key] {
		return false
	}
	e.fired[key] = true
	return true
}

func (e *Engine) random(messages []string) string {
	return messages[e.pick(len(messages))]
}

// record stores n in the notification center. The new id is claimed so the
// scheduled-notification check does not deliver it again.
func (e *Engine) record(n models.Notification) {
	added := e.store.AddNotification(n)
	e.claim(added.ID)
}

func (e *Engine) show(title, body, tag string) {
	if e.platform == nil {
		return
	}
	if err := e.platform.Show(title, body, tag); err != nil {
		logger.Debug("Platform alert failed", "tag", tag, "error", err)
	}
}

// CheckTasks fires the "starting soon" alert when a task is due in (12, 15]
// minutes and the "due now" alert within [-1, 1] minutes.
func (e *Engine) CheckTasks(now time.Time) {
	for _, task := range e.store.Tasks() {
		if task.Completed {
			continue
		}
		minutes, ok := task.MinutesUntilDue(now)
		if !ok {
			continue
		}

		if minutes > 12 && minutes <= 15 && e.claim("task-pre-"+task.ID) {
			e.taskStartingSoon(task)
		}
		if minutes >= -1 && minutes <= 1 && e.claim("task-due-"+task.ID) {
			e.taskDue(task)
		}
	}
}

func (e *Engine) completeTask(id string) *Action {
	return &Action{Label: "✓ Mark Complete", Run: func() { e.store.CompleteTask(id) }}
}

func taskSeverity(t models.Task) models.Priority {
	if t.Priority == models.PriorityHigh {
		return models.PriorityHigh
	}
	return models.PriorityMedium
}

func (e *Engine) taskStartingSoon(task models.Task) {
	motivation := e.random(taskMessages)
	key := "task-pre-" + task.ID

	e.sink.Deliver(Prompt{
		Key:      key,
		Title:    "⏰ Task Starting Soon: " + task.Title,
		Body:     motivation + "\n\nStarts in 15 minutes!",
		Severity: taskSeverity(task),
		Action:   e.completeTask(task.ID),
	})
	e.show("⏰ Task Starting Soon: "+task.Title, motivation, key)
	e.record(models.Notification{
		Type:     models.NotifyPriorityAlert,
		Title:    "⏰ Task Starting Soon",
		Message:  fmt.Sprintf("%q starts in 15 minutes.\n\n%s", task.Title, motivation),
		Priority: models.PriorityMedium,
	})
}

func (e *Engine) taskDue(task models.Task) {
	motivation := e.random(taskMessages)
	key := "task-due-" + task.ID
	priority := strings.ToUpper(string(task.Priority))

	action := e.completeTask(task.ID)
	action.Label = "✓ Complete"
	e.sink.Deliver(Prompt{
		Key:      key,
		Title:    "🚀 Task Time: " + task.Title,
		Body:     fmt.Sprintf("%s\n\nPriority: %s", motivation, priority),
		Severity: taskSeverity(task),
		Action:   action,
	})
	e.show("🚀 Task Time: "+task.Title, fmt.Sprintf("Priority: %s - %s", priority, motivation), key)
	e.record(models.Notification{
		Type:     models.NotifyPriorityAlert,
		Title:    "🚀 Task Due Now",
		Message:  fmt.Sprintf("%q is due!\n\n%s", task.Title, motivation),
		Priority: models.PriorityHigh,
	})
}

// CheckHabits fires a pre-alert when a habit's reminder time is (3, 5]
// minutes away and the reminder itself within [-2, 2] minutes. Both are
// keyed by calendar day. Habits already done today are skipped.
func (e *Engine) CheckHabits(now time.Time) {
	today := utils.DayIndex(now)
	date := utils.DateKey(now)
	nowMinutes := now.Hour()*60 + now.Minute()

	for _, habit := range e.store.Habits() {
		if habit.ReminderTime == "" {
			continue
		}
		dueKey := fmt.Sprintf("habit-%s-%s", habit.ID, date)
		if e.Fired(dueKey) || habit.DoneOn(today) {
			continue
		}
		reminderMinutes, err := utils.ParseTimeToMinutes(habit.ReminderTime)
		if err != nil {
			logger.Debug("Skipping habit with bad reminder time", "habit", habit.ID, "time", habit.ReminderTime, "error", err)
			continue
		}
		diff := reminderMinutes - nowMinutes

		preKey := fmt.Sprintf("habit-pre-%s-%s", habit.ID, date)
		if diff > 3 && diff <= 5 && e.claim(preKey) {
			e.habitSoon(habit, preKey)
		}
		if diff >= -2 && diff <= 2 && e.claim(dueKey) {
			e.habitDue(habit, today, dueKey)
		}
	}
}

func (e *Engine) habitSoon(habit models.Habit, key string) {
	motivation := e.random(habitMessages)

	e.sink.Deliver(Prompt{
		Key:      key,
		Title:    "🔔 Habit reminder in 5 min",
		Body:     habit.Title + "\n\n" + motivation,
		Severity: models.PriorityMedium,
	})
	e.show("🔔 Habit reminder in 5 min", habit.Title, key)
	e.record(models.Notification{
		Type:     models.NotifyHabitReminder,
		Title:    "🔔 Habit reminder in 5 min",
		Message:  fmt.Sprintf("%q is coming up.\n\n%s", habit.Title, motivation),
		Priority: models.PriorityMedium,
	})
}

func (e *Engine) habitDue(habit models.Habit, today int, key string) {
	motivation := e.random(habitMessages)
	streak := ""
	if habit.Streak > 0 {
		streak = fmt.Sprintf("🔥 %d day streak!", habit.Streak)
	}

	id := habit.ID
	e.sink.Deliver(Prompt{
		Key:      key,
		Title:    "🔥 Habit Time: " + habit.Title,
		Body:     motivation + "\n\n" + streak,
		Severity: models.PriorityMedium,
		Action:   &Action{Label: "✓ Done", Run: func() { e.store.ToggleHabitDay(id, today) }},
	})
	e.show("🔥 Habit Time: "+habit.Title, strings.TrimSpace(motivation+" "+streak), key)
	e.record(models.Notification{
		Type:     models.NotifyHabitReminder,
		Title:    "🔥 Habit Reminder",
		Message:  fmt.Sprintf("Time for %q!\n\n%s\n%s", habit.Title, motivation, streak),
		Priority: models.PriorityHigh,
	})
}

// CheckRevisions fires once for every pending revision that is due.
// Revisions that became due within the last day are urgent.
func (e *Engine) CheckRevisions(now time.Time) {
	for _, rev := range e.store.RevisionTasks() {
		if !rev.IsDue(now) {
			continue
		}
		key := "revision-" + rev.ID
		if !e.claim(key) {
			continue
		}

		n := rev.RevisionNumber
		if n == 0 {
			n = 1
		}
		method := RevisionMethod(n)
		encouragement := e.random(encouragementMessages)
		severity := models.PriorityMedium
		if now.Sub(rev.ScheduledFor) < urgentRevision {
			severity = models.PriorityHigh
		}

		id := rev.ID
		e.sink.Deliver(Prompt{
			Key:      key,
			Title:    fmt.Sprintf("📝 Revision #%d: %s", n, rev.TopicName),
			Body:     fmt.Sprintf("%s > %s\n\n💡 %s\n\n%s", rev.SubjectName, rev.ChapterName, method, encouragement),
			Severity: severity,
			Action:   &Action{Label: "✓ Revised", Run: func() { e.store.CompleteRevision(id) }},
		})
		e.show(fmt.Sprintf("📝 Revision #%d Due!", n), rev.TopicName+" - "+method, key)
		e.record(models.Notification{
			Type:     models.NotifyStudyReminder,
			Title:    fmt.Sprintf("📝 Revision #%d Due: %s", n, rev.TopicName),
			Message:  fmt.Sprintf("%s > %s\n\nSuggested: %s\n\n%s", rev.SubjectName, rev.ChapterName, method, encouragement),
			Priority: severity,
		})
	}
}

// CheckNotifications delivers unread notifications whose time is within a
// minute of now as platform alerts, once each.
func (e *Engine) CheckNotifications(now time.Time) {
	for _, n := range e.store.Notifications() {
		if n.Read || !n.WithinWindow(now, adHocWindow) {
			continue
		}
		if !e.claim(n.ID) {
			continue
		}
		e.show(n.Title, n.Message, n.ID)
	}
}
