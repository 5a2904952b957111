package study

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/config"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/storage"
)

func newTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	ctx := cli.NewContextWith(config.Default(), "", storage.NewMemoryStore())
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

func TestTopicStatusSchedulesRevisions(t *testing.T) {
	ctx, out := newTestContext(t)

	if err := (&TopicStatusCmd{ID: "math-01-01", Status: "revised"}).Run(ctx); err != nil {
		t.Fatalf("topic status failed: %v", err)
	}
	if !strings.Contains(out.String(), "Scheduled 5 revisions") {
		t.Errorf("expected revisions to be scheduled, got %q", out.String())
	}

	out.Reset()
	if err := (&RevisionListCmd{}).Run(ctx); err != nil {
		t.Fatalf("revision list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No revisions due.") {
		t.Errorf("expected nothing due yet, got %q", out.String())
	}

	out.Reset()
	if err := (&RevisionListCmd{All: true}).Run(ctx); err != nil {
		t.Fatalf("revision list --all failed: %v", err)
	}
	if got := strings.Count(out.String(), "Sets and Operations"); got != 5 {
		t.Errorf("expected 5 revisions listed, got %d:\n%s", got, out.String())
	}

	if err := ctx.Open(); err != nil {
		t.Fatal(err)
	}
	first := ctx.State.RevisionTasks()[0]
	ctx.Close()

	out.Reset()
	if err := (&RevisionDoneCmd{ID: first.ID}).Run(ctx); err != nil {
		t.Fatalf("revision done failed: %v", err)
	}
	if err := ctx.Open(); err != nil {
		t.Fatal(err)
	}
	defer ctx.Close()
	for _, r := range ctx.State.RevisionTasks() {
		if r.ID == first.ID && r.Status != models.RevisionDone {
			t.Errorf("expected revision %s done, got %q", r.ID, r.Status)
		}
	}
}

func TestTopicStatusErrors(t *testing.T) {
	tests := []struct {
		name    string
		cmd     TopicStatusCmd
		wantErr error
	}{
		{"ambiguous prefix", TopicStatusCmd{ID: "math-01", Status: "practiced"}, cli.ErrAmbiguousID},
		{"unknown topic", TopicStatusCmd{ID: "nope", Status: "practiced"}, cli.ErrNotFound},
		{"bad status", TopicStatusCmd{ID: "math-01-01", Status: "finished"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := newTestContext(t)
			err := tt.cmd.Run(ctx)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestTopicListFilters(t *testing.T) {
	ctx, out := newTestContext(t)
	if err := (&TopicStatusCmd{ID: "math-01-02", Status: "in-progress"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := (&TopicListCmd{Status: "in progress"}).Run(ctx); err != nil {
		t.Fatalf("topic list failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Venn Diagrams") || strings.Contains(got, "Sets and Operations") {
		t.Errorf("unexpected filtered list:\n%s", got)
	}
}

func TestSessionLogUpdatesCounters(t *testing.T) {
	ctx, out := newTestContext(t)

	if err := (&SessionLogCmd{Minutes: 25, SessionFlags: SessionFlags{Subject: "Maths", Category: "nimcet", Type: "focus"}}).Run(ctx); err != nil {
		t.Fatalf("session log failed: %v", err)
	}
	if !strings.Contains(out.String(), "Logged 25 min focus session") {
		t.Errorf("unexpected output %q", out.String())
	}

	if err := ctx.Open(); err != nil {
		t.Fatal(err)
	}
	sessions := ctx.State.StudySessions()
	cfg := ctx.State.Settings()
	ctx.Close()

	if len(sessions) != 1 || sessions[0].Duration != 1500 || sessions[0].EndTime == nil {
		t.Fatalf("unexpected sessions %+v", sessions)
	}
	if cfg.TodayStudyTime != 1500 || cfg.TotalStudyTime != 1500 {
		t.Errorf("expected study time counters of 1500s, got today=%d total=%d", cfg.TodayStudyTime, cfg.TotalStudyTime)
	}
}

func TestSessionLogValidation(t *testing.T) {
	tests := []struct {
		name string
		cmd  SessionLogCmd
	}{
		{"zero minutes", SessionLogCmd{Minutes: 0, SessionFlags: SessionFlags{Category: "NIMCET", Type: "focus"}}},
		{"bad category", SessionLogCmd{Minutes: 10, SessionFlags: SessionFlags{Category: "MBA", Type: "focus"}}},
		{"bad type", SessionLogCmd{Minutes: 10, SessionFlags: SessionFlags{Category: "BCA", Type: "nap"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := newTestContext(t)
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestSessionStartStop(t *testing.T) {
	ctx, out := newTestContext(t)

	if err := (&SessionStopCmd{}).Run(ctx); !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
	start := &SessionStartCmd{SessionFlags: SessionFlags{Category: "BCA", Type: "practice"}}
	if err := start.Run(ctx); err != nil {
		t.Fatalf("session start failed: %v", err)
	}
	if err := start.Run(ctx); err == nil {
		t.Error("expected a second start to fail")
	}
	if err := (&SessionStopCmd{}).Run(ctx); err != nil {
		t.Fatalf("session stop failed: %v", err)
	}

	if err := ctx.Open(); err != nil {
		t.Fatal(err)
	}
	defer ctx.Close()
	if _, ok := ctx.State.ActiveSession(); ok {
		t.Error("expected no active session after stop")
	}
	sessions := ctx.State.StudySessions()
	if len(sessions) != 1 || sessions[0].Type != models.SessionPractice || sessions[0].Category != models.SessionBCA {
		t.Errorf("unexpected sessions %+v", sessions)
	}
	if !strings.Contains(out.String(), "Logged practice session") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestTestLog(t *testing.T) {
	tests := []struct {
		name    string
		cmd     TestLogCmd
		wantErr bool
	}{
		{"valid", TestLogCmd{Name: "Mock 1", Score: 72, Total: 120, Type: "full"}, false},
		{"empty name", TestLogCmd{Name: " ", Score: 1, Total: 2, Type: "full"}, true},
		{"zero total", TestLogCmd{Name: "Mock", Score: 0, Total: 0, Type: "full"}, true},
		{"score above total", TestLogCmd{Name: "Mock", Score: 5, Total: 4, Type: "full"}, true},
		{"bad type", TestLogCmd{Name: "Mock", Score: 1, Total: 4, Type: "quiz"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := newTestContext(t)
			err := tt.cmd.Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !strings.Contains(out.String(), "(60.0%)") {
				t.Errorf("unexpected output %q", out.String())
			}
		})
	}
}

func TestBadgeListUnlocksOnTests(t *testing.T) {
	ctx, out := newTestContext(t)
	if err := (&TestLogCmd{Name: "Mock 1", Score: 50, Total: 100, Type: "full"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := (&BadgeCmd{}).Run(ctx); err != nil {
		t.Fatalf("badge list failed: %v", err)
	}
	if !strings.Contains(out.String(), "1 tests") {
		t.Errorf("expected metrics line to count the test, got:\n%s", out.String())
	}
}
