package tasks

import (
	"bytes"
	"strings"
	"testing"
	"time"

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

func TestTaskLifecycle(t *testing.T) {
	ctx, out := newTestContext(t)

	add := &TaskAddCmd{Title: "Matrices practice", Category: "nimcet", Priority: "HIGH", Due: "2030-01-02 10:00"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	tasks := ctx.State.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	task := tasks[0]
	if task.Category != models.CategoryNIMCET || task.Priority != models.PriorityHigh || task.DueDate == nil {
		t.Errorf("unexpected task %+v", task)
	}

	title := "Matrix drills"
	edit := &TaskEditCmd{ID: task.ID[:6], Title: &title}
	if err := edit.Run(ctx); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	if err := (&TaskDoneCmd{ID: task.ID}).Run(ctx); err != nil {
		t.Fatalf("done failed: %v", err)
	}
	got, _ := ctx.State.Task(task.ID)
	if !got.Completed || got.CompletedAt == nil || got.Title != title {
		t.Errorf("unexpected task after done: %+v", got)
	}

	out.Reset()
	if err := (&TaskListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No tasks found") {
		t.Errorf("completed task listed without --all:\n%s", out.String())
	}
	out.Reset()
	if err := (&TaskListCmd{All: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "[✓]") {
		t.Errorf("expected completed task in --all listing:\n%s", out.String())
	}

	if err := (&TaskDeleteCmd{ID: task.ID}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(ctx.State.Tasks()) != 0 {
		t.Error("task not deleted")
	}
}

func TestTaskAddValidation(t *testing.T) {
	tests := []struct {
		name string
		cmd  TaskAddCmd
	}{
		{"blank title", TaskAddCmd{Title: "  ", Category: "Personal", Priority: "low"}},
		{"bad category", TaskAddCmd{Title: "x", Category: "School", Priority: "low"}},
		{"bad priority", TaskAddCmd{Title: "x", Category: "BCA", Priority: "urgent"}},
		{"bad due", TaskAddCmd{Title: "x", Category: "BCA", Priority: "low", Due: "tomorrow"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := newTestContext(t)
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected error")
			}
			if len(ctx.State.Tasks()) != 0 {
				t.Error("invalid task was stored")
			}
		})
	}
}

func TestTaskEditClearsDue(t *testing.T) {
	ctx, _ := newTestContext(t)
	due := time.Date(2030, 1, 2, 10, 0, 0, 0, time.UTC)
	task := ctx.State.AddTask(models.Task{Title: "Read", DueDate: &due})

	empty := ""
	if err := (&TaskEditCmd{ID: task.ID, Due: &empty}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	got, _ := ctx.State.Task(task.ID)
	if got.DueDate != nil {
		t.Errorf("due date not cleared: %v", got.DueDate)
	}
}

func TestSortTasks(t *testing.T) {
	d1 := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.Add(time.Hour)
	tasks := []models.Task{
		{ID: "done", Completed: true, DueDate: &d1},
		{ID: "undated"},
		{ID: "later", DueDate: &d2},
		{ID: "sooner", DueDate: &d1},
	}
	sortTasks(tasks)
	var order []string
	for _, t := range tasks {
		order = append(order, t.ID)
	}
	if strings.Join(order, ",") != "sooner,later,undated,done" {
		t.Errorf("order = %v", order)
	}
}
