package tasks

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/utils"
)

type TaskAddCmd struct {
	Title    string `arg:"" help:"Task title."`
	Category string `short:"c" help:"Category (NIMCET|BCA|Personal)." default:"Personal"`
	Priority string `short:"p" help:"Priority (low|medium|high)." default:"medium"`
	Due      string `short:"d" help:"Due date (YYYY-MM-DD, 'YYYY-MM-DD HH:MM' or RFC 3339). Tasks with a due time get reminders."`
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	category, err := cli.ParseCategory(c.Category)
	if err != nil {
		return err
	}
	priority, err := cli.ParsePriority(c.Priority)
	if err != nil {
		return err
	}
	task := models.Task{Title: strings.TrimSpace(c.Title), Category: category, Priority: priority}
	if c.Due != "" {
		due, err := utils.ParseDue(c.Due, time.Local)
		if err != nil {
			return err
		}
		task.DueDate = &due
	}
	if err := task.Validate(); err != nil {
		return err
	}

	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	added := ctx.State.AddTask(task)
	ctx.Printf("✓ Added task %s: %s\n", cli.ShortID(added.ID), added.Title)
	return nil
}

type TaskListCmd struct {
	All      bool   `short:"a" help:"Include completed tasks."`
	Category string `short:"c" help:"Only show this category."`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	var category models.TaskCategory
	if c.Category != "" {
		var err error
		if category, err = cli.ParseCategory(c.Category); err != nil {
			return err
		}
	}

	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	tasks := ctx.State.Tasks()
	tasks = slices.DeleteFunc(tasks, func(t models.Task) bool {
		return (t.Completed && !c.All) || (category != "" && t.Category != category)
	})
	sortTasks(tasks)

	if len(tasks) == 0 {
		ctx.Println("No tasks found.")
		return nil
	}
	for _, t := range tasks {
		ctx.Println(FormatTask(t, ctx.State.Now()))
	}
	return nil
}

// sortTasks orders open tasks before done ones, then by due date with
// undated tasks last
func sortTasks(tasks []models.Task) {
	slices.SortStableFunc(tasks, func(a, b models.Task) int {
		if a.Completed != b.Completed {
			if a.Completed {
				return 1
			}
			return -1
		}
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return a.CreatedAt.Compare(b.CreatedAt)
		case a.DueDate == nil:
			return 1
		case b.DueDate == nil:
			return -1
		}
		return a.DueDate.Compare(*b.DueDate)
	})
}

// FormatTask renders one task line for list output
func FormatTask(t models.Task, now time.Time) string {
	mark := "[ ]"
	if t.Completed {
		mark = "[✓]"
	}
	line := fmt.Sprintf("%s %s  %-8s %-6s %s", mark, cli.ShortID(t.ID), t.Category, t.Priority, t.Title)
	if t.DueDate != nil {
		due := t.DueDate.Local().Format(constants.DateFormat + " " + constants.TimeFormat)
		if !t.Completed && t.DueDate.Before(now) {
			due += " (overdue)"
		}
		line += "  due " + due
	}
	return line
}

type TaskDoneCmd struct {
	ID string `arg:"" help:"Task id or unique prefix."`
}

func (c *TaskDoneCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	id, err := resolve(ctx, c.ID)
	if err != nil {
		return err
	}
	ctx.State.CompleteTask(id)
	task, _ := ctx.State.Task(id)
	ctx.Printf("✓ Completed: %s\n", task.Title)
	return nil
}

type TaskEditCmd struct {
	ID       string  `arg:"" help:"Task id or unique prefix."`
	Title    *string `help:"New title."`
	Category *string `short:"c" help:"New category (NIMCET|BCA|Personal)."`
	Priority *string `short:"p" help:"New priority (low|medium|high)."`
	Due      *string `short:"d" help:"New due date; empty string clears it."`
	Reopen   bool    `help:"Mark the task as not completed."`
}

func (c *TaskEditCmd) patch() (models.TaskPatch, error) {
	var p models.TaskPatch
	if c.Title != nil {
		title := strings.TrimSpace(*c.Title)
		if title == "" {
			return p, fmt.Errorf("task title cannot be empty")
		}
		p.Title = &title
	}
	if c.Category != nil {
		category, err := cli.ParseCategory(*c.Category)
		if err != nil {
			return p, err
		}
		p.Category = &category
	}
	if c.Priority != nil {
		priority, err := cli.ParsePriority(*c.Priority)
		if err != nil {
			return p, err
		}
		p.Priority = &priority
	}
	if c.Due != nil {
		var due *time.Time
		if strings.TrimSpace(*c.Due) != "" {
			parsed, err := utils.ParseDue(*c.Due, time.Local)
			if err != nil {
				return p, err
			}
			due = &parsed
		}
		p.DueDate = &due
	}
	if c.Reopen {
		open := false
		p.Completed = &open
	}
	return p, nil
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	p, err := c.patch()
	if err != nil {
		return err
	}

	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	id, err := resolve(ctx, c.ID)
	if err != nil {
		return err
	}
	ctx.State.UpdateTask(id, p)
	task, _ := ctx.State.Task(id)
	ctx.Println(FormatTask(task, ctx.State.Now()))
	return nil
}

type TaskDeleteCmd struct {
	ID string `arg:"" help:"Task id or unique prefix."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	id, err := resolve(ctx, c.ID)
	if err != nil {
		return err
	}
	task, _ := ctx.State.Task(id)
	ctx.State.DeleteTask(id)
	ctx.Printf("✓ Deleted task: %s\n", task.Title)
	return nil
}

func resolve(ctx *cli.Context, prefix string) (string, error) {
	ids := cli.IDs(ctx.State.Tasks(), func(t models.Task) string { return t.ID })
	return cli.MatchID("task", ids, prefix)
}
