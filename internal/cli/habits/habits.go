package habits

import (
	"fmt"
	"strings"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/utils"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits with this week's history." default:"1"`
	Toggle HabitToggleCmd `cmd:"" help:"Toggle a habit for today or another weekday."`
	Streak HabitStreakCmd `cmd:"" help:"Set a habit's streak."`
	Remind HabitRemindCmd `cmd:"" help:"Set or clear a habit's daily reminder time."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit."`
}

var dayNames = [models.DaysPerWeek]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

type HabitAddCmd struct {
	Title    string `arg:"" help:"Habit title."`
	Reminder string `short:"r" help:"Daily reminder time (HH:MM)."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	habit := models.Habit{Title: strings.TrimSpace(c.Title), ReminderTime: c.Reminder}
	if err := habit.Validate(); err != nil {
		return err
	}

	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	added := ctx.State.AddHabit(habit)
	ctx.Printf("✓ Added habit %s: %s\n", cli.ShortID(added.ID), added.Title)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	habits := ctx.State.Habits()
	if len(habits) == 0 {
		ctx.Println("No habits yet. Add one with 'focusflow habit add'.")
		return nil
	}

	today := utils.DayIndex(ctx.State.Now())
	ctx.Printf("%-8s  %s  %-6s  %s\n", "ID", strings.Join(dayNames[:], " "), "Streak", "Habit")
	for _, h := range habits {
		ctx.Println(FormatHabit(h, today))
	}
	return nil
}

// FormatHabit renders the week as a row of marks with today bracketed
func FormatHabit(h models.Habit, today int) string {
	var week strings.Builder
	for i, done := range h.WeeklyHistory {
		if i > 0 {
			week.WriteByte(' ')
		}
		mark := "·"
		if done {
			mark = "✓"
		}
		if i == today {
			mark += "<"
		} else {
			mark += " "
		}
		week.WriteString(mark)
	}
	line := fmt.Sprintf("%-8s  %s  %-6d  %s", cli.ShortID(h.ID), week.String(), h.Streak, h.Title)
	if h.ReminderTime != "" {
		line += " (⏰ " + h.ReminderTime + ")"
	}
	return line
}

type HabitToggleCmd struct {
	ID  string `arg:"" help:"Habit id or unique prefix."`
	Day string `help:"Weekday to toggle (su|mo|tu|we|th|fr|sa); defaults to today."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	day := utils.DayIndex(ctx.State.Now())
	if c.Day != "" {
		var err error
		if day, err = ParseDay(c.Day); err != nil {
			return err
		}
	}

	id, err := resolve(ctx, c.ID)
	if err != nil {
		return err
	}
	ctx.State.ToggleHabitDay(id, day)
	habit, _ := ctx.State.Habit(id)
	if habit.DoneOn(day) {
		ctx.Printf("✓ %s marked done for %s\n", habit.Title, dayNames[day])
	} else {
		ctx.Printf("○ %s unmarked for %s\n", habit.Title, dayNames[day])
	}
	return nil
}

// ParseDay accepts a weekday name or abbreviation, or 0-6 with Sunday as 0
func ParseDay(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) == 1 && s[0] >= '0' && s[0] <= '6' {
		return int(s[0] - '0'), nil
	}
	if len(s) >= 2 {
		for i, name := range dayNames {
			if strings.HasPrefix(s, strings.ToLower(name)) {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("invalid weekday: %s", s)
}

type HabitStreakCmd struct {
	ID     string `arg:"" help:"Habit id or unique prefix."`
	Streak int    `arg:"" help:"Streak in days."`
}

func (c *HabitStreakCmd) Run(ctx *cli.Context) error {
	if c.Streak < 0 {
		return fmt.Errorf("streak cannot be negative")
	}
	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	id, err := resolve(ctx, c.ID)
	if err != nil {
		return err
	}
	ctx.State.UpdateHabit(id, models.HabitPatch{Streak: &c.Streak})
	ctx.Printf("✓ Streak set to %d days\n", c.Streak)
	return nil
}

type HabitRemindCmd struct {
	ID   string `arg:"" help:"Habit id or unique prefix."`
	Time string `arg:"" optional:"" help:"Reminder time (HH:MM); omit to clear."`
}

func (c *HabitRemindCmd) Run(ctx *cli.Context) error {
	if c.Time != "" && !utils.ValidateTimeFormat(c.Time) {
		return fmt.Errorf("invalid reminder time format (expected HH:MM): %s", c.Time)
	}
	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	id, err := resolve(ctx, c.ID)
	if err != nil {
		return err
	}
	ctx.State.UpdateHabit(id, models.HabitPatch{ReminderTime: &c.Time})
	if c.Time == "" {
		ctx.Println("✓ Reminder cleared")
	} else {
		ctx.Printf("✓ Reminder set for %s\n", c.Time)
	}
	return nil
}

type HabitDeleteCmd struct {
	ID string `arg:"" help:"Habit id or unique prefix."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	id, err := resolve(ctx, c.ID)
	if err != nil {
		return err
	}
	habit, _ := ctx.State.Habit(id)
	ctx.State.DeleteHabit(id)
	ctx.Printf("✓ Deleted habit: %s\n", habit.Title)
	return nil
}

func resolve(ctx *cli.Context, prefix string) (string, error) {
	ids := cli.IDs(ctx.State.Habits(), func(h models.Habit) string { return h.ID })
	return cli.MatchID("habit", ids, prefix)
}
