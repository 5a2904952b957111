package notify

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

type NotifyCmd struct {
	List  NotifyListCmd  `cmd:"" default:"1" help:"Show the notification center."`
	Add   NotifyAddCmd   `cmd:"" help:"Add a notification or schedule an ad-hoc reminder."`
	Read  NotifyReadCmd  `cmd:"" help:"Mark notifications read."`
	Clear NotifyClearCmd `cmd:"" help:"Remove every notification."`
}

type NotifyListCmd struct {
	Unread bool `short:"u" help:"Only show unread notifications."`
}

func (c *NotifyListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	notes := ctx.State.Notifications()
	if c.Unread {
		notes = slices.DeleteFunc(notes, func(n models.Notification) bool { return n.Read })
	}
	if len(notes) == 0 {
		ctx.Println("No notifications.")
		return nil
	}
	slices.SortStableFunc(notes, func(a, b models.Notification) int { return b.Time.Compare(a.Time) })
	now := ctx.State.Now()
	for _, n := range notes {
		ctx.Println(FormatNotification(n, now))
	}
	ctx.Printf("\n%d unread\n", ctx.State.UnreadCount())
	return nil
}

// FormatNotification renders a notification as a header line and an
// indented message line
func FormatNotification(n models.Notification, now time.Time) string {
	mark := " "
	if !n.Read {
		mark = "●"
	}
	when := n.Time.Local().Format(constants.DateFormat + " " + constants.TimeFormat)
	if n.Time.After(now) {
		when = "scheduled " + when
	}
	line := fmt.Sprintf("%s %s  %-6s %s  %s", mark, cli.ShortID(n.ID), n.Priority, when, n.Title)
	if n.Message != "" {
		line += "\n    " + n.Message
	}
	return line
}

type NotifyAddCmd struct {
	Title    string `arg:"" help:"Notification title."`
	Message  string `arg:"" optional:"" help:"Notification body."`
	Type     string `short:"t" help:"Type (study_reminder|habit_reminder|session_missed|daily_summary|priority_alert)." default:"study_reminder"`
	Priority string `short:"p" help:"Priority (low|medium|high)." default:"medium"`
	At       string `help:"Deliver as a reminder at this time ('YYYY-MM-DD HH:MM' or RFC 3339)."`
}

func (c *NotifyAddCmd) Run(ctx *cli.Context) error {
	priority, err := cli.ParsePriority(c.Priority)
	if err != nil {
		return err
	}
	n := models.Notification{
		Type:     models.NotificationType(strings.ToLower(strings.TrimSpace(c.Type))),
		Title:    strings.TrimSpace(c.Title),
		Message:  strings.TrimSpace(c.Message),
		Priority: priority,
	}
	if c.At != "" {
		at, err := utils.ParseDue(c.At, time.Local)
		if err != nil {
			return err
		}
		n.Time = at
	}
	if err := n.Validate(); err != nil {
		return err
	}

	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	added := ctx.State.AddNotification(n)
	if added.Time.After(ctx.State.Now()) {
		ctx.Printf("✓ Reminder %s scheduled for %s\n", cli.ShortID(added.ID),
			added.Time.Local().Format(constants.DateFormat+" "+constants.TimeFormat))
		return nil
	}
	ctx.Printf("✓ Added notification %s\n", cli.ShortID(added.ID))
	return nil
}

type NotifyReadCmd struct {
	ID  string `arg:"" optional:"" help:"Notification id or unique prefix."`
	All bool   `short:"a" help:"Mark every notification read."`
}

func (c *NotifyReadCmd) Run(ctx *cli.Context) error {
	if c.ID == "" && !c.All {
		return fmt.Errorf("give a notification id or --all")
	}

	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	if c.All {
		ctx.State.MarkAllNotificationsRead()
		ctx.Println("✓ All notifications marked read")
		return nil
	}
	notes := ctx.State.Notifications()
	id, err := cli.MatchID("notification", cli.IDs(notes, func(n models.Notification) string { return n.ID }), c.ID)
	if err != nil {
		return err
	}
	ctx.State.MarkNotificationRead(id)
	ctx.Printf("✓ Marked %s read\n", cli.ShortID(id))
	return nil
}

type NotifyClearCmd struct{}

func (c *NotifyClearCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	ctx.State.ClearNotifications()
	ctx.Println("✓ Notifications cleared")
	return nil
}
