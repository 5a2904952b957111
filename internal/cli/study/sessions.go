package study

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/utils"
)

var ErrNoActiveSession = errors.New("no study session in progress")

type SessionCmd struct {
	Log   SessionLogCmd   `cmd:"" help:"Log a finished study session."`
	Start SessionStartCmd `cmd:"" help:"Start timing a study session."`
	Stop  SessionStopCmd  `cmd:"" help:"Stop the running session and log it."`
	List  SessionListCmd  `cmd:"" default:"1" help:"List recent study sessions."`
}

// SessionFlags are shared by session log and start
type SessionFlags struct {
	Subject  string `short:"s" help:"Subject studied."`
	Chapter  string `help:"Chapter studied."`
	Category string `short:"c" help:"Track (NIMCET|BCA)." default:"NIMCET"`
	Type     string `short:"t" help:"Session type (focus|practice)." default:"focus"`
}

func (f SessionFlags) session() (models.StudySession, error) {
	category, err := parseSessionCategory(f.Category)
	if err != nil {
		return models.StudySession{}, err
	}
	kind, err := parseSessionType(f.Type)
	if err != nil {
		return models.StudySession{}, err
	}
	return models.StudySession{
		Subject:  strings.TrimSpace(f.Subject),
		Chapter:  strings.TrimSpace(f.Chapter),
		Category: category,
		Type:     kind,
	}, nil
}

type SessionLogCmd struct {
	Minutes int `arg:"" help:"Session length in minutes."`
	SessionFlags
}

func (c *SessionLogCmd) Run(ctx *cli.Context) error {
	if c.Minutes <= 0 {
		return fmt.Errorf("minutes must be positive, got %d", c.Minutes)
	}
	sess, err := c.session()
	if err != nil {
		return err
	}

	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	now := ctx.State.Now()
	end := now
	sess.Duration = c.Minutes * 60
	sess.StartTime = now.Add(-time.Duration(sess.Duration) * time.Second)
	sess.EndTime = &end
	logged := recordSession(ctx, sess)
	ctx.Printf("✓ Logged %d min %s session %s\n", c.Minutes, logged.Type, cli.ShortID(logged.ID))
	return nil
}

type SessionStartCmd struct {
	SessionFlags
}

func (c *SessionStartCmd) Run(ctx *cli.Context) error {
	sess, err := c.session()
	if err != nil {
		return err
	}

	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	if active, ok := ctx.State.ActiveSession(); ok {
		return fmt.Errorf("a session started at %s is already running; stop it first",
			active.StartTime.Local().Format(constants.TimeFormat))
	}
	sess.StartTime = ctx.State.Now()
	ctx.State.SetActiveSession(&sess)
	ctx.Printf("▶ Started %s session at %s\n", sess.Type, sess.StartTime.Local().Format(constants.TimeFormat))
	return nil
}

type SessionStopCmd struct{}

func (c *SessionStopCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	sess, ok := ctx.State.ActiveSession()
	if !ok {
		return ErrNoActiveSession
	}
	end := ctx.State.Now()
	sess.EndTime = &end
	sess.Duration = max(0, int(end.Sub(sess.StartTime).Seconds()))
	logged := recordSession(ctx, sess)
	ctx.State.SetActiveSession(nil)
	ctx.Printf("■ Logged %s session %s (%s)\n", logged.Type, cli.ShortID(logged.ID), utils.FormatDuration(logged.Duration))
	return nil
}

// recordSession appends a finished session, adds it to the study time
// counters when auto-logging is on and refreshes badge progress
func recordSession(ctx *cli.Context, sess models.StudySession) models.StudySession {
	logged := ctx.State.AddStudySession(sess)
	if cfg := ctx.State.Settings(); cfg.AutoLogStudyTime {
		ctx.State.SetTodayStudyTime(cfg.TodayStudyTime + logged.Duration)
		ctx.State.SetTotalStudyTime(cfg.TotalStudyTime + logged.Duration)
	}
	ctx.State.CheckAndUnlockBadges()
	return logged
}

type SessionListCmd struct {
	Limit int `short:"n" help:"Number of sessions to show." default:"10"`
}

func (c *SessionListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	if active, ok := ctx.State.ActiveSession(); ok {
		ctx.Printf("▶ Running: %s session since %s\n", active.Type, active.StartTime.Local().Format(constants.TimeFormat))
	}

	sessions := ctx.State.StudySessions()
	if len(sessions) == 0 {
		ctx.Println("No study sessions logged.")
		return nil
	}
	slices.Reverse(sessions)
	total := 0
	for _, s := range sessions {
		total += s.Duration
	}
	if c.Limit > 0 && len(sessions) > c.Limit {
		sessions = sessions[:c.Limit]
	}
	for _, s := range sessions {
		subject := s.Subject
		if s.Chapter != "" {
			subject += " / " + s.Chapter
		}
		ctx.Printf("%s  %s  %-8s %-6s %7s  %s\n", cli.ShortID(s.ID),
			s.StartTime.Local().Format(constants.DateFormat+" "+constants.TimeFormat),
			s.Type, s.Category, utils.FormatDuration(s.Duration), subject)
	}
	ctx.Printf("\nTotal: %s\n", utils.FormatDuration(total))
	return nil
}

func parseSessionCategory(s string) (models.SessionCategory, error) {
	for _, c := range []models.SessionCategory{models.SessionNIMCET, models.SessionBCA} {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid session category %q: must be NIMCET or BCA", s)
}

func parseSessionType(s string) (models.SessionType, error) {
	for _, t := range []models.SessionType{models.SessionFocus, models.SessionPractice} {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid session type %q: must be focus or practice", s)
}
