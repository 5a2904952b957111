package study

import (
	"fmt"
	"slices"
	"time"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/models"
)

type RevisionCmd struct {
	List RevisionListCmd `cmd:"" default:"1" help:"List due revisions."`
	Done RevisionDoneCmd `cmd:"" help:"Mark a revision done."`
}

type RevisionListCmd struct {
	All bool `short:"a" help:"Include upcoming and completed revisions."`
}

func (c *RevisionListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	now := ctx.State.Now()
	revisions := ctx.State.DueRevisions(now)
	if c.All {
		revisions = ctx.State.RevisionTasks()
		slices.SortStableFunc(revisions, func(a, b models.RevisionTask) int {
			return a.ScheduledFor.Compare(b.ScheduledFor)
		})
	}
	if len(revisions) == 0 {
		ctx.Println("No revisions due.")
		return nil
	}
	for _, r := range revisions {
		ctx.Println(FormatRevision(r, now))
	}
	return nil
}

// FormatRevision renders one revision line for list output
func FormatRevision(r models.RevisionTask, now time.Time) string {
	mark := "[ ]"
	switch {
	case r.Status == models.RevisionDone:
		mark = "[✓]"
	case r.IsDue(now):
		mark = "[!]"
	}
	return fmt.Sprintf("%s %s  %s  #%d  %s / %s / %s", mark, cli.ShortID(r.ID),
		r.ScheduledFor.Local().Format(constants.DateFormat), r.RevisionNumber,
		r.SubjectName, r.ChapterName, r.TopicName)
}

type RevisionDoneCmd struct {
	ID string `arg:"" help:"Revision id or unique prefix."`
}

func (c *RevisionDoneCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	revisions := ctx.State.RevisionTasks()
	id, err := cli.MatchID("revision", cli.IDs(revisions, func(r models.RevisionTask) string { return r.ID }), c.ID)
	if err != nil {
		return err
	}
	ctx.State.CompleteRevision(id)
	r := revisions[slices.IndexFunc(revisions, func(r models.RevisionTask) bool { return r.ID == id })]
	ctx.Printf("✓ Revision %d of %s done\n", r.RevisionNumber, r.TopicName)
	return nil
}
