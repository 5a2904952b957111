package study

import (
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/models"
)

type TopicCmd struct {
	List    TopicListCmd    `cmd:"" default:"1" help:"List syllabus topics."`
	Status  TopicStatusCmd  `cmd:"" help:"Set a topic's progress. Marking a topic revised schedules its revisions."`
	Chapter TopicChapterCmd `cmd:"" help:"Set a chapter's progress."`
}

type TopicListCmd struct {
	Subject string `short:"s" help:"Only show subjects containing this text."`
	Status  string `help:"Only show topics with this progress (not-started|in-progress|practiced|revised)."`
}

func (c *TopicListCmd) Run(ctx *cli.Context) error {
	var status models.Progress
	if c.Status != "" {
		var err error
		if status, err = parseProgress(c.Status); err != nil {
			return err
		}
	}

	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	subject := strings.ToLower(strings.TrimSpace(c.Subject))
	topics := slices.DeleteFunc(ctx.State.Topics(), func(t models.TopicStatus) bool {
		if subject != "" && !strings.Contains(strings.ToLower(t.Subject), subject) {
			return true
		}
		return status != "" && t.Status != status
	})
	if len(topics) == 0 {
		ctx.Println("No topics found.")
		return nil
	}

	chapter := ""
	for _, t := range topics {
		if heading := t.Subject + " / " + t.Chapter; heading != chapter {
			chapter = heading
			ctx.Println(heading)
		}
		ctx.Printf("  %-12s %-11s %s\n", t.ID, t.Status, t.Topic)
	}
	ctx.Printf("\nSyllabus revised: %.1f%%\n", ctx.State.SyllabusCompletion())
	return nil
}

type TopicStatusCmd struct {
	ID     string `arg:"" help:"Topic id or unique prefix."`
	Status string `arg:"" help:"New progress (not-started|in-progress|practiced|revised)."`
}

func (c *TopicStatusCmd) Run(ctx *cli.Context) error {
	status, err := parseProgress(c.Status)
	if err != nil {
		return err
	}

	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	topics := ctx.State.Topics()
	id, err := cli.MatchID("topic", cli.IDs(topics, func(t models.TopicStatus) string { return t.ID }), c.ID)
	if err != nil {
		return err
	}
	before := len(ctx.State.RevisionTasks())
	ctx.State.UpdateTopicStatus(id, status)

	topic, _ := ctx.State.Topic(id)
	ctx.Printf("✓ %s → %s\n", topic.Topic, topic.Status)
	if added := len(ctx.State.RevisionTasks()) - before; added > 0 {
		ctx.Printf("  Scheduled %d revisions\n", added)
	}
	return nil
}

type TopicChapterCmd struct {
	ID     string `arg:"" help:"Chapter id or unique prefix."`
	Status string `arg:"" help:"New progress (not-started|in-progress|practiced|revised)."`
}

func (c *TopicChapterCmd) Run(ctx *cli.Context) error {
	status, err := parseProgress(c.Status)
	if err != nil {
		return err
	}

	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	chapters := ctx.State.SyllabusProgress()
	id, err := cli.MatchID("chapter", cli.IDs(chapters, func(ch models.ChapterStatus) string { return ch.ID }), c.ID)
	if err != nil {
		return err
	}
	ctx.State.UpdateChapterStatus(id, status)
	i := slices.IndexFunc(chapters, func(ch models.ChapterStatus) bool { return ch.ID == id })
	ctx.Printf("✓ %s → %s\n", chapters[i].Chapter, status)
	return nil
}

func parseProgress(s string) (models.Progress, error) {
	p, ok := models.ParseProgress(s)
	if !ok {
		return "", fmt.Errorf("invalid progress %q: must be not-started, in-progress, practiced or revised", s)
	}
	return p, nil
}
