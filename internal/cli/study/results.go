package study

import (
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/models"
)

type TestCmd struct {
	Log  TestLogCmd  `cmd:"" help:"Record a mock test score."`
	List TestListCmd `cmd:"" default:"1" help:"List mock test results."`
}

type TestLogCmd struct {
	Name    string  `arg:"" help:"Test name."`
	Score   float64 `arg:"" help:"Score obtained."`
	Total   float64 `arg:"" help:"Maximum score."`
	Subject string  `short:"s" help:"Subject tested." default:"General"`
	Type    string  `short:"t" help:"Test scope (full|topic|chapter)." default:"full"`
}

func (c *TestLogCmd) Run(ctx *cli.Context) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("test name cannot be empty")
	}
	if c.Total <= 0 {
		return fmt.Errorf("total must be positive, got %g", c.Total)
	}
	if c.Score < 0 || c.Score > c.Total {
		return fmt.Errorf("score %g is outside 0..%g", c.Score, c.Total)
	}
	kind, err := parseTestType(c.Type)
	if err != nil {
		return err
	}

	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	r := ctx.State.AddTestResult(models.TestResult{
		TestName:   name,
		Subject:    strings.TrimSpace(c.Subject),
		Score:      c.Score,
		TotalScore: c.Total,
		Type:       kind,
	})
	ctx.State.CheckAndUnlockBadges()
	ctx.Printf("✓ Recorded %s: %g/%g (%.1f%%)\n", r.TestName, r.Score, r.TotalScore, r.Percent())
	return nil
}

type TestListCmd struct{}

func (c *TestListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	defer ctx.Close()

	results := ctx.State.TestResults()
	if len(results) == 0 {
		ctx.Println("No test results recorded.")
		return nil
	}
	slices.SortStableFunc(results, func(a, b models.TestResult) int { return b.Date.Compare(a.Date) })
	sum := 0.0
	for _, r := range results {
		sum += r.Percent()
		ctx.Printf("%s  %s  %-7s %6.1f%%  %g/%g  %s (%s)\n", cli.ShortID(r.ID),
			r.Date.Local().Format(constants.DateFormat), r.Type, r.Percent(),
			r.Score, r.TotalScore, r.TestName, r.Subject)
	}
	ctx.Printf("\nAverage: %.1f%% over %d tests\n", sum/float64(len(results)), len(results))
	return nil
}

func parseTestType(s string) (models.TestType, error) {
	for _, t := range []models.TestType{models.TestFull, models.TestTopic, models.TestChapter} {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid test type %q: must be full, topic or chapter", s)
}
