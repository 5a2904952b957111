package reminder

import (
	"github.com/julianstephens/focusflow/internal/logger"
	"github.com/julianstephens/focusflow/internal/models"
)

// Prompt is an ephemeral, dismissible alert with at most one action
type Prompt struct {
	Key      string
	Title    string
	Body     string
	Severity models.Priority
	Action   *Action
}

// Action is the primary button of a prompt. Run performs the matching
// store mutation.
type Action struct {
	Label string
	Run   func()
}

// PromptSink receives prompts as alerts fire. Deliver must not block the
// engine for long.
type PromptSink interface {
	Deliver(p Prompt)
}

// PromptSinkFunc adapts a function to PromptSink
type PromptSinkFunc func(Prompt)

func (f PromptSinkFunc) Deliver(p Prompt) { f(p) }

// LogSink writes prompts to the log and drops their actions
type LogSink struct{}

func (LogSink) Deliver(p Prompt) {
	logger.Info(p.Title, "key", p.Key, "severity", p.Severity, "body", p.Body)
}

// Platform is a best-effort OS level alert channel
type Platform interface {
	RequestPermission() bool
	Show(title, body, tag string) error
}
