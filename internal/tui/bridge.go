package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/focusflow/internal/cloudsync"
	apperrors "github.com/julianstephens/focusflow/internal/errors"
	"github.com/julianstephens/focusflow/internal/logger"
	"github.com/julianstephens/focusflow/internal/reminder"
	"github.com/julianstephens/focusflow/internal/state"
)

// Bridge connects background workers to a running program. It serves as
// the reminder engine's PromptSink and the sync coordinator's Confirm and
// Warn hooks. Before a program is attached, prompts go to the log, every
// offer is declined and warnings are printed to out.
type Bridge struct {
	mu   sync.Mutex
	send func(tea.Msg)
	out  io.Writer
}

func NewBridge(out io.Writer) *Bridge {
	if out == nil {
		out = io.Discard
	}
	return &Bridge{out: out}
}

func (b *Bridge) attach(p *tea.Program) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.send = p.Send
}

func (b *Bridge) detach() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.send = nil
}

// post hands msg to the program without blocking the caller. Program.Send
// blocks until the event loop reads, and the event loop may itself be
// waiting on the store.
func (b *Bridge) post(msg tea.Msg) bool {
	b.mu.Lock()
	send := b.send
	b.mu.Unlock()
	if send == nil {
		return false
	}
	go send(msg)
	return true
}

func (b *Bridge) Deliver(p reminder.Prompt) {
	if !b.post(PromptMsg{Prompt: p}) {
		reminder.LogSink{}.Deliver(p)
	}
}

// Confirm blocks until the user answers the offer or ctx is done
func (b *Bridge) Confirm(ctx context.Context, offer cloudsync.Offer) bool {
	reply := make(chan bool, 1)
	if !b.post(OfferMsg{Offer: offer, Reply: reply}) {
		logger.Info("Newer remote data available; run 'focusflow sync pull' to load it", "device", offer.Device, "lastUpdated", offer.LastUpdated)
		return false
	}
	select {
	case accept := <-reply:
		return accept
	case <-ctx.Done():
		return false
	}
}

func (b *Bridge) Warn(err error) {
	logger.Warn("Sync failed", "error", err)
	wrapped := fmt.Errorf("sync failed: %w", err)
	if b.post(WarnMsg{Err: wrapped}) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprintln(b.out, apperrors.FormatWarning(wrapped))
}

// Run shows the interface until the user quits or ctx is done
func Run(ctx context.Context, store *state.Store, bridge *Bridge) error {
	p := tea.NewProgram(NewModel(store, store.Now), tea.WithAltScreen(), tea.WithContext(ctx))
	bridge.attach(p)
	defer bridge.detach()

	unsubscribe := store.Subscribe(func(c state.Change) {
		if !c.OnlyLastSync() {
			bridge.post(StoreChangedMsg{Change: c})
		}
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run interface: %w", err)
	}
	return nil
}
