// Package cloudsync mirrors the state store to a remote snapshot store.
// Local changes are pushed after a quiet period; newer remote snapshots are
// only applied after the user confirms.
package cloudsync

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/logger"
	"github.com/julianstephens/focusflow/internal/remote"
	"github.com/julianstephens/focusflow/internal/state"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDebouncing
	PhasePushing
	PhaseChecking
	PhaseAwaitingUserChoice
)

func (p Phase) String() string {
	switch p {
	case PhaseDebouncing:
		return "debouncing"
	case PhasePushing:
		return "pushing"
	case PhaseChecking:
		return "checking"
	case PhaseAwaitingUserChoice:
		return "awaiting user choice"
	default:
		return "idle"
	}
}

// Offer describes a remote snapshot newer than the last sync
type Offer struct {
	Timestamp   int64
	Device      string
	LastUpdated string
	Data        state.Data
}

// ConfirmFunc asks the user whether to replace local state with an offer.
// It may block until the user answers or ctx is done.
type ConfirmFunc func(ctx context.Context, offer Offer) bool

// Options configures a Coordinator. Zero values fall back to defaults.
type Options struct {
	Device   string
	Debounce time.Duration
	// StartupDelay precedes the first check. Negative means no delay.
	StartupDelay time.Duration
	Clock        func() time.Time
	// Confirm answers apply prompts. Nil declines every offer.
	Confirm ConfirmFunc
	// Warn surfaces push failures to the user. Nil logs them.
	Warn func(error)
}

// Status is a point-in-time view of the coordinator
type Status struct {
	Phase      Phase
	LastPushed uint64
	LastSync   int64
	LastError  error
	AutoSync   bool
}

type Coordinator struct {
	store    *state.Store
	remote   remote.Store
	device   string
	debounce time.Duration
	startup  time.Duration
	clock    func() time.Time
	confirm  ConfirmFunc
	warn     func(error)

	pushMu sync.Mutex

	mu         sync.Mutex
	phase      Phase
	timer      *time.Timer
	gen        uint64
	lastPushed uint64
	lastErr    error
	ctx        context.Context
}

func New(store *state.Store, rs remote.Store, opts Options) *Coordinator {
	c := &Coordinator{
		store:    store,
		remote:   rs,
		device:   opts.Device,
		debounce: opts.Debounce,
		startup:  opts.StartupDelay,
		clock:    opts.Clock,
		confirm:  opts.Confirm,
		warn:     opts.Warn,
		ctx:      context.Background(),
	}
	if c.device == "" {
		c.device = constants.AppName
	}
	if c.debounce <= 0 {
		c.debounce = constants.DefaultSyncDebounce
	}
	if c.startup < 0 {
		c.startup = 0
	} else if c.startup == 0 {
		c.startup = constants.DefaultSyncStartupDelay
	}
	if c.clock == nil {
		c.clock = time.Now
	}
	if c.warn == nil {
		c.warn = func(err error) { logger.Warn("Sync failed", "error", err) }
	}
	return c
}

// Run subscribes to the store, performs the startup check when auto sync
// is enabled and pushes debounced changes until ctx is cancelled. The
// pending debounce timer is stopped on return; an in-flight push is not.
func (c *Coordinator) Run(ctx context.Context) error {
	c.mu.Lock()
	c.ctx = context.WithoutCancel(ctx)
	c.mu.Unlock()

	unsubscribe := c.store.Subscribe(c.onChange)
	defer unsubscribe()
	defer c.stopTimer()

	if c.store.Settings().AutoSyncEnabled {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(c.startup):
		}
		if _, err := c.Check(ctx); err != nil {
			logger.Warn("Startup sync check failed", "error", err)
		}
	}

	<-ctx.Done()
	return nil
}

// onChange runs synchronously inside the store's dispatch. It never
// mutates the store.
func (c *Coordinator) onChange(ch state.Change) {
	if ch.OnlyLastSync() {
		return
	}
	if ch.Origin != state.OriginLocal && ch.Origin != state.OriginExternal {
		return
	}
	if !c.store.Settings().AutoSyncEnabled {
		return
	}
	c.schedule()
}

// schedule (re)starts the debounce window
func (c *Coordinator) schedule() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}
	c.gen++
	gen := c.gen
	c.phase = PhaseDebouncing
	c.timer = time.AfterFunc(c.debounce, func() { c.fire(gen) })
}

func (c *Coordinator) fire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	ctx := c.ctx
	c.mu.Unlock()

	if err := c.Push(ctx); err != nil {
		c.warn(err)
	}
}

func (c *Coordinator) stopTimer() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
	if c.phase == PhaseDebouncing {
		c.phase = PhaseIdle
	}
}

func (c *Coordinator) setPhase(p Phase) {
	c.mu.Lock()
	c.phase = p
	c.mu.Unlock()
}

// settle returns to idle unless a newer change restarted the debounce
func (c *Coordinator) settle(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = err
	if c.timer == nil {
		c.phase = PhaseIdle
	}
}

// Push writes a full snapshot of the store to the remote and, on success,
// stamps the last sync time. Failures leave the last sync time unchanged.
func (c *Coordinator) Push(ctx context.Context) error {
	c.pushMu.Lock()
	defer c.pushMu.Unlock()

	c.mu.Lock()
	if c.timer == nil {
		c.phase = PhasePushing
	}
	c.mu.Unlock()

	data, rev := c.store.Data()
	raw, err := json.Marshal(data)
	if err != nil {
		err = fmt.Errorf("failed to encode snapshot: %w", err)
		c.settle(err)
		return err
	}

	now := c.clock()
	snap := remote.Snapshot{
		Timestamp:   now.UnixMilli(),
		Data:        raw,
		Device:      c.device,
		LastUpdated: now.UTC().Format(time.RFC3339),
	}
	if err := c.remote.Save(ctx, snap); err != nil {
		err = fmt.Errorf("failed to push snapshot: %w", err)
		c.settle(err)
		return err
	}

	c.store.SetLastSyncTimestamp(snap.Timestamp)

	c.mu.Lock()
	c.lastPushed = rev
	c.mu.Unlock()
	c.settle(nil)

	logger.Debug("Pushed snapshot", "revision", rev, "timestamp", snap.Timestamp)
	return nil
}

// Check loads the remote snapshot and, when it is newer than the last
// sync, offers it through Confirm. It reports whether local state was
// replaced.
func (c *Coordinator) Check(ctx context.Context) (bool, error) {
	offer, err := c.Fetch(ctx)
	if err != nil || offer == nil {
		c.settle(err)
		return false, err
	}

	c.setPhase(PhaseAwaitingUserChoice)
	accepted := c.confirm != nil && c.confirm(ctx, *offer)
	if !accepted {
		logger.Info("Remote snapshot not applied", "timestamp", offer.Timestamp, "device", offer.Device)
		c.settle(nil)
		return false, nil
	}

	c.Apply(*offer)
	c.settle(nil)
	return true, nil
}

// Fetch loads the remote snapshot and returns it as an offer when it is
// strictly newer than the last sync, or nil otherwise.
func (c *Coordinator) Fetch(ctx context.Context) (*Offer, error) {
	c.setPhase(PhaseChecking)

	snap, err := c.remote.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check remote snapshot: %w", err)
	}
	if snap == nil || snap.Timestamp <= c.store.Settings().LastSyncTimestamp {
		return nil, nil
	}

	var data state.Data
	if err := json.Unmarshal(snap.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to decode remote snapshot: %w", err)
	}
	return &Offer{
		Timestamp:   snap.Timestamp,
		Device:      snap.Device,
		LastUpdated: snap.LastUpdated,
		Data:        data,
	}, nil
}

// Apply replaces local state with the offer and adopts its timestamp as
// the last sync time.
func (c *Coordinator) Apply(offer Offer) {
	ch := c.store.ReplaceState(offer.Data, offer.Timestamp)

	c.mu.Lock()
	c.lastPushed = ch.Revision
	c.mu.Unlock()

	logger.Info("Applied remote snapshot", "timestamp", offer.Timestamp, "device", offer.Device)
}

func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	cfg := c.store.Settings()
	return Status{
		Phase:      c.phase,
		LastPushed: c.lastPushed,
		LastSync:   cfg.LastSyncTimestamp,
		LastError:  c.lastErr,
		AutoSync:   cfg.AutoSyncEnabled,
	}
}
