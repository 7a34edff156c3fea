package playback

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/dshills/keyecho/internal/hook"
	"github.com/dshills/keyecho/internal/input/key"
	"github.com/dshills/keyecho/internal/input/record"
)

const (
	// DefaultCountdown is the standard pre-playback delay.
	DefaultCountdown = 3 * time.Second

	// DefaultTick is the countdown notification granularity.
	DefaultTick = 100 * time.Millisecond
)

// Options configures a Player.
type Options struct {
	// Injector synthesizes key transitions. Required.
	Injector hook.Injector

	// Clock drives all waits. Nil selects the wall clock.
	Clock clockwork.Clock

	// Countdown is the pre-playback delay. Zero disables the countdown;
	// negative values are treated as zero.
	Countdown time.Duration

	// Tick is the countdown notification step. Zero selects DefaultTick.
	Tick time.Duration

	// OnState is called after every state transition.
	OnState func(State)

	// OnTick is called with the remaining countdown after every tick.
	OnTick func(remaining time.Duration)

	// OnError is called when a playback aborts on an injection failure.
	OnError func(error)
}

// Player replays recordings. See the package documentation for the state
// machine and its guarantees.
type Player struct {
	injector  hook.Injector
	clock     clockwork.Clock
	countdown time.Duration
	tick      time.Duration
	onState   func(State)
	onTick    func(time.Duration)
	onError   func(error)

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a player. The injector is required.
func New(opts Options) (*Player, error) {
	if opts.Injector == nil {
		return nil, errors.New("playback: injector is required")
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	countdown := opts.Countdown
	if countdown < 0 {
		countdown = 0
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultTick
	}
	return &Player{
		injector:  opts.Injector,
		clock:     clock,
		countdown: countdown,
		tick:      tick,
		onState:   opts.OnState,
		onTick:    opts.OnTick,
		onError:   opts.OnError,
		state:     StateIdle,
	}, nil
}

// State returns the current playback state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Start begins a playback of rec under pol. It returns ErrEmptyRecording
// for an empty recording, ErrInvalidRepeatCount for a bad repeat policy
// and ErrAlreadyPlaying unless the player is idle. On success the player
// transitions to Countdown and playback proceeds on a background
// goroutine.
func (p *Player) Start(rec *record.Recording, pol Policy) error {
	if rec.Empty() {
		return ErrEmptyRecording
	}
	if err := pol.validate(); err != nil {
		return err
	}

	p.mu.Lock()
	if p.state != StateIdle {
		p.mu.Unlock()
		return ErrAlreadyPlaying
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})
	p.state = StateCountdown
	done := p.done
	p.mu.Unlock()

	p.notifyState(StateCountdown)
	go p.run(ctx, rec, pol, done)
	return nil
}

// Stop cancels the countdown or the active playback and blocks until the
// player is idle again. Any key held down by the synthesized sequence has
// its release injected before Stop returns. Stop is a no-op when idle.
func (p *Player) Stop() {
	p.mu.Lock()
	if p.state == StateIdle || p.cancel == nil {
		p.mu.Unlock()
		return
	}
	cancel := p.cancel
	done := p.done
	p.mu.Unlock()

	cancel()
	<-done
}

// run owns the whole lifecycle of one playback.
func (p *Player) run(ctx context.Context, rec *record.Recording, pol Policy, done chan struct{}) {
	defer close(done)

	if err := p.runCountdown(ctx); err != nil {
		// Cancelled before anything was injected.
		p.finish()
		return
	}

	p.setState(StatePlaying)

	held := make(map[string]struct{})
	err := p.playPasses(ctx, rec, pol, held)
	p.releaseHeld(held)
	if err != nil && !errors.Is(err, context.Canceled) {
		p.notifyError(err)
	}
	p.finish()
}

// runCountdown waits out the configured countdown, surfacing the
// remaining time after every tick. Returns the context error if
// cancelled.
func (p *Player) runCountdown(ctx context.Context) error {
	remaining := p.countdown
	if remaining <= 0 {
		return ctx.Err()
	}
	p.notifyTick(remaining)
	for remaining > 0 {
		step := p.tick
		if step > remaining {
			step = remaining
		}
		if err := p.wait(ctx, step); err != nil {
			return err
		}
		remaining -= step
		p.notifyTick(remaining)
	}
	return nil
}

// playPasses runs complete passes over the recording until the policy is
// exhausted or the context is cancelled.
func (p *Player) playPasses(ctx context.Context, rec *record.Recording, pol Policy, held map[string]struct{}) error {
	for pass := 1; ; pass++ {
		if err := p.playPass(ctx, rec, held); err != nil {
			return err
		}
		if pol.IsLoop() {
			// Stop is also checked between individual events; this check
			// keeps an exhausted pass from starting the next one.
			if err := ctx.Err(); err != nil {
				return err
			}
			continue
		}
		if pass >= pol.Times() {
			return nil
		}
	}
}

// playPass replays every event once, sleeping the inter-event delta
// before each injection. The first event waits its own offset, so a
// recording that begins mid-silence replays that silence too.
func (p *Player) playPass(ctx context.Context, rec *record.Recording, held map[string]struct{}) error {
	var prev time.Duration
	for _, e := range rec.Events {
		if err := p.wait(ctx, e.Offset-prev); err != nil {
			return err
		}
		if err := p.injector.Inject(e.Key, e.Action); err != nil {
			return fmt.Errorf("injecting %s %s: %w", e.Key, e.Action, err)
		}
		switch e.Action {
		case key.ActionDown:
			held[e.Key] = struct{}{}
		case key.ActionUp:
			delete(held, e.Key)
		}
		prev = e.Offset
	}
	return nil
}

// wait sleeps d on the player's clock, returning early with the context
// error on cancellation.
func (p *Player) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := p.clock.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.Chan():
		return nil
	}
}

// releaseHeld injects an up transition for every key the engine still
// holds down. This is the stuck-key contract: it runs on stop, on policy
// exhaustion mid-pass and on injection failure. Release errors are not
// recoverable and are dropped.
func (p *Player) releaseHeld(held map[string]struct{}) {
	keys := make([]string, 0, len(held))
	for k := range held {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_ = p.injector.Inject(k, key.ActionUp)
		delete(held, k)
	}
}

func (p *Player) finish() {
	p.mu.Lock()
	p.state = StateIdle
	p.cancel = nil
	p.mu.Unlock()
	p.notifyState(StateIdle)
}

func (p *Player) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
	p.notifyState(s)
}

func (p *Player) notifyState(s State) {
	if p.onState != nil {
		p.onState(s)
	}
}

func (p *Player) notifyTick(remaining time.Duration) {
	if p.onTick != nil {
		p.onTick(remaining)
	}
}

func (p *Player) notifyError(err error) {
	if p.onError != nil {
		p.onError(err)
	}
}
