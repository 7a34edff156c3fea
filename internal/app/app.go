package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"

	"github.com/dshills/keyecho/internal/config"
	"github.com/dshills/keyecho/internal/event"
	"github.com/dshills/keyecho/internal/hook"
	"github.com/dshills/keyecho/internal/input/playback"
	"github.com/dshills/keyecho/internal/input/record"
	"github.com/dshills/keyecho/internal/monitor"
	"github.com/dshills/keyecho/internal/overlay"
)

// Options configure an App.
type Options struct {
	// Config is the effective configuration.
	Config config.Config

	// ConfigPath, when set, is watched for live reloads.
	ConfigPath string

	// Hook delivers global key transitions. Required.
	Hook hook.Hook

	// Injector synthesizes key transitions for playback. Required.
	Injector hook.Injector

	// Screen overrides the HUD's terminal screen. Tests pass a
	// simulation screen.
	Screen tcell.Screen

	// Logger defaults to a stderr logger at the configured level.
	Logger *Logger

	// Clock defaults to the wall clock.
	Clock clockwork.Clock
}

// App is the assembled application.
type App struct {
	log   *Logger
	bus   *event.Bus
	store *record.Store
	mon   *monitor.Monitor
	plr   *playback.Player
	keys  hook.Hook
	hud   *overlay.HUD

	cfgPath string
	cfgMu   sync.Mutex
	cfg     config.Config

	recMu   sync.Mutex
	lastRec *record.Recording
}

// New assembles an application from its components.
func New(opts Options) (*App, error) {
	if opts.Hook == nil {
		return nil, errors.New("app: keyboard hook is required")
	}
	if opts.Injector == nil {
		return nil, errors.New("app: injector is required")
	}

	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	log := opts.Logger
	if log == nil {
		log = NewLogger(LoggerConfig{
			Level:  ParseLogLevel(opts.Config.Log.Level),
			Prefix: "keyecho",
		})
	}

	a := &App{
		log:     log,
		bus:     event.NewBus(),
		keys:    opts.Hook,
		cfg:     opts.Config,
		cfgPath: opts.ConfigPath,
	}
	a.store = record.NewStoreWithClock(clock)
	a.mon = monitor.New(a.bus, a.store)
	a.mon.SetEnabled(true)
	a.mon.OnEscape(a.StopPlayback)

	plr, err := playback.New(playback.Options{
		Injector:  opts.Injector,
		Clock:     clock,
		Countdown: opts.Config.Countdown(),
		OnState:   func(st playback.State) { a.bus.Publish(event.TopicPlaybackState, st.String()) },
		OnTick:    func(remaining time.Duration) { a.bus.Publish(event.TopicCountdown, remaining) },
		OnError:   a.onPlaybackError,
	})
	if err != nil {
		return nil, err
	}
	a.plr = plr

	hud, err := overlay.New(overlay.Options{
		Screen:     opts.Screen,
		Bus:        a.bus,
		Controller: a,
		Corner:     opts.Config.Overlay.Corner,
		ClearDelay: opts.Config.ClearDelay(),
		Clock:      clock,
	})
	if err != nil {
		return nil, err
	}
	a.hud = hud
	return a, nil
}

// Bus exposes the event bus, mainly for tests and embedding callers.
func (a *App) Bus() *event.Bus {
	return a.bus
}

// Run starts the keyboard hook and the HUD and blocks until the HUD
// exits or the context is cancelled. An in-progress recording is
// stopped and saved on the way out.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.keys.Start(ctx, a.mon.HandleTransition); err != nil {
		return fmt.Errorf("starting keyboard hook: %w", err)
	}
	defer func() {
		if err := a.keys.Stop(); err != nil && !errors.Is(err, hook.ErrNotStarted) {
			a.log.Warn("stopping keyboard hook: %v", err)
		}
	}()

	if a.cfgPath != "" {
		go a.watchConfig(ctx)
	}

	a.log.Info("ready")
	err := a.hud.Run(ctx)

	a.plr.Stop()
	if a.store.Recording() {
		a.stopRecording()
	}
	a.bus.Close()
	return err
}

// watchConfig applies configuration reloads while the app runs. The
// log level and the recording path take effect immediately; overlay
// placement and the countdown apply on the next start.
func (a *App) watchConfig(ctx context.Context) {
	onChange := func(cfg config.Config) {
		a.cfgMu.Lock()
		a.cfg = cfg
		a.cfgMu.Unlock()
		a.log.SetLevel(ParseLogLevel(cfg.Log.Level))
		a.log.Info("configuration reloaded from %s", a.cfgPath)
		a.bus.Publish(event.TopicNotice, "config reloaded")
	}
	onError := func(err error) {
		a.log.Warn("configuration reload: %v", err)
	}
	if err := config.Watch(ctx, a.cfgPath, onChange, onError); err != nil && ctx.Err() == nil {
		a.log.Warn("configuration watcher stopped: %v", err)
	}
}

// ==================== HUD Controller ====================

// ToggleMonitor pauses or resumes chord display.
func (a *App) ToggleMonitor() {
	enabled := !a.mon.Enabled()
	a.mon.SetEnabled(enabled)
	if enabled {
		a.bus.Publish(event.TopicNotice, "monitoring on")
	} else {
		a.bus.Publish(event.TopicNotice, "monitoring paused")
	}
	a.log.Debug("monitoring enabled=%v", enabled)
}

// ToggleRecording starts a capture, or stops and saves the one in
// progress.
func (a *App) ToggleRecording() {
	if a.store.Recording() {
		a.stopRecording()
		return
	}

	// Capture needs the monitor forwarding transitions.
	if !a.mon.Enabled() {
		a.mon.SetEnabled(true)
	}
	if err := a.store.Start(); err != nil {
		a.log.Warn("starting recording: %v", err)
		return
	}
	a.bus.Publish(event.TopicRecordState, true)
	a.bus.Publish(event.TopicNotice, "recording")
	a.log.Info("recording started")
}

func (a *App) stopRecording() {
	rec, err := a.store.Stop()
	a.bus.Publish(event.TopicRecordState, false)
	if err != nil {
		a.log.Warn("stopping recording: %v", err)
		return
	}
	if rec.Empty() {
		a.bus.Publish(event.TopicNotice, "nothing recorded")
		return
	}

	a.recMu.Lock()
	a.lastRec = rec
	a.recMu.Unlock()

	path, err := a.saveRecording(rec)
	if err != nil {
		a.log.Error("saving recording: %v", err)
		a.bus.Publish(event.TopicNotice, "save failed, recording kept in memory")
		return
	}
	a.bus.Publish(event.TopicNotice, fmt.Sprintf("saved %d events to %s", rec.Len(), path))
	a.log.Info("recording saved path=%s events=%d", path, rec.Len())
}

// saveRecording writes to the configured path, falling back to the
// default location so a failed write does not lose the take.
func (a *App) saveRecording(rec *record.Recording) (string, error) {
	a.cfgMu.Lock()
	configured := a.cfg.Record.Path
	a.cfgMu.Unlock()

	if configured != "" {
		err := record.Save(rec, configured)
		if err == nil {
			return configured, nil
		}
		a.log.Error("saving recording to %s: %v", configured, err)
	}
	return record.SaveDefault(rec)
}

// Play replays the most recent recording, loading it from disk when
// nothing was captured this session.
func (a *App) Play() {
	if a.store.Recording() {
		a.bus.Publish(event.TopicNotice, "stop recording before playback")
		return
	}

	rec, err := a.playbackRecording()
	if err != nil {
		a.log.Warn("loading recording: %v", err)
		a.bus.Publish(event.TopicNotice, "no recording to play")
		return
	}
	if err := a.plr.Start(rec, playback.Once()); err != nil {
		if errors.Is(err, playback.ErrAlreadyPlaying) {
			a.bus.Publish(event.TopicNotice, "already playing")
			return
		}
		a.log.Warn("starting playback: %v", err)
		a.bus.Publish(event.TopicNotice, err.Error())
	}
}

// playbackRecording prefers the in-memory take over the saved file.
func (a *App) playbackRecording() (*record.Recording, error) {
	a.recMu.Lock()
	rec := a.lastRec
	a.recMu.Unlock()
	if rec != nil {
		return rec, nil
	}

	a.cfgMu.Lock()
	path := a.cfg.Record.Path
	a.cfgMu.Unlock()
	if path == "" {
		var err error
		path, err = record.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return record.Load(path)
}

// StopPlayback cancels any countdown or active playback.
func (a *App) StopPlayback() {
	a.plr.Stop()
}

func (a *App) onPlaybackError(err error) {
	a.log.Error("playback aborted: %v", err)
	a.bus.Publish(event.TopicNotice, fmt.Sprintf("playback aborted: %v", err))
}
