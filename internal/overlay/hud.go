package overlay

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"

	"github.com/dshills/keyecho/internal/config"
	"github.com/dshills/keyecho/internal/event"
)

// Controller is the surface the HUD drives in response to keystrokes.
// Outcomes come back over the event bus, not as return values.
type Controller interface {
	ToggleMonitor()
	ToggleRecording()
	Play()
	StopPlayback()
}

// Options configure a HUD.
type Options struct {
	// Screen overrides the terminal screen. Tests pass a
	// tcell.SimulationScreen here; when nil a real terminal screen is
	// allocated.
	Screen tcell.Screen

	// Bus supplies display and state updates. Required.
	Bus *event.Bus

	// Controller receives the HUD's key commands. Required.
	Controller Controller

	// Corner anchors the HUD text. Defaults to bottom right.
	Corner string

	// ClearDelay is how long chord text lingers after release.
	ClearDelay time.Duration

	// Clock drives the clear delay. Defaults to the real clock.
	Clock clockwork.Clock
}

// HUD is the terminal status display. Run owns the screen and all HUD
// state; nothing here is safe for use from other goroutines while Run
// is active.
type HUD struct {
	screen     tcell.Screen
	bus        *event.Bus
	ctrl       Controller
	corner     string
	clearDelay time.Duration
	clock      clockwork.Clock

	display   string
	recording bool
	playState string
	countdown string
	notice    string
}

// New creates a HUD. It does not touch the terminal until Run.
func New(opts Options) (*HUD, error) {
	if opts.Bus == nil {
		return nil, errors.New("overlay: bus is required")
	}
	if opts.Controller == nil {
		return nil, errors.New("overlay: controller is required")
	}

	screen := opts.Screen
	if screen == nil {
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("allocating screen: %w", err)
		}
	}
	corner := opts.Corner
	if corner == "" {
		corner = config.CornerBottomRight
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &HUD{
		screen:     screen,
		bus:        opts.Bus,
		ctrl:       opts.Controller,
		corner:     corner,
		clearDelay: opts.ClearDelay,
		clock:      clock,
	}, nil
}

// Run initializes the screen and processes events until the context is
// cancelled or the user quits.
func (h *HUD) Run(ctx context.Context) error {
	if err := h.screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer h.screen.Fini()
	h.screen.HideCursor()

	dispSub := h.bus.Subscribe(event.TopicDisplay, 16)
	recSub := h.bus.Subscribe(event.TopicRecordState, 4)
	playSub := h.bus.Subscribe(event.TopicPlaybackState, 4)
	countSub := h.bus.Subscribe(event.TopicCountdown, 8)
	noticeSub := h.bus.Subscribe(event.TopicNotice, 8)
	defer func() {
		h.bus.Unsubscribe(dispSub)
		h.bus.Unsubscribe(recSub)
		h.bus.Unsubscribe(playSub)
		h.bus.Unsubscribe(countSub)
		h.bus.Unsubscribe(noticeSub)
	}()

	screenEvents := make(chan tcell.Event, 16)
	go func() {
		defer close(screenEvents)
		for {
			// Returns nil once the screen is finalized.
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			screenEvents <- ev
		}
	}()

	dispC := dispSub.C()
	recC := recSub.C()
	playC := playSub.C()
	countC := countSub.C()
	noticeC := noticeSub.C()

	var clearTimer clockwork.Timer
	var clearC <-chan time.Time

	h.render()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-screenEvents:
			if !ok {
				return nil
			}
			if quit := h.handleScreenEvent(ev); quit {
				return nil
			}

		case m, ok := <-dispC:
			if !ok {
				dispC = nil
				continue
			}
			text, _ := m.Payload.(string)
			if text == "" {
				// Keep the last chord visible for the clear delay.
				if clearTimer != nil {
					clearTimer.Stop()
				}
				if h.clearDelay <= 0 {
					h.display = ""
				} else {
					clearTimer = h.clock.NewTimer(h.clearDelay)
					clearC = clearTimer.Chan()
				}
			} else {
				if clearTimer != nil {
					clearTimer.Stop()
					clearTimer = nil
					clearC = nil
				}
				h.display = text
			}
			h.render()

		case <-clearC:
			clearTimer = nil
			clearC = nil
			h.display = ""
			h.render()

		case m, ok := <-recC:
			if !ok {
				recC = nil
				continue
			}
			h.recording, _ = m.Payload.(bool)
			h.render()

		case m, ok := <-playC:
			if !ok {
				playC = nil
				continue
			}
			h.playState, _ = m.Payload.(string)
			if h.playState != "countdown" {
				h.countdown = ""
			}
			h.render()

		case m, ok := <-countC:
			if !ok {
				countC = nil
				continue
			}
			if d, dok := m.Payload.(time.Duration); dok {
				h.countdown = fmt.Sprintf("%d", int(d.Round(time.Second).Seconds()))
			}
			h.render()

		case m, ok := <-noticeC:
			if !ok {
				noticeC = nil
				continue
			}
			h.notice, _ = m.Payload.(string)
			h.render()
		}
	}
}

// handleScreenEvent reacts to terminal input. It reports whether the
// user asked to quit.
func (h *HUD) handleScreenEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()
		h.render()

	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyEscape {
			return true
		}
		if ev.Key() != tcell.KeyRune {
			return false
		}
		switch ev.Rune() {
		case 'q':
			return true
		case 'm':
			h.ctrl.ToggleMonitor()
		case 'r':
			h.ctrl.ToggleRecording()
		case 'p':
			h.ctrl.Play()
		case 's':
			h.ctrl.StopPlayback()
		}
	}
	return false
}

// statusLine composes the second HUD line from current state.
func (h *HUD) statusLine() string {
	var parts []string
	if h.recording {
		parts = append(parts, "REC")
	}
	switch h.playState {
	case "", "idle":
	case "countdown":
		if h.countdown != "" {
			parts = append(parts, "countdown "+h.countdown)
		} else {
			parts = append(parts, "countdown")
		}
	default:
		parts = append(parts, h.playState)
	}
	if h.notice != "" {
		parts = append(parts, h.notice)
	}
	return strings.Join(parts, "  ")
}

const helpLine = "m monitor  r record  p play  s stop  q quit"

// render redraws the whole screen.
func (h *HUD) render() {
	h.screen.Clear()
	width, height := h.screen.Size()
	if width < 1 || height < 3 {
		h.screen.Show()
		return
	}

	chordStyle := tcell.StyleDefault.Bold(true)
	statusStyle := tcell.StyleDefault
	helpStyle := tcell.StyleDefault.Dim(true)

	var chordY, statusY, helpY int
	switch h.corner {
	case config.CornerTopLeft, config.CornerTopRight:
		chordY, statusY, helpY = 0, 1, height-1
	default:
		chordY, statusY, helpY = height-2, height-1, 0
	}

	h.drawText(h.anchorX(h.display, width), chordY, chordStyle, h.display)
	status := h.statusLine()
	h.drawText(h.anchorX(status, width), statusY, statusStyle, status)
	h.drawText(0, helpY, helpStyle, helpLine)
	h.screen.Show()
}

// anchorX left- or right-aligns text per the configured corner.
func (h *HUD) anchorX(text string, width int) int {
	switch h.corner {
	case config.CornerBottomLeft, config.CornerTopLeft:
		return 0
	default:
		x := width - len([]rune(text))
		if x < 0 {
			x = 0
		}
		return x
	}
}

func (h *HUD) drawText(x, y int, style tcell.Style, text string) {
	for _, r := range text {
		h.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
