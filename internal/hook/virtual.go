package hook

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/dshills/keyecho/internal/input/key"
)

// Injection records one synthesized transition and when it happened.
type Injection struct {
	Key    string
	Action key.Action
	At     time.Time
}

// VirtualDevice is an in-memory Hook and Injector. Emit simulates a
// physical key transition; Inject records what playback synthesized,
// stamped with the device's clock so tests can assert timing.
type VirtualDevice struct {
	mu        sync.Mutex
	clock     clockwork.Clock
	fn        TransitionFunc
	injected  []Injection
	failAfter int
	failErr   error
}

// NewVirtualDevice creates a device using the wall clock.
func NewVirtualDevice() *VirtualDevice {
	return NewVirtualDeviceWithClock(clockwork.NewRealClock())
}

// NewVirtualDeviceWithClock creates a device with an injected clock.
func NewVirtualDeviceWithClock(clock clockwork.Clock) *VirtualDevice {
	return &VirtualDevice{clock: clock, failAfter: -1}
}

// Start begins delivering emitted transitions to fn.
func (d *VirtualDevice) Start(ctx context.Context, fn TransitionFunc) error {
	d.mu.Lock()
	d.fn = fn
	d.mu.Unlock()

	if ctx != nil {
		go func() {
			<-ctx.Done()
			d.Stop()
		}()
	}
	return nil
}

// Stop ends delivery of emitted transitions.
func (d *VirtualDevice) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fn == nil {
		return ErrNotStarted
	}
	d.fn = nil
	return nil
}

// Emit simulates a physical key transition, delivering it synchronously
// to the subscriber the way an OS hook callback would.
func (d *VirtualDevice) Emit(name string, action key.Action) {
	d.mu.Lock()
	fn := d.fn
	d.mu.Unlock()
	if fn != nil {
		fn(name, action)
	}
}

// Inject records a synthesized transition. If FailAfter was armed and the
// threshold is reached, the configured error is returned once and the
// failure disarms, so cleanup injections after the fault still succeed.
func (d *VirtualDevice) Inject(name string, action key.Action) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failAfter >= 0 && len(d.injected) >= d.failAfter {
		err := d.failErr
		d.failAfter = -1
		d.failErr = nil
		return err
	}
	d.injected = append(d.injected, Injection{Key: name, Action: action, At: d.clock.Now()})
	return nil
}

// FailAfter makes Inject return err once n injections have been recorded.
func (d *VirtualDevice) FailAfter(n int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failAfter = n
	d.failErr = err
}

// Injected returns a copy of the recorded injections.
func (d *VirtualDevice) Injected() []Injection {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Injection, len(d.injected))
	copy(out, d.injected)
	return out
}

// InjectedCount returns the number of recorded injections.
func (d *VirtualDevice) InjectedCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.injected)
}

// Reset discards recorded injections and disarms FailAfter.
func (d *VirtualDevice) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.injected = nil
	d.failAfter = -1
	d.failErr = nil
}
