package hook

import (
	"context"
	"errors"

	"github.com/dshills/keyecho/internal/input/key"
)

// ErrUnsupportedPlatform indicates the OS has no keyboard hook adapter.
var ErrUnsupportedPlatform = errors.New("global keyboard capture is not supported on this platform")

// ErrNotStarted is returned by Stop when the hook is not running.
var ErrNotStarted = errors.New("hook is not running")

// TransitionFunc receives one physical key transition. It runs on the
// hook's callback context and must not block.
type TransitionFunc func(name string, action key.Action)

// Hook observes global key transitions.
type Hook interface {
	// Start begins delivering transitions to fn until the context is
	// cancelled or Stop is called. It does not block.
	Start(ctx context.Context, fn TransitionFunc) error

	// Stop ends delivery and releases OS resources.
	Stop() error
}

// Injector synthesizes key transitions into the OS input stream.
type Injector interface {
	Inject(name string, action key.Action) error
}

// InjectorFunc adapts a function to the Injector interface.
type InjectorFunc func(name string, action key.Action) error

// Inject calls the underlying function.
func (f InjectorFunc) Inject(name string, action key.Action) error {
	return f(name, action)
}
