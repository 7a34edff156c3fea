//go:build !windows

package hook

import (
	"context"

	"github.com/dshills/keyecho/internal/input/key"
)

// unsupported is the adapter for platforms without keyboard capture.
type unsupported struct{}

// NewSystemHook returns the platform keyboard hook.
func NewSystemHook() Hook {
	return unsupported{}
}

// NewSystemInjector returns the platform key injector.
func NewSystemInjector() Injector {
	return unsupported{}
}

func (unsupported) Start(context.Context, TransitionFunc) error {
	return ErrUnsupportedPlatform
}

func (unsupported) Stop() error {
	return ErrUnsupportedPlatform
}

func (unsupported) Inject(string, key.Action) error {
	return ErrUnsupportedPlatform
}
