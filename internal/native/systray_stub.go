//go:build !cgo && !windows
// +build !cgo,!windows

package native

import (
	"context"

	"github.com/example/contextmenu/pkg/contextmenu"
)

// unavailableSystray stands in for the tray presenter in builds without cgo.
type unavailableSystray struct{}

func newSystray() Presenter {
	return unavailableSystray{}
}

func (unavailableSystray) Name() string { return BackendSystray }

func (unavailableSystray) Present(context.Context, contextmenu.Options) error {
	return contextmenu.ErrPlatformUnavailable
}

func (unavailableSystray) Close() error { return nil }
