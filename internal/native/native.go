package native

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/contextmenu/internal/logging"
	"github.com/example/contextmenu/pkg/contextmenu"
)

// Supported backend names.
const (
	BackendStub     = "stub"
	BackendSystray  = "systray"
	BackendTerminal = "terminal"
)

// ErrUnknownBackend is returned by New for unrecognised backend names.
var ErrUnknownBackend = errors.New("unknown menu backend")

// Presenter is a contextmenu.Presenter that owns native resources.
type Presenter interface {
	contextmenu.Presenter
	Close() error
}

// Backends lists the names accepted by New.
func Backends() []string {
	return []string{BackendStub, BackendSystray, BackendTerminal}
}

// New returns the presenter registered under backend. out receives the
// terminal rendering and defaults to stdout.
func New(backend string, out io.Writer) (Presenter, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendStub:
		return Stub{}, nil
	case BackendSystray:
		return newSystray(), nil
	case BackendTerminal:
		if out == nil {
			out = os.Stdout
		}
		return NewTerminal(out), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Stub accepts every request without showing anything.
type Stub struct{}

func (Stub) Name() string { return BackendStub }

func (Stub) Present(ctx context.Context, opts contextmenu.Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logging.Debugf("stub presenter accepted menu with %d items", opts.Count())
	return nil
}

func (Stub) Close() error { return nil }
