package contextmenu

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/example/contextmenu/internal/logging"
)

// Outcome labels passed to a Counter after each popup request.
const (
	OutcomeOK              = "ok"
	OutcomeEmpty           = "empty"
	OutcomeDeserialization = KindDeserialization
	OutcomePlatform        = KindPlatform
)

// Presenter is the native menu facility that actually displays a menu.
type Presenter interface {
	// Name identifies the backend in errors and logs.
	Name() string
	// Present hands the menu to the native subsystem. It returns once the
	// subsystem has accepted the request.
	Present(ctx context.Context, opts Options) error
}

// Counter records request outcomes.
type Counter interface {
	Increment(val ...string)
}

// Gateway forwards popup requests to a Presenter.
type Gateway struct {
	presenter   Presenter
	counter     Counter
	rejectEmpty atomic.Bool
}

// Option customises a Gateway.
type Option func(*Gateway)

// WithCounter records the outcome of every request on c.
func WithCounter(c Counter) Option {
	return func(g *Gateway) {
		g.counter = c
	}
}

// WithRejectEmpty makes popup requests without items fail instead of
// succeeding without effect.
func WithRejectEmpty(reject bool) Option {
	return func(g *Gateway) {
		g.rejectEmpty.Store(reject)
	}
}

// New constructs a Gateway around presenter.
func New(presenter Presenter, opts ...Option) *Gateway {
	g := &Gateway{presenter: presenter}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SetRejectEmpty updates the empty menu policy. Safe for concurrent use.
func (g *Gateway) SetRejectEmpty(reject bool) {
	g.rejectEmpty.Store(reject)
}

// Backend returns the presenter name.
func (g *Gateway) Backend() string {
	if g.presenter == nil {
		return ""
	}
	return g.presenter.Name()
}

// Ping deserialises payload and shows the described menu.
func (g *Gateway) Ping(ctx context.Context, payload []byte) error {
	if logging.DebugEnabled() {
		logging.Debugf("ping payload %s", logging.DescribePayload(payload))
	}
	opts, err := DecodeOptions(payload)
	if err != nil {
		g.record(OutcomeDeserialization)
		return err
	}
	return g.Popup(ctx, opts)
}

// PingOptions is Ping for callers that already hold decoded options.
func (g *Gateway) PingOptions(ctx context.Context, opts Options) error {
	return g.Popup(ctx, opts)
}

// Popup asks the native menu subsystem to display opts.
func (g *Gateway) Popup(ctx context.Context, opts Options) error {
	requestID := uuid.NewString()

	if len(opts.Items) == 0 {
		if g.rejectEmpty.Load() {
			g.record(OutcomePlatform)
			return &PlatformError{Backend: g.Backend(), Err: ErrEmptyMenu}
		}
		logging.Debugf("popup %s has no items; nothing to show", requestID)
		g.record(OutcomeEmpty)
		return nil
	}

	if g.presenter == nil {
		g.record(OutcomePlatform)
		return &PlatformError{Err: ErrPlatformUnavailable}
	}

	if x, y, ok := opts.Anchor(); ok {
		logging.Debugf("popup %s: %d items at (%g, %g) via %s", requestID, opts.Count(), x, y, g.presenter.Name())
	} else {
		logging.Debugf("popup %s: %d items at cursor via %s", requestID, opts.Count(), g.presenter.Name())
	}

	if err := g.presenter.Present(ctx, opts); err != nil {
		g.record(OutcomePlatform)
		return &PlatformError{Backend: g.presenter.Name(), Err: err}
	}
	g.record(OutcomeOK)
	return nil
}

func (g *Gateway) record(outcome string) {
	if g.counter == nil {
		return
	}
	g.counter.Increment(outcome)
}
