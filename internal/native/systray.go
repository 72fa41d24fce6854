//go:build cgo || windows
// +build cgo windows

package native

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/getlantern/systray"

	"github.com/example/contextmenu/internal/logging"
	"github.com/example/contextmenu/pkg/contextmenu"
)

var errTrayExited = errors.New("system tray exited")

// systrayPresenter shows popup requests as the system tray menu. The tray
// anchors its menu to the tray icon, so requested coordinates are not used.
type systrayPresenter struct {
	startOnce sync.Once
	started   atomic.Bool
	ready     chan struct{}
	done      chan struct{}

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	entries []trayEntry
}

type trayEntry struct {
	item   *systray.MenuItem
	cancel context.CancelFunc
}

func newSystray() Presenter {
	ctx, cancel := context.WithCancel(context.Background())
	return &systrayPresenter{
		ready:  make(chan struct{}),
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (p *systrayPresenter) Name() string { return BackendSystray }

func (p *systrayPresenter) start() {
	p.startOnce.Do(func() {
		p.started.Store(true)
		go systray.Run(p.onReady, p.onExit)
	})
}

func (p *systrayPresenter) onReady() {
	icon := normalizedIcon(iconData)
	systray.SetIcon(icon)
	if runtime.GOOS == "darwin" {
		systray.SetTemplateIcon(icon, icon)
	}
	systray.SetTooltip("Context menu")
	logging.Debugf("system tray ready")
	close(p.ready)
}

func (p *systrayPresenter) onExit() {
	p.shutdown()
	close(p.done)
}

func (p *systrayPresenter) Present(ctx context.Context, opts contextmenu.Options) error {
	p.start()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.done:
		return errTrayExited
	case <-p.ready:
	}

	if _, _, ok := opts.Anchor(); ok {
		logging.Debugf("system tray ignores requested anchor; menu opens from the tray icon")
	}
	p.render(opts.Items)
	return nil
}

func (p *systrayPresenter) Close() error {
	if !p.started.Load() {
		p.cancel()
		return nil
	}
	systray.Quit()
	<-p.done
	return nil
}

func (p *systrayPresenter) render(items []contextmenu.MenuItem) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, entry := range p.entries {
		entry.cancel()
		if entry.item != nil {
			entry.item.Hide()
		}
	}
	p.entries = p.renderGroup(items, nil)
	logging.Debugf("system tray menu rendered with %d entries", len(p.entries))
}

func (p *systrayPresenter) renderGroup(items []contextmenu.MenuItem, parent *systray.MenuItem) []trayEntry {
	entries := make([]trayEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, p.addMenuItem(item, parent)...)
	}
	return entries
}

func (p *systrayPresenter) addMenuItem(item contextmenu.MenuItem, parent *systray.MenuItem) []trayEntry {
	mi := makeMenuItem(parent, item)
	if !item.IsEnabled() {
		mi.Disable()
	}

	ctxItem, cancel := context.WithCancel(p.ctx)
	go drainClicks(ctxItem, mi.ClickedCh)

	entries := []trayEntry{{item: mi, cancel: cancel}}
	if item.IsSubmenu() {
		entries = append(entries, p.renderGroup(item.SubItems, mi)...)
	}
	return entries
}

func makeMenuItem(parent *systray.MenuItem, item contextmenu.MenuItem) *systray.MenuItem {
	checked, checkable := item.Selection()
	switch {
	case parent == nil && checkable:
		return systray.AddMenuItemCheckbox(item.Label, "", checked)
	case parent == nil:
		return systray.AddMenuItem(item.Label, "")
	case checkable:
		return parent.AddSubMenuItemCheckbox(item.Label, "", checked)
	default:
		return parent.AddSubMenuItem(item.Label, "")
	}
}

// drainClicks keeps the click channel empty; selections are not reported.
func drainClicks(ctx context.Context, ch <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
		}
	}
}

func (p *systrayPresenter) shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, entry := range p.entries {
		entry.cancel()
	}
	p.entries = nil
	p.cancel()
}
