package native

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/example/contextmenu/pkg/contextmenu"
)

// Terminal draws menus as text, for previewing payloads without a desktop.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer

	title    lipgloss.Style
	item     lipgloss.Style
	disabled lipgloss.Style
	submenu  lipgloss.Style
}

// NewTerminal returns a presenter writing to out. Colours are only emitted
// when out is a terminal.
func NewTerminal(out io.Writer) *Terminal {
	r := lipgloss.NewRenderer(out)
	return &Terminal{
		out:      out,
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		item:     r.NewStyle(),
		disabled: r.NewStyle().Faint(true).Foreground(lipgloss.Color("241")),
		submenu:  r.NewStyle().Bold(true),
	}
}

func (t *Terminal) Name() string { return BackendTerminal }

func (t *Terminal) Present(ctx context.Context, opts contextmenu.Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rendered := t.Render(opts)

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := io.WriteString(t.out, rendered); err != nil {
		return fmt.Errorf("write menu: %w", err)
	}
	return nil
}

// Render returns the text drawn for opts.
func (t *Terminal) Render(opts contextmenu.Options) string {
	var b strings.Builder

	anchor := "at cursor"
	if x, y, ok := opts.Anchor(); ok {
		anchor = fmt.Sprintf("at (%g, %g)", x, y)
	}
	b.WriteString(t.title.Render("Context menu " + anchor))
	b.WriteString("\n")

	opts.Walk(func(item contextmenu.MenuItem, depth int) bool {
		b.WriteString(strings.Repeat("  ", depth+1))
		b.WriteString(t.renderItem(item))
		b.WriteString("\n")
		return true
	})
	return b.String()
}

func (t *Terminal) renderItem(item contextmenu.MenuItem) string {
	label := item.Label
	if checked, ok := item.Selection(); ok {
		if checked {
			label = "[x] " + label
		} else {
			label = "[ ] " + label
		}
	}
	if item.IsSubmenu() {
		label += " ▸"
	}

	switch {
	case !item.IsEnabled():
		return t.disabled.Render(label + " (disabled)")
	case item.IsSubmenu():
		return t.submenu.Render(label)
	default:
		return t.item.Render(label)
	}
}

func (t *Terminal) Close() error { return nil }
