// Package screen defines what the router needs from a screen.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/nethesap/nethesap/internal/ui/layout"
)

// Screen is one page of the app.
type Screen interface {
	// Init returns an initial command when the screen is opened.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface for screens with their own
// footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeInterceptor is an optional interface for screens that use Esc
// themselves, e.g. to cancel a prompt. While CapturesEscape returns true
// the app forwards Esc instead of closing the screen.
type EscapeInterceptor interface {
	CapturesEscape() bool
}

// VariantProvider is an optional interface for screens scoped to an exam
// variant. The header highlights the returned variant ID.
type VariantProvider interface {
	VariantID() string
}
