// Package home is the variant picker shown at startup.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nethesap/nethesap/internal/exam"
	"github.com/nethesap/nethesap/internal/router"
	"github.com/nethesap/nethesap/internal/screen"
	"github.com/nethesap/nethesap/internal/ui/components"
	"github.com/nethesap/nethesap/internal/ui/layout"
	"github.com/nethesap/nethesap/internal/ui/theme"
)

// Opener builds the calculator screen for a variant.
type Opener func(variantID string) screen.Screen

// HomeScreen lists the exam variants and opens a calculator for the chosen one.
type HomeScreen struct {
	menu components.Menu
	ids  []string
}

var (
	_ screen.Screen          = (*HomeScreen)(nil)
	_ screen.KeyHintProvider = (*HomeScreen)(nil)
)

// New creates the home screen with selected preselected. Unknown IDs
// leave the first variant selected.
func New(open Opener, selected string) *HomeScreen {
	var items []components.MenuItem
	var ids []string
	for _, v := range exam.All() {
		id := v.ID
		ids = append(ids, id)
		items = append(items, components.MenuItem{
			Label: v.Name + "  " + v.Title,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: open(id)}
				}
			},
		})
	}
	items = append(items, components.MenuItem{
		Label:  "Çıkış",
		Action: func() tea.Cmd { return tea.Quit },
	})

	h := &HomeScreen{menu: components.NewMenu(items), ids: ids}
	for i, id := range ids {
		if id == selected {
			h.menu.Select(i)
		}
	}
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// SelectedID returns the highlighted variant ID, or "" on the exit item.
func (h *HomeScreen) SelectedID() string {
	if h.menu.Selected < len(h.ids) {
		return h.ids[h.menu.Selected]
	}
	return ""
}

// VariantID highlights the selected variant in the header tabs.
func (h *HomeScreen) VariantID() string {
	return h.SelectedID()
}

func (h *HomeScreen) View(width, height int) string {
	title := theme.Title.Render("YKS Net Hesaplama")
	subtitle := theme.Subtitle.Render("Doğru ve yanlış sayılarınızı girin, netlerinizi görün.")

	lines := []string{title, subtitle, "", h.menu.View()}
	if id := h.SelectedID(); id != "" {
		desc := exam.MustLoad(id).Description
		lines = append(lines, theme.Hint.Width(56).Render(desc))
	}
	body := strings.Join(lines, "\n")

	card := theme.Card.Padding(1, 3).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (h *HomeScreen) Title() string {
	return "Sınav Seçimi"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Seç"},
		{Key: "Enter", Description: "Aç"},
		{Key: "Ctrl+C", Description: "Çıkış"},
	}
}
