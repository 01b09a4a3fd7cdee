// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/nethesap/nethesap/internal/config"
	"github.com/nethesap/nethesap/internal/exam"
	"github.com/nethesap/nethesap/internal/export"
	"github.com/nethesap/nethesap/internal/router"
	"github.com/nethesap/nethesap/internal/screen"
	"github.com/nethesap/nethesap/internal/screens/calculator"
	"github.com/nethesap/nethesap/internal/screens/home"
	"github.com/nethesap/nethesap/internal/ui/layout"
)

// Options configures the app.
type Options struct {
	Config   *config.Config
	Logger   *zap.Logger
	Exporter *export.Exporter

	// Exam opens the calculator for this variant directly. Empty starts
	// at the variant picker.
	Exam string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	logger  *zap.Logger
	initCmd tea.Cmd
	width   int
	height  int
}

// New builds the root model.
func New(opts Options) AppModel {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	deps := calculator.Deps{
		Logger:    logger.Named("calculator"),
		Exporter:  opts.Exporter,
		BusyDelay: cfg.GetBusyDelay(),
	}
	open := func(id string) screen.Screen { return calculator.New(deps, id) }

	selected := cfg.DefaultExam
	if opts.Exam != "" {
		selected = opts.Exam
	}
	m := AppModel{
		router: router.New(home.New(open, selected)),
		logger: logger,
	}
	if opts.Exam != "" {
		m.initCmd = m.router.Push(open(opts.Exam))
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.initCmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if ei, ok := m.router.Active().(screen.EscapeInterceptor); ok && ei.CapturesEscape() {
				break
			}
			if !m.router.AtRoot() {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}

	case router.ReplaceScreenMsg:
		if vp, ok := msg.Screen.(screen.VariantProvider); ok {
			m.logger.Debug("switch exam", zap.String("exam", vp.VariantID()))
		}
	}

	return m, m.router.Update(msg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render composes the frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	activeExam := ""
	if vp, ok := active.(screen.VariantProvider); ok {
		activeExam = vp.VariantID()
	}
	header := layout.RenderHeader(active.Title(), tabs(), activeExam, m.width)

	var hints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = hp.KeyHints()
	} else {
		hints = []layout.KeyHint{
			{Key: "Esc", Description: "Geri"},
			{Key: "Ctrl+C", Description: "Çıkış"},
		}
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func tabs() []layout.Tab {
	var out []layout.Tab
	for _, v := range exam.All() {
		out = append(out, layout.Tab{ID: v.ID, Label: v.Name})
	}
	return out
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
