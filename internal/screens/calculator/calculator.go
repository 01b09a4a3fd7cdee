// Package calculator is the score entry screen: one pair of inputs per
// subject and a results panel.
package calculator

import (
	"strconv"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/nethesap/nethesap/internal/exam"
	"github.com/nethesap/nethesap/internal/export"
	"github.com/nethesap/nethesap/internal/router"
	"github.com/nethesap/nethesap/internal/score"
	"github.com/nethesap/nethesap/internal/screen"
	"github.com/nethesap/nethesap/internal/sheet"
	"github.com/nethesap/nethesap/internal/ui/components"
	"github.com/nethesap/nethesap/internal/ui/layout"
	"github.com/nethesap/nethesap/internal/ui/theme"
)

// Deps are the collaborators shared by every calculator screen.
type Deps struct {
	Logger    *zap.Logger
	Exporter  *export.Exporter // nil disables export
	BusyDelay time.Duration
	Now       func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// revealMsg ends the busy phase started by the compute with the same seq.
type revealMsg struct{ seq int }

// exportDoneMsg reports the outcome of an export.
type exportDoneMsg struct {
	path string
	err  error
}

// Screen is the calculator for one exam variant.
type Screen struct {
	deps  Deps
	sheet *sheet.Sheet

	// inputs holds the correct/incorrect pair of every subject in order:
	// subject i uses inputs[2i] and inputs[2i+1].
	inputs []components.TextInput
	button components.Button
	focus  int // len(inputs) focuses the button

	busy    bool
	seq     int
	spinner spinner.Model

	prompting bool
	label     components.TextInput

	status    string
	statusErr bool
}

var (
	_ screen.Screen            = (*Screen)(nil)
	_ screen.KeyHintProvider   = (*Screen)(nil)
	_ screen.EscapeInterceptor = (*Screen)(nil)
	_ screen.VariantProvider   = (*Screen)(nil)
)

// New creates a calculator for variantID. Unknown IDs open the first
// built-in variant.
func New(deps Deps, variantID string) *Screen {
	deps = deps.withDefaults()
	v, err := exam.Load(variantID)
	if err != nil {
		deps.Logger.Warn("unknown exam, using default", zap.String("exam", variantID))
		v = exam.All()[0]
	}

	s := &Screen{
		deps:    deps,
		sheet:   sheet.New(v, sheet.WithLogger(deps.Logger.Named("sheet"))),
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		label:   components.NewTextInput("Etiket", "örn. Deneme 3", false, 40),
	}
	for _, sub := range v.Subjects {
		limit := len(strconv.Itoa(sub.MaxQuestions))
		s.inputs = append(s.inputs,
			components.NewTextInput("Doğru", "0", true, limit),
			components.NewTextInput("Yanlış", "0", true, limit),
		)
	}
	s.button = components.NewButton("Net Hesapla", s.compute)
	return s
}

// Sheet exposes the underlying score sheet.
func (s *Screen) Sheet() *sheet.Sheet {
	return s.sheet
}

func (s *Screen) Init() tea.Cmd {
	return s.setFocus(0)
}

func (s *Screen) Title() string {
	return s.sheet.Variant().Name + " Net Hesaplama"
}

// VariantID returns the ID of the variant being scored.
func (s *Screen) VariantID() string {
	return s.sheet.Variant().ID
}

// CapturesEscape is true while the export label prompt is open.
func (s *Screen) CapturesEscape() bool {
	return s.prompting
}

// Busy reports whether the busy indicator is showing.
func (s *Screen) Busy() bool {
	return s.busy
}

// ShowingResults reports whether the results panel shows a computed result.
func (s *Screen) ShowingResults() bool {
	return s.sheet.State() == sheet.StateComputed && !s.busy
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case revealMsg:
		if msg.seq == s.seq && s.busy {
			s.busy = false
		}
		return s, nil

	case spinner.TickMsg:
		if !s.busy {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case exportDoneMsg:
		if msg.err != nil {
			s.setStatus("Kaydedilemedi: "+msg.err.Error(), true)
		} else if msg.path != "" {
			s.setStatus("Kaydedildi: "+msg.path, false)
		}
		return s, nil

	case tea.KeyPressMsg:
		if s.prompting {
			return s, s.updatePrompt(msg)
		}
		return s, s.handleKey(msg)
	}

	// Cursor blinks and pastes go to the focused input.
	if s.prompting {
		var cmd tea.Cmd
		s.label, cmd = s.label.Update(msg)
		return s, cmd
	}
	return s, s.forwardToFocused(msg)
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		return s.setFocus(s.focus + 1)
	case "shift+tab", "up":
		return s.setFocus(s.focus - 1)
	case "enter":
		if s.button.Active {
			var cmd tea.Cmd
			s.button, cmd = s.button.Update(msg)
			return cmd
		}
		return s.compute()
	case "ctrl+l":
		s.clear()
		return nil
	case "ctrl+t":
		next := New(s.deps, exam.Next(s.VariantID()).ID)
		return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	case "ctrl+e":
		return s.openPrompt()
	}
	return s.forwardToFocused(msg)
}

// setFocus moves focus to index i, wrapping around the inputs and button.
func (s *Screen) setFocus(i int) tea.Cmd {
	n := len(s.inputs) + 1
	i = ((i % n) + n) % n

	if s.focus < len(s.inputs) {
		s.inputs[s.focus].Blur()
	}
	s.focus = i
	s.button.Active = i == len(s.inputs)
	if i < len(s.inputs) {
		return s.inputs[i].Focus()
	}
	return nil
}

func (s *Screen) forwardToFocused(msg tea.Msg) tea.Cmd {
	if s.focus >= len(s.inputs) {
		return nil
	}

	before := s.inputs[s.focus].Value()
	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	raw := s.inputs[s.focus].Value()
	if raw == before {
		return cmd
	}

	subject := s.sheet.Variant().Subjects[s.focus/2]
	field := score.Correct
	if s.focus%2 == 1 {
		field = score.Incorrect
	}
	c, err := s.sheet.Edit(subject.ID, field, raw)
	if err != nil {
		s.deps.Logger.Error("edit failed", zap.Error(err))
		return cmd
	}
	s.syncPair(s.focus/2, c)
	s.busy = false
	s.status = ""
	return cmd
}

// syncPair shows the clamped count in both inputs of subject i. Zero is
// shown as an empty field.
func (s *Screen) syncPair(i int, c score.Count) {
	s.inputs[2*i].SetValue(display(c.Correct))
	s.inputs[2*i+1].SetValue(display(c.Incorrect))
}

func display(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// compute is ignored while a previous compute is still revealing.
func (s *Screen) compute() tea.Cmd {
	if s.busy {
		return nil
	}
	if !s.sheet.Compute() {
		s.setStatus("Hesaplamak için en az bir doğru ya da yanlış sayısı girin.", true)
		return nil
	}
	s.status = ""
	s.seq++

	if s.deps.BusyDelay <= 0 {
		s.busy = false
		return nil
	}
	s.busy = true
	seq := s.seq
	return tea.Batch(
		s.spinner.Tick,
		tea.Tick(s.deps.BusyDelay, func(time.Time) tea.Msg { return revealMsg{seq: seq} }),
	)
}

func (s *Screen) clear() {
	s.sheet.Clear()
	for i := range s.inputs {
		s.inputs[i].SetValue("")
	}
	s.busy = false
	s.seq++
	s.status = ""
}

func (s *Screen) openPrompt() tea.Cmd {
	if s.deps.Exporter == nil {
		s.setStatus("Kaydetme kapalı.", true)
		return nil
	}
	if !s.ShowingResults() {
		s.setStatus("Kaydetmeden önce netleri hesaplayın.", true)
		return nil
	}
	s.prompting = true
	s.label.SetValue("")
	return s.label.Focus()
}

func (s *Screen) updatePrompt(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.closePrompt()
		return nil
	case "enter":
		label := s.label.Value()
		s.closePrompt()
		return s.exportCmd(label)
	}
	var cmd tea.Cmd
	s.label, cmd = s.label.Update(msg)
	return cmd
}

func (s *Screen) closePrompt() {
	s.prompting = false
	s.label.Blur()
}

// exportCmd writes the current result off the event loop. The result is
// captured now so later edits cannot change what is exported.
func (s *Screen) exportCmd(label string) tea.Cmd {
	exporter := s.deps.Exporter
	v := s.sheet.Variant()
	res := s.sheet.Result()
	at := s.deps.Now()
	return func() tea.Msg {
		path, err := exporter.Export(v, res, label, at)
		return exportDoneMsg{path: path, err: err}
	}
}

func (s *Screen) setStatus(text string, isErr bool) {
	s.status = text
	s.statusErr = isErr
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.prompting {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Kaydet"},
			{Key: "Esc", Description: "İptal"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Hesapla"},
		{Key: "Tab", Description: "Sonraki"},
		{Key: "Ctrl+L", Description: "Temizle"},
		{Key: "Ctrl+T", Description: "TYT/AYT"},
		{Key: "Ctrl+E", Description: "PNG"},
		{Key: "Esc", Description: "Geri"},
	}
}

func (s *Screen) statusView() string {
	if s.status == "" {
		return ""
	}
	if s.statusErr {
		return theme.ErrorText.Render(s.status)
	}
	return theme.Correct.Render(s.status)
}
