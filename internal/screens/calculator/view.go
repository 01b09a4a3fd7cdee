package calculator

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/nethesap/nethesap/internal/report"
	"github.com/nethesap/nethesap/internal/ui/components"
	"github.com/nethesap/nethesap/internal/ui/layout"
	"github.com/nethesap/nethesap/internal/ui/theme"
)

const (
	nameWidth    = 24
	resultsWidth = 60
)

func (s *Screen) View(width, height int) string {
	form := s.formView()
	results := s.resultsView(resultsWidth)

	var body string
	if layout.IsCompactWidth(width) {
		body = lipgloss.JoinVertical(lipgloss.Left, form, results)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, form, "  ", results)
	}

	parts := []string{body}
	if s.prompting {
		parts = append(parts, theme.FocusedCard.Render("Kart etiketi (isteğe bağlı)\n"+s.label.View()))
	}
	if st := s.statusView(); st != "" {
		parts = append(parts, st)
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(strings.Join(parts, "\n"))
}

func (s *Screen) formView() string {
	v := s.sheet.Variant()

	var rows []string
	rows = append(rows, theme.Body.Bold(true).Render(v.Name+" - "+v.Title), "")
	for i, sub := range v.Subjects {
		name := fmt.Sprintf("%s (%d)", sub.Name, sub.MaxQuestions)
		nameStyle := theme.Body
		if s.focus/2 == i && s.focus < len(s.inputs) {
			nameStyle = theme.Selected
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			nameStyle.Width(nameWidth).MaxWidth(nameWidth).Render(name),
			"  ",
			lipgloss.NewStyle().Width(12).Render(s.inputs[2*i].View()),
			"  ",
			lipgloss.NewStyle().Width(12).Render(s.inputs[2*i+1].View()),
		)
		rows = append(rows, row)
	}
	rows = append(rows, "", s.button.View())

	style := theme.Card
	if !s.prompting {
		style = theme.FocusedCard
	}
	return style.Render(strings.Join(rows, "\n"))
}

func (s *Screen) resultsView(width int) string {
	inner := width - 6
	var body string

	switch {
	case s.busy:
		body = s.spinner.View() + " " + theme.Body.Render("Hesaplanıyor...")
	case !s.ShowingResults():
		body = theme.Hint.Render("Sonuçları görmek için Enter'a basın.")
	default:
		body = s.sectionsView(inner)
	}

	title := theme.Body.Bold(true).Render("Sonuçlar")
	return theme.Card.Width(width).Render(title + "\n\n" + body)
}

func (s *Screen) sectionsView(width int) string {
	v := s.sheet.Variant()
	doc, err := report.Build(v, s.sheet.Result())
	if err != nil {
		return theme.ErrorText.Render(err.Error())
	}

	sections := report.Sections(v, doc)
	if len(sections) == 0 {
		return theme.Hint.Render("Gösterilecek bölüm yok.")
	}

	var blocks []string
	for _, sec := range sections {
		var lines []string
		for _, sub := range sec.Subjects {
			lines = append(lines,
				theme.Label.Render(sub.Name+": ")+theme.Net.Render(report.FormatNet(sub.Net)+" net"))
		}
		t := sec.Track
		bar := components.NewProgressBar("", t.Percentage/100, report.FormatPercent(t.Percentage), width)
		lines = append(lines,
			theme.Body.Bold(true).Render(report.TotalLine(t)),
			bar.View())
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}
