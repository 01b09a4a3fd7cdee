package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nethesap/nethesap/internal/exam"
)

// Heading returns "<Name> - <Title>", or just the name when untitled.
func Heading(v *exam.Variant) string {
	if v.Title == "" {
		return v.Name
	}
	return v.Name + " - " + v.Title
}

func renderText(v *exam.Variant, doc Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", Heading(v))

	multi := len(v.Tracks) > 1
	for _, sec := range Sections(v, doc) {
		b.WriteString("\n")
		indent := ""
		if multi {
			fmt.Fprintf(&b, "%s\n", sec.Track.Name)
			indent = "  "
		}
		for _, s := range sec.Subjects {
			fmt.Fprintf(&b, "%s%s\n", indent, SubjectText(s))
		}
		fmt.Fprintf(&b, "%s%s\n", indent, TotalLine(sec.Track))
	}
	return b.String()
}

func renderMarkdown(v *exam.Variant, doc Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s Net Sonuçları\n\n", v.Name)
	fmt.Fprintf(&b, "- Sınav: %s\n", Heading(v))
	fmt.Fprintf(&b, "- Hesaplama zamanı: %s\n", doc.ComputedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "- Sonuç kimliği: %s\n", doc.ResultID)

	for _, sec := range Sections(v, doc) {
		fmt.Fprintf(&b, "\n## %s\n\n", sec.Track.Name)
		if len(sec.Subjects) > 0 {
			fmt.Fprintf(&b, "| Ders | Doğru | Yanlış | Net |\n")
			fmt.Fprintf(&b, "| --- | ---: | ---: | ---: |\n")
			for _, s := range sec.Subjects {
				fmt.Fprintf(&b, "| %s | %d | %d | %s |\n", s.Name, s.Correct, s.Incorrect, FormatNet(s.Net))
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "**%s**\n", TotalLine(sec.Track))
	}
	return b.String()
}

// WriteExams renders the structure of the given variants.
func WriteExams(w io.Writer, format Format, variants []*exam.Variant) error {
	var err error
	switch format {
	case FormatText:
		_, err = io.WriteString(w, renderExamsText(variants))
	case FormatMarkdown:
		_, err = io.WriteString(w, renderExamsMarkdown(variants))
	case FormatJSON:
		err = writeJSON(w, variants)
	case FormatYAML:
		err = writeYAML(w, variants)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("write %s exam list: %w", format, err)
	}
	return nil
}

func renderExamsText(variants []*exam.Variant) string {
	var b strings.Builder
	for i, v := range variants {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s (%s)\n", Heading(v), v.ID)
		fmt.Fprintf(&b, "  Dersler (%d soru):\n", v.TotalQuestions())
		for _, s := range v.Subjects {
			fmt.Fprintf(&b, "    %-20s %s (%d soru)\n", s.ID, s.Name, s.MaxQuestions)
		}
		b.WriteString("  Puan türleri:\n")
		for _, t := range v.Tracks {
			fmt.Fprintf(&b, "    %-20s %s: %s / %s\n",
				t.ID, t.Name, strings.Join(t.Members, " + "), FormatDenominator(t.Denominator))
		}
	}
	return b.String()
}

func renderExamsMarkdown(variants []*exam.Variant) string {
	var b strings.Builder
	for i, v := range variants {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s\n\n", Heading(v))
		b.WriteString("| Ders | Kimlik | Soru |\n| --- | --- | ---: |\n")
		for _, s := range v.Subjects {
			fmt.Fprintf(&b, "| %s | `%s` | %d |\n", s.Name, s.ID, s.MaxQuestions)
		}
		b.WriteString("\n| Puan türü | Dersler | Payda |\n| --- | --- | ---: |\n")
		for _, t := range v.Tracks {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", t.Name, strings.Join(t.Members, ", "), FormatDenominator(t.Denominator))
		}
	}
	return b.String()
}
