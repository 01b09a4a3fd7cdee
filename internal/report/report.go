// Package report renders computed results and exam structures as text,
// Markdown, JSON or YAML.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nethesap/nethesap/internal/exam"
	"github.com/nethesap/nethesap/internal/sheet"
)

var (
	ErrNoResult      = errors.New("no computed result")
	ErrUnknownFormat = errors.New("unknown format")
)

// Format selects the output encoding.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatText, FormatMarkdown, FormatJSON, FormatYAML}
}

// ParseFormat parses a format name. "md" and "yml" are accepted aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w %q (want one of %v)", ErrUnknownFormat, s, Formats())
}

// Document is the serialisable form of a result.
type Document struct {
	Exam       string        `json:"exam" yaml:"exam"`
	ExamName   string        `json:"exam_name" yaml:"exam_name"`
	ResultID   string        `json:"result_id" yaml:"result_id"`
	ComputedAt time.Time     `json:"computed_at" yaml:"computed_at"`
	Subjects   []SubjectLine `json:"subjects" yaml:"subjects"`
	Tracks     []TrackLine   `json:"tracks" yaml:"tracks"`
}

// SubjectLine is one subject row of a Document.
type SubjectLine struct {
	ID           string  `json:"id" yaml:"id"`
	Name         string  `json:"name" yaml:"name"`
	MaxQuestions int     `json:"max_questions" yaml:"max_questions"`
	Correct      int     `json:"correct" yaml:"correct"`
	Incorrect    int     `json:"incorrect" yaml:"incorrect"`
	Net          float64 `json:"net" yaml:"net"`
}

// Attempted reports whether the subject had any input.
func (s SubjectLine) Attempted() bool {
	return s.Correct > 0 || s.Incorrect > 0
}

// TrackLine is one track row of a Document.
type TrackLine struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Members     []string `json:"members" yaml:"members"`
	Total       float64  `json:"total" yaml:"total"`
	Denominator float64  `json:"denominator" yaml:"denominator"`
	Percentage  float64  `json:"percentage" yaml:"percentage"`
	Attempted   bool     `json:"attempted" yaml:"attempted"`
}

// Build assembles the document for res, attaching names from v.
func Build(v *exam.Variant, res *sheet.Result) (Document, error) {
	if res == nil {
		return Document{}, ErrNoResult
	}

	doc := Document{
		Exam:       v.ID,
		ExamName:   v.Name,
		ResultID:   res.ID,
		ComputedAt: res.ComputedAt,
	}

	for _, r := range res.Subjects {
		sub, _ := v.Subject(r.ID)
		doc.Subjects = append(doc.Subjects, SubjectLine{
			ID:           r.ID,
			Name:         nameOr(sub.Name, r.ID),
			MaxQuestions: sub.MaxQuestions,
			Correct:      r.Correct,
			Incorrect:    r.Incorrect,
			Net:          r.Net,
		})
	}

	for _, tc := range res.Tracks {
		def, _ := v.Track(tc.ID)
		doc.Tracks = append(doc.Tracks, TrackLine{
			ID:          tc.ID,
			Name:        nameOr(def.Name, tc.ID),
			Members:     def.Members,
			Total:       tc.Total,
			Denominator: tc.Denominator,
			Percentage:  tc.Percentage,
			Attempted:   tc.Attempted,
		})
	}
	return doc, nil
}

// Write renders res in the given format.
func Write(w io.Writer, format Format, v *exam.Variant, res *sheet.Result) error {
	doc, err := Build(v, res)
	if err != nil {
		return err
	}

	switch format {
	case FormatText:
		_, err = io.WriteString(w, renderText(v, doc))
	case FormatMarkdown:
		_, err = io.WriteString(w, renderMarkdown(v, doc))
	case FormatJSON:
		err = writeJSON(w, doc)
	case FormatYAML:
		err = writeYAML(w, doc)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("write %s report: %w", format, err)
	}
	return nil
}

func writeJSON(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func writeYAML(w io.Writer, payload any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(payload); err != nil {
		return err
	}
	return enc.Close()
}

// FormatNet renders a net value the way results are displayed: two decimals.
func FormatNet(net float64) string {
	return fixed(net, 2)
}

// FormatPercent renders a percentage with one decimal and the Turkish
// leading percent sign, e.g. "%53.1".
func FormatPercent(p float64) string {
	return "%" + fixed(p, 1)
}

// fixed formats f with the given decimals, rounding ties away from zero
// ("%1.3" for 1.25). strconv alone rounds ties to even.
func fixed(f float64, decimals int) string {
	scale := math.Pow10(decimals)
	return strconv.FormatFloat(math.Round(f*scale)/scale, 'f', decimals, 64)
}

// FormatDenominator renders a denominator without trailing zeros.
func FormatDenominator(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}

// TotalLine renders a track's total line, e.g.
// "Sayısal Toplam: 55.00 net / 80 soru (%68.8)".
func TotalLine(t TrackLine) string {
	return fmt.Sprintf("%s Toplam: %s net / %s soru (%s)",
		t.Name, FormatNet(t.Total), FormatDenominator(t.Denominator), FormatPercent(t.Percentage))
}

// SubjectText renders a subject's net line, e.g. "Fizik: 9.00 net".
func SubjectText(s SubjectLine) string {
	return fmt.Sprintf("%s: %s net", s.Name, FormatNet(s.Net))
}

// Section is a track with the subject lines shown under it.
type Section struct {
	Track    TrackLine
	Subjects []SubjectLine
}

// Sections groups doc by track, dropping subjects and tracks without input
// when the variant hides unattempted sections.
func Sections(v *exam.Variant, doc Document) []Section {
	bySubject := make(map[string]SubjectLine, len(doc.Subjects))
	for _, s := range doc.Subjects {
		bySubject[s.ID] = s
	}

	var out []Section
	for _, t := range doc.Tracks {
		if v.HideUnattempted && !t.Attempted {
			continue
		}
		sec := Section{Track: t}
		for _, id := range t.Members {
			s, ok := bySubject[id]
			if !ok {
				continue
			}
			if v.HideUnattempted && !s.Attempted() {
				continue
			}
			sec.Subjects = append(sec.Subjects, s)
		}
		out = append(out, sec)
	}
	return out
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
