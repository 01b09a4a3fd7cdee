package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nethesap/nethesap/internal/exam"
	"github.com/nethesap/nethesap/internal/score"
	"github.com/nethesap/nethesap/internal/sheet"
)

func computedSheet(t *testing.T, id string, counts map[string]score.Count) *sheet.Sheet {
	t.Helper()
	s := sheet.New(exam.MustLoad(id),
		sheet.WithClock(func() time.Time { return time.Date(2026, 6, 21, 10, 15, 0, 0, time.UTC) }),
		sheet.WithIDGenerator(func() string { return "result-1" }),
	)
	for subject, c := range counts {
		if _, err := s.Set(subject, c); err != nil {
			t.Fatalf("Set(%s): %v", subject, err)
		}
	}
	if !s.Compute() {
		t.Fatal("expected Compute to succeed")
	}
	return s
}

func tytSheet(t *testing.T) *sheet.Sheet {
	return computedSheet(t, exam.TYT, map[string]score.Count{
		"turkish": {Correct: 30, Incorrect: 10},
		"social":  {Correct: 15, Incorrect: 5},
		"math":    {Correct: 20, Incorrect: 20},
		"science": {Correct: 10, Incorrect: 10},
	})
}

func aytSheet(t *testing.T) *sheet.Sheet {
	return computedSheet(t, exam.AYT, map[string]score.Count{
		"math":      {Correct: 30, Incorrect: 10},
		"physics":   {Correct: 10, Incorrect: 4},
		"chemistry": {Correct: 10, Incorrect: 3},
		"biology":   {Correct: 10, Incorrect: 3},
	})
}

func assertGolden(t *testing.T, got, path string) {
	t.Helper()
	golden, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	if got != string(golden) {
		t.Errorf("output mismatch with %s\n--- got ---\n%s\n--- want ---\n%s", path, got, golden)
	}
}

func TestWriteTextGolden(t *testing.T) {
	tests := []struct {
		name   string
		sheet  func(*testing.T) *sheet.Sheet
		golden string
	}{
		{"tyt", tytSheet, "testdata/tyt.txt"},
		{"ayt hides unattempted", aytSheet, "testdata/ayt.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.sheet(t)
			var buf bytes.Buffer
			if err := Write(&buf, FormatText, s.Variant(), s.Result()); err != nil {
				t.Fatalf("Write: %v", err)
			}
			assertGolden(t, buf.String(), tt.golden)
		})
	}
}

func TestWriteMarkdownGolden(t *testing.T) {
	s := tytSheet(t)
	var buf bytes.Buffer
	if err := Write(&buf, FormatMarkdown, s.Variant(), s.Result()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	assertGolden(t, buf.String(), "testdata/tyt.md")
}

func TestWriteJSON(t *testing.T) {
	s := aytSheet(t)
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, s.Variant(), s.Result()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Exam != "ayt" || doc.ResultID != "result-1" {
		t.Errorf("unexpected header: %+v", doc)
	}
	if len(doc.Subjects) != 7 || len(doc.Tracks) != 4 {
		t.Fatalf("JSON keeps every subject and track, got %d/%d", len(doc.Subjects), len(doc.Tracks))
	}
	if doc.Tracks[0].ID != "quantitative" || doc.Tracks[0].Total != 55 || doc.Tracks[0].Percentage != 68.75 {
		t.Errorf("unexpected quantitative track: %+v", doc.Tracks[0])
	}
}

func TestWriteYAML(t *testing.T) {
	s := tytSheet(t)
	var buf bytes.Buffer
	if err := Write(&buf, FormatYAML, s.Variant(), s.Result()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var doc Document
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc.Tracks) != 1 || doc.Tracks[0].Total != 63.75 {
		t.Errorf("unexpected tracks: %+v", doc.Tracks)
	}
	if !strings.Contains(buf.String(), "exam_name: TYT") {
		t.Errorf("expected exam_name in YAML output:\n%s", buf.String())
	}
}

func TestWriteNilResult(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, FormatText, exam.MustLoad(exam.TYT), nil)
	if !errors.Is(err, ErrNoResult) {
		t.Fatalf("expected ErrNoResult, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"TEXT", FormatText, false},
		{"md", FormatMarkdown, false},
		{"json", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("ParseFormat(%q): expected ErrUnknownFormat, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestFormatting(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"net negative", FormatNet(-0.75), "-0.75"},
		{"net whole", FormatNet(9), "9.00"},
		{"net tie", FormatNet(0.125), "0.13"},
		{"percent", FormatPercent(53.125), "%53.1"},
		{"percent tie", FormatPercent(1.25), "%1.3"},
		{"percent tie 6.25", FormatPercent(6.25), "%6.3"},
		{"percent negative tie", FormatPercent(-0.25), "%-0.3"},
		{"percent whole", FormatPercent(25), "%25.0"},
		{"denominator", FormatDenominator(120), "120"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestWriteRoundsPercentTiesAwayFromZero(t *testing.T) {
	s := computedSheet(t, exam.AYT, map[string]score.Count{
		"foreign_language": {Correct: 1},
	})
	var b strings.Builder
	if err := Write(&b, FormatText, s.Variant(), s.Result()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := "Yabancı Dil Toplam: 1.00 net / 80 soru (%1.3)"
	if !strings.Contains(b.String(), want) {
		t.Errorf("text report missing %q:\n%s", want, b.String())
	}
}

func TestSectionsKeepEverythingWhenNotHiding(t *testing.T) {
	s := computedSheet(t, exam.TYT, map[string]score.Count{"math": {Correct: 4}})
	doc, err := Build(s.Variant(), s.Result())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	secs := Sections(s.Variant(), doc)
	if len(secs) != 1 || len(secs[0].Subjects) != 4 {
		t.Errorf("TYT should list all four subjects, got %+v", secs)
	}
}

func TestWriteExams(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteExams(&buf, FormatText, exam.All()); err != nil {
		t.Fatalf("WriteExams: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"TYT - Temel Yeterlilik Testi (tyt)",
		"Yabancı Dil (80 soru)",
		"Sayısal: math + physics + chemistry + biology / 80",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := WriteExams(&buf, FormatJSON, exam.All()); err != nil {
		t.Fatalf("WriteExams json: %v", err)
	}
	var decoded []exam.Variant
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != 2 || decoded[1].Tracks[2].ID != "verbal" {
		t.Errorf("unexpected exam list: %+v", decoded)
	}
}
