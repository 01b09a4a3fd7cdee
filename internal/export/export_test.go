package export

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nethesap/nethesap/internal/exam"
	"github.com/nethesap/nethesap/internal/score"
	"github.com/nethesap/nethesap/internal/sheet"
)

var exportTime = time.Date(2026, 6, 21, 10, 15, 30, 0, time.UTC)

func computedSheet(t *testing.T, id string, counts map[string]score.Count) *sheet.Sheet {
	t.Helper()
	s := sheet.New(exam.MustLoad(id),
		sheet.WithClock(func() time.Time { return exportTime }),
		sheet.WithIDGenerator(func() string { return "result-1" }),
	)
	for subject, c := range counts {
		_, err := s.Set(subject, c)
		require.NoError(t, err)
	}
	require.True(t, s.Compute())
	return s
}

func TestExportWritesPNG(t *testing.T) {
	s := computedSheet(t, exam.TYT, map[string]score.Count{
		"turkish": {Correct: 30, Incorrect: 5},
		"math":    {Correct: 20, Incorrect: 4},
	})
	dir := filepath.Join(t.TempDir(), "cards")
	e := New(dir)

	path, err := e.Export(s.Variant(), s.Result(), "Deneme 3", exportTime)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "deneme-3-tyt-20260621-101530.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, DefaultWidth, DefaultHeight), img.Bounds())
}

func TestExportHonoursSize(t *testing.T) {
	s := computedSheet(t, exam.AYT, map[string]score.Count{
		"math": {Correct: 30, Incorrect: 8},
	})
	e := New(t.TempDir(), WithSize(600, 315))

	path, err := e.Export(s.Variant(), s.Result(), "", exportTime)
	require.NoError(t, err)
	assert.Equal(t, "nethesap-ayt-20260621-101530.png", filepath.Base(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 600, cfg.Width)
	assert.Equal(t, 315, cfg.Height)
}

func TestExportKeepsEarlierCardWithSameName(t *testing.T) {
	s := computedSheet(t, exam.TYT, map[string]score.Count{"math": {Correct: 10}})
	dir := t.TempDir()
	e := New(dir, WithSize(600, 315))

	first, err := e.Export(s.Variant(), s.Result(), "Deneme", exportTime)
	require.NoError(t, err)
	second, err := e.Export(s.Variant(), s.Result(), "Deneme", exportTime)
	require.NoError(t, err)
	third, err := e.Export(s.Variant(), s.Result(), "Deneme", exportTime)
	require.NoError(t, err)

	assert.Equal(t, "deneme-tyt-20260621-101530.png", filepath.Base(first))
	assert.Equal(t, "deneme-tyt-20260621-101530-2.png", filepath.Base(second))
	assert.Equal(t, "deneme-tyt-20260621-101530-3.png", filepath.Base(third))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestExportWithoutResultIsNoop(t *testing.T) {
	dir := t.TempDir()
	e := New(dir)

	path, err := e.Export(exam.MustLoad(exam.TYT), nil, "x", exportTime)
	require.NoError(t, err)
	assert.Empty(t, path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNilExporterIsNoop(t *testing.T) {
	s := computedSheet(t, exam.TYT, map[string]score.Count{"math": {Correct: 1}})

	var e *Exporter
	path, err := e.Export(s.Variant(), s.Result(), "x", exportTime)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestExportFailureLeavesResultIntact(t *testing.T) {
	s := computedSheet(t, exam.TYT, map[string]score.Count{"math": {Correct: 12}})
	before := *s.Result()

	// A regular file where the directory should be.
	blocker := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	e := New(blocker)

	_, err := e.Export(s.Variant(), s.Result(), "x", exportTime)
	require.Error(t, err)
	assert.Equal(t, sheet.StateComputed, s.State())
	assert.Equal(t, before, *s.Result())
}

func TestRenderRequiresResult(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	assert.Error(t, Render(img, Card{Variant: exam.MustLoad(exam.TYT)}))
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"Deneme 3", "deneme-3"},
		{"Özdebir Türkiye Geneli", "ozdebir-turkiye-geneli"},
		{"  çağ  ışık  ", "cag-isik"},
		{"AYT #2 / Sayısal", "ayt-2-sayisal"},
		{"!!!", ""},
		{"a__b--c", "a-b-c"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.in))
		})
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "nethesap-tyt-20260621-101530.png", FileName("???", exam.TYT, exportTime))
	assert.Equal(t, "mock-ayt-20260621-101530.png", FileName("Mock", exam.AYT, exportTime))
}
