// Package export renders a computed result onto a PNG card.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/nethesap/nethesap/internal/exam"
	"github.com/nethesap/nethesap/internal/sheet"
)

// Card size, matching the web application's share image.
const (
	DefaultWidth  = 1200
	DefaultHeight = 630
)

// TimestampLayout is the layout of the timestamp printed on cards.
const TimestampLayout = "02.01.2006 15:04"

// Exporter writes PNG cards into Dir. A nil *Exporter skips every export.
type Exporter struct {
	Dir    string
	Width  int
	Height int

	logger *zap.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Exporter) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithSize overrides the card size.
func WithSize(width, height int) Option {
	return func(e *Exporter) {
		e.Width, e.Height = width, height
	}
}

// New creates an Exporter writing into dir.
func New(dir string, opts ...Option) *Exporter {
	e := &Exporter{
		Dir:    dir,
		Width:  DefaultWidth,
		Height: DefaultHeight,
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Export renders res to a PNG file and returns its path. Without an exporter
// or a result there is nothing to draw and the call is skipped: ("", nil).
// Failures are returned and never affect res.
func (e *Exporter) Export(v *exam.Variant, res *sheet.Result, label string, at time.Time) (string, error) {
	if e == nil || res == nil {
		return "", nil
	}

	img := image.NewRGBA(image.Rect(0, 0, e.Width, e.Height))
	if err := Render(img, Card{Variant: v, Result: res, Label: label, At: at}); err != nil {
		e.logger.Warn("render card failed", zap.Error(err))
		return "", fmt.Errorf("render card: %w", err)
	}

	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		e.logger.Warn("create export dir failed", zap.String("dir", e.Dir), zap.Error(err))
		return "", fmt.Errorf("create export dir: %w", err)
	}

	f, path, err := createUnique(e.Dir, FileName(label, v.ID, at))
	if err != nil {
		e.logger.Warn("create card file failed", zap.String("dir", e.Dir), zap.Error(err))
		return "", fmt.Errorf("create card file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		e.logger.Warn("encode card failed", zap.String("path", path), zap.Error(err))
		return "", fmt.Errorf("encode card: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close card file: %w", err)
	}

	e.logger.Info("card exported",
		zap.String("path", path),
		zap.String("exam", v.ID),
		zap.String("result_id", res.ID))
	return path, nil
}

// maxNameAttempts bounds the "-2", "-3", ... suffixes tried for one name.
const maxNameAttempts = 100

// createUnique creates name in dir without replacing an existing file. On a
// collision it tries "<stem>-2.png", "<stem>-3.png" and so on.
func createUnique(dir, name string) (*os.File, string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for i := 1; i <= maxNameAttempts; i++ {
		candidate := name
		if i > 1 {
			candidate = fmt.Sprintf("%s-%d%s", stem, i, ext)
		}
		path := filepath.Join(dir, candidate)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", err
		}
	}
	return nil, "", fmt.Errorf("%s: %d files with this name already exist", name, maxNameAttempts)
}

// FileName returns "<slug>-<exam>-<20060102-150405>.png". An empty or
// unsluggable label falls back to "nethesap".
func FileName(label, examID string, at time.Time) string {
	slug := Slug(label)
	if slug == "" {
		slug = "nethesap"
	}
	return fmt.Sprintf("%s-%s-%s.png", slug, examID, at.Format("20060102-150405"))
}

var turkishFold = strings.NewReplacer(
	"ç", "c", "Ç", "c",
	"ğ", "g", "Ğ", "g",
	"ı", "i", "I", "i", "İ", "i",
	"ö", "o", "Ö", "o",
	"ş", "s", "Ş", "s",
	"ü", "u", "Ü", "u",
)

// Slug lowercases label, folds Turkish letters to ASCII and joins words
// with hyphens. Other characters are dropped.
func Slug(label string) string {
	folded := turkishFold.Replace(label)

	var b strings.Builder
	pendingHyphen := false
	for _, r := range folded {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			pendingHyphen = true
		}
	}

	s := b.String()
	if len(s) > 48 {
		s = strings.TrimRight(s[:48], "-")
	}
	return s
}
