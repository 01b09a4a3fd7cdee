package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/nethesap/nethesap/internal/exam"
	"github.com/nethesap/nethesap/internal/report"
	"github.com/nethesap/nethesap/internal/sheet"
	"github.com/nethesap/nethesap/internal/ui/theme"
)

// Card is everything drawn on an exported image.
type Card struct {
	Variant *exam.Variant
	Result  *sheet.Result
	Label   string
	At      time.Time
}

type faceSet struct {
	title   font.Face
	heading font.Face
	body    font.Face
	small   font.Face
}

var (
	facesOnce sync.Once
	faces     faceSet
	facesErr  error
)

func loadFaces() (faceSet, error) {
	facesOnce.Do(func() {
		regular, err := opentype.Parse(goregular.TTF)
		if err != nil {
			facesErr = fmt.Errorf("parse regular font: %w", err)
			return
		}
		bold, err := opentype.Parse(gobold.TTF)
		if err != nil {
			facesErr = fmt.Errorf("parse bold font: %w", err)
			return
		}

		newFace := func(f *opentype.Font, size float64) font.Face {
			if facesErr != nil {
				return nil
			}
			face, err := opentype.NewFace(f, &opentype.FaceOptions{
				Size:    size,
				DPI:     72,
				Hinting: font.HintingFull,
			})
			if err != nil {
				facesErr = fmt.Errorf("create %.0fpt face: %w", size, err)
			}
			return face
		}

		faces = faceSet{
			title:   newFace(bold, 52),
			heading: newFace(bold, 30),
			body:    newFace(regular, 26),
			small:   newFace(regular, 20),
		}
	})
	return faces, facesErr
}

// Render draws card onto dst. The layout scales to dst's bounds but is
// designed for DefaultWidth x DefaultHeight.
func Render(dst draw.Image, card Card) error {
	if card.Variant == nil || card.Result == nil {
		return errors.New("card needs a variant and a result")
	}
	fs, err := loadFaces()
	if err != nil {
		return err
	}
	doc, err := report.Build(card.Variant, card.Result)
	if err != nil {
		return err
	}

	b := dst.Bounds()
	draw.Draw(dst, b, image.NewUniform(theme.BgDark), image.Point{}, draw.Src)

	const margin = 56
	left := b.Min.X + margin
	right := b.Max.X - margin
	mid := b.Min.X + b.Dx()/2

	// Accent stripe.
	fillRect(dst, image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+10), theme.Primary)

	y := b.Min.Y + margin + 40
	drawText(dst, fs.title, theme.Text, left, y, report.Heading(card.Variant))

	stamp := card.At.Format(TimestampLayout)
	drawText(dst, fs.small, theme.TextDim, right-textWidth(fs.small, stamp), y-30, stamp)
	if card.Label != "" {
		drawText(dst, fs.body, theme.Accent, right-textWidth(fs.body, card.Label), y, card.Label)
	}

	y += 36
	fillRect(dst, image.Rect(left, y, right, y+2), theme.Border)
	top := y + 50

	// Tracks with bars on the left.
	ty := top
	barWidth := mid - left - 40
	for _, sec := range report.Sections(card.Variant, doc) {
		t := sec.Track
		drawText(dst, fs.heading, theme.Text, left, ty, t.Name)
		summary := fmt.Sprintf("%s / %s  %s",
			report.FormatNet(t.Total), report.FormatDenominator(t.Denominator), report.FormatPercent(t.Percentage))
		drawText(dst, fs.body, theme.Accent, left, ty+36, summary)

		bar := image.Rect(left, ty+50, left+barWidth, ty+64)
		fillRect(dst, bar, theme.BgCard)
		filled := int(float64(barWidth) * clamp01(t.Percentage/100))
		if filled > 0 {
			fillRect(dst, image.Rect(bar.Min.X, bar.Min.Y, bar.Min.X+filled, bar.Max.Y), theme.Secondary)
		}
		ty += 110
	}

	// Subject nets on the right.
	sy := top
	for _, s := range visibleSubjects(card.Variant, doc) {
		drawText(dst, fs.body, theme.TextDim, mid, sy, s.Name)
		net := report.FormatNet(s.Net)
		drawText(dst, fs.heading, theme.Text, right-textWidth(fs.heading, net), sy, net)
		sy += 46
	}

	footer := "nethesap"
	drawText(dst, fs.small, theme.TextDim, right-textWidth(fs.small, footer), b.Max.Y-margin/2, footer)
	return nil
}

func visibleSubjects(v *exam.Variant, doc report.Document) []report.SubjectLine {
	if !v.HideUnattempted {
		return doc.Subjects
	}
	var out []report.SubjectLine
	for _, s := range doc.Subjects {
		if s.Attempted() {
			out = append(out, s)
		}
	}
	return out
}

func drawText(dst draw.Image, face font.Face, c color.Color, x, y int, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

func fillRect(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
