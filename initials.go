package avatar

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/cases"
	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/avatar/internal/oval"
)

// DefaultInitials is the placeholder label shown when no initials are set.
const DefaultInitials = "??"

// initialsScale is the text size relative to the bounds height.
const initialsScale = 0.33

// ErrEmptyLabel is returned when an initials label has no characters.
var ErrEmptyLabel = errors.New("avatar: empty initials label")

// palette holds the initials background colors. The order is part of the
// color mapping and must not change.
var palette = [...]RGBA{
	MustHex("#7bc862"),
	MustHex("#e17076"),
	MustHex("#faa774"),
	MustHex("#6ec9cb"),
	MustHex("#65aadd"),
	MustHex("#a695e7"),
}

// Palette returns a copy of the initials background colors.
func Palette() []RGBA {
	out := make([]RGBA, len(palette))
	copy(out, palette[:])
	return out
}

// ColorFor returns the background color for an initials label.
//
// The color depends only on the code point of the first character:
// index = trunc(frac(code / 6) * 6). The result is stable across runs and
// independent of locale.
func ColorFor(label string) (RGBA, error) {
	if label == "" {
		return RGBA{}, ErrEmptyLabel
	}
	return colorFor(label), nil
}

// colorFor is ColorFor for a label already known to be non-empty.
func colorFor(label string) RGBA {
	r, _ := utf8.DecodeRuneInString(label)
	return palette[paletteIndex(r)]
}

func paletteIndex(code rune) int {
	n := float64(len(palette))
	d := float64(code) / n
	i := int((d - math.Trunc(d)) * n)
	return min(max(i, 0), len(palette)-1)
}

// normalizeLabel returns label, or DefaultInitials when label is blank.
func normalizeLabel(label string) string {
	if strings.TrimSpace(label) == "" {
		Logger().Warn("avatar: empty initials, using placeholder", "placeholder", DefaultInitials)
		return DefaultInitials
	}
	return label
}

// InitialsFromName derives an initials label from a display name: the
// upper-cased first letter of the first and last words.
// It returns DefaultInitials when name contains no letters.
func InitialsFromName(name string) string {
	words := strings.FieldsFunc(norm.NFC.String(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return DefaultInitials
	}

	first, _ := utf8.DecodeRuneInString(words[0])
	out := string(first)
	if len(words) > 1 {
		last, _ := utf8.DecodeRuneInString(words[len(words)-1])
		out += string(last)
	}
	return cases.Upper(xlanguage.Und).String(out)
}

// TextLayout is the placement of an initials label inside bounds.
type TextLayout struct {
	// Size is the font size in pixels.
	Size float64

	// Advance is the shaped width of the label.
	Advance float64

	// Ascent and Descent are the font extents above and below the
	// baseline, both positive.
	Ascent, Descent float64

	// X and Y are the baseline origin that centers the label.
	X, Y float64
}

// parsedFonts holds the default font, parsed once for both backends.
type parsedFonts struct {
	otf   *opentype.Font
	shape *gtfont.Font
}

var defaultFonts = sync.OnceValues(func() (parsedFonts, error) {
	return parseFonts(goregular.TTF)
})

func parseFonts(ttf []byte) (parsedFonts, error) {
	otf, err := opentype.Parse(ttf)
	if err != nil {
		return parsedFonts{}, fmt.Errorf("avatar: parse font: %w", err)
	}
	face, err := gtfont.ParseTTF(bytes.NewReader(ttf))
	if err != nil {
		return parsedFonts{}, fmt.Errorf("avatar: parse font for shaping: %w", err)
	}
	return parsedFonts{otf: otf, shape: face.Font}, nil
}

// InitialsRenderer draws the initials badge: a circle filled with the
// label's palette color and the label centered on it in white.
//
// Labels are shaped with HarfBuzz (go-text/typesetting) to measure their
// width and drawn with golang.org/x/image/font. The font face is cached
// per text size. An InitialsRenderer is not safe for concurrent use.
type InitialsRenderer struct {
	fonts    parsedFonts
	shaper   shaping.HarfbuzzShaper
	face     font.Face
	faceSize float64
}

// NewInitialsRenderer creates a renderer for a TrueType or OpenType font.
func NewInitialsRenderer(ttf []byte) (*InitialsRenderer, error) {
	fonts, err := parseFonts(ttf)
	if err != nil {
		return nil, err
	}
	return &InitialsRenderer{fonts: fonts}, nil
}

// DefaultInitialsRenderer creates a renderer using the Go Regular font.
func DefaultInitialsRenderer() (*InitialsRenderer, error) {
	fonts, err := defaultFonts()
	if err != nil {
		return nil, err
	}
	return &InitialsRenderer{fonts: fonts}, nil
}

// faceFor returns a face at the given size, reusing the cached one.
func (r *InitialsRenderer) faceFor(size float64) (font.Face, error) {
	if r.face != nil && r.faceSize == size {
		return r.face, nil
	}
	face, err := opentype.NewFace(r.fonts.otf, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("avatar: create face: %w", err)
	}
	if r.face != nil {
		_ = r.face.Close()
	}
	r.face, r.faceSize = face, size
	return face, nil
}

// advance returns the shaped width of label, falling back to the face's
// own advances when shaping produces no glyphs.
func (r *InitialsRenderer) advance(label string, size float64, face font.Face) float64 {
	runes := []rune(label)
	out := r.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gtfont.NewFace(r.fonts.shape),
		Size:      fixed.Int26_6(size * 64),
		Script:    language.LookupScript(runes[0]),
		Language:  language.NewLanguage("en"),
	})
	if len(out.Glyphs) == 0 {
		return fixedToFloat(font.MeasureString(face, label))
	}
	return fixedToFloat(out.Advance)
}

// Layout computes where label is drawn inside b. The text size is 33% of
// the bounds height; the label is centered horizontally on its shaped
// advance and vertically on the midpoint of the font's ascent and descent.
func (r *InitialsRenderer) Layout(b Bounds, label string) (TextLayout, error) {
	if label == "" {
		return TextLayout{}, ErrEmptyLabel
	}
	size := float64(b.Height()) * initialsScale
	if size <= 0 {
		return TextLayout{}, fmt.Errorf("avatar: no room for text in %dx%d bounds", b.Width(), b.Height())
	}
	face, err := r.faceFor(size)
	if err != nil {
		return TextLayout{}, err
	}

	m := face.Metrics()
	l := TextLayout{
		Size:    size,
		Advance: r.advance(label, size, face),
		Ascent:  fixedToFloat(m.Ascent),
		Descent: fixedToFloat(m.Descent),
	}
	l.X = b.CenterX() - l.Advance/2
	l.Y = b.CenterY() + (l.Ascent-l.Descent)/2
	return l, nil
}

// Draw renders the initials badge for label inside b.
// A blank label is replaced with DefaultInitials. Draw is a no-op for
// empty bounds.
func (r *InitialsRenderer) Draw(dst draw.Image, b Bounds, label string) {
	if b.Empty() {
		return
	}
	label = normalizeLabel(label)

	bg := colorFor(label)
	clip := b.Rect()
	oval.Fill(dst, clip, oval.RectOf(clip, clip.Min), image.NewUniform(bg.Color()), image.Point{})

	l, err := r.Layout(b, label)
	if err != nil {
		Logger().Warn("avatar: initials layout failed", "label", label, "err", err)
		return
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.White),
		Face: r.face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(l.X * 64), Y: fixed.Int26_6(l.Y * 64)},
	}
	d.DrawString(label)
}

// Close releases the cached font face.
func (r *InitialsRenderer) Close() error {
	if r.face == nil {
		return nil
	}
	err := r.face.Close()
	r.face = nil
	return err
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
