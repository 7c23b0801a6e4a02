package avatar

import (
	"image"
	"image/color"
	"testing"
)

func TestColorFor(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"A", "#a695e7"},
		{"AB", "#a695e7"},
		{"B", "#7bc862"},
		{"C", "#7bc862"},
		{"D", "#faa774"},
		{"E", "#6ec9cb"},
		{"?", "#6ec9cb"},
		{"??", "#6ec9cb"},
		{"a", "#e17076"},
		{"M", "#a695e7"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := ColorFor(tt.label)
			if err != nil {
				t.Fatalf("ColorFor(%q) error = %v", tt.label, err)
			}
			if got.Hex() != tt.want {
				t.Errorf("ColorFor(%q) = %s, want %s", tt.label, got.Hex(), tt.want)
			}
		})
	}
}

func TestColorForEmpty(t *testing.T) {
	if _, err := ColorFor(""); err != ErrEmptyLabel {
		t.Errorf("ColorFor(\"\") error = %v, want ErrEmptyLabel", err)
	}
}

func TestColorForStable(t *testing.T) {
	for r := rune(0); r < 0x3000; r += 7 {
		label := string(r) + "x"
		a, _ := ColorFor(label)
		b, _ := ColorFor(label)
		if a != b {
			t.Fatalf("ColorFor(%q) not stable", label)
		}
		i := paletteIndex(r)
		if i < 0 || i >= len(palette) {
			t.Fatalf("paletteIndex(%d) = %d out of range", r, i)
		}
	}
}

func TestPaletteCopy(t *testing.T) {
	p := Palette()
	if len(p) != 6 {
		t.Fatalf("len(Palette()) = %d, want 6", len(p))
	}
	p[0] = Black
	if palette[0] == Black {
		t.Error("Palette() should return a copy")
	}
}

func TestInitialsFromName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"ada lovelace", "AL"},
		{"Grace Brewster Hopper", "GH"},
		{"linus", "L"},
		{"  émile   zola ", "ÉZ"},
		{"", DefaultInitials},
		{"--- !!", DefaultInitials},
	}
	for _, tt := range tests {
		if got := InitialsFromName(tt.name); got != tt.want {
			t.Errorf("InitialsFromName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestNormalizeLabel(t *testing.T) {
	if got := normalizeLabel(""); got != DefaultInitials {
		t.Errorf("normalizeLabel(\"\") = %q, want %q", got, DefaultInitials)
	}
	if got := normalizeLabel("  "); got != DefaultInitials {
		t.Errorf("normalizeLabel(blank) = %q, want %q", got, DefaultInitials)
	}
	if got := normalizeLabel("JD"); got != "JD" {
		t.Errorf("normalizeLabel(\"JD\") = %q", got)
	}
}

func newTestRenderer(t *testing.T) *InitialsRenderer {
	t.Helper()
	r, err := DefaultInitialsRenderer()
	if err != nil {
		t.Fatalf("DefaultInitialsRenderer() error = %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestInitialsLayout(t *testing.T) {
	r := newTestRenderer(t)
	b := Square(120)

	l, err := r.Layout(b, "JD")
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if want := 120 * initialsScale; l.Size != want {
		t.Errorf("Size = %v, want %v", l.Size, want)
	}
	if l.Advance <= 0 || l.Advance >= 120 {
		t.Errorf("Advance = %v, want in (0, 120)", l.Advance)
	}
	if l.Ascent <= 0 || l.Descent <= 0 {
		t.Errorf("Ascent/Descent = %v/%v, want positive", l.Ascent, l.Descent)
	}
	if got := l.X + l.Advance/2; abs(got-60) > 0.01 {
		t.Errorf("horizontal center = %v, want 60", got)
	}
	mid := l.Y - (l.Ascent-l.Descent)/2
	if abs(mid-60) > 0.01 {
		t.Errorf("vertical center = %v, want 60", mid)
	}
}

func TestInitialsLayoutWider(t *testing.T) {
	r := newTestRenderer(t)
	one, err := r.Layout(Square(100), "W")
	if err != nil {
		t.Fatal(err)
	}
	two, err := r.Layout(Square(100), "WW")
	if err != nil {
		t.Fatal(err)
	}
	if two.Advance <= one.Advance {
		t.Errorf("Advance(WW) = %v, want > Advance(W) = %v", two.Advance, one.Advance)
	}
}

func TestInitialsLayoutErrors(t *testing.T) {
	r := newTestRenderer(t)
	if _, err := r.Layout(Square(100), ""); err != ErrEmptyLabel {
		t.Errorf("Layout(empty) error = %v, want ErrEmptyLabel", err)
	}
	if _, err := r.Layout(Bounds{}, "AB"); err == nil {
		t.Error("Layout(zero bounds) should fail")
	}
}

func TestInitialsDraw(t *testing.T) {
	r := newTestRenderer(t)
	dst := image.NewRGBA(image.Rect(0, 0, 100, 100))
	r.Draw(dst, Square(100), "AB")

	if got := dst.RGBAAt(0, 0); got.A != 0 {
		t.Errorf("corner = %v, want transparent", got)
	}

	bg := MustHex("#a695e7").NRGBA()
	want := color.RGBA{bg.R, bg.G, bg.B, 255}
	if got := dst.RGBAAt(50, 10); !closeRGBA(got, want, 1) {
		t.Errorf("background at (50,10) = %v, want %v", got, want)
	}

	white := 0
	for y := 30; y < 70; y++ {
		for x := 20; x < 80; x++ {
			if c := dst.RGBAAt(x, y); c.R == 255 && c.G == 255 && c.B == 255 {
				white++
			}
		}
	}
	if white == 0 {
		t.Error("expected white glyph pixels near the center")
	}
}

func TestInitialsDrawBlankLabel(t *testing.T) {
	r := newTestRenderer(t)
	dst := image.NewRGBA(image.Rect(0, 0, 100, 100))
	r.Draw(dst, Square(100), "  ")

	bg := colorFor(DefaultInitials).NRGBA()
	if bg != MustHex("#6ec9cb").NRGBA() {
		t.Fatalf("colorFor(%q) = %v, want #6ec9cb", DefaultInitials, bg)
	}
	want := color.RGBA{bg.R, bg.G, bg.B, 255}
	if got := dst.RGBAAt(50, 10); !closeRGBA(got, want, 1) {
		t.Errorf("background at (50,10) = %v, want %v", got, want)
	}
}

func TestColorForAgreesWithUnchecked(t *testing.T) {
	for _, label := range []string{"A", "CF", "é", "日本", DefaultInitials} {
		got, err := ColorFor(label)
		if err != nil {
			t.Fatalf("ColorFor(%q) error = %v", label, err)
		}
		if want := colorFor(label); got != want {
			t.Errorf("ColorFor(%q) = %s, colorFor = %s", label, got.Hex(), want.Hex())
		}
	}
}

func TestInitialsDrawEmptyBounds(t *testing.T) {
	r := newTestRenderer(t)
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	r.Draw(dst, Bounds{}, "AB")
	for _, v := range dst.Pix {
		if v != 0 {
			t.Fatal("Draw with empty bounds should not touch dst")
		}
	}
}

func TestInitialsFaceCache(t *testing.T) {
	r := newTestRenderer(t)
	if _, err := r.Layout(Square(90), "AB"); err != nil {
		t.Fatal(err)
	}
	f1 := r.face
	if _, err := r.Layout(Square(90), "CD"); err != nil {
		t.Fatal(err)
	}
	if r.face != f1 {
		t.Error("face should be reused for the same size")
	}
	if _, err := r.Layout(Square(60), "CD"); err != nil {
		t.Fatal(err)
	}
	if r.faceSize != 60*initialsScale {
		t.Errorf("faceSize = %v, want %v", r.faceSize, 60*initialsScale)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// closeRGBA reports whether every channel of a and b differs by at most tol.
func closeRGBA(a, b color.RGBA, tol int) bool {
	d := func(x, y uint8) bool {
		v := int(x) - int(y)
		return v >= -tol && v <= tol
	}
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}
