package avatar

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

var blue = color.NRGBA{0, 0, 255, 255}

func mustCompositor(t *testing.T, s Strategy) Compositor {
	t.Helper()
	c, err := NewCompositor(s)
	if err != nil {
		t.Fatalf("NewCompositor(%v) error = %v", s, err)
	}
	if c.Strategy() != s {
		t.Fatalf("Strategy() = %v, want %v", c.Strategy(), s)
	}
	return c
}

// checkCircle verifies that dst holds opaque blue well inside the circle
// inscribed in b and nothing well outside it.
func checkCircle(t *testing.T, dst *image.RGBA, b Bounds) {
	t.Helper()
	cx, cy := b.CenterX(), b.CenterY()
	r := float64(b.Width()) / 2
	for y := b.Top; y < b.Bottom; y++ {
		for x := b.Left; x < b.Right; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			got := dst.RGBAAt(x, y)
			switch {
			case d < r-1.5:
				if got != (color.RGBA{0, 0, 255, 255}) {
					t.Fatalf("pixel (%d,%d) at distance %.2f = %v, want opaque blue", x, y, d, got)
				}
			case d > r+1.5:
				if got.A != 0 {
					t.Fatalf("pixel (%d,%d) at distance %.2f = %v, want transparent", x, y, d, got)
				}
			}
		}
	}
}

func TestCompositorStrategies(t *testing.T) {
	src := NewSource(solidImage(50, 50, blue))
	b := Square(100)

	for _, s := range []Strategy{StrategyShader, StrategyMask, StrategyPlain} {
		t.Run(s.String(), func(t *testing.T) {
			c := mustCompositor(t, s)
			c.Composite(b, src)
			dst := image.NewRGBA(b.Rect())
			c.Draw(dst)
			checkCircle(t, dst, b)
		})
	}
}

func TestCompositorOffsetBounds(t *testing.T) {
	src := NewSource(solidImage(30, 60, blue))
	b := Bounds{Left: 20, Top: 10, Right: 60, Bottom: 50}

	for _, s := range []Strategy{StrategyShader, StrategyMask, StrategyPlain} {
		t.Run(s.String(), func(t *testing.T) {
			c := mustCompositor(t, s)
			c.Composite(b, src)
			dst := image.NewRGBA(image.Rect(0, 0, 80, 80))
			c.Draw(dst)
			checkCircle(t, dst, b)
			if got := dst.RGBAAt(5, 5); got.A != 0 {
				t.Errorf("pixel outside bounds = %v, want transparent", got)
			}
		})
	}
}

func TestCompositorNoop(t *testing.T) {
	src := NewSource(solidImage(10, 10, blue))
	tests := []struct {
		name string
		b    Bounds
		src  *Source
	}{
		{"zero bounds", Bounds{}, src},
		{"zero width", Bounds{Right: 0, Bottom: 10}, src},
		{"nil source", Square(10), nil},
		{"empty image", Square(10), NewSource(image.NewRGBA(image.Rectangle{}))},
	}
	for _, s := range []Strategy{StrategyShader, StrategyMask, StrategyPlain} {
		for _, tt := range tests {
			t.Run(s.String()+"/"+tt.name, func(t *testing.T) {
				c := mustCompositor(t, s)
				c.Composite(Square(10), src)
				c.Composite(tt.b, tt.src)

				dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
				c.Draw(dst)
				for _, v := range dst.Pix {
					if v != 0 {
						t.Fatal("Draw after unusable Composite should draw nothing")
					}
				}
			})
		}
	}
}

func TestMaskCompositorRaster(t *testing.T) {
	for _, n := range []int{1, 7, 64, 101} {
		c := &MaskCompositor{filter: defaultCompositorOptions().filter}
		c.Composite(Square(n), NewSource(solidImage(n+3, n, blue)))

		pm := c.Avatar()
		if pm == nil {
			t.Fatalf("n=%d: Avatar() = nil", n)
		}
		if pm.Width() != n || pm.Height() != n {
			t.Fatalf("n=%d: raster is %dx%d", n, pm.Width(), pm.Height())
		}
		if n < 7 {
			continue
		}
		for _, p := range []image.Point{{0, 0}, {n - 1, 0}, {0, n - 1}, {n - 1, n - 1}} {
			if a := pm.PixelAt(p.X, p.Y).A; a != 0 {
				t.Errorf("n=%d: corner %v alpha = %d, want 0", n, p, a)
			}
		}
		if a := pm.PixelAt(n/2, n/2).A; a != 255 {
			t.Errorf("n=%d: center alpha = %d, want 255", n, a)
		}
	}
}

func TestMaskCompositorCache(t *testing.T) {
	c := mustCompositor(t, StrategyMask).(*MaskCompositor)
	src := NewSource(solidImage(50, 50, blue))

	c.Composite(Square(100), src)
	first := c.Avatar()
	snapshot := bytes.Clone(first.Data())

	c.Composite(Square(100), src)
	if c.Avatar() != first {
		t.Error("cache hit should keep the same raster")
	}
	if c.Builds() != 1 {
		t.Errorf("Builds() = %d, want 1", c.Builds())
	}
	if !bytes.Equal(c.Avatar().Data(), snapshot) {
		t.Error("cache hit changed the raster")
	}

	c.Composite(Bounds{Left: 5, Top: 5, Right: 105, Bottom: 105}, src)
	if c.Builds() != 1 {
		t.Errorf("moving the bounds rebuilt the raster: Builds() = %d", c.Builds())
	}

	c.Composite(Square(100), NewSource(solidImage(50, 50, blue)))
	if c.Builds() != 2 {
		t.Errorf("new source: Builds() = %d, want 2", c.Builds())
	}
	if c.Avatar() != first {
		t.Error("same size rebuild should reuse the raster allocation")
	}

	c.Composite(Square(80), src)
	if c.Builds() != 3 || c.Avatar().Width() != 80 {
		t.Errorf("resize: Builds() = %d width = %d", c.Builds(), c.Avatar().Width())
	}
}

func TestMaskCompositorCoverageFollowsMask(t *testing.T) {
	c := mustCompositor(t, StrategyMask).(*MaskCompositor)
	c.Composite(Square(40), NewSource(solidImage(40, 40, color.NRGBA{255, 255, 255, 255})))

	m := c.Mask()
	pm := c.Avatar()
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if got, want := pm.PixelAt(x, y).A, m.Coverage(x, y); got != want {
				t.Fatalf("alpha at (%d,%d) = %d, want mask coverage %d", x, y, got, want)
			}
		}
	}
}

func TestShaderCompositorPattern(t *testing.T) {
	c := mustCompositor(t, StrategyShader).(*ShaderCompositor)
	src := NewSource(solidImage(20, 40, blue))

	c.Composite(Square(30), src)
	p := c.Pattern()
	if w, h := p.Size(); w != 30 || h != 30 {
		t.Errorf("pattern size = %dx%d, want 30x30", w, h)
	}
	c.Composite(Square(30), src)
	if c.Pattern() != p {
		t.Error("unchanged inputs should keep the pattern")
	}
	c.Composite(Square(60), src)
	if w, _ := c.Pattern().Size(); w != 60 {
		t.Errorf("pattern width = %d after resize, want 60", w)
	}
}

func TestPlainCompositorHardEdge(t *testing.T) {
	c := mustCompositor(t, StrategyPlain)
	c.Composite(Square(64), NewSource(solidImage(64, 64, blue)))
	dst := image.NewRGBA(image.Rect(0, 0, 64, 64))
	c.Draw(dst)
	for i := 3; i < len(dst.Pix); i += 4 {
		if a := dst.Pix[i]; a != 0 && a != 255 {
			t.Fatalf("plain clip produced partial alpha %d", a)
		}
	}
}

func TestNewCompositorUnknown(t *testing.T) {
	if _, err := NewCompositor(Strategy(9)); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("NewCompositor(9) error = %v, want ErrUnknownStrategy", err)
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{"shader", StrategyShader, false},
		{"MASK", StrategyMask, false},
		{" plain ", StrategyPlain, false},
		{"clip", StrategyPlain, false},
		{"blur", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStrategy(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStrategy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStrategyText(t *testing.T) {
	for _, s := range []Strategy{StrategyShader, StrategyMask, StrategyPlain} {
		text, err := s.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var got Strategy
		if err := got.UnmarshalText(text); err != nil || got != s {
			t.Errorf("UnmarshalText(%q) = %v, %v", text, got, err)
		}
	}
	if _, err := Strategy(7).MarshalText(); err == nil {
		t.Error("MarshalText of an unknown strategy should fail")
	}
}
