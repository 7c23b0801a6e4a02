package avatar

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
)

// solidImage returns a w×h image filled with c.
func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func TestNewSourceNil(t *testing.T) {
	if s := NewSource(nil); s != nil {
		t.Error("NewSource(nil) should return nil")
	}
	var s *Source
	if !s.Empty() {
		t.Error("nil source should be empty")
	}
}

func TestNewSourceIdentity(t *testing.T) {
	img := solidImage(2, 2, color.NRGBA{A: 255})
	a, b := NewSource(img), NewSource(img)
	if a == b {
		t.Error("each NewSource call should produce a distinct identity")
	}
	if w, h := a.Size(); w != 2 || h != 2 {
		t.Errorf("Size() = %dx%d, want 2x2", w, h)
	}
}

func TestCenterCropKeepsMiddle(t *testing.T) {
	// 30x10: left third red, middle third green, right third blue.
	img := image.NewNRGBA(image.Rect(0, 0, 30, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 30; x++ {
			c := color.NRGBA{A: 255}
			switch {
			case x < 10:
				c.R = 255
			case x < 20:
				c.G = 255
			default:
				c.B = 255
			}
			img.SetNRGBA(x, y, c)
		}
	}

	out := CenterCrop(img, 10, 10, imaging.NearestNeighbor)
	if out.Bounds().Dx() != 10 || out.Bounds().Dy() != 10 {
		t.Fatalf("CenterCrop size = %v, want 10x10", out.Bounds())
	}
	for _, p := range []image.Point{{0, 0}, {5, 5}, {9, 9}} {
		if got := out.RGBAAt(p.X, p.Y); got != (color.RGBA{0, 255, 0, 255}) {
			t.Errorf("pixel %v = %v, want green", p, got)
		}
	}
}

func TestCenterCropZero(t *testing.T) {
	img := solidImage(4, 4, color.NRGBA{A: 255})
	if out := CenterCrop(img, 0, 0, imaging.Linear); out != nil {
		t.Error("CenterCrop to 0x0 should return nil")
	}
	if out := CenterCrop(nil, 4, 4, imaging.Linear); out != nil {
		t.Error("CenterCrop(nil) should return nil")
	}
}

func TestDecodeSourcePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, solidImage(6, 3, color.NRGBA{R: 255, A: 255})); err != nil {
		t.Fatal(err)
	}
	s, err := DecodeSource(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("DecodeSource() error = %v", err)
	}
	if w, h := s.Size(); w != 6 || h != 3 {
		t.Errorf("decoded size = %dx%d, want 6x3", w, h)
	}
}

func TestDecodeSourceGarbage(t *testing.T) {
	if _, err := DecodeSource(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("DecodeSource(garbage) should fail")
	}
}

func TestOrientImage(t *testing.T) {
	img := solidImage(4, 2, color.NRGBA{A: 255})
	for o := 1; o <= 8; o++ {
		out := orientImage(img, o)
		w, h := out.Bounds().Dx(), out.Bounds().Dy()
		rotated := o >= 5
		if rotated && (w != 2 || h != 4) {
			t.Errorf("orientation %d: size %dx%d, want 2x4", o, w, h)
		}
		if !rotated && (w != 4 || h != 2) {
			t.Errorf("orientation %d: size %dx%d, want 4x2", o, w, h)
		}
	}
}
