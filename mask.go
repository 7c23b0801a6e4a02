package avatar

import (
	"image"
	"image/color"

	"github.com/gogpu/avatar/internal/oval"
)

// Mask is an 8-bit coverage raster, 0 outside the shape and 255 inside.
type Mask struct {
	w, h int
	pix  []uint8
}

// NewCircleMask rasterizes the circle inscribed in a w×h box with
// anti-aliased edges. It returns nil for an empty box.
func NewCircleMask(w, h int) *Mask {
	a := oval.Coverage(w, h, oval.Rect{MaxX: float32(w), MaxY: float32(h)})
	if a == nil {
		return nil
	}
	return &Mask{w: w, h: h, pix: a.Pix}
}

// Width returns the mask width in pixels.
func (m *Mask) Width() int { return m.w }

// Height returns the mask height in pixels.
func (m *Mask) Height() int { return m.h }

// Coverage reports the value at (x, y) and 0 outside the raster.
func (m *Mask) Coverage(x, y int) uint8 {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return 0
	}
	return m.pix[y*m.w+x]
}

// Data returns the coverage bytes in row order.
func (m *Mask) Data() []uint8 { return m.pix }

// Alpha wraps the mask as an *image.Alpha without copying.
func (m *Mask) Alpha() *image.Alpha {
	return &image.Alpha{Pix: m.pix, Stride: m.w, Rect: m.Bounds()}
}

// Bounds implements image.Image; the mask origin is (0, 0).
func (m *Mask) Bounds() image.Rectangle { return image.Rect(0, 0, m.w, m.h) }

// ColorModel implements image.Image.
func (m *Mask) ColorModel() color.Model { return color.AlphaModel }

// At implements image.Image with the coverage as alpha.
func (m *Mask) At(x, y int) color.Color { return color.Alpha{A: m.Coverage(x, y)} }
