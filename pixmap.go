package avatar

import (
	"image"
	"image/color"
	"image/draw"
)

// Pixmap is the cached result raster of the mask compositor. It stores
// premultiplied RGBA, four bytes per pixel, in image.RGBA order.
type Pixmap struct {
	w, h int
	pix  []uint8
}

// NewPixmap returns a transparent w×h raster, or nil for an empty size.
func NewPixmap(w, h int) *Pixmap {
	if w <= 0 || h <= 0 {
		return nil
	}
	return &Pixmap{w: w, h: h, pix: make([]uint8, 4*w*h)}
}

// Width returns the raster width in pixels.
func (p *Pixmap) Width() int { return p.w }

// Height returns the raster height in pixels.
func (p *Pixmap) Height() int { return p.h }

// Data exposes the backing pixels for span operations.
func (p *Pixmap) Data() []uint8 { return p.pix }

// PixelAt returns the pixel at (x, y), transparent outside the raster.
func (p *Pixmap) PixelAt(x, y int) color.RGBA {
	if !(image.Point{X: x, Y: y}).In(p.Bounds()) {
		return color.RGBA{}
	}
	s := p.pix[4*(y*p.w+x):]
	return color.RGBA{R: s[0], G: s[1], B: s[2], A: s[3]}
}

// RGBA wraps the raster as an *image.RGBA without copying.
func (p *Pixmap) RGBA() *image.RGBA {
	return &image.RGBA{Pix: p.pix, Stride: 4 * p.w, Rect: p.Bounds()}
}

// DrawTo composites the raster over dst with its origin at pt.
func (p *Pixmap) DrawTo(dst draw.Image, pt image.Point) {
	draw.Draw(dst, p.Bounds().Add(pt), p.RGBA(), image.Point{}, draw.Over)
}

// At implements image.Image.
func (p *Pixmap) At(x, y int) color.Color { return p.PixelAt(x, y) }

// Bounds implements image.Image; the raster origin is (0, 0).
func (p *Pixmap) Bounds() image.Rectangle { return image.Rect(0, 0, p.w, p.h) }

// ColorModel implements image.Image.
func (p *Pixmap) ColorModel() color.Model { return color.RGBAModel }
