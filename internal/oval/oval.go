// Package oval rasterizes anti-aliased ellipses and elliptical rings.
//
// Shapes are approximated with four cubic Bézier segments and handed to
// golang.org/x/image/vector, which computes exact per-pixel area coverage.
// A ring is an outer ellipse wound clockwise plus an inner ellipse wound
// counter-clockwise; the opposite windings cancel inside the hole.
package oval

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"
)

// kappa is the control point distance for a quarter circle of radius 1.
const kappa = 0.5522847498307936

// Rect is an ellipse bounding box in pixel coordinates local to the
// rasterized region.
type Rect struct {
	MinX, MinY, MaxX, MaxY float32
}

// RectOf converts an integer rectangle, relative to origin, to a Rect.
func RectOf(r image.Rectangle, origin image.Point) Rect {
	r = r.Sub(origin)
	return Rect{
		MinX: float32(r.Min.X),
		MinY: float32(r.Min.Y),
		MaxX: float32(r.Max.X),
		MaxY: float32(r.Max.Y),
	}
}

// Inset shrinks the rect by d on every side. Negative d grows it.
func (r Rect) Inset(d float32) Rect {
	return Rect{MinX: r.MinX + d, MinY: r.MinY + d, MaxX: r.MaxX - d, MaxY: r.MaxY - d}
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}

// addEllipse appends the ellipse inscribed in r to z.
func addEllipse(z *vector.Rasterizer, r Rect, reverse bool) {
	cx, cy := (r.MinX+r.MaxX)/2, (r.MinY+r.MaxY)/2
	rx, ry := (r.MaxX-r.MinX)/2, (r.MaxY-r.MinY)/2
	kx, ky := rx*kappa, ry*kappa

	z.MoveTo(cx+rx, cy)
	if !reverse {
		z.CubeTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
		z.CubeTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
		z.CubeTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
		z.CubeTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	} else {
		z.CubeTo(cx+rx, cy-ky, cx+kx, cy-ry, cx, cy-ry)
		z.CubeTo(cx-kx, cy-ry, cx-rx, cy-ky, cx-rx, cy)
		z.CubeTo(cx-rx, cy+ky, cx-kx, cy+ry, cx, cy+ry)
		z.CubeTo(cx+kx, cy+ry, cx+rx, cy+ky, cx+rx, cy)
	}
	z.ClosePath()
}

// Coverage returns a w×h alpha image holding the anti-aliased coverage of
// the ellipse inscribed in r: 0xff inside, 0 outside.
// It returns nil when w or h is not positive.
func Coverage(w, h int, r Rect) *image.Alpha {
	if w <= 0 || h <= 0 {
		return nil
	}
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	if r.Empty() {
		return dst
	}
	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Src
	addEllipse(z, r, false)
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

// HardCoverage is like Coverage but without anti-aliasing: every pixel
// that is at least half covered becomes 0xff, every other pixel 0.
func HardCoverage(w, h int, r Rect) *image.Alpha {
	dst := Coverage(w, h, r)
	if dst == nil {
		return nil
	}
	for i, a := range dst.Pix {
		if a >= 0x80 {
			dst.Pix[i] = 0xff
		} else {
			dst.Pix[i] = 0
		}
	}
	return dst
}

// Fill composites src over dst through the ellipse inscribed in r.
// The rasterized region is clip; r is relative to clip.Min and src is
// sampled so that clip.Min maps to sp.
func Fill(dst draw.Image, clip image.Rectangle, r Rect, src image.Image, sp image.Point) {
	if r.Empty() {
		return
	}
	clip, r, sp, ok := clipTo(dst, clip, r, sp)
	if !ok {
		return
	}
	z := vector.NewRasterizer(clip.Dx(), clip.Dy())
	addEllipse(z, r, false)
	z.Draw(dst, clip, src, sp)
}

// Stroke composites src over dst along the outline of the ellipse
// inscribed in r, with the stroke centered on the outline.
// Arguments are interpreted as in Fill.
func Stroke(dst draw.Image, clip image.Rectangle, r Rect, width float32, src image.Image, sp image.Point) {
	if width <= 0 {
		return
	}
	clip, r, sp, ok := clipTo(dst, clip, r, sp)
	if !ok {
		return
	}
	outer := r.Inset(-width / 2)
	if outer.Empty() {
		return
	}
	z := vector.NewRasterizer(clip.Dx(), clip.Dy())
	addEllipse(z, outer, false)
	if inner := r.Inset(width / 2); !inner.Empty() {
		addEllipse(z, inner, true)
	}
	z.Draw(dst, clip, src, sp)
}

// clipTo intersects clip with the destination bounds and shifts r and sp so
// that the shape stays where it was relative to the unclipped region.
func clipTo(dst draw.Image, clip image.Rectangle, r Rect, sp image.Point) (image.Rectangle, Rect, image.Point, bool) {
	clipped := clip.Intersect(dst.Bounds())
	if clipped.Empty() {
		return clipped, r, sp, false
	}
	d := clipped.Min.Sub(clip.Min)
	dx, dy := float32(d.X), float32(d.Y)
	r = Rect{MinX: r.MinX - dx, MinY: r.MinY - dy, MaxX: r.MaxX - dx, MaxY: r.MaxY - dy}
	return clipped, r, sp.Add(d), true
}
