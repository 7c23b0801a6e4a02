package avatar

import (
	"image"
	"image/draw"

	"github.com/disintegration/imaging"

	"github.com/gogpu/avatar/internal/oval"
)

// PlainCompositor clips drawing to an oval and draws the center-cropped
// source beneath it. The clip is hard-edged, so the circle outline is
// aliased.
type PlainCompositor struct {
	filter  imaging.ResampleFilter
	key     cacheKey
	bounds  Bounds
	clip    *image.Alpha
	cropped *image.RGBA
}

// Strategy implements Compositor.
func (c *PlainCompositor) Strategy() Strategy { return StrategyPlain }

// Composite implements Compositor.
func (c *PlainCompositor) Composite(b Bounds, src *Source) {
	if !usable(b, src) {
		c.Reset()
		return
	}
	c.bounds = b
	k := keyOf(b, src)
	if c.cropped != nil && k == c.key {
		return
	}

	w, h := b.Width(), b.Height()
	if c.clip == nil || c.key.width != w || c.key.height != h {
		c.clip = oval.HardCoverage(w, h, oval.Rect{MaxX: float32(w), MaxY: float32(h)})
	}
	c.cropped = CenterCrop(src.Image(), w, h, c.filter)
	c.key = k
	Logger().Debug("avatar: plain clip rebuilt", "width", w, "height", h, "source", src.gen)
}

// Draw implements Compositor.
func (c *PlainCompositor) Draw(dst draw.Image) {
	if c.cropped == nil {
		return
	}
	draw.DrawMask(dst, c.bounds.Rect(), c.cropped, image.Point{}, c.clip, image.Point{}, draw.Over)
}

// Reset implements Compositor.
func (c *PlainCompositor) Reset() {
	c.key = cacheKey{}
	c.bounds = Bounds{}
	c.clip = nil
	c.cropped = nil
}
