package avatar

import (
	"image/draw"

	"github.com/disintegration/imaging"

	"github.com/gogpu/avatar/internal/blend"
)

// MaskCompositor materializes the circular avatar into a cached raster.
//
// On a cache miss it renders an anti-aliased circle into a single-channel
// mask, paints the mask into a transparent result raster, and composites
// the center-cropped source into the result with source-in, so source
// pixels survive only where the mask has coverage. Subsequent draws are a
// single blit of the cached raster.
type MaskCompositor struct {
	filter imaging.ResampleFilter
	key    cacheKey
	bounds Bounds
	mask   *Mask
	avatar *Pixmap
	builds int
}

// Strategy implements Compositor.
func (c *MaskCompositor) Strategy() Strategy { return StrategyMask }

// Composite implements Compositor.
func (c *MaskCompositor) Composite(b Bounds, src *Source) {
	if !usable(b, src) {
		c.Reset()
		return
	}
	c.bounds = b
	k := keyOf(b, src)
	if c.avatar != nil && k == c.key {
		return
	}

	w, h := b.Width(), b.Height()
	if c.avatar == nil || c.avatar.Width() != w || c.avatar.Height() != h {
		c.mask = NewCircleMask(w, h)
		c.avatar = NewPixmap(w, h)
	}
	cropped := CenterCrop(src.Image(), w, h, c.filter)

	n := w * h
	blend.CoverageSpan(c.avatar.Data(), c.mask.Data(), n)
	blend.BlendSpan(c.avatar.Data(), cropped.Pix, n, blend.BlendSourceIn)

	c.key = k
	c.builds++
	Logger().Debug("avatar: mask composite rebuilt",
		"width", w, "height", h, "source", src.gen, "builds", c.builds)
}

// Avatar returns the cached composited raster, or nil when nothing is prepared.
func (c *MaskCompositor) Avatar() *Pixmap { return c.avatar }

// Mask returns the circular coverage mask, or nil when nothing is prepared.
func (c *MaskCompositor) Mask() *Mask { return c.mask }

// Builds returns how many times the composited raster has been recomputed.
func (c *MaskCompositor) Builds() int { return c.builds }

// Draw implements Compositor.
func (c *MaskCompositor) Draw(dst draw.Image) {
	if c.avatar == nil {
		return
	}
	c.avatar.DrawTo(dst, c.bounds.Min())
}

// Reset implements Compositor.
func (c *MaskCompositor) Reset() {
	c.key = cacheKey{}
	c.bounds = Bounds{}
	c.mask = nil
	c.avatar = nil
}
