// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package avatarcanvas

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/avatar"
)

var (
	ErrCanvasClosed          = errors.New("avatarcanvas: canvas is closed")
	ErrInvalidDimensions     = errors.New("avatarcanvas: resting size must be positive")
	ErrNilProvider           = errors.New("avatarcanvas: nil DeviceProvider")
	ErrNilWidget             = errors.New("avatarcanvas: nil widget")
	ErrTextureCreationFailed = errors.New("avatarcanvas: cannot create texture")
)

// textureDestroyer is the optional release hook of host textures.
type textureDestroyer interface {
	Destroy()
}

// Canvas is the avatar.Host for a widget drawn into a GPU window. It owns
// the CPU frame the widget paints into and the texture that frame is
// uploaded to.
//
// The canvas gives the widget an exact square of the resting size; during a
// pulse the widget may measure larger and the canvas grows its frame to
// match.
type Canvas struct {
	widget   *avatar.Widget
	provider gpucontext.DeviceProvider

	frame   *image.RGBA
	staging []byte

	// texture is a *pendingTexture until the first RenderTo; oldTexture
	// survives one frame after a resize.
	texture    any
	oldTexture any

	resting       int
	pulse         []avatar.Frame
	dirty         bool
	layoutPending bool
	sizeChanged   bool
	closed        bool
}

// New attaches w to a canvas with a size×size resting frame and runs the
// first layout. provider is normally the application's GPU context.
func New(provider gpucontext.DeviceProvider, w *avatar.Widget, size int) (*Canvas, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	if w == nil {
		return nil, ErrNilWidget
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: size=%d", ErrInvalidDimensions, size)
	}

	c := &Canvas{
		widget:        w,
		provider:      provider,
		resting:       size,
		dirty:         true,
		layoutPending: true,
	}
	w.SetHost(c)
	c.layout()
	return c, nil
}

// MustNew panics where New would fail.
func MustNew(provider gpucontext.DeviceProvider, w *avatar.Widget, size int) *Canvas {
	c, err := New(provider, w, size)
	if err != nil {
		panic(err)
	}
	return c
}

// RequestRedraw implements avatar.Host.
func (c *Canvas) RequestRedraw() {
	c.dirty = true
}

// RequestLayout implements avatar.Host.
func (c *Canvas) RequestLayout() {
	c.layoutPending = true
}

// Widget returns the hosted widget.
func (c *Canvas) Widget() *avatar.Widget {
	return c.widget
}

// Size returns the current frame size in pixels.
func (c *Canvas) Size() (width, height int) {
	if c.frame == nil {
		return 0, 0
	}
	b := c.frame.Bounds()
	return b.Dx(), b.Dy()
}

// MarkDirty forces a redraw and upload on the next Flush.
func (c *Canvas) MarkDirty() { c.dirty = true }

// IsDirty reports whether the next Flush will redraw.
func (c *Canvas) IsDirty() bool { return c.dirty }

// Resize changes the resting size given to the widget.
func (c *Canvas) Resize(size int) error {
	if c.closed {
		return ErrCanvasClosed
	}
	if size <= 0 {
		return fmt.Errorf("%w: size=%d", ErrInvalidDimensions, size)
	}
	if size == c.resting {
		return nil
	}
	c.resting = size
	c.layoutPending = true
	c.layout()
	return nil
}

// layout measures the widget and resizes the frame when the measured size
// changed.
func (c *Canvas) layout() {
	if !c.layoutPending {
		return
	}
	c.layoutPending = false

	spec := avatar.MeasureSpec{Mode: avatar.Exactly, Size: c.resting}
	b := c.widget.OnMeasure(spec, spec)
	if c.frame == nil || c.frame.Bounds().Dx() != b.Width() || c.frame.Bounds().Dy() != b.Height() {
		c.frame = image.NewRGBA(image.Rect(0, 0, b.Width(), b.Height()))
		c.sizeChanged = true
		c.dirty = true
		avatar.Logger().Debug("avatarcanvas: frame resized", "size", b.Width())
	}
	c.widget.OnSizeChanged(b.Width(), b.Height())
}

// LongPress forwards a long press to the widget and queues the pulse it
// returns, one frame per Step at the given interval. It reports false when
// the widget ignored the press.
func (c *Canvas) LongPress(interval time.Duration) bool {
	if c.closed {
		return false
	}
	p, ok := c.widget.OnLongPress()
	if !ok {
		return false
	}
	c.pulse = p.Frames(interval)
	return true
}

// Animating reports whether pulse frames are still queued.
func (c *Canvas) Animating() bool {
	return len(c.pulse) > 0
}

// Step delivers the next queued pulse frame to the widget and applies any
// layout it requested. It reports whether more frames remain.
func (c *Canvas) Step() bool {
	if c.closed || len(c.pulse) == 0 {
		return false
	}
	f := c.pulse[0]
	c.pulse = c.pulse[1:]

	if f.Repeat {
		c.widget.OnAnimationRepeat()
	}
	c.widget.OnAnimationTick(f.Size)
	if f.End {
		c.widget.OnAnimationEnd()
	}
	c.layout()
	c.dirty = true
	return len(c.pulse) > 0
}

// Frame repaints the widget when dirty and returns the canvas-owned frame,
// or nil after Close.
func (c *Canvas) Frame() *image.RGBA {
	if c.closed {
		return nil
	}
	c.layout()
	if c.dirty {
		clear(c.frame.Pix)
		c.widget.OnDraw(c.frame)
	}
	return c.frame
}

// pixels returns the frame bytes in the surface's channel order.
func (c *Canvas) pixels() []byte {
	data := c.frame.Pix
	if c.provider.SurfaceFormat() != gputypes.TextureFormatBGRA8Unorm {
		return data
	}
	if cap(c.staging) < len(data) {
		c.staging = make([]byte, len(data))
	}
	out := c.staging[:len(data)]
	for i := 0; i+3 < len(data); i += 4 {
		out[i+0] = data[i+2]
		out[i+1] = data[i+1]
		out[i+2] = data[i+0]
		out[i+3] = data[i+3]
	}
	return out
}

// Flush brings the texture up to date with the widget. Until a
// TextureCreator has been seen the returned value is a placeholder that
// RenderTo turns into a real texture.
func (c *Canvas) Flush() (any, error) {
	if c.closed {
		return nil, ErrCanvasClosed
	}
	c.layout()

	// In-flight command buffers may still sample the old texture.
	if c.sizeChanged {
		if c.texture != nil {
			if c.oldTexture != nil {
				if destroyer, ok := c.oldTexture.(textureDestroyer); ok {
					destroyer.Destroy()
				}
			}
			c.oldTexture = c.texture
			c.texture = nil
		}
		c.sizeChanged = false
	}

	if !c.dirty && c.texture != nil {
		return c.texture, nil
	}

	c.Frame()
	data := c.pixels()

	if c.texture == nil {
		c.texture = &pendingTexture{
			width:  c.frame.Bounds().Dx(),
			height: c.frame.Bounds().Dy(),
			data:   data,
		}
		c.dirty = false
		return c.texture, nil
	}

	if updater, ok := c.texture.(gpucontext.TextureUpdater); ok {
		if err := updater.UpdateData(data); err != nil {
			return nil, fmt.Errorf("avatarcanvas: texture update failed: %w", err)
		}
	}

	c.dirty = false
	return c.texture, nil
}

// Texture returns the last flushed texture, or nil before the first Flush.
func (c *Canvas) Texture() any { return c.texture }

// Close destroys the textures and detaches from the widget, which stays
// usable. Calling Close twice is harmless.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	for _, tex := range []any{c.oldTexture, c.texture} {
		if destroyer, ok := tex.(textureDestroyer); ok {
			destroyer.Destroy()
		}
	}
	c.oldTexture = nil
	c.texture = nil

	c.widget.SetHost(nil)
	c.frame = nil
	c.staging = nil
	c.pulse = nil
	c.provider = nil
	return nil
}

// pendingTexture is the upload waiting for a TextureCreator.
type pendingTexture struct {
	width  int
	height int
	data   []byte
}

// Provider returns the device provider, or nil after Close.
func (c *Canvas) Provider() gpucontext.DeviceProvider {
	if c.closed {
		return nil
	}
	return c.provider
}
