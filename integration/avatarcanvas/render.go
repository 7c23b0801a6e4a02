// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package avatarcanvas

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/avatar"
)

var (
	// ErrInvalidRenderer means the draw context cannot create textures.
	ErrInvalidRenderer = errors.New("avatarcanvas: draw context has no texture creator")

	// ErrInvalidTexture means the creator returned something the drawer
	// cannot draw.
	ErrInvalidTexture = errors.New("avatarcanvas: texture is not a gpucontext.Texture")
)

// RenderOptions positions the texture in the window.
type RenderOptions struct {
	X, Y float32

	// Centered keeps the avatar centered on its resting square while a
	// pulse makes the frame larger than it.
	Centered bool
}

// DefaultRenderOptions draws at the origin, uncentered.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{}
}

// RenderTo flushes and draws the canvas at the origin:
//
//	app.OnDraw(func(dc *gogpu.Context) {
//		canvas.RenderTo(dc.AsTextureDrawer())
//	})
func (c *Canvas) RenderTo(dc gpucontext.TextureDrawer) error {
	return c.RenderToEx(dc, DefaultRenderOptions())
}

// RenderToEx flushes and draws the canvas at opts:
//
//	canvas.RenderToEx(dc.AsTextureDrawer(), avatarcanvas.RenderOptions{
//		X: 100, Y: 50, Centered: true,
//	})
func (c *Canvas) RenderToEx(dc gpucontext.TextureDrawer, opts RenderOptions) error {
	if c.closed {
		return ErrCanvasClosed
	}

	tex, err := c.Flush()
	if err != nil {
		return err
	}

	if pending, isPending := tex.(*pendingTexture); isPending {
		creator := dc.TextureCreator()
		if creator == nil {
			return ErrInvalidRenderer
		}

		// Creation is synchronous, so the old texture is idle afterwards.
		realTex, err := creator.NewTextureFromRGBA(pending.width, pending.height, pending.data)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrTextureCreationFailed, err)
		}

		// Frames are premultiplied alpha.
		if pt, ok := realTex.(interface{ SetPremultiplied(bool) }); ok {
			pt.SetPremultiplied(true)
		}

		c.texture = realTex
		tex = realTex
		avatar.Logger().Debug("avatarcanvas: texture created", "width", pending.width, "height", pending.height)

		if c.oldTexture != nil {
			if destroyer, ok := c.oldTexture.(textureDestroyer); ok {
				destroyer.Destroy()
			}
			c.oldTexture = nil
		}
	}

	gpuTex, ok := tex.(gpucontext.Texture)
	if !ok {
		return ErrInvalidTexture
	}

	x, y := opts.X, opts.Y
	if opts.Centered {
		w, _ := c.Size()
		off := float32(w-c.resting) / 2
		x -= off
		y -= off
	}
	return dc.DrawTexture(gpuTex, x, y)
}

// RenderToPosition draws the canvas with its top-left corner at (x, y).
func (c *Canvas) RenderToPosition(dc gpucontext.TextureDrawer, x, y float32) error {
	return c.RenderToEx(dc, RenderOptions{X: x, Y: y})
}
