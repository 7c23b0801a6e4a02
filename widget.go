package avatar

import (
	"fmt"
	"image"
	"image/draw"
)

// Host is the view layer a Widget lives in.
type Host interface {
	// RequestRedraw asks the host to call OnDraw again.
	RequestRedraw()

	// RequestLayout asks the host to measure again, because the animated
	// size changed the widget's desired size.
	RequestLayout()
}

type nopHost struct{}

func (nopHost) RequestRedraw() {}
func (nopHost) RequestLayout() {}

// Widget is the circular avatar engine behind a host view.
//
// The host forwards its lifecycle to the widget (OnMeasure, OnSizeChanged,
// OnDraw), its input (OnLongPress) and the values of the pulse animation it
// drives (OnAnimationTick, OnAnimationRepeat, OnAnimationEnd). The widget
// answers with RequestRedraw and RequestLayout calls on its Host.
//
// A Widget is used from a single goroutine, the host's UI thread.
type Widget struct {
	style    Style
	host     Host
	comp     Compositor
	renderer *InitialsRenderer
	ownsFont bool

	modes    ModeMachine
	border   Border
	initials string
	source   *Source

	bounds   Bounds
	animated int
}

// NewWidget creates a widget in avatar mode with no source image.
func NewWidget(opts ...Option) (*Widget, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	style := o.resolvedStyle()
	if err := style.Validate(); err != nil {
		return nil, err
	}
	comp, err := NewCompositor(style.Strategy, o.compositor...)
	if err != nil {
		return nil, err
	}

	w := &Widget{
		style:    style,
		host:     o.host,
		comp:     comp,
		renderer: o.renderer,
		border:   style.border(),
		initials: style.Initials,
	}
	if w.host == nil {
		w.host = nopHost{}
	}
	if w.renderer == nil {
		if o.font != nil {
			w.renderer, err = NewInitialsRenderer(o.font)
		} else {
			w.renderer, err = DefaultInitialsRenderer()
		}
		if err != nil {
			return nil, fmt.Errorf("avatar: initials font: %w", err)
		}
		w.ownsFont = true
	}

	Logger().Debug("avatar: widget created",
		"strategy", style.Strategy.String(), "density", float64(style.Density),
		"border", w.border.Width, "initials", w.initials)
	return w, nil
}

// SetHost replaces the host. A nil host discards requests.
func (w *Widget) SetHost(h Host) {
	if h == nil {
		h = nopHost{}
	}
	w.host = h
}

// Style returns the style the widget was built with.
func (w *Widget) Style() Style { return w.style }

// Mode returns the active display mode.
func (w *Widget) Mode() DisplayMode { return w.modes.Mode() }

// Animating reports whether a pulse is in flight.
func (w *Widget) Animating() bool { return w.modes.Animating() }

// AnimatedSize returns the last size delivered by the pulse, or 0.
func (w *Widget) AnimatedSize() int { return w.animated }

// Bounds returns the current drawing bounds.
func (w *Widget) Bounds() Bounds { return w.bounds }

// Border returns the ring parameters in device pixels.
func (w *Widget) Border() Border { return w.border }

// Initials returns the initials label.
func (w *Widget) Initials() string { return w.initials }

// Source returns the current source, or nil.
func (w *Widget) Source() *Source { return w.source }

// Compositor returns the compositor selected at construction.
func (w *Widget) Compositor() Compositor { return w.comp }

// OnMeasure returns the bounds the widget wants for the given constraints.
// The width constraint decides the side length; during a pulse the
// animated size can only make it larger.
func (w *Widget) OnMeasure(width, height MeasureSpec) Bounds {
	b := Resolve(width, height, w.style.Density, w.animated)
	Logger().Debug("avatar: measured", "size", b.Width(), "mode", w.Mode().String())
	return b
}

// OnSizeChanged updates the drawing bounds after layout. A zero width is
// ignored, as hosts report it before the first layout pass. A non-square
// size is reduced to the square of its shorter side.
func (w *Widget) OnSizeChanged(width, height int) {
	if width == 0 {
		return
	}
	w.bounds = Square(min(width, height))
	if w.Mode() == ModeAvatar {
		w.comp.Composite(w.bounds, w.source)
	}
}

// OnDraw renders the current frame into dst at the widget's bounds: the
// circular avatar or the initials badge, then the border ring.
// It does nothing while the bounds are empty.
func (w *Widget) OnDraw(dst draw.Image) {
	if w.bounds.Empty() {
		return
	}
	switch w.Mode() {
	case ModeAvatar:
		if w.source.Empty() {
			Logger().Debug("avatar: no source image, drawing border only")
		}
		w.comp.Composite(w.bounds, w.source)
		w.comp.Draw(dst)
	case ModeInitials:
		w.renderer.Draw(dst, w.bounds, w.initials)
	}
	w.border.Draw(dst, w.bounds)
}

// Render draws a frame into a new transparent image of the bounds size.
// It returns nil while the bounds are empty.
func (w *Widget) Render() *image.RGBA {
	if w.bounds.Empty() {
		return nil
	}
	dst := image.NewRGBA(w.bounds.Rect())
	w.OnDraw(dst)
	return dst
}

// SetSource replaces the avatar image. A nil src clears it. In avatar mode
// the compositor state is rebuilt right away; in initials mode the rebuild
// waits for the next avatar frame.
func (w *Widget) SetSource(src *Source) {
	w.source = src
	if w.Mode() == ModeAvatar {
		w.comp.Composite(w.bounds, w.source)
	}
	w.host.RequestRedraw()
}

// SetImage is SetSource(NewSource(img)).
func (w *Widget) SetImage(img image.Image) {
	w.SetSource(NewSource(img))
}

// SetBorderColor changes the ring color.
func (w *Widget) SetBorderColor(c RGBA) {
	w.border.Color = c
	w.host.RequestRedraw()
}

// SetBorderWidth changes the ring width, given in dp. Negative and NaN
// widths are treated as zero.
func (w *Widget) SetBorderWidth(dp float64) {
	if !(dp > 0) {
		dp = 0
	}
	w.border.Width = w.style.Density.PxF(dp)
	w.host.RequestRedraw()
}

// SetInitials changes the initials label. A blank label is replaced with
// DefaultInitials. A redraw is requested only in initials mode.
func (w *Widget) SetInitials(label string) {
	w.initials = normalizeLabel(label)
	if w.Mode() == ModeInitials {
		w.host.RequestRedraw()
	}
}

// OnLongPress starts the pulse and returns the animation the host should
// play. It reports false, and the host should play nothing, while a pulse
// is already in flight.
func (w *Widget) OnLongPress() (Pulse, bool) {
	if !w.modes.Trigger() {
		Logger().Debug("avatar: long press ignored, pulse in flight")
		return Pulse{}, false
	}
	return NewPulse(w.bounds.Width()), true
}

// OnAnimationTick receives the next animated size and asks the host for a
// new layout pass.
func (w *Widget) OnAnimationTick(size int) {
	w.animated = size
	w.host.RequestLayout()
}

// OnAnimationRepeat handles the grow/shrink boundary of the pulse, where
// the display mode flips.
func (w *Widget) OnAnimationRepeat() {
	if !w.modes.Repeat() {
		return
	}
	Logger().Debug("avatar: mode toggled", "mode", w.Mode().String())
	if w.Mode() == ModeAvatar {
		w.comp.Composite(w.bounds, w.source)
	}
	w.host.RequestRedraw()
}

// OnAnimationEnd finishes the pulse and drops the animated size.
func (w *Widget) OnAnimationEnd() {
	w.modes.Finish()
	w.animated = 0
	w.host.RequestLayout()
}

// Play feeds a frame sequence to the widget in order, as an animation
// driver would. At the boundary frame the repeat is handled before the
// size is applied.
func (w *Widget) Play(frames []Frame) {
	for _, f := range frames {
		if f.Repeat {
			w.OnAnimationRepeat()
		}
		w.OnAnimationTick(f.Size)
		if f.End {
			w.OnAnimationEnd()
		}
	}
}

// SaveState returns the persisted part of the widget state.
func (w *Widget) SaveState() SavedState {
	return SavedState{
		AvatarMode:  w.Mode() == ModeAvatar,
		BorderWidth: float32(w.border.Width),
		BorderColor: w.border.Color.ARGB(),
	}
}

// RestoreState applies a record produced by SavedState.MarshalBinary.
// A malformed record resets the mode and border to their style defaults;
// the returned error is informational and the widget stays usable.
func (w *Widget) RestoreState(data []byte) error {
	var s SavedState
	if err := s.UnmarshalBinary(data); err != nil {
		Logger().Warn("avatar: discarding saved state", "err", err)
		w.modes.restore(ModeAvatar)
		w.border = w.style.border()
		w.host.RequestRedraw()
		return err
	}

	mode := ModeInitials
	if s.AvatarMode {
		mode = ModeAvatar
	}
	w.modes.restore(mode)
	w.animated = 0
	w.border = Border{Width: float64(s.BorderWidth), Color: FromARGB(s.BorderColor)}
	w.host.RequestRedraw()
	return nil
}

// Close releases the font face owned by the widget.
func (w *Widget) Close() error {
	if !w.ownsFont {
		return nil
	}
	return w.renderer.Close()
}
