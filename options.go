package avatar

// Option configures a Widget during creation.
//
// Example:
//
//	// Default style, shader strategy
//	w, err := avatar.NewWidget()
//
//	// Mask strategy on a 2x display, redraws routed to the host
//	w, err := avatar.NewWidget(
//		avatar.WithStrategy(avatar.StrategyMask),
//		avatar.WithDensity(2),
//		avatar.WithHost(view),
//	)
type Option func(*widgetOptions)

// widgetOptions holds optional configuration for Widget creation.
type widgetOptions struct {
	style      Style
	strategy   *Strategy
	density    Density
	host       Host
	font       []byte
	renderer   *InitialsRenderer
	compositor []CompositorOption
}

// defaultOptions returns the default widget options.
func defaultOptions() widgetOptions {
	return widgetOptions{
		style: DefaultStyle(),
	}
}

// WithStyle sets the construction-time style, usually loaded with
// LoadStyle. Later WithStrategy and WithDensity options override the
// matching style fields.
func WithStyle(s Style) Option {
	return func(o *widgetOptions) {
		o.style = s
	}
}

// WithStrategy selects the compositor strategy.
func WithStrategy(s Strategy) Option {
	return func(o *widgetOptions) {
		o.strategy = &s
	}
}

// WithDensity sets the number of device pixels per dp.
func WithDensity(d Density) Option {
	return func(o *widgetOptions) {
		o.density = d
	}
}

// WithHost routes redraw and layout requests to h.
func WithHost(h Host) Option {
	return func(o *widgetOptions) {
		o.host = h
	}
}

// WithFont sets the TrueType or OpenType font used for initials.
// The default is Go Regular.
func WithFont(ttf []byte) Option {
	return func(o *widgetOptions) {
		o.font = ttf
	}
}

// WithInitialsRenderer injects a ready-made initials renderer.
// It takes precedence over WithFont.
func WithInitialsRenderer(r *InitialsRenderer) Option {
	return func(o *widgetOptions) {
		o.renderer = r
	}
}

// WithCompositorOptions passes options through to NewCompositor.
//
// Example:
//
//	w, err := avatar.NewWidget(
//		avatar.WithCompositorOptions(avatar.WithResampleFilter(imaging.Linear)),
//	)
func WithCompositorOptions(opts ...CompositorOption) Option {
	return func(o *widgetOptions) {
		o.compositor = append(o.compositor, opts...)
	}
}

// resolvedStyle returns the style with per-option overrides applied.
func (o *widgetOptions) resolvedStyle() Style {
	s := o.style
	if o.strategy != nil {
		s.Strategy = *o.strategy
	}
	if o.density != 0 {
		s.Density = o.density
	}
	s.Initials = normalizeLabel(s.Initials)
	return s
}
