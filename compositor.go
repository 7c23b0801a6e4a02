package avatar

import (
	"errors"
	"fmt"
	"image/draw"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrUnknownStrategy is returned when a strategy name or value is not recognized.
var ErrUnknownStrategy = errors.New("avatar: unknown compositor strategy")

// Strategy selects how a Compositor turns a rectangular source into a
// circular avatar.
type Strategy uint8

const (
	// StrategyShader fills an anti-aliased oval directly with a clamped
	// image pattern. No intermediate raster is kept besides the pattern.
	StrategyShader Strategy = iota

	// StrategyMask renders a circular coverage mask, composites the source
	// through it with source-in, and caches the resulting raster.
	StrategyMask

	// StrategyPlain clips drawing to a hard-edged oval and draws the source
	// beneath it.
	StrategyPlain
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyShader:
		return "shader"
	case StrategyMask:
		return "mask"
	case StrategyPlain:
		return "plain"
	default:
		return fmt.Sprintf("Strategy(%d)", uint8(s))
	}
}

// ParseStrategy parses a strategy name as returned by String.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "shader":
		return StrategyShader, nil
	case "mask":
		return StrategyMask, nil
	case "plain", "clip":
		return StrategyPlain, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if s > StrategyPlain {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Compositor draws a source image cropped to a circle.
//
// Composite prepares whatever state the strategy needs for the given bounds
// and source; it is cheap when neither the bounds size nor the source
// identity changed since the previous call. Draw renders the prepared
// avatar into dst and draws nothing when Composite has not produced a
// usable state (zero bounds or missing source). Neither method fails.
//
// A Compositor is owned by a single widget and is not safe for concurrent use.
type Compositor interface {
	Strategy() Strategy
	Composite(b Bounds, src *Source)
	Draw(dst draw.Image)
	Reset()
}

// CompositorOption configures a Compositor during creation.
type CompositorOption func(*compositorOptions)

// compositorOptions holds optional configuration for Compositor creation.
type compositorOptions struct {
	filter imaging.ResampleFilter
}

// defaultCompositorOptions returns the default compositor options.
func defaultCompositorOptions() compositorOptions {
	return compositorOptions{
		filter: imaging.Lanczos,
	}
}

// WithResampleFilter sets the filter used to scale the source during
// center-crop. The default is imaging.Lanczos.
func WithResampleFilter(f imaging.ResampleFilter) CompositorOption {
	return func(o *compositorOptions) {
		o.filter = f
	}
}

// NewCompositor creates the compositor for strategy s.
func NewCompositor(s Strategy, opts ...CompositorOption) (Compositor, error) {
	o := defaultCompositorOptions()
	for _, opt := range opts {
		opt(&o)
	}

	switch s {
	case StrategyShader:
		return &ShaderCompositor{filter: o.filter}, nil
	case StrategyMask:
		return &MaskCompositor{filter: o.filter}, nil
	case StrategyPlain:
		return &PlainCompositor{filter: o.filter}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, uint8(s))
	}
}

// cacheKey identifies the inputs a compositor state was built from.
// Only the bounds size matters; moving the bounds reuses the state.
type cacheKey struct {
	width, height int
	src           *Source
}

func keyOf(b Bounds, src *Source) cacheKey {
	return cacheKey{width: b.Width(), height: b.Height(), src: src}
}

// usable reports whether b and src can produce an avatar at all.
func usable(b Bounds, src *Source) bool {
	return !b.Empty() && !src.Empty()
}
