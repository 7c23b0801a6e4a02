package avatar

import "image"

// DefaultSizeDp is the resting avatar size used when the host places no
// constraint on the measurement.
const DefaultSizeDp = 40

// Bounds is an axis-aligned drawing region in device pixels.
// Bounds produced by Resolve and Square are always square.
type Bounds struct {
	Left, Top, Right, Bottom int
}

// Square returns square bounds of the given side anchored at the origin.
func Square(size int) Bounds {
	if size < 0 {
		size = 0
	}
	return Bounds{Right: size, Bottom: size}
}

// Width returns the horizontal extent.
func (b Bounds) Width() int { return b.Right - b.Left }

// Height returns the vertical extent.
func (b Bounds) Height() int { return b.Bottom - b.Top }

// Empty reports whether the bounds cover no pixels.
func (b Bounds) Empty() bool { return b.Width() <= 0 || b.Height() <= 0 }

// Rect converts the bounds to an image.Rectangle.
func (b Bounds) Rect() image.Rectangle {
	return image.Rect(b.Left, b.Top, b.Right, b.Bottom)
}

// Min returns the top-left corner.
func (b Bounds) Min() image.Point { return image.Pt(b.Left, b.Top) }

// Inset shrinks the bounds by d on every side.
func (b Bounds) Inset(d int) Bounds {
	return Bounds{Left: b.Left + d, Top: b.Top + d, Right: b.Right - d, Bottom: b.Bottom - d}
}

// CenterX returns the exact horizontal center.
func (b Bounds) CenterX() float64 { return float64(b.Left+b.Right) / 2 }

// CenterY returns the exact vertical center.
func (b Bounds) CenterY() float64 { return float64(b.Top+b.Bottom) / 2 }

// sameSize reports whether two bounds have the same dimensions.
func (b Bounds) sameSize(o Bounds) bool {
	return b.Width() == o.Width() && b.Height() == o.Height()
}

// MeasureMode describes how the host constrains a dimension.
type MeasureMode uint8

const (
	// Unspecified means the host imposes no constraint.
	Unspecified MeasureMode = iota
	// AtMost means the size must not exceed MeasureSpec.Size.
	AtMost
	// Exactly means the size is fixed to MeasureSpec.Size.
	Exactly
)

// String returns the mode name.
func (m MeasureMode) String() string {
	switch m {
	case AtMost:
		return "AT_MOST"
	case Exactly:
		return "EXACTLY"
	default:
		return "UNSPECIFIED"
	}
}

// MeasureSpec is a layout constraint for one axis.
type MeasureSpec struct {
	Mode MeasureMode
	Size int
}

// Density converts density-independent units to device pixels.
// It is the number of pixels per dp.
type Density float64

// Px converts dp to whole pixels, truncating toward zero.
func (d Density) Px(dp float64) int {
	return int(dp * float64(d))
}

// PxF converts dp to fractional pixels.
func (d Density) PxF(dp float64) float64 {
	return dp * float64(d)
}

// ResolveSize returns the side length for a single measure spec.
// An unconstrained spec falls back to DefaultSizeDp.
func ResolveSize(spec MeasureSpec, density Density) int {
	switch spec.Mode {
	case Unspecified:
		return density.Px(DefaultSizeDp)
	default:
		if spec.Size < 0 {
			return 0
		}
		return spec.Size
	}
}

// Resolve computes the square drawing bounds for the given layout constraints.
//
// The width constraint alone decides the side length, so the result is never
// asymmetric. A positive animatedSize (the long-press pulse) can only grow the
// bounds: the larger of the resolved size and animatedSize wins.
func Resolve(width, height MeasureSpec, density Density, animatedSize int) Bounds {
	size := max(ResolveSize(width, density), animatedSize)
	Logger().Debug("avatar: resolve",
		"width", width.Mode.String(), "widthSize", width.Size,
		"height", height.Mode.String(), "heightSize", height.Size,
		"animated", animatedSize, "size", size)
	return Square(size)
}
