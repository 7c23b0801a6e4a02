package avatar

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ErrInvalidColor is returned when a hex color string cannot be parsed.
var ErrInvalidColor = errors.New("avatar: invalid color")

// RGBA is a straight-alpha color with float channels in [0, 1]. Style files
// and saved state carry it as hex text and packed ARGB respectively.
type RGBA struct {
	R, G, B, A float64
}

func (c RGBA) Color() color.Color { return c.NRGBA() }

// NRGBA converts RGBA to a non-premultiplied 8-bit color.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp255(c.R*255 + 0.5)),
		G: uint8(clamp255(c.G*255 + 0.5)),
		B: uint8(clamp255(c.B*255 + 0.5)),
		A: uint8(clamp255(c.A*255 + 0.5)),
	}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// ARGB packs the color into a 32-bit 0xAARRGGBB value.
// This is the layout used by SavedState.
func (c RGBA) ARGB() uint32 {
	n := c.NRGBA()
	return uint32(n.A)<<24 | uint32(n.R)<<16 | uint32(n.G)<<8 | uint32(n.B)
}

// FromARGB unpacks a 0xAARRGGBB value.
func FromARGB(v uint32) RGBA {
	return FromColor(color.NRGBA{
		A: uint8(v >> 24),
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	})
}

// ParseHex accepts "#rgb", "#rgba", "#rrggbb" and "#rrggbbaa", with or
// without the leading '#'.
func ParseHex(hex string) (RGBA, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) == 3 || len(s) == 4 {
		var b strings.Builder
		for _, r := range s {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		s = b.String()
	}
	if len(s) == 6 {
		s += "ff"
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if len(s) != 8 || err != nil {
		return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	return FromColor(color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}), nil
}

// MustHex is ParseHex for literals known to be valid.
func MustHex(hex string) RGBA {
	c, err := ParseHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as "#rrggbb", or "#rrggbbaa" when not opaque.
func (c RGBA) Hex() string {
	n := c.NRGBA()
	if n.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

// MarshalText implements encoding.TextMarshaler using Hex.
func (c RGBA) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseHex.
func (c *RGBA) UnmarshalText(text []byte) error {
	v, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func clamp255(x float64) float64 { return min(max(x, 0), 255) }

var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Transparent = RGBA{}
)
