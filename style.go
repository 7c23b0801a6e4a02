package avatar

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidStyle is returned when a style holds out-of-range values.
var ErrInvalidStyle = errors.New("avatar: invalid style")

// Style is the construction-time configuration of a widget. It is usually
// read once from a TOML file:
//
//	border_width = 3        # dp
//	border_color = "#ff8800"
//	initials = "JD"
//	strategy = "mask"       # shader, mask or plain
//	density = 2.0           # pixels per dp
type Style struct {
	// BorderWidth is the ring width in density-independent units.
	BorderWidth float64 `toml:"border_width"`

	// BorderColor is the ring color.
	BorderColor RGBA `toml:"border_color"`

	// Initials is the label drawn in initials mode.
	Initials string `toml:"initials"`

	// Strategy selects the compositor.
	Strategy Strategy `toml:"strategy"`

	// Density is the number of device pixels per dp.
	Density Density `toml:"density"`
}

// DefaultStyle returns the style used when nothing is configured.
func DefaultStyle() Style {
	return Style{
		BorderWidth: DefaultBorderWidthDp,
		BorderColor: DefaultBorderColor,
		Initials:    DefaultInitials,
		Strategy:    StrategyShader,
		Density:     1,
	}
}

// LoadStyle reads a TOML style. Keys that are absent keep their defaults;
// unknown keys are rejected. A blank initials label is replaced with
// DefaultInitials.
func LoadStyle(r io.Reader) (Style, error) {
	s := DefaultStyle()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		var sme *toml.StrictMissingError
		if errors.As(err, &sme) {
			return Style{}, fmt.Errorf("%w: %s", ErrInvalidStyle, sme.String())
		}
		return Style{}, fmt.Errorf("avatar: decode style: %w", err)
	}
	s.Initials = normalizeLabel(s.Initials)
	if err := s.Validate(); err != nil {
		return Style{}, err
	}
	return s, nil
}

// LoadStyleFile reads a TOML style from path.
func LoadStyleFile(path string) (Style, error) {
	f, err := os.Open(path)
	if err != nil {
		return Style{}, fmt.Errorf("avatar: open style: %w", err)
	}
	defer f.Close()
	return LoadStyle(f)
}

// WriteTo encodes s as TOML.
func (s Style) WriteTo(w io.Writer) (int64, error) {
	data, err := toml.Marshal(s)
	if err != nil {
		return 0, fmt.Errorf("avatar: encode style: %w", err)
	}
	n, err := w.Write(data)
	return int64(n), err
}

// Validate reports whether every field is in range.
func (s Style) Validate() error {
	switch {
	case math.IsNaN(s.BorderWidth) || math.IsInf(s.BorderWidth, 0) || s.BorderWidth < 0:
		return fmt.Errorf("%w: border_width %v", ErrInvalidStyle, s.BorderWidth)
	case !(s.Density > 0) || math.IsInf(float64(s.Density), 0):
		return fmt.Errorf("%w: density %v", ErrInvalidStyle, s.Density)
	case s.Strategy > StrategyPlain:
		return fmt.Errorf("%w: %w", ErrInvalidStyle, ErrUnknownStrategy)
	case s.Initials == "":
		return fmt.Errorf("%w: %w", ErrInvalidStyle, ErrEmptyLabel)
	}
	return nil
}

// border returns the ring in device pixels.
func (s Style) border() Border {
	return Border{Width: s.Density.PxF(s.BorderWidth), Color: s.BorderColor}
}
