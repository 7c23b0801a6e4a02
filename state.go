package avatar

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// stateSize is the encoded length of SavedState.
const stateSize = 12

// ErrMalformedState is returned when a saved state record cannot be decoded.
var ErrMalformedState = errors.New("avatar: malformed saved state")

// SavedState is the widget state that survives a host reconfiguration.
// The initials label and the source image are not part of it; the host
// supplies them again.
//
// The binary form is a flat big-endian record:
//
//	offset 0  int32   avatar mode (1) or initials mode (0)
//	offset 4  float32 border width in pixels
//	offset 8  uint32  border color as 0xAARRGGBB
type SavedState struct {
	AvatarMode  bool
	BorderWidth float32
	BorderColor uint32
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (s SavedState) MarshalBinary() ([]byte, error) {
	buf := make([]byte, stateSize)
	var mode uint32
	if s.AvatarMode {
		mode = 1
	}
	binary.BigEndian.PutUint32(buf[0:], mode)
	binary.BigEndian.PutUint32(buf[4:], math.Float32bits(s.BorderWidth))
	binary.BigEndian.PutUint32(buf[8:], s.BorderColor)
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
// On error s is left unchanged.
func (s *SavedState) UnmarshalBinary(data []byte) error {
	if len(data) != stateSize {
		return fmt.Errorf("%w: %d bytes, want %d", ErrMalformedState, len(data), stateSize)
	}
	mode := binary.BigEndian.Uint32(data[0:])
	if mode > 1 {
		return fmt.Errorf("%w: mode flag %d", ErrMalformedState, mode)
	}
	width := math.Float32frombits(binary.BigEndian.Uint32(data[4:]))
	if math.IsNaN(float64(width)) || math.IsInf(float64(width), 0) || width < 0 {
		return fmt.Errorf("%w: border width %v", ErrMalformedState, width)
	}
	*s = SavedState{
		AvatarMode:  mode == 1,
		BorderWidth: width,
		BorderColor: binary.BigEndian.Uint32(data[8:]),
	}
	return nil
}
