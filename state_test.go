package avatar

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestSavedStateEncoding(t *testing.T) {
	s := SavedState{AvatarMode: true, BorderWidth: 4.5, BorderColor: 0xff112233}
	data, err := s.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{
		0, 0, 0, 1,
		0x40, 0x90, 0, 0,
		0xff, 0x11, 0x22, 0x33,
	}
	if !bytes.Equal(data, want) {
		t.Errorf("MarshalBinary() = % x, want % x", data, want)
	}

	var got SavedState
	if err := got.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary() error = %v", err)
	}
	if got != s {
		t.Errorf("decoded %+v, want %+v", got, s)
	}
}

func TestSavedStateMalformed(t *testing.T) {
	nan := make([]byte, stateSize)
	putFloat(nan[4:], float32(math.NaN()))
	neg := make([]byte, stateSize)
	putFloat(neg[4:], -1)
	inf := make([]byte, stateSize)
	putFloat(inf[4:], float32(math.Inf(1)))

	tests := []struct {
		name string
		data []byte
	}{
		{"nil", nil},
		{"short", make([]byte, 8)},
		{"long", make([]byte, 16)},
		{"bad mode", []byte{0, 0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0}},
		{"nan width", nan},
		{"negative width", neg},
		{"infinite width", inf},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := SavedState{AvatarMode: true, BorderWidth: 2, BorderColor: 0xffffffff}
			s := orig
			err := s.UnmarshalBinary(tt.data)
			if !errors.Is(err, ErrMalformedState) {
				t.Errorf("UnmarshalBinary() error = %v, want ErrMalformedState", err)
			}
			if s != orig {
				t.Errorf("state changed on error: %+v", s)
			}
		})
	}
}

func putFloat(b []byte, f float32) {
	bits := math.Float32bits(f)
	b[0], b[1], b[2], b[3] = byte(bits>>24), byte(bits>>16), byte(bits>>8), byte(bits)
}
