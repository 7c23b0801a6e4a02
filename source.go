package avatar

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"
	"sync/atomic"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ErrNilImage is returned when a source is built from a nil image.
var ErrNilImage = errors.New("avatar: nil image")

// sourceGen numbers sources for logging.
var sourceGen atomic.Uint64

// Source is an immutable handle to a raster supplied by the host.
//
// Compositors detect a new image by comparing *Source pointers, so replacing
// the avatar image always means building a new Source. The underlying image
// must not be mutated while a compositor holds the Source.
type Source struct {
	img image.Image
	gen uint64
}

// NewSource wraps img. It returns nil when img is nil.
func NewSource(img image.Image) *Source {
	if img == nil {
		return nil
	}
	return &Source{img: img, gen: sourceGen.Add(1)}
}

// Image returns the wrapped image.
func (s *Source) Image() image.Image { return s.img }

// Size returns the image dimensions.
func (s *Source) Size() (width, height int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Empty reports whether the source is missing or has no pixels.
func (s *Source) Empty() bool {
	if s == nil || s.img == nil {
		return true
	}
	return s.img.Bounds().Empty()
}

// CenterCrop scales img uniformly so that its shorter side matches the
// target, crops the overflow of the longer side around the center, and
// returns the result as a premultiplied width×height raster.
// It returns nil when img is nil or the target has no area.
func CenterCrop(img image.Image, width, height int, filter imaging.ResampleFilter) *image.RGBA {
	if img == nil || img.Bounds().Empty() || width <= 0 || height <= 0 {
		return nil
	}
	filled := imaging.Fill(img, width, height, imaging.Center, filter)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), filled, filled.Bounds().Min, draw.Src)
	return dst
}

// DecodeSource decodes a PNG, JPEG, GIF, BMP or WebP image from r and
// applies the EXIF orientation, if any.
func DecodeSource(r io.ReadSeeker) (*Source, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("avatar: decode image: %w", err)
	}

	orient := 1
	if format == "jpeg" {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("avatar: rewind image: %w", err)
		}
		orient = exifOrientation(r)
	}

	img = orientImage(img, orient)
	s := NewSource(img)
	Logger().Debug("avatar: decoded source",
		"format", format, "orientation", orient,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy(), "gen", s.gen)
	return s, nil
}

// LoadSource opens path and decodes it with DecodeSource.
func LoadSource(path string) (*Source, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return DecodeSource(f)
}

// exifOrientation returns the EXIF orientation tag, or 1 when absent.
func exifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil || x == nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil || tag == nil || tag.Count == 0 {
		return 1
	}
	if i, err := tag.Int(0); err == nil {
		return i
	}
	return 1
}

// orientImage transforms img so that EXIF orientation o becomes 1.
func orientImage(img image.Image, o int) image.Image {
	switch o {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
