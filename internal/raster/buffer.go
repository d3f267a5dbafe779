package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

var (
	// ErrOutOfBounds is returned when a coordinate or region falls outside the buffer.
	ErrOutOfBounds = errors.New("coordinates outside image bounds")

	// ErrDimensionMismatch is returned when region data does not match the
	// size of the region it is written to.
	ErrDimensionMismatch = errors.New("region data dimensions do not match target region")
)

// Buffer is a fixed-size grid of 8-bit NRGBA pixels.
//
// The underlying image always has its origin at (0,0), so buffer coordinates
// and image coordinates are the same.
type Buffer struct {
	img *image.NRGBA
}

// NewBuffer creates a buffer of the given size filled with c.
func NewBuffer(width, height int, c color.Color) *Buffer {
	return &Buffer{img: imaging.New(width, height, c)}
}

// FromImage copies any image.Image into a new buffer.
//
// The source is converted to NRGBA and re-based to a zero origin. The source
// is never retained, so later changes to it do not affect the buffer.
func FromImage(src image.Image) *Buffer {
	return &Buffer{img: imaging.Clone(src)}
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int {
	return b.img.Rect.Dx()
}

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int {
	return b.img.Rect.Dy()
}

// Bounds returns the buffer rectangle, always anchored at (0,0).
func (b *Buffer) Bounds() image.Rectangle {
	return b.img.Rect
}

// Image exposes the pixel data for encoders and renderers.
//
// Callers must treat the result as read-only; use Snapshot for a copy that
// may be modified.
func (b *Buffer) Image() *image.NRGBA {
	return b.img
}

// At returns the pixel at (x, y).
//
// # Errors
//
//   - ErrOutOfBounds if x is not in [0, width) or y is not in [0, height)
func (b *Buffer) At(x, y int) (color.NRGBA, error) {
	if !image.Pt(x, y).In(b.img.Rect) {
		return color.NRGBA{}, fmt.Errorf("pixel (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	return b.img.NRGBAAt(x, y), nil
}

// Region returns a copy of the sub-region [x1,x2) × [y1,y2).
//
// The returned image has its origin at (0,0) and shares no storage with the
// buffer.
//
// # Errors
//
//   - ErrOutOfBounds if the region is empty or not fully inside the buffer
func (b *Buffer) Region(x1, y1, x2, y2 int) (*image.NRGBA, error) {
	r, err := b.checkRegion(x1, y1, x2, y2)
	if err != nil {
		return nil, err
	}
	return imaging.Crop(b.img, r), nil
}

// SetRegion replaces the sub-region [x1,x2) × [y1,y2) with data.
//
// data must be exactly (x2-x1) × (y2-y1) pixels. Its own origin is ignored;
// the top-left pixel of data is written to (x1, y1).
//
// # Errors
//
//   - ErrOutOfBounds if the region is empty or not fully inside the buffer
//   - ErrDimensionMismatch if data is a different size than the region
func (b *Buffer) SetRegion(x1, y1, x2, y2 int, data *image.NRGBA) error {
	r, err := b.checkRegion(x1, y1, x2, y2)
	if err != nil {
		return err
	}
	if data == nil || data.Rect.Dx() != r.Dx() || data.Rect.Dy() != r.Dy() {
		var got image.Point
		if data != nil {
			got = data.Rect.Size()
		}
		return fmt.Errorf("region %dx%d, data %dx%d: %w", r.Dx(), r.Dy(), got.X, got.Y, ErrDimensionMismatch)
	}

	rowSize := r.Dx() * 4
	for y := 0; y < r.Dy(); y++ {
		dst := b.img.PixOffset(r.Min.X, r.Min.Y+y)
		src := data.PixOffset(data.Rect.Min.X, data.Rect.Min.Y+y)
		copy(b.img.Pix[dst:dst+rowSize], data.Pix[src:src+rowSize])
	}
	return nil
}

// Snapshot returns an independent deep copy of the buffer.
func (b *Buffer) Snapshot() *Buffer {
	return &Buffer{img: imaging.Clone(b.img)}
}

// Equal reports whether both buffers have the same size and identical pixels.
func (b *Buffer) Equal(other *Buffer) bool {
	if other == nil {
		return false
	}
	if b.img.Rect != other.img.Rect {
		return false
	}
	return bytes.Equal(b.img.Pix, other.img.Pix)
}

func (b *Buffer) checkRegion(x1, y1, x2, y2 int) (image.Rectangle, error) {
	r := image.Rectangle{Min: image.Pt(x1, y1), Max: image.Pt(x2, y2)}
	if r.Empty() || !r.In(b.img.Rect) {
		return image.Rectangle{}, fmt.Errorf("region (%d,%d)-(%d,%d) in %dx%d image: %w",
			x1, y1, x2, y2, b.Width(), b.Height(), ErrOutOfBounds)
	}
	return r, nil
}
