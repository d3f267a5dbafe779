package raster

import (
	"fmt"
	"image"
	"image/color"
)

// Mask is a binary coverage map over a width × height local coordinate space.
//
// Each pixel is either covered or not; there is no partial coverage.
type Mask struct {
	width  int
	height int
	bits   []bool
}

// NewMask rasterizes a predicate over a width × height grid.
//
// inside is called once per pixel with local coordinates and decides whether
// that pixel is covered.
func NewMask(width, height int, inside func(x, y int) bool) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m := &Mask{width: width, height: height, bits: make([]bool, width*height)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.bits[y*width+x] = inside(x, y)
		}
	}
	return m
}

// CircleMask returns a filled-disc mask. A local pixel (x, y) is covered iff
// (x-cx)² + (y-cy)² <= radius². The center may lie outside the grid, in which
// case only the part of the disc that overlaps the grid is covered.
func CircleMask(width, height, cx, cy, radius int) *Mask {
	r2 := radius * radius
	return NewMask(width, height, func(x, y int) bool {
		dx, dy := x-cx, y-cy
		return dx*dx+dy*dy <= r2
	})
}

// RingMask returns a mask covering pixels whose distance from (cx, cy) lies in
// [inner, outer].
func RingMask(width, height, cx, cy, inner, outer int) *Mask {
	if inner < 0 {
		inner = 0
	}
	lo, hi := inner*inner, outer*outer
	return NewMask(width, height, func(x, y int) bool {
		dx, dy := x-cx, y-cy
		d2 := dx*dx + dy*dy
		return d2 >= lo && d2 <= hi
	})
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height.
func (m *Mask) Height() int { return m.height }

// Covered reports whether local pixel (x, y) is covered. Pixels outside the
// mask are never covered.
func (m *Mask) Covered(x, y int) bool {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return false
	}
	return m.bits[y*m.width+x]
}

// Count returns the number of covered pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// Select composites two equally sized images through the mask.
//
// The result takes each pixel from fg where the mask is covered and from bg
// everywhere else. Neither input is modified.
//
// # Errors
//
//   - ErrDimensionMismatch if fg, bg and the mask are not all the same size
func Select(fg, bg *image.NRGBA, m *Mask) (*image.NRGBA, error) {
	fs, bs := fg.Rect.Size(), bg.Rect.Size()
	if fs != bs || fs.X != m.width || fs.Y != m.height {
		return nil, fmt.Errorf("fg %v, bg %v, mask %dx%d: %w", fs, bs, m.width, m.height, ErrDimensionMismatch)
	}

	out := image.NewNRGBA(image.Rect(0, 0, m.width, m.height))
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			src := bg
			if m.bits[y*m.width+x] {
				src = fg
			}
			si := src.PixOffset(src.Rect.Min.X+x, src.Rect.Min.Y+y)
			di := out.PixOffset(x, y)
			copy(out.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return out, nil
}

// Paint sets every covered pixel of dst to c. The mask's (0,0) is placed at
// origin in dst coordinates; covered pixels falling outside dst are skipped.
func Paint(dst *image.NRGBA, origin image.Point, m *Mask, c color.Color) {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if !m.bits[y*m.width+x] {
				continue
			}
			p := origin.Add(image.Pt(x, y))
			if p.In(dst.Rect) {
				dst.SetNRGBA(p.X, p.Y, nc)
			}
		}
	}
}
