package blur

import (
	"fmt"
	"image"

	"github.com/ironsheep/blur-faces-mcp/internal/raster"
)

// Recorder receives the full-image snapshot taken right before a blur is
// written. history.Stack satisfies it.
type Recorder interface {
	Push(snapshot *raster.Buffer)
}

// Func blurs a region with the given kernel size and returns a new image of
// the same dimensions. Gaussian is the default.
type Func func(region image.Image, kernelSize int) *image.NRGBA

// Compositor applies circular blurs to a live buffer.
type Compositor struct {
	blur Func
}

// NewCompositor returns a compositor using Gaussian as its blur.
func NewCompositor() *Compositor {
	return &Compositor{blur: Gaussian}
}

// NewCompositorWithBlur returns a compositor using fn in place of Gaussian.
func NewCompositorWithBlur(fn Func) *Compositor {
	if fn == nil {
		fn = Gaussian
	}
	return &Compositor{blur: fn}
}

// BoundingBox returns the axis-aligned box of a circle clamped to a
// width × height image:
//
//	x1 = max(cx-r, 0)   y1 = max(cy-r, 0)
//	x2 = min(cx+r, w)   y2 = min(cy+r, h)
//
// The box is not canonicalized, so a circle that misses the image yields an
// empty rectangle (Empty() reports true).
func BoundingBox(cx, cy, radius, width, height int) image.Rectangle {
	return image.Rectangle{
		Min: image.Pt(max(cx-radius, 0), max(cy-radius, 0)),
		Max: image.Pt(min(cx+radius, width), min(cy+radius, height)),
	}
}

// Apply blurs the disc of the given radius centered at (cx, cy).
//
// Parameters:
//   - buf: The live buffer; modified in place.
//   - rec: Receives a full snapshot of buf as it was before the blur, once the
//     blur has been written. May be nil.
//   - cx, cy: Circle center in image coordinates. May lie outside the image.
//   - radius: Circle radius in pixels.
//   - kernelSize: Gaussian kernel size, coerced to odd by the blur.
//
// Returns:
//   - image.Rectangle: The clamped region that was processed.
//   - bool: false if the clamped region is empty; nothing was recorded or
//     written in that case.
//   - error: Non-nil only if the composited region could not be written back,
//     which would mean the region bookkeeping or the blur is broken. Nothing
//     is recorded when an error is returned.
//
// # Algorithm
//
//  1. Clamp the circle's bounding box to the image.
//  2. Stop if the box is empty.
//  3. Take a full snapshot of buf.
//  4. Copy the boxed region out of buf and blur the copy.
//  5. Rasterize the disc in region-local coordinates as a binary mask.
//  6. Take blurred pixels inside the mask and original pixels outside it.
//  7. Write the composited region back into buf.
//  8. Push the snapshot from step 3 to rec.
//
// Only the clamped box is ever read or written, so partially off-image
// circles never touch out-of-bounds pixels.
func (c *Compositor) Apply(buf *raster.Buffer, rec Recorder, cx, cy, radius, kernelSize int) (image.Rectangle, bool, error) {
	box := BoundingBox(cx, cy, radius, buf.Width(), buf.Height())
	if box.Empty() {
		return box, false, nil
	}

	original, err := buf.Region(box.Min.X, box.Min.Y, box.Max.X, box.Max.Y)
	if err != nil {
		return box, false, fmt.Errorf("failed to read blur region: %w", err)
	}

	snapshot := buf.Snapshot()

	blurred := c.blur(original, kernelSize)
	mask := raster.CircleMask(box.Dx(), box.Dy(), cx-box.Min.X, cy-box.Min.Y, radius)

	out, err := raster.Select(blurred, original, mask)
	if err != nil {
		return box, true, fmt.Errorf("failed to composite blur region: %w", err)
	}

	if err := buf.SetRegion(box.Min.X, box.Min.Y, box.Max.X, box.Max.Y, out); err != nil {
		return box, true, fmt.Errorf("failed to write blur region: %w", err)
	}

	if rec != nil {
		rec.Push(snapshot)
	}
	return box, true, nil
}
