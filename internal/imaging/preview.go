package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/blur-faces-mcp/internal/raster"
)

// Preview display defaults. Images larger than the bounds are scaled down to
// fit them when rendered.
const (
	DefaultMaxPreviewWidth  = 1920
	DefaultMaxPreviewHeight = 1080
	DefaultOverlayColor     = "#00FF00"
)

// PreviewOptions controls what RenderPreview draws on top of the image.
type PreviewOptions struct {
	// Cursor is the pointer position, or nil if none has been reported.
	// The brush ring is drawn only when both coordinates are >= 0.
	Cursor *image.Point

	// Radius is the brush radius drawn as a ring around Cursor.
	Radius int

	// KernelSize is shown in the status label.
	KernelSize int

	// Overlay is the ring and label color. Nil means DefaultOverlayColor.
	Overlay color.Color

	// MaxWidth and MaxHeight bound the rendered size. Zero or negative values
	// disable scaling on that axis.
	MaxWidth  int
	MaxHeight int
}

// PreviewResult contains a rendered preview encoded as base64 PNG.
type PreviewResult struct {
	// Width and Height are the size of the encoded preview.
	Width  int `json:"width"`
	Height int `json:"height"`

	// SourceWidth and SourceHeight are the size of the edited image.
	SourceWidth  int `json:"source_width"`
	SourceHeight int `json:"source_height"`

	// Scale is Width / SourceWidth; 1.0 when no scaling happened.
	Scale float64 `json:"scale"`

	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// RenderPreview draws the brush ring and status label over a copy of buf.
//
// The live buffer is never modified. Drawing order:
//
//  1. Copy the buffer.
//  2. If the cursor is set and non-negative, draw a ring of pixels whose
//     distance from the cursor lies in [Radius-1, Radius+1].
//  3. Draw "Radius: R  Blur: K" with its baseline at (10, 30).
//  4. If the result exceeds MaxWidth × MaxHeight, shrink it to fit while
//     keeping the aspect ratio (Lanczos resampling).
func RenderPreview(buf *raster.Buffer, opts PreviewOptions) *image.NRGBA {
	overlay := opts.Overlay
	if overlay == nil {
		overlay, _ = ParseColor(DefaultOverlayColor)
	}

	frame := buf.Snapshot().Image()

	drawRing(frame, opts.Cursor, opts.Radius, overlay)

	label := fmt.Sprintf("Radius: %d  Blur: %d", opts.Radius, opts.KernelSize)
	drawLabel(frame, 10, 30, label, overlay)

	return fitWithin(frame, opts.MaxWidth, opts.MaxHeight)
}

// EncodePreview renders a preview and encodes it as base64 PNG.
//
// # Errors
//
//   - Returns error if PNG encoding fails
func EncodePreview(buf *raster.Buffer, opts PreviewOptions) (*PreviewResult, error) {
	frame := RenderPreview(buf, opts)

	var out bytes.Buffer
	if err := png.Encode(&out, frame); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &PreviewResult{
		Width:        frame.Rect.Dx(),
		Height:       frame.Rect.Dy(),
		SourceWidth:  buf.Width(),
		SourceHeight: buf.Height(),
		Scale:        float64(frame.Rect.Dx()) / float64(buf.Width()),
		ImageBase64:  base64.StdEncoding.EncodeToString(out.Bytes()),
		MimeType:     "image/png",
	}, nil
}

// ParseColor parses a hex color such as "#00FF00" or "#0f0".
func ParseColor(hex string) (color.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return c.Clamped(), nil
}

// drawRing outlines the brush around cursor with pixels whose distance from
// it lies in [radius-1, radius+1]. Nothing is drawn for a nil or negative cursor.
func drawRing(dst *image.NRGBA, cursor *image.Point, radius int, c color.Color) {
	if cursor == nil || cursor.X < 0 || cursor.Y < 0 {
		return
	}
	paintRing(dst, *cursor, radius, c)
}

// paintRing draws the brush ring centered at center in dst coordinates. The
// center may lie outside dst; only the part of the ring inside dst is drawn.
func paintRing(dst *image.NRGBA, center image.Point, radius int, c color.Color) {
	outer := radius + 1
	ring := raster.RingMask(2*outer+1, 2*outer+1, outer, outer, radius-1, outer)
	raster.Paint(dst, center.Sub(image.Pt(outer, outer)), ring, c)
}

// drawLabel writes text with its baseline starting at (x, y) using the 7x13
// fixed font.
func drawLabel(dst *image.NRGBA, x, y int, text string, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// fitWithin scales img down to fit maxW × maxH, or returns it unchanged.
func fitWithin(img *image.NRGBA, maxW, maxH int) *image.NRGBA {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if maxW <= 0 {
		maxW = w
	}
	if maxH <= 0 {
		maxH = h
	}
	if w <= maxW && h <= maxH {
		return img
	}
	return imaging.Fit(img, maxW, maxH, imaging.Lanczos)
}
