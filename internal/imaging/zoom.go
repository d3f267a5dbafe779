package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/blur-faces-mcp/internal/raster"
)

const (
	// MaxZoomScale bounds the magnification of a zoomed view.
	MaxZoomScale = 8.0

	// MaxZoomDimension bounds the width and height of an encoded zoomed view.
	MaxZoomDimension = 4096
)

// ZoomResult contains a magnified part of the image encoded as base64 PNG.
type ZoomResult struct {
	// X1, Y1, X2, Y2 is the region shown, in image coordinates (X2, Y2 exclusive).
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`

	// Width and Height are the size of the encoded view.
	Width  int `json:"width"`
	Height int `json:"height"`

	Scale       float64 `json:"scale"`
	ImageBase64 string  `json:"image_base64"`
	MimeType    string  `json:"mime_type"`
}

// NamedRegion returns the rectangle of a named part of a width × height image.
//
// Supported names:
//   - "top-left", "top-right", "bottom-left", "bottom-right": quadrants
//   - "top-half", "bottom-half", "left-half", "right-half": halves
//   - "center": the middle half in both directions
//   - "full": the whole image
func NamedRegion(width, height int, name string) (image.Rectangle, error) {
	midX, midY := width/2, height/2

	switch name {
	case "top-left":
		return image.Rect(0, 0, midX, midY), nil
	case "top-right":
		return image.Rect(midX, 0, width, midY), nil
	case "bottom-left":
		return image.Rect(0, midY, midX, height), nil
	case "bottom-right":
		return image.Rect(midX, midY, width, height), nil
	case "top-half":
		return image.Rect(0, 0, width, midY), nil
	case "bottom-half":
		return image.Rect(0, midY, width, height), nil
	case "left-half":
		return image.Rect(0, 0, midX, height), nil
	case "right-half":
		return image.Rect(midX, 0, width, height), nil
	case "center":
		qW, qH := width/4, height/4
		return image.Rect(qW, qH, width-qW, height-qH), nil
	case "full":
		return image.Rect(0, 0, width, height), nil
	}
	return image.Rectangle{}, fmt.Errorf("unknown region: %s", name)
}

// Zoom renders region of buf magnified by scale, with the brush ring drawn
// when opts.Cursor is set. The status label is not drawn.
//
// Parameters:
//   - region: Area to show, in image coordinates. Must lie within the image
//     and be non-empty.
//   - scale: Magnification in (0, MaxZoomScale]. Zero means 1. The scaled
//     view may be at most MaxZoomDimension pixels on each side.
//
// Only the region is copied out of buf; the live buffer is never modified.
func Zoom(buf *raster.Buffer, region image.Rectangle, scale float64, opts PreviewOptions) (*ZoomResult, error) {
	if !region.In(buf.Bounds()) {
		return nil, fmt.Errorf("zoom region (%d,%d)-(%d,%d) outside image bounds %dx%d: %w",
			region.Min.X, region.Min.Y, region.Max.X, region.Max.Y, buf.Width(), buf.Height(), raster.ErrOutOfBounds)
	}
	if region.Empty() {
		return nil, fmt.Errorf("invalid zoom region: x1 must be < x2, y1 must be < y2")
	}
	if scale == 0 {
		scale = 1.0
	}
	if scale < 0 || scale > MaxZoomScale {
		return nil, fmt.Errorf("invalid scale %g: must be in (0, %g]", scale, MaxZoomScale)
	}

	overlay := opts.Overlay
	if overlay == nil {
		overlay, _ = ParseColor(DefaultOverlayColor)
	}

	w := max(int(float64(region.Dx())*scale), 1)
	h := max(int(float64(region.Dy())*scale), 1)
	if w > MaxZoomDimension || h > MaxZoomDimension {
		return nil, fmt.Errorf("zoomed view %dx%d exceeds %dx%d: use a smaller region or scale",
			w, h, MaxZoomDimension, MaxZoomDimension)
	}

	view := imaging.Crop(buf.Image(), region)
	if c := opts.Cursor; c != nil && c.X >= 0 && c.Y >= 0 {
		paintRing(view, c.Sub(region.Min), opts.Radius, overlay)
	}

	if scale != 1.0 {
		// Nearest neighbor keeps individual pixels visible when magnifying.
		filter := imaging.Lanczos
		if scale > 1 {
			filter = imaging.NearestNeighbor
		}
		view = imaging.Resize(view, w, h, filter)
	}

	var out bytes.Buffer
	if err := png.Encode(&out, view); err != nil {
		return nil, fmt.Errorf("failed to encode zoomed view: %w", err)
	}

	return &ZoomResult{
		X1:          region.Min.X,
		Y1:          region.Min.Y,
		X2:          region.Max.X,
		Y2:          region.Max.Y,
		Width:       view.Rect.Dx(),
		Height:      view.Rect.Dy(),
		Scale:       scale,
		ImageBase64: base64.StdEncoding.EncodeToString(out.Bytes()),
		MimeType:    "image/png",
	}, nil
}
