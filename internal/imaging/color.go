package imaging

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/blur-faces-mcp/internal/raster"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// RGBAColor represents a non-premultiplied RGBA color with 8-bit components.
//
// The alpha component represents opacity:
//   - 0 = fully transparent
//   - 255 = fully opaque
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	X    int       `json:"x"`    // X coordinate that was sampled
	Y    int       `json:"y"`    // Y coordinate that was sampled
	Hex  string    `json:"hex"`  // Hex format "#RRGGBB" (no alpha)
	RGB  RGBColor  `json:"rgb"`  // RGB components
	RGBA RGBAColor `json:"rgba"` // RGBA components with alpha
	HSL  HSLColor  `json:"hsl"`  // HSL representation
}

// SampleColor returns the color of the live buffer at (x, y).
//
// Clients use it to check what a blur did to a given pixel.
//
// # Errors
//
//   - Wraps raster.ErrOutOfBounds if (x, y) is outside the image
func SampleColor(buf *raster.Buffer, x, y int) (*ColorResult, error) {
	px, err := buf.At(x, y)
	if err != nil {
		return nil, err
	}

	// HSL is computed on the straight RGB values; alpha is reported separately.
	c := colorful.Color{R: float64(px.R) / 255, G: float64(px.G) / 255, B: float64(px.B) / 255}
	h, s, l := c.Hsl()

	return &ColorResult{
		X:    x,
		Y:    y,
		Hex:  strings.ToUpper(c.Hex()),
		RGB:  RGBColor{R: px.R, G: px.G, B: px.B},
		RGBA: RGBAColor{R: px.R, G: px.G, B: px.B, A: px.A},
		HSL: HSLColor{
			H: int(h),
			S: int(s * 100),
			L: int(l * 100),
		},
	}, nil
}
