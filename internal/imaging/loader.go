package imaging

import (
	"errors"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/blur-faces-mcp/internal/raster"
)

// ErrLoad marks every failure to turn a file into an editable buffer.
// A session is never created when loading fails.
var ErrLoad = errors.New("failed to load image")

// ImageInfo contains metadata about a loaded image file.
//
// This struct lets a client show what it is editing without touching pixels.
type ImageInfo struct {
	// Path is the file the image was loaded from.
	Path string `json:"path"`

	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is derived from the file extension: "png", "jpeg", "gif", "tiff",
	// "bmp", or "unknown".
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel of the decoded file:
	// "8-bit" or "16-bit". Editing always happens at 8 bits per channel.
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the decoded image carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Load decodes an image file into a new editable buffer.
//
// Parameters:
//   - path: Absolute or relative file path. Supported formats are PNG, JPEG,
//     GIF, TIFF and BMP.
//
// Returns:
//   - *raster.Buffer: The decoded image as an 8-bit NRGBA buffer.
//   - *ImageInfo: Metadata about the file.
//   - error: Wraps ErrLoad if the file is missing, is a directory, or cannot
//     be decoded.
//
// JPEG files are rotated according to their EXIF orientation tag so the
// buffer matches what image viewers show.
func Load(path string) (*raster.Buffer, *ImageInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: file '%s' not found: %v", ErrLoad, path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: '%s' is a directory", ErrLoad, path)
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: could not decode '%s': %v", ErrLoad, path, err)
	}

	buf := raster.FromImage(img)
	if buf.Width() == 0 || buf.Height() == 0 {
		return nil, nil, fmt.Errorf("%w: '%s' has no pixels", ErrLoad, path)
	}

	hasAlpha, colorDepth := describeColor(img)

	return buf, &ImageInfo{
		Path:          path,
		Width:         buf.Width(),
		Height:        buf.Height(),
		Format:        formatName(path),
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}

// describeColor reports alpha presence and channel depth from the decoded type.
//
//   - *image.RGBA64, *image.NRGBA64 -> alpha, "16-bit"
//   - *image.RGBA, *image.NRGBA     -> alpha, "8-bit"
//   - *image.Gray16                 -> "16-bit"
//   - everything else               -> "8-bit"
func describeColor(img image.Image) (bool, string) {
	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		return true, "8-bit"
	case *image.RGBA64, *image.NRGBA64:
		return true, "16-bit"
	case *image.Gray16:
		return false, "16-bit"
	}
	return false, "8-bit"
}

// formatName returns the lower-case format implied by the path's extension.
func formatName(path string) string {
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return "unknown"
	}
	return strings.ToLower(f.String())
}
