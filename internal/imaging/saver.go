package imaging

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/blur-faces-mcp/internal/raster"
)

// DefaultSuffix is inserted before the extension of saved files.
const DefaultSuffix = "_blurred"

// OutputPath derives the save path by inserting suffix before the extension.
//
//	OutputPath("photos/team.jpg", "_blurred") == "photos/team_blurred.jpg"
//	OutputPath("scan", "_blurred")            == "scan_blurred"
//
// An empty suffix falls back to DefaultSuffix so the input is never overwritten.
func OutputPath(input, suffix string) string {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(input, ext)
	return base + suffix + ext
}

// Save encodes buf to path. The format follows the path's extension; JPEG is
// written at quality 95.
//
// # Errors
//
//   - Returns error if the extension is not a supported format
//   - Returns error if the file cannot be created or written
func Save(buf *raster.Buffer, path string) error {
	if err := imaging.Save(buf.Image(), path, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("failed to save image to %s: %w", path, err)
	}
	return nil
}
