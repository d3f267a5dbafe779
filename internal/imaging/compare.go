package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/blur-faces-mcp/internal/raster"
)

// changeThreshold is the mean per-channel difference above which a pixel
// counts as visibly changed.
const changeThreshold = 10

// CompareResult describes how much a region differs between two buffers.
type CompareResult struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`

	TotalPixels int `json:"total_pixels"`

	// PixelsChanged counts pixels with any channel difference.
	PixelsChanged int `json:"pixels_changed"`

	// PixelsDifferent counts pixels whose mean RGB difference exceeds 10.
	PixelsDifferent int `json:"pixels_different"`

	// SimilarityScore is 1 - PixelsDifferent/TotalPixels, rounded to 3 places.
	SimilarityScore float64 `json:"similarity_score"`

	// AverageColorDiff is the mean RGB difference per pixel, rounded to 2 places.
	AverageColorDiff float64 `json:"average_color_diff"`

	// MaxChannelDiff is the largest single-channel difference found.
	MaxChannelDiff int `json:"max_channel_diff"`
}

// CompareRegion compares the same region of two equally sized buffers.
// It is used to check how strongly an area was blurred relative to the
// image as loaded.
//
// # Errors
//
//   - raster.ErrDimensionMismatch if the buffers differ in size
//   - raster.ErrOutOfBounds if region is not inside the buffers
func CompareRegion(before, after *raster.Buffer, region image.Rectangle) (*CompareResult, error) {
	if before.Width() != after.Width() || before.Height() != after.Height() {
		return nil, fmt.Errorf("compare %dx%d with %dx%d: %w",
			before.Width(), before.Height(), after.Width(), after.Height(), raster.ErrDimensionMismatch)
	}
	if region.Empty() || !region.In(before.Bounds()) {
		return nil, fmt.Errorf("compare region (%d,%d)-(%d,%d): %w",
			region.Min.X, region.Min.Y, region.Max.X, region.Max.Y, raster.ErrOutOfBounds)
	}

	a, b := before.Image(), after.Image()
	res := &CompareResult{
		X1:          region.Min.X,
		Y1:          region.Min.Y,
		X2:          region.Max.X,
		Y2:          region.Max.Y,
		TotalPixels: region.Dx() * region.Dy(),
	}

	var totalDiff float64
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			ca, cb := a.NRGBAAt(x, y), b.NRGBAAt(x, y)

			dr := absDiff(ca.R, cb.R)
			dg := absDiff(ca.G, cb.G)
			db := absDiff(ca.B, cb.B)
			da := absDiff(ca.A, cb.A)

			if dr|dg|db|da != 0 {
				res.PixelsChanged++
			}
			for _, d := range [...]int{dr, dg, db, da} {
				if d > res.MaxChannelDiff {
					res.MaxChannelDiff = d
				}
			}

			diff := float64(dr+dg+db) / 3.0
			totalDiff += diff
			if diff > changeThreshold {
				res.PixelsDifferent++
			}
		}
	}

	similarity := 1.0 - float64(res.PixelsDifferent)/float64(res.TotalPixels)
	res.SimilarityScore = math.Round(similarity*1000) / 1000
	res.AverageColorDiff = math.Round(totalDiff/float64(res.TotalPixels)*100) / 100

	return res, nil
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
