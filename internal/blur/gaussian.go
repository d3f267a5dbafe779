package blur

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/disintegration/imaging"
)

// SigmaForKernel returns the Gaussian standard deviation used for a kernel
// size: kernelSize / 3.
func SigmaForKernel(kernelSize int) float64 {
	return float64(kernelSize) / 3.0
}

// Kernel1D builds the normalized horizontal Gaussian kernel for kernelSize.
//
// kernelSize is coerced to odd with kernelSize|1 so the kernel has a center
// tap. Weights are exp(-x²/(2σ²)) for x in [-k/2, k/2] with σ = kernelSize/3
// computed from the coerced size, then normalized to sum to 1.
func Kernel1D(kernelSize int) convolution.Matrix {
	size := kernelSize | 1
	sigma := SigmaForKernel(size)
	sfactor := -0.5 / (sigma * sigma)
	half := size / 2

	k := convolution.NewKernel(size, 1)
	for i := 0; i < size; i++ {
		x := float64(i - half)
		k.Matrix[i] = math.Exp(sfactor * x * x)
	}
	return k.Normalized()
}

// Gaussian returns a blurred copy of region with the same dimensions.
//
// The blur is separable: one horizontal pass with Kernel1D(kernelSize) and one
// vertical pass with its transpose.
//
// # Border Handling
//
// Pixels past the region edge are taken from the nearest edge pixel (clamped
// extension). Only the region itself is sampled, never the surrounding image,
// so the result depends on nothing but the region and kernelSize.
//
// # Rounding
//
// Each pass rounds channel values to the nearest integer. A uniform region
// therefore blurs to exactly the same uniform color.
//
// # Alpha
//
// Color channels are blurred as straight (non-premultiplied) values and alpha
// is carried over from the source unchanged, so a pixel keeps its own color
// and opacity wherever its neighborhood has the same color. A kernelSize
// below 3 returns an unmodified copy.
func Gaussian(region image.Image, kernelSize int) *image.NRGBA {
	if kernelSize|1 < 3 || region.Bounds().Empty() {
		return imaging.Clone(region)
	}

	k := Kernel1D(kernelSize)
	// Bias 0.5 turns bild's truncating uint8 conversion into round-to-nearest.
	opts := convolution.Options{Bias: 0.5, Wrap: false, KeepAlpha: true}

	// bild only reads and writes Pix bytes when given an *image.RGBA, so the
	// NRGBA bytes are relabeled rather than converted. Converting would
	// premultiply the colors while KeepAlpha keeps the straight alpha.
	straight := imaging.Clone(region)
	src := &image.RGBA{Pix: straight.Pix, Stride: straight.Stride, Rect: straight.Rect}
	horizontal := convolution.Convolve(src, k, &opts)
	vertical := convolution.Convolve(horizontal, k.Transposed(), &opts)

	return &image.NRGBA{Pix: vertical.Pix, Stride: vertical.Stride, Rect: vertical.Rect}
}
