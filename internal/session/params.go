package session

// Brush parameter bounds. Clients rely on these exact values.
const (
	MinRadius     = 10
	MaxRadius     = 300
	RadiusStep    = 10
	DefaultRadius = 50

	MinKernelSize     = 11
	MaxKernelSize     = 199
	KernelStep        = 10
	DefaultKernelSize = 51
)

// Params holds the brush settings of a session.
type Params struct {
	// Radius is the blur disc radius in pixels, in [MinRadius, MaxRadius].
	Radius int `json:"radius"`

	// KernelSize is the stored blur strength, in [MinKernelSize, MaxKernelSize].
	// It may be even; EffectiveKernelSize is what the blur actually uses.
	KernelSize int `json:"kernel_size"`
}

// DefaultParams returns radius 50 and kernel size 51.
func DefaultParams() Params {
	return Params{Radius: DefaultRadius, KernelSize: DefaultKernelSize}
}

// EffectiveKernelSize returns KernelSize forced odd (KernelSize | 1).
func (p Params) EffectiveKernelSize() int {
	return p.KernelSize | 1
}

// stepRadius moves the radius by delta and clamps it.
func (p Params) stepRadius(delta int) Params {
	p.Radius = clamp(p.Radius+delta, MinRadius, MaxRadius)
	return p
}

// stepKernel moves the kernel size by delta and clamps it.
func (p Params) stepKernel(delta int) Params {
	p.KernelSize = clamp(p.KernelSize+delta, MinKernelSize, MaxKernelSize)
	return p
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
