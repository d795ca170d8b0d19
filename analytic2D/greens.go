package analytic2D

import (
	"math"
	"math/cmplx"
)

// WaveNumber converts a frequency and wave speed to k = 2 pi f / v.
func WaveNumber(frequency, velocity float64) float64 {
	return 2 * math.Pi * frequency / velocity
}

// FreeSpaceGreens is the point-source Helmholtz response
// psi(r) = e^{i k r} / (4 pi r), with r clamped away from the singularity
// so the source node itself stays finite.
func FreeSpaceGreens(k, x, y, x0, y0 float64) complex128 {
	r := math.Hypot(x-x0, y-y0)
	if r < 1e-10 {
		r = 1e-10
	}
	return cmplx.Exp(complex(0, k*r)) / complex(4*math.Pi*r, 0)
}
