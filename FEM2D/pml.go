package FEM2D

import (
	"math"
)

// PMLProfile holds the absorbing-layer geometry of an extended domain and
// evaluates the complex coordinate-stretching factors per grid index. The
// stretching is the standard anisotropic approximation: each axis is damped
// independently with a quadratic sigma profile, and the assembler combines
// the two factors as sy/sx, sx/sy and sx*sy terms.
type PMLProfile struct {
	NBL       int     // node count of each absorbing layer
	LPML      float64 // physical layer width, grid spacing times NBL
	Alpha     float64 // attenuation strength
	Frequency float64
	X, Y      []float64 // extended-domain axis coordinates
}

func NewPMLProfile(nbl int, lpml, alpha, frequency float64, xArray, yArray []float64) *PMLProfile {
	return &PMLProfile{
		NBL:       nbl,
		LPML:      lpml,
		Alpha:     alpha,
		Frequency: frequency,
		X:         xArray,
		Y:         yArray,
	}
}

func (p *PMLProfile) sigma(coord []float64, idx int) float64 {
	var (
		n   = len(coord)
		nbl = p.NBL
	)
	if nbl <= 0 {
		return 0
	}
	// Indices at nbl and n-nbl-1 are the interior boundaries and must give
	// sigma = 0 for continuity with the interior.
	switch {
	case idx < nbl:
		d := (math.Abs(coord[idx]) - math.Abs(coord[nbl])) / p.LPML
		return 2 * math.Pi * p.Alpha * p.Frequency * d * d
	case idx > n-nbl-1:
		d := (math.Abs(coord[idx]) - math.Abs(coord[n-nbl-1])) / p.LPML
		return 2 * math.Pi * p.Alpha * p.Frequency * d * d
	default:
		return 0
	}
}

func (p *PMLProfile) SigmaX(i int) float64 { return p.sigma(p.X, i) }
func (p *PMLProfile) SigmaY(j int) float64 { return p.sigma(p.Y, j) }

// Stretch returns the complex stretching pair (sx, sy) at grid index (i,j):
// s = 1 - i*sigma/omega, exactly (1,1) throughout the interior.
func (p *PMLProfile) Stretch(i, j int) (sx, sy complex128) {
	omega := 2 * math.Pi * p.Frequency
	sx = complex(1, -p.SigmaX(i)/omega)
	sy = complex(1, -p.SigmaY(j)/omega)
	return
}
