package Helmholtz2D

import (
	"math"
	"math/cmplx"
)

// GaussianSource is a localized volumetric pulse,
// f(x,y) = A exp(-r^2 / 2 sigma^2) exp(i phase), centered at (X0, Y0).
type GaussianSource struct {
	Amplitude float64
	X0, Y0    float64
	Sigma     float64
	Phase     float64
}

func (s GaussianSource) Eval(x, y float64) complex128 {
	r2 := (x-s.X0)*(x-s.X0) + (y-s.Y0)*(y-s.Y0)
	return complex(s.Amplitude*math.Exp(-r2/(2*s.Sigma*s.Sigma)), 0) *
		cmplx.Exp(complex(0, s.Phase))
}
