// Package analytic2D provides closed-form reference solutions used to
// validate the FEM solvers: the Mie series for scattering off a perfectly
// conducting cylinder and the free-space Helmholtz Green function.
package analytic2D

import (
	"math"
	"math/cmplx"
)

// hankel2 is the Hankel function of the second kind, Jn - i*Yn, the outgoing
// cylindrical wave under the e^{+i omega t} convention.
func hankel2(n int, x float64) complex128 {
	return complex(math.Jn(n, x), -math.Yn(n, x))
}

// MieTruncation is the series truncation order for a cylinder of size
// parameter k0*a: enough terms that the remainder is below float rounding
// for the field magnitudes of interest.
func MieTruncation(k0a float64) int {
	return int(math.Ceil(k0a)) + 10
}

// IncidentPlaneWave is the illuminating field e0 e^{-i k0 x}.
func IncidentPlaneWave(k0, e0, x float64) complex128 {
	return complex(e0, 0) * cmplx.Exp(complex(0, -k0*x))
}

// MieScatteredField evaluates the field scattered by a PEC cylinder of
// radius a illuminated by a plane wave of amplitude e0 traveling in +x:
//
//	Es = sum_n -e0 i^-n J_n(k0 a)/H2_n(k0 a) H2_n(k0 r) e^{i n phi}
//
// The expansion coefficients cancel the Jacobi-Anger terms of the incident
// wave on the cylinder surface, which is the PEC condition Ez = 0 at r = a.
func MieScatteredField(k0, a, e0, r, phi float64) complex128 {
	if r < a {
		return 0
	}
	var (
		nMax = MieTruncation(k0 * a)
		es   complex128
	)
	for n := -nMax; n <= nMax; n++ {
		// i^-n cycles through 1, -i, -1, i.
		iPow := cmplx.Exp(complex(0, -float64(n)*math.Pi/2))
		coeff := complex(-e0, 0) * iPow * complex(math.Jn(n, k0*a), 0) / hankel2(n, k0*a)
		es += coeff * hankel2(n, k0*r) * cmplx.Exp(complex(0, float64(n)*phi))
	}
	return es
}

// MieTotalField is the incident plus scattered field, identically zero
// inside the conductor.
func MieTotalField(k0, a, e0, r, phi float64) complex128 {
	if r < a {
		return 0
	}
	x := r * math.Cos(phi)
	return IncidentPlaneWave(k0, e0, x) + MieScatteredField(k0, a, e0, r, phi)
}
