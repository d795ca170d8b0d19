package Waveguide2D

import "math"

// KcRect is the analytic cutoff wavenumber of mode (m,n) in a WxH rectangle.
func KcRect(m, n int, W, H float64) float64 {
	return math.Sqrt(math.Pow(float64(m)*math.Pi/W, 2) + math.Pow(float64(n)*math.Pi/H, 2))
}

// HzTE is the longitudinal magnetic field of mode TEmn,
// Hz = cos(m pi x / W) cos(n pi y / H), valid for m,n >= 0 (not both zero).
func HzTE(m, n int, x, y, W, H float64) float64 {
	return math.Cos(float64(m)*math.Pi*x/W) * math.Cos(float64(n)*math.Pi*y/H)
}

// EzTM is the longitudinal electric field of mode TMmn,
// Ez = sin(m pi x / W) sin(n pi y / H), valid for m,n >= 1.
func EzTM(m, n int, x, y, W, H float64) float64 {
	return math.Sin(float64(m)*math.Pi*x/W) * math.Sin(float64(n)*math.Pi*y/H)
}
