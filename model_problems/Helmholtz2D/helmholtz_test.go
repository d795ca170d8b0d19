package Helmholtz2D

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocem/gocem/FEM2D"
)

func TestDomain(t *testing.T) {
	d, err := NewDomain(41, 41, [4]float64{-0.5, 0.5, -0.5, 0.5})
	require.NoError(t, err)
	// Without a layer the extended grid is the physical grid
	assert.Equal(t, 41, d.Nx)
	assert.Equal(t, 41, d.Ny)
	assert.Equal(t, d.MainExtent, d.Extent)

	d.ApplyPML(10)
	assert.Equal(t, 61, d.Nx)
	assert.Equal(t, 61, d.Ny)
	assert.InDelta(t, 0.025, d.Dx, 1e-12)
	// Layer width is the physical grid spacing times the node count
	assert.InDelta(t, 0.25, d.LPML, 1e-12)
	assert.InDelta(t, -0.75, d.Extent[0], 1e-12)
	assert.InDelta(t, 0.75, d.Extent[1], 1e-12)
	assert.Equal(t, d.Nx*d.Ny, d.NumNodes())

	_, err = NewDomain(1, 41, [4]float64{-0.5, 0.5, -0.5, 0.5})
	assert.ErrorIs(t, err, FEM2D.ErrInvalidMeshSize)

	_, err = NewDomain(41, 41, [4]float64{0.5, -0.5, -0.5, 0.5})
	assert.Error(t, err)
}

func TestVelocityModels(t *testing.T) {
	d, err := NewDomain(11, 11, [4]float64{-0.5, 0.5, -0.5, 0.5})
	require.NoError(t, err)

	// Uniform fill
	{
		vel, err := UniformVelocity(d, 1.5)
		require.NoError(t, err)
		require.Len(t, vel, d.Nx)
		for i := range vel {
			for j := range vel[i] {
				assert.Equal(t, 1.5, vel[i][j])
			}
		}
		_, err = UniformVelocity(d, -1)
		assert.Error(t, err)
	}
	// Two-medium split at a horizontal interface
	{
		vel, err := LayeredVelocity(d, 2.0, 1.5, 0.0)
		require.NoError(t, err)
		for j, y := range d.Y {
			want := 1.5
			if y > 0 {
				want = 2.0
			}
			assert.Equal(t, want, vel[0][j])
		}
		_, err = LayeredVelocity(d, 0, 1.5, 0)
		assert.Error(t, err)
	}
}

func TestGaussianSource(t *testing.T) {
	src := GaussianSource{Amplitude: 0.02, X0: 0.1, Y0: -0.2, Sigma: 0.05}
	// Peaks at the center with the given amplitude
	assert.InDelta(t, 0.02, real(src.Eval(0.1, -0.2)), 1e-14)
	assert.InDelta(t, 0.0, imag(src.Eval(0.1, -0.2)), 1e-14)
	// Decays away from the center
	assert.Less(t, real(src.Eval(0.3, -0.2)), real(src.Eval(0.15, -0.2)))
	// A phase rotates the value into the complex plane
	rotated := GaussianSource{Amplitude: 1, Sigma: 0.05, Phase: 1.5707963267948966}
	assert.InDelta(t, 1.0, imag(rotated.Eval(0, 0)), 1e-12)
}

func TestSolveUniformMedium(t *testing.T) {
	d, err := NewDomain(41, 41, [4]float64{-0.5, 0.5, -0.5, 0.5})
	require.NoError(t, err)
	d.ApplyPML(10)

	vel, err := UniformVelocity(d, 1.5)
	require.NoError(t, err)
	src := GaussianSource{Amplitude: 0.02, X0: 0, Y0: 0, Sigma: 0.05}

	sol, err := Solve(d, 5.0, vel, src.Eval, 1.5)
	require.NoError(t, err)
	assert.Equal(t, d.NumNodes(), len(sol.U))
	assert.Equal(t, 0, sol.SkippedElem)

	u := sol.Grid()
	require.Len(t, u, d.Nx)
	require.Len(t, u[0], d.Ny)

	var (
		mid   = d.Ny / 2
		inner = d.Nx - d.NBL - 1 // last physical node along +x
	)
	// The field decays through the absorbing layer along the center row
	{
		innerMag := cmplx.Abs(u[inner][mid])
		outerMag := cmplx.Abs(u[d.Nx-1][mid])
		assert.Greater(t, innerMag, 0.0)
		assert.Less(t, outerMag, 0.25*innerMag)
		// Decay is monotone into the layer, up to small interference ripple
		for i := inner; i < d.Nx-1; i++ {
			assert.LessOrEqual(t, cmplx.Abs(u[i+1][mid]), 1.05*cmplx.Abs(u[i][mid]))
		}
	}
	// Source symmetry: a centered pulse in a uniform medium gives a
	// left-right symmetric magnitude field across the physical region
	{
		for off := 1; off < d.Nx/2-d.NBL; off++ {
			l := cmplx.Abs(u[d.Nx/2-off][mid])
			r := cmplx.Abs(u[d.Nx/2+off][mid])
			assert.InEpsilon(t, l, r, 0.05)
		}
	}
	// The strongest response is near the source, not in the layer
	{
		var iMax int
		var best float64
		for i := 0; i < d.Nx; i++ {
			if m := cmplx.Abs(u[i][mid]); m > best {
				best = m
				iMax = i
			}
		}
		assert.GreaterOrEqual(t, iMax, d.NBL)
		assert.LessOrEqual(t, iMax, d.Nx-d.NBL-1)
	}
}

func TestSolveValidation(t *testing.T) {
	d, err := NewDomain(11, 11, [4]float64{-0.5, 0.5, -0.5, 0.5})
	require.NoError(t, err)
	vel, err := UniformVelocity(d, 1.5)
	require.NoError(t, err)
	src := GaussianSource{Amplitude: 1, Sigma: 0.05}

	// Non-positive frequency
	{
		_, err := Solve(d, 0, vel, src.Eval, 1.5)
		assert.Error(t, err)
	}
	// Velocity shape mismatch after the grid is extended
	{
		d.ApplyPML(4)
		_, err := Solve(d, 5.0, vel, src.Eval, 1.5)
		assert.Error(t, err)
	}
}
