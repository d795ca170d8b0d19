package FEM2D

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleKM(t *testing.T) {
	msh, err := NewTriMesh(9, 7, 1.0, 0.5)
	require.NoError(t, err)
	K, M, skipped := AssembleKM(msh)
	assert.Equal(t, 0, skipped)

	var (
		n  = msh.NumNodes()
		Kd = K.ToDense()
		Md = M.ToDense()
	)
	// Both matrices are symmetric
	{
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				assert.InDelta(t, Kd.At(i, j), Kd.At(j, i), 1e-12)
				assert.InDelta(t, Md.At(i, j), Md.At(j, i), 1e-12)
			}
		}
	}
	// The constant field is in the stiffness null space: row sums vanish
	{
		for i := 0; i < n; i++ {
			var sum float64
			for j := 0; j < n; j++ {
				sum += Kd.At(i, j)
			}
			assert.InDelta(t, 0.0, sum, 1e-11)
		}
	}
	// Mass entries sum to the domain area, and diagonals are positive
	{
		var total float64
		for i := 0; i < n; i++ {
			assert.Greater(t, Md.At(i, i), 0.0)
			assert.Greater(t, Kd.At(i, i), 0.0)
			for j := 0; j < n; j++ {
				total += Md.At(i, j)
			}
		}
		assert.InDelta(t, 0.5, total, 1e-12)
	}
	// Stiffness is positive semi-definite: x'Kx >= 0 for a few probe vectors
	{
		probes := [][]float64{make([]float64, n), make([]float64, n), make([]float64, n)}
		for i := 0; i < n; i++ {
			probes[0][i] = float64(i%5) - 2
			probes[1][i] = msh.Xy.At(i, 0)
			probes[2][i] = msh.Xy.At(i, 0) * msh.Xy.At(i, 1)
		}
		for _, x := range probes {
			var q float64
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					q += x[i] * Kd.At(i, j) * x[j]
				}
			}
			assert.GreaterOrEqual(t, q, -1e-10)
		}
	}
}

func TestTriplets(t *testing.T) {
	// Duplicate coordinates accumulate
	{
		tr := NewTriplets(3)
		tr.Add(0, 0, complex(1, 1))
		tr.Add(0, 0, complex(2, -1))
		tr.Add(2, 1, complex(0, 3))
		d := tr.ToDense()
		assert.Equal(t, complex(3, 0), d[0][0])
		assert.Equal(t, complex(0, 3), d[2][1])
	}
	// Sub negates the subtrahend
	{
		a := NewTriplets(2)
		a.Add(0, 0, 5)
		b := NewTriplets(2)
		b.Add(0, 0, complex(2, 1))
		d := a.Sub(b).ToDense()
		assert.Equal(t, complex(3, -1), d[0][0])
	}
	// ToBand round trip agrees with the dense expansion
	{
		tr := NewTriplets(4)
		tr.Add(0, 0, 2)
		tr.Add(1, 0, complex(0, 1))
		tr.Add(0, 1, -1)
		tr.Add(3, 3, 4)
		bd, err := tr.ToBand(1, 1)
		require.NoError(t, err)
		d := tr.ToDense()
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				assert.Equal(t, d[i][j], bd.At(i, j))
			}
		}
	}
	// Entries outside the band are rejected
	{
		tr := NewTriplets(4)
		tr.Add(0, 3, 1)
		_, err := tr.ToBand(1, 1)
		assert.Error(t, err)
	}
}

func TestAssembleHelmholtz(t *testing.T) {
	var (
		nx, ny = 9, 9
		x      = pmlTestAxis(nx, -0.5, 0.5)
		y      = pmlTestAxis(ny, -0.5, 0.5)
	)
	msh, err := NewQuadMesh(x, y)
	require.NoError(t, err)

	vel := make(VelocityField, nx)
	for i := range vel {
		vel[i] = make([]float64, ny)
		for j := range vel[i] {
			vel[i][j] = 1.5
		}
	}
	var (
		frequency = 5.0
		omega     = 2 * 3.141592653589793 * frequency
		pml       = NewPMLProfile(0, 0, 1.5, frequency, x, y)
		source    = func(xp, yp float64) complex128 { return 1 }
	)
	K, M, F, skipped := AssembleHelmholtz(msh, omega, vel, source, pml)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, msh.NumNodes(), len(F))

	// Without an absorbing layer the assembly is purely real
	{
		for _, v := range K.Vals {
			assert.Equal(t, 0.0, imag(v))
		}
		for _, v := range M.Vals {
			assert.Equal(t, 0.0, imag(v))
		}
	}
	// K and M are symmetric for a symmetric material model
	{
		Kd := K.ToDense()
		Md := M.ToDense()
		n := msh.NumNodes()
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				assert.InDelta(t, 0, cmplx.Abs(Kd[i][j]-Kd[j][i]), 1e-12)
				assert.InDelta(t, 0, cmplx.Abs(Md[i][j]-Md[j][i]), 1e-12)
			}
		}
	}
	// The unit source integrates to the domain area
	{
		var total complex128
		for _, f := range F {
			total += f
		}
		assert.InDelta(t, 1.0, real(total), 1e-12)
		assert.InDelta(t, 0.0, imag(total), 1e-12)
	}
	// Mass scales with k^2: doubling omega quadruples the mass entries
	{
		_, M2, _, _ := AssembleHelmholtz(msh, 2*omega, vel, source, pml)
		d1 := M.ToDense()
		d2 := M2.ToDense()
		assert.InDelta(t, 4*real(d1[0][0]), real(d2[0][0]), 1e-12)
	}
	// An absorbing layer introduces complex entries near the edges only
	{
		pmlOn := NewPMLProfile(2, 2*(x[1]-x[0]), 1.5, frequency, x, y)
		Kp, Mp, _, _ := AssembleHelmholtz(msh, omega, vel, source, pmlOn)
		Kd := Kp.ToDense()
		Md := Mp.ToDense()
		// An interior node away from the layer keeps real rows
		mid := (ny/2)*nx + nx/2
		for j := range Kd[mid] {
			assert.InDelta(t, 0.0, imag(Kd[mid][j]), 1e-12)
			assert.InDelta(t, 0.0, imag(Md[mid][j]), 1e-12)
		}
		// The corner mass entry picks up loss through sx*sy; the corner
		// stiffness entry stays real because sx = sy exactly there and the
		// sy/sx, sx/sy ratios cancel
		assert.NotEqual(t, 0.0, imag(Md[0][0]))
		assert.InDelta(t, 0.0, imag(Kd[0][0]), 1e-12)
		// Where only one axis is stretched the stiffness turns complex too
		edge := (ny/2)*nx // left edge, mid-height
		assert.NotEqual(t, 0.0, imag(Kd[edge][edge]))
	}
}
