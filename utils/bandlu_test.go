package utils

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplexBand(t *testing.T) {
	// Factor/solve round trip on a small banded complex system
	{
		n, kl, ku := 6, 2, 2
		A := NewComplexBand(n, kl, ku)
		for i := 0; i < n; i++ {
			A.Set(i, i, complex(4, 1))
			if i > 0 {
				A.Set(i, i-1, complex(-1, 0.2))
				A.Set(i-1, i, complex(-1, -0.3))
			}
			if i > 1 {
				A.Set(i, i-2, complex(0.5, 0))
				A.Set(i-2, i, complex(0, 0.5))
			}
		}
		xKnown := make([]complex128, n)
		for i := range xKnown {
			xKnown[i] = complex(float64(i+1), float64(n-i))
		}
		b := A.MulVec(xKnown)

		require.NoError(t, A.Factor())
		x, err := A.Solve(b)
		require.NoError(t, err)
		for i := range x {
			assert.InDelta(t, 0, cmplx.Abs(x[i]-xKnown[i]), 1e-12)
		}
	}
	// Accumulation via Add and the band window
	{
		A := NewComplexBand(4, 1, 1)
		A.Add(1, 1, complex(1, 0))
		A.Add(1, 1, complex(2, 3))
		assert.Equal(t, complex(3, 3), A.At(1, 1))
		assert.Equal(t, complex(0, 0), A.At(0, 3)) // outside the band
	}
	// Singular pivot detection
	{
		A := NewComplexBand(3, 1, 1)
		A.Set(0, 0, 1)
		A.Set(1, 1, 0) // whole pivot column zero
		A.Set(2, 2, 1)
		err := A.Factor()
		require.Error(t, err)
		var sing *SingularSystemError
		assert.ErrorAs(t, err, &sing)
		assert.Equal(t, 1, sing.Row)
	}
	// Solve before Factor is an error
	{
		A := NewComplexBand(2, 1, 1)
		A.Set(0, 0, 1)
		A.Set(1, 1, 1)
		_, err := A.Solve([]complex128{1, 1})
		assert.Error(t, err)
	}
	// Pivoting: a zero diagonal with a nonzero subdiagonal must still factor
	{
		A := NewComplexBand(2, 1, 1)
		A.Set(0, 0, 0)
		A.Set(0, 1, complex(1, 0))
		A.Set(1, 0, complex(2, 0))
		A.Set(1, 1, complex(1, 0))
		require.NoError(t, A.Factor())
		x, err := A.Solve([]complex128{complex(3, 0), complex(4, 0)})
		require.NoError(t, err)
		// 0*x0 + 1*x1 = 3; 2*x0 + 1*x1 = 4
		assert.InDelta(t, 0.5, real(x[0]), 1e-13)
		assert.InDelta(t, 3.0, real(x[1]), 1e-13)
	}
}
