package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSparse(t *testing.T) {
	// Scatter-accumulate into DOK, then freeze as CSR
	{
		D := NewDOK(3, 3)
		D.Add(0, 0, 1)
		D.Add(0, 0, 2)
		D.Add(2, 1, -4)
		C := D.ToCSR()
		assert.Equal(t, 3.0, C.At(0, 0))
		assert.Equal(t, -4.0, C.At(2, 1))
		assert.Equal(t, 0.0, C.At(1, 1))
		assert.Equal(t, 2, C.NNZ())
	}
	// Dense expansion preserves entries
	{
		D := NewDOK(2, 2)
		D.Add(0, 1, 5)
		R := D.ToCSR().ToDense()
		assert.Equal(t, 5.0, R.At(0, 1))
		assert.Equal(t, 0.0, R.At(1, 0))
	}
}

func TestIndex(t *testing.T) {
	I := NewRange(2, 5)
	assert.Equal(t, Index{2, 3, 4, 5}, I)
	assert.True(t, I.Contains(4))
	assert.False(t, I.Contains(6))

	inv := I.InverseMap(7)
	assert.Equal(t, -1, inv[0])
	assert.Equal(t, 0, inv[2])
	assert.Equal(t, 3, inv[5])
}
