package FEM2D

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShapeFunctions(t *testing.T) {
	// Partition of unity across the reference domains
	{
		samples := [][2]float64{{-1, -1}, {1, 1}, {0, 0}, {0.3, -0.7}, {-0.95, 0.2}}
		for _, s := range samples {
			N := Q1ShapeFunctions(s[0], s[1])
			sum := N[0] + N[1] + N[2] + N[3]
			assert.InDelta(t, 1.0, sum, 1e-12)
		}
		triSamples := [][2]float64{{0, 0}, {1, 0}, {0, 1}, {0.25, 0.25}, {0.1, 0.6}}
		for _, s := range triSamples {
			N := P1ShapeFunctions(s[0], s[1])
			assert.InDelta(t, 1.0, N[0]+N[1]+N[2], 1e-12)
		}
	}
	// Kronecker-delta property at the reference nodes
	{
		for k, node := range Q1Nodes {
			N := Q1ShapeFunctions(node[0], node[1])
			for i := 0; i < 4; i++ {
				expected := 0.0
				if i == k {
					expected = 1.0
				}
				assert.InDelta(t, expected, N[i], 1e-12)
			}
		}
		for k, node := range P1Nodes {
			N := P1ShapeFunctions(node[0], node[1])
			for i := 0; i < 3; i++ {
				expected := 0.0
				if i == k {
					expected = 1.0
				}
				assert.InDelta(t, expected, N[i], 1e-12)
			}
		}
	}
	// Derivatives are consistent with the shape functions (central difference)
	{
		xi, eta := 0.37, -0.21
		dNdXi, dNdEta := Q1ShapeDerivatives(xi, eta)
		h := 1e-6
		Np := Q1ShapeFunctions(xi+h, eta)
		Nm := Q1ShapeFunctions(xi-h, eta)
		for k := 0; k < 4; k++ {
			assert.InDelta(t, (Np[k]-Nm[k])/(2*h), dNdXi[k], 1e-8)
		}
		Np = Q1ShapeFunctions(xi, eta+h)
		Nm = Q1ShapeFunctions(xi, eta-h)
		for k := 0; k < 4; k++ {
			assert.InDelta(t, (Np[k]-Nm[k])/(2*h), dNdEta[k], 1e-8)
		}
	}
}

func TestQuadratureAndJacobian(t *testing.T) {
	// The 2x2 Gauss weights integrate the unit function to the reference area
	{
		_, weights := GaussPoints2x2()
		sum := 0.0
		for _, w := range weights {
			sum += w
		}
		assert.InDelta(t, 4.0, sum, 1e-15)
	}
	// Unit square [0,1]^2 maps from [-1,1]^2 with detJ = 1/4
	{
		xe := []float64{0, 1, 1, 0}
		ye := []float64{0, 0, 1, 1}
		dNdXi, dNdEta := Q1ShapeDerivatives(0, 0)
		J, Jinv, detJ := Jacobian2D(dNdXi[:], dNdEta[:], xe, ye)
		assert.InDelta(t, 0.25, detJ, 1e-14)
		// J * Jinv = I
		assert.InDelta(t, 1.0, J[0][0]*Jinv[0][0]+J[0][1]*Jinv[1][0], 1e-14)
		assert.InDelta(t, 0.0, J[0][0]*Jinv[0][1]+J[0][1]*Jinv[1][1], 1e-14)
	}
	// Collapsed element reports a vanishing determinant
	{
		xe := []float64{0, 1, 1, 0}
		ye := []float64{0, 0, 0, 0}
		dNdXi, dNdEta := Q1ShapeDerivatives(0, 0)
		_, _, detJ := Jacobian2D(dNdXi[:], dNdEta[:], xe, ye)
		assert.InDelta(t, 0.0, detJ, 1e-14)
	}
}
