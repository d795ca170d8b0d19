package FEM2D

import "math"

/*
Reference elements for the two interpolation schemes used here:

	Q1 - 4-node bilinear quadrilateral on [-1,1]x[-1,1]
	P1 - 3-node linear triangle with unit legs, (xi,eta) in the simplex

Both are stateless: the functions below are evaluated once per quadrature
point per element during assembly. They satisfy partition of unity
(sum N_k = 1) and the Kronecker-delta property at the reference nodes.
*/

// Q1 reference node positions, CCW from the lower-left corner.
var Q1Nodes = [4][2]float64{
	{-1, -1},
	{1, -1},
	{1, 1},
	{-1, 1},
}

func Q1ShapeFunctions(xi, eta float64) (N [4]float64) {
	N[0] = 0.25 * (1 - xi) * (1 - eta)
	N[1] = 0.25 * (1 + xi) * (1 - eta)
	N[2] = 0.25 * (1 + xi) * (1 + eta)
	N[3] = 0.25 * (1 - xi) * (1 + eta)
	return
}

func Q1ShapeDerivatives(xi, eta float64) (dNdXi, dNdEta [4]float64) {
	dNdXi[0] = -0.25 * (1 - eta)
	dNdXi[1] = 0.25 * (1 - eta)
	dNdXi[2] = 0.25 * (1 + eta)
	dNdXi[3] = -0.25 * (1 + eta)

	dNdEta[0] = -0.25 * (1 - xi)
	dNdEta[1] = -0.25 * (1 + xi)
	dNdEta[2] = 0.25 * (1 + xi)
	dNdEta[3] = 0.25 * (1 - xi)
	return
}

// P1 reference node positions: the corners of the unit-leg triangle.
var P1Nodes = [3][2]float64{
	{0, 0},
	{1, 0},
	{0, 1},
}

func P1ShapeFunctions(xi, eta float64) (N [3]float64) {
	N[0] = 1 - xi - eta
	N[1] = xi
	N[2] = eta
	return
}

func P1ShapeDerivatives() (dNdXi, dNdEta [3]float64) {
	dNdXi = [3]float64{-1, 1, 0}
	dNdEta = [3]float64{-1, 0, 1}
	return
}

// GaussPoints2x2 returns the 2x2 tensor-product Gauss rule on [-1,1]^2,
// exact for the Q1 stiffness and mass integrands on affine cells.
func GaussPoints2x2() (points [4][2]float64, weights [4]float64) {
	g := 1.0 / math.Sqrt(3.0)
	points = [4][2]float64{
		{-g, -g},
		{g, -g},
		{g, g},
		{-g, g},
	}
	weights = [4]float64{1, 1, 1, 1}
	return
}

// Jacobian2D builds the isoparametric Jacobian from the parametric shape
// derivatives and the element's physical node coordinates, and returns its
// determinant and inverse. A |det| below tolerance signals a degenerate
// element; the caller skips those rather than failing.
func Jacobian2D(dNdXi, dNdEta, xe, ye []float64) (J, Jinv [2][2]float64, detJ float64) {
	for k := range dNdXi {
		J[0][0] += dNdXi[k] * xe[k]  // dx/dxi
		J[0][1] += dNdEta[k] * xe[k] // dx/deta
		J[1][0] += dNdXi[k] * ye[k]  // dy/dxi
		J[1][1] += dNdEta[k] * ye[k] // dy/deta
	}
	detJ = J[0][0]*J[1][1] - J[0][1]*J[1][0]
	if detJ != 0 {
		Jinv[0][0] = J[1][1] / detJ
		Jinv[0][1] = -J[0][1] / detJ
		Jinv[1][0] = -J[1][0] / detJ
		Jinv[1][1] = J[0][0] / detJ
	}
	return
}
