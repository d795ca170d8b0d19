package FEM2D

import (
	"fmt"
	"math"

	"github.com/gocem/gocem/utils"
)

const degenerateTol = 1e-12

// P1 local mass matrix, area-scaled: Me = area/12 * [[2,1,1],[1,2,1],[1,1,2]].
var p1MassLocal = [3][3]float64{
	{2. / 12., 1. / 12., 1. / 12.},
	{1. / 12., 2. / 12., 1. / 12.},
	{1. / 12., 1. / 12., 2. / 12.},
}

// AssembleKM builds the global stiffness and mass matrices for P1 triangles,
// the real symmetric pair of the waveguide eigenproblem (K - lambda*M)phi = 0.
// Degenerate triangles (area below tolerance) are skipped and counted, never
// raised as errors - they are mesh artifacts, not failures.
func AssembleKM(msh *TriMesh) (K, M utils.CSR, skipped int) {
	var (
		nNodes = msh.NumNodes()
		Kd     = utils.NewDOK(nNodes, nNodes)
		Md     = utils.NewDOK(nNodes, nNodes)
	)
	for _, tri := range msh.Tri {
		var x, y [3]float64
		for k := 0; k < 3; k++ {
			x[k] = msh.Xy.At(tri[k], 0)
			y[k] = msh.Xy.At(tri[k], 1)
		}
		// Signed double area; the shape-function gradients of the linear
		// triangle follow from the same determinant.
		detA := (x[1]-x[0])*(y[2]-y[0]) - (x[2]-x[0])*(y[1]-y[0])
		area := 0.5 * math.Abs(detA)
		if area <= degenerateTol {
			skipped++
			continue
		}
		// N_k = a_k + b_k*x + c_k*y with grad N_k = (b_k, c_k).
		b := [3]float64{(y[1] - y[2]) / detA, (y[2] - y[0]) / detA, (y[0] - y[1]) / detA}
		c := [3]float64{(x[2] - x[1]) / detA, (x[0] - x[2]) / detA, (x[1] - x[0]) / detA}
		for a := 0; a < 3; a++ {
			A := tri[a]
			for bb := 0; bb < 3; bb++ {
				B := tri[bb]
				Kd.Add(A, B, area*(b[a]*b[bb]+c[a]*c[bb]))
				Md.Add(A, B, area*p1MassLocal[a][bb])
			}
		}
	}
	K = Kd.ToCSR()
	M = Md.ToCSR()
	return
}

// Triplets accumulates complex coordinate-format entries (row, col, value).
// Duplicate coordinates are summation entries: the sparse operator is built
// once from the flat list, so no incremental sparse mutation is needed.
type Triplets struct {
	N    int
	Rows utils.Index
	Cols utils.Index
	Vals []complex128
}

func NewTriplets(n int) *Triplets {
	return &Triplets{N: n}
}

func (t *Triplets) Add(i, j int, v complex128) {
	t.Rows = append(t.Rows, i)
	t.Cols = append(t.Cols, j)
	t.Vals = append(t.Vals, v)
}

// Sub returns the triplet list of t - o over the same node set.
func (t *Triplets) Sub(o *Triplets) (r *Triplets) {
	if t.N != o.N {
		err := fmt.Errorf("dimension mismatch in Sub: %d vs %d", t.N, o.N)
		panic(err)
	}
	r = NewTriplets(t.N)
	r.Rows = append(append(utils.Index{}, t.Rows...), o.Rows...)
	r.Cols = append(append(utils.Index{}, t.Cols...), o.Cols...)
	r.Vals = make([]complex128, 0, len(t.Vals)+len(o.Vals))
	r.Vals = append(r.Vals, t.Vals...)
	for _, v := range o.Vals {
		r.Vals = append(r.Vals, -v)
	}
	return
}

// ToBand scatters the accumulated triplets into banded storage with the
// given half-bandwidths.
func (t *Triplets) ToBand(kl, ku int) (b *utils.ComplexBand, err error) {
	b = utils.NewComplexBand(t.N, kl, ku)
	for k, v := range t.Vals {
		i, j := t.Rows[k], t.Cols[k]
		if i-j > kl || j-i > ku {
			return nil, fmt.Errorf("triplet (%d,%d) outside band kl=%d, ku=%d", i, j, kl, ku)
		}
		b.Add(i, j, v)
	}
	return
}

// ToDense expands the triplets into a dense row-major matrix, for tests and
// small-system inspection.
func (t *Triplets) ToDense() (d [][]complex128) {
	d = make([][]complex128, t.N)
	for i := range d {
		d[i] = make([]complex128, t.N)
	}
	for k, v := range t.Vals {
		d[t.Rows[k]][t.Cols[k]] += v
	}
	return
}

// VelocityField is a nodal material model sampled with nearest-grid-index
// lookup, indexed [i][j] with i along x. Sampling is deliberately
// nearest-neighbor, not interpolated.
type VelocityField [][]float64

// SourceFunc evaluates the volumetric source at a physical point.
type SourceFunc func(x, y float64) complex128

// AssembleHelmholtz builds the global complex system for the weak form of
//
//	div(sy/sx du/dx, sx/sy du/dy) + k^2 sx sy u = f
//
// on the extended (physical + PML) quad mesh, with Q1 elements and 2x2 Gauss
// quadrature. Returns the stiffness and mass triplet sets and the load
// vector; the system operator is A = K - M.
func AssembleHelmholtz(msh *QuadMesh, omega float64, vel VelocityField, source SourceFunc,
	pml *PMLProfile) (K, M *Triplets, F []complex128, skipped int) {
	var (
		nx, ny = msh.Nx, msh.Ny
		nk     = msh.NumNodes()
		dx     = msh.X[1] - msh.X[0]
		dy     = msh.Y[1] - msh.Y[0]
	)
	K = NewTriplets(nk)
	M = NewTriplets(nk)
	F = make([]complex128, nk)

	gaussPoints, gaussWeights := GaussPoints2x2()

	for _, quad := range msh.Quad {
		var (
			xe, ye [4]float64
			Ke, Me [4][4]complex128
			Fe     [4]complex128
			degen  bool
		)
		for k := 0; k < 4; k++ {
			xe[k], ye[k] = msh.Node(quad[k])
		}
		for gp := 0; gp < 4; gp++ {
			xi, eta := gaussPoints[gp][0], gaussPoints[gp][1]
			w := gaussWeights[gp]

			N := Q1ShapeFunctions(xi, eta)
			dNdXi, dNdEta := Q1ShapeDerivatives(xi, eta)
			_, Jinv, detJ := Jacobian2D(dNdXi[:], dNdEta[:], xe[:], ye[:])
			if math.Abs(detJ) <= degenerateTol {
				degen = true
				break
			}

			// Derivatives in physical coordinates.
			var dNdX, dNdY [4]float64
			for k := 0; k < 4; k++ {
				dNdX[k] = Jinv[0][0]*dNdXi[k] + Jinv[0][1]*dNdEta[k]
				dNdY[k] = Jinv[1][0]*dNdXi[k] + Jinv[1][1]*dNdEta[k]
			}

			var xGP, yGP float64
			for k := 0; k < 4; k++ {
				xGP += N[k] * xe[k]
				yGP += N[k] * ye[k]
			}

			// Nearest grid index to the quadrature point, used for both the
			// material sample and the PML stretch.
			iC := clampIndex(int((xGP-msh.X[0])/dx), nx-1)
			jC := clampIndex(int((yGP-msh.Y[0])/dy), ny-1)

			kGP := omega / vel[iC][jC]
			sx, sy := pml.Stretch(iC, jC)

			wd := complex(w*detJ, 0)
			k2 := complex(kGP*kGP, 0)
			for a := 0; a < 4; a++ {
				for b := 0; b < 4; b++ {
					Ke[a][b] += wd * (sy/sx*complex(dNdX[a]*dNdX[b], 0) +
						sx/sy*complex(dNdY[a]*dNdY[b], 0))
					Me[a][b] += wd * k2 * sx * sy * complex(N[a]*N[b], 0)
				}
			}
			fGP := source(xGP, yGP)
			for a := 0; a < 4; a++ {
				Fe[a] += wd * fGP * complex(N[a], 0)
			}
		}
		if degen {
			skipped++
			continue
		}
		for a := 0; a < 4; a++ {
			A := quad[a]
			F[A] += Fe[a]
			for b := 0; b < 4; b++ {
				K.Add(A, quad[b], Ke[a][b])
				M.Add(A, quad[b], Me[a][b])
			}
		}
	}
	return
}

func clampIndex(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}
