package FEM2D

import (
	"fmt"
	"math"
	"strings"

	"github.com/gocem/gocem/utils"
)

/*
Boundary-condition policies, selected by physical mode kind:

	TM - Dirichlet walls: the longitudinal field vanishes on the boundary, so
	     boundary nodes are eliminated and the system is solved on the
	     interior submatrix only.
	TE - Neumann walls: the zero-normal-derivative condition is natural in the
	     weak form, so every node stays an active degree of freedom.
*/

// InteriorDOFs returns the active degree-of-freedom set for a mesh over the
// rectangle [0,W]x[0,H].
func InteriorDOFs(Xy utils.Matrix, W, H float64, kind string) (interior utils.Index, err error) {
	var (
		nNodes, _ = Xy.Dims()
	)
	switch strings.ToUpper(kind) {
	case "TE":
		interior = utils.NewRange(0, nNodes-1)
	case "TM":
		tol := 1e-10 * math.Max(W, H)
		for n := 0; n < nNodes; n++ {
			x, y := Xy.At(n, 0), Xy.At(n, 1)
			onBoundary := math.Abs(x) < tol || math.Abs(x-W) < tol ||
				math.Abs(y) < tol || math.Abs(y-H) < tol
			if !onBoundary {
				interior = append(interior, n)
			}
		}
	default:
		err = fmt.Errorf("%w: got %q", ErrInvalidModeKind, kind)
	}
	return
}

// ExpandField re-inserts eliminated boundary dofs as zeros, returning a field
// over the full mesh.
func ExpandField(reduced []float64, interior utils.Index, nNodes int) (full []float64) {
	full = make([]float64, nNodes)
	for i, n := range interior {
		full[n] = reduced[i]
	}
	return
}
