package Helmholtz2D

import (
	"fmt"
	"math"

	"github.com/gocem/gocem/FEM2D"
)

// Solution is the terminal artifact of a Helmholtz-PML solve: the complex
// field over the extended grid, row-major with index(i,j) = j*Nx + i.
type Solution struct {
	U           []complex128
	Domain      *Domain
	Frequency   float64
	SkippedElem int
}

// Grid reshapes the field to [i][j] layout with i along x.
func (s *Solution) Grid() (u [][]complex128) {
	u = make([][]complex128, s.Domain.Nx)
	for i := range u {
		u[i] = make([]complex128, s.Domain.Ny)
		for j := range u[i] {
			u[i][j] = s.U[j*s.Domain.Nx+i]
		}
	}
	return
}

// Solve assembles and solves the Helmholtz equation with PML absorbing
// boundaries on the extended domain: Q1 elements, 2x2 Gauss quadrature,
// nearest-index material sampling, and a direct banded complex
// factorization of A = K - M. All dofs stay active (Neumann walls are
// natural in the weak form; the PML does the absorbing).
func Solve(d *Domain, frequency float64, vel FEM2D.VelocityField, source FEM2D.SourceFunc,
	alpha float64) (sol *Solution, err error) {
	if frequency <= 0 {
		return nil, fmt.Errorf("frequency must be positive, got %v Hz", frequency)
	}
	if len(vel) != d.Nx || len(vel[0]) != d.Ny {
		return nil, fmt.Errorf("velocity field shape %dx%d does not match grid %dx%d",
			len(vel), len(vel[0]), d.Nx, d.Ny)
	}
	omega := 2 * math.Pi * frequency
	pml := FEM2D.NewPMLProfile(d.NBL, d.LPML, alpha, frequency, d.X, d.Y)

	msh, err := FEM2D.NewQuadMesh(d.X, d.Y)
	if err != nil {
		return nil, err
	}

	fmt.Printf("assembling %dx%d Helmholtz system at %.3g Hz...\n", d.Nx, d.Ny, frequency)
	K, M, F, skipped := FEM2D.AssembleHelmholtz(msh, omega, vel, source, pml)
	if skipped > 0 {
		fmt.Printf("assembly skipped %d degenerate elements\n", skipped)
	}
	A := K.Sub(M)

	// Row-major Q1 grids couple nodes at most nx+1 indices apart.
	band, err := A.ToBand(d.Nx+1, d.Nx+1)
	if err != nil {
		return nil, err
	}
	if err = band.Factor(); err != nil {
		return nil, fmt.Errorf("helmholtz solve at %v Hz (nbl=%d, alpha=%v): %w",
			frequency, d.NBL, alpha, err)
	}
	U, err := band.Solve(F)
	if err != nil {
		return nil, err
	}
	sol = &Solution{
		U:           U,
		Domain:      d,
		Frequency:   frequency,
		SkippedElem: skipped,
	}
	return
}
