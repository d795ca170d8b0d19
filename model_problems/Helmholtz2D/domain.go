package Helmholtz2D

import (
	"fmt"

	"github.com/gocem/gocem/FEM2D"
)

// Domain holds the physical rectangle where the physics of interest lives
// and, once ApplyPML is called, the extended grid that wraps it in absorbing
// layers on all four sides.
type Domain struct {
	NxMain, NyMain int        // node counts of the physical domain
	MainExtent     [4]float64 // xmin, xmax, ymin, ymax of the physical domain

	NBL    int     // nodes per absorbing layer
	LPML   float64 // physical layer width
	Nx, Ny int     // extended node counts
	Extent [4]float64
	X, Y   []float64
	Dx, Dy float64
}

func NewDomain(nx, ny int, extent [4]float64) (d *Domain, err error) {
	if nx < 2 || ny < 2 {
		return nil, FEM2D.ErrInvalidMeshSize
	}
	if extent[1] <= extent[0] || extent[3] <= extent[2] {
		return nil, fmt.Errorf("degenerate domain extent %v", extent)
	}
	d = &Domain{
		NxMain:     nx,
		NyMain:     ny,
		MainExtent: extent,
	}
	d.ApplyPML(0)
	return
}

// ApplyPML rebuilds the extended grid with nbl absorbing-layer nodes per
// border. The layer width is always the physical grid spacing times nbl; the
// domain extent grows symmetrically by that width on every side.
func (d *Domain) ApplyPML(nbl int) {
	if nbl < 0 {
		nbl = 0
	}
	d.NBL = nbl
	d.Nx = d.NxMain + 2*nbl
	d.Ny = d.NyMain + 2*nbl
	dxMain := (d.MainExtent[1] - d.MainExtent[0]) / float64(d.NxMain-1)
	d.LPML = dxMain * float64(nbl)
	d.Extent = [4]float64{
		d.MainExtent[0] - d.LPML,
		d.MainExtent[1] + d.LPML,
		d.MainExtent[2] - d.LPML,
		d.MainExtent[3] + d.LPML,
	}
	d.X = linspace(d.Extent[0], d.Extent[1], d.Nx)
	d.Y = linspace(d.Extent[2], d.Extent[3], d.Ny)
	d.Dx = d.X[1] - d.X[0]
	d.Dy = d.Y[1] - d.Y[0]
}

// NumNodes is the total node count of the extended grid.
func (d *Domain) NumNodes() int { return d.Nx * d.Ny }

func linspace(lo, hi float64, n int) (v []float64) {
	v = make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range v {
		v[i] = lo + float64(i)*step
	}
	v[n-1] = hi
	return
}

// UniformVelocity fills the extended grid with a constant wave speed.
func UniformVelocity(d *Domain, v float64) (vel FEM2D.VelocityField, err error) {
	if v <= 0 {
		return nil, fmt.Errorf("velocity must be positive, got %v", v)
	}
	vel = make(FEM2D.VelocityField, d.Nx)
	for i := range vel {
		vel[i] = make([]float64, d.Ny)
		for j := range vel[i] {
			vel[i][j] = v
		}
	}
	return
}

// LayeredVelocity builds a two-medium model split by a horizontal interface:
// vAbove for y > yInterface, vBelow otherwise.
func LayeredVelocity(d *Domain, vAbove, vBelow, yInterface float64) (vel FEM2D.VelocityField, err error) {
	if vAbove <= 0 || vBelow <= 0 {
		return nil, fmt.Errorf("velocities must be positive, got %v and %v", vAbove, vBelow)
	}
	vel = make(FEM2D.VelocityField, d.Nx)
	for i := range vel {
		vel[i] = make([]float64, d.Ny)
		for j := range vel[i] {
			if d.Y[j] > yInterface {
				vel[i][j] = vAbove
			} else {
				vel[i][j] = vBelow
			}
		}
	}
	return
}
