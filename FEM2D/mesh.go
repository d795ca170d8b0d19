package FEM2D

import (
	"math"

	"github.com/gocem/gocem/utils"
)

// TriMesh is a structured triangulation of the rectangle [0,W]x[0,H].
// Node numbering is row-major: index(i,j) = j*Nx + i. Each grid cell is split
// into two triangles along the same diagonal, so the winding is consistent
// across the mesh.
type TriMesh struct {
	Nx, Ny        int
	Width, Height float64
	Xy            utils.Matrix // node coordinates, NumNodes x 2
	Tri           [][3]int
	H             float64 // characteristic size, max of the grid spacings
}

func NewTriMesh(Nx, Ny int, W, H float64) (msh *TriMesh, err error) {
	if Nx < 2 || Ny < 2 {
		err = ErrInvalidMeshSize
		return
	}
	var (
		nNodes = Nx * Ny
		hx     = W / float64(Nx-1)
		hy     = H / float64(Ny-1)
	)
	msh = &TriMesh{
		Nx:     Nx,
		Ny:     Ny,
		Width:  W,
		Height: H,
		Xy:     utils.NewMatrix(nNodes, 2),
		H:      math.Max(hx, hy),
	}
	for j := 0; j < Ny; j++ {
		for i := 0; i < Nx; i++ {
			nid := j*Nx + i
			msh.Xy.Set(nid, 0, float64(i)*hx)
			msh.Xy.Set(nid, 1, float64(j)*hy)
		}
	}
	nidx := func(i, j int) int { return j*Nx + i }
	msh.Tri = make([][3]int, 0, 2*(Nx-1)*(Ny-1))
	for j := 0; j < Ny-1; j++ {
		for i := 0; i < Nx-1; i++ {
			n00 := nidx(i, j)
			n10 := nidx(i+1, j)
			n01 := nidx(i, j+1)
			n11 := nidx(i+1, j+1)
			// Both triangles share the n00-n11 diagonal, CCW winding.
			msh.Tri = append(msh.Tri, [3]int{n00, n10, n11})
			msh.Tri = append(msh.Tri, [3]int{n00, n11, n01})
		}
	}
	return
}

func (msh *TriMesh) NumNodes() int    { return msh.Nx * msh.Ny }
func (msh *TriMesh) NumElements() int { return len(msh.Tri) }

// MaxEdgeLength scans the triangulation for the longest element edge, a
// mesh-quality diagnostic reported alongside convergence results.
func (msh *TriMesh) MaxEdgeLength() (lMax float64) {
	for _, tri := range msh.Tri {
		for e := 0; e < 3; e++ {
			a, b := tri[e], tri[(e+1)%3]
			dx := msh.Xy.At(a, 0) - msh.Xy.At(b, 0)
			dy := msh.Xy.At(a, 1) - msh.Xy.At(b, 1)
			if l := math.Hypot(dx, dy); l > lMax {
				lMax = l
			}
		}
	}
	return
}

// QuadMesh is a structured mesh of 4-node quadrilaterals over the tensor
// product of the xArray and yArray node coordinates. Element nodes are ordered
// counter-clockwise from the lower-left corner so det(J) stays positive.
type QuadMesh struct {
	Nx, Ny int
	X, Y   []float64
	Quad   [][4]int
	H      float64
}

func NewQuadMesh(xArray, yArray []float64) (msh *QuadMesh, err error) {
	var (
		Nx = len(xArray)
		Ny = len(yArray)
	)
	if Nx < 2 || Ny < 2 {
		err = ErrInvalidMeshSize
		return
	}
	msh = &QuadMesh{
		Nx: Nx,
		Ny: Ny,
		X:  append([]float64(nil), xArray...),
		Y:  append([]float64(nil), yArray...),
	}
	for i := 1; i < Nx; i++ {
		if h := xArray[i] - xArray[i-1]; h > msh.H {
			msh.H = h
		}
	}
	for j := 1; j < Ny; j++ {
		if h := yArray[j] - yArray[j-1]; h > msh.H {
			msh.H = h
		}
	}
	msh.Quad = make([][4]int, 0, (Nx-1)*(Ny-1))
	for j := 0; j < Ny-1; j++ {
		for i := 0; i < Nx-1; i++ {
			msh.Quad = append(msh.Quad, [4]int{
				j*Nx + i,
				j*Nx + (i + 1),
				(j+1)*Nx + (i + 1),
				(j+1)*Nx + i,
			})
		}
	}
	return
}

func (msh *QuadMesh) NumNodes() int    { return msh.Nx * msh.Ny }
func (msh *QuadMesh) NumElements() int { return len(msh.Quad) }

// Node returns the physical coordinates of global node nid.
func (msh *QuadMesh) Node(nid int) (x, y float64) {
	return msh.X[nid%msh.Nx], msh.Y[nid/msh.Nx]
}
