package Waveguide2D

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/gocem/gocem/utils"
)

// ritzPair is a shift-inverted eigenpair candidate: mu is the transformed
// eigenvalue 1/(lambda - sigma), so pairs closest to the shift have the
// largest |mu|.
type ritzPair struct {
	mu     float64
	lambda float64
	vec    []float64
}

// shiftInvertModes solves the generalized eigenproblem (K - lambda*M)phi = 0
// near the shift sigma. B must hold K - sigma*M and Mb the mass matrix, both
// in banded storage. The kReq eigenvalues closest to sigma are returned in
// ascending order with their M-orthogonal eigenvectors.
//
// The spectral transform is the classic shift-invert: Arnoldi iteration on
// the operator x -> (K - sigma*M)^-1 M x, whose dominant eigenvalues
// mu = 1/(lambda - sigma) correspond to the lambdas nearest sigma.
func shiftInvertModes(B, Mb *utils.ComplexBand, sigma float64, kReq int) (lambdas []float64, vecs [][]float64, err error) {
	var (
		n = B.N
	)
	if err = B.Factor(); err != nil {
		return nil, nil, fmt.Errorf("shift-invert factorization at sigma = %v: %w", sigma, err)
	}

	mKrylov := 2*kReq + 2
	if mKrylov < 24 {
		mKrylov = 24
	}
	if mKrylov > n {
		mKrylov = n
	}

	// Arnoldi with modified Gram-Schmidt and one reorthogonalization pass.
	// The start vector is seeded pseudo-random: a structured start (the
	// constant vector, say) can be an exact eigenvector of the transformed
	// operator - on Neumann problems the constant field satisfies K*c = 0, so
	// (K - sigma*M)^-1 M c = -c/sigma - which would collapse the Krylov space
	// after a single step and leave only the lambda = 0 pair.
	rng := rand.New(rand.NewSource(1))
	V := make([][]complex128, 0, mKrylov+1)
	H := make([][]complex128, mKrylov+1)
	for i := range H {
		H[i] = make([]complex128, mKrylov)
	}
	V = append(V, randomUnitVector(rng, n))

	mUsed := mKrylov
	for j := 0; j < mKrylov; j++ {
		w, serr := B.Solve(Mb.MulVec(V[j]))
		if serr != nil {
			return nil, nil, serr
		}
		for pass := 0; pass < 2; pass++ {
			for i := 0; i <= j; i++ {
				var h complex128
				for k := 0; k < n; k++ {
					h += cmplx.Conj(V[i][k]) * w[k]
				}
				H[i][j] += h
				for k := 0; k < n; k++ {
					w[k] -= h * V[i][k]
				}
			}
		}
		norm := 0.0
		for k := 0; k < n; k++ {
			norm += real(w[k])*real(w[k]) + imag(w[k])*imag(w[k])
		}
		norm = math.Sqrt(norm)
		H[j+1][j] = complex(norm, 0)
		if norm < 1e-12 {
			// Happy breakdown: an invariant subspace converged. Deflate and
			// keep iterating in a fresh direction orthogonal to it, so the
			// remaining eigenpairs near the shift still get resolved.
			H[j+1][j] = 0
			if w = freshDirection(rng, V, n); w == nil {
				mUsed = j + 1
				break
			}
		} else {
			for k := range w {
				w[k] /= complex(norm, 0)
			}
		}
		V = append(V, w)
	}

	// Eigen-decompose the (real-valued) Hessenberg projection.
	Hm := mat.NewDense(mUsed, mUsed, nil)
	for i := 0; i < mUsed; i++ {
		for j := 0; j < mUsed; j++ {
			Hm.Set(i, j, real(H[i][j]))
		}
	}
	var eig mat.Eigen
	if ok := eig.Factorize(Hm, mat.EigenRight); !ok {
		return nil, nil, fmt.Errorf("eigen decomposition of the Hessenberg projection failed")
	}
	muVals := eig.Values(nil)
	Y := mat.NewCDense(mUsed, mUsed, nil)
	eig.VectorsTo(Y)

	// Ritz extraction. The pencil is symmetric so the eigenvalues are real;
	// discard numerically complex or near-zero transforms.
	var pairs []ritzPair
	for k := 0; k < mUsed; k++ {
		mu := muVals[k]
		if cmplx.Abs(mu) < 1e-12 {
			continue
		}
		if math.Abs(imag(mu)) > 1e-8*(cmplx.Abs(mu)+1) {
			continue
		}
		x := make([]float64, n)
		for j := 0; j < mUsed; j++ {
			yj := Y.At(j, k)
			for i := 0; i < n; i++ {
				x[i] += real(V[j][i] * yj)
			}
		}
		norm := 0.0
		for _, v := range x {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			continue
		}
		for i := range x {
			x[i] /= norm
		}
		pairs = append(pairs, ritzPair{
			mu:     real(mu),
			lambda: sigma + 1/real(mu),
			vec:    x,
		})
	}
	if len(pairs) == 0 {
		return nil, nil, fmt.Errorf("no converged eigenpairs near sigma = %v", sigma)
	}

	// Keep the kReq pairs closest to the shift, then order ascending.
	sort.Slice(pairs, func(a, b int) bool {
		return math.Abs(pairs[a].mu) > math.Abs(pairs[b].mu)
	})
	if len(pairs) > kReq {
		pairs = pairs[:kReq]
	}
	sort.Slice(pairs, func(a, b int) bool { return pairs[a].lambda < pairs[b].lambda })

	lambdas = make([]float64, len(pairs))
	vecs = make([][]float64, len(pairs))
	for i, p := range pairs {
		lambdas[i] = p.lambda
		vecs[i] = p.vec
	}
	return
}

func randomUnitVector(rng *rand.Rand, n int) (v []complex128) {
	v = make([]complex128, n)
	norm := 0.0
	for i := range v {
		r := rng.Float64() - 0.5
		v[i] = complex(r, 0)
		norm += r * r
	}
	norm = math.Sqrt(norm)
	for i := range v {
		v[i] /= complex(norm, 0)
	}
	return
}

// freshDirection draws a random vector and orthogonalizes it against the
// basis, returning nil once the basis spans the whole space.
func freshDirection(rng *rand.Rand, V [][]complex128, n int) []complex128 {
	if len(V) >= n {
		return nil
	}
	for attempt := 0; attempt < 3; attempt++ {
		w := randomUnitVector(rng, n)
		for pass := 0; pass < 2; pass++ {
			for _, v := range V {
				var h complex128
				for k := 0; k < n; k++ {
					h += cmplx.Conj(v[k]) * w[k]
				}
				for k := 0; k < n; k++ {
					w[k] -= h * v[k]
				}
			}
		}
		norm := 0.0
		for k := 0; k < n; k++ {
			norm += real(w[k])*real(w[k]) + imag(w[k])*imag(w[k])
		}
		norm = math.Sqrt(norm)
		if norm > 1e-8 {
			for k := range w {
				w[k] /= complex(norm, 0)
			}
			return w
		}
	}
	return nil
}

// reduceToBand restricts a global sparse matrix to the interior dofs and
// scatters it into banded storage, scaled by the given factor. When dst is
// nil a new band matrix is allocated; passing an existing one accumulates,
// which is how K - sigma*M is formed without an intermediate.
func reduceToBand(A utils.CSR, interior utils.Index, kl int, scale float64,
	dst *utils.ComplexBand) *utils.ComplexBand {
	nGlobal, _ := A.Dims()
	inv := interior.InverseMap(nGlobal)
	if dst == nil {
		dst = utils.NewComplexBand(len(interior), kl, kl)
	}
	A.M.DoNonZero(func(i, j int, v float64) {
		ii, jj := inv[i], inv[j]
		if ii >= 0 && jj >= 0 {
			dst.Add(ii, jj, complex(scale*v, 0))
		}
	})
	return dst
}
