package utils

import (
	"fmt"
	"math"
)

// SingularSystemError reports a (near-)singular matrix detected during
// factorization, with the offending pivot row for diagnosis.
type SingularSystemError struct {
	Row int
}

func (e *SingularSystemError) Error() string {
	return fmt.Sprintf("matrix is singular at pivot row %d", e.Row)
}

// ComplexBand is a complex banded matrix in LAPACK-style band storage with
// KL extra superdiagonals reserved for pivoting fill. Entry (i,j) lives at
// ab[KL+KU+i-j][j]. FEM operators on row-major structured grids are banded
// with half-bandwidth nx+1, which keeps the direct factorization cheap.
type ComplexBand struct {
	N, KL, KU int
	ab        [][]complex128
	ipiv      []int
	factored  bool
}

func NewComplexBand(n, kl, ku int) (R *ComplexBand) {
	if kl > n-1 {
		kl = n - 1
	}
	if ku > n-1 {
		ku = n - 1
	}
	ab := make([][]complex128, 2*kl+ku+1)
	for r := range ab {
		ab[r] = make([]complex128, n)
	}
	R = &ComplexBand{
		N:  n,
		KL: kl,
		KU: ku,
		ab: ab,
	}
	return
}

func (m *ComplexBand) inBand(i, j int) bool {
	return i >= 0 && j >= 0 && i < m.N && j < m.N && i-j <= m.KL && j-i <= m.KU
}

func (m *ComplexBand) At(i, j int) complex128 {
	if !m.inBand(i, j) {
		return 0
	}
	return m.ab[m.KL+m.KU+i-j][j]
}

func (m *ComplexBand) Set(i, j int, val complex128) {
	if !m.inBand(i, j) {
		err := fmt.Errorf("entry (%d,%d) outside band: n = %d, kl = %d, ku = %d", i, j, m.N, m.KL, m.KU)
		panic(err)
	}
	m.ab[m.KL+m.KU+i-j][j] = val
}

// Add accumulates into entry (i,j), the scatter operation of assembly.
func (m *ComplexBand) Add(i, j int, val complex128) {
	if !m.inBand(i, j) {
		err := fmt.Errorf("entry (%d,%d) outside band: n = %d, kl = %d, ku = %d", i, j, m.N, m.KL, m.KU)
		panic(err)
	}
	m.ab[m.KL+m.KU+i-j][j] += val
}

// MulVec computes b = A*x on the unfactored matrix.
func (m *ComplexBand) MulVec(x []complex128) (b []complex128) {
	if m.factored {
		panic("MulVec called on a factored matrix")
	}
	if len(x) != m.N {
		err := fmt.Errorf("dimension mismatch in MulVec: n = %d, len(x) = %d", m.N, len(x))
		panic(err)
	}
	b = make([]complex128, m.N)
	for i := 0; i < m.N; i++ {
		jmin := i - m.KL
		if jmin < 0 {
			jmin = 0
		}
		jmax := i + m.KU
		if jmax > m.N-1 {
			jmax = m.N - 1
		}
		var sum complex128
		for j := jmin; j <= jmax; j++ {
			sum += m.ab[m.KL+m.KU+i-j][j] * x[j]
		}
		b[i] = sum
	}
	return
}

// cmag is the 1-norm magnitude |re|+|im|, cheaper than a full modulus and
// sufficient for pivot comparisons.
func cmag(v complex128) float64 {
	return math.Abs(real(v)) + math.Abs(imag(v))
}

// Factor computes the in-place LU decomposition with partial pivoting.
// Returns a SingularSystemError when a pivot column is numerically zero.
func (m *ComplexBand) Factor() error {
	var (
		n, kl, ku = m.N, m.KL, m.KU
		ab        = m.ab
		d         = kl + ku // row offset of the diagonal in band storage
	)
	if m.factored {
		return fmt.Errorf("matrix is already factored")
	}
	m.ipiv = make([]int, n)
	for j := 0; j < n; j++ {
		// Pivot search down column j.
		imax := j + kl
		if imax > n-1 {
			imax = n - 1
		}
		kp := j
		pmag := cmag(ab[d][j])
		for i := j + 1; i <= imax; i++ {
			if v := cmag(ab[d+i-j][j]); v > pmag {
				pmag = v
				kp = i
			}
		}
		if pmag == 0.0 {
			return &SingularSystemError{Row: j}
		}
		m.ipiv[j] = kp
		cmax := j + kl + ku
		if cmax > n-1 {
			cmax = n - 1
		}
		if kp != j {
			for c := j; c <= cmax; c++ {
				ab[d+j-c][c], ab[d+kp-c][c] = ab[d+kp-c][c], ab[d+j-c][c]
			}
		}
		// Eliminate below the pivot.
		pivot := ab[d][j]
		for i := j + 1; i <= imax; i++ {
			ab[d+i-j][j] /= pivot
		}
		for c := j + 1; c <= cmax; c++ {
			t := ab[d+j-c][c]
			if t == 0 {
				continue
			}
			for i := j + 1; i <= imax; i++ {
				ab[d+i-c][c] -= ab[d+i-j][j] * t
			}
		}
	}
	m.factored = true
	return nil
}

// Solve performs forward elimination and back substitution on a factored
// matrix. The right-hand side is not modified.
func (m *ComplexBand) Solve(rhs []complex128) (solution []complex128, err error) {
	var (
		n, kl, ku = m.N, m.KL, m.KU
		ab        = m.ab
		d         = kl + ku
	)
	if !m.factored {
		return nil, fmt.Errorf("matrix is not factored")
	}
	if len(rhs) != n {
		return nil, fmt.Errorf("rhs size (%d) does not match matrix size (%d)", len(rhs), n)
	}
	solution = make([]complex128, n)
	copy(solution, rhs)

	// Forward elimination with row interchanges: solves L*c = P*b.
	for j := 0; j < n; j++ {
		if kp := m.ipiv[j]; kp != j {
			solution[j], solution[kp] = solution[kp], solution[j]
		}
		t := solution[j]
		if t == 0 {
			continue
		}
		imax := j + kl
		if imax > n-1 {
			imax = n - 1
		}
		for i := j + 1; i <= imax; i++ {
			solution[i] -= ab[d+i-j][j] * t
		}
	}

	// Back substitution: solves U*x = c.
	for j := n - 1; j >= 0; j-- {
		solution[j] /= ab[d][j]
		t := solution[j]
		imin := j - kl - ku
		if imin < 0 {
			imin = 0
		}
		for i := imin; i < j; i++ {
			solution[i] -= ab[d+i-j][j] * t
		}
	}
	return solution, nil
}
