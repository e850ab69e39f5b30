package georef

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// PivotEpsilon is the smallest pivot magnitude SolveGaussJordan accepts.
const PivotEpsilon = 1e-12

// SolveGaussJordan solves a x = b by Gauss-Jordan elimination with partial
// pivoting. The augmented matrix is reduced all the way to [I | x], so the
// solution is read off the right-hand side with no back substitution.
// a and b are copied; the caller's values are never modified.
func SolveGaussJordan(a mat.Matrix, b mat.Vector) (*mat.VecDense, error) {
	r, c := a.Dims()
	if r != c || r == 0 {
		return nil, fmt.Errorf("%w: matrix is %dx%d, want square", ErrInvalidInput, r, c)
	}
	if b.Len() != r {
		return nil, fmt.Errorf("%w: rhs has %d entries, want %d", ErrInvalidInput, b.Len(), r)
	}
	n := r
	m := make([][]float64, n)
	v := make([]float64, n)
	for i := 0; i < n; i++ {
		m[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			m[i][j] = a.At(i, j)
		}
		v[i] = b.AtVec(i)
	}

	for col := 0; col < n; col++ {
		p := findPivotRow(m, col)
		swapRows(m, v, col, p)
		d := m[col][col]
		// NaN compares false, so test the accepted range rather than the rejected one
		if !(math.Abs(d) >= PivotEpsilon) {
			return nil, fmt.Errorf("%w: pivot %.3g in column %d", ErrDegenerate, d, col)
		}
		normalizeRow(m, v, col)
		eliminateColumn(m, v, col)
	}
	return mat.NewVecDense(n, v), nil
}

// findPivotRow returns the row at or below col with the largest magnitude in
// column col. Ties keep the lowest index.
func findPivotRow(m [][]float64, col int) int {
	pivot := col
	best := math.Abs(m[col][col])
	for r := col + 1; r < len(m); r++ {
		if v := math.Abs(m[r][col]); v > best {
			best = v
			pivot = r
		}
	}
	return pivot
}

func swapRows(m [][]float64, v []float64, r1, r2 int) {
	if r1 == r2 {
		return
	}
	m[r1], m[r2] = m[r2], m[r1]
	v[r1], v[r2] = v[r2], v[r1]
}

func normalizeRow(m [][]float64, v []float64, row int) {
	d := m[row][row]
	for c := row; c < len(m); c++ {
		m[row][c] /= d
	}
	v[row] /= d
}

// eliminateColumn clears col from every other row, above and below.
func eliminateColumn(m [][]float64, v []float64, col int) {
	for r := range m {
		if r == col {
			continue
		}
		f := m[r][col]
		if f == 0 {
			continue
		}
		for c := col; c < len(m); c++ {
			m[r][c] -= f * m[col][c]
		}
		v[r] -= f * v[col]
	}
}
