package georef

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestSolveGaussJordanNeedsPivoting(t *testing.T) {
	// zero on the first diagonal forces a row swap
	a := mat.NewDense(3, 3, []float64{
		0, 2, 1,
		1, 1, 1,
		2, 1, 0,
	})
	b := mat.NewVecDense(3, []float64{7, 6, 4})
	x, err := SolveGaussJordan(a, b)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 2, 3}
	for i, w := range want {
		if math.Abs(x.AtVec(i)-w) > 1e-12 {
			t.Errorf("x[%d] = %v, want %v", i, x.AtVec(i), w)
		}
	}
	// inputs are copied, not reduced in place
	if a.At(0, 0) != 0 || b.AtVec(0) != 7 {
		t.Error("inputs were modified")
	}
}

func TestSolveGaussJordanMatchesGonum(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for trial := 0; trial < 20; trial++ {
		data := make([]float64, 36)
		for i := range data {
			data[i] = rnd.NormFloat64()
		}
		g := mat.NewDense(6, 6, data)
		// G Gᵀ + I is symmetric positive definite, like a normal matrix
		var a mat.SymDense
		a.SymOuterK(1, g)
		for i := 0; i < 6; i++ {
			a.SetSym(i, i, a.At(i, i)+1)
		}
		b := mat.NewVecDense(6, nil)
		for i := 0; i < 6; i++ {
			b.SetVec(i, rnd.Float64()*100-50)
		}

		got, err := SolveGaussJordan(&a, b)
		if err != nil {
			t.Fatal(err)
		}
		var want mat.VecDense
		if err := want.SolveVec(&a, b); err != nil {
			t.Fatal(err)
		}
		if !mat.EqualApprox(got, &want, 1e-9) {
			t.Fatalf("trial %d: got %v, want %v", trial, mat.Formatted(got.T()), mat.Formatted(want.T()))
		}
	}
}

func TestSolveGaussJordanDegenerate(t *testing.T) {
	tests := []struct {
		name string
		a    []float64
	}{
		{"singular", []float64{1, 2, 2, 4}},
		{"zero", []float64{0, 0, 0, 0}},
		{"tiny pivot", []float64{1e-13, 0, 0, 1}},
		{"nan", []float64{math.NaN(), 1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SolveGaussJordan(mat.NewDense(2, 2, tt.a), mat.NewVecDense(2, []float64{1, 1}))
			if !errors.Is(err, ErrDegenerate) {
				t.Fatalf("err = %v, want ErrDegenerate", err)
			}
		})
	}
}

func TestSolveGaussJordanShape(t *testing.T) {
	if _, err := SolveGaussJordan(mat.NewDense(2, 3, nil), mat.NewVecDense(2, nil)); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("non-square: err = %v", err)
	}
	if _, err := SolveGaussJordan(mat.NewDense(2, 2, []float64{1, 0, 0, 1}), mat.NewVecDense(3, nil)); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("rhs length: err = %v", err)
	}
}

func TestFindPivotRowTieKeepsLowestIndex(t *testing.T) {
	m := [][]float64{
		{1, 0},
		{-3, 0},
		{3, 0},
	}
	if got := findPivotRow(m, 0); got != 1 {
		t.Fatalf("findPivotRow = %d, want 1", got)
	}
}
