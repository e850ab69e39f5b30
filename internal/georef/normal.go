package georef

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"trailmapper/internal/geom"
)

// Normal holds the least-squares normal equations N p = R for the affine model.
type Normal struct {
	N *mat.SymDense
	R *mat.VecDense
	// Rows is the number of equation rows accumulated (two per pair).
	Rows int
}

// BuildNormal accumulates the normal equations for complete pairs. Each pair adds
//
//	[sx sy 1 0 0 0] -> X
//	[0 0 0 sx sy 1] -> Y
//
// straight into N and R, so memory does not grow with the pair count.
func BuildNormal(complete []geom.PointPair, scale float64) (*Normal, error) {
	n := &Normal{
		N: mat.NewSymDense(6, nil),
		R: mat.NewVecDense(6, nil),
	}
	row := mat.NewVecDense(6, nil)
	for _, p := range complete {
		if !p.Complete() {
			continue
		}
		s := p.Scaled(scale)
		t := p.Projected()
		if !s.Finite() || !t.Finite() {
			return nil, fmt.Errorf("%w: non-finite coordinates for pair #%d", ErrDegenerate, p.ID)
		}

		row.Zero()
		row.SetVec(0, s.X)
		row.SetVec(1, s.Y)
		row.SetVec(2, 1)
		n.add(row, t.X)

		row.Zero()
		row.SetVec(3, s.X)
		row.SetVec(4, s.Y)
		row.SetVec(5, 1)
		n.add(row, t.Y)
	}
	return n, nil
}

func (n *Normal) add(row *mat.VecDense, value float64) {
	n.N.SymRankOne(n.N, 1, row)
	n.R.AddScaledVec(n.R, value, row)
	n.Rows++
}

// finite reports whether every accumulated entry is finite.
func (n *Normal) finite() bool {
	for i := 0; i < 6; i++ {
		if v := n.R.AtVec(i); math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
		for j := i; j < 6; j++ {
			if v := n.N.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}
