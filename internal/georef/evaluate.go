package georef

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"trailmapper/internal/geom"
)

// Evaluate applies p to every complete pair and returns the per-pair residuals,
// in input order, and their root-mean-square.
func Evaluate(p AffineParams, complete []geom.PointPair, scale float64) ([]Residual, float64) {
	residuals := make([]Residual, 0, len(complete))
	errs := make([]float64, 0, len(complete))
	for _, pair := range complete {
		if !pair.Complete() {
			continue
		}
		predicted := p.Apply(pair.Scaled(scale))
		e := predicted.Distance(pair.Projected())
		residuals = append(residuals, Residual{PairID: pair.ID, Error: e})
		errs = append(errs, e)
	}
	if len(errs) == 0 {
		return residuals, 0
	}
	return residuals, math.Sqrt(floats.Dot(errs, errs) / float64(len(errs)))
}
