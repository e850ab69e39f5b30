// Package georef fits an affine transform from scaled source-image pixels to
// Web Mercator metres using control point pairs.
//
// Solve is a pure function of the pairs and the scale: it keeps no state between
// calls and is re-run from scratch whenever either changes.
package georef

import (
	"errors"
	"fmt"
	"math"

	"trailmapper/internal/geom"
)

// Solve fits the affine transform for the complete pairs in pairs.
// It never panics and always returns a result describing the outcome.
func Solve(pairs []geom.PointPair, scale float64) FitResult {
	complete := geom.CompletePairs(pairs)
	res := FitResult{Pairs: len(complete)}
	if len(complete) < MinPairs {
		res.Status = StatusUnsolved
		res.Reason = fmt.Sprintf("need %d completed point pairs, have %d", MinPairs, len(complete))
		return res
	}
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0 {
		res.Status = StatusInvalidInput
		res.Reason = fmt.Sprintf("scale must be a positive number of metres per pixel, got %v", scale)
		return res
	}

	normal, err := BuildNormal(complete, scale)
	if err != nil {
		return failed(res, err)
	}
	if !normal.finite() {
		return failed(res, fmt.Errorf("%w: normal equations overflowed", ErrDegenerate))
	}
	x, err := SolveGaussJordan(normal.N, normal.R)
	if err != nil {
		return failed(res, err)
	}
	var params AffineParams
	for i := range params {
		params[i] = x.AtVec(i)
	}
	if !params.Finite() {
		return failed(res, fmt.Errorf("%w: non-finite transform parameters", ErrDegenerate))
	}

	residuals, rms := Evaluate(params, complete, scale)
	if math.IsNaN(rms) || math.IsInf(rms, 0) {
		return failed(res, fmt.Errorf("%w: non-finite residuals", ErrDegenerate))
	}
	res.Status = StatusSolved
	res.Params = params
	res.Residuals = residuals
	res.RMSError = rms
	return res
}

func failed(res FitResult, err error) FitResult {
	res.Status = StatusDegenerate
	if errors.Is(err, ErrInvalidInput) {
		res.Status = StatusInvalidInput
	}
	res.Reason = err.Error()
	return res
}
