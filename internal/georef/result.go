package georef

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"trailmapper/internal/geom"
)

var (
	// ErrInsufficientData means fewer than MinPairs complete pairs were given.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrDegenerate means the pairs do not determine a unique affine transform.
	ErrDegenerate = errors.New("degenerate control points")
	// ErrInvalidInput means the scale or the system shape is unusable.
	ErrInvalidInput = errors.New("invalid input")
)

// MinPairs is the number of complete pairs an affine fit needs.
const MinPairs = 3

// AffineParams holds [a b c d e f] with
//
//	X = a*sx + b*sy + c
//	Y = d*sx + e*sy + f
//
// where (sx, sy) is the scaled source point and (X, Y) the projected target.
type AffineParams [6]float64

// Identity maps every point onto itself.
var Identity = AffineParams{1, 0, 0, 0, 1, 0}

// Apply maps a scaled source point into projected metres.
func (p AffineParams) Apply(s geom.PlanarPoint) geom.PlanarPoint {
	return geom.PlanarPoint{
		X: p[0]*s.X + p[1]*s.Y + p[2],
		Y: p[3]*s.X + p[4]*s.Y + p[5],
	}
}

// Finite reports whether all six parameters are finite.
func (p AffineParams) Finite() bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Residual is the distance in metres between a pair's target and the fitted prediction.
type Residual struct {
	PairID int
	Error  float64
}

// Status is the outcome kind of a solve.
type Status int

const (
	StatusUnsolved Status = iota
	StatusSolved
	StatusDegenerate
	StatusInvalidInput
)

func (s Status) String() string {
	switch s {
	case StatusSolved:
		return "solved"
	case StatusDegenerate:
		return "degenerate"
	case StatusInvalidInput:
		return "invalid input"
	default:
		return "unsolved"
	}
}

// FitResult is the value returned by Solve. Params, Residuals and RMSError are
// only meaningful when Status is StatusSolved.
type FitResult struct {
	Status    Status
	Reason    string
	Params    AffineParams
	Residuals []Residual
	RMSError  float64
	// Pairs is the number of complete pairs seen.
	Pairs int
}

// Solved reports whether the fit produced parameters.
func (r FitResult) Solved() bool { return r.Status == StatusSolved }

// Err returns nil for a solved fit and a sentinel-wrapped error otherwise.
func (r FitResult) Err() error {
	var base error
	switch r.Status {
	case StatusSolved:
		return nil
	case StatusDegenerate:
		base = ErrDegenerate
	case StatusInvalidInput:
		base = ErrInvalidInput
	default:
		base = ErrInsufficientData
	}
	reason := strings.TrimPrefix(r.Reason, base.Error()+": ")
	if reason == "" || reason == base.Error() {
		return base
	}
	return fmt.Errorf("%w: %s", base, reason)
}

// Summary is the one-line status shown to the user.
func (r FitResult) Summary() string {
	switch r.Status {
	case StatusSolved:
		return fmt.Sprintf("Solved with %d points. RMS error: %.2f m", r.Pairs, r.RMSError)
	case StatusUnsolved:
		return "Need 3 completed point pairs."
	default:
		return "Could not solve transform: " + r.Reason
	}
}

// Residual returns the residual recorded for a pair id.
func (r FitResult) Residual(id int) (float64, bool) {
	for _, res := range r.Residuals {
		if res.PairID == id {
			return res.Error, true
		}
	}
	return 0, false
}
