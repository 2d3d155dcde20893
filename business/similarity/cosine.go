package similarity

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrVectorLengthMismatch = errors.New("vector length mismatch")
	ErrZeroVector           = errors.New("zero-magnitude vector")
)

// Cosine computes the cosine similarity of two equal-length vectors.
// Unlike a plain dot product it refuses zero vectors, where the angle is undefined.
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrVectorLengthMismatch
	}
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0, ErrZeroVector
	}
	return clamp(floats.Dot(a, b) / (na * nb)), nil
}

// rounding can push |cos| slightly past 1
func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
