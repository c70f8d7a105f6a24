package distance

import (
	"fmt"
	"math"

	"github.com/distfind/distmat/models"
)

// DistFunc computes the distance between two equal length vectors.
type DistFunc func(x, y []float32) float32

/* The kernel variables default to the pure Go implementations. On amd64
 * with the right CPU features they are swapped for the generated assembly,
 * see distance_amd64.go. Everything above the kernels is arch-independent. */
var squaredEuclideanImpl DistFunc = squaredEuclideanDistancePureGo
var dotProductImpl DistFunc = dotProductPureGo

func euclideanDistance(x, y []float32) float32 {
	return float32(math.Sqrt(float64(squaredEuclideanImpl(x, y))))
}

func dotProductDistance(x, y []float32) float32 {
	return -dotProductImpl(x, y)
}

// Assumes vectors are normalised, same convention as most embedding
// pipelines ship with.
func cosineDistance(x, y []float32) float32 {
	return 1 - dotProductImpl(x, y)
}

// GetDistanceFn returns the pairwise element function by metric name.
func GetDistanceFn(name string) (DistFunc, error) {
	switch name {
	case models.DistanceEuclidean:
		return euclideanDistance, nil
	case models.DistanceSqEuclidean:
		return squaredEuclideanImpl, nil
	case models.DistanceDot:
		return dotProductDistance, nil
	case models.DistanceCosine:
		return cosineDistance, nil
	default:
		return nil, fmt.Errorf("unknown distance metric: %s", name)
	}
}
