package distance

import (
	"fmt"
	"math"
	"runtime"

	"github.com/distfind/distmat/models"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// ---------------------------

func validateRows(rows [][]float32) error {
	if len(rows) == 0 {
		return fmt.Errorf("%w: no rows", models.ErrInvalidDataset)
	}
	numDims := len(rows[0])
	if numDims == 0 {
		return fmt.Errorf("%w: row 0 has no features", models.ErrInvalidDataset)
	}
	for i, row := range rows {
		if len(row) != numDims {
			return fmt.Errorf("%w: row %d has %d features, expected %d", models.ErrInvalidDataset, i, len(row), numDims)
		}
	}
	return nil
}

// Allocates an n by n matrix backed by a single contiguous buffer so the
// whole thing can be serialised or scanned without chasing row pointers.
func newMatrix(n int) [][]float32 {
	backing := make([]float32, n*n)
	m := make([][]float32, n)
	for i := range m {
		m[i] = backing[i*n : (i+1)*n]
	}
	return m
}

// ---------------------------

// Pairwise computes the full n by n distance matrix of the given rows. All
// methods produce equivalent matrices, naive and rows agree bit for bit
// because they share the same kernels, gram agrees within floating point
// tolerance. numWorkers only affects the rows method, zero means one
// worker per CPU.
func Pairwise(rows [][]float32, metric string, method string, numWorkers int) ([][]float32, error) {
	if err := validateRows(rows); err != nil {
		return nil, err
	}
	switch method {
	case models.MethodNaive:
		return pairwiseNaive(rows, metric)
	case models.MethodRows:
		return pairwiseRows(rows, metric, numWorkers)
	case models.MethodGram:
		return pairwiseGram(rows, metric)
	default:
		return nil, fmt.Errorf("unknown pairwise method: %s", method)
	}
}

// ---------------------------

/* The naive method is the correctness baseline. It walks the upper
 * triangle pair by pair and mirrors, so symmetry is exact by construction
 * and the work is halved. The diagonal is computed rather than assumed so
 * non-metric distances like dot keep their self-distance semantics. For
 * euclidean the kernel of a row against itself is exactly zero. */
func pairwiseNaive(rows [][]float32, metric string) ([][]float32, error) {
	distFn, err := GetDistanceFn(metric)
	if err != nil {
		return nil, err
	}
	n := len(rows)
	matrix := newMatrix(n)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			dist := distFn(rows[i], rows[j])
			matrix[i][j] = dist
			matrix[j][i] = dist
		}
	}
	return matrix, nil
}

/* The rows method produces one full output row per outer step. Output rows
 * are disjoint and the input is only read, so the outer loop fans out
 * across workers with no coordination beyond the errgroup. */
func pairwiseRows(rows [][]float32, metric string, numWorkers int) ([][]float32, error) {
	distFn, err := GetDistanceFn(metric)
	if err != nil {
		return nil, err
	}
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	n := len(rows)
	matrix := newMatrix(n)
	fillRow := func(i int) {
		rowOut := matrix[i]
		for j := 0; j < n; j++ {
			rowOut[j] = distFn(rows[i], rows[j])
		}
	}
	if numWorkers == 1 || n == 1 {
		for i := 0; i < n; i++ {
			fillRow(i)
		}
		return matrix, nil
	}
	var g errgroup.Group
	g.SetLimit(numWorkers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			fillRow(i)
			return nil
		})
	}
	// Workers never fail, Wait is only used as a barrier.
	_ = g.Wait()
	return matrix, nil
}

/* The gram method trades memory for a single large matrix multiplication:
 * G = X * X^T holds every pairwise dot product, and for the euclidean
 * family the distances fall out of G[i][i] + G[j][j] - 2*G[i][j]. That
 * expression can go slightly negative under rounding for near-identical
 * rows, so it is clamped before the square root and the diagonal is set to
 * exact zero. Accumulation happens in float64 inside gonum which is why
 * this method only agrees with the others within tolerance. */
func pairwiseGram(rows [][]float32, metric string) ([][]float32, error) {
	n := len(rows)
	numDims := len(rows[0])
	flat := make([]float64, n*numDims)
	for i, row := range rows {
		for j, v := range row {
			flat[i*numDims+j] = float64(v)
		}
	}
	x := mat.NewDense(n, numDims, flat)
	var gram mat.Dense
	gram.Mul(x, x.T())
	// ---------------------------
	matrix := newMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			dot := gram.At(i, j)
			switch metric {
			case models.DistanceEuclidean, models.DistanceSqEuclidean:
				if i == j {
					continue
				}
				sqDist := gram.At(i, i) + gram.At(j, j) - 2*dot
				if sqDist < 0 {
					sqDist = 0
				}
				if metric == models.DistanceEuclidean {
					matrix[i][j] = float32(math.Sqrt(sqDist))
				} else {
					matrix[i][j] = float32(sqDist)
				}
			case models.DistanceDot:
				matrix[i][j] = float32(-dot)
			case models.DistanceCosine:
				matrix[i][j] = float32(1 - dot)
			default:
				return nil, fmt.Errorf("unknown distance metric: %s", metric)
			}
		}
	}
	return matrix, nil
}
