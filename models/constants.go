package models

// Supported distance metrics. Euclidean is the primary contract, the rest
// share the same kernels.
const (
	DistanceEuclidean   = "euclidean"
	DistanceSqEuclidean = "sqeuclidean"
	DistanceDot         = "dot"
	DistanceCosine      = "cosine"
)

// Pairwise computation methods. All methods produce equivalent matrices,
// they only differ in how the work is laid out.
const (
	// One kernel call per pair, upper triangle mirrored.
	MethodNaive = "naive"
	// One full output row per outer step, optionally fanned out across
	// workers since output rows are disjoint.
	MethodRows = "rows"
	// Single gram matrix multiplication, distances recovered from dot
	// products.
	MethodGram = "gram"
)
