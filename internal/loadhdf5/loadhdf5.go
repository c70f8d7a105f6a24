package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/hdf5"

	"github.com/distfind/distmat/distance"
	"github.com/distfind/distmat/models"
)

/* Benchmark driver over ann-benchmarks style HDF5 datasets, e.g.
 * glove-25-angular from http://ann-benchmarks.com. Computes the pairwise
 * matrix locally with each method and reports timings. The full matrices
 * of these datasets do not fit in memory, so -rows caps how many rows are
 * taken from the train set. */

func normalise(row []float32) {
	var magnitude float32 = 0.0
	for _, v := range row {
		magnitude += v * v
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))
	for i, v := range row {
		row[i] = v / magnitude
	}
}

func loadHDF5(dataset string, maxRows int) [][]float32 {
	fname := fmt.Sprintf("data/%s.hdf5", dataset)
	log.Info().Str("fname", fname).Msg("loadHDF5")
	f, err := hdf5.OpenFile(fname, hdf5.F_ACC_RDONLY)
	if err != nil {
		log.Fatal().Err(err).Msg("loadHDF5")
	}
	// ---------------------------
	dset, err := f.OpenDataset("train")
	if err != nil {
		log.Fatal().Err(err).Msg("loadHDF5")
	}
	// ---------------------------
	dspace := dset.Space()
	dataBuf := make([]float32, dspace.SimpleExtentNPoints())
	if err := dset.Read(&dataBuf); err != nil {
		log.Fatal().Err(err).Msg("loadHDF5")
	}
	dims, _, err := dspace.SimpleExtentDims()
	if err != nil {
		log.Fatal().Err(err).Msg("loadHDF5")
	}
	// ---------------------------
	dset.Close()
	f.Close()
	log.Debug().Uint("dims[0]", dims[0]).Uint("dims[1]", dims[1]).Msg("loadHDF5")
	// ---------------------------
	numRows := int(dims[0])
	if maxRows > 0 && maxRows < numRows {
		numRows = maxRows
	}
	rows := make([][]float32, numRows)
	for i := 0; i < numRows; i++ {
		rows[i] = dataBuf[i*int(dims[1]) : (i+1)*int(dims[1])]
		if strings.Contains(dataset, "angular") {
			// Cosine assumes unit vectors
			normalise(rows[i])
		}
	}
	return rows
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	// ---------------------------
	dataset := flag.String("dataset", "glove-25-angular", "dataset to load")
	maxRows := flag.Int("rows", 10000, "max rows to take from the train set, 0 for all")
	metric := flag.String("metric", models.DistanceEuclidean, "distance metric")
	numWorkers := flag.Int("workers", 0, "workers for the rows method, 0 for one per CPU")
	flag.Parse()
	// ---------------------------
	rows := loadHDF5(*dataset, *maxRows)
	log.Info().Int("numRows", len(rows)).Int("numDims", len(rows[0])).Msg("dataset ready")
	// ---------------------------
	for _, method := range []string{models.MethodNaive, models.MethodRows, models.MethodGram} {
		startTime := time.Now()
		matrix, err := distance.Pairwise(rows, *metric, method, *numWorkers)
		if err != nil {
			log.Fatal().Err(err).Str("method", method).Msg("pairwise failed")
		}
		log.Info().Str("method", method).
			Dur("elapsed", time.Since(startTime)).
			Float32("sample", matrix[0][len(matrix)-1]).
			Msg("pairwise")
	}
}
