package models

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/cespare/xxhash"
)

// ---------------------------

var ErrInvalidDataset = errors.New("invalid dataset")

// ---------------------------

// Dataset is an immutable rectangular table of float32 rows. It is the
// only input to the pairwise distance computation.
type Dataset struct {
	Rows [][]float32 `json:"rows" msgpack:"rows"`
}

// DatasetInfo is the stored metadata of a dataset. The content hash keys
// the matrix cache so re-uploads of the same rows share cached results.
type DatasetInfo struct {
	Id        string `json:"id" msgpack:"id"`
	Name      string `json:"name" msgpack:"name"`
	NumRows   int    `json:"numRows" msgpack:"numRows"`
	NumDims   int    `json:"numDims" msgpack:"numDims"`
	Hash      uint64 `json:"hash" msgpack:"hash"`
	CreatedAt int64  `json:"createdAt" msgpack:"createdAt"`
}

// ---------------------------

// Validate checks the dataset is non-empty and rectangular. Single row or
// single dimension datasets are valid, they just produce small matrices.
func (d Dataset) Validate() error {
	if len(d.Rows) == 0 {
		return fmt.Errorf("%w: no rows", ErrInvalidDataset)
	}
	numDims := len(d.Rows[0])
	if numDims == 0 {
		return fmt.Errorf("%w: row 0 has no features", ErrInvalidDataset)
	}
	for i, row := range d.Rows {
		if len(row) != numDims {
			return fmt.Errorf("%w: row %d has %d features, expected %d", ErrInvalidDataset, i, len(row), numDims)
		}
	}
	return nil
}

// ContentHash returns the xxhash of the dataset shape followed by the row
// data in row-major order. Two datasets with identical rows always hash
// the same regardless of name. The shape prefix matters: the same
// flattened content reshaped is a different dataset and must never share
// a hash, the matrix cache is keyed on it.
func (d Dataset) ContentHash() uint64 {
	hasher := xxhash.New()
	numDims := 0
	if len(d.Rows) > 0 {
		numDims = len(d.Rows[0])
	}
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[:4], uint32(len(d.Rows)))
	binary.LittleEndian.PutUint32(buf[4:], uint32(numDims))
	hasher.Write(buf[:])
	for _, row := range d.Rows {
		for _, v := range row {
			binary.LittleEndian.PutUint32(buf[:4], math.Float32bits(v))
			hasher.Write(buf[:4])
		}
	}
	return hasher.Sum64()
}
