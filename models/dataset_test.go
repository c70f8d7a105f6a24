package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatasetValidate(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]float32
		wantErr bool
	}{
		{"SingleRow", [][]float32{{1, 2}}, false},
		{"SingleColumn", [][]float32{{1}, {2}, {3}}, false},
		{"Rectangular", [][]float32{{1, 2}, {3, 4}}, false},
		{"NoRows", [][]float32{}, true},
		{"NilRows", nil, true},
		{"EmptyRow", [][]float32{{}}, true},
		{"Ragged", [][]float32{{1, 2}, {3}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Dataset{Rows: tt.rows}.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDataset)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDatasetContentHash(t *testing.T) {
	a := Dataset{Rows: [][]float32{{1, 2}, {3, 4}}}
	b := Dataset{Rows: [][]float32{{1, 2}, {3, 4}}}
	c := Dataset{Rows: [][]float32{{1, 2}, {3, 5}}}
	assert.Equal(t, a.ContentHash(), b.ContentHash())
	assert.NotEqual(t, a.ContentHash(), c.ContentHash())
}

// The same flattened content reshaped is a different dataset, so the
// shape must feed the hash alongside the row data.
func TestDatasetContentHash_Shape(t *testing.T) {
	square := Dataset{Rows: [][]float32{{1, 2}, {3, 4}}}
	flat := Dataset{Rows: [][]float32{{1, 2, 3, 4}}}
	column := Dataset{Rows: [][]float32{{1}, {2}, {3}, {4}}}
	assert.NotEqual(t, square.ContentHash(), flat.ContentHash())
	assert.NotEqual(t, square.ContentHash(), column.ContentHash())
	assert.NotEqual(t, flat.ContentHash(), column.ContentHash())
}
