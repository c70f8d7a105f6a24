package datastore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distfind/distmat/models"
)

func tempStore(t *testing.T) *DataStore {
	ds, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, ds.Close())
	})
	return ds
}

var sampleDataset = models.Dataset{Rows: [][]float32{{0, 0}, {3, 4}}}

func TestDataStore_InsertGet(t *testing.T) {
	ds := tempStore(t)
	info, err := ds.Insert("triangle", sampleDataset)
	require.NoError(t, err)
	assert.NotEmpty(t, info.Id)
	assert.Equal(t, 2, info.NumRows)
	assert.Equal(t, 2, info.NumDims)
	assert.Equal(t, sampleDataset.ContentHash(), info.Hash)
	// ---------------------------
	gotInfo, err := ds.GetInfo(info.Id)
	require.NoError(t, err)
	assert.Equal(t, info, gotInfo)
	gotRows, err := ds.GetRows(info.Id)
	require.NoError(t, err)
	assert.Equal(t, sampleDataset.Rows, gotRows.Rows)
}

func TestDataStore_NotFound(t *testing.T) {
	ds := tempStore(t)
	_, err := ds.GetInfo("ca3d7b2a-8a77-4f7c-9ea5-45f2b1d5a7f0")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = ds.GetRows("ca3d7b2a-8a77-4f7c-9ea5-45f2b1d5a7f0")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDataStore_List(t *testing.T) {
	ds := tempStore(t)
	infos, err := ds.List()
	require.NoError(t, err)
	assert.Empty(t, infos)
	// ---------------------------
	first, err := ds.Insert("first", sampleDataset)
	require.NoError(t, err)
	second, err := ds.Insert("second", sampleDataset)
	require.NoError(t, err)
	infos, err = ds.List()
	require.NoError(t, err)
	assert.Len(t, infos, 2)
	ids := []string{infos[0].Id, infos[1].Id}
	assert.Contains(t, ids, first.Id)
	assert.Contains(t, ids, second.Id)
}

func TestDataStore_Delete(t *testing.T) {
	ds := tempStore(t)
	info, err := ds.Insert("ephemeral", sampleDataset)
	require.NoError(t, err)
	require.NoError(t, ds.Delete(info.Id))
	_, err = ds.GetInfo(info.Id)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = ds.GetRows(info.Id)
	assert.ErrorIs(t, err, ErrNotFound)
	// Deleting again is a no-op
	assert.NoError(t, ds.Delete(info.Id))
}
