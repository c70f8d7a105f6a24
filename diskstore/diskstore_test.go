package diskstore_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distfind/distmat/diskstore"
)

func withDiskStores(t *testing.T, f func(t *testing.T, ds diskstore.DiskStore)) {
	t.Run("Memory", func(t *testing.T) {
		ds, err := diskstore.Open("")
		require.NoError(t, err)
		f(t, ds)
		require.NoError(t, ds.Close())
	})
	t.Run("BBolt", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.bbolt")
		ds, err := diskstore.Open(path)
		require.NoError(t, err)
		f(t, ds)
		require.NoError(t, ds.Close())
	})
}

func TestDiskStore_ReadWrite(t *testing.T) {
	withDiskStores(t, func(t *testing.T, ds diskstore.DiskStore) {
		require.NoError(t, ds.CreateBucketsIfNotExists([]string{"testing"}))
		err := ds.Write("testing", func(b diskstore.Bucket) error {
			return b.Put([]byte("hello"), []byte("world"))
		})
		require.NoError(t, err)
		err = ds.Read("testing", func(b diskstore.ReadOnlyBucket) error {
			assert.Equal(t, []byte("world"), b.Get([]byte("hello")))
			assert.Nil(t, b.Get([]byte("missing")))
			return nil
		})
		require.NoError(t, err)
	})
}

func TestDiskStore_Delete(t *testing.T) {
	withDiskStores(t, func(t *testing.T, ds diskstore.DiskStore) {
		require.NoError(t, ds.CreateBucketsIfNotExists([]string{"testing"}))
		err := ds.Write("testing", func(b diskstore.Bucket) error {
			if err := b.Put([]byte("hello"), []byte("world")); err != nil {
				return err
			}
			return b.Delete([]byte("hello"))
		})
		require.NoError(t, err)
		err = ds.Read("testing", func(b diskstore.ReadOnlyBucket) error {
			assert.Nil(t, b.Get([]byte("hello")))
			return nil
		})
		require.NoError(t, err)
	})
}

func TestDiskStore_ForEach(t *testing.T) {
	withDiskStores(t, func(t *testing.T, ds diskstore.DiskStore) {
		require.NoError(t, ds.CreateBucketsIfNotExists([]string{"testing"}))
		err := ds.Write("testing", func(b diskstore.Bucket) error {
			if err := b.Put([]byte("a"), []byte("1")); err != nil {
				return err
			}
			return b.Put([]byte("b"), []byte("2"))
		})
		require.NoError(t, err)
		seen := make(map[string]string)
		err = ds.Read("testing", func(b diskstore.ReadOnlyBucket) error {
			return b.ForEach(func(k, v []byte) error {
				seen[string(k)] = string(v)
				return nil
			})
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"a": "1", "b": "2"}, seen)
	})
}

func TestDiskStore_UnknownBucket(t *testing.T) {
	withDiskStores(t, func(t *testing.T, ds diskstore.DiskStore) {
		err := ds.Read("missing", func(b diskstore.ReadOnlyBucket) error { return nil })
		assert.Error(t, err)
		err = ds.Write("missing", func(b diskstore.Bucket) error { return nil })
		assert.Error(t, err)
	})
}
