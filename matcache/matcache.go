/*
Package matcache caches computed distance matrices in a diskstore. Keys
combine the dataset content hash with the metric and method, so the same
rows uploaded twice share cached results while different methods never
shadow each other's low order bits.

Values are msgpack encoded and s2 compressed. Distance matrices compress
well, the diagonal is all zeros and the two triangles mirror each other.
*/
package matcache

import (
	"fmt"

	"github.com/klauspost/compress/s2"
	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/distfind/distmat/diskstore"
)

const matrixBucket = "matrices"

// ---------------------------

type Cache struct {
	store diskstore.DiskStore
}

// New wraps a diskstore for matrix caching. Open the store with an empty
// path for a memory-only cache.
func New(store diskstore.DiskStore) (*Cache, error) {
	if err := store.CreateBucketsIfNotExists([]string{matrixBucket}); err != nil {
		return nil, fmt.Errorf("could not create matrix bucket: %w", err)
	}
	return &Cache{store: store}, nil
}

func cacheKey(contentHash uint64, metric string, method string) []byte {
	return []byte(fmt.Sprintf("%016x/%s/%s", contentHash, metric, method))
}

// ---------------------------

// Get returns the cached matrix or ok=false on a miss. A corrupt entry is
// treated as a miss, the caller recomputes and overwrites it.
func (c *Cache) Get(contentHash uint64, metric string, method string) (matrix [][]float32, ok bool) {
	key := cacheKey(contentHash, metric, method)
	err := c.store.Read(matrixBucket, func(b diskstore.ReadOnlyBucket) error {
		compressed := b.Get(key)
		if compressed == nil {
			return nil
		}
		encoded, err := s2.Decode(nil, compressed)
		if err != nil {
			return err
		}
		if err := msgpack.Unmarshal(encoded, &matrix); err != nil {
			return err
		}
		ok = true
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("key", string(key)).Msg("matrix cache read failed")
		return nil, false
	}
	return matrix, ok
}

// Put stores a computed matrix.
func (c *Cache) Put(contentHash uint64, metric string, method string, matrix [][]float32) error {
	encoded, err := msgpack.Marshal(matrix)
	if err != nil {
		return fmt.Errorf("could not encode matrix: %w", err)
	}
	compressed := s2.Encode(nil, encoded)
	key := cacheKey(contentHash, metric, method)
	return c.store.Write(matrixBucket, func(b diskstore.Bucket) error {
		return b.Put(key, compressed)
	})
}
