package diskstore

import (
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

type ReadOnlyBucket interface {
	Get([]byte) []byte
	ForEach(func(k, v []byte) error) error
}

// A bucket is a flat key value namespace. A single store holds multiple
// buckets, e.g. one for cached matrices per metric.
type Bucket interface {
	ReadOnlyBucket
	Put([]byte, []byte) error
	Delete([]byte) error
}

// A disk storage layer abstracts multiple buckets.
type DiskStore interface {
	// The path to where the store is located, "memory" for the in-memory
	// backend.
	Path() string
	CreateBucketsIfNotExists(bucketNames []string) error
	Read(bucketName string, f func(ReadOnlyBucket) error) error
	Write(bucketName string, f func(Bucket) error) error
	Close() error
}

// Open returns a bbolt backed store at the given path. Leave the path
// empty to get an in-memory store, used in tests and when caching is
// disabled.
func Open(path string) (DiskStore, error) {
	if path == "" {
		return newMemDiskStore(), nil
	}
	// ---------------------------
	bboltDB, err := bbolt.Open(path, 0644, &bbolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, fmt.Errorf("could not open db %s: %w", path, err)
	}
	return bboltDiskStore{bboltDB: bboltDB}, nil
}
