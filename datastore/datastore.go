/*
Package datastore persists uploaded datasets in a badger database. Rows
and metadata are stored under separate key prefixes so listing datasets
never touches the row data, which can be large.
*/
package datastore

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/distfind/distmat/models"
)

// ---------------------------

var ErrNotFound = errors.New("dataset not found")

const (
	infoPrefix = "I/"
	rowsPrefix = "R/"
)

// ---------------------------

// BadgerLogger routes badger's internal logging through zerolog.
type BadgerLogger struct{}

func (l BadgerLogger) Errorf(format string, args ...interface{}) {
	log.Error().Str("component", "badger").Msgf(strings.TrimSpace(format), args...)
}

func (l BadgerLogger) Warningf(format string, args ...interface{}) {
	log.Warn().Str("component", "badger").Msgf(strings.TrimSpace(format), args...)
}

func (l BadgerLogger) Infof(format string, args ...interface{}) {
	log.Info().Str("component", "badger").Msgf(strings.TrimSpace(format), args...)
}

func (l BadgerLogger) Debugf(format string, args ...interface{}) {
	log.Debug().Str("component", "badger").Msgf(strings.TrimSpace(format), args...)
}

// ---------------------------

type DataStore struct {
	db *badger.DB
}

func Open(rootDir string) (*DataStore, error) {
	opts := badger.DefaultOptions(rootDir).WithLogger(BadgerLogger{})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}
	log.Info().Str("rootDir", rootDir).Msg("datastore opened")
	return &DataStore{db: db}, nil
}

func (ds *DataStore) Close() error {
	return ds.db.Close()
}

// ---------------------------

func infoKey(id string) []byte {
	return []byte(infoPrefix + id)
}

func rowsKey(id string) []byte {
	return []byte(rowsPrefix + id)
}

// ---------------------------

// Insert stores the dataset rows and metadata under a fresh id. The
// dataset must already be validated by the caller.
func (ds *DataStore) Insert(name string, dataset models.Dataset) (models.DatasetInfo, error) {
	info := models.DatasetInfo{
		Id:        uuid.New().String(),
		Name:      name,
		NumRows:   len(dataset.Rows),
		NumDims:   len(dataset.Rows[0]),
		Hash:      dataset.ContentHash(),
		CreatedAt: time.Now().Unix(),
	}
	infoBytes, err := msgpack.Marshal(info)
	if err != nil {
		return info, fmt.Errorf("could not encode dataset info: %w", err)
	}
	rowsBytes, err := msgpack.Marshal(dataset)
	if err != nil {
		return info, fmt.Errorf("could not encode dataset rows: %w", err)
	}
	err = ds.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(infoKey(info.Id), infoBytes); err != nil {
			return err
		}
		return txn.Set(rowsKey(info.Id), rowsBytes)
	})
	if err != nil {
		return info, fmt.Errorf("could not write dataset: %w", err)
	}
	return info, nil
}

// GetInfo returns the metadata of a stored dataset.
func (ds *DataStore) GetInfo(id string) (info models.DatasetInfo, err error) {
	err = ds.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(infoKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return msgpack.Unmarshal(val, &info)
		})
	})
	return
}

// GetRows returns the full row data of a stored dataset.
func (ds *DataStore) GetRows(id string) (dataset models.Dataset, err error) {
	err = ds.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(rowsKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return msgpack.Unmarshal(val, &dataset)
		})
	})
	return
}

// List returns the metadata of every stored dataset. Only the info prefix
// is scanned so row payloads are never loaded.
func (ds *DataStore) List() ([]models.DatasetInfo, error) {
	infos := make([]models.DatasetInfo, 0)
	err := ds.db.View(func(txn *badger.Txn) error {
		itOpts := badger.DefaultIteratorOptions
		itOpts.Prefix = []byte(infoPrefix)
		it := txn.NewIterator(itOpts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var info models.DatasetInfo
			err := it.Item().Value(func(val []byte) error {
				return msgpack.Unmarshal(val, &info)
			})
			if err != nil {
				return err
			}
			infos = append(infos, info)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not list datasets: %w", err)
	}
	return infos, nil
}

// Delete removes a dataset and its rows. Deleting an unknown id is not an
// error, the end state is the same.
func (ds *DataStore) Delete(id string) error {
	return ds.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(infoKey(id)); err != nil {
			return err
		}
		return txn.Delete(rowsKey(id))
	})
}
