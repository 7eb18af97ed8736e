package store

import (
	"io"
	"os"

	"github.com/cockroachdb/pebble"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ProCityHub/hypercube/config"
	"github.com/ProCityHub/hypercube/types/store"
)

type PebbleDB struct {
	logger *zap.Logger
	config *config.DBConfig
	db     *pebble.DB
}

var _ store.KVDB = (*PebbleDB)(nil)

// NewPebbleDB opens (or creates) the pebble database at the configured
// path.
func NewPebbleDB(logger *zap.Logger, cfg *config.DBConfig) *PebbleDB {
	if _, err := os.Stat(cfg.Path); err == nil {
		logger.Info("store found", zap.String("path", cfg.Path))
	} else {
		logger.Info("store created", zap.String("path", cfg.Path))
	}

	db, err := pebble.Open(cfg.Path, &pebble.Options{})
	if err != nil {
		logger.Panic("could not open store", zap.Error(err))
	}

	return &PebbleDB{logger, cfg, db}
}

func (p *PebbleDB) Get(key []byte) ([]byte, io.Closer, error) {
	return p.db.Get(key)
}

func (p *PebbleDB) Set(key, value []byte) error {
	return p.db.Set(key, value, &pebble.WriteOptions{Sync: true})
}

func (p *PebbleDB) Delete(key []byte) error {
	return p.db.Delete(key, &pebble.WriteOptions{Sync: true})
}

func (p *PebbleDB) NewBatch(indexed bool) store.Transaction {
	if indexed {
		return &PebbleTransaction{
			b: p.db.NewIndexedBatch(),
		}
	} else {
		return &PebbleTransaction{
			b: p.db.NewBatch(),
		}
	}
}

func (p *PebbleDB) NewIter(lowerBound []byte, upperBound []byte) (
	store.Iterator,
	error,
) {
	return p.db.NewIter(&pebble.IterOptions{
		LowerBound: lowerBound,
		UpperBound: upperBound,
	})
}

func (p *PebbleDB) Compact(start, end []byte, parallelize bool) error {
	return p.db.Compact(start, end, parallelize)
}

func (p *PebbleDB) DeleteRange(start, end []byte) error {
	return p.db.DeleteRange(start, end, &pebble.WriteOptions{Sync: true})
}

func (p *PebbleDB) Close() error {
	return p.db.Close()
}

type PebbleTransaction struct {
	b *pebble.Batch
}

var _ store.Transaction = (*PebbleTransaction)(nil)

func (t *PebbleTransaction) Get(key []byte) ([]byte, io.Closer, error) {
	return t.b.Get(key)
}

func (t *PebbleTransaction) Set(key []byte, value []byte) error {
	return t.b.Set(key, value, &pebble.WriteOptions{Sync: true})
}

func (t *PebbleTransaction) Delete(key []byte) error {
	return t.b.Delete(key, &pebble.WriteOptions{Sync: true})
}

func (t *PebbleTransaction) Commit() error {
	return t.b.Commit(&pebble.WriteOptions{Sync: true})
}

func (t *PebbleTransaction) Abort() error {
	return t.b.Close()
}

// isNotFound folds pebble's sentinel into the store-level one.
func isNotFound(err error) bool {
	return errors.Is(err, pebble.ErrNotFound)
}
