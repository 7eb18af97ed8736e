package store

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ProCityHub/hypercube/types/store"
	"github.com/ProCityHub/hypercube/wire"
)

// PebbleRunStore persists propagation run records. Run numbers are
// assigned from a monotonically increasing sequence at put time; the
// latest run number is tracked under a dedicated key so that restoring
// state on startup is a single point lookup.
type PebbleRunStore struct {
	db     store.KVDB
	logger *zap.Logger
}

var _ store.RunStore = (*PebbleRunStore)(nil)

func NewPebbleRunStore(db store.KVDB, logger *zap.Logger) *PebbleRunStore {
	return &PebbleRunStore{
		db:     db,
		logger: logger,
	}
}

func (p *PebbleRunStore) NewTransaction(indexed bool) (
	store.Transaction,
	error,
) {
	return p.db.NewBatch(indexed), nil
}

// PutRun persists a run record inside the given transaction. The next
// run number in sequence is assigned, written back onto the record, and
// returned. The transaction must be indexed so that sequence reads
// observe earlier writes in the same batch.
func (p *PebbleRunStore) PutRun(
	txn store.Transaction,
	run *wire.PropagationRun,
) (uint64, error) {
	timer := prometheus.NewTimer(PutRunDuration)
	defer timer.ObserveDuration()

	runNumber := uint64(1)
	if latest, err := p.latestRunNumber(txn); err == nil {
		runNumber = latest + 1
	} else if !errors.Is(errors.Cause(err), store.ErrNotFound) {
		PutRunTotal.WithLabelValues("error").Inc()
		return 0, errors.Wrap(err, "put run")
	}

	run.RunNumber = runNumber
	data, err := run.ToCanonicalBytes()
	if err != nil {
		PutRunTotal.WithLabelValues("error").Inc()
		return 0, errors.Wrap(err, "put run")
	}

	if err := txn.Set(runRecordKey(runNumber), data); err != nil {
		PutRunTotal.WithLabelValues("error").Inc()
		return 0, errors.Wrap(err, "put run")
	}

	latestValue := binary.BigEndian.AppendUint64(nil, runNumber)
	if err := txn.Set(runLatestKey(), latestValue); err != nil {
		PutRunTotal.WithLabelValues("error").Inc()
		return 0, errors.Wrap(err, "put run")
	}

	PutRunTotal.WithLabelValues("success").Inc()
	p.logger.Debug(
		"run persisted",
		zap.Uint64("run_number", runNumber),
		zap.Uint32("source", run.Source),
		zap.Uint64("active_count", run.ActiveCount),
	)

	return runNumber, nil
}

// GetRun retrieves a run record by number.
func (p *PebbleRunStore) GetRun(runNumber uint64) (
	*wire.PropagationRun,
	error,
) {
	timer := prometheus.NewTimer(GetRunDuration)
	defer timer.ObserveDuration()

	value, closer, err := p.db.Get(runRecordKey(runNumber))
	if err != nil {
		GetRunTotal.WithLabelValues("error").Inc()
		if isNotFound(err) {
			return nil, errors.Wrap(store.ErrNotFound, "get run")
		}
		return nil, errors.Wrap(err, "get run")
	}
	defer closer.Close()

	run := &wire.PropagationRun{}
	if err := run.FromCanonicalBytes(value); err != nil {
		GetRunTotal.WithLabelValues("error").Inc()
		return nil, errors.Wrap(err, "get run")
	}

	GetRunTotal.WithLabelValues("success").Inc()
	return run, nil
}

// GetLatestRun retrieves the most recent run record.
func (p *PebbleRunStore) GetLatestRun() (*wire.PropagationRun, error) {
	runNumber, err := p.latestRunNumber(p.db)
	if err != nil {
		return nil, errors.Wrap(err, "get latest run")
	}

	return p.GetRun(runNumber)
}

// RangeRuns iterates run records in [startRunNumber, endRunNumber] in
// ascending run order.
func (p *PebbleRunStore) RangeRuns(
	startRunNumber uint64,
	endRunNumber uint64,
) (store.TypedIterator[*wire.PropagationRun], error) {
	if startRunNumber > endRunNumber {
		return nil, errors.Wrap(
			errors.New("start number after end number"),
			"range runs",
		)
	}

	iter, err := p.db.NewIter(
		runRecordKey(startRunNumber),
		runRecordKey(endRunNumber+1),
	)
	if err != nil {
		return nil, errors.Wrap(err, "range runs")
	}

	return &PebbleRunIterator{i: iter}, nil
}

// PutSummary persists the whole-cube summary inside the given
// transaction, replacing any previous summary.
func (p *PebbleRunStore) PutSummary(
	txn store.Transaction,
	summary *wire.LatticeSummary,
) error {
	data, err := summary.ToCanonicalBytes()
	if err != nil {
		PutSummaryTotal.WithLabelValues("error").Inc()
		return errors.Wrap(err, "put summary")
	}

	if err := txn.Set(runSummaryKey(), data); err != nil {
		PutSummaryTotal.WithLabelValues("error").Inc()
		return errors.Wrap(err, "put summary")
	}

	PutSummaryTotal.WithLabelValues("success").Inc()
	return nil
}

// GetSummary retrieves the most recently persisted summary.
func (p *PebbleRunStore) GetSummary() (*wire.LatticeSummary, error) {
	value, closer, err := p.db.Get(runSummaryKey())
	if err != nil {
		GetSummaryTotal.WithLabelValues("error").Inc()
		if isNotFound(err) {
			return nil, errors.Wrap(store.ErrNotFound, "get summary")
		}
		return nil, errors.Wrap(err, "get summary")
	}
	defer closer.Close()

	summary := &wire.LatticeSummary{}
	if err := summary.FromCanonicalBytes(value); err != nil {
		GetSummaryTotal.WithLabelValues("error").Inc()
		return nil, errors.Wrap(err, "get summary")
	}

	GetSummaryTotal.WithLabelValues("success").Inc()
	return summary, nil
}

// getter is satisfied by both the database and its transactions, so the
// sequence can be read through either.
type getter interface {
	Get(key []byte) ([]byte, io.Closer, error)
}

func (p *PebbleRunStore) latestRunNumber(g getter) (uint64, error) {
	value, closer, err := g.Get(runLatestKey())
	if err != nil {
		if isNotFound(err) {
			return 0, errors.Wrap(store.ErrNotFound, "latest run number")
		}
		return 0, errors.Wrap(err, "latest run number")
	}
	defer closer.Close()

	if len(value) != 8 {
		return 0, errors.Wrap(
			errors.New("malformed latest run value"),
			"latest run number",
		)
	}

	return binary.BigEndian.Uint64(value), nil
}

type PebbleRunIterator struct {
	i store.Iterator
}

var _ store.TypedIterator[*wire.PropagationRun] = (*PebbleRunIterator)(nil)

func (p *PebbleRunIterator) First() bool {
	return p.i.First()
}

func (p *PebbleRunIterator) Next() bool {
	return p.i.Next()
}

func (p *PebbleRunIterator) Valid() bool {
	return p.i.Valid()
}

func (p *PebbleRunIterator) Value() (*wire.PropagationRun, error) {
	if !p.i.Valid() {
		return nil, store.ErrNotFound
	}

	key := p.i.Key()
	if _, err := extractRunNumberFromRunRecordKey(key); err != nil {
		return nil, errors.Wrap(err, "get run iterator value")
	}

	run := &wire.PropagationRun{}
	if err := run.FromCanonicalBytes(p.i.Value()); err != nil {
		return nil, errors.Wrap(err, "get run iterator value")
	}

	return run, nil
}

func (p *PebbleRunIterator) Close() error {
	return p.i.Close()
}
