package store

import (
	"github.com/ProCityHub/hypercube/wire"
)

// RunStore persists propagation run records. Runs are keyed by a
// monotonically increasing run number assigned at put time.
type RunStore interface {
	NewTransaction(indexed bool) (Transaction, error)

	// PutRun persists a run record inside the given transaction and
	// assigns its run number. The assigned number is returned and also
	// written back onto the record. The transaction must be indexed.
	PutRun(txn Transaction, run *wire.PropagationRun) (uint64, error)

	// GetRun retrieves a run record by number. Returns ErrNotFound when
	// no such run exists.
	GetRun(runNumber uint64) (*wire.PropagationRun, error)

	// GetLatestRun retrieves the most recent run record. Returns
	// ErrNotFound on an empty store.
	GetLatestRun() (*wire.PropagationRun, error)

	// RangeRuns iterates run records in [startRunNumber, endRunNumber]
	// in ascending run order.
	RangeRuns(startRunNumber uint64, endRunNumber uint64) (
		TypedIterator[*wire.PropagationRun],
		error,
	)

	// PutSummary persists the whole-cube summary inside the given
	// transaction, replacing any previous summary.
	PutSummary(txn Transaction, summary *wire.LatticeSummary) error

	// GetSummary retrieves the most recently persisted summary. Returns
	// ErrNotFound on an empty store.
	GetSummary() (*wire.LatticeSummary, error)
}
