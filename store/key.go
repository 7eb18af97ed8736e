package store

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

const (
	// RUN prefixes all propagation run data.
	RUN = 0x01

	// Sub-prefixes under RUN
	RUN_RECORD  = 0x00
	RUN_LATEST  = 0x01
	RUN_SUMMARY = 0x02
)

func runRecordKey(runNumber uint64) []byte {
	key := []byte{RUN, RUN_RECORD}
	key = binary.BigEndian.AppendUint64(key, runNumber)
	return key
}

func runLatestKey() []byte {
	return []byte{RUN, RUN_LATEST}
}

func runSummaryKey() []byte {
	return []byte{RUN, RUN_SUMMARY}
}

func extractRunNumberFromRunRecordKey(key []byte) (uint64, error) {
	if len(key) != 10 || key[0] != RUN || key[1] != RUN_RECORD {
		return 0, errors.New("invalid run record key")
	}

	return binary.BigEndian.Uint64(key[2:]), nil
}
