package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	typesstore "github.com/ProCityHub/hypercube/types/store"
	"github.com/ProCityHub/hypercube/wire"
)

var historyLimit uint64

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List persisted propagation runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, runStore := openRunStore()
		defer db.Close()

		latest, err := runStore.GetLatestRun()
		if err != nil {
			if errors.Is(errors.Cause(err), typesstore.ErrNotFound) {
				fmt.Println("no runs recorded")
				return nil
			}
			return err
		}

		start := uint64(1)
		if historyLimit > 0 && latest.RunNumber > historyLimit {
			start = latest.RunNumber - historyLimit + 1
		}

		iter, err := runStore.RangeRuns(start, latest.RunNumber)
		if err != nil {
			return err
		}
		defer iter.Close()

		runs := []*wire.PropagationRun{}
		for iter.First(); iter.Valid(); iter.Next() {
			run, err := iter.Value()
			if err != nil {
				return err
			}
			runs = append(runs, run)
		}

		for i := len(runs) - 1; i >= 0; i-- {
			run := runs[i]
			nodes := uint64(1) << run.Dimensions
			fmt.Printf(
				"run %d: %s  source=%d  visited=%d/%d\n",
				run.RunNumber,
				time.Unix(0, run.Timestamp).Format("2006-01-02 15:04:05"),
				run.Source,
				run.ActiveCount,
				nodes,
			)
		}

		return nil
	},
}

func init() {
	historyCmd.Flags().Uint64Var(
		&historyLimit,
		"limit",
		10,
		"maximum number of runs to list (0 for all)",
	)
	rootCmd.AddCommand(historyCmd)
}
