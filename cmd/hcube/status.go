package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	typesstore "github.com/ProCityHub/hypercube/types/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the cube summary from the latest persisted run",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, runStore := openRunStore()
		defer db.Close()

		summary, err := runStore.GetSummary()
		if err != nil {
			if !errors.Is(errors.Cause(err), typesstore.ErrNotFound) {
				return err
			}

			// Empty store; report the unpropagated cube.
			cube, err := loadCube(runStore)
			if err != nil {
				return err
			}
			summary = cube.SummaryRecord()
		}

		density := 0.0
		if summary.NodeCount > 0 {
			density = float64(summary.ActiveNodes) /
				float64(summary.NodeCount)
		}

		fmt.Printf("dimensions:  %d\n", summary.Dimensions)
		fmt.Printf("nodes:       %d\n", summary.NodeCount)
		fmt.Printf("active:      %d\n", summary.ActiveNodes)
		fmt.Printf("density:     %.2f\n", density)
		fmt.Printf("runs:        %d\n", summary.Runs)
		if summary.Runs > 0 {
			fmt.Printf("last source: %d\n", summary.LastSource)
			fmt.Printf("last run:    %s\n", time.Unix(
				0,
				summary.Timestamp,
			).Format("2006-01-02 15:04:05"))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
