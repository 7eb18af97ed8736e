package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var infoNode uint32
var infoExportPath string

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show a node's label, state and neighbors",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, runStore := openRunStore()
		defer db.Close()

		cube, err := loadCube(runStore)
		if err != nil {
			return err
		}

		info, err := cube.NodeInfo(infoNode)
		if err != nil {
			return err
		}

		if infoExportPath != "" {
			snapshot, err := cube.NodeRecord(infoNode)
			if err != nil {
				return err
			}

			data, err := snapshot.ToCanonicalBytes()
			if err != nil {
				return err
			}

			if err := os.WriteFile(
				infoExportPath,
				data,
				0o644,
			); err != nil {
				return errors.Wrap(err, "export node snapshot")
			}
		}

		state := "inactive"
		if info.State {
			state = "active"
		}

		fmt.Printf("node %d (%s): %s\n", info.ID, info.BinaryLabel, state)
		fmt.Printf("neighbors:")
		for _, id := range info.NeighborIDs {
			fmt.Printf(" %d", id)
		}
		fmt.Println()

		return nil
	},
}

func init() {
	infoCmd.Flags().Uint32Var(
		&infoNode,
		"node",
		0,
		"node id to inspect",
	)
	infoCmd.Flags().StringVar(
		&infoExportPath,
		"export",
		"",
		"write the node snapshot in canonical form to this path",
	)
	rootCmd.AddCommand(infoCmd)
}
