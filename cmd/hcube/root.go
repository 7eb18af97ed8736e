package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ProCityHub/hypercube/config"
	"github.com/ProCityHub/hypercube/lattice"
	"github.com/ProCityHub/hypercube/store"
	typeslattice "github.com/ProCityHub/hypercube/types/lattice"
	typesstore "github.com/ProCityHub/hypercube/types/store"

	"github.com/pkg/errors"
)

var configPath string
var debug bool
var dbPathOverride string

var nodeConfig *config.Config
var logger *zap.Logger
var loggerCloser io.Closer

var rootCmd = &cobra.Command{
	Use:   "hcube",
	Short: "Binary hypercube lattice tool",
	Long: `hcube manages a d-dimensional binary hypercube lattice.
It runs full propagation traversals over the cube, persists each run,
and reports node and cube state from the persisted history.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if dbPathOverride != "" {
			cfg.DB.Path = dbPathOverride
		}
		nodeConfig = cfg

		logger, loggerCloser, err = cfg.CreateLogger(debug)
		if err != nil {
			return err
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if loggerCloser != nil {
			loggerCloser.Close()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&configPath,
		"config",
		"",
		"path to the yaml config file",
	)
	rootCmd.PersistentFlags().BoolVar(
		&debug,
		"debug",
		false,
		"enable debug logging",
	)
	rootCmd.PersistentFlags().StringVar(
		&dbPathOverride,
		"db",
		"",
		"override the store path from the config",
	)
}

// openRunStore opens the pebble-backed run store. The caller must close
// the returned database.
func openRunStore() (typesstore.KVDB, *store.PebbleRunStore) {
	db := store.NewPebbleDB(logger, &nodeConfig.DB)
	return db, store.NewPebbleRunStore(db, logger)
}

// loadCube reconstructs a cube from the latest persisted run. When the
// store holds no runs yet, a fresh cube of the configured dimension is
// returned.
func loadCube(runStore *store.PebbleRunStore) (*lattice.Cube, error) {
	run, err := runStore.GetLatestRun()
	if err != nil {
		if errors.Is(errors.Cause(err), typesstore.ErrNotFound) {
			return lattice.NewCube(logger, nodeConfig.Dimensions)
		}
		return nil, err
	}

	cube, err := lattice.NewCube(logger, int(run.Dimensions))
	if err != nil {
		return nil, err
	}

	state := typeslattice.NewActivationSet(cube.Nodes())
	if err := state.SetBytes(run.Activation); err != nil {
		return nil, err
	}

	if err := cube.Restore(
		state,
		run.Source,
		run.RunNumber,
		time.Unix(0, run.Timestamp),
	); err != nil {
		return nil, err
	}

	return cube, nil
}
