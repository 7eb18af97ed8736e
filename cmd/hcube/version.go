package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ProCityHub/hypercube/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.GetVersionString())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
