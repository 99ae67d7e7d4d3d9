package main

import (
	"github.com/spf13/cobra"
)

var (
	configPath string
	statePath  string

	rootCmd = &cobra.Command{
		Use:   "hexmill",
		Short: "Achievement predicate engine for hexagonal grid games",
		Long: `hexmill compiles achievement predicates, evaluates them against
game state snapshots, and serves an HTTP API for storing and testing
achievement definitions.`,
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML configuration file")
	evalCmd.Flags().StringVar(&statePath, "state", "", "path to a snapshot JSON file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(evalCmd)
}
