package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hexmill/hexmill/internal/api"
	"github.com/hexmill/hexmill/internal/goalexpr"
	"github.com/hexmill/hexmill/internal/hexgrid"
)

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate an expression against a game state snapshot",
	Long: `Evaluate compiles an achievement expression and tests it against a
snapshot file. Without --state the expression runs against an empty
radius 5 board.`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func runEval(cmd *cobra.Command, args []string) error {
	goal, err := goalexpr.Compile(args[0], nil)
	if err != nil {
		return err
	}

	state, err := loadState(statePath)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%v\n", goal.Test(state))
	return nil
}

func loadState(path string) (hexgrid.GameState, error) {
	if path == "" {
		return &hexgrid.Snapshot{Board: hexgrid.NewEngine(5)}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	var payload api.StatePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	snap, err := payload.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap, nil
}
