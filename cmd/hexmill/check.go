package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hexmill/hexmill/internal/goalexpr"
)

var checkCmd = &cobra.Command{
	Use:   "check <expression>",
	Short: "Compile-check an achievement expression",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	goal, err := goalexpr.Compile(args[0], nil)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok: %s\n", goal.Kind())
	return nil
}
