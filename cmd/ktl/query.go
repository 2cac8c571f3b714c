package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/unowned-ai/ktl/pkg/render"
)

var queryCmd = &cobra.Command{
	Use:   "query [sql] [journal]",
	Short: "Run an SQL query against the journal",
	Long: `Load the journal and run one SQL statement (SQLite dialect) against it.
The store is read-only, so only queries succeed.

Examples:

  ktl query "SELECT * FROM strength_sets WHERE exercise = 'squat'" journal.yaml
  ktl query --format table "SELECT date, calories FROM nutrition"`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat()
		if err != nil {
			return err
		}

		ctx := context.Background()
		store, _, err := openStore(ctx, optionalArg(args, 1))
		if err != nil {
			return err
		}
		defer store.Close()

		result, err := store.Query(ctx, args[0])
		if err != nil {
			return err
		}
		return render.Write(cmd.OutOrStdout(), format, result)
	},
}
