package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/unowned-ai/ktl/pkg/render"
)

var checkCmd = &cobra.Command{
	Use:   "check [journal]",
	Short: "Validate the journal and print row counts",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat()
		if err != nil {
			return err
		}

		store, path, err := openStore(context.Background(), optionalArg(args, 0))
		if err != nil {
			return err
		}
		defer store.Close()

		if format == render.JSON {
			output, err := json.MarshalIndent(store.Stats(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to format counts: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(output))
			return nil
		}
		printCounts(cmd.OutOrStdout(), path, store)
		return nil
	},
}
