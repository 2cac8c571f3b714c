//go:build tui

package main

import (
	"context"

	"github.com/unowned-ai/ktl/pkg/tui"

	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [journal]",
	Short: "Browse the journal in a terminal UI",
	Long:  `Load the journal and open an interactive query browser: pick a table to preview it or type SQL and run it.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, path, err := openStore(context.Background(), optionalArg(args, 0))
		if err != nil {
			return err
		}
		defer store.Close()

		return tui.ShowTUI(store, path)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
