package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/unowned-ai/ktl/pkg/records"
	"github.com/unowned-ai/ktl/pkg/render"
	"github.com/unowned-ai/ktl/pkg/sets"
)

var setsCmd = &cobra.Command{
	Use:   "sets [strength|distance-cardio] [text]...",
	Short: "Expand set shorthand without loading a journal",
	Long: `Parse workout shorthand with the grammar of the given exercise type and
print one row per set. Useful to check notation before adding it to a journal.

Examples:

  ktl sets strength "60kgx5x3 70kgx(5+4) 10x2"
  ktl sets distance-cardio 5km@5.5min/km+400m`,
	Args:      cobra.MinimumNArgs(2),
	ValidArgs: []string{sets.Strength.String(), sets.DistanceCardio.String()},
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat()
		if err != nil {
			return err
		}

		kind, err := sets.ParseKind(args[0])
		if err != nil {
			return err
		}
		parsed, err := sets.Parse(kind, args[1:]...)
		if err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Parsed %d %s sets: %s\n", len(parsed), kind, describeSets(parsed))
		}

		result, err := setsResult(kind, parsed)
		if err != nil {
			return err
		}
		return render.Write(cmd.OutOrStdout(), format, result)
	},
}

func setsResult(kind sets.Kind, parsed []sets.Set) (*records.Result, error) {
	result := &records.Result{Rows: [][]any{}}
	switch kind {
	case sets.Strength:
		result.Columns = []string{"set", "weight", "unit", "reps"}
	case sets.DistanceCardio:
		result.Columns = []string{"set", "distance", "distance_unit", "speed", "speed_unit"}
	default:
		return nil, fmt.Errorf("%w: %s", sets.ErrUnknownKind, kind)
	}

	for _, s := range parsed {
		switch s := s.(type) {
		case sets.StrengthSet:
			result.Rows = append(result.Rows, []any{s.String(), s.Value, s.Unit, int64(s.Reps)})
		case sets.EnduranceSet:
			result.Rows = append(result.Rows, []any{s.String(), s.Distance, s.DistanceUnit, s.Speed, s.SpeedUnit})
		default:
			return nil, fmt.Errorf("unexpected set type %T", s)
		}
	}
	return result, nil
}

func describeSets(parsed []sets.Set) string {
	names := make([]string, len(parsed))
	for i, s := range parsed {
		names[i] = s.String()
	}
	return strings.Join(names, " ")
}
