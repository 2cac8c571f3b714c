package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/unowned-ai/ktl/pkg/journal"
	"github.com/unowned-ai/ktl/pkg/render"
	"github.com/unowned-ai/ktl/pkg/utils"
)

// openStore resolves the journal path (argument first, then --journal, then
// the environment and default) and loads it.
func openStore(ctx context.Context, arg string) (*journal.Store, string, error) {
	path, err := utils.ResolveJournalPath(arg, journalPath)
	if err != nil {
		return nil, "", err
	}

	var opts []journal.Option
	if verbose {
		opts = append(opts, journal.WithLog(os.Stderr))
		fmt.Fprintf(os.Stderr, "Loading journal: %s\n", path)
	}

	store, err := journal.LoadFile(ctx, path, opts...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load %s: %w", path, err)
	}
	return store, path, nil
}

func outputFormat() (render.Format, error) {
	return render.ParseFormat(formatFlag)
}

func optionalArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func printCounts(w io.Writer, path string, store *journal.Store) {
	c := store.Stats()
	fmt.Fprintf(w, "Journal OK: %s\n", path)
	fmt.Fprintf(w, "  tags:           %d\n", c.Tags)
	fmt.Fprintf(w, "  exercises:      %d\n", c.Exercises)
	fmt.Fprintf(w, "  exercise_tags:  %d\n", c.ExerciseTags)
	fmt.Fprintf(w, "  nutrition:      %d\n", c.Nutrition)
	fmt.Fprintf(w, "  measurements:   %d\n", c.Measurements)
	fmt.Fprintf(w, "  strength_sets:  %d\n", c.StrengthSets)
	fmt.Fprintf(w, "  endurance_sets: %d\n", c.EnduranceSets)
}
