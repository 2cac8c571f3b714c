package tui

import (
	"context"
	"strconv"

	"github.com/unowned-ai/ktl/pkg/db"
	"github.com/unowned-ai/ktl/pkg/journal"
	"github.com/unowned-ai/ktl/pkg/records"

	tea "github.com/charmbracelet/bubbletea"
)

// tableRowLimit caps the preview query run when a table is selected.
const tableRowLimit = 200

type tableInfo struct {
	name string
	rows int
}

type tablesMsg []tableInfo

type exercisesMsg []records.Exercise

type queryResultMsg struct {
	query  string
	result *records.Result
}

type queryErrorMsg struct {
	query string
	err   error
}

// List the store tables with their row counts
func listTables(store *journal.Store) tea.Cmd {
	return func() tea.Msg {
		stats := store.Stats()
		counts := map[string]int{
			"tags":           stats.Tags,
			"exercises":      stats.Exercises,
			"exercise_tags":  stats.ExerciseTags,
			"nutrition":      stats.Nutrition,
			"measurements":   stats.Measurements,
			"strength_sets":  stats.StrengthSets,
			"endurance_sets": stats.EnduranceSets,
		}
		tables := make(tablesMsg, 0, len(db.Tables))
		for _, name := range db.Tables {
			tables = append(tables, tableInfo{name: name, rows: counts[name]})
		}
		return tables
	}
}

// List the exercise catalogue
func listExercises(store *journal.Store) tea.Cmd {
	return func() tea.Msg {
		exercises, err := store.Exercises(context.Background())
		if err != nil {
			return err
		}
		return exercisesMsg(exercises)
	}
}

// Run a query; failures are reported as queryErrorMsg so the prompt keeps
// the text for editing.
func runQuery(store *journal.Store, query string) tea.Cmd {
	return func() tea.Msg {
		result, err := store.Query(context.Background(), query)
		if err != nil {
			return queryErrorMsg{query: query, err: err}
		}
		return queryResultMsg{query: query, result: result}
	}
}

func previewQuery(table string) string {
	return "SELECT * FROM " + table + " LIMIT " + strconv.Itoa(tableRowLimit)
}
