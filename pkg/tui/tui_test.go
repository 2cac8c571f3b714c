package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/unowned-ai/ktl/pkg/journal"

	tea "github.com/charmbracelet/bubbletea"
)

const testJournal = `
config:
  exercises:
    squat:
      type: strength
      tags: [legs]
journal:
  2024-03-01:
    workout:
      squat: 100kgx5x3
`

func setupTestModel(t *testing.T) model {
	t.Helper()

	store, err := journal.LoadBytes(context.Background(), []byte(testJournal))
	if err != nil {
		t.Fatalf("Failed to load test journal: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return initModel(store, "/tmp/journal.yaml")
}

// update feeds msg to m and runs the returned command once, feeding its
// message back in.
func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()

	next, cmd := m.Update(msg)
	m = next.(model)
	if cmd != nil {
		if out := cmd(); out != nil {
			if _, isBatch := out.(tea.BatchMsg); !isBatch {
				next, _ = m.Update(out)
				m = next.(model)
			}
		}
	}
	return m
}

func TestModel_LoadsTablesAndPreviewsFirst(t *testing.T) {
	m := setupTestModel(t)

	m = update(t, m, listTables(m.store)())
	if len(m.tables) != 7 {
		t.Fatalf("Expected 7 tables, got %d", len(m.tables))
	}
	if m.result == nil || m.lastQuery != previewQuery("tags") {
		t.Errorf("Expected a preview of the first table, got query %q", m.lastQuery)
	}

	m = update(t, m, listExercises(m.store)())
	if len(m.exercises) != 1 || m.exercises[0].Name != "squat" {
		t.Errorf("Unexpected exercises: %+v", m.exercises)
	}
}

func TestModel_NavigateTables(t *testing.T) {
	m := setupTestModel(t)
	m = update(t, m, listTables(m.store)())

	for i := 0; i < 5; i++ {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.tableCursor != 5 || m.tables[5].name != "strength_sets" {
		t.Fatalf("Expected strength_sets to be selected, got cursor %d", m.tableCursor)
	}
	if len(m.result.Rows) != 3 {
		t.Errorf("Expected 3 strength set rows, got %d", len(m.result.Rows))
	}
	if m.queryInput.Value() != previewQuery("strength_sets") {
		t.Errorf("Expected the preview query in the prompt, got %q", m.queryInput.Value())
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.tableCursor != 4 {
		t.Errorf("Expected cursor 4, got %d", m.tableCursor)
	}
}

func TestModel_RunQuery(t *testing.T) {
	m := setupTestModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.columnFocus != focusQuery || !m.queryInput.Focused() {
		t.Fatalf("Expected the query prompt to be focused")
	}

	m.queryInput.SetValue("SELECT SUM(weight * reps) AS volume FROM strength_sets")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.queryErr != nil {
		t.Fatalf("Query failed: %v", m.queryErr)
	}
	if got := m.result.Strings(); len(got) != 1 || got[0][0] != "1500" {
		t.Errorf("Expected volume 1500, got %v", got)
	}

	m.queryInput.SetValue("DELETE FROM strength_sets")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.queryErr == nil {
		t.Errorf("Expected writes to fail on the read-only store")
	}
	if m.result == nil {
		t.Errorf("Expected the previous result to be kept after an error")
	}
}

func TestModel_ScrollResult(t *testing.T) {
	m := setupTestModel(t)
	m = update(t, m, runQuery(m.store, "SELECT * FROM strength_sets")())

	m.scrollResult(10)
	if m.resultOffset != 2 {
		t.Errorf("Expected offset clamped to 2, got %d", m.resultOffset)
	}
	m.scrollResult(-10)
	if m.resultOffset != 0 {
		t.Errorf("Expected offset clamped to 0, got %d", m.resultOffset)
	}
}

func TestModel_View(t *testing.T) {
	m := setupTestModel(t)
	if got := m.View(); got != "Loading..." {
		t.Errorf("Expected a loading view before the first resize, got %q", got)
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = update(t, m, listTables(m.store)())
	m = update(t, m, listExercises(m.store)())

	view := m.View()
	for _, want := range []string{"journal.yaml", "Tables", "strength_sets (3)", "Exercises", "squat"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q", want)
		}
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !m.quitting || m.View() != "" {
		t.Errorf("Expected q to quit from the tables column")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"squat", 10, "squat"},
		{"strength_sets", 8, "streng.."},
		{"squat", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.text, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}
