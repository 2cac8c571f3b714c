package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/unowned-ai/ktl/pkg/journal"
	"github.com/unowned-ai/ktl/pkg/records"
	"github.com/unowned-ai/ktl/pkg/render"

	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	focusTables = iota
	focusQuery
)

type model struct {
	tables    []tableInfo
	exercises []records.Exercise

	result    *records.Result // Last successful query result
	lastQuery string
	queryErr  error

	columnFocus int // 0 = tables, 1 = query prompt
	width       int // Current terminal width (for layout)
	height      int // Current terminal height
	err         error

	store       *journal.Store
	journalFile string

	quitting bool

	tableCursor  int // Index of selected table
	resultOffset int // First result row shown
	queryInput   textinput.Model
}

// Initialize TUI model
func initModel(store *journal.Store, journalPath string) model {
	qi := textinput.New()
	qi.Placeholder = "SELECT * FROM strength_sets WHERE exercise = 'squat'"
	qi.Prompt = "sql> "
	qi.CharLimit = 4096

	return model{
		store:       store,
		journalFile: filepath.Base(journalPath),
		columnFocus: focusTables,
		queryInput:  qi,
	}
}

// Execute commands concurrently with no ordering guarantees during initialization
func (m model) Init() tea.Cmd {
	return tea.Batch(
		listTables(m.store),
		listExercises(m.store),
	)
}

// Processes events like window resize, errors, loaded data, and key presses
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case error:
		m.err = msg
		return m, nil

	case tablesMsg:
		m.tables = msg
		if len(m.tables) > 0 && m.result == nil {
			cmd := m.selectTable(m.tableCursor)
			return m, cmd
		}
		return m, nil

	case exercisesMsg:
		m.exercises = msg
		return m, nil

	case queryResultMsg:
		m.result = msg.result
		m.lastQuery = msg.query
		m.queryErr = nil
		m.resultOffset = 0
		return m, nil

	case queryErrorMsg:
		m.lastQuery = msg.query
		m.queryErr = msg.err
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}

		switch msg.String() {
		case "tab":
			return m.toggleFocus(), nil
		case "pgdown":
			m.scrollResult(m.pageSize())
			return m, nil
		case "pgup":
			m.scrollResult(-m.pageSize())
			return m, nil
		}

		if m.columnFocus == focusQuery {
			switch msg.Type {
			case tea.KeyEnter:
				query := strings.TrimSpace(m.queryInput.Value())
				if query == "" {
					return m, nil
				}
				return m, runQuery(m.store, query)
			case tea.KeyEsc:
				return m.toggleFocus(), nil
			}

			var cmd tea.Cmd
			m.queryInput, cmd = m.queryInput.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.tableCursor > 0 {
				m.tableCursor--
				cmd := m.selectTable(m.tableCursor)
				return m, cmd
			}
		case "down", "j":
			if m.tableCursor < len(m.tables)-1 {
				m.tableCursor++
				cmd := m.selectTable(m.tableCursor)
				return m, cmd
			}
		case "enter", "right", "l", "/":
			return m.toggleFocus(), nil
		case "J":
			m.scrollResult(1)
		case "K":
			m.scrollResult(-1)
		}
		return m, nil
	}

	return m, nil
}

// selectTable previews table i and puts its query in the prompt.
func (m *model) selectTable(i int) tea.Cmd {
	if i < 0 || i >= len(m.tables) {
		return nil
	}
	query := previewQuery(m.tables[i].name)
	m.queryInput.SetValue(query)
	return runQuery(m.store, query)
}

func (m model) toggleFocus() model {
	if m.columnFocus == focusTables {
		m.columnFocus = focusQuery
		m.queryInput.Focus()
		m.queryInput.CursorEnd()
	} else {
		m.columnFocus = focusTables
		m.queryInput.Blur()
	}
	return m
}

func (m *model) scrollResult(delta int) {
	if m.result == nil {
		return
	}
	m.resultOffset += delta
	if last := len(m.result.Rows) - 1; m.resultOffset > last {
		m.resultOffset = last
	}
	if m.resultOffset < 0 {
		m.resultOffset = 0
	}
}

// pageSize is the number of result rows that fit the right panel.
func (m model) pageSize() int {
	if n := m.height - 14; n > 1 {
		return n
	}
	return 1
}

// Render the full UI
func (m model) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return textRedStyle.Render("Error: "+m.err.Error()) + "\n\nPress ctrl+c to quit."
	}
	if m.width == 0 {
		return "Loading..."
	}

	titleBar := titleStyle.Width(m.width).Render("ktl - training journal " + m.journalFile)

	leftWidth := m.width / 4
	rightWidth := m.width - leftWidth
	innerHeight := m.height - panelHeightPadding - 2

	// Left column: tables and catalogue
	var leftBuilder strings.Builder
	leftBuilder.WriteString(subtitleStyle.Render("  Tables"))
	leftBuilder.WriteString("\n\n")
	for i, table := range m.tables {
		focused := i == m.tableCursor
		pointer := generateLinePointer(focused && m.columnFocus == focusTables, 2)
		label := truncate(fmt.Sprintf("%s (%d)", table.name, table.rows), leftWidth-bordersAndPaddingWidth-len(pointer)-1)
		if focused {
			label = selectedStyle.Render(label)
		} else {
			label = inactiveStyle.Render(label)
		}
		leftBuilder.WriteString(pointer + label + "\n")
	}

	leftBuilder.WriteString("\n")
	leftBuilder.WriteString(subtitleStyle.Render("  Exercises"))
	leftBuilder.WriteString("\n\n")
	if len(m.exercises) == 0 {
		leftBuilder.WriteString("  No exercises.\n")
	}
	for _, e := range m.exercises {
		line := "  " + inactiveStyle.Render(e.Name) + " " + TextStatusColorize(e.Type, 0)
		if len(e.Tags) > 0 {
			line += " " + tagStyle.Render(strings.Join(e.Tags, " "))
		}
		leftBuilder.WriteString(clip(line, leftWidth-bordersAndPaddingWidth, 1) + "\n")
	}

	// Right column: prompt and results
	var rightBuilder strings.Builder
	rightBuilder.WriteString(subtitleStyle.Render("Query"))
	rightBuilder.WriteString("\n\n")
	m.queryInput.Width = rightWidth - bordersAndPaddingWidth - len(m.queryInput.Prompt) - 1
	rightBuilder.WriteString(m.queryInput.View())
	rightBuilder.WriteString("\n\n")

	switch {
	case m.queryErr != nil:
		rightBuilder.WriteString(TextStatusColorize("✗ ", 2) + textRedStyle.Render(m.queryErr.Error()) + "\n")
		rightBuilder.WriteString(TextStatusColorize(truncate(m.lastQuery, rightWidth-bordersAndPaddingWidth), 0))
	case m.result != nil:
		rightBuilder.WriteString(TextStatusColorize(fmt.Sprintf("✓ %d rows", len(m.result.Rows)), 1))
		if m.resultOffset > 0 {
			rightBuilder.WriteString(TextStatusColorize(fmt.Sprintf(" (from row %d)", m.resultOffset+1), 0))
		}
		rightBuilder.WriteString("\n")
		rightBuilder.WriteString(m.renderResult(rightWidth-bordersAndPaddingWidth, innerHeight-6))
	default:
		rightBuilder.WriteString("Select a table or type a query.")
	}

	leftPanelStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(lipgloss.Color(colorGray)).
		Padding(0, 1)
	leftPanel := leftPanelStyle.Width(leftWidth).Height(innerHeight).
		Render(leftBuilder.String())

	rightPanelStyle := lipgloss.NewStyle().Padding(0, 2)
	rightPanel := rightPanelStyle.Width(rightWidth).Height(innerHeight).
		Render(rightBuilder.String())

	columns := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, rightPanel)

	footerText := "\n↑/↓ tables • tab/enter edit query • enter run • pgup/pgdn scroll • q quit"
	footerBar := footerStyle.Width(m.width).Render(footerText)

	return titleBar + "\n\n" + columns + footerBar
}

func (m model) renderResult(width, height int) string {
	visible := &records.Result{Columns: m.result.Columns, Rows: m.result.Rows}
	if m.resultOffset > 0 && m.resultOffset < len(visible.Rows) {
		visible.Rows = visible.Rows[m.resultOffset:]
	}

	var b strings.Builder
	if err := render.WriteTable(&b, visible); err != nil {
		return textRedStyle.Render(err.Error())
	}
	return clip(strings.TrimRight(b.String(), "\n"), width, height)
}

// ShowTUI starts the interactive query browser over a loaded store.
func ShowTUI(store *journal.Store, journalPath string) error {
	p := tea.NewProgram(initModel(store, journalPath), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
