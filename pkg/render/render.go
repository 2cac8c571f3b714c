// Package render writes query results for the terminal.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/unowned-ai/ktl/pkg/records"
)

// Format selects how a result is written.
type Format string

const (
	Plain Format = "plain"
	Table Format = "table"
	JSON  Format = "json"
)

// Formats lists the accepted --format values.
var Formats = []Format{Plain, Table, JSON}

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want plain, table or json)", s)
}

const (
	colorBlue = "#89ddff"
	colorGray = "#353b52"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(colorBlue)).
			Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray))
)

// Write renders r to w in format f.
func Write(w io.Writer, f Format, r *records.Result) error {
	switch f {
	case Plain:
		return WritePlain(w, r)
	case Table:
		return WriteTable(w, r)
	case JSON:
		return WriteJSON(w, r)
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}

// WritePlain prints the header and rows as space-separated columns, each
// padded to its widest value.
func WritePlain(w io.Writer, r *records.Result) error {
	lines := append([][]string{r.Columns}, r.Strings()...)

	widths := make([]int, len(r.Columns))
	for _, line := range lines {
		for i, cell := range line {
			if n := lipgloss.Width(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	for _, line := range lines {
		var b strings.Builder
		for i, cell := range line {
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+1))
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(b.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}

// WriteTable prints r as a bordered table.
func WriteTable(w io.Writer, r *records.Result) error {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(r.Columns...).
		Rows(r.Strings()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

type jsonResult struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// WriteJSON prints r as an object with the column list and one object per
// row keyed by column name. Repeated column names, as produced by joins,
// get a numeric suffix ("date", "date_2") so no value is lost.
func WriteJSON(w io.Writer, r *records.Result) error {
	keys := uniqueKeys(r.Columns)
	out := jsonResult{Columns: keys, Rows: make([]map[string]any, 0, len(r.Rows))}
	for _, row := range r.Rows {
		obj := make(map[string]any, len(row))
		for i, v := range row {
			obj[keys[i]] = v
		}
		out.Rows = append(out.Rows, obj)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

func uniqueKeys(columns []string) []string {
	used := make(map[string]bool, len(columns))
	for _, c := range columns {
		used[c] = true
	}

	keys := make([]string, len(columns))
	seen := make(map[string]bool, len(columns))
	for i, c := range columns {
		key := c
		if seen[c] {
			for n := 2; ; n++ {
				key = fmt.Sprintf("%s_%d", c, n)
				if !used[key] {
					break
				}
			}
			used[key] = true
		}
		seen[c] = true
		keys[i] = key
	}
	return keys
}
