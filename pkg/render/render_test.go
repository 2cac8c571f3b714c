package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/unowned-ai/ktl/pkg/records"
)

func sampleResult() *records.Result {
	return &records.Result{
		Columns: []string{"exercise", "volume", "note"},
		Rows: [][]any{
			{"squat", int64(1530), nil},
			{"bench press", 812.5, "pr"},
		},
	}
}

func TestWritePlain(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePlain(&buf, sampleResult()); err != nil {
		t.Fatalf("WritePlain failed: %v", err)
	}

	want := "" +
		"exercise    volume note\n" +
		"squat       1530   NULL\n" +
		"bench press 812.5  pr\n"
	if buf.String() != want {
		t.Errorf("Unexpected output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestWritePlain_NoRows(t *testing.T) {
	var buf bytes.Buffer
	r := &records.Result{Columns: []string{"name"}, Rows: [][]any{}}
	if err := WritePlain(&buf, r); err != nil {
		t.Fatalf("WritePlain failed: %v", err)
	}
	if buf.String() != "name\n" {
		t.Errorf("Expected only the header, got %q", buf.String())
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, sampleResult()); err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"exercise", "bench press", "812.5", "NULL", "╭", "╯"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected table to contain %q, got:\n%s", want, out)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleResult()); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var got struct {
		Columns []string         `json:"columns"`
		Rows    []map[string]any `json:"rows"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(got.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(got.Rows))
	}
	if got.Rows[0]["volume"] != float64(1530) || got.Rows[0]["note"] != nil {
		t.Errorf("Unexpected first row: %v", got.Rows[0])
	}
	if got.Rows[1]["exercise"] != "bench press" {
		t.Errorf("Unexpected second row: %v", got.Rows[1])
	}
}

func TestWriteJSON_RepeatedColumns(t *testing.T) {
	r := &records.Result{
		Columns: []string{"date", "reps", "date", "date_2", "date"},
		Rows:    [][]any{{"2024-03-01", int64(5), "2024-03-02", "x", "2024-03-03"}},
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, r); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var got struct {
		Columns []string         `json:"columns"`
		Rows    []map[string]any `json:"rows"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Output is not valid JSON: %v\n%s", err, buf.String())
	}

	wantColumns := []string{"date", "reps", "date_3", "date_2", "date_4"}
	if strings.Join(got.Columns, ",") != strings.Join(wantColumns, ",") {
		t.Errorf("Expected columns %v, got %v", wantColumns, got.Columns)
	}
	row := got.Rows[0]
	if len(row) != 5 || row["date"] != "2024-03-01" || row["date_3"] != "2024-03-02" || row["date_2"] != "x" || row["date_4"] != "2024-03-03" {
		t.Errorf("Unexpected row: %v", row)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"plain", Plain, false},
		{"table", Table, false},
		{"json", JSON, false},
		{"csv", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWrite_Dispatch(t *testing.T) {
	for _, f := range Formats {
		var buf bytes.Buffer
		if err := Write(&buf, f, sampleResult()); err != nil {
			t.Errorf("Write(%s) failed: %v", f, err)
		}
		if buf.Len() == 0 {
			t.Errorf("Write(%s) produced no output", f)
		}
	}
	if err := Write(&bytes.Buffer{}, Format("xml"), sampleResult()); err == nil {
		t.Errorf("Expected an error for an unknown format")
	}
}
