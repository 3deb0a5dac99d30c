package pipeline

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseCSV(t *testing.T) {
	input := "Title,Start Time,Duration\nShow A,2024-01-01 20:00,1:23:45\nShow B,2024-01-02 21:00,23:45\n"

	table, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}

	wantColumns := []string{"Title", "Start Time", "Duration"}
	if diff := cmp.Diff(wantColumns, table.Columns); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}

	wantRows := []map[string]string{
		{"Title": "Show A", "Start Time": "2024-01-01 20:00", "Duration": "1:23:45"},
		{"Title": "Show B", "Start Time": "2024-01-02 21:00", "Duration": "23:45"},
	}
	if diff := cmp.Diff(wantRows, table.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCSV_RaggedRows(t *testing.T) {
	input := "a,b,c\n1,2\n1,2,3,4\n"

	table, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}

	// Short row: trailing column absent, not empty.
	if _, present := table.Rows[0]["c"]; present {
		t.Error("short row should leave column c absent")
	}
	// Long row: extra field ignored.
	if diff := cmp.Diff(map[string]string{"a": "1", "b": "2", "c": "3"}, table.Rows[1]); diff != "" {
		t.Errorf("long row mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	table, err := ParseCSV(strings.NewReader("a,b,c\n"))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if len(table.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(table.Rows))
	}
}

func TestParseCSV_EmptyFile(t *testing.T) {
	if _, err := ParseCSV(strings.NewReader("")); err == nil {
		t.Error("expected error for file without header row")
	}
}

func TestParseCSV_Malformed(t *testing.T) {
	// Unterminated quote makes encoding/csv fail.
	if _, err := ParseCSV(strings.NewReader("a,b\n\"unterminated,2\n")); err == nil {
		t.Error("expected error for malformed CSV")
	}
}

func TestParseCSVFile_Missing(t *testing.T) {
	if _, err := ParseCSVFile(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}
