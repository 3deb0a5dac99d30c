package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ParseCSV reads conventional comma-separated text with a header row into a
// RawTable. Rows may be ragged: short rows leave trailing columns absent,
// extra fields beyond the header are ignored.
func ParseCSV(r io.Reader) (*RawTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("ParseCSV: file has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("ParseCSV: read header: %w", err)
	}

	table := &RawTable{Columns: header}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ParseCSV: read row: %w", err)
		}

		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// ParseCSVFile parses the file at path into a RawTable.
func ParseCSVFile(path string) (*RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ParseCSVFile: open %q: %w", path, err)
	}
	defer f.Close()

	table, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("ParseCSVFile: %q: %w", path, err)
	}
	return table, nil
}
