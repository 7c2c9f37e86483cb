package csvsource

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Record is one CSV data row keyed by header column name.
type Record = map[string]string

// Read parses CSV content into records. The first non-empty row is taken as
// the header. Returns an error when no header row exists; zero data rows is
// not an error here (the loader rejects empty input itself).
func Read(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	headerAt := -1
	for i, row := range rows {
		if !isEmptyRow(row) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil, fmt.Errorf("no header row found")
	}

	header := make([]string, len(rows[headerAt]))
	for i, cell := range rows[headerAt] {
		header[i] = strings.ToLower(cleanCell(cell))
	}

	var records []Record
	for _, row := range rows[headerAt+1:] {
		if isEmptyRow(row) {
			continue
		}
		record := make(Record, len(header))
		for i, name := range header {
			if name == "" || i >= len(row) {
				continue
			}
			record[name] = cleanCell(row[i])
		}
		records = append(records, record)
	}
	return records, nil
}

// cleanCell strips whitespace, Excel formula prefixes (="..."), and
// surrounding quotes from a cell value.
func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}
	return strings.Trim(s, `"'`)
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
