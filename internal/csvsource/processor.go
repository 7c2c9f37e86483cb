package csvsource

import (
	"strings"

	"github.com/tablekit/bulkload/pkg/bulkload"
)

// Processor returns a bulkload.Processor over CSV records.
//
// A record is valid when every column in required is present and non-empty.
// Format maps the columns listed in columns into the Row; an empty columns
// slice maps every key the record carries. Column names are matched
// case-insensitively against the lowercased header keys produced by Read.
// Empty cells become NULL rather than empty strings.
func Processor(required, columns []string) bulkload.Processor[Record] {
	requiredKeys := lowered(required)
	columnKeys := lowered(columns)

	return bulkload.ProcessorFuncs[Record]{
		ValidateFunc: func(record Record) bool {
			for _, key := range requiredKeys {
				if record[key] == "" {
					return false
				}
			}
			return true
		},
		FormatFunc: func(record Record) bulkload.Row {
			keys := columnKeys
			if len(keys) == 0 {
				keys = make([]string, 0, len(record))
				for key := range record {
					keys = append(keys, key)
				}
			}

			row := make(bulkload.Row, len(keys))
			for _, key := range keys {
				if value, ok := record[key]; ok && value != "" {
					row[key] = value
				} else {
					row[key] = nil
				}
			}
			return row
		},
	}
}

func lowered(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = strings.ToLower(strings.TrimSpace(name))
	}
	return out
}
