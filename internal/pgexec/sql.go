package pgexec

import (
	"sort"
	"strconv"
	"strings"

	"github.com/tablekit/bulkload/pkg/bulkload"
)

// quoteIdent quotes a SQL identifier, doubling any embedded quote.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// tableName renders a quoted, optionally schema-qualified table name.
func tableName(t bulkload.Table) string {
	if t.Schema == "" {
		return quoteIdent(t.Name)
	}
	return quoteIdent(t.Schema) + "." + quoteIdent(t.Name)
}

// columnsFor returns the column set of a chunk: the sorted keys of its
// first row. All rows in a chunk are expected to share one shape; rows
// missing a column bind NULL.
func columnsFor(rows []bulkload.Row) []string {
	if len(rows) == 0 {
		return nil
	}
	columns := make([]string, 0, len(rows[0]))
	for column := range rows[0] {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	return columns
}

// insertSQL builds a parameterized multi-row INSERT statement.
func insertSQL(table string, columns []string, rowCount int) string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (")
	for i, column := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quoteIdent(column))
	}
	b.WriteString(") VALUES ")

	param := 1
	for row := 0; row < rowCount; row++ {
		if row > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for i := range columns {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString("$")
			b.WriteString(strconv.Itoa(param))
			param++
		}
		b.WriteString(")")
	}
	return b.String()
}

// upsertSQL builds a multi-row INSERT ... ON CONFLICT statement. Columns
// outside the conflict key are updated from EXCLUDED; when every column is
// part of the key there is nothing to update and the conflict action
// degrades to DO NOTHING.
func upsertSQL(table string, columns []string, rowCount int, conflictColumns []string) string {
	var b strings.Builder
	b.WriteString(insertSQL(table, columns, rowCount))

	b.WriteString(" ON CONFLICT (")
	for i, column := range conflictColumns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quoteIdent(column))
	}
	b.WriteString(")")

	updates := updateColumns(columns, conflictColumns)
	if len(updates) == 0 {
		b.WriteString(" DO NOTHING")
		return b.String()
	}

	b.WriteString(" DO UPDATE SET ")
	for i, column := range updates {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quoteIdent(column))
		b.WriteString(" = EXCLUDED.")
		b.WriteString(quoteIdent(column))
	}
	return b.String()
}

// updateColumns returns the columns not covered by the conflict key.
func updateColumns(columns, conflictColumns []string) []string {
	conflict := make(map[string]struct{}, len(conflictColumns))
	for _, column := range conflictColumns {
		conflict[column] = struct{}{}
	}

	var updates []string
	for _, column := range columns {
		if _, ok := conflict[column]; !ok {
			updates = append(updates, column)
		}
	}
	return updates
}

// bindArgs flattens rows into positional arguments in column order, row by
// row. Absent columns become nil (SQL NULL).
func bindArgs(rows []bulkload.Row, columns []string) []any {
	args := make([]any, 0, len(rows)*len(columns))
	for _, row := range rows {
		for _, column := range columns {
			args = append(args, row[column])
		}
	}
	return args
}
