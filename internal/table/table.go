// Package table holds the column-level layer of the survey pipeline: a small
// in-memory delimited table with the projection, filtering and unpivot
// operations the raw exports need before rows can be turned into typed
// records. Every operation returns a new Table; nothing mutates its receiver.
package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"
)

// SchemaError reports required columns absent from a loaded table.
type SchemaError struct {
	Table   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table %s is missing required columns: %s", e.Table, strings.Join(e.Missing, ", "))
}

// Table is an immutable snapshot of a delimited file: a header and rows of
// string cells. Missing values are empty strings.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Load reads a delimited text file with whitespace-trimmed fields. Short rows
// are padded with empty cells so every row matches the header width.
func Load(path string) (Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("failed to open table file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("failed to read table file %s: %w", path, err)
	}
	if len(records) == 0 {
		return Table{}, fmt.Errorf("empty csv file given: %s", path)
	}

	columns := make([]string, len(records[0]))
	for i, c := range records[0] {
		columns[i] = strings.TrimSpace(c)
	}

	rows := make([][]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]string, len(columns))
		for i := range columns {
			if i < len(record) {
				row[i] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}

	return Table{Name: path, Columns: columns, Rows: rows}, nil
}

// ColumnIndex returns the position of a column, or -1 if absent.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table carries the named column.
func (t Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Select restricts the table to exactly the given columns, in the given
// order, preserving row order and count. Absent columns are a SchemaError.
func (t Table) Select(columns []string) (Table, error) {
	indexes := make([]int, 0, len(columns))
	missing := []string{}
	for _, name := range columns {
		idx := t.ColumnIndex(name)
		if idx < 0 {
			missing = append(missing, name)
			continue
		}
		indexes = append(indexes, idx)
	}
	if len(missing) > 0 {
		return Table{}, &SchemaError{Table: t.Name, Missing: missing}
	}

	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		projected := make([]string, len(indexes))
		for j, idx := range indexes {
			projected[j] = row[idx]
		}
		rows[i] = projected
	}

	return Table{Name: t.Name, Columns: append([]string(nil), columns...), Rows: rows}, nil
}

// Drop removes the given columns when present. Unknown names are ignored so a
// policy can clean up optional flag columns.
func (t Table) Drop(columns ...string) Table {
	dropped := make(map[string]bool, len(columns))
	for _, c := range columns {
		dropped[c] = true
	}

	kept := []string{}
	for _, c := range t.Columns {
		if !dropped[c] {
			kept = append(kept, c)
		}
	}

	out, _ := t.Select(kept)
	return out
}

// Filter keeps the rows the predicate accepts. The predicate receives a cell
// accessor so policies can be written against column names.
func (t Table) Filter(keep func(get func(column string) string) bool) Table {
	rows := [][]string{}
	for _, row := range t.Rows {
		r := row
		get := func(column string) string {
			idx := t.ColumnIndex(column)
			if idx < 0 {
				return ""
			}
			return r[idx]
		}
		if keep(get) {
			rows = append(rows, row)
		}
	}
	return Table{Name: t.Name, Columns: t.Columns, Rows: rows}
}

// Unpivot converts a set of sibling value columns into long form: one output
// row per input row per value column, with kindColumn holding the label
// configured for the matched column and valueColumn its cell. Empty cells are
// preserved, not dropped. Column order is the non-value columns in table
// order, then kindColumn, then valueColumn. Kinds iterate in sorted label
// order so output is deterministic.
func (t Table) Unpivot(kinds map[string]string, kindColumn, valueColumn string) (Table, error) {
	labels := make([]string, 0, len(kinds))
	missing := []string{}
	for label, column := range kinds {
		if !t.HasColumn(column) {
			missing = append(missing, column)
			continue
		}
		labels = append(labels, label)
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return Table{}, &SchemaError{Table: t.Name, Missing: missing}
	}
	sort.Strings(labels)

	valueColumns := make(map[string]bool, len(kinds))
	for _, column := range kinds {
		valueColumns[column] = true
	}

	keptIndexes := []int{}
	columns := []string{}
	for i, c := range t.Columns {
		if !valueColumns[c] {
			keptIndexes = append(keptIndexes, i)
			columns = append(columns, c)
		}
	}
	columns = append(columns, kindColumn, valueColumn)

	rows := make([][]string, 0, len(t.Rows)*len(labels))
	for _, row := range t.Rows {
		for _, label := range labels {
			out := make([]string, 0, len(columns))
			for _, idx := range keptIndexes {
				out = append(out, row[idx])
			}
			out = append(out, label, row[t.ColumnIndex(kinds[label])])
			rows = append(rows, out)
		}
	}

	return Table{Name: t.Name, Columns: columns, Rows: rows}, nil
}
