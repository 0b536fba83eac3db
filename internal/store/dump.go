package store

import (
	"encoding/csv"
	"fmt"
	"sort"
	"strings"
)

// MinimalColumns is the column subset KiCad needs to resolve a part from
// the database library: distributor references plus symbol and footprint.
var MinimalColumns = []string{
	"distributor1",
	"DPN1",
	"distributor2",
	"DPN2",
	"kicad_symbol",
	"kicad_footprint",
}

// Dump is a flattened view over one or more part tables: the union of the
// selected columns, one row map per component. Cells that do not apply to a
// component's table are empty strings.
type Dump struct {
	Columns []string
	Rows    []map[string]string

	// SkippedTables and SkippedColumns record requested names that do not
	// exist in the database.
	SkippedTables  []string
	SkippedColumns []string
}

// DumpRows reads components across tables. With a nil or empty tables
// argument, all tables are read; with a nil or empty columns argument, the
// sorted union of all encountered columns is used, otherwise the requested
// column order is preserved.
func (s *Store) DumpRows(tables, columns []string) (*Dump, error) {
	inDB, err := s.TableNames()
	if err != nil {
		return nil, err
	}
	dbSet := make(map[string]bool, len(inDB))
	for _, t := range inDB {
		dbSet[t] = true
	}

	dump := &Dump{}
	selected := inDB
	if len(tables) > 0 {
		selected = selected[:0:0]
		for _, t := range tables {
			if dbSet[t] {
				selected = append(selected, t)
			} else {
				dump.SkippedTables = append(dump.SkippedTables, t)
			}
		}
		sort.Strings(selected)
	}

	colsInDB := make(map[string]bool)
	for _, table := range selected {
		tableCols, err := s.tableColumns(table)
		if err != nil {
			return nil, err
		}
		for _, c := range tableCols {
			colsInDB[c] = true
		}

		rows, err := s.db.Query(fmt.Sprintf("SELECT * FROM %s", table))
		if err != nil {
			return nil, fmt.Errorf("failed to read table %s: %w", table, err)
		}
		for rows.Next() {
			values := make([]any, len(tableCols))
			for i := range values {
				var cell string
				values[i] = &cell
			}
			if err := rows.Scan(values...); err != nil {
				rows.Close()
				return nil, err
			}
			row := make(map[string]string, len(tableCols))
			for i, c := range tableCols {
				row[c] = *(values[i].(*string))
			}
			dump.Rows = append(dump.Rows, row)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}

	if len(columns) > 0 {
		for _, c := range columns {
			if colsInDB[c] {
				dump.Columns = append(dump.Columns, c)
			} else {
				dump.SkippedColumns = append(dump.SkippedColumns, c)
			}
		}
	} else {
		for c := range colsInDB {
			dump.Columns = append(dump.Columns, c)
		}
		sort.Strings(dump.Columns)
	}

	// normalize rows to exactly the selected columns
	for i, row := range dump.Rows {
		normalized := make(map[string]string, len(dump.Columns))
		for _, c := range dump.Columns {
			normalized[c] = row[c]
		}
		dump.Rows[i] = normalized
	}

	return dump, nil
}

// CSV renders the dump as CSV with a header row. An empty dump renders as
// an empty string.
func (d *Dump) CSV() string {
	if len(d.Rows) == 0 {
		return ""
	}
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write(d.Columns)
	for _, row := range d.Rows {
		record := make([]string, len(d.Columns))
		for i, c := range d.Columns {
			record[i] = row[c]
		}
		_ = w.Write(record)
	}
	w.Flush()
	return strings.TrimRight(sb.String(), "\n")
}

// Records returns the dump as header + value rows, for table rendering.
func (d *Dump) Records() [][]string {
	records := make([][]string, 0, len(d.Rows))
	for _, row := range d.Rows {
		record := make([]string, len(d.Columns))
		for i, c := range d.Columns {
			record[i] = row[c]
		}
		records = append(records, record)
	}
	return records
}
