// Package component defines the part record data model: the column set
// shared by every part table, the per-type extra columns, and the builders
// that turn distributor API responses or CSV rows into records ready for
// the database.
package component

import (
	"encoding/csv"
	"fmt"
	"regexp"
	"strings"
)

// PrimaryKey is the column that uniquely identifies a part within its table.
const PrimaryKey = "IPN"

// CommonColumns is the fixed column order shared by every component table.
// Most of these map onto KiCad builtin fields or properties.
var CommonColumns = []string{
	"IPN",
	"datasheet",
	"description",
	"keywords",
	"value",
	"package",
	"exclude_from_bom",
	"exclude_from_board",
	"kicad_symbol",
	"kicad_footprint",
	"manufacturer",
	"MPN",
	"distributor1",
	"DPN1",
	"distributor2",
	"DPN2",
}

// Component is a single part record destined for one table of the database.
// Column order is significant: it defines the table schema and the CSV
// layout.
type Component struct {
	typ    *Type
	values map[string]string
}

// newComponent returns an empty record of the given type with every column
// initialized to "".
func newComponent(t *Type) *Component {
	c := &Component{typ: t, values: make(map[string]string)}
	for _, col := range t.Columns() {
		c.values[col] = ""
	}
	c.values["exclude_from_bom"] = "0"
	c.values["exclude_from_board"] = "0"
	return c
}

// Type returns the component's type descriptor.
func (c *Component) Type() *Type { return c.typ }

// Table returns the database table this component belongs to.
func (c *Component) Table() string { return c.typ.Table }

// Columns returns the ordered column names for the component's table.
func (c *Component) Columns() []string { return c.typ.Columns() }

// IPN returns the component's internal part number.
func (c *Component) IPN() string { return c.values[PrimaryKey] }

// SetIPN overwrites the component's internal part number.
func (c *Component) SetIPN(ipn string) { c.values[PrimaryKey] = ipn }

// Get returns the value of the named column, or "" for unknown columns.
func (c *Component) Get(col string) string { return c.values[col] }

// set assigns a column value. Unknown columns are a programming error.
func (c *Component) set(col, val string) {
	if _, ok := c.values[col]; !ok {
		panic(fmt.Sprintf("component: unknown column %q for table %q", col, c.typ.Table))
	}
	c.values[col] = val
}

// Values returns a copy of the column values keyed by column name.
func (c *Component) Values() map[string]string {
	out := make(map[string]string, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// Equal reports whether two components hold the same data. The IPN is
// excluded from the comparison: two records that differ only in part number
// describe the same part.
func (c *Component) Equal(other *Component) bool {
	if other == nil || c.typ != other.typ {
		return false
	}
	for _, col := range c.Columns() {
		if col == PrimaryKey {
			continue
		}
		if c.values[col] != other.values[col] {
			return false
		}
	}
	return true
}

// CreateTableSQL returns the CREATE TABLE statement for the component's
// table. Columns are typeless except for the primary key; sqlite stores
// everything as text anyway and KiCad reads it back as text.
func (c *Component) CreateTableSQL() string {
	defs := make([]string, 0, len(c.Columns()))
	for _, col := range c.Columns() {
		if col == PrimaryKey {
			defs = append(defs, col+" PRIMARY KEY")
		} else {
			defs = append(defs, col)
		}
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s(%s)", c.typ.Table, strings.Join(defs, ", "))
}

// InsertSQL returns a parameterized INSERT statement and the argument list
// matching its placeholders. With replace set, an existing row with the
// same IPN is overwritten instead of causing a constraint error.
func (c *Component) InsertSQL(replace bool) (string, []any) {
	cols := c.Columns()
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",")
	verb := "INSERT"
	if replace {
		verb = "INSERT OR REPLACE"
	}
	stmt := fmt.Sprintf("%s INTO %s (%s) VALUES(%s)",
		verb, c.typ.Table, strings.Join(cols, ","), placeholders)
	args := make([]any, len(cols))
	for i, col := range cols {
		args[i] = c.values[col]
	}
	return stmt, args
}

// CSVRecord returns the component's values in column order.
func (c *Component) CSVRecord() []string {
	record := make([]string, len(c.Columns()))
	for i, col := range c.Columns() {
		record[i] = c.values[col]
	}
	return record
}

// ToCSV renders the component as CSV. With header set, a column-name row
// precedes the value row; with body unset only the header is emitted.
func (c *Component) ToCSV(header, body bool) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if header {
		_ = w.Write(c.Columns())
	}
	if body {
		_ = w.Write(c.CSVRecord())
	}
	w.Flush()
	return sb.String()
}

// FromRecord builds a component from a map of column names to values, as
// read from one CSV row. The component type is detected from the IPN prefix.
// Every column of the detected type must be present except the BOM/board
// exclusion flags, which default to "0". Extra keys are ignored.
func FromRecord(record map[string]string) (*Component, error) {
	ipn := record[PrimaryKey]
	t := TypeForIPN(ipn)
	if t == nil {
		return nil, fmt.Errorf("no component type to handle part %q", ipn)
	}
	c := newComponent(t)
	var missing []string
	for _, col := range t.Columns() {
		val, ok := record[col]
		if !ok {
			if col == "exclude_from_bom" || col == "exclude_from_board" {
				continue
			}
			missing = append(missing, col)
			continue
		}
		if val == "" && (col == "exclude_from_bom" || col == "exclude_from_board") {
			continue
		}
		c.values[col] = val
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("part %q is missing columns: %s", ipn, strings.Join(missing, ", "))
	}
	return c, nil
}

var ipnPrefixRe = regexp.MustCompile(`^[a-zA-Z]+`)

// TypeForIPN returns the component type whose IPN prefix matches the given
// part number, or nil when no type claims it.
func TypeForIPN(ipn string) *Type {
	prefix := ipnPrefixRe.FindString(ipn)
	if prefix == "" {
		return nil
	}
	for _, t := range registry {
		for _, p := range t.IPNPrefixes {
			if prefix == p {
				return t
			}
		}
	}
	return nil
}
