package store

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"partdb/internal/component"
)

// Components reads all parts from one table as column-to-value maps, in
// insertion order.
func (s *Store) Components(table string) ([]map[string]string, error) {
	ok, err := s.hasTable(table)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no such table %q", table)
	}

	rows, err := s.db.Query("SELECT * FROM " + table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var components []map[string]string
	for rows.Next() {
		cells := make([]string, len(cols))
		dest := make([]any, len(cols))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		values := make(map[string]string, len(cols))
		for i, c := range cols {
			values[c] = cells[i]
		}
		components = append(components, values)
	}
	return components, rows.Err()
}

// UpdateComponent overwrites the non-key columns of the part identified
// by values[IPN] in the given table.
func (s *Store) UpdateComponent(table string, values map[string]string) error {
	ipn := values[component.PrimaryKey]
	if ipn == "" {
		return fmt.Errorf("component has no %s", component.PrimaryKey)
	}

	var assignments []string
	var args []any
	for col, val := range values {
		if col == component.PrimaryKey {
			continue
		}
		assignments = append(assignments, col+"=?")
		args = append(args, val)
	}
	if len(assignments) == 0 {
		return nil
	}
	args = append(args, ipn)

	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE %s=?",
		table, strings.Join(assignments, ", "), component.PrimaryKey)
	res, err := s.db.Exec(stmt, args...)
	if err != nil {
		return fmt.Errorf("failed to update %s in table %s: %w", ipn, table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	s.log.Debug("updated component",
		zap.String("ipn", ipn), zap.String("table", table))
	return nil
}
