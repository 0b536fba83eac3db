package store

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// partNumberColumns are searched, in order, when matching a part number
// that may be an internal, manufacturer, or distributor part number.
var partNumberColumns = []string{"IPN", "MPN", "DPN1", "DPN2"}

// ErrNotFound is returned when no component matches a part number.
var ErrNotFound = errors.New("no matching component found")

// AmbiguousMatchError reports that a part number matched more than one
// component, so nothing was removed.
type AmbiguousMatchError struct {
	PartNumber string
	Column     string
	Table      string
	IPNs       []string
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("multiple components with %s == %q in table %q (%s)",
		e.Column, e.PartNumber, e.Table, strings.Join(e.IPNs, ", "))
}

// RemoveResult identifies the component removed by RemoveComponent.
type RemoveResult struct {
	IPN   string
	Table string
}

// RemoveComponent deletes a component matched by IPN, MPN, DPN1, or DPN2.
// All tables are searched; the first matching part is removed. When the
// first match is ambiguous, nothing is removed and an AmbiguousMatchError
// is returned.
func (s *Store) RemoveComponent(partNumber string) (*RemoveResult, error) {
	tables, err := s.TableNames()
	if err != nil {
		return nil, err
	}

	for _, table := range tables {
		for _, col := range partNumberColumns {
			rows, err := s.db.Query(
				fmt.Sprintf("SELECT IPN FROM %s WHERE %s = ?", table, col), partNumber)
			if err != nil {
				return nil, fmt.Errorf("failed to search table %s: %w", table, err)
			}
			var ipns []string
			for rows.Next() {
				var ipn string
				if err := rows.Scan(&ipn); err != nil {
					rows.Close()
					return nil, err
				}
				ipns = append(ipns, ipn)
			}
			rows.Close()
			if err := rows.Err(); err != nil {
				return nil, err
			}

			switch len(ipns) {
			case 0:
				continue
			case 1:
				if _, err := s.db.Exec(
					fmt.Sprintf("DELETE FROM %s WHERE %s = ?", table, col), partNumber); err != nil {
					return nil, fmt.Errorf("failed to delete from %s: %w", table, err)
				}
				s.log.Debug("removed component",
					zap.String("ipn", ipns[0]), zap.String("table", table))
				return &RemoveResult{IPN: ipns[0], Table: table}, nil
			default:
				return nil, &AmbiguousMatchError{
					PartNumber: partNumber,
					Column:     col,
					Table:      table,
					IPNs:       ipns,
				}
			}
		}
	}
	return nil, ErrNotFound
}
