package store

import (
	"fmt"

	"go.uber.org/zap"

	"partdb/internal/component"
)

// DuplicateLimit caps how many numeric suffixes are tried when
// incrementing a duplicate IPN before giving up.
const DuplicateLimit = 10

// DuplicateIPNError reports that a component's IPN (and all increment
// candidates, when incrementing was requested) already exists in its table.
type DuplicateIPNError struct {
	IPN   string
	Table string
}

func (e *DuplicateIPNError) Error() string {
	return fmt.Sprintf("too many parts with IPN %q already in table %q", e.IPN, e.Table)
}

// AddOptions selects the duplicate-IPN policy for AddComponent.
// Update wins over Increment when both are set.
type AddOptions struct {
	// Update replaces an existing component with the same IPN.
	Update bool
	// Increment appends _1, _2, ... to the IPN until it is unique, up to
	// DuplicateLimit attempts.
	Increment bool
}

// AddResult describes what AddComponent did.
type AddResult struct {
	// IPN is the part number the component was stored under, which may
	// carry an increment suffix.
	IPN string
	// Table is the table the component was stored in.
	Table string
	// CreatedTable is set when the component's table was created by this
	// call.
	CreatedTable bool
	// Updated is set when an existing row was replaced.
	Updated bool
}

// AddComponent stores a component, creating its table on first use. The
// duplicate-IPN policy is selected by opts; the default is to fail with a
// DuplicateIPNError when the IPN is already present.
func (s *Store) AddComponent(comp *component.Component, opts AddOptions) (*AddResult, error) {
	result := &AddResult{IPN: comp.IPN(), Table: comp.Table()}

	exists, err := s.hasTable(comp.Table())
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if !exists {
		if _, err := tx.Exec(comp.CreateTableSQL()); err != nil {
			return nil, fmt.Errorf("failed to create table %s: %w", comp.Table(), err)
		}
		result.CreatedTable = true
		s.log.Debug("created table", zap.String("table", comp.Table()))
	}

	ipns := make(map[string]bool)
	if exists {
		rows, err := tx.Query(fmt.Sprintf("SELECT IPN FROM %s", comp.Table()))
		if err != nil {
			return nil, fmt.Errorf("failed to read IPNs from %s: %w", comp.Table(), err)
		}
		for rows.Next() {
			var ipn string
			if err := rows.Scan(&ipn); err != nil {
				rows.Close()
				return nil, err
			}
			ipns[ipn] = true
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}

	replace := false
	if ipns[comp.IPN()] {
		switch {
		case opts.Update:
			replace = true
			result.Updated = true
		case opts.Increment:
			base := comp.IPN()
			found := false
			for i := 1; i < DuplicateLimit; i++ {
				candidate := fmt.Sprintf("%s_%d", base, i)
				if !ipns[candidate] {
					comp.SetIPN(candidate)
					result.IPN = candidate
					found = true
					break
				}
			}
			if !found {
				return nil, &DuplicateIPNError{IPN: base, Table: comp.Table()}
			}
		default:
			return nil, &DuplicateIPNError{IPN: comp.IPN(), Table: comp.Table()}
		}
	}

	stmt, args := comp.InsertSQL(replace)
	if _, err := tx.Exec(stmt, args...); err != nil {
		return nil, fmt.Errorf("failed to insert component %s: %w", comp.IPN(), err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	s.log.Debug("added component",
		zap.String("ipn", result.IPN),
		zap.String("table", result.Table),
		zap.Bool("updated", result.Updated))
	return result, nil
}
