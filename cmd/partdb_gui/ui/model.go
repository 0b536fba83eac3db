// Package ui implements the partdb_gui terminal interface: a database
// browser and editor for KiCad part databases.
package ui

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"partdb/internal/component"
	"partdb/internal/config"
	"partdb/internal/store"
)

// Model holds the database contents and edit state shown by the GUI. It
// is independent of the terminal rendering so it can be tested directly.
type Model struct {
	log *zap.Logger

	ConfigPath string
	// ConfigErr is set when the config file could not be read.
	ConfigErr error

	// DBPath is the database currently shown; it starts as the configured
	// path and changes when the user opens or creates another database.
	DBPath string
	// DBErr is set when the database could not be read.
	DBErr error

	tables     []string
	components map[string]map[string]map[string]string

	selectedTable string
	selectedIPN   string

	// modified holds edited but unsaved field values, keyed by IPN.
	modified map[string]map[string]string
}

// NewModel creates a model reading the given config file. The database
// named by the config (or dbPath, when non-empty) is loaded immediately.
func NewModel(configPath, dbPath string, log *zap.Logger) *Model {
	m := &Model{
		log:        log,
		ConfigPath: configPath,
		modified:   map[string]map[string]string{},
	}
	m.LoadConfig(configPath)
	if dbPath != "" {
		m.DBPath = dbPath
	}
	m.LoadComponents()
	return m
}

// LoadConfig reads the config file and adopts its database path.
func (m *Model) LoadConfig(path string) {
	m.ConfigPath = path
	m.ConfigErr = nil

	cfg, err := config.Load(path)
	if err != nil {
		m.ConfigErr = err
		m.log.Warn("could not load config", zap.String("path", path), zap.Error(err))
		return
	}
	dbPath, err := cfg.DatabasePath()
	if err != nil {
		m.ConfigErr = err
		return
	}
	m.DBPath = dbPath
}

// LoadComponents re-reads all tables from the database. On failure the
// model is left empty with DBErr set.
func (m *Model) LoadComponents() {
	m.tables = nil
	m.components = map[string]map[string]map[string]string{}
	m.selectedTable = ""
	m.selectedIPN = ""
	m.modified = map[string]map[string]string{}
	m.DBErr = nil

	st, err := store.Open(m.DBPath, m.log)
	if err != nil {
		m.DBErr = err
		m.log.Error("could not open database",
			zap.String("path", m.DBPath), zap.Error(err))
		return
	}
	defer st.Close()

	tables, err := st.TableNames()
	if err != nil {
		m.DBErr = err
		return
	}
	m.tables = tables

	for _, table := range tables {
		rows, err := st.Components(table)
		if err != nil {
			m.DBErr = err
			return
		}
		byIPN := make(map[string]map[string]string, len(rows))
		for _, row := range rows {
			byIPN[row[component.PrimaryKey]] = row
		}
		m.components[table] = byIPN
	}

	if len(tables) > 0 {
		m.SelectTable(tables[0])
	}
}

// CreateNewDatabase initializes an empty database at path and switches to
// it.
func (m *Model) CreateNewDatabase(path string) error {
	if err := store.Initialize(path); err != nil {
		return err
	}
	m.DBPath = path
	m.LoadComponents()
	return nil
}

// Tables returns the table names in the database, sorted.
func (m *Model) Tables() []string {
	return m.tables
}

// SelectedTable returns the currently selected table name.
func (m *Model) SelectedTable() string {
	return m.selectedTable
}

// SelectTable selects a table by name or friendly name. The first part in
// the table becomes the selected part.
func (m *Model) SelectTable(name string) {
	table := name
	if t := component.TypeForFriendlyName(name); t != nil {
		table = t.Table
	}
	if _, ok := m.components[table]; !ok {
		return
	}
	m.selectedTable = table

	m.selectedIPN = ""
	if ipns := m.IPNs(); len(ipns) > 0 {
		m.selectedIPN = ipns[0]
	}
}

// IPNs returns the part numbers in the selected table, sorted.
func (m *Model) IPNs() []string {
	byIPN := m.components[m.selectedTable]
	ipns := make([]string, 0, len(byIPN))
	for ipn := range byIPN {
		ipns = append(ipns, ipn)
	}
	sort.Strings(ipns)
	return ipns
}

// SelectComponent selects a part in the current table by part number.
// An unknown part number clears the selection.
func (m *Model) SelectComponent(ipn string) {
	if _, ok := m.components[m.selectedTable][ipn]; !ok {
		m.selectedIPN = ""
		return
	}
	m.selectedIPN = ipn
}

// SelectedIPN returns the selected part number, or "" if none.
func (m *Model) SelectedIPN() string {
	return m.selectedIPN
}

// Component returns the saved values of a part in the selected table.
func (m *Model) Component(ipn string) map[string]string {
	return m.components[m.selectedTable][ipn]
}

// DisplayFields returns the column names to display for the selected
// table, in schema order. Without a selection the common columns are
// used.
func (m *Model) DisplayFields() []string {
	if t := component.TypeForTable(m.selectedTable); t != nil {
		return t.Columns()
	}
	return component.CommonColumns
}

// SelectedComponent returns the field values to display for the selected
// part, with unsaved edits applied. The second return is false when no
// part is selected.
func (m *Model) SelectedComponent() (map[string]string, bool) {
	if m.selectedIPN == "" {
		return nil, false
	}
	if edited, ok := m.modified[m.selectedIPN]; ok {
		return edited, true
	}
	return m.components[m.selectedTable][m.selectedIPN], true
}

// IsCheckboxField reports whether a field holds a 0/1 flag.
func (m *Model) IsCheckboxField(field string) bool {
	return field == "exclude_from_bom" || field == "exclude_from_board"
}

// ModifyField records an edit to one field of the selected part. Edits
// are kept separate from the saved values until SaveComponent is called;
// reverting a field to its saved value discards the pending edit.
func (m *Model) ModifyField(field, value string) {
	if m.selectedIPN == "" {
		return
	}
	saved := m.components[m.selectedTable][m.selectedIPN]

	edited, ok := m.modified[m.selectedIPN]
	if !ok {
		edited = make(map[string]string, len(saved))
		for k, v := range saved {
			edited[k] = v
		}
	}
	edited[field] = value

	dirty := false
	for k, v := range edited {
		if saved[k] != v {
			dirty = true
			break
		}
	}
	if dirty {
		m.modified[m.selectedIPN] = edited
	} else {
		delete(m.modified, m.selectedIPN)
	}
}

// HasUnsavedChanges reports whether any part has pending edits.
func (m *Model) HasUnsavedChanges() bool {
	return len(m.modified) > 0
}

// SaveComponent writes the pending edits for one part back to the
// database.
func (m *Model) SaveComponent(ipn string) error {
	edited, ok := m.modified[ipn]
	if !ok {
		return nil
	}

	table, ok := m.tableForIPN(ipn)
	if !ok {
		return fmt.Errorf("no part %s in database", ipn)
	}

	st, err := store.Open(m.DBPath, m.log)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.UpdateComponent(table, edited); err != nil {
		return err
	}
	m.components[table][ipn] = edited
	delete(m.modified, ipn)
	return nil
}

// SaveAll writes all pending edits back to the database.
func (m *Model) SaveAll() error {
	for ipn := range m.modified {
		if err := m.SaveComponent(ipn); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) tableForIPN(ipn string) (string, bool) {
	for table, byIPN := range m.components {
		if _, ok := byIPN[ipn]; ok {
			return table, true
		}
	}
	return "", false
}
