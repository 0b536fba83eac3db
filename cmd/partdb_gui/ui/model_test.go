package ui

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"partdb/internal/component"
	"partdb/internal/config"
	"partdb/internal/store"
)

// newTestModel builds a config file and a database holding one resistor
// and one capacitor.
func newTestModel(t *testing.T) *Model {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "parts.db")
	cfgPath := filepath.Join(dir, "config.yaml")

	require.NoError(t, config.Save(cfgPath, &config.Config{
		Database: config.DatabaseConfig{Path: dbPath},
	}))
	require.NoError(t, store.Initialize(dbPath))

	log := zaptest.NewLogger(t)
	st, err := store.Open(dbPath, log)
	require.NoError(t, err)
	defer st.Close()

	r, err := component.NewResistor("100", "1%", "0.1W", "Thin Film", "0603")
	require.NoError(t, err)
	c, err := component.NewCapacitor("330n", "X7R", "10%", "50V", "0805")
	require.NoError(t, err)
	for _, comp := range []*component.Component{r, c} {
		_, err := st.AddComponent(comp, store.AddOptions{})
		require.NoError(t, err)
	}

	return NewModel(cfgPath, "", log)
}

const (
	testResistorIPN  = "R_100_0603_1%_0.1W_ThinFilm"
	testCapacitorIPN = "C_330n_0805_10%_50V_X7R"
)

func TestModelLoads(t *testing.T) {
	m := newTestModel(t)

	assert.NoError(t, m.ConfigErr)
	assert.NoError(t, m.DBErr)
	assert.Equal(t, []string{"capacitor", "resistor"}, m.Tables())

	// first table and its first part are selected
	assert.Equal(t, "capacitor", m.SelectedTable())
	assert.Equal(t, testCapacitorIPN, m.SelectedIPN())

	values, ok := m.SelectedComponent()
	require.True(t, ok)
	assert.Equal(t, "330n", values["capacitance"])
}

func TestModelConfigError(t *testing.T) {
	m := newTestModel(t)
	m.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, m.ConfigErr)
}

func TestModelDatabaseError(t *testing.T) {
	m := newTestModel(t)
	m.DBPath = filepath.Join(t.TempDir(), "missing.db")
	m.LoadComponents()

	assert.Error(t, m.DBErr)
	assert.Empty(t, m.Tables())
	assert.Empty(t, m.SelectedTable())
	_, ok := m.SelectedComponent()
	assert.False(t, ok)
}

func TestModelCreateNewDatabase(t *testing.T) {
	m := newTestModel(t)
	path := filepath.Join(t.TempDir(), "new.db")

	require.NoError(t, m.CreateNewDatabase(path))
	assert.Equal(t, path, m.DBPath)
	assert.FileExists(t, path)
	assert.Empty(t, m.Tables())
}

func TestModelSelectTable(t *testing.T) {
	m := newTestModel(t)

	m.SelectTable("Resistor") // friendly name
	assert.Equal(t, "resistor", m.SelectedTable())
	assert.Equal(t, testResistorIPN, m.SelectedIPN())

	m.SelectTable("capacitor") // table name
	assert.Equal(t, "capacitor", m.SelectedTable())

	m.SelectTable("no_such_table")
	assert.Equal(t, "capacitor", m.SelectedTable())
}

func TestModelSelectComponent(t *testing.T) {
	m := newTestModel(t)

	m.SelectComponent(testCapacitorIPN)
	assert.Equal(t, testCapacitorIPN, m.SelectedIPN())

	m.SelectComponent("C_does_not_exist")
	assert.Empty(t, m.SelectedIPN())
	_, ok := m.SelectedComponent()
	assert.False(t, ok)
}

func TestModelDisplayFields(t *testing.T) {
	m := newTestModel(t)
	m.SelectTable("Resistor")

	fields := m.DisplayFields()
	assert.Equal(t, "IPN", fields[0])
	assert.Contains(t, fields, "resistance")
	assert.Contains(t, fields, "composition")
}

func TestModelIsCheckboxField(t *testing.T) {
	m := newTestModel(t)
	assert.True(t, m.IsCheckboxField("exclude_from_bom"))
	assert.True(t, m.IsCheckboxField("exclude_from_board"))
	assert.False(t, m.IsCheckboxField("value"))
}

func TestModelModifyField(t *testing.T) {
	m := newTestModel(t)
	orig := m.Component(testCapacitorIPN)["value"]

	m.ModifyField("value", "new_value")
	assert.True(t, m.HasUnsavedChanges())

	// the edit is visible through SelectedComponent but not saved
	values, _ := m.SelectedComponent()
	assert.Equal(t, "new_value", values["value"])
	assert.Equal(t, orig, m.Component(testCapacitorIPN)["value"])

	// reverting the edit clears the pending change
	m.ModifyField("value", orig)
	assert.False(t, m.HasUnsavedChanges())
}

func TestModelSaveComponent(t *testing.T) {
	m := newTestModel(t)

	m.ModifyField("value", "new_value")
	require.NoError(t, m.SaveComponent(testCapacitorIPN))

	assert.False(t, m.HasUnsavedChanges())
	assert.Equal(t, "new_value", m.Component(testCapacitorIPN)["value"])

	// the change survives a reload from disk
	m.LoadComponents()
	assert.Equal(t, "new_value", m.Component(testCapacitorIPN)["value"])
}

func TestModelSaveAll(t *testing.T) {
	m := newTestModel(t)

	m.ModifyField("value", "cap_value")
	m.SelectTable("Resistor")
	m.ModifyField("value", "res_value")

	require.NoError(t, m.SaveAll())
	assert.False(t, m.HasUnsavedChanges())

	m.LoadComponents()
	m.SelectTable("Resistor")
	assert.Equal(t, "res_value", m.Component(testResistorIPN)["value"])
	m.SelectTable("Capacitor")
	assert.Equal(t, "cap_value", m.Component(testCapacitorIPN)["value"])
}
