package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"partdb/internal/component"
	"partdb/internal/store"
)

// runCLI executes the root command with the given arguments.
func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// resetFlags restores global flag state between tests, since command
// variables are package globals.
func resetFlags() {
	configPath, dbPath, verbose = "", "", false
	addFromDigikey, addFromCSV = false, false
	addIncrement, addUpdate, addNoDB = false, false, false
	addShow, addShowCSV, addShowResponse = false, false, false
	showTables, showColumns = nil, nil
	showMinimal, showAll, showCSV, showTablesOnly = false, false, false, false
	generateToDB = false
}

func writeResistorCSV(t *testing.T, dir string) string {
	t.Helper()
	r, err := component.NewResistor("100", "1%", "0.1W", "Thin Film", "0603")
	require.NoError(t, err)
	path := filepath.Join(dir, "resistor.csv")
	require.NoError(t, os.WriteFile(path, []byte(r.ToCSV(true, true)), 0o644))
	return path
}

func TestInitAddRemove(t *testing.T) {
	resetFlags()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	db := filepath.Join(dir, "parts.db")

	require.NoError(t, runCLI(t, "init", "--config", cfg, "--database", db))
	assert.FileExists(t, cfg)
	assert.FileExists(t, db)

	csvPath := writeResistorCSV(t, dir)
	require.NoError(t, runCLI(t,
		"--config", cfg, "--database", db, "add", "--csv", csvPath))

	st, err := store.Open(db, zap.NewNop())
	require.NoError(t, err)
	tables, err := st.TableNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"resistor"}, tables)

	dump, err := st.DumpRows(nil, []string{"IPN"})
	require.NoError(t, err)
	require.Len(t, dump.Rows, 1)
	assert.Equal(t, "R_100_0603_1%_0.1W_ThinFilm", dump.Rows[0]["IPN"])
	require.NoError(t, st.Close())

	require.NoError(t, runCLI(t,
		"--config", cfg, "--database", db, "rm", "R_100_0603_1%_0.1W_ThinFilm"))

	st, err = store.Open(db, zap.NewNop())
	require.NoError(t, err)
	dump, err = st.DumpRows(nil, []string{"IPN"})
	require.NoError(t, err)
	assert.Empty(t, dump.Rows)
	require.NoError(t, st.Close())
}

func TestInitRefusesExistingDatabase(t *testing.T) {
	resetFlags()
	dir := t.TempDir()
	db := filepath.Join(dir, "parts.db")
	require.NoError(t, runCLI(t, "init", "--database", db,
		"--config", filepath.Join(dir, "config.yaml")))

	resetFlags()
	err := runCLI(t, "init", "--database", db,
		"--config", filepath.Join(dir, "config.yaml"))
	assert.Error(t, err)
}

func TestInitNoTarget(t *testing.T) {
	resetFlags()
	err := runCLI(t, "init")
	assert.ErrorContains(t, err, "nothing to initialize")
}

func TestInitDefaultConfigPath(t *testing.T) {
	resetFlags()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	db := filepath.Join(dir, "parts.db")
	t.Setenv("PARTDB_CONFIG", cfg)

	// --database alone writes the config to the default path
	require.NoError(t, runCLI(t, "init", "--database", db))
	assert.FileExists(t, cfg)
	assert.FileExists(t, db)
}

func TestShowColumnSelection(t *testing.T) {
	resetFlags()
	assert.Equal(t, store.MinimalColumns, selectedColumns())

	resetFlags()
	showAll = true
	assert.Nil(t, selectedColumns())

	resetFlags()
	showColumns = []string{"IPN", "value"}
	assert.Equal(t, []string{"IPN", "value"}, selectedColumns())
}

func TestAddIncrementDuplicates(t *testing.T) {
	resetFlags()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	db := filepath.Join(dir, "parts.db")
	require.NoError(t, runCLI(t, "init", "--config", cfg, "--database", db))

	csvPath := writeResistorCSV(t, dir)
	require.NoError(t, runCLI(t,
		"--config", cfg, "--database", db, "add", "--csv", csvPath, csvPath,
		"--increment-duplicates"))

	st, err := store.Open(db, zap.NewNop())
	require.NoError(t, err)
	defer st.Close()
	dump, err := st.DumpRows(nil, []string{"IPN"})
	require.NoError(t, err)
	var ipns []string
	for _, row := range dump.Rows {
		ipns = append(ipns, row["IPN"])
	}
	assert.ElementsMatch(t, []string{
		"R_100_0603_1%_0.1W_ThinFilm",
		"R_100_0603_1%_0.1W_ThinFilm_1",
	}, ipns)
}

func TestAddRequiresSource(t *testing.T) {
	resetFlags()
	err := runCLI(t, "add", "whatever")
	assert.Error(t, err)
}

func TestDatabasePathResolution(t *testing.T) {
	resetFlags()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	db := filepath.Join(dir, "parts.db")
	require.NoError(t, runCLI(t, "init", "--config", cfg, "--database", db))

	// database path comes from the config file when --database is absent
	resetFlags()
	require.NoError(t, runCLI(t, "--config", cfg, "show", "--table-names-only"))
}

func TestTransposedTable(t *testing.T) {
	r, err := component.NewResistor("100", "1%", "0.1W", "Thin Film", "0603")
	require.NoError(t, err)
	c, err := component.NewCapacitor("330n", "X7R", "10%", "50V", "0805")
	require.NoError(t, err)

	out := transposedTable([]*component.Component{r, c})
	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 3)

	assert.Regexp(t, `^IPN\s+R_100_0603_1%_0.1W_ThinFilm\s+C_330n_0805_10%_50V_X7R$`, lines[0])
	assert.Regexp(t, `^[- ]+$`, lines[1])
	assert.Regexp(t, `(?m)^resistance\s+100`, out)
	assert.Regexp(t, `(?m)^capacitance\s+330n$`, out)
}

func TestComponentsFromCSVFiles(t *testing.T) {
	logger = zap.NewNop()
	dir := t.TempDir()
	csvPath := writeResistorCSV(t, dir)

	components, err := componentsFromCSVFiles([]string{csvPath})
	require.NoError(t, err)
	require.Len(t, components, 1)
	assert.Equal(t, "R_100_0603_1%_0.1W_ThinFilm", components[0].IPN())
	assert.Equal(t, "resistor", components[0].Table())
	assert.Equal(t, "100", components[0].Get("resistance"))
}

func TestComponentsFromCSVFilesEmpty(t *testing.T) {
	logger = zap.NewNop()
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("IPN,datasheet\n"), 0o644))

	_, err := componentsFromCSVFiles([]string{path})
	assert.ErrorContains(t, err, "contains no part rows")
}
