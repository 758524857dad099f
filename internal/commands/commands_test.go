package commands_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/statements/internal/commands"
	"github.com/cleared-dev/statements/internal/config"
)

const standardFixture = "../../testdata/statement_standard.csv"

// runStatements executes the CLI in-process against a config path that
// does not exist, so defaults apply unless the test writes one.
func runStatements(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), config.FileName)
	return runWithConfig(t, cfgPath, args...)
}

func runWithConfig(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := commands.NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestInit_WritesConfig(t *testing.T) {
	dir := t.TempDir()
	out, err := runStatements(t, "init", dir, "--tz", "UTC")
	require.NoError(t, err)
	assert.Contains(t, out, config.FileName)

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "standard", cfg.DefaultProfile)
}

func TestInit_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	_, err := runStatements(t, "init", dir)
	require.NoError(t, err)

	_, err = runStatements(t, "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = runStatements(t, "init", dir, "--force")
	require.NoError(t, err)
}

func TestInit_RejectsBadTimezone(t *testing.T) {
	_, err := runStatements(t, "init", t.TempDir(), "--tz", "Mars/Olympus")
	require.Error(t, err)
}

func TestNormalize_JSON(t *testing.T) {
	out, err := runStatements(t, "normalize", standardFixture, "--tz", "UTC")
	require.NoError(t, err)

	var res struct {
		Profile      string           `json:"profile"`
		Transactions []map[string]any `json:"transactions"`
		DailyBuckets []map[string]any `json:"dailyBuckets"`
		Totals       map[string]float64
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "standard", res.Profile)
	require.Len(t, res.Transactions, 4)
	assert.Equal(t, "2025-01-01T09:30:00Z", res.Transactions[0]["ts"])
	assert.Len(t, res.DailyBuckets, 4)
	assert.InDelta(t, 1020.00, res.Totals["credits"], 0.001)
	assert.InDelta(t, 1239.06, res.Totals["debits"], 0.001)
	assert.InDelta(t, -219.06, res.Totals["net"], 0.001)
}

func TestNormalize_CSVToFile(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out.csv")
	out, err := runStatements(t, "normalize", standardFixture, "--tz", "UTC", "--format", "csv", "--out", dst)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 4 transactions")

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "ts,date,description,amount,credit,debit,direction", lines[0])
	assert.Contains(t, lines[1], "Opening deposit")
}

func TestNormalize_DailyCSVWithWindow(t *testing.T) {
	out, err := runStatements(t, "normalize", standardFixture, "--tz", "UTC",
		"--format", "csv", "--daily", "--from", "2025-01-02", "--to", "2025-01-03")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "date,credit,debit,net,cumulative_close", lines[0])
	assert.Equal(t, "2025-01-02,0.00,1239.06,-1239.06,-1239.06", lines[1])
}

func TestNormalize_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"normalize", "nope.csv"}},
		{"bad format", []string{"normalize", standardFixture, "--format", "xml"}},
		{"unknown profile", []string{"normalize", standardFixture, "--profile", "nope"}},
		{"bad window", []string{"normalize", standardFixture, "--from", "2025-13-01"}},
		{"header out of range", []string{"normalize", standardFixture, "--header-row", "40"}},
		{"negative header row", []string{"normalize", standardFixture, "--header-row=-3"}},
		{"bad timezone", []string{"normalize", standardFixture, "--tz", "Nowhere/Land"}},
	}
	for _, tt := range tests {
		_, err := runStatements(t, tt.args...)
		assert.Error(t, err, tt.name)
	}
}

func TestNormalize_NegativeHeaderRowRejected(t *testing.T) {
	_, err := runStatements(t, "normalize", standardFixture, "--tz", "UTC", "--header-row=-3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--header-row must be >= 0")
}

func TestNormalize_UsesConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, config.FileName)
	cfg := config.Default()
	cfg.Timezone = "UTC"
	cfg.HeaderRow = 3
	cfg.DefaultProfile = "de"
	require.NoError(t, config.Save(cfgPath, cfg))

	out, err := runWithConfig(t, cfgPath, "normalize", "../../testdata/statement_de.csv", "--format", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 5)
	assert.Contains(t, out, `Supermarkt\Filiale 12`)
}

func TestPreview(t *testing.T) {
	out, err := runStatements(t, "preview", "../../testdata/statement_de.csv", "--rows", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "sheet: csv")
	assert.Contains(t, out, "IBAN")
	assert.Contains(t, out, "Buchungstag")
	assert.NotContains(t, out, "Gehalt")

	_, err = runStatements(t, "preview", standardFixture, "--rows", "-1")
	require.Error(t, err)
}

func TestProfiles(t *testing.T) {
	out, err := runStatements(t, "profiles")
	require.NoError(t, err)
	for _, name := range []string{"standard *", "inverted", "ru", "de"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "Haben")
}

func TestVersion(t *testing.T) {
	out, err := runStatements(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "commit:")
}
