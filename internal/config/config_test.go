package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/statements/internal/profile"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Timezone = "Asia/Almaty"
	cfg.HeaderRow = 7
	cfg.Profiles = []profile.Profile{
		{Name: "mybank", Columns: profile.ColumnSpec{Date: []string{"Booked"}, Income: []string{"In"}, Expense: []string{"Out"}}},
	}

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Asia/Almaty", got.Timezone)
	assert.Equal(t, 7, got.HeaderRow)
	assert.Equal(t, profile.Standard, got.DefaultProfile)
	assert.Equal(t, cfg.Server, got.Server)
	assert.Equal(t, cfg.Log, got.Log)
	require.Len(t, got.Profiles, 1)
	assert.Equal(t, []string{"Booked"}, got.Profiles[0].Columns.Date)
	assert.Equal(t, []string{"Out"}, got.Profiles[0].Columns.Expense)
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
	assert.Equal(t, 0, cfg.HeaderRow)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("timezone: UTC\nserver:\n  read_timeout: 5s\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, profile.Standard, cfg.DefaultProfile)
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STATEMENTS_TIMEZONE", "UTC")
	t.Setenv("STATEMENTS_HEADER_ROW", "3")

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, 3, cfg.HeaderRow)
}

func TestApplyEnv_BadHeaderRow(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STATEMENTS_HEADER_ROW", "three")
	err := Default().ApplyEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STATEMENTS_HEADER_ROW")
}

func TestApplyEnv_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("STATEMENTS_PROFILE=ru\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("STATEMENTS_PROFILE") })

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, profile.Russian, cfg.DefaultProfile)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, "timezone"},
		{"negative header row", func(c *Config) { c.HeaderRow = -1 }, "header_row"},
		{"zero upload", func(c *Config) { c.Server.MaxUploadMB = 0 }, "max_upload_mb"},
		{"unknown default profile", func(c *Config) { c.DefaultProfile = "nope" }, "default_profile"},
		{"shadowed profile", func(c *Config) {
			c.Profiles = []profile.Profile{{Name: "standard", Columns: profile.ColumnSpec{Date: []string{"d"}, Income: []string{"i"}}}}
		}, "duplicate"},
	}
	for _, tt := range tests {
		cfg := Default()
		tt.modify(cfg)
		err := cfg.Validate()
		require.Error(t, err, tt.name)
		assert.Contains(t, err.Error(), tt.want, tt.name)
	}
}

func TestRegistry_IncludesConfigProfiles(t *testing.T) {
	cfg := Default()
	cfg.Profiles = []profile.Profile{
		{Name: "mybank", Columns: profile.ColumnSpec{Date: []string{"Booked"}, Income: []string{"In"}}},
	}
	cfg.DefaultProfile = "mybank"
	reg, err := cfg.Registry()
	require.NoError(t, err)
	assert.True(t, reg.Has("mybank"))
	assert.True(t, reg.Has(profile.Standard))
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(old)) })
}
