// ABOUTME: Tests for config loading: defaults, YAML files, environment overrides and Save.
// ABOUTME: Every test points YOROOL_CONFIG and XDG_CONFIG_HOME at a temp dir.
package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389-research/yorool/config"
	"github.com/2389-research/yorool/router"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("YOROOL_CONFIG", "")
	return dir
}

func TestDefaults(t *testing.T) {
	isolate(t)
	c, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, router.DefaultMaxTicks, c.Router.MaxTicks)
	assert.Equal(t, router.DefaultMaxStall, c.Router.MaxStall)
	assert.False(t, c.Router.StrictContracts)
	assert.True(t, c.Trace.JSONL)
	assert.False(t, c.Trace.SQLite)
	assert.Equal(t, "", c.Trace.Dir)
	assert.Equal(t, 200, c.TUI.LogLines)
}

func TestFileAndEnvOverrides(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
router:
  max_ticks: 32
  strict_contracts: true
trace:
  sqlite: true
  dir: /tmp/traces
`), 0o644))

	t.Run("file", func(t *testing.T) {
		c, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, 32, c.Router.MaxTicks)
		assert.Equal(t, router.DefaultMaxStall, c.Router.MaxStall)
		assert.True(t, c.Router.StrictContracts)
		assert.True(t, c.Trace.SQLite)
		assert.Equal(t, "/tmp/traces", c.Trace.Dir)
	})

	t.Run("env beats file", func(t *testing.T) {
		t.Setenv("YOROOL_ROUTER_MAX_TICKS", "12")
		t.Setenv("YOROOL_TUI_LOG_LINES", "50")
		c, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, 12, c.Router.MaxTicks)
		assert.Equal(t, 50, c.TUI.LogLines)
	})

	t.Run("YOROOL_CONFIG names the file", func(t *testing.T) {
		t.Setenv("YOROOL_CONFIG", path)
		c, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, 32, c.Router.MaxTicks)
	})
}

func TestExplicitMissingFileFails(t *testing.T) {
	dir := isolate(t)
	_, err := config.Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestValidation(t *testing.T) {
	isolate(t)
	t.Setenv("YOROOL_ROUTER_MAX_STALL", "0")
	_, err := config.Load("")
	assert.ErrorContains(t, err, "router.max_stall")
}

func TestSaveRoundTrip(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "yorool", "config.yaml")
	want := config.Config{
		Router: config.RouterConfig{MaxTicks: 10, MaxStall: 3, StrictContracts: true},
		Trace:  config.TraceConfig{Dir: "/data", JSONL: false, SQLite: true},
		TUI:    config.TUIConfig{LogLines: 40},
	}
	require.NoError(t, config.Save(path, want))
	assert.Equal(t, path, config.DefaultPath())

	got, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDefaultsIgnoreEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("YOROOL_ROUTER_MAX_TICKS", "9")
	d := config.Defaults()
	assert.Equal(t, router.DefaultMaxTicks, d.Router.MaxTicks)
	assert.NoError(t, d.Validate())

	loaded, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 9, loaded.Router.MaxTicks)
}
