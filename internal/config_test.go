package internal

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/tinysql/internal/engine"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tinysql.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "tinysql", cfg.AppName)
	assert.False(t, cfg.Parser.Strict)
	assert.Equal(t, "database", cfg.Executor.Backfill)
	assert.False(t, cfg.Executor.StrictInsert)
	assert.Equal(t, 15, cfg.Output.ColumnWidth)
	assert.Equal(t, "127.0.0.1:8866", cfg.Server.Addr)
	assert.Equal(t, engine.BackfillDatabase, cfg.BackfillScope())

	lvl, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
app_name: demo
parser:
  strict: true
executor:
  backfill: table
  strict_insert: true
output:
  column_width: 8
server:
  addr: 0.0.0.0:9000
log:
  level: debug
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.AppName)
	assert.True(t, cfg.Parser.Strict)
	assert.Equal(t, engine.BackfillTable, cfg.BackfillScope())
	assert.True(t, cfg.Executor.StrictInsert)
	assert.Equal(t, 8, cfg.Output.ColumnWidth)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)

	opts := cfg.ExecutorOptions()
	assert.True(t, opts.Parser.Strict)
	assert.True(t, opts.Planner.StrictInsert)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("TINYSQL_EXECUTOR_BACKFILL", "table")
	t.Setenv("TINYSQL_OUTPUT_COLUMN_WIDTH", "20")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, engine.BackfillTable, cfg.BackfillScope())
	assert.Equal(t, 20, cfg.Output.ColumnWidth)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "executor:\n  backfill: everything\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backfill")

	_, err = LoadConfig(writeConfig(t, "output:\n  column_width: 0\n"))
	require.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "log:\n  level: loud\n"))
	require.Error(t, err)
}

func TestConfig_NewSession(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	a := cfg.NewSession()
	b := cfg.NewSession()

	_, err = a.ExecScript("CREATE TABLE t (id INT);")
	require.NoError(t, err)

	// sessions do not share tables
	res, err := b.ExecScript("SHOW TABLES;")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Empty(t, res[0].Tables)
}
