package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/learnhub/internal/cli"
	"github.com/mrlokans/learnhub/internal/config"
)

func TestNewCommand(t *testing.T) {
	cfg := &config.Config{
		Database: config.Database{Driver: config.DriverSQLite, Path: filepath.Join(t.TempDir(), "main.db")},
	}

	cmd, err := newCommand("migrate", cfg)
	require.NoError(t, err)
	assert.IsType(t, &cli.MigrateCommand{}, cmd)

	cmd, err = newCommand("create-admin", cfg)
	require.NoError(t, err)
	assert.IsType(t, &cli.CreateAdminCommand{}, cmd)

	_, err = newCommand("frobnicate", cfg)
	assert.EqualError(t, err, "unknown command: frobnicate")
}

func TestNewCommand_MigrateRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.db")
	cfg := &config.Config{Database: config.Database{Driver: config.DriverSQLite, Path: path}}

	cmd, err := newCommand("migrate", cfg)
	require.NoError(t, err)
	require.NoError(t, cmd.ParseFlags(nil))
	require.NoError(t, cmd.Run())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
