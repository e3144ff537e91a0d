// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 50, cfg.Sidebar.PageSize)
	assert.Equal(t, 3, cfg.Sidebar.Overscan)
	assert.Equal(t, 2, cfg.Sidebar.EstimatedRowHeight)
	assert.Equal(t, "auto", cfg.UI.Theme)
	assert.True(t, cfg.Storage.WatchFolders)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
version = "1.0.0"

[sidebar]
page_size = 100
overscan = 5

[ui]
theme = "light"
sidebar_width = 40
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Sidebar.PageSize)
	assert.Equal(t, 5, cfg.Sidebar.Overscan)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.Equal(t, 40, cfg.UI.SidebarWidth)

	// Unset numeric fields fall back to defaults.
	assert.Equal(t, 2, cfg.Sidebar.EstimatedRowHeight)
}

func TestLoadFromPath_InvalidTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\ntheme = \"neon\"\n"), 0600))

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ui.theme")
}

func TestSetDefaults_Clamping(t *testing.T) {
	tests := []struct {
		name string
		set  func(*Config)
		get  func(*Config) int
		want int
	}{
		{"page size floor", func(c *Config) { c.Sidebar.PageSize = 1 }, func(c *Config) int { return c.Sidebar.PageSize }, 10},
		{"page size ceiling", func(c *Config) { c.Sidebar.PageSize = 9999 }, func(c *Config) int { return c.Sidebar.PageSize }, 500},
		{"overscan ceiling", func(c *Config) { c.Sidebar.Overscan = 100 }, func(c *Config) int { return c.Sidebar.Overscan }, 20},
		{"overscan floor", func(c *Config) { c.Sidebar.Overscan = -1 }, func(c *Config) int { return c.Sidebar.Overscan }, 0},
		{"row height floor", func(c *Config) { c.Sidebar.EstimatedRowHeight = -3 }, func(c *Config) int { return c.Sidebar.EstimatedRowHeight }, 1},
		{"row height ceiling", func(c *Config) { c.Sidebar.EstimatedRowHeight = 50 }, func(c *Config) int { return c.Sidebar.EstimatedRowHeight }, 10},
		{"sidebar width floor", func(c *Config) { c.UI.SidebarWidth = 5 }, func(c *Config) int { return c.UI.SidebarWidth }, 20},
		{"sidebar width ceiling", func(c *Config) { c.UI.SidebarWidth = 300 }, func(c *Config) int { return c.UI.SidebarWidth }, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.set(cfg)
			cfg.SetDefaults()
			assert.Equal(t, tt.want, tt.get(cfg))
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("QUILL_THEME", "dark")
	t.Setenv("QUILL_PAGE_SIZE", "75")
	t.Setenv("QUILL_DB_PATH", "/tmp/quill-test.db")
	t.Setenv("QUILL_NO_PREVIEW", "true")
	t.Setenv("QUILL_NO_WATCH", "1")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, 75, cfg.Sidebar.PageSize)
	assert.Equal(t, "/tmp/quill-test.db", cfg.Storage.DBPath)
	assert.False(t, cfg.UI.ShowPreview)
	assert.False(t, cfg.Storage.WatchFolders)
}

func TestApplyEnvOverrides_IgnoresBadPageSize(t *testing.T) {
	t.Setenv("QUILL_PAGE_SIZE", "not-a-number")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, 50, cfg.Sidebar.PageSize)
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Sidebar.PageSize = 120
	cfg.UI.Theme = "dark"
	require.NoError(t, SaveTOML(cfg, path))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 120, loaded.Sidebar.PageSize)
	assert.Equal(t, "dark", loaded.UI.Theme)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestValidate_NegativeLoadRate(t *testing.T) {
	cfg := Default()
	cfg.Sidebar.LoadRatePerSec = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load_rate_per_sec")
}

func TestDBPathFallback(t *testing.T) {
	cfg := Default()

	path, err := cfg.DBPath()
	require.NoError(t, err)
	assert.Contains(t, path, ".quill")

	cfg.Storage.DBPath = "/custom/quill.db"
	path, err = cfg.DBPath()
	require.NoError(t, err)
	assert.Equal(t, "/custom/quill.db", path)
}
