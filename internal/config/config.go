// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete quill configuration.
type Config struct {
	// Version of the config file layout.
	Version string `toml:"version"`

	// Sidebar configuration (paging and windowing)
	Sidebar SidebarConfig `toml:"sidebar"`

	// Storage configuration (database and folder document)
	Storage StorageConfig `toml:"storage"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// SidebarConfig controls how the conversation list loads and renders.
type SidebarConfig struct {
	// PageSize is the number of conversations fetched per page.
	// Valid range is 10-500; out-of-range values are clamped.
	PageSize int `toml:"page_size"`
	// Overscan is the number of extra rows materialized above and below
	// the viewport. Valid range is 0-20; clamped.
	Overscan int `toml:"overscan"`
	// EndReachedThreshold is how many rows from the bottom the scroll
	// position must be before the next page is requested. Valid range is
	// 0-100; clamped.
	EndReachedThreshold int `toml:"end_reached_threshold"`
	// EstimatedRowHeight is the height assumed for rows that have not
	// been measured yet. Valid range is 1-10; clamped.
	EstimatedRowHeight int `toml:"estimated_row_height"`
	// LoadRatePerSec caps how many page loads may start per second.
	// 0 disables the cap.
	LoadRatePerSec float64 `toml:"load_rate_per_sec"`
}

// StorageConfig contains storage locations.
type StorageConfig struct {
	// DBPath is the conversation database path (empty = ~/.quill/quill.db)
	DBPath string `toml:"db_path"`
	// FoldersPath is the folder document path (empty = ~/.quill/folders.json)
	FoldersPath string `toml:"folders_path"`
	// WatchFolders reloads the folder document when another process
	// writes it.
	WatchFolders bool `toml:"watch_folders"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme"`
	// SidebarWidth is the sidebar column width in cells. Valid range is
	// 20-80; clamped.
	SidebarWidth int `toml:"sidebar_width"`
	// ShowPreview displays the markdown preview pane
	ShowPreview bool `toml:"show_preview"`
	// CompactMode renders conversation rows on a single line
	CompactMode bool `toml:"compact_mode"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Sidebar: SidebarConfig{
			PageSize:            50,
			Overscan:            3,
			EndReachedThreshold: 10,
			EstimatedRowHeight:  2,
			LoadRatePerSec:      4,
		},

		Storage: StorageConfig{
			DBPath:       "",
			FoldersPath:  "",
			WatchFolders: true,
		},

		UI: UIConfig{
			Theme:        "auto",
			SidebarWidth: 32,
			ShowPreview:  true,
			CompactMode:  false,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the quill configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".quill"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// DBPath resolves the database path, falling back to the default location.
func (c *Config) DBPath() (string, error) {
	if c.Storage.DBPath != "" {
		return c.Storage.DBPath, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "quill.db"), nil
}

// FoldersPath resolves the folder document path, falling back to the
// default location.
func (c *Config) FoldersPath() (string, error) {
	if c.Storage.FoldersPath != "" {
		return c.Storage.FoldersPath, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "folders.json"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file, falling back to defaults
// when the file is missing. Environment overrides are applied last, then
// the result is normalized and validated.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to decode config file: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "# quill configuration file")
	fmt.Fprintln(file, "# Generated by quill - edit with care")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors. Numeric
// ranges are clamped by SetDefaults rather than rejected here, so Validate
// only reports errors a clamp cannot fix.
func (c *Config) Validate() error {
	var errs ValidateErrors

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if c.Sidebar.LoadRatePerSec < 0 {
		errs = append(errs, ValidationError{
			Field:   "sidebar.load_rate_per_sec",
			Message: "cannot be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills in missing values and clamps numeric settings into
// their valid ranges.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}

	if c.Sidebar.PageSize == 0 {
		c.Sidebar.PageSize = defaults.Sidebar.PageSize
	}
	if c.Sidebar.EstimatedRowHeight == 0 {
		c.Sidebar.EstimatedRowHeight = defaults.Sidebar.EstimatedRowHeight
	}
	if c.UI.SidebarWidth == 0 {
		c.UI.SidebarWidth = defaults.UI.SidebarWidth
	}

	c.Sidebar.PageSize = clamp(c.Sidebar.PageSize, 10, 500)
	c.Sidebar.Overscan = clamp(c.Sidebar.Overscan, 0, 20)
	c.Sidebar.EndReachedThreshold = clamp(c.Sidebar.EndReachedThreshold, 0, 100)
	c.Sidebar.EstimatedRowHeight = clamp(c.Sidebar.EstimatedRowHeight, 1, 10)
	c.UI.SidebarWidth = clamp(c.UI.SidebarWidth, 20, 80)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - QUILL_THEME: overrides ui.theme
//   - QUILL_DB_PATH: overrides storage.db_path
//   - QUILL_FOLDERS_PATH: overrides storage.folders_path
//   - QUILL_PAGE_SIZE: overrides sidebar.page_size
//   - QUILL_NO_PREVIEW: set to "1" or "true" to hide the preview pane
//   - QUILL_NO_WATCH: set to "1" or "true" to disable the folder watcher
func (c *Config) ApplyEnvOverrides() {
	if theme := os.Getenv("QUILL_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if path := os.Getenv("QUILL_DB_PATH"); path != "" {
		c.Storage.DBPath = path
	}
	if path := os.Getenv("QUILL_FOLDERS_PATH"); path != "" {
		c.Storage.FoldersPath = path
	}
	if size := os.Getenv("QUILL_PAGE_SIZE"); size != "" {
		if n, err := strconv.Atoi(size); err == nil {
			c.Sidebar.PageSize = n
		}
	}
	if v := os.Getenv("QUILL_NO_PREVIEW"); v != "" {
		if isTruthy(v) {
			c.UI.ShowPreview = false
		}
	}
	if v := os.Getenv("QUILL_NO_WATCH"); v != "" {
		if isTruthy(v) {
			c.Storage.WatchFolders = false
		}
	}
}

func isTruthy(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}
