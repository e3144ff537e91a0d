// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for quill.
//
// Supports TOML configuration with sensible defaults, environment variable
// overrides, and validation with clamping of out-of-range values.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - SidebarConfig: List paging and windowing behavior
//   - StorageConfig: Database and folder document locations
//   - UIConfig: Theme and layout settings
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (QUILL_*)
//   - ~/.quill/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	pageSize := cfg.Sidebar.PageSize
//	theme := cfg.UI.Theme
package config
