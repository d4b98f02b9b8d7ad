// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/monocat/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/monocat/config.cue on macOS, %APPDATA%\monocat\config.cue
// on Windows). The package provides type-safe configuration access for the default
// repository coordinates, the API base URL, and UI settings. The API credential is
// deliberately excluded: it only ever comes from the environment or an explicit option.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
