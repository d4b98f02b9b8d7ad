// SPDX-License-Identifier: MPL-2.0

package config

import "context"

var (
	// globalConfig caches the loaded configuration for the process lifetime.
	globalConfig *Config
	// configPath records where the cached configuration was loaded from.
	configPath string
	// errLastLoad records the most recent load failure.
	errLastLoad error

	// configFilePathOverride forces loading from a specific file (--config flag).
	configFilePathOverride string
	// configDirOverride allows tests to override the config directory.
	// This is necessary because os.UserHomeDir() doesn't reliably respect
	// the HOME environment variable on all platforms (e.g., macOS in CI).
	configDirOverride string
)

// Load returns the process-wide configuration, reading it from disk on the
// first call and caching the result.
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigFilePath: configFilePathOverride})
	if err != nil {
		errLastLoad = err
		return nil, err
	}

	globalConfig = cfg
	configPath = path
	errLastLoad = nil
	return cfg, nil
}

// Get returns the configuration, falling back to defaults when loading fails.
// The load error is retained and can be inspected via LastLoadError.
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// LastLoadError returns the error from the most recent failed load, or nil.
func LastLoadError() error {
	return errLastLoad
}

// ConfigFilePath returns the path of the config file the cached configuration
// was loaded from, or "" when defaults are in effect.
func ConfigFilePath() string {
	return configPath
}

// SetConfigFilePathOverride forces subsequent loads to read the given file
// exclusively. The cached configuration is cleared.
func SetConfigFilePathOverride(path string) {
	configFilePathOverride = path
	ResetCache()
}

// SetConfigDirOverride sets a custom config directory path.
// This is primarily intended for testing to bypass os.UserHomeDir() which
// doesn't reliably respect the HOME env var on all platforms (e.g., macOS in CI).
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// ResetCache clears the cached configuration but keeps overrides in place.
func ResetCache() {
	globalConfig = nil
	configPath = ""
	errLastLoad = nil
}

// Reset clears test overrides and cached state. Call from test cleanup to
// restore defaults.
func Reset() {
	configFilePathOverride = ""
	configDirOverride = ""
	ResetCache()
}
