// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/jwilges/monocat/internal/issue"
	"github.com/jwilges/monocat/internal/testutil"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Owner != "" {
		t.Errorf("expected default owner to be empty, got %q", cfg.Owner)
	}

	if cfg.Repository != "" {
		t.Errorf("expected default repository to be empty, got %q", cfg.Repository)
	}

	if cfg.APIBaseURL != "" {
		t.Errorf("expected default API base URL to be empty, got %q", cfg.APIBaseURL)
	}

	if cfg.UI.ColorScheme != "auto" {
		t.Errorf("expected default color scheme to be auto, got %s", cfg.UI.ColorScheme)
	}

	if cfg.UI.Verbose {
		t.Error("expected default verbose to be false")
	}

	if cfg.UI.Interactive {
		t.Error("expected default interactive to be false")
	}
}

func TestConfigDir(t *testing.T) {
	// Reset environment for consistent testing
	originalXDGConfigHome := os.Getenv("XDG_CONFIG_HOME")
	defer func() {
		if originalXDGConfigHome != "" {
			_ = os.Setenv("XDG_CONFIG_HOME", originalXDGConfigHome) // Test cleanup; error non-critical
		} else {
			_ = os.Unsetenv("XDG_CONFIG_HOME") // Test cleanup; error non-critical
		}
	}()

	// Test with XDG_CONFIG_HOME set (on Linux)
	if runtime.GOOS == "linux" {
		testXDGPath := "/tmp/test-xdg-config"
		restoreXDG := testutil.MustSetenv(t, "XDG_CONFIG_HOME", testXDGPath)

		dir, err := ConfigDir()
		if err != nil {
			t.Fatalf("ConfigDir() returned error: %v", err)
		}

		expected := filepath.Join(testXDGPath, AppName)
		if dir != expected {
			t.Errorf("ConfigDir() = %s, want %s", dir, expected)
		}

		// Test with XDG_CONFIG_HOME unset
		restoreXDG()
		testutil.MustUnsetenv(t, "XDG_CONFIG_HOME")
		dir, err = ConfigDir()
		if err != nil {
			t.Fatalf("ConfigDir() returned error: %v", err)
		}

		// Should use ~/.config/monocat
		home, _ := os.UserHomeDir()
		expected = filepath.Join(home, ".config", AppName)
		if dir != expected {
			t.Errorf("ConfigDir() = %s, want %s", dir, expected)
		}
	}
}

func TestReset(t *testing.T) {
	// Load config first
	cfg := DefaultConfig()
	cfg.Owner = "octocat"
	globalConfig = cfg
	configPath = "/some/path"

	// Reset
	Reset()

	if globalConfig != nil {
		t.Error("expected globalConfig to be nil after Reset()")
	}

	if configPath != "" {
		t.Error("expected configPath to be empty after Reset()")
	}
}

func TestGet_ReturnsDefaultOnNoConfig(t *testing.T) {
	// Reset to ensure no config is loaded
	Reset()

	// Create a temp directory to avoid loading any real config
	tmpDir := t.TempDir()
	SetConfigDirOverride(filepath.Join(tmpDir, AppName))
	defer Reset()

	restoreWd := testutil.MustChdir(t, tmpDir)
	defer restoreWd()

	cfg := Get()

	if cfg == nil {
		t.Fatal("Get() returned nil")
	}

	// Should return default config values
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("expected default color scheme, got %s", cfg.UI.ColorScheme)
	}
}

func TestEnsureConfigDir(t *testing.T) {
	// Use a temp directory for testing
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, AppName)

	// Use direct override instead of env vars (more reliable across platforms)
	SetConfigDirOverride(configDir)
	defer Reset()

	err := EnsureConfigDir()
	if err != nil {
		t.Fatalf("EnsureConfigDir() returned error: %v", err)
	}

	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		t.Errorf("EnsureConfigDir() did not create directory %s", configDir)
	}
}

func TestLoadAndSave(t *testing.T) {
	// Reset global state
	Reset()

	// Use a temp directory for testing
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, AppName)

	// Use direct override instead of env vars (more reliable across platforms)
	SetConfigDirOverride(configDir)
	defer Reset()

	// Ensure config directory exists
	err := EnsureConfigDir()
	if err != nil {
		t.Fatalf("EnsureConfigDir() returned error: %v", err)
	}

	// Create a custom config
	cfg := &Config{
		Owner:      "octocat",
		Repository: "hello-world",
		APIBaseURL: "https://github.example.com/api/v3",
		UI: UIConfig{
			ColorScheme: "dark",
			Verbose:     true,
			Interactive: true,
		},
	}

	// Save the config
	err = Save(cfg)
	if err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	// Clear cached config to force reload from disk (but preserve the override)
	ResetCache()

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	// Verify loaded config matches what we saved
	if loaded.Owner != "octocat" {
		t.Errorf("Owner = %s, want octocat", loaded.Owner)
	}

	if loaded.Repository != "hello-world" {
		t.Errorf("Repository = %s, want hello-world", loaded.Repository)
	}

	if loaded.APIBaseURL != "https://github.example.com/api/v3" {
		t.Errorf("APIBaseURL = %s, want https://github.example.com/api/v3", loaded.APIBaseURL)
	}

	if loaded.UI.ColorScheme != "dark" {
		t.Errorf("ColorScheme = %s, want dark", loaded.UI.ColorScheme)
	}

	if loaded.UI.Verbose != true {
		t.Error("Verbose = false, want true")
	}

	if loaded.UI.Interactive != true {
		t.Error("Interactive = false, want true")
	}
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	// Reset global state
	Reset()

	// Use a temp directory with no config file
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, AppName)

	// Use direct override instead of env vars (more reliable across platforms)
	SetConfigDirOverride(configDir)
	defer Reset()

	// Change to temp dir to avoid loading config from current directory
	restoreWd := testutil.MustChdir(t, tmpDir)
	defer restoreWd()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	// Should return default values
	defaults := DefaultConfig()
	if cfg.Owner != defaults.Owner {
		t.Errorf("Owner = %s, want %s", cfg.Owner, defaults.Owner)
	}

	if cfg.UI.ColorScheme != defaults.UI.ColorScheme {
		t.Errorf("ColorScheme = %s, want %s", cfg.UI.ColorScheme, defaults.UI.ColorScheme)
	}
}

func TestLoad_ReturnsCachedConfig(t *testing.T) {
	// Reset global state
	Reset()

	// Set up a cached config
	cachedCfg := &Config{
		Owner: "cached-owner",
	}
	globalConfig = cachedCfg

	// Load should return the cached config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Owner != "cached-owner" {
		t.Errorf("expected cached config, got Owner = %s", cfg.Owner)
	}

	// Reset for other tests
	Reset()
}

func TestCreateDefaultConfig(t *testing.T) {
	// Reset global state
	Reset()

	// Use a temp directory for testing
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, AppName)

	// Use direct override instead of env vars (more reliable across platforms)
	SetConfigDirOverride(configDir)
	defer Reset()

	err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() returned error: %v", err)
	}

	// Check that file was created
	expectedPath := filepath.Join(configDir, ConfigFileName+"."+ConfigFileExt)
	if _, statErr := os.Stat(expectedPath); os.IsNotExist(statErr) {
		t.Errorf("CreateDefaultConfig() did not create file at %s", expectedPath)
	}

	// Read the file and verify it has content
	content, err := os.ReadFile(expectedPath)
	if err != nil {
		t.Fatalf("failed to read config file: %v", err)
	}

	if len(content) == 0 {
		t.Error("config file is empty")
	}

	// The generated file must pass its own schema on reload
	restoreWd := testutil.MustChdir(t, tmpDir)
	defer restoreWd()

	if _, err := Load(); err != nil {
		t.Errorf("generated default config failed to load: %v", err)
	}

	// Calling again should not error (file already exists)
	err = CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() returned error on second call: %v", err)
	}
}

func TestConfigFilePath(t *testing.T) {
	// Reset
	Reset()

	// Initially should be empty
	if path := ConfigFilePath(); path != "" {
		t.Errorf("ConfigFilePath() = %s, want empty string", path)
	}

	// Set configPath directly
	configPath = "/some/test/path"

	if path := ConfigFilePath(); path != "/some/test/path" {
		t.Errorf("ConfigFilePath() = %s, want /some/test/path", path)
	}

	// Reset for cleanup
	Reset()
}

func TestConstants(t *testing.T) {
	if AppName != "monocat" {
		t.Errorf("AppName = %s, want monocat", AppName)
	}

	if ConfigFileName != "config" {
		t.Errorf("ConfigFileName = %s, want config", ConfigFileName)
	}

	if ConfigFileExt != "cue" {
		t.Errorf("ConfigFileExt = %s, want cue", ConfigFileExt)
	}
}

func TestGet_StoresLoadErrorForLaterRetrieval(t *testing.T) {
	// Reset global state
	Reset()

	// Create a temp directory with an invalid config file
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, AppName)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	// Write invalid CUE content
	invalidConfig := `this is not valid CUE syntax`
	cfgPath := filepath.Join(configDir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(cfgPath, []byte(invalidConfig), 0o644); err != nil {
		t.Fatalf("failed to write invalid config: %v", err)
	}

	// Use direct override
	SetConfigDirOverride(configDir)
	defer Reset()

	// Change to temp dir to avoid loading config from current directory
	restoreWd := testutil.MustChdir(t, tmpDir)
	defer restoreWd()

	// Get() should return defaults but store the error
	cfg := Get()

	// Should return default config
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("expected default color scheme, got %s", cfg.UI.ColorScheme)
	}

	// Error should be stored and retrievable
	err := LastLoadError()
	if err == nil {
		t.Fatal("expected LastLoadError() to return error for invalid config")
	}

	// Error should contain actionable context
	errStr := err.Error()
	if !strings.Contains(errStr, "load configuration") {
		t.Errorf("error should contain 'load configuration', got: %s", errStr)
	}
}

func TestLastLoadError_NilWhenSuccessful(t *testing.T) {
	// Reset global state
	Reset()

	// Create a temp directory with a valid config file
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, AppName)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	// Write valid CUE content
	validConfig := `owner: "octocat"`
	cfgPath := filepath.Join(configDir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(cfgPath, []byte(validConfig), 0o644); err != nil {
		t.Fatalf("failed to write valid config: %v", err)
	}

	// Use direct override
	SetConfigDirOverride(configDir)
	defer Reset()

	// Change to temp dir to avoid loading config from current directory
	restoreWd := testutil.MustChdir(t, tmpDir)
	defer restoreWd()

	// Load should succeed
	cfg := Get()

	// Should load the config correctly
	if cfg.Owner != "octocat" {
		t.Errorf("expected octocat, got %s", cfg.Owner)
	}

	// No error should be stored
	if err := LastLoadError(); err != nil {
		t.Errorf("expected no error, got: %v", err)
	}
}

func TestLoad_ActionableErrorFormat(t *testing.T) {
	// Reset global state
	Reset()

	// Create a temp directory with an invalid config file
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, AppName)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	// Write invalid CUE content - wrong type for owner
	invalidConfig := `owner: 123`
	cfgPath := filepath.Join(configDir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(cfgPath, []byte(invalidConfig), 0o644); err != nil {
		t.Fatalf("failed to write invalid config: %v", err)
	}

	// Use direct override
	SetConfigDirOverride(configDir)
	defer Reset()

	// Change to temp dir to avoid loading config from current directory
	restoreWd := testutil.MustChdir(t, tmpDir)
	defer restoreWd()

	// Load should fail with actionable error
	_, err := Load()
	if err == nil {
		t.Fatal("expected Load() to return error for invalid config")
	}

	// Verify error contains actionable context
	errStr := err.Error()
	if !strings.Contains(errStr, "load configuration") {
		t.Errorf("error should contain operation, got: %s", errStr)
	}
	if !strings.Contains(errStr, cfgPath) {
		t.Errorf("error should contain resource path, got: %s", errStr)
	}
}

func TestLoad_RejectsCredentialField(t *testing.T) {
	// Reset global state
	Reset()

	// Create a temp directory with a config file holding a token
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, AppName)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	// The credential belongs in GITHUB_TOKEN, never in the config file
	credentialConfig := `token: "ghp_0123456789abcdef"`
	cfgPath := filepath.Join(configDir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(cfgPath, []byte(credentialConfig), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	// Use direct override
	SetConfigDirOverride(configDir)
	defer Reset()

	// Change to temp dir to avoid loading config from current directory
	restoreWd := testutil.MustChdir(t, tmpDir)
	defer restoreWd()

	// Load must refuse the file
	_, err := Load()
	if err == nil {
		t.Fatal("expected Load() to reject config file containing a token")
	}

	errStr := err.Error()
	if !strings.Contains(errStr, "load configuration") {
		t.Errorf("error should contain 'load configuration', got: %s", errStr)
	}
	if !strings.Contains(errStr, "token") {
		t.Errorf("error should name the offending field, got: %s", errStr)
	}
}

func TestLoad_ValidationError(t *testing.T) {
	// Reset global state
	Reset()

	// Create a temp directory with a config that passes the schema regex but
	// fails Go-level validation ("https://" has no host).
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, AppName)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	invalidConfig := `api_base_url: "https://"`
	cfgPath := filepath.Join(configDir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(cfgPath, []byte(invalidConfig), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	// Use direct override
	SetConfigDirOverride(configDir)
	defer Reset()

	// Change to temp dir to avoid loading config from current directory
	restoreWd := testutil.MustChdir(t, tmpDir)
	defer restoreWd()

	_, err := Load()
	if err == nil {
		t.Fatal("expected Load() to return validation error")
	}

	if !strings.Contains(err.Error(), "validate configuration") {
		t.Errorf("error should contain 'validate configuration', got: %s", err.Error())
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error should wrap ErrInvalidConfig, got: %v", err)
	}
}

func TestSetConfigFilePathOverride_SetsVariable(t *testing.T) {
	// Reset first
	Reset()
	defer Reset()

	// Set override
	SetConfigFilePathOverride("/some/custom/path.cue")

	// Verify it's set (we can verify by checking that Load() uses it)
	// Since there's no direct getter, we verify the behavior
	if configFilePathOverride != "/some/custom/path.cue" {
		t.Errorf("configFilePathOverride = %q, want /some/custom/path.cue", configFilePathOverride)
	}
}

func TestSetConfigFilePathOverride_ClearsCache(t *testing.T) {
	// Reset first
	Reset()
	defer Reset()

	// Set up a cached config
	globalConfig = &Config{Owner: "cached"}
	configPath = "/old/path"

	// Set new override - should clear cache
	SetConfigFilePathOverride("/new/path.cue")

	// Verify cache was cleared
	if globalConfig != nil {
		t.Error("expected globalConfig to be nil after SetConfigFilePathOverride")
	}
	if configPath != "" {
		t.Error("expected configPath to be empty after SetConfigFilePathOverride")
	}
}

func TestLoad_CustomPath_Valid(t *testing.T) {
	// Reset global state
	Reset()
	defer Reset()

	// Create a temp directory with a valid config file
	tmpDir := t.TempDir()
	customConfigPath := filepath.Join(tmpDir, "custom-config.cue")

	// Write valid CUE content
	validConfig := `owner: "octocat"
repository: "hello-world"
`
	if err := os.WriteFile(customConfigPath, []byte(validConfig), 0o644); err != nil {
		t.Fatalf("failed to write custom config: %v", err)
	}

	// Set the custom path override
	SetConfigFilePathOverride(customConfigPath)

	// Change to temp dir to avoid loading config from current directory
	restoreWd := testutil.MustChdir(t, tmpDir)
	defer restoreWd()

	// Load should use the custom path
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	// Verify the custom config was loaded
	if cfg.Owner != "octocat" {
		t.Errorf("Owner = %s, want octocat", cfg.Owner)
	}
	if cfg.Repository != "hello-world" {
		t.Errorf("Repository = %s, want hello-world", cfg.Repository)
	}

	// Verify configPath was set to the custom path
	if ConfigFilePath() != customConfigPath {
		t.Errorf("ConfigFilePath() = %s, want %s", ConfigFilePath(), customConfigPath)
	}
}

func TestLoad_CustomPath_NotFound_ReturnsError(t *testing.T) {
	// Reset global state
	Reset()
	defer Reset()

	// Set a non-existent path
	nonExistentPath := "/this/path/does/not/exist/config.cue"
	SetConfigFilePathOverride(nonExistentPath)

	// Load should fail with an actionable error
	_, err := Load()
	if err == nil {
		t.Fatal("expected Load() to return error for non-existent config file")
	}

	// Verify error contains actionable context
	errStr := err.Error()
	if !strings.Contains(errStr, "load configuration") {
		t.Errorf("error should contain 'load configuration', got: %s", errStr)
	}
	if !strings.Contains(errStr, nonExistentPath) {
		t.Errorf("error should contain the path, got: %s", errStr)
	}
	if !strings.Contains(errStr, "config file not found") {
		t.Errorf("error should contain 'config file not found', got: %s", errStr)
	}

	// Verify suggestions are present via ActionableError type
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatal("expected error to be *issue.ActionableError")
	}
	if len(ae.Suggestions) == 0 {
		t.Error("expected ActionableError to have suggestions")
	}
	foundSuggestion := false
	for _, s := range ae.Suggestions {
		if strings.Contains(s, "Verify the file path is correct") {
			foundSuggestion = true
			break
		}
	}
	if !foundSuggestion {
		t.Errorf("expected suggestion 'Verify the file path is correct', got: %v", ae.Suggestions)
	}
}

func TestLoad_CustomPath_InvalidCUE_ReturnsError(t *testing.T) {
	// Reset global state
	Reset()
	defer Reset()

	// Create a temp directory with an invalid config file
	tmpDir := t.TempDir()
	customConfigPath := filepath.Join(tmpDir, "invalid-config.cue")

	// Write invalid CUE content
	invalidConfig := `this is not valid CUE syntax {{{{`
	if err := os.WriteFile(customConfigPath, []byte(invalidConfig), 0o644); err != nil {
		t.Fatalf("failed to write invalid config: %v", err)
	}

	// Set the custom path override
	SetConfigFilePathOverride(customConfigPath)

	// Load should fail with an actionable error
	_, err := Load()
	if err == nil {
		t.Fatal("expected Load() to return error for invalid CUE config file")
	}

	// Verify error contains actionable context
	errStr := err.Error()
	if !strings.Contains(errStr, "load configuration") {
		t.Errorf("error should contain 'load configuration', got: %s", errStr)
	}
	if !strings.Contains(errStr, customConfigPath) {
		t.Errorf("error should contain the path, got: %s", errStr)
	}
}

func TestReset_ClearsCustomPath(t *testing.T) {
	// Set up some state
	configFilePathOverride = "/custom/path.cue"
	globalConfig = &Config{Owner: "test"}
	configPath = "/some/path"
	configDirOverride = "/dir/override"
	errLastLoad = fmt.Errorf("test error")

	// Reset should clear everything
	Reset()

	if configFilePathOverride != "" {
		t.Errorf("configFilePathOverride = %q, want empty string", configFilePathOverride)
	}
	if globalConfig != nil {
		t.Error("globalConfig should be nil after Reset")
	}
	if configPath != "" {
		t.Error("configPath should be empty after Reset")
	}
	if configDirOverride != "" {
		t.Error("configDirOverride should be empty after Reset")
	}
	if errLastLoad != nil {
		t.Error("errLastLoad should be nil after Reset")
	}
}

func TestGenerateCUE(t *testing.T) {
	t.Run("defaults comment out coordinates", func(t *testing.T) {
		content := GenerateCUE(DefaultConfig())

		if !strings.Contains(content, `// owner:`) {
			t.Errorf("expected commented owner example, got:\n%s", content)
		}
		if !strings.Contains(content, `// repository:`) {
			t.Errorf("expected commented repository example, got:\n%s", content)
		}
		if strings.Contains(content, "api_base_url:") {
			t.Errorf("expected no api_base_url for defaults, got:\n%s", content)
		}
		if !strings.Contains(content, `color_scheme: "auto"`) {
			t.Errorf("expected default color scheme, got:\n%s", content)
		}
	})

	t.Run("populated coordinates are emitted", func(t *testing.T) {
		cfg := &Config{
			Owner:      "octocat",
			Repository: "hello-world",
			APIBaseURL: "https://github.example.com/api/v3",
			UI:         UIConfig{ColorScheme: ColorSchemeDark, Verbose: true},
		}
		content := GenerateCUE(cfg)

		if !strings.Contains(content, `owner: "octocat"`) {
			t.Errorf("expected owner, got:\n%s", content)
		}
		if !strings.Contains(content, `repository: "hello-world"`) {
			t.Errorf("expected repository, got:\n%s", content)
		}
		if !strings.Contains(content, `api_base_url: "https://github.example.com/api/v3"`) {
			t.Errorf("expected api_base_url, got:\n%s", content)
		}
		if !strings.Contains(content, `color_scheme: "dark"`) {
			t.Errorf("expected color scheme, got:\n%s", content)
		}
		if !strings.Contains(content, "verbose: true") {
			t.Errorf("expected verbose, got:\n%s", content)
		}
	})
}
