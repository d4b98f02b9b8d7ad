// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jwilges/monocat/internal/config"
)

// None of these tests are parallel: they share the config package's global
// state through isolateConfig.

func TestSetConfigValue_OwnerRoundTrip(t *testing.T) {
	isolateConfig(t)

	cmd, stdout, _ := testCmd(t)
	if err := setConfigValue(cmd, "owner", "octocat"); err != nil {
		t.Fatalf("setConfigValue() error = %v", err)
	}
	if !strings.Contains(stdout.String(), "Set owner = octocat") {
		t.Errorf("stdout should confirm the change, got %q", stdout.String())
	}

	reloaded, err := config.NewProvider().Load(cmd.Context(), config.LoadOptions{})
	if err != nil {
		t.Fatalf("reloading config: %v", err)
	}
	if reloaded.Owner != "octocat" {
		t.Errorf("reloaded owner = %q, want %q", reloaded.Owner, "octocat")
	}
}

func TestSetConfigValue_AllKeys(t *testing.T) {
	isolateConfig(t)

	cmd, _, _ := testCmd(t)
	pairs := [][2]string{
		{"owner", "octocat"},
		{"repository", "hello-world"},
		{"api_base_url", "https://github.example.com/api/v3"},
		{"ui.verbose", "true"},
		{"ui.interactive", "1"},
		{"ui.color_scheme", "dark"},
	}
	for _, pair := range pairs {
		if err := setConfigValue(cmd, pair[0], pair[1]); err != nil {
			t.Fatalf("setConfigValue(%q, %q) error = %v", pair[0], pair[1], err)
		}
	}

	reloaded, err := config.NewProvider().Load(cmd.Context(), config.LoadOptions{})
	if err != nil {
		t.Fatalf("reloading config: %v", err)
	}
	if reloaded.Repository != "hello-world" {
		t.Errorf("repository = %q, want hello-world", reloaded.Repository)
	}
	if reloaded.APIBaseURL != "https://github.example.com/api/v3" {
		t.Errorf("api_base_url = %q, want the enterprise URL", reloaded.APIBaseURL)
	}
	if !reloaded.UI.Verbose || !reloaded.UI.Interactive {
		t.Errorf("ui bools = %+v, want both true", reloaded.UI)
	}
	if reloaded.UI.ColorScheme != config.ColorSchemeDark {
		t.Errorf("color_scheme = %q, want dark", reloaded.UI.ColorScheme)
	}
}

func TestSetConfigValue_RejectsInvalidValues(t *testing.T) {
	isolateConfig(t)

	cmd, _, _ := testCmd(t)
	tests := []struct {
		key   string
		value string
	}{
		{"owner", "bad/name"},
		{"repository", "has space"},
		{"api_base_url", "ftp://example.com"},
		{"ui.color_scheme", "solarized"},
	}
	for _, tt := range tests {
		if err := setConfigValue(cmd, tt.key, tt.value); err == nil {
			t.Errorf("setConfigValue(%q, %q) should have failed", tt.key, tt.value)
		}
	}

	// Nothing was saved, so a reload still yields defaults.
	reloaded, err := config.NewProvider().Load(cmd.Context(), config.LoadOptions{})
	if err != nil {
		t.Fatalf("reloading config: %v", err)
	}
	if reloaded.Owner != "" {
		t.Errorf("owner = %q, want empty after rejected writes", reloaded.Owner)
	}
}

func TestSetConfigValue_RejectsUnknownKey(t *testing.T) {
	isolateConfig(t)

	cmd, _, _ := testCmd(t)
	err := setConfigValue(cmd, "token", "ghp_secret")
	if err == nil {
		t.Fatal("setConfigValue should reject unknown keys")
	}
	if !strings.Contains(err.Error(), "unknown configuration key") {
		t.Errorf("error = %q, want it to name the unknown key problem", err.Error())
	}
	if !strings.Contains(err.Error(), "Valid keys:") {
		t.Errorf("error = %q, want it to list the valid keys", err.Error())
	}
}

func TestInitConfig_CreatesDefaultFile(t *testing.T) {
	isolateConfig(t)

	cmd, stdout, _ := testCmd(t)
	if err := initConfig(cmd); err != nil {
		t.Fatalf("initConfig() error = %v", err)
	}
	if !strings.Contains(stdout.String(), "Created default configuration") {
		t.Errorf("stdout should confirm creation, got %q", stdout.String())
	}

	cfgDir, err := config.ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	content, err := os.ReadFile(filepath.Join(cfgDir, "config.cue"))
	if err != nil {
		t.Fatalf("reading created config: %v", err)
	}
	if !strings.Contains(string(content), `color_scheme: "auto"`) {
		t.Errorf("created config should carry defaults, got:\n%s", content)
	}
}

func TestShowConfig_Defaults(t *testing.T) {
	isolateConfig(t)

	cmd, stdout, _ := testCmd(t)
	if err := showConfig(cmd); err != nil {
		t.Fatalf("showConfig() error = %v", err)
	}

	out := stdout.String()
	for _, want := range []string{"Current Configuration", "(using defaults)", "(not set)", "color_scheme", "auto"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output should contain %q, got:\n%s", want, out)
		}
	}
}

func TestShowConfig_WithSavedValues(t *testing.T) {
	isolateConfig(t)

	cfg := config.DefaultConfig()
	cfg.Owner = "octocat"
	cfg.Repository = "hello-world"
	if err := config.Save(cfg); err != nil {
		t.Fatalf("saving config: %v", err)
	}

	cmd, stdout, _ := testCmd(t)
	if err := showConfig(cmd); err != nil {
		t.Fatalf("showConfig() error = %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, "octocat") || !strings.Contains(out, "hello-world") {
		t.Errorf("show output should contain the saved coordinates, got:\n%s", out)
	}
	if !strings.Contains(out, "config.cue") {
		t.Errorf("show output should name the config file, got:\n%s", out)
	}
	if strings.Contains(out, "(using defaults)") {
		t.Errorf("show output should not claim defaults when a file exists, got:\n%s", out)
	}
}

func TestShowConfigPath(t *testing.T) {
	isolateConfig(t)

	cfgDir, err := config.ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}

	cmd, stdout, _ := testCmd(t)
	if err := showConfigPath(cmd); err != nil {
		t.Fatalf("showConfigPath() error = %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, cfgDir) {
		t.Errorf("path output should contain %q, got:\n%s", cfgDir, out)
	}
	if !strings.Contains(out, "config.cue") {
		t.Errorf("path output should name the config file, got:\n%s", out)
	}
}
