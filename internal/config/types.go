// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidOwnerName is the sentinel error wrapped by InvalidOwnerNameError.
	ErrInvalidOwnerName = errors.New("invalid owner name")
	// ErrInvalidRepositoryName is the sentinel error wrapped by InvalidRepositoryNameError.
	ErrInvalidRepositoryName = errors.New("invalid repository name")
	// ErrInvalidAPIBaseURL is the sentinel error wrapped by InvalidAPIBaseURLError.
	ErrInvalidAPIBaseURL = errors.New("invalid API base URL")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// OwnerName identifies the GitHub account or organization that owns the
	// repository. The zero value ("") is valid and means "not configured";
	// non-zero values must be a single path segment without whitespace.
	OwnerName string

	// InvalidOwnerNameError is returned when an OwnerName value contains a
	// path separator or whitespace. It wraps ErrInvalidOwnerName for errors.Is().
	InvalidOwnerNameError struct {
		Value OwnerName
	}

	// RepositoryName identifies the repository within the owner account.
	// The zero value ("") is valid and means "not configured"; non-zero
	// values must be a single path segment without whitespace.
	RepositoryName string

	// InvalidRepositoryNameError is returned when a RepositoryName value contains
	// a path separator or whitespace. It wraps ErrInvalidRepositoryName for errors.Is().
	InvalidRepositoryNameError struct {
		Value RepositoryName
	}

	// APIBaseURL is the base URL for GitHub API requests.
	// The zero value ("") is valid and means "use https://api.github.com";
	// non-zero values must parse as an absolute http(s) URL.
	APIBaseURL string

	// InvalidAPIBaseURLError is returned when an APIBaseURL value is not an
	// absolute http(s) URL. It wraps ErrInvalidAPIBaseURL for errors.Is().
	InvalidAPIBaseURLError struct {
		Value APIBaseURL
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Owner is the default GitHub account or organization.
		Owner OwnerName `json:"owner" mapstructure:"owner"`
		// Repository is the default repository name.
		Repository RepositoryName `json:"repository" mapstructure:"repository"`
		// APIBaseURL overrides the GitHub API endpoint (GitHub Enterprise).
		APIBaseURL APIBaseURL `json:"api_base_url" mapstructure:"api_base_url"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// Interactive enables styled output instead of raw JSON
		Interactive bool `json:"interactive" mapstructure:"interactive"`
	}
)

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to Owner.IsValid(), Repository.IsValid(), APIBaseURL.IsValid(),
// and UI.IsValid().
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Owner.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Repository.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.APIBaseURL.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// String returns the string representation of the OwnerName.
func (n OwnerName) String() string { return string(n) }

// IsValid returns whether the OwnerName is valid.
// The zero value ("") is valid (means "not configured").
// Non-zero values must not contain '/' or whitespace.
func (n OwnerName) IsValid() (bool, []error) {
	if n == "" {
		return true, nil
	}
	if strings.ContainsAny(string(n), "/ \t\r\n") {
		return false, []error{&InvalidOwnerNameError{Value: n}}
	}
	return true, nil
}

// Error implements the error interface for InvalidOwnerNameError.
func (e *InvalidOwnerNameError) Error() string {
	return fmt.Sprintf("invalid owner name %q: must not contain '/' or whitespace", e.Value)
}

// Unwrap returns ErrInvalidOwnerName for errors.Is() compatibility.
func (e *InvalidOwnerNameError) Unwrap() error { return ErrInvalidOwnerName }

// String returns the string representation of the RepositoryName.
func (n RepositoryName) String() string { return string(n) }

// IsValid returns whether the RepositoryName is valid.
// The zero value ("") is valid (means "not configured").
// Non-zero values must not contain '/' or whitespace.
func (n RepositoryName) IsValid() (bool, []error) {
	if n == "" {
		return true, nil
	}
	if strings.ContainsAny(string(n), "/ \t\r\n") {
		return false, []error{&InvalidRepositoryNameError{Value: n}}
	}
	return true, nil
}

// Error implements the error interface for InvalidRepositoryNameError.
func (e *InvalidRepositoryNameError) Error() string {
	return fmt.Sprintf("invalid repository name %q: must not contain '/' or whitespace", e.Value)
}

// Unwrap returns ErrInvalidRepositoryName for errors.Is() compatibility.
func (e *InvalidRepositoryNameError) Unwrap() error { return ErrInvalidRepositoryName }

// String returns the string representation of the APIBaseURL.
func (u APIBaseURL) String() string { return string(u) }

// IsValid returns whether the APIBaseURL is valid.
// The zero value ("") is valid (means "use the public GitHub API").
// Non-zero values must parse as an absolute http(s) URL.
func (u APIBaseURL) IsValid() (bool, []error) {
	if u == "" {
		return true, nil
	}
	parsed, err := url.Parse(string(u))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return false, []error{&InvalidAPIBaseURLError{Value: u}}
	}
	return true, nil
}

// Error implements the error interface for InvalidAPIBaseURLError.
func (e *InvalidAPIBaseURLError) Error() string {
	return fmt.Sprintf("invalid API base URL %q: must be an absolute http(s) URL", e.Value)
}

// Unwrap returns ErrInvalidAPIBaseURL for errors.Is() compatibility.
func (e *InvalidAPIBaseURLError) Unwrap() error { return ErrInvalidAPIBaseURL }

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Owner:      "",
		Repository: "",
		APIBaseURL: "", // Will use https://api.github.com if empty
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
			Interactive: false,
		},
	}
}
