// SPDX-License-Identifier: MPL-2.0

// Package tui renders rich terminal output using Charm libraries.
//
// It wraps charmbracelet/glamour to render Markdown (release notes, remediation
// guidance) and syntax-highlighted code blocks, honoring the configured color
// scheme. Output intended for pipes should bypass this package and print raw
// text instead.
package tui
