// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE error-handling utilities.
//
// Validation failures from CUE carry structured paths into the offending
// value. FormatError flattens them into the
// "<file-path>: <json-path>: <message>" shape used in user-facing errors:
//
//	config.cue: ui.color_scheme: 3 errors in empty disjunction
//	config.cue: api_base_url: invalid value "ftp://example.com"
//
// CheckFileSize guards CUE inputs against oversized files before they reach
// the evaluator.
package cueutil
