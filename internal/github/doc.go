// SPDX-License-Identifier: MPL-2.0

// Package github is a minimal client for the GitHub Releases REST API.
//
// The Client covers the operations monocat needs to publish a release:
// looking a release up by id or tag, creating or patching release metadata,
// and listing, inspecting, and uploading release assets. Responses are
// decoded according to their Content-Type header and pagination links from
// the Link header are surfaced on every response, though never followed
// automatically.
//
// Requests authenticate with a token taken from the GITHUB_TOKEN environment
// variable (or the WithToken option); constructing a Client without one fails
// with ErrMissingToken before any network activity. The API base URL defaults
// to https://api.github.com and can be overridden through GITHUB_API or the
// WithBaseURL option.
package github
