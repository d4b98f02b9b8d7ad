// SPDX-License-Identifier: MPL-2.0

// Package release orchestrates the publish workflow over the GitHub client:
// resolve an existing release by id or tag, create or update its metadata,
// and upload local artifacts as assets, skipping names that already exist.
package release
