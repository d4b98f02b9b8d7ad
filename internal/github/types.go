// SPDX-License-Identifier: MPL-2.0

package github

import "time"

type (
	// ReleaseRequest is the outbound payload for creating or updating a
	// release. Optional fields are pointers so that only explicitly provided
	// values are serialized: a nil field is omitted from the request body and
	// the server leaves the corresponding release field untouched on PATCH. A
	// non-nil pointer to a zero value still serializes.
	ReleaseRequest struct {
		TagName         string  `json:"tag_name"`
		TargetCommitish *string `json:"target_commitish,omitempty"`
		Name            *string `json:"name,omitempty"`
		Body            *string `json:"body,omitempty"`
		Draft           *bool   `json:"draft,omitempty"`
		Prerelease      *bool   `json:"prerelease,omitempty"`
	}

	// ReleaseResponse is a release as returned by the API. UploadURL is an
	// RFC 6570 URI template ending in {?name,label}. Unknown inbound fields
	// are ignored; a JSON null for an optional string leaves the zero value.
	ReleaseResponse struct {
		URL             string          `json:"url"`
		HTMLURL         string          `json:"html_url"`
		AssetsURL       string          `json:"assets_url"`
		UploadURL       string          `json:"upload_url"`
		TarballURL      string          `json:"tarball_url"`
		ZipballURL      string          `json:"zipball_url"`
		ID              int64           `json:"id"`
		TagName         string          `json:"tag_name"`
		TargetCommitish string          `json:"target_commitish"`
		Name            string          `json:"name"`
		Body            string          `json:"body"`
		Draft           bool            `json:"draft"`
		Prerelease      bool            `json:"prerelease"`
		CreatedAt       time.Time       `json:"created_at"`
		PublishedAt     *time.Time      `json:"published_at"`
		Assets          []AssetResponse `json:"assets"`
	}

	// AssetRequest is the outbound payload for uploading or updating an
	// asset. Label is optional and omitted when empty.
	AssetRequest struct {
		Name  string `json:"name"`
		Label string `json:"label,omitempty"`
	}

	// AssetResponse is a release asset as returned by the API.
	AssetResponse struct {
		URL                string     `json:"url"`
		BrowserDownloadURL string     `json:"browser_download_url"`
		ID                 int64      `json:"id"`
		NodeID             string     `json:"node_id"`
		Name               string     `json:"name"`
		Label              string     `json:"label"`
		State              string     `json:"state"`
		ContentType        string     `json:"content_type"`
		Size               int64      `json:"size"`
		DownloadCount      int64      `json:"download_count"`
		CreatedAt          time.Time  `json:"created_at"`
		UpdatedAt          *time.Time `json:"updated_at"`
	}
)

// String returns a pointer to s, for populating optional request fields.
func String(s string) *string { return &s }

// Bool returns a pointer to b, for populating optional request fields.
func Bool(b bool) *bool { return &b }
