// SPDX-License-Identifier: MPL-2.0

package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/yosida95/uritemplate/v3"
)

// ErrMissingToken is returned by NewClient when no token is available from
// either the WithToken option or the GITHUB_TOKEN environment variable.
var ErrMissingToken = errors.New("no GitHub API token was specified")

type (
	// Client talks to the GitHub Releases API for one repository.
	Client struct {
		httpClient  *http.Client
		owner       string // Repository owner, e.g. "jwilges"
		repository  string // Repository name, e.g. "monocat"
		baseURL     string // API base URL (default: "https://api.github.com", overridable for tests)
		token       string // API token; required, from WithToken or GITHUB_TOKEN
		userAgent   string // User-Agent header value
		logger      *log.Logger
		baseHeaders map[string]string // Computed once at construction
	}

	// ClientOption configures a Client during construction.
	ClientOption func(*Client)
)

// WithHTTPClient sets a custom HTTP client, useful for tests or proxy
// configurations.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(g *Client) {
		g.httpClient = c
	}
}

// WithBaseURL overrides the GitHub API base URL. It takes precedence over
// the GITHUB_API environment variable.
func WithBaseURL(base string) ClientOption {
	return func(g *Client) {
		g.baseURL = strings.TrimRight(base, "/")
	}
}

// WithToken sets the GitHub API token. It takes precedence over the
// GITHUB_TOKEN environment variable.
func WithToken(token string) ClientOption {
	return func(g *Client) {
		g.token = token
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(g *Client) {
		g.userAgent = ua
	}
}

// WithLogger sets the logger used for request and response debug output.
func WithLogger(logger *log.Logger) ClientOption {
	return func(g *Client) {
		g.logger = logger
	}
}

// NewClient creates a Client for the given repository. The API token comes
// from the WithToken option or the GITHUB_TOKEN environment variable; its
// absence is reported as ErrMissingToken before any network traffic. The base
// URL comes from WithBaseURL, the GITHUB_API environment variable, or the
// public API endpoint, in that order.
func NewClient(owner, repository string, opts ...ClientOption) (*Client, error) {
	c := &Client{
		httpClient: http.DefaultClient,
		owner:      owner,
		repository: repository,
		userAgent:  "monocat/dev",
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.baseURL == "" {
		c.baseURL = strings.TrimRight(os.Getenv("GITHUB_API"), "/")
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.token == "" {
		c.token = os.Getenv("GITHUB_TOKEN")
	}
	if c.token == "" {
		return nil, ErrMissingToken
	}
	if c.logger == nil {
		c.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "github"})
	}

	// The token is encoded alone, without the "user:password" colon form.
	c.baseHeaders = map[string]string{
		"User-Agent":    c.userAgent,
		"Authorization": "Basic " + base64.StdEncoding.EncodeToString([]byte(c.token)),
		"Accept":        acceptContentType,
	}
	return c, nil
}

// GetRelease fetches a release by its numeric identifier. A missing release
// yields (nil, nil).
func (c *Client) GetRelease(ctx context.Context, id string) (*ReleaseResponse, error) {
	p, err := c.do(ctx, http.MethodGet,
		fmt.Sprintf("/repos/%s/%s/releases/%s", c.owner, c.repository, id), nil, nil)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting release %s: %w", id, err)
	}

	var release ReleaseResponse
	if err := p.decode(&release); err != nil {
		return nil, fmt.Errorf("getting release %s: %w", id, err)
	}
	return &release, nil
}

// GetReleaseByTag fetches a release by its Git tag. A missing release yields
// (nil, nil).
func (c *Client) GetReleaseByTag(ctx context.Context, tag string) (*ReleaseResponse, error) {
	p, err := c.do(ctx, http.MethodGet,
		fmt.Sprintf("/repos/%s/%s/releases/tags/%s", c.owner, c.repository, tag), nil, nil)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting release tagged %s: %w", tag, err)
	}

	var release ReleaseResponse
	if err := p.decode(&release); err != nil {
		return nil, fmt.Errorf("getting release tagged %s: %w", tag, err)
	}
	return &release, nil
}

// ListReleases fetches the first page of releases for the repository, in the
// API's ordering (most recent first). Pagination links from the response are
// not followed.
func (c *Client) ListReleases(ctx context.Context) ([]ReleaseResponse, error) {
	p, err := c.do(ctx, http.MethodGet,
		fmt.Sprintf("/repos/%s/%s/releases", c.owner, c.repository), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("listing releases: %w", err)
	}

	var releases []ReleaseResponse
	if err := p.decode(&releases); err != nil {
		return nil, fmt.Errorf("listing releases: %w", err)
	}
	return releases, nil
}

// CreateRelease creates a new release. Only the explicitly set fields of req
// are serialized.
func (c *Client) CreateRelease(ctx context.Context, req ReleaseRequest) (*ReleaseResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding release request: %w", err)
	}

	p, err := c.do(ctx, http.MethodPost,
		fmt.Sprintf("/repos/%s/%s/releases", c.owner, c.repository), nil, body)
	if err != nil {
		return nil, fmt.Errorf("creating release %s: %w", req.TagName, err)
	}

	var release ReleaseResponse
	if err := p.decode(&release); err != nil {
		return nil, fmt.Errorf("creating release %s: %w", req.TagName, err)
	}
	return &release, nil
}

// UpdateRelease modifies an existing release. Only the explicitly set fields
// of req are serialized, so omitted fields keep their current values.
func (c *Client) UpdateRelease(ctx context.Context, req ReleaseRequest, id int64) (*ReleaseResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding release request: %w", err)
	}

	p, err := c.do(ctx, http.MethodPatch,
		fmt.Sprintf("/repos/%s/%s/releases/%d", c.owner, c.repository, id), nil, body)
	if err != nil {
		return nil, fmt.Errorf("updating release %d: %w", id, err)
	}

	var release ReleaseResponse
	if err := p.decode(&release); err != nil {
		return nil, fmt.Errorf("updating release %d: %w", id, err)
	}
	return &release, nil
}

// ListAssets fetches the assets of a release via its assets URL.
func (c *Client) ListAssets(ctx context.Context, release *ReleaseResponse) ([]AssetResponse, error) {
	p, err := c.do(ctx, http.MethodGet, release.AssetsURL, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("listing assets of release %d: %w", release.ID, err)
	}

	var assets []AssetResponse
	if err := p.decode(&assets); err != nil {
		return nil, fmt.Errorf("listing assets of release %d: %w", release.ID, err)
	}
	return assets, nil
}

// GetAsset fetches a single asset of a release by its numeric identifier. A
// missing asset yields (nil, nil).
func (c *Client) GetAsset(ctx context.Context, release *ReleaseResponse, assetID int64) (*AssetResponse, error) {
	p, err := c.do(ctx, http.MethodGet,
		fmt.Sprintf("%s/%d", release.AssetsURL, assetID), nil, nil)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting asset %d: %w", assetID, err)
	}

	var asset AssetResponse
	if err := p.decode(&asset); err != nil {
		return nil, fmt.Errorf("getting asset %d: %w", assetID, err)
	}
	return &asset, nil
}

// UpdateAsset modifies the name or label of an existing asset.
func (c *Client) UpdateAsset(ctx context.Context, assetID int64, asset AssetRequest) (*AssetResponse, error) {
	body, err := json.Marshal(asset)
	if err != nil {
		return nil, fmt.Errorf("encoding asset request: %w", err)
	}

	p, err := c.do(ctx, http.MethodPatch,
		fmt.Sprintf("/repos/%s/%s/releases/assets/%d", c.owner, c.repository, assetID), nil, body)
	if err != nil {
		return nil, fmt.Errorf("updating asset %d: %w", assetID, err)
	}

	var updated AssetResponse
	if err := p.decode(&updated); err != nil {
		return nil, fmt.Errorf("updating asset %d: %w", assetID, err)
	}
	return &updated, nil
}

// UploadAsset uploads body as a new asset on a release. uploadURL is the
// release's RFC 6570 upload template (typically ending in `{?name,label}`);
// it is expanded with the asset's name and, when non-empty, its label. An
// empty contentType is guessed from the asset name's extension, falling back
// to application/octet-stream.
func (c *Client) UploadAsset(ctx context.Context, uploadURL string, asset AssetRequest, body []byte, contentType string) (*AssetResponse, error) {
	expanded, err := expandUploadURL(uploadURL, asset)
	if err != nil {
		return nil, fmt.Errorf("uploading asset %s: %w", asset.Name, err)
	}
	if contentType == "" {
		contentType = guessContentType(asset.Name)
	}

	c.logger.Debug("uploading asset",
		"name", asset.Name, "content_type", contentType, "url", expanded)

	p, err := c.do(ctx, http.MethodPost, expanded,
		map[string]string{"Content-Type": contentType}, body)
	if err != nil {
		return nil, fmt.Errorf("uploading asset %s: %w", asset.Name, err)
	}

	var uploaded AssetResponse
	if err := p.decode(&uploaded); err != nil {
		return nil, fmt.Errorf("uploading asset %s: %w", asset.Name, err)
	}
	return &uploaded, nil
}

// expandUploadURL expands a release's upload URL template with the asset's
// name and optional label.
func expandUploadURL(uploadURL string, asset AssetRequest) (string, error) {
	tmpl, err := uritemplate.New(uploadURL)
	if err != nil {
		return "", fmt.Errorf("parsing upload URL template: %w", err)
	}

	vars := uritemplate.Values{}
	vars.Set("name", uritemplate.String(asset.Name))
	if asset.Label != "" {
		vars.Set("label", uritemplate.String(asset.Label))
	}

	expanded, err := tmpl.Expand(vars)
	if err != nil {
		return "", fmt.Errorf("expanding upload URL template: %w", err)
	}
	return expanded, nil
}

// guessContentType derives a MIME type from an asset name's extension.
func guessContentType(name string) string {
	if contentType := mime.TypeByExtension(filepath.Ext(name)); contentType != "" {
		return contentType
	}
	return "application/octet-stream"
}
