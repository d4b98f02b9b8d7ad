// SPDX-License-Identifier: MPL-2.0

package release

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/jwilges/monocat/internal/github"
)

// ErrTagRequired is returned by Publish when no release was found and no tag
// was supplied to create one.
var ErrTagRequired = errors.New("a tag is required to create a release")

type (
	// ReleaseClient is the subset of the GitHub API the manager drives.
	// *github.Client satisfies it.
	ReleaseClient interface {
		GetRelease(ctx context.Context, id string) (*github.ReleaseResponse, error)
		GetReleaseByTag(ctx context.Context, tag string) (*github.ReleaseResponse, error)
		CreateRelease(ctx context.Context, req github.ReleaseRequest) (*github.ReleaseResponse, error)
		UpdateRelease(ctx context.Context, req github.ReleaseRequest, id int64) (*github.ReleaseResponse, error)
		UploadAsset(ctx context.Context, uploadURL string, asset github.AssetRequest, body []byte, contentType string) (*github.AssetResponse, error)
	}

	// Manager drives the release workflow: resolve, create-or-update, upload.
	Manager struct {
		client ReleaseClient
		logger *log.Logger
	}

	// ManagerOption configures a Manager during construction.
	ManagerOption func(*Manager)

	// PublishInput describes one publish invocation. ID and Tag locate an
	// existing release (id preferred); the remaining fields shape the created
	// or updated release and the artifacts to attach.
	PublishInput struct {
		ID         string
		Tag        string
		Commit     string
		Name       string
		Body       string
		Draft      bool
		Prerelease bool
		Artifacts  []string
	}

	// PublishResult reports the published release, the assets newly uploaded
	// by this invocation, and the artifact names skipped because an asset of
	// the same name already existed.
	PublishResult struct {
		Release   *github.ReleaseResponse
		Created   bool
		NewAssets []github.AssetResponse
		Skipped   []string

		requested int
	}
)

// Complete reports whether every requested artifact was newly uploaded. Name
// collisions make it false even though they do not abort the invocation.
func (r *PublishResult) Complete() bool {
	return len(r.NewAssets) == r.requested
}

// WithLogger sets the logger used for workflow progress output.
func WithLogger(logger *log.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager over the given client.
func NewManager(client ReleaseClient, opts ...ManagerOption) *Manager {
	m := &Manager{client: client}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "release"})
	}
	return m
}

// Resolve looks up an existing release by id when given, falling back to the
// tag. A release that exists under neither is (nil, nil), signalling the
// create path.
func (m *Manager) Resolve(ctx context.Context, id, tag string) (*github.ReleaseResponse, error) {
	if id != "" {
		release, err := m.client.GetRelease(ctx, id)
		if err != nil {
			return nil, err
		}
		if release != nil {
			m.logger.Debug("resolved release by id", "id", id, "tag", release.TagName)
			return release, nil
		}
	}
	if tag != "" {
		release, err := m.client.GetReleaseByTag(ctx, tag)
		if err != nil {
			return nil, err
		}
		if release != nil {
			m.logger.Debug("resolved release by tag", "tag", tag, "id", release.ID)
			return release, nil
		}
	}
	return nil, nil
}

// Publish resolves the target release, creates or updates it, and uploads
// the input artifacts. A name collision on an artifact is a warning carried
// in the result, not an error; a read or transport failure aborts the
// remaining uploads.
func (m *Manager) Publish(ctx context.Context, in PublishInput) (*PublishResult, error) {
	found, err := m.Resolve(ctx, in.ID, in.Tag)
	if err != nil {
		return nil, err
	}

	req, err := buildRequest(in, found)
	if err != nil {
		return nil, err
	}

	var (
		release *github.ReleaseResponse
		created bool
	)
	if found != nil {
		release, err = m.client.UpdateRelease(ctx, req, found.ID)
		if err != nil {
			return nil, err
		}
		m.logger.Info("updated release", "id", release.ID, "tag", release.TagName)
	} else {
		release, err = m.client.CreateRelease(ctx, req)
		if err != nil {
			return nil, err
		}
		created = true
		m.logger.Info("created release", "id", release.ID, "tag", release.TagName)
	}

	newAssets, skipped, err := m.uploadAssets(ctx, release, in.Artifacts)
	if err != nil {
		return nil, err
	}

	return &PublishResult{
		Release:   release,
		Created:   created,
		NewAssets: newAssets,
		Skipped:   skipped,
		requested: len(in.Artifacts),
	}, nil
}

// UploadAssets uploads each artifact as an asset of the release, in input
// order. Artifacts whose base name already exists on the release are skipped
// with a warning; any read or transport error aborts the remaining uploads.
func (m *Manager) UploadAssets(ctx context.Context, release *github.ReleaseResponse, artifacts []string) ([]github.AssetResponse, error) {
	uploaded, _, err := m.uploadAssets(ctx, release, artifacts)
	return uploaded, err
}

func (m *Manager) uploadAssets(ctx context.Context, release *github.ReleaseResponse, artifacts []string) (uploaded []github.AssetResponse, skipped []string, err error) {
	existing := make(map[string]struct{}, len(release.Assets))
	for _, asset := range release.Assets {
		existing[asset.Name] = struct{}{}
	}
	if len(existing) > 0 {
		names := maps.Keys(existing)
		slices.Sort(names)
		m.logger.Debug("release already has assets", "names", names)
	}

	for _, artifact := range artifacts {
		name := filepath.Base(artifact)
		if _, ok := existing[name]; ok {
			// TODO: Add a --force flag that deletes the existing asset so the
			// artifact can be re-uploaded.
			m.logger.Warn("skipping existing asset", "name", name)
			skipped = append(skipped, name)
			continue
		}

		body, readErr := os.ReadFile(artifact)
		if readErr != nil {
			return uploaded, skipped, fmt.Errorf("reading artifact %s: %w", artifact, readErr)
		}

		asset, uploadErr := m.client.UploadAsset(ctx, release.UploadURL,
			github.AssetRequest{Name: name, Label: name}, body, "")
		if uploadErr != nil {
			return uploaded, skipped, uploadErr
		}
		m.logger.Info("uploaded asset", "name", asset.Name, "id", asset.ID, "size", asset.Size)
		uploaded = append(uploaded, *asset)
	}
	return uploaded, skipped, nil
}

// buildRequest assembles the release payload. The tag falls back to the
// resolved release's tag; the name falls back to the input tag and is
// otherwise omitted so a partial update keeps the current title. The commit
// and body are included only when supplied.
func buildRequest(in PublishInput, found *github.ReleaseResponse) (github.ReleaseRequest, error) {
	tag := in.Tag
	if tag == "" && found != nil {
		tag = found.TagName
	}
	if tag == "" {
		return github.ReleaseRequest{}, ErrTagRequired
	}

	req := github.ReleaseRequest{
		TagName:    tag,
		Draft:      github.Bool(in.Draft),
		Prerelease: github.Bool(in.Prerelease),
	}
	if in.Name != "" {
		req.Name = github.String(in.Name)
	} else if in.Tag != "" {
		req.Name = github.String(in.Tag)
	}
	if in.Commit != "" {
		req.TargetCommitish = github.String(in.Commit)
	}
	if in.Body != "" {
		req.Body = github.String(in.Body)
	}
	return req, nil
}
