// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jwilges/monocat/internal/github"
)

func TestStableReleases(t *testing.T) {
	t.Parallel()

	releases := []github.ReleaseResponse{
		{ID: 1, TagName: "v1.0.0"},
		{ID: 2, TagName: "v2.0.0", Draft: true},
		{ID: 3, TagName: "v1.5.0", Prerelease: true},
		{ID: 4, TagName: "nightly-2026-08-01"},
		{ID: 5, TagName: "2.1.0"},
		{ID: 6, TagName: "v0.9.0"},
	}

	got := stableReleases(releases)

	wantTags := []string{"2.1.0", "v1.0.0", "v0.9.0"}
	if len(got) != len(wantTags) {
		t.Fatalf("stableReleases() kept %d releases, want %d: %+v", len(got), len(wantTags), got)
	}
	for i, want := range wantTags {
		if got[i].TagName != want {
			t.Errorf("stableReleases()[%d].TagName = %q, want %q", i, got[i].TagName, want)
		}
	}
}

func TestStableReleases_SemverPrereleaseTagsKept(t *testing.T) {
	t.Parallel()

	// A prerelease suffix in the tag is still valid semver; only the draft
	// and prerelease release flags and non-semver tags drop a release.
	releases := []github.ReleaseResponse{
		{ID: 1, TagName: "v1.0.0-rc.1"},
		{ID: 2, TagName: "v1.0.0"},
		{ID: 3, TagName: "not-a-version"},
	}

	got := stableReleases(releases)

	wantTags := []string{"v1.0.0", "v1.0.0-rc.1"}
	if len(got) != len(wantTags) {
		t.Fatalf("stableReleases() kept %d releases, want %d", len(got), len(wantTags))
	}
	for i, want := range wantTags {
		if got[i].TagName != want {
			t.Errorf("stableReleases()[%d].TagName = %q, want %q", i, got[i].TagName, want)
		}
	}
}

func TestCanonicalTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag  string
		want string
	}{
		{"v1.2.3", "v1.2.3"},
		{"1.2.3", "v1.2.3"},
		{"nightly", "vnightly"},
	}
	for _, tt := range tests {
		if got := canonicalTag(tt.tag); got != tt.want {
			t.Errorf("canonicalTag(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

// listServer serves a fixed release array on the list endpoint.
func listServer(t *testing.T, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path != "/repos/octo/hello/releases" {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message": "Not Found"}`)
			return
		}
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRunListReleases_JSON(t *testing.T) {
	// Not parallel: reads package-level output flags.
	setOutputMode(t, false)

	srv := listServer(t, `[
		{"id": 2, "tag_name": "v2.0.0"},
		{"id": 1, "tag_name": "v1.0.0"}
	]`)

	cmd, stdout, _ := testCmd(t)
	if err := runListReleases(cmd, newTestGitHubClient(t, srv), false, 0); err != nil {
		t.Fatalf("runListReleases() error = %v", err)
	}

	var decoded []github.ReleaseResponse
	if err := json.Unmarshal(stdout.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[0].TagName != "v2.0.0" {
		t.Errorf("decoded releases = %+v, want the API ordering preserved", decoded)
	}
}

func TestRunListReleases_StableAndLimit(t *testing.T) {
	setOutputMode(t, false)

	srv := listServer(t, `[
		{"id": 1, "tag_name": "v1.0.0"},
		{"id": 2, "tag_name": "v3.0.0", "draft": true},
		{"id": 3, "tag_name": "v2.0.0"},
		{"id": 4, "tag_name": "v1.1.0"}
	]`)

	cmd, stdout, _ := testCmd(t)
	if err := runListReleases(cmd, newTestGitHubClient(t, srv), true, 2); err != nil {
		t.Fatalf("runListReleases() error = %v", err)
	}

	var decoded []github.ReleaseResponse
	if err := json.Unmarshal(stdout.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("limit should cap output at 2 releases, got %d", len(decoded))
	}
	if decoded[0].TagName != "v2.0.0" || decoded[1].TagName != "v1.1.0" {
		t.Errorf("stable ordering = [%s, %s], want [v2.0.0, v1.1.0]",
			decoded[0].TagName, decoded[1].TagName)
	}
}

func TestRunListReleases_EmptyIsArray(t *testing.T) {
	setOutputMode(t, false)

	srv := listServer(t, `[]`)

	cmd, stdout, _ := testCmd(t)
	if err := runListReleases(cmd, newTestGitHubClient(t, srv), false, 0); err != nil {
		t.Fatalf("runListReleases() error = %v", err)
	}
	if strings.TrimSpace(stdout.String()) != "[]" {
		t.Errorf("empty listing should print [], got %q", stdout.String())
	}
}

func TestRunListReleases_Interactive(t *testing.T) {
	setOutputMode(t, true)
	isolateConfig(t)

	srv := listServer(t, `[
		{"id": 1, "tag_name": "v1.0.0", "name": "First", "published_at": "2026-01-02T15:04:05Z"},
		{"id": 2, "tag_name": "v1.1.0-rc.1", "prerelease": true}
	]`)

	cmd, stdout, _ := testCmd(t)
	if err := runListReleases(cmd, newTestGitHubClient(t, srv), false, 0); err != nil {
		t.Fatalf("runListReleases() error = %v", err)
	}

	out := stdout.String()
	for _, want := range []string{"v1.0.0", "First", "2026-01-02", "v1.1.0-rc.1", "[prerelease]"} {
		if !strings.Contains(out, want) {
			t.Errorf("interactive listing should contain %q, got:\n%s", want, out)
		}
	}
}

func TestRunListReleases_InteractiveEmpty(t *testing.T) {
	setOutputMode(t, true)
	isolateConfig(t)

	srv := listServer(t, `[]`)

	cmd, stdout, _ := testCmd(t)
	if err := runListReleases(cmd, newTestGitHubClient(t, srv), false, 0); err != nil {
		t.Fatalf("runListReleases() error = %v", err)
	}
	if !strings.Contains(stdout.String(), "(no releases)") {
		t.Errorf("empty interactive listing should say so, got %q", stdout.String())
	}
}
