// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jwilges/monocat/internal/github"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

var (
	// listReleasesStable restricts output to published semver releases
	listReleasesStable bool
	// listReleasesLimit caps the number of releases printed (0 = no cap)
	listReleasesLimit int

	// listReleasesCmd prints the repository's releases.
	listReleasesCmd = &cobra.Command{
		Use:   "list-releases",
		Short: "List GitHub releases",
		Long: `List the repository's releases, newest first.

With --stable, drafts, prereleases, and releases whose tag is not a
semantic version are dropped and the remainder is ordered by semantic
version, highest first. Tags may carry the leading "v" or not.

Examples:
  monocat -o octocat -r hello-world list-releases
  monocat -o octocat -r hello-world list-releases --stable --limit 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newReleaseClient(cmd)
			if err != nil {
				return err
			}
			return runListReleases(cmd, client, listReleasesStable, listReleasesLimit)
		},
	}
)

func init() {
	listReleasesCmd.Flags().BoolVar(&listReleasesStable, "stable", false, "only published releases with semver tags, highest first")
	listReleasesCmd.Flags().IntVar(&listReleasesLimit, "limit", 0, "maximum number of releases to print (0 = all)")
}

// runListReleases fetches and prints releases, as a JSON array or as styled
// lines in interactive mode.
func runListReleases(cmd *cobra.Command, client *github.Client, stable bool, limit int) error {
	releases, err := client.ListReleases(cmd.Context())
	if err != nil {
		return apiFailure(cmd, "list releases", err)
	}

	if stable {
		releases = stableReleases(releases)
	}
	if limit > 0 && len(releases) > limit {
		releases = releases[:limit]
	}

	stdout := cmd.OutOrStdout()
	if interactive {
		printReleaseLines(stdout, releases)
		return nil
	}
	if releases == nil {
		releases = []github.ReleaseResponse{}
	}
	return printJSON(stdout, releases)
}

// stableReleases drops drafts, prereleases, and releases whose tag is not a
// semantic version, then orders the remainder by version, highest first.
func stableReleases(releases []github.ReleaseResponse) []github.ReleaseResponse {
	stable := make([]github.ReleaseResponse, 0, len(releases))
	for _, rel := range releases {
		if rel.Draft || rel.Prerelease {
			continue
		}
		if !semver.IsValid(canonicalTag(rel.TagName)) {
			continue
		}
		stable = append(stable, rel)
	}
	slices.SortStableFunc(stable, func(a, b github.ReleaseResponse) int {
		return semver.Compare(canonicalTag(b.TagName), canonicalTag(a.TagName))
	})
	return stable
}

// canonicalTag maps a release tag onto the "v"-prefixed form
// golang.org/x/mod/semver expects, tolerating tags without the prefix.
func canonicalTag(tag string) string {
	if strings.HasPrefix(tag, "v") {
		return tag
	}
	return "v" + tag
}

// printReleaseLines renders one styled line per release.
func printReleaseLines(stdout io.Writer, releases []github.ReleaseResponse) {
	if len(releases) == 0 {
		fmt.Fprintln(stdout, SubtitleStyle.Render("(no releases)"))
		return
	}
	for _, rel := range releases {
		line := CmdStyle.Render(rel.TagName)
		if rel.Name != "" && rel.Name != rel.TagName {
			line += " " + rel.Name
		}
		if state := releaseState(&rel); state != "published" {
			line += " " + WarningStyle.Render("["+state+"]")
		}
		if rel.PublishedAt != nil {
			line += " " + SubtitleStyle.Render(rel.PublishedAt.Format("2006-01-02"))
		}
		fmt.Fprintln(stdout, line)
	}
}
