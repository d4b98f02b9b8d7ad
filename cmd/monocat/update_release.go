// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jwilges/monocat/internal/github"
	"github.com/jwilges/monocat/internal/issue"
	"github.com/jwilges/monocat/internal/release"
	"github.com/jwilges/monocat/internal/tui"

	"github.com/spf13/cobra"
)

var (
	// updateReleaseID selects an existing release by numeric identifier
	updateReleaseID string
	// updateReleaseTag selects or names the release tag
	updateReleaseTag string
	// updateReleaseCommit pins the tag to a commitish when the tag does not exist yet
	updateReleaseCommit string
	// updateReleaseName sets the release title
	updateReleaseName string
	// updateReleaseBody sets the release notes
	updateReleaseBody string
	// updateReleaseDraft marks the release as a draft
	updateReleaseDraft bool
	// updateReleasePrerelease marks the release as a prerelease
	updateReleasePrerelease bool
	// updateReleaseOutputID restricts output to the bare release id
	updateReleaseOutputID bool

	// updateReleaseCmd creates or updates a release and uploads artifacts.
	updateReleaseCmd = &cobra.Command{
		Use:   "update-release [artifact]...",
		Short: "Update or create a GitHub release",
		Long: `Update an existing GitHub release, or create one when neither the id nor
the tag matches, then upload the listed artifacts as release assets.

Artifacts whose base name collides with an existing asset are skipped with
a warning rather than aborting the remaining uploads; the exit code is 1
whenever any requested artifact was not newly uploaded.

Examples:
  monocat -o octocat -r hello-world update-release --tag v1.2.3 dist/app.tar.gz
  monocat -o octocat -r hello-world update-release --tag v1.2.3 --draft --name "v1.2.3 RC1"
  monocat -o octocat -r hello-world update-release --id 8675309 --body "Patch notes"`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if updateReleaseID == "" && updateReleaseTag == "" {
				return errors.New("at least one of --id/-i or --tag/-t is required")
			}
			client, err := newReleaseClient(cmd)
			if err != nil {
				return err
			}
			in := release.PublishInput{
				ID:         updateReleaseID,
				Tag:        updateReleaseTag,
				Commit:     updateReleaseCommit,
				Name:       updateReleaseName,
				Body:       updateReleaseBody,
				Draft:      updateReleaseDraft,
				Prerelease: updateReleasePrerelease,
				Artifacts:  args,
			}
			return runUpdateRelease(cmd, newReleaseManager(client), in, updateReleaseOutputID)
		},
	}
)

func init() {
	updateReleaseCmd.Flags().StringVarP(&updateReleaseID, "id", "i", "", "release identifier")
	updateReleaseCmd.Flags().StringVarP(&updateReleaseTag, "tag", "t", "", "release tag")
	updateReleaseCmd.Flags().StringVarP(&updateReleaseCommit, "commit", "c", "", "commitish the tag should point at when created")
	updateReleaseCmd.Flags().StringVarP(&updateReleaseName, "name", "n", "", "release title (defaults to the tag)")
	updateReleaseCmd.Flags().StringVarP(&updateReleaseBody, "body", "b", "", "release notes")
	updateReleaseCmd.Flags().BoolVar(&updateReleaseDraft, "draft", false, "mark the release as a draft")
	updateReleaseCmd.Flags().BoolVar(&updateReleasePrerelease, "prerelease", false, "mark the release as a prerelease")
	updateReleaseCmd.Flags().BoolVar(&updateReleaseOutputID, "output-id", false, "print only the release id")
}

// publishResponse is the non-interactive output payload of update-release.
type publishResponse struct {
	Release   *github.ReleaseResponse `json:"release"`
	NewAssets []github.AssetResponse  `json:"new_assets"`
}

// runUpdateRelease publishes the release and prints the outcome. A partial
// upload (some artifacts skipped over name collisions) still prints the
// result but exits 1.
func runUpdateRelease(cmd *cobra.Command, manager *release.Manager, in release.PublishInput, outputID bool) error {
	result, err := manager.Publish(cmd.Context(), in)
	if err != nil {
		if errors.Is(err, release.ErrTagRequired) {
			// No release matched the id and there is no tag to create one
			// under; that is a usage problem, not an API failure.
			return err
		}
		return apiFailure(cmd, "publish release", err)
	}

	stdout := cmd.OutOrStdout()
	switch {
	case outputID:
		fmt.Fprintln(stdout, result.Release.ID)
	case interactive:
		if err := printPublishSummary(stdout, result); err != nil {
			return err
		}
	default:
		if err := printJSON(stdout, newPublishResponse(result)); err != nil {
			return err
		}
	}

	if !result.Complete() {
		reportIncompleteUpload(cmd, result.Skipped)
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return &ExitError{Code: 1}
	}
	return nil
}

// newPublishResponse shapes a publish result for JSON output. NewAssets is
// always an array, never null, to keep the payload friendly to jq pipelines.
func newPublishResponse(result *release.PublishResult) publishResponse {
	newAssets := result.NewAssets
	if newAssets == nil {
		newAssets = []github.AssetResponse{}
	}
	return publishResponse{Release: result.Release, NewAssets: newAssets}
}

// printPublishSummary renders the interactive view of a publish: one line for
// the release, one per asset, and in verbose runs the full payload as
// highlighted JSON.
func printPublishSummary(stdout io.Writer, result *release.PublishResult) error {
	verb := "Updated"
	if result.Created {
		verb = "Created"
	}
	fmt.Fprintf(stdout, "%s %s release %s %s\n",
		SuccessStyle.Render("✓"), verb, result.Release.TagName,
		SubtitleStyle.Render(fmt.Sprintf("(id %d)", result.Release.ID)))

	for _, asset := range result.NewAssets {
		fmt.Fprintf(stdout, "  %s uploaded %s %s\n",
			SuccessStyle.Render("✓"), asset.Name, VerboseStyle.Render(formatSize(asset.Size)))
	}
	for _, name := range result.Skipped {
		fmt.Fprintf(stdout, "  %s skipped %s %s\n",
			WarningStyle.Render("!"), name, SubtitleStyle.Render("(an asset with this name already exists)"))
	}

	if verbosity > 0 {
		payload, err := json.MarshalIndent(newPublishResponse(result), "", "  ")
		if err != nil {
			return fmt.Errorf("encoding publish result: %w", err)
		}
		rendered, err := tui.NewFormat().
			Content(string(payload)).
			Code().
			Language("json").
			ColorScheme(colorScheme()).
			Run()
		if err != nil {
			return fmt.Errorf("rendering publish result: %w", err)
		}
		fmt.Fprint(stdout, rendered)
	}
	return nil
}

// reportIncompleteUpload warns that not every requested artifact became a new
// asset, matching the exit-code contract of the publish workflow.
func reportIncompleteUpload(cmd *cobra.Command, skipped []string) {
	const msg = "One or more of the requested artifact(s) were not uploaded successfully; conflicting artifact(s) may already exist."
	if interactive {
		styled := WarningStyle.Render("Warning: ") + msg + "\n"
		renderServiceError(cmd.ErrOrStderr(), newServiceError(errors.New(msg), issue.AssetConflictId, styled))
		return
	}
	newLogger("monocat").Warn(msg, "skipped", skipped)
}
