// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jwilges/monocat/internal/github"
	"github.com/jwilges/monocat/internal/issue"
	"github.com/jwilges/monocat/internal/tui"

	"github.com/spf13/cobra"
)

// printJSON writes v as indented JSON, the non-interactive output contract
// shared by all release commands.
func printJSON(stdout io.Writer, v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err = fmt.Fprintln(stdout, string(payload))
	return err
}

// printReleaseSummary renders a styled, human-oriented view of a release,
// with the release notes rendered as markdown.
func printReleaseSummary(stdout io.Writer, rel *github.ReleaseResponse) error {
	title := rel.Name
	if title == "" {
		title = rel.TagName
	}
	fmt.Fprintln(stdout, TitleStyle.Render(title))

	fmt.Fprintf(stdout, "%s: %d\n", CmdStyle.Render("id"), rel.ID)
	fmt.Fprintf(stdout, "%s: %s\n", CmdStyle.Render("tag"), rel.TagName)
	if rel.TargetCommitish != "" {
		fmt.Fprintf(stdout, "%s: %s\n", CmdStyle.Render("target"), rel.TargetCommitish)
	}
	fmt.Fprintf(stdout, "%s: %s\n", CmdStyle.Render("state"), releaseState(rel))
	if rel.PublishedAt != nil {
		fmt.Fprintf(stdout, "%s: %s\n", CmdStyle.Render("published"), rel.PublishedAt.Format(time.RFC3339))
	}
	if rel.HTMLURL != "" {
		fmt.Fprintf(stdout, "%s: %s\n", CmdStyle.Render("url"), rel.HTMLURL)
	}
	if len(rel.Assets) > 0 {
		fmt.Fprintf(stdout, "%s:\n", CmdStyle.Render("assets"))
		for _, asset := range rel.Assets {
			fmt.Fprintf(stdout, "  - %s %s\n", asset.Name, VerboseStyle.Render(formatSize(asset.Size)))
		}
	}

	if rel.Body != "" {
		rendered, err := tui.NewFormat().
			Content(rel.Body).
			Markdown().
			ColorScheme(colorScheme()).
			Run()
		if err != nil {
			return fmt.Errorf("rendering release notes: %w", err)
		}
		fmt.Fprint(stdout, rendered)
	}
	return nil
}

// releaseState names the lifecycle state of a release for display.
func releaseState(rel *github.ReleaseResponse) string {
	switch {
	case rel.Draft:
		return "draft"
	case rel.Prerelease:
		return "prerelease"
	default:
		return "published"
	}
}

// formatSize renders an asset size for display.
func formatSize(size int64) string {
	return fmt.Sprintf("(%d bytes)", size)
}

// releaseSelector describes which of the id/tag selectors the user supplied,
// for diagnostics.
func releaseSelector(id, tag string) string {
	switch {
	case id != "" && tag != "":
		return fmt.Sprintf("id %s or tag %s", id, tag)
	case id != "":
		return "id " + id
	default:
		return "tag " + tag
	}
}

// reportReleaseNotFound warns that neither selector matched a release.
// Interactive runs get the issue catalog card; plain runs get a warning log
// so --quiet can suppress it.
func reportReleaseNotFound(cmd *cobra.Command, id, tag string) {
	if interactive {
		err := errors.New(releaseSelector(id, tag) + " did not match any release")
		styled := WarningStyle.Render("Warning: ") + err.Error() + "\n"
		renderServiceError(cmd.ErrOrStderr(), newServiceError(err, issue.ReleaseNotFoundId, styled))
		return
	}
	newLogger("monocat").Warn("no release was found", "id", id, "tag", tag)
}

// apiFailure reports a failed API operation and converts it into the exit
// code contract. Diagnostics are printed here, so usage help and duplicate
// error lines are silenced.
func apiFailure(cmd *cobra.Command, operation string, err error) error {
	wrapped := issue.NewErrorContext().
		WithOperation(operation).
		Wrap(err).
		Build()

	issueID := issue.Id(0)
	if interactive {
		issueID = issue.APIRequestFailedId
	}
	styled := ErrorStyle.Render("Error: ") + formatErrorForDisplay(wrapped, verbosity > 0) + "\n"
	renderServiceError(cmd.ErrOrStderr(), newServiceError(wrapped, issueID, styled))

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return &ExitError{Code: 1}
}
