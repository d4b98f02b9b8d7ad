// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	MissingTokenId Id = iota + 1
	ConfigLoadFailedId
	ReleaseNotFoundId
	AssetConflictId
	APIRequestFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	missingTokenIssue = &Issue{
		id: MissingTokenId,
		mdMsg: `
# No GitHub token found!

monocat needs a GitHub API token to talk to the Releases API, but none was provided.

## Where we look (in order of precedence):
1. The token passed programmatically (library use)
2. The GITHUB_TOKEN environment variable

## Things you can try:
- Export a token in your shell:
~~~
$ export GITHUB_TOKEN="<your token>"
~~~

- In GitHub Actions, forward the workflow token:
~~~yaml
env:
  GITHUB_TOKEN: ${{ secrets.GITHUB_TOKEN }}
~~~

- For a personal access token, grant the ` + "`repo`" + ` scope so drafts and
  uploads work against private repositories.`,
		extLinks: []HttpLink{
			"https://github.com/settings/tokens",
		},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the monocat configuration file.

## Configuration file locations:
- Linux: ~/.config/monocat/config.cue
- macOS: ~/Library/Application Support/monocat/config.cue
- Windows: %APPDATA%\monocat\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ monocat config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults:
~~~
$ rm ~/.config/monocat/config.cue
~~~

## Example configuration:
~~~cue
owner: "octocat"
repository: "hello-world"

ui: {
  color_scheme: "auto"
  verbose: false
}
~~~`,
	}

	releaseNotFoundIssue = &Issue{
		id: ReleaseNotFoundId,
		mdMsg: `
# Release not found!

No release matched the id or tag you asked for.

## Things you can try:
- List the releases the API can see:
~~~
$ monocat -o <owner> -r <repository> list-releases
~~~

- Check for typos in the ` + "`--id`" + ` or ` + "`--tag`" + ` value
- Draft releases are only visible to tokens with push access to the
  repository; verify your token's scopes
- If you meant to create the release, run ` + "`monocat update-release --tag <tag>`" + `
  instead (it creates the release when none exists)`,
	}

	assetConflictIssue = &Issue{
		id: AssetConflictId,
		mdMsg: `
# Asset already exists!

One or more artifacts were skipped because the release already has an asset
with the same file name. GitHub rejects duplicate asset names, so monocat
never re-uploads over an existing one.

## Things you can try:
- Rename the artifact before uploading
- Delete the conflicting asset from the release page on GitHub and rerun
- If the existing asset is the one you wanted, nothing is wrong; the other
  artifacts were still uploaded`,
		extLinks: []HttpLink{
			"https://docs.github.com/en/rest/releases/assets",
		},
	}

	apiRequestFailedIssue = &Issue{
		id: APIRequestFailedId,
		mdMsg: `
# GitHub API request failed!

The GitHub API returned an error status for a request monocat made.

## Common causes:
- **401 Unauthorized**: the token is missing, expired, or revoked
- **403 Forbidden**: the token lacks the required scopes, or you hit a
  rate limit
- **404 Not Found**: the owner/repository pair is wrong, or the token
  cannot see the repository
- **422 Unprocessable Entity**: the request payload was rejected (for
  example, a tag that already has a release)

## Things you can try:
- Run with verbose mode to see the request and response details:
~~~
$ monocat -v update-release --tag v1.0.0
~~~

- Verify the owner and repository:
~~~
$ monocat -o <owner> -r <repository> list-releases
~~~

- For GitHub Enterprise, point monocat at your instance:
~~~
$ export GITHUB_API="https://github.example.com/api/v3"
~~~`,
		extLinks: []HttpLink{
			"https://docs.github.com/en/rest/releases/releases",
		},
	}

	issues = map[Id]*Issue{
		missingTokenIssue.Id():     missingTokenIssue,
		configLoadFailedIssue.Id(): configLoadFailedIssue,
		releaseNotFoundIssue.Id():  releaseNotFoundIssue,
		assetConflictIssue.Id():    assetConflictIssue,
		apiRequestFailedIssue.Id(): apiRequestFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
