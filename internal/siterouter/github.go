package siterouter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/MikkoParkkola/nab/model"
)

// githubIssuePathRE matches /<owner>/<repo>/{issues,pull}/<number>.
var githubIssuePathRE = regexp.MustCompile(`^/([^/]+)/([^/]+)/(issues|pull)/(\d+)$`)

// githubAPIBase is overridden in tests to point at an httptest server.
var githubAPIBase = "https://api.github.com"

type githubProvider struct{}

func (githubProvider) Name() string { return "github" }

func (githubProvider) Matches(u *url.URL) bool {
	if !hostMatches(u, "github.com") {
		return false
	}
	return githubIssuePathRE.MatchString(u.Path)
}

type ghIssue struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	State    string `json:"state"`
	Number   int    `json:"number"`
	Comments int    `json:"comments"`
	User     struct {
		Login string `json:"login"`
	} `json:"user"`
	HTMLURL string `json:"html_url"`
}

// Extract calls the REST /repos/{owner}/{repo}/issues/{number} endpoint
// (GitHub's API serves both issues and pull requests from this path), and
// honors rate-limit headers per spec.md §4.3 by surfacing a clear error
// when the API reports exhaustion rather than retrying silently.
func (githubProvider) Extract(ctx context.Context, client *http.Client, u *url.URL) (*model.SiteContent, error) {
	m := githubIssuePathRE.FindStringSubmatch(u.Path)
	if m == nil {
		return nil, fmt.Errorf("siterouter: github: url does not match issue/pr path")
	}
	owner, repo, number := m[1], m[2], m[4]

	api := fmt.Sprintf("%s/repos/%s/%s/issues/%s", githubAPIBase, owner, repo, number)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, api, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("siterouter: github: request: %w", err)
	}
	defer resp.Body.Close()

	if remain := resp.Header.Get("X-RateLimit-Remaining"); remain == "0" {
		return nil, fmt.Errorf("siterouter: github: rate limit exhausted, resets at %s", resp.Header.Get("X-RateLimit-Reset"))
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("siterouter: github: api returned %s", resp.Status)
	}

	var issue ghIssue
	if err := decodeJSONBody(resp, &issue); err != nil {
		return nil, err
	}

	kind := "Issue"
	if m[3] == "pull" {
		kind = "Pull Request"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s #%d: %s\n\n", kind, issue.Number, issue.Title)
	fmt.Fprintf(&sb, "**State:** %s · **Author:** %s · **Comments:** %d\n\n", issue.State, issue.User.Login, issue.Comments)
	sb.WriteString(issue.Body)

	return &model.SiteContent{
		Provider:     "github",
		Title:        issue.Title,
		BodyMarkdown: sb.String(),
		Metadata: map[string]any{
			"number":   issue.Number,
			"state":    issue.State,
			"author":   issue.User.Login,
			"comments": issue.Comments,
			"kind":     kind,
		},
	}, nil
}
