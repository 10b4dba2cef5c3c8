package siterouter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/MikkoParkkola/nab/model"
)

type wikipediaProvider struct{}

func (wikipediaProvider) Name() string { return "wikipedia" }

func (wikipediaProvider) Matches(u *url.URL) bool {
	if !strings.HasSuffix(strings.ToLower(u.Hostname()), "wikipedia.org") {
		return false
	}
	return strings.HasPrefix(u.Path, "/wiki/")
}

type wikiSummary struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// Extract calls the REST summary endpoint, preserving the language
// subdomain (e.g. "fi.wikipedia.org") per spec.md §4.3's table note.
func (wikipediaProvider) Extract(ctx context.Context, client *http.Client, u *url.URL) (*model.SiteContent, error) {
	title := strings.TrimPrefix(u.Path, "/wiki/")
	if title == "" {
		return nil, fmt.Errorf("siterouter: wikipedia: no article title in path")
	}
	api := fmt.Sprintf("https://%s/api/rest_v1/page/summary/%s", u.Hostname(), title)

	var summary wikiSummary
	if err := getJSON(ctx, client, api, map[string]string{"Accept": "application/json"}, &summary); err != nil {
		return nil, err
	}
	if summary.Title == "" {
		return nil, fmt.Errorf("siterouter: wikipedia: empty summary")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", summary.Title)
	if summary.Description != "" {
		fmt.Fprintf(&sb, "_%s_\n\n", summary.Description)
	}
	sb.WriteString(summary.Extract)

	return &model.SiteContent{
		Provider:     "wikipedia",
		Title:        summary.Title,
		BodyMarkdown: sb.String(),
		Metadata: map[string]any{
			"description": summary.Description,
			"canonical":   summary.ContentURLs.Desktop.Page,
		},
	}, nil
}
