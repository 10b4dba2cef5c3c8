package siterouter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/MikkoParkkola/nab/model"
)

// youtubeProvider is grounded directly on Doist-unfurlist's youtubeFetcher
// (youtube.go): it exists because YouTube sometimes serves a captcha-walled
// HTML page that omits the oEmbed discovery link, so the oEmbed endpoint is
// called directly instead of relying on generic HTML discovery.
type youtubeProvider struct{}

func (youtubeProvider) Name() string { return "youtube" }

func (youtubeProvider) Matches(u *url.URL) bool {
	if hostMatches(u, "youtu.be") {
		return len(pathSegments(u)) >= 1
	}
	if hostMatches(u, "youtube.com") {
		return u.Path == "/watch" && u.Query().Get("v") != ""
	}
	return false
}

func (youtubeProvider) Extract(ctx context.Context, client *http.Client, u *url.URL) (*model.SiteContent, error) {
	info, err := fetchOembed(ctx, client, "https://www.youtube.com/oembed", u.String())
	if err != nil {
		return nil, err
	}
	if info.Title == "" {
		return nil, fmt.Errorf("siterouter: youtube: empty oembed title")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", info.Title)
	if info.AuthorName != "" {
		fmt.Fprintf(&sb, "By %s\n\n", info.AuthorName)
	}
	if info.ThumbnailURL != "" {
		fmt.Fprintf(&sb, "![thumbnail](%s)\n", info.ThumbnailURL)
	}

	return &model.SiteContent{
		Provider:     "youtube",
		Title:        info.Title,
		BodyMarkdown: sb.String(),
		Metadata: map[string]any{
			"author_name": info.AuthorName,
			"type":        info.Type,
		},
	}, nil
}
