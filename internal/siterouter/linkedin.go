package siterouter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/MikkoParkkola/nab/model"
)

type linkedInProvider struct{}

func (linkedInProvider) Name() string { return "linkedin" }

func (linkedInProvider) Matches(u *url.URL) bool {
	if !hostMatches(u, "linkedin.com") {
		return false
	}
	return strings.HasPrefix(u.Path, "/posts/")
}

// Extract uses LinkedIn's oEmbed endpoint, per spec.md §4.3's table.
func (linkedInProvider) Extract(ctx context.Context, client *http.Client, u *url.URL) (*model.SiteContent, error) {
	info, err := fetchOembed(ctx, client, "https://www.linkedin.com/oembed", u.String())
	if err != nil {
		return nil, err
	}
	if info.Title == "" && info.HTML == "" {
		return nil, fmt.Errorf("siterouter: linkedin: empty oembed response")
	}

	title := info.Title
	if title == "" {
		title = "LinkedIn post"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if info.AuthorName != "" {
		fmt.Fprintf(&sb, "By %s\n\n", info.AuthorName)
	}
	sb.WriteString(stripSimpleHTMLTags(info.HTML))

	return &model.SiteContent{
		Provider:     "linkedin",
		Title:        title,
		BodyMarkdown: sb.String(),
		Metadata: map[string]any{
			"author_name": info.AuthorName,
		},
	}, nil
}
