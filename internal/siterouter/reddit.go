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

// redditCommentsPathRE matches /r/<sub>/comments/<id>[/...].
var redditCommentsPathRE = regexp.MustCompile(`^/r/([^/]+)/comments/([a-z0-9]+)`)

type redditProvider struct{}

func (redditProvider) Name() string { return "reddit" }

func (redditProvider) Matches(u *url.URL) bool {
	if !hostMatches(u, "reddit.com") {
		return false
	}
	return redditCommentsPathRE.MatchString(u.Path)
}

// redditListing mirrors the shape Reddit's .json endpoint returns: a
// two-element array, [post-listing, comments-listing]. created_utc and
// score use float64/int64 per spec.md's table (negative score allowed,
// all fields defaulting to zero value on absence).
type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title      string  `json:"title"`
				Author     string  `json:"author"`
				Selftext   string  `json:"selftext"`
				CreatedUTC float64 `json:"created_utc"`
				Score      int64   `json:"score"`
				Subreddit  string  `json:"subreddit"`
				Permalink  string  `json:"permalink"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Extract fetches Reddit's JSON API via a fresh ALPN-negotiated client per
// spec.md §4.3/§4.1's critical invariant: Reddit rejects prior-knowledge H2
// with an HTML error page, so the client passed in here must negotiate
// ALPN rather than assume H2.
func (redditProvider) Extract(ctx context.Context, client *http.Client, u *url.URL) (*model.SiteContent, error) {
	jsonURL := strings.TrimSuffix(u.Path, "/") + ".json"
	full := fmt.Sprintf("%s://%s%s", u.Scheme, u.Host, jsonURL)

	var listing []redditListing
	if err := getJSON(ctx, client, full, map[string]string{"Accept": "application/json"}, &listing); err != nil {
		return nil, err
	}
	if len(listing) == 0 || len(listing[0].Data.Children) == 0 {
		return nil, fmt.Errorf("siterouter: reddit: empty listing")
	}
	post := listing[0].Data.Children[0].Data

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", post.Title)
	fmt.Fprintf(&sb, "Posted by u/%s in r/%s\n\n", post.Author, post.Subreddit)
	if post.Selftext != "" {
		sb.WriteString(post.Selftext)
		sb.WriteString("\n\n")
	}
	fmt.Fprintf(&sb, "Score: %d\n", post.Score)

	return &model.SiteContent{
		Provider:     "reddit",
		Title:        post.Title,
		BodyMarkdown: sb.String(),
		Metadata: map[string]any{
			"author":      post.Author,
			"subreddit":   post.Subreddit,
			"score":       post.Score,
			"created_utc": post.CreatedUTC,
		},
	}, nil
}
