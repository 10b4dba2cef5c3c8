package siterouter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MikkoParkkola/nab/model"
)

type hackerNewsProvider struct{}

func (hackerNewsProvider) Name() string { return "hackernews" }

func (hackerNewsProvider) Matches(u *url.URL) bool {
	if !hostMatches(u, "news.ycombinator.com") {
		return false
	}
	return u.Path == "/item" && u.Query().Get("id") != ""
}

type hnItem struct {
	ID    int    `json:"id"`
	Type  string `json:"type"`
	By    string `json:"by"`
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
	Score int    `json:"score"`
	Kids  []int  `json:"kids"`
}

// hnItemURLFmt is overridden in tests to point at an httptest server.
var hnItemURLFmt = "https://hacker-news.firebaseio.com/v0/item/%d.json"

// Extract fetches the story plus its top-level comments from the Firebase
// item API, per spec.md §4.3's "recursively fetch top-level comments" note
// (limited to one level: top-level kids, not the full comment tree, to
// keep output bounded).
func (hackerNewsProvider) Extract(ctx context.Context, client *http.Client, u *url.URL) (*model.SiteContent, error) {
	id, err := strconv.Atoi(u.Query().Get("id"))
	if err != nil {
		return nil, fmt.Errorf("siterouter: hackernews: invalid id: %w", err)
	}
	var story hnItem
	if err := getJSON(ctx, client, fmt.Sprintf(hnItemURLFmt, id), nil, &story); err != nil {
		return nil, err
	}

	comments := fetchTopLevelComments(ctx, client, story.Kids)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", story.Title)
	if story.URL != "" {
		fmt.Fprintf(&sb, "%s\n\n", story.URL)
	}
	if story.Text != "" {
		sb.WriteString(story.Text)
		sb.WriteString("\n\n")
	}
	fmt.Fprintf(&sb, "Points: %d · by %s\n\n", story.Score, story.By)
	if len(comments) > 0 {
		sb.WriteString("## Top comments\n\n")
		for _, c := range comments {
			if c.Text == "" {
				continue
			}
			fmt.Fprintf(&sb, "- **%s**: %s\n", c.By, c.Text)
		}
	}

	return &model.SiteContent{
		Provider:     "hackernews",
		Title:        story.Title,
		BodyMarkdown: sb.String(),
		Metadata: map[string]any{
			"author":        story.By,
			"score":         story.Score,
			"comment_count": len(story.Kids),
		},
	}, nil
}

func fetchTopLevelComments(ctx context.Context, client *http.Client, ids []int) []hnItem {
	const maxComments = 10
	if len(ids) > maxComments {
		ids = ids[:maxComments]
	}
	out := make([]hnItem, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i, id int) {
			defer wg.Done()
			var item hnItem
			if err := getJSON(ctx, client, fmt.Sprintf(hnItemURLFmt, id), nil, &item); err == nil {
				out[i] = item
			}
		}(i, id)
	}
	wg.Wait()
	return out
}
