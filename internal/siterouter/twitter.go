package siterouter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/MikkoParkkola/nab/model"
)

// statusPathRE matches /<user>/status/<id> on both twitter.com and x.com.
var statusPathRE = regexp.MustCompile(`^/[^/]+/status/(\d+)$`)

type twitterProvider struct{}

func (twitterProvider) Name() string { return "twitter" }

func (twitterProvider) Matches(u *url.URL) bool {
	if !hostMatches(u, "twitter.com", "x.com") {
		return false
	}
	return statusPathRE.MatchString(u.Path)
}

type fxTweet struct {
	Tweet struct {
		Text      string `json:"text"`
		CreatedAt string `json:"created_at"`
		Author    struct {
			Name      string `json:"name"`
			ScreenName string `json:"screen_name"`
		} `json:"author"`
		Likes   int `json:"likes"`
		Retweets int `json:"retweets"`
		Replies int `json:"replies"`
		Article *struct {
			Content struct {
				Blocks []struct {
					Text string `json:"text"`
				} `json:"blocks"`
			} `json:"content"`
		} `json:"article"`
	} `json:"tweet"`
}

// Extract calls fxtwitter's public JSON mirror, per spec.md §4.3's table:
// api.fxtwitter.com/{user}/status/{id}, falling back to
// tweet.article.content.blocks for long-form posts.
func (twitterProvider) Extract(ctx context.Context, client *http.Client, u *url.URL) (*model.SiteContent, error) {
	m := statusPathRE.FindStringSubmatch(u.Path)
	if m == nil {
		return nil, fmt.Errorf("siterouter: twitter: url does not match status path")
	}
	segs := pathSegments(u)
	if len(segs) < 3 {
		return nil, fmt.Errorf("siterouter: twitter: unexpected path shape")
	}
	user, id := segs[0], m[1]

	api := fmt.Sprintf("https://api.fxtwitter.com/%s/status/%s", user, id)
	var parsed fxTweet
	if err := getJSON(ctx, client, api, nil, &parsed); err != nil {
		return nil, err
	}

	body := parsed.Tweet.Text
	if parsed.Tweet.Article != nil && len(parsed.Tweet.Article.Content.Blocks) > 0 {
		var sb strings.Builder
		for _, b := range parsed.Tweet.Article.Content.Blocks {
			sb.WriteString(b.Text)
			sb.WriteString("\n\n")
		}
		body = strings.TrimSpace(sb.String())
	}

	title := fmt.Sprintf("@%s on X", parsed.Tweet.Author.ScreenName)
	if parsed.Tweet.Author.Name != "" {
		title = fmt.Sprintf("%s (@%s) on X", parsed.Tweet.Author.Name, parsed.Tweet.Author.ScreenName)
	}

	md := renderTweetMarkdown(parsed, body)
	return &model.SiteContent{
		Provider:     "twitter",
		Title:        title,
		BodyMarkdown: md,
		Metadata: map[string]any{
			"author":   parsed.Tweet.Author.ScreenName,
			"likes":    parsed.Tweet.Likes,
			"retweets": parsed.Tweet.Retweets,
			"replies":  parsed.Tweet.Replies,
		},
	}, nil
}

func renderTweetMarkdown(t fxTweet, body string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", strings.TrimSpace(body))
	if t.Tweet.CreatedAt != "" {
		fmt.Fprintf(&sb, "_%s_\n\n", t.Tweet.CreatedAt)
	}
	fmt.Fprintf(&sb, "❤ %s · 🔁 %s · 💬 %s\n",
		strconv.Itoa(t.Tweet.Likes), strconv.Itoa(t.Tweet.Retweets), strconv.Itoa(t.Tweet.Replies))
	return sb.String()
}
