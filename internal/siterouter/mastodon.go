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

// mastodonStatusPathRE matches /users/<user>/statuses/<id>, the
// ActivityPub object path shared across Mastodon instances regardless of
// domain, per spec.md §4.3's table ("*/users/*/statuses/*").
var mastodonStatusPathRE = regexp.MustCompile(`^/users/([^/]+)/statuses/(\d+)$`)

type mastodonProvider struct{}

func (mastodonProvider) Name() string { return "mastodon" }

func (mastodonProvider) Matches(u *url.URL) bool {
	return mastodonStatusPathRE.MatchString(u.Path)
}

type activityPubNote struct {
	Content      string `json:"content"`
	AttributedTo string `json:"attributedTo"`
	Published    string `json:"published"`
	Replies      struct {
		TotalItems int `json:"totalItems"`
	} `json:"replies"`
}

// Extract fetches the ActivityPub object directly, per spec.md §4.3's
// table: any Mastodon instance will serve its own status object as JSON-LD
// when asked with Accept: application/activity+json.
func (mastodonProvider) Extract(ctx context.Context, client *http.Client, u *url.URL) (*model.SiteContent, error) {
	if !mastodonStatusPathRE.MatchString(u.Path) {
		return nil, fmt.Errorf("siterouter: mastodon: url does not match status path")
	}
	objURL := fmt.Sprintf("%s://%s%s", u.Scheme, u.Host, u.Path)

	var note activityPubNote
	if err := getJSON(ctx, client, objURL, map[string]string{"Accept": "application/activity+json"}, &note); err != nil {
		return nil, err
	}
	if note.Content == "" {
		return nil, fmt.Errorf("siterouter: mastodon: empty note content")
	}

	var sb strings.Builder
	sb.WriteString(stripSimpleHTMLTags(note.Content))
	sb.WriteString("\n\n")
	if note.Published != "" {
		fmt.Fprintf(&sb, "_%s_\n", note.Published)
	}

	return &model.SiteContent{
		Provider:     "mastodon",
		Title:        "Mastodon post by " + note.AttributedTo,
		BodyMarkdown: sb.String(),
		Metadata: map[string]any{
			"author":    note.AttributedTo,
			"published": note.Published,
			"replies":   note.Replies.TotalItems,
		},
	}, nil
}

// stripSimpleHTMLTags removes the <p> wrapping and <br> tags Mastodon's
// ActivityPub "content" field commonly embeds, without pulling in a full
// HTML parser for what's normally one or two paragraph tags.
func stripSimpleHTMLTags(s string) string {
	replacer := strings.NewReplacer(
		"<p>", "", "</p>", "\n\n",
		"<br>", "\n", "<br/>", "\n", "<br />", "\n",
	)
	return strings.TrimSpace(replacer.Replace(s))
}
