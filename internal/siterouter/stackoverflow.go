package siterouter

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/MikkoParkkola/nab/model"
)

var soQuestionPathRE = regexp.MustCompile(`^/questions/(\d+)`)

type stackOverflowProvider struct{}

func (stackOverflowProvider) Name() string { return "stackoverflow" }

func (stackOverflowProvider) Matches(u *url.URL) bool {
	if !hostMatches(u, "stackoverflow.com") {
		return false
	}
	return soQuestionPathRE.MatchString(u.Path)
}

type soResponse struct {
	Items []struct {
		Title        string `json:"title"`
		Body         string `json:"body"`
		Score        int    `json:"score"`
		AnswerCount  int    `json:"answer_count"`
		IsAnswered   bool   `json:"is_answered"`
		Owner        struct {
			DisplayName string `json:"display_name"`
		} `json:"owner"`
	} `json:"items"`
}

// Extract calls the public Stack Exchange API for the question body, and
// decodes HTML entities in the body per spec.md §4.3's table note (the API
// returns body_markdown-less HTML with entities like "&quot;" intact).
func (stackOverflowProvider) Extract(ctx context.Context, client *http.Client, u *url.URL) (*model.SiteContent, error) {
	m := soQuestionPathRE.FindStringSubmatch(u.Path)
	if m == nil {
		return nil, fmt.Errorf("siterouter: stackoverflow: url does not match question path")
	}
	api := fmt.Sprintf("https://api.stackexchange.com/2.3/questions/%s?site=stackoverflow&filter=withbody", m[1])

	var resp soResponse
	if err := getJSON(ctx, client, api, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("siterouter: stackoverflow: question not found")
	}
	q := resp.Items[0]
	body := html.UnescapeString(q.Body)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", q.Title)
	fmt.Fprintf(&sb, "Asked by %s · Score: %d · Answers: %d\n\n", q.Owner.DisplayName, q.Score, q.AnswerCount)
	sb.WriteString(body)

	return &model.SiteContent{
		Provider:     "stackoverflow",
		Title:        q.Title,
		BodyMarkdown: sb.String(),
		Metadata: map[string]any{
			"score":        q.Score,
			"answer_count": q.AnswerCount,
			"is_answered":  q.IsAnswered,
			"author":       q.Owner.DisplayName,
		},
	}, nil
}
