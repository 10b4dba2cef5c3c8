package siterouter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// oembedResponse holds the subset of the oEmbed spec (http://oembed.com/)
// this package cares about, matching the fields Doist-unfurlist's
// oembed_parser.go reads off github.com/artyom/oembed's Info struct.
type oembedResponse struct {
	Type         string `json:"type"`
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ProviderName string `json:"provider_name"`
	HTML         string `json:"html"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// fetchOembed calls an oEmbed endpoint directly, rather than importing
// artyom/oembed's provider-discovery machinery (that module is
// teacher-vendor-local and keys off a bundled providers.json this repo
// doesn't need, since each provider here already knows its own endpoint).
func fetchOembed(ctx context.Context, client *http.Client, endpoint string, targetURL string) (*oembedResponse, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("siterouter: parse oembed endpoint: %w", err)
	}
	q := u.Query()
	q.Set("url", targetURL)
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("siterouter: oembed request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("siterouter: oembed endpoint returned %s", resp.Status)
	}
	var out oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("siterouter: decode oembed response: %w", err)
	}
	return &out, nil
}

func getJSON(ctx context.Context, client *http.Client, rawURL string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("siterouter: request %s: %w", rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("siterouter: %s returned %s", rawURL, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeJSONBody(resp *http.Response, out any) error {
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("siterouter: decode response body: %w", err)
	}
	return nil
}
