package locator

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/alanbriolat/songdl"
)

const DefaultDuckDuckGoURL = "https://html.duckduckgo.com/html/"

// DuckDuckGo searches using the JavaScript-free HTML endpoint, which needs no API key.
type DuckDuckGo struct {
	// Endpoint defaults to DefaultDuckDuckGoURL.
	Endpoint  string
	UserAgent string
	Client    *http.Client
}

func (d *DuckDuckGo) Search(ctx context.Context, query string) ([]string, error) {
	endpoint := d.Endpoint
	if endpoint == "" {
		endpoint = DefaultDuckDuckGoURL
	}
	reqURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, songdl.NewError(songdl.ErrInvalidInput, "search", err)
	}
	params := reqURL.Query()
	params.Set("q", query)
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, songdl.NewError(songdl.ErrInvalidInput, "search", err)
	}
	if d.UserAgent != "" {
		req.Header.Set("User-Agent", d.UserAgent)
	}
	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, songdl.NewError(songdl.ErrNetwork, "search", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, songdl.Errorf(songdl.ErrNetwork, "search", "unexpected status %v", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, songdl.NewError(songdl.ErrNetwork, "search", fmt.Errorf("failed to parse results: %w", err))
	}
	var results []string
	doc.Find("a.result__a").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			if target := resultTarget(href); target != "" {
				results = append(results, target)
			}
		}
	})
	return results, nil
}

// resultTarget unwraps DuckDuckGo's click-tracking redirect (//duckduckgo.com/l/?uddg=...) if present.
func resultTarget(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if strings.HasSuffix(u.Hostname(), "duckduckgo.com") && strings.HasPrefix(u.Path, "/l/") {
		return u.Query().Get("uddg")
	}
	if u.Scheme == "" {
		return ""
	}
	return u.String()
}
