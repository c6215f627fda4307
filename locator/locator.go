package locator

import (
	"context"
	"net/url"
	"strings"

	"github.com/alanbriolat/songdl"
	"github.com/alanbriolat/songdl/generic"
	"github.com/alanbriolat/songdl/provider/youtube"
)

const siteRestriction = "site:youtube.com"

var webSchemes = generic.NewSet("http", "https")

// BuildQuery restricts a search for the song to youtube.com. Title, artist and the restriction are always
// separated by single spaces, even if the artist is empty.
func BuildQuery(q songdl.SongQuery) string {
	return q.Title + " " + q.Artist + " " + siteRestriction
}

// A Searcher runs a web search, returning result URLs in ranked order.
type Searcher interface {
	Search(ctx context.Context, query string) ([]string, error)
}

// Locator implements songdl.Locator: it takes the top search result that is on the video platform.
type Locator struct {
	Searcher Searcher
	// Accept reports whether a result URL is usable; defaults to IsVideoURL.
	Accept func(u *url.URL) bool
}

func New(s Searcher) *Locator {
	return &Locator{Searcher: s, Accept: IsVideoURL}
}

func (l *Locator) Locate(ctx context.Context, q songdl.SongQuery) (string, error) {
	if q.Title == "" {
		return "", songdl.Errorf(songdl.ErrInvalidInput, "locate", "title cannot be empty")
	}
	query := BuildQuery(q)
	songdl.Logger(ctx).Sugar().Named("locator").Debugf("searching for %#v", query)
	results, err := l.Searcher.Search(ctx, query)
	if err != nil {
		return "", err
	}
	accept := l.Accept
	if accept == nil {
		accept = IsVideoURL
	}
	for _, result := range results {
		if parsed, err := url.Parse(result); err == nil && accept(parsed) {
			return result, nil
		}
	}
	return "", songdl.Errorf(songdl.ErrNotFound, "locate", "no result for %#v", query)
}

// IsYouTubeURL is true for http(s) URLs on youtube.com or any of its subdomains.
func IsYouTubeURL(u *url.URL) bool {
	if !webSchemes.Contains(u.Scheme) {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == "youtube.com" || strings.HasSuffix(host, ".youtube.com")
}

// IsVideoURL is true for YouTube URLs that the fetcher will also accept.
func IsVideoURL(u *url.URL) bool {
	return IsYouTubeURL(u) && youtube.ValidateURL(u.String()) == nil
}
