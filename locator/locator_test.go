package locator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	assert_ "github.com/stretchr/testify/assert"

	"github.com/alanbriolat/songdl"
)

type fakeSearcher struct {
	results []string
	err     error
	queries []string
}

func (s *fakeSearcher) Search(_ context.Context, query string) ([]string, error) {
	s.queries = append(s.queries, query)
	return s.results, s.err
}

func TestBuildQuery(t *testing.T) {
	assert := assert_.New(t)
	assert.Equal("Bohemian Rhapsody Queen site:youtube.com", BuildQuery(songdl.SongQuery{Title: "Bohemian Rhapsody", Artist: "Queen"}))
	assert.Equal("Yesterday  site:youtube.com", BuildQuery(songdl.SongQuery{Title: "Yesterday"}))

	for _, q := range []songdl.SongQuery{
		{Title: "a", Artist: "b"},
		{Title: "Don't Stop Me Now", Artist: ""},
		{Title: "  spaced  ", Artist: "AC/DC"},
	} {
		assert.Contains(BuildQuery(q), fmt.Sprintf("%s %s site:youtube.com", q.Title, q.Artist))
	}
}

func TestLocate_EmptyTitle(t *testing.T) {
	assert := assert_.New(t)
	s := &fakeSearcher{results: []string{"https://www.youtube.com/watch?v=abc"}}
	l := New(s)
	for _, artist := range []string{"", "Queen", "site:youtube.com"} {
		_, err := l.Locate(context.Background(), songdl.SongQuery{Artist: artist})
		assert.ErrorIs(err, songdl.ErrInvalidInput)
	}
	assert.Empty(s.queries, "no search should happen for an empty title")
}

func TestLocate(t *testing.T) {
	assert := assert_.New(t)
	s := &fakeSearcher{results: []string{
		"https://en.wikipedia.org/wiki/Bohemian_Rhapsody",
		"https://www.youtube.com/watch?v=fJ9rUzIMcZQ",
		"https://www.youtube.com/watch?v=other",
	}}
	l := New(s)
	result, err := l.Locate(context.Background(), songdl.SongQuery{Title: "Bohemian Rhapsody", Artist: "Queen"})
	assert.NoError(err)
	assert.Equal("https://www.youtube.com/watch?v=fJ9rUzIMcZQ", result)
	assert.Equal([]string{"Bohemian Rhapsody Queen site:youtube.com"}, s.queries)
}

func TestLocate_SkipsNonVideoPages(t *testing.T) {
	assert := assert_.New(t)
	s := &fakeSearcher{results: []string{
		"https://m.youtube.com/watch?v=a",
		"https://www.youtube.com/channel/abc",
		"https://www.youtube.com/watch?v=fJ9rUzIMcZQ",
	}}
	result, err := New(s).Locate(context.Background(), songdl.SongQuery{Title: "Bohemian Rhapsody"})
	assert.NoError(err)
	assert.Equal("https://www.youtube.com/watch?v=fJ9rUzIMcZQ", result)

	result, err = (&Locator{Searcher: s}).Locate(context.Background(), songdl.SongQuery{Title: "Bohemian Rhapsody"})
	assert.NoError(err)
	assert.Equal("https://www.youtube.com/watch?v=fJ9rUzIMcZQ", result)
}

func TestLocate_NotFound(t *testing.T) {
	assert := assert_.New(t)
	l := New(&fakeSearcher{results: []string{"https://example.com/watch?v=abc", "::not a url"}})
	_, err := l.Locate(context.Background(), songdl.SongQuery{Title: "x"})
	assert.ErrorIs(err, songdl.ErrNotFound)

	l = New(&fakeSearcher{})
	_, err = l.Locate(context.Background(), songdl.SongQuery{Title: "x"})
	assert.ErrorIs(err, songdl.ErrNotFound)
}

func TestLocate_PropagatesSearchError(t *testing.T) {
	assert := assert_.New(t)
	searchErr := errors.New("boom")
	l := New(&fakeSearcher{err: searchErr})
	_, err := l.Locate(context.Background(), songdl.SongQuery{Title: "x"})
	assert.Equal(searchErr, err)
}

func TestIsYouTubeURL(t *testing.T) {
	assert := assert_.New(t)
	for s, expected := range map[string]bool{
		"https://www.youtube.com/watch?v=abc": true,
		"https://youtube.com/watch?v=abc":     true,
		"http://m.youtube.com/watch?v=abc":    true,
		"https://notyoutube.com/watch?v=abc":  false,
		"https://youtube.com.evil.org/":       false,
		"ftp://www.youtube.com/":              false,
	} {
		u, err := url.Parse(s)
		assert.NoError(err)
		assert.Equal(expected, IsYouTubeURL(u), s)
	}
}

const resultsPage = `<html><body>
<div class="result"><a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.youtube.com%2Fwatch%3Fv%3DfJ9rUzIMcZQ&amp;rut=abc">Queen - Bohemian Rhapsody</a></div>
<div class="result"><a class="result__a" href="https://www.youtube.com/watch?v=second">Second</a></div>
<div class="result"><a class="result__snippet" href="https://www.youtube.com/watch?v=snippet">Snippet</a></div>
</body></html>`

func TestDuckDuckGo_Search(t *testing.T) {
	assert := assert_.New(t)
	var gotQuery, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(resultsPage))
	}))
	defer server.Close()

	d := &DuckDuckGo{Endpoint: server.URL + "/html/", UserAgent: "songdl-test", Client: server.Client()}
	results, err := d.Search(context.Background(), "Bohemian Rhapsody Queen site:youtube.com")
	assert.NoError(err)
	assert.Equal([]string{
		"https://www.youtube.com/watch?v=fJ9rUzIMcZQ",
		"https://www.youtube.com/watch?v=second",
	}, results)
	assert.Equal("Bohemian Rhapsody Queen site:youtube.com", gotQuery)
	assert.Equal("songdl-test", gotAgent)
}

func TestDuckDuckGo_Errors(t *testing.T) {
	assert := assert_.New(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	d := &DuckDuckGo{Endpoint: server.URL, Client: server.Client()}
	_, err := d.Search(context.Background(), "anything")
	assert.ErrorIs(err, songdl.ErrNetwork)

	// Nothing listening any more
	server.Close()
	_, err = d.Search(context.Background(), "anything")
	assert.ErrorIs(err, songdl.ErrNetwork)
}

func TestLocate_DuckDuckGo(t *testing.T) {
	assert := assert_.New(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(resultsPage))
	}))
	defer server.Close()

	l := New(&DuckDuckGo{Endpoint: server.URL, Client: server.Client()})
	result, err := l.Locate(context.Background(), songdl.SongQuery{Title: "Bohemian Rhapsody", Artist: "Queen"})
	assert.NoError(err)
	assert.Equal("https://www.youtube.com/watch?v=fJ9rUzIMcZQ", result)
}

func TestIsVideoURL(t *testing.T) {
	assert := assert_.New(t)
	for s, expected := range map[string]bool{
		"https://www.youtube.com/watch?v=abc":          true,
		"https://www.youtube.com/channel/abc":          false,
		"https://m.youtube.com/watch?v=abc":            false,
		"https://www.youtube.com.evil.org/watch?v=abc": false,
		"ftp://www.youtube.com/watch?v=abc":            false,
	} {
		u, err := url.Parse(s)
		assert.NoError(err)
		assert.Equal(expected, IsVideoURL(u), s)
	}
}
