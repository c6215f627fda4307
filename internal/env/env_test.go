package env

import (
	"context"
	"path/filepath"
	"testing"

	assert_ "github.com/stretchr/testify/assert"
	require_ "github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alanbriolat/songdl"
	"github.com/alanbriolat/songdl/provider/youtube"
	"github.com/alanbriolat/songdl/tagger"
)

type staticSearcher []string

func (s staticSearcher) Search(ctx context.Context, query string) ([]string, error) {
	return s, nil
}

type fetcherFunc func(ctx context.Context, url string, dir string) (string, error)

func (f fetcherFunc) Fetch(ctx context.Context, url string, dir string) (string, error) {
	return f(ctx, url, dir)
}

func TestBuild_Defaults(t *testing.T) {
	assert := assert_.New(t)
	require := require_.New(t)

	e, err := NewEnvBuilder().Build()
	require.NoError(err)
	defer e.Close()

	assert.Equal(songdl.DefaultConfig, e.Config())
	assert.IsType(&youtube.Fetcher{}, e.Pipeline().Fetcher)
	assert.IsType(&tagger.Tagger{}, e.Pipeline().Tagger)
	assert.NotNil(e.Pipeline().Locator)
	assert.False(e.Runner().Busy())
	assert.Same(zap.L(), songdl.Logger(e.Context()))
}

func TestBuild_NoTagging(t *testing.T) {
	assert := assert_.New(t)
	config := songdl.DefaultConfig
	config.EnableTagging = false
	e, err := NewEnvBuilder().Config(config).Build()
	assert.NoError(err)
	defer e.Close()
	assert.Nil(e.Pipeline().Tagger)
}

func TestBuild_InvalidConfig(t *testing.T) {
	config := songdl.DefaultConfig
	config.ProgressUpdateInterval = -1
	_, err := NewEnvBuilder().Config(config).Build()
	assert_.Error(t, err)
}

func TestBuild_Runner(t *testing.T) {
	assert := assert_.New(t)
	require := require_.New(t)

	config := songdl.DefaultConfig
	config.EnableTagging = false
	e, err := NewEnvBuilder().
		Config(config).
		Logger(zap.NewNop()).
		Searcher(staticSearcher{"https://example.com/", "https://www.youtube.com/watch?v=fJ9rUzIMcZQ"}).
		Fetcher(fetcherFunc(func(ctx context.Context, url string, dir string) (string, error) {
			return filepath.Join(dir, url[len(url)-11:]+".m4a"), nil
		})).
		Build()
	require.NoError(err)
	defer e.Close()

	_, done, err := e.Runner().Start(e.Context(), songdl.Request{
		Query:     songdl.SongQuery{Title: "Bohemian Rhapsody", Artist: "Queen"},
		Directory: "/music",
	})
	require.NoError(err)
	result, err := (<-done).Parts()
	require.NoError(err)
	assert.Equal("https://www.youtube.com/watch?v=fJ9rUzIMcZQ", result.URL)
	assert.Equal("/music/fJ9rUzIMcZQ.m4a", result.Path)
}
