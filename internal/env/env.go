// Package env wires the configured components together for the command-line and graphical front ends.
package env

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/alanbriolat/songdl"
	"github.com/alanbriolat/songdl/internal/job"
	"github.com/alanbriolat/songdl/locator"
	"github.com/alanbriolat/songdl/provider/youtube"
	"github.com/alanbriolat/songdl/tagger"
)

type Env interface {
	Context() context.Context
	Logger() *zap.Logger
	Config() songdl.Config
	Pipeline() songdl.Pipeline
	Runner() *job.Runner
	Close()
}

type env struct {
	ctx      context.Context
	cancel   context.CancelFunc
	log      *zap.Logger
	config   songdl.Config
	pipeline songdl.Pipeline
	runner   *job.Runner
}

func (e *env) Context() context.Context {
	return e.ctx
}

func (e *env) Logger() *zap.Logger {
	return e.log
}

func (e *env) Config() songdl.Config {
	return e.config
}

func (e *env) Pipeline() songdl.Pipeline {
	return e.pipeline
}

func (e *env) Runner() *job.Runner {
	return e.runner
}

// Close cancels any running job and waits for it to stop.
func (e *env) Close() {
	e.runner.Cancel()
	<-e.runner.Idle()
	e.cancel()
}

type EnvBuilder interface {
	Build() (Env, error)
	Context(ctx context.Context) EnvBuilder
	Logger(l *zap.Logger) EnvBuilder
	Config(c songdl.Config) EnvBuilder
	// Searcher replaces the web search used to locate songs.
	Searcher(s locator.Searcher) EnvBuilder
	// Fetcher replaces the video platform download.
	Fetcher(f songdl.Fetcher) EnvBuilder
}

type envBuilder struct {
	env
	searcher locator.Searcher
	fetcher  songdl.Fetcher
}

func NewEnvBuilder() EnvBuilder {
	b := &envBuilder{
		env: env{
			ctx:    context.Background(),
			log:    zap.L(),
			config: songdl.DefaultConfig,
		},
	}
	return b
}

func (b *envBuilder) Build() (Env, error) {
	if b.config.ProgressUpdateInterval < 0 {
		return nil, fmt.Errorf("progress update interval cannot be negative")
	}

	env := b.env
	env.ctx, env.cancel = context.WithCancel(songdl.WithLogger(b.ctx, b.log))

	searcher := b.searcher
	if searcher == nil {
		searcher = &locator.DuckDuckGo{
			Endpoint:  env.config.SearchURL,
			UserAgent: env.config.UserAgent,
			Client:    &http.Client{Timeout: env.config.SearchTimeout},
		}
	}
	env.pipeline.Locator = locator.New(searcher)

	if b.fetcher != nil {
		env.pipeline.Fetcher = b.fetcher
	} else {
		env.pipeline.Fetcher = youtube.New()
	}

	if env.config.EnableTagging {
		env.pipeline.Tagger = tagger.New()
	}

	env.runner = job.NewRunner(env.pipeline, env.config.ProgressUpdateInterval)
	env.log.Sugar().Debugf("built environment with config %+v", env.config)
	return &env, nil
}

func (b *envBuilder) Context(ctx context.Context) EnvBuilder {
	b.ctx = ctx
	return b
}

func (b *envBuilder) Logger(l *zap.Logger) EnvBuilder {
	b.log = l
	return b
}

func (b *envBuilder) Config(c songdl.Config) EnvBuilder {
	b.config = c
	return b
}

func (b *envBuilder) Searcher(s locator.Searcher) EnvBuilder {
	b.searcher = s
	return b
}

func (b *envBuilder) Fetcher(f songdl.Fetcher) EnvBuilder {
	b.fetcher = f
	return b
}
