package songdl

import (
	"context"
	"fmt"
)

// A Locator finds the URL of a video for a song.
type Locator interface {
	Locate(ctx context.Context, q SongQuery) (string, error)
}

// A Fetcher downloads the audio of a video into a directory, returning the path of the new file.
type Fetcher interface {
	Fetch(ctx context.Context, url string, dir string) (string, error)
}

// A Tagger writes metadata into an audio file.
type Tagger interface {
	TagMetadata(path string, m Metadata) error
}

// A Request is everything needed for a single run of the Pipeline.
type Request struct {
	Query     SongQuery
	Directory string
	Metadata  Metadata
}

type Result struct {
	URL    string
	Path   string
	Tagged bool
}

// Hooks are optional callbacks for following a Pipeline run as it happens.
type Hooks struct {
	OnLocated func(url string)
	OnFetched func(path string)
	OnTagged  func(path string)
}

// Pipeline runs Locator, Fetcher and (if not nil) Tagger one after another. Errors are returned as soon as they
// happen, along with whatever part of the Result was already known.
type Pipeline struct {
	Locator Locator
	Fetcher Fetcher
	Tagger  Tagger
}

func (p *Pipeline) Run(ctx context.Context, req Request, hooks Hooks) (Result, error) {
	var result Result
	log := Logger(ctx).Sugar()

	log.Debugf("locating %#v", req.Query)
	url, err := p.Locator.Locate(ctx, req.Query)
	if err != nil {
		return result, fmt.Errorf("locate failed: %w", err)
	}
	result.URL = url
	if hooks.OnLocated != nil {
		hooks.OnLocated(url)
	}

	log.Debugf("fetching %v into %v", url, req.Directory)
	path, err := p.Fetcher.Fetch(ctx, url, req.Directory)
	if err != nil {
		return result, fmt.Errorf("fetch failed: %w", err)
	}
	result.Path = path
	if hooks.OnFetched != nil {
		hooks.OnFetched(path)
	}

	if p.Tagger == nil {
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}
	log.Debugf("tagging %v with %#v", path, req.Metadata)
	if err := p.Tagger.TagMetadata(path, req.Metadata); err != nil {
		return result, fmt.Errorf("tagging failed: %w", err)
	}
	result.Tagged = true
	if hooks.OnTagged != nil {
		hooks.OnTagged(path)
	}
	return result, nil
}
