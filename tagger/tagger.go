package tagger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/alanbriolat/songdl"
)

// A Field is one of the tag keys this program knows how to write.
type Field string

const (
	FieldTitle       Field = "title"
	FieldArtist      Field = "artist"
	FieldAlbumArtist Field = "album artist"
	FieldAlbum       Field = "album"
	FieldYear        Field = "year"
	FieldTrackNumber Field = "track number"
	FieldGenre       Field = "genre"
)

// A Container is an open tag container of an audio file. Nothing reaches the file until Save.
type Container interface {
	// SetText assigns a text field; an empty value clears it.
	SetText(field Field, value string)
	SetNumber(field Field, value int)
	Save() error
	Close() error
}

// Tagger implements songdl.Tagger using Open to find the right Container.
type Tagger struct {
	Open func(path string) (Container, error)
}

func New() *Tagger {
	return &Tagger{Open: Open}
}

func (t *Tagger) TagMetadata(path string, m songdl.Metadata) error {
	open := t.Open
	if open == nil {
		open = Open
	}
	return TagMetadata(open, path, m)
}

// TagMetadata writes m into the file at path. Year and track number are only written if not empty, and must be
// integers; both are checked before the file is opened. Everything is saved at once.
func TagMetadata(open func(string) (Container, error), path string, m songdl.Metadata) (err error) {
	year, track, err := parseNumbers(m)
	if err != nil {
		return err
	}

	c, err := open(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := c.Close(); closeErr != nil && err == nil {
			err = songdl.NewError(songdl.ErrIO, "tag", closeErr)
		}
	}()

	c.SetText(FieldTitle, m.Title)
	c.SetText(FieldArtist, m.ContributingArtists)
	c.SetText(FieldAlbumArtist, m.AlbumArtist)
	c.SetText(FieldAlbum, m.Album)
	if year != nil {
		c.SetNumber(FieldYear, *year)
	}
	if track != nil {
		c.SetNumber(FieldTrackNumber, *track)
	}
	c.SetText(FieldGenre, m.Genre)

	if err := c.Save(); err != nil {
		return songdl.NewError(songdl.ErrIO, "tag", fmt.Errorf("failed to save %v: %w", path, err))
	}
	return nil
}

// parseNumbers converts the year and track number, returning nil for each that is empty.
func parseNumbers(m songdl.Metadata) (year *int, track *int, err error) {
	var result error
	parse := func(field Field, s string) *int {
		if s == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%v: %w", field, err))
			return nil
		}
		return &n
	}
	year = parse(FieldYear, m.Year)
	track = parse(FieldTrackNumber, m.TrackNumber)
	if result != nil {
		return nil, nil, songdl.NewError(songdl.ErrValueConversion, "tag", result)
	}
	return year, track, nil
}
