package tagger

import (
	"fmt"

	"github.com/zhaarey/go-mp4tag"

	"github.com/alanbriolat/songdl"
)

// Names understood by mp4tag's delete list.
var mp4DeleteNames = map[Field]string{
	FieldTitle:       "title",
	FieldArtist:      "artist",
	FieldAlbumArtist: "albumartist",
	FieldAlbum:       "album",
	FieldYear:        "year",
	FieldTrackNumber: "tracknumber",
	FieldGenre:       "customgenre",
}

type mp4Container struct {
	mp4     *mp4tag.MP4
	tags    mp4tag.MP4Tags
	deletes []string
}

func openMP4(path string) (Container, error) {
	m, err := mp4tag.Open(path)
	if err != nil {
		return nil, songdl.NewError(songdl.ErrFileFormat, "open", fmt.Errorf("failed to parse MP4 container: %w", err))
	}
	return &mp4Container{mp4: m}, nil
}

func (c *mp4Container) SetText(field Field, value string) {
	if value == "" {
		if name, ok := mp4DeleteNames[field]; ok {
			c.deletes = append(c.deletes, name)
		}
		return
	}
	switch field {
	case FieldTitle:
		c.tags.Title = value
	case FieldArtist:
		c.tags.Artist = value
	case FieldAlbumArtist:
		c.tags.AlbumArtist = value
	case FieldAlbum:
		c.tags.Album = value
	case FieldGenre:
		c.tags.CustomGenre = value
	}
}

func (c *mp4Container) SetNumber(field Field, value int) {
	switch field {
	case FieldYear:
		c.tags.Year = int32(value)
	case FieldTrackNumber:
		c.tags.TrackNumber = int16(value)
	}
}

func (c *mp4Container) Save() error {
	return c.mp4.Write(&c.tags, c.deletes)
}

func (c *mp4Container) Close() error {
	return c.mp4.Close()
}
