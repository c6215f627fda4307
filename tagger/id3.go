package tagger

import (
	"fmt"
	"strconv"

	"github.com/bogem/id3v2/v2"

	"github.com/alanbriolat/songdl"
)

var id3Frames = map[Field]string{
	FieldTitle:       "TIT2",
	FieldArtist:      "TPE1",
	FieldAlbumArtist: "TPE2",
	FieldAlbum:       "TALB",
	FieldTrackNumber: "TRCK",
	FieldGenre:       "TCON",
}

type id3Container struct {
	tag *id3v2.Tag
}

func openID3(path string) (Container, error) {
	t, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, songdl.NewError(songdl.ErrFileFormat, "open", fmt.Errorf("failed to parse ID3 tag: %w", err))
	}
	return &id3Container{tag: t}, nil
}

func (c *id3Container) SetText(field Field, value string) {
	id, ok := id3Frames[field]
	if !ok {
		return
	}
	if value == "" {
		c.tag.DeleteFrames(id)
	} else {
		c.tag.AddTextFrame(id, c.tag.DefaultEncoding(), value)
	}
}

func (c *id3Container) SetNumber(field Field, value int) {
	if field == FieldYear {
		// TYER or TDRC depending on tag version
		c.tag.SetYear(strconv.Itoa(value))
	} else {
		c.SetText(field, strconv.Itoa(value))
	}
}

func (c *id3Container) Save() error {
	return c.tag.Save()
}

func (c *id3Container) Close() error {
	return c.tag.Close()
}
