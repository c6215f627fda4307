package tagger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dhowden/tag"
	assert_ "github.com/stretchr/testify/assert"

	"github.com/alanbriolat/songdl"
)

type fakeContainer struct {
	text    map[Field]string
	numbers map[Field]int
	saves   int
	closed  bool
	saveErr error
}

func newFakeContainer() *fakeContainer {
	return &fakeContainer{text: make(map[Field]string), numbers: make(map[Field]int)}
}

func (c *fakeContainer) SetText(field Field, value string) {
	c.text[field] = value
}

func (c *fakeContainer) SetNumber(field Field, value int) {
	c.numbers[field] = value
}

func (c *fakeContainer) Save() error {
	c.saves++
	return c.saveErr
}

func (c *fakeContainer) Close() error {
	c.closed = true
	return nil
}

func openFake(c *fakeContainer) func(string) (Container, error) {
	return func(string) (Container, error) {
		return c, nil
	}
}

func TestTagMetadata_EmptyFields(t *testing.T) {
	assert := assert_.New(t)
	c := newFakeContainer()
	err := TagMetadata(openFake(c), "song.m4a", songdl.Metadata{})
	assert.NoError(err)
	// Text fields are always written, even empty
	assert.Equal(map[Field]string{
		FieldTitle:       "",
		FieldArtist:      "",
		FieldAlbumArtist: "",
		FieldAlbum:       "",
		FieldGenre:       "",
	}, c.text)
	// Numbers are skipped when empty
	assert.Empty(c.numbers)
	assert.Equal(1, c.saves)
	assert.True(c.closed)
}

func TestTagMetadata_AllFields(t *testing.T) {
	assert := assert_.New(t)
	c := newFakeContainer()
	err := TagMetadata(openFake(c), "song.m4a", songdl.Metadata{
		Title:               "Bohemian Rhapsody",
		ContributingArtists: "Freddie Mercury",
		AlbumArtist:         "Queen",
		Album:               "A Night at the Opera",
		Year:                "1975",
		TrackNumber:         "11",
		Genre:               "Rock",
	})
	assert.NoError(err)
	assert.Equal("Bohemian Rhapsody", c.text[FieldTitle])
	assert.Equal("Freddie Mercury", c.text[FieldArtist])
	assert.Equal("Queen", c.text[FieldAlbumArtist])
	assert.Equal("A Night at the Opera", c.text[FieldAlbum])
	assert.Equal("Rock", c.text[FieldGenre])
	assert.Equal(map[Field]int{FieldYear: 1975, FieldTrackNumber: 11}, c.numbers)
}

func TestTagMetadata_YearOnly(t *testing.T) {
	assert := assert_.New(t)
	c := newFakeContainer()
	assert.NoError(TagMetadata(openFake(c), "song.m4a", songdl.Metadata{Year: "2023"}))
	assert.Equal(map[Field]int{FieldYear: 2023}, c.numbers)
}

func TestTagMetadata_ValueConversion(t *testing.T) {
	assert := assert_.New(t)
	opened := false
	open := func(string) (Container, error) {
		opened = true
		return newFakeContainer(), nil
	}
	err := TagMetadata(open, "song.m4a", songdl.Metadata{Year: "nineteen", TrackNumber: "two"})
	assert.ErrorIs(err, songdl.ErrValueConversion)
	assert.Contains(err.Error(), "year")
	assert.Contains(err.Error(), "track number")
	assert.False(opened, "file should not be opened when values are invalid")

	err = TagMetadata(open, "song.m4a", songdl.Metadata{TrackNumber: "3/12"})
	assert.ErrorIs(err, songdl.ErrValueConversion)
}

func TestTagMetadata_SaveError(t *testing.T) {
	assert := assert_.New(t)
	c := newFakeContainer()
	c.saveErr = errors.New("disk full")
	err := TagMetadata(openFake(c), "song.m4a", songdl.Metadata{Title: "x"})
	assert.ErrorIs(err, songdl.ErrIO)
	assert.True(c.closed)
}

func TestOpen_Unrecognised(t *testing.T) {
	assert := assert_.New(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "notes.txt")
	assert.NoError(os.WriteFile(path, []byte("this is not an audio file at all, not even slightly"), 0644))
	_, err := Open(path)
	assert.ErrorIs(err, songdl.ErrFileFormat)

	err = New().TagMetadata(path, songdl.Metadata{Title: "x"})
	assert.ErrorIs(err, songdl.ErrFileFormat)

	_, err = Open(filepath.Join(dir, "missing.mp3"))
	assert.ErrorIs(err, songdl.ErrIO)
}

func TestDetectKind(t *testing.T) {
	assert := assert_.New(t)
	assert.Equal(kindMP4, detectKind(tag.MP4, nil, ".bin"))
	assert.Equal(kindID3, detectKind(tag.ID3v2_4, nil, ".m4a"))
	assert.Equal(kindUnknown, detectKind(tag.VORBIS, nil, ".mp3"))
	assert.Equal(kindMP4, detectKind(tag.UnknownFormat, tag.ErrNoTagsFound, ".M4A"))
	assert.Equal(kindID3, detectKind(tag.UnknownFormat, tag.ErrNoTagsFound, ".mp3"))
	assert.Equal(kindUnknown, detectKind(tag.UnknownFormat, tag.ErrNoTagsFound, ".wav"))
}

// An MP3 with no existing tag is enough for the ID3 backend, so it can be round-tripped without fixtures.
func writeBareMP3(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "song.mp3")
	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(i % 251)
	}
	assert_.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestTagMetadata_ID3RoundTrip(t *testing.T) {
	assert := assert_.New(t)
	path := writeBareMP3(t)
	tagger := New()

	assert.NoError(tagger.TagMetadata(path, songdl.Metadata{
		Title:               "Bohemian Rhapsody",
		ContributingArtists: "Freddie Mercury",
		AlbumArtist:         "Queen",
		Album:               "A Night at the Opera",
		Year:                "2023",
		TrackNumber:         "",
		Genre:               "Rock",
	}))
	m, err := Read(path)
	assert.NoError(err)
	assert.Equal(songdl.Metadata{
		Title:               "Bohemian Rhapsody",
		ContributingArtists: "Freddie Mercury",
		AlbumArtist:         "Queen",
		Album:               "A Night at the Opera",
		Year:                "2023",
		TrackNumber:         "",
		Genre:               "Rock",
	}, m)

	// Empty year and track leave the previous values, empty text clears
	assert.NoError(tagger.TagMetadata(path, songdl.Metadata{TrackNumber: "7"}))
	m, err = Read(path)
	assert.NoError(err)
	assert.Equal(songdl.Metadata{Year: "2023", TrackNumber: "7"}, m)
}

func TestRead_NoTags(t *testing.T) {
	assert := assert_.New(t)
	m, err := Read(writeBareMP3(t))
	assert.NoError(err)
	assert.Equal(songdl.Metadata{}, m)
}
