package tagger

import (
	"errors"
	"os"
	"strconv"

	"github.com/dhowden/tag"

	"github.com/alanbriolat/songdl"
)

// Read gets the current tag values of the file at path. A file with no tags at all gives empty Metadata.
func Read(path string) (songdl.Metadata, error) {
	var m songdl.Metadata
	f, err := os.Open(path)
	if err != nil {
		return m, songdl.NewError(songdl.ErrIO, "read", err)
	}
	defer f.Close()

	md, err := tag.ReadFrom(f)
	if errors.Is(err, tag.ErrNoTagsFound) {
		return m, nil
	} else if err != nil {
		return m, songdl.NewError(songdl.ErrFileFormat, "read", err)
	}
	m.Title = md.Title()
	m.ContributingArtists = md.Artist()
	m.AlbumArtist = md.AlbumArtist()
	m.Album = md.Album()
	if year := md.Year(); year != 0 {
		m.Year = strconv.Itoa(year)
	}
	if track, _ := md.Track(); track != 0 {
		m.TrackNumber = strconv.Itoa(track)
	}
	m.Genre = md.Genre()
	return m, nil
}
