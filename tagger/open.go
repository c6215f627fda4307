package tagger

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"

	"github.com/alanbriolat/songdl"
)

type containerKind int

const (
	kindUnknown containerKind = iota
	kindMP4
	kindID3
)

// Open finds the tag container format of the file at path and opens it. The file contents are sniffed first; the
// extension is only used for files that carry no recognisable header, such as an MP3 with no tags yet.
func Open(path string) (Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, songdl.NewError(songdl.ErrIO, "open", err)
	}
	format, _, identifyErr := tag.Identify(f)
	_ = f.Close()

	switch detectKind(format, identifyErr, filepath.Ext(path)) {
	case kindMP4:
		return openMP4(path)
	case kindID3:
		return openID3(path)
	default:
		return nil, songdl.Errorf(songdl.ErrFileFormat, "open", "cannot tag %v", path)
	}
}

func detectKind(format tag.Format, identifyErr error, ext string) containerKind {
	if identifyErr == nil {
		switch format {
		case tag.MP4:
			return kindMP4
		case tag.ID3v1, tag.ID3v2_2, tag.ID3v2_3, tag.ID3v2_4:
			return kindID3
		case tag.UnknownFormat:
		default:
			// Recognised, but not something we can write
			return kindUnknown
		}
	}
	switch strings.ToLower(ext) {
	case ".m4a", ".m4b", ".mp4":
		return kindMP4
	case ".mp3":
		return kindID3
	default:
		return kindUnknown
	}
}
