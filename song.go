package songdl

// A SongQuery is what the Locator searches for. Title must not be empty; Artist may be.
type SongQuery struct {
	Title  string
	Artist string
}

// Metadata is the set of tag values to write to a downloaded file. Empty Year and TrackNumber mean "leave
// unchanged"; the other fields are always written, so empty values clear them.
type Metadata struct {
	Title               string
	ContributingArtists string
	AlbumArtist         string
	Album               string
	Year                string
	TrackNumber         string
	Genre               string
}
