// Package form holds the state of the download form, independent of how it is rendered.
package form

import (
	"sync"

	"github.com/alanbriolat/songdl"
)

const (
	RequiredPlaceholder    = "Required"
	RecommendedPlaceholder = "Recommended"
	OptionalPlaceholder    = "Optional"
	StatusPrompt           = "Fill in the below fields and then press download."
)

type Field int

const (
	Status Field = iota
	Title
	AlbumArtist
	ContributingArtists
	Album
	Year
	TrackNumber
	Genre
	FilePath
)

// Fields lists every field in display order, starting with the status line.
var Fields = []Field{Status, Title, AlbumArtist, ContributingArtists, Album, Year, TrackNumber, Genre, FilePath}

var fieldNames = map[Field]string{
	Status:              "Status",
	Title:               "Title",
	AlbumArtist:         "Album Artist",
	ContributingArtists: "Contributing Artists",
	Album:               "Album",
	Year:                "Year",
	TrackNumber:         "Track Number",
	Genre:               "Genre",
	FilePath:            "File Path",
}

func (f Field) String() string {
	return fieldNames[f]
}

// Placeholder is the value a field is reset to. FilePath has no fixed placeholder; it resets to the State's
// default directory.
func (f Field) Placeholder() string {
	switch f {
	case Status:
		return StatusPrompt
	case Title:
		return RequiredPlaceholder
	case AlbumArtist, ContributingArtists:
		return RecommendedPlaceholder
	case Album, Year, TrackNumber, Genre:
		return OptionalPlaceholder
	default:
		return ""
	}
}

// An Observer is called after a field changes, with the new value.
type Observer func(field Field, value string)

// State is the live contents of the form. It is safe to use from multiple goroutines, but observers are called on
// whichever goroutine made the change.
type State struct {
	mu         sync.RWMutex
	defaultDir string
	values     map[Field]string
	busy       bool
	observers  []Observer
	busyFuncs  []func(bool)
}

// New creates a State with every field at its placeholder and the file path at defaultDir.
func New(defaultDir string) *State {
	s := &State{
		defaultDir: defaultDir,
		values:     make(map[Field]string, len(Fields)),
	}
	for _, f := range Fields {
		s.values[f] = s.placeholder(f)
	}
	return s
}

func (s *State) placeholder(f Field) string {
	if f == FilePath {
		return s.defaultDir
	}
	return f.Placeholder()
}

// Observe registers o to be called on every field change.
func (s *State) Observe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// ObserveBusy registers f to be called whenever the busy flag changes.
func (s *State) ObserveBusy(f func(busy bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busyFuncs = append(s.busyFuncs, f)
}

func (s *State) Get(f Field) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[f]
}

// Set changes a field, notifying observers only if the value is different.
func (s *State) Set(f Field, value string) {
	s.mu.Lock()
	if s.values[f] == value {
		s.mu.Unlock()
		return
	}
	s.values[f] = value
	observers := s.observers
	s.mu.Unlock()
	for _, o := range observers {
		o(f, value)
	}
}

func (s *State) SetStatus(value string) {
	s.Set(Status, value)
}

// Reset puts the status and every field back to its placeholder.
func (s *State) Reset() {
	for _, f := range Fields {
		s.Set(f, s.placeholder(f))
	}
}

// Stripped returns the field value, or "" if it is still exactly the placeholder.
func (s *State) Stripped(f Field) string {
	value := s.Get(f)
	if value == s.placeholder(f) && f != FilePath {
		return ""
	}
	return value
}

// Query is the search for the song, using the title and album artist.
func (s *State) Query() songdl.SongQuery {
	return songdl.SongQuery{
		Title:  s.Stripped(Title),
		Artist: s.Stripped(AlbumArtist),
	}
}

// Metadata is the tags to write, with untouched placeholders treated as no value.
func (s *State) Metadata() songdl.Metadata {
	return songdl.Metadata{
		Title:               s.Stripped(Title),
		ContributingArtists: s.Stripped(ContributingArtists),
		AlbumArtist:         s.Stripped(AlbumArtist),
		Album:               s.Stripped(Album),
		Year:                s.Stripped(Year),
		TrackNumber:         s.Stripped(TrackNumber),
		Genre:               s.Stripped(Genre),
	}
}

// Request gathers everything needed to run the download.
func (s *State) Request() songdl.Request {
	return songdl.Request{
		Query:     s.Query(),
		Directory: s.Get(FilePath),
		Metadata:  s.Metadata(),
	}
}

func (s *State) Busy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.busy
}

// SetBusy changes the busy flag, returning false if it already had that value.
func (s *State) SetBusy(busy bool) bool {
	s.mu.Lock()
	if s.busy == busy {
		s.mu.Unlock()
		return false
	}
	s.busy = busy
	funcs := s.busyFuncs
	s.mu.Unlock()
	for _, f := range funcs {
		f(busy)
	}
	return true
}
