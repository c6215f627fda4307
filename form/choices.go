package form

import (
	"strconv"
	"time"
)

var genres = [...]string{
	"Alternative", "Anime", "Blues", "Children's", "Classical", "Comedy", "Commercial", "Country", "Dance",
	"Easy Listening", "Electronic", "Enka", "French Pop", "Folk", "German Pop", "Fitness/Workout", "Hip-Hop/Rap",
	"Holiday", "Indie Pop", "Industrial", "Inspirational", "Instrumental", "J-Pop", "Jazz", "K-Pop", "Karaoke",
	"Kayokyoku", "Latin", "Metal", "New Age", "Opera", "Pop", "Post-Disco", "Progressive", "R&B/Soul", "Reggae",
	"Rock", "Singer/Songwriter", "Soundtrack", "Spoken Word", "Tex-Mex/Tejano", "Vocal", "World",
}

const (
	yearChoiceSpan = 50
	maxTrackNumber = 50
)

// Genres returns the suggested genres; the slice is a copy.
func Genres() []string {
	out := make([]string, len(genres))
	copy(out, genres[:])
	return out
}

// YearChoices is the current year and the 50 before it, oldest first.
func YearChoices(now time.Time) []string {
	current := now.Year()
	out := make([]string, 0, yearChoiceSpan+1)
	for y := current - yearChoiceSpan; y <= current; y++ {
		out = append(out, strconv.Itoa(y))
	}
	return out
}

// TrackNumberChoices is 1 to 50.
func TrackNumberChoices() []string {
	out := make([]string, 0, maxTrackNumber)
	for n := 1; n <= maxTrackNumber; n++ {
		out = append(out, strconv.Itoa(n))
	}
	return out
}
