package youtube

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/kkdai/youtube/v2"

	"github.com/alanbriolat/songdl"
)

const (
	hostMarker  = "www.youtube."
	watchMarker = "/watch?v="
	// All downloads are audio/mp4, so the extension is fixed.
	Extension = ".m4a"
)

// Client is the part of *youtube.Client used by the Fetcher.
type Client interface {
	GetVideoContext(ctx context.Context, url string) (*youtube.Video, error)
	GetStreamContext(ctx context.Context, video *youtube.Video, format *youtube.Format) (io.ReadCloser, int64, error)
}

// ValidateURL only checks for the presence of a YouTube host and a watch path, not full URL grammar.
func ValidateURL(s string) error {
	if !strings.Contains(s, hostMarker) || !strings.Contains(s, watchMarker) {
		return songdl.Errorf(songdl.ErrInvalidInput, "fetch", "provided URL not a YouTube video: %#v", s)
	}
	return nil
}

// Fetcher implements songdl.Fetcher for YouTube videos.
type Fetcher struct {
	Client Client
}

func New() *Fetcher {
	return &Fetcher{Client: &youtube.Client{}}
}

func (f *Fetcher) Fetch(ctx context.Context, videoURL string, dir string) (string, error) {
	if err := ValidateURL(videoURL); err != nil {
		return "", err
	}
	log := songdl.Logger(ctx).Sugar().Named("youtube")

	video, err := f.Client.GetVideoContext(ctx, videoURL)
	if err != nil {
		return "", songdl.NewError(songdl.ErrNetwork, "fetch", fmt.Errorf("failed to get video info: %w", err))
	}
	format := SelectAudioFormat(video.Formats)
	if format == nil {
		return "", songdl.Errorf(songdl.ErrNotFound, "fetch", "no m4a audio stream for %v", video.ID)
	}

	d, err := songdl.NewDownloadBuilder().
		WithContext(ctx).
		WithProgressCallback(songdl.Progress(ctx)).
		WithTargetDir(dir).
		Build()
	if err != nil {
		return "", err
	}
	defer d.Cancel()

	filename := Filename(video.Title, video.ID)
	log.Infof("video: %v", video.Title)
	log.Infof("directory: %v", dir)
	log.Infof("path: %v", d.TargetPath(filename))

	stream, size, err := f.Client.GetStreamContext(d.Context(), video, format)
	if err != nil {
		return "", songdl.NewError(songdl.ErrNetwork, "fetch", fmt.Errorf("failed to get stream: %w", err))
	}
	defer stream.Close()
	d.AddExpectedBytes(size)
	return d.SaveStream(filename, stream)
}

// SelectAudioFormat picks the audio-only mp4 format with the highest bitrate, breaking ties on average bitrate and
// then on lowest itag, so the choice never depends on the order the platform lists formats in. Returns nil if there
// is no such format.
func SelectAudioFormat(formats youtube.FormatList) *youtube.Format {
	var candidates []*youtube.Format
	for i := range formats {
		if isM4AAudio(&formats[i]) {
			candidates = append(candidates, &formats[i])
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Bitrate != b.Bitrate {
			return a.Bitrate > b.Bitrate
		}
		if a.AverageBitrate != b.AverageBitrate {
			return a.AverageBitrate > b.AverageBitrate
		}
		return a.ItagNo < b.ItagNo
	})
	return candidates[0]
}

func isM4AAudio(f *youtube.Format) bool {
	mimeType := strings.TrimSpace(strings.SplitN(f.MimeType, ";", 2)[0])
	return mimeType == "audio/mp4"
}

// Filename is the sanitized title plus the fixed extension, or the sanitized video ID if the title is empty.
func Filename(title, videoID string) string {
	name := SanitizeFilename(title)
	if name == "" {
		name = SanitizeFilename(videoID)
	}
	return name + Extension
}
