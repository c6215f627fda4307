package songdl

import (
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	// Directory the file path field starts with.
	DefaultDirectory string
	// Tagging can be switched off, leaving the downloaded file exactly as the platform served it.
	EnableTagging bool
	// Search endpoint, only overridden for tests.
	SearchURL string
	// Sent with every search request.
	UserAgent string
	// Limit on a single search request; 0 means no limit.
	SearchTimeout time.Duration
	// Minimum interval between progress updates from a running download.
	ProgressUpdateInterval time.Duration
}

var DefaultConfig = Config{
	DefaultDirectory:       MusicDir(),
	EnableTagging:          true,
	SearchURL:              "https://html.duckduckgo.com/html/",
	UserAgent:              "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0",
	SearchTimeout:          30 * time.Second,
	ProgressUpdateInterval: 500 * time.Millisecond,
}

// MusicDir is the user's music directory, e.g. ~/Music.
func MusicDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Music")
}
