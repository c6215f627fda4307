// Package job runs the download pipeline on a worker goroutine, one request at a time, publishing its state as it
// changes so that a UI never has to block on network or disk.
package job

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/alanbriolat/songdl/generic"
)

type ID string

func NewID() ID {
	return ID(generic.Unwrap(uuid.NewRandom()).String())
}

type Status string

const (
	StatusIdle     Status = "idle"
	StatusLocating Status = "locating"
	StatusFetching Status = "fetching"
	StatusTagging  Status = "tagging"
	StatusComplete Status = "complete"
	StatusError    Status = "error"
)

var runningStatuses = generic.NewSet(
	StatusLocating,
	StatusFetching,
	StatusTagging,
)

// IsRunning returns true if the pipeline is still working in this status.
func (s Status) IsRunning() bool {
	return runningStatuses.Contains(s)
}

// State is a snapshot of the current (or most recent) job.
type State struct {
	ID         ID     `diff:"id"`
	Status     Status `diff:"status"`
	URL        string `diff:"url"`
	Path       string `diff:"path"`
	Downloaded int64  `diff:"downloaded"`
	Expected   int64  `diff:"expected"`
	Error      string `diff:"error"`
}

func (s State) String() string {
	return fmt.Sprintf("State{ID:\"%s\", Status:\"%s\", URL:\"%s\"}", s.ID, s.Status, s.URL)
}

// Event is published for every change of State.
type Event struct {
	Old State
	New State
}
