package form

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/alanbriolat/songdl"
	"github.com/alanbriolat/songdl/generic"
	"github.com/alanbriolat/songdl/internal/job"
)

// Runner is the part of *job.Runner used by the Controller.
type Runner interface {
	Start(ctx context.Context, req songdl.Request) (job.ID, <-chan generic.Result[songdl.Result], error)
	Observe(f func(job.Event))
}

// Controller implements the form actions on top of a State, leaving rendering to whoever observes the State.
type Controller struct {
	State  *State
	runner Runner
	log    *zap.SugaredLogger
}

func NewController(state *State, runner Runner) *Controller {
	c := &Controller{
		State:  state,
		runner: runner,
		log:    zap.S().Named("form"),
	}
	runner.Observe(c.onJobEvent)
	return c
}

// DownloadAndTag starts a run for the current form contents. The returned channel receives the outcome, after the
// status line has been updated and the form is no longer busy.
func (c *Controller) DownloadAndTag(ctx context.Context) (<-chan generic.Result[songdl.Result], error) {
	if !c.State.SetBusy(true) {
		return nil, songdl.Errorf(songdl.ErrBusy, "download", "a download is already in progress")
	}
	req := c.State.Request()
	c.State.SetStatus(fmt.Sprintf("Searching for %v %v", req.Query.Title, req.Query.Artist))
	_, done, err := c.runner.Start(ctx, req)
	if err != nil {
		c.State.SetStatus(fmt.Sprintf("Download failed: %v", err))
		c.State.SetBusy(false)
		return nil, err
	}

	out := make(chan generic.Result[songdl.Result], 1)
	go func() {
		result := <-done
		if result.IsErr() {
			c.log.Warnf("download failed: %v", result.Error)
			c.State.SetStatus(fmt.Sprintf("Download failed: %v", result.Error))
		} else {
			c.State.SetStatus(fmt.Sprintf("Saved %v", result.Value.Path))
		}
		c.State.SetBusy(false)
		out <- result
	}()
	return out, nil
}

// Reset restores every field, unless a download is running.
func (c *Controller) Reset() error {
	if c.State.Busy() {
		return songdl.Errorf(songdl.ErrBusy, "reset", "a download is in progress")
	}
	c.State.Reset()
	return nil
}

// Browse asks choose for a directory, starting from the current file path. The file path is only changed if choose
// returns ok.
func (c *Controller) Browse(choose func(current string) (dir string, ok bool)) {
	if dir, ok := choose(c.State.Get(FilePath)); ok {
		c.State.Set(FilePath, dir)
	}
}

func (c *Controller) onJobEvent(e job.Event) {
	switch e.New.Status {
	case job.StatusFetching:
		if e.New.Expected > 0 && e.New.Downloaded != e.Old.Downloaded {
			c.State.SetStatus(fmt.Sprintf("%v (%d%%)", e.New.URL, e.New.Downloaded*100/e.New.Expected))
		} else if e.New.URL != e.Old.URL {
			c.State.SetStatus(e.New.URL)
		}
	case job.StatusTagging:
		if e.Old.Status != job.StatusTagging {
			c.State.SetStatus(fmt.Sprintf("Tagging %v", e.New.Path))
		}
	}
}
