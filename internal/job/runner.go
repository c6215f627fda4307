package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/alanbriolat/songdl"
	"github.com/alanbriolat/songdl/async"
	"github.com/alanbriolat/songdl/generic"
	"github.com/alanbriolat/songdl/internal/sync_"
)

// Runner runs at most one songdl.Pipeline request at a time.
type Runner struct {
	pipeline songdl.Pipeline
	interval time.Duration
	log      *zap.SugaredLogger

	state *sync_.RWMutexed[State]
	idle  *sync_.Event

	mu        sync.Mutex
	cancel    context.CancelFunc
	observers []func(Event)
}

// NewRunner creates a Runner. Progress events are published at most once per interval.
func NewRunner(pipeline songdl.Pipeline, interval time.Duration) *Runner {
	r := &Runner{
		pipeline: pipeline,
		interval: interval,
		log:      zap.S().Named("job"),
		state:    sync_.NewRWMutexed(State{Status: StatusIdle}),
		idle:     sync_.NewEvent(),
	}
	r.idle.Set()
	return r
}

// Observe registers f to receive every state change. It is called on the worker goroutine.
func (r *Runner) Observe(f func(Event)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, f)
}

func (r *Runner) State() State {
	return r.state.Get()
}

func (r *Runner) Busy() bool {
	return !r.idle.IsSet()
}

// Idle returns a channel that closes once no job is running (which may be immediately).
func (r *Runner) Idle() <-chan struct{} {
	return r.idle.Wait()
}

// Cancel stops the running job, if there is one.
func (r *Runner) Cancel() {
	r.mu.Lock()
	cancel := r.cancel
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Start runs req in the background, returning songdl.ErrBusy if a job is already running. The returned channel
// receives the outcome once the job has finished.
func (r *Runner) Start(ctx context.Context, req songdl.Request) (ID, <-chan generic.Result[songdl.Result], error) {
	if !r.idle.Clear() {
		return "", nil, songdl.Errorf(songdl.ErrBusy, "start", "a download is already in progress")
	}

	id := NewID()
	log := r.log.With("job_id", id)
	ctx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	r.cancel = cancel
	r.mu.Unlock()

	r.update(func(s *State) {
		*s = State{ID: id, Status: StatusLocating}
	})

	progress := newThrottle(r.interval)
	ctx = songdl.WithLogger(ctx, log.Desugar())
	ctx = songdl.WithProgress(ctx, func(downloaded, expected int64) {
		if !progress.Allow(expected > 0 && downloaded >= expected) {
			return
		}
		r.update(func(s *State) {
			s.Downloaded = downloaded
			s.Expected = expected
		})
	})
	hooks := songdl.Hooks{
		OnLocated: func(url string) {
			log.Infof("located %v", url)
			r.update(func(s *State) {
				s.URL = url
				s.Status = StatusFetching
			})
		},
		OnFetched: func(path string) {
			log.Infof("saved %v", path)
			r.update(func(s *State) {
				s.Path = path
				if r.pipeline.Tagger != nil {
					s.Status = StatusTagging
				}
			})
		},
	}

	return id, async.RunResult(func() (songdl.Result, error) {
		defer r.finish(cancel)
		result, err := r.pipeline.Run(ctx, req, hooks)
		if err != nil {
			log.Errorf("job failed: %v", err)
			r.update(func(s *State) {
				s.Status = StatusError
				s.Error = err.Error()
			})
		} else {
			r.update(func(s *State) {
				s.Status = StatusComplete
			})
		}
		return result, err
	}), nil
}

func (r *Runner) finish(cancel context.CancelFunc) {
	cancel()
	r.mu.Lock()
	r.cancel = nil
	r.mu.Unlock()
	r.idle.Set()
}

func (r *Runner) update(f func(s *State)) {
	var event Event
	_ = r.state.Locked(func(s *State) error {
		event.Old = *s
		f(s)
		event.New = *s
		return nil
	})
	if event.Old == event.New {
		return
	}
	r.mu.Lock()
	observers := r.observers
	r.mu.Unlock()
	for _, o := range observers {
		o(event)
	}
}
