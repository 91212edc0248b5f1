package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/bassista/go_restate/internal/logger"
	"github.com/bassista/go_restate/internal/resource"
)

// ArchiveRefresher re-runs a fixed set of registered archive queries on a
// fixed interval, keeping the cached result sets warm. Failures are logged
// and retried on the next tick; consecutive-failure counts are in-memory
// only.
type ArchiveRefresher struct {
	handler *resource.Handler
	sink    resource.Dispatcher
	reader  resource.StateReader
	poll    time.Duration
	keys    []string

	mu       sync.Mutex
	failures map[string]int
}

func NewArchiveRefresher(
	h *resource.Handler,
	sink resource.Dispatcher,
	reader resource.StateReader,
	keys []string,
	poll time.Duration,
) *ArchiveRefresher {
	return &ArchiveRefresher{
		handler:  h,
		sink:     sink,
		reader:   reader,
		poll:     poll,
		keys:     keys,
		failures: map[string]int{},
	}
}

// Start launches the refresh loop. It returns immediately; the loop stops
// when ctx is canceled.
func (r *ArchiveRefresher) Start(ctx context.Context) {
	logger.WithComponent("refresh").Debugf("starting archive refresher with interval: %v, keys: %v", r.poll, r.keys)
	ticker := time.NewTicker(r.poll)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.WithComponent("refresh").Info("archive refresher stopped")
				return
			case <-ticker.C:
				r.tick(ctx)
			}
		}
	}()
}

func (r *ArchiveRefresher) tick(ctx context.Context) {
	for _, key := range r.keys {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if _, err := r.handler.FetchArchive(key)(ctx, r.sink, r.reader); err != nil {
			n := r.bumpFailures(key)
			logger.WithComponent("refresh").Errorf("refresh of archive %q failed (%d consecutive): %v", key, n, err)
			continue
		}
		r.resetFailures(key)
	}
}

// Failures returns the consecutive-failure count for an archive key.
func (r *ArchiveRefresher) Failures(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failures[key]
}

func (r *ArchiveRefresher) bumpFailures(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[key]++
	return r.failures[key]
}

func (r *ArchiveRefresher) resetFailures(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.failures, key)
}
