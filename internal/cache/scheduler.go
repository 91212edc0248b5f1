package cache

import (
	"context"
	"time"

	"github.com/bassista/go_restate/internal/logger"
	"github.com/bassista/go_restate/internal/repository"
)

const defaultPersistInterval = 30 * time.Second

// StartPersistenceScheduler runs a goroutine that flushes the posts cache
// to disk whenever it is dirty at the next tick. On ctx.Done it performs
// one final flush before returning. The returned channel is closed when
// shutdown completes.
func StartPersistenceScheduler(
	ctx context.Context,
	store PersistableStore,
	repo repository.Saver,
	interval time.Duration,
) <-chan struct{} {
	if interval <= 0 {
		interval = defaultPersistInterval
	}

	log := logger.WithComponent("persist")
	log.Debugf("starting persistence scheduler with interval: %v", interval)

	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				// Final flush uses a background context so a dirty cache
				// still reaches disk during shutdown.
				flush(context.Background(), store, repo)
				log.Info("persistence scheduler stopped after final flush")
				return
			case <-ticker.C:
				flush(ctx, store, repo)
			}
		}
	}()
	return done
}

// flush persists the cache if it holds uncommitted changes.
func flush(ctx context.Context, store PersistableStore, repo repository.Saver) {
	log := logger.WithComponent("persist")

	if !store.IsDirty() {
		log.Tracef("cache is clean, skipping flush")
		return
	}
	if err := ctx.Err(); err != nil {
		log.Debugf("flush cancelled: %v", err)
		return
	}

	snapshot, err := store.Snapshot()
	if err != nil {
		log.Errorf("flush failed to snapshot cache: %v", err)
		return
	}
	snapshot.Metadata.LastUpdate = time.Now().UnixMilli()

	if err := repo.Save(ctx, &snapshot); err != nil {
		log.Errorf("flush failed to save posts: %v", err)
		return
	}

	store.ClearDirty()
	store.SetLastUpdate(snapshot.Metadata.LastUpdate)
	log.Info("posts cache persisted to disk")
}
