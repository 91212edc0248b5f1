package cache

import "github.com/bassista/go_restate/internal/repository"

// ReadOnlyStore is the minimal cache API for read-only collaborators.
type ReadOnlyStore interface {
	Snapshot() (repository.PostDocument, error)
}

// PostStore is the cache API needed by the post handlers.
type PostStore interface {
	ListPosts(q PostQuery) ([]repository.Post, error)
	GetPost(id int64) (repository.Post, error)
	CreatePost(post repository.Post) (repository.Post, error)
	UpdatePost(post repository.Post) (repository.Post, error)
}

// PersistableStore is the cache API needed by the persistence scheduler.
type PersistableStore interface {
	IsDirty() bool
	Snapshot() (repository.PostDocument, error)
	ClearDirty()
	SetLastUpdate(ts int64)
}

// AppStore is the cache contract the application container exposes.
// It is intentionally broad: it supports handlers, the persistence
// scheduler and the repository watcher.
type AppStore interface {
	repository.CacheStore
	PostStore
	PersistableStore
}
