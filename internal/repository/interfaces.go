package repository

import "context"

// Saver persists a PostDocument.
// Small interface used by background jobs like the persistence scheduler.
type Saver interface {
	Save(ctx context.Context, doc *PostDocument) error
}

// Repository abstracts persistence and watching of the posts file.
// JSONRepository implements this interface.
type Repository interface {
	Saver
	Load(ctx context.Context) (*PostDocument, error)
	StartWatcher(ctx context.Context, cacheStore CacheStore) error
}
