package cache

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/bassista/go_restate/internal/repository"
)

// ErrPostNotFound is returned when a post id has no entry in the cache.
var ErrPostNotFound = errors.New("post not found")

// PostQuery filters and orders a post listing.
type PostQuery struct {
	Status  string // empty matches all
	Search  string // substring match on title
	OrderBy string // "date" or "title"; empty keeps insertion order
	Order   string // "asc" or "desc"
}

// Store keeps an in-memory copy of the posts document.
type Store struct {
	mu         sync.RWMutex
	data       repository.PostDocument
	dirty      bool  // true if cache changed since last persist
	lastUpdate int64 // cache's metadata.lastUpdate
}

// NewStore creates a cache store seeded with the given document.
func NewStore(doc repository.PostDocument) *Store {
	return &Store{data: doc, lastUpdate: doc.Metadata.LastUpdate}
}

// MarkDirty sets the dirty flag to true.
func (s *Store) MarkDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = true
}

// IsDirty returns true if cache has uncommitted changes.
func (s *Store) IsDirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// ClearDirty resets the dirty flag.
func (s *Store) ClearDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = false
}

// GetLastUpdate returns the cache's last update timestamp.
func (s *Store) GetLastUpdate() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdate
}

// SetLastUpdate sets the cache's last update timestamp.
func (s *Store) SetLastUpdate(ts int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUpdate = ts
}

// Snapshot returns a deep copy of the cached document.
func (s *Store) Snapshot() (repository.PostDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneDocument(s.data)
}

// Replace swaps the cached document.
func (s *Store) Replace(doc repository.PostDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cloned, err := cloneDocument(doc)
	if err != nil {
		return err
	}
	s.data = cloned
	s.lastUpdate = doc.Metadata.LastUpdate
	s.dirty = false

	return nil
}

// ListPosts returns the posts matching the query, ordered as requested.
func (s *Store) ListPosts(q PostQuery) ([]repository.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]repository.Post, 0, len(s.data.Posts))
	for _, p := range s.data.Posts {
		if q.Status != "" && p.Status != q.Status {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(q.Search)) {
			continue
		}
		out = append(out, p)
	}

	desc := q.Order == "desc"
	switch q.OrderBy {
	case "date":
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return out[i].Date > out[j].Date
			}
			return out[i].Date < out[j].Date
		})
	case "title":
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return out[i].Title > out[j].Title
			}
			return out[i].Title < out[j].Title
		})
	}

	return out, nil
}

// GetPost returns the post with the given id.
func (s *Store) GetPost(id int64) (repository.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.data.Posts {
		if p.ID == id {
			return p, nil
		}
	}
	return repository.Post{}, ErrPostNotFound
}

// CreatePost assigns the next id to the post, appends it and returns it.
func (s *Store) CreatePost(post repository.Post) (repository.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post.ID = s.data.NextID
	s.data.NextID++
	post.Revision = 1
	post.ApplyDefaults()

	s.data.Posts = append(s.data.Posts, post)
	s.dirty = true

	return post, nil
}

// UpdatePost replaces the post with the same id, bumping its revision.
func (s *Store) UpdatePost(post repository.Post) (repository.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Posts {
		if s.data.Posts[i].ID == post.ID {
			post.Revision = s.data.Posts[i].Revision + 1
			post.ApplyDefaults()
			s.data.Posts[i] = post
			s.dirty = true
			return post, nil
		}
	}
	return repository.Post{}, ErrPostNotFound
}

// cloneDocument deep-copies the document to avoid shared slices between
// cache and callers.
func cloneDocument(doc repository.PostDocument) (repository.PostDocument, error) {
	bytes, err := json.Marshal(doc)
	if err != nil {
		return repository.PostDocument{}, err
	}
	var copied repository.PostDocument
	if err := json.Unmarshal(bytes, &copied); err != nil {
		return repository.PostDocument{}, err
	}
	return copied, nil
}
