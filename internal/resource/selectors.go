package resource

// Pure state-query helpers. Collaborators pass the exact substate slice,
// never the whole store state.

// IsArchiveLoading reports whether the archive with the given key is the
// one currently being fetched.
func IsArchiveLoading(s State, key string) bool {
	return s.LoadingArchive != "" && s.LoadingArchive == key
}

// GetArchive returns the cached entities for an archive key, or nil when
// the substate is absent or the key was never successfully fetched.
// Order follows the posts cache iteration, not the stored id list; treat
// the result as an unordered set.
func GetArchive(s State, key string) []Entity {
	if s.Archives == nil || s.Posts == nil {
		return nil
	}
	ids, ok := s.Archives[key]
	if !ok {
		return nil
	}

	want := make(map[ID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	out := make([]Entity, 0, len(ids))
	for _, e := range s.Posts {
		if id, ok := EntityID(e); ok {
			if _, hit := want[id]; hit {
				out = append(out, e)
			}
		}
	}
	return out
}

// IsPostLoading reports whether the entity with the given id is the one
// currently being fetched.
func IsPostLoading(s State, id ID) bool {
	return s.LoadingPost != "" && s.LoadingPost == id
}

// GetSingle returns the cached entity with the given id, or nil.
func GetSingle(s State, id ID) Entity {
	for _, e := range s.Posts {
		if got, ok := EntityID(e); ok && got == id {
			return e
		}
	}
	return nil
}

// IsPostSaving reports whether the given id (real or temporary) is being
// created or updated right now.
func IsPostSaving(s State, id ID) bool {
	return s.Saving != "" && s.Saving == id
}

// IsPostCreating reports whether an optimistic create is in flight.
func IsPostCreating(s State) bool {
	return s.Saving.IsTemp()
}
