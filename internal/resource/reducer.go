package resource

// State is the substate owned by one handler's reducer.
// Posts holds at most one entity per id; Archives maps archive keys to the
// id list of their most recent successful result set. The loading fields
// track at most one in-flight operation of each kind: a newer start simply
// overwrites the tracked id, there is no queue.
type State struct {
	Archives       map[string][]ID `json:"archives"`
	Posts          []Entity        `json:"posts"`
	LoadingArchive string          `json:"loadingArchive"`
	LoadingPost    ID              `json:"loadingPost"`
	Saving         ID              `json:"saving"`
}

// DefaultState returns the explicit initial substate.
func DefaultState() State {
	return State{
		Archives: map[string][]ID{},
		Posts:    []Entity{},
	}
}

// Reducer returns a reducer mountable in a store. Unknown substate shapes
// fall back to the default state; unknown actions leave state untouched.
func (h *Handler) Reducer() func(sub any, action any) any {
	return func(sub any, action any) any {
		state, ok := sub.(State)
		if !ok {
			state = DefaultState()
		}
		act, ok := action.(Action)
		if !ok {
			return state
		}
		return h.Reduce(state, act)
	}
}

// Reduce folds one action into the substate. Pure: every branch returns a
// new value and never mutates maps or slices reachable from the input.
func (h *Handler) Reduce(s State, a Action) State {
	op, known := h.kinds[a.Type]
	if !known {
		return s
	}

	switch op.Verb {
	case VerbQuery:
		switch op.Phase {
		case PhaseStart:
			s.LoadingArchive = string(a.ID)
		case PhaseSuccess:
			s.LoadingArchive = ""
			ids := resultIDs(a.Results)
			s.Archives = withArchive(s.Archives, string(a.ID), ids)
			s.Posts = mergePosts(s.Posts, a.Results)
		case PhaseError:
			s.LoadingArchive = ""
		}

	case VerbLoad:
		switch op.Phase {
		case PhaseStart:
			s.LoadingPost = a.ID
		case PhaseSuccess:
			s.LoadingPost = ""
			s.Posts = mergePosts(s.Posts, []Entity{a.Data})
		case PhaseError:
			s.LoadingPost = ""
		}

	case VerbUpdate, VerbCreate:
		switch op.Phase {
		case PhaseStart:
			s.Saving = a.ID
		case PhaseSuccess:
			// Entities are keyed by the id inside the returned data; for
			// creates that is the server id, never the temp id in a.ID.
			s.Saving = ""
			s.Posts = mergePosts(s.Posts, []Entity{a.Data})
		case PhaseError:
			s.Saving = ""
		}
	}

	return s
}

// resultIDs extracts the canonical ids of an archive result set, in fetch
// order. Entities without an id are skipped.
func resultIDs(results []Entity) []ID {
	ids := make([]ID, 0, len(results))
	for _, e := range results {
		if id, ok := EntityID(e); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// withArchive returns a copy of the archive map with key set to ids.
func withArchive(archives map[string][]ID, key string, ids []ID) map[string][]ID {
	next := make(map[string][]ID, len(archives)+1)
	for k, v := range archives {
		next[k] = v
	}
	next[key] = ids
	return next
}

// mergePosts appends the incoming entities to the existing ones, first
// dropping any existing entry whose id reappears in the incoming set.
// This keeps the at-most-one-entry-per-id invariant and makes replays of
// the same success action idempotent.
func mergePosts(posts []Entity, incoming []Entity) []Entity {
	drop := make(map[ID]struct{}, len(incoming))
	for _, e := range incoming {
		if id, ok := EntityID(e); ok {
			drop[id] = struct{}{}
		}
	}

	next := make([]Entity, 0, len(posts)+len(incoming))
	for _, e := range posts {
		if id, ok := EntityID(e); ok {
			if _, gone := drop[id]; gone {
				continue
			}
		}
		next = append(next, e)
	}
	for _, e := range incoming {
		if _, ok := EntityID(e); !ok {
			continue
		}
		next = append(next, e)
	}
	return next
}
