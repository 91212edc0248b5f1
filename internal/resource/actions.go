package resource

import "strings"

// Verb enumerates the four logical operations a handler performs.
type Verb int

const (
	VerbQuery Verb = iota // archive query against the collection
	VerbLoad              // single-entity fetch
	VerbUpdate
	VerbCreate
)

func (v Verb) String() string {
	switch v {
	case VerbQuery:
		return "QUERY"
	case VerbLoad:
		return "LOAD"
	case VerbUpdate:
		return "UPDATE"
	case VerbCreate:
		return "CREATE"
	}
	return "UNKNOWN"
}

// Phase enumerates the three transition phases of an operation.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseSuccess
	PhaseError
)

// Op identifies one of the twelve operation kinds (verb x phase).
type Op struct {
	Verb  Verb
	Phase Phase
}

// ActionTypes maps operation kinds to their action type tags.
// Handlers derive the full table at construction; callers may override any
// subset to integrate with externally defined action types.
type ActionTypes map[Op]string

// ops is the closed set of operation kinds, in a stable order.
var ops = []Op{
	{VerbQuery, PhaseStart}, {VerbQuery, PhaseSuccess}, {VerbQuery, PhaseError},
	{VerbLoad, PhaseStart}, {VerbLoad, PhaseSuccess}, {VerbLoad, PhaseError},
	{VerbUpdate, PhaseStart}, {VerbUpdate, PhaseSuccess}, {VerbUpdate, PhaseError},
	{VerbCreate, PhaseStart}, {VerbCreate, PhaseSuccess}, {VerbCreate, PhaseError},
}

// deriveActionTypes resolves the full table for a resource type name.
// Tags follow <VERB>_<UPPER_TYPE> for success, with _REQUEST and _ERROR
// suffixes for the start and error phases. Overrides win when present.
func deriveActionTypes(resourceType string, overrides ActionTypes) ActionTypes {
	upper := strings.ToUpper(resourceType)
	types := make(ActionTypes, len(ops))
	for _, op := range ops {
		if tag, ok := overrides[op]; ok {
			types[op] = tag
			continue
		}
		tag := op.Verb.String() + "_" + upper
		switch op.Phase {
		case PhaseStart:
			tag += "_REQUEST"
		case PhaseError:
			tag += "_ERROR"
		}
		types[op] = tag
	}
	return types
}

// Action is the plain payload dispatched to the store.
// ID is the affected entity id or archive key, Results carries the raw list
// from an archive query, Data a single entity, and Err is set only on the
// error phase.
type Action struct {
	Type    string
	ID      ID
	Data    Entity
	Results []Entity
	Err     error
}
