package resource

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/bassista/go_restate/internal/logger"
)

// Dispatcher is the effect sink actions are delivered to. A store satisfies
// it directly; tests can substitute a recorder.
type Dispatcher interface {
	Dispatch(action any)
}

// StateReader exposes the global state tree for lazily resolved query specs.
type StateReader interface {
	State() map[string]any
}

// GlobalState is the shape query-spec functions receive.
type GlobalState = map[string]any

// QuerySpec yields the query parameters for a registered archive.
type QuerySpec interface {
	Params(global GlobalState) url.Values
}

// StaticQuery is a fixed parameter mapping.
type StaticQuery url.Values

func (s StaticQuery) Params(GlobalState) url.Values { return url.Values(s) }

// QueryFunc derives parameters from the global state at dispatch time.
type QueryFunc func(global GlobalState) url.Values

func (f QueryFunc) Params(global GlobalState) url.Values { return f(global) }

// Thunk performs one asynchronous operation, dispatching start/success/error
// actions as it progresses. It resolves with the affected id (the archive
// key, the entity id, or the server-assigned id for creates).
type Thunk func(ctx context.Context, d Dispatcher, sr StateReader) (ID, error)

// HandlerOptions configures a Handler.
type HandlerOptions struct {
	// BaseURL is the collection endpoint, e.g. http://api.local/posts.
	BaseURL string `validate:"required,url"`
	// Resource names the resource type; action type tags derive from it.
	Resource string `validate:"required"`
	// AuthToken is sent on every request under AuthParam.
	AuthToken string
	// AuthParam is the query field carrying the token. Defaults to "token".
	AuthParam string
	// QueryDefaults are merged into every request's query string.
	QueryDefaults url.Values
	// Overrides replaces derived action type tags for the given kinds.
	Overrides ActionTypes
	// Client is the HTTP client to use. Defaults to http.DefaultClient.
	Client *http.Client
	// Rethrow controls whether request failures are returned to the caller
	// after the error action has been dispatched. Defaults to true.
	Rethrow *bool
}

// Handler binds one REST collection resource to the state container.
// It is safe for concurrent use; the temp-id counter is handler-owned,
// monotonic and never reset.
type Handler struct {
	baseURL  string
	resource string
	defaults url.Values
	types    ActionTypes
	kinds    map[string]Op
	rethrow  bool
	client   *http.Client
	log      *logrus.Entry

	mu       sync.RWMutex
	archives map[string]QuerySpec

	tempID atomic.Uint64
}

var validate = validator.New()

// NewHandler builds a handler for one resource type.
func NewHandler(opts HandlerOptions) (*Handler, error) {
	if err := validate.Struct(&opts); err != nil {
		return nil, fmt.Errorf("handler options: %w", err)
	}

	defaults := url.Values{}
	for key, vals := range opts.QueryDefaults {
		for _, v := range vals {
			defaults.Set(key, v)
		}
	}
	if opts.AuthToken != "" {
		param := opts.AuthParam
		if param == "" {
			param = "token"
		}
		defaults.Set(param, opts.AuthToken)
	}

	types := deriveActionTypes(opts.Resource, opts.Overrides)
	kinds := make(map[string]Op, len(types))
	for op, tag := range types {
		if prev, dup := kinds[tag]; dup && prev != op {
			return nil, fmt.Errorf("action type %q assigned to two operations", tag)
		}
		kinds[tag] = op
	}

	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}

	rethrow := true
	if opts.Rethrow != nil {
		rethrow = *opts.Rethrow
	}

	return &Handler{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		resource: opts.Resource,
		defaults: defaults,
		types:    types,
		kinds:    kinds,
		rethrow:  rethrow,
		client:   client,
		log:      logger.WithResource("handler", opts.Resource),
		archives: map[string]QuerySpec{},
	}, nil
}

// ActionType returns the tag resolved for the given operation kind.
func (h *Handler) ActionType(op Op) string { return h.types[op] }

// RegisterArchive stores or replaces the query spec for a named archive.
// No network effect; replacing a spec does not invalidate cached results.
func (h *Handler) RegisterArchive(key string, spec QuerySpec) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.archives[key] = spec
}

func (h *Handler) archiveSpec(key string) (QuerySpec, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	spec, ok := h.archives[key]
	return spec, ok
}

// nextTempID allocates a fresh optimistic id. Ids are strictly increasing
// and never reused for the handler's lifetime.
func (h *Handler) nextTempID() ID {
	n := h.tempID.Add(1)
	return ID(fmt.Sprintf("%s%d", TempIDPrefix, n))
}

// FetchArchive returns a thunk that runs the registered query for key.
// An unregistered key fails before any action is dispatched.
func (h *Handler) FetchArchive(key string) Thunk {
	return func(ctx context.Context, d Dispatcher, sr StateReader) (ID, error) {
		spec, ok := h.archiveSpec(key)
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUnknownArchive, key)
		}

		d.Dispatch(Action{Type: h.types[Op{VerbQuery, PhaseStart}], ID: ID(key)})

		params := spec.Params(sr.State())

		var results []Entity
		if err := h.do(ctx, http.MethodGet, h.baseURL, params, nil, &results); err != nil {
			h.log.Errorf("archive %q query failed: %v", key, err)
			d.Dispatch(Action{Type: h.types[Op{VerbQuery, PhaseError}], ID: ID(key), Err: err})
			if h.rethrow {
				return "", err
			}
			return "", nil
		}

		d.Dispatch(Action{Type: h.types[Op{VerbQuery, PhaseSuccess}], ID: ID(key), Results: results})
		return ID(key), nil
	}
}

// FetchSingle returns a thunk that loads one entity by id.
func (h *Handler) FetchSingle(id ID) Thunk {
	return func(ctx context.Context, d Dispatcher, sr StateReader) (ID, error) {
		d.Dispatch(Action{Type: h.types[Op{VerbLoad, PhaseStart}], ID: id})

		params := url.Values{"context": {"view"}}

		var data Entity
		if err := h.do(ctx, http.MethodGet, h.baseURL+"/"+string(id), params, nil, &data); err != nil {
			h.log.Errorf("load %s failed: %v", id, err)
			d.Dispatch(Action{Type: h.types[Op{VerbLoad, PhaseError}], ID: id, Err: err})
			if h.rethrow {
				return "", err
			}
			return "", nil
		}

		d.Dispatch(Action{Type: h.types[Op{VerbLoad, PhaseSuccess}], ID: id, Data: data})
		return id, nil
	}
}

// Update returns a thunk that PUTs the entity to baseURL/id.
// A payload without an id fails before any action is dispatched.
func (h *Handler) Update(entity Entity) Thunk {
	return func(ctx context.Context, d Dispatcher, sr StateReader) (ID, error) {
		id, ok := EntityID(entity)
		if !ok {
			return "", ErrMissingID
		}

		d.Dispatch(Action{Type: h.types[Op{VerbUpdate, PhaseStart}], ID: id, Data: entity})

		params := url.Values{"context": {"edit"}}

		var data Entity
		if err := h.do(ctx, http.MethodPut, h.baseURL+"/"+string(id), params, entity, &data); err != nil {
			h.log.Errorf("update %s failed: %v", id, err)
			d.Dispatch(Action{Type: h.types[Op{VerbUpdate, PhaseError}], ID: id, Err: err})
			if h.rethrow {
				return "", err
			}
			return "", nil
		}

		d.Dispatch(Action{Type: h.types[Op{VerbUpdate, PhaseSuccess}], ID: id, Data: data})
		return id, nil
	}
}

// Create returns a thunk that POSTs the entity to the base URL.
// A fresh optimistic id tracks the in-flight create; the success action
// carries that temp id alongside the server-assigned data, and the thunk
// resolves with the server id. Callers tracking the temp id elsewhere are
// responsible for reconciling it.
func (h *Handler) Create(entity Entity) Thunk {
	return func(ctx context.Context, d Dispatcher, sr StateReader) (ID, error) {
		tempID := h.nextTempID()

		d.Dispatch(Action{Type: h.types[Op{VerbCreate, PhaseStart}], ID: tempID, Data: entity})

		params := url.Values{"context": {"edit"}}

		var data Entity
		if err := h.do(ctx, http.MethodPost, h.baseURL, params, entity, &data); err != nil {
			h.log.Errorf("create (%s) failed: %v", tempID, err)
			d.Dispatch(Action{Type: h.types[Op{VerbCreate, PhaseError}], ID: tempID, Err: err})
			if h.rethrow {
				return "", err
			}
			return "", nil
		}

		d.Dispatch(Action{Type: h.types[Op{VerbCreate, PhaseSuccess}], ID: tempID, Data: data})

		serverID, _ := EntityID(data)
		return serverID, nil
	}
}
