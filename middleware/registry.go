package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/gorilla/mux"

	jsonadapt "github.com/reoring/jsonadapt"
	js "github.com/reoring/jsonadapt/jsonschema"
	"github.com/reoring/jsonadapt/value"
)

// ErrDuplicateType is returned by Register for a name already in use.
var ErrDuplicateType = errors.New("middleware: type already registered")

// Endpoint is a registered type: its parameter schema plus a handler that
// consumes conforming documents.
type Endpoint interface {
	Name() string
	Schema() js.Schema
	ResultSchema() js.Schema
	Validate(v value.Value) jsonadapt.Issues
	// Invoke decodes v, runs the handler and serializes its result.
	Invoke(ctx context.Context, v value.Value) (value.Value, *Failure)
}

type endpoint[T, R any] struct {
	name   string
	in     jsonadapt.Adapter[T]
	out    jsonadapt.Adapter[R]
	handle func(context.Context, T) (R, error)
}

func (e *endpoint[T, R]) Name() string { return e.name }

func (e *endpoint[T, R]) Schema() js.Schema { return e.in.Schema(nil) }

func (e *endpoint[T, R]) ResultSchema() js.Schema { return e.out.Schema(nil) }

func (e *endpoint[T, R]) Validate(v value.Value) jsonadapt.Issues {
	return jsonadapt.Validate(v, e.in.Schema(nil))
}

func (e *endpoint[T, R]) Invoke(ctx context.Context, v value.Value) (value.Value, *Failure) {
	params, f := DecodeParams(e.in, v)
	if f != nil {
		return value.Value{}, f
	}
	res, err := e.handle(ContextWithParams(ctx, v), params)
	if err != nil {
		if iss, ok := jsonadapt.AsIssues(err); ok {
			return value.Value{}, &Failure{Status: http.StatusUnprocessableEntity, Payload: ErrorPayload(MsgInvalidParams, iss), Err: err}
		}
		return value.Value{}, &Failure{Status: http.StatusInternalServerError, Payload: ErrorPayload(err.Error(), nil), Err: err}
	}
	out, err := e.out.Serialize(&res)
	if err != nil {
		return value.Value{}, &Failure{Status: http.StatusInternalServerError, Payload: ErrorPayload("result serialization failed", nil), Err: err}
	}
	return out, nil
}

// Registry maps type names to endpoints and serves them over HTTP.
type Registry struct {
	cfg Config

	mu      sync.RWMutex
	entries map[string]Endpoint
}

// NewRegistry returns an empty registry.
func NewRegistry(cfg Config) *Registry {
	return &Registry{cfg: cfg, entries: map[string]Endpoint{}}
}

// Register adds a typed endpoint: requests are validated against the schema
// of in, decoded, passed to handle, and the result is serialized with out.
func Register[T, R any](r *Registry, name string, in jsonadapt.Adapter[T], out jsonadapt.Adapter[R], handle func(context.Context, T) (R, error)) error {
	if name == "" {
		return errors.New("middleware: empty type name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateType, name)
	}
	r.entries[name] = &endpoint[T, R]{name: name, in: in, out: out, handle: handle}
	return nil
}

// Lookup returns the endpoint registered under name.
func (r *Registry) Lookup(name string) (Endpoint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.entries))
	for n := range r.entries {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Router returns a mux.Router serving
//
//	GET  /types            registered names
//	GET  /{type}/schema    parameter schema
//	POST /{type}/validate  {"issues": [...]}
//	POST /{type}           validated call
func (r *Registry) Router() *mux.Router {
	m := mux.NewRouter()
	r.Mount(m)
	return m
}

// Mount adds the routes to an existing router.
func (r *Registry) Mount(m *mux.Router) {
	m.HandleFunc("/types", r.serveTypes).Methods(http.MethodGet)
	m.HandleFunc("/{type}/schema", r.serveSchema).Methods(http.MethodGet)
	m.HandleFunc("/{type}/validate", r.serveValidate).Methods(http.MethodPost)
	m.HandleFunc("/{type}", r.serveInvoke).Methods(http.MethodPost)
}

func (r *Registry) endpointFor(w http.ResponseWriter, req *http.Request) (Endpoint, bool) {
	name := mux.Vars(req)["type"]
	e, ok := r.Lookup(name)
	if !ok {
		r.cfg.logger().Debug().Str("type", name).Msg("unknown type")
		r.write(w, http.StatusNotFound, ErrorPayload("unknown type "+name, nil))
	}
	return e, ok
}

func (r *Registry) serveTypes(w http.ResponseWriter, _ *http.Request) {
	names := r.Names()
	out := make([]value.Value, len(names))
	for i, n := range names {
		out[i] = value.String(n)
	}
	r.write(w, http.StatusOK, value.Array(out...))
}

func (r *Registry) serveSchema(w http.ResponseWriter, req *http.Request) {
	e, ok := r.endpointFor(w, req)
	if !ok {
		return
	}
	r.write(w, http.StatusOK, e.Schema().ToValue())
}

func (r *Registry) serveValidate(w http.ResponseWriter, req *http.Request) {
	e, ok := r.endpointFor(w, req)
	if !ok {
		return
	}
	v, f := ReadParams(req.Body, r.cfg.ParseOpt)
	if f != nil {
		r.fail(w, e.Name(), f)
		return
	}
	iss := e.Validate(v)
	r.cfg.logger().Info().Str("type", e.Name()).Int("issues", len(iss)).Msg("validate")
	r.write(w, http.StatusOK, IssuesPayload(iss))
}

func (r *Registry) serveInvoke(w http.ResponseWriter, req *http.Request) {
	e, ok := r.endpointFor(w, req)
	if !ok {
		return
	}
	v, f := ReadParams(req.Body, r.cfg.ParseOpt)
	if f != nil {
		r.fail(w, e.Name(), f)
		return
	}
	out, f := e.Invoke(req.Context(), v)
	if f != nil {
		r.fail(w, e.Name(), f)
		return
	}
	r.cfg.logger().Info().Str("type", e.Name()).Msg("invoke")
	r.write(w, http.StatusOK, out)
}

func (r *Registry) fail(w http.ResponseWriter, name string, f *Failure) {
	ev := r.cfg.logger().Warn()
	if f.Status >= http.StatusInternalServerError {
		ev = r.cfg.logger().Error()
	}
	if iss, ok := jsonadapt.AsIssues(f.Err); ok {
		ev = ev.Int("issues", len(iss))
	}
	ev.Err(f.Err).Str("type", name).Int("status", f.Status).Msg("request rejected")
	r.write(w, f.Status, f.Payload)
}

func (r *Registry) write(w http.ResponseWriter, status int, v value.Value) {
	if err := WriteValue(w, status, v); err != nil {
		r.cfg.logger().Error().Err(err).Msg("write response")
	}
}
