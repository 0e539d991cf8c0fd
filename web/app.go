// Package web is a small in-process request dispatcher: an App aggregates
// routes (directly or through Blueprints), and a Client drives it by method
// and path without opening any socket.
package web

import (
	"fmt"
	"log/slog"

	"github.com/stevemurr/todo-server/router"
)

// HandlerFunc serves one request. Returning a *Response passes it through
// unchanged; any other value becomes the payload of a 200 response.
type HandlerFunc func(c *Context) any

// GlobalFunc computes a value made available to every Render call.
type GlobalFunc func(c *Context) any

type route struct {
	pattern string
	name    string
	methods []string
	handler HandlerFunc
}

// Blueprint is a named group of routes registered on an App under a prefix.
type Blueprint struct {
	Name       string
	ImportName string
	routes     []route
}

func NewBlueprint(name, importName string) *Blueprint {
	return &Blueprint{Name: name, ImportName: importName}
}

// Route records a route; it becomes endpoint "<blueprint>.<name>" once the
// blueprint is registered. No methods means GET only.
func (b *Blueprint) Route(pattern, name string, h HandlerFunc, methods ...string) {
	b.routes = append(b.routes, route{pattern: pattern, name: name, methods: methods, handler: h})
}

// App aggregates routes into a single table.
type App struct {
	ImportName string
	Config     map[string]any
	Globals    map[string]GlobalFunc
	Sessions   *SessionStore

	routes router.Table[HandlerFunc]
	logger *slog.Logger
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// New creates an empty App.
func New(importName string, opts ...Option) *App {
	a := &App{
		ImportName: importName,
		Config:     map[string]any{},
		Globals:    map[string]GlobalFunc{},
		Sessions:   NewSessionStore(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Logger returns the app logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Route registers a handler directly on the app under endpoint name.
func (a *App) Route(pattern, name string, h HandlerFunc, methods ...string) error {
	return a.routes.Add(pattern, methods, h, name)
}

// RegisterBlueprint copies the blueprint's routes into the app, prefixing
// each pattern and namespacing each endpoint with the blueprint name.
func (a *App) RegisterBlueprint(bp *Blueprint, prefix string) error {
	for _, r := range bp.routes {
		pattern := prefix + r.pattern
		if pattern == "" {
			pattern = "/"
		}
		endpoint := bp.Name + "." + r.name
		if err := a.routes.Add(pattern, r.methods, r.handler, endpoint); err != nil {
			return fmt.Errorf("register blueprint %q: %w", bp.Name, err)
		}
	}
	return nil
}

// URLFor returns the path of endpoint with params substituted.
func (a *App) URLFor(endpoint string, params router.Params) (string, error) {
	return a.routes.URL(endpoint, params)
}

// Routes returns the registered routes in match order.
func (a *App) Routes() []*router.Entry[HandlerFunc] {
	return a.routes.Entries()
}

func (a *App) match(path, method string) (*router.Entry[HandlerFunc], router.Params, bool) {
	return a.routes.Match(path, method)
}

// TestClient returns a client bound to a fresh session.
func (a *App) TestClient() *Client {
	return &Client{app: a, session: a.Sessions.New()}
}
