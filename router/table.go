package router

import (
	"fmt"
	"slices"
	"strings"
)

// Entry is a registered route. Entries are immutable once added.
type Entry[H any] struct {
	Pattern  Pattern
	Methods  []string
	Handler  H
	Endpoint string
}

// Allows reports whether the entry accepts method, case-insensitively.
func (e *Entry[H]) Allows(method string) bool {
	return slices.Contains(e.Methods, strings.ToUpper(method))
}

// Table is an ordered list of routes. Lookups scan in registration order and
// the first entry matching both path and method wins.
type Table[H any] struct {
	entries []*Entry[H]
}

// Add compiles pattern and appends a route. No methods means GET only.
func (t *Table[H]) Add(pattern string, methods []string, handler H, endpoint string) error {
	p, err := Compile(pattern)
	if err != nil {
		return err
	}
	if len(methods) == 0 {
		methods = []string{"GET"}
	}
	upper := make([]string, len(methods))
	for i, m := range methods {
		upper[i] = strings.ToUpper(m)
	}
	t.entries = append(t.entries, &Entry[H]{
		Pattern:  p,
		Methods:  upper,
		Handler:  handler,
		Endpoint: endpoint,
	})
	return nil
}

// Match returns the first entry whose pattern matches path and whose method
// set contains method, along with the extracted parameters.
func (t *Table[H]) Match(path, method string) (*Entry[H], Params, bool) {
	for _, e := range t.entries {
		params, ok := e.Pattern.Match(path)
		if !ok || !e.Allows(method) {
			continue
		}
		return e, params, true
	}
	return nil, nil, false
}

// Lookup returns the first entry registered under endpoint.
func (t *Table[H]) Lookup(endpoint string) (*Entry[H], bool) {
	for _, e := range t.entries {
		if e.Endpoint == endpoint {
			return e, true
		}
	}
	return nil, false
}

// URL builds the path for endpoint, filling placeholders from params.
func (t *Table[H]) URL(endpoint string, params Params) (string, error) {
	e, ok := t.Lookup(endpoint)
	if !ok {
		return "", fmt.Errorf("router: unknown endpoint %q", endpoint)
	}
	return e.Pattern.Build(params)
}

// Entries returns the registered routes in order.
func (t *Table[H]) Entries() []*Entry[H] {
	return slices.Clone(t.entries)
}

// Len returns the number of registered routes.
func (t *Table[H]) Len() int {
	return len(t.entries)
}
