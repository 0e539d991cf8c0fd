package web

import (
	"maps"
	"net/url"
	"sync"

	"github.com/google/uuid"

	"github.com/stevemurr/todo-server/router"
)

// Request carries the inbound data of a single dispatched call.
type Request struct {
	Method string
	Path   string
	Form   url.Values
}

// FormValue returns the first value for key, or "".
func (r *Request) FormValue(key string) string {
	return r.Form.Get(key)
}

// Context is handed to every handler. It is created per call and never
// shared between calls.
type Context struct {
	App     *App
	Request *Request
	Params  router.Params
	Session *Session
}

// Session is a key-value store that outlives individual requests.
// Safe for concurrent use.
type Session struct {
	id     string
	mu     sync.RWMutex
	values map[string]any
}

func newSession(id string) *Session {
	return &Session{id: id, values: map[string]any{}}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

func (s *Session) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// GetString returns the value for key if it is a string.
func (s *Session) GetString(key string) string {
	v, _ := s.Get(key)
	str, _ := v.(string)
	return str
}

func (s *Session) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *Session) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// Clear removes every value.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.values)
}

// Values returns a copy of the session contents.
func (s *Session) Values() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values)
}

// SessionStore owns sessions keyed by session id.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[string]*Session{}}
}

// New creates an empty session with a fresh id.
func (s *SessionStore) New() *Session {
	sess := newSession(uuid.NewString())
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.id] = sess
	return sess
}

// Get returns the session for id, creating it when unknown.
func (s *SessionStore) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = newSession(id)
		s.sessions[id] = sess
	}
	return sess
}

// Delete forgets the session for id.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
