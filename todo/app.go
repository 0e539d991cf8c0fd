package todo

import (
	"log/slog"
	"math/rand/v2"

	"github.com/stevemurr/todo-server/config"
	"github.com/stevemurr/todo-server/store"
	"github.com/stevemurr/todo-server/web"
)

// MaxRandomID bounds the ids handed out by the default id source.
const MaxRandomID = 1000

type options struct {
	cfg    *config.Config
	logger *slog.Logger
	newID  func() int
}

// Option configures CreateApp.
type Option func(*options)

// WithConfig uses cfg instead of the defaults plus environment.
func WithConfig(cfg config.Config) Option {
	return func(o *options) {
		o.cfg = &cfg
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithIDSource replaces the random id generator used by the add route.
func WithIDSource(fn func() int) Option {
	return func(o *options) {
		o.newID = fn
	}
}

// RandomID returns an id in [0, MaxRandomID]. Ids are not checked for
// uniqueness.
func RandomID() int {
	return rand.IntN(MaxRandomID + 1)
}

// CreateApp builds the todo application over db. The secret key comes from
// the SECRET_KEY environment variable unless WithConfig is given.
func CreateApp(db *store.DB, opts ...Option) (*web.App, error) {
	o := options{logger: slog.Default(), newID: RandomID}
	for _, opt := range opts {
		opt(&o)
	}
	cfg := config.FromEnv()
	if o.cfg != nil {
		cfg = *o.cfg
	}

	app := web.New("todo", web.WithLogger(o.logger))
	app.Config["SECRET_KEY"] = cfg.SecretKey
	app.Globals["csrf_token"] = func(c *web.Context) any {
		return CSRFToken(c.Session)
	}

	h := newHandler(db, o.logger, o.newID)
	if err := app.RegisterBlueprint(h.Blueprint(), ""); err != nil {
		return nil, err
	}
	return app, nil
}
