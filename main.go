package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stevemurr/todo-server/config"
	"github.com/stevemurr/todo-server/logging"
	"github.com/stevemurr/todo-server/query"
	"github.com/stevemurr/todo-server/store"
	"github.com/stevemurr/todo-server/todo"
	"github.com/stevemurr/todo-server/web"
)

var (
	configPath string
	dbPath     string
	backend    string
)

// session bundles an open store with an app client whose session already
// holds a CSRF token, so commands can post straight to the mutating routes.
type session struct {
	db     *store.DB
	client *web.Client
	token  string
}

func openSession() (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if backend != "" {
		cfg.Store.Backend = backend
	}
	if dbPath != "" {
		cfg.Store.Path = dbPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := logging.Initialize(os.Stderr, cfg.Log)

	s, err := store.New(cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create store (backend=%s): %w", cfg.Store.Backend, err)
	}
	db, err := store.Open(s)
	if err != nil {
		return nil, err
	}
	app, err := todo.CreateApp(db, todo.WithConfig(cfg), todo.WithLogger(logger))
	if err != nil {
		db.Close()
		return nil, err
	}
	logger.Debug("Store opened", "backend", cfg.Store.Backend, "path", cfg.Store.Path, "records", db.Len())

	client := app.TestClient()
	return &session{db: db, client: client, token: todo.CSRFToken(client.Session())}, nil
}

func (s *session) Close() error {
	return s.db.Close()
}

func (s *session) post(path string, form web.Form) error {
	form["csrf_token"] = s.token
	resp := s.client.Post(path, form, web.FollowRedirects())
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}
	return nil
}

func printTodos(w io.Writer, todos []store.Record) {
	if len(todos) == 0 {
		fmt.Fprintln(w, "No todos.")
		return
	}
	for _, t := range todos {
		mark := " "
		if done, _ := t["complete"].(bool); done {
			mark = "x"
		}
		fmt.Fprintf(w, "[%s] %v\t%v\n", mark, t["id"], t["title"])
	}
}

func withSession(fn func(s *session, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()
		return fn(s, args)
	}
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid todo id %q", arg)
	}
	return id, nil
}

func newRootCmd(out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "todo",
		Short:         "Manage a todo list stored in an embedded document store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yml", "path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "store path (overrides config and DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "store backend: json, sqlite or memory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all todos",
		Args:  cobra.NoArgs,
		RunE: withSession(func(s *session, args []string) error {
			if resp := s.client.Get("/"); resp.StatusCode != http.StatusOK {
				return fmt.Errorf("index: unexpected status %d", resp.StatusCode)
			}
			printTodos(out, s.db.All())
			return nil
		}),
	}

	addCmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a todo",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(s *session, args []string) error {
			return s.post("/add", web.Form{"title": args[0]})
		}),
	}

	updateCmd := &cobra.Command{
		Use:   "update [id] [title]",
		Short: "Rename a todo",
		Args:  cobra.ExactArgs(2),
		RunE: withSession(func(s *session, args []string) error {
			if _, err := parseID(args[0]); err != nil {
				return err
			}
			return s.post("/update", web.Form{"hiddenField": args[0], "inputField": args[1]})
		}),
	}

	completeCmd := &cobra.Command{
		Use:   "complete [id]",
		Short: "Mark a todo as complete",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(s *session, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return s.post("/complete/"+strconv.Itoa(id), web.Form{})
		}),
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a todo",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(s *session, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return s.post("/delete/"+strconv.Itoa(id), web.Form{})
		}),
	}

	searchCmd := &cobra.Command{
		Use:   "search [expression]",
		Short: "List todos matching a CEL expression over doc, e.g. 'doc.complete == false'",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(s *session, args []string) error {
			p, err := query.Expr(args[0])
			if err != nil {
				return err
			}
			printTodos(out, s.db.Search(p))
			return nil
		}),
	}

	rootCmd.AddCommand(listCmd, addCmd, updateCmd, completeCmd, deleteCmd, searchCmd)
	return rootCmd
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
