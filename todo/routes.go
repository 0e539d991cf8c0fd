// Package todo provides the todo-list routes and the application factory.
package todo

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/schema"

	"github.com/stevemurr/todo-server/query"
	"github.com/stevemurr/todo-server/store"
	"github.com/stevemurr/todo-server/web"
)

// BlueprintName namespaces the todo endpoints, e.g. "todo.index".
const BlueprintName = "todo"

type addForm struct {
	Title string `schema:"title"`
}

type updateForm struct {
	Title string `schema:"inputField"`
	ID    string `schema:"hiddenField,required"`
}

// Handler holds the route dependencies.
type Handler struct {
	db      *store.DB
	logger  *slog.Logger
	newID   func() int
	decoder *schema.Decoder
}

func newHandler(db *store.DB, logger *slog.Logger, newID func() int) *Handler {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return &Handler{db: db, logger: logger, newID: newID, decoder: decoder}
}

// Blueprint returns the todo routes as a blueprint.
func (h *Handler) Blueprint() *web.Blueprint {
	bp := web.NewBlueprint(BlueprintName, "todo")
	bp.Route("/", "index", h.index)
	bp.Route("/add", "add", h.csrfProtected(h.add), http.MethodPost)
	bp.Route("/update", "update", h.csrfProtected(h.update), http.MethodPost)
	bp.Route("/delete/<int:todo_id>", "delete", h.csrfProtected(h.delete), http.MethodPost)
	bp.Route("/complete/<int:todo_id>", "complete", h.csrfProtected(h.complete), http.MethodPost)
	return bp
}

// ---------- helpers ----------

// csrfProtected rejects the request with 400 unless the form token matches
// the session token.
func (h *Handler) csrfProtected(next web.HandlerFunc) web.HandlerFunc {
	return func(c *web.Context) any {
		if !validCSRF(c) {
			h.logger.Warn("CSRF validation failed", "path", c.Request.Path)
			return web.Abort(http.StatusBadRequest)
		}
		return next(c)
	}
}

func (h *Handler) redirectIndex(c *web.Context) *web.Response {
	loc, err := c.App.URLFor(BlueprintName+".index", nil)
	if err != nil {
		loc = "/"
	}
	return web.Redirect(loc)
}

func (h *Handler) storeError(op string, err error) *web.Response {
	h.logger.Error("Store operation failed", "op", op, "error", err)
	return web.Abort(http.StatusInternalServerError)
}

func byID(id int) query.Predicate {
	return query.Field("id").Equals(id)
}

// ---------- routes ----------

func (h *Handler) index(c *web.Context) any {
	return web.Render(c, "index.html", map[string]any{"todo_list": h.db.All()})
}

func (h *Handler) add(c *web.Context) any {
	var form addForm
	if err := h.decoder.Decode(&form, c.Request.Form); err != nil {
		h.logger.Warn("Add: invalid form", "error", err)
		return web.Abort(http.StatusBadRequest)
	}
	rec := store.Record{"id": h.newID(), "title": form.Title, "complete": false}
	if err := h.db.Insert(rec); err != nil {
		return h.storeError("add", err)
	}
	h.logger.Info("Todo added", "id", rec["id"])
	return h.redirectIndex(c)
}

func (h *Handler) update(c *web.Context) any {
	var form updateForm
	if err := h.decoder.Decode(&form, c.Request.Form); err != nil {
		h.logger.Warn("Update: invalid form", "error", err)
		return web.Abort(http.StatusBadRequest)
	}
	id, err := strconv.Atoi(form.ID)
	if err != nil {
		h.logger.Warn("Update: invalid id", "hiddenField", form.ID)
		return web.Abort(http.StatusBadRequest)
	}
	if err := h.db.Update(store.Record{"title": form.Title}, byID(id)); err != nil {
		return h.storeError("update", err)
	}
	return h.redirectIndex(c)
}

func (h *Handler) delete(c *web.Context) any {
	id := c.Params["todo_id"]
	if err := h.db.Remove(byID(id)); err != nil {
		return h.storeError("delete", err)
	}
	h.logger.Info("Todo deleted", "id", id)
	return h.redirectIndex(c)
}

func (h *Handler) complete(c *web.Context) any {
	id := c.Params["todo_id"]
	if err := h.db.Update(store.Record{"complete": true}, byID(id)); err != nil {
		return h.storeError("complete", err)
	}
	return h.redirectIndex(c)
}
