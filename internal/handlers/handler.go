package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/vaughan-dsouza/godo/internal/auth"
	"github.com/vaughan-dsouza/godo/internal/store"
)

// Handler bundles the page handlers for the public site, the todo app and
// the admin panel.
type Handler struct {
	Public *PublicHandler
	Todos  *TodoHandler
	Admin  *AdminHandler
}

func NewHandler(users *store.UserStore, todos *store.TodoStore, manager *auth.Manager, log zerolog.Logger) *Handler {
	return &Handler{
		Public: &PublicHandler{},
		Todos:  &TodoHandler{Todos: todos, Log: log},
		Admin:  &AdminHandler{Users: users, Todos: todos, Manager: manager, Log: log},
	}
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
