package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/vaughan-dsouza/godo/internal/auth"
	"github.com/vaughan-dsouza/godo/internal/models"
	"github.com/vaughan-dsouza/godo/internal/store"
	"github.com/vaughan-dsouza/godo/internal/view"
)

// TodoHandler serves the dashboard and the todo forms. Every route here sits
// behind RequireUser, so the context always carries a user.
type TodoHandler struct {
	Todos *store.TodoStore
	Log   zerolog.Logger
}

func (h *TodoHandler) caller(r *http.Request) (store.Caller, *models.User) {
	u, _ := auth.UserFrom(r.Context())
	return store.Caller{ID: u.ID, Admin: u.Role.IsAdmin()}, u
}

// ---------------------- DASHBOARD ----------------------

func (h *TodoHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	_, u := h.caller(r)
	filter := store.ParseFilter(r.URL.Query().Get("filter"))

	todos, err := h.Todos.ListByOwner(r.Context(), u.ID, filter)
	if err != nil {
		h.internalError(w, err, "list todos")
		return
	}
	stats, err := h.Todos.OwnerStats(r.Context(), u.ID)
	if err != nil {
		h.internalError(w, err, "owner stats")
		return
	}

	view.Render(w, http.StatusOK, view.DashboardPage(u, stats, todos, filter, view.FlashFrom(r.URL.Query())))
}

// ---------------------- CREATE ----------------------

func (h *TodoHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	_, u := h.caller(r)
	view.Render(w, http.StatusOK, view.TodoFormPage(u, nil, ""))
}

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	_, u := h.caller(r)

	in, msg := todoInput(r)
	if msg != "" {
		view.Render(w, http.StatusBadRequest, view.TodoFormPage(u, nil, msg))
		return
	}

	_, err := h.Todos.Create(r.Context(), u.ID, in)
	if store.IsValidation(err) {
		view.Render(w, http.StatusBadRequest, view.TodoFormPage(u, nil, err.Error()))
		return
	}
	if err != nil {
		h.Log.Error().Err(err).Msg("create todo")
		view.Render(w, http.StatusInternalServerError, view.TodoFormPage(u, nil, "Failed to create todo"))
		return
	}

	http.Redirect(w, r, "/dashboard?success=created", http.StatusSeeOther)
}

// ---------------------- EDIT ----------------------

func (h *TodoHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	_, u := h.caller(r)

	id, err := parseID(r)
	if err != nil {
		http.Redirect(w, r, "/dashboard?error=not_found", http.StatusSeeOther)
		return
	}

	todo, err := h.Todos.GetForOwner(r.Context(), id, u.ID)
	if errors.Is(err, store.ErrNotFound) {
		http.Redirect(w, r, "/dashboard?error=not_found", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.internalError(w, err, "load todo")
		return
	}

	view.Render(w, http.StatusOK, view.TodoFormPage(u, todo, ""))
}

func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, u := h.caller(r)

	id, err := parseID(r)
	if err != nil {
		http.Redirect(w, r, "/dashboard?error=not_found", http.StatusSeeOther)
		return
	}

	todo, err := h.Todos.GetForOwner(r.Context(), id, u.ID)
	if errors.Is(err, store.ErrNotFound) {
		http.Redirect(w, r, "/dashboard?error=not_found", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.internalError(w, err, "load todo")
		return
	}

	in, msg := todoInput(r)
	if msg != "" {
		view.Render(w, http.StatusBadRequest, view.TodoFormPage(u, todo, msg))
		return
	}

	err = h.Todos.Update(r.Context(), id, caller, in)
	switch {
	case store.IsValidation(err):
		view.Render(w, http.StatusBadRequest, view.TodoFormPage(u, todo, err.Error()))
	case errors.Is(err, store.ErrNotFound):
		http.Redirect(w, r, "/dashboard?error=not_found", http.StatusSeeOther)
	case err != nil:
		h.Log.Error().Err(err).Int64("todo_id", id).Msg("update todo")
		view.Render(w, http.StatusInternalServerError, view.TodoFormPage(u, todo, "Failed to update todo"))
	default:
		http.Redirect(w, r, "/dashboard?success=updated", http.StatusSeeOther)
	}
}

// ---------------------- TOGGLE ----------------------

func (h *TodoHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	caller, _ := h.caller(r)

	id, err := parseID(r)
	if err != nil {
		http.Redirect(w, r, "/dashboard?error=not_found", http.StatusSeeOther)
		return
	}

	_, err = h.Todos.Toggle(r.Context(), id, caller)
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Redirect(w, r, "/dashboard?error=not_found", http.StatusSeeOther)
	case err != nil:
		h.Log.Error().Err(err).Int64("todo_id", id).Msg("toggle todo")
		http.Redirect(w, r, "/dashboard?error=toggle_failed", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/dashboard?success=toggled", http.StatusSeeOther)
	}
}

// ---------------------- DELETE ----------------------

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, _ := h.caller(r)

	id, err := parseID(r)
	if err != nil {
		http.Redirect(w, r, "/dashboard?error=not_found", http.StatusSeeOther)
		return
	}

	err = h.Todos.Delete(r.Context(), id, caller)
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Redirect(w, r, "/dashboard?error=not_found", http.StatusSeeOther)
	case err != nil:
		h.Log.Error().Err(err).Int64("todo_id", id).Msg("delete todo")
		http.Redirect(w, r, "/dashboard?error=delete_failed", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/dashboard?success=deleted", http.StatusSeeOther)
	}
}

func (h *TodoHandler) internalError(w http.ResponseWriter, err error, what string) {
	h.Log.Error().Err(err).Msg(what)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// todoInput reads the shared create/edit form fields. The returned message is
// non-empty when a field cannot be parsed.
func todoInput(r *http.Request) (store.TodoInput, string) {
	in := store.TodoInput{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
	}

	p, ok := models.ParsePriority(r.PostFormValue("priority"))
	if !ok {
		return in, "Unknown priority"
	}
	in.Priority = p

	if v := r.PostFormValue("due_date"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return in, "Due date must be in YYYY-MM-DD format"
		}
		in.DueDate = &d
	}

	return in, ""
}
