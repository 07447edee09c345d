package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/vaughan-dsouza/godo/internal/auth"
	"github.com/vaughan-dsouza/godo/internal/models"
	"github.com/vaughan-dsouza/godo/internal/store"
	"github.com/vaughan-dsouza/godo/internal/view"
)

// AdminHandler serves the admin panel. Every route here sits behind
// RequireAdmin.
type AdminHandler struct {
	Users   *store.UserStore
	Todos   *store.TodoStore
	Manager *auth.Manager
	Log     zerolog.Logger
}

func (h *AdminHandler) viewer(r *http.Request) *models.User {
	u, _ := auth.UserFrom(r.Context())
	return u
}

// ---------------------- OVERVIEW ----------------------

func (h *AdminHandler) Home(w http.ResponseWriter, r *http.Request) {
	u := h.viewer(r)

	stats, err := h.Todos.SystemStats(r.Context())
	if err != nil {
		h.internalError(w, err, "system stats")
		return
	}
	recent, err := h.Todos.ListAll(r.Context(), 10)
	if err != nil {
		h.internalError(w, err, "recent todos")
		return
	}

	view.Render(w, http.StatusOK, view.AdminHomePage(u, stats, recent))
}

// ---------------------- USERS ----------------------

func (h *AdminHandler) UsersPage(w http.ResponseWriter, r *http.Request) {
	u := h.viewer(r)

	users, err := h.Users.List(r.Context())
	if err != nil {
		h.internalError(w, err, "list users")
		return
	}

	view.Render(w, http.StatusOK, view.AdminUsersPage(u, users, view.FlashFrom(r.URL.Query()), ""))
}

func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	u := h.viewer(r)

	role, ok := models.ParseRole(r.PostFormValue("role"))
	if !ok {
		http.Redirect(w, r, "/admin/users?error=invalid_role", http.StatusSeeOther)
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	_, err := h.Manager.CreateUser(r.Context(), username, email, password, role)
	if store.IsValidation(err) {
		users, lerr := h.Users.List(r.Context())
		if lerr != nil {
			h.internalError(w, lerr, "list users")
			return
		}
		view.Render(w, http.StatusBadRequest, view.AdminUsersPage(u, users, view.Flash{}, err.Error()))
		return
	}
	if err != nil {
		h.Log.Error().Err(err).Msg("create user")
		http.Redirect(w, r, "/admin/users?error=create_failed", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/users?success=user_created", http.StatusSeeOther)
}

func (h *AdminHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	u := h.viewer(r)

	id, err := parseID(r)
	if err != nil {
		http.Redirect(w, r, "/admin/users?error=user_not_found", http.StatusSeeOther)
		return
	}

	role, ok := models.ParseRole(r.PostFormValue("role"))
	if !ok {
		http.Redirect(w, r, "/admin/users?error=invalid_role", http.StatusSeeOther)
		return
	}

	// Admins cannot demote themselves; re-selecting admin is a no-op.
	if id == u.ID && role != models.RoleAdmin {
		http.Redirect(w, r, "/admin/users?error=cannot_demote_self", http.StatusSeeOther)
		return
	}

	err = h.Users.SetRole(r.Context(), id, role)
	switch {
	case store.IsConflict(err):
		http.Redirect(w, r, "/admin/users?error=last_admin", http.StatusSeeOther)
	case errors.Is(err, store.ErrNotFound):
		http.Redirect(w, r, "/admin/users?error=user_not_found", http.StatusSeeOther)
	case err != nil:
		h.Log.Error().Err(err).Int64("user_id", id).Msg("set role")
		http.Redirect(w, r, "/admin/users?error=role_update_failed", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/admin/users?success=role_updated", http.StatusSeeOther)
	}
}

func (h *AdminHandler) ToggleUser(w http.ResponseWriter, r *http.Request) {
	u := h.viewer(r)

	id, err := parseID(r)
	if err != nil {
		http.Redirect(w, r, "/admin/users?error=user_not_found", http.StatusSeeOther)
		return
	}

	if id == u.ID {
		http.Redirect(w, r, "/admin/users?error=cannot_deactivate_self", http.StatusSeeOther)
		return
	}

	target, err := h.Users.GetByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Redirect(w, r, "/admin/users?error=user_not_found", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.internalError(w, err, "load user")
		return
	}

	err = h.Users.SetActive(r.Context(), id, !target.Active)
	switch {
	case store.IsConflict(err):
		http.Redirect(w, r, "/admin/users?error=last_admin", http.StatusSeeOther)
	case errors.Is(err, store.ErrNotFound):
		http.Redirect(w, r, "/admin/users?error=user_not_found", http.StatusSeeOther)
	case err != nil:
		h.Log.Error().Err(err).Int64("user_id", id).Msg("toggle user")
		http.Redirect(w, r, "/admin/users?error=status_update_failed", http.StatusSeeOther)
	case target.Active:
		http.Redirect(w, r, "/admin/users?success=user_deactivated", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/admin/users?success=user_activated", http.StatusSeeOther)
	}
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	u := h.viewer(r)

	id, err := parseID(r)
	if err != nil {
		http.Redirect(w, r, "/admin/users?error=user_not_found", http.StatusSeeOther)
		return
	}

	if id == u.ID {
		http.Redirect(w, r, "/admin/users?error=cannot_delete_self", http.StatusSeeOther)
		return
	}

	err = h.Users.Delete(r.Context(), id, u.ID)
	switch {
	case store.IsConflict(err):
		http.Redirect(w, r, "/admin/users?error=last_admin", http.StatusSeeOther)
	case errors.Is(err, store.ErrNotFound):
		http.Redirect(w, r, "/admin/users?error=user_not_found", http.StatusSeeOther)
	case err != nil:
		h.Log.Error().Err(err).Int64("user_id", id).Msg("delete user")
		http.Redirect(w, r, "/admin/users?error=user_delete_failed", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/admin/users?success=user_deleted", http.StatusSeeOther)
	}
}

// ---------------------- TODOS ----------------------

func (h *AdminHandler) TodosPage(w http.ResponseWriter, r *http.Request) {
	u := h.viewer(r)

	todos, err := h.Todos.ListAll(r.Context(), 50)
	if err != nil {
		h.internalError(w, err, "list all todos")
		return
	}

	view.Render(w, http.StatusOK, view.AdminTodosPage(u, todos, view.FlashFrom(r.URL.Query())))
}

func (h *AdminHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	u := h.viewer(r)

	id, err := parseID(r)
	if err != nil {
		http.Redirect(w, r, "/admin/todos?error=not_found", http.StatusSeeOther)
		return
	}

	err = h.Todos.Delete(r.Context(), id, store.Caller{ID: u.ID, Admin: true})
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Redirect(w, r, "/admin/todos?error=not_found", http.StatusSeeOther)
	case err != nil:
		h.Log.Error().Err(err).Int64("todo_id", id).Msg("admin delete todo")
		http.Redirect(w, r, "/admin/todos?error=delete_failed", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/admin/todos?success=deleted", http.StatusSeeOther)
	}
}

// ---------------------- SYSTEM ----------------------

func (h *AdminHandler) System(w http.ResponseWriter, r *http.Request) {
	u := h.viewer(r)

	stats, err := h.Todos.SystemStats(r.Context())
	if err != nil {
		h.internalError(w, err, "system stats")
		return
	}
	roles, err := h.Users.CountByRole(r.Context())
	if err != nil {
		h.internalError(w, err, "count roles")
		return
	}
	users, err := h.Users.List(r.Context())
	if err != nil {
		h.internalError(w, err, "list users")
		return
	}

	view.Render(w, http.StatusOK, view.AdminSystemPage(u, stats, roles, users))
}

func (h *AdminHandler) internalError(w http.ResponseWriter, err error, what string) {
	h.Log.Error().Err(err).Msg(what)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
