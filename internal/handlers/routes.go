package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/vaughan-dsouza/godo/internal/auth"
	"github.com/vaughan-dsouza/godo/internal/middleware"
	"github.com/vaughan-dsouza/godo/internal/view"
)

// Routes assembles the full application router: public pages, the /auth
// group, the signed-in todo app and the admin panel.
func Routes(h *Handler, m *auth.Manager, ah *auth.Handlers, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))
	r.Use(m.WithUser)

	r.Handle("/static/*", view.Static())

	// Public
	r.Get("/", h.Public.Landing)
	r.Get("/about", h.Public.About)
	r.Get("/features", h.Public.Features)

	r.Mount("/auth", ah.Routes())

	// Signed-in
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser)

		r.Get("/dashboard", h.Todos.Dashboard)
		r.Get("/todos/new", h.Todos.NewForm)
		r.Post("/todos/new", h.Todos.Create)
		r.Get("/todos/{id}/edit", h.Todos.EditForm)
		r.Post("/todos/{id}/edit", h.Todos.Update)
		r.Post("/todos/{id}/toggle", h.Todos.Toggle)
		r.Post("/todos/{id}/delete", h.Todos.Delete)
	})

	// Admin
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin)

		r.Get("/admin", h.Admin.Home)
		r.Get("/admin/users", h.Admin.UsersPage)
		r.Post("/admin/users/new", h.Admin.CreateUser)
		r.Post("/admin/users/{id}/role", h.Admin.SetRole)
		r.Post("/admin/users/{id}/toggle", h.Admin.ToggleUser)
		r.Post("/admin/users/{id}/delete", h.Admin.DeleteUser)
		r.Get("/admin/todos", h.Admin.TodosPage)
		r.Post("/admin/todos/{id}/delete", h.Admin.DeleteTodo)
		r.Get("/admin/system", h.Admin.System)
	})

	return r
}

// LoginLimiter is the default limiter for POST /auth/login: a small burst,
// then one attempt per second per client IP.
func LoginLimiter() func(http.Handler) http.Handler {
	return middleware.RateLimit(rate.Limit(1), 5, 3*time.Minute)
}
