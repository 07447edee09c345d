package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/vaughan-dsouza/godo/internal/store"
	"github.com/vaughan-dsouza/godo/internal/view"
)

// Handlers serves the /auth route group: login, logout, register and profile.
type Handlers struct {
	Manager *Manager
	Users   *store.UserStore
	Log     zerolog.Logger

	// LoginLimit wraps POST /login when set, to slow down password guessing.
	LoginLimit func(http.Handler) http.Handler
}

func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/login", h.LoginForm)
	if h.LoginLimit != nil {
		r.With(h.LoginLimit).Post("/login", h.Login)
	} else {
		r.Post("/login", h.Login)
	}
	r.Get("/logout", h.Logout)
	r.Get("/register", h.RegisterForm)
	r.Post("/register", h.Register)

	r.Group(func(r chi.Router) {
		r.Use(RequireUser)
		r.Get("/profile", h.Profile)
		r.Post("/profile", h.UpdateProfile)
	})

	return r
}

func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := UserFrom(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	view.Render(w, http.StatusOK, view.LoginPage(view.LoginData{
		Flash: view.FlashFrom(r.URL.Query()),
	}))
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	u, err := h.Manager.Authenticate(r.Context(), username, password)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		view.Render(w, http.StatusUnauthorized, view.LoginPage(view.LoginData{
			Username: username,
			Error:    "Invalid username or password",
		}))
		return
	case errors.Is(err, ErrAccountDisabled):
		view.Render(w, http.StatusUnauthorized, view.LoginPage(view.LoginData{
			Username: username,
			Error:    "Your account has been deactivated",
		}))
		return
	case err != nil:
		h.Log.Error().Err(err).Msg("login failed")
		view.Render(w, http.StatusInternalServerError, view.LoginPage(view.LoginData{
			Username: username,
			Error:    "Something went wrong. Please try again.",
		}))
		return
	}

	if err := h.Manager.SetSession(w, u); err != nil {
		h.Log.Error().Err(err).Msg("could not set session")
		view.Render(w, http.StatusInternalServerError, view.LoginPage(view.LoginData{
			Username: username,
			Error:    "Something went wrong. Please try again.",
		}))
		return
	}

	h.Log.Info().Str("username", u.Username).Msg("user signed in")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.Manager.ClearSession(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := UserFrom(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	view.Render(w, http.StatusOK, view.RegisterPage(view.RegisterData{}))
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	data := view.RegisterData{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
	}
	password := r.PostFormValue("password")
	confirm := r.PostFormValue("confirm")

	if password != confirm {
		data.Error = "Passwords do not match"
		view.Render(w, http.StatusBadRequest, view.RegisterPage(data))
		return
	}

	u, err := h.Manager.Register(r.Context(), data.Username, data.Email, password)
	if store.IsValidation(err) {
		data.Error = err.Error()
		view.Render(w, http.StatusBadRequest, view.RegisterPage(data))
		return
	}
	if err != nil {
		h.Log.Error().Err(err).Msg("registration failed")
		data.Error = "Something went wrong. Please try again."
		view.Render(w, http.StatusInternalServerError, view.RegisterPage(data))
		return
	}

	h.Log.Info().Str("username", u.Username).Msg("user registered")
	http.Redirect(w, r, "/auth/login?success=registered", http.StatusSeeOther)
}

func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFrom(r.Context())
	view.Render(w, http.StatusOK, view.ProfilePage(u, view.FlashFrom(r.URL.Query()), ""))
}

// UpdateProfile handles both profile forms; the hidden intent field says
// which one was submitted.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFrom(r.Context())

	switch r.PostFormValue("intent") {
	case "email":
		email := strings.TrimSpace(r.PostFormValue("email"))
		err := h.Users.UpdateEmail(r.Context(), u.ID, email)
		if store.IsValidation(err) {
			view.Render(w, http.StatusBadRequest, view.ProfilePage(u, view.Flash{}, err.Error()))
			return
		}
		if err != nil {
			h.Log.Error().Err(err).Int64("user_id", u.ID).Msg("email update failed")
			view.Render(w, http.StatusInternalServerError, view.ProfilePage(u, view.Flash{}, "Something went wrong. Please try again."))
			return
		}
		http.Redirect(w, r, "/auth/profile?success=email_updated", http.StatusSeeOther)

	case "password":
		current := r.PostFormValue("current")
		next := r.PostFormValue("password")
		err := h.Manager.ChangePassword(r.Context(), u.ID, current, next)
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			view.Render(w, http.StatusBadRequest, view.ProfilePage(u, view.Flash{}, "Current password is incorrect"))
		case store.IsValidation(err):
			view.Render(w, http.StatusBadRequest, view.ProfilePage(u, view.Flash{}, err.Error()))
		case err != nil:
			h.Log.Error().Err(err).Int64("user_id", u.ID).Msg("password change failed")
			view.Render(w, http.StatusInternalServerError, view.ProfilePage(u, view.Flash{}, "Something went wrong. Please try again."))
		default:
			http.Redirect(w, r, "/auth/profile?success=password_updated", http.StatusSeeOther)
		}

	default:
		view.Render(w, http.StatusBadRequest, view.ProfilePage(u, view.Flash{}, "Unknown action"))
	}
}
