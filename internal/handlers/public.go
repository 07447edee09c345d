package handlers

import (
	"net/http"

	"github.com/vaughan-dsouza/godo/internal/auth"
	"github.com/vaughan-dsouza/godo/internal/view"
)

// PublicHandler serves the pages that need no account.
type PublicHandler struct{}

// Landing shows the public home page, or the dashboard for signed-in users.
func (h *PublicHandler) Landing(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.UserFrom(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	view.Render(w, http.StatusOK, view.LandingPage())
}

func (h *PublicHandler) About(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFrom(r.Context())
	view.Render(w, http.StatusOK, view.AboutPage(u))
}

func (h *PublicHandler) Features(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFrom(r.Context())
	view.Render(w, http.StatusOK, view.FeaturesPage(u))
}
