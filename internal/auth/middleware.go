package auth

import (
	"context"
	"net/http"

	"github.com/vaughan-dsouza/godo/internal/models"
)

// context key
type ctxKey string

const ctxUserKey ctxKey = "user"

// UserFrom returns the signed-in user, if any.
func UserFrom(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(ctxUserKey).(*models.User)
	return u, ok
}

// WithUser resolves the session cookie into a user and stores it in the
// request context. The account row is re-read on every request, so disabling
// or deleting an account kills its live sessions immediately. Requests
// without a valid session pass through anonymous.
func (m *Manager) WithUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := verifyToken(cookie.Value, m.secret)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		u, err := m.users.GetByID(r.Context(), claims.SubjectInt())
		if err != nil || !u.Active {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), ctxUserKey, u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser bounces anonymous requests to the login page.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFrom(r.Context()); !ok {
			http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects signed-in non-admins with 403. Anonymous requests are
// sent to the login page like everywhere else.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFrom(r.Context())
		if !ok {
			http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
			return
		}
		if !u.Role.IsAdmin() {
			http.Error(w, "admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
