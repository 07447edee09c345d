package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/vaughan-dsouza/godo/internal/models"
	"github.com/vaughan-dsouza/godo/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// SessionCookie holds the signed session token.
const SessionCookie = "godo_session"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
)

// Manager owns credentials and sessions: it hashes passwords, checks logins
// and issues the session cookie. Everything identity-shaped goes through here
// so handlers never touch bcrypt or JWTs directly.
type Manager struct {
	users  *store.UserStore
	secret string
	ttl    time.Duration
	log    zerolog.Logger
}

func NewManager(users *store.UserStore, secret string, ttl time.Duration, log zerolog.Logger) *Manager {
	return &Manager{users: users, secret: secret, ttl: ttl, log: log}
}

// Authenticate checks a username/password pair. Unknown users and wrong
// passwords both come back as ErrInvalidCredentials; disabled accounts are
// reported separately so the login page can say so.
func (m *Manager) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := m.users.GetByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !u.Active {
		return nil, ErrAccountDisabled
	}

	if err := m.users.TouchLastLogin(ctx, u.ID); err != nil {
		m.log.Warn().Err(err).Int64("user_id", u.ID).Msg("could not record last login")
	}
	return u, nil
}

// Register creates a regular user account from the public signup form.
func (m *Manager) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	return m.CreateUser(ctx, username, email, password, models.RoleUser)
}

// CreateUser creates an account with an explicit role. Used by Register and
// by the admin user-creation form.
func (m *Manager) CreateUser(ctx context.Context, username, email, password string, role models.Role) (*models.User, error) {
	if len(password) < 6 {
		return nil, store.Validationf("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}
	return m.users.Create(ctx, username, email, string(hash), role)
}

// ChangePassword verifies the current password before storing the new one.
func (m *Manager) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	u, err := m.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}

	if len(next) < 6 {
		return store.Validationf("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("auth: hash password: %w", err)
	}
	return m.users.UpdatePassword(ctx, userID, string(hash))
}

// SetSession issues a token for the user and drops it in the session cookie.
func (m *Manager) SetSession(w http.ResponseWriter, u *models.User) error {
	token, err := issueToken(u.ID, u.Username, m.secret, m.ttl)
	if err != nil {
		return fmt.Errorf("auth: issue session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearSession expires the session cookie.
func (m *Manager) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
