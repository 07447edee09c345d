package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vaughan-dsouza/godo/internal/models"
)

// UserStore reads and writes user records. Mutations that could remove an
// active admin are gated inside the statement itself, so the last-admin
// invariant holds even under concurrent demotions (see adminGate).
type UserStore struct {
	db *sqlx.DB
}

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

// adminGate only matches the target row when mutating it cannot remove the
// last active admin: either the target is not an active admin, or another
// active admin exists. Appended to UPDATE/DELETE statements that take
// (..., id, id) as their trailing arguments.
const adminGate = ` AND (role <> 'admin' OR NOT active
	OR EXISTS (SELECT 1 FROM users au WHERE au.role = 'admin' AND au.active AND au.id <> ?))`

func (s *UserStore) Create(ctx context.Context, username, email, passwordHash string, role models.Role) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	switch {
	case username == "":
		return nil, Validationf("username is required")
	case email == "":
		return nil, Validationf("email is required")
	case passwordHash == "":
		return nil, Validationf("password is required")
	case !role.Valid():
		return nil, Validationf("unknown role %q", role)
	}

	if taken, err := s.exists(ctx, `SELECT 1 FROM users WHERE username = ?`, username); err != nil {
		return nil, err
	} else if taken {
		return nil, Validationf("username %q is already taken", username)
	}
	if taken, err := s.exists(ctx, `SELECT 1 FROM users WHERE email = ?`, email); err != nil {
		return nil, err
	} else if taken {
		return nil, Validationf("email %q is already registered", email)
	}

	now := time.Now().UTC()
	u := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	q := s.db.Rebind(`
		INSERT INTO users (username, email, password_hash, role, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)
	if err := s.db.QueryRowxContext(ctx, q, u.Username, u.Email, u.PasswordHash, u.Role, u.Active, u.CreatedAt, u.UpdatedAt).Scan(&u.ID); err != nil {
		return nil, fmt.Errorf("store: create user: %w", err)
	}
	return &u, nil
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	q := s.db.Rebind(`SELECT * FROM users WHERE id = ?`)
	if err := s.db.GetContext(ctx, &u, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: get user %d: %w", id, err)
	}
	return &u, nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	q := s.db.Rebind(`SELECT * FROM users WHERE username = ?`)
	if err := s.db.GetContext(ctx, &u, q, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: get user %q: %w", username, err)
	}
	return &u, nil
}

// List returns every user, oldest account first.
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.SelectContext(ctx, &users, `SELECT * FROM users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("store: list users: %w", err)
	}
	return users, nil
}

// SetRole changes a user's role. Demoting the last active admin fails with a
// ConflictError.
func (s *UserStore) SetRole(ctx context.Context, id int64, role models.Role) error {
	if !role.Valid() {
		return Validationf("unknown role %q", role)
	}

	if role == models.RoleAdmin {
		// Promotions can only add admins; no gate needed.
		return s.plainUpdate(ctx, id, `UPDATE users SET role = ?, updated_at = ? WHERE id = ?`, role)
	}

	q := s.db.Rebind(`UPDATE users SET role = ?, updated_at = ? WHERE id = ?` + adminGate)
	res, err := s.db.ExecContext(ctx, q, role, time.Now().UTC(), id, id)
	if err != nil {
		return fmt.Errorf("store: set role: %w", err)
	}
	return s.gateOutcome(ctx, res, id, "cannot demote the last active admin")
}

// SetActive flips the active flag. Deactivating the last active admin fails
// with a ConflictError.
func (s *UserStore) SetActive(ctx context.Context, id int64, active bool) error {
	if active {
		return s.plainUpdate(ctx, id, `UPDATE users SET active = ?, updated_at = ? WHERE id = ?`, active)
	}

	q := s.db.Rebind(`UPDATE users SET active = ?, updated_at = ? WHERE id = ?` + adminGate)
	res, err := s.db.ExecContext(ctx, q, active, time.Now().UTC(), id, id)
	if err != nil {
		return fmt.Errorf("store: set active: %w", err)
	}
	return s.gateOutcome(ctx, res, id, "cannot deactivate the last active admin")
}

// UpdateEmail changes the account email, rejecting duplicates.
func (s *UserStore) UpdateEmail(ctx context.Context, id int64, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return Validationf("email is required")
	}
	if taken, err := s.exists(ctx, `SELECT 1 FROM users WHERE email = ? AND id <> ?`, email, id); err != nil {
		return err
	} else if taken {
		return Validationf("email %q is already registered", email)
	}
	return s.plainUpdate(ctx, id, `UPDATE users SET email = ?, updated_at = ? WHERE id = ?`, email)
}

// UpdatePassword stores a new password hash.
func (s *UserStore) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	if passwordHash == "" {
		return Validationf("password is required")
	}
	return s.plainUpdate(ctx, id, `UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`, passwordHash)
}

// TouchLastLogin records a successful sign-in. Not treated as an edit, so
// updated_at is left alone.
func (s *UserStore) TouchLastLogin(ctx context.Context, id int64) error {
	q := s.db.Rebind(`UPDATE users SET last_login = ? WHERE id = ?`)
	if _, err := s.db.ExecContext(ctx, q, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("store: touch last login: %w", err)
	}
	return nil
}

// Delete removes a user and their todos in one transaction. Self-deletion and
// deleting the last active admin fail with a ConflictError.
func (s *UserStore) Delete(ctx context.Context, id, actingID int64) error {
	if id == actingID {
		return Conflictf("cannot delete your own account")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: delete user: %w", err)
	}
	defer tx.Rollback()

	q := tx.Rebind(`DELETE FROM todos WHERE user_id = ?`)
	if _, err := tx.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("store: delete user todos: %w", err)
	}

	q = tx.Rebind(`DELETE FROM users WHERE id = ?` + adminGate)
	res, err := tx.ExecContext(ctx, q, id, id)
	if err != nil {
		return fmt.Errorf("store: delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete user: %w", err)
	}
	if n == 0 {
		// Rolling back also restores the todos deleted above.
		if _, err := s.GetByID(ctx, id); errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return Conflictf("cannot delete the last active admin")
	}
	return tx.Commit()
}

// CountByRole returns the number of accounts per role.
func (s *UserStore) CountByRole(ctx context.Context) (map[models.Role]int, error) {
	rows, err := s.db.QueryxContext(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, fmt.Errorf("store: count by role: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.Role]int)
	for rows.Next() {
		var role models.Role
		var n int
		if err := rows.Scan(&role, &n); err != nil {
			return nil, fmt.Errorf("store: count by role: %w", err)
		}
		counts[role] = n
	}
	return counts, rows.Err()
}

// CountActive returns the number of active accounts.
func (s *UserStore) CountActive(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users WHERE active`); err != nil {
		return 0, fmt.Errorf("store: count active: %w", err)
	}
	return n, nil
}

func (s *UserStore) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var n int
	err := s.db.GetContext(ctx, &n, s.db.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: exists check: %w", err)
	}
	return true, nil
}

func (s *UserStore) plainUpdate(ctx context.Context, id int64, query string, value any) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(query), value, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("store: update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: update user: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// gateOutcome classifies a zero-row result from a gated statement: the target
// is either gone (NotFound) or protected by the last-admin invariant.
func (s *UserStore) gateOutcome(ctx context.Context, res sql.Result, id int64, conflictMsg string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}
	if _, err := s.GetByID(ctx, id); errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	return Conflictf("%s", conflictMsg)
}
