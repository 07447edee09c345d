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

// TodoStore reads and writes todo records. Every non-admin mutation is scoped
// to the owning user inside the statement, so a caller can never touch someone
// else's todo by guessing ids.
type TodoStore struct {
	db *sqlx.DB
}

func NewTodoStore(db *sqlx.DB) *TodoStore {
	return &TodoStore{db: db}
}

// Caller identifies who is performing a mutation. Admins bypass the ownership
// scope on Update, Toggle and Delete.
type Caller struct {
	ID    int64
	Admin bool
}

// TodoInput carries the editable fields of a todo.
type TodoInput struct {
	Title       string
	Description string
	Priority    models.Priority
	DueDate     *time.Time
}

// Filter narrows a todo listing by completion state.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

// ParseFilter maps a query-string value to a Filter, defaulting to all.
func ParseFilter(s string) Filter {
	switch Filter(s) {
	case FilterPending:
		return FilterPending
	case FilterCompleted:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// TodoWithOwner joins a todo with its owner's account info for admin views.
type TodoWithOwner struct {
	models.Todo
	OwnerName  string `db:"owner_name"`
	OwnerEmail string `db:"owner_email"`
}

// OwnerStats summarizes one user's todos for the dashboard cards.
type OwnerStats struct {
	Total          int
	Completed      int
	Pending        int
	CompletionRate float64
}

// SystemStats summarizes the whole installation for the admin system page.
type SystemStats struct {
	Users       int
	ActiveUsers int
	Todos       int
	Completed   int
	ByPriority  map[models.Priority]int
	Recent      []Activity
}

// Activity is one line of the admin recent-activity feed.
type Activity struct {
	Action   string
	Username string
	At       time.Time
}

func (s *TodoStore) Create(ctx context.Context, ownerID int64, in TodoInput) (*models.Todo, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, Validationf("title is required")
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	if !in.Priority.Valid() {
		return nil, Validationf("unknown priority %q", in.Priority)
	}

	now := time.Now().UTC()
	t := models.Todo{
		UserID:      ownerID,
		Title:       in.Title,
		Description: strings.TrimSpace(in.Description),
		Completed:   false,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	q := s.db.Rebind(`
		INSERT INTO todos (user_id, title, description, completed, priority, due_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)
	if err := s.db.QueryRowxContext(ctx, q, t.UserID, t.Title, t.Description, t.Completed, t.Priority, t.DueDate, t.CreatedAt, t.UpdatedAt).Scan(&t.ID); err != nil {
		return nil, fmt.Errorf("store: create todo: %w", err)
	}
	return &t, nil
}

// GetForOwner fetches a todo only if ownerID owns it. A todo that exists but
// belongs to someone else is reported as not found.
func (s *TodoStore) GetForOwner(ctx context.Context, id, ownerID int64) (*models.Todo, error) {
	var t models.Todo
	q := s.db.Rebind(`SELECT * FROM todos WHERE id = ? AND user_id = ?`)
	if err := s.db.GetContext(ctx, &t, q, id, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: get todo %d: %w", id, err)
	}
	return &t, nil
}

// ListByOwner returns one user's todos, newest first.
func (s *TodoStore) ListByOwner(ctx context.Context, ownerID int64, filter Filter) ([]models.Todo, error) {
	q := `SELECT * FROM todos WHERE user_id = ?`
	switch filter {
	case FilterPending:
		q += ` AND NOT completed`
	case FilterCompleted:
		q += ` AND completed`
	}
	q += ` ORDER BY created_at DESC, id DESC`

	var todos []models.Todo
	if err := s.db.SelectContext(ctx, &todos, s.db.Rebind(q), ownerID); err != nil {
		return nil, fmt.Errorf("store: list todos: %w", err)
	}
	return todos, nil
}

// ListAll returns the newest todos across all users with owner info attached.
// limit <= 0 means no limit.
func (s *TodoStore) ListAll(ctx context.Context, limit int) ([]TodoWithOwner, error) {
	q := `
		SELECT t.*, u.username AS owner_name, u.email AS owner_email
		FROM todos t
		JOIN users u ON u.id = t.user_id
		ORDER BY t.created_at DESC, t.id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	var todos []TodoWithOwner
	if err := s.db.SelectContext(ctx, &todos, s.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("store: list all todos: %w", err)
	}
	return todos, nil
}

// Update rewrites the editable fields of a todo. Non-admin callers can only
// update their own todos; anything else is not found.
func (s *TodoStore) Update(ctx context.Context, id int64, caller Caller, in TodoInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return Validationf("title is required")
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	if !in.Priority.Valid() {
		return Validationf("unknown priority %q", in.Priority)
	}

	q := `UPDATE todos SET title = ?, description = ?, priority = ?, due_date = ?, updated_at = ? WHERE id = ?`
	args := []any{in.Title, strings.TrimSpace(in.Description), in.Priority, in.DueDate, time.Now().UTC(), id}
	if !caller.Admin {
		q += ` AND user_id = ?`
		args = append(args, caller.ID)
	}

	res, err := s.db.ExecContext(ctx, s.db.Rebind(q), args...)
	if err != nil {
		return fmt.Errorf("store: update todo: %w", err)
	}
	return rowsOrNotFound(res)
}

// Toggle flips the completed flag and returns the new state.
func (s *TodoStore) Toggle(ctx context.Context, id int64, caller Caller) (bool, error) {
	q := `UPDATE todos SET completed = NOT completed, updated_at = ? WHERE id = ?`
	args := []any{time.Now().UTC(), id}
	if !caller.Admin {
		q += ` AND user_id = ?`
		args = append(args, caller.ID)
	}

	res, err := s.db.ExecContext(ctx, s.db.Rebind(q), args...)
	if err != nil {
		return false, fmt.Errorf("store: toggle todo: %w", err)
	}
	if err := rowsOrNotFound(res); err != nil {
		return false, err
	}

	var completed bool
	if err := s.db.GetContext(ctx, &completed, s.db.Rebind(`SELECT completed FROM todos WHERE id = ?`), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrNotFound
		}
		return false, fmt.Errorf("store: toggle todo: %w", err)
	}
	return completed, nil
}

// Delete removes a todo, scoped to the caller unless they are an admin.
func (s *TodoStore) Delete(ctx context.Context, id int64, caller Caller) error {
	q := `DELETE FROM todos WHERE id = ?`
	args := []any{id}
	if !caller.Admin {
		q += ` AND user_id = ?`
		args = append(args, caller.ID)
	}

	res, err := s.db.ExecContext(ctx, s.db.Rebind(q), args...)
	if err != nil {
		return fmt.Errorf("store: delete todo: %w", err)
	}
	return rowsOrNotFound(res)
}

// OwnerStats computes the dashboard counters for one user.
func (s *TodoStore) OwnerStats(ctx context.Context, ownerID int64) (OwnerStats, error) {
	var st OwnerStats
	q := s.db.Rebind(`
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN completed THEN 1 ELSE 0 END), 0)
		FROM todos WHERE user_id = ?`)
	if err := s.db.QueryRowxContext(ctx, q, ownerID).Scan(&st.Total, &st.Completed); err != nil {
		return OwnerStats{}, fmt.Errorf("store: owner stats: %w", err)
	}
	st.Pending = st.Total - st.Completed
	if st.Total > 0 {
		st.CompletionRate = float64(st.Completed) / float64(st.Total) * 100
	}
	return st, nil
}

// SystemStats computes the admin system-page counters and the recent
// activity feed.
func (s *TodoStore) SystemStats(ctx context.Context) (SystemStats, error) {
	st := SystemStats{ByPriority: make(map[models.Priority]int)}

	err := s.db.QueryRowxContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE active),
			(SELECT COUNT(*) FROM todos),
			(SELECT COALESCE(SUM(CASE WHEN completed THEN 1 ELSE 0 END), 0) FROM todos)`,
	).Scan(&st.Users, &st.ActiveUsers, &st.Todos, &st.Completed)
	if err != nil {
		return SystemStats{}, fmt.Errorf("store: system stats: %w", err)
	}

	rows, err := s.db.QueryxContext(ctx, `SELECT priority, COUNT(*) FROM todos GROUP BY priority`)
	if err != nil {
		return SystemStats{}, fmt.Errorf("store: system stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p models.Priority
		var n int
		if err := rows.Scan(&p, &n); err != nil {
			return SystemStats{}, fmt.Errorf("store: system stats: %w", err)
		}
		st.ByPriority[p] = n
	}
	if err := rows.Err(); err != nil {
		return SystemStats{}, fmt.Errorf("store: system stats: %w", err)
	}

	feed, err := s.db.QueryxContext(ctx, `
		SELECT u.username, t.created_at
		FROM todos t
		JOIN users u ON u.id = t.user_id
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT 10`)
	if err != nil {
		return SystemStats{}, fmt.Errorf("store: system stats: %w", err)
	}
	defer feed.Close()
	for feed.Next() {
		a := Activity{Action: "Todo created"}
		if err := feed.Scan(&a.Username, &a.At); err != nil {
			return SystemStats{}, fmt.Errorf("store: system stats: %w", err)
		}
		st.Recent = append(st.Recent, a)
	}
	return st, feed.Err()
}

func rowsOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
