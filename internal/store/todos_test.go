package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vaughan-dsouza/godo/internal/models"
)

func mustCreateTodo(t *testing.T, todos *TodoStore, ownerID int64, in TodoInput) *models.Todo {
	t.Helper()
	td, err := todos.Create(context.Background(), ownerID, in)
	if err != nil {
		t.Fatalf("create todo: %v", err)
	}
	return td
}

func TestTodoCreateDefaults(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)
	todos := NewTodoStore(db)
	ctx := context.Background()

	owner := mustCreateUser(t, users, "alice", models.RoleUser)

	td := mustCreateTodo(t, todos, owner.ID, TodoInput{Title: "  Buy milk  "})
	if td.Title != "Buy milk" {
		t.Errorf("title = %q, want trimmed", td.Title)
	}
	if td.Priority != models.PriorityMedium {
		t.Errorf("priority = %q, want medium default", td.Priority)
	}
	if td.Completed {
		t.Error("new todos start pending")
	}
	if td.DueDate != nil {
		t.Error("due date should be nil")
	}

	got, err := todos.GetForOwner(ctx, td.ID, owner.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Buy milk" || got.UserID != owner.ID {
		t.Errorf("unexpected todo: %+v", got)
	}
}

func TestTodoCreateRequiresTitle(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)
	todos := NewTodoStore(db)
	ctx := context.Background()

	owner := mustCreateUser(t, users, "alice", models.RoleUser)

	if _, err := todos.Create(ctx, owner.ID, TodoInput{Title: "   "}); !IsValidation(err) {
		t.Fatalf("want ValidationError, got %v", err)
	}

	list, err := todos.ListByOwner(ctx, owner.ID, FilterAll)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("rejected todo was persisted: %d rows", len(list))
	}
}

func TestTodoOwnership(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)
	todos := NewTodoStore(db)
	ctx := context.Background()

	alice := mustCreateUser(t, users, "alice", models.RoleUser)
	bob := mustCreateUser(t, users, "bob", models.RoleUser)

	td := mustCreateTodo(t, todos, alice.ID, TodoInput{Title: "private"})
	stranger := Caller{ID: bob.ID}

	if _, err := todos.GetForOwner(ctx, td.ID, bob.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get: want ErrNotFound, got %v", err)
	}
	if err := todos.Update(ctx, td.ID, stranger, TodoInput{Title: "hijack"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update: want ErrNotFound, got %v", err)
	}
	if _, err := todos.Toggle(ctx, td.ID, stranger); !errors.Is(err, ErrNotFound) {
		t.Errorf("toggle: want ErrNotFound, got %v", err)
	}
	if err := todos.Delete(ctx, td.ID, stranger); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete: want ErrNotFound, got %v", err)
	}

	// Still intact under the rightful owner.
	got, err := todos.GetForOwner(ctx, td.ID, alice.ID)
	if err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if got.Title != "private" {
		t.Errorf("title = %q", got.Title)
	}
}

func TestTodoAdminBypassesOwnership(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)
	todos := NewTodoStore(db)
	ctx := context.Background()

	admin := mustCreateUser(t, users, "admin", models.RoleAdmin)
	alice := mustCreateUser(t, users, "alice", models.RoleUser)

	td := mustCreateTodo(t, todos, alice.ID, TodoInput{Title: "belongs to alice"})

	if err := todos.Delete(ctx, td.ID, Caller{ID: admin.ID, Admin: true}); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, err := todos.GetForOwner(ctx, td.ID, alice.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("todo survived admin delete: %v", err)
	}
}

func TestTodoListFilters(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)
	todos := NewTodoStore(db)
	ctx := context.Background()

	owner := mustCreateUser(t, users, "alice", models.RoleUser)
	caller := Caller{ID: owner.ID}

	first := mustCreateTodo(t, todos, owner.ID, TodoInput{Title: "first"})
	mustCreateTodo(t, todos, owner.ID, TodoInput{Title: "second"})
	done := mustCreateTodo(t, todos, owner.ID, TodoInput{Title: "done"})

	if _, err := todos.Toggle(ctx, done.ID, caller); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	all, err := todos.ListByOwner(ctx, owner.ID, FilterAll)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("all = %d, want 3", len(all))
	}
	// Newest first.
	if all[len(all)-1].ID != first.ID {
		t.Errorf("oldest todo not last: %+v", all)
	}

	pending, err := todos.ListByOwner(ctx, owner.ID, FilterPending)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("pending = %d, want 2", len(pending))
	}
	for _, td := range pending {
		if td.Completed {
			t.Errorf("completed todo in pending list: %+v", td)
		}
	}

	completed, err := todos.ListByOwner(ctx, owner.ID, FilterCompleted)
	if err != nil {
		t.Fatalf("list completed: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != done.ID {
		t.Errorf("completed = %+v", completed)
	}
}

func TestTodoListAllJoinsOwner(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)
	todos := NewTodoStore(db)
	ctx := context.Background()

	alice := mustCreateUser(t, users, "alice", models.RoleUser)
	bob := mustCreateUser(t, users, "bob", models.RoleUser)
	mustCreateTodo(t, todos, alice.ID, TodoInput{Title: "a"})
	mustCreateTodo(t, todos, bob.ID, TodoInput{Title: "b"})

	rows, err := todos.ListAll(ctx, 0)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	owners := map[string]bool{}
	for _, row := range rows {
		if row.OwnerName == "" || row.OwnerEmail == "" {
			t.Errorf("owner columns missing: %+v", row)
		}
		owners[row.OwnerName] = true
	}
	if !owners["alice"] || !owners["bob"] {
		t.Errorf("owners = %v", owners)
	}

	limited, err := todos.ListAll(ctx, 1)
	if err != nil {
		t.Fatalf("limited list: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limited = %d, want 1", len(limited))
	}
}

func TestTodoUpdate(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)
	todos := NewTodoStore(db)
	ctx := context.Background()

	owner := mustCreateUser(t, users, "alice", models.RoleUser)
	caller := Caller{ID: owner.ID}
	td := mustCreateTodo(t, todos, owner.ID, TodoInput{Title: "draft"})

	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	in := TodoInput{
		Title:       "final",
		Description: "ship it",
		Priority:    models.PriorityHigh,
		DueDate:     &due,
	}
	if err := todos.Update(ctx, td.ID, caller, in); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := todos.GetForOwner(ctx, td.ID, owner.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "final" || got.Description != "ship it" || got.Priority != models.PriorityHigh {
		t.Errorf("unexpected todo: %+v", got)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Errorf("due date = %v, want %v", got.DueDate, due)
	}

	if err := todos.Update(ctx, td.ID, caller, TodoInput{Title: " "}); !IsValidation(err) {
		t.Errorf("blank title: want ValidationError, got %v", err)
	}
}

func TestTodoToggleFlips(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)
	todos := NewTodoStore(db)
	ctx := context.Background()

	owner := mustCreateUser(t, users, "alice", models.RoleUser)
	caller := Caller{ID: owner.ID}
	td := mustCreateTodo(t, todos, owner.ID, TodoInput{Title: "flip me"})

	now, err := todos.Toggle(ctx, td.ID, caller)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !now {
		t.Error("first toggle should complete the todo")
	}

	now, err = todos.Toggle(ctx, td.ID, caller)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if now {
		t.Error("second toggle should reopen the todo")
	}

	if _, err := todos.Toggle(ctx, 999, caller); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id: want ErrNotFound, got %v", err)
	}
}

func TestOwnerStats(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)
	todos := NewTodoStore(db)
	ctx := context.Background()

	owner := mustCreateUser(t, users, "alice", models.RoleUser)
	caller := Caller{ID: owner.ID}

	empty, err := todos.OwnerStats(ctx, owner.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if empty.Total != 0 || empty.CompletionRate != 0 {
		t.Errorf("empty stats = %+v", empty)
	}

	var made []*models.Todo
	for _, title := range []string{"a", "b", "c", "d"} {
		made = append(made, mustCreateTodo(t, todos, owner.ID, TodoInput{Title: title}))
	}
	if _, err := todos.Toggle(ctx, made[0].ID, caller); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	st, err := todos.OwnerStats(ctx, owner.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Total != 4 || st.Completed != 1 || st.Pending != 3 {
		t.Errorf("stats = %+v", st)
	}
	if st.CompletionRate != 25 {
		t.Errorf("rate = %v, want 25", st.CompletionRate)
	}
}

func TestSystemStats(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)
	todos := NewTodoStore(db)
	ctx := context.Background()

	admin := mustCreateUser(t, users, "admin", models.RoleAdmin)
	alice := mustCreateUser(t, users, "alice", models.RoleUser)
	if err := users.SetActive(ctx, alice.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	mustCreateTodo(t, todos, admin.ID, TodoInput{Title: "high", Priority: models.PriorityHigh})
	td := mustCreateTodo(t, todos, admin.ID, TodoInput{Title: "low", Priority: models.PriorityLow})
	if _, err := todos.Toggle(ctx, td.ID, Caller{ID: admin.ID}); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	st, err := todos.SystemStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Users != 2 || st.ActiveUsers != 1 {
		t.Errorf("user counts = %+v", st)
	}
	if st.Todos != 2 || st.Completed != 1 {
		t.Errorf("todo counts = %+v", st)
	}
	if st.ByPriority[models.PriorityHigh] != 1 || st.ByPriority[models.PriorityLow] != 1 {
		t.Errorf("by priority = %v", st.ByPriority)
	}
	if len(st.Recent) != 2 {
		t.Fatalf("recent = %d entries, want 2", len(st.Recent))
	}
	for _, a := range st.Recent {
		if a.Username != "admin" || a.Action == "" || a.At.IsZero() {
			t.Errorf("activity = %+v", a)
		}
	}
}

func TestParseFilter(t *testing.T) {
	if got := ParseFilter("pending"); got != FilterPending {
		t.Errorf("pending: got %q", got)
	}
	if got := ParseFilter("completed"); got != FilterCompleted {
		t.Errorf("completed: got %q", got)
	}
	if got := ParseFilter(""); got != FilterAll {
		t.Errorf("empty: got %q", got)
	}
	if got := ParseFilter("bogus"); got != FilterAll {
		t.Errorf("bogus: got %q", got)
	}
}
