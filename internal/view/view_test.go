package view

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	g "maragu.dev/gomponents"

	"github.com/vaughan-dsouza/godo/internal/models"
	"github.com/vaughan-dsouza/godo/internal/store"
)

func render(t *testing.T, page g.Node) string {
	t.Helper()
	var sb strings.Builder
	if err := page.Render(&sb); err != nil {
		t.Fatalf("render: %v", err)
	}
	return sb.String()
}

func sampleUser(role models.Role) *models.User {
	return &models.User{
		ID:       7,
		Username: "alice",
		Email:    "alice@example.com",
		Role:     role,
		Active:   true,
	}
}

func TestRenderSetsContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	Render(rec, 200, LandingPage())

	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "<!doctype html>") {
		t.Errorf("body does not start with doctype: %.40s", rec.Body.String())
	}
}

func TestLandingPage(t *testing.T) {
	body := render(t, LandingPage())

	for _, want := range []string{"Get Things Done", "/auth/login", "/auth/register", "admin123"} {
		if !strings.Contains(body, want) {
			t.Errorf("landing page missing %q", want)
		}
	}
}

func TestLoginPageShowsError(t *testing.T) {
	body := render(t, LoginPage(LoginData{Username: "alice", Error: "Invalid username or password"}))

	if !strings.Contains(body, "Invalid username or password") {
		t.Error("error not rendered")
	}
	// The submitted username is kept in the field.
	if !strings.Contains(body, `value="alice"`) {
		t.Error("username not preserved")
	}
}

func TestDashboardPage(t *testing.T) {
	u := sampleUser(models.RoleUser)
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	todos := []models.Todo{
		{ID: 1, UserID: u.ID, Title: "Buy milk", Priority: models.PriorityHigh, DueDate: &due},
		{ID: 2, UserID: u.ID, Title: "Ship release", Priority: models.PriorityMedium, Completed: true},
	}
	st := store.OwnerStats{Total: 2, Completed: 1, Pending: 1, CompletionRate: 50}

	body := render(t, DashboardPage(u, st, todos, store.FilterAll, Flash{Success: "created"}))

	for _, want := range []string{
		"Welcome back, alice!",
		"Buy milk",
		"Ship release",
		"Due: 2026-09-01",
		"Todo created successfully!",
		"/todos/1/toggle",
		"/todos/2/edit",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}

func TestDashboardEscapesTodoContent(t *testing.T) {
	u := sampleUser(models.RoleUser)
	todos := []models.Todo{{ID: 1, UserID: u.ID, Title: `<script>alert("x")</script>`, Priority: models.PriorityLow}}

	body := render(t, DashboardPage(u, store.OwnerStats{Total: 1, Pending: 1}, todos, store.FilterAll, Flash{}))

	if strings.Contains(body, "<script>alert") {
		t.Error("todo title not escaped")
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Error("escaped title missing")
	}
}

func TestDashboardEmptyState(t *testing.T) {
	u := sampleUser(models.RoleUser)

	body := render(t, DashboardPage(u, store.OwnerStats{}, nil, store.FilterCompleted, Flash{}))
	if !strings.Contains(body, "No completed todos") {
		t.Error("empty state for completed filter missing")
	}
}

func TestUnknownFlashCodesRenderNothing(t *testing.T) {
	u := sampleUser(models.RoleUser)

	body := render(t, DashboardPage(u, store.OwnerStats{}, nil, store.FilterAll, Flash{Success: "bogus", Error: "nope"}))
	if strings.Contains(body, "alert-success") || strings.Contains(body, "alert-error") {
		t.Error("unknown flash codes rendered an alert")
	}
}

func TestFlashFrom(t *testing.T) {
	f := FlashFrom(url.Values{"success": {"created"}, "error": {"not_found"}})
	if f.Success != "created" || f.Error != "not_found" {
		t.Errorf("flash = %+v", f)
	}
}

func TestTodoFormPageEditPrefills(t *testing.T) {
	u := sampleUser(models.RoleUser)
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	todo := &models.Todo{ID: 4, Title: "Review notes", Description: "before Friday", Priority: models.PriorityHigh, DueDate: &due}

	body := render(t, TodoFormPage(u, todo, ""))

	for _, want := range []string{`value="Review notes"`, "before Friday", `value="2026-09-01"`, "/todos/4/edit"} {
		if !strings.Contains(body, want) {
			t.Errorf("edit form missing %q", want)
		}
	}
}

func TestNavShowsAdminLinkOnlyForAdmins(t *testing.T) {
	plain := render(t, DashboardPage(sampleUser(models.RoleUser), store.OwnerStats{}, nil, store.FilterAll, Flash{}))
	if strings.Contains(plain, `href="/admin"`) {
		t.Error("admin link shown to regular user")
	}

	admin := render(t, DashboardPage(sampleUser(models.RoleAdmin), store.OwnerStats{}, nil, store.FilterAll, Flash{}))
	if !strings.Contains(admin, `href="/admin"`) {
		t.Error("admin link missing for admin")
	}
}

func TestAdminUsersPageMarksViewer(t *testing.T) {
	viewer := sampleUser(models.RoleAdmin)
	users := []models.User{
		*viewer,
		{ID: 8, Username: "bob", Email: "bob@example.com", Role: models.RoleUser, Active: true},
	}

	body := render(t, AdminUsersPage(viewer, users, Flash{}, ""))

	if !strings.Contains(body, "(You)") {
		t.Error("viewer marker missing")
	}
	// Action forms target the other user, never the viewer.
	if strings.Contains(body, "/admin/users/7/delete") {
		t.Error("delete form rendered for the viewer's own row")
	}
	if !strings.Contains(body, "/admin/users/8/delete") {
		t.Error("delete form missing for other user")
	}
}

func TestAdminSystemPage(t *testing.T) {
	viewer := sampleUser(models.RoleAdmin)
	last := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	users := []models.User{
		{ID: 1, Username: "admin", Role: models.RoleAdmin, Active: true, LastLogin: &last},
		{ID: 2, Username: "bob", Role: models.RoleUser, Active: true},
	}
	st := store.SystemStats{
		Users:       2,
		ActiveUsers: 2,
		Todos:       3,
		Completed:   1,
		ByPriority:  map[models.Priority]int{models.PriorityHigh: 2, models.PriorityLow: 1},
		Recent:      []store.Activity{{Action: "Todo created", Username: "bob", At: last}},
	}

	body := render(t, AdminSystemPage(viewer, st, map[models.Role]int{models.RoleAdmin: 1, models.RoleUser: 1}, users))

	for _, want := range []string{"Todo created", "Aug 20, 2026", "Never", "33.3%"} {
		if !strings.Contains(body, want) {
			t.Errorf("system page missing %q", want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("short: %q", got)
	}
	if got := truncate("a very long todo title indeed", 10); got != "a very lon..." {
		t.Errorf("long: %q", got)
	}
	if got := truncate("héllo wörld", 5); got != "héllo..." {
		t.Errorf("multibyte: %q", got)
	}
}
