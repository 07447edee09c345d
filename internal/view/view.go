// Package view builds every page of the app as a gomponents tree. Builders
// are pure functions from data to markup; handlers pick the data, views never
// touch the store. A nil user means the visitor is anonymous.
package view

import (
	"net/http"
	"strconv"
	"time"

	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"

	"github.com/vaughan-dsouza/godo/internal/models"
)

// Render writes a page to w with the given status code.
func Render(w http.ResponseWriter, status int, page g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = page.Render(w)
}

// page is the shared shell: HTML5 document, stylesheet, nav, main container.
func page(title string, nav g.Node, content ...g.Node) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:    title,
		Language: "en",
		Head: []g.Node{
			Link(Rel("stylesheet"), Href("/static/style.css")),
		},
		Body: []g.Node{
			nav,
			Main(Class("container"), g.Group(content)),
		},
	})
}

// navPublic is the navigation shown on landing, about and features pages.
func navPublic(u *models.User) g.Node {
	return Nav(Class("navbar"),
		A(Class("brand"), Href("/"), g.Text("📝 GoDo")),
		Div(Class("nav-links"),
			A(Href("/features"), g.Text("Features")),
			A(Href("/about"), g.Text("About")),
			g.If(u != nil, g.Group([]g.Node{
				A(Href("/dashboard"), g.Text("Dashboard")),
				A(Class("btn btn-secondary"), Href("/auth/logout"), g.Text("Logout")),
			})),
			g.If(u == nil, g.Group([]g.Node{
				A(Class("btn btn-primary"), Href("/auth/login"), g.Text("Sign In")),
				A(Class("btn btn-secondary"), Href("/auth/register"), g.Text("Register")),
			})),
		),
	)
}

// navDashboard is the navigation for signed-in pages.
func navDashboard(u *models.User) g.Node {
	return Nav(Class("navbar"),
		A(Class("brand"), Href("/dashboard"), g.Textf("📝 Welcome, %s", u.Username)),
		Div(Class("nav-links"),
			A(Href("/dashboard"), g.Text("Dashboard")),
			A(Href("/auth/profile"), g.Text("Profile")),
			g.If(u.Role.IsAdmin(), A(Href("/admin"), g.Text("Admin"))),
			A(Class("btn btn-secondary"), Href("/auth/logout"), g.Text("Logout")),
		),
	)
}

// navAdmin is the navigation for the admin panel.
func navAdmin() g.Node {
	return Nav(Class("navbar navbar-admin"),
		A(Class("brand"), Href("/admin"), g.Text("🔧 Admin Panel")),
		Div(Class("nav-links"),
			A(Href("/dashboard"), g.Text("Dashboard")),
			A(Href("/admin/users"), g.Text("Users")),
			A(Href("/admin/todos"), g.Text("Todos")),
			A(Href("/admin/system"), g.Text("System")),
			A(Href("/auth/profile"), g.Text("Profile")),
			A(Class("btn btn-secondary"), Href("/auth/logout"), g.Text("Logout")),
		),
	)
}

func card(children ...g.Node) g.Node {
	return Div(Class("card"), g.Group(children))
}

func statCard(icon, label, value string) g.Node {
	return Div(Class("card stat-card"),
		Div(Class("stat-icon"), g.Text(icon)),
		P(Class("stat-label"), g.Text(label)),
		P(Class("stat-value"), g.Text(value)),
	)
}

func statRow(label, value string) g.Node {
	return Div(Class("stat-row"),
		Span(Class("muted"), g.Text(label)),
		Span(Class("stat-row-value"), g.Text(value)),
	)
}

func itoa(n int) string { return strconv.Itoa(n) }

func fmtDate(t time.Time) string { return t.Format("Jan 2, 2006") }

func fmtDatePtr(t *time.Time, fallback string) string {
	if t == nil {
		return fallback
	}
	return fmtDate(*t)
}
