package view

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/vaughan-dsouza/godo/internal/models"
)

// LandingPage is the public home page. Signed-in visitors never see it; the
// handler bounces them to the dashboard first.
func LandingPage() g.Node {
	return page("GoDo - Todos for Teams",
		navPublic(nil),
		Section(Class("hero"),
			H1(g.Text("Get Things Done")),
			P(Class("muted"),
				g.Text("A small, fast todo app with user accounts, role-based admin tools and priorities that keep your day on track.")),
			Div(Class("hero-actions"),
				A(Class("btn btn-primary"), Href("/auth/register"), g.Text("Get Started")),
				A(Class("btn btn-secondary"), Href("/auth/login"), g.Text("Sign In")),
			),
		),
		Section(Class("feature-grid-section"),
			H2(g.Text("What's Included")),
			Div(Class("grid grid-3"),
				featureCard("🔐", "Accounts & Sessions", "Register, sign in and manage your profile. Passwords are hashed, sessions are signed cookies."),
				featureCard("👥", "Role-Based Access", "User, manager and admin roles. Admin-only pages are enforced on every request."),
				featureCard("📝", "Todo Management", "Create, edit, complete and delete todos with priorities, due dates and filtering."),
				featureCard("📊", "Dashboard Stats", "Totals, pending counts and completion rate at a glance."),
				featureCard("🛡️", "Admin Panel", "Manage users, change roles, deactivate accounts and inspect every todo in the system."),
				featureCard("⚡", "No JavaScript Required", "Server-rendered pages and plain forms. Works everywhere."),
			),
		),
		Section(Class("demo-note"),
			card(
				H2(g.Text("Try the Demo Account")),
				P(g.Text("Username: admin, Password: admin123")),
				A(Class("btn btn-primary"), Href("/auth/login"), g.Text("Sign In Now")),
			),
		),
		Footer(Class("footer"),
			P(Class("muted"), g.Text("GoDo - a server-rendered todo app written in Go")),
		),
	)
}

// AboutPage explains what the app is.
func AboutPage(u *models.User) g.Node {
	return page("About - GoDo",
		navPublic(u),
		H1(g.Text("About GoDo")),
		card(
			H2(g.Text("A Complete Example App")),
			P(g.Text("GoDo is a todo application with real user accounts. It shows how authentication, "+
				"role-based access control and user-owned data fit together in a server-rendered app: "+
				"every page is built on the server and every action is a plain HTML form.")),
			H3(g.Text("How it works:")),
			Ul(
				Li(g.Text("Each todo belongs to exactly one user; nobody else can see or edit it")),
				Li(g.Text("A signed session cookie identifies you on every request")),
				Li(g.Text("Admins manage users and can inspect every todo in the system")),
				Li(g.Text("Deactivated accounts lose access immediately, live sessions included")),
			),
		),
		card(
			H2(g.Text("Under the Hood")),
			Div(Class("grid grid-2"),
				techItem("Go", "Single binary, no runtime dependencies"),
				techItem("SQLite", "One-file database, PostgreSQL supported too"),
				techItem("Signed Cookies", "Stateless sessions, revalidated per request"),
				techItem("Server-Side HTML", "No client framework, no build step"),
			),
		),
	)
}

// FeaturesPage lists everything the app does.
func FeaturesPage(u *models.User) g.Node {
	return page("Features - GoDo",
		navPublic(u),
		H1(g.Text("Features & Capabilities")),
		Div(Class("grid grid-2"),
			card(
				H2(g.Text("🔐 Authentication")),
				Ul(
					Li(g.Text("Registration with validation")),
					Li(g.Text("Secure login and logout with bcrypt")),
					Li(g.Text("Profile editing and password changes")),
					Li(g.Text("Account activation and deactivation")),
				),
			),
			card(
				H2(g.Text("👥 Roles")),
				Ul(
					Li(g.Text("User role: personal todo management")),
					Li(g.Text("Manager role: extended features")),
					Li(g.Text("Admin role: full system access")),
					Li(g.Text("Per-request route protection")),
				),
			),
			card(
				H2(g.Text("📝 Todos")),
				Ul(
					Li(g.Text("Create, edit and delete todos")),
					Li(g.Text("Mark complete and incomplete")),
					Li(g.Text("Priorities and due dates")),
					Li(g.Text("Filtering and per-user statistics")),
				),
			),
			card(
				H2(g.Text("⚡ Admin Panel")),
				Ul(
					Li(g.Text("User management and role assignment")),
					Li(g.Text("System-wide todo overview")),
					Li(g.Text("Account activation controls")),
					Li(g.Text("System statistics dashboard")),
				),
			),
		),
	)
}

func featureCard(icon, title, description string) g.Node {
	return Div(Class("card feature-card"),
		Div(Class("feature-icon"), g.Text(icon)),
		H3(g.Text(title)),
		P(Class("muted"), g.Text(description)),
	)
}

func techItem(name, description string) g.Node {
	return Div(
		H4(g.Text(name)),
		P(Class("muted"), g.Text(description)),
	)
}
