package view

import (
	"fmt"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/vaughan-dsouza/godo/internal/models"
	"github.com/vaughan-dsouza/godo/internal/store"
)

// AdminHomePage is the admin overview: system counters, quick links and the
// latest todos across all users.
func AdminHomePage(u *models.User, st store.SystemStats, recent []store.TodoWithOwner) g.Node {
	return page("Admin Dashboard - GoDo",
		navAdmin(),
		H1(g.Text("Admin Dashboard")),
		Div(Class("grid grid-4"),
			statCard("👥", "Total Users", itoa(st.Users)),
			statCard("🟢", "Active Users", itoa(st.ActiveUsers)),
			statCard("📝", "Total Todos", itoa(st.Todos)),
			statCard("✅", "Completed", itoa(st.Completed)),
		),
		card(
			H2(g.Text("Quick Actions")),
			Div(Class("grid grid-4"),
				A(Class("btn btn-primary"), Href("/admin/users"), g.Text("Manage Users")),
				A(Class("btn btn-secondary"), Href("/admin/todos"), g.Text("View All Todos")),
				A(Class("btn btn-secondary"), Href("/admin/system"), g.Text("System Info")),
				A(Class("btn btn-secondary"), Href("/dashboard"), g.Text("Back to Dashboard")),
			),
		),
		card(
			H2(g.Text("Recent Todos (All Users)")),
			g.If(len(recent) == 0, P(Class("muted empty-note"), g.Text("No todos found."))),
			g.If(len(recent) > 0, recentTodosTable(recent)),
		),
	)
}

func recentTodosTable(todos []store.TodoWithOwner) g.Node {
	return Table(Class("table"),
		THead(Tr(Th(g.Text("Todo")), Th(g.Text("User")), Th(g.Text("Status")), Th(g.Text("Priority")), Th(g.Text("Created")))),
		TBody(g.Map(todos, func(t store.TodoWithOwner) g.Node {
			return Tr(
				Td(g.Text(truncate(t.Title, 50))),
				Td(g.Text(t.OwnerName)),
				Td(doneBadge(t.Completed)),
				Td(g.Text(t.Priority.Title())),
				Td(g.Text(fmtDate(t.CreatedAt))),
			)
		})),
	)
}

// AdminUsersPage renders the user table with role, status and delete controls
// plus the create-user form. createError is the inline message when the
// create form bounced.
func AdminUsersPage(u *models.User, users []models.User, f Flash, createError string) g.Node {
	return page("User Management - Admin",
		navAdmin(),
		Div(Class("page-header"),
			H1(g.Text("User Management")),
			A(Class("btn btn-secondary"), Href("/admin"), g.Text("← Back to Admin")),
		),
		f.alerts(),
		card(
			Div(Class("page-header"),
				H2(g.Text("All Users")),
				P(Class("muted"), g.Textf("%d total users", len(users))),
			),
			Table(Class("table"),
				THead(Tr(
					Th(g.Text("Username")), Th(g.Text("Email")), Th(g.Text("Role")),
					Th(g.Text("Status")), Th(g.Text("Created")), Th(g.Text("Actions")),
				)),
				TBody(g.Map(users, func(target models.User) g.Node {
					return userRow(target, u.ID)
				})),
			),
		),
		card(
			H2(g.Text("Create User")),
			errorAlert(createError),
			Form(Method("post"), Action("/admin/users/new"), Class("admin-create-form"),
				Div(Class("grid grid-4"),
					Div(Class("form-field"),
						Label(For("new-username"), g.Text("Username")),
						Input(Type("text"), ID("new-username"), Name("username"), Required()),
					),
					Div(Class("form-field"),
						Label(For("new-user-email"), g.Text("Email")),
						Input(Type("email"), ID("new-user-email"), Name("email"), Required()),
					),
					Div(Class("form-field"),
						Label(For("new-user-password"), g.Text("Password")),
						Input(Type("password"), ID("new-user-password"), Name("password"), Required()),
					),
					Div(Class("form-field"),
						Label(For("new-user-role"), g.Text("Role")),
						Select(ID("new-user-role"), Name("role"),
							roleOption(models.RoleUser, models.RoleUser),
							roleOption(models.RoleManager, models.RoleUser),
							roleOption(models.RoleAdmin, models.RoleUser),
						),
					),
				),
				Button(Type("submit"), Class("btn btn-primary"), g.Text("Create User")),
			),
		),
	)
}

func userRow(target models.User, viewerID int64) g.Node {
	name := target.Username
	if target.ID == viewerID {
		name += " (You)"
	}

	return Tr(
		Td(g.Text(name)),
		Td(g.Text(target.Email)),
		Td(roleBadge(target.Role)),
		Td(statusBadge(target.Active)),
		Td(g.Text(fmtDate(target.CreatedAt))),
		Td(userActions(target, viewerID)),
	)
}

func userActions(target models.User, viewerID int64) g.Node {
	if target.ID == viewerID {
		return Span(Class("muted"), g.Text("Current User"))
	}

	toggleLabel := "Activate"
	if target.Active {
		toggleLabel = "Deactivate"
	}

	return Div(Class("row-actions"),
		Form(Method("post"), Action(fmt.Sprintf("/admin/users/%d/role", target.ID)),
			Select(Name("role"), Class("role-select"), g.Attr("onchange", "this.form.submit()"),
				roleOption(models.RoleUser, target.Role),
				roleOption(models.RoleManager, target.Role),
				roleOption(models.RoleAdmin, target.Role),
			),
		),
		Form(Method("post"), Action(fmt.Sprintf("/admin/users/%d/toggle", target.ID)),
			Button(Type("submit"), Class("btn btn-secondary btn-small"), g.Text(toggleLabel)),
		),
		Form(Method("post"), Action(fmt.Sprintf("/admin/users/%d/delete", target.ID)),
			Button(Type("submit"), Class("btn btn-danger btn-small"),
				g.Attr("onclick", "return confirm('Delete this user and all their todos?')"),
				g.Text("Delete")),
		),
	)
}

func roleOption(r, selected models.Role) g.Node {
	return Option(Value(string(r)), g.Text(r.Title()), g.If(r == selected, Selected()))
}

func roleBadge(r models.Role) g.Node {
	return Span(Class("badge badge-role-"+string(r)), g.Text(r.Title()))
}

func statusBadge(active bool) g.Node {
	if active {
		return Span(Class("badge badge-active"), g.Text("Active"))
	}
	return Span(Class("badge badge-inactive"), g.Text("Inactive"))
}

func doneBadge(completed bool) g.Node {
	if completed {
		return Span(Class("badge badge-done"), g.Text("Done"))
	}
	return Span(Class("badge badge-pending"), g.Text("Pending"))
}

// AdminTodosPage lists every todo in the system with its owner.
func AdminTodosPage(u *models.User, todos []store.TodoWithOwner, f Flash) g.Node {
	return page("All Todos - Admin",
		navAdmin(),
		Div(Class("page-header"),
			H1(g.Text("All Todos")),
			A(Class("btn btn-secondary"), Href("/admin"), g.Text("← Back to Admin")),
		),
		f.alerts(),
		card(
			Div(Class("page-header"),
				H2(g.Text("System-wide Todo Overview")),
				P(Class("muted"), g.Textf("%d recent todos", len(todos))),
			),
			g.If(len(todos) == 0, P(Class("muted empty-note"), g.Text("No todos found."))),
			g.If(len(todos) > 0, adminTodosTable(todos)),
		),
	)
}

func adminTodosTable(todos []store.TodoWithOwner) g.Node {
	return Table(Class("table"),
		THead(Tr(
			Th(g.Text("Title")), Th(g.Text("User")), Th(g.Text("Email")),
			Th(g.Text("Status")), Th(g.Text("Priority")), Th(g.Text("Created")), Th(g.Text("Actions")),
		)),
		TBody(g.Map(todos, func(t store.TodoWithOwner) g.Node {
			return Tr(
				Td(g.Text(truncate(t.Title, 40))),
				Td(g.Text(t.OwnerName)),
				Td(g.Text(t.OwnerEmail)),
				Td(doneBadge(t.Completed)),
				Td(g.Text(t.Priority.Title())),
				Td(g.Text(fmtDate(t.CreatedAt))),
				Td(
					Form(Method("post"), Action(fmt.Sprintf("/admin/todos/%d/delete", t.ID)),
						Button(Type("submit"), Class("btn btn-danger btn-small"),
							g.Attr("onclick", "return confirm('Delete this todo?')"),
							g.Text("Delete")),
					),
				),
			)
		})),
	)
}

// AdminSystemPage shows aggregate statistics and recent account activity.
func AdminSystemPage(u *models.User, st store.SystemStats, roles map[models.Role]int, users []models.User) g.Node {
	pending := st.Todos - st.Completed
	rate := 0.0
	if st.Todos > 0 {
		rate = float64(st.Completed) / float64(st.Todos) * 100
	}

	// Last 10 accounts for the activity table.
	if len(users) > 10 {
		users = users[len(users)-10:]
	}

	return page("System Information - Admin",
		navAdmin(),
		Div(Class("page-header"),
			H1(g.Text("System Information")),
			A(Class("btn btn-secondary"), Href("/admin"), g.Text("← Back to Admin")),
		),
		Div(Class("grid grid-2"),
			card(
				H2(g.Text("User Statistics")),
				statRow("Total Users", itoa(st.Users)),
				statRow("Admins", itoa(roles[models.RoleAdmin])),
				statRow("Managers", itoa(roles[models.RoleManager])),
				statRow("Users", itoa(roles[models.RoleUser])),
				statRow("Active Users", itoa(st.ActiveUsers)),
			),
			card(
				H2(g.Text("Todo Statistics")),
				statRow("Total Todos", itoa(st.Todos)),
				statRow("Completed", itoa(st.Completed)),
				statRow("Pending", itoa(pending)),
				statRow("Completion Rate", fmt.Sprintf("%.1f%%", rate)),
				statRow("High Priority", itoa(st.ByPriority[models.PriorityHigh])),
				statRow("Medium Priority", itoa(st.ByPriority[models.PriorityMedium])),
				statRow("Low Priority", itoa(st.ByPriority[models.PriorityLow])),
			),
		),
		card(
			H2(g.Text("Recent Activity")),
			g.If(len(st.Recent) == 0, P(Class("muted empty-note"), g.Text("No activity yet."))),
			g.If(len(st.Recent) > 0, Ul(Class("activity-feed"),
				g.Map(st.Recent, func(a store.Activity) g.Node {
					return Li(
						Strong(g.Text(a.Username)),
						g.Textf(" - %s - %s", a.Action, fmtDate(a.At)),
					)
				}),
			)),
		),
		card(
			H2(g.Text("User Activity")),
			Table(Class("table"),
				THead(Tr(Th(g.Text("User")), Th(g.Text("Role")), Th(g.Text("Status")), Th(g.Text("Last Login")))),
				TBody(g.Map(users, func(target models.User) g.Node {
					return Tr(
						Td(g.Text(target.Username)),
						Td(g.Text(target.Role.Title())),
						Td(statusBadge(target.Active)),
						Td(g.Text(fmtDatePtr(target.LastLogin, "Never"))),
					)
				})),
			),
		),
	)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
