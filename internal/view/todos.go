package view

import (
	"fmt"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/vaughan-dsouza/godo/internal/models"
	"github.com/vaughan-dsouza/godo/internal/store"
)

// DashboardPage is the signed-in home: stat cards, filter tabs and the todo
// list (or an empty state).
func DashboardPage(u *models.User, st store.OwnerStats, todos []models.Todo, filter store.Filter, f Flash) g.Node {
	return page("Dashboard - My Todos",
		navDashboard(u),
		Div(Class("page-header"),
			Div(
				H1(g.Textf("Welcome back, %s!", u.Username)),
				P(Class("muted"), g.Textf("You have %d pending todos", st.Pending)),
			),
			A(Class("btn btn-primary"), Href("/todos/new"), g.Text("New Todo")),
		),
		f.alerts(),
		Div(Class("grid grid-4"),
			statCard("📝", "Total Todos", itoa(st.Total)),
			statCard("✅", "Completed", itoa(st.Completed)),
			statCard("⏳", "Pending", itoa(st.Pending)),
			statCard("📊", "Completion Rate", fmt.Sprintf("%.0f%%", st.CompletionRate)),
		),
		filterTabs(filter),
		g.If(len(todos) > 0, todoList(todos)),
		g.If(len(todos) == 0, emptyState(filter)),
	)
}

func filterTabs(active store.Filter) g.Node {
	return Div(Class("tabs"),
		filterTab("All", store.FilterAll, active),
		filterTab("Pending", store.FilterPending, active),
		filterTab("Completed", store.FilterCompleted, active),
	)
}

func filterTab(label string, f, active store.Filter) g.Node {
	cls := "tab"
	if f == active {
		cls = "tab tab-active"
	}
	return A(Class(cls), Href("/dashboard?filter="+string(f)), g.Text(label))
}

func todoList(todos []models.Todo) g.Node {
	return Div(Class("todo-list"),
		g.Map(todos, todoItem),
	)
}

func todoItem(t models.Todo) g.Node {
	cls := "card todo-card"
	if t.Completed {
		cls += " todo-done"
	}

	toggleLabel := "✓"
	if t.Completed {
		toggleLabel = "↶"
	}

	return Div(Class(cls),
		Div(Class("todo-body"),
			H3(Class("todo-title"), g.Text(t.Title)),
			g.If(t.Description != "", P(Class("muted"), g.Text(t.Description))),
			Div(Class("todo-meta"),
				priorityBadge(t.Priority),
				g.Iff(t.DueDate != nil, func() g.Node {
					return Span(Class("muted due-date"), g.Textf("Due: %s", t.DueDate.Format("2006-01-02")))
				}),
			),
		),
		Div(Class("todo-actions"),
			Form(Method("post"), Action(fmt.Sprintf("/todos/%d/toggle", t.ID)),
				Button(Type("submit"), Class("btn btn-secondary btn-small"), TitleAttr("Toggle completion"), g.Text(toggleLabel)),
			),
			A(Class("btn btn-secondary btn-small"), Href(fmt.Sprintf("/todos/%d/edit", t.ID)), g.Text("Edit")),
			Form(Method("post"), Action(fmt.Sprintf("/todos/%d/delete", t.ID)),
				Button(Type("submit"), Class("btn btn-danger btn-small"),
					g.Attr("onclick", "return confirm('Delete this todo?')"),
					g.Text("Delete")),
			),
		),
	)
}

func priorityBadge(p models.Priority) g.Node {
	return Span(Class("badge badge-"+string(p)), g.Text(p.Title()))
}

func emptyState(filter store.Filter) g.Node {
	messages := map[store.Filter]string{
		store.FilterAll:       "You haven't created any todos yet.",
		store.FilterPending:   "No pending todos found.",
		store.FilterCompleted: "No completed todos found.",
	}
	return Div(Class("card empty-state"),
		Div(Class("empty-icon"), g.Text("📝")),
		H3(g.Text("No Todos Found")),
		P(Class("muted"), g.Text(messages[filter])),
		g.If(filter == store.FilterAll,
			A(Class("btn btn-primary"), Href("/todos/new"), g.Text("Create Your First Todo")),
		),
	)
}

// TodoFormPage renders the create form when todo is nil, the edit form
// otherwise.
func TodoFormPage(u *models.User, todo *models.Todo, formError string) g.Node {
	isEdit := todo != nil

	title, action, submit := "Create Todo", "/todos/new", "Create Todo"
	if isEdit {
		title = "Edit Todo"
		action = fmt.Sprintf("/todos/%d/edit", todo.ID)
		submit = "Update Todo"
	}

	var titleVal, descVal, dueVal string
	priority := models.PriorityMedium
	if isEdit {
		titleVal, descVal, priority = todo.Title, todo.Description, todo.Priority
		if todo.DueDate != nil {
			dueVal = todo.DueDate.Format("2006-01-02")
		}
	}

	return page(title+" - GoDo",
		navDashboard(u),
		Div(Class("card form-card form-card-wide"),
			Div(Class("page-header"),
				H1(g.Text(title)),
				A(Class("btn btn-secondary"), Href("/dashboard"), g.Text("← Back to Dashboard")),
			),
			errorAlert(formError),
			Form(Method("post"), Action(action),
				Div(Class("form-field"),
					Label(For("title"), g.Text("Title")),
					Input(Type("text"), ID("title"), Name("title"), Value(titleVal),
						Placeholder("What needs to be done?"), Required(), AutoFocus()),
				),
				Div(Class("form-field"),
					Label(For("description"), g.Text("Description")),
					Textarea(ID("description"), Name("description"), Rows("3"),
						Placeholder("Add more details (optional)"), g.Text(descVal)),
				),
				Div(Class("grid grid-2"),
					Div(Class("form-field"),
						Label(For("priority"), g.Text("Priority")),
						Select(ID("priority"), Name("priority"),
							priorityOption(models.PriorityLow, priority),
							priorityOption(models.PriorityMedium, priority),
							priorityOption(models.PriorityHigh, priority),
						),
					),
					Div(Class("form-field"),
						Label(For("due-date"), g.Text("Due Date")),
						Input(Type("date"), ID("due-date"), Name("due_date"), Value(dueVal)),
					),
				),
				Button(Type("submit"), Class("btn btn-primary"), g.Text(submit)),
			),
		),
	)
}

func priorityOption(p, selected models.Priority) g.Node {
	return Option(Value(string(p)), g.Text(p.Title()), g.If(p == selected, Selected()))
}
