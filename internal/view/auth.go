package view

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/vaughan-dsouza/godo/internal/models"
)

// LoginData is what the login page needs: a prefilled username when the form
// bounced, an inline error, and flash codes from redirects.
type LoginData struct {
	Username string
	Error    string
	Flash    Flash
}

func LoginPage(d LoginData) g.Node {
	return page("Sign In - GoDo",
		navPublic(nil),
		Div(Class("card form-card"),
			H1(g.Text("Sign In")),
			d.Flash.alerts(),
			errorAlert(d.Error),
			Form(Method("post"), Action("/auth/login"),
				Div(Class("form-field"),
					Label(For("username"), g.Text("Username")),
					Input(Type("text"), ID("username"), Name("username"), Value(d.Username), Required(), AutoFocus()),
				),
				Div(Class("form-field"),
					Label(For("password"), g.Text("Password")),
					Input(Type("password"), ID("password"), Name("password"), Required()),
				),
				Button(Type("submit"), Class("btn btn-primary btn-block"), g.Text("Sign In")),
			),
			P(Class("muted form-footer"),
				g.Text("No account yet? "),
				A(Href("/auth/register"), g.Text("Register here")),
			),
		),
	)
}

// RegisterData prefills the signup form after a validation bounce.
type RegisterData struct {
	Username string
	Email    string
	Error    string
}

func RegisterPage(d RegisterData) g.Node {
	return page("Register - GoDo",
		navPublic(nil),
		Div(Class("card form-card"),
			H1(g.Text("Create Account")),
			errorAlert(d.Error),
			Form(Method("post"), Action("/auth/register"),
				Div(Class("form-field"),
					Label(For("username"), g.Text("Username")),
					Input(Type("text"), ID("username"), Name("username"), Value(d.Username), Required(), AutoFocus()),
				),
				Div(Class("form-field"),
					Label(For("email"), g.Text("Email")),
					Input(Type("email"), ID("email"), Name("email"), Value(d.Email), Required()),
				),
				Div(Class("form-field"),
					Label(For("password"), g.Text("Password")),
					Input(Type("password"), ID("password"), Name("password"), Required()),
					P(Class("muted field-hint"), g.Text("At least 6 characters")),
				),
				Div(Class("form-field"),
					Label(For("confirm"), g.Text("Confirm Password")),
					Input(Type("password"), ID("confirm"), Name("confirm"), Required()),
				),
				Button(Type("submit"), Class("btn btn-primary btn-block"), g.Text("Register")),
			),
			P(Class("muted form-footer"),
				g.Text("Already have an account? "),
				A(Href("/auth/login"), g.Text("Sign in here")),
			),
		),
	)
}

// ProfilePage shows account info plus the email and password forms. formError
// is the inline message when one of the forms bounced.
func ProfilePage(u *models.User, f Flash, formError string) g.Node {
	return page("Profile - GoDo",
		navDashboard(u),
		H1(g.Text("Your Profile")),
		f.alerts(),
		errorAlert(formError),
		Div(Class("grid grid-2"),
			card(
				H2(g.Text("Account")),
				statRow("Username", u.Username),
				statRow("Email", u.Email),
				statRow("Role", u.Role.Title()),
				statRow("Member since", fmtDate(u.CreatedAt)),
				statRow("Last login", fmtDatePtr(u.LastLogin, "Never")),
			),
			Div(
				card(
					H2(g.Text("Update Email")),
					Form(Method("post"), Action("/auth/profile"),
						Input(Type("hidden"), Name("intent"), Value("email")),
						Div(Class("form-field"),
							Label(For("new-email"), g.Text("New Email")),
							Input(Type("email"), ID("new-email"), Name("email"), Value(u.Email), Required()),
						),
						Button(Type("submit"), Class("btn btn-primary"), g.Text("Save Email")),
					),
				),
				card(
					H2(g.Text("Change Password")),
					Form(Method("post"), Action("/auth/profile"),
						Input(Type("hidden"), Name("intent"), Value("password")),
						Div(Class("form-field"),
							Label(For("current"), g.Text("Current Password")),
							Input(Type("password"), ID("current"), Name("current"), Required()),
						),
						Div(Class("form-field"),
							Label(For("new-password"), g.Text("New Password")),
							Input(Type("password"), ID("new-password"), Name("password"), Required()),
							P(Class("muted field-hint"), g.Text("At least 6 characters")),
						),
						Button(Type("submit"), Class("btn btn-primary"), g.Text("Change Password")),
					),
				),
			),
		),
	)
}
