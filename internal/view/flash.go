package view

import (
	"net/url"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Flash carries the ?success= and ?error= codes a redirect landed with.
// Unknown or absent codes render nothing.
type Flash struct {
	Success string
	Error   string
}

// FlashFrom pulls the flash codes out of a query string.
func FlashFrom(q url.Values) Flash {
	return Flash{Success: q.Get("success"), Error: q.Get("error")}
}

var successMessages = map[string]string{
	"created":          "Todo created successfully!",
	"updated":          "Todo updated successfully!",
	"toggled":          "Todo status updated!",
	"deleted":          "Todo deleted successfully!",
	"registered":       "Account created! Please sign in.",
	"email_updated":    "Email updated successfully",
	"password_updated": "Password updated successfully",
	"role_updated":     "User role updated successfully",
	"user_activated":   "User activated successfully",
	"user_deactivated": "User deactivated successfully",
	"user_deleted":     "User deleted successfully",
	"user_created":     "User created successfully",
}

var errorMessages = map[string]string{
	"not_found":              "Todo not found",
	"toggle_failed":          "Failed to update todo status",
	"delete_failed":          "Failed to delete todo",
	"invalid_role":           "Invalid role specified",
	"cannot_demote_self":     "You cannot change your own role",
	"cannot_deactivate_self": "You cannot deactivate your own account",
	"cannot_delete_self":     "You cannot delete your own account",
	"user_not_found":         "User not found",
	"last_admin":             "At least one active admin account is required",
	"role_update_failed":     "Failed to update user role",
	"status_update_failed":   "Failed to update user status",
	"user_delete_failed":     "Failed to delete user",
	"create_failed":          "Failed to create user",
}

func (f Flash) alerts() g.Node {
	var nodes []g.Node
	if msg, ok := successMessages[f.Success]; ok {
		nodes = append(nodes, Div(Class("alert alert-success"), g.Text(msg)))
	}
	if msg, ok := errorMessages[f.Error]; ok {
		nodes = append(nodes, Div(Class("alert alert-error"), g.Text(msg)))
	}
	return g.Group(nodes)
}

func errorAlert(msg string) g.Node {
	if msg == "" {
		return nil
	}
	return Div(Class("alert alert-error"), g.Text(msg))
}
