package models

import "testing"

func TestParseRole(t *testing.T) {
	for _, s := range []string{"user", "manager", "admin"} {
		r, ok := ParseRole(s)
		if !ok || string(r) != s {
			t.Errorf("ParseRole(%q) = %q, %v", s, r, ok)
		}
	}
	for _, s := range []string{"", "root", "Admin", "superuser"} {
		if _, ok := ParseRole(s); ok {
			t.Errorf("ParseRole(%q) accepted", s)
		}
	}
}

func TestRoleHelpers(t *testing.T) {
	if !RoleAdmin.IsAdmin() || RoleManager.IsAdmin() || RoleUser.IsAdmin() {
		t.Error("IsAdmin wrong")
	}
	if !RoleManager.Valid() || Role("root").Valid() {
		t.Error("Valid wrong")
	}
	if RoleManager.Title() != "Manager" {
		t.Errorf("title = %q", RoleManager.Title())
	}
}

func TestParsePriority(t *testing.T) {
	// The empty form value means the default.
	p, ok := ParsePriority("")
	if !ok || p != PriorityMedium {
		t.Errorf("empty = %q, %v", p, ok)
	}

	for _, s := range []string{"low", "medium", "high"} {
		p, ok := ParsePriority(s)
		if !ok || string(p) != s {
			t.Errorf("ParsePriority(%q) = %q, %v", s, p, ok)
		}
	}
	if _, ok := ParsePriority("urgent"); ok {
		t.Error("unknown priority accepted")
	}
}

func TestPriorityHelpers(t *testing.T) {
	if Priority("").Valid() {
		t.Error("empty priority reported valid")
	}
	if !PriorityHigh.Valid() {
		t.Error("high priority reported invalid")
	}
	if PriorityLow.Title() != "Low" {
		t.Errorf("title = %q", PriorityLow.Title())
	}
}
