package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vaughan-dsouza/godo/internal/auth"
	"github.com/vaughan-dsouza/godo/internal/config"
	"github.com/vaughan-dsouza/godo/internal/models"
	"github.com/vaughan-dsouza/godo/internal/store"
)

// seed makes sure the default admin account exists, and populates demo
// accounts when SEED_DEMO is on. Safe to run on every start.
func seed(ctx context.Context, cfg config.Config, users *store.UserStore, todos *store.TodoStore, manager *auth.Manager, log zerolog.Logger) error {
	_, err := users.GetByUsername(ctx, "admin")
	if errors.Is(err, store.ErrNotFound) {
		admin, cerr := manager.CreateUser(ctx, "admin", "admin@example.com", cfg.AdminPassword, models.RoleAdmin)
		if cerr != nil {
			return fmt.Errorf("create admin: %w", cerr)
		}
		log.Info().Int64("user_id", admin.ID).Msg("created default admin account")
	} else if err != nil {
		return err
	}

	if !cfg.SeedDemo {
		return nil
	}
	return seedDemo(ctx, users, todos, manager, log)
}

func seedDemo(ctx context.Context, users *store.UserStore, todos *store.TodoStore, manager *auth.Manager, log zerolog.Logger) error {
	demo := []struct {
		username, email, password string
		role                      models.Role
	}{
		{"demo_user", "demo@example.com", "demo123", models.RoleUser},
		{"demo_manager", "manager@example.com", "demo123", models.RoleManager},
	}

	for _, d := range demo {
		if _, err := users.GetByUsername(ctx, d.username); err == nil {
			continue
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		u, err := manager.CreateUser(ctx, d.username, d.email, d.password, d.role)
		if err != nil {
			return fmt.Errorf("create demo user %s: %w", d.username, err)
		}
		log.Info().Str("username", u.Username).Str("role", string(d.role)).Msg("created demo user")

		if d.role != models.RoleUser {
			continue
		}

		titles := []string{
			"Plan the week's groceries",
			"Review pull requests",
			"Book dentist appointment",
			"Write project status update",
		}
		for i, title := range titles {
			t, err := todos.Create(ctx, u.ID, store.TodoInput{
				Title:       title,
				Description: fmt.Sprintf("Demo todo #%d for %s", i+1, u.Username),
			})
			if err != nil {
				return fmt.Errorf("create demo todo: %w", err)
			}
			// Mark a few as done so the dashboard has something to show.
			if i%3 == 0 {
				if _, err := todos.Toggle(ctx, t.ID, store.Caller{ID: u.ID}); err != nil {
					return fmt.Errorf("toggle demo todo: %w", err)
				}
			}
		}
	}
	return nil
}
