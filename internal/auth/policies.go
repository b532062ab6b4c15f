package auth

import (
	"fmt"
	"go-recruit-app/internal/logger"

	"github.com/casbin/casbin/v2"
)

// SeedDefaultPolicies ensures that the application has a baseline set of
// authorization rules. It checks if each default policy exists before adding
// it, making the operation idempotent and safe to run on every start.
func SeedDefaultPolicies(e casbin.IEnforcer, log logger.Logger) {
	log.Info("Seeding default authorization policies...")

	// Anonymous visitors can browse the site and submit the lead forms.
	// The admin role adds the /admin surface on top; the candidate role
	// exists so an OIDC-authenticated session keeps its own subject.
	policies := [][]string{
		{"anonymous", "/", "GET"},
		{"anonymous", "/about", "GET"},
		{"anonymous", "/specialisms", "GET"},
		{"anonymous", "/jobs", "GET"},
		{"anonymous", "/jobs/*", "GET"},
		{"anonymous", "/jobs/*", "POST"},
		{"anonymous", "/employers", "GET"},
		{"anonymous", "/candidates", "GET"},
		{"anonymous", "/candidates/*", "GET"},
		{"anonymous", "/blog", "GET"},
		{"anonymous", "/blog/*", "GET"},
		{"anonymous", "/apply", "POST"},
		{"anonymous", "/hire", "POST"},
		{"anonymous", "/newsletter", "POST"},
		{"anonymous", "/robots.txt", "GET"},
		{"anonymous", "/sitemap.xml", "GET"},
		{"anonymous", "/static/*", "GET"},
		{"anonymous", "/auth/login", "GET"},
		{"anonymous", "/auth/callback", "GET"},
		{"anonymous", "/auth/logout", "GET"},
		{"anonymous", "/admin/login", "GET"},
		{"anonymous", "/admin/login", "POST"},

		{"admin", "/admin", "GET"},
		{"admin", "/admin/*", "GET"},
		{"admin", "/admin/*", "POST"},
	}
	for _, p := range policies {
		if has, _ := e.HasPolicy(p); !has {
			if _, err := e.AddPolicy(p); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add policy %v", p))
			}
		}
	}

	// Authenticated roles keep all anonymous permissions.
	for _, role := range []string{"admin", "user"} {
		if has, _ := e.HasRoleForUser(role, "anonymous"); !has {
			if _, err := e.AddRoleForUser(role, "anonymous"); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add role '%s' -> 'anonymous'", role))
			}
		}
	}
	log.Info("Policy seeding complete.")
}
