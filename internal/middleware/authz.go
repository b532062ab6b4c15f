package middleware

import (
	"go-recruit-app/internal/auth"
	"go-recruit-app/internal/session"
	"net/http"
	"strings"

	"github.com/casbin/casbin/v2"
)

// Authorizer creates a new middleware for authorization. It resolves the
// session subject into a UserInfo for downstream handlers and checks the
// route against the Casbin policy.
func Authorizer(e *casbin.Enforcer, sm session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject := sm.GetString(r.Context(), session.KeySubject)

			role := "anonymous"
			userInfo := &UserInfo{Subject: "anonymous"}
			switch {
			case subject == auth.SubjectAdmin:
				role = "admin"
				userInfo = &UserInfo{Subject: subject, IsAdmin: true}
			case strings.HasPrefix(subject, "user:"):
				role = "user"
				userInfo = &UserInfo{Subject: subject, IsUser: true}
			}

			r = r.WithContext(SetUserInfo(r.Context(), userInfo))

			allowed, err := e.Enforce(role, r.URL.Path, r.Method)
			if err != nil {
				http.Error(w, "Authorization error", http.StatusInternalServerError)
				return
			}
			if !allowed {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
