package auth

import (
	"crypto/subtle"
	"go-recruit-app/internal/config"

	"golang.org/x/crypto/bcrypt"
)

// SubjectAdmin is the session subject stored for the site administrator.
const SubjectAdmin = "admin"

// AdminVerifier checks the admin login server-side against the configured
// username and bcrypt password hash. There is no client-side credential
// check anywhere; the session subject is the only admin signal.
type AdminVerifier struct {
	username     string
	passwordHash []byte
}

// NewAdminVerifier creates an AdminVerifier from configuration.
func NewAdminVerifier(cfg config.AdminConfig) *AdminVerifier {
	return &AdminVerifier{
		username:     cfg.Username,
		passwordHash: []byte(cfg.PasswordHash),
	}
}

// Configured reports whether admin credentials are set. When false, admin
// login is disabled entirely.
func (v *AdminVerifier) Configured() bool {
	return v.username != "" && len(v.passwordHash) > 0
}

// Verify checks a username/password pair. Both checks always run so a wrong
// username costs the same as a wrong password.
func (v *AdminVerifier) Verify(username, password string) bool {
	if !v.Configured() {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(v.passwordHash, []byte(password)) == nil
	return userOK && passOK
}
