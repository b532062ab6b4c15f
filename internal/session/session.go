package session

import (
	"context"
	"net/http"
)

// Manager is an interface that abstracts the session management
// implementation. This allows for easier testing and dependency injection.
type Manager interface {
	LoadAndSave(next http.Handler) http.Handler
	Put(ctx context.Context, key string, val interface{})
	GetString(ctx context.Context, key string) string
	PopString(ctx context.Context, key string) string
	Destroy(ctx context.Context) error
	Remove(ctx context.Context, key string)
	RenewToken(ctx context.Context) error
}

// Session keys used across handlers.
const (
	// KeySubject holds the authenticated subject: "admin" for the site
	// administrator, "user:<sub>" for an OIDC-authenticated candidate.
	KeySubject = "subject"
	// KeyFlash holds a one-shot message rendered as an inline banner.
	KeyFlash = "flash"
	// KeyFlashError marks the flash message as an error outcome.
	KeyFlashError = "flash_error"
)
