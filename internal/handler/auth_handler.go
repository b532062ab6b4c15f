package handler

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"go-recruit-app/internal/auth"
	"go-recruit-app/internal/logger"
	"go-recruit-app/internal/middleware"
	"go-recruit-app/internal/session"
	"go-recruit-app/internal/view"
	"io"
	"net/http"
	"time"
)

// AuthHandler holds the dependencies for the authentication handlers.
// authenticator is nil when OIDC candidate sign-in is disabled.
type AuthHandler struct {
	authenticator *auth.Authenticator
	admin         *auth.AdminVerifier
	session       session.Manager
	view          *view.View
	log           logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(a *auth.Authenticator, admin *auth.AdminVerifier, sm session.Manager, v *view.View, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		authenticator: a,
		admin:         admin,
		session:       sm,
		view:          v,
		log:           log,
	}
}

// adminLoginFormHandler renders the admin login form. An already
// authenticated admin is sent straight to the dashboard.
func (h *AuthHandler) adminLoginFormHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if !h.admin.Configured() {
		return &middleware.AppError{Error: errors.New("admin credentials not configured"), Message: "Not found", Code: http.StatusNotFound}
	}
	if middleware.GetUserInfo(r.Context()).IsAdmin {
		http.Redirect(w, r, "/admin", http.StatusFound)
		return nil
	}

	data := pageData(h.session, r)
	if err := h.view.Render(w, r, "admin_login.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render login page", Code: http.StatusInternalServerError}
	}
	return nil
}

// adminLoginHandler checks the submitted credentials server-side. On success
// the session token is renewed and the admin subject stored; on failure the
// form is shown again with a banner. The response is identical for a wrong
// username and a wrong password.
func (h *AuthHandler) adminLoginHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if !h.admin.Configured() {
		return &middleware.AppError{Error: errors.New("admin credentials not configured"), Message: "Not found", Code: http.StatusNotFound}
	}
	if err := r.ParseForm(); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to read login form", Code: http.StatusBadRequest}
	}

	if !h.admin.Verify(r.FormValue("username"), r.FormValue("password")) {
		h.log.Warn("Failed admin login attempt")
		h.session.Put(r.Context(), session.KeyFlash, "Invalid username or password.")
		h.session.Put(r.Context(), session.KeyFlashError, "true")
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return nil
	}

	// Renew the token on privilege change to prevent session fixation.
	if err := h.session.RenewToken(r.Context()); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to establish session", Code: http.StatusInternalServerError}
	}
	h.session.Put(r.Context(), session.KeySubject, auth.SubjectAdmin)
	http.Redirect(w, r, "/admin", http.StatusFound)
	return nil
}

// handleLogin redirects the visitor to the OIDC provider for candidate
// sign-in. It uses a random 'state' string for CSRF protection.
func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if h.authenticator == nil {
		http.NotFound(w, r)
		return
	}
	state, err := randString(16)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	// Store the state in a short-lived cookie to verify on callback.
	http.SetCookie(w, &http.Cookie{
		Name:     "state",
		Value:    state,
		Path:     "/",
		MaxAge:   int(10 * time.Minute / time.Second),
		HttpOnly: true,
		Secure:   r.TLS != nil,
	})
	http.Redirect(w, r, h.authenticator.AuthCodeURL(state), http.StatusFound)
}

// handleCallback is the redirect URL for the OIDC provider. It exchanges the
// code, verifies the ID token, and stores the candidate subject in the
// server-side session.
func (h *AuthHandler) handleCallback(w http.ResponseWriter, r *http.Request) {
	if h.authenticator == nil {
		http.NotFound(w, r)
		return
	}

	// Verify the state parameter to prevent CSRF attacks.
	stateCookie, err := r.Cookie("state")
	if err != nil {
		http.Error(w, "state cookie not found", http.StatusBadRequest)
		return
	}
	if r.URL.Query().Get("state") != stateCookie.Value {
		http.Error(w, "state did not match", http.StatusBadRequest)
		return
	}

	// Exchange the authorization code for an OAuth2 token.
	oauth2Token, err := h.authenticator.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		http.Error(w, "Failed to exchange token: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Extract the ID Token from the OAuth2 token.
	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		http.Error(w, "No id_token field in oauth2 token", http.StatusInternalServerError)
		return
	}

	// Verify the ID Token's signature and claims.
	idToken, err := h.authenticator.IDTokenVerifier.Verify(r.Context(), rawIDToken)
	if err != nil {
		http.Error(w, "Failed to verify ID Token: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.session.RenewToken(r.Context()); err != nil {
		http.Error(w, "Failed to establish session", http.StatusInternalServerError)
		return
	}
	h.session.Put(r.Context(), session.KeySubject, "user:"+idToken.Subject)

	http.Redirect(w, r, "/", http.StatusFound)
}

// handleLogout destroys the session for both admins and candidates.
func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Destroy(r.Context()); err != nil {
		h.log.Error(err, "Failed to destroy session on logout")
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// randString is a helper function to generate a random string for the 'state' parameter.
func randString(nByte int) (string, error) {
	b := make([]byte, nByte)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
