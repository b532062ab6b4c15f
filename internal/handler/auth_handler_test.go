//go:build unit

package handler

import (
	"context"
	"go-recruit-app/internal/auth"
	"go-recruit-app/internal/config"
	"go-recruit-app/internal/logger"
	"go-recruit-app/internal/session"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestLogger() logger.Logger {
	return logger.New(config.LogConfig{Level: "error", Format: "json"}, io.Discard)
}

// mockSessionManager is a mock implementation of the session.Manager interface.
type mockSessionManager struct {
	destroyCalled bool
	renewCalled   bool
	values        map[string]string
}

// Ensure mockSessionManager implements the session.Manager interface.
var _ session.Manager = (*mockSessionManager)(nil)

func newMockSessionManager() *mockSessionManager {
	return &mockSessionManager{values: map[string]string{}}
}

func (m *mockSessionManager) LoadAndSave(next http.Handler) http.Handler { return next }
func (m *mockSessionManager) Put(ctx context.Context, key string, val interface{}) {
	if s, ok := val.(string); ok {
		m.values[key] = s
	}
}
func (m *mockSessionManager) GetString(ctx context.Context, key string) string {
	return m.values[key]
}
func (m *mockSessionManager) PopString(ctx context.Context, key string) string {
	val := m.values[key]
	delete(m.values, key)
	return val
}
func (m *mockSessionManager) Remove(ctx context.Context, key string) { delete(m.values, key) }
func (m *mockSessionManager) Destroy(ctx context.Context) error {
	m.destroyCalled = true
	m.values = map[string]string{}
	return nil
}
func (m *mockSessionManager) RenewToken(ctx context.Context) error {
	m.renewCalled = true
	return nil
}

func testVerifier(t *testing.T) *auth.AdminVerifier {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}
	return auth.NewAdminVerifier(config.AdminConfig{Username: "admin", PasswordHash: string(hash)})
}

func loginRequest(username, password string) *http.Request {
	form := url.Values{}
	form.Add("username", username)
	form.Add("password", password)
	req := httptest.NewRequest("POST", "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestAdminLoginHandler_Success(t *testing.T) {
	mockSession := newMockSessionManager()
	authHandler := NewAuthHandler(nil, testVerifier(t), mockSession, nil, newTestLogger())

	rr := httptest.NewRecorder()
	if appErr := authHandler.adminLoginHandler(rr, loginRequest("admin", "correct horse")); appErr != nil {
		t.Fatalf("unexpected AppError: %v", appErr.Error)
	}

	if !mockSession.renewCalled {
		t.Error("expected the session token to be renewed on login")
	}
	if mockSession.values[session.KeySubject] != auth.SubjectAdmin {
		t.Errorf("want session subject '%s'; got '%s'", auth.SubjectAdmin, mockSession.values[session.KeySubject])
	}
	if rr.Code != http.StatusFound {
		t.Errorf("want status code %d; got %d", http.StatusFound, rr.Code)
	}
	location, _ := rr.Result().Location()
	if location.Path != "/admin" {
		t.Errorf("want redirect to '/admin'; got '%s'", location.Path)
	}
}

func TestAdminLoginHandler_WrongPassword(t *testing.T) {
	mockSession := newMockSessionManager()
	authHandler := NewAuthHandler(nil, testVerifier(t), mockSession, nil, newTestLogger())

	rr := httptest.NewRecorder()
	if appErr := authHandler.adminLoginHandler(rr, loginRequest("admin", "wrong")); appErr != nil {
		t.Fatalf("unexpected AppError: %v", appErr.Error)
	}

	if got := mockSession.values[session.KeySubject]; got != "" {
		t.Errorf("expected no session subject after failed login, got '%s'", got)
	}
	if mockSession.values[session.KeyFlash] == "" {
		t.Error("expected a flash message after failed login")
	}
	location, _ := rr.Result().Location()
	if location.Path != "/admin/login" {
		t.Errorf("want redirect back to '/admin/login'; got '%s'", location.Path)
	}
}

func TestAdminLoginHandler_WrongUsername(t *testing.T) {
	mockSession := newMockSessionManager()
	authHandler := NewAuthHandler(nil, testVerifier(t), mockSession, nil, newTestLogger())

	rr := httptest.NewRecorder()
	if appErr := authHandler.adminLoginHandler(rr, loginRequest("root", "correct horse")); appErr != nil {
		t.Fatalf("unexpected AppError: %v", appErr.Error)
	}
	if got := mockSession.values[session.KeySubject]; got != "" {
		t.Errorf("expected no session subject after failed login, got '%s'", got)
	}
}

func TestAdminLoginHandler_NotConfigured(t *testing.T) {
	verifier := auth.NewAdminVerifier(config.AdminConfig{})
	authHandler := NewAuthHandler(nil, verifier, newMockSessionManager(), nil, newTestLogger())

	rr := httptest.NewRecorder()
	appErr := authHandler.adminLoginHandler(rr, loginRequest("admin", "anything"))
	if appErr == nil || appErr.Code != http.StatusNotFound {
		t.Errorf("expected a 404 AppError when admin credentials are not configured, got %+v", appErr)
	}
}

func TestLogoutHandler(t *testing.T) {
	mockSession := newMockSessionManager()
	mockSession.values[session.KeySubject] = auth.SubjectAdmin
	authHandler := NewAuthHandler(nil, testVerifier(t), mockSession, nil, newTestLogger())

	req := httptest.NewRequest("GET", "/auth/logout", nil)
	rr := httptest.NewRecorder()

	authHandler.handleLogout(rr, req)

	if !mockSession.destroyCalled {
		t.Error("expected session.Destroy to be called, but it wasn't")
	}
	if rr.Code != http.StatusFound {
		t.Errorf("want status code %d; got %d", http.StatusFound, rr.Code)
	}
	location, err := rr.Result().Location()
	if err != nil {
		t.Fatalf("could not get redirect location: %v", err)
	}
	if location.Path != "/" {
		t.Errorf("want redirect to '/'; got '%s'", location.Path)
	}
}

func TestOIDCLoginHandler_Disabled(t *testing.T) {
	authHandler := NewAuthHandler(nil, testVerifier(t), newMockSessionManager(), nil, newTestLogger())

	rr := httptest.NewRecorder()
	authHandler.handleLogin(rr, httptest.NewRequest("GET", "/auth/login", nil))

	if rr.Code != http.StatusNotFound {
		t.Errorf("want status code %d when OIDC is disabled; got %d", http.StatusNotFound, rr.Code)
	}
}
