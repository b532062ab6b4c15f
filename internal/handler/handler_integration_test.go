//go:build integration

package handler

import (
	"context"
	"fmt"
	"go-recruit-app/internal/auth"
	"go-recruit-app/internal/cache"
	"go-recruit-app/internal/config"
	"go-recruit-app/internal/data"
	"go-recruit-app/internal/logger"
	"go-recruit-app/internal/middleware"
	"go-recruit-app/internal/notify"
	"go-recruit-app/internal/service"
	"go-recruit-app/internal/storage"
	"go-recruit-app/internal/view"
	"go-recruit-app/web"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/casbin/casbin/v2"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

const integrationAdminPassword = "integration-pass"

type testApp struct {
	Router   *chi.Mux
	Jobs     *data.JobRepository
	Posts    *data.PostRepository
	Enforcer *casbin.Enforcer
}

// integrationSchema mirrors the MySQL migrations in SQLite form so the full
// stack runs against an in-memory database.
const integrationSchema = `
CREATE TABLE page_contents (
	id INTEGER PRIMARY KEY,
	page_name TEXT NOT NULL UNIQUE,
	content BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE jobs (
	id INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	company TEXT NOT NULL DEFAULT '',
	show_company BOOLEAN NOT NULL DEFAULT 0,
	location TEXT NOT NULL DEFAULT '',
	work_mode TEXT NOT NULL DEFAULT 'on-site',
	contract TEXT NOT NULL DEFAULT 'permanent',
	salary TEXT NOT NULL DEFAULT '',
	short_description TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	featured BOOLEAN NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'active',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE employee_applications (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	location TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL,
	phone TEXT NOT NULL DEFAULT '',
	cv_path TEXT NOT NULL,
	message TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'pending',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE hiring_requests (
	id INTEGER PRIMARY KEY,
	contact_name TEXT NOT NULL,
	contact_title TEXT NOT NULL DEFAULT '',
	company TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	role_overview TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'pending',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE job_applications (
	id INTEGER PRIMARY KEY,
	job_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT NOT NULL DEFAULT '',
	experience_level TEXT NULL,
	cv_path TEXT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE newsletter_subscriptions (
	id INTEGER PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	source TEXT NOT NULL DEFAULT 'website',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE posts (
	id INTEGER PRIMARY KEY,
	slug TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL,
	body TEXT NOT NULL,
	published BOOLEAN NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE sessions (
	token TEXT PRIMARY KEY,
	data BLOB NOT NULL,
	expiry REAL NOT NULL
);
CREATE TABLE casbin_rule (
	p_type TEXT NOT NULL DEFAULT '',
	v0 TEXT NOT NULL DEFAULT '',
	v1 TEXT NOT NULL DEFAULT '',
	v2 TEXT NOT NULL DEFAULT '',
	v3 TEXT NOT NULL DEFAULT '',
	v4 TEXT NOT NULL DEFAULT '',
	v5 TEXT NOT NULL DEFAULT ''
);
`

// setupIntegrationTest initializes a full application stack for testing.
func setupIntegrationTest(t *testing.T) (*testApp, func()) {
	t.Helper()
	dsn := "file:memory?mode=memory&cache=shared"
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	db.MustExec(integrationSchema)

	log := logger.New(config.LogConfig{Level: "error", Format: "json"}, io.Discard)
	viewService, err := view.New(web.TemplateFS)
	if err != nil {
		t.Fatalf("Failed to parse templates: %v", err)
	}

	contentCache, err := cache.New(config.CacheConfig{FilePath: ":memory:"})
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}

	store, err := storage.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create disk store: %v", err)
	}
	notifier, err := notify.NewMailer(config.MailConfig{})
	if err != nil {
		t.Fatalf("Failed to create notifier: %v", err)
	}

	contentRepository := data.NewContentRepository(db)
	jobRepository := data.NewJobRepository(db)
	applicationRepository := data.NewApplicationRepository(db)
	newsletterRepository := data.NewNewsletterRepository(db)
	postRepository := data.NewPostRepository(db)

	contentService := service.NewContentService(contentRepository, contentCache)
	jobService := service.NewJobService(jobRepository)
	leadService := service.NewLeadService(applicationRepository, newsletterRepository, store, notifier, log)
	postService := service.NewPostService(postRepository)
	documentService := service.NewDocumentService(store)

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.New(db.DB)
	sessionManager.Lifetime = 3 * time.Minute

	hash, err := bcrypt.GenerateFromPassword([]byte(integrationAdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash admin password: %v", err)
	}
	adminVerifier := auth.NewAdminVerifier(config.AdminConfig{
		Username:     "admin",
		PasswordHash: string(hash),
	})

	pageHandler := NewPageHandler(contentService, jobService, postService, documentService, viewService, sessionManager, log)
	formHandler := NewFormHandler(leadService, jobService, sessionManager, log)
	adminHandler := NewAdminHandler(contentService, jobService, leadService, postService, documentService, viewService, sessionManager, log)
	authHandler := NewAuthHandler(nil, adminVerifier, sessionManager, viewService, log)
	seoHandler := NewSeoHandler(jobService, postService, "http://localhost:4000")

	enforcer, err := auth.NewEnforcer("sqlite3", dsn, "../../auth_model.conf")
	if err != nil {
		t.Fatalf("Failed to create enforcer: %v", err)
	}
	auth.SeedDefaultPolicies(enforcer, log)

	authzMiddleware := middleware.Authorizer(enforcer, sessionManager)
	errorMiddleware := middleware.Error(log, viewService)
	router := NewRouter(pageHandler, formHandler, adminHandler, authHandler, seoHandler,
		authzMiddleware, errorMiddleware, sessionManager, web.StaticFS)

	app := &testApp{
		Router:   router,
		Jobs:     jobRepository,
		Posts:    postRepository,
		Enforcer: enforcer,
	}

	teardown := func() {
		contentCache.Close()
		db.Close()
	}
	return app, teardown
}

func TestHandlers_Integration(t *testing.T) {
	app, teardown := setupIntegrationTest(t)
	defer teardown()
	ctx := context.Background()

	jobID, err := app.Jobs.Create(ctx, &data.Job{
		Title:            "Senior Biostatistician",
		Company:          "Confidential",
		Location:         "Cambridge",
		WorkMode:         "hybrid",
		Contract:         "permanent",
		ShortDescription: "Lead trial analyses.",
		Description:      "<p>Lead trial analyses for phase II studies.</p>",
		Status:           data.JobStatusActive,
	})
	if err != nil {
		t.Fatalf("Failed to seed job: %v", err)
	}
	if _, err := app.Posts.Create(ctx, &data.Post{
		Slug:      "hiring-in-biometrics",
		Title:     "Hiring in Biometrics",
		Body:      "## What we see\n\nDemand keeps growing.",
		Published: true,
	}); err != nil {
		t.Fatalf("Failed to seed post: %v", err)
	}

	testCases := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "Home Page",
			method:     "GET",
			path:       "/",
			wantStatus: http.StatusOK,
			wantBody:   "Recruitment Specialists",
		},
		{
			name:       "Job Listing",
			method:     "GET",
			path:       "/jobs",
			wantStatus: http.StatusOK,
			wantBody:   "Senior Biostatistician",
		},
		{
			name:       "Job Detail",
			method:     "GET",
			path:       fmt.Sprintf("/jobs/%d", jobID),
			wantStatus: http.StatusOK,
			wantBody:   "Lead trial analyses for phase II studies.",
		},
		{
			name:       "Non-Existent Job (Not Found Error)",
			method:     "GET",
			path:       "/jobs/9999",
			wantStatus: http.StatusNotFound,
			wantBody:   "404",
		},
		{
			name:       "Published Blog Post",
			method:     "GET",
			path:       "/blog/hiring-in-biometrics",
			wantStatus: http.StatusOK,
			wantBody:   "What we see",
		},
		{
			name:       "Missing Blog Post (Not Found Error)",
			method:     "GET",
			path:       "/blog/nope",
			wantStatus: http.StatusNotFound,
			wantBody:   "404",
		},
		{
			name:       "Admin Dashboard without session (Forbidden)",
			method:     "GET",
			path:       "/admin",
			wantStatus: http.StatusForbidden,
			wantBody:   "Forbidden",
		},
		{
			name:       "Admin mutation without session (Forbidden)",
			method:     "POST",
			path:       "/admin/jobs",
			wantStatus: http.StatusForbidden,
			wantBody:   "Forbidden",
		},
		{
			name:       "Robots",
			method:     "GET",
			path:       "/robots.txt",
			wantStatus: http.StatusOK,
			wantBody:   "Sitemap:",
		},
		{
			name:       "Sitemap lists active jobs",
			method:     "GET",
			path:       "/sitemap.xml",
			wantStatus: http.StatusOK,
			wantBody:   fmt.Sprintf("/jobs/%d", jobID),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rr := httptest.NewRecorder()
			app.Router.ServeHTTP(rr, req)

			if rr.Code != tc.wantStatus {
				t.Errorf("want status %d; got %d", tc.wantStatus, rr.Code)
			}
			if tc.wantBody != "" && !strings.Contains(rr.Body.String(), tc.wantBody) {
				t.Errorf("body does not contain expected string '%s'", tc.wantBody)
			}
		})
	}
}

func TestAdminSession_Integration(t *testing.T) {
	app, teardown := setupIntegrationTest(t)
	defer teardown()

	login := func(password string) *httptest.ResponseRecorder {
		form := url.Values{}
		form.Set("username", "admin")
		form.Set("password", password)
		req := httptest.NewRequest("POST", "/admin/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()
		app.Router.ServeHTTP(rr, req)
		return rr
	}

	t.Run("Wrong password stays logged out", func(t *testing.T) {
		rr := login("wrong")
		if rr.Code != http.StatusSeeOther {
			t.Fatalf("want status %d; got %d", http.StatusSeeOther, rr.Code)
		}
		if loc := rr.Header().Get("Location"); loc != "/admin/login" {
			t.Errorf("want redirect back to login; got %s", loc)
		}

		req := httptest.NewRequest("GET", "/admin", nil)
		for _, c := range rr.Result().Cookies() {
			req.AddCookie(c)
		}
		rr2 := httptest.NewRecorder()
		app.Router.ServeHTTP(rr2, req)
		if rr2.Code != http.StatusForbidden {
			t.Errorf("want status %d after failed login; got %d", http.StatusForbidden, rr2.Code)
		}
	})

	t.Run("Successful login grants admin access", func(t *testing.T) {
		rr := login(integrationAdminPassword)
		if rr.Code != http.StatusFound {
			t.Fatalf("want status %d; got %d", http.StatusFound, rr.Code)
		}
		if loc := rr.Header().Get("Location"); loc != "/admin" {
			t.Errorf("want redirect to /admin; got %s", loc)
		}
		cookies := rr.Result().Cookies()
		if len(cookies) == 0 {
			t.Fatal("expected a session cookie after login")
		}

		req := httptest.NewRequest("GET", "/admin", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rr2 := httptest.NewRecorder()
		app.Router.ServeHTTP(rr2, req)
		if rr2.Code != http.StatusOK {
			t.Fatalf("want status %d for admin dashboard; got %d", http.StatusOK, rr2.Code)
		}
		if !strings.Contains(rr2.Body.String(), "Dashboard") {
			t.Error("dashboard body missing expected heading")
		}

		req = httptest.NewRequest("GET", "/auth/logout", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rr3 := httptest.NewRecorder()
		app.Router.ServeHTTP(rr3, req)
		if rr3.Code != http.StatusFound {
			t.Fatalf("want status %d for logout; got %d", http.StatusFound, rr3.Code)
		}

		req = httptest.NewRequest("GET", "/admin", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rr4 := httptest.NewRecorder()
		app.Router.ServeHTTP(rr4, req)
		if rr4.Code != http.StatusForbidden {
			t.Errorf("want status %d after logout; got %d", http.StatusForbidden, rr4.Code)
		}
	})
}
