package handler

import (
	appmw "go-recruit-app/internal/middleware"
	"go-recruit-app/internal/session"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates and configures a new chi router.
func NewRouter(
	pageHandler *PageHandler,
	formHandler *FormHandler,
	adminHandler *AdminHandler,
	authHandler *AuthHandler,
	seoHandler *SeoHandler,
	authzMiddleware func(http.Handler) http.Handler,
	errorMiddleware func(appmw.AppHandler) http.Handler,
	sessionManager session.Manager,
	staticFS fs.FS,
) *chi.Mux {
	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(sessionManager.LoadAndSave)
	r.Use(authzMiddleware)
	r.Use(appmw.EditMode)

	// Static assets
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// SEO
	r.Get("/robots.txt", seoHandler.robotsHandler)
	r.Get("/sitemap.xml", seoHandler.sitemapHandler)

	// Authentication routes
	r.Get("/auth/login", authHandler.handleLogin)
	r.Get("/auth/callback", authHandler.handleCallback)
	r.Get("/auth/logout", authHandler.handleLogout)
	r.Method(http.MethodGet, "/admin/login", errorMiddleware(authHandler.adminLoginFormHandler))
	r.Method(http.MethodPost, "/admin/login", errorMiddleware(authHandler.adminLoginHandler))

	// Public pages
	r.Method(http.MethodGet, "/", errorMiddleware(pageHandler.homeHandler))
	r.Method(http.MethodGet, "/about", errorMiddleware(pageHandler.aboutHandler))
	r.Method(http.MethodGet, "/specialisms", errorMiddleware(pageHandler.specialismsHandler))
	r.Method(http.MethodGet, "/jobs", errorMiddleware(pageHandler.jobsHandler))
	r.Method(http.MethodGet, "/jobs/{id}", errorMiddleware(pageHandler.jobDetailHandler))
	r.Method(http.MethodGet, "/employers", errorMiddleware(pageHandler.employersHandler))
	r.Method(http.MethodGet, "/candidates", errorMiddleware(pageHandler.candidatesHandler))
	r.Method(http.MethodGet, "/candidates/salary-guide", errorMiddleware(pageHandler.salaryGuideHandler))
	r.Method(http.MethodGet, "/blog", errorMiddleware(pageHandler.blogHandler))
	r.Method(http.MethodGet, "/blog/{slug}", errorMiddleware(pageHandler.blogPostHandler))

	// Lead-capture forms
	r.Method(http.MethodPost, "/apply", errorMiddleware(formHandler.applyHandler))
	r.Method(http.MethodPost, "/hire", errorMiddleware(formHandler.hireHandler))
	r.Method(http.MethodPost, "/jobs/{id}/apply", errorMiddleware(formHandler.jobApplyHandler))
	r.Method(http.MethodPost, "/newsletter", errorMiddleware(formHandler.newsletterHandler))

	// Admin surface; the Casbin policy only admits the admin role here.
	r.Route("/admin", func(r chi.Router) {
		r.Method(http.MethodGet, "/", errorMiddleware(adminHandler.dashboardHandler))
		r.Method(http.MethodGet, "/edit/{page}", errorMiddleware(adminHandler.editContentHandler))
		r.Method(http.MethodPost, "/content/{page}", errorMiddleware(adminHandler.saveContentHandler))

		r.Method(http.MethodGet, "/applications", errorMiddleware(adminHandler.applicationsHandler))
		r.Method(http.MethodGet, "/applications/{id}", errorMiddleware(adminHandler.applicationDetailHandler))
		r.Method(http.MethodPost, "/applications/{id}/status", errorMiddleware(adminHandler.applicationStatusHandler))

		r.Method(http.MethodGet, "/hiring", errorMiddleware(adminHandler.hiringHandler))
		r.Method(http.MethodGet, "/hiring/{id}", errorMiddleware(adminHandler.hiringDetailHandler))
		r.Method(http.MethodPost, "/hiring/{id}/status", errorMiddleware(adminHandler.hiringStatusHandler))

		r.Method(http.MethodGet, "/jobs", errorMiddleware(adminHandler.jobsHandler))
		r.Method(http.MethodGet, "/jobs/new", errorMiddleware(adminHandler.newJobHandler))
		r.Method(http.MethodPost, "/jobs", errorMiddleware(adminHandler.createJobHandler))
		r.Method(http.MethodGet, "/jobs/{id}/edit", errorMiddleware(adminHandler.editJobHandler))
		r.Method(http.MethodPost, "/jobs/{id}", errorMiddleware(adminHandler.updateJobHandler))
		r.Method(http.MethodPost, "/jobs/{id}/delete", errorMiddleware(adminHandler.deleteJobHandler))
		r.Method(http.MethodGet, "/jobs/{id}/applications", errorMiddleware(adminHandler.jobApplicationsHandler))

		r.Method(http.MethodGet, "/posts", errorMiddleware(adminHandler.postsHandler))
		r.Method(http.MethodGet, "/posts/new", errorMiddleware(adminHandler.newPostHandler))
		r.Method(http.MethodPost, "/posts", errorMiddleware(adminHandler.createPostHandler))
		r.Method(http.MethodGet, "/posts/{slug}/edit", errorMiddleware(adminHandler.editPostHandler))
		r.Method(http.MethodPost, "/posts/update", errorMiddleware(adminHandler.updatePostHandler))
		r.Method(http.MethodPost, "/posts/delete", errorMiddleware(adminHandler.deletePostHandler))

		r.Method(http.MethodGet, "/newsletter", errorMiddleware(adminHandler.newsletterHandler))
		r.Method(http.MethodPost, "/salary-guide", errorMiddleware(adminHandler.salaryGuideUploadHandler))
	})

	return r
}
