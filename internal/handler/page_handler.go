package handler

import (
	"errors"
	"fmt"
	"go-recruit-app/internal/logger"
	"go-recruit-app/internal/middleware"
	"go-recruit-app/internal/service"
	"go-recruit-app/internal/session"
	"go-recruit-app/internal/view"
	"html/template"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// PageHandler holds the dependencies for the public page handlers.
type PageHandler struct {
	contentService  service.ContentServicer
	jobService      service.JobServicer
	postService     service.PostServicer
	documentService service.DocumentServicer
	view            *view.View
	session         session.Manager
	log             logger.Logger
}

// NewPageHandler creates a new PageHandler with the given dependencies.
func NewPageHandler(cs service.ContentServicer, js service.JobServicer, ps service.PostServicer, ds service.DocumentServicer, v *view.View, sm session.Manager, log logger.Logger) *PageHandler {
	return &PageHandler{
		contentService:  cs,
		jobService:      js,
		postService:     ps,
		documentService: ds,
		view:            v,
		session:         sm,
		log:             log,
	}
}

// pageData builds the base template data for a request, popping any one-shot
// flash message out of the session.
func pageData(sm session.Manager, r *http.Request) map[string]interface{} {
	data := make(map[string]interface{})
	if flash := sm.PopString(r.Context(), session.KeyFlash); flash != "" {
		data["Flash"] = flash
		data["FlashError"] = sm.PopString(r.Context(), session.KeyFlashError) == "true"
	}
	return data
}

// renderContentPage fetches the merged content tree for a page and renders
// its template. A content fetch failure degrades to the hand-authored
// defaults rather than failing the page.
func (h *PageHandler) renderContentPage(w http.ResponseWriter, r *http.Request, page, tmpl string, extra map[string]interface{}) *middleware.AppError {
	node, err := h.contentService.PageContent(r.Context(), page)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load page content", Code: http.StatusInternalServerError}
	}

	data := pageData(h.session, r)
	data["Content"] = node
	data["PageName"] = page
	for k, v := range extra {
		data[k] = v
	}
	if err := h.view.Render(w, r, tmpl, data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render page", Code: http.StatusInternalServerError}
	}
	return nil
}

// homeHandler renders the home page with its featured jobs strip.
func (h *PageHandler) homeHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	featured, err := h.jobService.FeaturedJobs(r.Context())
	if err != nil {
		// The home page still renders without the jobs strip.
		h.log.Error(err, "Failed to load featured jobs for home page")
		featured = nil
	}
	return h.renderContentPage(w, r, "home", "home.html", map[string]interface{}{
		"FeaturedJobs": featured,
	})
}

func (h *PageHandler) aboutHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.renderContentPage(w, r, "about", "about.html", nil)
}

func (h *PageHandler) specialismsHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.renderContentPage(w, r, "specialisms", "specialisms.html", nil)
}

func (h *PageHandler) employersHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.renderContentPage(w, r, "employers", "employers.html", nil)
}

func (h *PageHandler) candidatesHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.renderContentPage(w, r, "candidates", "candidates.html", nil)
}

// jobsHandler renders the job listing page with all active vacancies.
func (h *PageHandler) jobsHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	jobs, err := h.jobService.ActiveJobs(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load job listings", Code: http.StatusInternalServerError}
	}
	return h.renderContentPage(w, r, "jobs", "jobs.html", map[string]interface{}{
		"Jobs": jobs,
	})
}

// jobDetailHandler renders a single vacancy.
func (h *PageHandler) jobDetailHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Job not found", Code: http.StatusNotFound}
	}
	job, err := h.jobService.JobByID(r.Context(), id)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load job", Code: http.StatusInternalServerError}
	}
	if job == nil {
		return &middleware.AppError{Error: fmt.Errorf("job %d not found", id), Message: "Job not found", Code: http.StatusNotFound}
	}

	data := pageData(h.session, r)
	data["Job"] = job
	// The description is admin-authored HTML, sanitized on save.
	data["DescriptionHTML"] = template.HTML(job.Description)
	if err := h.view.Render(w, r, "job_detail.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render job", Code: http.StatusInternalServerError}
	}
	return nil
}

// blogHandler renders the published blog index.
func (h *PageHandler) blogHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	posts, err := h.postService.PublishedPosts(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load blog posts", Code: http.StatusInternalServerError}
	}
	data := pageData(h.session, r)
	data["Posts"] = posts
	if err := h.view.Render(w, r, "blog.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render blog", Code: http.StatusInternalServerError}
	}
	return nil
}

// blogPostHandler renders a single post by slug.
func (h *PageHandler) blogPostHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	slug := chi.URLParam(r, "slug")
	post, err := h.postService.PostBySlug(r.Context(), slug)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load blog post", Code: http.StatusInternalServerError}
	}
	if post == nil || !post.Published {
		return &middleware.AppError{Error: fmt.Errorf("post '%s' not found", slug), Message: "Post not found", Code: http.StatusNotFound}
	}
	data := pageData(h.session, r)
	data["Post"] = post
	if err := h.view.Render(w, r, "blog_post.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render blog post", Code: http.StatusInternalServerError}
	}
	return nil
}

// salaryGuideHandler streams the salary guide document for download.
func (h *PageHandler) salaryGuideHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	rc, name, err := h.documentService.SalaryGuide(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load salary guide", Code: http.StatusInternalServerError}
	}
	if rc == nil {
		return &middleware.AppError{Error: errors.New("salary guide not uploaded"), Message: "The salary guide is not available yet", Code: http.StatusNotFound}
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "salary-guide"+filepath.Ext(name)))
	if _, err := io.Copy(w, rc); err != nil {
		h.log.Error(err, "Failed to stream salary guide")
	}
	return nil
}
