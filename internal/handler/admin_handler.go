package handler

import (
	"encoding/json"
	"go-recruit-app/internal/content"
	"go-recruit-app/internal/data"
	"go-recruit-app/internal/logger"
	"go-recruit-app/internal/middleware"
	"go-recruit-app/internal/service"
	"go-recruit-app/internal/session"
	"go-recruit-app/internal/view"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// AdminHandler holds the dependencies for the admin surface.
type AdminHandler struct {
	contentService  service.ContentServicer
	jobService      service.JobServicer
	leadService     service.LeadServicer
	postService     service.PostServicer
	documentService service.DocumentServicer
	view            *view.View
	session         session.Manager
	log             logger.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(cs service.ContentServicer, js service.JobServicer, ls service.LeadServicer, ps service.PostServicer, ds service.DocumentServicer, v *view.View, sm session.Manager, log logger.Logger) *AdminHandler {
	return &AdminHandler{
		contentService:  cs,
		jobService:      js,
		leadService:     ls,
		postService:     ps,
		documentService: ds,
		view:            v,
		session:         sm,
		log:             log,
	}
}

func (h *AdminHandler) render(w http.ResponseWriter, r *http.Request, tmpl string, data map[string]interface{}) *middleware.AppError {
	base := pageData(h.session, r)
	for k, v := range data {
		base[k] = v
	}
	if err := h.view.Render(w, r, tmpl, base); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render admin page", Code: http.StatusInternalServerError}
	}
	return nil
}

// dashboardHandler renders the admin landing page with the newest intake
// rows across both pipelines.
func (h *AdminHandler) dashboardHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	apps, err := h.leadService.EmployeeApplications(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load applications", Code: http.StatusInternalServerError}
	}
	reqs, err := h.leadService.HiringRequests(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load hiring requests", Code: http.StatusInternalServerError}
	}

	return h.render(w, r, "admin_dashboard.html", map[string]interface{}{
		"ApplicationCount": len(apps),
		"HiringCount":      len(reqs),
		"Applications":     truncate(apps, 5),
		"HiringRequests":   truncate(reqs, 5),
		"ContentPages":     content.Pages(),
	})
}

func truncate[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// editContentHandler renders the content editor for a page with the merged
// document as formatted JSON.
func (h *AdminHandler) editContentHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	page := chi.URLParam(r, "page")
	node, err := h.contentService.PageContent(r.Context(), page)
	if err != nil {
		flashAndRedirect(h.session, w, r, "/admin", "Unknown content page.", true)
		return nil
	}
	doc, err := json.MarshalIndent(node, "", "  ")
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to encode page content", Code: http.StatusInternalServerError}
	}

	return h.render(w, r, "admin_edit_content.html", map[string]interface{}{
		"PageName": page,
		"Document": string(doc),
	})
}

// saveContentHandler replaces the persisted document for a page with the
// submitted JSON. Saves are whole-document; the last full save wins.
func (h *AdminHandler) saveContentHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	page := chi.URLParam(r, "page")
	if err := r.ParseForm(); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to read content form", Code: http.StatusBadRequest}
	}

	var doc content.Node
	if err := json.Unmarshal([]byte(r.FormValue("document")), &doc); err != nil {
		flashAndRedirect(h.session, w, r, "/admin/edit/"+page, "The document is not valid JSON: "+err.Error(), true)
		return nil
	}
	if err := h.contentService.SaveContent(r.Context(), page, doc); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to save page content", Code: http.StatusInternalServerError}
	}

	flashAndRedirect(h.session, w, r, "/admin/edit/"+page, "Content saved.", false)
	return nil
}

// applicationsHandler lists candidate applications.
func (h *AdminHandler) applicationsHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	apps, err := h.leadService.EmployeeApplications(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load applications", Code: http.StatusInternalServerError}
	}
	return h.render(w, r, "admin_applications.html", map[string]interface{}{
		"Applications": apps,
		"Statuses": []string{
			data.ApplicationStatusPending, data.ApplicationStatusReviewed, data.ApplicationStatusContacted,
			data.ApplicationStatusHired, data.ApplicationStatusRejected,
		},
	})
}

// applicationDetailHandler shows one candidate application. A missing record
// redirects back to the list with a message rather than erroring.
func (h *AdminHandler) applicationDetailHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		flashAndRedirect(h.session, w, r, "/admin/applications", "Application not found.", true)
		return nil
	}
	app, err := h.leadService.EmployeeApplication(r.Context(), id)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load application", Code: http.StatusInternalServerError}
	}
	if app == nil {
		flashAndRedirect(h.session, w, r, "/admin/applications", "Application not found.", true)
		return nil
	}
	return h.render(w, r, "admin_application_detail.html", map[string]interface{}{
		"Application": app,
		"Statuses": []string{
			data.ApplicationStatusPending, data.ApplicationStatusReviewed, data.ApplicationStatusContacted,
			data.ApplicationStatusHired, data.ApplicationStatusRejected,
		},
	})
}

// applicationStatusHandler moves a candidate application to a new status.
func (h *AdminHandler) applicationStatusHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		flashAndRedirect(h.session, w, r, "/admin/applications", "Application not found.", true)
		return nil
	}
	if err := r.ParseForm(); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to read status form", Code: http.StatusBadRequest}
	}
	if err := h.leadService.UpdateEmployeeApplicationStatus(r.Context(), id, r.FormValue("status")); err != nil {
		h.log.Error(err, "Failed to update application status")
		flashAndRedirect(h.session, w, r, "/admin/applications", "Could not update the application status.", true)
		return nil
	}
	flashAndRedirect(h.session, w, r, "/admin/applications", "Status updated.", false)
	return nil
}

// hiringHandler lists employer hiring requests.
func (h *AdminHandler) hiringHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	reqs, err := h.leadService.HiringRequests(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load hiring requests", Code: http.StatusInternalServerError}
	}
	return h.render(w, r, "admin_hiring.html", map[string]interface{}{
		"HiringRequests": reqs,
		"Statuses": []string{
			data.HiringStatusPending, data.HiringStatusReviewed, data.HiringStatusContacted,
			data.HiringStatusInProgress, data.HiringStatusCompleted, data.HiringStatusCancelled,
		},
	})
}

// hiringDetailHandler shows one hiring request, redirecting when missing.
func (h *AdminHandler) hiringDetailHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		flashAndRedirect(h.session, w, r, "/admin/hiring", "Hiring request not found.", true)
		return nil
	}
	req, err := h.leadService.HiringRequest(r.Context(), id)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load hiring request", Code: http.StatusInternalServerError}
	}
	if req == nil {
		flashAndRedirect(h.session, w, r, "/admin/hiring", "Hiring request not found.", true)
		return nil
	}
	return h.render(w, r, "admin_hiring_detail.html", map[string]interface{}{
		"Request": req,
		"Statuses": []string{
			data.HiringStatusPending, data.HiringStatusReviewed, data.HiringStatusContacted,
			data.HiringStatusInProgress, data.HiringStatusCompleted, data.HiringStatusCancelled,
		},
	})
}

// hiringStatusHandler moves a hiring request to a new status.
func (h *AdminHandler) hiringStatusHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		flashAndRedirect(h.session, w, r, "/admin/hiring", "Hiring request not found.", true)
		return nil
	}
	if err := r.ParseForm(); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to read status form", Code: http.StatusBadRequest}
	}
	if err := h.leadService.UpdateHiringRequestStatus(r.Context(), id, r.FormValue("status")); err != nil {
		h.log.Error(err, "Failed to update hiring request status")
		flashAndRedirect(h.session, w, r, "/admin/hiring", "Could not update the hiring request status.", true)
		return nil
	}
	flashAndRedirect(h.session, w, r, "/admin/hiring", "Status updated.", false)
	return nil
}

// jobsHandler lists every job for the admin view.
func (h *AdminHandler) jobsHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	jobs, err := h.jobService.AllJobs(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load jobs", Code: http.StatusInternalServerError}
	}
	return h.render(w, r, "admin_jobs.html", map[string]interface{}{"Jobs": jobs})
}

// newJobHandler renders an empty job form.
func (h *AdminHandler) newJobHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.render(w, r, "admin_job_form.html", map[string]interface{}{"Job": &data.Job{}})
}

// jobFromForm builds a Job from the submitted form values.
func jobFromForm(r *http.Request) *data.Job {
	return &data.Job{
		Title:            strings.TrimSpace(r.FormValue("title")),
		Company:          strings.TrimSpace(r.FormValue("company")),
		ShowCompany:      r.FormValue("show_company") == "on",
		Location:         strings.TrimSpace(r.FormValue("location")),
		WorkMode:         r.FormValue("work_mode"),
		Contract:         r.FormValue("contract"),
		Salary:           strings.TrimSpace(r.FormValue("salary")),
		ShortDescription: r.FormValue("short_description"),
		Description:      r.FormValue("description"),
		Featured:         r.FormValue("featured") == "on",
		Status:           r.FormValue("status"),
	}
}

// createJobHandler inserts a new job from the form.
func (h *AdminHandler) createJobHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := r.ParseForm(); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to read job form", Code: http.StatusBadRequest}
	}
	job := jobFromForm(r)
	if job.Title == "" {
		flashAndRedirect(h.session, w, r, "/admin/jobs/new", "A job needs a title.", true)
		return nil
	}
	if _, err := h.jobService.CreateJob(r.Context(), job); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to create job", Code: http.StatusInternalServerError}
	}
	flashAndRedirect(h.session, w, r, "/admin/jobs", "Job created.", false)
	return nil
}

// editJobHandler renders the job form pre-filled, redirecting when missing.
func (h *AdminHandler) editJobHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		flashAndRedirect(h.session, w, r, "/admin/jobs", "Job not found.", true)
		return nil
	}
	job, err := h.jobService.JobByID(r.Context(), id)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load job", Code: http.StatusInternalServerError}
	}
	if job == nil {
		flashAndRedirect(h.session, w, r, "/admin/jobs", "Job not found.", true)
		return nil
	}
	return h.render(w, r, "admin_job_form.html", map[string]interface{}{"Job": job})
}

// updateJobHandler applies the form to an existing job.
func (h *AdminHandler) updateJobHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		flashAndRedirect(h.session, w, r, "/admin/jobs", "Job not found.", true)
		return nil
	}
	if err := r.ParseForm(); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to read job form", Code: http.StatusBadRequest}
	}
	job := jobFromForm(r)
	job.ID = id
	if err := h.jobService.UpdateJob(r.Context(), job); err != nil {
		h.log.Error(err, "Failed to update job")
		flashAndRedirect(h.session, w, r, "/admin/jobs", "Could not update the job.", true)
		return nil
	}
	flashAndRedirect(h.session, w, r, "/admin/jobs", "Job updated.", false)
	return nil
}

// deleteJobHandler removes a job.
func (h *AdminHandler) deleteJobHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		flashAndRedirect(h.session, w, r, "/admin/jobs", "Job not found.", true)
		return nil
	}
	if err := h.jobService.DeleteJob(r.Context(), id); err != nil {
		h.log.Error(err, "Failed to delete job")
		flashAndRedirect(h.session, w, r, "/admin/jobs", "Could not delete the job.", true)
		return nil
	}
	flashAndRedirect(h.session, w, r, "/admin/jobs", "Job deleted.", false)
	return nil
}

// jobApplicationsHandler lists the applications submitted for one job.
func (h *AdminHandler) jobApplicationsHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		flashAndRedirect(h.session, w, r, "/admin/jobs", "Job not found.", true)
		return nil
	}
	job, err := h.jobService.JobByID(r.Context(), id)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load job", Code: http.StatusInternalServerError}
	}
	if job == nil {
		flashAndRedirect(h.session, w, r, "/admin/jobs", "Job not found.", true)
		return nil
	}
	apps, err := h.leadService.JobApplications(r.Context(), id)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load job applications", Code: http.StatusInternalServerError}
	}
	return h.render(w, r, "admin_job_applications.html", map[string]interface{}{
		"Job":          job,
		"Applications": apps,
	})
}

// postsHandler lists every blog post for the admin view.
func (h *AdminHandler) postsHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	posts, err := h.postService.AllPosts(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load posts", Code: http.StatusInternalServerError}
	}
	return h.render(w, r, "admin_posts.html", map[string]interface{}{"Posts": posts})
}

// newPostHandler renders an empty post form.
func (h *AdminHandler) newPostHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.render(w, r, "admin_post_form.html", map[string]interface{}{"Post": &data.Post{}})
}

// createPostHandler inserts a new post from the form.
func (h *AdminHandler) createPostHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := r.ParseForm(); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to read post form", Code: http.StatusBadRequest}
	}
	post := &data.Post{
		Title:     strings.TrimSpace(r.FormValue("title")),
		Slug:      strings.TrimSpace(r.FormValue("slug")),
		Body:      r.FormValue("body"),
		Published: r.FormValue("published") == "on",
	}
	if post.Title == "" {
		flashAndRedirect(h.session, w, r, "/admin/posts/new", "A post needs a title.", true)
		return nil
	}
	if _, err := h.postService.CreatePost(r.Context(), post); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to create post", Code: http.StatusInternalServerError}
	}
	flashAndRedirect(h.session, w, r, "/admin/posts", "Post created.", false)
	return nil
}

// editPostHandler renders the post form pre-filled, redirecting when missing.
func (h *AdminHandler) editPostHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	post, err := h.postService.PostBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load post", Code: http.StatusInternalServerError}
	}
	if post == nil {
		flashAndRedirect(h.session, w, r, "/admin/posts", "Post not found.", true)
		return nil
	}
	return h.render(w, r, "admin_post_form.html", map[string]interface{}{"Post": post})
}

// updatePostHandler applies the form to an existing post.
func (h *AdminHandler) updatePostHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := r.ParseForm(); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to read post form", Code: http.StatusBadRequest}
	}
	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		flashAndRedirect(h.session, w, r, "/admin/posts", "Post not found.", true)
		return nil
	}
	post := &data.Post{
		ID:        id,
		Title:     strings.TrimSpace(r.FormValue("title")),
		Slug:      strings.TrimSpace(r.FormValue("slug")),
		Body:      r.FormValue("body"),
		Published: r.FormValue("published") == "on",
	}
	if err := h.postService.UpdatePost(r.Context(), post); err != nil {
		h.log.Error(err, "Failed to update post")
		flashAndRedirect(h.session, w, r, "/admin/posts", "Could not update the post.", true)
		return nil
	}
	flashAndRedirect(h.session, w, r, "/admin/posts", "Post updated.", false)
	return nil
}

// deletePostHandler removes a post.
func (h *AdminHandler) deletePostHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := r.ParseForm(); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to read delete form", Code: http.StatusBadRequest}
	}
	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		flashAndRedirect(h.session, w, r, "/admin/posts", "Post not found.", true)
		return nil
	}
	if err := h.postService.DeletePost(r.Context(), id); err != nil {
		h.log.Error(err, "Failed to delete post")
		flashAndRedirect(h.session, w, r, "/admin/posts", "Could not delete the post.", true)
		return nil
	}
	flashAndRedirect(h.session, w, r, "/admin/posts", "Post deleted.", false)
	return nil
}

// newsletterHandler lists newsletter signups.
func (h *AdminHandler) newsletterHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	subs, err := h.leadService.NewsletterSubscriptions(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load subscriptions", Code: http.StatusInternalServerError}
	}
	return h.render(w, r, "admin_newsletter.html", map[string]interface{}{"Subscriptions": subs})
}

// salaryGuideUploadHandler replaces the salary guide document slot.
func (h *AdminHandler) salaryGuideUploadHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		flashAndRedirect(h.session, w, r, "/admin", "The document could not be read.", true)
		return nil
	}
	doc, header, err := r.FormFile("document")
	if err != nil {
		flashAndRedirect(h.session, w, r, "/admin", "Please attach a document.", true)
		return nil
	}
	defer doc.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if err := h.documentService.ReplaceSalaryGuide(r.Context(), ext, doc); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to replace the salary guide", Code: http.StatusInternalServerError}
	}
	flashAndRedirect(h.session, w, r, "/admin", "Salary guide replaced.", false)
	return nil
}
