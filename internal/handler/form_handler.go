package handler

import (
	"errors"
	"fmt"
	"go-recruit-app/internal/data"
	"go-recruit-app/internal/logger"
	"go-recruit-app/internal/middleware"
	"go-recruit-app/internal/service"
	"go-recruit-app/internal/session"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// maxUploadSize bounds multipart form parsing for CV uploads.
const maxUploadSize = 10 << 20 // 10 MiB

// FormHandler holds the dependencies for the public lead-capture forms.
type FormHandler struct {
	leadService service.LeadServicer
	jobService  service.JobServicer
	session     session.Manager
	log         logger.Logger
}

// NewFormHandler creates a new FormHandler.
func NewFormHandler(ls service.LeadServicer, js service.JobServicer, sm session.Manager, log logger.Logger) *FormHandler {
	return &FormHandler{
		leadService: ls,
		jobService:  js,
		session:     sm,
		log:         log,
	}
}

// flashAndRedirect stores a one-shot banner message and sends the visitor
// back to the page they submitted from.
func flashAndRedirect(sm session.Manager, w http.ResponseWriter, r *http.Request, target, msg string, isError bool) {
	sm.Put(r.Context(), session.KeyFlash, msg)
	if isError {
		sm.Put(r.Context(), session.KeyFlashError, "true")
	} else {
		sm.Remove(r.Context(), session.KeyFlashError)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *FormHandler) flashAndRedirect(w http.ResponseWriter, r *http.Request, target, msg string, isError bool) {
	flashAndRedirect(h.session, w, r, target, msg, isError)
}

// applyHandler accepts the candidate application form with its CV upload.
func (h *FormHandler) applyHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.flashAndRedirect(w, r, "/candidates", "Your application could not be read. Please try again.", true)
		return nil
	}

	app := &data.EmployeeApplication{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Location: strings.TrimSpace(r.FormValue("location")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Phone:    strings.TrimSpace(r.FormValue("phone")),
		Message:  r.FormValue("message"),
	}
	if app.Name == "" || app.Email == "" {
		h.flashAndRedirect(w, r, "/candidates", "Please fill in your name and email address.", true)
		return nil
	}

	cv, header, err := r.FormFile("cv")
	if err != nil {
		h.flashAndRedirect(w, r, "/candidates", "Please attach your CV.", true)
		return nil
	}
	defer cv.Close()

	if _, err := h.leadService.SubmitEmployeeApplication(r.Context(), app, cv, header.Filename); err != nil {
		h.log.Error(err, "Failed to submit candidate application")
		h.flashAndRedirect(w, r, "/candidates", "Something went wrong submitting your application. Please try again.", true)
		return nil
	}

	h.flashAndRedirect(w, r, "/candidates", "Thanks! Your application has been received and our team will be in touch.", false)
	return nil
}

// hireHandler accepts the employer hiring request form.
func (h *FormHandler) hireHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := r.ParseForm(); err != nil {
		h.flashAndRedirect(w, r, "/employers", "Your request could not be read. Please try again.", true)
		return nil
	}

	req := &data.HiringRequest{
		ContactName:  strings.TrimSpace(r.FormValue("contact_name")),
		ContactTitle: strings.TrimSpace(r.FormValue("contact_title")),
		Company:      strings.TrimSpace(r.FormValue("company")),
		Email:        strings.TrimSpace(r.FormValue("email")),
		Phone:        strings.TrimSpace(r.FormValue("phone")),
		Location:     strings.TrimSpace(r.FormValue("location")),
		RoleOverview: r.FormValue("role_overview"),
	}
	if req.ContactName == "" || req.Company == "" || req.Email == "" {
		h.flashAndRedirect(w, r, "/employers", "Please fill in your name, company and email address.", true)
		return nil
	}

	if _, err := h.leadService.SubmitHiringRequest(r.Context(), req); err != nil {
		h.log.Error(err, "Failed to submit hiring request")
		h.flashAndRedirect(w, r, "/employers", "Something went wrong submitting your request. Please try again.", true)
		return nil
	}

	h.flashAndRedirect(w, r, "/employers", "Thanks! We will be in touch to discuss your hiring needs.", false)
	return nil
}

// jobApplyHandler accepts an application for a specific vacancy.
func (h *FormHandler) jobApplyHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Job not found", Code: http.StatusNotFound}
	}
	job, err := h.jobService.JobByID(r.Context(), id)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load job", Code: http.StatusInternalServerError}
	}
	if job == nil {
		h.flashAndRedirect(w, r, "/jobs", "That role is no longer available.", true)
		return nil
	}
	target := fmt.Sprintf("/jobs/%d", id)

	if err := r.ParseForm(); err != nil {
		h.flashAndRedirect(w, r, target, "Your application could not be read. Please try again.", true)
		return nil
	}

	app := &data.JobApplication{
		JobID: id,
		Name:  strings.TrimSpace(r.FormValue("name")),
		Email: strings.TrimSpace(r.FormValue("email")),
		Phone: strings.TrimSpace(r.FormValue("phone")),
	}
	if level := strings.TrimSpace(r.FormValue("experience_level")); level != "" {
		app.ExperienceLevel = &level
	}
	if app.Name == "" || app.Email == "" {
		h.flashAndRedirect(w, r, target, "Please fill in your name and email address.", true)
		return nil
	}

	if _, err := h.leadService.SubmitJobApplication(r.Context(), job.Title, app); err != nil {
		h.log.Error(err, "Failed to submit job application")
		h.flashAndRedirect(w, r, target, "Something went wrong submitting your application. Please try again.", true)
		return nil
	}

	h.flashAndRedirect(w, r, target, "Thanks! Your application for "+job.Title+" has been received.", false)
	return nil
}

// newsletterHandler records a newsletter signup. A duplicate email gets a
// friendly confirmation rather than an error banner.
func (h *FormHandler) newsletterHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := r.ParseForm(); err != nil {
		h.flashAndRedirect(w, r, "/", "Your signup could not be read. Please try again.", true)
		return nil
	}

	target := r.FormValue("return_to")
	if target == "" || !strings.HasPrefix(target, "/") {
		target = "/"
	}
	email := strings.TrimSpace(r.FormValue("email"))
	if email == "" {
		h.flashAndRedirect(w, r, target, "Please enter your email address.", true)
		return nil
	}
	source := r.FormValue("source")
	if source == "" {
		source = "website"
	}

	if err := h.leadService.SubscribeNewsletter(r.Context(), email, source); err != nil {
		if errors.Is(err, data.ErrAlreadySubscribed) {
			h.flashAndRedirect(w, r, target, "You're already subscribed. Thanks for your interest!", false)
			return nil
		}
		h.log.Error(err, "Failed to record newsletter signup")
		h.flashAndRedirect(w, r, target, "Something went wrong. Please try again.", true)
		return nil
	}

	h.flashAndRedirect(w, r, target, "Thanks for subscribing!", false)
	return nil
}
