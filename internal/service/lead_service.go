package service

import (
	"context"
	"fmt"
	"go-recruit-app/internal/data"
	"go-recruit-app/internal/logger"
	"go-recruit-app/internal/notify"
	"go-recruit-app/internal/storage"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

// notifyTimeout bounds the background notification send.
const notifyTimeout = 30 * time.Second

// ApplicationRepository defines the interface for database operations on
// intake rows.
type ApplicationRepository interface {
	CreateEmployeeApplication(ctx context.Context, app *data.EmployeeApplication) (int64, error)
	ListEmployeeApplications(ctx context.Context) ([]*data.EmployeeApplication, error)
	GetEmployeeApplicationByID(ctx context.Context, id int64) (*data.EmployeeApplication, error)
	UpdateEmployeeApplicationStatus(ctx context.Context, id int64, status string) error
	CreateHiringRequest(ctx context.Context, req *data.HiringRequest) (int64, error)
	ListHiringRequests(ctx context.Context) ([]*data.HiringRequest, error)
	GetHiringRequestByID(ctx context.Context, id int64) (*data.HiringRequest, error)
	UpdateHiringRequestStatus(ctx context.Context, id int64, status string) error
	CreateJobApplication(ctx context.Context, app *data.JobApplication) (int64, error)
	ListJobApplications(ctx context.Context, jobID int64) ([]*data.JobApplication, error)
}

// NewsletterSubscriber defines the interface for newsletter signups.
type NewsletterSubscriber interface {
	Subscribe(ctx context.Context, sub *data.NewsletterSubscription) error
	List(ctx context.Context) ([]*data.NewsletterSubscription, error)
}

// LeadServicer defines the interface for the lead-capture flows and their
// admin review operations.
type LeadServicer interface {
	SubmitEmployeeApplication(ctx context.Context, app *data.EmployeeApplication, cv io.Reader, cvFilename string) (int64, error)
	SubmitHiringRequest(ctx context.Context, req *data.HiringRequest) (int64, error)
	SubmitJobApplication(ctx context.Context, jobTitle string, app *data.JobApplication) (int64, error)
	SubscribeNewsletter(ctx context.Context, email, source string) error
	EmployeeApplications(ctx context.Context) ([]*data.EmployeeApplication, error)
	EmployeeApplication(ctx context.Context, id int64) (*data.EmployeeApplication, error)
	UpdateEmployeeApplicationStatus(ctx context.Context, id int64, status string) error
	HiringRequests(ctx context.Context) ([]*data.HiringRequest, error)
	HiringRequest(ctx context.Context, id int64) (*data.HiringRequest, error)
	UpdateHiringRequestStatus(ctx context.Context, id int64, status string) error
	JobApplications(ctx context.Context, jobID int64) ([]*data.JobApplication, error)
	NewsletterSubscriptions(ctx context.Context) ([]*data.NewsletterSubscription, error)
}

// LeadService handles candidate and employer intake. Each submission is a
// sequence of independent external calls: store the CV, insert the row, then
// dispatch a best-effort notification that never gates the submission.
type LeadService struct {
	apps       ApplicationRepository
	newsletter NewsletterSubscriber
	store      storage.Store
	notifier   notify.Notifier
	sanitizer  *bluemonday.Policy
	log        logger.Logger
}

// NewLeadService creates a new LeadService. Free-text fields are scrubbed
// with the strict policy; they are plain text, never markup.
func NewLeadService(apps ApplicationRepository, newsletter NewsletterSubscriber, store storage.Store, notifier notify.Notifier, log logger.Logger) *LeadService {
	return &LeadService{
		apps:       apps,
		newsletter: newsletter,
		store:      store,
		notifier:   notifier,
		sanitizer:  bluemonday.StrictPolicy(),
		log:        log,
	}
}

// SubmitEmployeeApplication stores the CV under a generated unique name,
// inserts the application with status pending, and dispatches a notification.
// A row-insert failure after a successful upload leaves an orphaned CV
// object; that is accepted, not remediated.
func (s *LeadService) SubmitEmployeeApplication(ctx context.Context, app *data.EmployeeApplication, cv io.Reader, cvFilename string) (int64, error) {
	ext := strings.ToLower(filepath.Ext(cvFilename))
	objectPath := uuid.New().String() + ext

	storedPath, err := s.store.Upload(ctx, objectPath, cv, false)
	if err != nil {
		return 0, fmt.Errorf("failed to store CV: %w", err)
	}

	app.CVPath = storedPath
	app.Message = s.sanitizer.Sanitize(app.Message)
	app.Status = data.ApplicationStatusPending

	id, err := s.apps.CreateEmployeeApplication(ctx, app)
	if err != nil {
		return 0, err
	}

	s.dispatchNotification(
		"New candidate application: "+app.Name,
		fmt.Sprintf("Name: %s\nLocation: %s\nEmail: %s\nPhone: %s\nCV: %s\n\n%s",
			app.Name, app.Location, app.Email, app.Phone, app.CVPath, app.Message),
	)
	return id, nil
}

// SubmitHiringRequest inserts an employer intake row with status pending and
// dispatches a notification.
func (s *LeadService) SubmitHiringRequest(ctx context.Context, req *data.HiringRequest) (int64, error) {
	req.RoleOverview = s.sanitizer.Sanitize(req.RoleOverview)
	req.Status = data.HiringStatusPending

	id, err := s.apps.CreateHiringRequest(ctx, req)
	if err != nil {
		return 0, err
	}

	s.dispatchNotification(
		"New hiring request: "+req.Company,
		fmt.Sprintf("Contact: %s (%s)\nCompany: %s\nEmail: %s\nPhone: %s\nLocation: %s\n\n%s",
			req.ContactName, req.ContactTitle, req.Company, req.Email, req.Phone, req.Location, req.RoleOverview),
	)
	return id, nil
}

// SubmitJobApplication inserts a per-job application and dispatches a
// notification naming the role.
func (s *LeadService) SubmitJobApplication(ctx context.Context, jobTitle string, app *data.JobApplication) (int64, error) {
	id, err := s.apps.CreateJobApplication(ctx, app)
	if err != nil {
		return 0, err
	}

	level := "not given"
	if app.ExperienceLevel != nil {
		level = *app.ExperienceLevel
	}
	s.dispatchNotification(
		"New application for "+jobTitle,
		fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\nExperience level: %s",
			app.Name, app.Email, app.Phone, level),
	)
	return id, nil
}

// SubscribeNewsletter records a signup. data.ErrAlreadySubscribed passes
// through untouched so the handler can show the friendly message.
func (s *LeadService) SubscribeNewsletter(ctx context.Context, email, source string) error {
	return s.newsletter.Subscribe(ctx, &data.NewsletterSubscription{Email: email, Source: source})
}

// EmployeeApplications returns all candidate applications for review.
func (s *LeadService) EmployeeApplications(ctx context.Context) ([]*data.EmployeeApplication, error) {
	return s.apps.ListEmployeeApplications(ctx)
}

// EmployeeApplication returns one candidate application, or nil when missing.
func (s *LeadService) EmployeeApplication(ctx context.Context, id int64) (*data.EmployeeApplication, error) {
	return s.apps.GetEmployeeApplicationByID(ctx, id)
}

var applicationStatuses = map[string]bool{
	data.ApplicationStatusPending:   true,
	data.ApplicationStatusReviewed:  true,
	data.ApplicationStatusContacted: true,
	data.ApplicationStatusHired:     true,
	data.ApplicationStatusRejected:  true,
}

// UpdateEmployeeApplicationStatus moves a candidate application to a new
// status after validating it against the allowed set.
func (s *LeadService) UpdateEmployeeApplicationStatus(ctx context.Context, id int64, status string) error {
	if !applicationStatuses[status] {
		return fmt.Errorf("invalid application status '%s'", status)
	}
	return s.apps.UpdateEmployeeApplicationStatus(ctx, id, status)
}

// HiringRequests returns all employer hiring requests for review.
func (s *LeadService) HiringRequests(ctx context.Context) ([]*data.HiringRequest, error) {
	return s.apps.ListHiringRequests(ctx)
}

// HiringRequest returns one hiring request, or nil when missing.
func (s *LeadService) HiringRequest(ctx context.Context, id int64) (*data.HiringRequest, error) {
	return s.apps.GetHiringRequestByID(ctx, id)
}

var hiringStatuses = map[string]bool{
	data.HiringStatusPending:    true,
	data.HiringStatusReviewed:   true,
	data.HiringStatusContacted:  true,
	data.HiringStatusInProgress: true,
	data.HiringStatusCompleted:  true,
	data.HiringStatusCancelled:  true,
}

// UpdateHiringRequestStatus moves a hiring request to a new status after
// validating it against the allowed set.
func (s *LeadService) UpdateHiringRequestStatus(ctx context.Context, id int64, status string) error {
	if !hiringStatuses[status] {
		return fmt.Errorf("invalid hiring request status '%s'", status)
	}
	return s.apps.UpdateHiringRequestStatus(ctx, id, status)
}

// JobApplications returns the applications submitted for one job.
func (s *LeadService) JobApplications(ctx context.Context, jobID int64) ([]*data.JobApplication, error) {
	return s.apps.ListJobApplications(ctx, jobID)
}

// NewsletterSubscriptions returns all signups, newest first.
func (s *LeadService) NewsletterSubscriptions(ctx context.Context) ([]*data.NewsletterSubscription, error) {
	return s.newsletter.List(ctx)
}

// dispatchNotification sends the team email on a background goroutine after
// the primary write has committed. Failures are logged and swallowed.
func (s *LeadService) dispatchNotification(subject, body string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notifier.Notify(ctx, subject, body); err != nil {
			s.log.Error(err, "Failed to send lead notification")
		}
	}()
}
