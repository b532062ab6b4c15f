package service

import (
	"context"
	"go-recruit-app/internal/data"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// JobRepository defines the interface for database operations on jobs.
type JobRepository interface {
	ListActive(ctx context.Context) ([]*data.Job, error)
	ListFeatured(ctx context.Context) ([]*data.Job, error)
	ListAll(ctx context.Context) ([]*data.Job, error)
	GetByID(ctx context.Context, id int64) (*data.Job, error)
	Create(ctx context.Context, job *data.Job) (int64, error)
	Update(ctx context.Context, job *data.Job) error
	Delete(ctx context.Context, id int64) error
}

// JobServicer defines the interface for interacting with job listings.
type JobServicer interface {
	ActiveJobs(ctx context.Context) ([]*data.Job, error)
	FeaturedJobs(ctx context.Context) ([]*data.Job, error)
	AllJobs(ctx context.Context) ([]*data.Job, error)
	JobByID(ctx context.Context, id int64) (*data.Job, error)
	CreateJob(ctx context.Context, job *data.Job) (int64, error)
	UpdateJob(ctx context.Context, job *data.Job) error
	DeleteJob(ctx context.Context, id int64) error
}

// JobService provides business logic for job listings.
type JobService struct {
	repo      JobRepository
	sanitizer *bluemonday.Policy
}

// NewJobService creates a new JobService with the given repository.
// Job descriptions are written by the admin as HTML; UGCPolicy keeps basic
// formatting while stripping anything dangerous.
func NewJobService(repo JobRepository) *JobService {
	return &JobService{
		repo:      repo,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// ActiveJobs returns all publicly listable jobs.
func (s *JobService) ActiveJobs(ctx context.Context) ([]*data.Job, error) {
	return s.repo.ListActive(ctx)
}

// FeaturedJobs returns active jobs flagged for the home page.
func (s *JobService) FeaturedJobs(ctx context.Context) ([]*data.Job, error) {
	return s.repo.ListFeatured(ctx)
}

// AllJobs returns every job regardless of status for the admin view.
func (s *JobService) AllJobs(ctx context.Context) ([]*data.Job, error) {
	return s.repo.ListAll(ctx)
}

// JobByID returns a single job, or nil when it does not exist.
func (s *JobService) JobByID(ctx context.Context, id int64) (*data.Job, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateJob sanitizes the description fields and inserts the job.
func (s *JobService) CreateJob(ctx context.Context, job *data.Job) (int64, error) {
	job.ShortDescription = s.sanitizer.Sanitize(job.ShortDescription)
	job.Description = s.sanitizer.Sanitize(job.Description)
	if job.Status == "" {
		job.Status = data.JobStatusActive
	}
	return s.repo.Create(ctx, job)
}

// UpdateJob sanitizes the description fields and updates the job.
func (s *JobService) UpdateJob(ctx context.Context, job *data.Job) error {
	job.ShortDescription = s.sanitizer.Sanitize(job.ShortDescription)
	job.Description = s.sanitizer.Sanitize(job.Description)
	job.UpdatedAt = time.Now()
	return s.repo.Update(ctx, job)
}

// DeleteJob removes a job listing.
func (s *JobService) DeleteJob(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
