package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// JobRepository handles database operations for job listings.
type JobRepository struct {
	db *sqlx.DB
}

// NewJobRepository creates a new JobRepository.
func NewJobRepository(db *sqlx.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, title, company, show_company, location, work_mode, contract, salary, short_description, description, featured, status, created_at, updated_at`

// ListActive retrieves all jobs with status 'active', featured first, newest
// within each group.
func (r *JobRepository) ListActive(ctx context.Context) ([]*Job, error) {
	var jobs []*Job
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE status = ? ORDER BY featured DESC, created_at DESC`
	if err := r.db.SelectContext(ctx, &jobs, query, JobStatusActive); err != nil {
		return nil, fmt.Errorf("failed to list active jobs: %w", err)
	}
	return jobs, nil
}

// ListFeatured retrieves active jobs flagged as featured.
func (r *JobRepository) ListFeatured(ctx context.Context) ([]*Job, error) {
	var jobs []*Job
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE status = ? AND featured = ? ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &jobs, query, JobStatusActive, true); err != nil {
		return nil, fmt.Errorf("failed to list featured jobs: %w", err)
	}
	return jobs, nil
}

// ListAll retrieves every job for the admin view regardless of status.
func (r *JobRepository) ListAll(ctx context.Context) ([]*Job, error) {
	var jobs []*Job
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &jobs, query); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// GetByID retrieves a single job. A missing job is not an error; callers
// redirect away.
func (r *JobRepository) GetByID(ctx context.Context, id int64) (*Job, error) {
	var job Job
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = ?`
	if err := r.db.GetContext(ctx, &job, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job by id: %w", err)
	}
	return &job, nil
}

// Create inserts a new job and returns its ID.
func (r *JobRepository) Create(ctx context.Context, job *Job) (int64, error) {
	query := `INSERT INTO jobs (title, company, show_company, location, work_mode, contract, salary, short_description, description, featured, status)
		VALUES (:title, :company, :show_company, :location, :work_mode, :contract, :salary, :short_description, :description, :featured, :status)`
	res, err := r.db.NamedExecContext(ctx, query, job)
	if err != nil {
		return 0, fmt.Errorf("failed to create job: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get created job id: %w", err)
	}
	return id, nil
}

// Update updates an existing job.
func (r *JobRepository) Update(ctx context.Context, job *Job) error {
	query := `UPDATE jobs SET title = :title, company = :company, show_company = :show_company, location = :location,
		work_mode = :work_mode, contract = :contract, salary = :salary, short_description = :short_description,
		description = :description, featured = :featured, status = :status, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, job)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no job found to update with id %d", job.ID)
	}
	return nil
}

// Delete removes a job by its ID.
func (r *JobRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM jobs WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no job found to delete with id %d", id)
	}
	return nil
}
