package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ApplicationRepository handles database operations for candidate
// applications, employer hiring requests and per-job applications.
type ApplicationRepository struct {
	db *sqlx.DB
}

// NewApplicationRepository creates a new ApplicationRepository.
func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// CreateEmployeeApplication inserts a candidate intake row and returns its ID.
func (r *ApplicationRepository) CreateEmployeeApplication(ctx context.Context, app *EmployeeApplication) (int64, error) {
	query := `INSERT INTO employee_applications (name, location, email, phone, cv_path, message, status)
		VALUES (:name, :location, :email, :phone, :cv_path, :message, :status)`
	res, err := r.db.NamedExecContext(ctx, query, app)
	if err != nil {
		return 0, fmt.Errorf("failed to create employee application: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get created application id: %w", err)
	}
	return id, nil
}

// ListEmployeeApplications retrieves all candidate applications, newest first.
func (r *ApplicationRepository) ListEmployeeApplications(ctx context.Context) ([]*EmployeeApplication, error) {
	var apps []*EmployeeApplication
	query := `SELECT id, name, location, email, phone, cv_path, message, status, created_at FROM employee_applications ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &apps, query); err != nil {
		return nil, fmt.Errorf("failed to list employee applications: %w", err)
	}
	return apps, nil
}

// GetEmployeeApplicationByID retrieves a single candidate application.
// A missing row is not an error; callers redirect away with a message.
func (r *ApplicationRepository) GetEmployeeApplicationByID(ctx context.Context, id int64) (*EmployeeApplication, error) {
	var app EmployeeApplication
	query := `SELECT id, name, location, email, phone, cv_path, message, status, created_at FROM employee_applications WHERE id = ?`
	if err := r.db.GetContext(ctx, &app, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get employee application by id: %w", err)
	}
	return &app, nil
}

// UpdateEmployeeApplicationStatus moves a candidate application to a new status.
func (r *ApplicationRepository) UpdateEmployeeApplicationStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE employee_applications SET status = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no application found to update with id %d", id)
	}
	return nil
}

// CreateHiringRequest inserts an employer intake row and returns its ID.
func (r *ApplicationRepository) CreateHiringRequest(ctx context.Context, req *HiringRequest) (int64, error) {
	query := `INSERT INTO hiring_requests (contact_name, contact_title, company, email, phone, location, role_overview, status)
		VALUES (:contact_name, :contact_title, :company, :email, :phone, :location, :role_overview, :status)`
	res, err := r.db.NamedExecContext(ctx, query, req)
	if err != nil {
		return 0, fmt.Errorf("failed to create hiring request: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get created hiring request id: %w", err)
	}
	return id, nil
}

// ListHiringRequests retrieves all employer hiring requests, newest first.
func (r *ApplicationRepository) ListHiringRequests(ctx context.Context) ([]*HiringRequest, error) {
	var reqs []*HiringRequest
	query := `SELECT id, contact_name, contact_title, company, email, phone, location, role_overview, status, created_at FROM hiring_requests ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &reqs, query); err != nil {
		return nil, fmt.Errorf("failed to list hiring requests: %w", err)
	}
	return reqs, nil
}

// GetHiringRequestByID retrieves a single hiring request, or nil when missing.
func (r *ApplicationRepository) GetHiringRequestByID(ctx context.Context, id int64) (*HiringRequest, error) {
	var req HiringRequest
	query := `SELECT id, contact_name, contact_title, company, email, phone, location, role_overview, status, created_at FROM hiring_requests WHERE id = ?`
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get hiring request by id: %w", err)
	}
	return &req, nil
}

// UpdateHiringRequestStatus moves a hiring request to a new status.
func (r *ApplicationRepository) UpdateHiringRequestStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE hiring_requests SET status = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update hiring request status: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no hiring request found to update with id %d", id)
	}
	return nil
}

// CreateJobApplication inserts a per-job application. Older deployments lack
// the experience_level column; when the insert fails on an unknown column the
// row is retried without it so the submission still lands.
func (r *ApplicationRepository) CreateJobApplication(ctx context.Context, app *JobApplication) (int64, error) {
	query := `INSERT INTO job_applications (job_id, name, email, phone, experience_level, cv_path)
		VALUES (:job_id, :name, :email, :phone, :experience_level, :cv_path)`
	res, err := r.db.NamedExecContext(ctx, query, app)
	if err != nil {
		if !isUnknownColumn(err) {
			return 0, fmt.Errorf("failed to create job application: %w", err)
		}
		fallback := `INSERT INTO job_applications (job_id, name, email, phone, cv_path)
			VALUES (:job_id, :name, :email, :phone, :cv_path)`
		res, err = r.db.NamedExecContext(ctx, fallback, app)
		if err != nil {
			return 0, fmt.Errorf("failed to create job application without experience level: %w", err)
		}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get created job application id: %w", err)
	}
	return id, nil
}

// ListJobApplications retrieves applications for one job, newest first.
func (r *ApplicationRepository) ListJobApplications(ctx context.Context, jobID int64) ([]*JobApplication, error) {
	var apps []*JobApplication
	query := `SELECT id, job_id, name, email, phone, experience_level, cv_path, created_at FROM job_applications WHERE job_id = ? ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &apps, query, jobID); err != nil {
		return nil, fmt.Errorf("failed to list job applications: %w", err)
	}
	return apps, nil
}
