package data

import (
	"html/template"
	"time"
)

// PageContent is the persisted content row for a single page. Content holds
// the full JSON document; saves replace it wholesale.
type PageContent struct {
	ID        int64     `db:"id"`
	PageName  string    `db:"page_name"`
	Content   []byte    `db:"content"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Job statuses. Only active jobs appear in public listings.
const (
	JobStatusActive = "active"
	JobStatusClosed = "closed"
	JobStatusDraft  = "draft"
)

// Job represents a vacancy in the jobs table.
type Job struct {
	ID               int64     `db:"id"`
	Title            string    `db:"title"`
	Company          string    `db:"company"`
	ShowCompany      bool      `db:"show_company"`
	Location         string    `db:"location"`
	WorkMode         string    `db:"work_mode"`
	Contract         string    `db:"contract"`
	Salary           string    `db:"salary"`
	ShortDescription string    `db:"short_description"`
	Description      string    `db:"description"`
	Featured         bool      `db:"featured"`
	Status           string    `db:"status"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// Candidate application statuses.
const (
	ApplicationStatusPending   = "pending"
	ApplicationStatusReviewed  = "reviewed"
	ApplicationStatusContacted = "contacted"
	ApplicationStatusHired     = "hired"
	ApplicationStatusRejected  = "rejected"
)

// EmployeeApplication is a candidate intake row.
type EmployeeApplication struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Location  string    `db:"location"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	CVPath    string    `db:"cv_path"`
	Message   string    `db:"message"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

// Hiring request statuses.
const (
	HiringStatusPending    = "pending"
	HiringStatusReviewed   = "reviewed"
	HiringStatusContacted  = "contacted"
	HiringStatusInProgress = "in_progress"
	HiringStatusCompleted  = "completed"
	HiringStatusCancelled  = "cancelled"
)

// HiringRequest is an employer intake row.
type HiringRequest struct {
	ID           int64     `db:"id"`
	ContactName  string    `db:"contact_name"`
	ContactTitle string    `db:"contact_title"`
	Company      string    `db:"company"`
	Email        string    `db:"email"`
	Phone        string    `db:"phone"`
	Location     string    `db:"location"`
	RoleOverview string    `db:"role_overview"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
}

// JobApplication is a per-job application row. ExperienceLevel is optional
// and may be absent from older schemas entirely.
type JobApplication struct {
	ID              int64     `db:"id"`
	JobID           int64     `db:"job_id"`
	Name            string    `db:"name"`
	Email           string    `db:"email"`
	Phone           string    `db:"phone"`
	ExperienceLevel *string   `db:"experience_level"`
	CVPath          *string   `db:"cv_path"`
	CreatedAt       time.Time `db:"created_at"`
}

// NewsletterSubscription is a newsletter signup row; email is unique.
type NewsletterSubscription struct {
	ID        int64     `db:"id"`
	Email     string    `db:"email"`
	Source    string    `db:"source"`
	CreatedAt time.Time `db:"created_at"`
}

// Post represents a blog post. Body is markdown; HTMLBody is rendered at
// read time and never persisted.
type Post struct {
	ID        int64         `db:"id"`
	Slug      string        `db:"slug"`
	Title     string        `db:"title"`
	Body      string        `db:"body"`
	HTMLBody  template.HTML `db:"-"`
	Published bool          `db:"published"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
}
