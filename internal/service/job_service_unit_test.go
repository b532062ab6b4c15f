//go:build unit

package service

import (
	"context"
	"go-recruit-app/internal/data"
	"strings"
	"testing"
)

type mockJobRepository struct {
	jobs    []*data.Job
	lastJob *data.Job
}

func (m *mockJobRepository) ListActive(ctx context.Context) ([]*data.Job, error)   { return m.jobs, nil }
func (m *mockJobRepository) ListFeatured(ctx context.Context) ([]*data.Job, error) { return m.jobs, nil }
func (m *mockJobRepository) ListAll(ctx context.Context) ([]*data.Job, error)      { return m.jobs, nil }

func (m *mockJobRepository) GetByID(ctx context.Context, id int64) (*data.Job, error) {
	for _, j := range m.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return nil, nil
}

func (m *mockJobRepository) Create(ctx context.Context, job *data.Job) (int64, error) {
	m.lastJob = job
	return 1, nil
}

func (m *mockJobRepository) Update(ctx context.Context, job *data.Job) error {
	m.lastJob = job
	return nil
}

func (m *mockJobRepository) Delete(ctx context.Context, id int64) error { return nil }

var _ JobRepository = (*mockJobRepository)(nil)

func TestCreateJob_SanitizesDescription(t *testing.T) {
	repo := &mockJobRepository{}
	svc := NewJobService(repo)

	_, err := svc.CreateJob(context.Background(), &data.Job{
		Title:       "Senior SAS Programmer",
		Description: `<p>Lead submissions work.</p><script>alert("x")</script>`,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastJob == nil {
		t.Fatal("expected job to reach the repository")
	}
	if strings.Contains(repo.lastJob.Description, "<script") {
		t.Errorf("script survived sanitization: %s", repo.lastJob.Description)
	}
	if !strings.Contains(repo.lastJob.Description, "<p>Lead submissions work.</p>") {
		t.Errorf("basic formatting should survive, got %s", repo.lastJob.Description)
	}
}

func TestCreateJob_DefaultsStatusToActive(t *testing.T) {
	repo := &mockJobRepository{}
	svc := NewJobService(repo)

	if _, err := svc.CreateJob(context.Background(), &data.Job{Title: "Biostatistician"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastJob.Status != data.JobStatusActive {
		t.Errorf("want status %q, got %q", data.JobStatusActive, repo.lastJob.Status)
	}
}

func TestCreateJob_KeepsExplicitStatus(t *testing.T) {
	repo := &mockJobRepository{}
	svc := NewJobService(repo)

	if _, err := svc.CreateJob(context.Background(), &data.Job{Title: "Draft role", Status: data.JobStatusDraft}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastJob.Status != data.JobStatusDraft {
		t.Errorf("want status %q, got %q", data.JobStatusDraft, repo.lastJob.Status)
	}
}

func TestUpdateJob_TouchesUpdatedAt(t *testing.T) {
	repo := &mockJobRepository{}
	svc := NewJobService(repo)

	job := &data.Job{ID: 3, Title: "CDM Lead"}
	if err := svc.UpdateJob(context.Background(), job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastJob.UpdatedAt.IsZero() {
		t.Error("expected UpdatedAt to be set on update")
	}
}

func TestJobByID_MissingIsNotAnError(t *testing.T) {
	svc := NewJobService(&mockJobRepository{})

	job, err := svc.JobByID(context.Background(), 42)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if job != nil {
		t.Errorf("expected nil for missing job, got %v", job)
	}
}
