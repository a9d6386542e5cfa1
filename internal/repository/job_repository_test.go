package repository

import (
	"testing"

	"github.com/lodgenet/emissions-backend-go/internal/models"
)

func TestJobLifecycle(t *testing.T) {
	repo := NewJobRepository(openTestDB(t))

	job, err := repo.Create(2024)
	if err != nil {
		t.Fatalf("failed to create job: %v", err)
	}
	if job.ID == "" {
		t.Fatal("expected a job id")
	}
	if job.Status != models.JobStatusPending {
		t.Errorf("expected pending, got %s", job.Status)
	}

	if err := repo.MarkRunning(job.ID); err != nil {
		t.Fatalf("failed to mark running: %v", err)
	}
	if err := repo.UpdateProgress(job.ID, "clustering", 50); err != nil {
		t.Fatalf("failed to update progress: %v", err)
	}
	if err := repo.SetCounts(job.ID, 1000, 12, 340); err != nil {
		t.Fatalf("failed to set counts: %v", err)
	}

	got, err := repo.GetByID(job.ID)
	if err != nil {
		t.Fatalf("failed to read job: %v", err)
	}
	if got.Status != models.JobStatusRunning || got.Stage != "clustering" || got.ProgressPercent != 50 {
		t.Errorf("unexpected job state: %+v", got)
	}
	if got.TotalRows != 1000 || got.InvalidRows != 12 || got.NonRoomRows != 340 {
		t.Errorf("unexpected counts: %+v", got)
	}

	if err := repo.MarkCompleted(job.ID); err != nil {
		t.Fatalf("failed to complete: %v", err)
	}
	got, _ = repo.GetByID(job.ID)
	if got.Status != models.JobStatusCompleted || got.ProgressPercent != 100 {
		t.Errorf("expected completed at 100%%, got %+v", got)
	}
	if !got.IsTerminal() {
		t.Error("completed job should be terminal")
	}
}

func TestJobFailureAndAbandonment(t *testing.T) {
	repo := NewJobRepository(openTestDB(t))

	failed, _ := repo.Create(2024)
	if err := repo.MarkFailed(failed.ID, "input file missing"); err != nil {
		t.Fatalf("failed to mark failed: %v", err)
	}
	got, _ := repo.GetByID(failed.ID)
	if got.Status != models.JobStatusFailed || got.ErrorMessage != "input file missing" {
		t.Errorf("unexpected failed state: %+v", got)
	}

	abandoned, _ := repo.Create(2024)
	if err := repo.MarkAbandoned(abandoned.ID); err != nil {
		t.Fatalf("failed to mark abandoned: %v", err)
	}
	got, _ = repo.GetByID(abandoned.ID)
	if got.Status != models.JobStatusAbandoned {
		t.Errorf("unexpected abandoned state: %+v", got)
	}
}

func TestJobUnknownID(t *testing.T) {
	repo := NewJobRepository(openTestDB(t))
	got, err := repo.GetByID("no-such-job")
	if err != nil {
		t.Fatalf("unknown id should not error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown id, got %+v", got)
	}
}
