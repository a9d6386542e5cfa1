package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/lodgenet/emissions-backend-go/internal/models"
)

// JobRepository tracks pipeline runs for an external status viewer.
// Updates here are advisory; the pipeline never depends on them.
type JobRepository struct {
	db *sql.DB
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a pending job for a processing year and returns it.
func (r *JobRepository) Create(year int) (*models.PipelineJob, error) {
	job := &models.PipelineJob{
		ID:     uuid.NewString(),
		Year:   year,
		Status: models.JobStatusPending,
	}

	_, err := r.db.Exec(
		"INSERT INTO pipeline_jobs (id, year, status) VALUES (?, ?, ?)",
		job.ID, job.Year, job.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

// MarkRunning marks a job as running.
func (r *JobRepository) MarkRunning(id string) error {
	_, err := r.db.Exec(`UPDATE pipeline_jobs
		SET status = ?, started_at = CURRENT_TIMESTAMP
		WHERE id = ?`, models.JobStatusRunning, id)
	if err != nil {
		return fmt.Errorf("failed to mark job as running: %w", err)
	}
	return nil
}

// UpdateProgress records the current stage label and percent.
func (r *JobRepository) UpdateProgress(id, stage string, percent int) error {
	_, err := r.db.Exec(`UPDATE pipeline_jobs
		SET stage = ?, progress_percent = ?
		WHERE id = ?`, stage, percent, id)
	if err != nil {
		return fmt.Errorf("failed to update job progress: %w", err)
	}
	return nil
}

// SetCounts records the aggregate row counts of the run.
func (r *JobRepository) SetCounts(id string, total, invalid, nonRoom int) error {
	_, err := r.db.Exec(`UPDATE pipeline_jobs
		SET total_rows = ?, invalid_rows = ?, nonroom_rows = ?
		WHERE id = ?`, total, invalid, nonRoom, id)
	if err != nil {
		return fmt.Errorf("failed to update job counts: %w", err)
	}
	return nil
}

// MarkCompleted marks a job as completed.
func (r *JobRepository) MarkCompleted(id string) error {
	_, err := r.db.Exec(`UPDATE pipeline_jobs
		SET status = ?, progress_percent = 100, completed_at = CURRENT_TIMESTAMP
		WHERE id = ?`, models.JobStatusCompleted, id)
	if err != nil {
		return fmt.Errorf("failed to mark job as completed: %w", err)
	}
	return nil
}

// MarkFailed marks a job as failed with an error message.
func (r *JobRepository) MarkFailed(id, errorMsg string) error {
	_, err := r.db.Exec(`UPDATE pipeline_jobs
		SET status = ?, error_message = ?, completed_at = CURRENT_TIMESTAMP
		WHERE id = ?`, models.JobStatusFailed, errorMsg, id)
	if err != nil {
		return fmt.Errorf("failed to mark job as failed: %w", err)
	}
	return nil
}

// MarkAbandoned marks a job abandoned by an external caller. Work
// committed by finished phases stays in place.
func (r *JobRepository) MarkAbandoned(id string) error {
	_, err := r.db.Exec(`UPDATE pipeline_jobs
		SET status = ?, completed_at = CURRENT_TIMESTAMP
		WHERE id = ?`, models.JobStatusAbandoned, id)
	if err != nil {
		return fmt.Errorf("failed to mark job as abandoned: %w", err)
	}
	return nil
}

// GetByID retrieves a job, or nil when unknown.
func (r *JobRepository) GetByID(id string) (*models.PipelineJob, error) {
	query := `SELECT id, year, status, stage, progress_percent,
		total_rows, invalid_rows, nonroom_rows, error_message
		FROM pipeline_jobs WHERE id = ?`

	var job models.PipelineJob
	var stage, errorMsg sql.NullString

	err := r.db.QueryRow(query, id).Scan(
		&job.ID, &job.Year, &job.Status, &stage, &job.ProgressPercent,
		&job.TotalRows, &job.InvalidRows, &job.NonRoomRows, &errorMsg,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	job.Stage = stage.String
	job.ErrorMessage = errorMsg.String
	return &job, nil
}
