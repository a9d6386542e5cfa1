package models

import "time"

// Pipeline job states
const (
	JobStatusPending   = "pending"
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
	JobStatusAbandoned = "abandoned"
)

// PipelineJob tracks one batch run for an external status viewer.
// Advisory only; updates never affect pipeline correctness.
type PipelineJob struct {
	ID              string // UUID
	Year            int
	Status          string
	Stage           string
	ProgressPercent int
	TotalRows       int
	InvalidRows     int
	NonRoomRows     int
	ErrorMessage    string
	CreatedAt       time.Time
	StartedAt       *time.Time
	CompletedAt     *time.Time
}

// IsTerminal reports whether the job has reached a final state.
func (j *PipelineJob) IsTerminal() bool {
	switch j.Status {
	case JobStatusCompleted, JobStatusFailed, JobStatusAbandoned:
		return true
	}
	return false
}
