package pipeline

import (
	"log"

	"github.com/lodgenet/emissions-backend-go/internal/repository"
)

// Reporter receives (stage label, percent-complete) updates after each
// major phase. Fire-and-forget: implementations must never fail the
// pipeline, and percent values only move forward.
type Reporter interface {
	Report(stage string, percent int)
}

// LogReporter writes progress to the process log.
type LogReporter struct{}

// Report logs one progress update.
func (LogReporter) Report(stage string, percent int) {
	log.Printf("[Pipeline] %3d%% %s", percent, stage)
}

// JobReporter mirrors progress into the pipeline_jobs table for an
// external status viewer. Storage errors are logged and swallowed.
type JobReporter struct {
	repo  *repository.JobRepository
	jobID string
}

// NewJobReporter creates a reporter bound to one job row.
func NewJobReporter(repo *repository.JobRepository, jobID string) *JobReporter {
	return &JobReporter{repo: repo, jobID: jobID}
}

// Report persists one progress update.
func (r *JobReporter) Report(stage string, percent int) {
	if err := r.repo.UpdateProgress(r.jobID, stage, percent); err != nil {
		log.Printf("[Pipeline] failed to record progress: %v", err)
	}
}

// MultiReporter fans updates out to several reporters.
type MultiReporter []Reporter

// Report forwards the update to every reporter.
func (m MultiReporter) Report(stage string, percent int) {
	for _, r := range m {
		r.Report(stage, percent)
	}
}
