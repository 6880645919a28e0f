package importjob

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"vinfreak-api/internal/audit"

	"gorm.io/gorm"
)

// ErrNotCancellable reports a refused cancel: wrong state or the job was
// never cancellable. The job is left untouched and nothing is audited.
var ErrNotCancellable = errors.New("import job is not cancellable")

type JobService struct {
	DB    *gorm.DB
	Audit *audit.AuditService
}

func snapshot(j *ImportJob) map[string]any {
	b, err := json.Marshal(j)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil
	}
	return m
}

// CreateJob records a bulk-import invocation. Bookkeeping, not an admin
// mutation: the per-record imports carry their own audit rows.
func (s *JobService) CreateJob(source string) (*ImportJob, error) {
	job := ImportJob{Source: source, Status: StatusQueued, Cancellable: true}
	if err := s.DB.Create(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// Finish stamps the terminal counts. A job that was cancelled mid-flight
// stays cancelled.
func (s *JobService) Finish(id uint, total, created, updated int, errText *string) error {
	var job ImportJob
	if err := s.DB.First(&job, id).Error; err != nil {
		return err
	}
	if job.Status == StatusCancelled {
		return nil
	}

	now := time.Now().UTC()
	job.Status = StatusFinished
	job.FinishedAt = &now
	job.TotalItems = total
	job.CreatedItems = created
	job.UpdatedItems = updated
	job.Errors = errText
	job.Cancellable = false
	return s.DB.Save(&job).Error
}

// Cancel transitions queued/running jobs to cancelled, audited. Any other
// state refuses with ErrNotCancellable and writes nothing.
func (s *JobService) Cancel(actor, ip string, id uint) error {
	var job ImportJob
	if err := s.DB.First(&job, id).Error; err != nil {
		return err
	}
	if !job.Cancellable || (job.Status != StatusQueued && job.Status != StatusRunning) {
		return ErrNotCancellable
	}

	_, err := s.Audit.PerformMutation(actor, audit.ActionUpdate, "import_jobs", strconv.FormatUint(uint64(id), 10), ip, func(tx *gorm.DB) (*audit.MutationOutcome, error) {
		var cur ImportJob
		if err := tx.First(&cur, id).Error; err != nil {
			return nil, err
		}
		if !cur.Cancellable || (cur.Status != StatusQueued && cur.Status != StatusRunning) {
			return nil, ErrNotCancellable
		}
		before := snapshot(&cur)

		now := time.Now().UTC()
		cur.Status = StatusCancelled
		cur.FinishedAt = &now
		cur.Cancellable = false
		if err := tx.Save(&cur).Error; err != nil {
			return nil, err
		}
		return &audit.MutationOutcome{Before: before, After: snapshot(&cur)}, nil
	})
	return err
}

func (s *JobService) ListJobs() ([]ImportJob, error) {
	var jobs []ImportJob
	if err := s.DB.Order("created DESC, id DESC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}
