package importjob

import "time"

// Job statuses. "running" is reachable only if an external runner ever
// drives these jobs; nothing in this service transitions into it.
const (
	StatusQueued    = "queued"
	StatusRunning   = "running"
	StatusFinished  = "finished"
	StatusCancelled = "cancelled"
)

type ImportJob struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Source       string     `gorm:"size:100" json:"source"`
	Status       string     `gorm:"size:20;not null;default:queued;index" json:"status"`
	StartedAt    *time.Time `gorm:"column:started_at" json:"started_at"`
	FinishedAt   *time.Time `gorm:"column:finished_at" json:"finished_at"`
	Created      time.Time  `gorm:"column:created;autoCreateTime" json:"created"`
	TotalItems   int        `gorm:"column:total_items;default:0" json:"total_items"`
	CreatedItems int        `gorm:"column:created_items;default:0" json:"created_items"`
	UpdatedItems int        `gorm:"column:updated_items;default:0" json:"updated_items"`
	Errors       *string    `gorm:"type:text" json:"errors"`
	Cancellable  bool       `gorm:"default:true" json:"cancellable"`
	Log          *string    `gorm:"type:text" json:"log"`
}

func (ImportJob) TableName() string { return "import_jobs" }
