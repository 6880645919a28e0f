package audit

import (
	"time"

	"gorm.io/datatypes"
)

// ActionKind is the closed set of admin mutation kinds.
type ActionKind string

const (
	ActionCreate   ActionKind = "create"
	ActionUpdate   ActionKind = "update"
	ActionDelete   ActionKind = "delete"
	ActionSettings ActionKind = "settings"
)

func (k ActionKind) Valid() bool {
	switch k {
	case ActionCreate, ActionUpdate, ActionDelete, ActionSettings:
		return true
	}
	return false
}

// AdminAudit is append-only: one row per mutation, written in the same
// transaction as the mutation itself.
type AdminAudit struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Actor      string         `gorm:"size:100;not null" json:"actor"`
	Action     string         `gorm:"size:20;not null;index" json:"action"`
	Table      string         `gorm:"column:table_name;size:100;not null;index" json:"table_name"`
	RowID      string         `gorm:"column:row_id;size:64;not null;index" json:"row_id"`
	BeforeJSON datatypes.JSON `gorm:"column:before_json" json:"before_json,omitempty"`
	AfterJSON  datatypes.JSON `gorm:"column:after_json" json:"after_json,omitempty"`
	IP         string         `gorm:"size:64" json:"ip"`
	CreatedAt  time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AdminAudit) TableName() string { return "admin_audit" }

type AuditFilterInput struct {
	Actor  *string `json:"actor"`
	Action *string `json:"action"`
	Table  *string `json:"table_name"`
	RowID  *string `json:"row_id"`

	StartDate *string `json:"start_date"` // "YYYY-MM-DD" or RFC3339
	EndDate   *string `json:"end_date"`

	Search   *string `json:"search"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
}

// MutationOutcome is what a mutate function reports back to the pipeline.
// Before is nil for creates, After holds the terminal state written (for a
// soft delete that is {"deleted_at": ...}, not nil). RowID is set by create
// flows once the surrogate id is known.
type MutationOutcome struct {
	RowID  string
	Before map[string]any
	After  map[string]any
}

// MutationResult reports a committed mutation.
type MutationResult struct {
	AuditID uint           `json:"audit_id"`
	RowID   string         `json:"row_id"`
	After   map[string]any `json:"after,omitempty"`
}
