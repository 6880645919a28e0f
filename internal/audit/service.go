package audit

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"vinfreak-api/internal/util"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrInvalidAction rejects a mutation before any storage work happens.
var ErrInvalidAction = errors.New("invalid audit action")

type AuditService struct {
	DB *gorm.DB
}

// MutationFunc reads the before snapshot, applies the change on tx and
// returns the outcome. Returning an error rolls the whole transaction back.
type MutationFunc func(tx *gorm.DB) (*MutationOutcome, error)

// BulkMutationFunc is MutationFunc per id. A nil outcome means the entity
// was not found and is silently skipped.
type BulkMutationFunc func(tx *gorm.DB, id uint) (*MutationOutcome, error)

// PerformMutation runs fn and the audit insert in a single transaction.
// Exactly one audit row exists after a successful call; none after a failed
// one. No retry: admin mutations are single-submission by design.
func (s *AuditService) PerformMutation(actor string, action ActionKind, table, rowID, ip string, fn MutationFunc) (*MutationResult, error) {
	if !action.Valid() {
		return nil, ErrInvalidAction
	}

	var res MutationResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		out, err := fn(tx)
		if err != nil {
			return err
		}
		if out != nil && out.RowID != "" {
			rowID = out.RowID
		}

		rec, err := newRecord(actor, action, table, rowID, ip, out)
		if err != nil {
			return err
		}
		if err := tx.Create(rec).Error; err != nil {
			return err
		}

		res = MutationResult{AuditID: rec.ID, RowID: rowID}
		if out != nil {
			res.After = out.After
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// PerformBulkMutation applies fn to every id, producing one audit row per
// affected entity so history stays row-granular. Missing entities (nil
// outcome) do not count toward the returned affected total. The batch
// commits or rolls back as a whole.
func (s *AuditService) PerformBulkMutation(actor string, action ActionKind, table string, ids []uint, ip string, fn BulkMutationFunc) (int, error) {
	if !action.Valid() {
		return 0, ErrInvalidAction
	}

	affected := 0
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, id := range ids {
			out, err := fn(tx, id)
			if err != nil {
				return err
			}
			if out == nil {
				continue
			}

			rowID := out.RowID
			if rowID == "" {
				rowID = strconv.FormatUint(uint64(id), 10)
			}
			rec, err := newRecord(actor, action, table, rowID, ip, out)
			if err != nil {
				return err
			}
			if err := tx.Create(rec).Error; err != nil {
				return err
			}
			affected++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func newRecord(actor string, action ActionKind, table, rowID, ip string, out *MutationOutcome) (*AdminAudit, error) {
	rec := &AdminAudit{
		Actor:     actor,
		Action:    string(action),
		Table:     table,
		RowID:     rowID,
		IP:        ip,
		CreatedAt: time.Now().UTC(),
	}
	if out != nil {
		if out.Before != nil {
			b, err := json.Marshal(out.Before)
			if err != nil {
				return nil, err
			}
			rec.BeforeJSON = datatypes.JSON(b)
		}
		if out.After != nil {
			a, err := json.Marshal(out.After)
			if err != nil {
				return nil, err
			}
			rec.AfterJSON = datatypes.JSON(a)
		}
	}
	return rec, nil
}

// GetAudits lists audit rows for the admin console, newest first.
func (s *AuditService) GetAudits(input AuditFilterInput) ([]AdminAudit, int64, int, error) {
	if input.Page <= 0 {
		input.Page = 1
	}
	if input.PageSize <= 0 || input.PageSize > 100 {
		input.PageSize = 20
	}

	base := s.DB.Model(&AdminAudit{})

	if input.Actor != nil && strings.TrimSpace(*input.Actor) != "" {
		base = base.Where("actor = ?", strings.TrimSpace(*input.Actor))
	}
	if input.Action != nil && strings.TrimSpace(*input.Action) != "" {
		base = base.Where("action = ?", strings.TrimSpace(*input.Action))
	}
	if input.Table != nil && strings.TrimSpace(*input.Table) != "" {
		base = base.Where("table_name = ?", strings.TrimSpace(*input.Table))
	}
	if input.RowID != nil && strings.TrimSpace(*input.RowID) != "" {
		base = base.Where("row_id = ?", strings.TrimSpace(*input.RowID))
	}

	start, hasStart, endExclusive, hasEnd, err := util.ParseDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, 0, 0, err
	}
	if hasStart {
		base = base.Where("created_at >= ?", start)
	}
	if hasEnd {
		base = base.Where("created_at < ?", endExclusive)
	}

	if input.Search != nil && strings.TrimSpace(*input.Search) != "" {
		like := "%" + strings.ToLower(strings.TrimSpace(*input.Search)) + "%"
		base = base.Where(
			`LOWER(actor) LIKE ? OR LOWER(action) LIKE ? OR LOWER(table_name) LIKE ? OR LOWER(row_id) LIKE ?`,
			like, like, like, like,
		)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, 0, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(input.PageSize)))
	if totalPages == 0 {
		totalPages = 1
	}

	var rows []AdminAudit
	if err := base.
		Session(&gorm.Session{}).
		Order("created_at DESC, id DESC").
		Limit(input.PageSize).
		Offset((input.Page - 1) * input.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, 0, err
	}

	return rows, total, totalPages, nil
}
