package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq uint64

// rig is a minimal audited entity for pipeline tests.
type rig struct {
	ID    uint `gorm:"primaryKey;autoIncrement"`
	Name  string
	Price float64
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	id := atomic.AddUint64(&testDBSeq, 1)
	dsn := fmt.Sprintf("file:audit_test_%d?mode=memory&cache=shared", id)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(&AdminAudit{}, &rig{}); err != nil {
		t.Fatalf("migrate db: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func auditCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&AdminAudit{}).Count(&n).Error; err != nil {
		t.Fatalf("count audits: %v", err)
	}
	return n
}

func TestAdminAudit_TableName(t *testing.T) {
	if got := (AdminAudit{}).TableName(); got != "admin_audit" {
		t.Fatalf("got %q want %q", got, "admin_audit")
	}
}

func TestPerformMutation_InvalidAction(t *testing.T) {
	svc := &AuditService{DB: newTestDB(t)}

	_, err := svc.PerformMutation("tester", ActionKind("drop"), "rigs", "1", "127.0.0.1", nil)
	if !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("err = %v, want ErrInvalidAction", err)
	}
}

func TestPerformMutation_CreateWritesEntityAndAuditTogether(t *testing.T) {
	db := newTestDB(t)
	svc := &AuditService{DB: db}

	res, err := svc.PerformMutation("tester", ActionCreate, "rigs", "", "10.0.0.1", func(tx *gorm.DB) (*MutationOutcome, error) {
		r := rig{Name: "civic", Price: 15900}
		if err := tx.Create(&r).Error; err != nil {
			return nil, err
		}
		return &MutationOutcome{
			RowID: strconv.FormatUint(uint64(r.ID), 10),
			After: map[string]any{"name": r.Name, "price": r.Price},
		}, nil
	})
	if err != nil {
		t.Fatalf("PerformMutation: %v", err)
	}
	if res.AuditID == 0 {
		t.Fatal("expected audit id")
	}

	var rec AdminAudit
	if err := db.First(&rec, res.AuditID).Error; err != nil {
		t.Fatalf("load audit: %v", err)
	}
	if rec.Action != "create" || rec.Table != "rigs" {
		t.Fatalf("audit row = %+v", rec)
	}
	var created rig
	if err := db.Where("name = ?", "civic").First(&created).Error; err != nil {
		t.Fatalf("created entity missing: %v", err)
	}
	if rec.RowID != strconv.FormatUint(uint64(created.ID), 10) {
		t.Fatalf("row_id = %q, want %d", rec.RowID, created.ID)
	}
	if len(rec.BeforeJSON) != 0 {
		t.Fatalf("create should have no before snapshot, got %s", rec.BeforeJSON)
	}
	var after map[string]any
	if err := json.Unmarshal(rec.AfterJSON, &after); err != nil {
		t.Fatalf("after_json: %v", err)
	}
	if after["name"] != "civic" {
		t.Fatalf("after = %v", after)
	}
}

func TestPerformMutation_UpdateKeepsBeforeSnapshot(t *testing.T) {
	db := newTestDB(t)
	svc := &AuditService{DB: db}

	r := rig{Name: "old", Price: 1}
	if err := db.Create(&r).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := svc.PerformMutation("tester", ActionUpdate, "rigs", strconv.FormatUint(uint64(r.ID), 10), "", func(tx *gorm.DB) (*MutationOutcome, error) {
		var cur rig
		if err := tx.First(&cur, r.ID).Error; err != nil {
			return nil, err
		}
		before := map[string]any{"name": cur.Name}
		cur.Name = "new"
		if err := tx.Save(&cur).Error; err != nil {
			return nil, err
		}
		return &MutationOutcome{Before: before, After: map[string]any{"name": cur.Name}}, nil
	})
	if err != nil {
		t.Fatalf("PerformMutation: %v", err)
	}

	var rec AdminAudit
	if err := db.Where("action = ?", "update").First(&rec).Error; err != nil {
		t.Fatalf("load audit: %v", err)
	}
	var before map[string]any
	if err := json.Unmarshal(rec.BeforeJSON, &before); err != nil {
		t.Fatalf("before_json: %v", err)
	}
	if before["name"] != "old" {
		t.Fatalf("before = %v", before)
	}
}

func TestPerformMutation_FailureRollsBackEverything(t *testing.T) {
	db := newTestDB(t)
	svc := &AuditService{DB: db}

	boom := errors.New("boom")
	_, err := svc.PerformMutation("tester", ActionCreate, "rigs", "", "", func(tx *gorm.DB) (*MutationOutcome, error) {
		if err := tx.Create(&rig{Name: "ghost"}).Error; err != nil {
			return nil, err
		}
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	if n := auditCount(t, db); n != 0 {
		t.Fatalf("audit rows = %d, want 0", n)
	}
	var entities int64
	if err := db.Model(&rig{}).Count(&entities).Error; err != nil {
		t.Fatalf("count rigs: %v", err)
	}
	if entities != 0 {
		t.Fatalf("entity rows = %d, want 0 after rollback", entities)
	}
}

func TestPerformBulkMutation_OneAuditRowPerAffectedEntity(t *testing.T) {
	db := newTestDB(t)
	svc := &AuditService{DB: db}

	a := rig{Name: "a"}
	b := rig{Name: "b"}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := db.Create(&b).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	missing := b.ID + 99
	affected, err := svc.PerformBulkMutation("tester", ActionUpdate, "rigs", []uint{a.ID, missing, b.ID}, "", func(tx *gorm.DB, id uint) (*MutationOutcome, error) {
		var cur rig
		if err := tx.First(&cur, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
		cur.Price = 99
		if err := tx.Save(&cur).Error; err != nil {
			return nil, err
		}
		return &MutationOutcome{After: map[string]any{"price": cur.Price}}, nil
	})
	if err != nil {
		t.Fatalf("PerformBulkMutation: %v", err)
	}
	if affected != 2 {
		t.Fatalf("affected = %d, want 2", affected)
	}
	if n := auditCount(t, db); n != 2 {
		t.Fatalf("audit rows = %d, want 2", n)
	}

	var rec AdminAudit
	if err := db.Where("row_id = ?", strconv.FormatUint(uint64(a.ID), 10)).First(&rec).Error; err != nil {
		t.Fatalf("per-row audit missing: %v", err)
	}
}

func TestPerformBulkMutation_ErrorRollsBackWholeBatch(t *testing.T) {
	db := newTestDB(t)
	svc := &AuditService{DB: db}

	a := rig{Name: "a", Price: 1}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	boom := errors.New("boom")
	_, err := svc.PerformBulkMutation("tester", ActionUpdate, "rigs", []uint{a.ID, a.ID}, "", func(tx *gorm.DB, id uint) (*MutationOutcome, error) {
		var cur rig
		if err := tx.First(&cur, id).Error; err != nil {
			return nil, err
		}
		if cur.Price != 1 {
			return nil, boom // second pass sees the first write, then fails
		}
		cur.Price = 2
		if err := tx.Save(&cur).Error; err != nil {
			return nil, err
		}
		return &MutationOutcome{After: map[string]any{"price": cur.Price}}, nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	if n := auditCount(t, db); n != 0 {
		t.Fatalf("audit rows = %d, want 0", n)
	}
	var cur rig
	if err := db.First(&cur, a.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if cur.Price != 1 {
		t.Fatalf("price = %v, want untouched 1", cur.Price)
	}
}

func TestGetAudits_FiltersAndPaginates(t *testing.T) {
	db := newTestDB(t)
	svc := &AuditService{DB: db}

	for i := 0; i < 25; i++ {
		rec := AdminAudit{Actor: "alice", Action: "update", Table: "cars", RowID: strconv.Itoa(i)}
		if i%5 == 0 {
			rec.Actor = "bob"
			rec.Action = "delete"
		}
		if err := db.Create(&rec).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	action := "delete"
	rows, total, totalPages, err := svc.GetAudits(AuditFilterInput{Action: &action})
	if err != nil {
		t.Fatalf("GetAudits: %v", err)
	}
	if total != 5 || len(rows) != 5 {
		t.Fatalf("total=%d len=%d, want 5/5", total, len(rows))
	}
	if totalPages != 1 {
		t.Fatalf("totalPages = %d", totalPages)
	}

	rows, total, totalPages, err = svc.GetAudits(AuditFilterInput{Page: 2, PageSize: 10})
	if err != nil {
		t.Fatalf("GetAudits: %v", err)
	}
	if total != 25 || len(rows) != 10 || totalPages != 3 {
		t.Fatalf("total=%d len=%d pages=%d", total, len(rows), totalPages)
	}

	search := "BOB"
	rows, _, _, err = svc.GetAudits(AuditFilterInput{Search: &search})
	if err != nil {
		t.Fatalf("GetAudits search: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("search rows = %d, want 5", len(rows))
	}
}
