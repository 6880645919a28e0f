package settings

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"vinfreak-api/internal/audit"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq uint64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	id := atomic.AddUint64(&testDBSeq, 1)
	dsn := fmt.Sprintf("file:settings_test_%d?mode=memory&cache=shared", id)

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

	if err := db.AutoMigrate(&Setting{}, &audit.AdminAudit{}); err != nil {
		t.Fatalf("migrate db: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{DB: db, Audit: &audit.AuditService{DB: db}}
}

func TestSeed_IsIdempotentAndPreservesCustomValues(t *testing.T) {
	db := newTestDB(t)
	svc := newSettingsService(db)

	if err := svc.Seed(); err != nil {
		t.Fatalf("seed: %v", err)
	}

	all, err := svc.GetAll()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != len(Defaults) {
		t.Fatalf("settings = %d, want %d", len(all), len(Defaults))
	}
	if all[KeySiteTitle] != Defaults[KeySiteTitle] {
		t.Fatalf("site_title = %q, want default", all[KeySiteTitle])
	}

	// customize one key, reseed, value must survive
	if err := svc.Upsert(KeySiteTitle, "Custom Title"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := svc.Seed(); err != nil {
		t.Fatalf("reseed: %v", err)
	}

	all, err = svc.GetAll()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if all[KeySiteTitle] != "Custom Title" {
		t.Fatalf("site_title = %q, reseed must not clobber it", all[KeySiteTitle])
	}
	if len(all) != len(Defaults) {
		t.Fatalf("settings = %d after reseed, want %d", len(all), len(Defaults))
	}
}

func TestSaveSettings_SingleAuditRowWithPriorValues(t *testing.T) {
	db := newTestDB(t)
	svc := newSettingsService(db)

	if err := svc.Seed(); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := svc.SaveSettings("conner", "10.0.0.1", map[string]string{
		KeySiteTitle: "VINfreak Live",
		KeyTheme:     "light",
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	all, err := svc.GetAll()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if all[KeySiteTitle] != "VINfreak Live" || all[KeyTheme] != "light" {
		t.Fatalf("values = %v", all)
	}

	var audits []audit.AdminAudit
	if err := db.Find(&audits).Error; err != nil {
		t.Fatalf("load audits: %v", err)
	}
	if len(audits) != 1 {
		t.Fatalf("audit rows = %d, one save is one row", len(audits))
	}
	rec := audits[0]
	if rec.Action != "settings" || rec.Table != "settings" || rec.RowID != "-" {
		t.Fatalf("audit = %s/%s/%s", rec.Action, rec.Table, rec.RowID)
	}
	before := string(rec.BeforeJSON)
	if before == "" {
		t.Fatal("before snapshot missing")
	}
	// prior values of the submitted keys, nothing else
	for _, want := range []string{Defaults[KeySiteTitle], Defaults[KeyTheme]} {
		if want != "" && !strings.Contains(before, want) {
			t.Fatalf("before = %s, want prior value %q", before, want)
		}
	}
	if strings.Contains(before, KeyContactEmail) {
		t.Fatalf("before = %s, must not carry unsubmitted keys", before)
	}
}

func TestSaveSettings_UnknownKeyRejectedBeforeAnyWrite(t *testing.T) {
	db := newTestDB(t)
	svc := newSettingsService(db)

	if err := svc.Seed(); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := svc.SaveSettings("conner", "10.0.0.1", map[string]string{
		KeySiteTitle:  "sneaky",
		"not_a_thing": "boom",
	})
	if !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("err = %v, want ErrUnknownKey", err)
	}

	all, err := svc.GetAll()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if all[KeySiteTitle] != Defaults[KeySiteTitle] {
		t.Fatal("rejected save must not write any key")
	}

	var audits int64
	if err := db.Model(&audit.AdminAudit{}).Count(&audits).Error; err != nil {
		t.Fatalf("count audits: %v", err)
	}
	if audits != 0 {
		t.Fatalf("audit rows = %d, want 0", audits)
	}
}
