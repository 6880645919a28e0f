package settings

import (
	"errors"
	"sort"

	"vinfreak-api/internal/audit"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrUnknownKey = errors.New("unknown setting key")

type SettingsService struct {
	DB    *gorm.DB
	Audit *audit.AuditService
}

// GetAll returns every setting as a flat map.
func (s *SettingsService) GetAll() (map[string]string, error) {
	var rows []Setting
	if err := s.DB.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Value
	}
	return out, nil
}

// Upsert inserts or replaces a single key.
func (s *SettingsService) Upsert(key, value string) error {
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&Setting{Key: key, Value: value}).Error
}

// Seed writes defaults for missing keys only. Running it again never
// touches a value an operator already customized.
func (s *SettingsService) Seed() error {
	keys := make([]string, 0, len(Defaults))
	for k := range Defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		err := s.DB.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&Setting{Key: k, Value: Defaults[k]}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// SaveSettings upserts the submitted keys and writes a single audit row
// (row id "-") capturing the prior values of exactly those keys.
func (s *SettingsService) SaveSettings(actor, ip string, values map[string]string) error {
	for k := range values {
		if _, ok := Defaults[k]; !ok {
			return ErrUnknownKey
		}
	}

	_, err := s.Audit.PerformMutation(actor, audit.ActionSettings, "settings", "-", ip, func(tx *gorm.DB) (*audit.MutationOutcome, error) {
		before := map[string]any{}
		var prior []Setting
		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		if err := tx.Where("key IN ?", keys).Find(&prior).Error; err != nil {
			return nil, err
		}
		for _, p := range prior {
			before[p.Key] = p.Value
		}

		after := map[string]any{}
		sort.Strings(keys)
		for _, k := range keys {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value"}),
			}).Create(&Setting{Key: k, Value: values[k]}).Error
			if err != nil {
				return nil, err
			}
			after[k] = values[k]
		}

		return &audit.MutationOutcome{Before: before, After: after}, nil
	})
	return err
}
