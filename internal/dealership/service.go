package dealership

import (
	"encoding/json"
	"strconv"

	"vinfreak-api/internal/audit"

	"gorm.io/gorm"
)

type DealershipService struct {
	DB    *gorm.DB
	Audit *audit.AuditService
}

func snapshot(d *Dealership) map[string]any {
	b, err := json.Marshal(d)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil
	}
	return m
}

func (s *DealershipService) ListDealerships() ([]Dealership, error) {
	var rows []Dealership
	if err := s.DB.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *DealershipService) GetDealership(id uint) (*Dealership, error) {
	var d Dealership
	if err := s.DB.First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *DealershipService) CreateDealership(actor, ip string, input DealershipInput) (*Dealership, error) {
	var created Dealership
	_, err := s.Audit.PerformMutation(actor, audit.ActionCreate, "dealerships", "", ip, func(tx *gorm.DB) (*audit.MutationOutcome, error) {
		d := Dealership{Name: input.Name, LogoURL: input.LogoURL}
		if err := tx.Create(&d).Error; err != nil {
			return nil, err
		}
		created = d
		return &audit.MutationOutcome{
			RowID: strconv.FormatUint(uint64(d.ID), 10),
			After: snapshot(&d),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *DealershipService) UpdateDealership(actor, ip string, id uint, input DealershipInput) (*Dealership, error) {
	var updated Dealership
	_, err := s.Audit.PerformMutation(actor, audit.ActionUpdate, "dealerships", strconv.FormatUint(uint64(id), 10), ip, func(tx *gorm.DB) (*audit.MutationOutcome, error) {
		var d Dealership
		if err := tx.First(&d, id).Error; err != nil {
			return nil, err
		}
		before := snapshot(&d)
		d.Name = input.Name
		d.LogoURL = input.LogoURL
		if err := tx.Save(&d).Error; err != nil {
			return nil, err
		}
		updated = d
		return &audit.MutationOutcome{Before: before, After: snapshot(&d)}, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteDealership removes the dealership and nulls out dealership_id on
// every car that referenced it, in the same transaction. The cars
// themselves are never deleted: listing history survives its seller.
func (s *DealershipService) DeleteDealership(actor, ip string, id uint) error {
	_, err := s.Audit.PerformMutation(actor, audit.ActionDelete, "dealerships", strconv.FormatUint(uint64(id), 10), ip, func(tx *gorm.DB) (*audit.MutationOutcome, error) {
		var d Dealership
		if err := tx.First(&d, id).Error; err != nil {
			return nil, err
		}
		before := snapshot(&d)

		if err := tx.Table("cars").
			Where("dealership_id = ?", id).
			Update("dealership_id", nil).Error; err != nil {
			return nil, err
		}
		if err := tx.Delete(&d).Error; err != nil {
			return nil, err
		}
		return &audit.MutationOutcome{Before: before}, nil
	})
	return err
}
