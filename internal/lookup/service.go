package lookup

import (
	"vinfreak-api/internal/car"

	"gorm.io/gorm"
)

type LookupServiceAPI interface {
	GetAllMakes() ([]car.Make, error)
	GetModelsByMake(makeID int) ([]car.CarModel, error)
	GetAllCategories() ([]car.Category, error)
}

// LookupService serves the dropdown data the listing forms filter by.
type LookupService struct {
	DB *gorm.DB
}

func NewLookupService(db *gorm.DB) *LookupService {
	return &LookupService{DB: db}
}

func (ls *LookupService) GetAllMakes() ([]car.Make, error) {
	var makes []car.Make
	result := ls.DB.Order("name ASC").Find(&makes)
	if result.Error != nil {
		return nil, result.Error
	}
	return makes, nil
}

func (ls *LookupService) GetModelsByMake(makeID int) ([]car.CarModel, error) {
	var models []car.CarModel
	result := ls.DB.
		Where("make_id = ?", makeID).
		Order("name ASC").
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}
	return models, nil
}

func (ls *LookupService) GetAllCategories() ([]car.Category, error) {
	var categories []car.Category
	result := ls.DB.Order("name ASC").Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}
	return categories, nil
}
