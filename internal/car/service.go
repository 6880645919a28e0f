package car

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"vinfreak-api/internal/audit"
	"vinfreak-api/internal/dealership"

	"gorm.io/gorm"
)

var ErrUnsupportedBulkAction = errors.New("unsupported bulk action")

// bulkStatusValues are the auction states reachable through the bulk action
// endpoint, matching the admin console's status buttons.
var bulkStatusValues = map[string]bool{
	"LIVE":            true,
	"SOLD":            true,
	"RESERVE_NOT_MET": true,
	"ENDED":           true,
	"DRAFT":           true,
}

type CarService struct {
	DB    *gorm.DB
	Audit *audit.AuditService
}

// snapshot flattens a car row for audit before/after capture.
func snapshot(c *Car) map[string]any {
	b, err := json.Marshal(c)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil
	}
	return m
}

// submittedFields keeps only the fields the caller actually sent, which is
// what the audit after-state records for updates.
func submittedFields(input CarInput) map[string]any {
	b, err := json.Marshal(input)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil
	}
	return m
}

func applyInput(c *Car, in CarInput) {
	if in.VIN != nil {
		c.VIN = in.VIN
	}
	if in.Make != nil {
		c.Make = in.Make
	}
	if in.MakeID != nil {
		c.MakeID = in.MakeID
	}
	if in.Model != nil {
		c.Model = in.Model
	}
	if in.ModelID != nil {
		c.ModelID = in.ModelID
	}
	if in.CategoryID != nil {
		c.CategoryID = in.CategoryID
	}
	if in.DealershipID != nil {
		c.DealershipID = in.DealershipID
	}
	if in.Trim != nil {
		c.Trim = in.Trim
	}
	if in.Year != nil {
		c.Year = in.Year
	}
	if in.Mileage != nil {
		c.Mileage = in.Mileage
	}
	if in.Price != nil {
		c.Price = in.Price
	}
	if in.Currency != nil {
		c.Currency = in.Currency
	}
	if in.City != nil {
		c.City = in.City
	}
	if in.State != nil {
		c.State = in.State
	}
	if in.AuctionStatus != nil {
		c.AuctionStatus = in.AuctionStatus
	}
	if in.LotNumber != nil {
		c.LotNumber = in.LotNumber
	}
	if in.Source != nil {
		c.Source = in.Source
	}
	if in.URL != nil {
		c.URL = in.URL
	}
	if in.Title != nil {
		c.Title = in.Title
	}
	if in.Description != nil {
		c.Description = in.Description
	}
	if in.ImageURL != nil {
		c.ImageURL = in.ImageURL
	}
	if in.SellerName != nil {
		c.SellerName = in.SellerName
	}
	if in.SellerRating != nil {
		c.SellerRating = in.SellerRating
	}
	if in.SellerReviews != nil {
		c.SellerReviews = in.SellerReviews
	}
	if in.PostedAt != nil {
		c.PostedAt = in.PostedAt
	}
}

// ListCars returns the live car set, newest first, optionally scoped to one
// dealership. Soft-deleted rows never appear: the model's DeletedAt column
// keeps every query on this table filtered to live rows.
func (s *CarService) ListCars(dealershipID *uint) ([]CarView, error) {
	q := s.DB.Order("COALESCE(posted_at,'') DESC, id DESC")
	if dealershipID != nil {
		q = q.Where("dealership_id = ?", *dealershipID)
	}

	var cars []Car
	if err := q.Find(&cars).Error; err != nil {
		return nil, err
	}
	return s.buildViews(cars)
}

// GetCar resolves a reference as numeric id first, then VIN, then lot
// number. Deleted rows surface as not-found, same as missing ones.
func (s *CarService) GetCar(ref string) (*CarView, error) {
	var car Car
	found := false

	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		if err := s.DB.First(&car, uint(id)).Error; err == nil {
			found = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if !found {
		if err := s.DB.Where("vin = ?", ref).First(&car).Error; err == nil {
			found = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if !found {
		if err := s.DB.Where("lot_number = ?", ref).First(&car).Error; err != nil {
			return nil, err
		}
	}

	views, err := s.buildViews([]Car{car})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *CarService) buildViews(cars []Car) ([]CarView, error) {
	dealerIDs := make([]uint, 0, len(cars))
	seen := map[uint]bool{}
	for _, c := range cars {
		if c.DealershipID != nil && !seen[*c.DealershipID] {
			seen[*c.DealershipID] = true
			dealerIDs = append(dealerIDs, *c.DealershipID)
		}
	}

	dealers := map[uint]*dealership.Summary{}
	if len(dealerIDs) > 0 {
		var rows []dealership.Dealership
		if err := s.DB.Where("id IN ?", dealerIDs).Find(&rows).Error; err != nil {
			return nil, err
		}
		for i := range rows {
			dealers[rows[i].ID] = rows[i].Summary()
		}
	}

	views := make([]CarView, 0, len(cars))
	for _, c := range cars {
		v := CarView{Car: c, Images: resolveImages(&c)}
		if len(v.Images) > 0 && (v.ImageURL == nil || *v.ImageURL == "") {
			v.ImageURL = &v.Images[0]
		}
		if c.DealershipID != nil {
			v.Dealership = dealers[*c.DealershipID]
		}
		views = append(views, v)
	}
	return views, nil
}

// resolveImages merges the hero into the gallery, hero first, never twice.
func resolveImages(c *Car) []string {
	gallery := c.Images()
	if c.ImageURL == nil || *c.ImageURL == "" {
		return gallery
	}
	out := make([]string, 0, len(gallery)+1)
	out = append(out, *c.ImageURL)
	for _, img := range gallery {
		if img != *c.ImageURL {
			out = append(out, img)
		}
	}
	return out
}

type AdminCarFilterInput struct {
	Q       string
	Make    string
	Status  string
	YearMin *int
	YearMax *int
	Sort    string
	Page    int
	Per     int
}

var allowedSorts = map[string]bool{
	"posted_at": true,
	"id":        true,
	"price":     true,
	"year":      true,
	"mileage":   true,
	"make":      true,
	"model":     true,
}

// AdminListCars is the console listing: search, filters, whitelisted sort,
// pagination capped at 100 per page.
func (s *CarService) AdminListCars(input AdminCarFilterInput) ([]Car, int64, int, error) {
	if input.Page <= 0 {
		input.Page = 1
	}
	if input.Per <= 0 {
		input.Per = 25
	}
	if input.Per > 100 {
		input.Per = 100
	}
	sortCol := input.Sort
	if !allowedSorts[sortCol] {
		sortCol = "posted_at"
	}

	base := s.DB.Model(&Car{})
	if q := strings.TrimSpace(input.Q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		base = base.Where(
			`LOWER(COALESCE(vin,'')) LIKE ? OR LOWER(COALESCE(make,'')) LIKE ? OR LOWER(COALESCE(model,'')) LIKE ? OR LOWER(COALESCE(title,'')) LIKE ?`,
			like, like, like, like,
		)
	}
	if input.Make != "" {
		base = base.Where("make = ?", input.Make)
	}
	if input.Status != "" {
		base = base.Where("auction_status = ?", input.Status)
	}
	if input.YearMin != nil {
		base = base.Where("year >= ?", *input.YearMin)
	}
	if input.YearMax != nil {
		base = base.Where("year <= ?", *input.YearMax)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, 0, err
	}
	lastPage := int(math.Ceil(float64(total) / float64(input.Per)))
	if lastPage == 0 {
		lastPage = 1
	}

	var rows []Car
	if err := base.
		Session(&gorm.Session{}).
		Order(sortCol + " DESC").
		Limit(input.Per).
		Offset((input.Page - 1) * input.Per).
		Find(&rows).Error; err != nil {
		return nil, 0, 0, err
	}
	return rows, total, lastPage, nil
}

func (s *CarService) CreateCar(actor, ip string, input CarInput) (*Car, error) {
	var created Car
	_, err := s.Audit.PerformMutation(actor, audit.ActionCreate, "cars", "", ip, func(tx *gorm.DB) (*audit.MutationOutcome, error) {
		c := Car{}
		applyInput(&c, input)
		if err := tx.Create(&c).Error; err != nil {
			return nil, err
		}
		created = c
		return &audit.MutationOutcome{
			RowID: strconv.FormatUint(uint64(c.ID), 10),
			After: snapshot(&c),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *CarService) UpdateCar(actor, ip string, id uint, input CarInput) (*Car, error) {
	var updated Car
	_, err := s.Audit.PerformMutation(actor, audit.ActionUpdate, "cars", strconv.FormatUint(uint64(id), 10), ip, func(tx *gorm.DB) (*audit.MutationOutcome, error) {
		var cur Car
		if err := tx.First(&cur, id).Error; err != nil {
			return nil, err
		}
		before := snapshot(&cur)
		applyInput(&cur, input)
		if err := tx.Save(&cur).Error; err != nil {
			return nil, err
		}
		updated = cur
		return &audit.MutationOutcome{Before: before, After: submittedFields(input)}, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCar soft-deletes. Deleting an already-deleted car is a no-op; a car
// that never existed is not-found.
func (s *CarService) DeleteCar(actor, ip string, id uint) error {
	var cur Car
	if err := s.DB.Unscoped().First(&cur, id).Error; err != nil {
		return err
	}
	if cur.DeletedAt.Valid {
		return nil
	}

	_, err := s.Audit.PerformMutation(actor, audit.ActionDelete, "cars", strconv.FormatUint(uint64(id), 10), ip, func(tx *gorm.DB) (*audit.MutationOutcome, error) {
		var c Car
		if err := tx.First(&c, id).Error; err != nil {
			return nil, err
		}
		before := snapshot(&c)
		if err := tx.Delete(&c).Error; err != nil {
			return nil, err
		}
		// the audit records the terminal state written, not null; Delete
		// stamps DeletedAt on the struct, so this is the row's own value
		return &audit.MutationOutcome{
			Before: before,
			After:  map[string]any{"deleted_at": c.DeletedAt.Time.UTC().Format(time.RFC3339)},
		}, nil
	})
	return err
}

// BulkAction soft-deletes or re-statuses a set of cars, one audit row per
// affected car. Ids with no live row are silently skipped.
func (s *CarService) BulkAction(actor, ip string, input BulkActionInput) (int, error) {
	switch {
	case input.Action == "delete":
		return s.Audit.PerformBulkMutation(actor, audit.ActionDelete, "cars", input.IDs, ip, func(tx *gorm.DB, id uint) (*audit.MutationOutcome, error) {
			var c Car
			if err := tx.First(&c, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, nil
				}
				return nil, err
			}
			before := snapshot(&c)
			if err := tx.Delete(&c).Error; err != nil {
				return nil, err
			}
			return &audit.MutationOutcome{
				Before: before,
				After:  map[string]any{"deleted_at": c.DeletedAt.Time.UTC().Format(time.RFC3339)},
			}, nil
		})

	case bulkStatusValues[input.Action]:
		status := input.Action
		return s.Audit.PerformBulkMutation(actor, audit.ActionUpdate, "cars", input.IDs, ip, func(tx *gorm.DB, id uint) (*audit.MutationOutcome, error) {
			var c Car
			if err := tx.First(&c, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, nil
				}
				return nil, err
			}
			before := map[string]any{"auction_status": c.AuctionStatus}
			c.AuctionStatus = &status
			if err := tx.Save(&c).Error; err != nil {
				return nil, err
			}
			return &audit.MutationOutcome{
				Before: before,
				After:  map[string]any{"auction_status": status},
			}, nil
		})

	default:
		return 0, ErrUnsupportedBulkAction
	}
}
