package car

import (
	"encoding/json"

	"vinfreak-api/internal/dealership"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Car mirrors the scraped listing schema. The denormalized make/model text
// stays alongside the lookup foreign keys for display and search.
type Car struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	VIN          *string `gorm:"column:vin;size:32;index" json:"vin"`
	Make         *string `gorm:"size:100;index" json:"make"`
	MakeID       *uint   `gorm:"column:make_id" json:"make_id"`
	Model        *string `gorm:"size:100;index" json:"model"`
	ModelID      *uint   `gorm:"column:model_id" json:"model_id"`
	CategoryID   *uint   `gorm:"column:category_id" json:"category_id"`
	DealershipID *uint   `gorm:"column:dealership_id;index" json:"dealership_id"`

	Trim     *string  `gorm:"size:100" json:"trim"`
	Year     *int     `gorm:"index" json:"year"`
	Mileage  *int     `json:"mileage"`
	Price    *float64 `json:"price"`
	Currency *string  `gorm:"size:8" json:"currency"`
	City     *string  `gorm:"size:100" json:"city"`
	State    *string  `gorm:"size:50" json:"state"`

	AuctionStatus *string `gorm:"size:50;index" json:"auction_status"`
	LotNumber     *string `gorm:"column:lot_number;size:50;index" json:"lot_number"`
	Source        *string `gorm:"size:50" json:"source"`
	URL           *string `gorm:"column:url;type:text" json:"url"`
	Title         *string `gorm:"type:text" json:"title"`
	Description   *string `gorm:"type:text" json:"description"`

	ImageURL   *string        `gorm:"column:image_url;type:text" json:"image_url"`
	ImagesJSON datatypes.JSON `gorm:"column:images_json" json:"images_json,omitempty"`

	SellerName    *string  `gorm:"size:255" json:"seller_name"`
	SellerRating  *float64 `json:"seller_rating"`
	SellerReviews *int     `json:"seller_reviews"`
	SellerType    *string  `gorm:"size:50" json:"seller_type"`
	SellerURL     *string  `gorm:"column:seller_url;type:text" json:"seller_url"`

	// extended scraped fields
	ExteriorColor    *string `gorm:"size:100" json:"exterior_color"`
	InteriorColor    *string `gorm:"size:100" json:"interior_color"`
	Transmission     *string `gorm:"size:50" json:"transmission"`
	Drivetrain       *string `gorm:"size:20" json:"drivetrain"`
	FuelType         *string `gorm:"column:fuel_type;size:50" json:"fuel_type"`
	BodyType         *string `gorm:"column:body_type;size:50" json:"body_type"`
	Engine           *string `gorm:"size:100" json:"engine"`
	Highlights       *string `gorm:"type:text" json:"highlights"`
	Equipment        *string `gorm:"type:text" json:"equipment"`
	Modifications    *string `gorm:"type:text" json:"modifications"`
	KnownFlaws       *string `gorm:"column:known_flaws;type:text" json:"known_flaws"`
	ServiceHistory   *string `gorm:"column:service_history;type:text" json:"service_history"`
	OwnershipHistory *string `gorm:"column:ownership_history;type:text" json:"ownership_history"`
	SellerNotes      *string `gorm:"column:seller_notes;type:text" json:"seller_notes"`
	OtherItems       *string `gorm:"column:other_items;type:text" json:"other_items"`
	EndTime          *string `gorm:"column:end_time;size:64" json:"end_time"`
	TimeLeft         *string `gorm:"column:time_left;size:64" json:"time_left"`
	NumberOfViews    *int    `gorm:"column:number_of_views" json:"number_of_views"`
	NumberOfBids     *int    `gorm:"column:number_of_bids" json:"number_of_bids"`
	LocationAddress  *string `gorm:"column:location_address;type:text" json:"location_address"`
	LocationURL      *string `gorm:"column:location_url;type:text" json:"location_url"`

	PostedAt  *string        `gorm:"column:posted_at;size:64;index" json:"posted_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (Car) TableName() string { return "cars" }

// Images decodes the gallery column. A missing or malformed column is an
// empty gallery, never an error.
func (c *Car) Images() []string {
	if len(c.ImagesJSON) == 0 {
		return nil
	}
	var imgs []string
	if err := json.Unmarshal(c.ImagesJSON, &imgs); err != nil {
		return nil
	}
	return imgs
}

type Make struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
}

func (Make) TableName() string { return "makes" }

type CarModel struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name   string `gorm:"size:100;not null" json:"name"`
	MakeID *uint  `gorm:"column:make_id" json:"make_id"`
}

func (CarModel) TableName() string { return "models" }

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
}

func (Category) TableName() string { return "categories" }

// CarView is the API row shape: the car augmented with the resolved image
// list (hero first) and an embedded dealership summary or null.
type CarView struct {
	Car
	Images     []string            `json:"images"`
	Dealership *dealership.Summary `json:"dealership"`
}

// CarInput is the typed allow-list for admin create/update. Only submitted
// (non-nil) fields are applied; everything else is left untouched. The
// omitempty tags keep the audit after-state down to the submitted columns.
type CarInput struct {
	VIN          *string  `json:"vin,omitempty"`
	Make         *string  `json:"make,omitempty"`
	MakeID       *uint    `json:"make_id,omitempty"`
	Model        *string  `json:"model,omitempty"`
	ModelID      *uint    `json:"model_id,omitempty"`
	CategoryID   *uint    `json:"category_id,omitempty"`
	DealershipID *uint    `json:"dealership_id,omitempty"`
	Trim         *string  `json:"trim,omitempty"`
	Year         *int     `json:"year,omitempty"`
	Mileage      *int     `json:"mileage,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	Currency     *string  `json:"currency,omitempty"`
	City         *string  `json:"city,omitempty"`
	State        *string  `json:"state,omitempty"`

	AuctionStatus *string `json:"auction_status,omitempty"`
	LotNumber     *string `json:"lot_number,omitempty"`
	Source        *string `json:"source,omitempty"`
	URL           *string `json:"url,omitempty"`
	Title         *string `json:"title,omitempty"`
	Description   *string `json:"description,omitempty"`
	ImageURL      *string `json:"image_url,omitempty"`

	SellerName    *string  `json:"seller_name,omitempty"`
	SellerRating  *float64 `json:"seller_rating,omitempty"`
	SellerReviews *int     `json:"seller_reviews,omitempty"`
	PostedAt      *string  `json:"posted_at,omitempty"`
}

type BulkActionInput struct {
	IDs    []uint `json:"ids" binding:"required"`
	Action string `json:"action" binding:"required"`
}
