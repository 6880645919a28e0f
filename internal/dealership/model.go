package dealership

type Dealership struct {
	ID      uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string  `gorm:"size:255;not null" json:"name"`
	LogoURL *string `gorm:"column:logo_url;type:text" json:"logo_url"`
}

func (Dealership) TableName() string { return "dealerships" }

// Summary is the shape embedded in car rows.
type Summary struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	LogoURL *string `json:"logo_url"`
}

func (d *Dealership) Summary() *Summary {
	return &Summary{ID: d.ID, Name: d.Name, LogoURL: d.LogoURL}
}

type DealershipInput struct {
	Name    string  `json:"name" binding:"required"`
	LogoURL *string `json:"logo_url"`
}
