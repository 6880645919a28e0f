package settings

// Setting is a single key-value site configuration row.
type Setting struct {
	Key   string `gorm:"primaryKey;size:100" json:"key"`
	Value string `gorm:"type:text" json:"value"`
}

func (Setting) TableName() string { return "settings" }

// Known keys.
const (
	KeySiteTitle         = "site_title"
	KeySiteTagline       = "site_tagline"
	KeyTheme             = "theme"
	KeyLogoURL           = "logo_url"
	KeyContactEmail      = "contact_email"
	KeyDefaultPageSize   = "default_page_size"
	KeyMaintenanceBanner = "maintenance_banner"
)

// Defaults seeded at startup for keys that do not exist yet.
var Defaults = map[string]string{
	KeySiteTitle:         "Vinfreak",
	KeySiteTagline:       "Discover performance & provenance",
	KeyTheme:             "dark",
	KeyLogoURL:           "",
	KeyContactEmail:      "",
	KeyDefaultPageSize:   "25",
	KeyMaintenanceBanner: "",
}

type SaveSettingsInput struct {
	Values map[string]string `json:"values" binding:"required"`
}
