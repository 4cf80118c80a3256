package model

// DynamicLandingPage holds templated copy for pages such as
// "/memory-care/{city}". Template fields may contain {token} placeholders.
// swagger:model DynamicLandingPage
type DynamicLandingPage struct {
	BaseModel
	Slug                    string `gorm:"size:160;uniqueIndex;not null" json:"slug"`
	TitleTemplate           string `gorm:"size:255" json:"titleTemplate"`
	MetaDescriptionTemplate string `gorm:"type:text" json:"metaDescriptionTemplate"`
	HeadingTemplate         string `gorm:"size:255" json:"headingTemplate"`
	SubheadingTemplate      string `gorm:"type:text" json:"subheadingTemplate"`
	BodyTemplate            string `gorm:"type:text" json:"bodyTemplate"`
	CTATemplate             string `gorm:"size:255" json:"ctaTemplate"`
	DefaultCity             string `gorm:"size:120" json:"defaultCity"`
	DefaultState            string `gorm:"size:60" json:"defaultState"`
	DefaultCareType         string `gorm:"size:120" json:"defaultCareType"`
	IsActive                bool   `gorm:"default:true" json:"isActive"`
}

func (DynamicLandingPage) TableName() string {
	return "dynamic_landing_pages"
}
