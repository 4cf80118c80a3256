package database

import (
	"senior_living_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DemoCommunities is a small catalog for local development.
func DemoCommunities() []model.Community {
	return []model.Community{
		{Slug: "aspen-grove", Name: "Aspen Grove", City: "Denver", State: "CO", Featured: true, Active: true, SortOrder: 1,
			CareTypes: model.StringList{"Memory Care", "Assisted Living"}},
		{Slug: "cedar-point", Name: "Cedar Point", City: "Aurora", State: "CO", Featured: true, Active: true, SortOrder: 2,
			CareTypes: model.StringList{"Memory Care"}},
		{Slug: "maple-court", Name: "Maple Court", City: "Boulder", State: "CO", Featured: true, Active: true, SortOrder: 3,
			CareTypes: model.StringList{"Independent Living"}},
		{Slug: "birch-hill", Name: "Birch Hill", City: "Lakewood", State: "CO", Active: true, SortOrder: 4,
			CareTypes: model.StringList{"Assisted Living", "Respite Care"}},
		{Slug: "willow-bend", Name: "Willow Bend", City: "Golden", State: "CO", Active: true, SortOrder: 5,
			CareTypes: model.StringList{"Skilled Nursing"}},
	}
}

// DemoLandingPages returns the city campaign page used by paid search ads.
func DemoLandingPages() []model.DynamicLandingPage {
	return []model.DynamicLandingPage{
		{
			Slug:                    "care-near-you",
			TitleTemplate:           "{careType} in {location} | Find the Right Community",
			MetaDescriptionTemplate: "Compare {careType} communities in {city}. Take the free Care Navigator quiz.",
			HeadingTemplate:         "{careType} in {city}",
			SubheadingTemplate:      "Trusted local advisors for families in {location}.",
			BodyTemplate:            "Finding {careType} in {city} starts with understanding the level of support your loved one needs.",
			CTATemplate:             "Start the {careType} quiz",
			DefaultCity:             "Denver",
			DefaultState:            "CO",
			DefaultCareType:         "Senior Living",
			IsActive:                true,
		},
	}
}

// SeedDemo upserts the demo catalog and landing pages by slug.
func SeedDemo(db *gorm.DB) error {
	communities := DemoCommunities()
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&communities).Error; err != nil {
		return err
	}
	pages := DemoLandingPages()
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&pages).Error
}
