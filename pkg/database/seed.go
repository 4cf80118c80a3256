package database

import (
	"senior_living_backend/internal/model"

	"gorm.io/gorm"
)

// DefaultQuiz is the Care Navigator quiz seeded into an empty database.
func DefaultQuiz() *model.Quiz {
	choice := func(order int, text string, options ...model.QuizAnswerOption) model.QuizQuestion {
		for i := range options {
			options[i].SortOrder = i
		}
		return model.QuizQuestion{
			QuestionText:  text,
			QuestionType:  model.QuestionMultipleChoice,
			Required:      true,
			SortOrder:     order,
			AnswerOptions: options,
		}
	}
	opt := func(text, score string) model.QuizAnswerOption {
		return model.QuizAnswerOption{AnswerText: text, Score: score}
	}

	return &model.Quiz{
		Slug:          "care-navigator",
		Title:         "Care Navigator",
		Description:   "Answer a few questions to find the level of care that fits your loved one.",
		ResultTitle:   "Your Care Navigator results",
		ResultMessage: "A senior living advisor will follow up with options near you.",
		IsActive:      true,
		Questions: []model.QuizQuestion{
			choice(1, "How much help is needed with bathing, dressing or grooming?",
				opt("None, fully independent", "0"),
				opt("Occasional reminders", "3"),
				opt("Daily hands-on help", "7"),
				opt("Full assistance", "10"),
			),
			choice(2, "How is memory and day-to-day orientation?",
				opt("No concerns", "0"),
				opt("Some forgetfulness", "4"),
				opt("Gets lost or confused in familiar places", "8"),
				opt("Diagnosed dementia or Alzheimer's", "10"),
			),
			choice(3, "How are medications managed?",
				opt("Independently", "0"),
				opt("Needs reminders", "4"),
				opt("Someone else administers them", "10"),
			),
			choice(4, "Have there been falls or safety concerns at home?",
				opt("No", "0"),
				opt("One in the past year", "5"),
				opt("Several, or wandering", "10"),
			),
			{
				QuestionText: "How would you rate your current stress as a caregiver?",
				HelpText:     "1 is low, 5 is very high.",
				QuestionType: model.QuestionScale,
				Required:     false,
				SortOrder:    5,
			},
			{
				QuestionText: "Anything else we should know?",
				QuestionType: model.QuestionText,
				Required:     false,
				SortOrder:    6,
			},
		},
		ResultTiers: []model.QuizResultTier{
			{Name: "Independent Living", MinScore: 0, MaxScore: 39, SortOrder: 1,
				Description: "An active community with dining, housekeeping and social life."},
			{Name: "Assisted Living", MinScore: 40, MaxScore: 69, SortOrder: 2,
				Description: "Daily support with personal care and medications."},
			{Name: "Memory Care", MinScore: 70, MaxScore: 100, SortOrder: 3,
				Description: "A secure setting with staff trained in dementia care."},
		},
	}
}

var defaultCareTypes = []model.CareType{
	{Slug: "independent-living", Name: "Independent Living"},
	{Slug: "assisted-living", Name: "Assisted Living"},
	{Slug: "memory-care", Name: "Memory Care"},
	{Slug: "respite-care", Name: "Respite Care"},
	{Slug: "hybrid-care", Name: "Hybrid Care / High Acuity"},
}

// Seed inserts the default quiz and care types when their tables are empty.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Quiz{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		if err := db.Create(DefaultQuiz()).Error; err != nil {
			return err
		}
	}

	var ctCount int64
	if err := db.Model(&model.CareType{}).Count(&ctCount).Error; err != nil {
		return err
	}
	if ctCount == 0 {
		for _, ct := range defaultCareTypes {
			if err := db.Create(&ct).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
