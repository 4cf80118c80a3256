package repository

import (
	"context"
	"errors"

	"senior_living_backend/internal/model"
	"senior_living_backend/internal/util"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

// FindBySlug loads an active quiz with questions, options and tiers in sort
// order.
func (r *QuizRepository) FindBySlug(ctx context.Context, slug string) (*model.Quiz, error) {
	var q model.Quiz
	err := r.DB.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc, id asc")
		}).
		Preload("Questions.AnswerOptions", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc, id asc")
		}).
		Preload("ResultTiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc, id asc")
		}).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}
