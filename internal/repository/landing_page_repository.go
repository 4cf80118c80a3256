package repository

import (
	"context"
	"errors"

	"senior_living_backend/internal/model"
	"senior_living_backend/internal/util"

	"gorm.io/gorm"
)

type LandingPageRepository struct {
	DB *gorm.DB
}

func NewLandingPageRepository(db *gorm.DB) *LandingPageRepository {
	return &LandingPageRepository{DB: db}
}

func (r *LandingPageRepository) FindBySlug(ctx context.Context, slug string) (*model.DynamicLandingPage, error) {
	var p model.DynamicLandingPage
	err := r.DB.WithContext(ctx).Where("slug = ? AND is_active = ?", slug, true).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLandingPageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindCareTypeBySlug returns nil without error when the slug is unknown.
func (r *LandingPageRepository) FindCareTypeBySlug(ctx context.Context, slug string) (*model.CareType, error) {
	var ct model.CareType
	err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&ct).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ct, nil
}
