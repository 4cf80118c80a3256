package repository

import (
	"context"
	"errors"

	"senior_living_backend/internal/model"
	"senior_living_backend/internal/util"

	"gorm.io/gorm"
)

type CommunityRepository struct {
	DB *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) *CommunityRepository {
	return &CommunityRepository{DB: db}
}

// ListActive returns the active catalog in display order.
func (r *CommunityRepository) ListActive(ctx context.Context) ([]model.Community, error) {
	var cs []model.Community
	err := r.DB.WithContext(ctx).
		Where("active = ?", true).
		Order("sort_order asc, name asc").
		Find(&cs).Error
	return cs, err
}

func (r *CommunityRepository) FindBySlug(ctx context.Context, slug string) (*model.Community, error) {
	var c model.Community
	err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCommunityNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
