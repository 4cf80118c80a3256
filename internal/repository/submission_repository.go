package repository

import (
	"context"

	"senior_living_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, s *model.QuizSubmission) error {
	return r.DB.WithContext(ctx).Create(s).Error
}
