package service

import (
	"context"

	"senior_living_backend/internal/cache"
	"senior_living_backend/internal/model"
	"senior_living_backend/internal/quiz"
	"senior_living_backend/pkg/logger"
	"senior_living_backend/pkg/monitoring"
	"senior_living_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type CommunityStore interface {
	ListActive(ctx context.Context) ([]model.Community, error)
	FindBySlug(ctx context.Context, slug string) (*model.Community, error)
}

type CommunityService struct {
	Repo        CommunityStore
	Cache       cache.CatalogCache
	Recommender quiz.Recommender
}

// NewCommunityService accepts a nil catalogCache, in which case every call
// reads the repository.
func NewCommunityService(repo CommunityStore, catalogCache cache.CatalogCache, recommender quiz.Recommender) *CommunityService {
	return &CommunityService{Repo: repo, Cache: catalogCache, Recommender: recommender}
}

// Catalog returns the active catalog snapshot. Cache failures are logged and
// the repository is used instead.
func (s *CommunityService) Catalog(ctx context.Context) ([]model.Community, error) {
	if s.Cache != nil {
		cs, ok, err := s.Cache.Get(ctx)
		if err != nil {
			logger.Log.Warn("catalog cache read failed", zap.Error(err))
		} else if ok {
			return cs, nil
		}
	}

	cs, err := s.Repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, cs); err != nil {
			logger.Log.Warn("catalog cache write failed", zap.Error(err))
		}
	}
	return cs, nil
}

// Recommend runs the recommendation filter for category over the catalog.
func (s *CommunityService) Recommend(ctx context.Context, category string) (quiz.Recommendation, error) {
	ctx, span := tracing.Tracer.Start(ctx, "CommunityService.Recommend",
		trace.WithAttributes(attribute.String("quiz.result_category", category)))
	defer span.End()

	catalog, err := s.Catalog(ctx)
	if err != nil {
		span.RecordError(err)
		return quiz.Recommendation{}, &quiz.DefinitionLoadError{Slug: "communities", Err: err}
	}

	rec := s.Recommender.Recommend(category, catalog)
	span.SetAttributes(attribute.String("quiz.recommendation_path", string(rec.Path)))
	monitoring.RecommendationPaths.WithLabelValues(string(rec.Path)).Inc()
	return rec, nil
}

func (s *CommunityService) FindBySlug(ctx context.Context, slug string) (*model.Community, error) {
	return s.Repo.FindBySlug(ctx, slug)
}
