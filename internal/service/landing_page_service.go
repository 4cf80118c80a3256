package service

import (
	"context"
	"errors"
	"strings"

	"senior_living_backend/internal/model"
	"senior_living_backend/internal/templating"
	"senior_living_backend/internal/util"
	"senior_living_backend/pkg/logger"

	"go.uber.org/zap"
)

type LandingPageStore interface {
	FindBySlug(ctx context.Context, slug string) (*model.DynamicLandingPage, error)
	FindCareTypeBySlug(ctx context.Context, slug string) (*model.CareType, error)
}

// LandingPageParams are the query values a campaign link carries.
type LandingPageParams struct {
	City      string `form:"city"`
	State     string `form:"state"`
	CareType  string `form:"careType"`
	Community string `form:"community"`
}

type LandingPageService struct {
	Pages       LandingPageStore
	Communities *CommunityService
}

func NewLandingPageService(pages LandingPageStore, communities *CommunityService) *LandingPageService {
	return &LandingPageService{Pages: pages, Communities: communities}
}

func (s *LandingPageService) Resolve(ctx context.Context, slug string, params LandingPageParams) (*templating.ResolvedPage, error) {
	page, err := s.Pages.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	tokens, err := s.tokens(ctx, page, params)
	if err != nil {
		return nil, err
	}
	resolved := templating.ResolvePage(page, tokens)
	return &resolved, nil
}

// tokens builds the substitution map. Empty values are left out so the
// placeholder stays visible in the rendered text.
func (s *LandingPageService) tokens(ctx context.Context, page *model.DynamicLandingPage, params LandingPageParams) (templating.Tokens, error) {
	city := strings.TrimSpace(params.City)
	if city != "" {
		city = util.TitleFromSlug(city)
	}
	state := strings.ToUpper(strings.TrimSpace(params.State))

	var communityName string
	if slug := strings.TrimSpace(params.Community); slug != "" && s.Communities != nil {
		c, err := s.Communities.FindBySlug(ctx, slug)
		switch {
		case errors.Is(err, util.ErrCommunityNotFound):
			logger.Log.Debug("landing page community not found", zap.String("community", slug))
		case err != nil:
			return nil, err
		default:
			communityName = c.Name
			if city == "" {
				city = c.City
			}
			if state == "" {
				state = c.State
			}
		}
	}

	if city == "" {
		city = page.DefaultCity
	}
	if state == "" {
		state = page.DefaultState
	}

	careType, err := s.careTypeName(ctx, page, params.CareType)
	if err != nil {
		return nil, err
	}

	tokens := templating.Tokens{}
	put := func(k, v string) {
		if v != "" {
			tokens[k] = v
		}
	}
	put(templating.TokenCity, city)
	put(templating.TokenState, state)
	put(templating.TokenLocation, location(city, state))
	put(templating.TokenCareType, careType)
	put(templating.TokenCommunityName, communityName)
	return tokens, nil
}

func (s *LandingPageService) careTypeName(ctx context.Context, page *model.DynamicLandingPage, slug string) (string, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return page.DefaultCareType, nil
	}
	ct, err := s.Pages.FindCareTypeBySlug(ctx, slug)
	if err != nil {
		return "", err
	}
	if ct != nil {
		return ct.Name, nil
	}
	return util.TitleFromSlug(slug), nil
}

func location(city, state string) string {
	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "":
		return city
	default:
		return state
	}
}
