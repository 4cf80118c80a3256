package quiz

import (
	"strings"

	"senior_living_backend/internal/model"
)

const (
	DefaultRecommendationLimit = 3
	DefaultMinFeatured         = 2
)

// Path records which branch of the filter produced a recommendation list.
type Path string

const (
	PathNone             Path = "none"
	PathCategoryFeatured Path = "category_featured"
	PathCategory         Path = "category"
	PathFeatured         Path = "featured"
	PathActive           Path = "active"
)

// Fallback reports whether the list came from outside the category match.
func (p Path) Fallback() bool {
	return p == PathFeatured || p == PathActive
}

type Recommender struct {
	Keywords    KeywordTable
	Limit       int
	MinFeatured int
}

// NewRecommender caps limit at DefaultRecommendationLimit; a configured
// value can only lower it.
func NewRecommender(limit int) Recommender {
	if limit <= 0 || limit > DefaultRecommendationLimit {
		limit = DefaultRecommendationLimit
	}
	return Recommender{
		Keywords:    DefaultKeywords,
		Limit:       limit,
		MinFeatured: DefaultMinFeatured,
	}
}

type Recommendation struct {
	Communities []model.Community `json:"communities"`
	Path        Path              `json:"path"`
}

// Recommend picks at most r.Limit active communities for category. Order
// follows the catalog; no relevance sort is applied.
func (r Recommender) Recommend(category string, catalog []model.Community) Recommendation {
	active := make([]model.Community, 0, len(catalog))
	for _, c := range catalog {
		if c.Active {
			active = append(active, c)
		}
	}
	if len(active) == 0 {
		return Recommendation{Communities: []model.Community{}, Path: PathNone}
	}

	keywords := r.keywords().Keywords(category)
	var matched []model.Community
	if len(keywords) > 0 {
		for _, c := range active {
			if matchesAny(c.CareTypes, keywords) {
				matched = append(matched, c)
			}
		}
	}

	if len(matched) > 0 {
		if featured := featuredOnly(matched); len(featured) >= r.minFeatured() {
			return Recommendation{Communities: r.truncate(featured), Path: PathCategoryFeatured}
		}
		return Recommendation{Communities: r.truncate(matched), Path: PathCategory}
	}

	if featured := featuredOnly(active); len(featured) >= r.minFeatured() {
		return Recommendation{Communities: r.truncate(featured), Path: PathFeatured}
	}
	return Recommendation{Communities: r.truncate(active), Path: PathActive}
}

func (r Recommender) keywords() KeywordTable {
	if r.Keywords == nil {
		return DefaultKeywords
	}
	return r.Keywords
}

func (r Recommender) minFeatured() int {
	if r.MinFeatured <= 0 {
		return DefaultMinFeatured
	}
	return r.MinFeatured
}

func (r Recommender) truncate(list []model.Community) []model.Community {
	limit := r.Limit
	if limit <= 0 || limit > DefaultRecommendationLimit {
		limit = DefaultRecommendationLimit
	}
	if len(list) > limit {
		list = list[:limit]
	}
	out := make([]model.Community, len(list))
	copy(out, list)
	return out
}

func featuredOnly(list []model.Community) []model.Community {
	var out []model.Community
	for _, c := range list {
		if c.Featured {
			out = append(out, c)
		}
	}
	return out
}

func matchesAny(careTypes []string, keywords []string) bool {
	for _, ct := range careTypes {
		lower := strings.ToLower(ct)
		for _, kw := range keywords {
			if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
				return true
			}
		}
	}
	return false
}
