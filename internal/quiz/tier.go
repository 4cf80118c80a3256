package quiz

import (
	"fmt"
	"math"
	"sort"

	"senior_living_backend/internal/model"
)

// MatchTier returns the first tier, in definition order, whose inclusive
// bounds contain pct. A percentage that falls between whole-number bounds
// (39.99 between 0-39 and 40-69) is matched on its integer part.
func MatchTier(tiers []model.QuizResultTier, pct float64) (*model.QuizResultTier, bool) {
	if t, ok := firstTier(tiers, pct); ok {
		return t, true
	}
	if floor := math.Floor(pct); floor != pct {
		return firstTier(tiers, floor)
	}
	return nil, false
}

func firstTier(tiers []model.QuizResultTier, pct float64) (*model.QuizResultTier, bool) {
	for i := range tiers {
		if pct >= tiers[i].MinScore && pct <= tiers[i].MaxScore {
			return &tiers[i], true
		}
	}
	return nil, false
}

// TierIssue describes an authoring problem in a quiz's result tiers.
type TierIssue struct {
	Kind    string
	Message string
}

// CheckTiers reports inverted, overlapping and gapped tier ranges. Matching
// tolerates all of these; the report is informational.
func CheckTiers(tiers []model.QuizResultTier) []TierIssue {
	if len(tiers) == 0 {
		return nil
	}
	var issues []TierIssue
	sorted := make([]model.QuizResultTier, 0, len(tiers))
	for _, t := range tiers {
		if t.MinScore > t.MaxScore {
			issues = append(issues, TierIssue{
				Kind:    "inverted",
				Message: fmt.Sprintf("tier %q has min %.2f above max %.2f", t.Name, t.MinScore, t.MaxScore),
			})
			continue
		}
		sorted = append(sorted, t)
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].MinScore < sorted[j].MinScore })

	if len(sorted) > 0 && sorted[0].MinScore > 0 {
		issues = append(issues, TierIssue{
			Kind:    "gap",
			Message: fmt.Sprintf("no tier covers 0 to %.2f", sorted[0].MinScore),
		})
	}
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		switch {
		case cur.MinScore <= prev.MaxScore:
			issues = append(issues, TierIssue{
				Kind:    "overlap",
				Message: fmt.Sprintf("tiers %q and %q overlap", prev.Name, cur.Name),
			})
		case cur.MinScore-prev.MaxScore > 1:
			// Whole-number neighbours such as 0-39 and 40-69 leave no gap.
			issues = append(issues, TierIssue{
				Kind:    "gap",
				Message: fmt.Sprintf("no tier covers %.2f to %.2f", prev.MaxScore, cur.MinScore),
			})
		}
	}
	if n := len(sorted); n > 0 && sorted[n-1].MaxScore < 100 {
		issues = append(issues, TierIssue{
			Kind:    "gap",
			Message: fmt.Sprintf("no tier covers %.2f to 100", sorted[n-1].MaxScore),
		})
	}
	return issues
}
