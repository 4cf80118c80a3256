package quiz

import (
	"math"
	"strconv"
	"strings"

	"senior_living_backend/internal/model"
)

// GeneralCategory is the result category when nothing more specific applies.
const GeneralCategory = "general"

type Mode string

const (
	ModeWeighted Mode = "weighted"
	ModeVoting   Mode = "voting"
)

// Score is the outcome of scoring one answer set. ScorePercentage and Tier
// are only ever set in weighted mode; Tier stays nil when no tier matched.
type Score struct {
	Mode             Mode                  `json:"mode"`
	TotalScore       float64               `json:"totalScore"`
	MaxPossibleScore float64               `json:"maxPossibleScore"`
	ScorePercentage  *float64              `json:"scorePercentage,omitempty"`
	ResultCategory   string                `json:"resultCategory"`
	Tier             *model.QuizResultTier `json:"tier,omitempty"`
}

// ParseScore reads an option score. Missing or unparsable values count as 0.
func ParseScore(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Calculate scores answers against def. Quizzes with result tiers use
// weighted mode; quizzes without tiers fall back to category voting.
// Only multiple_choice answers take part in either mode.
func Calculate(def *model.Quiz, answers *AnswerSet) Score {
	total := totalScore(def, answers)
	if len(def.ResultTiers) == 0 {
		return Score{
			Mode:           ModeVoting,
			TotalScore:     total,
			ResultCategory: VoteCategory(def, answers),
		}
	}

	maxScore := MaxPossibleScore(def)
	pct := 0.0
	if maxScore > 0 {
		pct = total / maxScore * 100
	}
	score := Score{
		Mode:             ModeWeighted,
		TotalScore:       total,
		MaxPossibleScore: maxScore,
		ScorePercentage:  &pct,
		ResultCategory:   GeneralCategory,
	}
	if tier, ok := MatchTier(def.ResultTiers, pct); ok {
		score.Tier = tier
		score.ResultCategory = tier.Name
	}
	return score
}

func chosenOption(def *model.Quiz, c Choice) (*model.QuizAnswerOption, bool) {
	q, _, ok := def.Question(c.Question)
	if !ok {
		return nil, false
	}
	return q.Option(c.OptionID)
}

func totalScore(def *model.Quiz, answers *AnswerSet) float64 {
	total := 0.0
	for _, a := range answers.All() {
		c, ok := a.(Choice)
		if !ok {
			continue
		}
		if opt, ok := chosenOption(def, c); ok {
			total += ParseScore(opt.Score)
		}
	}
	return total
}

// MaxPossibleScore sums the best option score of every question. Questions
// without options contribute 0.
func MaxPossibleScore(def *model.Quiz) float64 {
	sum := 0.0
	for _, q := range def.Questions {
		if len(q.AnswerOptions) == 0 {
			continue
		}
		best := ParseScore(q.AnswerOptions[0].Score)
		for _, opt := range q.AnswerOptions[1:] {
			if s := ParseScore(opt.Score); s > best {
				best = s
			}
		}
		sum += best
	}
	return sum
}

// VoteCategory tallies the result category of each chosen option and returns
// the most frequent one. Ties go to the category seen first in answer order.
func VoteCategory(def *model.Quiz, answers *AnswerSet) string {
	counts := make(map[string]int)
	var seen []string
	for _, a := range answers.All() {
		c, ok := a.(Choice)
		if !ok {
			continue
		}
		opt, ok := chosenOption(def, c)
		if !ok || strings.TrimSpace(opt.ResultCategory) == "" {
			continue
		}
		if _, ok := counts[opt.ResultCategory]; !ok {
			seen = append(seen, opt.ResultCategory)
		}
		counts[opt.ResultCategory]++
	}

	winner, best := GeneralCategory, 0
	for _, category := range seen {
		if counts[category] > best {
			winner, best = category, counts[category]
		}
	}
	return winner
}
