package quiz

import "senior_living_backend/internal/model"

// Outcome is everything the result view needs.
type Outcome struct {
	Score          Score          `json:"score"`
	Recommendation Recommendation `json:"recommendation"`
	ResultTitle    string         `json:"resultTitle,omitempty"`
	ResultMessage  string         `json:"resultMessage,omitempty"`
}

// Evaluate scores answers, matches a tier and filters the catalog.
func Evaluate(def *model.Quiz, answers *AnswerSet, catalog []model.Community, r Recommender) Outcome {
	score := Calculate(def, answers)
	return Outcome{
		Score:          score,
		Recommendation: r.Recommend(score.ResultCategory, catalog),
		ResultTitle:    def.ResultTitle,
		ResultMessage:  def.ResultMessage,
	}
}
