package quiz

import "senior_living_backend/internal/model"

func option(id uint, score, category string) model.QuizAnswerOption {
	o := model.QuizAnswerOption{AnswerText: "option", Score: score, ResultCategory: category}
	o.ID = id
	return o
}

func choiceQuestion(id uint, required bool, opts ...model.QuizAnswerOption) model.QuizQuestion {
	q := model.QuizQuestion{QuestionText: "question", QuestionType: model.QuestionMultipleChoice, Required: required, AnswerOptions: opts}
	q.ID = id
	for i := range q.AnswerOptions {
		q.AnswerOptions[i].QuestionID = id
	}
	return q
}

func textQuestion(id uint, required bool) model.QuizQuestion {
	q := model.QuizQuestion{QuestionText: "tell us more", QuestionType: model.QuestionText, Required: required}
	q.ID = id
	return q
}

func scaleQuestion(id uint, required bool) model.QuizQuestion {
	q := model.QuizQuestion{QuestionText: "rate", QuestionType: model.QuestionScale, Required: required}
	q.ID = id
	return q
}

func tier(name string, min, max float64) model.QuizResultTier {
	return model.QuizResultTier{Name: name, MinScore: min, MaxScore: max}
}

func community(id uint, name string, featured, active bool, careTypes ...string) model.Community {
	c := model.Community{Name: name, Featured: featured, Active: active, CareTypes: careTypes}
	c.ID = id
	return c
}

func names(list []model.Community) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.Name
	}
	return out
}

func strPtr(s string) *string { return &s }
func uintPtr(v uint) *uint    { return &v }
