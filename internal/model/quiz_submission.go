package model

import "encoding/json"

// QuizSubmission is the write-only record of a completed quiz session.
// swagger:model QuizSubmission
type QuizSubmission struct {
	UUIDBase
	QuizID         uint            `gorm:"index;type:bigint unsigned" json:"quizId"`
	SessionID      string          `gorm:"size:36;index" json:"sessionId,omitempty"`
	Answers        json.RawMessage `gorm:"type:json" json:"answers"`
	TotalScore     float64         `json:"totalScore"`
	ScorePercent   *float64        `json:"scorePercentage,omitempty"`
	ResultCategory string          `gorm:"size:120;index" json:"resultCategory"`

	Email    string `gorm:"size:255;not null" json:"email"`
	Name     string `gorm:"size:255" json:"name,omitempty"`
	Phone    string `gorm:"size:40" json:"phone,omitempty"`
	ZipCode  string `gorm:"size:20" json:"zipCode,omitempty"`
	Timeline string `gorm:"size:60" json:"timeline,omitempty"`

	UTMSource   string `gorm:"size:255" json:"utmSource,omitempty"`
	UTMMedium   string `gorm:"size:255" json:"utmMedium,omitempty"`
	UTMCampaign string `gorm:"size:255" json:"utmCampaign,omitempty"`
	UTMTerm     string `gorm:"size:255" json:"utmTerm,omitempty"`
	UTMContent  string `gorm:"size:255" json:"utmContent,omitempty"`
	GCLID       string `gorm:"size:255" json:"gclid,omitempty"`
	LandingPage string `gorm:"size:512" json:"landingPage,omitempty"`
	Referrer    string `gorm:"size:512" json:"referrer,omitempty"`
}

func (QuizSubmission) TableName() string {
	return "quiz_submissions"
}

// SubmittedAnswer is the wire and storage form of a single answer.
type SubmittedAnswer struct {
	QuestionID     uint    `json:"questionId"`
	AnswerOptionID *uint   `json:"answerOptionId,omitempty"`
	TextAnswer     *string `json:"textAnswer,omitempty"`
}
