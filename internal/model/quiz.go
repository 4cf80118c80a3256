package model

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionText           QuestionType = "text"
	QuestionScale          QuestionType = "scale"
)

// Valid reports whether t is one of the supported question types.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionMultipleChoice, QuestionText, QuestionScale:
		return true
	}
	return false
}

// Quiz is a Care Navigator style quiz definition.
// swagger:model Quiz
type Quiz struct {
	BaseModel
	Slug          string           `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Title         string           `gorm:"size:255;not null" json:"title"`
	Description   string           `gorm:"type:text" json:"description"`
	ResultTitle   string           `gorm:"size:255" json:"resultTitle,omitempty"`
	ResultMessage string           `gorm:"type:text" json:"resultMessage,omitempty"`
	IsActive      bool             `gorm:"default:true" json:"isActive"`
	Questions     []QuizQuestion   `gorm:"foreignKey:QuizID" json:"questions"`
	ResultTiers   []QuizResultTier `gorm:"foreignKey:QuizID" json:"resultTiers,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// Question returns the question with the given id and its position.
func (q *Quiz) Question(id uint) (*QuizQuestion, int, bool) {
	for i := range q.Questions {
		if q.Questions[i].ID == id {
			return &q.Questions[i], i, true
		}
	}
	return nil, -1, false
}

// swagger:model QuizQuestion
type QuizQuestion struct {
	BaseModel
	QuizID        uint               `gorm:"index;type:bigint unsigned" json:"quizId"`
	QuestionText  string             `gorm:"type:text;not null" json:"questionText"`
	HelpText      string             `gorm:"type:text" json:"helpText,omitempty"`
	QuestionType  QuestionType       `gorm:"size:30;not null" json:"questionType"`
	Required      bool               `gorm:"default:true" json:"required"`
	SortOrder     int                `gorm:"default:0" json:"sortOrder"`
	AnswerOptions []QuizAnswerOption `gorm:"foreignKey:QuestionID" json:"answerOptions,omitempty"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// Option returns the answer option with the given id.
func (q *QuizQuestion) Option(id uint) (*QuizAnswerOption, bool) {
	for i := range q.AnswerOptions {
		if q.AnswerOptions[i].ID == id {
			return &q.AnswerOptions[i], true
		}
	}
	return nil, false
}

// QuizAnswerOption carries its score as a decimal string, the way the column
// comes back from the driver.
// swagger:model QuizAnswerOption
type QuizAnswerOption struct {
	BaseModel
	QuestionID     uint   `gorm:"index;type:bigint unsigned" json:"questionId"`
	AnswerText     string `gorm:"size:255;not null" json:"answerText"`
	Score          string `gorm:"type:decimal(10,2);default:0" json:"score"`
	ResultCategory string `gorm:"size:120" json:"resultCategory,omitempty"`
	SortOrder      int    `gorm:"default:0" json:"sortOrder"`
}

func (QuizAnswerOption) TableName() string {
	return "quiz_answer_options"
}

// QuizResultTier bounds are inclusive on a 0-100 percentage scale.
// swagger:model QuizResultTier
type QuizResultTier struct {
	BaseModel
	QuizID          uint    `gorm:"index;type:bigint unsigned" json:"quizId"`
	Name            string  `gorm:"size:120;not null" json:"name"`
	MinScore        float64 `gorm:"not null" json:"minScore"`
	MaxScore        float64 `gorm:"not null" json:"maxScore"`
	Description     string  `gorm:"type:text" json:"description,omitempty"`
	Recommendations string  `gorm:"type:text" json:"recommendations,omitempty"`
	SortOrder       int     `gorm:"default:0" json:"sortOrder"`
}

func (QuizResultTier) TableName() string {
	return "quiz_result_tiers"
}
