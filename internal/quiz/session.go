package quiz

import (
	"strings"

	"senior_living_backend/internal/model"
)

type State string

const (
	StateInProgress      State = "in_progress"
	StateAwaitingContact State = "awaiting_contact"
	StateSubmitting      State = "submitting"
	StateCompleted       State = "completed"
	StateFailed          State = "failed"
)

// Contact is the lead-capture step. Only Email is required.
type Contact struct {
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	ZipCode  string `json:"zipCode,omitempty"`
	Timeline string `json:"timeline,omitempty"`
}

// Attribution carries marketing parameters captured on the landing visit.
type Attribution struct {
	UTMSource   string `json:"utmSource,omitempty" form:"utm_source"`
	UTMMedium   string `json:"utmMedium,omitempty" form:"utm_medium"`
	UTMCampaign string `json:"utmCampaign,omitempty" form:"utm_campaign"`
	UTMTerm     string `json:"utmTerm,omitempty" form:"utm_term"`
	UTMContent  string `json:"utmContent,omitempty" form:"utm_content"`
	GCLID       string `json:"gclid,omitempty" form:"gclid"`
	LandingPage string `json:"landingPage,omitempty" form:"landing_page"`
	Referrer    string `json:"referrer,omitempty" form:"referrer"`
}

// Session is the state of one quiz run. It is a plain value: the caller
// loads it, applies one transition and stores it again.
type Session struct {
	ID            string      `json:"id"`
	QuizID        uint        `json:"quizId"`
	QuizSlug      string      `json:"quizSlug"`
	State         State       `json:"state"`
	QuestionIndex int         `json:"questionIndex"`
	Answers       *AnswerSet  `json:"answers"`
	Contact       *Contact    `json:"contact,omitempty"`
	Attribution   Attribution `json:"attribution"`
	LastError     string      `json:"lastError,omitempty"`
}

func NewSession(id string, def *model.Quiz) *Session {
	return &Session{
		ID:       id,
		QuizID:   def.ID,
		QuizSlug: def.Slug,
		State:    StateInProgress,
		Answers:  NewAnswerSet(),
	}
}

func (s *Session) answers() *AnswerSet {
	if s.Answers == nil {
		s.Answers = NewAnswerSet()
	}
	return s.Answers
}

// CurrentQuestion is nil outside the in-progress state.
func (s *Session) CurrentQuestion(def *model.Quiz) *model.QuizQuestion {
	if s.State != StateInProgress || s.QuestionIndex < 0 || s.QuestionIndex >= len(def.Questions) {
		return nil
	}
	return &def.Questions[s.QuestionIndex]
}

// Progress is the share of questions reached, in whole percent.
func (s *Session) Progress(def *model.Quiz) int {
	n := len(def.Questions)
	if n == 0 {
		return 0
	}
	if s.State != StateInProgress {
		return 100
	}
	return (s.QuestionIndex + 1) * 100 / n
}

// Record stores an answer, replacing any earlier answer to the same question.
func (s *Session) Record(def *model.Quiz, submitted model.SubmittedAnswer) error {
	if s.State != StateInProgress {
		return ErrInvalidTransition
	}
	q, _, ok := def.Question(submitted.QuestionID)
	if !ok {
		return ErrUnknownQuestion
	}
	a, err := FromSubmitted(q, submitted)
	if err != nil {
		return err
	}
	s.answers().Put(a)
	return nil
}

// Validate checks that q can be left: a required question needs an answer,
// and a required text answer must not be blank.
func Validate(q *model.QuizQuestion, answers *AnswerSet) error {
	if !q.Required {
		return nil
	}
	a, ok := answers.Get(q.ID)
	if !ok {
		return &ValidationError{QuestionID: q.ID, Message: "please answer this question to continue"}
	}
	if t, ok := a.(Text); ok && strings.TrimSpace(t.Value) == "" {
		return &ValidationError{QuestionID: q.ID, Message: "please enter a response to continue"}
	}
	return nil
}

// Next advances to the following question, or to the contact step after the
// last one. A failed validation leaves the session untouched.
func (s *Session) Next(def *model.Quiz) error {
	q := s.CurrentQuestion(def)
	if q == nil {
		return ErrInvalidTransition
	}
	if err := Validate(q, s.answers()); err != nil {
		return err
	}
	if s.QuestionIndex == len(def.Questions)-1 {
		s.State = StateAwaitingContact
		return nil
	}
	s.QuestionIndex++
	return nil
}

// Back returns to the previous question. It is a no-op on the first question
// and returns from the contact step to the last question.
func (s *Session) Back(def *model.Quiz) error {
	switch s.State {
	case StateInProgress:
		if s.QuestionIndex > 0 {
			s.QuestionIndex--
		}
		return nil
	case StateAwaitingContact, StateFailed:
		s.State = StateInProgress
		s.QuestionIndex = max(len(def.Questions)-1, 0)
		s.LastError = ""
		return nil
	}
	return ErrInvalidTransition
}

// BeginSubmit moves from the contact step, or a failed attempt, to
// submitting.
func (s *Session) BeginSubmit(contact Contact, attribution Attribution) error {
	if s.State != StateAwaitingContact && s.State != StateFailed {
		return ErrInvalidTransition
	}
	if strings.TrimSpace(contact.Email) == "" {
		return ErrContactEmailRequired
	}
	contact.Email = strings.TrimSpace(contact.Email)
	s.Contact = &contact
	s.Attribution = attribution
	s.State = StateSubmitting
	s.LastError = ""
	return nil
}

func (s *Session) Complete() error {
	if s.State != StateSubmitting {
		return ErrInvalidTransition
	}
	s.State = StateCompleted
	return nil
}

// Fail records a transport failure. Answers and contact details are kept.
func (s *Session) Fail(cause error) error {
	if s.State != StateSubmitting {
		return ErrInvalidTransition
	}
	s.State = StateFailed
	if cause != nil {
		s.LastError = cause.Error()
	}
	return nil
}
