package quiz

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"senior_living_backend/internal/model"
)

const (
	ScaleMin = 1
	ScaleMax = 5
)

// Answer is one of Choice, Text or Scale.
type Answer interface {
	QuestionID() uint
	sealed()
}

// Choice answers a multiple_choice question.
type Choice struct {
	Question uint
	OptionID uint
}

// Text answers a free-text question.
type Text struct {
	Question uint
	Value    string
}

// Scale answers a 1-5 scale question.
type Scale struct {
	Question uint
	Value    int
}

func (a Choice) QuestionID() uint { return a.Question }
func (a Text) QuestionID() uint   { return a.Question }
func (a Scale) QuestionID() uint  { return a.Question }

func (Choice) sealed() {}
func (Text) sealed()   {}
func (Scale) sealed()  {}

// FromSubmitted checks a wire answer against its question and converts it.
// Exactly one of AnswerOptionID and TextAnswer must be set, matching the
// question type.
func FromSubmitted(q *model.QuizQuestion, s model.SubmittedAnswer) (Answer, error) {
	if q == nil || q.ID != s.QuestionID {
		return nil, ErrUnknownQuestion
	}
	hasOption := s.AnswerOptionID != nil
	hasText := s.TextAnswer != nil
	if hasOption == hasText {
		return nil, ErrAnswerTypeMismatch
	}

	switch q.QuestionType {
	case model.QuestionMultipleChoice:
		if !hasOption {
			return nil, ErrAnswerTypeMismatch
		}
		if _, ok := q.Option(*s.AnswerOptionID); !ok {
			return nil, ErrUnknownOption
		}
		return Choice{Question: q.ID, OptionID: *s.AnswerOptionID}, nil
	case model.QuestionText:
		if !hasText {
			return nil, ErrAnswerTypeMismatch
		}
		return Text{Question: q.ID, Value: *s.TextAnswer}, nil
	case model.QuestionScale:
		if !hasText {
			return nil, ErrAnswerTypeMismatch
		}
		v, err := strconv.Atoi(strings.TrimSpace(*s.TextAnswer))
		if err != nil || v < ScaleMin || v > ScaleMax {
			return nil, ErrScaleOutOfRange
		}
		return Scale{Question: q.ID, Value: v}, nil
	}
	return nil, fmt.Errorf("%w: unsupported question type %q", ErrAnswerTypeMismatch, q.QuestionType)
}

// ToSubmitted converts an answer back to its wire form. Scale values are
// stored as their string form.
func ToSubmitted(a Answer) model.SubmittedAnswer {
	out := model.SubmittedAnswer{QuestionID: a.QuestionID()}
	switch v := a.(type) {
	case Choice:
		id := v.OptionID
		out.AnswerOptionID = &id
	case Text:
		text := v.Value
		out.TextAnswer = &text
	case Scale:
		text := strconv.Itoa(v.Value)
		out.TextAnswer = &text
	}
	return out
}

// AnswerSet holds at most one answer per question. Putting an answer for a
// question that already has one drops the old answer and appends the new one.
type AnswerSet struct {
	order []Answer
}

func NewAnswerSet(answers ...Answer) *AnswerSet {
	s := &AnswerSet{}
	for _, a := range answers {
		s.Put(a)
	}
	return s
}

func (s *AnswerSet) Put(a Answer) {
	s.Remove(a.QuestionID())
	s.order = append(s.order, a)
}

func (s *AnswerSet) Remove(questionID uint) {
	for i, existing := range s.order {
		if existing.QuestionID() == questionID {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			return
		}
	}
}

func (s *AnswerSet) Get(questionID uint) (Answer, bool) {
	if s == nil {
		return nil, false
	}
	for _, a := range s.order {
		if a.QuestionID() == questionID {
			return a, true
		}
	}
	return nil, false
}

func (s *AnswerSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// All returns the answers in set order.
func (s *AnswerSet) All() []Answer {
	if s == nil {
		return nil
	}
	out := make([]Answer, len(s.order))
	copy(out, s.order)
	return out
}

func (s *AnswerSet) Submitted() []model.SubmittedAnswer {
	out := make([]model.SubmittedAnswer, 0, s.Len())
	for _, a := range s.All() {
		out = append(out, ToSubmitted(a))
	}
	return out
}

type storedAnswer struct {
	Kind       string `json:"kind"`
	QuestionID uint   `json:"questionId"`
	OptionID   uint   `json:"optionId,omitempty"`
	Text       string `json:"text,omitempty"`
	Scale      int    `json:"scale,omitempty"`
}

func (s *AnswerSet) MarshalJSON() ([]byte, error) {
	stored := make([]storedAnswer, 0, s.Len())
	for _, a := range s.All() {
		switch v := a.(type) {
		case Choice:
			stored = append(stored, storedAnswer{Kind: "choice", QuestionID: v.Question, OptionID: v.OptionID})
		case Text:
			stored = append(stored, storedAnswer{Kind: "text", QuestionID: v.Question, Text: v.Value})
		case Scale:
			stored = append(stored, storedAnswer{Kind: "scale", QuestionID: v.Question, Scale: v.Value})
		}
	}
	return json.Marshal(stored)
}

func (s *AnswerSet) UnmarshalJSON(data []byte) error {
	var stored []storedAnswer
	if err := json.Unmarshal(data, &stored); err != nil {
		return err
	}
	s.order = nil
	for _, st := range stored {
		switch st.Kind {
		case "choice":
			s.Put(Choice{Question: st.QuestionID, OptionID: st.OptionID})
		case "text":
			s.Put(Text{Question: st.QuestionID, Value: st.Text})
		case "scale":
			s.Put(Scale{Question: st.QuestionID, Value: st.Scale})
		default:
			return fmt.Errorf("unknown answer kind %q", st.Kind)
		}
	}
	return nil
}
