package quiz

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition    = errors.New("invalid quiz session transition")
	ErrUnknownQuestion      = errors.New("question does not belong to this quiz")
	ErrUnknownOption        = errors.New("answer option does not belong to this question")
	ErrAnswerTypeMismatch   = errors.New("answer shape does not match question type")
	ErrScaleOutOfRange      = errors.New("scale answer must be an integer from 1 to 5")
	ErrContactEmailRequired = errors.New("email is required")
)

// ValidationError blocks navigation past a question that needs an answer.
type ValidationError struct {
	QuestionID uint
	Message    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question %d: %s", e.QuestionID, e.Message)
}

// SubmissionError wraps a failed write of a completed session. The session
// keeps its answers so the caller can retry.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return "quiz submission failed: " + e.Err.Error()
}

func (e *SubmissionError) Unwrap() error { return e.Err }

func (e *SubmissionError) Retryable() bool { return true }

// DefinitionLoadError means the quiz or the community catalog could not be
// fetched. Nothing can be rendered without them.
type DefinitionLoadError struct {
	Slug string
	Err  error
}

func (e *DefinitionLoadError) Error() string {
	return fmt.Sprintf("load quiz %q: %v", e.Slug, e.Err)
}

func (e *DefinitionLoadError) Unwrap() error { return e.Err }
