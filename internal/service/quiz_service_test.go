package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"senior_living_backend/internal/model"
	"senior_living_backend/internal/quiz"
	"senior_living_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func choose(q, o uint) model.SubmittedAnswer {
	return model.SubmittedAnswer{QuestionID: q, AnswerOptionID: &o}
}

// answerAll walks a fresh session to the contact step.
func answerAll(t *testing.T, f *fixture, first, second uint) string {
	t.Helper()
	ctx := context.Background()

	view, err := f.svc.StartSession(ctx, "care-navigator", quiz.Attribution{UTMSource: "google", GCLID: "abc"})
	require.NoError(t, err)
	id := view.Session.ID

	_, err = f.svc.RecordAnswer(ctx, id, choose(1, first))
	require.NoError(t, err)
	_, err = f.svc.Next(ctx, id)
	require.NoError(t, err)
	_, err = f.svc.RecordAnswer(ctx, id, choose(2, second))
	require.NoError(t, err)
	view, err = f.svc.Next(ctx, id)
	require.NoError(t, err)
	require.Equal(t, quiz.StateAwaitingContact, view.Session.State)
	return id
}

func TestQuizService_GetQuizCachesDefinition(t *testing.T) {
	f := newFixture()

	for i := 0; i < 3; i++ {
		def, err := f.svc.GetQuiz(context.Background(), "care-navigator")
		require.NoError(t, err)
		assert.Equal(t, "Care Navigator", def.Title)
	}
	assert.Equal(t, 1, f.quizzes.calls)
}

func TestQuizService_GetQuizErrors(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetQuiz(context.Background(), "missing")
	assert.ErrorIs(t, err, util.ErrQuizNotFound)

	f.quizzes.err = errDown
	_, err = f.svc.GetQuiz(context.Background(), "other")
	var loadErr *quiz.DefinitionLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "other", loadErr.Slug)
	assert.ErrorIs(t, err, errDown)
}

func TestQuizService_StartSession(t *testing.T) {
	f := newFixture()

	view, err := f.svc.StartSession(context.Background(), "care-navigator", quiz.Attribution{})
	require.NoError(t, err)
	assert.NotEmpty(t, view.Session.ID)
	assert.Equal(t, quiz.StateInProgress, view.Session.State)
	assert.Equal(t, 2, view.TotalQuestions)
	assert.Equal(t, 50, view.Progress)
	require.NotNil(t, view.CurrentQuestion)
	assert.Equal(t, uint(1), view.CurrentQuestion.ID)

	stored, err := f.sessions.Get(context.Background(), view.Session.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, uint(7), stored.QuizID)
}

func TestQuizService_UnknownSession(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetSession(context.Background(), "nope")
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestQuizService_NextRequiresAnswer(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	view, err := f.svc.StartSession(ctx, "care-navigator", quiz.Attribution{})
	require.NoError(t, err)

	_, err = f.svc.Next(ctx, view.Session.ID)
	var vErr *quiz.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, uint(1), vErr.QuestionID)

	again, err := f.svc.GetSession(ctx, view.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Session.QuestionIndex)
}

func TestQuizService_RecordAnswerRejectsUnknownOption(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	view, err := f.svc.StartSession(ctx, "care-navigator", quiz.Attribution{})
	require.NoError(t, err)

	_, err = f.svc.RecordAnswer(ctx, view.Session.ID, choose(1, 99))
	assert.ErrorIs(t, err, quiz.ErrUnknownOption)
}

func TestQuizService_BackFromContactStep(t *testing.T) {
	f := newFixture()
	id := answerAll(t, f, 11, 21)

	view, err := f.svc.Back(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, quiz.StateInProgress, view.Session.State)
	assert.Equal(t, 1, view.Session.QuestionIndex)
	assert.Equal(t, 2, view.Session.Answers.Len())
}

func TestQuizService_Submit(t *testing.T) {
	f := newFixture()
	id := answerAll(t, f, 12, 22)

	res, err := f.svc.Submit(context.Background(), id, SubmitRequest{
		Contact: quiz.Contact{Email: "  jo@example.com ", Name: "Jo"},
	})
	require.NoError(t, err)

	assert.Equal(t, quiz.StateCompleted, res.Session.State)
	assert.Equal(t, "Memory Care", res.Outcome.Score.ResultCategory)
	assert.Equal(t, quiz.PathCategoryFeatured, res.Outcome.Recommendation.Path)
	require.Len(t, res.Outcome.Recommendation.Communities, 2)
	assert.Equal(t, "Aspen Grove", res.Outcome.Recommendation.Communities[0].Name)
	assert.Equal(t, "Cedar Point", res.Outcome.Recommendation.Communities[1].Name)

	require.Len(t, f.submissions.created, 1)
	sub := f.submissions.created[0]
	assert.Equal(t, res.SubmissionID, sub.ID)
	assert.Equal(t, uint(7), sub.QuizID)
	assert.Equal(t, "jo@example.com", sub.Email)
	assert.Equal(t, "Memory Care", sub.ResultCategory)
	assert.Equal(t, 20.0, sub.TotalScore)
	require.NotNil(t, sub.ScorePercent)
	assert.Equal(t, 100.0, *sub.ScorePercent)
	assert.Equal(t, "google", sub.UTMSource)
	assert.Equal(t, "abc", sub.GCLID)

	var answers []model.SubmittedAnswer
	require.NoError(t, json.Unmarshal(sub.Answers, &answers))
	assert.Len(t, answers, 2)

	_, err = f.svc.GetSession(context.Background(), id)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestQuizService_SubmitNeedsEmail(t *testing.T) {
	f := newFixture()
	id := answerAll(t, f, 11, 21)

	_, err := f.svc.Submit(context.Background(), id, SubmitRequest{Contact: quiz.Contact{Email: "   "}})
	assert.ErrorIs(t, err, quiz.ErrContactEmailRequired)

	view, err := f.svc.GetSession(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, quiz.StateAwaitingContact, view.Session.State)
	assert.Empty(t, f.submissions.created)
}

func TestQuizService_SubmitBeforeLastQuestion(t *testing.T) {
	f := newFixture()
	view, err := f.svc.StartSession(context.Background(), "care-navigator", quiz.Attribution{})
	require.NoError(t, err)

	_, err = f.svc.Submit(context.Background(), view.Session.ID, SubmitRequest{Contact: quiz.Contact{Email: "a@b.c"}})
	assert.ErrorIs(t, err, quiz.ErrInvalidTransition)
}

func TestQuizService_SubmitFailureKeepsSession(t *testing.T) {
	f := newFixture()
	id := answerAll(t, f, 11, 21)
	f.submissions.err = errDown

	_, err := f.svc.Submit(context.Background(), id, SubmitRequest{Contact: quiz.Contact{Email: "a@b.c"}})
	var subErr *quiz.SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.True(t, subErr.Retryable())

	view, err := f.svc.GetSession(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, quiz.StateFailed, view.Session.State)
	assert.Equal(t, 2, view.Session.Answers.Len())
	require.NotNil(t, view.Session.Contact)
	assert.Equal(t, "a@b.c", view.Session.Contact.Email)
	assert.NotEmpty(t, view.Session.LastError)

	f.submissions.err = nil
	res, err := f.svc.Submit(context.Background(), id, SubmitRequest{Contact: quiz.Contact{Email: "a@b.c"}})
	require.NoError(t, err)
	assert.Equal(t, "Independent Living", res.Outcome.Score.ResultCategory)
	assert.Equal(t, quiz.PathCategory, res.Outcome.Recommendation.Path)
	assert.Len(t, f.submissions.created, 1)
}

func TestQuizService_SubmitWithoutCatalog(t *testing.T) {
	f := newFixture()
	id := answerAll(t, f, 12, 22)
	f.communities.err = errDown

	res, err := f.svc.Submit(context.Background(), id, SubmitRequest{Contact: quiz.Contact{Email: "a@b.c"}})
	require.NoError(t, err)
	assert.Equal(t, quiz.PathNone, res.Outcome.Recommendation.Path)
	assert.Empty(t, res.Outcome.Recommendation.Communities)
	assert.Len(t, f.submissions.created, 1)
}

func TestQuizService_Preview(t *testing.T) {
	f := newFixture()

	out, err := f.svc.Preview(context.Background(), "care-navigator", []model.SubmittedAnswer{choose(1, 12), choose(2, 21)})
	require.NoError(t, err)
	require.NotNil(t, out.Score.ScorePercentage)
	assert.Equal(t, 50.0, *out.Score.ScorePercentage)
	assert.Equal(t, "Assisted Living", out.Score.ResultCategory)
	assert.Equal(t, quiz.PathCategory, out.Recommendation.Path)
	assert.Empty(t, f.submissions.created)

	_, err = f.svc.Preview(context.Background(), "care-navigator", []model.SubmittedAnswer{choose(9, 1)})
	assert.ErrorIs(t, err, quiz.ErrUnknownQuestion)
}

func TestQuizService_SubmitOnceWhenDiscardFails(t *testing.T) {
	f := newFixture()
	id := answerAll(t, f, 12, 22)
	f.sessions.deleteErr = errDown
	req := SubmitRequest{Contact: quiz.Contact{Email: "a@b.c"}}

	_, err := f.svc.Submit(context.Background(), id, req)
	require.NoError(t, err)

	view, err := f.svc.GetSession(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, quiz.StateCompleted, view.Session.State)

	_, err = f.svc.Submit(context.Background(), id, req)
	assert.ErrorIs(t, err, quiz.ErrInvalidTransition)
	assert.Len(t, f.submissions.created, 1)
}

func TestQuizService_ConcurrentSubmitStoresOnce(t *testing.T) {
	f := newFixture()
	id := answerAll(t, f, 11, 21)
	req := SubmitRequest{Contact: quiz.Contact{Email: "a@b.c"}}

	const attempts = 5
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Submit(context.Background(), id, req)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, quiz.ErrInvalidTransition) || errors.Is(err, util.ErrSessionNotFound), err)
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, f.submissions.created, 1)
}

func TestQuizService_SubmitRejectedWhileSubmitting(t *testing.T) {
	f := newFixture()
	id := answerAll(t, f, 11, 21)

	_, err := f.sessions.Update(context.Background(), id, func(s *quiz.Session) error {
		return s.BeginSubmit(quiz.Contact{Email: "a@b.c"}, quiz.Attribution{})
	})
	require.NoError(t, err)

	_, err = f.svc.Submit(context.Background(), id, SubmitRequest{Contact: quiz.Contact{Email: "a@b.c"}})
	assert.ErrorIs(t, err, quiz.ErrInvalidTransition)
	assert.Empty(t, f.submissions.created)
}
