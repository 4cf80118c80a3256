package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"senior_living_backend/internal/cache"
	"senior_living_backend/internal/config"
	"senior_living_backend/internal/model"
	"senior_living_backend/internal/quiz"
	"senior_living_backend/internal/util"
	"senior_living_backend/pkg/logger"
	"senior_living_backend/pkg/monitoring"
	"senior_living_backend/pkg/tracing"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type QuizStore interface {
	FindBySlug(ctx context.Context, slug string) (*model.Quiz, error)
}

type SubmissionStore interface {
	Create(ctx context.Context, s *model.QuizSubmission) error
}

type QuizService struct {
	Quizzes     QuizStore
	Submissions SubmissionStore
	Sessions    cache.SessionCache
	Communities *CommunityService
	definitions *expirable.LRU[string, *model.Quiz]
}

func NewQuizService(quizzes QuizStore, submissions SubmissionStore, sessions cache.SessionCache, communities *CommunityService, cfg config.QuizConfig) *QuizService {
	size := cfg.DefinitionCacheSize
	if size <= 0 {
		size = 64
	}
	return &QuizService{
		Quizzes:     quizzes,
		Submissions: submissions,
		Sessions:    sessions,
		Communities: communities,
		definitions: expirable.NewLRU[string, *model.Quiz](size, nil, cfg.DefinitionCacheTTL),
	}
}

// GetQuiz loads a quiz definition. The returned value is shared and must not
// be modified.
func (s *QuizService) GetQuiz(ctx context.Context, slug string) (*model.Quiz, error) {
	if def, ok := s.definitions.Get(slug); ok {
		return def, nil
	}

	def, err := s.Quizzes.FindBySlug(ctx, slug)
	if errors.Is(err, util.ErrQuizNotFound) {
		return nil, err
	}
	if err != nil {
		logger.Log.Error("quiz definition load failed", zap.String("slug", slug), zap.Error(err))
		return nil, &quiz.DefinitionLoadError{Slug: slug, Err: err}
	}
	if len(def.Questions) == 0 {
		return nil, &quiz.DefinitionLoadError{Slug: slug, Err: errors.New("quiz has no questions")}
	}

	for _, issue := range quiz.CheckTiers(def.ResultTiers) {
		logger.Log.Warn("quiz result tiers need attention",
			zap.String("slug", slug), zap.String("kind", issue.Kind), zap.String("detail", issue.Message))
	}

	s.definitions.Add(slug, def)
	return def, nil
}

// SessionView is what the quiz page renders for an in-flight session.
type SessionView struct {
	Session         *quiz.Session       `json:"session"`
	TotalQuestions  int                 `json:"totalQuestions"`
	Progress        int                 `json:"progress"`
	CurrentQuestion *model.QuizQuestion `json:"currentQuestion,omitempty"`
}

func newSessionView(sess *quiz.Session, def *model.Quiz) *SessionView {
	return &SessionView{
		Session:         sess,
		TotalQuestions:  len(def.Questions),
		Progress:        sess.Progress(def),
		CurrentQuestion: sess.CurrentQuestion(def),
	}
}

func (s *QuizService) StartSession(ctx context.Context, slug string, attribution quiz.Attribution) (*SessionView, error) {
	def, err := s.GetQuiz(ctx, slug)
	if err != nil {
		return nil, err
	}
	sess := quiz.NewSession(uuid.New().String(), def)
	sess.Attribution = attribution
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return newSessionView(sess, def), nil
}

func (s *QuizService) load(ctx context.Context, id string) (*quiz.Session, *model.Quiz, error) {
	sess, err := s.Sessions.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if sess == nil {
		return nil, nil, util.ErrSessionNotFound
	}
	def, err := s.GetQuiz(ctx, sess.QuizSlug)
	if err != nil {
		return nil, nil, err
	}
	return sess, def, nil
}

// apply runs one transition and stores the session only when it succeeded.
func (s *QuizService) apply(ctx context.Context, id string, step func(*quiz.Session, *model.Quiz) error) (*SessionView, error) {
	sess, def, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := step(sess, def); err != nil {
		return nil, err
	}
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return newSessionView(sess, def), nil
}

func (s *QuizService) GetSession(ctx context.Context, id string) (*SessionView, error) {
	sess, def, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return newSessionView(sess, def), nil
}

func (s *QuizService) RecordAnswer(ctx context.Context, id string, answer model.SubmittedAnswer) (*SessionView, error) {
	return s.apply(ctx, id, func(sess *quiz.Session, def *model.Quiz) error {
		return sess.Record(def, answer)
	})
}

func (s *QuizService) Next(ctx context.Context, id string) (*SessionView, error) {
	return s.apply(ctx, id, func(sess *quiz.Session, def *model.Quiz) error {
		return sess.Next(def)
	})
}

func (s *QuizService) Back(ctx context.Context, id string) (*SessionView, error) {
	return s.apply(ctx, id, func(sess *quiz.Session, def *model.Quiz) error {
		return sess.Back(def)
	})
}

type SubmitRequest struct {
	Contact     quiz.Contact      `json:"contact"`
	Attribution *quiz.Attribution `json:"attribution,omitempty"`
}

type SubmitResult struct {
	SubmissionID string        `json:"submissionId"`
	Session      *quiz.Session `json:"session"`
	Outcome      quiz.Outcome  `json:"outcome"`
}

// Submit scores a session that reached the contact step, writes the
// submission and discards the session. The session is claimed in the store
// as submitting before the write, so a concurrent or repeated request gets
// quiz.ErrInvalidTransition instead of storing the lead twice. A failed
// write leaves the session in the failed state with its answers, and
// returns a *quiz.SubmissionError.
func (s *QuizService) Submit(ctx context.Context, id string, req SubmitRequest) (*SubmitResult, error) {
	ctx, span := tracing.Tracer.Start(ctx, "QuizService.Submit", trace.WithAttributes(attribute.String("quiz.session_id", id)))
	defer span.End()

	_, def, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	sess, err := s.Sessions.Update(ctx, id, func(stored *quiz.Session) error {
		attribution := stored.Attribution
		if req.Attribution != nil {
			attribution = *req.Attribution
		}
		return stored.BeginSubmit(req.Contact, attribution)
	})
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, util.ErrSessionNotFound
	}

	score := quiz.Calculate(def, sess.Answers)
	outcome := quiz.Outcome{
		Score:         score,
		ResultTitle:   def.ResultTitle,
		ResultMessage: def.ResultMessage,
	}
	span.SetAttributes(attribute.String("quiz.slug", def.Slug), attribute.String("quiz.result_category", score.ResultCategory))

	submission, err := buildSubmission(def, sess, score)
	if err == nil {
		err = s.Submissions.Create(ctx, submission)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "submission write failed")
		monitoring.QuizSubmissionFailures.WithLabelValues(def.Slug).Inc()
		logger.Log.Error("quiz submission failed", zap.String("session", id), zap.Error(err))

		_ = sess.Fail(err)
		if saveErr := s.Sessions.Save(ctx, sess); saveErr != nil {
			logger.Log.Error("failed to keep quiz session after submission failure", zap.String("session", id), zap.Error(saveErr))
		}
		return nil, &quiz.SubmissionError{Err: err}
	}

	_ = sess.Complete()
	monitoring.QuizSubmissions.WithLabelValues(def.Slug, score.ResultCategory).Inc()
	logger.Log.Info("quiz submitted",
		zap.String("quiz", def.Slug),
		zap.String("submission", submission.ID),
		zap.String("category", score.ResultCategory))

	if err := s.Sessions.Delete(ctx, id); err != nil {
		logger.Log.Warn("failed to discard completed quiz session", zap.String("session", id), zap.Error(err))
		// 删除失败时保存已完成状态，阻止重复提交
		if saveErr := s.Sessions.Save(ctx, sess); saveErr != nil {
			logger.Log.Error("failed to mark quiz session completed", zap.String("session", id), zap.Error(saveErr))
		}
	}

	outcome.Recommendation = s.recommend(ctx, score.ResultCategory)
	return &SubmitResult{SubmissionID: submission.ID, Session: sess, Outcome: outcome}, nil
}

// recommend degrades to an empty list when the catalog cannot be read; the
// lead is already stored at that point.
func (s *QuizService) recommend(ctx context.Context, category string) quiz.Recommendation {
	rec, err := s.Communities.Recommend(ctx, category)
	if err != nil {
		logger.Log.Error("recommendations unavailable", zap.String("category", category), zap.Error(err))
		return quiz.Recommendation{Communities: []model.Community{}, Path: quiz.PathNone}
	}
	return rec
}

func buildSubmission(def *model.Quiz, sess *quiz.Session, score quiz.Score) (*model.QuizSubmission, error) {
	answers, err := json.Marshal(sess.Answers.Submitted())
	if err != nil {
		return nil, err
	}
	c := sess.Contact
	a := sess.Attribution
	return &model.QuizSubmission{
		UUIDBase:       model.UUIDBase{ID: model.GenerateUUID()},
		QuizID:         def.ID,
		SessionID:      sess.ID,
		Answers:        answers,
		TotalScore:     score.TotalScore,
		ScorePercent:   score.ScorePercentage,
		ResultCategory: score.ResultCategory,
		Email:          c.Email,
		Name:           strings.TrimSpace(c.Name),
		Phone:          strings.TrimSpace(c.Phone),
		ZipCode:        strings.TrimSpace(c.ZipCode),
		Timeline:       strings.TrimSpace(c.Timeline),
		UTMSource:      a.UTMSource,
		UTMMedium:      a.UTMMedium,
		UTMCampaign:    a.UTMCampaign,
		UTMTerm:        a.UTMTerm,
		UTMContent:     a.UTMContent,
		GCLID:          a.GCLID,
		LandingPage:    a.LandingPage,
		Referrer:       a.Referrer,
	}, nil
}

// Preview scores a complete answer list without a session and without
// writing anything.
func (s *QuizService) Preview(ctx context.Context, slug string, answers []model.SubmittedAnswer) (*quiz.Outcome, error) {
	def, err := s.GetQuiz(ctx, slug)
	if err != nil {
		return nil, err
	}
	set := quiz.NewAnswerSet()
	for _, sa := range answers {
		q, _, ok := def.Question(sa.QuestionID)
		if !ok {
			return nil, quiz.ErrUnknownQuestion
		}
		a, err := quiz.FromSubmitted(q, sa)
		if err != nil {
			return nil, err
		}
		set.Put(a)
	}

	score := quiz.Calculate(def, set)
	rec, err := s.Communities.Recommend(ctx, score.ResultCategory)
	if err != nil {
		return nil, err
	}
	return &quiz.Outcome{
		Score:          score,
		Recommendation: rec,
		ResultTitle:    def.ResultTitle,
		ResultMessage:  def.ResultMessage,
	}, nil
}
