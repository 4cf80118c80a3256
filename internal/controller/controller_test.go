package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"senior_living_backend/internal/config"
	"senior_living_backend/internal/model"
	"senior_living_backend/internal/quiz"
	"senior_living_backend/internal/service"
	"senior_living_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quizStore struct{ err error }

func (s *quizStore) FindBySlug(_ context.Context, slug string) (*model.Quiz, error) {
	if s.err != nil {
		return nil, s.err
	}
	if slug != "care-navigator" {
		return nil, util.ErrQuizNotFound
	}
	opt := func(id uint, score string) model.QuizAnswerOption {
		o := model.QuizAnswerOption{AnswerText: "a", Score: score}
		o.ID = id
		return o
	}
	q := model.QuizQuestion{QuestionText: "help?", QuestionType: model.QuestionMultipleChoice, Required: true,
		AnswerOptions: []model.QuizAnswerOption{opt(11, "0"), opt(12, "10")}}
	q.ID = 1
	def := &model.Quiz{
		Slug:      "care-navigator",
		Title:     "Care Navigator",
		Questions: []model.QuizQuestion{q},
		ResultTiers: []model.QuizResultTier{
			{Name: "Independent Living", MinScore: 0, MaxScore: 49},
			{Name: "Memory Care", MinScore: 50, MaxScore: 100},
		},
	}
	def.ID = 3
	return def, nil
}

type submissionStore struct{ err error }

func (s *submissionStore) Create(context.Context, *model.QuizSubmission) error { return s.err }

type sessionStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *sessionStore) Save(_ context.Context, s *quiz.Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[s.ID] = b
	return nil
}

func (m *sessionStore) Get(_ context.Context, id string) (*quiz.Session, error) {
	m.mu.Lock()
	b, ok := m.data[id]
	m.mu.Unlock()
	if !ok {
		return nil, nil
	}
	var s quiz.Session
	return &s, json.Unmarshal(b, &s)
}

func (m *sessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

func (m *sessionStore) Update(_ context.Context, id string, fn func(*quiz.Session) error) (*quiz.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[id]
	if !ok {
		return nil, nil
	}
	var s quiz.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	if err := fn(&s); err != nil {
		return nil, err
	}
	out, err := json.Marshal(&s)
	if err != nil {
		return nil, err
	}
	m.data[id] = out
	return &s, nil
}

type communityStore struct{}

func (communityStore) ListActive(context.Context) ([]model.Community, error) {
	return []model.Community{
		{Slug: "aspen-grove", Name: "Aspen Grove", City: "Denver", State: "CO", Active: true, Featured: true, CareTypes: model.StringList{"Memory Care"}},
		{Slug: "maple-court", Name: "Maple Court", City: "Boulder", State: "CO", Active: true, CareTypes: model.StringList{"Independent Living"}},
	}, nil
}

func (s communityStore) FindBySlug(ctx context.Context, slug string) (*model.Community, error) {
	cs, _ := s.ListActive(ctx)
	for i := range cs {
		if cs[i].Slug == slug {
			return &cs[i], nil
		}
	}
	return nil, util.ErrCommunityNotFound
}

type pageStore struct{}

func (pageStore) FindBySlug(_ context.Context, slug string) (*model.DynamicLandingPage, error) {
	if slug != "care-near-you" {
		return nil, util.ErrLandingPageNotFound
	}
	return &model.DynamicLandingPage{Slug: slug, TitleTemplate: "{careType} in {location}", DefaultCareType: "Senior Living", IsActive: true}, nil
}

func (pageStore) FindCareTypeBySlug(context.Context, string) (*model.CareType, error) { return nil, nil }

type harness struct {
	router      *gin.Engine
	quizzes     *quizStore
	submissions *submissionStore
}

var site = config.SiteConfig{ContactPhone: "555-0100", ContactEmail: "help@example.com"}

func newHarness() *harness {
	gin.SetMode(gin.TestMode)
	h := &harness{quizzes: &quizStore{}, submissions: &submissionStore{}}

	communities := service.NewCommunityService(communityStore{}, nil, quiz.NewRecommender(3))
	quizzes := service.NewQuizService(h.quizzes, h.submissions, &sessionStore{data: map[string][]byte{}}, communities, config.QuizConfig{})
	pages := service.NewLandingPageService(pageStore{}, communities)

	qc := NewQuizController(quizzes, site)
	cc := NewCommunityController(communities, site)
	lc := NewLandingPageController(pages, site)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/quizzes/:slug", qc.GetQuiz)
	api.POST("/quizzes/:slug/score", qc.Score)
	api.POST("/quizzes/:slug/sessions", qc.StartSession)
	api.GET("/quiz-sessions/:id", qc.GetSession)
	api.PUT("/quiz-sessions/:id/answers", qc.RecordAnswer)
	api.POST("/quiz-sessions/:id/next", qc.Next)
	api.POST("/quiz-sessions/:id/back", qc.Back)
	api.POST("/quiz-sessions/:id/submit", qc.Submit)
	api.GET("/communities/recommendations", cc.Recommendations)
	api.GET("/landing-pages/:slug", lc.GetLandingPage)
	h.router = r
	return h
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (h *harness) do(t *testing.T, method, path string, body interface{}) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func (h *harness) startSession(t *testing.T) string {
	t.Helper()
	code, env := h.do(t, http.MethodPost, "/api/quizzes/care-navigator/sessions?utm_source=google", nil)
	require.Equal(t, http.StatusCreated, code)
	var view struct {
		Session struct {
			ID          string           `json:"id"`
			Attribution quiz.Attribution `json:"attribution"`
		} `json:"session"`
		Progress int `json:"progress"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "google", view.Session.Attribution.UTMSource)
	assert.Equal(t, 100, view.Progress)
	return view.Session.ID
}

func choice(q, o uint) model.SubmittedAnswer {
	return model.SubmittedAnswer{QuestionID: q, AnswerOptionID: &o}
}

func TestQuizController_GetQuiz(t *testing.T) {
	h := newHarness()

	code, env := h.do(t, http.MethodGet, "/api/quizzes/care-navigator", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "Care Navigator")

	code, _ = h.do(t, http.MethodGet, "/api/quizzes/unknown", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestQuizController_DefinitionLoadFailure(t *testing.T) {
	h := newHarness()
	h.quizzes.err = errors.New("db down")

	code, env := h.do(t, http.MethodGet, "/api/quizzes/care-navigator", nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	var data map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "555-0100", data["contactPhone"])
	assert.Equal(t, "help@example.com", data["contactEmail"])
}

func TestQuizController_Score(t *testing.T) {
	h := newHarness()

	code, env := h.do(t, http.MethodPost, "/api/quizzes/care-navigator/score", ScoreRequest{
		Answers: []model.SubmittedAnswer{choice(1, 12)},
	})
	require.Equal(t, http.StatusOK, code)
	var out quiz.Outcome
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "Memory Care", out.Score.ResultCategory)
	require.Len(t, out.Recommendation.Communities, 1)
	assert.Equal(t, "Aspen Grove", out.Recommendation.Communities[0].Name)
}

func TestQuizController_Flow(t *testing.T) {
	h := newHarness()
	id := h.startSession(t)

	code, env := h.do(t, http.MethodPost, "/api/quiz-sessions/"+id+"/next", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, string(env.Data), `"questionId":1`)

	code, _ = h.do(t, http.MethodPost, "/api/quiz-sessions/"+id+"/submit", service.SubmitRequest{
		Contact: quiz.Contact{Email: "a@b.c"},
	})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = h.do(t, http.MethodPut, "/api/quiz-sessions/"+id+"/answers", choice(1, 99))
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, _ = h.do(t, http.MethodPut, "/api/quiz-sessions/"+id+"/answers", choice(1, 11))
	require.Equal(t, http.StatusOK, code)
	code, _ = h.do(t, http.MethodPost, "/api/quiz-sessions/"+id+"/next", nil)
	require.Equal(t, http.StatusOK, code)

	code, env = h.do(t, http.MethodPost, "/api/quiz-sessions/"+id+"/submit", service.SubmitRequest{})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, string(env.Data), "email")

	h.submissions.err = errors.New("timeout")
	code, env = h.do(t, http.MethodPost, "/api/quiz-sessions/"+id+"/submit", service.SubmitRequest{
		Contact: quiz.Contact{Email: "a@b.c"},
	})
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Contains(t, string(env.Data), `"retryable":true`)

	h.submissions.err = nil
	code, env = h.do(t, http.MethodPost, "/api/quiz-sessions/"+id+"/submit", service.SubmitRequest{
		Contact: quiz.Contact{Email: "a@b.c"},
	})
	require.Equal(t, http.StatusOK, code)
	var res service.SubmitResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "Independent Living", res.Outcome.Score.ResultCategory)
	assert.NotEmpty(t, res.SubmissionID)

	code, _ = h.do(t, http.MethodGet, "/api/quiz-sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCommunityController_Recommendations(t *testing.T) {
	h := newHarness()

	code, env := h.do(t, http.MethodGet, "/api/communities/recommendations?category=independent_living", nil)
	require.Equal(t, http.StatusOK, code)
	var rec quiz.Recommendation
	require.NoError(t, json.Unmarshal(env.Data, &rec))
	assert.Equal(t, quiz.PathCategory, rec.Path)
	require.Len(t, rec.Communities, 1)
	assert.Equal(t, "Maple Court", rec.Communities[0].Name)
}

func TestLandingPageController(t *testing.T) {
	h := newHarness()

	code, env := h.do(t, http.MethodGet, "/api/landing-pages/care-near-you?community=aspen-grove&careType=memory-care", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"title":"Memory Care in Denver, CO"`)

	code, _ = h.do(t, http.MethodGet, "/api/landing-pages/missing", nil)
	assert.Equal(t, http.StatusNotFound, code)
}
