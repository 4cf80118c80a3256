package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"senior_living_backend/internal/config"
	"senior_living_backend/internal/model"
	"senior_living_backend/internal/quiz"
	"senior_living_backend/internal/util"
)

type stubQuizStore struct {
	quizzes map[string]*model.Quiz
	err     error
	calls   int
}

func (s *stubQuizStore) FindBySlug(_ context.Context, slug string) (*model.Quiz, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	q, ok := s.quizzes[slug]
	if !ok {
		return nil, util.ErrQuizNotFound
	}
	return q, nil
}

type stubSubmissionStore struct {
	mu      sync.Mutex
	created []*model.QuizSubmission
	err     error
}

func (s *stubSubmissionStore) Create(_ context.Context, sub *model.QuizSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, sub)
	return nil
}

// memorySessions round-trips through JSON like the Redis cache does.
type memorySessions struct {
	mu        sync.Mutex
	data      map[string][]byte
	deleteErr error
}

func newMemorySessions() *memorySessions {
	return &memorySessions{data: map[string][]byte{}}
}

func (m *memorySessions) Save(_ context.Context, s *quiz.Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[s.ID] = b
	return nil
}

func (m *memorySessions) Get(_ context.Context, id string) (*quiz.Session, error) {
	m.mu.Lock()
	b, ok := m.data[id]
	m.mu.Unlock()
	if !ok {
		return nil, nil
	}
	var s quiz.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *memorySessions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.data, id)
	return nil
}

func (m *memorySessions) Update(_ context.Context, id string, fn func(*quiz.Session) error) (*quiz.Session, error) {
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

type stubCommunityStore struct {
	communities []model.Community
	err         error
	calls       int
}

func (s *stubCommunityStore) ListActive(context.Context) ([]model.Community, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	var out []model.Community
	for _, c := range s.communities {
		if c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubCommunityStore) FindBySlug(_ context.Context, slug string) (*model.Community, error) {
	for i := range s.communities {
		if s.communities[i].Slug == slug {
			return &s.communities[i], nil
		}
	}
	return nil, util.ErrCommunityNotFound
}

type memoryCatalog struct {
	list   []model.Community
	ok     bool
	getErr error
}

func (m *memoryCatalog) Get(context.Context) ([]model.Community, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	return m.list, m.ok, nil
}

func (m *memoryCatalog) Set(_ context.Context, cs []model.Community) error {
	m.list, m.ok = cs, true
	return nil
}

func (m *memoryCatalog) Invalidate(context.Context) error {
	m.list, m.ok = nil, false
	return nil
}

func (m *memoryCatalog) SetTTL(time.Duration) {}

var errDown = errors.New("connection refused")

// testQuiz has two required choice questions and tiers over the percentage.
func testQuiz() *model.Quiz {
	opt := func(id uint, score string) model.QuizAnswerOption {
		o := model.QuizAnswerOption{AnswerText: "a", Score: score}
		o.ID = id
		return o
	}
	q1 := model.QuizQuestion{QuestionText: "daily help", QuestionType: model.QuestionMultipleChoice, Required: true,
		AnswerOptions: []model.QuizAnswerOption{opt(11, "0"), opt(12, "10")}}
	q1.ID = 1
	q2 := model.QuizQuestion{QuestionText: "memory", QuestionType: model.QuestionMultipleChoice, Required: true,
		AnswerOptions: []model.QuizAnswerOption{opt(21, "0"), opt(22, "10")}}
	q2.ID = 2
	def := &model.Quiz{
		Slug:          "care-navigator",
		Title:         "Care Navigator",
		ResultTitle:   "Your results",
		ResultMessage: "We will be in touch",
		IsActive:      true,
		Questions:     []model.QuizQuestion{q1, q2},
		ResultTiers: []model.QuizResultTier{
			{Name: "Independent Living", MinScore: 0, MaxScore: 39},
			{Name: "Assisted Living", MinScore: 40, MaxScore: 69},
			{Name: "Memory Care", MinScore: 70, MaxScore: 100},
		},
	}
	def.ID = 7
	return def
}

func testCommunities() []model.Community {
	mk := func(id uint, slug, name string, featured bool, careTypes ...string) model.Community {
		c := model.Community{Slug: slug, Name: name, City: "Denver", State: "CO", Featured: featured, Active: true, CareTypes: careTypes}
		c.ID = id
		return c
	}
	return []model.Community{
		mk(1, "aspen-grove", "Aspen Grove", true, "Memory Care"),
		mk(2, "cedar-point", "Cedar Point", true, "memory care", "Assisted Living"),
		mk(3, "birch-hill", "Birch Hill", false, "Memory Care"),
		mk(4, "maple-court", "Maple Court", true, "Independent Living"),
	}
}

type fixture struct {
	quizzes     *stubQuizStore
	submissions *stubSubmissionStore
	sessions    *memorySessions
	communities *stubCommunityStore
	svc         *QuizService
}

func newFixture() *fixture {
	f := &fixture{
		quizzes:     &stubQuizStore{quizzes: map[string]*model.Quiz{"care-navigator": testQuiz()}},
		submissions: &stubSubmissionStore{},
		sessions:    newMemorySessions(),
		communities: &stubCommunityStore{communities: testCommunities()},
	}
	cs := NewCommunityService(f.communities, nil, quiz.NewRecommender(3))
	f.svc = NewQuizService(f.quizzes, f.submissions, f.sessions, cs, config.QuizConfig{DefinitionCacheSize: 8})
	return f
}
