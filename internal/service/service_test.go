package service

import (
	"context"
	"patternquiz/internal/cache"
	"patternquiz/internal/metrics"
	"patternquiz/internal/model"
	"patternquiz/internal/quiz"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// memorySessionRepo is an in-memory repository.SessionRepo
type memorySessionRepo struct {
	mu       sync.Mutex
	sessions map[string]model.Session
	patterns []model.PatternStat
	saveErr  error
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{sessions: make(map[string]model.Session)}
}

func (r *memorySessionRepo) Save(_ context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.sessions[session.ID] = *session
	return nil
}

func (r *memorySessionRepo) GetByID(_ context.Context, id string) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *memorySessionRepo) ListCompleted(_ context.Context, _ int64) ([]*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Session
	for _, s := range r.sessions {
		if s.Completed {
			s := s
			out = append(out, &s)
		}
	}
	return out, nil
}

func (r *memorySessionRepo) CountByPattern(_ context.Context) ([]model.PatternStat, error) {
	return r.patterns, nil
}

type broadcastEvent struct {
	target  string
	msgType string
	payload interface{}
}

// recordingBroadcaster captures broadcasts in order
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []broadcastEvent
}

func (b *recordingBroadcaster) BroadcastToSession(sessionID, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, broadcastEvent{target: sessionID, msgType: msgType, payload: payload})
}

func (b *recordingBroadcaster) BroadcastToAdmins(msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, broadcastEvent{target: "admins", msgType: msgType, payload: payload})
}

func (b *recordingBroadcaster) DisconnectSession(string) {}

func (b *recordingBroadcaster) types(target string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for _, e := range b.events {
		if e.target == target {
			out = append(out, e.msgType)
		}
	}
	return out
}

type fixture struct {
	mr          *miniredis.Miniredis
	engine      *quiz.Engine
	repo        *memorySessionRepo
	cache       cache.SessionCache
	stats       cache.StatsCache
	auth        *AuthService
	quiz        *QuizService
	reports     *ReportService
	broadcaster *recordingBroadcaster
}

var fixedNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	bank := quiz.MustDefaultBank()
	engine := quiz.NewEngine(bank, quiz.NewResolver(bank), quiz.ResultThresholds)
	f := &fixture{
		mr:          mr,
		engine:      engine,
		repo:        newMemorySessionRepo(),
		cache:       cache.NewSessionCache(client, time.Hour),
		stats:       cache.NewStatsCache(client),
		auth:        NewAuthService("admin", "secret", "test-secret", time.Hour),
		broadcaster: &recordingBroadcaster{},
	}
	m := metrics.MustNewMetrics(prometheus.NewRegistry())
	f.quiz = NewQuizService(engine, f.repo, f.cache, f.stats, f.auth, m, nil)
	f.quiz.now = func() time.Time { return fixedNow }
	f.quiz.SetBroadcaster(f.broadcaster)
	f.reports = NewReportService(engine, quiz.NewCatalog(), quiz.ReportThresholds, "https://example.test/results/", f.repo, f.stats, nil)
	f.reports.now = func() time.Time { return fixedNow }
	return f
}

func option(i int) model.AnswerRequest {
	return model.AnswerRequest{Option: &i}
}

// answerAll answers every scored question with the first option
func (f *fixture) answerAll(t *testing.T, sessionID string) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < f.engine.Bank().ScoredCount(); i++ {
		_, err := f.quiz.Answer(ctx, sessionID, i, option(0))
		require.NoError(t, err)
	}
}
