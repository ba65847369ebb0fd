package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"patternquiz/internal/cache"
	"patternquiz/internal/metrics"
	"patternquiz/internal/model"
	"patternquiz/internal/quiz"
	"patternquiz/internal/service"
	"patternquiz/internal/transport/ws"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySessionRepo struct {
	mu       sync.Mutex
	sessions map[string]model.Session
}

func (r *memorySessionRepo) Save(_ context.Context, s *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = *s
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

func (r *memorySessionRepo) ListCompleted(context.Context, int64) ([]*model.Session, error) {
	return nil, nil
}

func (r *memorySessionRepo) CountByPattern(context.Context) ([]model.PatternStat, error) {
	return nil, nil
}

type testAPI struct {
	server *httptest.Server
	auth   *service.AuthService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	reg := prometheus.NewRegistry()
	m := metrics.MustNewMetrics(reg)
	bank := quiz.MustDefaultBank()
	engine := quiz.NewEngine(bank, quiz.NewResolver(bank, quiz.WithFallbackRecorder(m)), quiz.ResultThresholds)
	catalog := quiz.NewCatalog()
	repo := &memorySessionRepo{sessions: make(map[string]model.Session)}
	sessions := cache.NewSessionCache(client, time.Hour)
	stats := cache.NewStatsCache(client)
	authSvc := service.NewAuthService("admin", "secret", "test-secret", time.Hour)

	quizSvc := service.NewQuizService(engine, repo, sessions, stats, authSvc, m, nil)
	reportSvc := service.NewReportService(engine, catalog, quiz.ReportThresholds, "https://example.test/r", repo, stats, nil)
	hub := ws.NewHub(nil)
	t.Cleanup(hub.Close)
	quizSvc.SetBroadcaster(hub)

	srv := httptest.NewServer(NewRouter(&Container{
		AuthService:   authSvc,
		QuizService:   quizSvc,
		ReportService: reportSvc,
		Catalog:       catalog,
		WSHub:         hub,
		Gatherer:      reg,
	}))
	t.Cleanup(srv.Close)
	return &testAPI{server: srv, auth: authSvc}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func (a *testAPI) start(t *testing.T) model.SessionStartResponse {
	t.Helper()
	status, body := a.do(t, http.MethodPost, "/v1/sessions", "", nil)
	require.Equal(t, http.StatusCreated, status, string(body))
	var resp model.SessionStartResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func answerPath(id string, index int) string {
	return fmt.Sprintf("/v1/sessions/%s/answers/%d", id, index)
}

func TestQuestionsHideTieBreakSignals(t *testing.T) {
	api := newTestAPI(t)
	status, body := api.do(t, http.MethodGet, "/v1/questions", "", nil)
	require.Equal(t, http.StatusOK, status)

	var resp struct {
		Version   string           `json:"version"`
		Scored    int              `json:"scored"`
		Questions []map[string]any `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, 47, resp.Scored)
	assert.Len(t, resp.Questions, 49)
	assert.NotContains(t, string(body), "overridesAs")
	assert.NotContains(t, string(body), `"signal"`)
}

func TestQuizFlow(t *testing.T) {
	api := newTestAPI(t)
	started := api.start(t)
	id, token := started.SessionID, started.Token

	status, _ := api.do(t, http.MethodPut, answerPath(id, 0), "", map[string]int{"option": 0})
	assert.Equal(t, http.StatusUnauthorized, status)

	other := api.start(t)
	status, _ = api.do(t, http.MethodPut, answerPath(id, 0), other.Token, map[string]int{"option": 0})
	assert.Equal(t, http.StatusForbidden, status)

	status, body := api.do(t, http.MethodPost, "/v1/sessions/"+id+"/complete", token, nil)
	assert.Equal(t, http.StatusConflict, status, string(body))

	for i := 0; i < 47; i++ {
		status, body = api.do(t, http.MethodPut, answerPath(id, i), token, map[string]int{"option": 0})
		require.Equal(t, http.StatusOK, status, string(body))
	}
	status, _ = api.do(t, http.MethodPut, answerPath(id, 47), token, map[string]string{"text": "2000-03-21"})
	require.Equal(t, http.StatusOK, status)

	status, body = api.do(t, http.MethodGet, "/v1/sessions/"+id+"/preview", token, nil)
	require.Equal(t, http.StatusOK, status)
	var progress model.Progress
	require.NoError(t, json.Unmarshal(body, &progress))
	assert.True(t, progress.Complete)

	status, body = api.do(t, http.MethodPost, "/v1/sessions/"+id+"/complete", token, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	var result model.Result
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, model.PatternFixer, result.DominantPattern)
	assert.Equal(t, model.DominanceMixed, result.DominanceLabel)

	status, body = api.do(t, http.MethodGet, "/v1/sessions/"+id+"/report", "", nil)
	require.Equal(t, http.StatusOK, status, string(body))
	var report model.Report
	require.NoError(t, json.Unmarshal(body, &report))
	assert.Equal(t, model.DominanceBalanced, report.ReportLabel)
	assert.Equal(t, "aries", report.Personalization.SunSign)
	assert.Equal(t, "https://example.test/r/"+id, report.Share.URL)

	status, _ = api.do(t, http.MethodPut, answerPath(id, 0), token, map[string]int{"option": 1})
	assert.Equal(t, http.StatusConflict, status)
}

func TestAnswerErrors(t *testing.T) {
	api := newTestAPI(t)
	started := api.start(t)

	tests := []struct {
		name   string
		path   string
		body   interface{}
		status int
	}{
		{"non numeric index", "/v1/sessions/" + started.SessionID + "/answers/x", map[string]int{"option": 0}, http.StatusBadRequest},
		{"question out of range", answerPath(started.SessionID, 99), map[string]int{"option": 0}, http.StatusBadRequest},
		{"option out of range", answerPath(started.SessionID, 1), map[string]int{"option": 7}, http.StatusBadRequest},
		{"bad body", answerPath(started.SessionID, 1), "nope", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := api.do(t, http.MethodPut, tt.path, started.Token, tt.body)
			assert.Equal(t, tt.status, status)
		})
	}

	status, _ := api.do(t, http.MethodGet, "/v1/sessions/missing/report", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = api.do(t, http.MethodGet, "/v1/sessions/"+started.SessionID+"/result", "", nil)
	assert.Equal(t, http.StatusConflict, status)
}

func TestPatternsAndAdminStats(t *testing.T) {
	api := newTestAPI(t)

	status, body := api.do(t, http.MethodGet, "/v1/patterns", "", nil)
	require.Equal(t, http.StatusOK, status)
	var profiles []model.PatternProfile
	require.NoError(t, json.Unmarshal(body, &profiles))
	assert.Len(t, profiles, 8)

	status, _ = api.do(t, http.MethodGet, "/v1/patterns/guarded-one", "", nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = api.do(t, http.MethodGet, "/v1/patterns/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = api.do(t, http.MethodGet, "/v1/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = api.do(t, http.MethodPost, "/v1/auth/login", "", model.LoginRequest{Username: "admin", Password: "secret"})
	require.Equal(t, http.StatusOK, status)
	var login model.LoginResponse
	require.NoError(t, json.Unmarshal(body, &login))

	status, body = api.do(t, http.MethodGet, "/v1/stats", login.Token, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	var stats model.Stats
	require.NoError(t, json.Unmarshal(body, &stats))
	assert.Zero(t, stats.Completed)

	status, body = api.do(t, http.MethodGet, "/v1/stats/recent?limit=5", login.Token, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.JSONEq(t, `[]`, string(body))
	status, _ = api.do(t, http.MethodGet, "/v1/stats/recent?limit=zero", login.Token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestOperationalEndpoints(t *testing.T) {
	api := newTestAPI(t)
	api.start(t)

	status, body := api.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	status, body = api.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "patternquiz_sessions_started_total 1")

	status, body = api.do(t, http.MethodGet, "/swagger/doc.json", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "Pattern Quiz API")

	status, _ = api.do(t, http.MethodOptions, "/v1/sessions", "", nil)
	assert.Equal(t, http.StatusOK, status)
}
