package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jobtasks/dashboard/internal/adapters/auth"
	"github.com/jobtasks/dashboard/internal/application/state"
	"github.com/jobtasks/dashboard/internal/domain/entities"
	"github.com/jobtasks/dashboard/internal/infrastructure/config"
	"github.com/jobtasks/dashboard/internal/infrastructure/logger"
	"github.com/jobtasks/dashboard/internal/infrastructure/metrics"
	"github.com/jobtasks/dashboard/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		App:      config.AppConfig{Name: "dashboard", Version: "test"},
		Database: config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"},
		JWT:      config.JWTConfig{Secret: "test-secret", ExpiresIn: time.Hour, Issuer: "dashboard-test"},
		Security: config.SecurityConfig{CORSAllowedOrigins: "*"},
		Metrics:  config.MetricsConfig{Enabled: true},
	}
}

type fixture struct {
	srv    *Server
	tokens *auth.TokenService
	tasks  *testutil.TaskRepository
}

func newFixture(t *testing.T, cfg *config.Config, health func(context.Context) error) *fixture {
	t.Helper()

	log := logger.NewNop()
	m := metrics.New()
	tasks := testutil.NewTaskRepository()
	tokens := auth.NewTokenService(cfg.JWT)

	deps := Dependencies{
		Tokens:      tokens,
		Metrics:     m,
		HealthCheck: health,
	}
	if cfg.Database.Configured() == nil {
		deps.States = state.NewRegistry(tasks, testutil.NewDocumentRepository(), log, m)
	}

	return &fixture{srv: New(cfg, deps, log), tokens: tokens, tasks: tasks}
}

func (f *fixture) get(path string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	f.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func (f *fixture) bearer(t *testing.T, userID string) string {
	t.Helper()
	token, err := f.tokens.Issue(userID, userID+"@example.com")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	return "Bearer " + token
}

func TestHealth(t *testing.T) {
	f := newFixture(t, testConfig(), nil)
	if rec := f.get("/health"); rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestReadyWhenConfigured(t *testing.T) {
	f := newFixture(t, testConfig(), func(context.Context) error { return nil })

	rec := f.get("/ready")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, body %s", rec.Code, rec.Body)
	}
}

func TestReadyReportsMissingSettings(t *testing.T) {
	cfg := testConfig()
	cfg.JWT.Secret = ""
	cfg.Database.Path = ""
	f := newFixture(t, cfg, nil)

	rec := f.get("/ready")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Missing []string `json:"missing"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if strings.Join(body.Missing, ",") != "auth,database" {
		t.Errorf("missing = %v", body.Missing)
	}

	if rec := f.get("/api/v1/tasks"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("api while not configured: status = %d, want 503", rec.Code)
	}
}

func TestReadyReportsUnreachableDatabase(t *testing.T) {
	f := newFixture(t, testConfig(), func(context.Context) error { return errors.New("connection refused") })

	rec := f.get("/ready")
	if rec.Code != http.StatusServiceUnavailable || !strings.Contains(rec.Body.String(), "connection refused") {
		t.Errorf("status = %d, body %s", rec.Code, rec.Body)
	}
}

func TestAPIRequiresBearerToken(t *testing.T) {
	f := newFixture(t, testConfig(), nil)

	other := auth.NewTokenService(config.JWTConfig{Secret: "another-secret", ExpiresIn: time.Hour, Issuer: "dashboard-test"})
	forged, err := other.Issue("mallory", "")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		header []string
	}{
		{"no header", nil},
		{"wrong scheme", []string{"Authorization", "Token abc"}},
		{"garbage", []string{"Authorization", "Bearer not-a-jwt"}},
		{"foreign signature", []string{"Authorization", "Bearer " + forged}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := f.get("/api/v1/tasks", tt.header...); rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestAPIServesTheTokenSubject(t *testing.T) {
	f := newFixture(t, testConfig(), nil)
	f.tasks.Seed("alice", entities.Task{ID: "a1", Title: "Alice's"})
	f.tasks.Seed("bob", entities.Task{ID: "b1", Title: "Bob's"})

	rec := f.get("/api/v1/tasks", "Authorization", f.bearer(t, "alice"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var tasks []entities.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &tasks); err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || tasks[0].ID != "a1" {
		t.Errorf("alice sees %+v", tasks)
	}
}

func TestCalendarRouteNeedsASource(t *testing.T) {
	f := newFixture(t, testConfig(), nil)
	if rec := f.get("/api/v1/calendar/events", "Authorization", f.bearer(t, "alice")); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 without a calendar source", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t, testConfig(), nil)
	f.get("/api/v1/tasks", "Authorization", f.bearer(t, "alice"))
	f.get("/api/v1/tasks")

	body := f.get("/metrics").Body.String()
	for _, want := range []string{
		`http_requests_total{method="GET",path="/api/v1/tasks",status="200"} 1`,
		`http_requests_total{method="GET",path="/api/v1/tasks",status="401"} 1`,
		`store_round_trips_total{entity="task",operation="load",result="confirmed"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %s", want)
		}
	}
}
