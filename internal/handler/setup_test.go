package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gito/internal/auth"
	"github.com/gito/internal/cache"
	"github.com/gito/internal/db"
	"github.com/gito/internal/service"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fixedNow is 13:00 on 10 March 2026, between Dhuhr and Asr of the fallback schedule.
var fixedNow = time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)

type testServer struct {
	api    *API
	db     *gorm.DB
	engine *gin.Engine
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gdb, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() { db.Close(gdb) })

	schedules := service.NewScheduleService(nil, cache.NewMemoryStore(), service.ScheduleOptions{}, zerolog.Nop())
	api := NewAPI(gdb, schedules, auth.NewTokenManager("test-secret", time.Hour), zerolog.Nop()).
		WithClock(func() time.Time { return fixedNow })

	r := gin.New()
	r.Use(sessions.Sessions("gito_session", cookie.NewStore([]byte("test-session"))))
	r.Use(api.LocaleMiddleware())

	r.POST("/api/auth/register", api.Register)
	r.POST("/api/auth/login", api.Login)
	r.POST("/api/auth/logout", api.Logout)
	r.GET("/api/prayers", api.OptionalAuth(), api.GetPrayers)

	authed := r.Group("/api", api.AuthRequired())
	authed.GET("/auth/me", api.Me)
	authed.PUT("/auth/me", api.UpdateMe)
	authed.GET("/tasks", api.ListTasks)
	authed.GET("/tasks/:id", api.GetTask)
	authed.POST("/tasks", api.CreateTask)
	authed.PUT("/tasks/:id", api.UpdateTask)
	authed.DELETE("/tasks/:id", api.DeleteTask)
	authed.GET("/calendar", api.Calendar)
	authed.POST("/prayers", api.LogPrayer)
	authed.GET("/analytics", api.GetAnalytics)

	return &testServer{api: api, db: gdb, engine: r}
}

// signUp registers a user and returns a bearer token for it.
func (s *testServer) signUp(t *testing.T, email string) (string, *db.User) {
	t.Helper()
	user, err := s.api.users.Register(context.Background(), service.RegisterInput{
		Name:     "Ayşe",
		Email:    email,
		Password: "gito2026",
		City:     "Istanbul",
		Country:  "Turkey",
	})
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	token, err := s.api.tokens.Issue(user.ID, user.Email)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token, user
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, w.Code, w.Body.String())
	}
}

