package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gito/internal/aladhan"
	"github.com/gito/internal/auth"
	"github.com/gito/internal/cache"
	"github.com/gito/internal/db"
	"github.com/gito/internal/handler"
	"github.com/gito/internal/service"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const e2eBaseURL = "http://gito.test"

// localClient drives the engine in-process and keeps cookies like a browser.
type localClient struct {
	handler http.Handler
	jar     http.CookieJar
}

func newLocalClient(t *testing.T, handler http.Handler) *localClient {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &localClient{handler: handler, jar: jar}
}

func (c *localClient) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, e2eBaseURL+path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range c.jar.Cookies(req.URL) {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	resp := w.Result()
	c.jar.SetCookies(req.URL, resp.Cookies())

	var out map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("%s %s: invalid json %q", method, path, w.Body.String())
		}
	}
	return resp.StatusCode, out
}

func TestE2EPlannerDay(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var upstreamCalls int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&upstreamCalls, 1)
		json.NewEncoder(w).Encode(aladhan.Response{
			Code:   200,
			Status: "OK",
			Data: aladhan.Data{Timings: aladhan.Timings{
				Fajr: "06:12 (+03)", Dhuhr: "13:05 (+03)", Asr: "16:14 (+03)", Maghrib: "18:44 (+03)", Isha: "20:08 (+03)",
			}},
		})
	}))
	defer upstream.Close()

	gdb, err := gorm.Open(sqlite.Open("file:e2e_planner?mode=memory&cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	defer db.Close(gdb)

	schedules := service.NewScheduleService(
		aladhan.NewClient(upstream.URL, time.Second, aladhan.MethodDiyanet),
		cache.NewMemoryStore(),
		service.ScheduleOptions{TTL: time.Hour, Method: aladhan.MethodDiyanet},
		zerolog.Nop(),
	)
	api := handler.NewAPI(gdb, schedules, auth.NewTokenManager("e2e-jwt", time.Hour), zerolog.Nop())
	engine := SetupRouter(api, Options{SessionSecret: "e2e-session", Logger: zerolog.Nop()})
	client := newLocalClient(t, engine)

	status, body := client.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"name": "Ayşe Yılmaz", "email": "ayse@gito.edu.tr", "password": "gito2026", "city": "Istanbul", "country": "Turkey",
	})
	if status != http.StatusCreated {
		t.Fatalf("register: %d %v", status, body)
	}

	today := time.Now().Format(db.DateLayout)

	status, body = client.do(t, http.MethodGet, "/api/prayers", nil)
	if status != http.StatusOK || body["source"] != "api" {
		t.Fatalf("first schedule lookup: %d %v", status, body["source"])
	}
	times := body["times"].(map[string]any)
	if times["Fajr"] != "06:12" || times["Isha"] != "20:08" {
		t.Fatalf("unexpected times %v", times)
	}
	status, body = client.do(t, http.MethodGet, "/api/prayers", nil)
	if status != http.StatusOK || body["source"] != "cache" {
		t.Fatalf("second lookup should hit cache: %d %v", status, body["source"])
	}
	if atomic.LoadInt32(&upstreamCalls) != 1 {
		t.Fatalf("expected one upstream call, got %d", upstreamCalls)
	}

	for _, task := range []map[string]any{
		{"title": "Matematik denemesi çöz", "prayer_block": "Fajr_Dhuhr", "date": today, "completed": true},
		{"title": "Fizik soruları çöz", "prayer_block": "Dhuhr_Asr", "date": today},
	} {
		if status, body = client.do(t, http.MethodPost, "/api/tasks", task); status != http.StatusCreated {
			t.Fatalf("create task: %d %v", status, body)
		}
	}
	for _, p := range []string{"Fajr", "Dhuhr"} {
		if status, body = client.do(t, http.MethodPost, "/api/prayers", map[string]any{"prayer": p, "date": today}); status != http.StatusOK {
			t.Fatalf("log prayer: %d %v", status, body)
		}
	}

	status, body = client.do(t, http.MethodGet, "/api/analytics", nil)
	if status != http.StatusOK {
		t.Fatalf("analytics: %d %v", status, body)
	}
	// tasks 1/2, prayers 2/150: 0.5*0.4 + 0.01333*0.6 = 0.208
	if body["baraka_score"] != float64(21) || body["peak_focus_block"] != "Fajr_Dhuhr" {
		t.Fatalf("unexpected analytics %v", body)
	}

	if status, _ = client.do(t, http.MethodPost, "/api/auth/logout", nil); status != http.StatusOK {
		t.Fatalf("logout: %d", status)
	}
	if status, _ = client.do(t, http.MethodGet, "/api/analytics", nil); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", status)
	}
}
