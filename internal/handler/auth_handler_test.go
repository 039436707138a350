package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRegisterReturnsTokenAndRejectsDuplicates(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Ayşe",
		"email":    "ayse@gito.edu.tr",
		"password": "gito2026",
		"city":     "Istanbul",
	})
	expectStatus(t, w, http.StatusCreated)

	body := decodeBody(t, w)
	if body["token"] == "" || body["token"] == nil {
		t.Fatalf("expected token in response: %v", body)
	}
	user := body["user"].(map[string]any)
	if _, leaked := user["password"]; leaked {
		t.Fatal("password hash must not be returned")
	}

	w = s.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Başka",
		"email":    "AYSE@gito.edu.tr",
		"password": "another1",
	})
	expectStatus(t, w, http.StatusConflict)
}

func TestLoginSessionFlow(t *testing.T) {
	s := setupTestServer(t)
	s.signUp(t, "login@gito.edu.tr")

	w := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "login@gito.edu.tr", "password": "wrong"})
	expectStatus(t, w, http.StatusUnauthorized)
	if decodeBody(t, w)["error"] != "E-posta veya şifre hatalı" {
		t.Fatalf("unexpected error message: %s", w.Body.String())
	}

	w = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "login@gito.edu.tr", "password": "gito2026"})
	expectStatus(t, w, http.StatusOK)
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected session cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	me := httptest.NewRecorder()
	s.engine.ServeHTTP(me, req)
	expectStatus(t, me, http.StatusOK)

	user := decodeBody(t, me)["user"].(map[string]any)
	if user["email"] != "login@gito.edu.tr" {
		t.Fatalf("unexpected user %v", user)
	}
}

func TestAuthRequiredRejectsAnonymousAndBadTokens(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodGet, "/api/tasks", "", nil)
	expectStatus(t, w, http.StatusUnauthorized)
	if decodeBody(t, w)["error"] != "Yetkisiz erişim" {
		t.Fatalf("unexpected body %s", w.Body.String())
	}

	w = s.do(t, http.MethodGet, "/api/tasks", "forged.token.value", nil)
	expectStatus(t, w, http.StatusUnauthorized)
}

func TestUpdateMeChangesCity(t *testing.T) {
	s := setupTestServer(t)
	token, _ := s.signUp(t, "profile@gito.edu.tr")

	w := s.do(t, http.MethodPut, "/api/auth/me", token, map[string]any{"city": "Konya"})
	expectStatus(t, w, http.StatusOK)

	user := decodeBody(t, w)["user"].(map[string]any)
	if user["city"] != "Konya" || user["name"] != "Ayşe" {
		t.Fatalf("unexpected user %v", user)
	}
}
