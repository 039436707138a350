package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/gito/internal/db"
	"github.com/gito/internal/logging"
	"github.com/gito/internal/service"
)

const sessionUserKey = "user_id"

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	City     string `json:"city"`
	Country  string `json:"country"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	Name    *string `json:"name"`
	City    *string `json:"city"`
	Country *string `json:"country"`
}

func userToPayload(user *db.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"city":       user.City,
		"country":    user.Country,
		"created_at": user.CreatedAt,
	}
}

// Register creates an account and signs the new user in.
func (a *API) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req, "Geçersiz istek") {
		return
	}

	user, err := a.users.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		City:     req.City,
		Country:  req.Country,
	})
	if err != nil {
		handleUserError(c, err)
		return
	}

	a.startSession(c, user, http.StatusCreated)
}

// Login verifies credentials, stores the session and returns a bearer token.
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req, "Geçersiz istek") {
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "E-posta ve şifre gerekli")
		return
	}

	user, err := a.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleUserError(c, err)
		return
	}

	a.startSession(c, user, http.StatusOK)
}

func (a *API) startSession(c *gin.Context, user *db.User, status int) {
	session := sessions.Default(c)
	session.Set(sessionUserKey, user.ID)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "Oturum kaydedilemedi")
		return
	}

	token, err := a.tokens.Issue(user.ID, user.Email)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Oturum kaydedilemedi")
		return
	}

	a.log.Info().Str("user_id", user.ID).Msg("user signed in")
	c.JSON(status, gin.H{
		"user":       userToPayload(user),
		"token":      token,
		"expires_in": a.tokens.TTLSeconds(),
	})
}

// Logout clears the session.
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "Oturum kapatılamadı")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Çıkış yapıldı"})
}

// Me returns the signed-in user.
func (a *API) Me(c *gin.Context) {
	user, err := a.users.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		handleUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userToPayload(user)})
}

// UpdateMe edits name, city and country.
func (a *API) UpdateMe(c *gin.Context) {
	var req profileRequest
	if !bindJSON(c, &req, "Geçersiz istek") {
		return
	}

	user, err := a.users.UpdateProfile(c.Request.Context(), currentUserID(c), service.ProfileInput{
		Name:    req.Name,
		City:    req.City,
		Country: req.Country,
	})
	if err != nil {
		handleUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userToPayload(user)})
}

// AuthRequired admits requests carrying a session or a valid bearer token.
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.identify(c) {
			respondError(c, http.StatusUnauthorized, "Yetkisiz erişim")
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth identifies the user when possible and never rejects.
func (a *API) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		a.identify(c)
		c.Next()
	}
}

func (a *API) identify(c *gin.Context) bool {
	session := sessions.Default(c)
	if id, ok := session.Get(sessionUserKey).(string); ok && id != "" {
		c.Set(logging.UserIDKey, id)
		return true
	}

	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return false
	}

	claims, err := a.tokens.Verify(strings.TrimSpace(token))
	if err != nil {
		return false
	}
	c.Set(logging.UserIDKey, claims.UserID)
	return true
}

func handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "E-posta veya şifre hatalı")
	case errors.Is(err, service.ErrEmailTaken):
		respondError(c, http.StatusConflict, "Bu e-posta zaten kayıtlı")
	case errors.Is(err, service.ErrInvalidUserInput):
		respondError(c, http.StatusBadRequest, "Eksik veya geçersiz bilgi")
	case errors.Is(err, service.ErrUserNotFound):
		respondError(c, http.StatusNotFound, "Kullanıcı bulunamadı")
	default:
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "İşlem başarısız")
	}
}
