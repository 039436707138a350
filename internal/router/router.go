package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gito/internal/handler"
	"github.com/gito/internal/logging"
	"github.com/rs/zerolog"
)

const sessionName = "gito_session"

// Options configures SetupRouter.
type Options struct {
	SessionSecret string
	// CORSOrigins lists allowed origins; empty allows any origin without credentials.
	CORSOrigins []string
	Logger      zerolog.Logger
}

// SetupRouter wires middleware and routes onto a new gin engine.
func SetupRouter(api *handler.API, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.Middleware(opts.Logger))
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))

	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int((30 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(api.LocaleMiddleware())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	apiGroup := r.Group("/api")
	{
		authGroup := apiGroup.Group("/auth")
		authGroup.POST("/register", api.Register)
		authGroup.POST("/login", api.Login)
		authGroup.POST("/logout", api.Logout)

		apiGroup.GET("/prayers", api.OptionalAuth(), api.GetPrayers)

		// routes below require a session or bearer token
		protected := apiGroup.Group("")
		protected.Use(api.AuthRequired())
		{
			protected.GET("/auth/me", api.Me)
			protected.PUT("/auth/me", api.UpdateMe)

			protected.GET("/tasks", api.ListTasks)
			protected.GET("/tasks/:id", api.GetTask)
			protected.POST("/tasks", api.CreateTask)
			protected.PUT("/tasks/:id", api.UpdateTask)
			protected.DELETE("/tasks/:id", api.DeleteTask)

			protected.GET("/calendar", api.Calendar)
			protected.POST("/prayers", api.LogPrayer)
			protected.GET("/analytics", api.GetAnalytics)
		}
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Accept", "Accept-Language"},
		ExposeHeaders: []string{"Content-Length", "Content-Language"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowOriginFunc = func(string) bool { return true }
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
