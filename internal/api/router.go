// Package api exposes the health services over HTTP with gin.
package api

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Skufu/healthlens/internal/auth"
	"github.com/Skufu/healthlens/internal/chat"
	"github.com/Skufu/healthlens/internal/contact"
	"github.com/Skufu/healthlens/internal/detect"
	"github.com/Skufu/healthlens/internal/gamification"
	"github.com/Skufu/healthlens/internal/logging"
	"github.com/Skufu/healthlens/internal/news"
)

const (
	jsonBodyLimit   = 1 << 20
	uploadBodyLimit = detect.MaxImages*detect.MaxImageSize + 1<<20
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type NewsSource interface {
	Latest(ctx context.Context) news.Feed
}

type Authenticator interface {
	Configured() bool
	SignUp(ctx context.Context, email, password string) (auth.Session, error)
	SignIn(ctx context.Context, email, password string) (auth.Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

// Deps are the services the router dispatches to. DB may be nil when the
// database is disabled; StaticRoot may be empty when no front end is bundled.
type Deps struct {
	Log          *zap.Logger
	DB           HealthChecker
	Analyzer     *detect.Analyzer
	Chat         *chat.Service
	Journeys     *gamification.Registry
	News         NewsSource
	Contact      *contact.Service
	Auth         Authenticator
	AllowOrigins []string
	StaticRoot   string
}

type handler struct {
	Deps
}

func NewRouter(d Deps) *gin.Engine {
	registerValidations()
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if len(d.AllowOrigins) == 0 {
		d.AllowOrigins = []string{"*"}
	}
	h := &handler{Deps: d}

	router := gin.New()
	router.Use(
		logging.Requests(d.Log),
		logging.Recover(d.Log),
		cors.New(cors.Config{
			AllowOrigins: d.AllowOrigins,
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:       12 * time.Hour,
		}),
	)

	if d.StaticRoot != "" {
		router.Static("/static", d.StaticRoot)
		router.StaticFile("/", filepath.Join(d.StaticRoot, "index.html"))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/readyz", h.ready)

	upload := router.Group("/api", limitBodySize(uploadBodyLimit))
	upload.POST("/detect", h.detectImages)

	api := router.Group("/api", limitBodySize(jsonBodyLimit))

	api.POST("/risk", h.assessRisk)
	api.GET("/diseases", h.listDiseases)
	api.GET("/diseases/:name", h.getDisease)

	api.POST("/chat/conversations", h.startConversation)
	api.GET("/chat/conversations/:id/messages", h.listMessages)
	api.POST("/chat/conversations/:id/messages", h.sendMessage)

	api.POST("/journeys", h.createJourney)
	api.GET("/journeys/:id", h.getJourney)
	api.GET("/journeys/:id/events", h.streamJourney)
	api.POST("/journeys/:id/points", h.addPoints)
	api.POST("/journeys/:id/visit", h.recordVisit)
	api.POST("/journeys/:id/achievements/:aid/progress", h.progressAchievement)
	api.POST("/journeys/:id/achievements/:aid/unlock", h.unlockAchievement)
	api.POST("/journeys/:id/challenges/:cid/complete", h.completeChallenge)

	api.GET("/news", h.listNews)
	api.GET("/tips", h.listTips)
	api.GET("/tips/:index", h.getTip)
	api.GET("/theme", h.getTheme)
	api.POST("/contact", h.submitContact)

	api.POST("/auth/signup", h.signUp)
	api.POST("/auth/signin", h.signIn)
	api.POST("/auth/signout", h.signOut)

	return router
}

func (h *handler) ready(c *gin.Context) {
	if h.DB == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "disabled"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.DB.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"db":     fmt.Sprintf("unhealthy: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "ok"})
}

func limitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
