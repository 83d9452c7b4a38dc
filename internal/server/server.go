package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/emilythestrangee/stackit/backend/internal/config"
	"github.com/emilythestrangee/stackit/backend/internal/database"
	"github.com/emilythestrangee/stackit/backend/internal/drafts"
	"github.com/emilythestrangee/stackit/backend/internal/handlers"
	"github.com/emilythestrangee/stackit/backend/internal/logging"
	"github.com/emilythestrangee/stackit/backend/internal/metrics"
	"github.com/emilythestrangee/stackit/backend/internal/middleware"
	"github.com/emilythestrangee/stackit/backend/internal/store"
	"github.com/emilythestrangee/stackit/backend/internal/submission"
)

type Server struct {
	cfg     *config.Config
	logger  *slog.Logger
	db      database.Service
	metrics *metrics.Metrics
	drafts  *drafts.Store
	handler *handlers.Handler
}

// Options overrides pieces of the wiring, mostly for tests.
type Options struct {
	Logger    *slog.Logger
	Transport submission.RoundTripper
	Now       func() time.Time
}

// New wires the database, store, drafts and handlers from cfg.
func New(cfg *config.Config, opts Options) (*Server, error) {
	logger := logging.Resolve(opts.Logger)

	db, err := database.New(database.Options{Logger: logger, Seed: cfg.SeedMockData, Now: opts.Now})
	if err != nil {
		return nil, errors.Wrap(err, "initialize database")
	}

	m := metrics.New()
	transport := opts.Transport
	if transport == nil {
		transport = submission.NewSimulator(cfg.SubmitLatency, cfg.SubmitFailureRate, uint64(time.Now().UnixNano()))
	}

	draftStore := drafts.New(cfg.DraftTTL, cfg.DraftTTL/2, m)
	handler, err := handlers.NewHandler(handlers.Options{
		Store:       store.New(db.GetDB(), logger, m),
		Drafts:      draftStore,
		Submissions: submission.NewCoordinator(transport, logger, m),
		Now:         opts.Now,
	})
	if err != nil {
		draftStore.Close()
		_ = db.Close()
		return nil, err
	}

	return &Server{
		cfg:     cfg,
		logger:  logger,
		db:      db,
		metrics: m,
		drafts:  draftStore,
		handler: handler,
	}, nil
}

// HTTPServer returns the configured http.Server
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", s.cfg.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Close stops the draft sweep and releases the database.
func (s *Server) Close() error {
	s.drafts.Close()
	return s.db.Close()
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	gin.SetMode(s.cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(s.logger))

	// CORS configuration
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:  []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", middleware.HeaderViewer, middleware.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(s.cfg.CORSOrigins) == 0 || (len(s.cfg.CORSOrigins) == 1 && s.cfg.CORSOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = s.cfg.CORSOrigins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		stats := s.db.Health()
		status := http.StatusOK
		if stats["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, stats)
	})
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	api := r.Group("/api")
	api.Use(middleware.Viewer(s.cfg.JWTSecret, s.cfg.DefaultViewer))
	{
		api.GET("/questions", s.handler.Question.GetQuestions)
		api.POST("/questions", s.handler.Question.CreateQuestion)
		api.GET("/questions/:id", s.handler.Question.GetQuestion)
		api.POST("/questions/:id/vote", s.handler.Question.VoteQuestion)

		api.GET("/questions/:id/answers", s.handler.Answer.GetAnswers)
		api.POST("/questions/:id/answers", s.handler.Answer.CreateAnswer)
		api.POST("/answers/:answerId/vote", s.handler.Answer.VoteAnswer)
		api.POST("/answers/:answerId/accept", s.handler.Answer.AcceptAnswer)

		api.GET("/tags", s.handler.Tag.GetTags)

		api.GET("/drafts/:form", s.handler.Draft.GetDraft)
		api.PUT("/drafts/:form", s.handler.Draft.SaveDraft)
		api.DELETE("/drafts/:form", s.handler.Draft.DeleteDraft)
	}

	return r
}
