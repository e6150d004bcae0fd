package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mkrogh/studyplan/internal/config"
	"github.com/mkrogh/studyplan/internal/intelligence"
	"github.com/mkrogh/studyplan/internal/llm"
	"go.uber.org/zap"
)

// Server is the thin HTTP layer over the plan pipeline: a pass-through chat
// proxy plus plan generation and retrieval endpoints.
type Server struct {
	engine *gin.Engine
	plans  intelligence.PlanService
	chat   llm.ChatClient
	log    *zap.Logger
}

// New assembles the router. The chat client is shared with PlanService so
// the proxy and the pipeline hit the same provider with the same fixed
// model and temperature.
func New(cfg config.ServerConfig, plans intelligence.PlanService, chat llm.ChatClient, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(log))

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	engine.Use(cors.New(corsCfg))

	s := &Server{engine: engine, plans: plans, chat: chat, log: log}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/", s.handleHealth)

	api := s.engine.Group("/api")
	api.POST("/chat", s.handleChat)
	api.POST("/plan", s.handleGeneratePlan)
	api.GET("/plan/last", s.handleLastPlan)
	api.GET("/plan/last/weeks/:week/days", s.handleWeekDays)
}

// Handler returns the underlying http.Handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves HTTP on the given address until the listener fails.
func (s *Server) Run(addr string) error {
	s.log.Info("http server listening", zap.String("addr", addr))
	return s.engine.Run(addr)
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
