package server

import (
	"time"

	"emailogan/internal/auth"
	"emailogan/internal/cache"
	"emailogan/internal/config"
	"emailogan/internal/handlers"
	"emailogan/internal/openai"
	"emailogan/internal/rag"
	"emailogan/internal/vectorstore"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Server represents the application server
type Server struct {
	echo     *echo.Echo
	config   *config.Config
	logger   zerolog.Logger
	authMgr  *auth.Manager
	ai       *openai.Client
	store    *vectorstore.Store
	listings *cache.ListingCache
}

// New creates a new server instance
func New(cfg *config.Config, ai *openai.Client, store *vectorstore.Store, authMgr *auth.Manager, logger zerolog.Logger) *Server {
	return &Server{
		config:   cfg,
		logger:   logger,
		authMgr:  authMgr,
		ai:       ai,
		store:    store,
		listings: cache.New(),
	}
}

// zerologMiddleware creates a zerolog-based logging middleware for Echo
func (s *Server) zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			res := c.Response()

			s.logger.Info().
				Str("method", req.Method).
				Str("uri", req.RequestURI).
				Str("remote_ip", c.RealIP()).
				Int("status", res.Status).
				Int64("latency_ms", time.Since(start).Milliseconds()).
				Str("user_agent", req.UserAgent()).
				Msg("HTTP request")

			return err
		}
	}
}

// Initialize sets up the Echo framework with middleware and routes
func (s *Server) Initialize() {
	s.echo = echo.New()

	// Middleware
	s.echo.Use(s.zerologMiddleware())
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORS())

	// Hide Echo banner
	s.echo.HideBanner = true

	// Setup routes
	s.setupRoutes()
}

// setupRoutes configures all the application routes
func (s *Server) setupRoutes() {
	builder := rag.NewContextBuilder(s.ai, s.store, s.logger)
	generator := rag.NewGenerator(s.ai, s.logger)

	// Swagger documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// Health endpoints (keep at root level for monitoring)
	s.echo.GET("/healthz", handlers.HealthHandler(s.config.Version))
	s.echo.GET("/healthz/vector", handlers.VectorHealthHandler(s.store))

	// API group with /api prefix
	api := s.echo.Group("/api")
	api.GET("/", handlers.RootHandler(s.config.Version))
	api.POST("/auth/login", handlers.LoginHandler(s.authMgr))

	// Everything below requires a valid session token
	protected := api.Group("", auth.Middleware(s.authMgr))
	protected.GET("/auth/verify", handlers.VerifyHandler())
	protected.POST("/emails/upload", handlers.UploadEmailHandler())
	protected.POST("/emails/process", handlers.ProcessEmailsHandler(s.ai))
	protected.POST("/vectors/store", handlers.StoreVectorsHandler(s.store, s.listings))
	protected.POST("/vectors/search", handlers.SearchVectorsHandler(s.store, s.ai))
	protected.GET("/vectors/list", handlers.ListVectorsHandler(s.store, s.listings))
	protected.DELETE("/vectors/clear", handlers.ClearVectorsHandler(s.store, s.listings))
	protected.POST("/generate/response", handlers.GenerateResponseHandler(builder, generator))
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info().Str("port", s.config.Port).Msg("Server starting")
	return s.echo.Start(":" + s.config.Port)
}
