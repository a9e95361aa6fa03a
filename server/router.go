package server

import (
	"log"

	"notekeeper/handler"
	"notekeeper/middleware"
	"notekeeper/usecase"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterOptions struct {
	Backend      string
	StaticDir    string
	MaxBodyBytes int64
	// Logger receives the per-request log lines; nil means log.Default().
	Logger *log.Logger
}

// SetupRouter wires middleware and routes around the notes service
func SetupRouter(notesService *usecase.NotesService, opts RouterOptions) *gin.Engine {
	router := gin.New()
	if gin.Mode() == gin.DebugMode {
		router.Use(gin.Logger())
	}

	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}

	// Order matters: the size limit wraps the body before the logger reads it,
	// and the error handler sits innermost so it sees the handler's errors.
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestSizeLimiter(opts.MaxBodyBytes))
	router.Use(middleware.RequestLogger(opts.Logger))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.ErrorHandler())

	notesHandler := handler.NewNotesHandler(notesService)
	healthHandler := handler.NewHealthHandler(notesService, opts.Backend)
	fallback := handler.NewFallbackHandler(opts.StaticDir)

	api := router.Group("/api")
	api.Use(middleware.NoStoreMiddleware())
	notesHandler.Register(api.Group("/notes"))

	router.GET("/", fallback.Root)
	router.GET("/health", healthHandler.GetHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.NoRoute(fallback.NoRoute)

	return router
}
