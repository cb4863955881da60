package delivery

import (
	"time"

	"campaigndash/internal/delivery/middleware"
	"campaigndash/pkg/logger"
	"campaigndash/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type RouterOptions struct {
	// empty allows every origin
	AllowedOrigins []string
	HandlerTimeout time.Duration
	Gatherer       prometheus.Gatherer
}

type HTTPRouter struct {
	handlers *HTTPHandlers
	logger   *logger.Logger
	metrics  *metrics.Metrics
	opts     RouterOptions
}

func NewHTTPRouter(handlers *HTTPHandlers, logger *logger.Logger, metrics *metrics.Metrics, opts RouterOptions) *HTTPRouter {
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	return &HTTPRouter{
		handlers: handlers,
		logger:   logger,
		metrics:  metrics,
		opts:     opts,
	}
}

func (r *HTTPRouter) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.Recovery(r.logger))
	router.Use(middleware.Metrics(r.metrics))
	router.Use(middleware.Timeout(r.opts.HandlerTimeout))

	config := cors.DefaultConfig()
	if len(r.opts.AllowedOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = r.opts.AllowedOrigins
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	config.AllowHeaders = []string{"Content-Type", middleware.RequestIDHeader}
	config.ExposeHeaders = []string{middleware.RequestIDHeader}

	router.Use(cors.New(config))
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// Health endpoint
	router.GET("/health", r.handlers.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/", r.handlers.GetAPIInfo)
		v1.GET("", r.handlers.GetAPIInfo)

		v1.GET("/upstream/health", r.handlers.UpstreamHealth)
		v1.POST("/roi", r.handlers.CalculateROI)

		// Client selection
		clients := v1.Group("/clients")
		{
			clients.GET("", r.handlers.GetClients)
			clients.POST("/refresh", r.handlers.RefreshClients)
			clients.PUT("/selected", r.handlers.SelectClient)
		}

		// Compare workflow
		compare := v1.Group("/compare")
		{
			compare.GET("", r.handlers.GetCompare)
			compare.PUT("/primary", r.handlers.SelectPrimary)
			compare.PUT("/comparison", r.handlers.SelectComparison)
			compare.POST("/analyze", r.handlers.AnalyzeCompare)
		}

		// Benchmark workflow
		benchmark := v1.Group("/benchmark")
		{
			benchmark.GET("", r.handlers.GetBenchmark)
			benchmark.PUT("/campaign", r.handlers.SelectBenchmarkCampaign)
			benchmark.POST("/analyze", r.handlers.AnalyzeBenchmark)
		}
	}

	// Prometheus metrics endpoint
	router.GET("/metrics", middleware.PrometheusHandler(r.opts.Gatherer))

	return router
}
