// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, centralized error rendering, panic
// recovery, compression, metrics, CORS, security headers, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → errors → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/modaselfie/go-mirror-backend/internal/apperr"
	"github.com/modaselfie/go-mirror-backend/internal/config"
	"github.com/modaselfie/go-mirror-backend/internal/http/handlers"
	"github.com/modaselfie/go-mirror-backend/internal/http/middleware"
	"github.com/modaselfie/go-mirror-backend/internal/httpclient"
	"github.com/modaselfie/go-mirror-backend/internal/services"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting,
// CORS and security headers, health and metrics endpoints, and then mounts
// the public API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured request logs
//  4. Response compression: must wrap the error handler, whose envelope is
//     written on unwind and has to go through the still-open gzip writer
//  5. ErrorHandler: render every forwarded failure as one envelope
//  6. Recovery: capture panics and feed them to the error handler
//  7. Body size limiter
//  8. Metrics
//  9. Rate limiter (per client IP)
//  10. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured request logging
	r.Use(middleware.Logger())

	// 4) Response compression. Registered before the error handler: the gzip
	// writer closes when this middleware unwinds, so anything writing later
	// in the unwind (the failure envelope) would be discarded.
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 5) Centralized failure rendering; registered before Recovery so panics
	// recovered downstream still pass through it on unwind.
	r.Use(middleware.ErrorHandler(cfg.Env))

	// 6) Panic recovery to a forwarded 500
	r.Use(middleware.Recovery())

	// 7) Global body size limit: the upload cap plus slack for the other
	// multipart parts and boundaries.
	r.Use(limitBody(cfg.MaxUploadBytes + 64<<10))

	// 8) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 9) Token-bucket rate limiter per client IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP())
	r.Use(rl.Handler())

	// 10) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Forward(c, apperr.NotFound("API endpoint bulunamadı"))
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Forward(c, apperr.New("Bu endpoint için desteklenmeyen metot.", http.StatusMethodNotAllowed))
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Dependency injection: handlers ← services ← upstream client/db
	upstream := httpclient.New(httpclient.Options{
		Timeout:          cfg.Weather.Timeout,
		MaxAttempts:      cfg.Upstream.MaxAttempts,
		BaseDelay:        cfg.Upstream.BaseDelay,
		Logger:           log.With().Str("component", "httpclient").Logger(),
		OnAttemptFailure: middleware.CountUpstreamRetry,
	})

	weatherSvc := &services.WeatherService{Client: upstream, Cfg: cfg.Weather}
	productSvc := &services.ProductService{DB: db}
	recommendSvc := &services.RecommendationService{
		Analyzer: services.NewRandomAnalyzer(),
		Products: productSvc,
	}

	h := handlers.New(weatherSvc, productSvc, recommendSvc, cfg.MaxUploadBytes)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.GET("/weather", h.GetWeather)
		api.GET("/products", h.SearchProducts)
		api.POST("/analyze", h.AnalyzePhoto)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
