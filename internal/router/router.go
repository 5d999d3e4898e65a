package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/careops/hospital-api/internal/handler"
	"github.com/careops/hospital-api/internal/middleware"
	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/realtime"
)

// Handler registers a set of routes on a router group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine         *gin.Engine
	auth           *middleware.AuthMiddleware
	authH          Handler
	appointmentH   Handler
	patientH       Handler
	doctorH        Handler
	medicalRecordH Handler
	prescriptionH  Handler
	intermentH     Handler
	gateway        *realtime.Gateway
	h              *handler.Handler
	metrics        *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

type Config struct {
	RateLimit  float64
	RateBurst  int
	CORSConfig middleware.CORSConfig
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH Handler,
	appointmentH Handler,
	patientH Handler,
	doctorH Handler,
	medicalRecordH Handler,
	prescriptionH Handler,
	intermentH Handler,
	gateway *realtime.Gateway,
	h *handler.Handler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	r := &Router{
		engine:         engine,
		auth:           auth,
		authH:          authH,
		appointmentH:   appointmentH,
		patientH:       patientH,
		doctorH:        doctorH,
		medicalRecordH: medicalRecordH,
		prescriptionH:  prescriptionH,
		intermentH:     intermentH,
		gateway:        gateway,
		h:              h,
		metrics:        initRouterMetrics(),
	}

	engine.Use(
		gin.Recovery(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.RequestID(),
	)

	engine.Use(middleware.CORS(config.CORSConfig))

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:   config.RateLimit,
		Burst: config.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.setupHealthCheck(api)

	// Public routes. The realtime endpoint stays outside the auth
	// group because browsers cannot attach headers to the upgrade
	// request.
	r.authH.RegisterRoutes(api)
	r.gateway.RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(
		r.auth.Authenticate(),
		// Destructive operations are reserved for administrators.
		r.auth.RequireRoleFor(http.MethodDelete, model.RoleAdmin),
	)
	r.setupProtectedRoutes(protected)
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	health := rg.Group("/health")
	{
		health.GET("/live", r.h.LivenessCheck)
		health.GET("/ready", r.h.ReadinessCheck)
		health.GET("/metrics", r.h.MetricsHandler)
	}
}

func (r *Router) setupProtectedRoutes(rg *gin.RouterGroup) {
	r.appointmentH.RegisterRoutes(rg)
	r.patientH.RegisterRoutes(rg)
	r.doctorH.RegisterRoutes(rg)
	r.medicalRecordH.RegisterRoutes(rg)
	r.prescriptionH.RegisterRoutes(rg)
	r.intermentH.RegisterRoutes(rg)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics() *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
