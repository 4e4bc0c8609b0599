package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/skillsling/marketplace/docs"
	"github.com/skillsling/marketplace/internal/api/handler"
	"github.com/skillsling/marketplace/internal/api/middleware"
	"github.com/skillsling/marketplace/internal/core/domain"
	"github.com/skillsling/marketplace/internal/core/ports"
	"github.com/skillsling/marketplace/internal/core/service"
	"github.com/skillsling/marketplace/internal/infrastructure/http/handlers"
)

// Deps are the collaborators NewRouter wires together.
type Deps struct {
	Store ports.KVStore
	// StoreName labels the store in the readiness probe.
	StoreName    string
	DeviceSecret string
	Logger       zerolog.Logger
	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	Now        func() time.Time
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}
	if deps.StoreName == "" {
		deps.StoreName = "store"
	}
	log := deps.Logger

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "skillsling",
		Subsystem:  "http",
		Registerer: deps.Registerer,
	}))

	// --- Dependencies ---
	ids := service.NewIDGenerator(deps.Now)
	authService := service.NewAuthService(ids, deps.Now, log)
	listingService := service.NewListingService(ids, deps.Now, log)

	authHandler := handler.NewAuthHandler(authService)
	directoryHandler := handler.NewDirectoryHandler(listingService)
	pageHandler := handler.NewPageHandler()

	device := middleware.Device(deps.DeviceSecret, deps.Store, log)
	gate := middleware.Gate(service.NewNavigator(domain.Routes))

	// --- Auth routes ---
	e.GET(domain.PathAuth, authHandler.Screen, device, gate)
	e.POST("/auth/signup", authHandler.Signup, device)
	e.POST("/auth/signup/details", authHandler.SignupDetails, device)
	e.POST("/auth/signup/back", authHandler.SignupBack, device)
	e.POST("/auth/login", authHandler.Login, device)
	e.POST("/auth/logout", authHandler.Logout, device)

	// --- Screens (gated by role where the route table says so) ---
	e.GET(domain.PathRoot, pageHandler.Root, device, gate)
	e.GET(domain.PathProviders, directoryHandler.List, device, gate)
	e.GET(domain.PathProviderCreate, directoryHandler.CreateForm, device, gate)
	e.POST(domain.PathProviderCreate, directoryHandler.Create, device, gate)
	e.GET(domain.PathProviderDashboard, pageHandler.ProviderDashboard, device, gate)
	e.GET(domain.PathClientDashboard, pageHandler.ClientDashboard, device, gate)
	e.GET(domain.PathProfile, pageHandler.Profile, device, gate)
	e.GET(domain.PathSearch, pageHandler.Search, device, gate)

	// --- Health probes (no device required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(map[string]handlers.Pinger{
		deps.StoreName: deps.Store,
	})

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: is the store reachable?

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
