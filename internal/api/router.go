package api

import (
	"log/slog"
	"net/http"
	"time"

	_ "loan-offers/docs"
	"loan-offers/internal/api/handler"
	mw "loan-offers/internal/api/middleware"
	"loan-offers/internal/config"
	"loan-offers/internal/domain/customer"
	"loan-offers/internal/domain/loanoffer"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Dependencies are the collaborators the HTTP layer needs. RateLimiter and
// DB may be nil.
type Dependencies struct {
	CustomerService  customer.CustomerService
	LoanOfferService loanoffer.LoanOfferService
	RateLimiter      *mw.RateLimiterMiddleware
	DB               handler.Pinger
}

func SetupRouter(deps Dependencies, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, deps.RateLimiter, cfg, logger)
	router.NotFound(handler.RespondNotFound)
	router.MethodNotAllowed(handler.RespondMethodNotAllowed)

	setupMetricsEndpoint(router, cfg, logger)
	setupHealthRoutes(router, deps.DB, logger)
	setupAuthRoutes(router, cfg, logger)

	mountResources := func(r chi.Router) {
		setupCustomerRoutes(r, cfg, deps.CustomerService, logger)
		setupLoanOfferRoutes(r, cfg, deps.LoanOfferService, logger)
		setupCalculatorRoutes(r, cfg, logger)
	}
	mountResources(router)
	router.Route("/api/v1", mountResources)

	setupSwaggerEndpoint(router, logger)

	return router
}

func setupMiddleware(router *chi.Mux, rl *mw.RateLimiterMiddleware, cfg *config.Config, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	router.Use(mw.CORS(cfg.Server.CORS))
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	if rl != nil {
		router.Use(rl.Middleware)
	}
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupHealthRoutes(router *chi.Mux, db handler.Pinger, logger *slog.Logger) {
	h := handler.NewHealthHandler(db, logger)
	router.Get("/health", h.Health)
	router.Get("/ready", h.Ready)
}

func setupAuthRoutes(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	authHandler := handler.NewAuthHandler(cfg.Server.Auth, logger)
	router.Route("/auth", func(r chi.Router) {
		r.Post("/token", authHandler.GenerateBearerToken)
	})
}

func setupCustomerRoutes(r chi.Router, cfg *config.Config, svc customer.CustomerService, logger *slog.Logger) {
	h := handler.NewCustomerHandler(svc, logger)

	r.Route("/customers", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.CreateCustomer)
		r.Get("/{customerID:[0-9]+}", h.GetCustomer)
	})
}

func setupLoanOfferRoutes(r chi.Router, cfg *config.Config, svc loanoffer.LoanOfferService, logger *slog.Logger) {
	h := handler.NewLoanOfferHandler(svc, logger)

	r.Route("/loanoffers", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.CreateLoanOffer)
		r.Get("/{loanOfferID:[0-9]+}", h.GetLoanOffer)
	})
}

func setupCalculatorRoutes(r chi.Router, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewCalculatorHandler(logger)

	r.Group(func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/loan-calculator", h.CalculateMonthlyPayment)
	})
}
