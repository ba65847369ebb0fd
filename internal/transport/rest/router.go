package rest

import (
	"net/http"
	_ "patternquiz/docs"
	"patternquiz/internal/quiz"
	"patternquiz/internal/service"
	"patternquiz/internal/transport/rest/handler"
	"patternquiz/internal/transport/rest/middleware"
	"patternquiz/internal/transport/ws"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

// CORS holds the allowed cross-origin settings
type CORS struct {
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

// Container holds all dependencies for the router
type Container struct {
	AuthService   *service.AuthService
	QuizService   *service.QuizService
	ReportService *service.ReportService
	Catalog       *quiz.Catalog
	WSHub         *ws.Hub
	Gatherer      prometheus.Gatherer
	Logger        *zap.Logger
	CORS          CORS
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	quizHandler := handler.NewQuizHandler(c.QuizService)
	reportHandler := handler.NewReportHandler(c.QuizService, c.ReportService, c.Catalog)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, logger)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.CORS))
	r.Use(middleware.Logging(logger))

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/questions", quizHandler.Questions).Methods("GET", "OPTIONS")
	v1.HandleFunc("/sessions", quizHandler.Start).Methods("POST", "OPTIONS")
	v1.HandleFunc("/sessions/{id}/result", quizHandler.Result).Methods("GET", "OPTIONS")
	v1.HandleFunc("/sessions/{id}/report", reportHandler.Report).Methods("GET", "OPTIONS")
	v1.HandleFunc("/patterns", reportHandler.Patterns).Methods("GET", "OPTIONS")
	v1.HandleFunc("/patterns/{key}", reportHandler.Pattern).Methods("GET", "OPTIONS")

	// WebSocket routes (public with token in query param)
	v1.HandleFunc("/ws/sessions/{id}", wsHandler.SessionWS).Methods("GET")
	v1.HandleFunc("/ws/admin", wsHandler.AdminWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	if c.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(c.Gatherer, promhttp.HandlerOpts{})).Methods("GET")
	}

	r.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	}).Methods("GET")

	// Session routes (require a token for the same session)
	sessionRoutes := v1.NewRoute().Subrouter()
	sessionRoutes.Use(authMW.RequireSession)

	sessionRoutes.HandleFunc("/sessions/{id}", quizHandler.Get).Methods("GET", "OPTIONS")
	sessionRoutes.HandleFunc("/sessions/{id}/answers/{index}", quizHandler.Answer).Methods("PUT", "OPTIONS")
	sessionRoutes.HandleFunc("/sessions/{id}/preview", quizHandler.Preview).Methods("GET", "OPTIONS")
	sessionRoutes.HandleFunc("/sessions/{id}/complete", quizHandler.Complete).Methods("POST", "OPTIONS")

	// Admin routes (require admin auth)
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/stats", reportHandler.Stats).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/stats/recent", reportHandler.Recent).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(cfg CORS) mux.MiddlewareFunc {
	if cfg.AllowedOrigins == "" {
		cfg.AllowedOrigins = "*"
	}
	if cfg.AllowedMethods == "" {
		cfg.AllowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
	}
	if cfg.AllowedHeaders == "" {
		cfg.AllowedHeaders = "Content-Type, Authorization"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", cfg.AllowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
