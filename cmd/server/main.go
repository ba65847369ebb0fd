package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"patternquiz/internal/app"
	"patternquiz/internal/config"
	"patternquiz/internal/service"
	"patternquiz/internal/transport/rest"
	"patternquiz/internal/transport/ws"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// @title						Pattern Quiz API
// @version					1.0
// @description				Scores quiz answers into an emotional driver and pattern
// @BasePath					/v1
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	// Initialize WebSocket hub
	wsHub := ws.NewHub(logger.Named("ws"))
	defer wsHub.Close()

	// Initialize services
	authSvc := service.NewAuthService(cfg.AdminUsername, cfg.AdminPassword, cfg.JWTSecret, cfg.SessionTTL)
	quizSvc := service.NewQuizService(a.Engine, a.SessionRepo, a.SessionCache, a.StatsCache, authSvc, a.Metrics, logger.Named("quiz"))
	reportSvc := service.NewReportService(a.Engine, a.Catalog, cfg.ReportThresholds(), cfg.ShareBaseURL, a.SessionRepo, a.StatsCache, logger.Named("report"))

	// Inject broadcaster (wsHub implements service.Broadcaster)
	quizSvc.SetBroadcaster(wsHub)

	router := rest.NewRouter(&rest.Container{
		AuthService:   authSvc,
		QuizService:   quizSvc,
		ReportService: reportSvc,
		Catalog:       a.Catalog,
		WSHub:         wsHub,
		Gatherer:      a.Registry,
		Logger:        logger.Named("http"),
		CORS: rest.CORS{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: cfg.CORSAllowedMethods,
			AllowedHeaders: cfg.CORSAllowedHeaders,
		},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("bankVersion", a.Bank.Version()),
			zap.String("matcher", cfg.TieBreakMatcher),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server exited")
	return nil
}
