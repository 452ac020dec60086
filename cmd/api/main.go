package main

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpadp "credit-risk-engine/internal/adapter/http"
	"credit-risk-engine/internal/adapter/middleware"
	mysqlrepo "credit-risk-engine/internal/adapter/repository/mysql"
	"credit-risk-engine/internal/config"
	"credit-risk-engine/internal/currency"
	"credit-risk-engine/internal/infrastructure/cache"
	"credit-risk-engine/internal/infrastructure/db"
	"credit-risk-engine/internal/scoring"
	analyticsUsecase "credit-risk-engine/internal/usecase/analytics"
	appUsecase "credit-risk-engine/internal/usecase/application"
	predUsecase "credit-risk-engine/internal/usecase/prediction"
)

func main() {
	_ = godotenv.Load()
	zerolog.TimeFieldFormat = time.RFC3339

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	// Schema migration runs once here, never lazily per request.
	if err := db.Migrate(gdb); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	conv, err := currency.NewConverter(cfg.CanonicalCurrency, cfg.DisplayCurrency, cfg.CurrencyRate)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid currency configuration")
	}

	model := scoring.NewModelClient(cfg.ModelURL, time.Duration(cfg.ModelTimeoutSec)*time.Second, log.Logger)
	var scorer scoring.Scorer = scoring.NewHeuristic()
	if cfg.ScoringStrategy == config.StrategyModel {
		scorer = model
	}
	log.Info().Str("strategy", cfg.ScoringStrategy).Msg("scoring strategy selected")

	appRepo := mysqlrepo.NewApplicationRepository(gdb)
	predRepo := mysqlrepo.NewPredictionRepository(gdb)

	appUC := appUsecase.NewUsecase(appRepo, scorer, conv, log.Logger)
	predUC := predUsecase.NewUsecase(predRepo, model, log.Logger)
	statsUC := analyticsUsecase.NewUsecase(appRepo, predRepo, conv)

	h := httpadp.NewHandler()
	appH := httpadp.NewApplicationHandler(appUC)
	statsH := httpadp.NewAnalyticsHandler(statsUC)
	predH := httpadp.NewPredictionHandler(predUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idemp := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	e.GET("/health", h.Health)

	e.POST("/applications", appH.SubmitApplication, idemp)
	e.GET("/applications", appH.ListApplications)
	e.GET("/applications/:application_id", appH.GetApplication)
	e.PATCH("/applications/:application_id", appH.UpdateStatus)

	e.GET("/dashboard/stats", statsH.DashboardStats)
	e.GET("/dashboard/analysis", statsH.Analysis)

	e.POST("/predictions", predH.Assess, idemp)
	e.GET("/predictions", predH.ListPredictions)
	e.GET("/predictions/stats", statsH.PredictionStats)
	e.GET("/predictions/:prediction_id", predH.GetPrediction)
	e.DELETE("/predictions/:prediction_id", predH.DeletePrediction)
	e.DELETE("/predictions", predH.ClearPredictions)

	addr := ":" + cfg.AppPort
	log.Info().Str("addr", addr).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
