package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/citygrid/appeals-service/internal/config"
	"github.com/citygrid/appeals-service/internal/infra/database"
	"github.com/citygrid/appeals-service/internal/infra/repository"
	"github.com/citygrid/appeals-service/internal/infra/telemetry"
	"github.com/citygrid/appeals-service/internal/present/rest"
	authmiddleware "github.com/citygrid/appeals-service/internal/present/rest/middleware"
	"github.com/citygrid/appeals-service/internal/service"
	"github.com/citygrid/appeals-service/internal/usecase"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	var configPath string
	flag.StringVar(&configPath, "c", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	if cfg.Server.EnableTrace {
		shutdown, err := telemetry.Setup(ctx, cfg.Server.TraceEndpoint)
		if err != nil {
			slog.Error("failed to setup telemetry", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer shutdown(ctx)
	}

	db, err := database.NewPostgres(cfg.Server.PostgresDsn)
	if err != nil {
		slog.Error("failed to connect database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := database.MigratePostgres(db); err != nil {
		slog.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rdb := database.NewRedis(cfg.Server.RedisAddr, cfg.Server.RedisPassword, cfg.Server.RedisDB)
	mc := database.NewMemcached(cfg.Server.MemcachedAddr)

	appealRepo := repository.NewAppealRepository(db)
	referenceRepo := repository.NewReferenceRepository(db)
	authRepo := repository.NewAuthRepository(db)
	cameraRepo := repository.NewCameraRepository(db)
	buildingRepo := repository.NewBuildingConfigRepository(db, mc)
	imageRepo := repository.NewImageRepository(db)
	exportRepo := repository.NewExportRepository(db)

	hub := service.NewHub()
	tokens := service.NewTokenService(authRepo, rdb, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	exporter := service.NewExportService()

	appealUC := usecase.NewAppealUsecase(appealRepo, hub)
	referenceUC := usecase.NewReferenceUsecase(referenceRepo)
	authUC := usecase.NewAuthUsecase(authRepo)
	cameraUC := usecase.NewCameraUsecase(cameraRepo)
	buildingUC := usecase.NewBuildingConfigUsecase(buildingRepo)
	imageUC := usecase.NewImageUsecase(imageRepo, cfg.Server.UploadDir)
	exportUC := usecase.NewExportUsecase(exportRepo)

	handler := rest.NewHandler(
		appealUC,
		referenceUC,
		authUC,
		cameraUC,
		buildingUC,
		imageUC,
		exportUC,
		exporter,
		tokens,
		hub,
	)

	e := echo.New()
	e.HidePort = true
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	if cfg.Server.EnableTrace {
		e.Use(otelecho.Middleware("appeals-service"))
	}

	auth := authmiddleware.NewAuthMiddleware(tokens)
	e.Use(auth.IdentifyIdentity)

	handler.RegisterRoutes(e)
	e.Static("/uploads", cfg.Server.UploadDir)

	slog.Info("starting server", slog.String("listen", cfg.Server.Listen))
	e.Logger.Fatal(e.Start(cfg.Server.Listen))
}
