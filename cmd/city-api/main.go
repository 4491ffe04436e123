package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "city-api/configs"
	_ "city-api/docs"
	"city-api/internal/application/controller"
	"city-api/internal/application/middleware"
	"city-api/internal/application/schedule"
	"city-api/internal/bootstrap"
	"city-api/pkg/log"
	"city-api/pkg/msg"
	"city-api/pkg/resource"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// @title city-api
// @version 1.0
// @description Cities with favorites, remote preload and current weather lookup.
// @BasePath /city-api
func main() {
	defer log.Sync()
	log.Info(msg.GetMessage("app.start"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Init infra
	container, err := bootstrap.New(ctx, bootstrap.Options{StartWorker: true})
	if err != nil {
		log.Fatal("failed to initialize dependencies", zap.Error(err))
	}
	defer func() { _ = container.Close() }()

	e := echo.New()
	e.HideBanner = true
	contextPath := resource.GetStringOrDefault("app.server.context-path", "/city-api")
	middleware.SetupRequestLogger(e, contextPath)
	middleware.SetupValidator(e)

	api := e.Group(contextPath)
	api.GET("/swagger/*", echoSwagger.WrapHandler)

	// Init Controller
	healthController := controller.NewHealthController(api, container.HealthUseCase)
	cityController := controller.NewCityController(api, container.CityUseCase)
	weatherController := controller.NewWeatherController(api, container.WeatherUseCase)

	// Init Routes
	healthController.InitHealthRoutes()
	cityController.InitCityRoutes()
	weatherController.InitWeatherRoutes()

	// Init Worker
	if container.Worker != nil {
		go container.Worker.Start(ctx)
	}

	// Init Schedule
	var seedScheduler *schedule.CitySeedScheduler
	if resource.GetBool("app.cities.seed.enabled") {
		seedScheduler = schedule.NewCitySeedScheduler(
			container.CityUseCase,
			container.Redis,
			resource.GetString("app.cities.seed.cron"),
			resource.GetInt("app.cities.seed.lock-ttl"),
			resource.GetInt("app.cities.seed.refresh-interval"),
		)
		seedScheduler.InitCitySeedScheduleTasks(ctx)
	}

	if resource.GetBool("app.cities.preload-on-start") {
		go preloadOnStart(ctx, container)
	}

	// Start Routes
	port := resource.GetStringOrDefault("app.server.port", "8080")
	go func() {
		log.Info(msg.GetMessage("app.started", port))
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server stopped unexpectedly", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(msg.GetMessage("app.stopping"))

	shutdownTimeout := resource.GetDuration("app.server.shutdown-timeout")
	if shutdownTimeout <= 0 {
		shutdownTimeout = 15 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shut down http server", zap.Error(err))
	}
	if seedScheduler != nil {
		select {
		case <-seedScheduler.Done():
		case <-shutdownCtx.Done():
		}
	}

	log.Info(msg.GetMessage("app.stopped"))
}

func preloadOnStart(ctx context.Context, container *bootstrap.Container) {
	seeded, err := container.CityUseCase.PreloadCitiesIfEmpty(ctx)
	if err != nil {
		log.Error("initial city preload failed", zap.Error(err))
		return
	}
	if !seeded {
		log.Info(msg.GetMessage("city.preload.skipped"))
	}
}
