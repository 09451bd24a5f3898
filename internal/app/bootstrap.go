package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stitchworks/imagelib/config"
	cachemem "github.com/stitchworks/imagelib/internal/cache/memory"
	"github.com/stitchworks/imagelib/internal/designsync"
	"github.com/stitchworks/imagelib/internal/domain"
	"github.com/stitchworks/imagelib/internal/localstore"
	"github.com/stitchworks/imagelib/internal/ports"
	"github.com/stitchworks/imagelib/internal/remote"
	rest "github.com/stitchworks/imagelib/internal/transport/http"
	"github.com/stitchworks/imagelib/internal/usecase"
	"github.com/stitchworks/imagelib/pkg/logger"
	"github.com/stitchworks/imagelib/pkg/metrics"
	"github.com/stitchworks/imagelib/pkg/telemetry"
)

// App — собранное приложение и его внешние интерфейсы.
type App struct {
	Logger          ports.Logger            // логгер
	HTTPServer      *http.Server            // HTTP-сервер
	Library         *usecase.LibraryService // реестр библиотеки изображений
	gracefulTimeout time.Duration           // время ожидания завершения HTTP-сервера
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Локальное хранилище (SQLite). Переживающие перезапуск коллекции
	// читаются отсюда при сборке реестра.
	store, err := localstore.Open(ctx, cfg.Store.Path)
	if err != nil {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
		return nil, func() {}, err
	}

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	// Удалённые контракты поверх единого HTTP-клиента.
	client := remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.Timeout,
		remote.StaticTokenProvider(cfg.Remote.AuthToken), logg)
	imagesClient := remote.NewImagesClient(client)
	categoriesClient := remote.NewCategoriesClient(client)
	uploadsClient := remote.NewUploadsClient(client)
	pricingClient := remote.NewPricingClient(client)

	// Кэши: по одному store на домен, ячейки поверх них.
	imageStore := cachemem.NewStore[domain.ImageLibrary]("images", cfg.Cache.TTL, cfg.Cache.MaxEntries)
	categoryStore := cachemem.NewStore[[]domain.Category]("categories", cfg.Cache.TTL, cfg.Cache.MaxEntries)
	pricingStore := cachemem.NewStore[domain.PricingData]("pricing", cfg.Cache.TTL, cfg.Cache.MaxEntries)

	// Мост в граф дизайна: сервис дизайна в этой сборке не подключён,
	// nil-слив превращает каскад в no-op с логированием.
	bridge := designsync.New(nil, logg)

	library := usecase.NewLibraryService(
		imagesClient, categoriesClient, uploadsClient, pricingClient,
		cachemem.NewCell(imageStore, "images"),
		cachemem.NewCell(categoryStore, "categories"),
		cachemem.NewCell(pricingStore, "pricing"),
		bridge,
		store,
		logg,
		usecase.Options{
			DeleteRetries:    cfg.Remote.DeleteRetries,
			RetryDelay:       cfg.Remote.RetryDelay,
			ManualRetryCount: cfg.Remote.ManualRetryCount,
		},
	)

	// Начальная загрузка: библиотека и прайс. Ошибки не фатальны —
	// реестр стартует пустым и отдаёт их через Err().
	library.LoadPredefinedImages(ctx, false)
	library.LoadPricing(ctx, false)
	if err := library.Err(); err != nil {
		logg.Warnf(ctx, "initial load incomplete: %v", err)
	}

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(library, logg, cfg.HTTP.HandlerTimeout)
	router := rest.NewRouter(httpHandler, "./web", otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		Library:         library,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if serr := store.Close(); serr != nil {
			logg.Warnf(ctx, "local store close error: %v", serr)
		}
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}

	return app, cleanup, nil
}

// Run — запускает HTTP-сервер; ждёт отмены контекста или ошибки и останавливает его.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Ожидание сигнала остановки или фоновой ошибки.
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.Logger.Infof(ctx, "background component stopped: %v", err)
		} else {
			a.Logger.Warnf(ctx, "background error: %v", err)
		}
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP-сервера.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	a.Logger.Infof(ctx, "service stopped")
	return nil
}
