package rest

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/stitchworks/imagelib/internal/domain"
	"github.com/stitchworks/imagelib/internal/ports"
	"github.com/stitchworks/imagelib/internal/usecase"
	"github.com/stitchworks/imagelib/pkg/httpx"
)

// Handler — REST-обёртка над реестром библиотеки изображений.
type Handler struct {
	service        *usecase.LibraryService
	log            ports.Logger
	handlerTimeout time.Duration // 0 — без ограничения
}

func NewHandler(service *usecase.LibraryService, log ports.Logger, handlerTimeout time.Duration) *Handler {
	return &Handler{service: service, log: log, handlerTimeout: handlerTimeout}
}

// NewRouter — роутер с middleware (request-id, логирование, опционально
// otelgin) и всеми маршрутами библиотеки. Пустой otelServiceName
// отключает трейсинг-мидлварь.
func NewRouter(h *Handler, staticDir, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(httpx.RequestIDMiddleware())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/library", h.getLibrary)
		api.GET("/library/status", h.getStatus)

		api.GET("/images", h.listImages)
		api.POST("/images", h.createImage)
		api.PATCH("/images/:id", h.updateImage)
		api.DELETE("/images/:id", h.deleteImage)
		api.POST("/images/reset", h.resetImages)

		api.GET("/categories", h.listCategories)
		api.POST("/categories", h.createCategory)
		api.PATCH("/categories/:id", h.updateCategory)
		api.DELETE("/categories/:id", h.deleteCategory)
		api.PUT("/categories/order", h.reorderCategories)
		api.POST("/categories/reset", h.resetCategories)

		api.GET("/user-images", h.listUserImages)
		api.POST("/user-images", h.addUserImage)
		api.POST("/user-images/upload", h.uploadUserImages)
		api.DELETE("/user-images/:publicId", h.removeUserImage)
		api.POST("/user-images/:publicId/retry-delete", h.retryRemoteDelete)

		api.GET("/selected", h.listSelected)
		api.POST("/selected", h.selectImage)
		api.DELETE("/selected/:id", h.unselectImage)
		api.DELETE("/selected", h.clearSelected)

		api.GET("/pricing", h.getPricing)
		api.PATCH("/pricing", h.updatePricing)
		api.POST("/pricing/reset", h.resetPricing)
	}

	if staticDir != "" {
		r.Static("/static", staticDir)
		r.StaticFile("/", filepath.Join(staticDir, "index.html"))
	}

	return r
}

// reqCtx — контекст запроса с таймаутом хендлера (если настроен).
func (h *Handler) reqCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	ctx := c.Request.Context()
	if h.handlerTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, h.handlerTimeout)
}

// respondErr — единое отображение ошибок домена в HTTP-статусы.
func (h *Handler) respondErr(c *gin.Context, op string, err error) {
	ctx := c.Request.Context()
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrAuthTokenMissing):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, domain.ErrRemoteDeleteFailed):
		h.log.Warnf(ctx, "%s: remote delete failed: %v", op, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "remote delete failed"})
	case errors.Is(err, context.DeadlineExceeded):
		h.log.Warnf(ctx, "%s timed out: %v", op, err)
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "upstream timeout"})
	default:
		h.log.Errorf(ctx, "%s failed: %v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// errString — lastErr реестра для статусного ответа.
func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
