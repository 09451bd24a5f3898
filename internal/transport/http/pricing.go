package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stitchworks/imagelib/internal/domain"
)

// getPricing — прайс (кэш-first; ?refresh=true идёт на сервер). Если прайс
// ещё не загружался и загрузка не удалась — 503 с текстом ошибки реестра.
func (h *Handler) getPricing(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	force := c.Query("refresh") == "true"
	if _, ok := h.service.Pricing(); !ok || force {
		h.service.LoadPricing(ctx, force)
	}

	p, ok := h.service.Pricing()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errString(h.service.Err())})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) updatePricing(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	var update domain.PricingUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	p, err := h.service.UpdatePricing(ctx, update)
	if err != nil {
		h.respondErr(c, "update pricing", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) resetPricing(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	p, err := h.service.ResetPricing(ctx)
	if err != nil {
		h.respondErr(c, "reset pricing", err)
		return
	}
	c.JSON(http.StatusOK, p)
}
