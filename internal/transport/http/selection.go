package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stitchworks/imagelib/internal/domain"
)

func (h *Handler) listSelected(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.SelectedImages())
}

// selectImage — отметить изображение для дизайна по id и источнику.
func (h *Handler) selectImage(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	var req struct {
		ID     string             `json:"id"`
		Source domain.ImageSource `json:"source"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id and source are required"})
		return
	}
	if req.Source != domain.SourcePredefined && req.Source != domain.SourceUser {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown source"})
		return
	}

	if err := h.service.SelectByID(ctx, req.ID, req.Source); err != nil {
		h.respondErr(c, "select image", err)
		return
	}
	c.JSON(http.StatusOK, h.service.SelectedImages())
}

// unselectImage — снять выбор (идемпотентно, каскад в граф дизайна).
func (h *Handler) unselectImage(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	h.service.UnselectImage(ctx, c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) clearSelected(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	h.service.ClearSelectedImages(ctx)
	c.Status(http.StatusNoContent)
}
