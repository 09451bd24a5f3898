package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stitchworks/imagelib/internal/domain"
)

// listCategories — текущие категории (всегда по порядку Order);
// ?refresh=true принудительно перечитывает их с сервера.
func (h *Handler) listCategories(c *gin.Context) {
	if c.Query("refresh") == "true" {
		ctx, cancel := h.reqCtx(c)
		defer cancel()
		h.service.LoadCategories(ctx, true)
	}
	c.JSON(http.StatusOK, h.service.Categories())
}

func (h *Handler) createCategory(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	var category domain.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if category.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	created, err := h.service.CreateCategory(ctx, category)
	if err != nil {
		h.respondErr(c, "create category", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) updateCategory(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	var update domain.CategoryUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	updated, err := h.service.UpdateCategory(ctx, c.Param("id"), update)
	if err != nil {
		h.respondErr(c, "update category", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) deleteCategory(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	if err := h.service.DeleteCategory(ctx, c.Param("id")); err != nil {
		h.respondErr(c, "delete category", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) reorderCategories(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	var orders []domain.CategoryOrder
	if err := c.ShouldBindJSON(&orders); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if len(orders) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty order list"})
		return
	}

	cats, err := h.service.ReorderCategories(ctx, orders)
	if err != nil {
		h.respondErr(c, "reorder categories", err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

func (h *Handler) resetCategories(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	cats, err := h.service.ResetCategories(ctx)
	if err != nil {
		h.respondErr(c, "reset categories", err)
		return
	}
	c.JSON(http.StatusOK, cats)
}
