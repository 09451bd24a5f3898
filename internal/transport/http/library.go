package rest

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stitchworks/imagelib/internal/domain"
)

// getLibrary — загрузка библиотеки (кэш-first) и выдача реплики.
// ?refresh=true обходит обычный ключ кэша. Ошибка загрузки не валит
// запрос — она видна в поле error ответа.
func (h *Handler) getLibrary(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	force := c.Query("refresh") == "true"
	h.service.LoadPredefinedImages(ctx, force)

	c.JSON(http.StatusOK, gin.H{
		"images":     h.service.PredefinedImages(),
		"categories": h.service.Categories(),
		"isLoading":  h.service.IsLoading(),
		"error":      errString(h.service.Err()),
	})
}

// getStatus — флаги состояния реестра и диагностика кэша.
func (h *Handler) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"isLoading": h.service.IsLoading(),
		"error":     errString(h.service.Err()),
		"cache":     h.service.CacheStats(),
	})
}

func (h *Handler) listImages(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.PredefinedImages())
}

// createImage — multipart: файл в поле "file", метаданные в полях формы.
func (h *Handler) createImage(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	file, err := formFile(c, "file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name := c.PostForm("name")
	categoryID := c.PostForm("categoryId")
	if name == "" || categoryID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and categoryId are required"})
		return
	}

	img, err := h.service.AddPredefinedImage(ctx, file, name, categoryID, c.PostForm("description"))
	if err != nil {
		h.respondErr(c, "create image", err)
		return
	}
	c.JSON(http.StatusCreated, img)
}

func (h *Handler) updateImage(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	var update domain.PredefinedImageUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	img, err := h.service.UpdatePredefinedImage(ctx, c.Param("id"), update)
	if err != nil {
		h.respondErr(c, "update image", err)
		return
	}
	c.JSON(http.StatusOK, img)
}

func (h *Handler) deleteImage(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	if err := h.service.DeletePredefinedImage(ctx, c.Param("id")); err != nil {
		h.respondErr(c, "delete image", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) resetImages(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	imgs, err := h.service.ResetPredefinedImages(ctx)
	if err != nil {
		h.respondErr(c, "reset images", err)
		return
	}
	c.JSON(http.StatusOK, imgs)
}

// formFile — чтение одного файла из multipart-формы в доменный тип.
func formFile(c *gin.Context, field string) (domain.FileUpload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return domain.FileUpload{}, err
	}
	f, err := fh.Open()
	if err != nil {
		return domain.FileUpload{}, err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return domain.FileUpload{}, err
	}
	return domain.FileUpload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}
