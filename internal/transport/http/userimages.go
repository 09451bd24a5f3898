package rest

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stitchworks/imagelib/internal/domain"
	"github.com/stitchworks/imagelib/internal/usecase"
	"github.com/stitchworks/imagelib/pkg/httpx"
)

// listUserImages — страница пользовательских изображений (свежие первыми).
func (h *Handler) listUserImages(c *gin.Context) {
	limit, offset := httpx.ParseLimitOffset(c, 20, 100)

	imgs := h.service.UserImages()
	total := len(imgs)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"images": imgs[offset:end],
		"total":  total,
	})
}

// addUserImage — регистрация изображения в коллекции без загрузки файла.
// Без publicId создаётся оптимистичная temp-заглушка: она живёт только на
// клиенте, пока не завершится настоящая загрузка.
func (h *Handler) addUserImage(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	var img domain.UserImage
	if err := c.ShouldBindJSON(&img); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if img.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}
	if img.PublicID == "" {
		img.PublicID = domain.TempPublicIDPrefix + uuid.NewString()
	}
	if img.CreatedAt.IsZero() {
		img.CreatedAt = time.Now()
	}

	h.service.AddUserImage(ctx, img)
	c.JSON(http.StatusCreated, img)
}

// uploadUserImages — multipart-загрузка одного или нескольких файлов
// (поле "files"). Частичный успех отдаётся как 207 со списком загруженных.
func (h *Handler) uploadUserImages(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files"})
		return
	}

	files := make([]domain.FileUpload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file " + fh.Filename})
			return
		}
		content, err := readAllAndClose(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file " + fh.Filename})
			return
		}
		files = append(files, domain.FileUpload{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Content:     content,
		})
	}

	imgs, err := h.service.UploadUserImages(ctx, files)
	if err != nil {
		if len(imgs) > 0 {
			c.JSON(http.StatusMultiStatus, gin.H{"images": imgs, "error": err.Error()})
			return
		}
		h.respondErr(c, "upload user images", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"images": imgs})
}

// removeUserImage — протокол согласованного удаления. Локальное удаление
// безусловно, поэтому ответ всегда успешный; исход удалённой стороны
// виден в поле outcome ("deleted locally, remote delete failed" — повод
// предложить ручной повтор).
func (h *Handler) removeUserImage(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	outcome, err := h.service.RemoveUserImage(ctx, c.Param("publicId"))
	if err != nil {
		h.respondErr(c, "remove user image", err)
		return
	}

	status := http.StatusOK
	if outcome == usecase.DeleteRemoteFailed {
		status = http.StatusAccepted
	}
	c.JSON(status, gin.H{"outcome": outcome.String()})
}

func (h *Handler) retryRemoteDelete(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	if err := h.service.RetryRemoteDelete(ctx, c.Param("publicId")); err != nil {
		h.respondErr(c, "retry remote delete", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcome": "deleted"})
}

func readAllAndClose(f io.ReadCloser) ([]byte, error) {
	defer f.Close()
	return io.ReadAll(f)
}
