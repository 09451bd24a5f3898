package remote

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/stitchworks/imagelib/internal/domain"
	"github.com/stitchworks/imagelib/internal/ports"
)

// Проверка, что UploadsClient удовлетворяет порту UploadService.
var _ ports.UploadService = (*UploadsClient)(nil)

// UploadsClient — HTTP-клиент контракта пользовательских загрузок.
// Загрузка/удаление не требуют админского токена: файлом владеет клиент.
type UploadsClient struct {
	*Client
}

func NewUploadsClient(c *Client) *UploadsClient { return &UploadsClient{Client: c} }

func (c *UploadsClient) UploadOne(ctx context.Context, file domain.FileUpload) (domain.UserImage, error) {
	var out domain.UserImage
	err := c.doMultipart(ctx, http.MethodPost, "/api/uploads", "", file, nil, &out)
	observe("uploads", "upload", err)
	return out, err
}

func (c *UploadsClient) UploadMany(ctx context.Context, files []domain.FileUpload) ([]domain.UserImage, error) {
	// Контракт принимает по одному файлу на запрос; держим порядок выдачи.
	out := make([]domain.UserImage, 0, len(files))
	for _, f := range files {
		img, err := c.UploadOne(ctx, f)
		if err != nil {
			return out, err
		}
		out = append(out, img)
	}
	return out, nil
}

func (c *UploadsClient) Delete(ctx context.Context, publicID string) error {
	err := c.doJSON(ctx, http.MethodDelete, "/api/uploads/"+url.PathEscape(publicID), "", nil, nil)
	observe("uploads", "delete", err)
	return err
}

func (c *UploadsClient) GetInfo(ctx context.Context, publicID string) (domain.UserImage, bool, error) {
	var out domain.UserImage
	err := c.doJSON(ctx, http.MethodGet, "/api/uploads/"+url.PathEscape(publicID), "", nil, &out)
	observe("uploads", "info", err)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.UserImage{}, false, nil
	}
	if err != nil {
		return domain.UserImage{}, false, err
	}
	return out, true, nil
}
