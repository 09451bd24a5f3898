package remote

import (
	"context"
	"net/http"

	"github.com/stitchworks/imagelib/internal/domain"
	"github.com/stitchworks/imagelib/internal/ports"
)

// Проверка, что ImagesClient удовлетворяет порту PredefinedImageService.
var _ ports.PredefinedImageService = (*ImagesClient)(nil)

// ImagesClient — HTTP-клиент контракта предустановленных изображений.
type ImagesClient struct {
	*Client
}

func NewImagesClient(c *Client) *ImagesClient { return &ImagesClient{Client: c} }

func (c *ImagesClient) ListWithCategories(ctx context.Context) (domain.ImageLibrary, error) {
	var out domain.ImageLibrary
	err := c.doJSON(ctx, http.MethodGet, "/api/predefined-images", "", nil, &out)
	observe("images", "list", err)
	return out, err
}

func (c *ImagesClient) Create(ctx context.Context, file domain.FileUpload, name, categoryID, description string) (domain.PredefinedImage, error) {
	token, err := c.authToken(ctx)
	if err != nil {
		return domain.PredefinedImage{}, err
	}
	fields := map[string]string{
		"name":       name,
		"categoryId": categoryID,
	}
	if description != "" {
		fields["description"] = description
	}
	var out domain.PredefinedImage
	err = c.doMultipart(ctx, http.MethodPost, "/api/predefined-images", token, file, fields, &out)
	observe("images", "create", err)
	return out, err
}

func (c *ImagesClient) Update(ctx context.Context, id string, update domain.PredefinedImageUpdate) (domain.PredefinedImage, error) {
	token, err := c.authToken(ctx)
	if err != nil {
		return domain.PredefinedImage{}, err
	}
	var out domain.PredefinedImage
	err = c.doJSON(ctx, http.MethodPut, "/api/predefined-images/"+id, token, update, &out)
	observe("images", "update", err)
	return out, err
}

func (c *ImagesClient) Delete(ctx context.Context, id string) error {
	token, err := c.authToken(ctx)
	if err != nil {
		return err
	}
	err = c.doJSON(ctx, http.MethodDelete, "/api/predefined-images/"+id, token, nil, nil)
	observe("images", "delete", err)
	return err
}

func (c *ImagesClient) Reset(ctx context.Context) ([]domain.PredefinedImage, error) {
	token, err := c.authToken(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.PredefinedImage
	err = c.doJSON(ctx, http.MethodPost, "/api/predefined-images/reset", token, nil, &out)
	observe("images", "reset", err)
	return out, err
}
