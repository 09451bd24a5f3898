package remote

import (
	"context"
	"net/http"

	"github.com/stitchworks/imagelib/internal/domain"
	"github.com/stitchworks/imagelib/internal/ports"
)

// Проверка, что CategoriesClient удовлетворяет порту CategoryService.
var _ ports.CategoryService = (*CategoriesClient)(nil)

// CategoriesClient — HTTP-клиент контракта категорий.
type CategoriesClient struct {
	*Client
}

func NewCategoriesClient(c *Client) *CategoriesClient { return &CategoriesClient{Client: c} }

func (c *CategoriesClient) List(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	err := c.doJSON(ctx, http.MethodGet, "/api/categories", "", nil, &out)
	observe("categories", "list", err)
	return out, err
}

func (c *CategoriesClient) Create(ctx context.Context, category domain.Category) (domain.Category, error) {
	token, err := c.authToken(ctx)
	if err != nil {
		return domain.Category{}, err
	}
	var out domain.Category
	err = c.doJSON(ctx, http.MethodPost, "/api/categories", token, category, &out)
	observe("categories", "create", err)
	return out, err
}

func (c *CategoriesClient) Update(ctx context.Context, id string, update domain.CategoryUpdate) (domain.Category, error) {
	token, err := c.authToken(ctx)
	if err != nil {
		return domain.Category{}, err
	}
	var out domain.Category
	err = c.doJSON(ctx, http.MethodPut, "/api/categories/"+id, token, update, &out)
	observe("categories", "update", err)
	return out, err
}

func (c *CategoriesClient) Delete(ctx context.Context, id string) error {
	token, err := c.authToken(ctx)
	if err != nil {
		return err
	}
	err = c.doJSON(ctx, http.MethodDelete, "/api/categories/"+id, token, nil, nil)
	observe("categories", "delete", err)
	return err
}

func (c *CategoriesClient) Reorder(ctx context.Context, orders []domain.CategoryOrder) ([]domain.Category, error) {
	token, err := c.authToken(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.Category
	err = c.doJSON(ctx, http.MethodPost, "/api/categories/reorder", token, orders, &out)
	observe("categories", "reorder", err)
	return out, err
}

func (c *CategoriesClient) Reset(ctx context.Context) ([]domain.Category, error) {
	token, err := c.authToken(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.Category
	err = c.doJSON(ctx, http.MethodPost, "/api/categories/reset", token, nil, &out)
	observe("categories", "reset", err)
	return out, err
}
