package remote

import (
	"context"
	"net/http"

	"github.com/stitchworks/imagelib/internal/domain"
	"github.com/stitchworks/imagelib/internal/ports"
)

// Проверка, что PricingClient удовлетворяет порту PricingService.
var _ ports.PricingService = (*PricingClient)(nil)

// PricingClient — HTTP-клиент контракта прайса.
type PricingClient struct {
	*Client
}

func NewPricingClient(c *Client) *PricingClient { return &PricingClient{Client: c} }

func (c *PricingClient) Get(ctx context.Context) (domain.PricingData, error) {
	var out domain.PricingData
	err := c.doJSON(ctx, http.MethodGet, "/api/pricing", "", nil, &out)
	observe("pricing", "get", err)
	return out, err
}

func (c *PricingClient) Update(ctx context.Context, update domain.PricingUpdate) (domain.PricingData, error) {
	token, err := c.authToken(ctx)
	if err != nil {
		return domain.PricingData{}, err
	}
	var out domain.PricingData
	err = c.doJSON(ctx, http.MethodPut, "/api/pricing", token, update, &out)
	observe("pricing", "update", err)
	return out, err
}

func (c *PricingClient) Reset(ctx context.Context) (domain.PricingData, error) {
	token, err := c.authToken(ctx)
	if err != nil {
		return domain.PricingData{}, err
	}
	var out domain.PricingData
	err = c.doJSON(ctx, http.MethodPost, "/api/pricing/reset", token, nil, &out)
	observe("pricing", "reset", err)
	return out, err
}
