package commerce

import (
	"context"
	"net/http"
	"net/url"

	"github.com/nhakalabs/storefront-gateway/pkg/pagination"
	"github.com/nhakalabs/storefront-gateway/pkg/types"
)

const purchasePath = "/memorial-purchase"

// CreatePurchase submits a completed order. The idempotency key dedupes
// retried submissions upstream.
func (c *Client) CreatePurchase(ctx context.Context, purchase Purchase, idempotencyKey string) (*Purchase, error) {
	var created Purchase
	err := c.doJSON(ctx, http.MethodPost, purchasePath, requestOptions{
		idempotencyKey: idempotencyKey,
	}, purchase, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetPurchase fetches one order with its memorials joined in.
func (c *Client) GetPurchase(ctx context.Context, orderID string) (*Purchase, error) {
	query := url.Values{}
	query.Set("join", "memorials")

	var purchase Purchase
	if err := c.doJSON(ctx, http.MethodGet, purchasePath+"/"+url.PathEscape(orderID), requestOptions{query: query}, nil, &purchase); err != nil {
		return nil, err
	}
	return &purchase, nil
}

// ListPurchases returns the caller's purchase history with memorials joined in.
func (c *Client) ListPurchases(ctx context.Context, params pagination.Params) (*types.ListEnvelope[Purchase], error) {
	query := params.Query()
	query.Set("join", "memorials")

	var envelope types.ListEnvelope[Purchase]
	if err := c.doJSON(ctx, http.MethodGet, purchasePath, requestOptions{query: query}, nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}
