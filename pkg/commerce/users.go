package commerce

import (
	"context"
	"net/http"
	"net/url"

	"github.com/nhakalabs/storefront-gateway/pkg/pagination"
	"github.com/nhakalabs/storefront-gateway/pkg/types"
)

// ListUsers pages through registered users. Admin token required upstream.
func (c *Client) ListUsers(ctx context.Context, params pagination.Params) (*types.ListEnvelope[User], error) {
	var envelope types.ListEnvelope[User]
	if err := c.doJSON(ctx, http.MethodGet, "/user", requestOptions{query: params.Query()}, nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodGet, "/user/"+url.PathEscape(id), requestOptions{}, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CreateUser(ctx context.Context, input UserInput) (*User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodPost, "/user", requestOptions{}, input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, input UserInput) (*User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodPatch, "/user/"+url.PathEscape(id), requestOptions{}, input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/user/"+url.PathEscape(id), requestOptions{}, nil, nil)
}
