package commerce

import (
	"context"
	"net/http"
	"net/url"
)

// GetMemorial fetches a memorial the caller owns.
func (c *Client) GetMemorial(ctx context.Context, id string) (*Memorial, error) {
	var memorial Memorial
	if err := c.doJSON(ctx, http.MethodGet, "/memorial/"+url.PathEscape(id), requestOptions{}, nil, &memorial); err != nil {
		return nil, err
	}
	return &memorial, nil
}

// UpdateMemorial patches the configurable memorial fields.
func (c *Client) UpdateMemorial(ctx context.Context, id string, update MemorialUpdate) (*Memorial, error) {
	var memorial Memorial
	if err := c.doJSON(ctx, http.MethodPatch, "/memorial/"+url.PathEscape(id), requestOptions{}, update, &memorial); err != nil {
		return nil, err
	}
	return &memorial, nil
}

// GetPublicMemorial fetches the visitor-facing view. No auth token is sent;
// the upstream hides non-public memorials itself.
func (c *Client) GetPublicMemorial(ctx context.Context, id string) (*Memorial, error) {
	var memorial Memorial
	if err := c.doJSON(ctx, http.MethodGet, "/memorial/public/"+url.PathEscape(id), requestOptions{}, nil, &memorial); err != nil {
		return nil, err
	}
	return &memorial, nil
}
