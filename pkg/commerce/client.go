package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/nhakalabs/storefront-gateway/pkg/config"
	pkgerrors "github.com/nhakalabs/storefront-gateway/pkg/errors"
	"github.com/nhakalabs/storefront-gateway/pkg/logger"
)

// ErrMalformedResponse marks 2xx bodies that did not decode into the expected
// shape. List views treat it as an empty result rather than a hard failure.
var ErrMalformedResponse = errors.New("malformed commerce response")

type tokenCtxKey struct{}

// WithAccessToken stashes the upstream bearer token for outgoing calls.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenCtxKey{}, token)
}

// AccessTokenFromContext returns the stashed upstream token, if any.
func AccessTokenFromContext(ctx context.Context) string {
	return accessTokenFrom(ctx)
}

func accessTokenFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if token, ok := ctx.Value(tokenCtxKey{}).(string); ok {
		return token
	}
	return ""
}

// Client talks to the upstream commerce REST API. The bearer token is taken
// from the request context when present; public endpoints work without one.
type Client struct {
	baseURL string
	http    *http.Client
	logg    *logger.Logger
}

// NewClient validates the base URL and builds the API client.
func NewClient(cfg config.CommerceConfig, logg *logger.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("commerce base url is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("parsing commerce base url: %w", err)
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		logg:    logg,
	}, nil
}

type requestOptions struct {
	query          url.Values
	idempotencyKey string
}

func (c *Client) doJSON(ctx context.Context, method, path string, opts requestOptions, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, path, opts, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, opts requestOptions, body io.Reader) (*http.Request, error) {
	target := c.baseURL + path
	if len(opts.query) > 0 {
		target += "?" + opts.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	if token := accessTokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if opts.idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", opts.idempotencyKey)
	}
	return req, nil
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "call commerce api")
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("%w: %v", ErrMalformedResponse, err), "decode commerce response")
	}
	return nil
}

// upstreamError is the commerce API's error body: { "message": "..." }.
type upstreamError struct {
	Message string `json:"message"`
}

func (c *Client) decodeError(resp *http.Response) error {
	var body upstreamError
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if readErr == nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil && c.logg != nil {
			c.logg.Warn(resp.Request.Context(), "commerce error body was not json")
		}
	}

	message := strings.TrimSpace(body.Message)
	code := codeForStatus(resp.StatusCode)
	if message == "" {
		message = fmt.Sprintf("commerce api returned status %d", resp.StatusCode)
	}
	return pkgerrors.New(code, message)
}

func codeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return pkgerrors.CodeValidation
	case http.StatusUnauthorized:
		return pkgerrors.CodeUnauthorized
	case http.StatusForbidden:
		return pkgerrors.CodeForbidden
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusConflict:
		return pkgerrors.CodeConflict
	default:
		return pkgerrors.CodeDependency
	}
}
