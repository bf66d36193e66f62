package commerce

import (
	"context"
	"net/http"
)

// SignIn exchanges credentials for an upstream access token.
func (c *Client) SignIn(ctx context.Context, creds Credentials) (*AuthResult, error) {
	var result AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/auth/signin", requestOptions{}, creds, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SignUp registers a new account and returns a live session for it.
func (c *Client) SignUp(ctx context.Context, input SignupInput) (*AuthResult, error) {
	var result AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/auth/signup", requestOptions{}, input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Me returns the profile for the token carried in ctx.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", requestOptions{}, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
