package auth

import "github.com/golang-jwt/jwt/v5"

// SessionTokenPayload carries the identity minted into a gateway token.
type SessionTokenPayload struct {
	SessionID string
	UserID    string
	Email     string
}

// SessionTokenClaims is the JWT claim set issued to storefront clients.
// The registered ID (jti) holds the server-side session identifier.
type SessionTokenClaims struct {
	UserID string `json:"uid,omitempty"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
