package models

import "github.com/golang-jwt/jwt/v5"

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Claims is the JWT payload carried by access tokens: the user identity plus
// the registered issued-at/expiry set.
type Claims struct {
	UserID   int    `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// LoginResponse mirrors the original login body: the user identity, the raw
// token and its decoded claims.
type LoginResponse struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Token        string `json:"token"`
	DecodedToken Claims `json:"decodedToken"`
}
