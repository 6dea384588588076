package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenType distinguishes the two halves of a token pair.
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// TokenClaims represents the claims in a JWT token
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	IsStaff   bool      `json:"is_staff"`
	TokenType TokenType `json:"token_type"`
}

// ActivationClaims back the emailed activation link. Active records the
// account state at issue time so a link stops working once it has been used.
type ActivationClaims struct {
	jwt.RegisteredClaims
	Purpose string `json:"purpose"`
	Active  bool   `json:"active"`
}

// TokenPair is returned by the token endpoint.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
