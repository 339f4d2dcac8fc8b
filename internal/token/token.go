// Package token handles JWT access and refresh token generation and validation.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Generator handles JWT token generation and validation
type Generator struct {
	secret             string
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
}

// NewGenerator creates a new token generator
func NewGenerator(secret string, accessExpiry, refreshExpiry time.Duration) *Generator {
	return &Generator{
		secret:             secret,
		accessTokenExpiry:  accessExpiry,
		refreshTokenExpiry: refreshExpiry,
	}
}

// GenerateAccessToken creates an access token carrying the username and roles
func (g *Generator) GenerateAccessToken(username string, roles []string) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"roles":    roles,
		"exp":      time.Now().Add(g.accessTokenExpiry).Unix(),
		"iat":      time.Now().Unix(),
		"type":     "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(g.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// GenerateRefreshToken creates a refresh token carrying only the username
func (g *Generator) GenerateRefreshToken(username string) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"exp":      time.Now().Add(g.refreshTokenExpiry).Unix(),
		"iat":      time.Now().Unix(),
		"type":     "refresh",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(g.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return tokenString, nil
}

// ValidateAccessToken validates an access token and returns the username and roles
func (g *Generator) ValidateAccessToken(tokenString string) (string, []string, error) {
	claims, err := g.parse(tokenString, "access")
	if err != nil {
		return "", nil, err
	}

	username, ok := claims["username"].(string)
	if !ok {
		return "", nil, fmt.Errorf("username not found in token")
	}

	// JWT claims decode string arrays as []any
	rawRoles, ok := claims["roles"].([]any)
	if !ok {
		return "", nil, fmt.Errorf("roles not found in token")
	}
	roles := make([]string, 0, len(rawRoles))
	for _, r := range rawRoles {
		role, ok := r.(string)
		if !ok {
			return "", nil, fmt.Errorf("invalid role claim")
		}
		roles = append(roles, role)
	}

	return username, roles, nil
}

// ValidateRefreshToken validates a refresh token and returns the username
func (g *Generator) ValidateRefreshToken(tokenString string) (string, error) {
	claims, err := g.parse(tokenString, "refresh")
	if err != nil {
		return "", err
	}

	username, ok := claims["username"].(string)
	if !ok {
		return "", fmt.Errorf("username not found in token")
	}

	return username, nil
}

func (g *Generator) parse(tokenString, wantType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(g.secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != wantType {
		return nil, fmt.Errorf("token is not a %s token", wantType)
	}

	return claims, nil
}
