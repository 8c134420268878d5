// Package jwt provides JWT access/refresh token issuance and validation
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// Token types
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	// Issuer
	DefaultIssuer = "meetboxs"
)

// Error messages
const (
	ErrAccessTokenSecretRequired   = "access token secret is required"
	ErrRefreshTokenSecretRequired  = "refresh token secret is required"
	ErrRefreshTokenNotInStore      = "refresh token not found in store"
	ErrInvalidTokenType            = "invalid token type"
	ErrInvalidToken                = "invalid token"
	ErrRevokeNotSupportedStateless = "revoke not supported in stateless mode"
	ErrNoStoreConfigured           = "no store configured for stateful mode"
)

// TokenClaims represents the claims in a MeetBoxs token
type TokenClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// RefreshTokenStore defines the interface for storing refresh tokens in stateful mode
type RefreshTokenStore interface {
	Save(userID, tokenID, token string, expiry time.Time) error
	Get(userID, tokenID string) (string, error)
	Delete(userID, tokenID string) error
	DeleteAll(userID string) error
}

// JWTClient defines the interface for JWT token operations
type JWTClient interface {
	GenerateAccessToken(userID, email string) (string, error)
	GenerateRefreshToken(userID, email string) (string, error)
	ValidateAccessToken(tokenString string) (*TokenClaims, error)
	ValidateRefreshToken(tokenString string) (*TokenClaims, error)
	RefreshAccessToken(refreshToken string) (string, error)
	RevokeRefreshToken(userID, tokenID string) error
	RevokeAllRefreshTokens(userID string) error
	GetTokenExpiration(tokenString string) (time.Time, error)
	IsStateful() bool
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
}

// Client represents a JWT client that handles token operations
type Client struct {
	config TokenConfig
	store  RefreshTokenStore
}

// New creates a new JWT client with the provided options
func New(opts ...Option) (JWTClient, error) {
	config := TokenConfig{
		AccessTokenExpiry:  time.Minute * 15,
		RefreshTokenExpiry: time.Hour * 24 * 7,
		Stateful:           false,
	}

	for _, opt := range opts {
		opt(&config)
	}

	if config.AccessTokenSecret == "" {
		return nil, errors.New(ErrAccessTokenSecretRequired)
	}
	if config.RefreshTokenSecret == "" {
		return nil, errors.New(ErrRefreshTokenSecretRequired)
	}

	return &Client{
		config: config,
	}, nil
}

// NewStateful creates a new JWT client for stateful mode with a store
func NewStateful(store RefreshTokenStore, opts ...Option) (JWTClient, error) {
	opts = append(opts, WithStateful(true))
	client, err := New(opts...)
	if err != nil {
		return nil, err
	}

	c := client.(*Client)
	c.store = store
	return client, nil
}

// GenerateAccessToken generates a new access token
func (c *Client) GenerateAccessToken(userID, email string) (string, error) {
	claims := TokenClaims{
		UserID:    userID,
		Email:     email,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(c.config.AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    DefaultIssuer,
			ID:        fmt.Sprintf("%s_%d", userID, time.Now().UnixNano()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.config.AccessTokenSecret))
}

// GenerateRefreshToken generates a new refresh token
// In stateful mode the token is also written to the store so it can be
// revoked or rotated later
func (c *Client) GenerateRefreshToken(userID, email string) (string, error) {
	tokenID := fmt.Sprintf("%s_%d", userID, time.Now().UnixNano())

	claims := TokenClaims{
		UserID:    userID,
		Email:     email,
		TokenType: TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(c.config.RefreshTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    DefaultIssuer,
			ID:        tokenID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	refreshToken, err := token.SignedString([]byte(c.config.RefreshTokenSecret))
	if err != nil {
		return "", err
	}

	if c.config.Stateful && c.store != nil {
		expiryTime := time.Now().Add(c.config.RefreshTokenExpiry)
		if err := c.store.Save(userID, tokenID, refreshToken, expiryTime); err != nil {
			return "", err
		}
	}

	return refreshToken, nil
}

// ValidateAccessToken validates an access token
func (c *Client) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	return c.validateToken(tokenString, c.config.AccessTokenSecret, TokenTypeAccess)
}

// ValidateRefreshToken validates a refresh token
// In stateful mode the token must also match the stored copy
func (c *Client) ValidateRefreshToken(tokenString string) (*TokenClaims, error) {
	claims, err := c.validateToken(tokenString, c.config.RefreshTokenSecret, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	if c.config.Stateful && c.store != nil {
		storedToken, err := c.store.Get(claims.UserID, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("refresh token not found or invalid: %w", err)
		}
		if storedToken != tokenString {
			return nil, errors.New(ErrRefreshTokenNotInStore)
		}
	}

	return claims, nil
}

// validateToken is a helper function to validate tokens
func (c *Client) validateToken(tokenString, secret, expectedType string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*TokenClaims); ok && token.Valid {
		if claims.TokenType != expectedType {
			return nil, errors.New(ErrInvalidTokenType)
		}
		return claims, nil
	}

	return nil, errors.New(ErrInvalidToken)
}

// RefreshAccessToken issues a new access token from a valid refresh token
// In stateful mode the used refresh token is removed first to prevent reuse
func (c *Client) RefreshAccessToken(refreshToken string) (string, error) {
	claims, err := c.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	if c.config.Stateful && c.store != nil {
		if err := c.store.Delete(claims.UserID, claims.ID); err != nil {
			return "", fmt.Errorf("failed to invalidate used refresh token: %w", err)
		}
	}

	return c.GenerateAccessToken(claims.UserID, claims.Email)
}

// RevokeRefreshToken revokes a refresh token (only works in stateful mode)
func (c *Client) RevokeRefreshToken(userID, tokenID string) error {
	if !c.config.Stateful {
		return errors.New(ErrRevokeNotSupportedStateless)
	}
	if c.store == nil {
		return errors.New(ErrNoStoreConfigured)
	}
	return c.store.Delete(userID, tokenID)
}

// RevokeAllRefreshTokens revokes all refresh tokens for a user (only works in stateful mode)
func (c *Client) RevokeAllRefreshTokens(userID string) error {
	if !c.config.Stateful {
		return errors.New(ErrRevokeNotSupportedStateless)
	}
	if c.store == nil {
		return errors.New(ErrNoStoreConfigured)
	}
	return c.store.DeleteAll(userID)
}

// GetTokenExpiration returns the expiration time of a token
func (c *Client) GetTokenExpiration(tokenString string) (time.Time, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(c.config.AccessTokenSecret), nil
	})
	if err != nil {
		// Not an access token, try the refresh token secret
		token, err = jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(c.config.RefreshTokenSecret), nil
		})
		if err != nil {
			return time.Time{}, err
		}
	}

	if claims, ok := token.Claims.(*TokenClaims); ok {
		if claims.ExpiresAt != nil {
			return claims.ExpiresAt.Time, nil
		}
		return time.Time{}, errors.New("token has no expiration")
	}

	return time.Time{}, errors.New("invalid token claims")
}

// IsStateful returns whether the client is in stateful mode
func (c *Client) IsStateful() bool {
	return c.config.Stateful
}

// GetAccessTokenExpiry returns the configured access token expiry duration
func (c *Client) GetAccessTokenExpiry() time.Duration {
	return c.config.AccessTokenExpiry
}

// GetRefreshTokenExpiry returns the configured refresh token expiry duration
func (c *Client) GetRefreshTokenExpiry() time.Duration {
	return c.config.RefreshTokenExpiry
}
