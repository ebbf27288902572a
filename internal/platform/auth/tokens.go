package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hospital/records/internal/domain"
)

// Token types carried in the token_type claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// ErrInvalidToken is returned for malformed, expired, wrongly typed or
// revoked tokens.
var ErrInvalidToken = domain.NewError(domain.ErrUnauthorized, "Token is invalid or expired")

// Claims are the JWT claims issued by TokenManager.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"token_type"`
}

// TokenPair is the login response body.
type TokenPair struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

// TokenManager signs and validates HS256 access and refresh tokens and
// consults a revocation store on every validation.
type TokenManager struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	revoked    *TokenRevocationStore
	now        func() time.Time
}

// TokenConfig configures a TokenManager.
type TokenConfig struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func NewTokenManager(cfg TokenConfig, revoked *TokenRevocationStore) *TokenManager {
	return &TokenManager{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		revoked:    revoked,
		now:        time.Now,
	}
}

// IssuePair creates a fresh access and refresh token for the user.
func (m *TokenManager) IssuePair(userID uuid.UUID) (TokenPair, error) {
	refresh, err := m.issue(userID, TokenTypeRefresh, m.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	access, err := m.issue(userID, TokenTypeAccess, m.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Refresh: refresh, Access: access}, nil
}

// Refresh validates a refresh token and returns a new access token for its
// subject.
func (m *TokenManager) Refresh(refreshToken string) (string, error) {
	claims, err := m.Validate(refreshToken, TokenTypeRefresh)
	if err != nil {
		return "", err
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return "", ErrInvalidToken
	}
	return m.issue(userID, TokenTypeAccess, m.accessTTL)
}

// Validate parses tokenStr and checks signature, issuer, expiry, type and
// revocation.
func (m *TokenManager) Validate(tokenStr, tokenType string) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != tokenType || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	if m.revoked != nil && m.revoked.IsRevoked(claims.ID) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// RevokeToken revokes a raw token of any type issued to subject. Tokens
// that no longer validate, or that belong to someone else, are reported as
// ErrInvalidToken and left untouched.
func (m *TokenManager) RevokeToken(tokenStr, subject string) error {
	claims, err := m.Validate(tokenStr, TokenTypeRefresh)
	if errors.Is(err, ErrInvalidToken) {
		claims, err = m.Validate(tokenStr, TokenTypeAccess)
	}
	if err != nil {
		return err
	}
	if claims.Subject != subject {
		return ErrInvalidToken
	}
	m.Revoke(claims.ID, claims.ExpiresAt.Time)
	return nil
}

// Revoke marks jti as revoked until expiresAt.
func (m *TokenManager) Revoke(jti string, expiresAt time.Time) {
	if m.revoked == nil {
		return
	}
	m.revoked.Revoke(jti, expiresAt)
}

func (m *TokenManager) issue(userID uuid.UUID, tokenType string, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TokenType: tokenType,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, nil
}
